package storage

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/spinnet/internal/metrics"
	"github.com/san-kum/spinnet/internal/spin"
)

var (
	ErrNotOpen   = errors.New("store not initialised")
	ErrInvalidID = errors.New("invalid run id")
)

// checkID rejects IDs that would resolve outside the base directory.
func checkID(id string) error {
	if id == "" || id == "." || id == ".." || filepath.Base(id) != id {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// Store keeps one directory per saved run under baseDir, indexed in SQLite.
type Store struct {
	baseDir string
	db      *sql.DB
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Init creates the base directory and opens the run index.
func (s *Store) Init() error {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	db, err := openIndex(filepath.Join(s.baseDir, "index.db"))
	if err != nil {
		return err
	}
	s.db = db
	return nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

type RunMetadata struct {
	ID        string          `json:"id"`
	Variant   string          `json:"variant"`
	Timestamp time.Time       `json:"timestamp"`
	Seed      int64           `json:"seed"`
	Density   int             `json:"density"`
	Speed     float64         `json:"speed"`
	Scale     float64         `json:"scale"`
	Units     string          `json:"units"`
	Width     float64         `json:"width"`
	Height    float64         `json:"height"`
	Frames    int             `json:"frames"`
	Final     metrics.Readout `json:"final"`
	Network   spin.Stats      `json:"network"`
}

var csvHeader = []string{"frame", "total_area", "volume", "energy", "discreteness", "curvature", "emergence"}

// Save writes the run's metadata and readout history and indexes it. The
// ID and timestamp are assigned here.
func (s *Store) Save(meta RunMetadata, history *metrics.History) (string, error) {
	if s.db == nil {
		return "", ErrNotOpen
	}
	meta.ID = fmt.Sprintf("%s_%s", meta.Variant, uuid.NewString()[:8])
	meta.Timestamp = time.Now()
	if err := checkID(meta.ID); err != nil {
		return "", err
	}
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	if err := s.write(runDir, meta, history); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return meta.ID, nil
}

func (s *Store) write(runDir string, meta RunMetadata, history *metrics.History) error {
	if err := writeMetadata(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return err
	}
	if err := writeHistory(filepath.Join(runDir, "metrics.csv"), history); err != nil {
		return err
	}
	return s.index(meta)
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}

func writeHistory(path string, history *metrics.History) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	if history != nil {
		for _, smp := range history.Samples() {
			row := []string{
				strconv.Itoa(smp.Frame),
				formatFloat(smp.TotalArea),
				formatFloat(smp.Volume),
				formatFloat(smp.Energy),
				formatFloat(smp.Discreteness),
				formatFloat(smp.Curvature),
				formatFloat(smp.Emergence),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// List returns the indexed runs, newest first. Runs whose directory has
// gone missing are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}
	ids, err := s.ids()
	if err != nil {
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(ids))
	for _, id := range ids {
		meta, err := s.Load(id)
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	if err := checkID(runID); err != nil {
		return nil, err
	}
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s: %w", metaPath, err)
	}
	return &meta, nil
}

// LoadHistory reads the readout samples saved with a run.
func (s *Store) LoadHistory(runID string) ([]metrics.Sample, error) {
	if err := checkID(runID); err != nil {
		return nil, err
	}
	csvPath := filepath.Join(s.baseDir, runID, "metrics.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(csvHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", csvPath, err)
	}
	if len(records) < 2 {
		return []metrics.Sample{}, nil
	}

	samples := make([]metrics.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		frame, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		vals := make([]float64, len(record)-1)
		ok := true
		for j := range vals {
			if vals[j], err = strconv.ParseFloat(record[j+1], 64); err != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		samples = append(samples, metrics.Sample{
			Frame: frame,
			Readout: metrics.Readout{
				TotalArea:    vals[0],
				Volume:       vals[1],
				Energy:       vals[2],
				Discreteness: vals[3],
				Curvature:    vals[4],
				Emergence:    vals[5],
			},
		})
	}
	return samples, nil
}
