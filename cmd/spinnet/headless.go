package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/san-kum/spinnet/internal/config"
	"github.com/san-kum/spinnet/internal/export"
	"github.com/san-kum/spinnet/internal/metrics"
	"github.com/san-kum/spinnet/internal/sim"
	"github.com/san-kum/spinnet/internal/storage"
	"github.com/san-kum/spinnet/internal/viz"
	"github.com/spf13/cobra"
)

var (
	brand  = color.New(color.FgHiCyan, color.Bold)
	subtle = color.New(color.FgHiBlack)
	good   = color.New(color.FgGreen)
	warn   = color.New(color.FgYellow)
)

// headless is a loop painting onto off-screen rasters.
type headless struct {
	loop    *sim.Loop
	primary *viz.Raster
	derived *viz.Raster
}

func newHeadless(cfg *config.Config, logger *slog.Logger) (*headless, error) {
	clock, err := cfg.Clock()
	if err != nil {
		return nil, err
	}
	state, err := sim.NewState(clock, cfg.Bounds(), cfg.Seed, logger)
	if err != nil {
		return nil, err
	}

	w, h := int(cfg.Width), int(cfg.Height)
	hl := &headless{primary: viz.NewRaster(w, h)}
	painter := viz.NewPainter(hl.primary, cfg.Seed)
	painter.Glow = true

	var derived sim.Renderer
	if clock.Variant == sim.Extended {
		hl.derived = viz.NewRaster(w, h)
		derived = viz.NewDerivedPainter(hl.derived, cfg.Seed)
	}
	hl.loop = sim.NewLoop(state, painter, derived)
	return hl, nil
}

func (h *headless) live() *viz.Raster {
	if h.loop.Clock().Mode == sim.Derived && h.derived != nil {
		return h.derived
	}
	return h.primary
}

// advance runs n frames as fast as they compute, calling each after every
// frame. An interrupt stops early with context.Canceled.
func (h *headless) advance(ctx context.Context, n int, each func()) error {
	if n <= 0 {
		return nil
	}
	clock := h.loop.Clock()
	clock.Running = true
	end := clock.Frame + n

	handle := sim.Start(ctx, sim.Unpaced(), func() bool {
		h.loop.Frame()
		if each != nil {
			each()
		}
		return clock.Frame < end
	})
	return handle.Wait()
}

func interruptible(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := cliLogger(cfg)

	hl, err := newHeadless(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := interruptible(cmd)
	defer stop()

	start := time.Now()
	err = hl.advance(ctx, runFrames, nil)
	if errors.Is(err, context.Canceled) {
		warn.Println("interrupted")
	} else if err != nil {
		return err
	}

	clock := hl.loop.Clock()
	r := hl.loop.Readout()
	printReadout(clock, r, time.Since(start))

	if pngPath != "" {
		if err := writeFile(pngPath, hl.live().EncodePNG); err != nil {
			return err
		}
		fmt.Printf("%s %s\n", subtle.Sprint("frame:"), pngPath)
	}

	if noSave {
		return nil
	}

	st := storage.New(filepath.Join(cfg.DataDir, "runs"))
	if err := st.Init(); err != nil {
		return err
	}
	defer st.Close()

	meta := storage.RunMetadata{
		Variant:   cfg.Variant,
		Timestamp: time.Now(),
		Seed:      cfg.Seed,
		Density:   clock.Density,
		Speed:     clock.Speed,
		Scale:     clock.Scale,
		Units:     clock.Units.String(),
		Width:     cfg.Width,
		Height:    cfg.Height,
		Frames:    clock.Frame,
		Final:     r,
		Network:   hl.loop.State().Graph.Stats(),
	}
	id, err := st.Save(meta, hl.loop.History())
	if err != nil {
		return err
	}
	logger.Info("run saved", "id", id, "frames", clock.Frame)
	fmt.Printf("%s %s\n", subtle.Sprint("saved:"), good.Sprint(id))
	return nil
}

func printReadout(clock *sim.Clock, r metrics.Readout, elapsed time.Duration) {
	fmt.Printf("%s %s  %s\n", brand.Sprint("spinnet"), clock.Variant,
		subtle.Sprintf("%d frames in %s", clock.Frame, elapsed.Round(time.Millisecond)))
	for _, s := range r.Slots() {
		fmt.Printf("  %-14s %s\n", subtle.Sprint(s.Name), good.Sprint(s.Text))
	}
}

func recordGIF(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := cliLogger(cfg)

	hl, err := newHeadless(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := interruptible(cmd)
	defer stop()

	rec := viz.NewRecorder(100 / cfg.FPS)
	err = hl.advance(ctx, recordFrames, func() {
		rec.CaptureRaster(hl.live().Image())
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if err := rec.Save(recordOut); err != nil {
		return err
	}
	logger.Info("recording saved", "path", recordOut, "frames", rec.Len())
	fmt.Printf("%s %s %s\n", good.Sprint("recorded"), recordOut, subtle.Sprintf("(%d frames)", rec.Len()))
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	hl, err := newHeadless(cfg, cliLogger(cfg))
	if err != nil {
		return err
	}
	ctx, stop := interruptible(cmd)
	defer stop()
	if err := hl.advance(ctx, svgFrames, nil); err != nil {
		return err
	}

	svg := export.GraphToSVG(hl.loop.State().Graph, cfg.Bounds(), hl.loop.Clock().Units)
	return writeOut(svgOut, func(w io.Writer) error {
		_, err := io.WriteString(w, svg)
		return err
	})
}

func exportJSON(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	hl, err := newHeadless(cfg, cliLogger(cfg))
	if err != nil {
		return err
	}
	ctx, stop := interruptible(cmd)
	defer stop()
	if err := hl.advance(ctx, jsonFrames, nil); err != nil {
		return err
	}

	return writeOut(jsonOut, func(w io.Writer) error {
		return export.GraphToJSON(w, hl.loop.State().Graph, hl.loop.Clock().Frame, hl.loop.Readout())
	})
}

// writeOut sends an export to path, or stdout when it is empty.
func writeOut(path string, write func(io.Writer) error) error {
	if path == "" {
		return write(os.Stdout)
	}
	if err := writeFile(path, write); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", path)
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func sweepSeeds(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	clock, err := cfg.Clock()
	if err != nil {
		return err
	}

	ctx, stop := interruptible(cmd)
	defer stop()

	start := time.Now()
	runs, err := sim.NewEnsemble(*clock, cfg.Bounds(), numRuns, cfg.Seed).Run(ctx, sweepFrames)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n\n", brand.Sprint("sweep"),
		subtle.Sprintf("%d runs × %d frames in %s", numRuns, sweepFrames, time.Since(start).Round(time.Millisecond)))
	fmt.Printf("  %-20s %6s %6s %12s %12s\n", "SEED", "EDGES", "COMP", "AREA", "EMERGENCE")

	var sumArea, sumEmergence float64
	for _, run := range runs {
		fmt.Printf("  %-20d %6d %6d %12.2f %12.3f\n", run.Seed, run.Stats.Edges, run.Stats.Components,
			run.Readout.TotalArea, run.Readout.Emergence)
		sumArea += run.Readout.TotalArea
		sumEmergence += run.Readout.Emergence
	}
	if len(runs) > 0 {
		n := float64(len(runs))
		fmt.Printf("\n  %-20s %6s %6s %12s %12s\n", subtle.Sprint("mean"), "", "",
			good.Sprintf("%.2f", sumArea/n), good.Sprintf("%.3f", sumEmergence/n))
	}
	return nil
}
