package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/spinnet/internal/config"
	"github.com/san-kum/spinnet/internal/export"
	"github.com/san-kum/spinnet/internal/storage"
	"github.com/spf13/cobra"
)

func openStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	st := storage.New(filepath.Join(cfg.DataDir, "runs"))
	if err := st.Init(); err != nil {
		return nil, err
	}
	return st, nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVARIANT\tTIME\tSEED\tNODES\tFRAMES\tAREA")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%.2f\n",
			r.ID, r.Variant, r.Timestamp.Format("2006-01-02 15:04"),
			r.Seed, r.Density, r.Frames, r.Final.TotalArea)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	runID := args[0]
	meta, err := st.Load(runID)
	if err != nil {
		return fmt.Errorf("run %s: %w", runID, err)
	}
	samples, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("run %s has no samples", runID)
	}

	areas := make([]float64, len(samples))
	for i, s := range samples {
		areas[i] = s.TotalArea
	}

	caption := fmt.Sprintf("total area: %s seed %d", meta.Variant, meta.Seed)
	fmt.Println(asciigraph.Plot(areas, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption(caption)))

	if plotSVG == "" {
		return nil
	}
	svg := export.SeriesToSVG(areas, 800, 300, "#00ffaa")
	if err := writeFile(plotSVG, func(w io.Writer) error {
		_, err := io.WriteString(w, svg)
		return err
	}); err != nil {
		return err
	}
	fmt.Printf("%s %s\n", subtle.Sprint("chart:"), plotSVG)
	return nil
}

func listPresets() {
	fmt.Println(brand.Sprint("presets"))
	for _, name := range config.ListPresets() {
		fmt.Printf("  %-14s %s\n", name, subtle.Sprint(config.Presets[name].Description))
	}
}
