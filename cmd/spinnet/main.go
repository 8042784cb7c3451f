package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/san-kum/spinnet/internal/config"
	"github.com/san-kum/spinnet/internal/logging"
	"github.com/san-kum/spinnet/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configPath string
	presetName string
	seed       int64
	nodes      int
	speed      float64
	hbar       float64
	variant    string
	mode       string
	units      string
	width      float64
	height     float64
	fps        int
	dataDir    string
	logLevel   string
	theme      string

	runFrames int
	noSave    bool
	pngPath   string

	recordFrames int
	recordOut    string

	svgFrames  int
	svgOut     string
	jsonFrames int
	jsonOut    string

	plotSVG string

	sweepFrames int
	numRuns     int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "spinnet",
	Short: "spin network visualizer",
	Long:  "animated spin networks with live geometric readouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		logger, closer := tuiLogger(cfg)
		defer closer()
		return viz.RunInteractive(cfg, logger)
	},
}

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "open the live view directly",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		logger, closer := tuiLogger(cfg)
		defer closer()
		return viz.RunLive(cfg, logger)
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run headless and print the readout",
	RunE:  runHeadless,
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "render an animated gif headless",
	RunE:  recordGIF,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list saved runs",
	RunE:  listRuns,
}

var plotCmd = &cobra.Command{
	Use:   "plot <run-id>",
	Short: "plot total area of a saved run",
	Args:  cobra.ExactArgs(1),
	RunE:  plotRun,
}

var exportSVGCmd = &cobra.Command{
	Use:   "export-svg",
	Short: "write the network as svg",
	RunE:  exportSVG,
}

var exportJSONCmd = &cobra.Command{
	Use:   "export-json",
	Short: "write the network and readout as json",
	RunE:  exportJSON,
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "list presets",
	Run: func(cmd *cobra.Command, args []string) {
		listPresets()
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "run many seeds in parallel and summarise",
	RunE:  sweepSeeds,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "config file (yaml or toml)")
	pf.StringVarP(&presetName, "preset", "p", "", "start from a preset")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = time)")
	pf.IntVarP(&nodes, "nodes", "n", 0, "node count")
	pf.Float64Var(&speed, "speed", 0, "speed multiplier")
	pf.Float64Var(&hbar, "hbar", 0, "ħ scale (extended only)")
	pf.StringVar(&variant, "variant", "", "baseline or extended")
	pf.StringVar(&mode, "mode", "", "primary or derived")
	pf.StringVar(&units, "units", "", "natural or physical")
	pf.Float64Var(&width, "width", 0, "surface width")
	pf.Float64Var(&height, "height", 0, "surface height")
	pf.IntVar(&fps, "fps", 0, "frame rate")
	pf.StringVar(&dataDir, "data", "", "data directory")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&theme, "theme", "", "tui theme")

	runCmd.Flags().IntVarP(&runFrames, "frames", "f", 600, "frames to run")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "don't save the run")
	runCmd.Flags().StringVar(&pngPath, "png", "", "write the final frame as png")

	recordCmd.Flags().IntVarP(&recordFrames, "frames", "f", 240, "frames to record")
	recordCmd.Flags().StringVarP(&recordOut, "out", "o", "spinnet.gif", "output gif")

	plotCmd.Flags().StringVar(&plotSVG, "svg", "", "also write the chart as svg")

	exportSVGCmd.Flags().IntVarP(&svgFrames, "frames", "f", 0, "frames to advance first")
	exportSVGCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output file (default stdout)")
	exportJSONCmd.Flags().IntVarP(&jsonFrames, "frames", "f", 0, "frames to advance first")
	exportJSONCmd.Flags().StringVarP(&jsonOut, "out", "o", "", "output file (default stdout)")

	sweepCmd.Flags().IntVarP(&sweepFrames, "frames", "f", 600, "frames per run")
	sweepCmd.Flags().IntVar(&numRuns, "runs", 8, "number of seeds")

	rootCmd.AddCommand(liveCmd, runCmd, recordCmd, listCmd, plotCmd,
		exportSVGCmd, exportJSONCmd, presetsCmd, sweepCmd)
}

// resolveConfig layers the config file, the preset and explicitly set flags,
// in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if presetName != "" {
		p, ok := config.Presets[presetName]
		if !ok {
			return nil, fmt.Errorf("unknown preset: %s", presetName)
		}
		p.Apply(cfg)
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("nodes") {
		cfg.Density = nodes
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("hbar") {
		cfg.Scale = hbar
	}
	if flags.Changed("variant") {
		cfg.Variant = variant
	}
	if flags.Changed("mode") {
		cfg.Mode = mode
	}
	if flags.Changed("units") {
		cfg.Units = units
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func cliLogger(cfg *config.Config) *slog.Logger {
	return logging.NewLogger(cfg.LogLevel, os.Stderr)
}

// tuiLogger writes to a file under the data dir since the terminal belongs
// to the UI. Logging is dropped when the file can't be opened.
func tuiLogger(cfg *config.Config) (*slog.Logger, func()) {
	logger, c, err := logging.OpenFile(cfg.LogLevel, filepath.Join(cfg.DataDir, "spinnet.log"))
	if err != nil {
		return logging.Discard(), func() {}
	}
	return logger, func() { c.Close() }
}
