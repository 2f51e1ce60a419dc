package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	logFormat  string
	// Dataset and scheduling
	datasetPath string
	demoNodes   int
	seed        int64
	dt          float64
	frames      int
	frameRate   int
	// Layout constants
	repulsion      float64
	springLength   float64
	springStrength float64
	centering      float64
	damping        float64
	initRange      float64
	theta          float64
	// Command specific
	resumeRun   string
	noSave      bool
	themeName   string
	watchFor    time.Duration
	benchRuns   int
	benchLimit  int
	outPath     string
	svgWidth    int
	svgHeight   int
	rotX        float64
	rotY        float64
	sweepGrid   []string
	sweepMetric string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "papergraph",
		Short:        "3D force-directed layout for paper citation graphs",
		SilenceUsage: true,
		RunE:         runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".papergraph", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")
	addLayoutFlags(rootCmd)
	rootCmd.Flags().StringVar(&themeName, "theme", "nebula", "colour theme")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless layout and store it",
		Args:  cobra.NoArgs,
		RunE:  runLayout,
	}
	addLayoutFlags(runCmd)
	runCmd.Flags().StringVar(&resumeRun, "resume", "", "start from the positions of a stored run")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the result")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive 3D layout in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addLayoutFlags(liveCmd)
	liveCmd.Flags().StringVar(&themeName, "theme", "nebula", "colour theme")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "run the layout in real time and log its progress",
		Args:  cobra.NoArgs,
		RunE:  runWatch,
	}
	addLayoutFlags(watchCmd)
	watchCmd.Flags().DurationVar(&watchFor, "for", 10*time.Second, "how long to run (0 runs until interrupted)")
	watchCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the result")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "lay out the same graph with several seeds in parallel",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	addLayoutFlags(benchCmd)
	benchCmd.Flags().IntVar(&benchRuns, "runs", 4, "number of seeds")
	benchCmd.Flags().IntVar(&benchLimit, "parallel", 0, "concurrent runs (0 = GOMAXPROCS)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid search layout constants against a run metric",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addLayoutFlags(sweepCmd)
	sweepCmd.Flags().StringArrayVar(&sweepGrid, "grid", nil, "parameter values, e.g. repulsion=100,150,200 (repeatable)")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "edge_strain", "metric to minimize")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the energy curve of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored layout as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a stored layout to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 1200, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 900, "image height")
	exportSVGCmd.Flags().Float64Var(&rotX, "rot-x", 0.35, "camera rotation around X (radians)")
	exportSVGCmd.Flags().Float64Var(&rotY, "rot-y", 0.6, "camera rotation around Y (radians)")

	deleteCmd := &cobra.Command{
		Use:   "delete [run_id]",
		Short: "delete a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  deleteRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	demoCmd := &cobra.Command{
		Use:   "demo [path]",
		Short: "write the demo corpus to a .json, .jsonl or .yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  writeDemo,
	}
	demoCmd.Flags().IntVar(&demoNodes, "nodes", 60, "number of papers")
	demoCmd.Flags().Int64Var(&seed, "seed", 42, "random seed")

	rootCmd.AddCommand(runCmd, liveCmd, watchCmd, benchCmd, sweepCmd, listCmd, plotCmd, exportJSONCmd, exportSVGCmd, deleteCmd, presetsCmd, demoCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addLayoutFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&datasetPath, "dataset", "", "graph file (.json, .jsonl, .yaml); empty uses the demo corpus")
	f.IntVar(&demoNodes, "nodes", 60, "demo corpus size")
	f.Int64Var(&seed, "seed", 42, "random seed")
	f.Float64Var(&dt, "dt", 0.016, "frame delta for headless runs")
	f.IntVar(&frames, "frames", 600, "frames for headless runs")
	f.IntVar(&frameRate, "fps", 30, "frame rate")
	f.Float64Var(&repulsion, "repulsion", 150, "repulsion constant")
	f.Float64Var(&springLength, "spring-length", 50, "spring rest length")
	f.Float64Var(&springStrength, "spring-strength", 0.01, "spring constant")
	f.Float64Var(&centering, "centering", 0.001, "centering constant")
	f.Float64Var(&damping, "damping", 0.95, "velocity damping per tick")
	f.Float64Var(&initRange, "init-range", 100, "half-width of the initial cube")
	f.Float64Var(&theta, "theta", 0, "Barnes-Hut opening angle (0 = exact)")
}
