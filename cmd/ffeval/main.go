package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/ffeval/internal/config"
	"github.com/san-kum/ffeval/internal/experiment"
	"github.com/san-kum/ffeval/internal/models"
)

var (
	dataDir  string
	logLevel string
	// run
	configFile     string
	preset         string
	backendName    string
	workers        int
	parallelFrames bool
	systemFile     string
	useTUI         bool
	noSave         bool
	// show
	showLimit int
	// check
	checkStep float64
	checkTol  float64
	// scan
	scanDihedral int
	scanSteps    int
	// bench
	benchRepeats int
)

// main registers the ffeval commands and executes the root command. It exits
// with status 1 if the command returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "ffeval",
		Short:         "force-field energy and force evaluator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [system]",
		Short: "evaluate every frame of a system",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEvaluation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().StringVar(&backendName, "backend", config.DefaultBackend, "backend (auto, serial, parallel)")
	runCmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = GOMAXPROCS)")
	runCmd.Flags().BoolVar(&parallelFrames, "parallel-frames", false, "evaluate frames concurrently")
	runCmd.Flags().StringVar(&systemFile, "file", "", "system file (yaml) instead of a built-in system")
	runCmd.Flags().BoolVar(&useTUI, "tui", false, "show a progress view")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	systemsCmd := &cobra.Command{
		Use:   "systems",
		Short: "list built-in systems",
		RunE:  listSystems,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show run metadata and energies",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().IntVar(&showLimit, "limit", 20, "frames to print (0 = all)")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run energies in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportPlotCmd := &cobra.Command{
		Use:   "export-plot [run_id] [out.png|out.svg|out.pdf]",
		Short: "write an energy plot image",
		Args:  cobra.ExactArgs(2),
		RunE:  exportPlot,
	}

	checkCmd := &cobra.Command{
		Use:   "check [system]",
		Short: "compare analytic forces with finite differences",
		Args:  cobra.MaximumNArgs(1),
		RunE:  checkForces,
	}
	checkCmd.Flags().StringVar(&systemFile, "file", "", "system file (yaml)")
	checkCmd.Flags().StringVar(&backendName, "backend", config.DefaultBackend, "backend")
	checkCmd.Flags().Float64Var(&checkStep, "step", 1e-5, "displacement in Å")
	checkCmd.Flags().Float64Var(&checkTol, "tol", 1e-4, "allowed deviation in kcal/(mol Å)")

	scanCmd := &cobra.Command{
		Use:   "scan [system]",
		Short: "scan the energy along a dihedral",
		Args:  cobra.MaximumNArgs(1),
		RunE:  scanDihedralEnergy,
	}
	scanCmd.Flags().StringVar(&systemFile, "file", "", "system file (yaml)")
	scanCmd.Flags().IntVar(&scanDihedral, "dihedral", 0, "dihedral index")
	scanCmd.Flags().IntVar(&scanSteps, "steps", 36, "number of angles")

	benchCmd := &cobra.Command{
		Use:   "bench [system]",
		Short: "benchmark backends",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchSystem,
	}
	benchCmd.Flags().StringVar(&systemFile, "file", "", "system file (yaml)")
	benchCmd.Flags().IntVar(&benchRepeats, "repeats", 200, "evaluations per backend")
	benchCmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines for the parallel backend")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted sequence of evaluations",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available run presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-10s backend=%s parallel_frames=%t metrics=%v\n", name, p.Backend, p.ParallelFrames, p.Metrics)
			}
		},
	}

	rootCmd.AddCommand(runCmd, systemsCmd, listCmd, showCmd, plotCmd, exportJSONCmd, exportPlotCmd, checkCmd, scanCmd, benchCmd, batchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// resolveConfig layers defaults, preset, config file and changed flags, in
// that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = backendName
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("parallel-frames") {
		cfg.ParallelFrames = parallelFrames
	}
	if flags.Changed("file") {
		cfg.File = systemFile
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if len(args) > 0 {
		cfg.System = args[0]
		cfg.File = ""
	}
	return cfg, cfg.Validate()
}

func newLogger(level string) (*slog.Logger, error) {
	cfg := config.Config{LogLevel: level}
	lvl, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

// loadSystem returns the --file system if given, else the named built-in.
func loadSystem(args []string) (*models.System, error) {
	if systemFile != "" {
		return models.LoadFile(systemFile)
	}
	name := config.DefaultSystem
	if len(args) > 0 {
		name = args[0]
	}
	return experiment.NewRegistry().GetSystem(name)
}
