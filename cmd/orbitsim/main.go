package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/gui"
	"github.com/san-kum/orbitsim/internal/scenario"
	"github.com/san-kum/orbitsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	seed       int64
	ticks      int
	order      string
	workers    int
	freeStar   bool
	frameRate  int
	logLevel   string

	svgPath      string
	jsonOut      bool
	escapeRadius float64
	numRuns      int
	sweepRuns    int
	parallel     int
	bodyNames    []string
	axes         []string
	metricName   string
	minimize     bool

	logger hclog.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "orbitsim",
		Short:         "central-star n-body gravity sandbox",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = hclog.New(&hclog.LoggerOptions{
				Name:   "orbitsim",
				Level:  hclog.LevelFromString(logLevel),
				Output: os.Stderr,
			})
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "YAML config file (overrides preset)")
	pf.StringVar(&preset, "preset", "", "named preset (see `orbitsim presets`)")
	pf.Int64Var(&seed, "seed", 0, "random seed for the asteroid belt")
	pf.IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")
	pf.StringVar(&order, "order", "sequential", "update order: sequential or synchronized")
	pf.IntVar(&workers, "workers", config.DefaultWorkers, "force workers for synchronized order")
	pf.BoolVar(&freeStar, "free-star", false, "let the star feel the bodies' pull")
	pf.IntVar(&frameRate, "fps", config.DefaultFrameRate, "frame rate for live and gui")
	pf.StringVar(&logLevel, "log-level", "info", "log level: trace, debug, info, warn, error")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and print a summary",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write a top-down trail picture to this file")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "print the summary as JSON")
	runCmd.Flags().Float64Var(&escapeRadius, "escape-radius", 3000, "distance counted as escaped for the stability metric")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the simulation in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			s, err := cfg.Build()
			if err != nil {
				return err
			}
			return viz.Run(s, title(), cfg.FrameRate)
		},
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "watch the simulation in a 3D window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			s, err := cfg.Build()
			if err != nil {
				return err
			}
			gui.Run(s, title(), cfg.FrameRate)
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-10s %d planets, %d belt bodies, %s, star %s\n",
					name, len(cfg.Scenario.Planets), cfg.Scenario.Belt.Count, cfg.Order, starMode(cfg.StarIsFixed))
			}
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the resolved configuration as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			logger.Info("config written", "path", args[0])
			return nil
		},
	}

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run many seeded belts and compare their stability",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 8, "number of seeds")
	ensembleCmd.Flags().IntVar(&parallel, "parallel", 0, "members running at once (0 = unlimited)")
	ensembleCmd.Flags().Float64Var(&escapeRadius, "escape-radius", 3000, "distance counted as escaped")

	periodCmd := &cobra.Command{
		Use:   "period",
		Short: "estimate orbital periods from the radial motion",
		Args:  cobra.NoArgs,
		RunE:  runPeriod,
	}
	periodCmd.Flags().StringSliceVar(&bodyNames, "body", nil, "bodies to analyse (default: all planets)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid-search physics constants by ensemble metric",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringArrayVar(&axes, "param", nil, "axis as name=v1,v2,... (repeatable)")
	sweepCmd.Flags().StringVar(&metricName, "metric", "stability", "metric to optimise: stability, energy_drift, overlaps")
	sweepCmd.Flags().BoolVar(&minimize, "minimize", false, "prefer the smallest metric value")
	sweepCmd.Flags().IntVar(&sweepRuns, "runs", 4, "seeds per grid point")
	sweepCmd.Flags().Float64Var(&escapeRadius, "escape-radius", 3000, "distance counted as escaped")

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, presetsCmd, initCmd, ensembleCmd, periodCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig resolves defaults, then the preset, then the config file, then
// any flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
		logger.Debug("preset loaded", "name", preset)
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		logger.Debug("config loaded", "path", configFile)
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("ticks") {
		cfg.Ticks = ticks
	}
	if flags.Changed("order") {
		cfg.Order = order
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("free-star") {
		cfg.StarIsFixed = !freeStar
	}
	if flags.Changed("fps") {
		cfg.FrameRate = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("config resolved", "ticks", cfg.Ticks, "seed", cfg.Seed, "order", cfg.Order,
		"star_fixed", cfg.StarIsFixed, "bodies", len(cfg.Scenario.Planets)+cfg.Scenario.Belt.Count)
	return cfg, nil
}

func title() string {
	if preset != "" {
		return "orbitsim :: " + preset
	}
	return "orbitsim"
}

func starMode(fixed bool) string {
	if fixed {
		return "fixed"
	}
	return "free"
}

func planetNames(spec scenario.Spec) []string {
	names := make([]string, 0, len(spec.Planets))
	for i, p := range spec.Planets {
		if p.Name == "" {
			names = append(names, fmt.Sprintf("planet-%d", i+1))
			continue
		}
		names = append(names, p.Name)
	}
	return names
}
