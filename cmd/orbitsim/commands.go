package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitsim/internal/analysis"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/export"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/optim"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/spf13/cobra"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := cfg.Build()
	if err != nil {
		return err
	}

	s.AddMetric(metrics.NewEnergyDrift())
	s.AddMetric(metrics.NewStability(float32(escapeRadius)))
	s.AddMetric(metrics.NewOverlaps())
	rec := analysis.NewRecorder(planetNames(cfg.Scenario)...)
	s.AddObserver(rec)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("running", "ticks", cfg.Ticks, "bodies", len(s.Bodies()), "order", s.Config().Order)
	start := time.Now()
	res, err := s.Run(ctx, cfg.Ticks)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("finished", "ticks", s.Tick(), "elapsed", time.Since(start))
	for _, e := range res.Errors {
		logger.Warn("simulation diverged", "error", e)
	}

	if svgPath != "" {
		if err := os.WriteFile(svgPath, []byte(export.TrailsSVG(s, 800)), 0644); err != nil {
			return err
		}
		logger.Info("trails written", "path", svgPath)
	}

	if jsonOut {
		return export.WriteJSON(os.Stdout, export.NewReport(s, cfg.Seed, res))
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tDISTANCE\tSPEED\tBOUND\tMASS")
	center := s.Star().Position()
	for i, b := range s.Bodies() {
		fmt.Fprintf(w, "%s\t%.1f\t%.2f\t%.2f\t%.1f\n",
			b.Name(),
			b.Position().Sub(center).Len(),
			b.Speed(),
			s.VelocityBound(i),
			b.Mass(),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("metrics:")
	for _, name := range []string{"energy_drift", "stability", "overlaps"} {
		fmt.Printf("  %-14s %.6f\n", name, res.Metrics[name])
	}
	if n := len(s.Overlaps()); n > 0 {
		fmt.Printf("  %d overlapping pairs at the last tick\n", n)
	}

	for _, name := range rec.Names() {
		data := rec.Distances(name)
		if len(data) < 2 {
			continue
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(name+" distance to star"),
		))
	}
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if numRuns <= 0 {
		return fmt.Errorf("runs must be positive, got %d", numRuns)
	}

	ens := sim.NewEnsemble(instrumented(cfg), numRuns, cfg.Seed)
	if parallel > 0 {
		ens.SetLimit(parallel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("ensemble", "runs", numRuns, "ticks", cfg.Ticks, "first_seed", cfg.Seed)
	start := time.Now()
	results, err := ens.Run(ctx, cfg.Ticks)
	if err != nil {
		return err
	}
	logger.Info("ensemble finished", "elapsed", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tTICKS\tSTABILITY\tENERGY DRIFT\tOVERLAPS\tDIVERGED")
	stability := make([]float64, 0, len(results))
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%.4f\t%.4g\t%.0f\t%v\n",
			cfg.Seed+int64(i),
			r.Ticks,
			r.Metrics["stability"],
			r.Metrics["energy_drift"],
			r.Metrics["overlaps"],
			len(r.Errors) > 0,
		)
		stability = append(stability, r.Metrics["stability"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	mean, std := meanStd(stability)
	fmt.Printf("\nstability: mean %.4f, std %.4f\n", mean, std)
	return nil
}

func runPeriod(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := cfg.Build()
	if err != nil {
		return err
	}

	names := bodyNames
	if len(names) == 0 {
		names = planetNames(cfg.Scenario)
	}
	if err := checkOrbiting(s, names); err != nil {
		return err
	}
	rec := analysis.NewRecorder(names...)
	s.AddObserver(rec)

	if _, err := s.Run(context.Background(), cfg.Ticks); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tPERIOD (ticks)\tMEAN DISTANCE")
	for _, name := range rec.Names() {
		period, err := analysis.DominantPeriod(rec.Offsets(name))
		mean, _ := meanStd(rec.Distances(name))
		if err != nil {
			fmt.Fprintf(w, "%s\t%v\t%.1f\n", name, err, mean)
			continue
		}
		fmt.Fprintf(w, "%s\t%.1f\t%.1f\n", name, period, mean)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, name := range rec.Names() {
		ps := analysis.PowerSpectrum(rec.Offsets(name))
		if len(ps) < 2 {
			continue
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(ps[1:],
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(name+" spectrum"),
		))
	}

	return nil
}

// checkOrbiting rejects names that are not orbiting bodies of s.
func checkOrbiting(s *sim.Simulator, names []string) error {
	for _, name := range names {
		b, ok := config.Find(s, name)
		if !ok {
			return fmt.Errorf("no body named %q", name)
		}
		if b == s.Star() {
			return fmt.Errorf("%q is the star and has no orbit", name)
		}
	}
	return nil
}

// instrumented builds ensemble members carrying the standard metrics.
func instrumented(cfg *config.Config) sim.Builder {
	return func(seed int64) (*sim.Simulator, error) {
		s, err := cfg.BuildWithSeed(seed)
		if err != nil {
			return nil, err
		}
		s.AddMetric(metrics.NewStability(float32(escapeRadius)))
		s.AddMetric(metrics.NewEnergyDrift())
		s.AddMetric(metrics.NewOverlaps())
		return s, nil
	}
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(axes) == 0 {
		return fmt.Errorf("at least one --param axis is required")
	}
	if sweepRuns <= 0 {
		return fmt.Errorf("runs must be positive, got %d", sweepRuns)
	}

	names := make([]string, 0, len(axes))
	ranges := make([][]float64, 0, len(axes))
	for _, a := range axes {
		name, values, err := optim.ParseAxis(a)
		if err != nil {
			return err
		}
		if err := config.DefaultConfig().SetConstant(name, 0); err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	grid := optim.NewGridSearch(names, ranges)
	if !minimize {
		grid.Maximize()
	}

	eval := func(ctx context.Context, params map[string]float64) (float64, error) {
		cfg := *base
		for name, v := range params {
			if err := cfg.SetConstant(name, v); err != nil {
				return 0, err
			}
		}
		if err := cfg.Validate(); err != nil {
			return 0, err
		}
		results, err := sim.NewEnsemble(instrumented(&cfg), sweepRuns, cfg.Seed).Run(ctx, cfg.Ticks)
		if err != nil {
			return 0, err
		}
		vals := make([]float64, len(results))
		for i, r := range results {
			v, ok := r.Metrics[metricName]
			if !ok {
				return 0, fmt.Errorf("unknown metric %q", metricName)
			}
			vals[i] = v
		}
		mean, _ := meanStd(vals)
		logger.Debug("grid point", "params", params, metricName, mean)
		return mean, nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("sweep", "points", grid.Size(), "runs", sweepRuns, "metric", metricName)
	best, bestVal, points, err := grid.Search(ctx, eval)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(strings.Join(names, "\t")), strings.ToUpper(metricName))
	for _, p := range points {
		for _, name := range names {
			fmt.Fprintf(w, "%g\t", p.Params[name])
		}
		if p.Err != nil {
			fmt.Fprintf(w, "error: %v\n", p.Err)
			continue
		}
		fmt.Fprintf(w, "%.4g\n", p.Value)
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	if err != nil {
		return err
	}

	fmt.Printf("\nbest %s = %.4g at", metricName, bestVal)
	for _, name := range names {
		fmt.Printf(" %s=%g", name, best[name])
	}
	fmt.Println()
	return nil
}

func meanStd(data []float64) (float64, float64) {
	if len(data) == 0 {
		return 0, 0
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))
	variance := 0.0
	for _, v := range data {
		variance += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(variance / float64(len(data)))
}
