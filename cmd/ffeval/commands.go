package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/ffeval/internal/analysis"
	"github.com/san-kum/ffeval/internal/automation"
	"github.com/san-kum/ffeval/internal/compute"
	"github.com/san-kum/ffeval/internal/experiment"
	"github.com/san-kum/ffeval/internal/export"
	"github.com/san-kum/ffeval/internal/ff"
	"github.com/san-kum/ffeval/internal/physics"
	"github.com/san-kum/ffeval/internal/sim"
	"github.com/san-kum/ffeval/internal/stage"
	"github.com/san-kum/ffeval/internal/storage"
	"github.com/san-kum/ffeval/internal/tui"
	"github.com/san-kum/ffeval/internal/viz"
)

func runEvaluation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	exp := experiment.New(*cfg, experiment.NewRegistry(), logger)
	if err := exp.Setup(nil); err != nil {
		return err
	}
	sys := exp.System()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var result *sim.Result
	if useTUI {
		result, err = tui.Run(ctx, exp)
	} else {
		result, err = exp.Run(ctx)
	}
	if err != nil {
		return err
	}

	fmt.Println(viz.RenderSummary(sys.Name, exp.GetEvaluator().Tables().Summary()))
	fmt.Printf("backend %s, %d frames in %v\n\n", result.Backend, result.NumFrames(), result.Elapsed)
	fmt.Print(viz.RenderEnergies(result, 20))
	fmt.Println("\nmetrics:")
	fmt.Println(viz.RenderMetrics(result.Metrics))

	if noSave {
		return nil
	}
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		System:         sys.Name,
		Workers:        cfg.Workers,
		ParallelFrames: cfg.ParallelFrames,
	}, result)
	if err != nil {
		return err
	}
	logger.Info("saved run", "id", runID, "dir", cfg.DataDir)
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func listSystems(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tATOMS\tFRAMES\tDESCRIPTION")
	for _, name := range registry.ListSystems() {
		sys, err := registry.GetSystem(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", sys.Name, sys.Topology.NumAtoms(), len(sys.Frames), sys.Description)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSYSTEM\tTIME\tATOMS\tFRAMES\tBACKEND\tELAPSED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%v\n",
			run.ID,
			run.System,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.NumAtoms,
			run.NumFrames,
			run.Backend,
			run.Elapsed,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("system: %s\n", meta.System)
	fmt.Printf("atoms: %d  frames: %d  backend: %s  elapsed: %v\n\n", meta.NumAtoms, meta.NumFrames, meta.Backend, meta.Elapsed)
	fmt.Print(viz.RenderEnergies(result, showLimit))
	fmt.Println("\nmetrics:")
	fmt.Println(viz.RenderMetrics(meta.Metrics))
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	energies, totals, err := st.LoadEnergies(args[0])
	if err != nil {
		return err
	}
	if len(totals) < 2 {
		return fmt.Errorf("need at least two frames to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("system: %s\n", meta.System)
	fmt.Printf("frames: %d\n\n", len(totals))

	fmt.Println(asciigraph.Plot(totals,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("total energy (kcal/mol)"),
	))

	for _, c := range ff.Categories() {
		series := make([]float64, len(energies))
		flat := true
		for i, e := range energies {
			series[i] = e[c]
			if e[c] != energies[0][c] {
				flat = false
			}
		}
		if flat {
			continue
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(series,
			asciigraph.Height(6),
			asciigraph.Width(80),
			asciigraph.Caption(c.String()),
		))
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, result)
}

func exportPlot(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	if err := export.EnergyPlot(result, meta.System+" "+meta.ID, args[1]); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[1])
	return nil
}

func checkForces(cmd *cobra.Command, args []string) error {
	sys, err := loadSystem(args)
	if err != nil {
		return err
	}
	tables, err := stage.Stage(sys.Topology, sys.Params)
	if err != nil {
		return err
	}
	backend, err := experiment.NewRegistry().GetBackend(backendName, tables.NumAtoms, 0)
	if err != nil {
		return err
	}

	fmt.Printf("checking %s with %s backend, h=%g\n\n", sys.Name, backend.Name(), checkStep)
	failed := 0
	for i, f := range sys.Frames {
		report := analysis.CheckForces(tables, backend, f, checkStep)
		fmt.Println(viz.RenderCheck(i, report.MaxDeviation, report.WorstAtom, checkTol))
		if report.MaxDeviation > checkTol {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d frames exceed tolerance %g", failed, len(sys.Frames), checkTol)
	}
	return nil
}

func scanDihedralEnergy(cmd *cobra.Command, args []string) error {
	sys, err := loadSystem(args)
	if err != nil {
		return err
	}
	if len(sys.Frames) == 0 {
		return fmt.Errorf("%s has no frames", sys.Name)
	}
	tables, err := stage.Stage(sys.Topology, sys.Params)
	if err != nil {
		return err
	}

	points, err := analysis.TorsionScan(tables, compute.NewSerialBackend(), sys.Frames[0], scanDihedral, scanSteps)
	if err != nil {
		return err
	}

	d := tables.Dihedrals[scanDihedral]
	fmt.Printf("scanning dihedral %d (%d-%d-%d-%d) of %s\n\n", scanDihedral, d[0], d[1], d[2], d[3], sys.Name)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PHI\tDIHEDRAL\tVDW\tELEC\tTOTAL")
	totals := make([]float64, len(points))
	for i, p := range points {
		totals[i] = p.Energies.Total()
		fmt.Fprintf(w, "%.1f\t%.5f\t%.5f\t%.5f\t%.5f\n",
			p.Phi*180/math.Pi, p.Energies[ff.Dihedral], p.Energies[ff.VdW], p.Energies[ff.Elec], totals[i])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(totals) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(totals,
			asciigraph.Height(10),
			asciigraph.Width(72),
			asciigraph.Caption("total energy vs dihedral, -180 to 180"),
		))
	}
	return nil
}

func benchSystem(cmd *cobra.Command, args []string) error {
	sys, err := loadSystem(args)
	if err != nil {
		return err
	}
	if len(sys.Frames) == 0 {
		return fmt.Errorf("%s has no frames", sys.Name)
	}
	tables, err := stage.Stage(sys.Topology, sys.Params)
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %s (%d atoms)\n\n", sys.Name, tables.NumAtoms)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BACKEND\tEVALS\tTIME\tPER EVAL\tEVALS/SEC")

	for _, name := range compute.Backends() {
		backend, err := compute.NewBackend(name, workers)
		if err != nil {
			return err
		}
		acc := physics.NewAccumulator(tables.NumAtoms)

		start := time.Now()
		for i := 0; i < benchRepeats; i++ {
			acc.Reset()
			backend.Evaluate(tables, sys.Frames[i%len(sys.Frames)], acc)
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%s\t%d\t%v\t%v\t%.0f\n",
			name, benchRepeats, elapsed, elapsed/time.Duration(max(benchRepeats, 1)),
			float64(benchRepeats)/elapsed.Seconds())
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	logger, err := newLogger(logLevel)
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, runErr := automation.RunScenario(ctx, scenario, experiment.NewRegistry(), st, logger)

	fmt.Printf("scenario %s: %d/%d steps\n\n", scenario.Name, len(results), len(scenario.Steps))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tSYSTEM\tBACKEND\tFRAMES\tMEAN TOTAL\tELAPSED\tRUN ID")
	for i, r := range results {
		mean := 0.0
		for _, v := range r.Result.Totals {
			mean += v
		}
		if n := len(r.Result.Totals); n > 0 {
			mean /= float64(n)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.5f\t%v\t%s\n",
			i+1, r.System, r.Result.Backend, r.Result.NumFrames(), mean, r.Result.Elapsed, r.RunID)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}
