/*
 * main.go, part of goneo.
 *
 * Copyright 2025 Federico Zahariev <fzahari@iastate.edu>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//goneo is the command-line front end to the goneo library: it runs RT-NEO
//and RT-cNEO simulations of the built-in FHF- model system, writes
//trajectories and prints summary analyses.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	neo "github.com/fzahari/goneo"
	"github.com/fzahari/goneo/analysis"
	"github.com/fzahari/goneo/dynamics"
	"github.com/fzahari/goneo/field"
	"github.com/fzahari/goneo/model"
	"github.com/fzahari/goneo/neoplot"
	"github.com/fzahari/goneo/traj"
)

var (
	configFile string
	dt         float64
	maxTime    float64
	strength   float64
	tau        float64
	ffdist     float64
	fockMode   string
	fockEvery  int
	fieldShape string
	center     float64
	width      float64
	rampTime   float64
	onTime     float64
	offTime    float64
	gridPoints int
	outFile    string
	plotFile   string
	quiet      bool
)

func main() {
	root := &cobra.Command{
		Use:   "goneo",
		Short: "Real-time (constrained) nuclear-electronic orbital dynamics",
		Long: `goneo propagates the FHF- model system in real time.

"goneo run pure" runs unconstrained RT-NEO dynamics; "goneo run cneo" adds
the constraint potential that extracts a smooth classical trajectory
(RT-cNEO); "goneo compare" runs both and reports comparison metrics.`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&configFile, "config", "c", "", "YAML parameter file (flags override it)")
	pf.Float64Var(&dt, "dt", 0.1, "time step (au)")
	pf.Float64Var(&maxTime, "max-time", 500.0, "total simulation time (au)")
	pf.Float64Var(&strength, "field", 0.02, "field strength (au)")
	pf.Float64Var(&tau, "tau", 20.0, "force smoothing time constant (au)")
	pf.Float64Var(&ffdist, "ff-distance", 2.3, "F-F distance (Angstrom)")
	pf.StringVar(&fockMode, "fock", "static", "Fock-update mode: static, periodic or full")
	pf.IntVar(&fockEvery, "fock-every", 10, "rebuild period for periodic Fock mode")
	pf.StringVar(&fieldShape, "shape", "gaussian", "field shape: constant, pulsed, linear, cosine or gaussian")
	pf.Float64Var(&center, "center", 50.0, "pulse center (au), gaussian shape")
	pf.Float64Var(&width, "width", 20.0, "pulse width (au), gaussian shape")
	pf.Float64Var(&rampTime, "ramp", 50.0, "ramp time (au), linear/cosine shapes")
	pf.Float64Var(&onTime, "on", 0.0, "turn-on time (au), pulsed shape")
	pf.Float64Var(&offTime, "off", 100.0, "turn-off time (au), pulsed shape")
	pf.IntVar(&gridPoints, "points", 64, "proton grid points for the model backend")
	pf.StringVar(&outFile, "out", "", "trajectory output file (.csv, .csv.gz or .csv.zst)")
	pf.StringVar(&plotFile, "plot", "", "plot output file (.png, .pdf, .svg)")
	pf.BoolVarP(&quiet, "quiet", "q", false, "suppress the terminal trajectory graph")

	runCmd := &cobra.Command{
		Use:       "run [pure|cneo]",
		Short:     "Run a single simulation",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"pure", "cneo"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOne(cmd, args[0] == "cneo")
		},
	}

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "Run RT-NEO and RT-cNEO and compare them",
		Args:  cobra.NoArgs,
		RunE:  runCompare,
	}

	root.AddCommand(runCmd, compareCmd)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

//setup assembles parameters, geometry, backend and field from the config
//file and flags.
func setup(cmd *cobra.Command) (*dynamics.Engine, *neo.Params, error) {
	var params *neo.Params
	var err error
	if configFile != "" {
		params, err = neo.LoadParams(configFile)
		if err != nil {
			return nil, nil, err
		}
	} else {
		params = neo.DefaultParams()
	}
	//Flags override the file only when set on the command line.
	flagSet := cmd.Flags()
	if flagSet.Changed("dt") || configFile == "" {
		params.TimeStep = dt
	}
	if flagSet.Changed("max-time") || configFile == "" {
		params.MaxTime = maxTime
	}
	if flagSet.Changed("field") || configFile == "" {
		params.FieldStrength = strength
	}
	if flagSet.Changed("tau") || configFile == "" {
		params.SmoothingTime = tau
	}
	if flagSet.Changed("ff-distance") || configFile == "" {
		params.FFDistance = ffdist
	}
	if flagSet.Changed("fock") || configFile == "" {
		params.FockMode = neo.FockMode(fockMode)
	}
	if flagSet.Changed("fock-every") {
		params.FockRebuildEvery = fockEvery
	}
	if params.FockMode == neo.FockPeriodic && params.FockRebuildEvery == 0 {
		params.FockRebuildEvery = fockEvery
	}
	if err := params.Validate(); err != nil {
		return nil, nil, err
	}

	geom, err := neo.NewFHF(params.FFDistance)
	if err != nil {
		return nil, nil, err
	}
	cfg := model.DefaultConfig()
	cfg.Points = gridPoints
	oracle, err := model.NewOracle(cfg)
	if err != nil {
		return nil, nil, err
	}
	fs, err := makeField(params.FieldStrength)
	if err != nil {
		return nil, nil, err
	}
	engine, err := dynamics.NewEngine(params, oracle, geom, fs)
	if err != nil {
		return nil, nil, err
	}
	return engine, params, nil
}

func makeField(strength float64) (field.Strategy, error) {
	switch fieldShape {
	case "constant":
		return field.NewConstant(strength), nil
	case "pulsed":
		return field.NewPulsed(strength, onTime, offTime)
	case "linear":
		return field.NewLinearRamp(rampTime, strength)
	case "cosine":
		return field.NewCosineRamp(rampTime, strength)
	case "gaussian":
		return field.NewGaussianPulse(center, width, strength)
	}
	return nil, fmt.Errorf("unknown field shape %q", fieldShape)
}

func runOne(cmd *cobra.Command, constrained bool) error {
	engine, params, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	method := "RT-NEO"
	run := engine.RunPure
	if constrained {
		method = "RT-cNEO"
		run = engine.RunConstrained
	}
	log.Printf("running %s: dt=%.3g au, T=%.4g au, tau=%.4g au, field=%.4g au, fock=%s",
		method, params.TimeStep, params.MaxTime, params.SmoothingTime, params.FieldStrength, params.FockMode)

	res, err := run(ctx)
	if err != nil {
		//A partial trajectory is still worth keeping.
		if res != nil && len(res.Steps) > 0 {
			log.Printf("run ended early after %d steps: %v", len(res.Steps), err)
		} else {
			return err
		}
	}
	report(res)
	return emit(res)
}

func runCompare(cmd *cobra.Command, args []string) error {
	engine, params, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("comparison run: dt=%.3g au, T=%.4g au, tau=%.4g au", params.TimeStep, params.MaxTime, params.SmoothingTime)
	pure, err := engine.RunPure(ctx)
	if err != nil {
		return err
	}
	constrained, err := engine.RunConstrained(ctx)
	if err != nil {
		return err
	}
	report(pure)
	report(constrained)

	cmp, err := analysis.Compare(pure, constrained)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "smoothness ratio\t%.3f\n", cmp.SmoothnessRatio)
	fmt.Fprintf(tw, "final position difference\t%.4f A\n", cmp.FinalPositionDiff)
	fmt.Fprintf(tw, "trajectory correlation\t%.4f\n", cmp.Correlation)
	fmt.Fprintf(tw, "energy drift (pure)\t%.3e\n", cmp.PureDrift)
	fmt.Fprintf(tw, "energy drift (constrained)\t%.3e\n", cmp.ConstrainedDrift)
	tw.Flush()

	if plotFile != "" {
		if err := neoplot.ComparePositions(pure, constrained, plotFile); err != nil {
			return err
		}
		log.Printf("comparison plot saved to %s", plotFile)
	}
	return nil
}

//report prints the summary and, unless quiet, a terminal graph of the
//position trajectory.
func report(res *dynamics.Result) {
	fmt.Println(analysis.Analyze(res))
	if quiet || len(res.Steps) < 2 {
		return
	}
	fmt.Println(asciigraph.Plot(res.Positions(),
		asciigraph.Height(10),
		asciigraph.Caption(fmt.Sprintf("%s proton position (A) vs step", res.Method))))
}

//emit writes the trajectory and plot files if requested.
func emit(res *dynamics.Result) error {
	if outFile != "" {
		w, err := traj.NewWriter(outFile)
		if err != nil {
			return err
		}
		if err := w.WriteResult(res); err != nil {
			w.Close()
			return err
		}
		if err := w.Close(); err != nil {
			return err
		}
		log.Printf("trajectory (%d steps) saved to %s", len(res.Steps), outFile)
	}
	if plotFile != "" {
		if err := neoplot.Positions(res, plotFile); err != nil {
			return err
		}
		log.Printf("position plot saved to %s", plotFile)
	}
	return nil
}
