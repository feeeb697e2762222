/*
 * engine_test.go, part of goneo.
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

package dynamics

import (
	"context"
	"math"
	"testing"

	neo "github.com/fzahari/goneo"
	"github.com/fzahari/goneo/field"
	"github.com/fzahari/goneo/model"
)

func testOracle(Te *testing.T) *model.Oracle {
	cfg := model.DefaultConfig()
	cfg.Points = 32
	cfg.Levels = 3
	o, err := model.NewOracle(cfg)
	if err != nil {
		Te.Fatal(err)
	}
	return o
}

func testParams(dt, maxTime, tau, strength float64) *neo.Params {
	p := neo.DefaultParams()
	p.TimeStep = dt
	p.MaxTime = maxTime
	p.SmoothingTime = tau
	p.FieldStrength = strength
	return p
}

func testEngine(Te *testing.T, p *neo.Params, fs field.Strategy) *Engine {
	geom, err := neo.NewFHF(p.FFDistance)
	if err != nil {
		Te.Fatal(err)
	}
	e, err := NewEngine(p, testOracle(Te), geom, fs)
	if err != nil {
		Te.Fatal(err)
	}
	return e
}

func TestEngineRejectsBadConfig(Te *testing.T) {
	geom, _ := neo.NewFHF(2.3)
	p := testParams(-0.1, 10, 20, 0)
	if _, err := NewEngine(p, testOracle(Te), geom, nil); err == nil {
		Te.Error("negative time step accepted")
	}
	if _, err := NewEngine(testParams(0.1, 10, 20, 0), nil, geom, nil); err == nil {
		Te.Error("nil oracle accepted")
	}
	classical := &neo.Geometry{Atoms: []*neo.Atom{{Symbol: "F"}}}
	if _, err := NewEngine(testParams(0.1, 10, 20, 0), testOracle(Te), classical, nil); err == nil {
		Te.Error("geometry without quantum nucleus accepted")
	}
}

//With no field and no constraint the Hamiltonians are time-independent, so
//the total energy, traces and Hermiticity must all hold across the run, and
//the symmetric double well must produce no spurious transfer.
func TestPureRunConservation(Te *testing.T) {
	e := testEngine(Te, testParams(0.1, 20, 20, 0), field.NewConstant(0))
	res, err := e.RunPure(context.Background())
	if err != nil {
		Te.Fatal(err)
	}
	if res.Status != Completed {
		Te.Fatalf("status: %s", res.Status)
	}
	if want := 200; len(res.Steps) != want {
		Te.Fatalf("steps: got %d, want %d", len(res.Steps), want)
	}
	e0 := res.Steps[0].TotalEnergy
	var meanPos float64
	for i, s := range res.Steps {
		if d := math.Abs(s.TotalEnergy - e0); d > 1e-9 {
			Te.Fatalf("step %d: energy drift %v", i, d)
		}
		if s.TraceDeviation > 1e-8 {
			Te.Fatalf("step %d: trace deviation %v", i, s.TraceDeviation)
		}
		if s.HermDeviation > 1e-8 {
			Te.Fatalf("step %d: hermiticity deviation %v", i, s.HermDeviation)
		}
		if s.ConstraintForce != 0 {
			Te.Fatalf("step %d: nonzero constraint in a pure run", i)
		}
		meanPos += s.QuantumPosition
	}
	meanPos /= float64(len(res.Steps))
	if math.Abs(meanPos) > 1e-6 {
		Te.Errorf("symmetric well with zero field drifted: mean position %v", meanPos)
	}
}

//A constant field tilts the double well and must shift the time-averaged
//position measurably toward the lower side.
func TestConstantFieldBreaksSymmetry(Te *testing.T) {
	e := testEngine(Te, testParams(0.1, 20, 20, 0.02), field.NewConstant(0.02))
	res, err := e.RunPure(context.Background())
	if err != nil {
		Te.Fatal(err)
	}
	var mean float64
	for _, s := range res.Steps {
		mean += s.QuantumPosition
	}
	mean /= float64(len(res.Steps))
	//The +E*x term lowers the well on the negative side.
	if mean > -1e-4 {
		Te.Errorf("field did not shift the trajectory: mean position %v", mean)
	}
}

//Nothing has evolved before the first step, so the static and full update
//policies must hand out identical Hamiltonians there.
func TestStaticFullAgreeAtFirstStep(Te *testing.T) {
	o := testOracle(Te)
	geom, _ := neo.NewFHF(2.3)
	rhoE, rhoP, x, err := o.SolveGroundState(geom)
	if err != nil {
		Te.Fatal(err)
	}
	static, err := NewBuilder(o, geom, x, neo.FockStatic, 0)
	if err != nil {
		Te.Fatal(err)
	}
	full, err := NewBuilder(o, geom, x, neo.FockFull, 0)
	if err != nil {
		Te.Fatal(err)
	}
	heS, hpS, err := static.Build(rhoE, rhoP, 0.001, 0.02)
	if err != nil {
		Te.Fatal(err)
	}
	heF, hpF, err := full.Build(rhoE, rhoP, 0.001, 0.02)
	if err != nil {
		Te.Fatal(err)
	}
	if d := neo.SymMaxDiff(heS, heF); d > 1e-14 {
		Te.Errorf("electronic Hamiltonians differ at the first step: %v", d)
	}
	if d := neo.SymMaxDiff(hpS, hpF); d > 1e-14 {
		Te.Errorf("protonic Hamiltonians differ at the first step: %v", d)
	}
}

func TestBuilderOracleCallCount(Te *testing.T) {
	o := testOracle(Te)
	geom, _ := neo.NewFHF(2.3)
	rhoE, rhoP, x, err := o.SolveGroundState(geom)
	if err != nil {
		Te.Fatal(err)
	}
	cases := []struct {
		mode  neo.FockMode
		every int
		steps int
		want  int
	}{
		{neo.FockStatic, 0, 10, 1},
		{neo.FockFull, 0, 10, 10},
		{neo.FockPeriodic, 5, 10, 2},
		{neo.FockPeriodic, 3, 10, 4},
	}
	for _, c := range cases {
		b, err := NewBuilder(o, geom, x, c.mode, c.every)
		if err != nil {
			Te.Fatal(err)
		}
		for i := 0; i < c.steps; i++ {
			if _, _, err := b.Build(rhoE, rhoP, 0, 0); err != nil {
				Te.Fatal(err)
			}
		}
		if got := b.OracleCalls(); got != c.want {
			Te.Errorf("%s(every=%d), %d steps: %d oracle calls, want %d", c.mode, c.every, c.steps, got, c.want)
		}
	}
}

//The documented FHF- scenario: dt=0.1, T=50, tau=20, constant field 0.02,
//constraint on. The classical path is a smoothed copy of the quantum one:
//same course, less scatter, never outside the quantum envelope.
func TestConstrainedScenario(Te *testing.T) {
	p := testParams(0.1, 50, 20, 0.02)
	e := testEngine(Te, p, field.NewConstant(0.02))
	res, err := e.RunConstrained(context.Background())
	if err != nil {
		Te.Fatal(err)
	}
	if res.Status != Completed {
		Te.Fatalf("status: %s", res.Status)
	}
	if want := 500; len(res.Steps) != want {
		Te.Fatalf("steps: got %d, want %d", len(res.Steps), want)
	}
	var maxQ, maxC, varQ, varC, varF, varS, meanQ, meanC float64
	for _, s := range res.Steps {
		if s.TraceDeviation > 1e-8 {
			Te.Fatalf("trace deviation %v beyond tolerance", s.TraceDeviation)
		}
		meanQ += s.QuantumPosition
		meanC += s.ClassicalPosition
		if a := math.Abs(s.QuantumPosition); a > maxQ {
			maxQ = a
		}
		if a := math.Abs(s.ClassicalPosition); a > maxC {
			maxC = a
		}
	}
	n := float64(len(res.Steps))
	meanQ /= n
	meanC /= n
	for _, s := range res.Steps {
		varQ += (s.QuantumPosition - meanQ) * (s.QuantumPosition - meanQ)
		varC += (s.ClassicalPosition - meanC) * (s.ClassicalPosition - meanC)
		varF += s.QuantumForce * s.QuantumForce
		varS += s.SmoothedForce * s.SmoothedForce
	}
	if maxC > maxQ+1e-12 {
		Te.Errorf("classical path left the quantum envelope: %v > %v", maxC, maxQ)
	}
	if varC >= varQ {
		Te.Errorf("classical path is not smoother than the quantum one: %v >= %v", varC, varQ)
	}
	if varS > varF {
		Te.Errorf("smoothed force has more scatter than the quantum force: %v > %v", varS, varF)
	}
}

//failingOracle delegates to the model backend but fails its gradient after
//a set number of calls, imitating a backend that stops converging mid-run.
type failingOracle struct {
	*model.Oracle
	calls     int
	failAfter int
}

func (f *failingOracle) Gradient(rhoE, rhoP *neo.Density, geom *neo.Geometry) (float64, error) {
	f.calls++
	if f.calls >= f.failAfter {
		return 0, neo.NewBackendError(neo.SCFNotConverged, 100)
	}
	return f.Oracle.Gradient(rhoE, rhoP, geom)
}

//A backend failure mid-run must fail the run without retrying, keeping the
//trajectory up to the last good step.
func TestBackendFailurePreservesPartialResult(Te *testing.T) {
	p := testParams(0.1, 50, 20, 0)
	geom, _ := neo.NewFHF(p.FFDistance)
	oracle := &failingOracle{Oracle: testOracle(Te), failAfter: 5}
	e, err := NewEngine(p, oracle, geom, field.NewConstant(0))
	if err != nil {
		Te.Fatal(err)
	}
	res, err := e.RunConstrained(context.Background())
	if err == nil {
		Te.Fatal("expected a backend error")
	}
	if _, ok := err.(*neo.BackendError); !ok {
		Te.Errorf("error type: got %T, want *neo.BackendError", err)
	}
	if res.Status != Failed {
		Te.Errorf("status: got %s, want failed", res.Status)
	}
	//Gradient call k happens while preparing step k-1, so failing the 5th
	//call leaves 4 recorded steps.
	if len(res.Steps) != 4 {
		Te.Errorf("partial trajectory: got %d steps, want 4", len(res.Steps))
	}
	if oracle.calls != 5 {
		Te.Errorf("backend was called %d times after the failure, it must not be retried", oracle.calls)
	}
}

//A cancelled context aborts between steps with the partial trajectory, and
//the abort is not reported as a simulation failure.
func TestAbortBetweenSteps(Te *testing.T) {
	e := testEngine(Te, testParams(0.1, 50, 20, 0), field.NewConstant(0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := e.RunPure(ctx)
	if err != context.Canceled {
		Te.Errorf("error: got %v, want context.Canceled", err)
	}
	if res.Status == Failed {
		Te.Error("an abort must not mark the run failed")
	}
	if len(res.Steps) != 0 {
		Te.Errorf("pre-cancelled run recorded %d steps", len(res.Steps))
	}
}

//Sequential runs from one engine must not contaminate each other: a pure
//run after a constrained run behaves exactly like a fresh pure run.
func TestSequentialRunsIndependent(Te *testing.T) {
	e := testEngine(Te, testParams(0.1, 10, 20, 0.02), field.NewConstant(0.02))
	first, err := e.RunPure(context.Background())
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := e.RunConstrained(context.Background()); err != nil {
		Te.Fatal(err)
	}
	second, err := e.RunPure(context.Background())
	if err != nil {
		Te.Fatal(err)
	}
	if len(first.Steps) != len(second.Steps) {
		Te.Fatalf("run lengths differ: %d vs %d", len(first.Steps), len(second.Steps))
	}
	for i := range first.Steps {
		if d := math.Abs(first.Steps[i].QuantumPosition - second.Steps[i].QuantumPosition); d > 1e-12 {
			Te.Fatalf("step %d: repeated pure runs differ by %v", i, d)
		}
	}
}

//Concurrent runs share only read-only state; their results must match the
//sequential ones bit for bit.
func TestConcurrentRuns(Te *testing.T) {
	e := testEngine(Te, testParams(0.1, 10, 20, 0.02), field.NewConstant(0.02))
	ref, err := e.RunPure(context.Background())
	if err != nil {
		Te.Fatal(err)
	}
	type out struct {
		res *Result
		err error
	}
	ch := make(chan out, 2)
	go func() {
		r, err := e.RunPure(context.Background())
		ch <- out{r, err}
	}()
	go func() {
		r, err := e.RunConstrained(context.Background())
		ch <- out{r, err}
	}()
	for i := 0; i < 2; i++ {
		o := <-ch
		if o.err != nil {
			Te.Fatal(o.err)
		}
		if o.res.Method == "rt-neo" {
			for j := range ref.Steps {
				if d := math.Abs(ref.Steps[j].QuantumPosition - o.res.Steps[j].QuantumPosition); d > 1e-12 {
					Te.Fatalf("concurrent pure run diverged at step %d by %v", j, d)
				}
			}
		}
	}
}

func TestPositionOperator(Te *testing.T) {
	e := testEngine(Te, testParams(0.1, 10, 20, 0), nil)
	x, err := e.PositionOperator()
	if err != nil {
		Te.Fatal(err)
	}
	//The grid position operator is diagonal; its trace over a symmetric
	//grid vanishes.
	var tr float64
	n := x.SymmetricDim()
	for i := 0; i < n; i++ {
		tr += x.At(i, i)
	}
	if math.Abs(tr) > 1e-10 {
		Te.Errorf("position operator trace over a symmetric grid: %v", tr)
	}
}
