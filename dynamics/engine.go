/*
 * engine.go, part of goneo.
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

	neo "github.com/fzahari/goneo"
	"github.com/fzahari/goneo/field"
	"gonum.org/v1/gonum/mat"
)

//Engine owns the time loop. It holds only read-only configuration; all
//per-run state (densities, controller, trajectory) is created fresh inside
//each run, so one Engine can serve sequential or concurrent runs without
//cross-contamination.
type Engine struct {
	params *neo.Params
	oracle neo.Oracle
	geom   *neo.Geometry
	field  field.Strategy
}

//NewEngine validates the parameters and returns an Engine. A nil field
//strategy means a constant field of the configured strength (which may be
//0). Parameter errors surface here; a run never starts misconfigured.
func NewEngine(params *neo.Params, oracle neo.Oracle, geom *neo.Geometry, fs field.Strategy) (*Engine, error) {
	if params == nil {
		return nil, neo.NewConfError("nil parameters")
	}
	if err := params.Validate(); err != nil {
		return nil, errDecorate(err, "NewEngine")
	}
	if oracle == nil {
		return nil, Error{message: NilOracle, deco: []string{"NewEngine"}}
	}
	if geom == nil {
		return nil, Error{message: NilGeometry, deco: []string{"NewEngine"}}
	}
	if geom.QuantumIndex() < 0 {
		return nil, Error{message: NoQuantumNuc, deco: []string{"NewEngine"}}
	}
	if fs == nil {
		fs = field.NewConstant(params.FieldStrength)
	}
	return &Engine{params: params, oracle: oracle, geom: geom, field: fs}, nil
}

//RunPure propagates without the constraint potential (RT-NEO). The partial
//trajectory is returned even when the run fails or is cancelled.
func (E *Engine) RunPure(ctx context.Context) (*Result, error) {
	return E.run(ctx, false)
}

//RunConstrained propagates with the feedback constraint enabled (RT-cNEO).
//The partial trajectory is returned even when the run fails or is
//cancelled.
func (E *Engine) RunConstrained(ctx context.Context) (*Result, error) {
	return E.run(ctx, true)
}

//run is the state machine: Initialized -> Running -> {Completed, Failed}.
func (E *Engine) run(ctx context.Context, constrained bool) (*Result, error) {
	res := &Result{Method: "rt-neo", Status: Initialized}
	if constrained {
		res.Method = "rt-cneo"
	}

	//Initialized: ground-state solve, position operator, force-state seed.
	rhoE, rhoP, x, err := E.oracle.SolveGroundState(E.geom)
	if err != nil {
		res.Status = Failed
		return res, errDecorate(err, "run")
	}
	builder, err := NewBuilder(E.oracle, E.geom, x, E.params.FockMode, E.params.FockRebuildEvery)
	if err != nil {
		res.Status = Failed
		return res, errDecorate(err, "run")
	}
	force, err := E.oracle.Gradient(rhoE, rhoP, E.geom)
	if err != nil {
		res.Status = Failed
		return res, errDecorate(err, "run")
	}
	var ctrl *Controller
	if constrained {
		ctrl, err = NewController(E.params.TimeStep, E.params.SmoothingTime)
		if err != nil {
			res.Status = Failed
			return res, errDecorate(err, "run")
		}
		ctrl.Seed(force, rhoP.Expectation(x))
	}
	traceE0 := rhoE.Trace()
	traceP0 := rhoP.Trace()

	res.Status = Running
	dt := E.params.TimeStep
	steps := E.params.Steps()
	t := 0.0
	for i := 0; i < steps; i++ {
		//Abort point: between steps only, keeping the partial trajectory.
		select {
		case <-ctx.Done():
			//An abort is not a failure: the partial trajectory stays valid.
			return res, ctx.Err()
		default:
		}
		if i > 0 {
			force, err = E.oracle.Gradient(rhoE, rhoP, E.geom)
			if err != nil {
				res.Status = Failed
				return res, errDecorate(err, "run")
			}
		}
		var constraint, smoothed, classical float64
		if constrained {
			constraint = ctrl.Update(force)
			smoothed = ctrl.Smoothed()
		}
		amp := E.field.Amplitude(t)
		he, hp, err := builder.Build(rhoE, rhoP, constraint, amp)
		if err != nil {
			res.Status = Failed
			return res, errDecorate(err, "run")
		}
		qpos := rhoP.Expectation(x)
		if constrained {
			classical = ctrl.Relax(qpos)
		} else {
			classical = qpos
			smoothed = force
		}
		ee := rhoE.Expectation(he)
		ep := rhoP.Expectation(hp)

		nextE, err := Propagate(he, rhoE, dt)
		if err != nil {
			res.Status = Failed
			return res, errDecorate(err, "run")
		}
		nextP, err := Propagate(hp, rhoP, dt)
		if err != nil {
			res.Status = Failed
			return res, errDecorate(err, "run")
		}

		devTrace, devHerm := integrity(nextE, nextP, traceE0, traceP0)
		res.Steps = append(res.Steps, Step{
			Time:              t,
			ElectronicEnergy:  ee,
			ProtonicEnergy:    ep,
			TotalEnergy:       ee + ep,
			QuantumPosition:   qpos,
			ClassicalPosition: classical,
			QuantumForce:      force,
			SmoothedForce:     smoothed,
			ConstraintForce:   constraint,
			Field:             amp,
			TraceDeviation:    devTrace,
			HermDeviation:     devHerm,
		})
		if devTrace > E.params.HardTolerance {
			res.Status = Failed
			return res, errDecorate(neo.NewIntegrityError(neo.TraceViolation, worseTrace(nextE, nextP, traceE0, traceP0), devTrace), "run")
		}
		if devHerm > E.params.HardTolerance {
			res.Status = Failed
			return res, errDecorate(neo.NewIntegrityError(neo.HermiticityViolation, worseHerm(nextE, nextP), devHerm), "run")
		}
		rhoE, rhoP = nextE, nextP
		t += dt
	}
	res.Status = Completed
	return res, nil
}

//integrity returns the worst relative trace drift and the worst Hermiticity
//deviation over both subsystems.
func integrity(rhoE, rhoP *neo.Density, traceE0, traceP0 float64) (devTrace, devHerm float64) {
	devTrace = math.Max(relTraceDev(rhoE, traceE0), relTraceDev(rhoP, traceP0))
	devHerm = math.Max(rhoE.HermiticityDeviation(), rhoP.HermiticityDeviation())
	return devTrace, devHerm
}

func relTraceDev(rho *neo.Density, trace0 float64) float64 {
	scale := math.Abs(trace0)
	if scale < 1 {
		scale = 1
	}
	return math.Abs(rho.Trace()-trace0) / scale
}

func worseTrace(rhoE, rhoP *neo.Density, traceE0, traceP0 float64) string {
	if relTraceDev(rhoE, traceE0) >= relTraceDev(rhoP, traceP0) {
		return "electronic"
	}
	return "protonic"
}

func worseHerm(rhoE, rhoP *neo.Density) string {
	if rhoE.HermiticityDeviation() >= rhoP.HermiticityDeviation() {
		return "electronic"
	}
	return "protonic"
}

//PositionOperator runs the ground-state solve and returns just the position
//operator, for callers that want to inspect observables without running
//dynamics.
func (E *Engine) PositionOperator() (*mat.SymDense, error) {
	_, _, x, err := E.oracle.SolveGroundState(E.geom)
	if err != nil {
		return nil, errDecorate(err, "PositionOperator")
	}
	return x, nil
}
