/*
 * params.go, part of goneo.
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

package neo

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//FockMode selects how often the base Hamiltonian operators are rebuilt from
//the current densities during propagation.
type FockMode string

const (
	//FockStatic computes the base operators once at t=0 and reuses them for
	//the whole run; only the linear constraint and field terms vary. One
	//backend call per run.
	FockStatic FockMode = "static"
	//FockPeriodic rebuilds the base operators every k-th step and reuses
	//them in between.
	FockPeriodic FockMode = "periodic"
	//FockFull rebuilds the base operators from the current densities every
	//step. One backend call per step; strictly more accurate and far more
	//expensive, empirically 10-100x per step.
	FockFull FockMode = "full"
)

//Params is the immutable configuration set for a simulation run. It is
//created once before the run and never mutated during propagation.
type Params struct {
	TimeStep      float64 `yaml:"time_step"`      //atomic units, > 0
	MaxTime       float64 `yaml:"max_time"`       //atomic units, > 0
	FieldStrength float64 `yaml:"field_strength"` //peak field amplitude, atomic units
	SmoothingTime float64 `yaml:"smoothing_time"` //tau, atomic units, > 0. No physical default exists; it must be chosen per system.
	FFDistance    float64 `yaml:"fluorine_distance"` //F-F distance in Angstrom for the built-in FHF- system

	//Fock-update policy. The legacy use_time_dependent_fock switch selects
	//full mode when true; fock_mode, when set, wins over the switch.
	FockMode          FockMode `yaml:"fock_mode"`
	FockRebuildEvery  int      `yaml:"fock_rebuild_every"`      //k for periodic mode
	TimeDependentFock bool     `yaml:"use_time_dependent_fock"` //legacy switch: full vs static

	Constraint bool `yaml:"constraint"` //RT-cNEO when true, RT-NEO when false

	//Numerical-integrity tolerances on propagated densities. Deviations
	//beyond Soft are recorded on the step record; beyond Hard they fail the
	//run.
	SoftTolerance float64 `yaml:"soft_tolerance"`
	HardTolerance float64 `yaml:"hard_tolerance"`

	MaxSteps int `yaml:"max_steps"` //optional bound on the step count, 0 = unbounded
}

//DefaultParams returns the parameter set used by the FHF- examples. The
//smoothing time of 20 au is a usable starting point for FHF-, not a
//physically derived value.
func DefaultParams() *Params {
	return &Params{
		TimeStep:      0.1,
		MaxTime:       500.0,
		FieldStrength: 0.015,
		SmoothingTime: 20.0,
		FFDistance:    2.3,
		FockMode:      FockStatic,
		SoftTolerance: 1e-8,
		HardTolerance: 1e-5,
	}
}

//Validate normalizes the Fock-update selection and checks every parameter,
//returning a ConfError on the first violation. It must pass before a run
//starts; the engine refuses to begin otherwise.
func (P *Params) Validate() error {
	if P.FockMode == "" {
		if P.TimeDependentFock {
			P.FockMode = FockFull
		} else {
			P.FockMode = FockStatic
		}
	}
	if P.TimeStep <= 0 {
		return NewConfError(NonPositiveTimeStep)
	}
	if P.MaxTime <= 0 {
		return NewConfError(NonPositiveMaxTime)
	}
	if P.SmoothingTime <= 0 {
		return NewConfError(NonPositiveSmoothing)
	}
	switch P.FockMode {
	case FockStatic, FockFull:
	case FockPeriodic:
		if P.FockRebuildEvery < 2 {
			return NewConfError(BadRebuildPeriod)
		}
	default:
		return NewConfError(fmt.Sprintf("%s: %q", UnknownFockMode, P.FockMode))
	}
	if P.SoftTolerance <= 0 {
		P.SoftTolerance = 1e-8
	}
	if P.HardTolerance <= 0 {
		P.HardTolerance = 1e-5
	}
	if P.HardTolerance < P.SoftTolerance {
		return NewConfError(fmt.Sprintf("hard tolerance %.3e below soft tolerance %.3e", P.HardTolerance, P.SoftTolerance))
	}
	if P.MaxSteps < 0 {
		return NewConfError(fmt.Sprintf("max_steps must be non-negative, got %d", P.MaxSteps))
	}
	return nil
}

//Steps returns the number of propagation steps for the run, ceil(T/dt),
//capped by MaxSteps when that is set. Call Validate first.
func (P *Params) Steps() int {
	n := int(math.Ceil(P.MaxTime / P.TimeStep))
	if P.MaxSteps > 0 && n > P.MaxSteps {
		n = P.MaxSteps
	}
	return n
}

//LoadParams reads a YAML parameter file on top of the defaults, so a file
//only needs the keys it wants to override. The result is validated.
func LoadParams(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewConfError(fmt.Sprintf("cannot read parameter file %s: %v", path, err))
	}
	p := DefaultParams()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, NewConfError(fmt.Sprintf("cannot parse parameter file %s: %v", path, err))
	}
	if err := p.Validate(); err != nil {
		err.(Error).Decorate("LoadParams: " + path)
		return nil, err
	}
	return p, nil
}
