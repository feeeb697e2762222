/*
 * result.go, part of goneo.
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

import "math"

//Status is the state of a simulation run.
type Status int

const (
	Initialized Status = iota
	Running
	Completed
	Failed
)

func (s Status) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	}
	return "unknown"
}

//Step is the per-step observable record. Energies are in Hartree, positions
//in Angstrom, forces in Hartree/Bohr, times in atomic units.
type Step struct {
	Time              float64
	ElectronicEnergy  float64
	ProtonicEnergy    float64
	TotalEnergy       float64
	QuantumPosition   float64 //position expectation of the protonic subsystem
	ClassicalPosition float64 //relaxed classical path; equals QuantumPosition in pure runs
	QuantumForce      float64
	SmoothedForce     float64
	ConstraintForce   float64 //0 in pure runs
	Field             float64
	TraceDeviation    float64 //worst relative trace drift over both subsystems
	HermDeviation     float64 //worst Hermiticity deviation over both subsystems
}

//Result is the trajectory of a run: an append-only sequence of step records
//plus the final status. Once a run ends the Result is not mutated again; a
//failed run keeps every step up to the last good one.
type Result struct {
	Method string //"rt-neo" or "rt-cneo"
	Steps  []Step
	Status Status
}

//Times returns the time column.
func (R *Result) Times() []float64 {
	out := make([]float64, len(R.Steps))
	for i, s := range R.Steps {
		out[i] = s.Time
	}
	return out
}

//Positions returns the quantum position column.
func (R *Result) Positions() []float64 {
	out := make([]float64, len(R.Steps))
	for i, s := range R.Steps {
		out[i] = s.QuantumPosition
	}
	return out
}

//ClassicalPositions returns the classical position column.
func (R *Result) ClassicalPositions() []float64 {
	out := make([]float64, len(R.Steps))
	for i, s := range R.Steps {
		out[i] = s.ClassicalPosition
	}
	return out
}

//Energies returns the total energy column.
func (R *Result) Energies() []float64 {
	out := make([]float64, len(R.Steps))
	for i, s := range R.Steps {
		out[i] = s.TotalEnergy
	}
	return out
}

//ConstraintForces returns the constraint force column.
func (R *Result) ConstraintForces() []float64 {
	out := make([]float64, len(R.Steps))
	for i, s := range R.Steps {
		out[i] = s.ConstraintForce
	}
	return out
}

//FinalPosition returns the last quantum position, or 0 for an empty result.
func (R *Result) FinalPosition() float64 {
	if len(R.Steps) == 0 {
		return 0
	}
	return R.Steps[len(R.Steps)-1].QuantumPosition
}

//MaxDisplacement returns the largest |quantum position| along the run.
func (R *Result) MaxDisplacement() float64 {
	var m float64
	for _, s := range R.Steps {
		if a := math.Abs(s.QuantumPosition); a > m {
			m = a
		}
	}
	return m
}

//BarrierCrossings counts sign changes of the quantum position, i.e. how
//many times the proton crossed x=0.
func (R *Result) BarrierCrossings() int {
	var n int
	for i := 1; i < len(R.Steps); i++ {
		a, b := R.Steps[i-1].QuantumPosition, R.Steps[i].QuantumPosition
		if (a < 0 && b >= 0) || (a >= 0 && b < 0) {
			n++
		}
	}
	return n
}
