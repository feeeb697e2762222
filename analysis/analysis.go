/*
 * analysis.go, part of goneo.
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

//Package analysis computes summary metrics for single trajectories and
//quantitative comparisons between pure (RT-NEO) and constrained (RT-cNEO)
//runs of the same system.
package analysis

import (
	"fmt"
	"math"

	"github.com/fzahari/goneo/dynamics"
	"gonum.org/v1/gonum/stat"
)

//TransferThreshold is the displacement, in Angstrom, beyond which the proton
//counts as transferred to the other well.
const TransferThreshold = 0.3

//Summary holds the headline numbers for one trajectory.
type Summary struct {
	Method            string
	Steps             int
	FinalPosition     float64 //Angstrom
	MaxDisplacement   float64 //Angstrom
	BarrierCrossings  int
	Transferred       bool
	EnergyDrift       float64 //std(E)/|mean(E)|, dimensionless
	MeanAbsConstraint float64 //Hartree/Bohr
	MaxAbsConstraint  float64 //Hartree/Bohr
	WorstTraceDev     float64
	WorstHermDev      float64
}

//Analyze summarizes a trajectory.
func Analyze(r *dynamics.Result) Summary {
	s := Summary{Method: r.Method, Steps: len(r.Steps)}
	if len(r.Steps) == 0 {
		return s
	}
	s.FinalPosition = r.FinalPosition()
	s.MaxDisplacement = r.MaxDisplacement()
	s.BarrierCrossings = r.BarrierCrossings()
	s.Transferred = s.MaxDisplacement > TransferThreshold

	energies := r.Energies()
	mean := stat.Mean(energies, nil)
	if mean != 0 {
		s.EnergyDrift = stat.StdDev(energies, nil) / math.Abs(mean)
	}
	var sum float64
	for _, st := range r.Steps {
		a := math.Abs(st.ConstraintForce)
		sum += a
		if a > s.MaxAbsConstraint {
			s.MaxAbsConstraint = a
		}
		if st.TraceDeviation > s.WorstTraceDev {
			s.WorstTraceDev = st.TraceDeviation
		}
		if st.HermDeviation > s.WorstHermDev {
			s.WorstHermDev = st.HermDeviation
		}
	}
	s.MeanAbsConstraint = sum / float64(len(r.Steps))
	return s
}

//String prints the summary in a report-friendly form.
func (s Summary) String() string {
	transferred := "no"
	if s.Transferred {
		transferred = "yes"
	}
	return fmt.Sprintf(
		"%s: %d steps, final position %.4f A, max displacement %.4f A, "+
			"%d barrier crossings, transferred: %s, energy drift %.3e, "+
			"constraint |mean| %.3e max %.3e",
		s.Method, s.Steps, s.FinalPosition, s.MaxDisplacement,
		s.BarrierCrossings, transferred, s.EnergyDrift,
		s.MeanAbsConstraint, s.MaxAbsConstraint)
}

//Comparison holds the metrics contrasting a pure run with a constrained run
//of the same system and duration.
type Comparison struct {
	SmoothnessRatio   float64 //>1 means the constrained trajectory is smoother
	FinalPositionDiff float64 //Angstrom
	Correlation       float64 //Pearson correlation of the position trajectories
	PureDrift         float64
	ConstrainedDrift  float64
	DriftRatio        float64
}

//Compare computes comparison metrics between a pure and a constrained run.
//The runs must share the time step; trajectories of unequal length are
//truncated to the shorter one.
func Compare(pure, constrained *dynamics.Result) (Comparison, error) {
	var c Comparison
	n := len(pure.Steps)
	if len(constrained.Steps) < n {
		n = len(constrained.Steps)
	}
	if n < 3 {
		return c, fmt.Errorf("analysis: need at least 3 common steps to compare, got %d", n)
	}
	dtPure := pure.Steps[1].Time - pure.Steps[0].Time
	dtCons := constrained.Steps[1].Time - constrained.Steps[0].Time
	if math.Abs(dtPure-dtCons) > 1e-12 {
		return c, fmt.Errorf("analysis: runs use different time steps (%.6g vs %.6g)", dtPure, dtCons)
	}

	purePos := pure.Positions()[:n]
	consPos := constrained.Positions()[:n]

	//Smoothness: inverse ratio of the scatter in the second differences of
	//the positions (a discrete acceleration).
	pureRough := stat.StdDev(secondDiff(purePos, dtPure), nil)
	consRough := stat.StdDev(secondDiff(consPos, dtPure), nil)
	if consRough > 0 {
		c.SmoothnessRatio = pureRough / consRough
	} else {
		c.SmoothnessRatio = math.Inf(1)
	}

	c.FinalPositionDiff = math.Abs(purePos[n-1] - consPos[n-1])
	c.Correlation = stat.Correlation(purePos, consPos, nil)

	c.PureDrift = drift(pure.Energies()[:n])
	c.ConstrainedDrift = drift(constrained.Energies()[:n])
	if c.ConstrainedDrift > 0 {
		c.DriftRatio = c.PureDrift / c.ConstrainedDrift
	} else {
		c.DriftRatio = math.Inf(1)
	}
	return c, nil
}

func secondDiff(pos []float64, dt float64) []float64 {
	out := make([]float64, len(pos)-2)
	for i := range out {
		out[i] = (pos[i+2] - 2*pos[i+1] + pos[i]) / (dt * dt)
	}
	return out
}

func drift(energies []float64) float64 {
	mean := stat.Mean(energies, nil)
	if mean == 0 {
		return 0
	}
	return stat.StdDev(energies, nil) / math.Abs(mean)
}
