/*
 * analysis_test.go, part of goneo.
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

package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/fzahari/goneo/dynamics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//synthetic builds a trajectory from a position function, with jitter added
//on top when wobble is nonzero.
func synthetic(method string, n int, dt, wobble float64, pos func(t float64) float64) *dynamics.Result {
	r := &dynamics.Result{Method: method, Status: dynamics.Completed}
	for i := 0; i < n; i++ {
		t := float64(i) * dt
		p := pos(t)
		if wobble > 0 {
			p += wobble * math.Sin(37.0*t)
		}
		r.Steps = append(r.Steps, dynamics.Step{
			Time:            t,
			QuantumPosition: p,
			TotalEnergy:     -1.0 + wobble*0.01*math.Sin(53.0*t),
			ConstraintForce: 0.001 * math.Cos(t),
			TraceDeviation:  1e-12,
			HermDeviation:   1e-13,
		})
	}
	return r
}

func TestAnalyzeSummary(t *testing.T) {
	base := func(tt float64) float64 { return 0.5 * math.Sin(0.1*tt) }
	r := synthetic("rt-cneo", 200, 0.1, 0, base)
	s := Analyze(r)
	assert.Equal(t, "rt-cneo", s.Method)
	assert.Equal(t, 200, s.Steps)
	assert.InDelta(t, base(19.9), s.FinalPosition, 1e-12)
	assert.True(t, s.Transferred, "max displacement 0.5 is past the transfer threshold")
	assert.Greater(t, s.MaxDisplacement, TransferThreshold)
	assert.Equal(t, 0, s.BarrierCrossings, "a fraction of a sine period never crosses zero after t=0")
	assert.InDelta(t, 0.001, s.MaxAbsConstraint, 1e-4)
	assert.Equal(t, 1e-12, s.WorstTraceDev)
	assert.Equal(t, 1e-13, s.WorstHermDev)
	assert.Zero(t, s.EnergyDrift, "constant energy has no drift")
}

func TestAnalyzeCrossingsAndEmpty(t *testing.T) {
	r := synthetic("rt-neo", 400, 0.1, 0, func(tt float64) float64 { return 0.2 * math.Sin(tt) })
	s := Analyze(r)
	//sin(t) over 40 time units crosses zero at each multiple of pi: 12 times.
	assert.Equal(t, 12, s.BarrierCrossings)
	assert.False(t, s.Transferred)

	empty := Analyze(&dynamics.Result{Method: "rt-neo"})
	assert.Equal(t, 0, empty.Steps)
	assert.Zero(t, empty.FinalPosition)
}

func TestSummaryString(t *testing.T) {
	r := synthetic("rt-cneo", 50, 0.1, 0, func(tt float64) float64 { return 0.4 * math.Sin(tt) })
	out := Analyze(r).String()
	assert.True(t, strings.HasPrefix(out, "rt-cneo: 50 steps"))
	assert.Contains(t, out, "transferred: yes")
}

//The headline claim of the constrained method is a smoother trajectory; the
//comparison must quantify that as a ratio above 1 when the constrained run
//has less high-frequency wobble.
func TestCompareSmoothness(t *testing.T) {
	base := func(tt float64) float64 { return 0.3 * math.Sin(0.5*tt) }
	pure := synthetic("rt-neo", 500, 0.1, 0.05, base)
	cons := synthetic("rt-cneo", 500, 0.1, 0.005, base)
	c, err := Compare(pure, cons)
	require.NoError(t, err)
	assert.Greater(t, c.SmoothnessRatio, 1.0)
	assert.Greater(t, c.Correlation, 0.9, "same underlying motion should stay correlated")
	assert.Less(t, c.FinalPositionDiff, 0.06)
	assert.Greater(t, c.DriftRatio, 1.0, "the noisier run carries the larger energy scatter")
}

func TestCompareTruncatesToShorter(t *testing.T) {
	base := func(tt float64) float64 { return 0.1 * tt }
	pure := synthetic("rt-neo", 100, 0.1, 0.01, base)
	cons := synthetic("rt-cneo", 60, 0.1, 0.001, base)
	c, err := Compare(pure, cons)
	require.NoError(t, err)
	//Final positions compared at the shorter run's end, not the longer one's.
	assert.InDelta(t, 0.0, c.FinalPositionDiff, 0.02)
}

func TestCompareErrors(t *testing.T) {
	base := func(tt float64) float64 { return tt }
	short := synthetic("rt-neo", 2, 0.1, 0, base)
	long := synthetic("rt-cneo", 100, 0.1, 0, base)
	_, err := Compare(short, long)
	assert.Error(t, err, "fewer than 3 common steps cannot be compared")

	a := synthetic("rt-neo", 100, 0.1, 0, base)
	b := synthetic("rt-cneo", 100, 0.2, 0, base)
	_, err = Compare(a, b)
	assert.Error(t, err, "mismatched time steps must be rejected")
}
