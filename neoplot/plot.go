/*
 * plot.go, part of goneo.
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

//Package neoplot renders goneo trajectories with the gonum plotting
//library. The output format follows the file extension (.png, .pdf, .svg,
//and the other formats gonum/plot supports).
package neoplot

import (
	"fmt"

	neo "github.com/fzahari/goneo"
	"github.com/fzahari/goneo/dynamics"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

//Positions plots the quantum position expectation and, for constrained
//runs, the relaxed classical position against time.
func Positions(r *dynamics.Result, filename string) error {
	if len(r.Steps) == 0 {
		return fmt.Errorf("neoplot: empty trajectory")
	}
	p := plot.New()
	p.Title.Text = "Proton position"
	p.X.Label.Text = "Time (au)"
	p.Y.Label.Text = "Position (A)"
	err := plotutil.AddLines(p,
		"quantum", xys(r.Times(), r.Positions()),
		"classical", xys(r.Times(), r.ClassicalPositions()))
	if err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}

//Energy plots the total-energy change relative to the first step, in eV.
func Energy(r *dynamics.Result, filename string) error {
	if len(r.Steps) == 0 {
		return fmt.Errorf("neoplot: empty trajectory")
	}
	p := plot.New()
	p.Title.Text = "Energy conservation"
	p.X.Label.Text = "Time (au)"
	p.Y.Label.Text = "Energy change (eV)"
	energies := r.Energies()
	e0 := energies[0]
	dE := make([]float64, len(energies))
	for i, e := range energies {
		dE[i] = (e - e0) * neo.H2EV
	}
	if err := plotutil.AddLines(p, r.Method, xys(r.Times(), dE)); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}

//Constraint plots the constraint force along a constrained run.
func Constraint(r *dynamics.Result, filename string) error {
	if len(r.Steps) == 0 {
		return fmt.Errorf("neoplot: empty trajectory")
	}
	p := plot.New()
	p.Title.Text = "Constraint force"
	p.X.Label.Text = "Time (au)"
	p.Y.Label.Text = "Force (Hartree/Bohr)"
	if err := plotutil.AddLines(p, "constraint", xys(r.Times(), r.ConstraintForces())); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}

//ComparePositions overlays the position trajectories of a pure and a
//constrained run.
func ComparePositions(pure, constrained *dynamics.Result, filename string) error {
	if len(pure.Steps) == 0 || len(constrained.Steps) == 0 {
		return fmt.Errorf("neoplot: empty trajectory")
	}
	p := plot.New()
	p.Title.Text = "RT-NEO vs RT-cNEO"
	p.X.Label.Text = "Time (au)"
	p.Y.Label.Text = "Position (A)"
	err := plotutil.AddLines(p,
		"RT-NEO (quantum)", xys(pure.Times(), pure.Positions()),
		"RT-cNEO (constrained)", xys(constrained.Times(), constrained.Positions()),
		"RT-cNEO classical", xys(constrained.Times(), constrained.ClassicalPositions()))
	if err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}

func xys(x, y []float64) plotter.XYs {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	pts := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts
}
