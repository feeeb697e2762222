/*
 * model.go, part of goneo.
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

/*Package model is the built-in electronic-structure backend: a quantum
proton on a 1-D coordinate grid in the FHF- double-well potential, coupled by
a mean-field dipole term to a small harmonic electronic manifold. It
implements neo.Oracle and is what the tests and examples run against; a real
NEO-capable quantum chemistry code replaces it behind the same interface.

The protonic Hamiltonian is a finite-difference kinetic operator plus the
double-well potential evaluated on the grid; the position operator is
diagonal in the grid basis. The mean-field coupling makes the base operators
genuine functions of both densities, so the static and full Fock-update
policies really do diverge once the system starts moving.*/
package model

import (
	"fmt"
	"math"

	neo "github.com/fzahari/goneo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//Potential is the FHF- model double-well
//
//	V(x) = a*x^4 - b*x^2 + c*exp(-d*x^2)
//
//with x in Angstrom and V in Hartree. It is a model surface with adjustable
//parameters; a real backend computes ab initio surfaces instead.
type Potential struct {
	Quartic       float64 //a
	Quadratic     float64 //b
	BarrierHeight float64 //c
	BarrierWidth  float64 //d
}

//DefaultPotential returns the FHF- parameters used throughout the examples.
func DefaultPotential() Potential {
	return Potential{Quartic: 0.1, Quadratic: 0.05, BarrierHeight: 0.02, BarrierWidth: 10.0}
}

//Energy evaluates the potential at x (Angstrom), in Hartree.
func (P Potential) Energy(x float64) float64 {
	return P.Quartic*math.Pow(x, 4) - P.Quadratic*x*x + P.BarrierHeight*math.Exp(-P.BarrierWidth*x*x)
}

//Force returns -dV/dx at x, converted from Hartree/Angstrom to
//Hartree/Bohr.
func (P Potential) Force(x float64) float64 {
	quartic := -4.0 * P.Quartic * x * x * x
	quadratic := 2.0 * P.Quadratic * x
	barrier := 2.0 * P.BarrierHeight * P.BarrierWidth * x * math.Exp(-P.BarrierWidth*x*x)
	return (quartic + quadratic + barrier) * neo.Bohr2A
}

//Config collects the discretization and coupling knobs of the model
//backend.
type Config struct {
	Points    int       //grid points for the protonic coordinate
	Extent    float64   //grid half-width in Angstrom
	Potential Potential //double-well parameters
	Coupling  float64   //mean-field electron-proton dipole coupling
	Levels    int       //electronic levels in the harmonic manifold
	Spacing   float64   //electronic level spacing in Hartree
	MaxCycles int       //self-consistency cycle limit for the ground-state solve
	Tolerance float64   //self-consistency convergence threshold
}

//DefaultConfig returns a discretization adequate for the FHF- examples.
func DefaultConfig() Config {
	return Config{
		Points:    64,
		Extent:    1.2,
		Potential: DefaultPotential(),
		Coupling:  0.01,
		Levels:    4,
		Spacing:   0.5,
		MaxCycles: 100,
		Tolerance: 1e-8,
	}
}

//Oracle is the grid backend. It is read-only after construction and safe
//for concurrent runs.
type Oracle struct {
	cfg     Config
	grid    []float64     //proton coordinates, Angstrom
	kinetic *mat.SymDense //finite-difference kinetic operator, Hartree
	vdiag   []float64     //potential on the grid, Hartree
	xP      *mat.SymDense //protonic position operator, diagonal
	forceOp *mat.SymDense //force operator -dV/dx on the grid, Hartree/Bohr
	hE0     *mat.SymDense //bare electronic Hamiltonian
	xE      *mat.SymDense //electronic coordinate operator (harmonic ladder)
}

//NewOracle builds the grid operators for the given configuration.
func NewOracle(cfg Config) (*Oracle, error) {
	if cfg.Points < 8 {
		return nil, neo.NewConfError(fmt.Sprintf("model grid needs at least 8 points, got %d", cfg.Points))
	}
	if cfg.Extent <= 0 {
		return nil, neo.NewConfError(fmt.Sprintf("model grid extent must be positive, got %.3f", cfg.Extent))
	}
	if cfg.Levels < 2 {
		return nil, neo.NewConfError(fmt.Sprintf("model needs at least 2 electronic levels, got %d", cfg.Levels))
	}
	if cfg.MaxCycles < 1 {
		return nil, neo.NewConfError(fmt.Sprintf("model needs at least 1 SCF cycle, got %d", cfg.MaxCycles))
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = 1e-8
	}
	o := &Oracle{cfg: cfg}
	n := cfg.Points
	o.grid = floats.Span(make([]float64, n), -cfg.Extent, cfg.Extent)

	//Second-order finite differences for -1/(2m) d2/dy2, with y in Bohr.
	hy := (o.grid[1] - o.grid[0]) * neo.A2Bohr
	diag := 1.0 / (neo.MassP * hy * hy)
	off := -0.5 / (neo.MassP * hy * hy)
	o.kinetic = mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		o.kinetic.SetSym(i, i, diag)
		if i+1 < n {
			o.kinetic.SetSym(i, i+1, off)
		}
	}

	o.vdiag = make([]float64, n)
	o.xP = mat.NewSymDense(n, nil)
	o.forceOp = mat.NewSymDense(n, nil)
	for i, x := range o.grid {
		o.vdiag[i] = cfg.Potential.Energy(x)
		o.xP.SetSym(i, i, x)
		o.forceOp.SetSym(i, i, cfg.Potential.Force(x))
	}

	m := cfg.Levels
	o.hE0 = mat.NewSymDense(m, nil)
	o.xE = mat.NewSymDense(m, nil)
	for k := 0; k < m; k++ {
		o.hE0.SetSym(k, k, float64(k)*cfg.Spacing)
		if k+1 < m {
			//Harmonic-oscillator coordinate matrix element <k|x|k+1>.
			o.xE.SetSym(k, k+1, xeScale*math.Sqrt(float64(k+1)/2))
		}
	}
	return o, nil
}

//xeScale sets the length scale of the electronic coordinate operator, in
//Angstrom.
const xeScale = 0.1

//Grid returns a copy of the proton coordinate grid, in Angstrom.
func (O *Oracle) Grid() []float64 {
	out := make([]float64, len(O.grid))
	copy(out, O.grid)
	return out
}

//BaseOperators builds the base Hamiltonians from the given densities, with
//the mean-field coupling evaluated under them:
//
//	H0p = T + V + c*<xE>_rhoE * Xp
//	H0e = He0    + c*<xP>_rhoP * Xe
//
//No self-consistency happens here; the matrices are one-shot functions of
//the inputs, which is what makes the static and full update policies agree
//at t=0.
func (O *Oracle) BaseOperators(rhoE, rhoP *neo.Density, geom *neo.Geometry) (h0e, h0p *mat.SymDense, err error) {
	if err := O.checkDensities(rhoE, rhoP); err != nil {
		return nil, nil, err
	}
	exE := rhoE.Expectation(O.xE)
	exP := rhoP.Expectation(O.xP)
	n := O.cfg.Points
	h0p = mat.NewSymDense(n, nil)
	h0p.CopySym(O.kinetic)
	for i := 0; i < n; i++ {
		h0p.SetSym(i, i, h0p.At(i, i)+O.vdiag[i]+O.cfg.Coupling*exE*O.grid[i])
	}
	h0e = neo.SymAddScaled(O.hE0, O.cfg.Coupling*exP, O.xE)
	return h0e, h0p, nil
}

//Gradient returns the expectation of the force operator under the protonic
//density, in Hartree/Bohr.
func (O *Oracle) Gradient(rhoE, rhoP *neo.Density, geom *neo.Geometry) (float64, error) {
	if err := O.checkDensities(rhoE, rhoP); err != nil {
		return 0, err
	}
	return rhoP.Expectation(O.forceOp), nil
}

//SolveGroundState solves the coupled ground state self-consistently: each
//cycle rebuilds one subsystem's Hamiltonian under the other's density and
//takes the lowest eigenstate, until the mutual polarization stops moving.
//Exceeding the cycle limit is a convergence failure, reported and never
//retried.
func (O *Oracle) SolveGroundState(geom *neo.Geometry) (rhoE, rhoP *neo.Density, x *mat.SymDense, err error) {
	if geom == nil {
		return nil, nil, nil, neo.NewBackendError("nil geometry", 0)
	}
	if geom.QuantumCount() != 1 {
		return nil, nil, nil, neo.NewBackendError(fmt.Sprintf("model handles exactly one quantum nucleus, got %d", geom.QuantumCount()), 0)
	}
	rhoE = levelProjector(O.cfg.Levels, 0)
	var exE, exP float64
	converged := false
	cycles := 0
	for cycles = 1; cycles <= O.cfg.MaxCycles; cycles++ {
		hp := mat.NewSymDense(O.cfg.Points, nil)
		hp.CopySym(O.kinetic)
		for i := 0; i < O.cfg.Points; i++ {
			hp.SetSym(i, i, hp.At(i, i)+O.vdiag[i]+O.cfg.Coupling*exE*O.grid[i])
		}
		rhoP, err = groundProjector(hp)
		if err != nil {
			return nil, nil, nil, err
		}
		newExP := rhoP.Expectation(O.xP)

		he := neo.SymAddScaled(O.hE0, O.cfg.Coupling*newExP, O.xE)
		rhoE, err = groundProjector(he)
		if err != nil {
			return nil, nil, nil, err
		}
		newExE := rhoE.Expectation(O.xE)

		if math.Abs(newExP-exP) < O.cfg.Tolerance && math.Abs(newExE-exE) < O.cfg.Tolerance {
			exP, exE = newExP, newExE
			converged = true
			break
		}
		exP, exE = newExP, newExE
	}
	if !converged {
		return nil, nil, nil, neo.NewBackendError(neo.SCFNotConverged, O.cfg.MaxCycles)
	}
	return rhoE, rhoP, neo.SymClone(O.xP), nil
}

//checkDensities rejects densities whose dimensions do not match the model's
//bases. Dimension mismatches mean the caller handed matrices from a
//different backend, which the model treats as ill-formed input.
func (O *Oracle) checkDensities(rhoE, rhoP *neo.Density) error {
	if rhoE == nil || rhoP == nil {
		return neo.NewBackendError("nil density matrix", 0)
	}
	if rhoE.Dim() != O.cfg.Levels {
		return neo.NewBackendError(fmt.Sprintf("electronic density is %dx%d, model basis has %d levels", rhoE.Dim(), rhoE.Dim(), O.cfg.Levels), 0)
	}
	if rhoP.Dim() != O.cfg.Points {
		return neo.NewBackendError(fmt.Sprintf("protonic density is %dx%d, model grid has %d points", rhoP.Dim(), rhoP.Dim(), O.cfg.Points), 0)
	}
	return nil
}

//groundProjector returns the pure-state density of the lowest eigenstate of
//h.
func groundProjector(h *mat.SymDense) (*neo.Density, error) {
	var eig mat.EigenSym
	if ok := eig.Factorize(h, true); !ok {
		return nil, neo.NewBackendError("eigendecomposition failed in ground-state solve", 0)
	}
	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	//EigenSym sorts eigenvalues in ascending order; column 0 is the ground
	//state.
	return neo.ProjectorDensity(&vecs, 0), nil
}

//levelProjector returns the pure-state density occupying a single basis
//level.
func levelProjector(n, level int) *neo.Density {
	rho := neo.NewDensity(n)
	rho.Set(level, level, 1)
	return rho
}
