/*
 * builder.go, part of goneo.
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
	neo "github.com/fzahari/goneo"
	"gonum.org/v1/gonum/mat"
)

//Builder assembles the effective Hamiltonians for each step. It owns the
//Fock-update policy: in static mode the base operators are computed once at
//t=0 and cached; in full mode they are rebuilt from the current densities
//every step; in periodic mode every k-th step. The cache is explicit,
//per-Builder state, never process-wide, so concurrent independent runs each
//build with their own Builder.
//
//Whatever the mode, the time-varying constraint and field terms enter as
//linear one-body perturbations on the protonic Hamiltonian. The result is
//Hermitian by construction: a sum of Hermitian matrices.
type Builder struct {
	oracle neo.Oracle
	geom   *neo.Geometry
	x      *mat.SymDense //protonic position operator, read-only
	mode   neo.FockMode
	every  int //rebuild period: 0 static, 1 full, k>=2 periodic
	step   int
	baseE  *mat.SymDense
	baseP  *mat.SymDense
}

//NewBuilder returns a Builder for the given backend, geometry and position
//operator. every is only read in periodic mode.
func NewBuilder(oracle neo.Oracle, geom *neo.Geometry, x *mat.SymDense, mode neo.FockMode, every int) (*Builder, error) {
	if oracle == nil {
		return nil, Error{message: NilOracle, deco: []string{"NewBuilder"}}
	}
	if geom == nil {
		return nil, Error{message: NilGeometry, deco: []string{"NewBuilder"}}
	}
	b := &Builder{oracle: oracle, geom: geom, x: x, mode: mode}
	switch mode {
	case neo.FockStatic:
		b.every = 0
	case neo.FockFull:
		b.every = 1
	case neo.FockPeriodic:
		if every < 2 {
			return nil, neo.NewConfError(neo.BadRebuildPeriod)
		}
		b.every = every
	default:
		return nil, neo.NewConfError(neo.UnknownFockMode)
	}
	return b, nil
}

//Build returns the effective Hamiltonians for the current step:
//
//	He = H0e
//	Hp = H0p + (constraint + field) * X
//
//where H0e/H0p come from the cache or from a fresh backend call according to
//the Fock mode. The returned matrices are fresh copies; a Hamiltonian is
//never mutated after construction. A backend failure aborts the step with
//the backend's error, unretried.
func (B *Builder) Build(rhoE, rhoP *neo.Density, constraint, field float64) (he, hp *mat.SymDense, err error) {
	if rhoE == nil || rhoP == nil {
		return nil, nil, Error{message: NilDensity, deco: []string{"Build"}}
	}
	if B.baseE == nil || (B.every > 0 && B.step%B.every == 0) {
		h0e, h0p, err := B.oracle.BaseOperators(rhoE, rhoP, B.geom)
		if err != nil {
			return nil, nil, errDecorate(err, "Build")
		}
		B.baseE = h0e
		B.baseP = h0p
	}
	B.step++
	he = neo.SymClone(B.baseE)
	hp = neo.SymAddScaled(B.baseP, constraint+field, B.x)
	return he, hp, nil
}

//OracleCalls returns how many backend rebuilds the builder has done so far.
func (B *Builder) OracleCalls() int {
	if B.baseE == nil {
		return 0
	}
	if B.every == 0 {
		return 1
	}
	return (B.step + B.every - 1) / B.every
}
