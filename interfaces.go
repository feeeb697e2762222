/*
 * interfaces.go, part of goneo.
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

import "gonum.org/v1/gonum/mat"

//Oracle is the boundary to the electronic-structure backend. From goneo's
//side every method is a pure, synchronous function of its inputs: the same
//densities and geometry give the same matrices. Any method may fail with a
//BackendError when the backend's self-consistency does not converge; such
//errors abort the running simulation and are not retried.
//
//The built-in grid model (subpackage model) implements Oracle; interfacing
//goneo to a real NEO-capable quantum chemistry code means implementing these
//three methods on top of it.
type Oracle interface {

	//SolveGroundState performs the initial self-consistent ground-state
	//solve for the given geometry. It returns the electronic and protonic
	//density matrices and the position operator of the protonic subsystem,
	//a fixed Hermitian one-body matrix that is only worth recomputing if
	//the geometry changes.
	SolveGroundState(geom *Geometry) (rhoE, rhoP *Density, x *mat.SymDense, err error)

	//BaseOperators builds the base (kinetic + potential + coupling)
	//Hamiltonian matrices for both subsystems from the given densities and
	//geometry, without any constraint or field term. No minimization
	//happens here: the matrices are a direct function of the inputs.
	BaseOperators(rhoE, rhoP *Density, geom *Geometry) (h0e, h0p *mat.SymDense, err error)

	//Gradient returns the force on the quantum-nucleus coordinate as the
	//expectation of the force operator under the current protonic density,
	//in Hartree/Bohr.
	Gradient(rhoE, rhoP *Density, geom *Geometry) (float64, error)
}
