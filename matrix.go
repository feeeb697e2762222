/*
 * matrix.go, part of goneo.
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

//matrix.go wraps the gonum complex-matrix type into the Density type used
//for the electronic and protonic subsystem states, and adds the handful of
//operations the propagation core needs: traces, Hermiticity checks and
//expectation values of real symmetric one-body operators.

package neo

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

//Density is a subsystem density matrix: a Hermitian, positive-semidefinite
//complex square matrix whose trace equals the subsystem's particle-number
//normalization. It stays Hermitian and trace-constant under unitary
//propagation up to numerical tolerance; goneo records deviations instead of
//correcting them.
type Density struct {
	*mat.CDense
}

//CDense2Density wraps an existing gonum CDense into a Density.
func CDense2Density(A *mat.CDense) *Density {
	return &Density{A}
}

//Density2CDense returns the underlying gonum CDense.
func Density2CDense(A *Density) *mat.CDense {
	return A.CDense
}

//NewDensity returns an n x n zero density matrix.
func NewDensity(n int) *Density {
	return &Density{mat.NewCDense(n, n, nil)}
}

//ProjectorDensity builds the pure-state density |v><v| from the col-th
//column of vecs, which is expected to hold real orthonormal eigenvectors,
//one per column, as produced by a symmetric eigendecomposition.
func ProjectorDensity(vecs *mat.Dense, col int) *Density {
	n, _ := vecs.Dims()
	rho := NewDensity(n)
	for i := 0; i < n; i++ {
		vi := vecs.At(i, col)
		for j := 0; j < n; j++ {
			rho.Set(i, j, complex(vi*vecs.At(j, col), 0))
		}
	}
	return rho
}

//Dim returns the dimension of the (square) density matrix.
func (D *Density) Dim() int {
	r, _ := D.Dims()
	return r
}

//Clone returns a deep copy of the density matrix.
func (D *Density) Clone() *Density {
	n := D.Dim()
	c := mat.NewCDense(n, n, nil)
	c.Copy(D.CDense)
	return &Density{c}
}

//Trace returns the real part of the trace. For a Hermitian matrix the trace
//is real; any imaginary part is numerical noise and shows up in
//HermiticityDeviation instead.
func (D *Density) Trace() float64 {
	var tr float64
	for i := 0; i < D.Dim(); i++ {
		tr += real(D.At(i, i))
	}
	return tr
}

//HermiticityDeviation returns max_ij |rho_ij - conj(rho_ji)|.
func (D *Density) HermiticityDeviation() float64 {
	var dev float64
	n := D.Dim()
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			d := cmplx.Abs(D.At(i, j) - cmplx.Conj(D.At(j, i)))
			if d > dev {
				dev = d
			}
		}
	}
	return dev
}

//Expectation returns the real part of tr(rho*A) for a real symmetric
//one-body operator A. It panics if the dimensions do not match, as any
//mismatch means the program is wrong, not the data.
func (D *Density) Expectation(A *mat.SymDense) float64 {
	n := D.Dim()
	if A.SymmetricDim() != n {
		panic("goneo: operator/density dimension mismatch")
	}
	var e float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			e += real(D.At(i, j)) * A.At(j, i)
		}
	}
	return e
}

//SymAddScaled returns base + s*op as a fresh symmetric matrix, leaving both
//arguments untouched. This is the only way goneo ever builds a
//time-dependent Hamiltonian: by summation of Hermitian matrices.
func SymAddScaled(base *mat.SymDense, s float64, op *mat.SymDense) *mat.SymDense {
	n := base.SymmetricDim()
	if op.SymmetricDim() != n {
		panic("goneo: operator dimension mismatch in Hamiltonian assembly")
	}
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			out.SetSym(i, j, base.At(i, j)+s*op.At(i, j))
		}
	}
	return out
}

//SymClone returns a deep copy of a symmetric matrix.
func SymClone(A *mat.SymDense) *mat.SymDense {
	n := A.SymmetricDim()
	out := mat.NewSymDense(n, nil)
	out.CopySym(A)
	return out
}

//SymMaxDiff returns max_ij |A_ij - B_ij| for two symmetric matrices of equal
//dimension.
func SymMaxDiff(A, B *mat.SymDense) float64 {
	n := A.SymmetricDim()
	if B.SymmetricDim() != n {
		panic("goneo: dimension mismatch in SymMaxDiff")
	}
	var dev float64
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			d := math.Abs(A.At(i, j) - B.At(i, j))
			if d > dev {
				dev = d
			}
		}
	}
	return dev
}
