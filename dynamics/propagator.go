/*
 * propagator.go, part of goneo.
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
	"math"

	neo "github.com/fzahari/goneo"
	"gonum.org/v1/gonum/mat"
)

//Propagate advances a density matrix one step of unitary evolution under
//the Hamiltonian h:
//
//	rho' = U rho U+,  U = exp(-i h dt)
//
//The exponential is taken spectrally: h = V L V^T with a real-symmetric
//eigendecomposition, so U = V exp(-i L dt) V^T is unitary by construction
//whatever the step size. A truncated Taylor expansion is not an acceptable
//substitute here; it loses unitarity at the step sizes used and the trace
//invariant with it.
//
//Propagate never renormalizes the result. Trace and Hermiticity deviations
//are the caller's diagnostics.
func Propagate(h *mat.SymDense, rho *neo.Density, dt float64) (*neo.Density, error) {
	if rho == nil {
		return nil, Error{message: NilDensity, deco: []string{"Propagate"}}
	}
	n := rho.Dim()
	if h.SymmetricDim() != n {
		return nil, Error{message: "Hamiltonian/density dimension mismatch", deco: []string{"Propagate"}}
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(h, true); !ok {
		return nil, Error{message: EigFailed, deco: []string{"Propagate"}}
	}
	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	vals := eig.Values(nil)

	//Work in the eigenbasis: rho~ = V^T rho V, then each element picks up
	//the phase difference of its pair of eigenvalues, then back-transform.
	phase := make([]complex128, n)
	for k, l := range vals {
		phase[k] = complex(math.Cos(l*dt), -math.Sin(l*dt)) //exp(-i*l*dt)
	}
	tilde := toEigenbasis(rho, &vecs)
	for k := 0; k < n; k++ {
		for l := 0; l < n; l++ {
			tilde.Set(k, l, phase[k]*tilde.At(k, l)*complex(real(phase[l]), -imag(phase[l])))
		}
	}
	return &neo.Density{CDense: fromEigenbasis(tilde, &vecs)}, nil
}

//toEigenbasis computes V^T rho V.
func toEigenbasis(rho *neo.Density, v *mat.Dense) *mat.CDense {
	n := rho.Dim()
	//tmp = rho V
	tmp := mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		for l := 0; l < n; l++ {
			var s complex128
			for j := 0; j < n; j++ {
				s += rho.At(i, j) * complex(v.At(j, l), 0)
			}
			tmp.Set(i, l, s)
		}
	}
	//out = V^T tmp
	out := mat.NewCDense(n, n, nil)
	for k := 0; k < n; k++ {
		for l := 0; l < n; l++ {
			var s complex128
			for i := 0; i < n; i++ {
				s += complex(v.At(i, k), 0) * tmp.At(i, l)
			}
			out.Set(k, l, s)
		}
	}
	return out
}

//fromEigenbasis computes V rho~ V^T.
func fromEigenbasis(tilde *mat.CDense, v *mat.Dense) *mat.CDense {
	n, _ := tilde.Dims()
	//tmp = rho~ V^T
	tmp := mat.NewCDense(n, n, nil)
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			var s complex128
			for l := 0; l < n; l++ {
				s += tilde.At(k, l) * complex(v.At(j, l), 0)
			}
			tmp.Set(k, j, s)
		}
	}
	//out = V tmp
	out := mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var s complex128
			for k := 0; k < n; k++ {
				s += complex(v.At(i, k), 0) * tmp.At(k, j)
			}
			out.Set(i, j, s)
		}
	}
	return out
}
