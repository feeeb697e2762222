/*
 * geometry.go, part of goneo.
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

import "fmt"

//Atom is one nucleus of the molecular system. Quantum marks nuclei treated
//as quantum subsystems (the light nuclei); the rest are classical point
//charges fixed for the run. Coordinates are in Angstrom.
type Atom struct {
	Symbol  string
	X, Y, Z float64
	Quantum bool
}

//Copy returns a copy of the Atom.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("attempted to copy a nil atom")
	}
	at := new(Atom)
	*at = *A
	return at
}

//Geometry is the molecular geometry for a run: classical nuclei plus the
//quantum nuclei. It is fixed during propagation; the backend recomputes its
//operator matrices only if the geometry changes.
type Geometry struct {
	Atoms []*Atom
}

//Copy returns a deep copy of the geometry.
func (G *Geometry) Copy() *Geometry {
	ats := make([]*Atom, len(G.Atoms))
	for i, a := range G.Atoms {
		ats[i] = a.Copy()
	}
	return &Geometry{Atoms: ats}
}

//QuantumIndex returns the index of the first quantum nucleus, or -1 if the
//geometry has none.
func (G *Geometry) QuantumIndex() int {
	for i, a := range G.Atoms {
		if a.Quantum {
			return i
		}
	}
	return -1
}

//QuantumCount returns the number of quantum nuclei.
func (G *Geometry) QuantumCount() int {
	var n int
	for _, a := range G.Atoms {
		if a.Quantum {
			n++
		}
	}
	return n
}

//String prints the geometry one atom per line, in an XYZ-like format.
func (G *Geometry) String() string {
	var s string
	for _, a := range G.Atoms {
		tag := ""
		if a.Quantum {
			tag = " (quantum)"
		}
		s += fmt.Sprintf("%-2s %10.6f %10.6f %10.6f%s\n", a.Symbol, a.X, a.Y, a.Z, tag)
	}
	return s
}

//NewFHF builds the bifluoride anion FHF- with the two fluorines on the x
//axis separated by ffdist Angstrom and a quantum proton placed at the left
//well minimum (-0.15 A, from a barrier scan of the double-well surface). The
//proton must start at or right of that minimum for rightward transfer to be
//possible at all.
func NewFHF(ffdist float64) (*Geometry, error) {
	if ffdist <= 0 {
		return nil, NewConfError(fmt.Sprintf("fluorine-fluorine distance must be positive, got %.3f", ffdist))
	}
	half := ffdist / 2
	return &Geometry{Atoms: []*Atom{
		{Symbol: "F", X: -half},
		{Symbol: "F", X: half},
		{Symbol: "H", X: -0.15, Quantum: true},
	}}, nil
}
