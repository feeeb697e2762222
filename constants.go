/*
 * constants.go, part of goneo.
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

//Physical constants, atomic units unless noted.
const (
	Bohr2A = 0.529177     //Angstrom per Bohr
	A2Bohr = 1.0 / Bohr2A //Bohr per Angstrom
	H2EV   = 27.2114      //eV per Hartree
	FS2AU  = 41.341       //atomic time units per femtosecond
	MassP  = 1836.15      //proton mass in electron masses
	MassE  = 1.0          //electron mass
)

//A map for assigning mass (in electron masses) to the elements handled by the
//built-in model backend. Real backends carry their own tables.
var symbolMass = map[string]float64{
	"H": MassP,
	"D": 2.0 * MassP,
	"F": 34631.97,
}

//SymbolMass returns the mass, in electron masses, for the given element
//symbol, or 0 and false if the element is not tabulated.
func SymbolMass(symbol string) (float64, bool) {
	m, ok := symbolMass[symbol]
	return m, ok
}
