/*
 * errors.go, part of goneo.
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
	"fmt"

	neo "github.com/fzahari/goneo"
)

//Error is the general structure for propagation-core errors. It fulfills
//neo.Error.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string {
	return fmt.Sprintf("goneo dynamics error: %s", err.message)
}

//Decorate adds new information to the error.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

const (
	EigFailed    = "eigendecomposition of the Hamiltonian failed"
	NilDensity   = "given a nil density matrix"
	NilOracle    = "given a nil oracle"
	NilGeometry  = "given a nil geometry"
	NoQuantumNuc = "geometry has no quantum nucleus"
)

//errDecorate decorates err with the caller's name before returning it.
//Errors from outside goneo (which do not implement neo.Error) are wrapped
//into a dynamics Error first.
func errDecorate(err error, caller string) error {
	e, ok := err.(neo.Error)
	if !ok {
		e = Error{message: err.Error()}
	}
	e.Decorate(caller)
	return e
}
