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

package neo

import "fmt"

//Error is the interface implemented by all goneo errors. Decorate allows a
//caller to add information when passing an error up. Each call appends the
//"decoration" string to a slice of strings and returns the resulting slice.
//If passed an empty string it just returns the current slice without adding
//anything. The slice should contain the names of the functions in the calling
//stack plus, for each function, any relevant information, in the format
//"FunctionName: Extra info".
type Error interface {
	Error() string
	Decorate(string) []string
}

//ConfError reports invalid simulation parameters: a non-positive time step,
//smoothing time or total time, an unknown Fock-update mode, or malformed
//field parameters. It is always produced before a run starts; a run never
//begins with a bad configuration.
type ConfError struct {
	message string
	deco    []string
}

func (err *ConfError) Error() string {
	return fmt.Sprintf("goneo configuration error: %s", err.message)
}

//Decorate adds new information to the error.
func (err *ConfError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//NewConfError returns a ConfError with the given message.
func NewConfError(message string) *ConfError {
	return &ConfError{message: message}
}

//BackendError reports a failure of the electronic-structure backend behind
//the Oracle interface, typically a self-consistency procedure that did not
//converge, or ill-formed matrices returned from it. Backend errors abort the
//current run and are never retried: re-running a non-convergent
//self-consistency cycle with identical inputs is presumed futile.
type BackendError struct {
	message string
	cycles  int //SCF cycles spent before giving up, or 0 if not applicable.
	deco    []string
}

func (err *BackendError) Error() string {
	if err.cycles > 0 {
		return fmt.Sprintf("goneo chemistry backend error: %s (after %d cycles)", err.message, err.cycles)
	}
	return fmt.Sprintf("goneo chemistry backend error: %s", err.message)
}

//Decorate adds new information to the error.
func (err *BackendError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Cycles returns the number of self-consistency cycles spent before the
//backend gave up, or 0 if the failure was not a convergence failure.
func (err *BackendError) Cycles() int { return err.cycles }

//NewBackendError returns a BackendError with the given message. cycles may be
//0 if the failure is not a convergence failure.
func NewBackendError(message string, cycles int) *BackendError {
	return &BackendError{message: message, cycles: cycles}
}

//IntegrityError reports that a propagated density matrix violated the trace
//or Hermiticity invariant beyond the hard tolerance. Drift within the soft
//tolerance is recorded on the step record instead; an IntegrityError means
//corruption, not drift, and fails the run.
type IntegrityError struct {
	message   string
	subsystem string
	deviation float64
	deco      []string
}

func (err *IntegrityError) Error() string {
	return fmt.Sprintf("goneo numerical integrity error in %s subsystem: %s (deviation %.3e)",
		err.subsystem, err.message, err.deviation)
}

//Decorate adds new information to the error.
func (err *IntegrityError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Deviation returns the measured deviation that triggered the error.
func (err *IntegrityError) Deviation() float64 { return err.deviation }

//Subsystem returns "electronic" or "protonic".
func (err *IntegrityError) Subsystem() string { return err.subsystem }

//NewIntegrityError returns an IntegrityError for the given subsystem.
func NewIntegrityError(message, subsystem string, deviation float64) *IntegrityError {
	return &IntegrityError{message: message, subsystem: subsystem, deviation: deviation}
}

//Messages used by errors across goneo packages.
const (
	NonPositiveTimeStep  = "time step must be strictly positive"
	NonPositiveMaxTime   = "total simulation time must be strictly positive"
	NonPositiveSmoothing = "smoothing time constant must be strictly positive"
	UnknownFockMode      = "unknown Fock-update mode"
	BadRebuildPeriod     = "periodic Fock mode needs a rebuild period of at least 2 steps"
	TraceViolation       = "density-matrix trace deviates from its initial value"
	HermiticityViolation = "density matrix is no longer Hermitian"
	SCFNotConverged      = "self-consistency not reached"
)
