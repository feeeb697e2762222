/*
 * controller.go, part of goneo.
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
)

//constraintGain is the critical-damping gain for the second-order relaxation
//of the deviation between the quantum position expectation and the smoothed
//classical path. It is a derived constant, not a tunable parameter: any
//other value reintroduces oscillation or slows convergence.
const constraintGain = 2.0

//Controller maintains the exponentially smoothed force estimate and the
//relaxed classical position, and computes the constraint scalar each step
//from the current quantum force:
//
//	alpha  = exp(-dt/tau)
//	smooth = alpha*smooth + (1-alpha)*force
//	lambda = 2*(smooth - force)
//
//The smoothed force is seeded with the t=0 quantum force so the controller
//starts without a transient bias, and lambda is exactly 0 whenever the
//quantum force equals its smoothed estimate.
type Controller struct {
	dt, tau   float64
	alpha     float64
	smoothed  float64
	classical float64
	seeded    bool
}

//NewController returns a Controller for the given time step and smoothing
//time constant tau. tau must be strictly positive; there is no physically
//derived default, so it is always an explicit input.
func NewController(dt, tau float64) (*Controller, error) {
	if dt <= 0 {
		return nil, neo.NewConfError(neo.NonPositiveTimeStep)
	}
	if tau <= 0 {
		return nil, neo.NewConfError(neo.NonPositiveSmoothing)
	}
	return &Controller{dt: dt, tau: tau, alpha: math.Exp(-dt / tau)}, nil
}

//Seed initializes the force state and classical position at t=0.
func (C *Controller) Seed(force, position float64) {
	C.smoothed = force
	C.classical = position
	C.seeded = true
}

//Update advances the smoothed force with the current quantum force and
//returns the constraint scalar. On the first call of an unseeded controller
//the smoothed force is initialized to the given force, making the first
//constraint 0.
func (C *Controller) Update(force float64) float64 {
	if !C.seeded {
		C.smoothed = force
		C.seeded = true
	} else {
		C.smoothed = C.alpha*C.smoothed + (1-C.alpha)*force
	}
	return constraintGain * (C.smoothed - force)
}

//Relax advances the classical position one step of first-order relaxation
//toward the quantum position expectation and returns it.
func (C *Controller) Relax(quantumPos float64) float64 {
	C.classical += (C.dt / C.tau) * (quantumPos - C.classical)
	return C.classical
}

//Smoothed returns the current smoothed force estimate.
func (C *Controller) Smoothed() float64 { return C.smoothed }

//Classical returns the current classical position.
func (C *Controller) Classical() float64 { return C.classical }
