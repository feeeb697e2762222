/*
 * field.go, part of goneo.
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

//Package field provides the external-field shapes injected into the protonic
//Hamiltonian during propagation. Every shape is a pure, stateless function
//of time: it may be called any number of times, in any order, from any
//number of concurrent runs. Parameters are validated at construction, never
//at evaluation.
package field

import (
	"fmt"
	"math"
)

//Strategy is a scalar field amplitude as a function of time (atomic units).
//The propagation engine is agnostic to which shape it is given.
type Strategy interface {
	Amplitude(t float64) float64
}

//Constant is a field with a fixed amplitude for the whole run.
type Constant struct {
	strength float64
}

//NewConstant returns a constant field of the given strength. A strength of
//0 is the "no field" strategy.
func NewConstant(strength float64) *Constant {
	return &Constant{strength: strength}
}

//Amplitude returns the constant strength, for any time.
func (F *Constant) Amplitude(t float64) float64 {
	return F.strength
}

//Pulsed is a field that is on, at fixed strength, only inside the window
//[on, off].
type Pulsed struct {
	strength float64
	on, off  float64
}

//NewPulsed returns a pulsed field. off must not precede on.
func NewPulsed(strength, on, off float64) (*Pulsed, error) {
	if off < on {
		return nil, Error{fmt.Sprintf("pulse turn-off time %.3f precedes turn-on time %.3f", off, on), []string{"NewPulsed"}}
	}
	return &Pulsed{strength: strength, on: on, off: off}, nil
}

//Amplitude returns the strength inside the pulse window, 0 outside.
func (F *Pulsed) Amplitude(t float64) float64 {
	if t >= F.on && t <= F.off {
		return F.strength
	}
	return 0
}

//LinearRamp grows linearly from 0 to a final strength over the ramp time,
//then stays there.
type LinearRamp struct {
	ramp  float64
	final float64
}

//NewLinearRamp returns a linear ramp. ramp must be strictly positive.
func NewLinearRamp(ramp, final float64) (*LinearRamp, error) {
	if ramp <= 0 {
		return nil, Error{fmt.Sprintf("ramp time must be positive, got %.3f", ramp), []string{"NewLinearRamp"}}
	}
	return &LinearRamp{ramp: ramp, final: final}, nil
}

//Amplitude interpolates linearly from 0 to the final strength.
func (F *LinearRamp) Amplitude(t float64) float64 {
	if t < F.ramp {
		return F.final * t / F.ramp
	}
	return F.final
}

//CosineRamp grows smoothly (half-cosine) from 0 to a final strength over
//the ramp time, then stays there. Unlike LinearRamp its derivative is
//continuous at both ends, which avoids kicking the system at switch-on.
type CosineRamp struct {
	ramp  float64
	final float64
}

//NewCosineRamp returns a cosine ramp. ramp must be strictly positive.
func NewCosineRamp(ramp, final float64) (*CosineRamp, error) {
	if ramp <= 0 {
		return nil, Error{fmt.Sprintf("ramp time must be positive, got %.3f", ramp), []string{"NewCosineRamp"}}
	}
	return &CosineRamp{ramp: ramp, final: final}, nil
}

//Amplitude interpolates with (1-cos)/2 from 0 to the final strength.
func (F *CosineRamp) Amplitude(t float64) float64 {
	if t < F.ramp {
		return F.final * (1 - math.Cos(math.Pi*t/F.ramp)) / 2
	}
	return F.final
}

//GaussianPulse is a Gaussian envelope centered at a given time. It decays
//back to zero on its own, letting the system settle into a field-free state
//afterwards, which makes it the usual choice for driving proton transfer.
type GaussianPulse struct {
	center    float64
	width     float64
	amplitude float64
}

//NewGaussianPulse returns a Gaussian pulse A*exp(-((t-t0)/w)^2). width must
//be strictly positive.
func NewGaussianPulse(center, width, amplitude float64) (*GaussianPulse, error) {
	if width <= 0 {
		return nil, Error{fmt.Sprintf("pulse width must be positive, got %.3f", width), []string{"NewGaussianPulse"}}
	}
	return &GaussianPulse{center: center, width: width, amplitude: amplitude}, nil
}

//Amplitude evaluates the Gaussian envelope at t.
func (F *GaussianPulse) Amplitude(t float64) float64 {
	x := (t - F.center) / F.width
	return F.amplitude * math.Exp(-x*x)
}

//Error is the field-package error. It fulfills neo.Error.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string {
	return fmt.Sprintf("goneo field error: %s", err.message)
}

//Decorate adds new information to the error.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}
