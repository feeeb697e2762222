/*
 * doc.go, part of goneo.
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

/*Package neo is the root package of the goneo library. goneo propagates a
two-subsystem quantum density-matrix model (electronic plus protonic) in real
time under a time-dependent effective Hamiltonian. Two methods share one
engine:

    RT-NEO   unconstrained unitary propagation of both density matrices.

    RT-cNEO  the same propagation augmented by a feedback-controlled
             constraint potential that steers the quantum position
             expectation toward an exponentially smoothed classical-like
             path, while keeping the full quantum state (superpositions and
             excited-state character survive; only the expectation value is
             steered).


	**goneo capabilities**

    Unitary density-matrix propagation via the spectral matrix exponential
    (subpackage dynamics).

    Static, periodic and fully time-dependent Fock-update policies for the
    effective Hamiltonians.

    Critical-damping constraint controller with exponential force smoothing.

    Pluggable external-field shapes: constant, pulsed, linear ramp, cosine
    ramp and Gaussian pulse (subpackage field).

    A self-contained grid-discretized FHF- double-well backend for tests and
    examples (subpackage model). Real electronic-structure backends plug in
    behind the Oracle interface.

    Trajectory analysis and RT-NEO/RT-cNEO comparison metrics (subpackage
    analysis).

    Tabular trajectory files, optionally zstd-compressed (subpackage traj),
    and plots of the resulting trajectories (subpackage neoplot).

This root package holds what every subpackage needs: the error conventions,
physical constants in atomic units, the complex density-matrix type, molecular
geometries, simulation parameters and the Oracle boundary to the
electronic-structure backend.

All positions are in Angstrom, energies in Hartree and times in atomic units
unless a function says otherwise.*/
package neo
