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

/*Package dynamics is the propagation core of goneo: the Hamiltonian builder
with its Fock-update policy, the constraint-force controller, the unitary
propagator and the simulation engine that drives them through the time loop.

A single run is strictly sequential, since each step's Hamiltonian depends on
the previous step's densities and force state. Independent runs are
embarrassingly parallel: each Engine run owns fresh densities, controller
state and trajectory, so RunPure and RunConstrained (or a sweep over field
strengths) can execute concurrently as long as each goroutine calls its own
run. Cached base matrices and the position operator are never written after
construction.

Two hard invariants of the method are enforced here and must survive any
refactoring:

  - Effective Hamiltonians are always assembled by summation of Hermitian
    matrices. There is no energy minimization and no density mixing anywhere
    in the time loop.

  - Propagation never renormalizes. Trace or Hermiticity drift is recorded
    on the step record and only fails the run past the hard tolerance;
    silently correcting it would hide the diagnostic.*/
package dynamics
