// This file is part of Pipesim.
//
// Pipesim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Pipesim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Pipesim.  If not, see <https://www.gnu.org/licenses/>.

// Package hardware is the base package for the simulated processor. The
// Simulator type collates the machine state and provides one method for each
// instruction of the simulated instruction set. Routines written with these
// methods are run with the program package.
//
// The sub-packages are organised bottom up. The params package describes the
// size of every component. The memory, cache, units and registers packages
// implement the components. The machine package collates the components of a
// single processor. Operations are issued against a machine by the operations
// package and counted as instructions by the instructions package.
//
// A Simulator latches the first error returned by an instruction. Every
// instruction after that is ignored and Run() returns the error. The error is
// cleared by ZeroCtrs().
//
// Nothing is shared between Simulator instances and independent simulations
// can be run in parallel. A single Simulator must only be used by one
// goroutine.
package hardware
