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

// Package program replaces the goto driven control flow of simulated
// routines with a small state machine. A Program maps each Label to a Block.
// Run() performs the entry block and then whichever block the previous block
// named until the Halt label is returned.
//
// A branch in the simulated instruction set is processed like any other
// operation. The block then returns the label the branch named if the branch
// was taken:
//
//	prg.Define("loop", func() program.Label {
//		sim.Cmpi(registers.R5, 0)
//		if sim.Beq("end") {
//			return "end"
//		}
//		...
//		sim.B("loop")
//		return "loop"
//	})
package program
