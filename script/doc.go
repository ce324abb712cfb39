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

// Package script runs Lua programs against the simulated processor. The
// program sees a global table called sim with a function for every
// instruction of the simulated ISA, and functions for inspecting and changing
// the machine state.
//
// Register arguments are register numbers and immediates are plain numbers.
// Branches take an optional label, which only appears in the trace, and
// return true if the branch was taken. Control flow is left to Lua. The
// memcpy loop, for example, might be written as:
//
//	sim.zeroctrs()
//	sim.setgpr(3, 1024)
//	sim.setgpr(4, 0)
//	sim.setgpr(5, 64)
//	sim.addi(7, 3, 0)
//	while true do
//		sim.cmpi(5, 0)
//		if sim.beq("end") then break end
//		sim.lbz(6, 4)
//		sim.stb(6, 7)
//		sim.addi(4, 4, 1)
//		sim.addi(7, 7, 1)
//		sim.addi(5, 5, -1)
//		sim.b("loop")
//	end
//	print(sim.counters().cycles)
//
// State functions:
//
//	zeromem() zeroctrs()
//	gpr(r) setgpr(r, v) fpr(r) setfpr(r, v)
//	peek(ea) poke(ea, v)       byte
//	peekh(ea) pokeh(ea, v)     halfword
//	peekw(ea) pokew(ea, v)     word
//	peekd(ea) poked(ea, v)     double
//	counters()                 {instructions, operations, cycles, lastissued}
//	l1d()                      {accesses, hits, misses}
//	kernel(name, n, m)         {pass, instructions, cycles, misses, error}
//
// An error latched by an instruction in the simulator is raised as a Lua
// error and stops the program.
package script
