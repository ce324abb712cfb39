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

package hardware

import (
	"github.com/pipesim/pipesim/hardware/operations"
	"github.com/pipesim/pipesim/hardware/program"
	"github.com/pipesim/pipesim/hardware/registers"
)

// Addi RT = RA + SI
func (sim *Simulator) Addi(rt, ra registers.GPR, si int16) {
	sim.process(operations.NewAddi(rt, ra, si))
}

// Muli RT = RA * SI
func (sim *Simulator) Muli(rt, ra registers.GPR, si int16) {
	sim.process(operations.NewMuli(rt, ra, si))
}

// Add RT = RA + RB
func (sim *Simulator) Add(rt, ra, rb registers.GPR) {
	sim.process(operations.NewAdd(rt, ra, rb))
}

// Sub RT = RA - RB
func (sim *Simulator) Sub(rt, ra, rb registers.GPR) {
	sim.process(operations.NewSub(rt, ra, rb))
}

// Cmpi compares RA with SI and sets the flags
func (sim *Simulator) Cmpi(ra registers.GPR, si int16) {
	sim.process(operations.NewCmpi(ra, si))
}

// Lbz RT = MEM[RA] (byte)
func (sim *Simulator) Lbz(rt, ra registers.GPR) {
	sim.process(operations.NewLbz(rt, ra))
}

// Lhz RT = MEM[RA] (halfword)
func (sim *Simulator) Lhz(rt, ra registers.GPR) {
	sim.process(operations.NewLhz(rt, ra))
}

// Lwz RT = MEM[RA] (word)
func (sim *Simulator) Lwz(rt, ra registers.GPR) {
	sim.process(operations.NewLwz(rt, ra))
}

// Lfd FT = MEM[RA] (double)
func (sim *Simulator) Lfd(ft registers.FPR, ra registers.GPR) {
	sim.process(operations.NewLfd(ft, ra))
}

// Stb MEM[RA] = RS (byte)
func (sim *Simulator) Stb(rs, ra registers.GPR) {
	sim.process(operations.NewStb(rs, ra))
}

// Sth MEM[RA] = RS (halfword)
func (sim *Simulator) Sth(rs, ra registers.GPR) {
	sim.process(operations.NewSth(rs, ra))
}

// Stw MEM[RA] = RS (word)
func (sim *Simulator) Stw(rs, ra registers.GPR) {
	sim.process(operations.NewStw(rs, ra))
}

// Stfd MEM[RA] = FS (double)
func (sim *Simulator) Stfd(fs registers.FPR, ra registers.GPR) {
	sim.process(operations.NewStfd(fs, ra))
}

// B is an unconditional branch. Always returns true unless an error has been
// latched.
func (sim *Simulator) B(label program.Label) bool {
	return sim.process(operations.NewB(string(label)))
}

// Beq returns true if the branch is taken.
func (sim *Simulator) Beq(label program.Label) bool {
	return sim.process(operations.NewBeq(string(label)))
}

// Bne returns true if the branch is taken.
func (sim *Simulator) Bne(label program.Label) bool {
	return sim.process(operations.NewBne(string(label)))
}

// Blt returns true if the branch is taken.
func (sim *Simulator) Blt(label program.Label) bool {
	return sim.process(operations.NewBlt(string(label)))
}

// Bgt returns true if the branch is taken.
func (sim *Simulator) Bgt(label program.Label) bool {
	return sim.process(operations.NewBgt(string(label)))
}

// Zd FT = 0.0
func (sim *Simulator) Zd(ft registers.FPR) {
	sim.process(operations.NewZd(ft))
}

// Fmul FT = FA * FB
func (sim *Simulator) Fmul(ft, fa, fb registers.FPR) {
	sim.process(operations.NewFmul(ft, fa, fb))
}

// Fadd FT = FA + FB
func (sim *Simulator) Fadd(ft, fa, fb registers.FPR) {
	sim.process(operations.NewFadd(ft, fa, fb))
}
