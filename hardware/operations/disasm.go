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

package operations

import (
	"fmt"

	"github.com/pipesim/pipesim/hardware/machine"
	"github.com/pipesim/pipesim/hardware/registers"
)

// namer returns the names of registers for disassembly
type namer struct {
	dest string
	gpr  func(registers.GPR) string
	fpr  func(registers.FPR) string
}

func (o *Operation) disasm(n namer) string {
	mn := o.Opcode.String()

	switch o.Opcode {
	case Addi, Muli:
		return fmt.Sprintf("%s (%s, %s, %d)", mn, n.dest, n.gpr(o.RA), o.SI)
	case Add, Sub:
		return fmt.Sprintf("%s (%s, %s, %s)", mn, n.dest, n.gpr(o.RA), n.gpr(o.RB))
	case Cmpi:
		return fmt.Sprintf("%s (%s, %d)", mn, n.gpr(o.RA), o.SI)
	case Lbz, Lhz, Lwz, Lfd:
		return fmt.Sprintf("%s (%s, %s)", mn, n.dest, n.gpr(o.RA))
	case Stb, Sth, Stw:
		return fmt.Sprintf("%s (%s, %s)", mn, n.gpr(o.RS), n.gpr(o.RA))
	case Stfd:
		return fmt.Sprintf("%s (%s, %s)", mn, n.fpr(o.FS), n.gpr(o.RA))
	case B, Beq, Bne, Blt, Bgt:
		return fmt.Sprintf("%s (%s)", mn, o.Target)
	case Zd:
		return fmt.Sprintf("%s (%s)", mn, n.dest)
	case Fmul, Fadd:
		return fmt.Sprintf("%s (%s, %s, %s)", mn, n.dest, n.fpr(o.FA), n.fpr(o.FB))
	}

	return fmt.Sprintf("undefined (%d)", int(o.Opcode))
}

// String returns the disassembly of the operation using architected register
// names.
func (o *Operation) String() string {
	n := namer{
		gpr: registers.GPR.String,
		fpr: registers.FPR.String,
	}
	switch o.Opcode.Definition().Effect {
	case WriteGPR:
		n.dest = o.RT.String()
	case WriteFPR:
		n.dest = o.FT.String()
	}
	return o.disasm(n)
}

// Disasm returns the disassembly of the operation using the physical slots
// the registers are bound to. Without renaming the architected names are
// used.
//
// The destination is the slot allocated for the result so Disasm() is only
// meaningful between allocation and execution of the operation.
func (o *Operation) Disasm(m *machine.Machine) string {
	if !m.Regs.Renaming() {
		return o.String()
	}

	slot := func(s int) string {
		return fmt.Sprintf("p%d", s)
	}

	return o.disasm(namer{
		dest: slot(o.slot),
		gpr: func(r registers.GPR) string {
			return slot(m.Regs.GPRSlot(r))
		},
		fpr: func(r registers.FPR) string {
			return slot(m.Regs.FPRSlot(r))
		},
	})
}
