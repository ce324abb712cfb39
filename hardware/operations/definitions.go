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

	"github.com/pipesim/pipesim/hardware/units"
)

// Opcode identifies the semantic operation.
type Opcode int

// List of supported opcodes.
const (
	Addi Opcode = iota
	Muli
	Add
	Sub
	Cmpi

	Lbz
	Lhz
	Lwz
	Lfd

	Stb
	Sth
	Stw
	Stfd

	B
	Beq
	Bne
	Blt
	Bgt

	Zd
	Fmul
	Fadd

	numOpcodes
)

// Effect categorises an opcode by the effect it has on architected state.
type Effect int

// List of effect categories.
const (
	// writes a general purpose register
	WriteGPR Effect = iota

	// writes a floating point register
	WriteFPR

	// writes the flags
	WriteFlags

	// writes memory
	WriteMemory

	// flow operations change (or may change) the next program point
	Flow
)

// Definition defines each opcode. One per opcode.
type Definition struct {
	Opcode   Opcode
	Mnemonic string
	Unit     units.Kind

	// width of memory access in bytes. zero for non-memory operations
	Width int

	Effect Effect
}

func (defn Definition) String() string {
	return fmt.Sprintf("%s [%s] width=%d", defn.Mnemonic, defn.Unit, defn.Width)
}

// IsMemory returns true if the opcode accesses memory.
func (defn Definition) IsMemory() bool {
	return defn.Width > 0
}

// IsConditional returns true if the opcode is a branch that depends on the
// flags.
func (defn Definition) IsConditional() bool {
	return defn.Effect == Flow && defn.Opcode != B
}

// Definitions is indexed by Opcode.
var Definitions = [numOpcodes]Definition{
	{Opcode: Addi, Mnemonic: "addi", Unit: units.FixedPoint, Effect: WriteGPR},
	{Opcode: Muli, Mnemonic: "muli", Unit: units.FixedPoint, Effect: WriteGPR},
	{Opcode: Add, Mnemonic: "add", Unit: units.FixedPoint, Effect: WriteGPR},
	{Opcode: Sub, Mnemonic: "sub", Unit: units.FixedPoint, Effect: WriteGPR},
	{Opcode: Cmpi, Mnemonic: "cmpi", Unit: units.FixedPoint, Effect: WriteFlags},

	{Opcode: Lbz, Mnemonic: "lbz", Unit: units.Load, Width: 1, Effect: WriteGPR},
	{Opcode: Lhz, Mnemonic: "lhz", Unit: units.Load, Width: 2, Effect: WriteGPR},
	{Opcode: Lwz, Mnemonic: "lwz", Unit: units.Load, Width: 4, Effect: WriteGPR},
	{Opcode: Lfd, Mnemonic: "lfd", Unit: units.Load, Width: 8, Effect: WriteFPR},

	{Opcode: Stb, Mnemonic: "stb", Unit: units.Store, Width: 1, Effect: WriteMemory},
	{Opcode: Sth, Mnemonic: "sth", Unit: units.Store, Width: 2, Effect: WriteMemory},
	{Opcode: Stw, Mnemonic: "stw", Unit: units.Store, Width: 4, Effect: WriteMemory},
	{Opcode: Stfd, Mnemonic: "stfd", Unit: units.Store, Width: 8, Effect: WriteMemory},

	{Opcode: B, Mnemonic: "b", Unit: units.Branch, Effect: Flow},
	{Opcode: Beq, Mnemonic: "beq", Unit: units.Branch, Effect: Flow},
	{Opcode: Bne, Mnemonic: "bne", Unit: units.Branch, Effect: Flow},
	{Opcode: Blt, Mnemonic: "blt", Unit: units.Branch, Effect: Flow},
	{Opcode: Bgt, Mnemonic: "bgt", Unit: units.Branch, Effect: Flow},

	{Opcode: Zd, Mnemonic: "zd", Unit: units.Float, Effect: WriteFPR},
	{Opcode: Fmul, Mnemonic: "fmul", Unit: units.Float, Effect: WriteFPR},
	{Opcode: Fadd, Mnemonic: "fadd", Unit: units.Float, Effect: WriteFPR},
}

// Definition returns the definition of the opcode. An undefined opcode is a
// misuse of the simulated instruction set.
func (op Opcode) Definition() Definition {
	if op < 0 || op >= numOpcodes {
		panic(fmt.Sprintf("operations: undefined opcode (%d)", int(op)))
	}
	return Definitions[op]
}

func (op Opcode) String() string {
	return op.Definition().Mnemonic
}
