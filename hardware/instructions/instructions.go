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

// Package instructions wraps operations as instructions of the simulated
// instruction set. Every instruction currently maps onto exactly one
// operation. The instruction layer owns the instruction counter, the front end
// of the pipeline and the leading columns of each trace line.
package instructions

import (
	"github.com/pipesim/pipesim/hardware/machine"
	"github.com/pipesim/pipesim/hardware/operations"
)

// Instruction is a single instruction of the simulated instruction set.
type Instruction struct {
	Seq uint64
	Op  *operations.Operation

	// front end timing. all zero when the front end is disabled
	Fetched    uint64
	Decoded    uint64
	Dispatched uint64
}

// NewInstruction is the preferred method of initialisation for the
// Instruction type.
func NewInstruction(op *operations.Operation) *Instruction {
	return &Instruction{Op: op}
}

// String returns the disassembly of the instruction. Register names are
// always the architected names.
func (in *Instruction) String() string {
	return in.Op.String()
}

// Process counts the instruction and processes its operation. Returns true
// if the instruction is a taken branch.
//
// With the front end enabled the instruction is fetched, decoded and
// dispatched before its operation is processed. A taken branch stops fetching
// until the branch completes.
func Process(m *machine.Machine, in *Instruction) (bool, error) {
	in.Seq = m.Counters.Instructions
	m.Counters.Instructions++

	if m.Params.FrontEnd {
		in.Fetched = m.Fetch()
		in.Decoded = in.Fetched + m.Params.DecodeLatency
		in.Dispatched = in.Decoded + m.Params.DispatchLatency
		in.Op.DispatchCycle = in.Dispatched
	}

	m.Tracef("%09d , %20s , ", in.Seq, in.String())

	taken, err := operations.Process(m, in.Op)
	if err != nil {
		return false, err
	}

	if taken && m.Params.FrontEnd {
		m.Redirect(in.Op.CompleteCycle)
	}

	return taken, nil
}
