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
	"encoding/binary"
	"fmt"
	"math"

	"github.com/pipesim/pipesim/hardware/machine"
	"github.com/pipesim/pipesim/hardware/registers"
	"github.com/pipesim/pipesim/hardware/units"
)

// Operation is a single instance of an opcode with its operands. The operand
// fields that are meaningful depend on the opcode.
//
// An Operation is consumed exactly once by Process(). The cycle fields are
// filled in by Process().
type Operation struct {
	Opcode Opcode

	RT registers.GPR
	RA registers.GPR
	RB registers.GPR
	RS registers.GPR

	FT registers.FPR
	FA registers.FPR
	FB registers.FPR
	FS registers.FPR

	SI int16

	// label of a branch operation. used only for disassembly
	Target string

	// the operation cannot issue before the cycle in which it is dispatched
	// by the front end. zero when there is no front end
	DispatchCycle uint64

	Seq           uint64
	ReadyCycle    uint64
	IssueCycle    uint64
	CompleteCycle uint64

	// latency of a memory operation is decided once
	latency      uint64
	latencyKnown bool

	// physical slot that the destination register will be bound to
	slot int
}

// NewAddi creates an add immediate operation: RT = RA + SI.
func NewAddi(rt, ra registers.GPR, si int16) *Operation {
	return &Operation{Opcode: Addi, RT: rt, RA: ra, SI: si}
}

// NewMuli creates a multiply immediate operation: RT = RA * SI.
func NewMuli(rt, ra registers.GPR, si int16) *Operation {
	return &Operation{Opcode: Muli, RT: rt, RA: ra, SI: si}
}

// NewAdd creates an add operation: RT = RA + RB.
func NewAdd(rt, ra, rb registers.GPR) *Operation {
	return &Operation{Opcode: Add, RT: rt, RA: ra, RB: rb}
}

// NewSub creates a subtract operation: RT = RA - RB.
func NewSub(rt, ra, rb registers.GPR) *Operation {
	return &Operation{Opcode: Sub, RT: rt, RA: ra, RB: rb}
}

// NewCmpi creates a compare immediate operation. RA and SI are compared as
// signed values and the flags are set accordingly.
func NewCmpi(ra registers.GPR, si int16) *Operation {
	return &Operation{Opcode: Cmpi, RA: ra, SI: si}
}

// NewLbz creates a load byte and zero operation: RT = MEM[RA].
func NewLbz(rt, ra registers.GPR) *Operation {
	return &Operation{Opcode: Lbz, RT: rt, RA: ra}
}

// NewLhz creates a load halfword and zero operation.
func NewLhz(rt, ra registers.GPR) *Operation {
	return &Operation{Opcode: Lhz, RT: rt, RA: ra}
}

// NewLwz creates a load word and zero operation.
func NewLwz(rt, ra registers.GPR) *Operation {
	return &Operation{Opcode: Lwz, RT: rt, RA: ra}
}

// NewLfd creates a load floating point double operation: FT = MEM[RA].
func NewLfd(ft registers.FPR, ra registers.GPR) *Operation {
	return &Operation{Opcode: Lfd, FT: ft, RA: ra}
}

// NewStb creates a store byte operation: MEM[RA] = RS.
func NewStb(rs, ra registers.GPR) *Operation {
	return &Operation{Opcode: Stb, RS: rs, RA: ra}
}

// NewSth creates a store halfword operation.
func NewSth(rs, ra registers.GPR) *Operation {
	return &Operation{Opcode: Sth, RS: rs, RA: ra}
}

// NewStw creates a store word operation.
func NewStw(rs, ra registers.GPR) *Operation {
	return &Operation{Opcode: Stw, RS: rs, RA: ra}
}

// NewStfd creates a store floating point double operation: MEM[RA] = FS.
func NewStfd(fs registers.FPR, ra registers.GPR) *Operation {
	return &Operation{Opcode: Stfd, FS: fs, RA: ra}
}

// NewB creates an unconditional branch to label.
func NewB(label string) *Operation {
	return &Operation{Opcode: B, Target: label}
}

// NewBeq creates a branch to label taken if the EQ flag is set.
func NewBeq(label string) *Operation {
	return &Operation{Opcode: Beq, Target: label}
}

// NewBne creates a branch to label taken if the EQ flag is not set.
func NewBne(label string) *Operation {
	return &Operation{Opcode: Bne, Target: label}
}

// NewBlt creates a branch to label taken if the LT flag is set.
func NewBlt(label string) *Operation {
	return &Operation{Opcode: Blt, Target: label}
}

// NewBgt creates a branch to label taken if the GT flag is set.
func NewBgt(label string) *Operation {
	return &Operation{Opcode: Bgt, Target: label}
}

// NewZd creates a zero double operation: FT = 0.0.
func NewZd(ft registers.FPR) *Operation {
	return &Operation{Opcode: Zd, FT: ft}
}

// NewFmul creates a floating point multiply operation: FT = FA * FB.
func NewFmul(ft, fa, fb registers.FPR) *Operation {
	return &Operation{Opcode: Fmul, FT: ft, FA: fa, FB: fb}
}

// NewFadd creates a floating point add operation: FT = FA + FB.
func NewFadd(ft, fa, fb registers.FPR) *Operation {
	return &Operation{Opcode: Fadd, FT: ft, FA: fa, FB: fb}
}

// ea is the effective address of a memory operation
func (o *Operation) ea(m *machine.Machine) uint32 {
	return m.Regs.GPR(o.RA)
}

// Latency returns the number of cycles from issue to the result being
// available. The latency of a memory operation depends on where the line is
// found at the moment the latency is first asked for. Subsequent calls return
// the same value.
func (o *Operation) Latency(m *machine.Machine) uint64 {
	defn := o.Opcode.Definition()
	if defn.IsMemory() {
		if !o.latencyKnown {
			o.latency = m.Latency(o.ea(m), defn.Width)
			o.latencyKnown = true
		}
		return o.latency
	}

	switch defn.Effect {
	case Flow:
		return m.Params.BRULatency
	case WriteFPR:
		return m.Params.FPULatency
	}
	return m.Params.FXULatency
}

// Throughput returns the number of consecutive cycles the operation occupies
// its functional unit.
func (o *Operation) Throughput(m *machine.Machine) int {
	if o.Opcode.Definition().Unit == units.Float {
		return m.Params.FPUThroughput
	}
	return 1
}

// Ready returns the cycle at which every source of the operation is
// available.
func (o *Operation) Ready(m *machine.Machine) uint64 {
	r := m.Regs

	switch o.Opcode {
	case Addi, Muli, Cmpi:
		return r.GPRReady(o.RA)
	case Add, Sub:
		return max(r.GPRReady(o.RA), r.GPRReady(o.RB))
	case Lbz, Lhz, Lwz, Lfd:
		return max(r.GPRReady(o.RA), m.CacheReady(o.ea(m), o.Opcode.Definition().Width))
	case Stb, Sth, Stw:
		return max(r.GPRReady(o.RA), r.GPRReady(o.RS), m.CacheReady(o.ea(m), o.Opcode.Definition().Width))
	case Stfd:
		return max(r.GPRReady(o.RA), r.FPRReady(o.FS), m.CacheReady(o.ea(m), 8))
	case B, Zd:
		return 0
	case Beq, Bne, Blt, Bgt:
		return r.Flags.Ready
	case Fmul, Fadd:
		return max(r.FPRReady(o.FA), r.FPRReady(o.FB))
	}

	panic(fmt.Sprintf("operations: undefined opcode (%d)", int(o.Opcode)))
}

// target allocates the slot for the destination register. Operations without
// a destination register do nothing.
func (o *Operation) target(m *machine.Machine) error {
	var err error
	switch o.Opcode.Definition().Effect {
	case WriteGPR:
		o.slot, err = m.Regs.AllocGPR(o.RT)
	case WriteFPR:
		o.slot, err = m.Regs.AllocFPR(o.FT)
	}
	return err
}

// execute performs the data effect of the operation. Sources are read before
// the destination is bound. Returns true if the operation is a branch that
// is taken.
func (o *Operation) execute(m *machine.Machine) bool {
	r := m.Regs
	ready := o.CompleteCycle

	switch o.Opcode {
	case Addi:
		r.BindGPR(o.RT, o.slot, r.GPR(o.RA)+uint32(int32(o.SI)), ready)
	case Muli:
		r.BindGPR(o.RT, o.slot, uint32(int32(r.GPR(o.RA))*int32(o.SI)), ready)
	case Add:
		r.BindGPR(o.RT, o.slot, r.GPR(o.RA)+r.GPR(o.RB), ready)
	case Sub:
		r.BindGPR(o.RT, o.slot, r.GPR(o.RA)-r.GPR(o.RB), ready)
	case Cmpi:
		a := int32(r.GPR(o.RA))
		b := int32(o.SI)
		r.Flags = registers.Flags{LT: a < b, GT: a > b, EQ: a == b, Ready: ready}

	case Lbz:
		d := m.Load(o.ea(m), 1, ready)
		r.BindGPR(o.RT, o.slot, uint32(d[0]), ready)
	case Lhz:
		d := m.Load(o.ea(m), 2, ready)
		r.BindGPR(o.RT, o.slot, uint32(binary.LittleEndian.Uint16(d)), ready)
	case Lwz:
		d := m.Load(o.ea(m), 4, ready)
		r.BindGPR(o.RT, o.slot, binary.LittleEndian.Uint32(d), ready)
	case Lfd:
		d := m.Load(o.ea(m), 8, ready)
		r.BindFPR(o.FT, o.slot, math.Float64frombits(binary.LittleEndian.Uint64(d)), ready)

	case Stb:
		m.Store(o.ea(m), []byte{uint8(r.GPR(o.RS))}, ready)
	case Sth:
		m.Store(o.ea(m), binary.LittleEndian.AppendUint16(nil, uint16(r.GPR(o.RS))), ready)
	case Stw:
		m.Store(o.ea(m), binary.LittleEndian.AppendUint32(nil, r.GPR(o.RS)), ready)
	case Stfd:
		m.Store(o.ea(m), binary.LittleEndian.AppendUint64(nil, math.Float64bits(r.FPR(o.FS))), ready)

	case B:
		return true
	case Beq:
		return r.Flags.EQ
	case Bne:
		return !r.Flags.EQ
	case Blt:
		return r.Flags.LT
	case Bgt:
		return r.Flags.GT

	case Zd:
		r.BindFPR(o.FT, o.slot, 0.0, ready)
	case Fmul:
		r.BindFPR(o.FT, o.slot, r.FPR(o.FA)*r.FPR(o.FB), ready)
	case Fadd:
		r.BindFPR(o.FT, o.slot, r.FPR(o.FA)+r.FPR(o.FB), ready)

	default:
		panic(fmt.Sprintf("operations: undefined opcode (%d)", int(o.Opcode)))
	}

	return false
}
