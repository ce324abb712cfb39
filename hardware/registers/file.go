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

package registers

import (
	"fmt"
	"math"
	"strings"

	"github.com/pipesim/pipesim/curated"
)

// ErrExhausted is returned when a physical slot is requested and none are
// free.
const ErrExhausted = "registers: physical register file exhausted (%d slots)"

// Slot is a single physical register. Integer values are held in the low 32
// bits of Data. Floating-point values are held as their IEEE 754 bits.
type Slot struct {
	Data  uint64
	Ready uint64
	Busy  bool
}

// File is the physical register file and the mapping of architected
// registers onto it.
//
// Every architected register is bound to exactly one busy slot. With renaming
// enabled, a write to a register releases its current slot and binds the slot
// at the head of the free list. Without renaming the binding never changes.
type File struct {
	Slots []Slot
	Flags Flags

	renaming bool

	gpr  []int
	fpr  []int
	free freeList
}

// NewFile is the preferred method of initialisation for the File type. The
// number of slots must be at least ngpr+nfpr.
func NewFile(ngpr, nfpr, nslots int, renaming bool) *File {
	if nslots < ngpr+nfpr {
		panic(fmt.Sprintf("registers: %d slots cannot hold %d architected registers", nslots, ngpr+nfpr))
	}
	f := &File{
		Slots:    make([]Slot, nslots),
		renaming: renaming,
		gpr:      make([]int, ngpr),
		fpr:      make([]int, nfpr),
		free:     newFreeList(nslots),
	}
	f.Reset()
	return f
}

// Reset binds GPR i to slot i and FPR j to slot ngpr+j. The remaining slots
// are queued on the free list in ascending order. Every slot is zeroed.
func (f *File) Reset() {
	clear(f.Slots)
	f.Flags = Flags{}
	f.free.reset()

	for i := range f.gpr {
		f.gpr[i] = i
		f.Slots[i].Busy = true
	}
	for j := range f.fpr {
		f.fpr[j] = len(f.gpr) + j
		f.Slots[len(f.gpr)+j].Busy = true
	}
	for s := len(f.gpr) + len(f.fpr); s < len(f.Slots); s++ {
		f.free.push(s)
	}
}

// Renaming returns true if writes rebind their destination register.
func (f *File) Renaming() bool {
	return f.renaming
}

// GPRs returns the number of general-purpose registers.
func (f *File) GPRs() int {
	return len(f.gpr)
}

// FPRs returns the number of floating-point registers.
func (f *File) FPRs() int {
	return len(f.fpr)
}

// Free returns the number of slots on the free list.
func (f *File) Free() int {
	return f.free.len()
}

// GPRSlot returns the slot currently bound to r. An out of range register is
// a misuse of the simulated instruction set.
func (f *File) GPRSlot(r GPR) int {
	if r < 0 || int(r) >= len(f.gpr) {
		panic(fmt.Sprintf("registers: %v out of range (%d general-purpose registers)", r, len(f.gpr)))
	}
	return f.gpr[r]
}

// FPRSlot returns the slot currently bound to r.
func (f *File) FPRSlot(r FPR) int {
	if r < 0 || int(r) >= len(f.fpr) {
		panic(fmt.Sprintf("registers: %v out of range (%d floating-point registers)", r, len(f.fpr)))
	}
	return f.fpr[r]
}

// GPR returns the value of r.
func (f *File) GPR(r GPR) uint32 {
	return uint32(f.Slots[f.GPRSlot(r)].Data)
}

// SetGPR sets the value of r without changing its ready cycle. Intended for
// drivers setting up the arguments of a run.
func (f *File) SetGPR(r GPR, v uint32) {
	f.Slots[f.GPRSlot(r)].Data = uint64(v)
}

// GPRReady returns the cycle at which the value of r is valid.
func (f *File) GPRReady(r GPR) uint64 {
	return f.Slots[f.GPRSlot(r)].Ready
}

// FPR returns the value of r.
func (f *File) FPR(r FPR) float64 {
	return math.Float64frombits(f.Slots[f.FPRSlot(r)].Data)
}

// SetFPR sets the value of r without changing its ready cycle.
func (f *File) SetFPR(r FPR, v float64) {
	f.Slots[f.FPRSlot(r)].Data = math.Float64bits(v)
}

// FPRReady returns the cycle at which the value of r is valid.
func (f *File) FPRReady(r FPR) uint64 {
	return f.Slots[f.FPRSlot(r)].Ready
}

// Allocate takes the slot at the head of the free list and marks it busy.
func (f *File) Allocate() (int, error) {
	s, ok := f.free.pop()
	if !ok {
		return 0, curated.Errorf(ErrExhausted, len(f.Slots))
	}
	f.Slots[s].Busy = true
	return s, nil
}

// Release marks the slot as not busy and returns it to the tail of the free
// list.
func (f *File) Release(slot int) {
	if !f.Slots[slot].Busy {
		panic(fmt.Sprintf("registers: release of free slot p%d", slot))
	}
	f.Slots[slot].Busy = false
	f.free.push(slot)
}

// rename releases the current slot and then takes the slot at the head of
// the free list. with spare slots the new slot is never the current slot. a
// file with no spare slot binds the register onto the slot it just released.
// the architected register is not rebound until Bind*() is called so that
// source operands can still be read from the old slot.
func (f *File) rename(current int) (int, error) {
	if !f.renaming {
		return current, nil
	}
	f.Release(current)
	return f.Allocate()
}

// AllocGPR returns the slot that the next write to r should bind. With
// renaming disabled this is the current slot.
func (f *File) AllocGPR(r GPR) (int, error) {
	return f.rename(f.GPRSlot(r))
}

// AllocFPR returns the slot that the next write to r should bind.
func (f *File) AllocFPR(r FPR) (int, error) {
	return f.rename(f.FPRSlot(r))
}

// BindGPR binds r to slot and writes a value that will be valid at cycle
// ready.
func (f *File) BindGPR(r GPR, slot int, v uint32, ready uint64) {
	_ = f.GPRSlot(r) // range check
	f.gpr[r] = slot
	f.Slots[slot].Data = uint64(v)
	f.Slots[slot].Ready = ready
}

// BindFPR binds r to slot and writes a value that will be valid at cycle
// ready.
func (f *File) BindFPR(r FPR, slot int, v float64, ready uint64) {
	_ = f.FPRSlot(r) // range check
	f.fpr[r] = slot
	f.Slots[slot].Data = math.Float64bits(v)
	f.Slots[slot].Ready = ready
}

func (f *File) String() string {
	s := strings.Builder{}
	for i := range f.gpr {
		r := GPR(i)
		s.WriteString(fmt.Sprintf("%-3s p%-2d %#08x (ready %d)\n", r, f.gpr[i], f.GPR(r), f.GPRReady(r)))
	}
	for j := range f.fpr {
		r := FPR(j)
		s.WriteString(fmt.Sprintf("%-3s p%-2d %g (ready %d)\n", r, f.fpr[j], f.FPR(r), f.FPRReady(r)))
	}
	s.WriteString(fmt.Sprintf("flags %s\n", f.Flags))
	return s.String()
}
