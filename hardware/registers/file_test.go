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

package registers_test

import (
	"testing"

	"github.com/pipesim/pipesim/curated"
	"github.com/pipesim/pipesim/hardware/registers"
	"github.com/pipesim/pipesim/test"
)

// every architected register is bound to a busy slot and no two registers
// share a slot
func checkBindings(t *testing.T, f *registers.File) {
	t.Helper()

	bound := make(map[int]string)
	for i := range f.GPRs() {
		r := registers.GPR(i)
		s := f.GPRSlot(r)
		if o, ok := bound[s]; ok {
			t.Errorf("slot p%d bound to both %s and %s", s, o, r)
		}
		bound[s] = r.String()
		test.ExpectSuccess(t, f.Slots[s].Busy, r)
	}
	for j := range f.FPRs() {
		r := registers.FPR(j)
		s := f.FPRSlot(r)
		if o, ok := bound[s]; ok {
			t.Errorf("slot p%d bound to both %s and %s", s, o, r)
		}
		bound[s] = r.String()
		test.ExpectSuccess(t, f.Slots[s].Busy, r)
	}

	busy := 0
	for _, s := range f.Slots {
		if s.Busy {
			busy++
		}
	}
	test.ExpectEquality(t, busy, len(bound))
	test.ExpectEquality(t, f.Free(), len(f.Slots)-len(bound))
}

func TestReset(t *testing.T) {
	f := registers.NewFile(16, 8, 64, true)
	for i := range 16 {
		test.ExpectEquality(t, f.GPRSlot(registers.GPR(i)), i)
	}
	for j := range 8 {
		test.ExpectEquality(t, f.FPRSlot(registers.FPR(j)), 16+j)
	}
	test.ExpectEquality(t, f.Free(), 40)
	checkBindings(t, f)
}

func TestValues(t *testing.T) {
	f := registers.NewFile(16, 8, 64, true)
	f.SetGPR(registers.R3, 1024)
	f.SetFPR(registers.F1, 2.5)
	test.ExpectEquality(t, f.GPR(registers.R3), uint32(1024))
	test.ExpectEquality(t, f.FPR(registers.F1), 2.5)
	test.ExpectEquality(t, f.GPRReady(registers.R3), uint64(0))

	f.Reset()
	test.ExpectEquality(t, f.GPR(registers.R3), uint32(0))
	test.ExpectEquality(t, f.FPR(registers.F1), 0.0)
}

func TestRenaming(t *testing.T) {
	f := registers.NewFile(16, 8, 64, true)
	f.SetGPR(registers.R4, 7)

	// first write to r4 binds the first free slot
	s, err := f.AllocGPR(registers.R4)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, s, 24)

	// old binding is still readable until the new one is bound
	test.ExpectEquality(t, f.GPRSlot(registers.R4), 4)
	test.ExpectEquality(t, f.GPR(registers.R4), uint32(7))

	f.BindGPR(registers.R4, s, 8, 10)
	test.ExpectEquality(t, f.GPRSlot(registers.R4), 24)
	test.ExpectEquality(t, f.GPR(registers.R4), uint32(8))
	test.ExpectEquality(t, f.GPRReady(registers.R4), uint64(10))
	checkBindings(t, f)

	// the released slot goes to the back of the queue. cycle through the
	// whole free list and check that slot 4 comes around again
	var last int
	for range 40 {
		last, err = f.AllocFPR(registers.F0)
		test.DemandSuccess(t, err)
		f.BindFPR(registers.F0, last, 1.0, 0)
		checkBindings(t, f)
	}
	test.ExpectEquality(t, last, 4)
}

func TestNoRenaming(t *testing.T) {
	f := registers.NewFile(16, 8, 64, false)
	for range 100 {
		s, err := f.AllocGPR(registers.R5)
		test.DemandSuccess(t, err)
		test.ExpectEquality(t, s, 5)
		f.BindGPR(registers.R5, s, 1, 1)
	}
	test.ExpectEquality(t, f.Free(), 40)
	checkBindings(t, f)
}

// the smallest possible file has no spare slot to rename onto. a write
// binds the register onto the slot it has just released
func TestMinimalFile(t *testing.T) {
	f := registers.NewFile(16, 8, 24, true)
	test.ExpectEquality(t, f.Free(), 0)

	f.SetGPR(registers.R1, 99)
	s, err := f.AllocGPR(registers.R1)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, s, 1)
	test.ExpectEquality(t, f.GPR(registers.R1), uint32(99))
	test.ExpectEquality(t, f.Free(), 0)
	checkBindings(t, f)

	f.BindGPR(registers.R1, s, 100, 3)
	test.ExpectEquality(t, f.GPR(registers.R1), uint32(100))
	test.ExpectEquality(t, f.GPRReady(registers.R1), uint64(3))
	checkBindings(t, f)

	// every register can be written any number of times
	for range 3 {
		for j := range 8 {
			r := registers.FPR(j)
			s, err := f.AllocFPR(r)
			test.DemandSuccess(t, err)
			test.ExpectEquality(t, s, 16+j)
			f.BindFPR(r, s, float64(j), 0)
		}
	}
	checkBindings(t, f)

	// without renaming the same file is usable
	f = registers.NewFile(16, 8, 24, false)
	s, err = f.AllocGPR(registers.R1)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, 1)
}

// one spare slot. the write takes the spare slot and the released slot
// becomes the only free slot
func TestSingleSpare(t *testing.T) {
	f := registers.NewFile(16, 8, 25, true)

	s, err := f.AllocGPR(registers.R2)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, s, 24)
	f.BindGPR(registers.R2, s, 1, 1)

	s, err = f.AllocGPR(registers.R3)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, s, 2)
	f.BindGPR(registers.R3, s, 1, 1)
	test.ExpectEquality(t, f.Free(), 1)
	checkBindings(t, f)
}

func TestExhaustion(t *testing.T) {
	f := registers.NewFile(16, 8, 26, true)

	_, err := f.Allocate()
	test.ExpectSuccess(t, err)
	_, err = f.Allocate()
	test.ExpectSuccess(t, err)

	_, err = f.Allocate()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, registers.ErrExhausted))
	test.ExpectEquality(t, err.Error(), "registers: physical register file exhausted (26 slots)")
}

func TestOutOfRange(t *testing.T) {
	f := registers.NewFile(16, 8, 64, true)

	defer func() {
		test.ExpectInequality(t, recover(), nil)
	}()
	f.GPR(registers.GPR(16))
}

func TestFlags(t *testing.T) {
	f := registers.Flags{EQ: true, Ready: 12}
	test.ExpectEquality(t, f.String(), "--E (ready 12)")
}
