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

package reflection

import (
	"fmt"

	"github.com/pipesim/pipesim/hardware/machine"
	"github.com/pipesim/pipesim/hardware/memory/cache"
	"github.com/pipesim/pipesim/hardware/registers"
)

// Register is the binding of an architected register to a physical slot.
type Register struct {
	Name  string
	Slot  int
	Value string
	Ready uint64
}

// Line is a valid line in a cache.
type Line struct {
	Set     int
	Way     int
	Tag     uint32
	Touched uint64
	Ready   uint64
}

// Unit is the state of a functional unit.
type Unit struct {
	Kind    string
	Issued  uint64
	Claimed int
}

// State is a snapshot of the timing state of a machine. Memory contents are
// not included.
type State struct {
	Counters  machine.Counters
	Flags     registers.Flags
	GPR       []Register
	FPR       []Register
	FreeSlots int
	Units     []Unit
	L1D       cache.Statistics
	Lines     []Line
}

// Snapshot the state of the machine.
func Snapshot(m *machine.Machine) *State {
	s := &State{
		Counters:  m.Counters,
		Flags:     m.Regs.Flags,
		FreeSlots: m.Regs.Free(),
		L1D:       m.Caches.L1D.Stats(),
	}

	for i := range m.Regs.GPRs() {
		r := registers.GPR(i)
		s.GPR = append(s.GPR, Register{
			Name:  r.String(),
			Slot:  m.Regs.GPRSlot(r),
			Value: fmt.Sprintf("%#010x", m.Regs.GPR(r)),
			Ready: m.Regs.GPRReady(r),
		})
	}

	for i := range m.Regs.FPRs() {
		r := registers.FPR(i)
		s.FPR = append(s.FPR, Register{
			Name:  r.String(),
			Slot:  m.Regs.FPRSlot(r),
			Value: fmt.Sprintf("%g", m.Regs.FPR(r)),
			Ready: m.Regs.FPRReady(r),
		})
	}

	for _, u := range m.Units.All() {
		s.Units = append(s.Units, Unit{
			Kind:    u.Kind.String(),
			Issued:  u.Issued,
			Claimed: u.Claimed(),
		})
	}

	for set := range m.Caches.L1D.Sets() {
		for way := range m.Caches.L1D.Ways() {
			e := m.Caches.L1D.Entry(set, way)
			if e.Valid {
				s.Lines = append(s.Lines, Line{
					Set:     set,
					Way:     way,
					Tag:     e.Tag,
					Touched: e.Touched,
					Ready:   e.Ready,
				})
			}
		}
	}

	return s
}
