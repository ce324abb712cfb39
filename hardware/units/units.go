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

package units

import (
	"fmt"
)

// Kind identifies a functional unit.
type Kind int

// List of valid Kind values.
const (
	Load Kind = iota
	Store
	FixedPoint
	Float
	Branch

	numKinds
)

func (k Kind) String() string {
	switch k {
	case Load:
		return "LDU"
	case Store:
		return "STU"
	case FixedPoint:
		return "FXU"
	case Float:
		return "FPU"
	case Branch:
		return "BRU"
	}
	return fmt.Sprintf("unit(%d)", int(k))
}

// Unit tracks the cycles in which a functional unit has been claimed by an
// issued operation. Cycles are held as a set so that claims need not be
// contiguous.
type Unit struct {
	Kind Kind

	busy map[uint64]struct{}

	// number of operations issued to the unit
	Issued uint64
}

// NewUnit is the preferred method of initialisation for the Unit type.
func NewUnit(kind Kind) *Unit {
	return &Unit{
		Kind: kind,
		busy: make(map[uint64]struct{}),
	}
}

func (u *Unit) String() string {
	return fmt.Sprintf("%s: %d issued", u.Kind, u.Issued)
}

// Busy returns true if the unit has been claimed for cycle.
func (u *Unit) Busy(cycle uint64) bool {
	_, ok := u.busy[cycle]
	return ok
}

// Free returns true if the unit is unclaimed for n consecutive cycles
// starting at from.
func (u *Unit) Free(from uint64, n int) bool {
	for i := range uint64(n) {
		if u.Busy(from + i) {
			return false
		}
	}
	return true
}

// Claim n consecutive cycles starting at from for a newly issued operation.
// Claiming a cycle that is already busy is a structural hazard that the
// caller should have avoided.
func (u *Unit) Claim(from uint64, n int) {
	for i := range uint64(n) {
		if u.Busy(from + i) {
			panic(fmt.Sprintf("units: %s already claimed for cycle %d", u.Kind, from+i))
		}
		u.busy[from+i] = struct{}{}
	}
	u.Issued++
}

// Claimed returns the number of cycles claimed.
func (u *Unit) Claimed() int {
	return len(u.busy)
}

// Clear all claims and reset the issue counter.
func (u *Unit) Clear() {
	clear(u.busy)
	u.Issued = 0
}

// Units is the collection of functional units in the backend.
type Units struct {
	LDU *Unit
	STU *Unit
	FXU *Unit
	FPU *Unit
	BRU *Unit
}

// NewUnits is the preferred method of initialisation for the Units type.
func NewUnits() *Units {
	return &Units{
		LDU: NewUnit(Load),
		STU: NewUnit(Store),
		FXU: NewUnit(FixedPoint),
		FPU: NewUnit(Float),
		BRU: NewUnit(Branch),
	}
}

// Get returns the unit of the specified kind.
func (u *Units) Get(kind Kind) *Unit {
	switch kind {
	case Load:
		return u.LDU
	case Store:
		return u.STU
	case FixedPoint:
		return u.FXU
	case Float:
		return u.FPU
	case Branch:
		return u.BRU
	}
	panic(fmt.Sprintf("units: unknown unit kind (%d)", int(kind)))
}

// All returns every unit in Kind order.
func (u *Units) All() []*Unit {
	all := make([]*Unit, 0, numKinds)
	for k := range numKinds {
		all = append(all, u.Get(k))
	}
	return all
}

// Clear every unit.
func (u *Units) Clear() {
	for _, v := range u.All() {
		v.Clear()
	}
}
