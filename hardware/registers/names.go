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

import "fmt"

// GPR is the index of a general-purpose register.
type GPR int

// General-purpose registers of the reference machine.
const (
	R0 GPR = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15
)

func (r GPR) String() string {
	return fmt.Sprintf("r%d", int(r))
}

// FPR is the index of a floating-point register.
type FPR int

// Floating-point registers of the reference machine.
const (
	F0 FPR = iota
	F1
	F2
	F3
	F4
	F5
	F6
	F7
)

func (r FPR) String() string {
	return fmt.Sprintf("f%d", int(r))
}

// Flags are set by a compare operation and consumed by conditional branches.
// Exactly one of LT, GT and EQ is true after a compare.
type Flags struct {
	LT bool
	GT bool
	EQ bool

	// cycle at which the flags are valid
	Ready uint64
}

func (f Flags) String() string {
	b := func(v bool, s string) string {
		if v {
			return s
		}
		return "-"
	}
	return fmt.Sprintf("%s%s%s (ready %d)", b(f.LT, "L"), b(f.GT, "G"), b(f.EQ, "E"), f.Ready)
}
