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

package kernels

import (
	"fmt"

	"github.com/pipesim/pipesim/curated"
	"github.com/pipesim/pipesim/hardware"
	"github.com/pipesim/pipesim/hardware/program"
	"github.com/pipesim/pipesim/hardware/registers"
)

// Mxv computes the dense matrix-vector product y = A.x where A has R6 rows
// and R7 columns stored in row major order at the address in R4. The vector x
// is at the address in R5 and y is written to the address in R3.
func Mxv(sim *hardware.Simulator) *program.Program {
	prg := program.NewProgram("mxv", "entry")

	prg.Define("entry", func() program.Label {
		sim.Addi(registers.R9, registers.R6, 0)
		return "outer"
	})

	prg.Define("outer", func() program.Label {
		sim.Cmpi(registers.R9, 0)
		if sim.Beq("end") {
			return "end"
		}
		sim.Addi(registers.R8, registers.R5, 0)
		sim.Zd(registers.F0)
		sim.Addi(registers.R10, registers.R7, 0)
		return "inner"
	})

	prg.Define("inner", func() program.Label {
		sim.Cmpi(registers.R10, 0)
		if sim.Beq("store") {
			return "store"
		}
		sim.Lfd(registers.F1, registers.R8)
		sim.Lfd(registers.F2, registers.R4)
		sim.Fmul(registers.F3, registers.F1, registers.F2)
		sim.Fadd(registers.F0, registers.F0, registers.F3)
		sim.Addi(registers.R8, registers.R8, 8)
		sim.Addi(registers.R4, registers.R4, 8)
		sim.Addi(registers.R10, registers.R10, -1)
		sim.B("inner")
		return "inner"
	})

	prg.Define("store", func() program.Label {
		sim.Stfd(registers.F0, registers.R3)
		sim.Addi(registers.R3, registers.R3, 8)
		sim.Addi(registers.R9, registers.R9, -1)
		sim.B("outer")
		return "outer"
	})

	prg.Define("end", func() program.Label {
		return program.Halt
	})

	return prg
}

// MxvFixture multiplies an M by N matrix with a vector. The layout in memory
// is y, then x, then A.
type MxvFixture struct {
	M int
	N int

	// row major values of A and the values of x. the lengths must be M*N and
	// N respectively
	A []float64
	X []float64
}

// NewMxvFixture is the preferred method of initialisation for the MxvFixture
// type. Row i of A is filled with the value i and x_j is j, so that y_i is
// i*N*(N-1)/2.
func NewMxvFixture(m, n int) *MxvFixture {
	f := &MxvFixture{
		M: m,
		N: n,
		A: make([]float64, m*n),
		X: make([]float64, n),
	}
	for i := range m {
		for j := range n {
			f.A[i*n+j] = float64(i)
		}
	}
	for j := range n {
		f.X[j] = float64(j)
	}
	return f
}

func (f *MxvFixture) y() uint32 {
	return 0
}

func (f *MxvFixture) x() uint32 {
	return f.y() + uint32(f.M*8)
}

func (f *MxvFixture) a() uint32 {
	return f.x() + uint32(f.N*8)
}

// Name implements the Fixture interface.
func (f *MxvFixture) Name() string {
	return "mxv"
}

func (f *MxvFixture) String() string {
	return fmt.Sprintf("mxv M = %6d, N = %6d", f.M, f.N)
}

// Memory implements the Fixture interface.
func (f *MxvFixture) Memory(sim *hardware.Simulator) error {
	if len(f.A) != f.M*f.N || len(f.X) != f.N {
		return curated.Errorf(BadShape, f.Name(), fmt.Sprintf("A has %d values and x has %d for a %dx%d matrix", len(f.A), len(f.X), f.M, f.N))
	}
	if err := fits(sim, f.Name(), int(f.a())+len(f.A)*8); err != nil {
		return err
	}
	for j, v := range f.X {
		sim.Mem.PokeFloat64(f.x()+uint32(j*8), v)
	}
	for k, v := range f.A {
		sim.Mem.PokeFloat64(f.a()+uint32(k*8), v)
	}
	return nil
}

// Arguments implements the Fixture interface.
func (f *MxvFixture) Arguments(sim *hardware.Simulator) {
	sim.Regs.SetGPR(registers.R3, f.y())
	sim.Regs.SetGPR(registers.R4, f.a())
	sim.Regs.SetGPR(registers.R5, f.x())
	sim.Regs.SetGPR(registers.R6, uint32(f.M))
	sim.Regs.SetGPR(registers.R7, uint32(f.N))
}

// Program implements the Fixture interface.
func (f *MxvFixture) Program(sim *hardware.Simulator) *program.Program {
	return Mxv(sim)
}

// Expected returns the expected value of y. The sums are accumulated in the
// same order as the kernel so the values are exact.
func (f *MxvFixture) Expected() []float64 {
	y := make([]float64, f.M)
	for i := range f.M {
		for j := range f.N {
			y[i] += f.X[j] * f.A[i*f.N+j]
		}
	}
	return y
}

// Y returns the values of y in memory.
func (f *MxvFixture) Y(sim *hardware.Simulator) []float64 {
	y := make([]float64, f.M)
	for i := range y {
		y[i] = sim.Mem.PeekFloat64(f.y() + uint32(i*8))
	}
	return y
}

// Check implements the Fixture interface.
func (f *MxvFixture) Check(sim *hardware.Simulator) error {
	return checkVector(f.Name(), f.Y(sim), f.Expected())
}

func checkVector(name string, got, expected []float64) error {
	for i := range expected {
		if got[i] != expected[i] {
			return curated.Errorf(CheckFailed, name, fmt.Sprintf("y[%d] is %g not %g", i, got[i], expected[i]))
		}
	}
	return nil
}
