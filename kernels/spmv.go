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

// Spmv computes the sparse matrix-vector product y += A.x where A is given as
// R4 coordinate triples. Row indices (32 bit) are at the address in R5,
// column indices (32 bit) at R6 and the values at R7. The vector x is at R8
// and y at R3.
func Spmv(sim *hardware.Simulator) *program.Program {
	prg := program.NewProgram("spmv", "loop")

	prg.Define("loop", func() program.Label {
		sim.Cmpi(registers.R4, 0)
		if sim.Beq("end") {
			return "end"
		}
		sim.Lwz(registers.R12, registers.R5)
		sim.Lwz(registers.R13, registers.R6)
		sim.Muli(registers.R12, registers.R12, 8)
		sim.Muli(registers.R13, registers.R13, 8)
		sim.Add(registers.R12, registers.R12, registers.R3)
		sim.Add(registers.R13, registers.R13, registers.R8)
		sim.Lfd(registers.F0, registers.R13)
		sim.Lfd(registers.F1, registers.R12)
		sim.Lfd(registers.F2, registers.R7)
		sim.Fmul(registers.F2, registers.F2, registers.F0)
		sim.Fadd(registers.F1, registers.F1, registers.F2)
		sim.Stfd(registers.F1, registers.R12)
		sim.Addi(registers.R5, registers.R5, 4)
		sim.Addi(registers.R6, registers.R6, 4)
		sim.Addi(registers.R7, registers.R7, 8)
		sim.Addi(registers.R4, registers.R4, -1)
		sim.B("loop")
		return "loop"
	})

	prg.Define("end", func() program.Label {
		return program.Halt
	})

	return prg
}

// the coordinate triples of the reference matrix in column major order
var (
	spmvColA = []float64{0, 5, 2, 4, 1, 8, 3, 7, 6, 9}
	spmvColI = []uint32{0, 3, 1, 2, 0, 5, 1, 4, 3, 5}
	spmvColJ = []uint32{0, 0, 1, 1, 2, 2, 3, 3, 4, 4}
)

// the same matrix in row major order
var (
	spmvRowA = []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	spmvRowI = []uint32{0, 0, 1, 1, 2, 3, 3, 4, 5, 5}
	spmvRowJ = []uint32{0, 2, 1, 3, 1, 0, 4, 3, 2, 4}
)

// SpmvFixture multiplies the reference sparse matrix with x_j = j. The
// matrix has ten nonzeros in six rows and five columns. The layout in memory
// is y, x, the values of A, the row indices and then the column indices.
type SpmvFixture struct {
	M int
	N int

	A []float64
	I []uint32
	J []uint32
}

// NewSpmvFixture is the preferred method of initialisation for the
// SpmvFixture type. M and N must be large enough for the reference matrix.
// The rowMajor argument selects the order of the triples.
func NewSpmvFixture(m, n int, rowMajor bool) (*SpmvFixture, error) {
	if m < 6 || n < 5 {
		return nil, curated.Errorf(BadShape, "spmv", fmt.Sprintf("matrix must be at least 6x5 (not %dx%d)", m, n))
	}

	f := &SpmvFixture{M: m, N: n}
	if rowMajor {
		f.A, f.I, f.J = spmvRowA, spmvRowI, spmvRowJ
	} else {
		f.A, f.I, f.J = spmvColA, spmvColI, spmvColJ
	}
	return f, nil
}

func (f *SpmvFixture) y() uint32 {
	return 0
}

func (f *SpmvFixture) x() uint32 {
	return f.y() + uint32(f.M*8)
}

func (f *SpmvFixture) a() uint32 {
	return f.x() + uint32(f.N*8)
}

func (f *SpmvFixture) i() uint32 {
	return f.a() + uint32(len(f.A)*8)
}

func (f *SpmvFixture) j() uint32 {
	return f.i() + uint32(len(f.I)*4)
}

// Name implements the Fixture interface.
func (f *SpmvFixture) Name() string {
	return "spmv"
}

func (f *SpmvFixture) String() string {
	return fmt.Sprintf("spmv M = %6d, N = %6d", f.M, f.N)
}

// Memory implements the Fixture interface.
func (f *SpmvFixture) Memory(sim *hardware.Simulator) error {
	if err := fits(sim, f.Name(), int(f.j())+len(f.J)*4); err != nil {
		return err
	}
	for j := range f.N {
		sim.Mem.PokeFloat64(f.x()+uint32(j*8), float64(j))
	}
	for k := range f.A {
		sim.Mem.PokeFloat64(f.a()+uint32(k*8), f.A[k])
		sim.Mem.PokeUint32(f.i()+uint32(k*4), f.I[k])
		sim.Mem.PokeUint32(f.j()+uint32(k*4), f.J[k])
	}
	return nil
}

// Arguments implements the Fixture interface.
func (f *SpmvFixture) Arguments(sim *hardware.Simulator) {
	sim.Regs.SetGPR(registers.R3, f.y())
	sim.Regs.SetGPR(registers.R4, uint32(len(f.A)))
	sim.Regs.SetGPR(registers.R5, f.i())
	sim.Regs.SetGPR(registers.R6, f.j())
	sim.Regs.SetGPR(registers.R7, f.a())
	sim.Regs.SetGPR(registers.R8, f.x())
}

// Program implements the Fixture interface.
func (f *SpmvFixture) Program(sim *hardware.Simulator) *program.Program {
	return Spmv(sim)
}

// Expected returns the expected value of y.
func (f *SpmvFixture) Expected() []float64 {
	y := make([]float64, f.M)
	for k := range f.A {
		y[f.I[k]] += f.A[k] * float64(f.J[k])
	}
	return y
}

// Y returns the values of y in memory.
func (f *SpmvFixture) Y(sim *hardware.Simulator) []float64 {
	y := make([]float64, f.M)
	for i := range y {
		y[i] = sim.Mem.PeekFloat64(f.y() + uint32(i*8))
	}
	return y
}

// Check implements the Fixture interface. The L2 and L3 are flushed after the
// check so that a following run on the same simulator starts cold.
func (f *SpmvFixture) Check(sim *hardware.Simulator) error {
	defer func() {
		sim.Caches.L2.Flush()
		sim.Caches.L3.Flush()
	}()
	return checkVector(f.Name(), f.Y(sim), f.Expected())
}
