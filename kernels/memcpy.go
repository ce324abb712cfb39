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

// Memcpy copies R5 bytes from the address in R4 to the address in R3.
func Memcpy(sim *hardware.Simulator) *program.Program {
	prg := program.NewProgram("memcpy", "entry")

	prg.Define("entry", func() program.Label {
		sim.Addi(registers.R7, registers.R3, 0)
		return "loop"
	})

	prg.Define("loop", func() program.Label {
		sim.Cmpi(registers.R5, 0)
		if sim.Beq("end") {
			return "end"
		}
		sim.Lbz(registers.R6, registers.R4)
		sim.Stb(registers.R6, registers.R7)
		sim.Addi(registers.R4, registers.R4, 1)
		sim.Addi(registers.R7, registers.R7, 1)
		sim.Addi(registers.R5, registers.R5, -1)
		sim.B("loop")
		return "loop"
	})

	prg.Define("end", func() program.Label {
		return program.Halt
	})

	return prg
}

// MemcpyHalfword copies R5 halfwords from the address in R4 to the address in
// R3.
func MemcpyHalfword(sim *hardware.Simulator) *program.Program {
	prg := program.NewProgram("memcpyh", "entry")

	prg.Define("entry", func() program.Label {
		sim.Addi(registers.R7, registers.R3, 0)
		return "loop"
	})

	prg.Define("loop", func() program.Label {
		sim.Cmpi(registers.R5, 0)
		if sim.Beq("end") {
			return "end"
		}
		sim.Lhz(registers.R6, registers.R4)
		sim.Sth(registers.R6, registers.R7)
		sim.Addi(registers.R4, registers.R4, 2)
		sim.Addi(registers.R7, registers.R7, 2)
		sim.Addi(registers.R5, registers.R5, -1)
		sim.B("loop")
		return "loop"
	})

	prg.Define("end", func() program.Label {
		return program.Halt
	})

	return prg
}

// MemcpyFixture copies N elements of random bytes from Src to Dest.
type MemcpyFixture struct {
	N        int
	Src      uint32
	Dest     uint32
	Halfword bool

	// random contents of the source. generated on first use so that every
	// run of the fixture copies the same data
	data []byte
}

// NewMemcpyFixture is the preferred method of initialisation for the
// MemcpyFixture type. The source is at address zero and the destination at
// the first multiple of 1024 that does not overlap the source.
func NewMemcpyFixture(n int, halfword bool) *MemcpyFixture {
	f := &MemcpyFixture{
		N:        n,
		Halfword: halfword,
	}
	f.Dest = uint32(max(1024, (f.bytes()+1023)/1024*1024))
	return f
}

// number of bytes copied
func (f *MemcpyFixture) bytes() int {
	if f.Halfword {
		return f.N * 2
	}
	return f.N
}

// Name implements the Fixture interface.
func (f *MemcpyFixture) Name() string {
	if f.Halfword {
		return "memcpyh"
	}
	return "memcpy"
}

func (f *MemcpyFixture) String() string {
	return fmt.Sprintf("%s n = %6d", f.Name(), f.N)
}

// Memory implements the Fixture interface.
func (f *MemcpyFixture) Memory(sim *hardware.Simulator) error {
	if err := fits(sim, f.Name(), int(f.Dest)+f.bytes()); err != nil {
		return err
	}
	if f.data == nil {
		f.data = make([]byte, f.bytes())
		sim.Env().Random.Bytes(f.data)
	}
	sim.Mem.Write(f.Src, f.data)
	return nil
}

// Arguments implements the Fixture interface.
func (f *MemcpyFixture) Arguments(sim *hardware.Simulator) {
	sim.Regs.SetGPR(registers.R3, f.Dest)
	sim.Regs.SetGPR(registers.R4, f.Src)
	sim.Regs.SetGPR(registers.R5, uint32(f.N))
}

// Program implements the Fixture interface.
func (f *MemcpyFixture) Program(sim *hardware.Simulator) *program.Program {
	if f.Halfword {
		return MemcpyHalfword(sim)
	}
	return Memcpy(sim)
}

// Check implements the Fixture interface.
func (f *MemcpyFixture) Check(sim *hardware.Simulator) error {
	for i := range uint32(f.bytes()) {
		s := sim.Mem.Peek(f.Src + i)
		d := sim.Mem.Peek(f.Dest + i)
		if s != d {
			return curated.Errorf(CheckFailed, f.Name(), fmt.Sprintf("byte %d is %#02x not %#02x", i, d, s))
		}
	}
	return nil
}
