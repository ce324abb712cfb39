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

package params

import (
	"fmt"

	"github.com/pipesim/pipesim/curated"
)

// InvalidParams is the pattern for errors returned by Validate().
const InvalidParams = "params: %s"

// InstructionSize is the size in bytes of an encoded instruction.
const InstructionSize = 4

// CacheParams describes the geometry and hit latency of a single cache.
type CacheParams struct {
	Sets     int
	Ways     int
	LineSize int
	Latency  uint64
}

// Capacity of the cache in bytes.
func (c CacheParams) Capacity() int {
	return c.Sets * c.Ways * c.LineSize
}

func (c CacheParams) String() string {
	return fmt.Sprintf("%d bytes of capacity, %d sets, %d-way set associative, %d-byte line size",
		c.Capacity(), c.Sets, c.Ways, c.LineSize)
}

// Params are the configuration constants of a simulated processor. A machine
// is built from a copy of Params and the values never change for the lifetime
// of that machine.
type Params struct {
	// architected register file sizes
	GPRs int
	FPRs int

	// size of the physical register file. must be at least GPRs+FPRs
	PhysicalRegisters int

	// rebind the destination register to a free physical slot on every
	// write. if false each architected register keeps the slot it was given
	// by ZeroCtrs()
	Renaming bool

	L1D CacheParams
	L1I CacheParams
	L2  CacheParams
	L3  CacheParams

	// when Hierarchy is false the L1D is the only cache on the data path and
	// a miss costs MemoryLatency cycles. L1I, L2 and L3 are sized and cleared
	// but never accessed.
	//
	// when Hierarchy is true the L1D fills from the L2, the L2 fills from the
	// L3 and the L3 fills from memory. the latency of an access is the
	// latency of the nearest level holding the line.
	Hierarchy bool

	MemorySize    int
	MemoryLatency uint64

	// maximum number of operations issued in any one cycle
	MaxIssue int

	// when FrontEnd is true every instruction is fetched through the L1I, one
	// fetch per cycle, and spends DecodeLatency and DispatchLatency cycles in
	// the front end before its operation can issue. a taken branch stops
	// fetching until the branch completes. L1I misses cost MemoryLatency
	// cycles. instructions are not held in the L2 or L3.
	//
	// when FrontEnd is false every instruction is dispatched at cycle zero
	// and the L1I is never accessed.
	FrontEnd        bool
	DecodeLatency   uint64
	DispatchLatency uint64

	// latency of the non-memory functional units
	FXULatency uint64
	FPULatency uint64
	BRULatency uint64

	// number of consecutive cycles a floating-point operation occupies the
	// FPU. all other units have a throughput of one
	FPUThroughput int
}

// Default returns the reference machine.
func Default() Params {
	return Params{
		GPRs:              16,
		FPRs:              8,
		PhysicalRegisters: 64,
		Renaming:          true,
		L1D:               CacheParams{Sets: 16, Ways: 4, LineSize: 8, Latency: 2},
		L1I:               CacheParams{Sets: 16, Ways: 4, LineSize: 8, Latency: 2},
		L2:                CacheParams{Sets: 64, Ways: 4, LineSize: 8, Latency: 4},
		L3:                CacheParams{Sets: 64, Ways: 16, LineSize: 8, Latency: 8},
		Hierarchy:         false,
		MemorySize:        1024 * 1024,
		MemoryLatency:     300,
		MaxIssue:          1,
		FrontEnd:          false,
		DecodeLatency:     1,
		DispatchLatency:   1,
		FXULatency:        1,
		FPULatency:        1,
		BRULatency:        1,
		FPUThroughput:     1,
	}
}

func validateCache(label string, c CacheParams, memorySize int) error {
	if c.Sets <= 0 || c.Ways <= 0 || c.LineSize <= 0 {
		return curated.Errorf(InvalidParams, fmt.Sprintf("%s geometry must be positive (%d sets, %d ways, %d-byte lines)", label, c.Sets, c.Ways, c.LineSize))
	}
	if c.Latency == 0 {
		return curated.Errorf(InvalidParams, fmt.Sprintf("%s latency must be at least one cycle", label))
	}
	if memorySize%c.LineSize != 0 {
		return curated.Errorf(InvalidParams, fmt.Sprintf("memory size is not a multiple of the %s line size", label))
	}
	return nil
}

// Validate returns an InvalidParams error if the parameters do not describe a
// machine that can be simulated.
func (p Params) Validate() error {
	if p.GPRs <= 0 || p.FPRs <= 0 {
		return curated.Errorf(InvalidParams, "register files must have at least one register")
	}
	if p.PhysicalRegisters < p.GPRs+p.FPRs {
		return curated.Errorf(InvalidParams, fmt.Sprintf("physical register file (%d) smaller than architected registers (%d)", p.PhysicalRegisters, p.GPRs+p.FPRs))
	}
	if p.MemorySize <= 0 {
		return curated.Errorf(InvalidParams, "memory size must be positive")
	}
	if p.MaxIssue <= 0 {
		return curated.Errorf(InvalidParams, "issue width must be at least one")
	}
	if p.FXULatency == 0 || p.FPULatency == 0 || p.BRULatency == 0 {
		return curated.Errorf(InvalidParams, "unit latency must be at least one cycle")
	}
	if p.FPUThroughput <= 0 {
		return curated.Errorf(InvalidParams, "unit throughput must be at least one cycle")
	}

	for _, c := range []struct {
		label string
		c     CacheParams
	}{
		{"L1D", p.L1D}, {"L1I", p.L1I}, {"L2", p.L2}, {"L3", p.L3},
	} {
		if err := validateCache(c.label, c.c, p.MemorySize); err != nil {
			return err
		}
	}

	if p.FrontEnd && p.L1I.LineSize%InstructionSize != 0 {
		return curated.Errorf(InvalidParams, fmt.Sprintf("L1I line size must be a multiple of the instruction size (%d)", InstructionSize))
	}

	// a line in one level must fit inside a line of the next level
	if p.Hierarchy {
		if p.L2.LineSize%p.L1D.LineSize != 0 || p.L3.LineSize%p.L2.LineSize != 0 {
			return curated.Errorf(InvalidParams, "line sizes must divide the line size of the next cache level")
		}
	}

	return nil
}
