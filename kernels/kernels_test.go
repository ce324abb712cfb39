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

package kernels_test

import (
	"testing"

	"github.com/pipesim/pipesim/curated"
	"github.com/pipesim/pipesim/environment"
	"github.com/pipesim/pipesim/hardware"
	"github.com/pipesim/pipesim/hardware/params"
	"github.com/pipesim/pipesim/hardware/program"
	"github.com/pipesim/pipesim/kernels"
	"github.com/pipesim/pipesim/test"
)

func newSimulator(t *testing.T, p params.Params) *hardware.Simulator {
	t.Helper()
	env, err := environment.NewEnvironment(environment.MainEmulation, 0, nil)
	test.DemandSuccess(t, err)
	env.Normalise()
	sim, err := hardware.NewSimulator(env, p)
	test.DemandSuccess(t, err)
	return sim
}

func TestMemcpy(t *testing.T) {
	sim := newSimulator(t, params.Default())

	for _, n := range []int{1, 2, 7, 64, 100, 1024} {
		f := kernels.NewMemcpyFixture(n, false)
		r := kernels.Run(sim, f, nil)
		test.ExpectSuccess(t, r.Err, n)

		// one load and one store for every byte
		test.ExpectEquality(t, sim.Units.LDU.Issued+sim.Units.STU.Issued, uint64(2*n), n)
		test.ExpectEquality(t, r.Counters.Instructions, uint64(1+8*n+2), n)
		test.ExpectEquality(t, r.Counters.Operations, r.Counters.Instructions, n)
	}
}

func TestMemcpyTiming(t *testing.T) {
	sim := newSimulator(t, params.Default())

	r := kernels.Run(sim, kernels.NewMemcpyFixture(0, false), nil)
	test.ExpectSuccess(t, r.Err)
	test.ExpectEquality(t, r.Counters.Instructions, uint64(3))
	test.ExpectEquality(t, r.Counters.Cycles, uint64(3))

	// the load misses and the store waits for the load. the store also
	// misses. the increments are issued in the gaps before the load
	r = kernels.Run(sim, kernels.NewMemcpyFixture(1, false), nil)
	test.ExpectSuccess(t, r.Err)
	test.ExpectEquality(t, r.Counters.Instructions, uint64(11))
	test.ExpectEquality(t, r.Counters.Cycles, uint64(603))
	test.ExpectEquality(t, r.L1D.Accesses, uint64(2))
	test.ExpectEquality(t, r.L1D.Misses, uint64(2))
}

func TestMemcpyHalfword(t *testing.T) {
	sim := newSimulator(t, params.Default())

	for _, n := range []int{1, 3, 256} {
		f := kernels.NewMemcpyFixture(n, true)
		r := kernels.Run(sim, f, nil)
		test.ExpectSuccess(t, r.Err, n)
		test.ExpectEquality(t, sim.Units.LDU.Issued+sim.Units.STU.Issued, uint64(2*n), n)
	}
}

func TestMxv(t *testing.T) {
	sim := newSimulator(t, params.Default())

	f := &kernels.MxvFixture{
		M: 3,
		N: 2,
		A: []float64{0, 1, 2, 3, 4, 5},
		X: []float64{1, 2},
	}
	r := kernels.Run(sim, f, nil)
	test.DemandSuccess(t, r.Err)

	y := f.Y(sim)
	test.DemandEquality(t, len(y), 3)
	test.ExpectEquality(t, y[0], 2.0)
	test.ExpectEquality(t, y[1], 8.0)
	test.ExpectEquality(t, y[2], 14.0)
}

func TestMxvSweep(t *testing.T) {
	sim := newSimulator(t, params.Default())

	for m := 2; m <= 32; m *= 2 {
		for n := m / 2; n <= m; n *= 2 {
			f := kernels.NewMxvFixture(m, n)
			r := kernels.Run(sim, f, nil)
			test.ExpectSuccess(t, r.Err, f)

			y := f.Y(sim)
			for i := range m {
				test.ExpectEquality(t, y[i], float64(i*n*(n-1)/2), f, i)
			}
		}
	}
}

func TestMxvShape(t *testing.T) {
	sim := newSimulator(t, params.Default())
	f := &kernels.MxvFixture{M: 2, N: 2, A: []float64{1}, X: []float64{1, 2}}
	r := kernels.Run(sim, f, nil)
	test.ExpectFailure(t, r.Err)
	test.ExpectSuccess(t, curated.Is(r.Err, kernels.BadShape))
}

func TestSpmv(t *testing.T) {
	for _, hierarchy := range []bool{false, true} {
		for _, rowMajor := range []bool{false, true} {
			p := params.Default()
			p.Hierarchy = hierarchy
			sim := newSimulator(t, p)

			f, err := kernels.NewSpmvFixture(6, 5, rowMajor)
			test.DemandSuccess(t, err)
			r := kernels.Run(sim, f, nil)
			test.ExpectSuccess(t, r.Err, hierarchy, rowMajor)

			y := f.Y(sim)
			for i, v := range []float64{2, 11, 4, 24, 21, 52} {
				test.ExpectEquality(t, y[i], v, hierarchy, rowMajor, i)
			}

			if hierarchy {
				test.ExpectInequality(t, r.L2.Accesses, uint64(0))
			} else {
				test.ExpectEquality(t, r.L2.Accesses, uint64(0))
			}

			// the L2 and L3 are flushed after the run
			test.ExpectEquality(t, sim.Caches.L2.Dump(), "")
			test.ExpectEquality(t, sim.Caches.L3.Dump(), "")
		}
	}

	_, err := kernels.NewSpmvFixture(5, 5, false)
	test.ExpectFailure(t, err)
}

// running the same fixture twice gives the same counters and the same memory
func TestDeterminism(t *testing.T) {
	sim := newSimulator(t, params.Default())

	for _, name := range kernels.Names() {
		f, err := kernels.NewFixture(name, 16, 8)
		test.DemandSuccess(t, err, name)

		a := kernels.Run(sim, f, nil)
		test.ExpectSuccess(t, a.Err, name)
		memA := string(sim.Mem.Slice(0, 4096))
		regsA := sim.Regs.String()

		b := kernels.Run(sim, f, nil)
		test.ExpectSuccess(t, b.Err, name)
		memB := string(sim.Mem.Slice(0, 4096))
		regsB := sim.Regs.String()

		test.ExpectEquality(t, a.Counters, b.Counters, name)
		test.ExpectEquality(t, a.L1D, b.L1D, name)
		test.ExpectEquality(t, a.String(), b.String(), name)
		test.ExpectEquality(t, memA == memB, true, name)
		test.ExpectEquality(t, regsA, regsB, name)
	}
}

// the cycle counter never goes backwards and no unit is claimed twice for the
// same cycle. a double claim panics
func TestMonotonicCycles(t *testing.T) {
	p := params.Default()
	p.MaxIssue = 2
	p.FPUThroughput = 2
	sim := newSimulator(t, p)

	var last uint64
	var blocks int
	r := kernels.Run(sim, kernels.NewMxvFixture(4, 4), func(_ program.Label) (program.State, error) {
		blocks++
		test.ExpectSuccess(t, sim.Counters.Cycles >= last)
		last = sim.Counters.Cycles
		return program.Running, nil
	})
	test.ExpectSuccess(t, r.Err)
	test.ExpectInequality(t, blocks, 0)
	test.ExpectEquality(t, sim.Units.FPU.Claimed(), int(sim.Units.FPU.Issued)*2)
}

func TestContinueCheckEnding(t *testing.T) {
	sim := newSimulator(t, params.Default())

	var blocks int
	r := kernels.Run(sim, kernels.NewMemcpyFixture(100, false), func(_ program.Label) (program.State, error) {
		blocks++
		if blocks > 3 {
			return program.Ending, nil
		}
		return program.Running, nil
	})

	// the copy was stopped early so the check fails
	test.ExpectFailure(t, r.Err)
	test.ExpectSuccess(t, curated.Is(r.Err, kernels.CheckFailed))
}

// register allocation does not change timing so a register file with no
// spare slot runs every kernel in the same number of cycles
func TestMinimalRegisterFile(t *testing.T) {
	minimal := params.Default()
	minimal.PhysicalRegisters = minimal.GPRs + minimal.FPRs

	for _, name := range kernels.Names() {
		fx, err := kernels.NewFixture(name, 8, 8)
		test.DemandSuccess(t, err)
		ref := kernels.Run(newSimulator(t, params.Default()), fx, nil)
		test.DemandSuccess(t, ref.Err, name)

		fx, err = kernels.NewFixture(name, 8, 8)
		test.DemandSuccess(t, err)
		sim := newSimulator(t, minimal)
		r := kernels.Run(sim, fx, nil)
		test.ExpectSuccess(t, r.Err, name)
		test.ExpectSuccess(t, sim.Err(), name)
		test.ExpectEquality(t, r.Counters, ref.Counters, name)
		test.ExpectEquality(t, sim.Regs.Free(), 0, name)
	}
}

func TestNoFit(t *testing.T) {
	p := params.Default()
	p.MemorySize = 1024
	sim := newSimulator(t, p)

	r := kernels.Run(sim, kernels.NewMemcpyFixture(100, false), nil)
	test.ExpectFailure(t, r.Err)
	test.ExpectSuccess(t, curated.Is(r.Err, kernels.NoFit))
}

func TestNewFixture(t *testing.T) {
	test.ExpectEquality(t, len(kernels.Names()), 4)

	for _, name := range kernels.Names() {
		f, err := kernels.NewFixture(name, 8, 8)
		test.ExpectSuccess(t, err, name)
		test.ExpectEquality(t, f.Name(), name)
	}

	_, err := kernels.NewFixture("fft", 8, 8)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, kernels.UnknownKernel))
}

// instruction fetch adds front end latency to every kernel without changing
// the number of instructions or data accesses
func TestFrontEnd(t *testing.T) {
	fetching := params.Default()
	fetching.FrontEnd = true

	for _, name := range kernels.Names() {
		fx, err := kernels.NewFixture(name, 8, 8)
		test.DemandSuccess(t, err)
		ref := kernels.Run(newSimulator(t, params.Default()), fx, nil)
		test.DemandSuccess(t, ref.Err, name)

		fx, err = kernels.NewFixture(name, 8, 8)
		test.DemandSuccess(t, err)
		sim := newSimulator(t, fetching)
		r := kernels.Run(sim, fx, nil)
		test.ExpectSuccess(t, r.Err, name)
		test.ExpectEquality(t, r.Counters.Instructions, ref.Counters.Instructions, name)
		test.ExpectEquality(t, r.L1D.Accesses, ref.L1D.Accesses, name)
		test.ExpectSuccess(t, r.Counters.Cycles > ref.Counters.Cycles, name)
		test.ExpectInequality(t, r.Counters.LastFetched, uint64(0), name)

		l1i := sim.Caches.L1I.Stats()
		test.ExpectEquality(t, l1i.Accesses, r.Counters.Instructions, name)
		test.ExpectSuccess(t, l1i.Hits > 0, name)
	}
}
