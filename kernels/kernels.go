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
	"sort"
	"strings"

	"github.com/pipesim/pipesim/curated"
	"github.com/pipesim/pipesim/hardware"
	"github.com/pipesim/pipesim/hardware/machine"
	"github.com/pipesim/pipesim/hardware/memory/cache"
	"github.com/pipesim/pipesim/hardware/program"
)

// Sentinal error patterns.
const (
	UnknownKernel = "kernels: unknown kernel (%s)"
	CheckFailed   = "kernels: %s: %s"
	NoFit         = "kernels: %s: fixture needs %d bytes of memory (%d available)"
	BadShape      = "kernels: %s: %s"
)

// Fixture arranges memory and arguments for a kernel and checks the result
// after the kernel has run.
type Fixture interface {
	fmt.Stringer

	// name of the kernel
	Name() string

	// populate memory. memory will have been zeroed
	Memory(sim *hardware.Simulator) error

	// set the argument registers. counters and registers will have been reset
	Arguments(sim *hardware.Simulator)

	// the program to run
	Program(sim *hardware.Simulator) *program.Program

	// check the state of memory after the program has run
	Check(sim *hardware.Simulator) error
}

// Result of running a fixture.
type Result struct {
	Fixture  string
	Counters machine.Counters
	L1D      cache.Statistics
	L2       cache.Statistics
	L3       cache.Statistics
	Err      error
}

// Pass returns true if the fixture ran and the result was correct.
func (r Result) Pass() bool {
	return r.Err == nil
}

func (r Result) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s : instructions = %6d, cycles = %8d, L1D(access = %6d, hit = %6d, miss = %6d)",
		r.Fixture, r.Counters.Instructions, r.Counters.Cycles, r.L1D.Accesses, r.L1D.Hits, r.L1D.Misses))
	if r.L2.Accesses > 0 || r.L3.Accesses > 0 {
		s.WriteString(fmt.Sprintf(", L2(miss = %6d), L3(miss = %6d)", r.L2.Misses, r.L3.Misses))
	}
	if r.Pass() {
		s.WriteString(" | PASS")
	} else {
		s.WriteString(fmt.Sprintf(" | FAIL (%v)", r.Err))
	}
	return s.String()
}

// Run the fixture on the simulator. Memory is zeroed and populated, the
// counters are reset and the arguments set before the kernel is run. The
// continueCheck function can be nil.
func Run(sim *hardware.Simulator, f Fixture, continueCheck func(next program.Label) (program.State, error)) Result {
	r := Result{Fixture: f.String()}

	sim.ZeroMem()
	if err := f.Memory(sim); err != nil {
		r.Err = err
		return r
	}

	sim.ZeroCtrs()
	f.Arguments(sim)

	r.Err = sim.Run(f.Program(sim), continueCheck)
	if r.Err == nil {
		r.Err = f.Check(sim)
	}

	r.Counters = sim.Counters
	r.L1D = sim.Caches.L1D.Stats()
	r.L2 = sim.Caches.L2.Stats()
	r.L3 = sim.Caches.L3.Stats()

	return r
}

// fits returns an error if n bytes do not fit in the simulator's memory
func fits(sim *hardware.Simulator, name string, n int) error {
	if n > sim.Mem.Size() {
		return curated.Errorf(NoFit, name, n, sim.Mem.Size())
	}
	return nil
}

// the fixture constructors by name. the arguments are the size parameters of
// the kernel. not every kernel uses both
var fixtures = map[string]func(n, m int) (Fixture, error){
	"memcpy": func(n, _ int) (Fixture, error) {
		return NewMemcpyFixture(n, false), nil
	},
	"memcpyh": func(n, _ int) (Fixture, error) {
		return NewMemcpyFixture(n, true), nil
	},
	"mxv": func(n, m int) (Fixture, error) {
		return NewMxvFixture(m, n), nil
	},
	"spmv": func(n, m int) (Fixture, error) {
		return NewSpmvFixture(m, n, false)
	},
}

// Names returns the names of every kernel in alphabetical order.
func Names() []string {
	n := make([]string, 0, len(fixtures))
	for k := range fixtures {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

// NewFixture returns a fixture for the named kernel. The meaning of n and m
// depends on the kernel:
//
//	memcpy   n bytes
//	memcpyh  n halfwords
//	mxv      m rows, n columns
//	spmv     m rows, n columns (at least 6 and 5)
func NewFixture(name string, n, m int) (Fixture, error) {
	f, ok := fixtures[name]
	if !ok {
		return nil, curated.Errorf(UnknownKernel, name)
	}
	return f(n, m)
}
