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

package machine

import (
	"fmt"
	"io"
	"strings"

	"github.com/pipesim/pipesim/hardware/memory"
	"github.com/pipesim/pipesim/hardware/memory/cache"
	"github.com/pipesim/pipesim/hardware/params"
	"github.com/pipesim/pipesim/hardware/registers"
	"github.com/pipesim/pipesim/hardware/units"
)

// Counters are the running totals of a run. They are reset by ZeroCtrs() and
// otherwise only ever increase.
type Counters struct {
	Instructions uint64
	Operations   uint64
	Cycles       uint64
	LastIssued   uint64
	LastFetched  uint64
}

func (c Counters) String() string {
	return fmt.Sprintf("instructions = %d, operations = %d, cycles = %d", c.Instructions, c.Operations, c.Cycles)
}

// Caches of the machine.
type Caches struct {
	L1D *cache.Cache
	L1I *cache.Cache
	L2  *cache.Cache
	L3  *cache.Cache
}

// All returns the caches in order from nearest to furthest.
func (c Caches) All() []*cache.Cache {
	return []*cache.Cache{c.L1D, c.L1I, c.L2, c.L3}
}

// TraceHeader is the first line of trace output after ZeroCtrs().
const TraceHeader = "  instr # ,          instruction ,      op # ,            operation ,     ready ,    issued ,  complete"

// Machine is the complete state of a simulated processor. Nothing is shared
// between instances so independent runs on different machines can proceed
// concurrently. The hardware of a single machine must only be driven from one
// goroutine.
type Machine struct {
	Params params.Params

	Regs     *registers.File
	Mem      *memory.Memory
	Caches   Caches
	Units    *units.Units
	Counters Counters

	// trace output is written to Trace if Tracing is true
	Tracing bool
	Trace   io.Writer

	// number of operations issued in each cycle
	issued map[uint64]int

	// whether the trace header has been written since the last ZeroCtrs()
	headed bool

	// address of the next instruction to be fetched
	CIA uint32

	// earliest cycle at which the next fetch can start
	fetchStart uint64

	// the level adapters used when the L2 and L3 are on the data path
	l2 *cache.Level
	l3 *cache.Level
}

// InstructionSize is the number of bytes fetched for every instruction.
const InstructionSize = params.InstructionSize

// instructionStore is the backing store of the L1I. instruction memory is
// separate from data memory and its contents are never used.
type instructionStore struct{}

func (instructionStore) ReadLine(_ uint32, n int) []byte {
	return make([]byte, n)
}

func (instructionStore) Write(_ uint32, _ []byte) {}

// NewMachine is the preferred method of initialisation for the Machine type.
func NewMachine(p params.Params) (*Machine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	m := &Machine{
		Params: p,
		Regs:   registers.NewFile(p.GPRs, p.FPRs, p.PhysicalRegisters, p.Renaming),
		Mem:    memory.NewMemory(p.MemorySize, p.MemoryLatency),
		Caches: Caches{
			L1D: cache.NewCache("L1D", p.L1D.Sets, p.L1D.Ways, p.L1D.LineSize, p.L1D.Latency),
			L1I: cache.NewCache("L1I", p.L1I.Sets, p.L1I.Ways, p.L1I.LineSize, p.L1I.Latency),
			L2:  cache.NewCache("L2", p.L2.Sets, p.L2.Ways, p.L2.LineSize, p.L2.Latency),
			L3:  cache.NewCache("L3", p.L3.Sets, p.L3.Ways, p.L3.LineSize, p.L3.Latency),
		},
		Units:  units.NewUnits(),
		issued: make(map[uint64]int),
	}

	m.l3 = &cache.Level{Cache: m.Caches.L3, Next: m.Mem}
	m.l2 = &cache.Level{Cache: m.Caches.L2, Next: m.l3}

	return m, nil
}

func (m *Machine) String() string {
	s := strings.Builder{}
	s.WriteString(m.Counters.String())
	for _, c := range m.Caches.All() {
		s.WriteString(fmt.Sprintf(", %s(%s)", c.Label, c.Stats()))
	}
	return s.String()
}

// ZeroMem zeroes backing memory. The caches are not affected.
func (m *Machine) ZeroMem() {
	m.Mem.Zero()
}

// ZeroCtrs resets the machine ready for a new timed run. Counters, unit
// claims, the issue record, the register bindings and every cache are reset.
// Memory is not touched.
//
// Register values are zeroed so arguments for the run must be set after
// calling ZeroCtrs().
func (m *Machine) ZeroCtrs() {
	m.Counters = Counters{}
	m.Regs.Reset()
	m.Units.Clear()
	clear(m.issued)
	for _, c := range m.Caches.All() {
		c.Clear()
	}
	m.headed = false
	m.CIA = 0
	m.fetchStart = 0
}

// IssueCount returns the number of operations issued in cycle.
func (m *Machine) IssueCount(cycle uint64) int {
	return m.issued[cycle]
}

// Issue records an operation issued in cycle.
func (m *Machine) Issue(cycle uint64) {
	m.issued[cycle]++
	m.Counters.LastIssued = cycle
}

// Advance the cycle counter to at least cycle.
func (m *Machine) Advance(cycle uint64) {
	m.Counters.Cycles = max(m.Counters.Cycles, cycle)
}

// next returns what sits behind the L1D
func (m *Machine) next() cache.BackingStore {
	if m.Params.Hierarchy {
		m.l2.Now = m.Counters.Cycles
		m.l3.Now = m.Counters.Cycles
		return m.l2
	}
	return m.Mem
}

// Latency returns the number of cycles an access of n bytes at ea would take
// if it were made now.
func (m *Machine) Latency(ea uint32, n int) uint64 {
	if m.Caches.L1D.Contains(ea, n) {
		return m.Caches.L1D.Latency
	}
	if m.Params.Hierarchy {
		return m.l2.Latency(ea, n, m.Mem.Latency)
	}
	return m.Mem.Latency
}

// CacheReady returns the cycle at which the L1D line covering n bytes at ea
// is available. Zero if the line is not resident.
func (m *Machine) CacheReady(ea uint32, n int) uint64 {
	return m.Caches.L1D.Ready(ea, n)
}

// Load makes the line covering n bytes at ea resident in the L1D and returns
// the cached bytes. The access is counted. A line that was not resident is
// in flight until cycle ready.
func (m *Machine) Load(ea uint32, n int, ready uint64) []byte {
	missed := !m.Caches.L1D.Contains(ea, n)
	d := m.Caches.L1D.Fill(ea, n, m.Counters.Cycles, m.next())
	if missed {
		m.Caches.L1D.SetReady(ea, n, ready)
	}
	return d
}

// Store p at ea. The line is made resident in the L1D first (a counted
// access) and the write then goes through every level to memory.
func (m *Machine) Store(ea uint32, p []byte, ready uint64) {
	m.Load(ea, len(p), ready)
	m.Caches.L1D.Update(ea, p)
	m.next().Write(ea, p)
}

// Jump sets the address of the next instruction to be fetched.
func (m *Machine) Jump(cia uint32) {
	m.CIA = cia
}

// Redirect stops fetching until cycle. Used after a taken branch, which is
// not known to be taken until it completes.
func (m *Machine) Redirect(cycle uint64) {
	m.fetchStart = max(m.fetchStart, cycle)
}

// Fetch the instruction at CIA through the L1I and advance CIA to the next
// instruction. Returns the cycle at which the instruction is available to the
// decoder.
//
// Fetches start in order at most one per cycle. An instruction that hits a
// line still in flight waits for the line. No instruction is available
// before the instruction fetched before it.
func (m *Machine) Fetch() uint64 {
	const n = InstructionSize

	start := m.fetchStart
	m.fetchStart++

	ea := m.CIA - m.CIA%n
	m.CIA = ea + n

	l1i := m.Caches.L1I

	var fetched uint64
	if l1i.Contains(ea, n) {
		fetched = max(start+l1i.Latency, l1i.Ready(ea, n))
		l1i.Fill(ea, n, start, instructionStore{})
	} else {
		fetched = start + m.Mem.Latency
		l1i.Fill(ea, n, start, instructionStore{})
		l1i.SetReady(ea, n, fetched)
	}

	fetched = max(fetched, m.Counters.LastFetched)
	m.Counters.LastFetched = fetched
	return fetched
}

// Tracef writes to the trace output if tracing is enabled. The trace header
// is written before the first trace line after ZeroCtrs().
func (m *Machine) Tracef(format string, args ...any) {
	if !m.Tracing || m.Trace == nil {
		return
	}
	if !m.headed {
		m.headed = true
		io.WriteString(m.Trace, TraceHeader)
		io.WriteString(m.Trace, "\n")
	}
	fmt.Fprintf(m.Trace, format, args...)
}
