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

package operations

import (
	"github.com/pipesim/pipesim/hardware/machine"
)

// Process issues the operation on the machine and performs its data effect.
//
// The issue cycle is the earliest cycle, no earlier than the dispatch cycle
// or the cycle at which every source is ready, where the functional unit is
// free for the throughput of the operation and the issue width of the cycle
// has not been used up. The cycle counter of the machine advances to at least the
// completion of the operation.
//
// Returns true if the operation is a taken branch. An error is returned if a
// slot for the destination register cannot be allocated. Nothing has been
// issued in that case. The unit, the issue width and the counters are as they
// were before the call.
func Process(m *machine.Machine, o *Operation) (bool, error) {
	o.ReadyCycle = o.Ready(m)

	if err := o.target(m); err != nil {
		return false, err
	}

	o.Seq = m.Counters.Operations
	m.Counters.Operations++

	unit := m.Units.Get(o.Opcode.Definition().Unit)
	throughput := o.Throughput(m)

	issue := max(o.ReadyCycle, o.DispatchCycle)
	for m.IssueCount(issue) >= m.Params.MaxIssue || !unit.Free(issue, throughput) {
		issue++
	}
	m.Issue(issue)
	unit.Claim(issue, throughput)

	o.IssueCycle = issue
	o.CompleteCycle = issue + o.Latency(m)
	m.Advance(o.CompleteCycle)

	// the trace shows the source slots before the destination is bound
	m.Tracef("%09d , %20s , %09d , %09d , %09d\n", o.Seq, o.Disasm(m), o.ReadyCycle, o.IssueCycle, o.CompleteCycle)

	return o.execute(m), nil
}
