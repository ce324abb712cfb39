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

package params_test

import (
	"testing"

	"github.com/pipesim/pipesim/curated"
	"github.com/pipesim/pipesim/hardware/params"
	"github.com/pipesim/pipesim/test"
)

func TestDefault(t *testing.T) {
	p := params.Default()
	test.ExpectSuccess(t, p.Validate())
	test.ExpectEquality(t, p.L1D.Capacity(), 512)
	test.ExpectEquality(t, p.L3.Capacity(), 8192)
	test.ExpectEquality(t, p.L1D.String(), "512 bytes of capacity, 16 sets, 4-way set associative, 8-byte line size")

	// the front end is off in the reference machine
	test.ExpectFailure(t, p.FrontEnd)
	test.ExpectEquality(t, p.DecodeLatency, uint64(1))
	test.ExpectEquality(t, p.DispatchLatency, uint64(1))
}

func TestValidate(t *testing.T) {
	p := params.Default()
	p.PhysicalRegisters = p.GPRs + p.FPRs - 1
	err := p.Validate()
	test.ExpectSuccess(t, curated.Is(err, params.InvalidParams))

	// exactly enough physical registers is fine
	p.PhysicalRegisters = p.GPRs + p.FPRs
	test.ExpectSuccess(t, p.Validate())

	p = params.Default()
	p.MaxIssue = 0
	test.ExpectFailure(t, p.Validate())

	p = params.Default()
	p.L1D.Ways = 0
	test.ExpectFailure(t, p.Validate())

	p = params.Default()
	p.MemorySize = 1001
	test.ExpectFailure(t, p.Validate())

	p = params.Default()
	p.FPUThroughput = 0
	test.ExpectFailure(t, p.Validate())

	// line sizes are only checked against each other when the hierarchy is
	// being used
	p = params.Default()
	p.L1D.LineSize = 16
	test.ExpectSuccess(t, p.Validate())
	p.Hierarchy = true
	test.ExpectFailure(t, p.Validate())

	// L1I lines must hold whole instructions but only when fetching
	p = params.Default()
	p.L1I.LineSize = 2
	test.ExpectSuccess(t, p.Validate())
	p.FrontEnd = true
	test.ExpectFailure(t, p.Validate())
}
