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

package program_test

import (
	"errors"
	"testing"

	"github.com/pipesim/pipesim/curated"
	"github.com/pipesim/pipesim/hardware/program"
	"github.com/pipesim/pipesim/test"
)

func countdown(n *int, trail *[]program.Label) *program.Program {
	prg := program.NewProgram("countdown", "entry")
	prg.Define("entry", func() program.Label {
		*trail = append(*trail, "entry")
		return "loop"
	})
	prg.Define("loop", func() program.Label {
		*trail = append(*trail, "loop")
		if *n == 0 {
			return "end"
		}
		*n--
		return "loop"
	})
	prg.Define("end", func() program.Label {
		*trail = append(*trail, "end")
		return program.Halt
	})
	return prg
}

func TestRun(t *testing.T) {
	n := 3
	var trail []program.Label
	prg := countdown(&n, &trail)

	blocks, err := prg.Run(nil)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, blocks, 6)
	test.ExpectEquality(t, n, 0)
	test.DemandEquality(t, len(trail), 6)
	test.ExpectEquality(t, trail[0], program.Label("entry"))
	test.ExpectEquality(t, trail[5], program.Label("end"))

	test.ExpectEquality(t, len(prg.Labels()), 3)
	test.ExpectEquality(t, prg.Labels()[0], program.Label("end"))
}

func TestEnding(t *testing.T) {
	n := 100
	var trail []program.Label
	prg := countdown(&n, &trail)

	var seen int
	blocks, err := prg.Run(func(next program.Label) (program.State, error) {
		seen++
		if seen > 4 {
			return program.Ending, nil
		}
		return program.Running, nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, blocks, 4)
	test.ExpectEquality(t, n, 97)
}

func TestContinueCheckError(t *testing.T) {
	n := 100
	var trail []program.Label
	prg := countdown(&n, &trail)

	stop := errors.New("stop")
	blocks, err := prg.Run(func(next program.Label) (program.State, error) {
		if next == "loop" {
			return program.Running, stop
		}
		return program.Running, nil
	})
	test.ExpectEquality(t, err, stop)
	test.ExpectEquality(t, blocks, 1)
}

func TestUndefinedLabel(t *testing.T) {
	prg := program.NewProgram("broken", "entry")
	prg.Define("entry", func() program.Label {
		return "missing"
	})
	blocks, err := prg.Run(nil)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, program.UndefinedLabel))
	test.ExpectEquality(t, blocks, 1)
	test.ExpectEquality(t, err.Error(), "program: broken: undefined label (missing)")
}

func TestDefineHalt(t *testing.T) {
	defer func() {
		test.ExpectInequality(t, recover(), nil)
	}()
	program.NewProgram("broken", "entry").Define(program.Halt, func() program.Label { return program.Halt })
}

func TestAddress(t *testing.T) {
	n := 0
	var trail []program.Label
	prg := countdown(&n, &trail)

	for i, l := range []program.Label{"entry", "loop", "end"} {
		a, ok := prg.Address(l)
		test.ExpectSuccess(t, ok, l)
		test.ExpectEquality(t, a, uint32(i*program.BlockSpan), l)
	}

	// redefining a block keeps its address
	prg.Define("entry", func() program.Label { return program.Halt })
	a, _ := prg.Address("entry")
	test.ExpectEquality(t, a, uint32(0))

	_, ok := prg.Address("missing")
	test.ExpectFailure(t, ok)
}
