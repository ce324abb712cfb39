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

package regression_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pipesim/pipesim/curated"
	"github.com/pipesim/pipesim/environment"
	"github.com/pipesim/pipesim/hardware"
	"github.com/pipesim/pipesim/hardware/params"
	"github.com/pipesim/pipesim/kernels"
	"github.com/pipesim/pipesim/regression"
	"github.com/pipesim/pipesim/test"
)

func TestRegressAddAndRun(t *testing.T) {
	db := filepath.Join(t.TempDir(), "regressionDB")
	out := &strings.Builder{}

	reg, err := regression.NewTimingRegression("memcpy", 1, 0, "")
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, regression.RegressAdd(db, out, reg))
	test.ExpectEquality(t, reg.Instructions, uint64(11))
	test.ExpectEquality(t, reg.Cycles, uint64(603))
	test.ExpectEquality(t, reg.L1DMisses, uint64(2))

	d, err := os.ReadFile(db)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.HasPrefix(string(d), "000,timing,memcpy,1,0,,11,603,2,"+reg.Digest+","))
	test.ExpectEquality(t, len(reg.Digest), 40)

	out.Reset()
	test.DemandSuccess(t, regression.RegressList(db, out))
	test.ExpectEquality(t, out.String(), "000 [timing] memcpy n=1 m=0 cycles=603\nTotal: 1\n")

	sum, err := regression.RegressRun(db, out, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, sum.Succeed, 1)
	test.ExpectEquality(t, sum.Fail, 0)
}

func TestRegressMismatch(t *testing.T) {
	db := filepath.Join(t.TempDir(), "regressionDB")
	out := &strings.Builder{}

	// a recorded cycle count that the machine will not reproduce
	err := os.WriteFile(db, []byte("000,timing,memcpy,1,0,,11,600,2,,\n001,timing,memcpy,1,0,,11,603,2,,\n"), 0o600)
	test.DemandSuccess(t, err)

	sum, err := regression.RegressRun(db, out, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, sum.Succeed, 1)
	test.ExpectEquality(t, sum.Fail, 1)
	test.DemandEquality(t, len(sum.Failed), 1)
	test.ExpectEquality(t, sum.Failed[0], 0)
	test.ExpectSuccess(t, strings.Contains(out.String(), "cycles mismatch (603, expected 600)"))

	// running only the second entry
	sum, err = regression.RegressRun(db, out, []string{"1"})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, sum.Succeed, 1)
	test.ExpectEquality(t, sum.Skipped, 1)

	_, err = regression.RegressRun(db, out, []string{"one"})
	test.ExpectSuccess(t, curated.Is(err, regression.InvalidKey))
}

func TestRegressDigest(t *testing.T) {
	db := filepath.Join(t.TempDir(), "regressionDB")
	out := &strings.Builder{}

	// counters match but the digest does not
	err := os.WriteFile(db, []byte("000,timing,memcpy,1,0,,11,603,2,0000000000000000000000000000000000000000,\n"), 0o600)
	test.DemandSuccess(t, err)

	sum, err := regression.RegressRun(db, out, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, sum.Fail, 1)
	test.ExpectSuccess(t, strings.Contains(out.String(), "trace digest mismatch"))
}

func TestRegressPrefs(t *testing.T) {
	db := filepath.Join(t.TempDir(), "regressionDB")
	out := &strings.Builder{}

	reg, err := regression.NewTimingRegression("memcpy", 1, 0, "memory.latency::100")
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, regression.RegressAdd(db, out, reg))
	test.ExpectEquality(t, reg.Instructions, uint64(11))
	test.ExpectInequality(t, reg.Cycles, uint64(603))

	sum, err := regression.RegressRun(db, out, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, sum.Succeed, 1)

	_, err = regression.NewTimingRegression("memcpy", 1, 0, "memory.latency::100, l1d.sets::32")
	test.ExpectFailure(t, err)

	_, err = regression.NewTimingRegression("fft", 1, 0, "")
	test.ExpectSuccess(t, curated.Is(err, kernels.UnknownKernel))
}

func TestRegressDelete(t *testing.T) {
	db := filepath.Join(t.TempDir(), "regressionDB")
	out := &strings.Builder{}

	for _, n := range []int{1, 2} {
		reg, err := regression.NewTimingRegression("memcpy", n, 0, "")
		test.DemandSuccess(t, err)
		test.DemandSuccess(t, regression.RegressAdd(db, out, reg))
	}

	// declined
	test.DemandSuccess(t, regression.RegressDelete(db, out, strings.NewReader("n\n"), "0"))
	out.Reset()
	test.DemandSuccess(t, regression.RegressList(db, out))
	test.ExpectSuccess(t, strings.HasSuffix(out.String(), "Total: 2\n"))

	test.DemandSuccess(t, regression.RegressDelete(db, out, strings.NewReader("y\n"), "0"))
	out.Reset()
	test.DemandSuccess(t, regression.RegressList(db, out))
	test.ExpectSuccess(t, strings.HasPrefix(out.String(), "001 [timing] memcpy n=2"))
	test.ExpectSuccess(t, strings.HasSuffix(out.String(), "Total: 1\n"))

	test.ExpectFailure(t, regression.RegressDelete(db, out, nil, "0"))
	test.ExpectSuccess(t, curated.Is(regression.RegressDelete(db, out, nil, "x"), regression.InvalidKey))
}

func TestCases(t *testing.T) {
	c, err := regression.Cases("memcpy")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(c), 11)
	test.ExpectEquality(t, c[10].N, 1024)

	// 2 + 3 + 5 + 9 + 17 shapes
	c, err = regression.Cases("mxv")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(c), 36)
	test.ExpectEquality(t, c[0], regression.Case{Kernel: "mxv", N: 1, M: 2})

	_, err = regression.Cases("fft")
	test.ExpectSuccess(t, curated.Is(err, regression.NoSweep))
}

func TestSweep(t *testing.T) {
	cases, err := regression.Cases("mxv")
	test.DemandSuccess(t, err)
	cases = cases[:10]

	p := params.Default()

	var finished int
	results, err := regression.Sweep(context.Background(), p, cases, 4, func(_ regression.Case, _ kernels.Result) {
		finished++
	})
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(results), len(cases))
	test.ExpectEquality(t, finished, len(cases))

	// every result is the same as a run on a fresh simulator
	for i, c := range cases {
		test.ExpectSuccess(t, results[i].Pass(), c)

		env, err := environment.NewEnvironment("sweep", uint64(i), nil)
		test.DemandSuccess(t, err)
		sim, err := hardware.NewSimulator(env, p)
		test.DemandSuccess(t, err)
		f, err := kernels.NewFixture(c.Kernel, c.N, c.M)
		test.DemandSuccess(t, err)
		r := kernels.Run(sim, f, nil)

		test.ExpectEquality(t, results[i].Counters, r.Counters, c)
		test.ExpectEquality(t, results[i].L1D, r.L1D, c)
	}
}

func TestSweepCancel(t *testing.T) {
	cases, err := regression.Cases("memcpy")
	test.DemandSuccess(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = regression.Sweep(ctx, params.Default(), cases, 2, nil)
	test.ExpectFailure(t, err)
}

func TestSweepBadParams(t *testing.T) {
	p := params.Default()
	p.MaxIssue = 0

	_, err := regression.Sweep(context.Background(), p, []regression.Case{{Kernel: "memcpy", N: 1}}, 1, nil)
	test.ExpectFailure(t, err)
}
