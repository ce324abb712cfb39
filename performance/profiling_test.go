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

package performance_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pipesim/pipesim/curated"
	"github.com/pipesim/pipesim/performance"
	"github.com/pipesim/pipesim/test"
)

func TestParseProfileString(t *testing.T) {
	p, err := performance.ParseProfileString("cpu, mem")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU|performance.ProfileMem)
	test.ExpectEquality(t, p.String(), "CPU,MEM")

	p, err = performance.ParseProfileString("")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileNone)
	test.ExpectEquality(t, p.String(), "NONE")

	p, err = performance.ParseProfileString("all")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p.String(), "CPU,MEM,TRACE")

	_, err = performance.ParseProfileString("gpu")
	test.ExpectSuccess(t, curated.Is(err, performance.ProfileError))
}

func TestRunProfiler(t *testing.T) {
	header := filepath.Join(t.TempDir(), "test")

	var ran bool
	err := performance.RunProfiler(performance.ProfileCPU|performance.ProfileMem, header, func() error {
		ran = true
		return nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, ran)

	_, err = os.Stat(header + "_cpu.profile")
	test.ExpectSuccess(t, err)
	_, err = os.Stat(header + "_mem.profile")
	test.ExpectSuccess(t, err)
	_, err = os.Stat(header + "_trace.profile")
	test.ExpectFailure(t, err)

	e := errors.New("run error")
	err = performance.RunProfiler(performance.ProfileNone, header, func() error {
		return e
	})
	test.ExpectEquality(t, err, e)
}
