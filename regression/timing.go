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

package regression

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pipesim/pipesim/curated"
	"github.com/pipesim/pipesim/digest"
	"github.com/pipesim/pipesim/environment"
	"github.com/pipesim/pipesim/hardware"
	"github.com/pipesim/pipesim/hardware/preferences"
	"github.com/pipesim/pipesim/kernels"
	"github.com/pipesim/pipesim/prefs"
	"github.com/pipesim/pipesim/regression/database"
)

const timingEntryID = "timing"

const (
	timingFieldKernel int = iota
	timingFieldN
	timingFieldM
	timingFieldPrefs
	timingFieldInstructions
	timingFieldCycles
	timingFieldL1DMisses
	timingFieldDigest
	timingFieldNotes
	numTimingFields
)

// TimingRegression records the counters of a kernel run on a machine
// configuration. The regression fails if a later run of the same kernel on
// the same configuration gives different counters or if the kernel result is
// incorrect.
type TimingRegression struct {
	Kernel string
	N      int
	M      int

	// preferences applied on top of the defaults for the duration of the
	// run. in the prefs command line format. semi-colons are used to
	// separate the preferences so the field separator can never appear
	Prefs string

	Instructions uint64
	Cycles       uint64
	L1DMisses    uint64

	// fingerprint of the trace output. an empty digest is not checked
	Digest string

	Notes string
}

// NewTimingRegression is the preferred method of initialisation for the
// TimingRegression type.
func NewTimingRegression(kernel string, n, m int, prefs string) (*TimingRegression, error) {
	if _, err := kernels.NewFixture(kernel, n, m); err != nil {
		return nil, err
	}
	if strings.Contains(prefs, ",") {
		return nil, curated.Errorf(RegressionError, "prefs string cannot contain commas")
	}
	return &TimingRegression{
		Kernel: kernel,
		N:      n,
		M:      m,
		Prefs:  prefs,
	}, nil
}

func deserialiseTimingEntry(fields []string) (database.Entry, error) {
	if len(fields) != numTimingFields {
		return nil, curated.Errorf(RegressionError, "wrong number of fields for timing entry")
	}

	reg := &TimingRegression{
		Kernel: fields[timingFieldKernel],
		Prefs:  fields[timingFieldPrefs],
		Digest: fields[timingFieldDigest],
		Notes:  fields[timingFieldNotes],
	}

	var err error

	if reg.N, err = strconv.Atoi(fields[timingFieldN]); err != nil {
		return nil, curated.Errorf(RegressionError, fmt.Sprintf("invalid n field [%s]", fields[timingFieldN]))
	}
	if reg.M, err = strconv.Atoi(fields[timingFieldM]); err != nil {
		return nil, curated.Errorf(RegressionError, fmt.Sprintf("invalid m field [%s]", fields[timingFieldM]))
	}
	if reg.Instructions, err = strconv.ParseUint(fields[timingFieldInstructions], 10, 64); err != nil {
		return nil, curated.Errorf(RegressionError, fmt.Sprintf("invalid instructions field [%s]", fields[timingFieldInstructions]))
	}
	if reg.Cycles, err = strconv.ParseUint(fields[timingFieldCycles], 10, 64); err != nil {
		return nil, curated.Errorf(RegressionError, fmt.Sprintf("invalid cycles field [%s]", fields[timingFieldCycles]))
	}
	if reg.L1DMisses, err = strconv.ParseUint(fields[timingFieldL1DMisses], 10, 64); err != nil {
		return nil, curated.Errorf(RegressionError, fmt.Sprintf("invalid misses field [%s]", fields[timingFieldL1DMisses]))
	}

	return reg, nil
}

// ID implements the database.Entry interface.
func (reg TimingRegression) ID() string {
	return timingEntryID
}

// String implements the database.Entry interface.
func (reg TimingRegression) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("[%s] %s n=%d m=%d cycles=%d", reg.ID(), reg.Kernel, reg.N, reg.M, reg.Cycles))
	if reg.Prefs != "" {
		s.WriteString(fmt.Sprintf(" (%s)", reg.Prefs))
	}
	if reg.Notes != "" {
		s.WriteString(fmt.Sprintf(" [%s]", reg.Notes))
	}
	return s.String()
}

// Serialise implements the database.Entry interface.
func (reg *TimingRegression) Serialise() ([]string, error) {
	return []string{
		reg.Kernel,
		strconv.Itoa(reg.N),
		strconv.Itoa(reg.M),
		reg.Prefs,
		strconv.FormatUint(reg.Instructions, 10),
		strconv.FormatUint(reg.Cycles, 10),
		strconv.FormatUint(reg.L1DMisses, 10),
		reg.Digest,
		reg.Notes,
	}, nil
}

// run the kernel on a machine configured with the entry's preferences. the
// trace output of the run is written to the digest
func (reg *TimingRegression) run(dig *digest.Trace) (kernels.Result, error) {
	prefs.PushCommandLineStack(reg.Prefs)
	p, err := preferences.NewPreferences("")
	prefs.PopCommandLineStack()
	if err != nil {
		return kernels.Result{}, err
	}

	// every regression runs in its own environment with a fixed random stream
	env, err := environment.NewEnvironment("regression", 0, p)
	if err != nil {
		return kernels.Result{}, err
	}
	env.Random.ZeroSeed = true

	sim, err := hardware.NewSimulator(env, p.Params())
	if err != nil {
		return kernels.Result{}, err
	}
	sim.Tracing = true
	sim.Trace = dig

	f, err := kernels.NewFixture(reg.Kernel, reg.N, reg.M)
	if err != nil {
		return kernels.Result{}, err
	}

	return kernels.Run(sim, f, nil), nil
}

func (reg *TimingRegression) regress(newRegression bool, output io.Writer, msg string) (bool, string, error) {
	io.WriteString(output, fmt.Sprintf("\r%s [running]", msg))

	dig := digest.NewTrace()
	r, err := reg.run(dig)
	if err != nil {
		return false, "", err
	}
	if !r.Pass() {
		return false, fmt.Sprintf("kernel failed: %v", r.Err), nil
	}

	if newRegression {
		reg.Instructions = r.Counters.Instructions
		reg.Cycles = r.Counters.Cycles
		reg.L1DMisses = r.L1D.Misses
		reg.Digest = dig.Hash()
		return true, "", nil
	}

	if r.Counters.Instructions != reg.Instructions {
		return false, fmt.Sprintf("instructions mismatch (%d, expected %d)", r.Counters.Instructions, reg.Instructions), nil
	}
	if r.Counters.Cycles != reg.Cycles {
		return false, fmt.Sprintf("cycles mismatch (%d, expected %d)", r.Counters.Cycles, reg.Cycles), nil
	}
	if r.L1D.Misses != reg.L1DMisses {
		return false, fmt.Sprintf("L1D misses mismatch (%d, expected %d)", r.L1D.Misses, reg.L1DMisses), nil
	}
	if reg.Digest != "" && dig.Hash() != reg.Digest {
		return false, "trace digest mismatch", nil
	}

	return true, "", nil
}
