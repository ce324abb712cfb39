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
	"context"
	"fmt"
	"sync"

	"github.com/pipesim/pipesim/curated"
	"github.com/pipesim/pipesim/environment"
	"github.com/pipesim/pipesim/hardware"
	"github.com/pipesim/pipesim/hardware/params"
	"github.com/pipesim/pipesim/hardware/program"
	"github.com/pipesim/pipesim/kernels"
	"golang.org/x/sync/errgroup"
)

// NoSweep is returned by Cases() for a kernel with no sweep definition.
const NoSweep = "regression: no sweep for kernel (%s)"

// Case is a single kernel run in a sweep.
type Case struct {
	Kernel string
	N      int
	M      int
}

func (c Case) String() string {
	return fmt.Sprintf("%s n=%d m=%d", c.Kernel, c.N, c.M)
}

// Cases returns the standard sweep for the named kernel:
//
//	memcpy, memcpyh   n = 1, 2, 4 ... 1024
//	mxv               m = 2, 4, 8, 16, 32 and n = m/2 ... m
//	spmv              m = 8, 16, 32, 64 and n = m
func Cases(kernel string) ([]Case, error) {
	var cases []Case

	switch kernel {
	case "memcpy", "memcpyh":
		for n := 1; n <= 1024; n *= 2 {
			cases = append(cases, Case{Kernel: kernel, N: n})
		}
	case "mxv":
		for m := 2; m <= 32; m *= 2 {
			for n := m / 2; n <= m; n++ {
				cases = append(cases, Case{Kernel: kernel, N: n, M: m})
			}
		}
	case "spmv":
		for m := 8; m <= 64; m *= 2 {
			cases = append(cases, Case{Kernel: kernel, N: m, M: m})
		}
	default:
		return nil, curated.Errorf(NoSweep, kernel)
	}

	return cases, nil
}

// Sweep runs every case on its own simulator with the same parameters. No
// more than parallel cases run at once. A parallel value of less than one
// means no limit.
//
// The results are in the same order as the cases. A case that runs but fails
// its check is not an error of the sweep, the failure is in the Result. An
// error is returned if a simulator or fixture cannot be created or if the
// context is cancelled.
//
// The progress function is called as each case finishes. It can be nil.
func Sweep(ctx context.Context, p params.Params, cases []Case, parallel int, progress func(c Case, r kernels.Result)) ([]kernels.Result, error) {
	results := make([]kernels.Result, len(cases))

	g, ctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}

	var crit sync.Mutex

	continueCheck := func(_ program.Label) (program.State, error) {
		if err := ctx.Err(); err != nil {
			return program.Ending, err
		}
		return program.Running, nil
	}

	for i, c := range cases {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			// a labelled environment does not log
			env, err := environment.NewEnvironment("sweep", uint64(i), nil)
			if err != nil {
				return err
			}

			sim, err := hardware.NewSimulator(env, p)
			if err != nil {
				return err
			}

			f, err := kernels.NewFixture(c.Kernel, c.N, c.M)
			if err != nil {
				return err
			}

			r := kernels.Run(sim, f, continueCheck)
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = r

			if progress != nil {
				crit.Lock()
				progress(c, r)
				crit.Unlock()
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, curated.Errorf(RegressionError, err)
	}

	return results, nil
}
