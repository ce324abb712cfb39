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

package hardware

import (
	"github.com/pipesim/pipesim/curated"
	"github.com/pipesim/pipesim/environment"
	"github.com/pipesim/pipesim/hardware/instructions"
	"github.com/pipesim/pipesim/hardware/machine"
	"github.com/pipesim/pipesim/hardware/operations"
	"github.com/pipesim/pipesim/hardware/params"
	"github.com/pipesim/pipesim/hardware/program"
	"github.com/pipesim/pipesim/logger"
)

// RunError is returned by Run() when the program cannot complete.
const RunError = "simulator: %s: %v"

// Simulator is the main container for a simulated processor. The machine
// state is embedded so that registers, memory, caches and counters are
// available directly.
type Simulator struct {
	*machine.Machine

	env *environment.Environment

	// the first error returned by an operation. once set every instruction is
	// ignored until the next call to ZeroCtrs()
	err error
}

// NewSimulator creates a new simulated processor with the specified
// parameters.
func NewSimulator(env *environment.Environment, p params.Params) (*Simulator, error) {
	m, err := machine.NewMachine(p)
	if err != nil {
		return nil, err
	}
	sim := &Simulator{
		Machine: m,
		env:     env,
	}
	sim.ZeroMem()
	sim.ZeroCtrs()
	return sim, nil
}

// NewSimulatorFromPrefs creates a new simulated processor from the preferences
// of the environment. Tracing is enabled if the preferences say so but the
// trace writer must be set by the caller.
func NewSimulatorFromPrefs(env *environment.Environment) (*Simulator, error) {
	sim, err := NewSimulator(env, env.Prefs.Params())
	if err != nil {
		return nil, err
	}
	sim.Tracing = env.Prefs.Trace.Get().(bool)
	return sim, nil
}

// Env returns the environment of the simulator.
func (sim *Simulator) Env() *environment.Environment {
	return sim.env
}

// ZeroCtrs resets the machine ready for a new timed run and clears any
// latched error.
func (sim *Simulator) ZeroCtrs() {
	sim.Machine.ZeroCtrs()
	sim.err = nil
}

// Err returns the error latched by an instruction, if any.
func (sim *Simulator) Err() error {
	return sim.err
}

// process a single operation as an instruction. returns true if the
// operation was a taken branch
func (sim *Simulator) process(op *operations.Operation) bool {
	if sim.err != nil {
		return false
	}
	taken, err := instructions.Process(sim.Machine, instructions.NewInstruction(op))
	if err != nil {
		sim.err = err
		logger.Log(sim.env, "simulator", err)
		return false
	}
	return taken
}

// Run the program from its entry label. Counters are not reset so a run can
// be split across several calls to Run().
//
// The continueCheck function is passed to program.Run() and can be nil.
//
// Instructions are fetched from the address of the block being performed.
func (sim *Simulator) Run(prg *program.Program, continueCheck func(next program.Label) (program.State, error)) error {
	logger.Logf(sim.env, "simulator", "%s: running", prg.Name)

	_, err := prg.Run(func(next program.Label) (program.State, error) {
		if sim.err != nil {
			return program.Ending, sim.err
		}
		if a, ok := prg.Address(next); ok {
			sim.Jump(a)
		}
		if continueCheck != nil {
			return continueCheck(next)
		}
		return program.Running, nil
	})

	// an error in the final block is not seen by the continue check
	if err == nil {
		err = sim.err
	}
	if err != nil {
		return curated.Errorf(RunError, prg.Name, err)
	}

	logger.Logf(sim.env, "simulator", "%s: %s", prg.Name, sim.Counters)

	return nil
}
