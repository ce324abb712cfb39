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

package script

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/pipesim/pipesim/curated"
	"github.com/pipesim/pipesim/hardware"
	"github.com/pipesim/pipesim/hardware/program"
	"github.com/pipesim/pipesim/hardware/registers"
	"github.com/pipesim/pipesim/kernels"
	"github.com/pipesim/pipesim/logger"
	lua "github.com/yuin/gopher-lua"
)

// ScriptError is returned when a script cannot be run to completion.
const ScriptError = "script: %s: %v"

// Script runs Lua programs against a simulator. The simulator is exposed to
// the program as the global table "sim".
type Script struct {
	sim    *hardware.Simulator
	output io.Writer
	L      *lua.LState
}

// NewScript is the preferred method of initialisation for the Script type.
// The print() function of the Lua program writes to output.
func NewScript(sim *hardware.Simulator, output io.Writer) *Script {
	scr := &Script{
		sim:    sim,
		output: output,
		L:      lua.NewState(),
	}

	scr.L.SetGlobal("print", scr.L.NewFunction(scr.print))

	tbl := scr.L.NewTable()
	scr.L.SetFuncs(tbl, scr.isa())
	scr.L.SetFuncs(tbl, scr.state())
	scr.L.SetGlobal("sim", tbl)

	return scr
}

// Close the Lua state. The Script can not be used after Close() is called.
func (scr *Script) Close() {
	scr.L.Close()
}

// RunFile runs the Lua program in the named file.
func (scr *Script) RunFile(ctx context.Context, filename string) error {
	scr.L.SetContext(ctx)
	logger.Logf(scr.sim.Env(), "script", "running %s", filename)
	if err := scr.L.DoFile(filename); err != nil {
		return curated.Errorf(ScriptError, filename, err)
	}
	return nil
}

// RunString runs the Lua program in src. The name is used in error messages.
func (scr *Script) RunString(ctx context.Context, name string, src string) error {
	scr.L.SetContext(ctx)
	if err := scr.L.DoString(src); err != nil {
		return curated.Errorf(ScriptError, name, err)
	}
	return nil
}

func (scr *Script) print(L *lua.LState) int {
	s := make([]string, L.GetTop())
	for i := range s {
		s[i] = L.ToStringMeta(L.Get(i + 1)).String()
	}
	io.WriteString(scr.output, strings.Join(s, "\t"))
	io.WriteString(scr.output, "\n")
	return 0
}

// the latched error of the simulator is raised in the Lua program
func (scr *Script) check(L *lua.LState) {
	if err := scr.sim.Err(); err != nil {
		L.RaiseError("%v", err)
	}
}

func (scr *Script) gpr(L *lua.LState, n int) registers.GPR {
	r := L.CheckInt(n)
	if r < 0 || r >= scr.sim.Regs.GPRs() {
		L.ArgError(n, fmt.Sprintf("no such GPR (%d)", r))
	}
	return registers.GPR(r)
}

func (scr *Script) fpr(L *lua.LState, n int) registers.FPR {
	r := L.CheckInt(n)
	if r < 0 || r >= scr.sim.Regs.FPRs() {
		L.ArgError(n, fmt.Sprintf("no such FPR (%d)", r))
	}
	return registers.FPR(r)
}

func (scr *Script) imm(L *lua.LState, n int) int16 {
	v := L.CheckInt(n)
	if v < math.MinInt16 || v > math.MaxInt16 {
		L.ArgError(n, fmt.Sprintf("immediate out of range (%d)", v))
	}
	return int16(v)
}

func (scr *Script) ea(L *lua.LState, n int, width int) uint32 {
	v := L.CheckInt(n)
	if v < 0 || v+width > scr.sim.Mem.Size() {
		L.ArgError(n, fmt.Sprintf("address out of range (%#x)", v))
	}
	return uint32(v)
}

// the label argument of a branch is optional. it only appears in the trace
func label(L *lua.LState) program.Label {
	return program.Label(L.OptString(1, "_"))
}

func (scr *Script) isa() map[string]lua.LGFunction {
	sim := scr.sim

	// wraps an ISA call that returns no value
	op := func(f func(L *lua.LState)) lua.LGFunction {
		return func(L *lua.LState) int {
			f(L)
			scr.check(L)
			return 0
		}
	}

	// wraps a branch. the taken flag is returned to the Lua program
	branch := func(f func(program.Label) bool) lua.LGFunction {
		return func(L *lua.LState) int {
			taken := f(label(L))
			scr.check(L)
			L.Push(lua.LBool(taken))
			return 1
		}
	}

	return map[string]lua.LGFunction{
		"addi": op(func(L *lua.LState) { sim.Addi(scr.gpr(L, 1), scr.gpr(L, 2), scr.imm(L, 3)) }),
		"muli": op(func(L *lua.LState) { sim.Muli(scr.gpr(L, 1), scr.gpr(L, 2), scr.imm(L, 3)) }),
		"add":  op(func(L *lua.LState) { sim.Add(scr.gpr(L, 1), scr.gpr(L, 2), scr.gpr(L, 3)) }),
		"sub":  op(func(L *lua.LState) { sim.Sub(scr.gpr(L, 1), scr.gpr(L, 2), scr.gpr(L, 3)) }),
		"cmpi": op(func(L *lua.LState) { sim.Cmpi(scr.gpr(L, 1), scr.imm(L, 2)) }),
		"lbz":  op(func(L *lua.LState) { sim.Lbz(scr.gpr(L, 1), scr.gpr(L, 2)) }),
		"lhz":  op(func(L *lua.LState) { sim.Lhz(scr.gpr(L, 1), scr.gpr(L, 2)) }),
		"lwz":  op(func(L *lua.LState) { sim.Lwz(scr.gpr(L, 1), scr.gpr(L, 2)) }),
		"lfd":  op(func(L *lua.LState) { sim.Lfd(scr.fpr(L, 1), scr.gpr(L, 2)) }),
		"stb":  op(func(L *lua.LState) { sim.Stb(scr.gpr(L, 1), scr.gpr(L, 2)) }),
		"sth":  op(func(L *lua.LState) { sim.Sth(scr.gpr(L, 1), scr.gpr(L, 2)) }),
		"stw":  op(func(L *lua.LState) { sim.Stw(scr.gpr(L, 1), scr.gpr(L, 2)) }),
		"stfd": op(func(L *lua.LState) { sim.Stfd(scr.fpr(L, 1), scr.gpr(L, 2)) }),
		"zd":   op(func(L *lua.LState) { sim.Zd(scr.fpr(L, 1)) }),
		"fmul": op(func(L *lua.LState) { sim.Fmul(scr.fpr(L, 1), scr.fpr(L, 2), scr.fpr(L, 3)) }),
		"fadd": op(func(L *lua.LState) { sim.Fadd(scr.fpr(L, 1), scr.fpr(L, 2), scr.fpr(L, 3)) }),
		"b":    branch(sim.B),
		"beq":  branch(sim.Beq),
		"bne":  branch(sim.Bne),
		"blt":  branch(sim.Blt),
		"bgt":  branch(sim.Bgt),
	}
}

func (scr *Script) state() map[string]lua.LGFunction {
	sim := scr.sim

	return map[string]lua.LGFunction{
		"zeromem": func(L *lua.LState) int {
			sim.ZeroMem()
			return 0
		},
		"zeroctrs": func(L *lua.LState) int {
			sim.ZeroCtrs()
			return 0
		},
		"gpr": func(L *lua.LState) int {
			L.Push(lua.LNumber(sim.Regs.GPR(scr.gpr(L, 1))))
			return 1
		},
		"setgpr": func(L *lua.LState) int {
			r := scr.gpr(L, 1)
			sim.Regs.SetGPR(r, uint32(L.CheckInt64(2)))
			return 0
		},
		"fpr": func(L *lua.LState) int {
			L.Push(lua.LNumber(sim.Regs.FPR(scr.fpr(L, 1))))
			return 1
		},
		"setfpr": func(L *lua.LState) int {
			r := scr.fpr(L, 1)
			sim.Regs.SetFPR(r, float64(L.CheckNumber(2)))
			return 0
		},
		"peek": func(L *lua.LState) int {
			L.Push(lua.LNumber(sim.Mem.Peek(scr.ea(L, 1, 1))))
			return 1
		},
		"poke": func(L *lua.LState) int {
			sim.Mem.Poke(scr.ea(L, 1, 1), uint8(L.CheckInt(2)))
			return 0
		},
		"peekh": func(L *lua.LState) int {
			L.Push(lua.LNumber(sim.Mem.PeekUint16(scr.ea(L, 1, 2))))
			return 1
		},
		"pokeh": func(L *lua.LState) int {
			sim.Mem.PokeUint16(scr.ea(L, 1, 2), uint16(L.CheckInt(2)))
			return 0
		},
		"peekw": func(L *lua.LState) int {
			L.Push(lua.LNumber(sim.Mem.PeekUint32(scr.ea(L, 1, 4))))
			return 1
		},
		"pokew": func(L *lua.LState) int {
			sim.Mem.PokeUint32(scr.ea(L, 1, 4), uint32(L.CheckInt64(2)))
			return 0
		},
		"peekd": func(L *lua.LState) int {
			L.Push(lua.LNumber(sim.Mem.PeekFloat64(scr.ea(L, 1, 8))))
			return 1
		},
		"poked": func(L *lua.LState) int {
			sim.Mem.PokeFloat64(scr.ea(L, 1, 8), float64(L.CheckNumber(2)))
			return 0
		},
		"counters": func(L *lua.LState) int {
			t := L.NewTable()
			t.RawSetString("instructions", lua.LNumber(sim.Counters.Instructions))
			t.RawSetString("operations", lua.LNumber(sim.Counters.Operations))
			t.RawSetString("cycles", lua.LNumber(sim.Counters.Cycles))
			t.RawSetString("lastissued", lua.LNumber(sim.Counters.LastIssued))
			L.Push(t)
			return 1
		},
		"l1d": func(L *lua.LState) int {
			s := sim.Caches.L1D.Stats()
			t := L.NewTable()
			t.RawSetString("accesses", lua.LNumber(s.Accesses))
			t.RawSetString("hits", lua.LNumber(s.Hits))
			t.RawSetString("misses", lua.LNumber(s.Misses))
			L.Push(t)
			return 1
		},

		// runs one of the built in kernels on the simulator and returns a
		// table describing the result
		"kernel": func(L *lua.LState) int {
			f, err := kernels.NewFixture(L.CheckString(1), L.OptInt(2, 0), L.OptInt(3, 0))
			if err != nil {
				L.RaiseError("%v", err)
			}
			r := kernels.Run(sim, f, nil)
			t := L.NewTable()
			t.RawSetString("pass", lua.LBool(r.Pass()))
			t.RawSetString("instructions", lua.LNumber(r.Counters.Instructions))
			t.RawSetString("cycles", lua.LNumber(r.Counters.Cycles))
			t.RawSetString("misses", lua.LNumber(r.L1D.Misses))
			if r.Err != nil {
				t.RawSetString("error", lua.LString(r.Err.Error()))
			}
			L.Push(t)
			return 1
		},
	}
}
