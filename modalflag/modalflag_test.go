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

package modalflag_test

import (
	"testing"

	"github.com/pipesim/pipesim/modalflag"
	"github.com/pipesim/pipesim/test"
)

func TestNoModesNoFlags(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{})

	p, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectEquality(t, md.Mode(), "")
	test.ExpectEquality(t, md.Path(), "")
	test.ExpectEquality(t, len(md.RemainingArgs()), 0)
}

func TestFlags(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-trace", "-n", "16", "mxv", "extra"})
	trace := md.AddBool("trace", false, "write trace")
	n := md.AddInt("n", 64, "size")
	prefs := md.AddString("prefs", "", "preferences")

	p, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectEquality(t, *trace, true)
	test.ExpectEquality(t, *n, 16)
	test.ExpectEquality(t, *prefs, "")
	test.ExpectEquality(t, md.GetArg(0), "mxv")
	test.ExpectEquality(t, md.GetArg(1), "extra")
	test.ExpectEquality(t, md.GetArg(2), "")

	var set []string
	md.Visit(func(f string) { set = append(set, f) })
	test.ExpectEquality(t, len(set), 2)
}

func TestModes(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-log", "sweep", "-parallel", "4", "mxv"})
	md.AddSubModes("run", "sweep", "step")
	log := md.AddBool("log", false, "echo log")

	p, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectEquality(t, *log, true)
	test.ExpectEquality(t, md.Mode(), "SWEEP")

	md.NewMode()
	parallel := md.AddInt("parallel", 0, "number of workers")
	p, err = md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectEquality(t, *parallel, 4)
	test.ExpectEquality(t, md.GetArg(0), "mxv")
	test.ExpectEquality(t, md.Path(), "SWEEP")
}

func TestDefaultMode(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"memcpy"})
	md.AddSubModes("RUN", "SWEEP")

	_, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "RUN")
	test.ExpectEquality(t, md.GetArg(0), "memcpy")
}

func TestNestedModes(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"regress", "add", "mxv"})
	md.AddSubModes("RUN", "REGRESS")
	_, err := md.Parse()
	test.ExpectSuccess(t, err)

	md.NewMode()
	md.AddSubModes("RUN", "LIST", "ADD", "DELETE")
	_, err = md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Path(), "REGRESS/ADD")
	test.ExpectEquality(t, md.GetArg(0), "mxv")
}

func TestUnknownFlag(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-bogus"})
	md.AddSubModes("RUN")

	p, err := md.Parse()
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, p, modalflag.ParseError)
}

func TestNoHelpAvailable(t *testing.T) {
	tw := &test.CompareWriter{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)
	test.ExpectEquality(t, tw.String(), "No help available\n")
}

func TestHelpFlags(t *testing.T) {
	tw := &test.CompareWriter{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})
	md.AddBool("trace", true, "write trace")

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)
	test.ExpectEquality(t, tw.String(), "Usage:\n"+
		"  -trace\n"+
		"    \twrite trace (default true)\n")
}

func TestHelpFlagsAndModes(t *testing.T) {
	tw := &test.CompareWriter{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})
	md.AddBool("trace", true, "write trace")
	md.AddSubModes("RUN", "SWEEP")
	md.AdditionalHelp("kernels: memcpy, mxv")

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)
	test.ExpectEquality(t, tw.String(), "Usage:\n"+
		"  -trace\n"+
		"    \twrite trace (default true)\n"+
		"\n"+
		"  available sub-modes: RUN, SWEEP\n"+
		"    default: RUN\n"+
		"\n"+
		"kernels: memcpy, mxv\n")
}
