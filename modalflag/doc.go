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

// Package modalflag is a wrapper for the flag package in the standard
// library. It handles program modes, and sub-modes, with each mode having its
// own set of flags.
//
// The arguments are given to NewArgs() and Parse() is called with no
// arguments:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "SWEEP", "STEP")
//	trace := md.AddBool("trace", false, "write trace")
//	p, err := md.Parse()
//	switch p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
// After parsing, Mode() returns the selected sub-mode. If the first argument
// after the flags is not a sub-mode then the default sub-mode, the first in
// the list, is selected.
//
// Each mode can have its own flags. Calling NewMode() forgets the flags and
// sub-modes of the previous mode and the next call to Parse() continues from
// the argument after the selected mode:
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		n := md.AddInt("n", 64, "size of kernel")
//		p, err := md.Parse()
//		...
//		kernel := md.GetArg(0)
//	}
//
// Path() returns every selected mode joined by a slash, "RUN" or
// "REGRESS/ADD" for example, and is used to label help messages.
package modalflag
