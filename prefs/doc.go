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

// Package prefs facilitates the storage of preferential values in the
// simulator. It handles the loading and saving of preferences to disk and
// the overriding of preferences from the command line.
//
// The Bool, Int, Float and String types are live values that can be read and
// written from different goroutines. The Generic type wraps a pair of set/get
// functions.
//
// Values are added to a Disk instance with a key:
//
//	var sets prefs.Int
//	dsk, _ := prefs.NewDisk(path)
//	dsk.Add("l1d.sets", &sets)
//	dsk.Load(false)
//
// The file format is a warning line followed by one key/value per line:
//
//	l1d.sets :: 16
//
// Values on top of the command line stack take priority over values on disk.
// The -prefs flag of the command line tool pushes its argument onto the stack
// before the simulation preferences are loaded. The group is popped when the
// simulation ends and any unused keys are reported.
package prefs
