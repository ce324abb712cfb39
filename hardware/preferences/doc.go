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

// Package preferences registers every configuration value of the simulated
// processor with the prefs package. Keys are dotted names grouped by
// component, for example:
//
//	l1d.sets :: 16
//	memory.latency :: 300
//	backend.renaming :: true
//
// Values can be overridden for a single run with the command line stack of
// the prefs package. For example, a machine with a bigger data cache and a
// wider backend:
//
//	prefs.PushCommandLineStack("l1d.sets::64; backend.maxissue::2")
package preferences
