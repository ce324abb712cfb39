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

// Package regression facilitates the regression testing of the simulated
// processor and the running of parameter sweeps.
//
// Regression entries are stored in a database (see the database
// sub-package). The TimingRegression type records the instruction count,
// the cycle count and the number of L1D misses of a kernel run on a machine
// configuration. The configuration is a prefs string applied on top of the
// default preferences, for example:
//
//	"l1d.sets::32; memory.latency::100"
//
// An entry fails if a later run gives different counters, or if the kernel
// result is incorrect.
//
// The functions RegressAdd(), RegressList(), RegressDelete() and RegressRun()
// operate on a named database file. DBPath() gives the location of the
// default database in the resources directory.
//
// Sweep() runs many independent kernel runs concurrently. Each run has its
// own simulator so no state is shared between runs.
package regression
