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

// Package kernels contains routines written in the simulated instruction set
// and the fixtures that arrange memory for them and check their results.
//
// Every kernel takes its arguments in registers, starting with R3. A kernel
// is a program.Program whose blocks call the instruction methods of a
// hardware.Simulator. The Run() function performs the whole sequence for a
// fixture: memory is zeroed and populated, counters are reset, the arguments
// are set and the kernel is run and checked.
//
// Fixtures can be created by name with NewFixture(). The names returned by
// Names() are those accepted on the command line.
package kernels
