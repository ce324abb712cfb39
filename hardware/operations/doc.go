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

// Package operations defines the operations of the simulated instruction set
// and the algorithm that issues them.
//
// Every operation is an instance of the Operation type, tagged by its
// Opcode. The behaviour common to all operations (the cycle at which sources
// are ready, latency, throughput and functional unit) is decided by a single
// switch over the opcode. The Definitions table describes the static
// properties of each opcode.
//
// Operations are processed one at a time with Process(). Simulated timing is
// entirely a matter of the ready, issue and complete cycles that Process()
// computes. The host execution is strictly sequential.
package operations
