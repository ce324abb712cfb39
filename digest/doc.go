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

// Package digest fingerprints the output of the simulation. The Trace type
// fingerprints trace output, which records the ready, issue and complete
// cycle of every operation. Two runs with the same digest scheduled every
// operation identically.
//
// The digest is a chained SHA-1 hash and is intended for regression testing,
// not for security.
package digest
