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

// Package memory implements the backing store of the simulated processor. It
// is the last level behind every cache and is always kept up to date by
// stores (the caches are write-through).
//
// The Peek*() and Poke*() functions are intended for the drivers that set up a
// run and check the results afterwards. They do not count as accesses and do
// not affect any cache. Simulated loads and stores go through the caches, see
// the cache package.
package memory
