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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The ExpectEquality() and ExpectInequality() functions are generic and test
// comparable values. ExpectApproximate() tests floating point values within a
// tolerance.
//
// The ExpectFailure() and ExpectSuccess() functions test for failure and
// success. These two functions work with bool and error values. For bool, true
// indicates success. For error, nil indicates success.
//
// The Demand*() variants are the same except that a failure is a testing
// fatality.
//
// Every function accepts optional tags. These are printed in front of the
// failure message and help identify the iteration of a loop that failed.
//
// The CompareWriter type implements io.Writer and captures output so that it
// can be compared with expected text.
package test
