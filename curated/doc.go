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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. The pattern argument is used to
// differentiate curated errors, so patterns that callers need to test for are
// best exported as constants. For example, the registers package declares:
//
//	const ErrExhausted = "registers: physical register file exhausted (%d slots)"
//
// And the simulator can test for it some levels further up the chain:
//
//	if curated.Has(err, registers.ErrExhausted) {
//		...
//	}
//
// Is() only checks the outermost pattern. Has() checks every curated error in
// the chain.
//
// The Error() function normalises the chain so that it never contains
// duplicate adjacent parts. This means that a function can wrap an error with
// its own prefix without worrying whether the callee has already done so:
//
//	return curated.Errorf("simulator: %v", err)
//
// will never produce "simulator: simulator: ...".
package curated
