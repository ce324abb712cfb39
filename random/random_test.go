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

package random_test

import (
	"testing"

	"github.com/pipesim/pipesim/random"
	"github.com/pipesim/pipesim/test"
)

func TestRandom(t *testing.T) {
	a := random.NewRandom(10)
	b := random.NewRandom(10)
	a.ZeroSeed = true
	b.ZeroSeed = true

	for i := 1; i < 256; i++ {
		test.ExpectEquality(t, a.Intn(i), b.Intn(i))
	}

	pa := make([]byte, 64)
	pb := make([]byte, 64)
	a.Bytes(pa)
	b.Bytes(pb)
	test.ExpectEquality(t, string(pa), string(pb))
}

func TestStreams(t *testing.T) {
	a := random.NewRandom(1)
	b := random.NewRandom(2)
	a.ZeroSeed = true
	b.ZeroSeed = true

	var same int
	for range 100 {
		if a.Intn(1<<30) == b.Intn(1<<30) {
			same++
		}
	}
	test.ExpectInequality(t, same, 100)
}
