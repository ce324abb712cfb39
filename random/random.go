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

package random

import (
	"math/rand/v2"
	"time"
)

// the base seed for all random numbers
var baseSeed uint64

// initialise base seed
func init() {
	baseSeed = uint64(time.Now().UnixNano())
}

// Random is a random number generator for the contents of simulated memory.
// Each Random produces its own stream of numbers so that parallel runs do not
// interfere with one another.
type Random struct {
	stream uint64
	rng    *rand.Rand

	// use zero seed rather than the random base seed. this is only really
	// useful where the numbers must be the same every time. must be set before
	// the first number is generated
	ZeroSeed bool
}

// NewRandom is the preferred method of initialisation for the Random type.
// Instances with different stream values produce different numbers.
func NewRandom(stream uint64) *Random {
	return &Random{
		stream: stream,
	}
}

func (rnd *Random) source() *rand.Rand {
	if rnd.rng == nil {
		if rnd.ZeroSeed {
			rnd.rng = rand.New(rand.NewPCG(0, rnd.stream))
		} else {
			rnd.rng = rand.New(rand.NewPCG(baseSeed, rnd.stream))
		}
	}
	return rnd.rng
}

// Intn returns a number in the range [0,n).
func (rnd *Random) Intn(n int) int {
	return rnd.source().IntN(n)
}

// Float64 returns a number in the range [0.0,1.0).
func (rnd *Random) Float64() float64 {
	return rnd.source().Float64()
}

// Bytes fills p with random bytes.
func (rnd *Random) Bytes(p []byte) {
	for i := range p {
		p[i] = uint8(rnd.source().Uint32())
	}
}
