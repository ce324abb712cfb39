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

package cache_test

import (
	"testing"

	"github.com/pipesim/pipesim/hardware/memory"
	"github.com/pipesim/pipesim/hardware/memory/cache"
	"github.com/pipesim/pipesim/test"
)

func TestFillAndContains(t *testing.T) {
	mem := memory.NewMemory(1024, 300)
	mem.Write(64, []byte{10, 11, 12, 13, 14, 15, 16, 17})

	c := cache.NewCache("L1D", 4, 2, 8, 2)
	test.ExpectEquality(t, c.Capacity(), 64)
	test.ExpectFailure(t, c.Contains(66, 1))

	// first access is a miss
	d := c.Fill(66, 2, 1, mem)
	test.ExpectEquality(t, len(d), 2)
	test.ExpectEquality(t, d[0], uint8(12))
	test.ExpectEquality(t, d[1], uint8(13))
	test.ExpectEquality(t, c.Stats(), cache.Statistics{Accesses: 1, Hits: 0, Misses: 1})

	// every byte of the line is now resident
	for ea := uint32(64); ea < 72; ea++ {
		test.ExpectSuccess(t, c.Contains(ea, 1), ea)
	}
	test.ExpectFailure(t, c.Contains(72, 1))

	// contains is a pure query
	test.ExpectEquality(t, c.Accesses, uint64(1))

	// second access is a hit
	c.Fill(64, 8, 2, mem)
	test.ExpectEquality(t, c.Stats(), cache.Statistics{Accesses: 2, Hits: 1, Misses: 1})
}

// three lines mapping to the same set of a 2-way cache
func TestLRUEviction(t *testing.T) {
	mem := memory.NewMemory(1024, 300)
	c := cache.NewCache("L1D", 4, 2, 8, 2)

	// lines 0, 4 and 8 all map to set 0
	const A = 0 * 8
	const B = 4 * 8
	const C = 8 * 8

	c.Fill(A, 1, 1, mem)
	c.Fill(B, 1, 2, mem)

	// touch A again so that B is the least recently touched
	test.ExpectSuccess(t, c.Hit(A, 1, 3))

	// C evicts B
	c.Fill(C, 1, 4, mem)
	test.ExpectFailure(t, c.Contains(B, 1))
	test.ExpectSuccess(t, c.Contains(A, 1))
	test.ExpectSuccess(t, c.Contains(C, 1))

	// a subsequent access to B is a miss and the more recent lines are hits
	test.ExpectFailure(t, c.Hit(B, 1, 5))
	test.ExpectSuccess(t, c.Hit(A, 1, 6))
	test.ExpectSuccess(t, c.Hit(C, 1, 7))

	test.ExpectEquality(t, c.Accesses, uint64(7))
	test.ExpectEquality(t, c.Hits, uint64(3))
	test.ExpectEquality(t, c.Misses, uint64(4))
}

// when touched cycles are equal the lowest way is the victim
func TestLRUTie(t *testing.T) {
	mem := memory.NewMemory(1024, 300)
	c := cache.NewCache("L1D", 4, 2, 8, 2)

	c.Fill(0, 1, 10, mem)
	c.Fill(32, 1, 10, mem)
	test.ExpectEquality(t, c.Entry(0, 0).Tag, uint32(0))
	test.ExpectEquality(t, c.Entry(0, 1).Tag, uint32(4))

	c.Fill(64, 1, 11, mem)
	test.ExpectEquality(t, c.Entry(0, 0).Tag, uint32(8))
	test.ExpectEquality(t, c.Entry(0, 1).Tag, uint32(4))
}

// an invalid way is always preferred over evicting a valid line
func TestInvalidPreferred(t *testing.T) {
	mem := memory.NewMemory(1024, 300)
	c := cache.NewCache("L1D", 1, 4, 8, 2)

	for i := range 4 {
		c.Fill(uint32(i*8), 1, 0, mem)
	}
	for w := range 4 {
		test.ExpectEquality(t, c.Entry(0, w).Tag, uint32(w), w)
	}
}

func TestClearAndFlush(t *testing.T) {
	mem := memory.NewMemory(1024, 300)
	c := cache.NewCache("L2", 4, 2, 8, 4)

	c.Fill(0, 1, 1, mem)
	c.Fill(0, 1, 2, mem)

	// flush keeps the counters
	c.Flush()
	test.ExpectFailure(t, c.Contains(0, 1))
	test.ExpectEquality(t, c.Stats(), cache.Statistics{Accesses: 2, Hits: 1, Misses: 1})

	c.Fill(0, 1, 3, mem)
	test.ExpectEquality(t, c.Misses, uint64(2))

	// clear resets everything
	c.Clear()
	test.ExpectFailure(t, c.Contains(0, 1))
	test.ExpectEquality(t, c.Stats(), cache.Statistics{})
}

func TestUpdateAndReady(t *testing.T) {
	mem := memory.NewMemory(1024, 300)
	c := cache.NewCache("L1D", 4, 2, 8, 2)

	// not resident
	test.ExpectFailure(t, c.Update(8, []byte{1}))
	test.ExpectEquality(t, c.Ready(8, 1), uint64(0))

	c.Fill(8, 1, 1, mem)
	test.ExpectSuccess(t, c.Update(9, []byte{0xaa, 0xbb}))
	d := c.Fill(9, 2, 2, mem)
	test.ExpectEquality(t, d[0], uint8(0xaa))
	test.ExpectEquality(t, d[1], uint8(0xbb))

	// memory is not changed by an update
	test.ExpectEquality(t, mem.Peek(9), uint8(0))

	c.SetReady(8, 1, 302)
	test.ExpectEquality(t, c.Ready(15, 1), uint64(302))
}

func TestStraddle(t *testing.T) {
	mem := memory.NewMemory(1024, 300)
	c := cache.NewCache("L1D", 4, 2, 8, 2)

	defer func() {
		test.ExpectInequality(t, recover(), nil)
	}()

	// bytes 6 to 9 cover two lines
	c.Fill(6, 4, 1, mem)
}

func TestLevels(t *testing.T) {
	mem := memory.NewMemory(1024, 300)
	mem.PokeUint32(128, 0xcafef00d)

	l3 := &cache.Level{Cache: cache.NewCache("L3", 8, 4, 32, 8), Next: mem}
	l2 := &cache.Level{Cache: cache.NewCache("L2", 8, 2, 16, 4), Next: l3}
	l1 := cache.NewCache("L1D", 4, 2, 8, 2)

	test.ExpectEquality(t, l2.Latency(128, 4, mem.Latency), uint64(300))

	d := l1.Fill(128, 4, 1, l2)
	test.ExpectEquality(t, d[0], uint8(0x0d))
	test.ExpectEquality(t, l1.Misses, uint64(1))
	test.ExpectEquality(t, l2.Cache.Misses, uint64(1))
	test.ExpectEquality(t, l3.Cache.Misses, uint64(1))

	// each level holds the line
	test.ExpectEquality(t, l2.Latency(128, 4, mem.Latency), uint64(4))
	l2.Cache.Flush()
	test.ExpectEquality(t, l2.Latency(128, 4, mem.Latency), uint64(8))

	// writes go all the way through to memory
	l2.Write(136, []byte{1, 2, 3, 4})
	test.ExpectEquality(t, mem.PeekUint32(136), uint32(0x04030201))
	d = l3.Cache.Fill(136, 4, 2, mem)
	test.ExpectEquality(t, d[3], uint8(4))
}

// after a flush every way is invalid and refills start again at way 0
func TestFlushRefill(t *testing.T) {
	mem := memory.NewMemory(1024, 300)
	c := cache.NewCache("L1D", 2, 2, 8, 2)

	c.Fill(0, 1, 5, mem)
	c.Fill(16, 1, 6, mem)
	test.ExpectEquality(t, c.Entry(0, 1).Touched, uint64(6))

	c.Flush()
	for w := range 2 {
		e := c.Entry(0, w)
		test.ExpectFailure(t, e.Valid, w)
		test.ExpectEquality(t, e.Touched, uint64(0), w)
		test.ExpectEquality(t, e.Ready, uint64(0), w)
	}

	c.Fill(16, 1, 7, mem)
	test.ExpectEquality(t, c.Entry(0, 0).Tag, uint32(2))
	test.ExpectEquality(t, c.Entry(0, 0).Touched, uint64(7))
	test.ExpectFailure(t, c.Entry(0, 1).Valid)

	// set 1 is unaffected by accesses to set 0
	test.ExpectFailure(t, c.Entry(1, 0).Valid)
}
