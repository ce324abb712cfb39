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

package memory

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Memory is the flat byte array behind every cache. Multi-byte values are
// stored in little-endian order.
type Memory struct {
	data []byte

	// the number of cycles to satisfy an access that misses every cache
	Latency uint64
}

// NewMemory is the preferred method of initialisation for the Memory type.
func NewMemory(size int, latency uint64) *Memory {
	return &Memory{
		data:    make([]byte, size),
		Latency: latency,
	}
}

func (mem *Memory) String() string {
	return fmt.Sprintf("MEM: %d bytes, %d cycle latency", len(mem.data), mem.Latency)
}

// Size of memory in bytes.
func (mem *Memory) Size() int {
	return len(mem.data)
}

// Zero every byte of memory.
func (mem *Memory) Zero() {
	clear(mem.data)
}

// an access outside of memory is a misuse of the simulated instruction set
func (mem *Memory) check(ea uint32, n int) {
	if uint64(ea)+uint64(n) > uint64(len(mem.data)) {
		panic(fmt.Sprintf("memory: access of %d bytes at %#08x outside of memory (%d bytes)", n, ea, len(mem.data)))
	}
}

// ReadLine returns a copy of n bytes starting at ea. Implements the
// cache.BackingStore interface.
func (mem *Memory) ReadLine(ea uint32, n int) []byte {
	mem.check(ea, n)
	line := make([]byte, n)
	copy(line, mem.data[ea:])
	return line
}

// Write bytes to memory starting at ea.
func (mem *Memory) Write(ea uint32, p []byte) {
	mem.check(ea, len(p))
	copy(mem.data[ea:], p)
}

// Slice returns n bytes of memory starting at ea. The returned slice refers
// to memory directly.
func (mem *Memory) Slice(ea uint32, n int) []byte {
	mem.check(ea, n)
	return mem.data[ea : ea+uint32(n)]
}

// Peek returns the byte at ea.
func (mem *Memory) Peek(ea uint32) uint8 {
	mem.check(ea, 1)
	return mem.data[ea]
}

// Poke sets the byte at ea.
func (mem *Memory) Poke(ea uint32, v uint8) {
	mem.check(ea, 1)
	mem.data[ea] = v
}

// PeekUint16 returns the halfword at ea.
func (mem *Memory) PeekUint16(ea uint32) uint16 {
	return binary.LittleEndian.Uint16(mem.Slice(ea, 2))
}

// PokeUint16 sets the halfword at ea.
func (mem *Memory) PokeUint16(ea uint32, v uint16) {
	binary.LittleEndian.PutUint16(mem.Slice(ea, 2), v)
}

// PeekUint32 returns the word at ea.
func (mem *Memory) PeekUint32(ea uint32) uint32 {
	return binary.LittleEndian.Uint32(mem.Slice(ea, 4))
}

// PokeUint32 sets the word at ea.
func (mem *Memory) PokeUint32(ea uint32, v uint32) {
	binary.LittleEndian.PutUint32(mem.Slice(ea, 4), v)
}

// PeekFloat64 returns the doubleword at ea as a floating-point value.
func (mem *Memory) PeekFloat64(ea uint32) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(mem.Slice(ea, 8)))
}

// PokeFloat64 sets the doubleword at ea to a floating-point value.
func (mem *Memory) PokeFloat64(ea uint32, v float64) {
	binary.LittleEndian.PutUint64(mem.Slice(ea, 8), math.Float64bits(v))
}
