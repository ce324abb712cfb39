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

package cache

import (
	"fmt"
	"strings"

	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// BackingStore is the next level of the memory hierarchy behind a cache. The
// memory package's Memory type implements this interface, as does Level.
type BackingStore interface {
	// ReadLine returns n bytes starting at the line aligned address ea
	ReadLine(ea uint32, n int) []byte

	// Write bytes starting at ea
	Write(ea uint32, p []byte)
}

// Statistics are the running totals for a cache. Every counted access is
// either a hit or a miss.
type Statistics struct {
	Accesses uint64
	Hits     uint64
	Misses   uint64
}

func (s Statistics) String() string {
	return fmt.Sprintf("access= %d, hit = %d, miss = %d", s.Accesses, s.Hits, s.Misses)
}

// Entry is a single line in the cache.
type Entry struct {
	Valid bool

	// the line address (the address divided by the line size)
	Tag uint32

	// last cycle the line was touched. used to decide the LRU victim
	Touched uint64

	// cycle at which the contents of the line are available. a line filled by
	// a missing access is in flight until this cycle
	Ready uint64

	Data []byte
}

// Cache is an N-way set-associative cache with LRU replacement. It is
// write-through and keeps no dirty state.
//
// The set and way bookkeeping is an akita directory. The timing state and the
// contents of each line are held alongside it, indexed by set and way.
type Cache struct {
	Statistics

	Label   string
	Latency uint64

	nsets    int
	nways    int
	linesize int

	directory *akitacache.DirectoryImpl
	lines     []line
}

// timing state and contents of a single block in the directory
type line struct {
	touched uint64
	ready   uint64
	data    []byte
}

// NewCache is the preferred method of initialisation for the Cache type.
func NewCache(label string, nsets, nways, linesize int, latency uint64) *Cache {
	c := &Cache{
		Label:    label,
		Latency:  latency,
		nsets:    nsets,
		nways:    nways,
		linesize: linesize,
		lines:    make([]line, nsets*nways),
	}
	for i := range c.lines {
		c.lines[i].data = make([]byte, linesize)
	}
	c.directory = akitacache.NewDirectory(nsets, nways, linesize, &victimFinder{cache: c})
	return c
}

// victimFinder implements akita's VictimFinder interface. An invalid way is
// used in preference to evicting a valid line. Otherwise the way touched least
// recently is chosen with ties going to the lowest way.
type victimFinder struct {
	cache *Cache
}

// FindVictim implements the akitacache.VictimFinder interface.
func (v *victimFinder) FindVictim(set *akitacache.Set) *akitacache.Block {
	var victim *akitacache.Block
	for _, b := range set.Blocks {
		if !b.IsValid {
			return b
		}
		if victim == nil || v.cache.line(b).touched < v.cache.line(victim).touched {
			victim = b
		}
	}
	return victim
}

func (c *Cache) String() string {
	return fmt.Sprintf("%s: %d bytes of capacity, %d sets, %d-way set associative, %d-byte line size",
		c.Label, c.Capacity(), c.nsets, c.nways, c.linesize)
}

// Sets returns the number of sets in the cache.
func (c *Cache) Sets() int {
	return c.nsets
}

// Ways returns the associativity of the cache.
func (c *Cache) Ways() int {
	return c.nways
}

// LineSize returns the size of a line in bytes.
func (c *Cache) LineSize() int {
	return c.linesize
}

// Capacity returns the size of the cache in bytes.
func (c *Cache) Capacity() int {
	return c.nsets * c.nways * c.linesize
}

// Stats returns a copy of the cache counters.
func (c *Cache) Stats() Statistics {
	return c.Statistics
}

func (c *Cache) line(b *akitacache.Block) *line {
	return &c.lines[b.SetID*c.nways+b.WayID]
}

// Entry returns a copy of the entry at set and way. The Data field refers to
// the cache line directly.
func (c *Cache) Entry(set, way int) Entry {
	b := c.directory.Sets[set].Blocks[way]
	l := c.line(b)
	e := Entry{
		Valid: b.IsValid,
		Data:  l.data,
	}
	if b.IsValid {
		e.Tag = uint32(b.Tag / uint64(c.linesize))
		e.Touched = l.touched
		e.Ready = l.ready
	}
	return e
}

// locate returns the line aligned address for an access of n bytes at ea. an
// access that straddles two lines is a misuse of the cache.
func (c *Cache) locate(ea uint32, n int) uint64 {
	if n <= 0 {
		panic(fmt.Sprintf("cache: %s access of %d bytes", c.Label, n))
	}
	tag := ea / uint32(c.linesize)
	if (uint64(ea)+uint64(n)-1)/uint64(c.linesize) != uint64(tag) {
		panic(fmt.Sprintf("cache: %s access of %d bytes at %#08x straddles two lines", c.Label, n, ea))
	}
	return uint64(tag) * uint64(c.linesize)
}

// find returns the block holding the line for ea or nil if it is not resident
func (c *Cache) find(ea uint32, n int) *akitacache.Block {
	return c.directory.Lookup(0, c.locate(ea, n))
}

// Contains returns true if the line covering n bytes at ea is resident. The
// counters are not changed.
func (c *Cache) Contains(ea uint32, n int) bool {
	return c.find(ea, n) != nil
}

// Hit is a counted lookup in the cache. If the line covering n bytes at ea is
// resident the access is a hit and the line is touched at cycle now.
// Otherwise the access is a miss and the cache is unchanged.
func (c *Cache) Hit(ea uint32, n int, now uint64) bool {
	c.Accesses++
	b := c.find(ea, n)
	if b == nil {
		c.Misses++
		return false
	}
	c.Hits++
	c.line(b).touched = now
	return true
}

// Fill guarantees that the line covering n bytes at ea is resident. The
// access is counted as a hit or a miss. On a miss the LRU way of the set is
// replaced with the line read from next. Either way the line is touched at
// cycle now.
//
// Returns the n bytes of the line starting at ea. The returned slice refers
// to the cache line directly.
func (c *Cache) Fill(ea uint32, n int, now uint64, next BackingStore) []byte {
	c.Accesses++

	b := c.find(ea, n)
	if b != nil {
		c.Hits++
	} else {
		c.Misses++
		addr := c.locate(ea, n)
		b = c.directory.FindVictim(addr)
		b.IsValid = true
		b.Tag = addr
		l := c.line(b)
		l.ready = 0
		copy(l.data, next.ReadLine(uint32(addr), c.linesize))
	}
	l := c.line(b)
	l.touched = now

	off := int(ea % uint32(c.linesize))
	return l.data[off : off+n]
}

// Ready returns the cycle at which the line covering n bytes at ea becomes
// available. Returns zero if the line is not resident.
func (c *Cache) Ready(ea uint32, n int) uint64 {
	if b := c.find(ea, n); b != nil {
		return c.line(b).ready
	}
	return 0
}

// SetReady sets the cycle at which the resident line covering n bytes at ea
// becomes available. Has no effect if the line is not resident.
func (c *Cache) SetReady(ea uint32, n int, cycle uint64) {
	if b := c.find(ea, n); b != nil {
		c.line(b).ready = cycle
	}
}

// Update the resident copy of the bytes starting at ea. Returns false if the
// line is not resident. Not a counted access.
func (c *Cache) Update(ea uint32, p []byte) bool {
	b := c.find(ea, len(p))
	if b == nil {
		return false
	}
	off := int(ea % uint32(c.linesize))
	copy(c.line(b).data[off:], p)
	return true
}

// Flush invalidates every line. The counters are not changed.
func (c *Cache) Flush() {
	c.directory.Reset()
	for i := range c.lines {
		c.lines[i].touched = 0
		c.lines[i].ready = 0
	}
}

// Clear resets the counters and invalidates every line. Backing memory is not
// affected.
func (c *Cache) Clear() {
	c.Statistics = Statistics{}
	c.Flush()
}

// Dump writes a description of every valid line to a string. Useful for
// debugging and for the reflection package.
func (c *Cache) Dump() string {
	s := strings.Builder{}
	for set := range c.nsets {
		for way := range c.nways {
			e := c.Entry(set, way)
			if e.Valid {
				s.WriteString(fmt.Sprintf("%s[%d][%d]: line %#08x touched=%d ready=%d % x\n",
					c.Label, set, way, e.Tag*uint32(c.linesize), e.Touched, e.Ready, e.Data))
			}
		}
	}
	return s.String()
}
