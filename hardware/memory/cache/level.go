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

// Level adapts a Cache so that it can be the BackingStore of another cache.
// A line requested by the upper cache is filled from Next if it is not
// resident. Writes update the resident line and are always passed on to Next.
//
// Fills are touched at the cycle in the Now field. The owner of the Level is
// responsible for keeping Now current.
type Level struct {
	Cache *Cache
	Next  BackingStore
	Now   uint64
}

// ReadLine implements the BackingStore interface.
func (l *Level) ReadLine(ea uint32, n int) []byte {
	line := l.Cache.Fill(ea, n, l.Now, l.Next)

	// the upper cache keeps its own copy
	c := make([]byte, n)
	copy(c, line)
	return c
}

// Write implements the BackingStore interface.
func (l *Level) Write(ea uint32, p []byte) {
	l.Cache.Update(ea, p)
	l.Next.Write(ea, p)
}

// Latency returns the latency of an access of n bytes at ea somewhere in the
// chain of levels starting with l. If no level holds the line then
// missLatency is returned.
func (l *Level) Latency(ea uint32, n int, missLatency uint64) uint64 {
	if l.Cache.Contains(ea, n) {
		return l.Cache.Latency
	}
	if next, ok := l.Next.(*Level); ok {
		return next.Latency(ea, n, missLatency)
	}
	return missLatency
}
