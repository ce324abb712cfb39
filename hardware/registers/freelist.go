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

package registers

// freeList is a ring of free physical slot indices. slots are allocated from
// the head and released to the tail.
type freeList struct {
	ring  []int
	head  int
	count int
}

func newFreeList(capacity int) freeList {
	return freeList{ring: make([]int, capacity)}
}

func (l *freeList) reset() {
	l.head = 0
	l.count = 0
}

func (l *freeList) len() int {
	return l.count
}

func (l *freeList) push(slot int) {
	if l.count == len(l.ring) {
		panic("registers: free list overflow")
	}
	l.ring[(l.head+l.count)%len(l.ring)] = slot
	l.count++
}

func (l *freeList) pop() (int, bool) {
	if l.count == 0 {
		return 0, false
	}
	slot := l.ring[l.head]
	l.head = (l.head + 1) % len(l.ring)
	l.count--
	return slot, true
}
