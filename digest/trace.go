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

package digest

import (
	"crypto/sha1"
	"fmt"
)

// Trace is an io.Writer that fingerprints trace output. It should be used as
// the trace writer of a machine.
//
// Each write is chained to the fingerprint of the previous writes so the
// digest depends on the order of output as well as the content.
type Trace struct {
	digest [sha1.Size]byte
	buffer []byte
	writes int
}

// NewTrace is the preferred method of initialisation for the Trace type.
func NewTrace() *Trace {
	return &Trace{}
}

// Hash implements the Digest interface.
func (dig *Trace) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Trace) ResetDigest() {
	clear(dig.digest[:])
	dig.writes = 0
}

// Writes returns the number of writes since the last reset.
func (dig *Trace) Writes() int {
	return dig.writes
}

// Write implements the io.Writer interface.
func (dig *Trace) Write(p []byte) (int, error) {
	// the previous digest is the head of the hashed buffer
	dig.buffer = append(dig.buffer[:0], dig.digest[:]...)
	dig.buffer = append(dig.buffer, p...)
	dig.digest = sha1.Sum(dig.buffer)
	dig.writes++
	return len(p), nil
}
