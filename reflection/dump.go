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

package reflection

import (
	"io"

	"github.com/bradleyjkemp/memviz"
	"github.com/pipesim/pipesim/hardware/machine"
)

// Dump writes a graphviz dot graph of the machine state to the writer. The
// graph can be rendered with:
//
//	dot -Tsvg state.dot > state.svg
func Dump(output io.Writer, m *machine.Machine) {
	memviz.Map(output, Snapshot(m))
}
