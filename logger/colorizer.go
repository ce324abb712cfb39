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

package logger

import (
	"io"
	"os"
	"strings"

	"github.com/pipesim/pipesim/easyterm/ansi"
	xterm "golang.org/x/term"
)

// Colorizer applies basic coloring rules to logging output. The first line of
// each write is printed normally and any continuation lines are dimmed.
type Colorizer struct {
	out     io.Writer
	enabled bool
}

// NewColorizer is the preferred method if initialisation for the Colorizer
// type. Coloring is only enabled if the output is a terminal.
func NewColorizer(out io.Writer) Colorizer {
	c := Colorizer{out: out}
	if f, ok := out.(*os.File); ok {
		c.enabled = xterm.IsTerminal(int(f.Fd()))
	}
	return c
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (int, error) {
	if !c.enabled {
		return c.out.Write(p)
	}

	l := strings.Split(strings.TrimSpace(string(p)), "\n")

	n, err := io.WriteString(c.out, l[0]+"\n")
	if err != nil || len(l) == 1 {
		return n, err
	}

	m, err := io.WriteString(c.out, ansi.DimPens["red"]+strings.Join(l[1:], "\n")+"\n"+ansi.NormalPen)
	return n + m, err
}
