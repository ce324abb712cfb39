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

package ansi

import (
	"fmt"
	"strings"
)

// ansi colours
const (
	red     = 1
	green   = 2
	yellow  = 3
	blue    = 4
	magenta = 5
	cyan    = 6
	white   = 7
)

// ansi attribute
const (
	bold      = 1
	underline = 4
	inverse   = 7
	strike    = 8
)

// Pens, DimPens and PenStyles are indexed by colour and style name.
var Pens map[string]string
var DimPens map[string]string
var PenStyles map[string]string

// NormalPen turns off all colours and attributes.
var NormalPen string

// cursor and line control
const (
	ClearLine     = "\033[2K"
	CursorStore   = "\0337"
	CursorRestore = "\0338"
)

func init() {
	Pens = make(map[string]string)
	DimPens = make(map[string]string)
	PenStyles = make(map[string]string)

	NormalPen, _ = Build("", "", "", false, false)

	for _, c := range []string{"red", "green", "yellow", "blue", "magenta", "cyan", "white"} {
		Pens[c], _ = Build(c, "normal", "", true, false)
		DimPens[c], _ = Build(c, "normal", "", false, false)
	}

	PenStyles["bold"], _ = Build("", "", "bold", false, false)
	PenStyles["underline"], _ = Build("", "", "underline", false, false)
}

func colour(target int, name string) (string, bool) {
	switch strings.ToUpper(name)[0] {
	case 'R':
		return fmt.Sprintf("%d%d", target, red), true
	case 'G':
		return fmt.Sprintf("%d%d", target, green), true
	case 'Y':
		return fmt.Sprintf("%d%d", target, yellow), true
	case 'B':
		return fmt.Sprintf("%d%d", target, blue), true
	case 'M':
		return fmt.Sprintf("%d%d", target, magenta), true
	case 'C':
		return fmt.Sprintf("%d%d", target, cyan), true
	case 'W':
		return fmt.Sprintf("%d%d", target, white), true
	case 'D', 'N':
		return fmt.Sprintf("%d9", target), true
	}
	return "", false
}

// CursorMove returns the sequence that moves the cursor n columns. Negative
// values move the cursor backwards.
func CursorMove(n int) string {
	switch {
	case n < 0:
		return fmt.Sprintf("\033[%dD", -n)
	case n > 0:
		return fmt.Sprintf("\033[%dC", n)
	}
	return ""
}

// Build an ANSI sequence. Colours and attributes are matched on their first
// letter. An empty string leaves that part of the sequence out.
func Build(pen, paper, attribute string, brightPen, brightPaper bool) (string, error) {
	var parts []string

	if pen != "" {
		target := 3
		if brightPen {
			target = 9
		}
		c, ok := colour(target, pen)
		if !ok {
			return "", fmt.Errorf("unknown ANSI pen (%s)", pen)
		}
		parts = append(parts, c)
	}

	if paper != "" {
		target := 4
		if brightPaper {
			target = 10
		}
		c, ok := colour(target, paper)
		if !ok {
			return "", fmt.Errorf("unknown ANSI paper (%s)", paper)
		}
		parts = append(parts, c)
	}

	if attribute != "" {
		switch strings.ToUpper(attribute)[0] {
		case 'B':
			parts = append(parts, fmt.Sprintf("%d", bold))
		case 'U':
			parts = append(parts, fmt.Sprintf("%d", underline))
		case 'I':
			parts = append(parts, fmt.Sprintf("%d", inverse))
		case 'S':
			parts = append(parts, fmt.Sprintf("%d", strike))
		case 'D', 'N', 'P':
		default:
			return "", fmt.Errorf("unknown ANSI attribute (%s)", attribute)
		}
	}

	return fmt.Sprintf("\033[%sm", strings.Join(parts, ";")), nil
}
