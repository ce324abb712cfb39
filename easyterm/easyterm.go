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

package easyterm

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/term"
	xterm "golang.org/x/term"
)

// DefaultDevice is the terminal device opened by Open() when no device is
// specified.
const DefaultDevice = "/dev/tty"

// Terminal reads single keypresses from a terminal device in cbreak mode.
// Output is not affected by the mode.
type Terminal struct {
	input  *term.Term
	output io.Writer
}

// IsTerminal returns true if the file is a terminal.
func IsTerminal(f *os.File) bool {
	return xterm.IsTerminal(int(f.Fd()))
}

// Open the terminal device and put it into cbreak mode. An empty device
// string opens DefaultDevice. The terminal must be closed with Close() for the
// previous terminal mode to be restored.
func Open(device string, output io.Writer) (*Terminal, error) {
	if device == "" {
		device = DefaultDevice
	}

	t, err := term.Open(device, term.CBreakMode)
	if err != nil {
		return nil, fmt.Errorf("easyterm: %w", err)
	}

	return &Terminal{
		input:  t,
		output: output,
	}, nil
}

// Close restores the terminal mode and closes the device.
func (pt *Terminal) Close() error {
	if err := pt.input.Restore(); err != nil {
		_ = pt.input.Close()
		return fmt.Errorf("easyterm: %w", err)
	}
	return pt.input.Close()
}

// ReadKey blocks until a key is pressed and returns the first byte of the
// keypress. Escape sequences are returned one byte at a time.
func (pt *Terminal) ReadKey() (byte, error) {
	b := make([]byte, 1)
	for {
		n, err := pt.input.Read(b)
		if err != nil {
			return 0, err
		}
		if n == 1 {
			return b[0], nil
		}
	}
}

// Print writes the formatted string to the output.
func (pt *Terminal) Print(s string, a ...any) {
	io.WriteString(pt.output, fmt.Sprintf(s, a...))
}
