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

//go:build !statsview

package statsview

import (
	"fmt"
	"io"

	"github.com/pipesim/pipesim/curated"
)

// Server is a placeholder in builds without the statsview constraint. No
// instance is ever returned by NewServer().
type Server struct {
	addr string
}

// NewServer always returns the NotAvailable error.
func NewServer(addr string) (*Server, error) {
	return nil, curated.Errorf(NotAvailable)
}

// URL of the statistics page.
func (srv *Server) URL() string {
	return fmt.Sprintf("http://%s%s", address(srv.addr), Path)
}

// Start does nothing.
func (srv *Server) Start(output io.Writer) {
}

// Stop always returns the NotStarted error.
func (srv *Server) Stop() error {
	return curated.Errorf(NotStarted)
}

// Available returns true if a statistics server can be started.
func Available() bool {
	return false
}
