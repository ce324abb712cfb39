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

//go:build statsview

package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/pipesim/pipesim/curated"
)

// Server is an HTTP server offering runtime statistics of the simulator
// process.
type Server struct {
	addr string
	mgr  *statsview.ViewManager
}

// NewServer prepares a statistics server for the address. An empty address
// means DefaultAddress. The server is not listening until Start() is
// called.
func NewServer(addr string) (*Server, error) {
	return &Server{addr: address(addr)}, nil
}

// URL of the statistics page.
func (srv *Server) URL() string {
	return fmt.Sprintf("http://%s%s", srv.addr, Path)
}

// Start listening in a new goroutine. The URL of the statistics page is
// written to output. Starting a server that is already running does
// nothing.
func (srv *Server) Start(output io.Writer) {
	if srv.mgr != nil {
		return
	}

	// viewer configuration is global so must be set before the manager is
	// created
	viewer.SetConfiguration(viewer.WithAddr(srv.addr))
	srv.mgr = statsview.New()
	go srv.mgr.Start()

	fmt.Fprintf(output, "sweep statistics at %s\n", srv.URL())
}

// Stop the server.
func (srv *Server) Stop() error {
	if srv.mgr == nil {
		return curated.Errorf(NotStarted)
	}
	srv.mgr.Stop()
	srv.mgr = nil
	return nil
}

// Available returns true if a statistics server can be started.
func Available() bool {
	return true
}
