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

// Package statsview serves runtime statistics over HTTP while a sweep is in
// progress, useful for watching memory and goroutine use across many
// concurrent runs. Underlying functionality is provided by
// "github.com/go-echarts/statsview".
//
// The server is only built when the statsview build constraint is present.
// Without the constraint NewServer() returns the NotAvailable error.
//
// Once started, graphical statistics are viewable at the address given by
// Server.URL(), by default:
//
//	http://localhost:12600/debug/statsview
//
// And standard Go pprof statistics at:
//
//	http://localhost:12600/debug/pprof/
package statsview

// DefaultAddress is used by NewServer() when no address is given.
const DefaultAddress = "localhost:12600"

// Path of the statistics page on the server.
const Path = "/debug/statsview"

// Sentinel error patterns.
const (
	NotAvailable = "statsview: not available in this build"
	NotStarted   = "statsview: server has not been started"
)

func address(addr string) string {
	if addr == "" {
		return DefaultAddress
	}
	return addr
}
