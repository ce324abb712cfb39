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

// Package logger is the central logging facility for the simulator. Entries
// are tagged strings held in a bounded list, with repeated entries collapsed
// into one.
//
// Every log request is accompanied by a Permission. The environment package
// implements the Permission interface so that only the main simulation is
// allowed to log. Runs launched by a sweep carry their own labelled
// environment and are silent.
//
//	logger.Log(env, "simulator", err)
//	logger.Logf(logger.Allow, "prefs", "loaded from %s", path)
//
// The log can be echoed to an io.Writer as entries are added with SetEcho().
// The Colorizer type can sit between the log and a terminal.
package logger
