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

package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// ApplicationName is the name to use when referring to the application.
const ApplicationName = "Pipesim"

// release number, set with -ldflags "-X" for release builds
var number string

// Info describes the build of the running binary.
type Info struct {
	// the release number. "unreleased" for a build from a vcs checkout and
	// "local" when there is no vcs information, as happens with "go run ."
	Version string
	Release bool

	// vcs revision. Modified is true if the checkout had uncommitted changes
	Revision string
	Modified bool

	GoVersion string

	// module dependencies as "path version"
	Deps []string
}

var current Info

func init() {
	bi, _ := debug.ReadBuildInfo()
	current = FromBuildInfo(bi, number)
}

// Current returns the build information of the running binary.
func Current() Info {
	return current
}

// FromBuildInfo creates an Info from the module build information and the
// release number. The build information can be nil.
func FromBuildInfo(bi *debug.BuildInfo, number string) Info {
	info := Info{
		Version:  "local",
		Revision: "no revision information",
	}

	var vcs bool
	if bi != nil {
		info.GoVersion = bi.GoVersion
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				info.Revision = s.Value
			case "vcs.modified":
				info.Modified = s.Value == "true"
			}
		}
		for _, d := range bi.Deps {
			info.Deps = append(info.Deps, fmt.Sprintf("%s %s", d.Path, d.Version))
		}
	}

	if number != "" {
		info.Version = number
		info.Release = true
	} else if vcs {
		info.Version = "unreleased"
	}

	return info
}

// String returns the application name and version in a form suitable for
// printing on the command line. Revision information is included for
// unreleased versions.
func (info Info) String() string {
	if info.Release {
		return fmt.Sprintf("%s %s", ApplicationName, info.Version)
	}
	r := info.Revision
	if info.Modified {
		r = fmt.Sprintf("%s+dirty", r)
	}
	return fmt.Sprintf("%s %s (%s)", ApplicationName, info.Version, r)
}

// Dependencies returns one line for each module dependency.
func (info Info) Dependencies() string {
	if len(info.Deps) == 0 {
		return "no dependency information\n"
	}
	return strings.Join(info.Deps, "\n") + "\n"
}

// Banner returns the String() of the Current() build.
func Banner() string {
	return current.String()
}
