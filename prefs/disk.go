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

package prefs

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pipesim/pipesim/curated"
)

// DefaultPrefsFile is the default filename of the global preferences file.
const DefaultPrefsFile = "preferences"

// WarningBoilerPlate is the first line of every prefs file.
const WarningBoilerPlate = "*** do not edit this file by hand ***"

// Sentinal error patterns.
const (
	NoPrefsFile     = "prefs: no prefs file (%s)"
	DuplicateKey    = "prefs: duplicate key (%s)"
	InvalidPrefsKey = "prefs: %s: %v"
)

// separator between key and value in the prefs file.
const separator = " :: "

// Disk represents preference values as stored on disk. A single prefs file
// can be shared by several Disk instances. Save() preserves the entries it
// does not own.
//
// A Disk with an empty path is never read from or written to. Load() will
// still apply values from the command line stack.
type Disk struct {
	path    string
	entries map[string]pref
}

func (dsk *Disk) String() string {
	keys := dsk.keys()
	s := strings.Builder{}
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, separator, dsk.entries[k]))
	}
	return s.String()
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	dsk := &Disk{
		path:    path,
		entries: make(map[string]pref),
	}
	return dsk, nil
}

// Add preference value to list of values to store/load from disk.
func (dsk *Disk) Add(key string, p pref) error {
	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf(DuplicateKey, key)
	}
	dsk.entries[key] = p
	return nil
}

func (dsk *Disk) keys() []string {
	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Reset all entries to their zero value.
func (dsk *Disk) Reset() error {
	for _, k := range dsk.keys() {
		if err := dsk.entries[k].Reset(); err != nil {
			return curated.Errorf(InvalidPrefsKey, k, err)
		}
	}
	return nil
}

// read the prefs file into a key/value map. a missing file is not an error
// but the returned bool will be false.
func (dsk *Disk) read() (map[string]string, bool, error) {
	values := make(map[string]string)

	if dsk.path == "" {
		return values, false, nil
	}

	f, err := os.Open(dsk.path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, false, nil
		}
		return nil, false, curated.Errorf("prefs: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	// the first line must be the warning boilerplate
	if !scanner.Scan() || scanner.Text() != WarningBoilerPlate {
		return nil, false, curated.Errorf("prefs: %s is not a prefs file", dsk.path)
	}

	for scanner.Scan() {
		kv := strings.SplitN(scanner.Text(), separator, 2)
		if len(kv) != 2 {
			continue
		}
		values[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}

	if err := scanner.Err(); err != nil {
		return nil, false, curated.Errorf("prefs: %v", err)
	}

	return values, true, nil
}

// Save current preference values to disk. Entries in the file that are not
// owned by this Disk instance are preserved.
func (dsk *Disk) Save() error {
	if dsk.path == "" {
		return nil
	}

	values, _, err := dsk.read()
	if err != nil {
		return err
	}

	for k, p := range dsk.entries {
		values[k] = p.String()
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, separator, values[k]))
	}

	if err := os.WriteFile(dsk.path, []byte(s.String()), 0o600); err != nil {
		return curated.Errorf("prefs: %v", err)
	}

	return nil
}

// Load preference values from disk. Values on the top of the command line
// stack override values in the file.
//
// If saveOnFirstUse is true and the prefs file does not exist then the file
// will be created with the current values. Otherwise a missing prefs file
// results in a NoPrefsFile error. The command line values are applied in
// either case.
func (dsk *Disk) Load(saveOnFirstUse bool) error {
	values, exists, err := dsk.read()
	if err != nil {
		return err
	}

	for _, k := range dsk.keys() {
		if v, ok := values[k]; ok {
			if err := dsk.entries[k].Set(v); err != nil {
				return curated.Errorf(InvalidPrefsKey, k, err)
			}
		}
	}

	for _, k := range dsk.keys() {
		if ok, v := GetCommandLinePref(k); ok {
			if err := dsk.entries[k].Set(v); err != nil {
				return curated.Errorf(InvalidPrefsKey, k, err)
			}
		}
	}

	if !exists && dsk.path != "" {
		if saveOnFirstUse {
			return dsk.Save()
		}
		return curated.Errorf(NoPrefsFile, dsk.path)
	}

	return nil
}
