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

package database

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pipesim/pipesim/curated"
)

// Sentinal error patterns.
const (
	DatabaseError = "database: %v"
	NoEntry       = "database: no entry with key (%d)"
)

// separators used in the database file
const (
	fieldSep = ","
	entrySep = "\n"
)

// the leading fields of every entry
const (
	leaderFieldKey = iota
	leaderFieldID
	numLeaderFields
)

// Entry represents the generic entry in the database.
type Entry interface {
	// ID returns the string that is used to identify the entry type in
	// the database
	ID() string

	// String should return information about the entry in a human readable
	// format. by contrast, machine readable representation is returned by the
	// Serialise() function
	String() string

	// return the values that will be written to the database. the fields must
	// not contain the field separator
	Serialise() ([]string, error)
}

// Deserialiser creates an Entry from the fields of an entry in the database
// file. The leading fields are not included.
type Deserialiser func(fields []string) (Entry, error)

// Session keeps track of a database session.
type Session struct {
	path string

	entries map[int]Entry

	// sorted list of keys. used for displaying entries in the correct order
	// and for saving in the correct order
	keys []int

	entryTypes map[string]Deserialiser
}

// StartSession starts a new session with the database at path. The database
// file will be created if it does not exist. The init function is called
// before the database is read and should register the entry types with
// AddEntryType().
func StartSession(path string, init func(*Session) error) (*Session, error) {
	db := &Session{
		path:       path,
		entries:    make(map[int]Entry),
		entryTypes: make(map[string]Deserialiser),
	}

	if init != nil {
		if err := init(db); err != nil {
			return nil, err
		}
	}

	if err := db.readDBFile(); err != nil {
		return nil, err
	}

	return db, nil
}

// EndSession closes the session. If commitChanges is true then the entries
// are written to the database file.
func (db *Session) EndSession(commitChanges bool) error {
	if !commitChanges {
		return nil
	}

	s := strings.Builder{}
	for _, key := range db.keys {
		ent := db.entries[key]
		fields, err := ent.Serialise()
		if err != nil {
			return curated.Errorf(DatabaseError, err)
		}

		s.WriteString(fmt.Sprintf("%03d%s%s", key, fieldSep, ent.ID()))
		for _, f := range fields {
			if strings.Contains(f, fieldSep) || strings.Contains(f, entrySep) {
				return curated.Errorf(DatabaseError, fmt.Sprintf("field contains separator [%s]", f))
			}
			s.WriteString(fieldSep)
			s.WriteString(f)
		}
		s.WriteString(entrySep)
	}

	if err := os.WriteFile(db.path, []byte(s.String()), 0o600); err != nil {
		return curated.Errorf(DatabaseError, err)
	}

	return nil
}

// AddEntryType registers the deserialiser for an entry type.
func (db *Session) AddEntryType(id string, des Deserialiser) error {
	if _, ok := db.entryTypes[id]; ok {
		return curated.Errorf(DatabaseError, fmt.Sprintf("entry type [%s] already registered", id))
	}
	db.entryTypes[id] = des
	return nil
}

func (db *Session) readDBFile() error {
	buffer, err := os.ReadFile(db.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return curated.Errorf(DatabaseError, err)
	}

	lines := strings.Split(string(buffer), entrySep)
	for i, l := range lines {
		l = strings.TrimSpace(l)
		if len(l) == 0 {
			continue
		}

		fields := strings.Split(l, fieldSep)
		if len(fields) < numLeaderFields {
			return curated.Errorf(DatabaseError, fmt.Sprintf("malformed entry at line %d", i+1))
		}

		key, err := strconv.Atoi(fields[leaderFieldKey])
		if err != nil {
			return curated.Errorf(DatabaseError, fmt.Sprintf("invalid key [%s] at line %d", fields[leaderFieldKey], i+1))
		}

		if _, ok := db.entries[key]; ok {
			return curated.Errorf(DatabaseError, fmt.Sprintf("duplicate key [%d] at line %d", key, i+1))
		}

		des, ok := db.entryTypes[fields[leaderFieldID]]
		if !ok {
			return curated.Errorf(DatabaseError, fmt.Sprintf("unrecognised entry type [%s] at line %d", fields[leaderFieldID], i+1))
		}

		ent, err := des(fields[numLeaderFields:])
		if err != nil {
			return curated.Errorf(DatabaseError, fmt.Sprintf("line %d: %v", i+1, err))
		}

		db.entries[key] = ent
		db.keys = append(db.keys, key)
	}

	sort.Ints(db.keys)

	return nil
}

// NumEntries returns the number of entries in the database.
func (db *Session) NumEntries() int {
	return len(db.keys)
}

// Add an entry to the database. Returns the key of the new entry.
func (db *Session) Add(ent Entry) int {
	key := 0
	if len(db.keys) > 0 {
		key = db.keys[len(db.keys)-1] + 1
	}
	db.entries[key] = ent
	db.keys = append(db.keys, key)
	return key
}

// Get returns the entry with the specified key.
func (db *Session) Get(key int) (Entry, error) {
	ent, ok := db.entries[key]
	if !ok {
		return nil, curated.Errorf(NoEntry, key)
	}
	return ent, nil
}

// Delete the entry with the specified key.
func (db *Session) Delete(key int) error {
	if _, ok := db.entries[key]; !ok {
		return curated.Errorf(NoEntry, key)
	}
	delete(db.entries, key)
	for i, k := range db.keys {
		if k == key {
			db.keys = append(db.keys[:i], db.keys[i+1:]...)
			break
		}
	}
	return nil
}

// List every entry in the database.
func (db *Session) List(output io.Writer) error {
	for _, key := range db.keys {
		if _, err := io.WriteString(output, fmt.Sprintf("%03d %s\n", key, db.entries[key])); err != nil {
			return err
		}
	}
	_, err := io.WriteString(output, fmt.Sprintf("Total: %d\n", len(db.keys)))
	return err
}

// SelectAll calls onSelect for every entry in key order. The selection stops
// early if onSelect returns false or an error.
func (db *Session) SelectAll(onSelect func(key int, ent Entry) (bool, error)) error {
	for _, key := range db.keys {
		cont, err := onSelect(key, db.entries[key])
		if err != nil {
			return err
		}
		if !cont {
			break
		}
	}
	return nil
}
