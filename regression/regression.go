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

package regression

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pipesim/pipesim/curated"
	"github.com/pipesim/pipesim/regression/database"
	"github.com/pipesim/pipesim/resources"
)

// Sentinal error patterns.
const (
	RegressionError = "regression: %v"
	InvalidKey      = "regression: invalid key (%s)"
)

// DefaultDB is the name of the regression database in the resources
// directory.
const DefaultDB = "regressionDB"

// Regressor is the generic entry type in the regression database.
type Regressor interface {
	database.Entry

	// perform the regression test for the regression type. the newRegression
	// flag is used when the entry is being added to the database and the
	// recorded values should be taken from the run
	//
	// message is the string that is to be printed while the regression is
	// running. the returned string is a reason for failure
	regress(newRegression bool, output io.Writer, message string) (bool, string, error)
}

// when starting a database session we need to register what entries we will
// find in the database
func initDBSession(db *database.Session) error {
	return db.AddEntryType(timingEntryID, deserialiseTimingEntry)
}

// DBPath returns the path of the default regression database.
func DBPath() (string, error) {
	return resources.JoinPath(DefaultDB)
}

// RegressList displays all entries in the database.
func RegressList(dbPath string, output io.Writer) error {
	if output == nil {
		return curated.Errorf(RegressionError, "io.Writer should not be nil")
	}

	db, err := database.StartSession(dbPath, initDBSession)
	if err != nil {
		return curated.Errorf(RegressionError, err)
	}
	defer db.EndSession(false)

	return db.List(output)
}

// RegressAdd runs the regressor and adds it to the database with the values
// of that run.
func RegressAdd(dbPath string, output io.Writer, reg Regressor) error {
	if output == nil {
		return curated.Errorf(RegressionError, "io.Writer should not be nil")
	}

	db, err := database.StartSession(dbPath, initDBSession)
	if err != nil {
		return curated.Errorf(RegressionError, err)
	}

	msg := fmt.Sprintf("adding: %s", reg)
	ok, reason, err := reg.regress(true, output, msg)
	if err != nil || !ok {
		_ = db.EndSession(false)
		if err == nil {
			err = curated.Errorf(RegressionError, reason)
		}
		io.WriteString(output, "\r")
		return err
	}

	key := db.Add(reg)
	io.WriteString(output, fmt.Sprintf("\radded: %03d %s\n", key, reg))

	return db.EndSession(true)
}

// RegressDelete removes an entry from the regression database. The
// confirmation reader is consulted before deletion. A nil reader means that the
// entry is deleted without confirmation.
func RegressDelete(dbPath string, output io.Writer, confirmation io.Reader, key string) error {
	if output == nil {
		return curated.Errorf(RegressionError, "io.Writer should not be nil")
	}

	v, err := strconv.Atoi(key)
	if err != nil {
		return curated.Errorf(InvalidKey, key)
	}

	db, err := database.StartSession(dbPath, initDBSession)
	if err != nil {
		return curated.Errorf(RegressionError, err)
	}

	ent, err := db.Get(v)
	if err != nil {
		_ = db.EndSession(false)
		return curated.Errorf(RegressionError, err)
	}

	if confirmation != nil {
		io.WriteString(output, fmt.Sprintf("%s\ndelete? (y/n): ", ent))
		buf := make([]byte, 10)
		n, _ := confirmation.Read(buf)
		if !strings.EqualFold(strings.TrimSpace(string(buf[:n])), "y") {
			return db.EndSession(false)
		}
	}

	if err := db.Delete(v); err != nil {
		_ = db.EndSession(false)
		return curated.Errorf(RegressionError, err)
	}

	io.WriteString(output, fmt.Sprintf("deleted test #%s from regression database\n", key))

	return db.EndSession(true)
}

// Summary of a regression run.
type Summary struct {
	Succeed int
	Fail    int
	Skipped int

	// keys of the failed entries
	Failed []int
}

func (s Summary) String() string {
	return fmt.Sprintf("regression tests: %d succeed, %d fail, %d skipped", s.Succeed, s.Fail, s.Skipped)
}

// RegressRun runs the regression tests in the database. If keys is not empty
// then only those entries are run.
func RegressRun(dbPath string, output io.Writer, keys []string) (Summary, error) {
	var sum Summary

	if output == nil {
		return sum, curated.Errorf(RegressionError, "io.Writer should not be nil")
	}

	filter := make(map[int]bool)
	for _, k := range keys {
		v, err := strconv.Atoi(k)
		if err != nil {
			return sum, curated.Errorf(InvalidKey, k)
		}
		filter[v] = true
	}

	db, err := database.StartSession(dbPath, initDBSession)
	if err != nil {
		return sum, curated.Errorf(RegressionError, err)
	}
	defer db.EndSession(false)

	err = db.SelectAll(func(key int, ent database.Entry) (bool, error) {
		if len(filter) > 0 && !filter[key] {
			sum.Skipped++
			return true, nil
		}

		reg, ok := ent.(Regressor)
		if !ok {
			return false, curated.Errorf(RegressionError, fmt.Sprintf("database entry %03d is not a regressor", key))
		}

		msg := fmt.Sprintf("%03d %s", key, reg)
		io.WriteString(output, msg)

		ok, reason, err := reg.regress(false, output, msg)
		switch {
		case err != nil:
			sum.Fail++
			sum.Failed = append(sum.Failed, key)
			io.WriteString(output, fmt.Sprintf("\r%s [error] %v\n", msg, err))
		case !ok:
			sum.Fail++
			sum.Failed = append(sum.Failed, key)
			io.WriteString(output, fmt.Sprintf("\r%s [fail] %s\n", msg, reason))
		default:
			sum.Succeed++
			io.WriteString(output, fmt.Sprintf("\r%s [ok]\n", msg))
		}

		return true, nil
	})
	if err != nil {
		return sum, err
	}

	io.WriteString(output, fmt.Sprintf("%s\n", sum))

	return sum, nil
}
