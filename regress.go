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

package main

import (
	"io"
	"os"

	"github.com/pipesim/pipesim/curated"
	"github.com/pipesim/pipesim/modalflag"
	"github.com/pipesim/pipesim/regression"
)

// errors returned by the regress modes
const (
	noDatabase    = "no regression database"
	regressFailed = "%d regression tests failed %v"
	noArguments   = "no additional arguments required for %s mode"
	oneKey        = "one database key required for %s mode"
)

// always answers yes to the delete confirmation
type yesReader struct{}

func (*yesReader) Read(p []byte) (int, error) {
	return copy(p, "y"), nil
}

func regress(md *modalflag.Modes) error {
	md.NewMode()
	md.AddSubModes("RUN", "LIST", "DELETE", "ADD")

	def, err := regression.DBPath()
	if err != nil {
		def = ""
	}
	db := md.AddString("db", def, "regression database")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return nil
	case modalflag.ParseError:
		return curated.Errorf(parseError, err)
	}

	if *db == "" {
		return curated.Errorf(noDatabase)
	}

	// modes below parse their own flags
	parse := func() (bool, error) {
		p, err := md.Parse()
		switch p {
		case modalflag.ParseHelp:
			return false, nil
		case modalflag.ParseError:
			return false, curated.Errorf(parseError, err)
		}
		return true, nil
	}

	switch md.Mode() {
	case "RUN":
		md.NewMode()
		if ok, err := parse(); !ok {
			return err
		}

		sum, err := regression.RegressRun(*db, md.Output, md.RemainingArgs())
		if err != nil {
			return err
		}
		if sum.Fail > 0 {
			return curated.Errorf(regressFailed, sum.Fail, sum.Failed)
		}

	case "LIST":
		md.NewMode()
		if ok, err := parse(); !ok {
			return err
		}

		if len(md.RemainingArgs()) > 0 {
			return curated.Errorf(noArguments, md)
		}

		return regression.RegressList(*db, md.Output)

	case "DELETE":
		md.NewMode()
		answerYes := md.AddBool("yes", false, "answer yes to confirmation")
		if ok, err := parse(); !ok {
			return err
		}

		if len(md.RemainingArgs()) != 1 {
			return curated.Errorf(oneKey, md)
		}

		var confirmation io.Reader = os.Stdin
		if *answerYes {
			confirmation = &yesReader{}
		}

		return regression.RegressDelete(*db, md.Output, confirmation, md.GetArg(0))

	case "ADD":
		md.NewMode()
		n := md.AddInt("n", 64, "size of the kernel (bytes, halfwords or columns)")
		m := md.AddInt("m", 0, "number of rows for mxv and spmv (default n)")
		prefs := md.AddString("prefs", "", "preferences to apply on top of the defaults")
		notes := md.AddString("notes", "", "additional annotation for the database")
		md.AdditionalHelp("The entry records the instruction count, cycle count and L1D misses of the kernel.")

		if ok, err := parse(); !ok {
			return err
		}

		if len(md.RemainingArgs()) != 1 {
			return curated.Errorf(oneKernel, md)
		}

		if *m == 0 {
			*m = *n
		}

		reg, err := regression.NewTimingRegression(md.GetArg(0), *n, *m, *prefs)
		if err != nil {
			return err
		}
		reg.Notes = *notes

		return regression.RegressAdd(*db, md.Output, reg)
	}

	return nil
}
