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

package prefs_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pipesim/pipesim/curated"
	"github.com/pipesim/pipesim/prefs"
	"github.com/pipesim/pipesim/test"
)

func cmpPrefFile(t *testing.T, fn string, expected string) {
	t.Helper()

	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)

	expected = fmt.Sprintf("%s\n%s", prefs.WarningBoilerPlate, expected)
	test.ExpectEquality(t, string(data), expected)
}

func TestBool(t *testing.T) {
	fn := filepath.Join(t.TempDir(), prefs.DefaultPrefsFile)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Bool
	var w prefs.Bool
	var x prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, dsk.Add("testB", &w))
	test.ExpectSuccess(t, dsk.Add("testC", &x))

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectSuccess(t, w.Set("foo"))
	test.ExpectSuccess(t, x.Set("true"))

	test.DemandSuccess(t, dsk.Save())
	cmpPrefFile(t, fn, "test :: true\ntestB :: false\ntestC :: true\n")
}

func TestString(t *testing.T) {
	fn := filepath.Join(t.TempDir(), prefs.DefaultPrefsFile)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.String
	test.ExpectSuccess(t, dsk.Add("foo", &v))
	test.ExpectSuccess(t, v.Set("bar"))

	test.DemandSuccess(t, dsk.Save())
	cmpPrefFile(t, fn, "foo :: bar\n")
}

func TestInt(t *testing.T) {
	fn := filepath.Join(t.TempDir(), prefs.DefaultPrefsFile)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Int
	var w prefs.Int
	test.ExpectSuccess(t, dsk.Add("number", &v))
	test.ExpectSuccess(t, dsk.Add("numberB", &w))

	test.ExpectSuccess(t, v.Set(10))

	// test string conversion to int
	test.ExpectSuccess(t, w.Set("99"))

	test.DemandSuccess(t, dsk.Save())
	cmpPrefFile(t, fn, "number :: 10\nnumberB :: 99\n")

	// while we have a prefs.Int instance set up we'll test some failure
	// conditions
	test.ExpectFailure(t, v.Set("---"))
	test.ExpectFailure(t, v.Set(1.0))

	// duplicate keys are not allowed
	err = dsk.Add("number", &w)
	test.ExpectSuccess(t, curated.Is(err, prefs.DuplicateKey))
}

func TestFloat(t *testing.T) {
	var v prefs.Float
	test.ExpectSuccess(t, v.Set("1.5"))
	test.ExpectEquality(t, v.Get().(float64), 1.5)
	test.ExpectEquality(t, v.String(), "1.500")
	test.ExpectSuccess(t, v.Reset())
	test.ExpectEquality(t, v.Get().(float64), 0.0)
}

func TestHooks(t *testing.T) {
	var v prefs.Int
	var post int
	v.SetHookPre(func(value prefs.Value) error {
		if value.(int) < 0 {
			return fmt.Errorf("negative")
		}
		return nil
	})
	v.SetHookPost(func(value prefs.Value) error {
		post = value.(int)
		return nil
	})

	test.ExpectSuccess(t, v.Set(5))
	test.ExpectEquality(t, post, 5)

	// pre-hook refuses the value and the stored value is unchanged
	test.ExpectFailure(t, v.Set(-1))
	test.ExpectEquality(t, v.Get().(int), 5)
}

func TestGeneric(t *testing.T) {
	fn := filepath.Join(t.TempDir(), prefs.DefaultPrefsFile)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var w, h int
	v := prefs.NewGeneric(
		func(s prefs.Value) error {
			_, err := fmt.Sscanf(s.(string), "%d,%d", &w, &h)
			return err
		},
		func() prefs.Value {
			return fmt.Sprintf("%d,%d", w, h)
		},
	)
	test.ExpectSuccess(t, dsk.Add("generic", v))
	test.ExpectSuccess(t, v.Set("16,4"))
	test.ExpectEquality(t, w, 16)
	test.ExpectEquality(t, h, 4)

	test.DemandSuccess(t, dsk.Save())
	cmpPrefFile(t, fn, "generic :: 16,4\n")
}

// two Disk instances sharing the same file do not clobber each other's values
func TestSharedFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), prefs.DefaultPrefsFile)

	a, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	b, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var va prefs.Int
	var vb prefs.Int
	test.ExpectSuccess(t, a.Add("l1d.sets", &va))
	test.ExpectSuccess(t, b.Add("l2.sets", &vb))

	test.ExpectSuccess(t, va.Set(16))
	test.ExpectSuccess(t, vb.Set(64))
	test.DemandSuccess(t, a.Save())
	test.DemandSuccess(t, b.Save())
	cmpPrefFile(t, fn, "l1d.sets :: 16\nl2.sets :: 64\n")

	// reload values into a fresh variable
	c, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var vc prefs.Int
	test.ExpectSuccess(t, c.Add("l2.sets", &vc))
	test.DemandSuccess(t, c.Load(false))
	test.ExpectEquality(t, vc.Get().(int), 64)
}

func TestLoadCommandLine(t *testing.T) {
	fn := filepath.Join(t.TempDir(), prefs.DefaultPrefsFile)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Int
	test.ExpectSuccess(t, dsk.Add("memory.latency", &v))
	test.ExpectSuccess(t, v.Set(300))

	// missing file is reported but the command line is still applied
	prefs.PushCommandLineStack("memory.latency::100")
	err = dsk.Load(false)
	test.ExpectSuccess(t, curated.Is(err, prefs.NoPrefsFile))
	test.ExpectEquality(t, v.Get().(int), 100)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	// save on first use creates the file
	test.ExpectSuccess(t, dsk.Load(true))
	cmpPrefFile(t, fn, "memory.latency :: 100\n")
}

func TestNoPath(t *testing.T) {
	dsk, err := prefs.NewDisk("")
	test.DemandSuccess(t, err)

	var v prefs.Bool
	test.ExpectSuccess(t, dsk.Add("backend.renaming", &v))

	prefs.PushCommandLineStack("backend.renaming::true")
	test.ExpectSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
	test.ExpectEquality(t, v.Get().(bool), true)
	test.ExpectSuccess(t, dsk.Save())
}
