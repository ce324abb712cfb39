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

package preferences

import (
	"fmt"

	"github.com/pipesim/pipesim/curated"
	"github.com/pipesim/pipesim/hardware/params"
	"github.com/pipesim/pipesim/prefs"
)

// CachePreferences are the preference values for a single cache.
type CachePreferences struct {
	Sets     prefs.Int
	Ways     prefs.Int
	LineSize prefs.Int
	Latency  prefs.Int
}

func (c *CachePreferences) set(p params.CacheParams) {
	c.Sets.Set(p.Sets)
	c.Ways.Set(p.Ways)
	c.LineSize.Set(p.LineSize)
	c.Latency.Set(int(p.Latency))
}

func (c *CachePreferences) params() params.CacheParams {
	return params.CacheParams{
		Sets:     c.Sets.Get().(int),
		Ways:     c.Ways.Get().(int),
		LineSize: c.LineSize.Get().(int),
		Latency:  uint64(c.Latency.Get().(int)),
	}
}

func (c *CachePreferences) add(dsk *prefs.Disk, prefix string) error {
	for _, e := range []struct {
		key string
		p   *prefs.Int
	}{
		{"sets", &c.Sets},
		{"ways", &c.Ways},
		{"linesize", &c.LineSize},
		{"latency", &c.Latency},
	} {
		if err := dsk.Add(fmt.Sprintf("%s.%s", prefix, e.key), e.p); err != nil {
			return err
		}
	}
	return nil
}

// Preferences defines and collates every configuration value of the simulated
// processor. A machine takes a snapshot of the values with Params() when it
// is created.
type Preferences struct {
	dsk *prefs.Disk

	GPRs              prefs.Int
	FPRs              prefs.Int
	PhysicalRegisters prefs.Int
	Renaming          prefs.Bool

	L1D CachePreferences
	L1I CachePreferences
	L2  CachePreferences
	L3  CachePreferences

	Hierarchy     prefs.Bool
	MemorySize    prefs.Int
	MemoryLatency prefs.Int

	MaxIssue prefs.Int

	FrontEnd        prefs.Bool
	DecodeLatency   prefs.Int
	DispatchLatency prefs.Int

	FXULatency    prefs.Int
	FPULatency    prefs.Int
	BRULatency    prefs.Int
	FPUThroughput prefs.Int

	// write trace output for every instruction
	Trace prefs.Bool
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. An empty path means that the preferences are never read
// from or written to disk. Values on the command line stack are still
// applied.
func NewPreferences(path string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	var err error

	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}

	for _, e := range []struct {
		key string
		p   prefsValue
	}{
		{"gpr.count", &p.GPRs},
		{"fpr.count", &p.FPRs},
		{"prf.count", &p.PhysicalRegisters},
		{"backend.renaming", &p.Renaming},
		{"memory.hierarchy", &p.Hierarchy},
		{"memory.size", &p.MemorySize},
		{"memory.latency", &p.MemoryLatency},
		{"backend.maxissue", &p.MaxIssue},
		{"frontend.enabled", &p.FrontEnd},
		{"frontend.decode", &p.DecodeLatency},
		{"frontend.dispatch", &p.DispatchLatency},
		{"latency.fxu", &p.FXULatency},
		{"latency.fpu", &p.FPULatency},
		{"latency.bru", &p.BRULatency},
		{"throughput.fpu", &p.FPUThroughput},
		{"trace.enabled", &p.Trace},
	} {
		if err := p.dsk.Add(e.key, e.p); err != nil {
			return nil, err
		}
	}

	for _, c := range []struct {
		prefix string
		c      *CachePreferences
	}{
		{"l1d", &p.L1D},
		{"l1i", &p.L1I},
		{"l2", &p.L2},
		{"l3", &p.L3},
	} {
		if err := c.c.add(p.dsk, c.prefix); err != nil {
			return nil, err
		}
	}

	err = p.dsk.Load(true)
	if err != nil {
		// ignore missing prefs file errors
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	return p, nil
}

// the prefs types used by Preferences all satisfy this interface
type prefsValue interface {
	fmt.Stringer
	Set(value prefs.Value) error
	Get() prefs.Value
	Reset() error
}

// SetDefaults reverts all preferences to the reference machine.
func (p *Preferences) SetDefaults() {
	d := params.Default()
	p.GPRs.Set(d.GPRs)
	p.FPRs.Set(d.FPRs)
	p.PhysicalRegisters.Set(d.PhysicalRegisters)
	p.Renaming.Set(d.Renaming)
	p.L1D.set(d.L1D)
	p.L1I.set(d.L1I)
	p.L2.set(d.L2)
	p.L3.set(d.L3)
	p.Hierarchy.Set(d.Hierarchy)
	p.MemorySize.Set(d.MemorySize)
	p.MemoryLatency.Set(int(d.MemoryLatency))
	p.MaxIssue.Set(d.MaxIssue)
	p.FrontEnd.Set(d.FrontEnd)
	p.DecodeLatency.Set(int(d.DecodeLatency))
	p.DispatchLatency.Set(int(d.DispatchLatency))
	p.FXULatency.Set(int(d.FXULatency))
	p.FPULatency.Set(int(d.FPULatency))
	p.BRULatency.Set(int(d.BRULatency))
	p.FPUThroughput.Set(d.FPUThroughput)
	p.Trace.Set(false)
}

// Params returns a snapshot of the preferences as a Params instance. The
// values are not validated.
func (p *Preferences) Params() params.Params {
	return params.Params{
		GPRs:              p.GPRs.Get().(int),
		FPRs:              p.FPRs.Get().(int),
		PhysicalRegisters: p.PhysicalRegisters.Get().(int),
		Renaming:          p.Renaming.Get().(bool),
		L1D:               p.L1D.params(),
		L1I:               p.L1I.params(),
		L2:                p.L2.params(),
		L3:                p.L3.params(),
		Hierarchy:         p.Hierarchy.Get().(bool),
		MemorySize:        p.MemorySize.Get().(int),
		MemoryLatency:     uint64(p.MemoryLatency.Get().(int)),
		MaxIssue:          p.MaxIssue.Get().(int),
		FrontEnd:          p.FrontEnd.Get().(bool),
		DecodeLatency:     uint64(p.DecodeLatency.Get().(int)),
		DispatchLatency:   uint64(p.DispatchLatency.Get().(int)),
		FXULatency:        uint64(p.FXULatency.Get().(int)),
		FPULatency:        uint64(p.FPULatency.Get().(int)),
		BRULatency:        uint64(p.BRULatency.Get().(int)),
		FPUThroughput:     p.FPUThroughput.Get().(int),
	}
}

// Load current preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
