// This file is part of GopherCoCo.
//
// GopherCoCo is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherCoCo is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherCoCo.  If not, see <https://www.gnu.org/licenses/>.

// Package preferences contains the preference values for the emulated
// hardware. Values are stored on disk with the prefs package and can be
// overridden on the command line with prefs.PushCommandLineStack().
package preferences

import (
	"github.com/jetsetilly/gophercoco/curated"
	"github.com/jetsetilly/gophercoco/paths"
	"github.com/jetsetilly/gophercoco/prefs"
)

// GIME chip revisions.
const (
	Revision1986 = "1986"
	Revision1987 = "1987"
)

// MinRAM is the smallest amount of RAM (in KiB) that can be installed.
const MinRAM = 128

// Preferences for the emulated hardware.
type Preferences struct {
	dsk *prefs.Disk

	// GIME revision. one of Revision1986 or Revision1987
	Revision prefs.String

	// bias added to the timer reload value. a value of zero means that the
	// bias is derived from the revision
	TimerBias prefs.Int

	// installed RAM in KiB
	RAM prefs.Int

	// raster geometry. measured in fast timer ticks and scanlines
	TicksPerLine  prefs.Int
	LinesPerFrame prefs.Int
	VBorder       prefs.Int
	HBorder       prefs.Int

	// whether an inserted cartridge can assert the cartridge line
	CartAutostart prefs.Bool
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the Preferences
// type. If pth is empty then the default prefs file in the resource directory
// is used.
func NewPreferences(pth string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	p.Revision.SetHookPre(func(v prefs.Value) error {
		switch v.(string) {
		case Revision1986, Revision1987:
			return nil
		}
		return curated.Errorf("preferences: unknown GIME revision (%v)", v)
	})

	p.RAM.SetHookPre(func(v prefs.Value) error {
		if v.(int) < MinRAM {
			return curated.Errorf("preferences: RAM must be at least %dK (%vK)", MinRAM, v)
		}
		return nil
	})

	positive := func(v prefs.Value) error {
		if v.(int) <= 0 {
			return curated.Errorf("preferences: raster value must be positive (%v)", v)
		}
		return nil
	}
	p.TicksPerLine.SetHookPre(positive)
	p.LinesPerFrame.SetHookPre(positive)

	var err error

	if pth == "" {
		pth, err = paths.ResourcePath("", prefs.DefaultPrefsFile)
		if err != nil {
			return nil, err
		}
	}

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	for _, e := range []struct {
		key string
		p   prefs.Pref
	}{
		{"gime.revision", &p.Revision},
		{"gime.timer.bias", &p.TimerBias},
		{"memory.ram", &p.RAM},
		{"video.ticksperline", &p.TicksPerLine},
		{"video.linesperframe", &p.LinesPerFrame},
		{"video.vborder", &p.VBorder},
		{"video.hborder", &p.HBorder},
		{"cartridge.autostart", &p.CartAutostart},
	} {
		if err := p.dsk.Add(e.key, e.p); err != nil {
			return nil, err
		}
	}

	if err := p.dsk.Load(false); err != nil && !curated.Is(err, prefs.NoPrefsFile) {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to the default values.
func (p *Preferences) SetDefaults() {
	p.Revision.Set(Revision1987)
	p.TimerBias.Set(0)
	p.RAM.Set(512)
	p.TicksPerLine.Set(228)
	p.LinesPerFrame.Set(262)
	p.VBorder.Set(225)
	p.HBorder.Set(160)
	p.CartAutostart.Set(true)
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// Live is a copy of the preference values as plain Go types. Used by the
// emulation in places where reading the prefs values on every tick would be
// too expensive.
type Live struct {
	Revision      string
	TimerBias     int
	RAM           int // in bytes
	TicksPerLine  int
	LinesPerFrame int
	VBorder       int
	HBorder       int
	CartAutostart bool
}

// Live returns a snapshot of the current preference values.
func (p *Preferences) Live() Live {
	l := Live{
		Revision:      p.Revision.String(),
		TimerBias:     p.TimerBias.Get().(int),
		RAM:           p.RAM.Get().(int) * 1024,
		TicksPerLine:  p.TicksPerLine.Get().(int),
		LinesPerFrame: p.LinesPerFrame.Get().(int),
		VBorder:       p.VBorder.Get().(int),
		HBorder:       p.HBorder.Get().(int),
		CartAutostart: p.CartAutostart.Get().(bool),
	}
	if l.TimerBias == 0 {
		l.TimerBias = RevisionBias(l.Revision)
	}
	return l
}

// RevisionBias returns the timer bias for the GIME revision.
func RevisionBias(revision string) int {
	if revision == Revision1986 {
		return 2
	}
	return 1
}
