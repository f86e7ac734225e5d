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

// Package instance defines those parts of the emulation that might change from
// instance to instance of the CoCo3 type, but is not actually the CoCo3 itself.
//
// Particularly useful when running more than one instance of the emulation in
// parallel.
package instance

import (
	"github.com/jetsetilly/gophercoco/hardware/preferences"
	"github.com/jetsetilly/gophercoco/random"
)

// Label indicates the context of the instance.
type Label string

// List of value Label values.
const (
	Main       Label = ""
	Comparison Label = "comparison"
	Script     Label = "script"
)

// Instance defines those parts of the emulation that might change between
// different instantiations of the CoCo3 type.
type Instance struct {
	Label Label

	Random *random.Random

	// the preferences of the running instance. can be shared with other
	// instances of the emulation
	Prefs *preferences.Preferences

	// per-tick code reads these values rather than the prefs directly. they
	// are refreshed with UpdateLive()
	Live preferences.Live
}

// NewInstance is the preferred method of initialisation for the Instance type.
//
// The prefs argument can be nil, in which case a new Preferences instance is
// created from the default prefs file.
func NewInstance(prefs *preferences.Preferences) (*Instance, error) {
	ins := &Instance{
		Random: random.NewRandom(nil),
	}

	if prefs == nil {
		var err error
		prefs, err = preferences.NewPreferences("")
		if err != nil {
			return nil, err
		}
	}

	ins.Prefs = prefs
	ins.UpdateLive()

	return ins, nil
}

// AllowLogging implements the logger.Permission interface. Only the main
// instance is allowed to log.
func (ins *Instance) AllowLogging() bool {
	return ins.Label == Main
}

// Normalise ensures the instance is in a known default state. Useful for
// testing where the initial state must be the same for every run.
func (ins *Instance) Normalise() {
	ins.Random.ZeroSeed = true
	ins.Prefs.SetDefaults()
	ins.UpdateLive()
}

// UpdateLive refreshes the live preference values.
func (ins *Instance) UpdateLive() {
	ins.Live = ins.Prefs.Live()
}
