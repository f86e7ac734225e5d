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

// Package cartridge implements the cartridge slot of the CoCo 3.
//
// The slot tracks the level of the cartridge line and whether a cartridge is
// inserted. The effective level of the line is asserted only when a
// cartridge is inserted, autostart is enabled and the line is not clear.
// Changes to the effective level are sent to the CB1 input of PIA1 and to the
// EI0 interrupt source of the GIME.
//
// A ROM cartridge ties the cartridge line to the Q clock. This is modelled by
// the Q line value. Every read of the SCS range with the line at Q pulses the
// effective level clear and then set.
package cartridge

import (
	"bytes"
	"crypto/sha1"
	"fmt"

	"github.com/jetsetilly/gophercoco/logger"
)

// Line is the level of the cartridge line as driven by the cartridge.
type Line int

// List of valid Line values.
const (
	Clear Line = iota
	Assert
	Q
)

func (l Line) String() string {
	switch l {
	case Assert:
		return "assert"
	case Q:
		return "Q"
	}
	return "clear"
}

// EjectedSize is the size of the buffer presented when no cartridge is
// inserted.
const EjectedSize = 0x2000

// Slot is the cartridge slot.
type Slot struct {
	env logger.Permission

	// called when the effective level of the cartridge line changes
	onChange func(bool)

	Filename string
	Hash     string

	data []byte

	// Inserted is false when the ejected buffer is in the slot
	Inserted bool

	// Autostart is controlled by the cartridge.autostart preference
	Autostart bool

	// Line as driven by the cartridge
	Line Line

	// level last sent to the onChange function
	effective bool
}

// NewSlot is the preferred method of initialisation for the Slot type. The
// slot is empty.
func NewSlot(env logger.Permission, autostart bool, onChange func(bool)) *Slot {
	s := &Slot{
		env:       env,
		onChange:  onChange,
		Autostart: autostart,
	}
	s.Eject()
	return s
}

func (s *Slot) String() string {
	if !s.Inserted {
		return "ejected"
	}
	return fmt.Sprintf("%s [%s] line=%s effective=%v", s.Filename, s.Hash, s.Line, s.effective)
}

// Snapshot creates a copy of the slot. The cartridge data is shared.
func (s *Slot) Snapshot() *Slot {
	n := *s
	n.onChange = nil
	return &n
}

// Plumb a new change function into the slot.
func (s *Slot) Plumb(env logger.Permission, onChange func(bool)) {
	s.env = env
	s.onChange = onChange
}

// Data returns the ROM image in the slot. Never nil and never empty.
func (s *Slot) Data() []byte {
	return s.data
}

// Insert a ROM cartridge into the slot. A ROM cartridge drives the line with
// the Q clock.
func (s *Slot) Insert(filename string, data []byte) {
	if len(data) == 0 {
		s.Eject()
		return
	}
	s.Filename = filename
	s.Hash = fmt.Sprintf("%x", sha1.Sum(data))
	s.data = data
	s.Inserted = true
	s.Line = Q
	logger.Logf(s.env, "cartridge", "inserted %s (%d bytes)", filename, len(data))
	s.update()
}

// Eject the cartridge. The slot then presents 8K of undriven data bus.
func (s *Slot) Eject() {
	if s.Inserted {
		logger.Logf(s.env, "cartridge", "ejected %s", s.Filename)
	}
	s.Filename = ""
	s.Hash = ""
	s.data = bytes.Repeat([]byte{0xff}, EjectedSize)
	s.Inserted = false
	s.Line = Clear
	s.update()
}

// SetAutostart changes whether the cartridge can assert the line.
func (s *Slot) SetAutostart(autostart bool) {
	s.Autostart = autostart
	s.update()
}

// SetLine changes the level driven by the cartridge.
func (s *Slot) SetLine(l Line) {
	if s.Line != l {
		logger.Logf(s.env, "cartridge", "line %s", l)
	}
	s.Line = l
	s.update()
}

// Effective returns the level of the cartridge line as seen by the machine.
func (s *Slot) Effective() bool {
	return s.effective
}

func (s *Slot) level() bool {
	return s.Inserted && s.Autostart && s.Line != Clear
}

func (s *Slot) set(v bool) {
	if s.effective == v {
		return
	}
	s.effective = v
	if s.onChange != nil {
		s.onChange(v)
	}
}

func (s *Slot) update() {
	s.set(s.level())
}

// ReadSCS is called on every read of the SCS range. When the line is tied to
// Q the effective level is cleared and set again.
func (s *Slot) ReadSCS() {
	if s.Line != Q {
		return
	}
	s.set(false)
	s.set(s.level())
}

// Restore the slot flags after loading a saved state. The cartridge data is
// not changed. The onChange function is called if the effective level
// differs.
func (s *Slot) Restore(inserted bool, line Line) {
	s.Inserted = inserted
	s.Line = line
	s.update()
}
