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

// Package pia implements the MC6821 peripheral interface adapter. The CoCo 3
// has two. PIA0 scans the keyboard and takes the horizontal and field sync
// signals on its CA1 and CB1 inputs. PIA1 drives the DAC and the cassette and
// takes the cartridge line on its CB1 input.
//
// Each side of the PIA has an output register, a data direction register and
// a control register. The data direction register shares an address with the
// output register and is selected by bit 2 of the control register.
package pia

import (
	"fmt"

	"github.com/jetsetilly/gophercoco/curated"
)

// Sentinel error returned by RestoreState().
const StateError = "pia: state: %v"

// Control register bits.
const (
	CRIRQEnable = 0x01
	CREdge      = 0x02
	CRData      = 0x04
	CRIRQ2      = 0x40
	CRIRQ1      = 0x80

	// bits 6 and 7 are read only
	crWritable = 0x3f
)

// Side of the PIA.
type Side int

// List of valid Side values.
const (
	A Side = iota
	B
)

func (s Side) String() string {
	if s == B {
		return "B"
	}
	return "A"
}

type port struct {
	OR  uint8
	DDR uint8
	CR  uint8

	// levels of the input pins
	Input uint8

	// the current level of the C1 line
	C1 bool
}

func (p *port) read() uint8 {
	return (p.OR & p.DDR) | (p.Input &^ p.DDR)
}

func (p *port) irq() bool {
	return p.CR&CRIRQ1 == CRIRQ1 && p.CR&CRIRQEnable == CRIRQEnable
}

// PIA implements the MC6821.
type PIA struct {
	label string

	ports [2]port

	// called whenever the IRQ outputs might have changed
	onIRQ func()

	// called when the output of a side changes
	onOutput func(side Side, v uint8)
}

// NewPIA is the preferred method of initialisation for the PIA type.
func NewPIA(label string) *PIA {
	p := &PIA{
		label: label,
	}
	p.Reset()
	return p
}

func (p *PIA) String() string {
	return fmt.Sprintf("%s: A(or=%02x ddr=%02x cr=%02x) B(or=%02x ddr=%02x cr=%02x)", p.label,
		p.ports[A].OR, p.ports[A].DDR, p.ports[A].CR,
		p.ports[B].OR, p.ports[B].DDR, p.ports[B].CR)
}

// Label returns the name of the PIA.
func (p *PIA) Label() string {
	return p.label
}

// Snapshot creates a copy of the PIA. The callbacks are not copied.
func (p *PIA) Snapshot() *PIA {
	n := *p
	n.onIRQ = nil
	n.onOutput = nil
	return &n
}

// OnIRQ sets the function that is called when the IRQ outputs might have
// changed.
func (p *PIA) OnIRQ(f func()) {
	p.onIRQ = f
}

// OnOutput sets the function that is called when the output of a side is
// written to.
func (p *PIA) OnOutput(f func(side Side, v uint8)) {
	p.onOutput = f
}

// Reset all registers. Input pins are pulled high.
func (p *PIA) Reset() {
	for i := range p.ports {
		p.ports[i] = port{Input: 0xff}
	}
	p.notify()
}

func (p *PIA) notify() {
	if p.onIRQ != nil {
		p.onIRQ()
	}
}

// IRQA returns the level of the IRQA output.
func (p *PIA) IRQA() bool {
	return p.ports[A].irq()
}

// IRQB returns the level of the IRQB output.
func (p *PIA) IRQB() bool {
	return p.ports[B].irq()
}

// Read one of the four registers. Reading the data register clears the
// interrupt flags for that side.
func (p *PIA) Read(reg uint16) uint8 {
	s := &p.ports[(reg>>1)&1]
	if reg&1 == 1 {
		return s.CR
	}
	if s.CR&CRData == 0 {
		return s.DDR
	}
	v := s.read()
	if s.CR&(CRIRQ1|CRIRQ2) != 0 {
		s.CR &^= CRIRQ1 | CRIRQ2
		p.notify()
	}
	return v
}

// Peek at one of the four registers without side effects.
func (p *PIA) Peek(reg uint16) uint8 {
	s := &p.ports[(reg>>1)&1]
	if reg&1 == 1 {
		return s.CR
	}
	if s.CR&CRData == 0 {
		return s.DDR
	}
	return s.read()
}

// Write one of the four registers.
func (p *PIA) Write(reg uint16, v uint8) {
	side := Side((reg >> 1) & 1)
	s := &p.ports[side]

	if reg&1 == 1 {
		s.CR = (s.CR &^ crWritable) | (v & crWritable)
		p.notify()
		return
	}

	if s.CR&CRData == 0 {
		s.DDR = v
		return
	}

	s.OR = v
	if p.onOutput != nil {
		p.onOutput(side, s.OR&s.DDR)
	}
}

// SetInput changes the level of the input pins for a side.
func (p *PIA) SetInput(side Side, v uint8) {
	p.ports[side].Input = v
}

// Output returns the value being driven by the output pins of a side.
func (p *PIA) Output(side Side) uint8 {
	s := &p.ports[side]
	return s.OR & s.DDR
}

// SetC1 changes the level of the C1 line of a side. The active edge is
// selected by bit 1 of the control register: rising when set, falling when
// clear. An active edge sets the IRQ1 flag.
func (p *PIA) SetC1(side Side, level bool) {
	s := &p.ports[side]
	if s.C1 == level {
		return
	}
	s.C1 = level

	rising := s.CR&CREdge == CREdge
	if level != rising {
		return
	}

	s.CR |= CRIRQ1
	p.notify()
}

// PulseC1 drives the C1 line to the active level and back. Used for the sync
// inputs of PIA0.
func (p *PIA) PulseC1(side Side) {
	s := &p.ports[side]
	active := s.CR&CREdge == CREdge
	p.SetC1(side, !active)
	p.SetC1(side, active)
	p.SetC1(side, !active)
}

// StateSize is the number of bytes used by AppendState().
const StateSize = 10

// AppendState appends the register state of the PIA to the byte slice.
func (p *PIA) AppendState(b []byte) []byte {
	for _, s := range p.ports {
		var c1 uint8
		if s.C1 {
			c1 = 1
		}
		b = append(b, s.OR, s.DDR, s.CR, s.Input, c1)
	}
	return b
}

// RestoreState restores the register state from a byte slice created by
// AppendState(). Returns the number of bytes consumed.
func (p *PIA) RestoreState(b []byte) (int, error) {
	if len(b) < StateSize {
		return 0, curated.Errorf(StateError, fmt.Sprintf("%s: too short (%d bytes)", p.label, len(b)))
	}
	for i := range p.ports {
		o := i * 5
		p.ports[i] = port{
			OR:    b[o],
			DDR:   b[o+1],
			CR:    b[o+2],
			Input: b[o+3],
			C1:    b[o+4] != 0,
		}
	}
	p.notify()
	return StateSize, nil
}
