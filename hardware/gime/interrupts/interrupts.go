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

// Package interrupts implements the interrupt combiner of the GIME. The
// combiner drives the IRQ and FIRQ lines of the CPU from two kinds of source:
// the interrupt flags of the PIAs, and the interrupt sources internal to the
// GIME (timer, border sync, serial, keyboard and cartridge).
//
// PIA flags are always live. They assert the line they are wired to unless
// the CPU is suspended.
//
// GIME sources are latched into a pending register for each line on a rising
// edge, but only if the line is globally enabled in INIT0 and the source is
// enabled in the mask register for the line. A source that is already high
// when it is enabled does not latch. Reading the pending register returns it
// and clears it.
package interrupts

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gophercoco/hardware/gime/registers"
)

// Source is a bit in the GIME interrupt registers.
type Source uint8

// List of valid Source values.
const (
	EI0   Source = 0x01 // cartridge
	EI1   Source = 0x02 // keyboard
	EI2   Source = 0x04 // serial
	VBORD Source = 0x08
	HBORD Source = 0x10
	TMR   Source = 0x20

	AllSources = EI0 | EI1 | EI2 | VBORD | HBORD | TMR
)

func (s Source) String() string {
	names := []string{"EI0", "EI1", "EI2", "VBORD", "HBORD", "TMR"}
	var b []string
	for i, n := range names {
		if s&(1<<i) != 0 {
			b = append(b, n)
		}
	}
	if len(b) == 0 {
		return "-"
	}
	return strings.Join(b, "|")
}

// Line is one of the two maskable interrupt lines of the CPU.
type Line int

// List of valid Line values.
const (
	IRQ Line = iota
	FIRQ
	NumLines
)

func (l Line) String() string {
	if l == FIRQ {
		return "FIRQ"
	}
	return "IRQ"
}

// CPU is the interface to the processor pins driven by the combiner.
//
// The PIA contribution to the lines depends on Suspended(). The combiner only
// samples it during Update(), so a CPU should also implement SuspendNotifier
// or the owner of the CPU must call Update() whenever the suspended state
// changes.
type CPU interface {
	SetIRQ(bool)
	SetFIRQ(bool)

	// the CPU is halted, in reset or otherwise unable to take a PIA
	// interrupt
	Suspended() bool
}

// SuspendNotifier is implemented by a CPU that can report changes to its
// suspended state. The function will be Combiner.Update().
type SuspendNotifier interface {
	OnSuspend(func())
}

// PIA is the interface to a peripheral interface adapter with two interrupt
// flags.
type PIA interface {
	IRQA() bool
	IRQB() bool
}

// Combiner of interrupt sources.
type Combiner struct {
	bank *registers.Bank
	cpu  CPU

	pias [NumLines][]PIA

	// current level of each GIME source
	Sources Source

	// latched sources for each line. cleared by ReadPending()
	Pending [NumLines]Source

	// current level of the CPU lines
	asserted [NumLines]bool
}

// NewCombiner is the preferred method of initialisation for the Combiner type.
func NewCombiner(bank *registers.Bank, cpu CPU) *Combiner {
	return &Combiner{
		bank: bank,
		cpu:  cpu,
	}
}

func (c *Combiner) String() string {
	return fmt.Sprintf("sources=%s IRQ(pending=%s asserted=%v) FIRQ(pending=%s asserted=%v)",
		c.Sources, c.Pending[IRQ], c.asserted[IRQ], c.Pending[FIRQ], c.asserted[FIRQ])
}

// Snapshot creates a copy of the combiner. The copy is not attached to any
// PIA or CPU until Plumb() is called.
func (c *Combiner) Snapshot() *Combiner {
	n := *c
	n.pias = [NumLines][]PIA{}
	return &n
}

// Plumb a new register bank, CPU and list of PIAs into the combiner. The
// lines of the CPU are not updated.
func (c *Combiner) Plumb(bank *registers.Bank, cpu CPU, irq []PIA, firq []PIA) {
	c.bank = bank
	c.cpu = cpu
	c.pias[IRQ] = irq
	c.pias[FIRQ] = firq
}

// Reset clears all sources and latches and releases both lines.
func (c *Combiner) Reset() {
	c.Sources = 0
	c.Pending = [NumLines]Source{}
	c.Update()
}

// AttachPIA wires the interrupt flags of the PIA to a line. Any number of
// PIAs can be attached to each line.
func (c *Combiner) AttachPIA(line Line, pia PIA) {
	c.pias[line] = append(c.pias[line], pia)
}

// Asserted returns the current level of the line.
func (c *Combiner) Asserted(line Line) bool {
	return c.asserted[line]
}

func (c *Combiner) enabled(line Line) (bool, Source) {
	if line == FIRQ {
		return c.bank.FIRQEnabled(), Source(c.bank.FIRQEnable)
	}
	return c.bank.IRQEnabled(), Source(c.bank.IRQEnable)
}

// SetSource changes the level of a GIME source. A rising edge is latched into
// the pending register of each line for which the source is enabled.
func (c *Combiner) SetSource(src Source, level bool) {
	src &= AllSources

	if !level {
		c.Sources &^= src
		c.Update()
		return
	}

	rising := src &^ c.Sources
	c.Sources |= src

	if rising != 0 {
		for l := IRQ; l < NumLines; l++ {
			if on, mask := c.enabled(l); on {
				c.Pending[l] |= rising & mask
			}
		}
	}

	c.Update()
}

// Pulse is a rising edge immediately followed by a falling edge.
func (c *Combiner) Pulse(src Source) {
	c.SetSource(src, true)
	c.SetSource(src, false)
}

// ReadPending returns the latched sources for the line and clears them.
func (c *Combiner) ReadPending(line Line) uint8 {
	v := c.Pending[line]
	c.Pending[line] = 0
	c.Update()
	return uint8(v)
}

// PeekPending returns the latched sources for the line without clearing them.
func (c *Combiner) PeekPending(line Line) uint8 {
	return uint8(c.Pending[line])
}

// Update recalculates the level of both lines and changes the CPU pins if
// the level has changed. Should be called whenever an enable bit, a PIA flag
// or the suspended state of the CPU changes.
func (c *Combiner) Update() {
	for l := IRQ; l < NumLines; l++ {
		v := c.level(l)
		if v == c.asserted[l] {
			continue
		}
		c.asserted[l] = v
		if c.cpu == nil {
			continue
		}
		if l == FIRQ {
			c.cpu.SetFIRQ(v)
		} else {
			c.cpu.SetIRQ(v)
		}
	}
}

func (c *Combiner) level(line Line) bool {
	if c.cpu == nil || !c.cpu.Suspended() {
		for _, p := range c.pias[line] {
			if p.IRQA() || p.IRQB() {
				return true
			}
		}
	}

	on, mask := c.enabled(line)
	return on && c.Pending[line]&mask != 0
}
