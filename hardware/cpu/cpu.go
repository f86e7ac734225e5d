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

// Package cpu is a passive model of the 6809 pins that the GIME drives. The
// instruction interpreter is not part of this package. Whatever drives the
// CPU can query the pins and the memory through this type.
//
// The IRQ and FIRQ inputs are level sensitive. The condition code register
// holds the I and F mask bits, which decide whether an asserted line is
// taken.
package cpu

import (
	"fmt"

	"github.com/jetsetilly/gophercoco/hardware/memory/cpubus"
)

// Condition code mask bits.
const (
	MaskIRQ  = 0x10
	MaskFIRQ = 0x40
)

// CPU is the pin model of the 6809.
type CPU struct {
	mem cpubus.Memory

	// called when the suspended state changes
	onSuspend func()

	IRQ  bool
	FIRQ bool

	// number of times each line has been asserted
	IRQCount  int
	FIRQCount int

	// the HALT and RESET inputs
	Halted  bool
	InReset bool

	// the condition code register. only the interrupt mask bits are used
	CC uint8
}

// NewCPU is the preferred method of initialisation for the CPU type.
func NewCPU(mem cpubus.Memory) *CPU {
	c := &CPU{
		mem: mem,
	}
	c.Reset()
	return c
}

func (c *CPU) String() string {
	return fmt.Sprintf("IRQ=%v FIRQ=%v halt=%v reset=%v CC=%02x", c.IRQ, c.FIRQ, c.Halted, c.InReset, c.CC)
}

// Snapshot creates a copy of the CPU pins.
func (c *CPU) Snapshot() *CPU {
	n := *c
	n.onSuspend = nil
	return &n
}

// Plumb a new memory into the CPU.
func (c *CPU) Plumb(mem cpubus.Memory) {
	c.mem = mem
}

// OnSuspend sets the function that is called when the suspended state of the
// CPU changes.
func (c *CPU) OnSuspend(f func()) {
	c.onSuspend = f
}

// Reset masks both interrupts as the 6809 does on reset.
func (c *CPU) Reset() {
	c.CC = MaskIRQ | MaskFIRQ
	c.IRQCount = 0
	c.FIRQCount = 0
}

// SetIRQ implements the interrupts.CPU interface.
func (c *CPU) SetIRQ(v bool) {
	if v && !c.IRQ {
		c.IRQCount++
	}
	c.IRQ = v
}

// SetFIRQ implements the interrupts.CPU interface.
func (c *CPU) SetFIRQ(v bool) {
	if v && !c.FIRQ {
		c.FIRQCount++
	}
	c.FIRQ = v
}

// Suspended implements the interrupts.CPU interface.
func (c *CPU) Suspended() bool {
	return c.Halted || c.InReset
}

// SetHalt changes the level of the HALT input.
func (c *CPU) SetHalt(v bool) {
	if c.Halted == v {
		return
	}
	c.Halted = v
	if c.onSuspend != nil {
		c.onSuspend()
	}
}

// SetReset changes the level of the RESET input.
func (c *CPU) SetReset(v bool) {
	if c.InReset == v {
		return
	}
	c.InReset = v
	if c.onSuspend != nil {
		c.onSuspend()
	}
}

// Vector returns the vector address of the interrupt that would be taken at
// the next instruction boundary. FIRQ has priority over IRQ. Returns false if
// no interrupt would be taken.
func (c *CPU) Vector() (uint16, bool) {
	if c.Suspended() {
		return 0, false
	}
	if c.FIRQ && c.CC&MaskFIRQ == 0 {
		return cpubus.FIRQ, true
	}
	if c.IRQ && c.CC&MaskIRQ == 0 {
		return cpubus.IRQ, true
	}
	return 0, false
}

// ReadVector returns the address stored at the vector. The 6809 is big
// endian.
func (c *CPU) ReadVector(vector uint16) uint16 {
	return uint16(c.mem.Read(vector))<<8 | uint16(c.mem.Read(vector+1))
}
