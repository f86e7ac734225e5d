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

// Package gime implements the register interface of the GIME, the memory
// management, interrupt and timer chip of the CoCo 3.
//
// The GIME owns the register bank, the interrupt combiner and the timer.
// Register writes from the CPU are decoded here and the effects are pushed to
// the other components: the region mapper is told which windows to remap, the
// combiner recalculates the interrupt lines and the timer is reprogrammed.
//
// Registers that are write only on the real hardware read back as
// ReadSentinel.
package gime

import (
	"fmt"

	"github.com/jetsetilly/gophercoco/hardware/gime/interrupts"
	"github.com/jetsetilly/gophercoco/hardware/gime/mmu"
	"github.com/jetsetilly/gophercoco/hardware/gime/registers"
	"github.com/jetsetilly/gophercoco/hardware/gime/timer"
	"github.com/jetsetilly/gophercoco/logger"
)

// ReadSentinel is the value returned by reads of write only registers.
const ReadSentinel = 0x00

// SAMReadValue is returned by reads of the SAM range. The SAM does not drive
// the data bus.
const SAMReadValue = 0xff

// Register addresses.
const (
	INIT0    = uint16(0xff90)
	INIT1    = uint16(0xff91)
	IRQENR   = uint16(0xff92)
	FIRQENR  = uint16(0xff93)
	TimerMSB = uint16(0xff94)
	TimerLSB = uint16(0xff95)
	Video    = uint16(0xff96)
	MMU      = uint16(0xffa0)
	Palette  = uint16(0xffb0)
	SAM      = uint16(0xffc0)
	SAMTop   = uint16(0xffdf)
)

// Mapper is the interface to the region mapper.
type Mapper interface {
	Remap(low int, high int)
}

// GIME is the register interface of the GIME chip.
type GIME struct {
	env logger.Permission

	Bank       *registers.Bank
	Interrupts *interrupts.Combiner
	Timer      *timer.Timer

	mapper Mapper
}

// NewGIME is the preferred method of initialisation for the GIME type. The
// bank must be the same bank that is used by the mapper.
func NewGIME(env logger.Permission, bank *registers.Bank, mapper Mapper, cpu interrupts.CPU, bias int) *GIME {
	g := &GIME{
		env:        env,
		Bank:       bank,
		mapper:     mapper,
		Interrupts: interrupts.NewCombiner(bank, cpu),
	}
	g.Timer = timer.NewTimer(env, bias, g.timerElapsed)
	return g
}

func (g *GIME) String() string {
	return fmt.Sprintf("%s%s\ntimer: %s", g.Bank, g.Interrupts, g.Timer)
}

func (g *GIME) timerElapsed() {
	g.Interrupts.Pulse(interrupts.TMR)
}

// Snapshot creates a copy of the GIME. The copy must be plumbed before use.
func (g *GIME) Snapshot() *GIME {
	n := *g
	n.Bank = g.Bank.Snapshot()
	n.Interrupts = g.Interrupts.Snapshot()
	n.Timer = g.Timer.Snapshot()
	n.mapper = nil
	return &n
}

// Plumb the GIME into a new mapper and CPU. The PIAs are attached to the
// interrupt lines.
func (g *GIME) Plumb(env logger.Permission, mapper Mapper, cpu interrupts.CPU, irq []interrupts.PIA, firq []interrupts.PIA) {
	g.env = env
	g.mapper = mapper
	g.Interrupts.Plumb(g.Bank, cpu, irq, firq)
	g.Timer.Plumb(env, g.timerElapsed)
}

// Reset all registers, stop the timer, clear all interrupts and remap every
// window.
func (g *GIME) Reset() {
	g.Bank.Reset()
	g.Timer.Reset()
	g.Interrupts.Reset()
	g.remapAll()
}

func (g *GIME) remapAll() {
	if g.mapper != nil {
		g.mapper.Remap(0, mmu.NumWindows-1)
	}
}

func (g *GIME) timerSource() timer.Source {
	if g.Bank.TimerFast() {
		return timer.Fast
	}
	return timer.HSync
}

func (g *GIME) programTimer() {
	g.Timer.Program(g.Bank.TimerReload(), g.timerSource())
}

// SetBias changes the bias of the timer.
func (g *GIME) SetBias(bias int) {
	g.Timer.SetBias(bias)
}

// SetSource changes the level of a GIME interrupt source.
func (g *GIME) SetSource(src interrupts.Source, level bool) {
	g.Interrupts.SetSource(src, level)
}

// Tick the timer with a clock from the source.
func (g *GIME) Tick(src timer.Source) {
	g.Timer.Tick(src)
}

// Write a GIME or SAM register.
func (g *GIME) Write(address uint16, data uint8) {
	switch {
	case address == INIT0:
		m := g.Bank.MappingBits()
		g.Bank.Init0 = data
		if m != g.Bank.MappingBits() {
			g.remapAll()
		}
		g.Interrupts.Update()

	case address == INIT1:
		m := g.Bank.MappingBits()
		fast := g.Bank.TimerFast()
		g.Bank.Init1 = data
		if m != g.Bank.MappingBits() {
			g.remapAll()
		}
		if fast != g.Bank.TimerFast() {
			g.programTimer()
		}

	case address == IRQENR:
		g.Bank.IRQEnable = data
		g.Interrupts.Update()

	case address == FIRQENR:
		g.Bank.FIRQEnable = data
		g.Interrupts.Update()

	case address == TimerMSB:
		g.Bank.TimerMSB = data
		g.programTimer()

	case address == TimerLSB:
		g.Bank.TimerLSB = data
		g.programTimer()

	case address >= Video && address < MMU:
		g.Bank.Video[address-Video] = data

	case address >= MMU && address < Palette:
		reg := int(address - MMU)
		g.Bank.MMU[reg] = data
		if g.Bank.IsActive(reg) && g.mapper != nil {
			w := reg % registers.TaskSize
			if w == registers.TaskSize-1 {
				g.mapper.Remap(w, mmu.SpecialWindow)
			} else {
				g.mapper.Remap(w, w)
			}
		}

	case address >= Palette && address < SAM:
		g.Bank.Palette[address-Palette] = data

	case address >= SAM && address <= SAMTop:
		m := g.Bank.MappingBits()
		g.Bank.WriteSAM(address - SAM)
		if m != g.Bank.MappingBits() {
			g.remapAll()
		}
	}
}

// Read a GIME or SAM register. Reading IRQENR or FIRQENR returns the pending
// interrupts for that line and clears them.
func (g *GIME) Read(address uint16) uint8 {
	switch address {
	case IRQENR:
		return g.Interrupts.ReadPending(interrupts.IRQ)
	case FIRQENR:
		return g.Interrupts.ReadPending(interrupts.FIRQ)
	}
	return g.Peek(address)
}

// Peek at a GIME or SAM register without side effects.
func (g *GIME) Peek(address uint16) uint8 {
	switch {
	case address == IRQENR:
		return g.Interrupts.PeekPending(interrupts.IRQ)
	case address == FIRQENR:
		return g.Interrupts.PeekPending(interrupts.FIRQ)
	case address >= MMU && address < Palette:
		return g.Bank.MMU[address-MMU]
	case address >= Palette && address < SAM:
		return g.Bank.Palette[address-Palette] & 0x3f
	case address >= SAM && address <= SAMTop:
		return SAMReadValue
	}
	return ReadSentinel
}
