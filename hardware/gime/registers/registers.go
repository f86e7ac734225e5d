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

// Package registers implements the register bank of the GIME. The bank is
// plain data. Bit level access to the mode and control registers is through
// the named accessor methods, so that the rest of the emulation never needs
// to know which bit of which register controls what.
package registers

import (
	"fmt"
	"strings"
)

// INIT0 bits.
const (
	Init0CoCo        = 0x80
	Init0MMUEnable   = 0x40
	Init0IRQEnable   = 0x20
	Init0FIRQEnable  = 0x10
	Init0ConstantRAM = 0x08
	Init0StandardSCS = 0x04
	Init0ROMMap      = 0x03
)

// INIT1 bits.
const (
	Init1TimerInput = 0x20
	Init1Task       = 0x01
)

// SAM bits. The SAM register is sixteen bits wide and each bit is set or
// cleared by writing to an odd or even address in the range FFC0 to FFDF.
const (
	SAMVideoMode   = 0x0007
	SAMVideoOffset = 0x03f8
	SAMPage        = 0x0400
	SAMRate        = 0x1800
	SAMMemorySize  = 0x6000
	SAMAllRAM      = 0x8000
)

// NumMMU is the number of MMU block registers. There are two sets (tasks) of
// eight registers.
const (
	NumMMU     = 16
	TaskSize   = 8
	NumVideo   = 10
	NumPalette = 16
)

// Bank is the complete register state of the GIME and the SAM.
type Bank struct {
	MMU [NumMMU]uint8

	Init0 uint8
	Init1 uint8

	// interrupt enable masks as written to FF92 and FF93
	IRQEnable  uint8
	FIRQEnable uint8

	// timer reload value. only the low nibble of TimerMSB is used
	TimerMSB uint8
	TimerLSB uint8

	// FF96 to FF9F
	Video [NumVideo]uint8

	// FFB0 to FFBF
	Palette [NumPalette]uint8

	SAM uint16
}

// Reset all registers to zero.
func (b *Bank) Reset() {
	*b = Bank{}
}

// Snapshot creates a copy of the register bank.
func (b *Bank) Snapshot() *Bank {
	n := *b
	return &n
}

func (b *Bank) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("INIT0=%02x INIT1=%02x IRQEN=%02x FIRQEN=%02x TIMER=%03x SAM=%04x\n",
		b.Init0, b.Init1, b.IRQEnable, b.FIRQEnable, b.TimerReload(), b.SAM))
	for t := 0; t < 2; t++ {
		s.WriteString(fmt.Sprintf("task %d:", t))
		for w := 0; w < TaskSize; w++ {
			s.WriteString(fmt.Sprintf(" %02x", b.MMU[t*TaskSize+w]))
		}
		if t == b.ActiveTask() {
			s.WriteString(" *")
		}
		s.WriteString("\n")
	}
	return s.String()
}

// CoCoCompatible returns true if the CoCo 1/2 compatibility bit is set.
func (b *Bank) CoCoCompatible() bool {
	return b.Init0&Init0CoCo == Init0CoCo
}

// MMUEnabled returns true if MMU translation is enabled.
func (b *Bank) MMUEnabled() bool {
	return b.Init0&Init0MMUEnable == Init0MMUEnable
}

// IRQEnabled returns true if GIME interrupts can assert the IRQ line.
func (b *Bank) IRQEnabled() bool {
	return b.Init0&Init0IRQEnable == Init0IRQEnable
}

// FIRQEnabled returns true if GIME interrupts can assert the FIRQ line.
func (b *Bank) FIRQEnabled() bool {
	return b.Init0&Init0FIRQEnable == Init0FIRQEnable
}

// ConstantRAM returns true if the FExx page is forced to high RAM.
func (b *Bank) ConstantRAM() bool {
	return b.Init0&Init0ConstantRAM == Init0ConstantRAM
}

// StandardSCS returns true if the cartridge select is standard.
func (b *Bank) StandardSCS() bool {
	return b.Init0&Init0StandardSCS == Init0StandardSCS
}

// ROMMap returns the two ROM map select bits.
func (b *Bank) ROMMap() uint8 {
	return b.Init0 & Init0ROMMap
}

// TimerFast returns true if the timer is clocked by the fast timer source
// rather than the horizontal sync.
func (b *Bank) TimerFast() bool {
	return b.Init1&Init1TimerInput == Init1TimerInput
}

// ActiveTask returns the active set of MMU registers. Either 0 or 1.
func (b *Bank) ActiveTask() int {
	return int(b.Init1 & Init1Task)
}

// BlockRegister returns the value of the MMU register in the active set for
// the window. Window 8 shares the register of window 7.
func (b *Bank) BlockRegister(window int) uint8 {
	if window >= TaskSize {
		window = TaskSize - 1
	}
	return b.MMU[window+TaskSize*b.ActiveTask()]
}

// IsActive returns true if the MMU register is in the active set.
func (b *Bank) IsActive(reg int) bool {
	return reg/TaskSize == b.ActiveTask()
}

// TimerReload returns the twelve bit reload value of the timer.
func (b *Bank) TimerReload() uint16 {
	return uint16(b.TimerMSB&0x0f)<<8 | uint16(b.TimerLSB)
}

// AllRAM returns true if the SAM TY bit is set.
func (b *Bank) AllRAM() bool {
	return b.SAM&SAMAllRAM == SAMAllRAM
}

// WriteSAM sets or clears a SAM bit. The address is the offset from FFC0.
// Even addresses clear the bit and odd addresses set it.
func (b *Bank) WriteSAM(offset uint16) {
	bit := uint16(1) << ((offset & 0x1f) >> 1)
	if offset&0x01 == 0x01 {
		b.SAM |= bit
	} else {
		b.SAM &^= bit
	}
}

// MappingBits returns the bits of INIT0 and SAM that affect the translation
// of every window. Used to decide whether all windows need to be remapped
// after a register write.
func (b *Bank) MappingBits() uint32 {
	return uint32(b.Init0&(Init0MMUEnable|Init0ConstantRAM|Init0ROMMap)) |
		uint32(b.Init1&Init1Task)<<8 |
		uint32(b.SAM&SAMAllRAM)<<16
}
