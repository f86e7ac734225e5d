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

// Package mmu translates a logical window and offset into a physical location
// in either RAM or one of the four ROM regions.
//
// Translation is a pure function of the register bank and the size of the
// installed RAM. It has no side effects and no error conditions. Every
// combination of register values has a defined result.
package mmu

import (
	"fmt"

	"github.com/jetsetilly/gophercoco/hardware/gime/registers"
)

// Window geometry. Windows 0 to 7 are 8K each except for window 7, which
// stops short of the FExx page. Window 8 is the FExx page.
const (
	WindowSize    = 0x2000
	NumWindows    = 9
	SpecialWindow = 8
	SpecialOffset = 0x1e00
	SpecialSize   = 0x100
)

// BlockMask selects the bits of a block that are tested for a ROM mapping.
// RAM offsets use the full eight bit block value.
const BlockMask = 0x3f

// the first block that can be decoded as ROM
const firstROMBlock = 0x3c

// block used for window zero when the MMU is disabled
const identityBase = 0x38

// Region identifies one of the four ROM images.
type Region int

// List of valid Region values.
const (
	ExtendedBASIC Region = iota
	ColorBASIC
	SuperExtendedBASIC
	Cartridge
	NumRegions
)

func (r Region) String() string {
	switch r {
	case ExtendedBASIC:
		return "Extended BASIC"
	case ColorBASIC:
		return "Color BASIC"
	case SuperExtendedBASIC:
		return "Super Extended BASIC"
	case Cartridge:
		return "Cartridge"
	}
	return fmt.Sprintf("region %d", int(r))
}

// romMap is indexed by the ROM map select bits and by the low two bits of the
// block. the result is a ROM block identifier
var romMap = [4][4]uint8{
	{0, 1, 6, 7},
	{0, 1, 6, 7},
	{0, 1, 2, 3},
	{4, 5, 6, 7},
}

// romBlock converts a ROM block identifier to a region and an offset within
// the region.
func romBlock(id uint8) (Region, int) {
	switch id {
	case 0:
		return ExtendedBASIC, 0
	case 1:
		return ColorBASIC, 0
	case 2:
		return SuperExtendedBASIC, 0
	case 3:
		return SuperExtendedBASIC, WindowSize
	}
	return Cartridge, int(id-4) * WindowSize
}

// Location is the physical target of a window. If ROM is false then Offset
// is an offset into RAM and Region is meaningless.
type Location struct {
	ROM    bool
	Region Region
	Offset int
	Block  uint8
}

func (l Location) String() string {
	if l.ROM {
		return fmt.Sprintf("%s+%04x", l.Region, l.Offset)
	}
	return fmt.Sprintf("RAM %05x (block %02x)", l.Offset, l.Block)
}

// Base returns the first logical address of the window.
func Base(window int) uint16 {
	if window == SpecialWindow {
		return 0xfe00
	}
	return uint16(window * WindowSize)
}

// Size returns the number of bytes covered by the window.
func Size(window int) int {
	switch window {
	case SpecialWindow:
		return SpecialSize
	case SpecialWindow - 1:
		return SpecialOffset
	}
	return WindowSize
}

// WindowOf returns the window and offset within the window for a logical
// address. The I/O page returns a window of -1.
func WindowOf(address uint16) (int, int) {
	switch {
	case address >= 0xff00:
		return -1, 0
	case address >= 0xfe00:
		return SpecialWindow, int(address - 0xfe00)
	}
	return int(address / WindowSize), int(address % WindowSize)
}

// Block returns the block for the window taking into account the active task
// and whether the MMU is enabled.
func Block(bank *registers.Bank, window int) uint8 {
	if !bank.MMUEnabled() {
		if window >= SpecialWindow {
			window = SpecialWindow - 1
		}
		return uint8(identityBase + window)
	}
	return bank.BlockRegister(window)
}

// Translate the offset in the logical window to a physical location. For RAM
// the result is always less than ramSize.
func Translate(bank *registers.Bank, ramSize int, window int, offset int) Location {
	if window == SpecialWindow {
		if bank.ConstantRAM() {
			return Location{
				Offset: mod(ramSize-0x200+offset, ramSize),
				Block:  BlockMask,
			}
		}
		offset += SpecialOffset
	}

	block := Block(bank, window)

	if block&BlockMask >= firstROMBlock && !bank.AllRAM() {
		region, base := romBlock(romMap[bank.ROMMap()][block&BlockMask-firstROMBlock])
		return Location{
			ROM:    true,
			Region: region,
			Offset: base + offset,
			Block:  block,
		}
	}

	return Location{
		Offset: mod(int(block)*WindowSize+offset, ramSize),
		Block:  block,
	}
}

func mod(v int, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
