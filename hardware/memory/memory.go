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

package memory

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jetsetilly/gophercoco/curated"
	"github.com/jetsetilly/gophercoco/hardware/gime/mmu"
	"github.com/jetsetilly/gophercoco/hardware/gime/registers"
	"github.com/jetsetilly/gophercoco/hardware/memory/memorymap"
	"github.com/jetsetilly/gophercoco/logger"
)

// Sentinel errors returned by NewMemory().
const (
	RAMSizeError    = "memory: installed RAM too small (%d bytes)"
	MissingROMError = "memory: missing ROM region (%s)"
)

// MinRAM is the smallest amount of RAM, in bytes, that can be installed.
const MinRAM = 128 * 1024

// ROMs are the images for each ROM region.
type ROMs [mmu.NumRegions][]byte

func (roms ROMs) clone() ROMs {
	var c ROMs
	for r := range roms {
		c[r] = bytes.Clone(roms[r])
	}
	return c
}

// Device is a register based device in the I/O page. The address given to a
// PIA is the register number. Other devices receive the full address.
type Device interface {
	Read(address uint16) uint8
	Peek(address uint16) uint8
	Write(address uint16, data uint8)
}

// IO is the set of devices in the I/O page. A nil device reads as the
// undriven data bus.
type IO struct {
	PIA0 Device
	PIA1 Device
	GIME Device

	// called on every read of the SCS area
	SCS func()
}

// Memory is the memory system of the CoCo 3.
type Memory struct {
	env logger.Permission

	bank *registers.Bank

	// RAM is the installed RAM
	RAM []byte

	roms ROMs

	windows [mmu.NumWindows]mmu.Location

	io IO
}

// NewMemory is the preferred method of initialisation for the Memory type.
// Returns an error if the RAM is smaller than MinRAM or if any ROM region is
// missing. The ROM images are copied so the caller's buffers are never
// changed by Poke(). The windows are not mapped until Remap() is called.
func NewMemory(env logger.Permission, bank *registers.Bank, ramSize int, roms ROMs) (*Memory, error) {
	if ramSize < MinRAM {
		return nil, curated.Errorf(RAMSizeError, ramSize)
	}
	for r, b := range roms {
		if len(b) == 0 {
			return nil, curated.Errorf(MissingROMError, mmu.Region(r))
		}
	}

	return &Memory{
		env:  env,
		bank: bank,
		RAM:  make([]byte, ramSize),
		roms: roms.clone(),
	}, nil
}

func (mem *Memory) String() string {
	s := strings.Builder{}
	for w := range mem.windows {
		s.WriteString(fmt.Sprintf("%04x %-5s %s\n", mmu.Base(w), fmt.Sprintf("[%d]", w), mem.windows[w]))
	}
	return s.String()
}

// Snapshot creates a copy of the memory system, including the ROM images.
// The I/O devices are not copied.
func (mem *Memory) Snapshot() *Memory {
	n := *mem
	n.RAM = make([]byte, len(mem.RAM))
	copy(n.RAM, mem.RAM)
	n.roms = mem.roms.clone()
	n.io = IO{}
	return &n
}

// Plumb a new register bank and I/O devices into the memory system.
func (mem *Memory) Plumb(env logger.Permission, bank *registers.Bank, io IO) {
	mem.env = env
	mem.bank = bank
	mem.io = io
}

// AttachIO sets the devices in the I/O page.
func (mem *Memory) AttachIO(io IO) {
	mem.io = io
}

// SetROM replaces the image for a ROM region. Used when a cartridge is
// inserted or ejected. An empty image is not allowed.
func (mem *Memory) SetROM(region mmu.Region, data []byte) error {
	if len(data) == 0 {
		return curated.Errorf(MissingROMError, region)
	}
	mem.roms[region] = bytes.Clone(data)
	return nil
}

// ROM returns the image for a ROM region.
func (mem *Memory) ROM(region mmu.Region) []byte {
	return mem.roms[region]
}

// Remap re-resolves every window in the range [low, high] and binds the
// window to the resulting location.
func (mem *Memory) Remap(low int, high int) {
	if low < 0 {
		low = 0
	}
	if high >= mmu.NumWindows {
		high = mmu.NumWindows - 1
	}
	for w := low; w <= high; w++ {
		loc := mmu.Translate(mem.bank, len(mem.RAM), w, 0)
		if loc != mem.windows[w] {
			logger.Logf(mem.env, "memory", "window %d: %s", w, loc)
		}
		mem.windows[w] = loc
	}
}

// RemapAll re-resolves all nine windows.
func (mem *Memory) RemapAll() {
	mem.Remap(0, mmu.NumWindows-1)
}

// Window returns the location currently bound to the window.
func (mem *Memory) Window(w int) mmu.Location {
	return mem.windows[w]
}

// Windows returns a copy of the locations bound to all windows.
func (mem *Memory) Windows() [mmu.NumWindows]mmu.Location {
	return mem.windows
}

// Physical returns the location of a logical address. The I/O page returns
// false.
func (mem *Memory) Physical(address uint16) (mmu.Location, bool) {
	w, off := mmu.WindowOf(address)
	if w < 0 {
		return mmu.Location{}, false
	}
	loc := mem.windows[w]
	if loc.ROM {
		loc.Offset = (loc.Offset + off) % len(mem.roms[loc.Region])
	} else {
		loc.Offset = (loc.Offset + off) % len(mem.RAM)
	}
	return loc, true
}

// Read implements the cpubus.Memory interface.
func (mem *Memory) Read(address uint16) uint8 {
	if loc, ok := mem.Physical(address); ok {
		if loc.ROM {
			return mem.roms[loc.Region][loc.Offset]
		}
		return mem.RAM[loc.Offset]
	}
	return mem.readIO(address, false)
}

// Write implements the cpubus.Memory interface. Writes to ROM are ignored.
func (mem *Memory) Write(address uint16, data uint8) {
	if loc, ok := mem.Physical(address); ok {
		if !loc.ROM {
			mem.RAM[loc.Offset] = data
		}
		return
	}
	mem.writeIO(address, data)
}

// Peek implements the cpubus.Debugger interface.
func (mem *Memory) Peek(address uint16) uint8 {
	if loc, ok := mem.Physical(address); ok {
		if loc.ROM {
			return mem.roms[loc.Region][loc.Offset]
		}
		return mem.RAM[loc.Offset]
	}
	return mem.readIO(address, true)
}

// Poke implements the cpubus.Debugger interface. Unlike Write(), poking a
// window bound to ROM changes the ROM image.
func (mem *Memory) Poke(address uint16, data uint8) {
	if loc, ok := mem.Physical(address); ok {
		if loc.ROM {
			mem.roms[loc.Region][loc.Offset] = data
		} else {
			mem.RAM[loc.Offset] = data
		}
		return
	}
	mem.writeIO(address, data)
}

func (mem *Memory) readIO(address uint16, peek bool) uint8 {
	reg, area := memorymap.MapAddress(address)

	var dev Device

	switch area {
	case memorymap.PIA0:
		dev = mem.io.PIA0
	case memorymap.PIA1:
		dev = mem.io.PIA1
	case memorymap.SCS:
		if !peek && mem.io.SCS != nil {
			mem.io.SCS()
		}
		return 0xff
	case memorymap.GIME, memorymap.MMU, memorymap.Palette, memorymap.SAM:
		dev = mem.io.GIME
	case memorymap.Vectors:
		seb := mem.roms[mmu.SuperExtendedBASIC]
		i := (len(seb) - 0x20 + int(address-memorymap.OriginVectors)) % len(seb)
		if i < 0 {
			i += len(seb)
		}
		return seb[i]
	}

	if dev == nil {
		return 0xff
	}
	if peek {
		return dev.Peek(reg)
	}
	return dev.Read(reg)
}

func (mem *Memory) writeIO(address uint16, data uint8) {
	reg, area := memorymap.MapAddress(address)

	switch area {
	case memorymap.PIA0:
		if mem.io.PIA0 != nil {
			mem.io.PIA0.Write(reg, data)
		}
	case memorymap.PIA1:
		if mem.io.PIA1 != nil {
			mem.io.PIA1.Write(reg, data)
		}
	case memorymap.GIME, memorymap.MMU, memorymap.Palette, memorymap.SAM:
		if mem.io.GIME != nil {
			mem.io.GIME.Write(reg, data)
		}
	}
}
