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

package memorymap

import "fmt"

// Area represents the different areas of the address space.
type Area int

// The different areas of the address space. The eight MMU windows are
// Window+0 to Window+7.
const (
	Window       Area = iota
	ConstantPage Area = iota + 7
	PIA0
	PIA1
	SCS
	Unmapped
	GIME
	MMU
	Palette
	SAM
	Vectors
)

func (a Area) String() string {
	if a >= Window && a < ConstantPage {
		return fmt.Sprintf("Window %d", int(a-Window))
	}
	switch a {
	case ConstantPage:
		return "FExx"
	case PIA0:
		return "PIA0"
	case PIA1:
		return "PIA1"
	case SCS:
		return "SCS"
	case Unmapped:
		return "Unmapped"
	case GIME:
		return "GIME"
	case MMU:
		return "MMU"
	case Palette:
		return "Palette"
	case SAM:
		return "SAM"
	case Vectors:
		return "Vectors"
	}
	return "undefined"
}

// The origin and memory top of the areas in the I/O page.
const (
	OriginConstantPage = uint16(0xfe00)
	OriginIO           = uint16(0xff00)
	OriginPIA0         = uint16(0xff00)
	MemtopPIA0         = uint16(0xff1f)
	OriginPIA1         = uint16(0xff20)
	MemtopPIA1         = uint16(0xff3f)
	OriginSCS          = uint16(0xff40)
	MemtopSCS          = uint16(0xff5f)
	OriginUnmapped     = uint16(0xff60)
	MemtopUnmapped     = uint16(0xff8f)
	OriginGIME         = uint16(0xff90)
	MemtopGIME         = uint16(0xff9f)
	OriginMMU          = uint16(0xffa0)
	MemtopMMU          = uint16(0xffaf)
	OriginPalette      = uint16(0xffb0)
	MemtopPalette      = uint16(0xffbf)
	OriginSAM          = uint16(0xffc0)
	MemtopSAM          = uint16(0xffdf)
	OriginVectors      = uint16(0xffe0)
	MemtopVectors      = uint16(0xffff)
)

// The registers of the PIAs are mirrored every four bytes.
const MaskPIA = uint16(0x0003)

// MapAddress returns the area of the address. For the PIAs the address is
// reduced to the register number. For all other areas the address is
// returned unchanged.
func MapAddress(address uint16) (uint16, Area) {
	switch {
	case address < OriginConstantPage:
		return address, Window + Area(address>>13)
	case address < OriginIO:
		return address, ConstantPage
	case address <= MemtopPIA0:
		return address & MaskPIA, PIA0
	case address <= MemtopPIA1:
		return address & MaskPIA, PIA1
	case address <= MemtopSCS:
		return address, SCS
	case address <= MemtopUnmapped:
		return address, Unmapped
	case address <= MemtopGIME:
		return address, GIME
	case address <= MemtopMMU:
		return address, MMU
	case address <= MemtopPalette:
		return address, Palette
	case address <= MemtopSAM:
		return address, SAM
	}
	return address, Vectors
}
