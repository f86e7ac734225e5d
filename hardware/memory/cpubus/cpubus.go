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

// Package cpubus defines the interface to memory as seen by the CPU and the
// addresses of the 6809 vectors.
package cpubus

// Memory defines the operations for the memory system when accessed from the
// CPU. There is no error path. Every address has a defined result even if
// that result is the undriven data bus.
type Memory interface {
	Read(address uint16) uint8
	Write(address uint16, data uint8)
}

// Debugger defines the operations for accessing memory without side effects.
// Reading the I/O page with Peek() does not clear latches or twiddle the
// cartridge line.
type Debugger interface {
	Peek(address uint16) uint8
	Poke(address uint16, data uint8)
}

// The 6809 vectors.
const (
	SWI3  = uint16(0xfff2)
	SWI2  = uint16(0xfff4)
	FIRQ  = uint16(0xfff6)
	IRQ   = uint16(0xfff8)
	SWI   = uint16(0xfffa)
	NMI   = uint16(0xfffc)
	Reset = uint16(0xfffe)
)
