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

// Package scripting drives a CoCo3 emulation from a Lua script. The script
// sees the following global functions:
//
//	peek(addr)            read memory without side effects
//	poke(addr, v)         write memory without side effects
//	read(addr)            read memory through the bus
//	write(addr, v)        write memory through the bus
//	step([n])             advance n fast timer ticks (default 1)
//	lines([n])            advance n scanlines (default 1)
//	ticks()               ticks since the machine was created
//	pending(line)         peek the pending latch of "irq" or "firq"
//	asserted(line)        the level of "irq" or "firq"
//	reset()               reset the machine
//	cart(action, [arg])   "insert" a file, "eject", or set the "line" to
//	                      "clear", "assert" or "q"
//	save()                returns the machine state as a string
//	load(state)           restores a state returned by save()
//	log(msg)              add an entry to the log
//
// The print() function writes to the output given to NewScript().
package scripting
