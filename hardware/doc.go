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

// Package hardware is the base package for the CoCo 3 emulation. It and its
// sub-packages contain everything required for a headless emulation of the
// GIME and the chips that surround it.
//
// The CoCo3 type is the root of the emulation. It is created with
// NewCoCo3() and advanced one tick of the fast timer source at a time with
// Step(). The CPU instruction interpreter is not part of this package. The
// CPU is represented by the pins that the GIME drives.
package hardware
