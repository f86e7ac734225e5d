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

// Package memorymap describes the layout of the CoCo 3 logical address space.
// The first 65024 bytes are divided into eight windows that are translated
// by the MMU. The FExx page is a ninth window and the FFxx page is the I/O
// page.
//
// The Summary() function lists every area in the address space and is useful
// for reference.
package memorymap
