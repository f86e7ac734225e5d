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

// Package memory implements the CoCo 3 memory system as seen by the CPU.
//
// The nine windows of the logical address space are bound to physical storage
// by the Remap() function. Each window holds the location returned by the
// mmu package for offset zero of the window. Accesses add the offset within
// the window to that location and wrap it to the size of the storage.
//
// Remap() must be called whenever the inputs to the translation change. The
// gime package does this after register writes.
//
// The I/O page (FF00 to FFFF) is not translated. Accesses are sent to the
// devices attached with AttachIO().
package memory
