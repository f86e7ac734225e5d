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

// Package clocks defines the constant values that define the speed of the
// clocks in the CoCo 3. All values are in MHz.
//
// The GIME timer can be clocked by either the fast timer source or by the
// horizontal sync. The emulation advances one tick at the rate of the fast
// timer source.
package clocks

const (
	// NTSC colour burst crystal
	Master = 28.63636

	// the 279ns source selected by the timer input bit of INIT1
	FastTimer = Master / 8

	// the two CPU speeds selected by the SAM R1 bit
	CPUSlow = Master / 32
	CPUFast = Master / 16
)

// HSync is the rate of the horizontal sync for the number of fast timer
// ticks per scanline.
func HSync(ticksPerLine int) float64 {
	if ticksPerLine <= 0 {
		return 0
	}
	return FastTimer / float64(ticksPerLine)
}
