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

package mmu_test

import (
	"testing"

	"github.com/jetsetilly/gophercoco/hardware/gime/mmu"
	"github.com/jetsetilly/gophercoco/hardware/gime/registers"
	"github.com/jetsetilly/gophercoco/test"
)

const ram512 = 512 * 1024

func TestMMUDisabled(t *testing.T) {
	var bank registers.Bank
	bank.SAM = registers.SAMAllRAM

	for w := 0; w < 8; w++ {
		for v := 0; v < 256; v++ {
			bank.MMU[w] = uint8(v)
			bank.MMU[w+8] = uint8(v)
			l := mmu.Translate(&bank, ram512, w, 0x10)
			test.ExpectFailure(t, l.ROM, w, v)
			test.ExpectEquality(t, l.Offset, (0x38+w)*mmu.WindowSize+0x10, w, v)
		}
	}
}

func TestMMUDisabledROM(t *testing.T) {
	var bank registers.Bank

	// identity blocks 3c to 3f decode as ROM when TY is clear
	bank.Init0 = 0x02
	l := mmu.Translate(&bank, ram512, 4, 0)
	test.ExpectSuccess(t, l.ROM)
	test.ExpectEquality(t, l.Region, mmu.ExtendedBASIC)
	l = mmu.Translate(&bank, ram512, 5, 0)
	test.ExpectEquality(t, l.Region, mmu.ColorBASIC)
	l = mmu.Translate(&bank, ram512, 6, 0)
	test.ExpectEquality(t, l.Region, mmu.SuperExtendedBASIC)
	test.ExpectEquality(t, l.Offset, 0)
	l = mmu.Translate(&bank, ram512, 7, 0x100)
	test.ExpectEquality(t, l.Region, mmu.SuperExtendedBASIC)
	test.ExpectEquality(t, l.Offset, 0x2100)

	// window 3 is RAM
	l = mmu.Translate(&bank, ram512, 3, 0)
	test.ExpectFailure(t, l.ROM)
}

func TestROMMap(t *testing.T) {
	var bank registers.Bank
	bank.Init0 = registers.Init0MMUEnable

	bank.MMU[2] = 0x3e
	for _, tc := range []struct {
		romMap uint8
		region mmu.Region
		offset int
	}{
		{0, mmu.Cartridge, 0x4000},
		{1, mmu.Cartridge, 0x4000},
		{2, mmu.SuperExtendedBASIC, 0x0000},
		{3, mmu.Cartridge, 0x4000},
	} {
		bank.Init0 = registers.Init0MMUEnable | tc.romMap
		l := mmu.Translate(&bank, ram512, 2, 0)
		test.ExpectSuccess(t, l.ROM, tc.romMap)
		test.ExpectEquality(t, l.Region, tc.region, tc.romMap)
		test.ExpectEquality(t, l.Offset, tc.offset, tc.romMap)
	}

	// upper bits of the block register are ignored
	bank.Init0 = registers.Init0MMUEnable | 0x03
	bank.MMU[2] = 0xfc
	l := mmu.Translate(&bank, ram512, 2, 0)
	test.ExpectSuccess(t, l.ROM)
	test.ExpectEquality(t, l.Region, mmu.Cartridge)
	test.ExpectEquality(t, l.Offset, 0)
}

func TestBlockRegister3(t *testing.T) {
	var bank registers.Bank
	bank.Init0 = registers.Init0MMUEnable
	bank.SAM = registers.SAMAllRAM
	bank.MMU[3] = 0x3f

	for _, size := range []int{128 * 1024, 512 * 1024, 160 * 1024, 1000003} {
		l := mmu.Translate(&bank, size, 3, 0)
		test.ExpectFailure(t, l.ROM, size)
		test.ExpectEquality(t, l.Offset, (0x3f*0x2000)%size, size)
	}
}

func TestLargeBlocks(t *testing.T) {
	var bank registers.Bank
	bank.Init0 = registers.Init0MMUEnable
	bank.SAM = registers.SAMAllRAM

	for _, size := range []int{192 * 1024, 2048 * 1024} {
		for _, v := range []uint8{0x40, 0x7f, 0xc1, 0xff} {
			bank.MMU[3] = v
			l := mmu.Translate(&bank, size, 3, 0x10)
			test.ExpectFailure(t, l.ROM, size, v)
			test.ExpectEquality(t, l.Block, v, size, v)
			test.ExpectEquality(t, l.Offset, (int(v)*mmu.WindowSize+0x10)%size, size, v)
		}
	}

	// 0x40 reaches the second half of a 1M memory
	bank.MMU[3] = 0x40
	l := mmu.Translate(&bank, 1024*1024, 3, 0)
	test.ExpectEquality(t, l.Offset, 0x80000)

	// the ROM test only looks at the low six bits
	bank.SAM = 0
	bank.MMU[3] = 0x7d
	l = mmu.Translate(&bank, 2048*1024, 3, 0)
	test.ExpectSuccess(t, l.ROM)
	test.ExpectEquality(t, l.Region, mmu.ColorBASIC)
}

func TestActiveTask(t *testing.T) {
	var bank registers.Bank
	bank.Init0 = registers.Init0MMUEnable
	bank.MMU[1] = 0x01
	bank.MMU[9] = 0x21

	l := mmu.Translate(&bank, ram512, 1, 0)
	test.ExpectEquality(t, l.Offset, 0x01*mmu.WindowSize)

	bank.Init1 = registers.Init1Task
	l = mmu.Translate(&bank, ram512, 1, 0)
	test.ExpectEquality(t, l.Offset, 0x21*mmu.WindowSize)
}

func TestRAMBounds(t *testing.T) {
	var bank registers.Bank
	bank.Init0 = registers.Init0MMUEnable
	bank.SAM = registers.SAMAllRAM

	for _, size := range []int{128 * 1024, 192 * 1024, 200000, 512 * 1024} {
		for v := 0; v < 256; v++ {
			bank.MMU[0] = uint8(v)
			bank.MMU[7] = uint8(v)
			for _, off := range []int{0, 1, 0x1fff} {
				l := mmu.Translate(&bank, size, 0, off)
				test.ExpectSuccess(t, l.Offset >= 0 && l.Offset < size, size, v, off)
			}
			l := mmu.Translate(&bank, size, mmu.SpecialWindow, 0xff)
			test.ExpectSuccess(t, l.Offset >= 0 && l.Offset < size, size, v)
		}
	}
}

func TestSpecialWindow(t *testing.T) {
	var bank registers.Bank
	bank.Init0 = registers.Init0MMUEnable
	bank.SAM = registers.SAMAllRAM
	bank.MMU[7] = 0x05

	// window 8 follows block register 7 at offset 1e00
	l := mmu.Translate(&bank, ram512, mmu.SpecialWindow, 0x10)
	test.ExpectEquality(t, l.Offset, 0x05*mmu.WindowSize+0x1e10)

	// constant RAM ignores the block registers, even nonsense values
	bank.Init0 |= registers.Init0ConstantRAM
	for _, v := range []uint8{0x00, 0x3f, 0xff, 0xa5} {
		bank.MMU[7] = v
		l = mmu.Translate(&bank, ram512, mmu.SpecialWindow, 0x10)
		test.ExpectFailure(t, l.ROM)
		test.ExpectEquality(t, l.Offset, ram512-0x200+0x10)
	}

	// constant RAM is forced even when the block would decode as ROM
	bank.SAM = 0
	bank.MMU[7] = 0x3f
	l = mmu.Translate(&bank, 128*1024, mmu.SpecialWindow, 0)
	test.ExpectFailure(t, l.ROM)
	test.ExpectEquality(t, l.Offset, 128*1024-0x200)
}

func TestWindowOf(t *testing.T) {
	w, o := mmu.WindowOf(0x0000)
	test.ExpectEquality(t, w, 0)
	test.ExpectEquality(t, o, 0)
	w, o = mmu.WindowOf(0xc123)
	test.ExpectEquality(t, w, 6)
	test.ExpectEquality(t, o, 0x0123)
	w, o = mmu.WindowOf(0xfdff)
	test.ExpectEquality(t, w, 7)
	test.ExpectEquality(t, o, 0x1dff)
	w, o = mmu.WindowOf(0xfe42)
	test.ExpectEquality(t, w, mmu.SpecialWindow)
	test.ExpectEquality(t, o, 0x42)
	w, _ = mmu.WindowOf(0xff00)
	test.ExpectEquality(t, w, -1)

	test.ExpectEquality(t, mmu.Base(mmu.SpecialWindow), uint16(0xfe00))
	test.ExpectEquality(t, mmu.Size(7), 0x1e00)
}
