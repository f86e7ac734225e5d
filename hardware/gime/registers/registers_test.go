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

package registers_test

import (
	"testing"

	"github.com/jetsetilly/gophercoco/hardware/gime/registers"
	"github.com/jetsetilly/gophercoco/test"
)

func TestAccessors(t *testing.T) {
	var b registers.Bank

	b.Init0 = 0xff
	test.ExpectSuccess(t, b.CoCoCompatible())
	test.ExpectSuccess(t, b.MMUEnabled())
	test.ExpectSuccess(t, b.IRQEnabled())
	test.ExpectSuccess(t, b.FIRQEnabled())
	test.ExpectSuccess(t, b.ConstantRAM())
	test.ExpectSuccess(t, b.StandardSCS())
	test.ExpectEquality(t, b.ROMMap(), uint8(3))

	b.Init0 = 0x00
	test.ExpectFailure(t, b.MMUEnabled())
	test.ExpectEquality(t, b.ROMMap(), uint8(0))

	b.Init1 = 0x21
	test.ExpectSuccess(t, b.TimerFast())
	test.ExpectEquality(t, b.ActiveTask(), 1)

	b.TimerMSB = 0xf3
	b.TimerLSB = 0x45
	test.ExpectEquality(t, b.TimerReload(), uint16(0x345))
}

func TestBlockRegister(t *testing.T) {
	var b registers.Bank
	for i := range b.MMU {
		b.MMU[i] = uint8(i)
	}
	test.ExpectEquality(t, b.BlockRegister(3), uint8(3))
	test.ExpectEquality(t, b.BlockRegister(8), uint8(7))
	test.ExpectSuccess(t, b.IsActive(3))
	test.ExpectFailure(t, b.IsActive(11))

	b.Init1 = registers.Init1Task
	test.ExpectEquality(t, b.BlockRegister(3), uint8(11))
	test.ExpectEquality(t, b.BlockRegister(8), uint8(15))
	test.ExpectSuccess(t, b.IsActive(11))
}

func TestSAM(t *testing.T) {
	var b registers.Bank

	// FFDF sets TY
	b.WriteSAM(0x1f)
	test.ExpectSuccess(t, b.AllRAM())
	test.ExpectEquality(t, b.SAM, uint16(0x8000))

	// FFD9 sets R1
	b.WriteSAM(0x19)
	test.ExpectEquality(t, b.SAM, uint16(0x9000))

	// FFDE clears TY
	b.WriteSAM(0x1e)
	test.ExpectFailure(t, b.AllRAM())
	test.ExpectEquality(t, b.SAM, uint16(0x1000))
}

func TestMappingBits(t *testing.T) {
	var b registers.Bank
	m := b.MappingBits()

	// irq enable does not affect the mapping
	b.Init0 = registers.Init0IRQEnable | registers.Init0CoCo
	test.ExpectEquality(t, b.MappingBits(), m)

	b.Init0 |= registers.Init0ConstantRAM
	test.ExpectInequality(t, b.MappingBits(), m)
	m = b.MappingBits()

	b.WriteSAM(0x1f)
	test.ExpectInequality(t, b.MappingBits(), m)
	m = b.MappingBits()

	b.Init1 = registers.Init1Task
	test.ExpectInequality(t, b.MappingBits(), m)
}

func TestReset(t *testing.T) {
	var b registers.Bank
	b.MMU[4] = 0x12
	b.Init0 = 0xff
	b.SAM = 0xffff
	s := b.Snapshot()

	b.Reset()
	test.ExpectEquality(t, b, registers.Bank{})
	test.ExpectEquality(t, s.MMU[4], uint8(0x12))
}
