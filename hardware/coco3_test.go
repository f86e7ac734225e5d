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

package hardware_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gophercoco/curated"
	"github.com/jetsetilly/gophercoco/hardware"
	"github.com/jetsetilly/gophercoco/hardware/cartridge"
	"github.com/jetsetilly/gophercoco/hardware/gime"
	"github.com/jetsetilly/gophercoco/hardware/gime/interrupts"
	"github.com/jetsetilly/gophercoco/hardware/gime/mmu"
	"github.com/jetsetilly/gophercoco/hardware/gime/registers"
	"github.com/jetsetilly/gophercoco/hardware/govern"
	"github.com/jetsetilly/gophercoco/hardware/instance"
	"github.com/jetsetilly/gophercoco/hardware/memory"
	"github.com/jetsetilly/gophercoco/hardware/pia"
	"github.com/jetsetilly/gophercoco/hardware/preferences"
	"github.com/jetsetilly/gophercoco/test"
)

func blankROMs() memory.ROMs {
	var roms memory.ROMs
	roms[mmu.ExtendedBASIC] = bytes.Repeat([]byte{0xff}, 0x2000)
	roms[mmu.ColorBASIC] = bytes.Repeat([]byte{0xff}, 0x2000)
	roms[mmu.SuperExtendedBASIC] = bytes.Repeat([]byte{0xff}, 0x4000)
	return roms
}

func newInstance(t *testing.T) *instance.Instance {
	t.Helper()
	p, err := preferences.NewPreferences(filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)
	ins, err := instance.NewInstance(p)
	test.DemandSuccess(t, err)
	ins.Normalise()
	return ins
}

func newCoCo3(t *testing.T) *hardware.CoCo3 {
	t.Helper()
	coco, err := hardware.NewCoCo3(newInstance(t), nil, blankROMs())
	test.DemandSuccess(t, err)
	return coco
}

func TestMissingROM(t *testing.T) {
	roms := blankROMs()
	roms[mmu.SuperExtendedBASIC] = nil
	_, err := hardware.NewCoCo3(newInstance(t), nil, roms)
	test.ExpectSuccess(t, curated.Is(err, memory.MissingROMError))
}

func TestEmptyCartridgeSlot(t *testing.T) {
	coco := newCoCo3(t)
	test.ExpectFailure(t, coco.Cart.Inserted)
	test.ExpectEquality(t, len(coco.Mem.ROM(mmu.Cartridge)), cartridge.EjectedSize)
}

func TestBlockRegister3(t *testing.T) {
	coco := newCoCo3(t)

	coco.Write(0xff90, registers.Init0MMUEnable)
	coco.Write(0xffdf, 0x00)
	coco.Write(0xffa3, 0x3f)

	loc := coco.Mem.Window(3)
	test.ExpectFailure(t, loc.ROM)
	test.ExpectEquality(t, loc.Offset, (0x3f*0x2000)%len(coco.Mem.RAM))

	coco.Write(0x6001, 0xab)
	test.ExpectEquality(t, coco.Mem.RAM[(0x3f*0x2000)%len(coco.Mem.RAM)+1], uint8(0xab))
}

func TestResetMapping(t *testing.T) {
	coco := newCoCo3(t)

	// after reset the MMU is disabled and the top four windows are ROM
	for w := 0; w < 4; w++ {
		test.ExpectFailure(t, coco.Mem.Window(w).ROM, w)
	}
	for w := 4; w < 8; w++ {
		test.ExpectSuccess(t, coco.Mem.Window(w).ROM, w)
	}
}

func TestHSyncTimer(t *testing.T) {
	coco := newCoCo3(t)
	pins, ok := coco.Pins()
	test.DemandSuccess(t, ok)

	coco.Write(0xff90, registers.Init0IRQEnable)
	coco.Write(0xff92, uint8(interrupts.TMR))
	coco.Write(0xff91, 0x00)
	coco.Write(0xff94, 0x00)
	coco.Write(0xff95, 0x03)

	// reload 3 plus a bias of 1 is four scanlines
	coco.RunLines(3)
	test.ExpectFailure(t, pins.IRQ)
	coco.RunLines(1)
	test.ExpectSuccess(t, pins.IRQ)

	test.ExpectEquality(t, coco.Read(0xff92), uint8(interrupts.TMR))
	test.ExpectFailure(t, pins.IRQ)

	coco.RunLines(8)
	test.ExpectEquality(t, pins.IRQCount, 2)
	test.ExpectEquality(t, coco.Read(0xff92), uint8(interrupts.TMR))
}

func TestVBorder(t *testing.T) {
	coco := newCoCo3(t)
	pins, _ := coco.Pins()

	coco.Write(0xff90, registers.Init0FIRQEnable)
	coco.Write(0xff93, uint8(interrupts.VBORD))

	coco.RunLines(224)
	test.ExpectFailure(t, pins.FIRQ)
	coco.RunLines(1)
	test.ExpectSuccess(t, pins.FIRQ)
	test.ExpectEquality(t, coco.Read(0xff93), uint8(interrupts.VBORD))
}

func TestFieldSync(t *testing.T) {
	coco := newCoCo3(t)
	pins, _ := coco.Pins()

	// CB1 falling edge with interrupt enabled
	coco.Write(0xff03, pia.CRData|pia.CRIRQEnable)

	pins.SetHalt(true)
	coco.RunLines(225)
	test.ExpectSuccess(t, coco.PIA0.IRQB())
	test.ExpectFailure(t, pins.IRQ)

	// the PIA interrupt is taken as soon as the halt is released
	pins.SetHalt(false)
	test.ExpectSuccess(t, pins.IRQ)

	// reading the data register clears the flag
	coco.Read(0xff02)
	test.ExpectFailure(t, pins.IRQ)
}

func TestCartridge(t *testing.T) {
	coco := newCoCo3(t)
	pins, _ := coco.Pins()

	coco.Write(0xff90, registers.Init0FIRQEnable|0x03)
	coco.Write(0xff93, uint8(interrupts.EI0))

	cart := bytes.Repeat([]byte{0x12}, 0x4000)
	test.DemandSuccess(t, coco.InsertCartridge("test.ccc", cart))
	test.ExpectSuccess(t, coco.Cart.Effective())
	test.ExpectSuccess(t, pins.FIRQ)
	test.ExpectEquality(t, coco.Read(0x8000), uint8(0x12))

	test.ExpectEquality(t, coco.Read(0xff93), uint8(interrupts.EI0))
	test.ExpectFailure(t, pins.FIRQ)

	// reading SCS twiddles the line and latches a new edge
	coco.Read(0xff40)
	test.ExpectEquality(t, coco.GIME.Interrupts.PeekPending(interrupts.FIRQ), uint8(interrupts.EI0))

	test.DemandSuccess(t, coco.EjectCartridge())
	test.ExpectFailure(t, coco.Cart.Effective())
	test.ExpectEquality(t, coco.Read(0x8000), uint8(0xff))
}

func TestSaveLoadState(t *testing.T) {
	coco := newCoCo3(t)

	coco.Write(0xff90, registers.Init0MMUEnable|registers.Init0IRQEnable|registers.Init0ConstantRAM)
	coco.Write(0xff92, uint8(interrupts.TMR|interrupts.HBORD))
	coco.Write(0xff91, registers.Init1TimerInput)
	coco.Write(0xff94, 0x02)
	coco.Write(0xff95, 0x00)
	for i := 0; i < 16; i++ {
		coco.Write(0xffa0+uint16(i), uint8(i*3))
	}
	coco.Write(0x1234, 0x56)
	coco.RunLines(10)

	b := coco.SaveState()

	other := newCoCo3(t)
	test.DemandSuccess(t, other.LoadState(b))

	test.ExpectEquality(t, *other.GIME.Bank, *coco.GIME.Bank)
	test.ExpectEquality(t, other.Mem.Windows(), coco.Mem.Windows())
	test.ExpectEquality(t, other.Read(0x1234), uint8(0x56))
	test.ExpectEquality(t, other.Raster.String(), coco.Raster.String())
	test.ExpectEquality(t, other.GIME.Timer.Remaining, coco.GIME.Timer.Remaining)

	// both machines continue identically
	coco.RunLines(100)
	other.RunLines(100)
	test.ExpectEquality(t, other.GIME.Interrupts.PeekPending(interrupts.IRQ),
		coco.GIME.Interrupts.PeekPending(interrupts.IRQ))
	test.ExpectSuccess(t, bytes.Equal(other.SaveState(), coco.SaveState()))
}

func TestLoadStateErrors(t *testing.T) {
	coco := newCoCo3(t)
	b := coco.SaveState()

	err := coco.LoadState(b[:10])
	test.ExpectSuccess(t, curated.Is(err, gime.StateError))

	err = coco.LoadState(b[:len(b)-1])
	test.ExpectSuccess(t, curated.Is(err, gime.StateError))
}

func TestLoadStateUnchangedOnError(t *testing.T) {
	big := newCoCo3(t)
	big.Write(0xff90, registers.Init0MMUEnable)
	big.Write(0xffa3, 0x11)
	big.RunLines(3)
	test.DemandEquality(t, len(big.Mem.RAM), 512*1024)
	b := big.SaveState()

	ins := newInstance(t)
	test.DemandSuccess(t, ins.Prefs.RAM.Set(128))
	ins.UpdateLive()
	small, err := hardware.NewCoCo3(ins, nil, blankROMs())
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(small.Mem.RAM), 128*1024)

	bank := *small.GIME.Bank
	windows := small.Mem.Windows()
	before := small.SaveState()

	err = small.LoadState(b)
	test.ExpectSuccess(t, curated.Is(err, gime.StateError))
	test.ExpectEquality(t, *small.GIME.Bank, bank)
	test.ExpectEquality(t, small.GIME.Bank.MMU[3], uint8(0x00))
	test.ExpectEquality(t, small.Mem.Windows(), windows)
	test.ExpectSuccess(t, bytes.Equal(small.SaveState(), before))

	// an invalid cartridge line is also rejected before anything changes
	b = big.SaveState()
	b[gime.StateSize+1] = 0xff
	big.Write(0xffa3, 0x22)
	err = big.LoadState(b)
	test.ExpectSuccess(t, curated.Is(err, gime.StateError))
	test.ExpectEquality(t, big.GIME.Bank.MMU[3], uint8(0x22))
}

type externalCPU struct {
	irq       bool
	firq      bool
	suspended bool
	notify    func()
}

func (c *externalCPU) SetIRQ(v bool)      { c.irq = v }
func (c *externalCPU) SetFIRQ(v bool)     { c.firq = v }
func (c *externalCPU) Suspended() bool    { return c.suspended }
func (c *externalCPU) OnSuspend(f func()) { c.notify = f }
func (c *externalCPU) suspend(v bool)     { c.suspended = v; c.notify() }

func TestExternalCPUSuspend(t *testing.T) {
	c := &externalCPU{}
	coco, err := hardware.NewCoCo3(newInstance(t), c, blankROMs())
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, c.notify != nil)

	coco.PIA0.Write(1, pia.CRData|pia.CRIRQEnable)
	coco.PIA0.PulseC1(pia.A)
	test.ExpectSuccess(t, c.irq)

	c.suspend(true)
	test.ExpectFailure(t, c.irq)

	c.suspend(false)
	test.ExpectSuccess(t, c.irq)
}

func TestSnapshot(t *testing.T) {
	coco := newCoCo3(t)
	coco.Write(0x0100, 0x01)
	s := coco.Snapshot()

	coco.Write(0x0100, 0x02)
	coco.Write(0xff90, registers.Init0MMUEnable)
	coco.RunLines(5)

	coco.Plumb(s)
	test.ExpectEquality(t, coco.Read(0x0100), uint8(0x01))
	test.ExpectFailure(t, coco.GIME.Bank.MMUEnabled())
	test.ExpectEquality(t, coco.Raster.Line, 0)

	// the plumbed machine is live
	coco.Write(0xffdf, 0x00)
	test.ExpectSuccess(t, coco.GIME.Bank.AllRAM())
	test.ExpectFailure(t, coco.Mem.Window(7).ROM)
}

func TestRunFor(t *testing.T) {
	coco := newCoCo3(t)

	var lines int
	err := coco.RunFor(func() (govern.State, error) {
		lines++
		if lines == 10 {
			return govern.Ending, nil
		}
		return govern.Running, nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, coco.Raster.Line, 10)

	var scanlines []int
	coco.OnScanline(func(l int) { scanlines = append(scanlines, l) })
	coco.RunLines(2)
	test.DemandEquality(t, len(scanlines), 2)
	test.ExpectEquality(t, scanlines[0], 10)
}
