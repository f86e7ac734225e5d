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

package monitor_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gophercoco/curated"
	"github.com/jetsetilly/gophercoco/hardware"
	"github.com/jetsetilly/gophercoco/hardware/cartridge"
	"github.com/jetsetilly/gophercoco/hardware/gime/mmu"
	"github.com/jetsetilly/gophercoco/hardware/instance"
	"github.com/jetsetilly/gophercoco/hardware/memory"
	"github.com/jetsetilly/gophercoco/hardware/preferences"
	"github.com/jetsetilly/gophercoco/monitor"
	"github.com/jetsetilly/gophercoco/test"
)

func newMonitor(t *testing.T, input string) (*monitor.Monitor, *hardware.CoCo3, *test.CompareWriter) {
	t.Helper()

	p, err := preferences.NewPreferences(filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)
	ins, err := instance.NewInstance(p)
	test.DemandSuccess(t, err)

	var roms memory.ROMs
	roms[mmu.ExtendedBASIC] = bytes.Repeat([]byte{0xff}, 0x2000)
	roms[mmu.ColorBASIC] = bytes.Repeat([]byte{0xff}, 0x2000)
	roms[mmu.SuperExtendedBASIC] = bytes.Repeat([]byte{0xff}, 0x4000)

	coco, err := hardware.NewCoCo3(ins, nil, roms)
	test.DemandSuccess(t, err)

	tw := &test.CompareWriter{}
	return monitor.NewMonitor(coco, strings.NewReader(input), tw), coco, tw
}

func TestPeekPoke(t *testing.T) {
	m, coco, tw := newMonitor(t, "")

	test.ExpectSuccess(t, m.Execute("poke $100 1 2 0x03"))
	test.ExpectEquality(t, coco.Mem.Peek(0x102), uint8(3))

	test.ExpectSuccess(t, m.Execute("PEEK 0x100 3"))
	test.ExpectEquality(t, tw.String(), "0100: 01 02 03\n")

	tw.Clear()
	test.ExpectSuccess(t, m.Execute("peek 0x100 17"))
	test.ExpectEquality(t, strings.Count(tw.String(), "\n"), 2)
}

func TestErrors(t *testing.T) {
	m, _, _ := newMonitor(t, "")

	err := m.Execute("nonsense")
	test.ExpectSuccess(t, curated.Is(err, monitor.UnknownCommand))

	err = m.Execute("poke 0x10000 1")
	test.ExpectSuccess(t, curated.Is(err, monitor.CommandError))

	err = m.Execute("poke 0x100 0x100")
	test.ExpectSuccess(t, curated.Is(err, monitor.CommandError))

	err = m.Execute("cart line maybe")
	test.ExpectSuccess(t, curated.Is(err, monitor.CommandError))

	err = m.Execute("load " + filepath.Join(t.TempDir(), "missing"))
	test.ExpectSuccess(t, curated.Is(err, monitor.CommandError))
}

func TestRunLoop(t *testing.T) {
	m, coco, tw := newMonitor(t, "poke 0x100 0xaa\nnonsense\nquit\npoke 0x100 0xbb\n")

	test.ExpectSuccess(t, m.Run())
	test.ExpectSuccess(t, m.Quit())
	test.ExpectEquality(t, coco.Mem.Peek(0x100), uint8(0xaa))
	test.ExpectSuccess(t, strings.Contains(tw.String(), "* monitor: unknown command (nonsense)"))
}

func TestEndOfInput(t *testing.T) {
	m, coco, _ := newMonitor(t, "poke 0x100 0x55")

	test.ExpectSuccess(t, m.Run())
	test.ExpectFailure(t, m.Quit())
	test.ExpectEquality(t, coco.Mem.Peek(0x100), uint8(0x55))
}

func TestStepping(t *testing.T) {
	m, coco, _ := newMonitor(t, "")

	test.ExpectSuccess(t, m.Execute("step 10"))
	test.ExpectEquality(t, coco.Raster.Tick, 10)

	test.ExpectSuccess(t, m.Execute("lines 2"))
	test.ExpectEquality(t, coco.Raster.Line, 2)
	test.ExpectEquality(t, coco.Raster.Tick, 10)

	coco.Reset()
	test.ExpectSuccess(t, m.Execute("run 1"))
	test.ExpectEquality(t, coco.Raster.Frame, 1)
	test.ExpectEquality(t, coco.Raster.Line, 0)
}

func TestTrace(t *testing.T) {
	m, coco, _ := newMonitor(t, "  \nqpoke")

	test.ExpectSuccess(t, m.Execute("trace"))
	test.ExpectEquality(t, coco.Raster.Line, 3)
}

func TestCartridge(t *testing.T) {
	m, coco, _ := newMonitor(t, "")

	fn := filepath.Join(t.TempDir(), "test.rom")
	test.DemandSuccess(t, os.WriteFile(fn, bytes.Repeat([]byte{0x39}, 0x4000), 0o644))

	test.ExpectSuccess(t, m.Execute("cart insert "+fn))
	test.ExpectSuccess(t, coco.Cart.Inserted)
	test.ExpectEquality(t, len(coco.Mem.ROM(mmu.Cartridge)), 0x4000)

	test.ExpectSuccess(t, m.Execute("cart line clear"))
	test.ExpectEquality(t, coco.Cart.Line, cartridge.Clear)

	test.ExpectSuccess(t, m.Execute("cart eject"))
	test.ExpectFailure(t, coco.Cart.Inserted)
}

func TestSaveLoad(t *testing.T) {
	m, coco, _ := newMonitor(t, "")

	fn := filepath.Join(t.TempDir(), "state")
	test.ExpectSuccess(t, m.Execute("poke 0x300 0x12"))
	test.ExpectSuccess(t, m.Execute("save "+fn))
	test.ExpectSuccess(t, m.Execute("poke 0x300 0x34"))
	test.ExpectSuccess(t, m.Execute("load "+fn))
	test.ExpectEquality(t, coco.Mem.Peek(0x300), uint8(0x12))
}

func TestGraph(t *testing.T) {
	m, _, _ := newMonitor(t, "")

	fn := filepath.Join(t.TempDir(), "bank.dot")
	test.ExpectSuccess(t, m.Execute("graph "+fn))

	b, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, len(b) > 0)
}

func TestScript(t *testing.T) {
	m, _, tw := newMonitor(t, "")

	fn := filepath.Join(t.TempDir(), "test.lua")
	test.DemandSuccess(t, os.WriteFile(fn, []byte("poke(0x400, 7)\nprint(peek(0x400))\n"), 0o644))

	test.ExpectSuccess(t, m.Execute("script "+fn))
	test.ExpectEquality(t, tw.String(), "7\n")
}

func TestMapAndRegs(t *testing.T) {
	m, _, tw := newMonitor(t, "")

	test.ExpectSuccess(t, m.Execute("map"))
	test.ExpectSuccess(t, strings.HasPrefix(tw.String(), "0 0000-1fff RAM"))
	test.ExpectSuccess(t, strings.Contains(tw.String(), "8 fe00-feff"))

	tw.Clear()
	test.ExpectSuccess(t, m.Execute("regs"))
	test.ExpectSuccess(t, strings.Contains(tw.String(), "INIT0="))

	tw.Clear()
	test.ExpectSuccess(t, m.Execute("help"))
	test.ExpectSuccess(t, strings.Contains(tw.String(), "QUIT"))
}
