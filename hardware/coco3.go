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

package hardware

import (
	"fmt"

	"github.com/jetsetilly/gophercoco/hardware/cartridge"
	"github.com/jetsetilly/gophercoco/hardware/cpu"
	"github.com/jetsetilly/gophercoco/hardware/gime"
	"github.com/jetsetilly/gophercoco/hardware/gime/interrupts"
	"github.com/jetsetilly/gophercoco/hardware/gime/mmu"
	"github.com/jetsetilly/gophercoco/hardware/gime/registers"
	"github.com/jetsetilly/gophercoco/hardware/gime/timer"
	"github.com/jetsetilly/gophercoco/hardware/govern"
	"github.com/jetsetilly/gophercoco/hardware/instance"
	"github.com/jetsetilly/gophercoco/hardware/memory"
	"github.com/jetsetilly/gophercoco/hardware/pia"
	"github.com/jetsetilly/gophercoco/hardware/video"
	"github.com/jetsetilly/gophercoco/logger"
)

// CoCo3 is the root of the emulation.
type CoCo3 struct {
	Env *instance.Instance

	// the CPU collaborator. if no CPU is supplied to NewCoCo3() then this
	// is the pin model in the cpu package
	CPU interrupts.CPU

	Mem    *memory.Memory
	GIME   *gime.GIME
	PIA0   *pia.PIA
	PIA1   *pia.PIA
	Cart   *cartridge.Slot
	Raster *video.Raster

	// number of fast timer ticks since construction
	ticks uint64

	onScanline func(line int)
}

// NewCoCo3 is the preferred method of initialisation for the CoCo3 type. The
// cpu argument can be nil, in which case the pin model from the cpu package
// is used. The cartridge region of the roms argument can be empty.
//
// Returns an error if the installed RAM is too small or if an internal ROM
// region is missing.
func NewCoCo3(env *instance.Instance, c interrupts.CPU, roms memory.ROMs) (*CoCo3, error) {
	coco := &CoCo3{
		Env: env,
	}

	coco.PIA0 = pia.NewPIA("PIA0")
	coco.PIA1 = pia.NewPIA("PIA1")
	coco.Cart = cartridge.NewSlot(env, env.Live.CartAutostart, nil)

	if len(roms[mmu.Cartridge]) == 0 {
		roms[mmu.Cartridge] = coco.Cart.Data()
	}

	bank := &registers.Bank{}

	var err error
	coco.Mem, err = memory.NewMemory(env, bank, env.Live.RAM, roms)
	if err != nil {
		logger.Log(env, "coco3", err)
		return nil, err
	}

	// power on contents of RAM
	env.Random.Fill(coco.Mem.RAM)

	if c == nil {
		c = cpu.NewCPU(coco.Mem)
	}
	coco.CPU = c

	coco.GIME = gime.NewGIME(env, bank, coco.Mem, c, env.Live.TimerBias)
	coco.Raster = video.NewRaster(video.GeometryFromPrefs(env.Live), nil)

	coco.plumb()
	env.Random.SetClock(coco)

	coco.Reset()

	return coco, nil
}

func (coco *CoCo3) String() string {
	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s\ncartridge: %s",
		coco.Raster, coco.GIME, coco.PIA0, coco.PIA1, coco.CPU, coco.Cart)
}

// plumb connects the components to each other.
func (coco *CoCo3) plumb() {
	update := coco.GIME.Interrupts.Update

	coco.PIA0.OnIRQ(update)
	coco.PIA1.OnIRQ(update)

	coco.Cart.Plumb(coco.Env, coco.cartridgeLine)

	coco.Mem.Plumb(coco.Env, coco.GIME.Bank, memory.IO{
		PIA0: coco.PIA0,
		PIA1: coco.PIA1,
		GIME: coco.GIME,
		SCS:  coco.Cart.ReadSCS,
	})

	coco.GIME.Plumb(coco.Env, coco.Mem, coco.CPU,
		[]interrupts.PIA{coco.PIA0},
		[]interrupts.PIA{coco.PIA1},
	)

	coco.Raster.Plumb(syncSignals{coco: coco})

	if p, ok := coco.CPU.(*cpu.CPU); ok {
		p.Plumb(coco.Mem)
	}
	if n, ok := coco.CPU.(interrupts.SuspendNotifier); ok {
		n.OnSuspend(update)
	}
}

// the cartridge line is wired to CB1 of PIA1 and to the EI0 source
func (coco *CoCo3) cartridgeLine(v bool) {
	coco.PIA1.SetC1(pia.B, v)
	coco.GIME.SetSource(interrupts.EI0, v)
}

// Ticks implements the random.Clock interface.
func (coco *CoCo3) Ticks() uint64 {
	return coco.ticks
}

// Pins returns the pin model of the CPU if it is being used.
func (coco *CoCo3) Pins() (*cpu.CPU, bool) {
	p, ok := coco.CPU.(*cpu.CPU)
	return p, ok
}

// OnScanline sets a function to be called at the end of every scanline. The
// argument is the scanline that has ended.
func (coco *CoCo3) OnScanline(f func(line int)) {
	coco.onScanline = f
}

// ApplyPreferences reads the live preferences and applies them to the
// emulation. Called by Reset().
func (coco *CoCo3) ApplyPreferences() {
	coco.Env.UpdateLive()
	coco.GIME.SetBias(coco.Env.Live.TimerBias)
	coco.Raster.SetGeometry(video.GeometryFromPrefs(coco.Env.Live))
	coco.Cart.SetAutostart(coco.Env.Live.CartAutostart)
}

// Reset the emulation. RAM is not cleared.
func (coco *CoCo3) Reset() {
	coco.ApplyPreferences()

	if p, ok := coco.Pins(); ok {
		p.Reset()
	}
	coco.PIA0.Reset()
	coco.PIA1.Reset()
	coco.Raster.Reset()
	coco.GIME.Reset()

	// the field sync is idle high
	coco.PIA0.SetC1(pia.B, true)

	// the cartridge line is re-sent to the reset PIA and GIME
	coco.PIA1.SetC1(pia.B, coco.Cart.Effective())
	coco.GIME.SetSource(interrupts.EI0, coco.Cart.Effective())

	logger.Logf(coco.Env, "coco3", "reset (%dK RAM, GIME %s)", len(coco.Mem.RAM)/1024, coco.Env.Live.Revision)
}

// InsertCartridge places a ROM image in the cartridge slot. An empty image
// ejects the cartridge.
func (coco *CoCo3) InsertCartridge(filename string, data []byte) error {
	coco.Cart.Insert(filename, data)
	return coco.Mem.SetROM(mmu.Cartridge, coco.Cart.Data())
}

// EjectCartridge empties the cartridge slot.
func (coco *CoCo3) EjectCartridge() error {
	coco.Cart.Eject()
	return coco.Mem.SetROM(mmu.Cartridge, coco.Cart.Data())
}

// Read implements the cpubus.Memory interface.
func (coco *CoCo3) Read(address uint16) uint8 {
	return coco.Mem.Read(address)
}

// Write implements the cpubus.Memory interface.
func (coco *CoCo3) Write(address uint16, data uint8) {
	coco.Mem.Write(address, data)
}

// Step advances the emulation by one tick of the fast timer source.
func (coco *CoCo3) Step() {
	coco.step()
}

// Run the emulation for the number of ticks.
func (coco *CoCo3) Run(ticks int) {
	for i := 0; i < ticks; i++ {
		coco.Step()
	}
}

// RunLines runs the emulation for the number of scanlines.
func (coco *CoCo3) RunLines(lines int) {
	coco.Run(lines * coco.Raster.Geometry().TicksPerLine)
}

// RunFor runs the emulation until the continue check function returns the
// Ending state or an error. The function is called at the start of every
// scanline. The emulation does not advance while the state is Paused.
func (coco *CoCo3) RunFor(continueCheck func() (govern.State, error)) error {
	state := govern.Running
	var err error

	for state != govern.Ending {
		if state == govern.Running {
			for !coco.step() {
			}
		}
		state, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}

// step is the same as Step() but returns true if a new scanline has started.
func (coco *CoCo3) step() bool {
	coco.ticks++
	nl := coco.Raster.Step()
	coco.GIME.Tick(timer.Fast)
	return nl
}

// syncSignals connects the raster to the GIME and to PIA0.
type syncSignals struct {
	coco *CoCo3
}

func (s syncSignals) HSync() {
	s.coco.GIME.Tick(timer.HSync)
	s.coco.PIA0.PulseC1(pia.A)
	if s.coco.onScanline != nil {
		s.coco.onScanline(s.coco.Raster.Line)
	}
}

func (s syncSignals) HBorder(v bool) {
	s.coco.GIME.SetSource(interrupts.HBORD, v)
}

// the field sync input of PIA0 is active low
func (s syncSignals) VBorder(v bool) {
	s.coco.GIME.SetSource(interrupts.VBORD, v)
	s.coco.PIA0.SetC1(pia.B, !v)
}
