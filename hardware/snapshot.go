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
	"github.com/jetsetilly/gophercoco/hardware/cartridge"
	"github.com/jetsetilly/gophercoco/hardware/cpu"
	"github.com/jetsetilly/gophercoco/hardware/gime"
	"github.com/jetsetilly/gophercoco/hardware/memory"
	"github.com/jetsetilly/gophercoco/hardware/pia"
	"github.com/jetsetilly/gophercoco/hardware/video"
)

// State stores the CoCo3 sub-systems. It is produced by the Snapshot()
// function and can be restored with the Plumb() function.
//
// The CPU is only part of the state if the pin model is being used.
type State struct {
	CPU    *cpu.CPU
	Mem    *memory.Memory
	GIME   *gime.GIME
	PIA0   *pia.PIA
	PIA1   *pia.PIA
	Cart   *cartridge.Slot
	Raster *video.Raster
	Ticks  uint64
}

// Snapshot creates a copy of a previously snapshotted State.
func (s *State) Snapshot() *State {
	n := &State{
		Mem:    s.Mem.Snapshot(),
		GIME:   s.GIME.Snapshot(),
		PIA0:   s.PIA0.Snapshot(),
		PIA1:   s.PIA1.Snapshot(),
		Cart:   s.Cart.Snapshot(),
		Raster: s.Raster.Snapshot(),
		Ticks:  s.Ticks,
	}
	if s.CPU != nil {
		n.CPU = s.CPU.Snapshot()
	}
	return n
}

// Snapshot the state of the CoCo3 sub-systems.
func (coco *CoCo3) Snapshot() *State {
	s := &State{
		Mem:    coco.Mem.Snapshot(),
		GIME:   coco.GIME.Snapshot(),
		PIA0:   coco.PIA0.Snapshot(),
		PIA1:   coco.PIA1.Snapshot(),
		Cart:   coco.Cart.Snapshot(),
		Raster: coco.Raster.Snapshot(),
		Ticks:  coco.ticks,
	}
	if p, ok := coco.Pins(); ok {
		s.CPU = p.Snapshot()
	}
	return s
}

// Plumb a previously snapshotted state. The state is copied before plumbing
// so that it can be plumbed again later.
func (coco *CoCo3) Plumb(state *State) {
	if state == nil {
		panic("coco3: cannot plumb in a nil state")
	}

	state = state.Snapshot()

	coco.Mem = state.Mem
	coco.GIME = state.GIME
	coco.PIA0 = state.PIA0
	coco.PIA1 = state.PIA1
	coco.Cart = state.Cart
	coco.Raster = state.Raster
	coco.ticks = state.Ticks
	if state.CPU != nil {
		if _, ok := coco.Pins(); ok {
			coco.CPU = state.CPU
		}
	}

	coco.plumb()
}
