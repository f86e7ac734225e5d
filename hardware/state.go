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
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/gophercoco/curated"
	"github.com/jetsetilly/gophercoco/hardware/cartridge"
	"github.com/jetsetilly/gophercoco/hardware/gime"
	"github.com/jetsetilly/gophercoco/hardware/pia"
	"github.com/jetsetilly/gophercoco/hardware/video"
	"github.com/jetsetilly/gophercoco/logger"
)

// SaveState returns the state of the emulation as a flat sequence of bytes.
// The sequence starts with the GIME state and is followed by the cartridge
// flags, the PIAs, the raster position and the contents of RAM.
func (coco *CoCo3) SaveState() []byte {
	var inserted uint8
	if coco.Cart.Inserted {
		inserted = 1
	}

	b := coco.GIME.AppendState(nil)
	b = append(b, inserted, uint8(coco.Cart.Line))
	b = coco.PIA0.AppendState(b)
	b = coco.PIA1.AppendState(b)
	b = coco.Raster.AppendState(b)
	b = binary.BigEndian.AppendUint64(b, coco.ticks)
	b = binary.BigEndian.AppendUint32(b, uint32(len(coco.Mem.RAM)))
	return append(b, coco.Mem.RAM...)
}

// the number of bytes following the GIME state and preceding the RAM
const stateBodySize = 2 + pia.StateSize*2 + video.StateSize + 12

// LoadState restores the emulation from a sequence of bytes created by
// SaveState(). The size of the RAM must be the same as the RAM in the saved
// state. The whole sequence is checked before anything is restored so the
// emulation is unchanged if an error is returned. All windows are remapped
// once the state is loaded.
func (coco *CoCo3) LoadState(b []byte) error {
	if err := gime.CheckState(b); err != nil {
		return err
	}
	if len(b) < gime.StateSize+stateBodySize {
		return curated.Errorf(gime.StateError, fmt.Sprintf("too short (%d bytes)", len(b)))
	}

	body := b[gime.StateSize:]
	inserted := body[0] != 0
	line := cartridge.Line(body[1])
	if line > cartridge.Q {
		return curated.Errorf(gime.StateError, fmt.Sprintf("invalid cartridge line (%d)", line))
	}

	ram := body[stateBodySize:]
	hdr := body[stateBodySize-12 : stateBodySize]
	ticks := binary.BigEndian.Uint64(hdr)
	size := int(binary.BigEndian.Uint32(hdr[8:]))
	if size != len(coco.Mem.RAM) || len(ram) != size {
		return curated.Errorf(gime.StateError, fmt.Sprintf("RAM size mismatch (%d bytes)", size))
	}

	// the cartridge is restored first because changes to the cartridge line
	// are sent to the GIME and PIA1, both of which are restored afterwards
	coco.Cart.Restore(inserted, line)

	if _, err := coco.GIME.RestoreState(b); err != nil {
		return err
	}

	body = body[2:]
	for _, r := range []interface {
		RestoreState([]byte) (int, error)
	}{coco.PIA0, coco.PIA1, coco.Raster} {
		n, err := r.RestoreState(body)
		if err != nil {
			return curated.Errorf(gime.StateError, err)
		}
		body = body[n:]
	}

	coco.ticks = ticks
	copy(coco.Mem.RAM, ram)

	coco.Mem.RemapAll()
	coco.GIME.Interrupts.Update()

	logger.Log(coco.Env, "coco3", "state loaded")

	return nil
}
