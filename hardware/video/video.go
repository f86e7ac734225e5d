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

// Package video implements the raster counter of the CoCo 3. It is not a
// renderer. It produces the sync and border signals that feed the timer, the
// interrupt sources of the GIME and the sync inputs of PIA0.
//
// The raster advances one tick for every tick of the fast timer source. All
// geometry is in fast timer ticks and scanlines and is taken from the
// preferences.
package video

import (
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/gophercoco/curated"
	"github.com/jetsetilly/gophercoco/hardware/preferences"
)

// Sentinel error returned by RestoreState().
const StateError = "video: state: %v"

// Listener receives the signals produced by the raster.
type Listener interface {
	// end of every scanline
	HSync()

	// the horizontal border starts part way through a line and ends with
	// the line
	HBorder(level bool)

	// the vertical border starts at the start of the border line and ends
	// at the start of the next frame. the field sync follows the vertical
	// border
	VBorder(level bool)
}

// Geometry of the raster.
type Geometry struct {
	TicksPerLine  int
	LinesPerFrame int
	VBorder       int
	HBorder       int
}

// GeometryFromPrefs returns the raster geometry from the live preferences.
func GeometryFromPrefs(l preferences.Live) Geometry {
	return Geometry{
		TicksPerLine:  l.TicksPerLine,
		LinesPerFrame: l.LinesPerFrame,
		VBorder:       l.VBorder,
		HBorder:       l.HBorder,
	}
}

// Raster is the raster counter.
type Raster struct {
	geom     Geometry
	listener Listener

	Frame int
	Line  int
	Tick  int

	hborder bool
	vborder bool
}

// NewRaster is the preferred method of initialisation for the Raster type.
func NewRaster(geom Geometry, listener Listener) *Raster {
	r := &Raster{
		listener: listener,
	}
	r.SetGeometry(geom)
	return r
}

func (r *Raster) String() string {
	return fmt.Sprintf("frame=%d line=%d tick=%d", r.Frame, r.Line, r.Tick)
}

// Snapshot creates a copy of the raster. The copy has no listener until
// Plumb() is called.
func (r *Raster) Snapshot() *Raster {
	n := *r
	n.listener = nil
	return &n
}

// Plumb a new listener into the raster.
func (r *Raster) Plumb(listener Listener) {
	r.listener = listener
}

// SetGeometry changes the geometry of the raster. Values that would stop the
// raster from advancing are ignored.
func (r *Raster) SetGeometry(geom Geometry) {
	if geom.TicksPerLine < 1 {
		geom.TicksPerLine = r.geom.TicksPerLine
	}
	if geom.LinesPerFrame < 1 {
		geom.LinesPerFrame = r.geom.LinesPerFrame
	}
	r.geom = geom
}

// Geometry returns the current geometry.
func (r *Raster) Geometry() Geometry {
	return r.geom
}

// Reset the raster to the top of the frame.
func (r *Raster) Reset() {
	r.Frame = 0
	r.Line = 0
	r.Tick = 0
	r.setHBorder(false)
	r.setVBorder(false)
}

// IsBorder returns the levels of the horizontal and vertical border signals.
func (r *Raster) IsBorder() (bool, bool) {
	return r.hborder, r.vborder
}

func (r *Raster) setHBorder(v bool) {
	if r.hborder == v {
		return
	}
	r.hborder = v
	if r.listener != nil {
		r.listener.HBorder(v)
	}
}

func (r *Raster) setVBorder(v bool) {
	if r.vborder == v {
		return
	}
	r.vborder = v
	if r.listener != nil {
		r.listener.VBorder(v)
	}
}

// Step advances the raster by one tick. Returns true if a new scanline has
// started.
func (r *Raster) Step() bool {
	r.Tick++

	if r.Tick == r.geom.HBorder {
		r.setHBorder(true)
	}

	if r.Tick < r.geom.TicksPerLine {
		return false
	}

	r.Tick = 0
	r.setHBorder(false)
	if r.listener != nil {
		r.listener.HSync()
	}

	r.Line++
	if r.Line >= r.geom.LinesPerFrame {
		r.Line = 0
		r.Frame++
		r.setVBorder(false)
	}
	if r.Line == r.geom.VBorder {
		r.setVBorder(true)
	}

	return true
}

// StateSize is the number of bytes used by AppendState().
const StateSize = 14

// AppendState appends the raster position to the byte slice.
func (r *Raster) AppendState(b []byte) []byte {
	b = binary.BigEndian.AppendUint32(b, uint32(r.Frame))
	b = binary.BigEndian.AppendUint32(b, uint32(r.Line))
	b = binary.BigEndian.AppendUint32(b, uint32(r.Tick))
	var hb, vb uint8
	if r.hborder {
		hb = 1
	}
	if r.vborder {
		vb = 1
	}
	return append(b, hb, vb)
}

// RestoreState restores the raster position from a byte slice created by
// AppendState(). The listener is not told about the border levels.
func (r *Raster) RestoreState(b []byte) (int, error) {
	if len(b) < StateSize {
		return 0, curated.Errorf(StateError, fmt.Sprintf("too short (%d bytes)", len(b)))
	}
	r.Frame = int(binary.BigEndian.Uint32(b[0:]))
	r.Line = int(binary.BigEndian.Uint32(b[4:]))
	r.Tick = int(binary.BigEndian.Uint32(b[8:]))
	r.hborder = b[12] != 0
	r.vborder = b[13] != 0
	return StateSize, nil
}
