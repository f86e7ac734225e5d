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

// Package probe records the interrupt lines of a running emulation as a
// WAV file. One sample is taken at the end of every scanline. Each sample has
// three channels: the IRQ line, the FIRQ line and the timer. The timer
// channel is high for any scanline during which the timer elapsed.
//
// Samples are buffered in memory and written when WriteFile() is called.
package probe

import (
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/jetsetilly/gophercoco/curated"
	"github.com/jetsetilly/gophercoco/hardware"
	"github.com/jetsetilly/gophercoco/hardware/clocks"
	"github.com/jetsetilly/gophercoco/hardware/gime/interrupts"
	"github.com/jetsetilly/gophercoco/logger"
)

// List of channels in each sample.
const (
	ChannelIRQ = iota
	ChannelFIRQ
	ChannelTimer
	NumChannels
)

// Sample values for the low and high level of a channel.
const (
	Low  = 0x00
	High = 0x7f
)

const bitDepth = 8

// the audio format field of the WAV header for uncompressed PCM
const pcmFormat = 1

// Probe samples the interrupt lines of a CoCo3.
type Probe struct {
	coco *hardware.CoCo3

	data []int

	// the timer count at the previous sample
	timerCount uint64
}

// NewProbe attaches a new probe to the emulation. Any previous scanline
// function is replaced.
func NewProbe(coco *hardware.CoCo3) *Probe {
	p := &Probe{
		coco:       coco,
		timerCount: coco.GIME.Timer.Count,
	}
	coco.OnScanline(p.sample)
	return p
}

// Detach the probe from the emulation. Samples already taken are kept.
func (p *Probe) Detach() {
	p.coco.OnScanline(nil)
}

func level(v bool) int {
	if v {
		return High
	}
	return Low
}

func (p *Probe) sample(_ int) {
	c := p.coco.GIME.Interrupts
	count := p.coco.GIME.Timer.Count

	p.data = append(p.data,
		level(c.Asserted(interrupts.IRQ)),
		level(c.Asserted(interrupts.FIRQ)),
		level(count != p.timerCount),
	)

	p.timerCount = count
}

// Samples returns the number of samples taken.
func (p *Probe) Samples() int {
	return len(p.data) / NumChannels
}

// Channel returns every sample for the channel.
func (p *Probe) Channel(channel int) []int {
	s := make([]int, 0, p.Samples())
	for i := channel; i < len(p.data); i += NumChannels {
		s = append(s, p.data[i])
	}
	return s
}

// SampleRate is the number of scanlines per second.
func (p *Probe) SampleRate() int {
	return int(clocks.HSync(p.coco.Raster.Geometry().TicksPerLine) * 1000000)
}

// Write the samples in WAV format.
func (p *Probe) Write(w io.WriteSeeker) error {
	enc := wav.NewEncoder(w, p.SampleRate(), bitDepth, NumChannels, pcmFormat)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: NumChannels,
			SampleRate:  p.SampleRate(),
		},
		Data:           p.data,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return curated.Errorf("probe: %v", err)
	}
	if err := enc.Close(); err != nil {
		return curated.Errorf("probe: %v", err)
	}

	return nil
}

// WriteFile writes the samples to the named file in WAV format.
func (p *Probe) WriteFile(filename string) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf("probe: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf("probe: %v", err)
		}
	}()

	logger.Logf(p.coco.Env, "probe", "writing %d samples to %s", p.Samples(), filename)

	return p.Write(f)
}
