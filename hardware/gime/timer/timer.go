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

// Package timer implements the periodic timer of the GIME.
//
// The timer counts down a twelve bit reload value plus a bias that depends on
// the revision of the chip. The countdown is clocked by one of two sources:
// the fast timer source or the horizontal sync. When the count elapses the
// timer interrupt source is pulsed and the countdown restarts from the stored
// reload value. The timer never stops itself. A reload value of zero stops
// the timer.
//
// Writing the reload value restarts the countdown immediately. Ticks that
// have already elapsed do not count towards the new value.
package timer

import (
	"fmt"

	"github.com/jetsetilly/gophercoco/logger"
)

// Source of the timer clock.
type Source int

// List of valid Source values.
const (
	HSync Source = iota
	Fast
)

func (s Source) String() string {
	if s == Fast {
		return "fast"
	}
	return "hsync"
}

// Timer implements the GIME timer.
type Timer struct {
	env logger.Permission

	// called when the countdown elapses
	elapsed func()

	// the most recently programmed reload value
	Reload uint16

	// the clock source for the countdown
	Source Source

	// ticks remaining before the countdown elapses
	Remaining int

	// the timer is stopped when the reload value is zero
	Running bool

	// number of times the countdown has elapsed since Reset()
	Count uint64

	// added to the reload value when the countdown restarts
	bias int
}

// NewTimer is the preferred method of initialisation of the Timer type. The
// elapsed function is called every time the countdown reaches zero.
func NewTimer(env logger.Permission, bias int, elapsed func()) *Timer {
	return &Timer{
		env:     env,
		elapsed: elapsed,
		bias:    bias,
	}
}

func (tmr *Timer) String() string {
	if !tmr.Running {
		return fmt.Sprintf("stopped reload=%03x src=%s", tmr.Reload, tmr.Source)
	}
	return fmt.Sprintf("reload=%03x remn=%d src=%s", tmr.Reload, tmr.Remaining, tmr.Source)
}

// Snapshot creates a copy of the timer. The elapsed function must be set
// with Plumb() before the copy is used.
func (tmr *Timer) Snapshot() *Timer {
	n := *tmr
	n.elapsed = nil
	return &n
}

// Plumb a new elapsed function into the timer.
func (tmr *Timer) Plumb(env logger.Permission, elapsed func()) {
	tmr.env = env
	tmr.elapsed = elapsed
}

// SetBias changes the bias for the next time the countdown restarts.
func (tmr *Timer) SetBias(bias int) {
	tmr.bias = bias
}

// Bias returns the current bias.
func (tmr *Timer) Bias() int {
	return tmr.bias
}

// Reset stops the timer.
func (tmr *Timer) Reset() {
	tmr.Reload = 0
	tmr.Source = HSync
	tmr.Remaining = 0
	tmr.Running = false
	tmr.Count = 0
}

// Program the timer with a new reload value and clock source. The countdown
// restarts from the new value.
func (tmr *Timer) Program(reload uint16, src Source) {
	tmr.Reload = reload & 0x0fff
	tmr.Source = src

	if tmr.Reload == 0 {
		if tmr.Running {
			logger.Log(tmr.env, "timer", "stopped")
		}
		tmr.Running = false
		tmr.Remaining = 0
		return
	}

	tmr.Running = true
	tmr.arm()
	logger.Logf(tmr.env, "timer", "programmed %03x+%d (%s)", tmr.Reload, tmr.bias, tmr.Source)
}

func (tmr *Timer) arm() {
	tmr.Remaining = int(tmr.Reload) + tmr.bias
	if tmr.Remaining < 1 {
		tmr.Remaining = 1
	}
}

// Tick advances the countdown by one tick of the clock source. Ticks from the
// source that is not selected are ignored. Returns true if the countdown
// elapsed.
func (tmr *Timer) Tick(src Source) bool {
	if !tmr.Running || src != tmr.Source {
		return false
	}

	tmr.Remaining--
	if tmr.Remaining > 0 {
		return false
	}

	tmr.Count++
	if tmr.elapsed != nil {
		tmr.elapsed()
	}
	tmr.arm()

	return true
}
