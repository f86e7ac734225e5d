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

package gime

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/gophercoco/curated"
	"github.com/jetsetilly/gophercoco/hardware/gime/interrupts"
	"github.com/jetsetilly/gophercoco/hardware/gime/registers"
	"github.com/jetsetilly/gophercoco/hardware/gime/timer"
	"github.com/jetsetilly/gophercoco/logger"
)

// Sentinel error returned by RestoreState().
const StateError = "gime: state: %v"

const stateVersion = 1

var stateMagic = [4]byte{'G', 'I', 'M', 'E'}

// the layout of the serialised state. every field is fixed size
type state struct {
	Magic   [4]byte
	Version uint8

	Bank registers.Bank

	Sources interrupts.Source
	Pending [interrupts.NumLines]interrupts.Source

	TimerReload    uint16
	TimerFast      bool
	TimerRemaining uint32
	TimerRunning   bool
}

// StateSize is the number of bytes used by AppendState().
var StateSize = binary.Size(state{})

// AppendState appends the serialised state of the GIME to the byte slice.
func (g *GIME) AppendState(b []byte) []byte {
	s := state{
		Magic:          stateMagic,
		Version:        stateVersion,
		Bank:           *g.Bank,
		Sources:        g.Interrupts.Sources,
		Pending:        g.Interrupts.Pending,
		TimerReload:    g.Timer.Reload,
		TimerFast:      g.Timer.Source == timer.Fast,
		TimerRemaining: uint32(g.Timer.Remaining),
		TimerRunning:   g.Timer.Running,
	}

	buf := bytes.NewBuffer(b)

	// writing fixed size data to a bytes.Buffer cannot fail
	_ = binary.Write(buf, binary.BigEndian, &s)

	return buf.Bytes()
}

func decodeState(b []byte) (state, error) {
	var s state

	if len(b) < StateSize {
		return s, curated.Errorf(StateError, fmt.Sprintf("too short (%d bytes)", len(b)))
	}

	if err := binary.Read(bytes.NewReader(b[:StateSize]), binary.BigEndian, &s); err != nil {
		return s, curated.Errorf(StateError, err)
	}
	if s.Magic != stateMagic {
		return s, curated.Errorf(StateError, "not a GIME state")
	}
	if s.Version != stateVersion {
		return s, curated.Errorf(StateError, fmt.Sprintf("unsupported version (%d)", s.Version))
	}

	return s, nil
}

// CheckState returns an error if the byte slice does not start with a GIME
// state that can be restored.
func CheckState(b []byte) error {
	_, err := decodeState(b)
	return err
}

// RestoreState restores the GIME from a byte slice created by AppendState().
// Every window is remapped and the interrupt lines are recalculated. Returns
// the number of bytes consumed.
func (g *GIME) RestoreState(b []byte) (int, error) {
	s, err := decodeState(b)
	if err != nil {
		return 0, err
	}

	*g.Bank = s.Bank

	g.Interrupts.Sources = s.Sources & interrupts.AllSources
	g.Interrupts.Pending = s.Pending

	g.Timer.Reload = s.TimerReload & 0x0fff
	g.Timer.Source = timer.HSync
	if s.TimerFast {
		g.Timer.Source = timer.Fast
	}
	g.Timer.Remaining = int(s.TimerRemaining)
	g.Timer.Running = s.TimerRunning && g.Timer.Reload != 0

	g.remapAll()
	g.Interrupts.Update()

	logger.Log(g.env, "gime", "state restored")

	return StateSize, nil
}
