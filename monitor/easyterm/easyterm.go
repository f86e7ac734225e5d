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

// Package easyterm wraps "github.com/pkg/term/termios" with functions that
// have friendlier names. It switches the input terminal between canonical
// mode, for line based commands, and cbreak mode, for single key commands.
package easyterm

import (
	"os"

	"github.com/jetsetilly/gophercoco/curated"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Sentinel errors returned by NewTerminal().
const (
	NotTerminal   = "easyterm: not a terminal (%s)"
	TerminalError = "easyterm: %v"
)

// Terminal is a posix terminal.
type Terminal struct {
	input  *os.File
	output *os.File

	canAttr    unix.Termios
	cbreakAttr unix.Termios
}

// NewTerminal returns a Terminal for the input and output files. Returns an
// error if the input is not a terminal.
func NewTerminal(input, output *os.File) (*Terminal, error) {
	if input == nil || output == nil {
		return nil, curated.Errorf(TerminalError, "terminal requires input and output files")
	}
	if !term.IsTerminal(int(input.Fd())) {
		return nil, curated.Errorf(NotTerminal, input.Name())
	}

	et := &Terminal{
		input:  input,
		output: output,
	}

	if err := termios.Tcgetattr(et.input.Fd(), &et.canAttr); err != nil {
		return nil, curated.Errorf(TerminalError, err)
	}

	// cbreak attributes are the canonical attributes with line buffering and
	// echo turned off
	et.cbreakAttr = et.canAttr
	termios.Cfmakecbreak(&et.cbreakAttr)

	return et, nil
}

// CleanUp returns the terminal to the mode it was in when NewTerminal() was
// called.
func (et *Terminal) CleanUp() {
	_ = et.CanonicalMode()
}

// CanonicalMode puts the terminal into normal line editing mode.
func (et *Terminal) CanonicalMode() error {
	return termios.Tcsetattr(et.input.Fd(), termios.TCSANOW, &et.canAttr)
}

// CBreakMode puts the terminal into cbreak mode. Keys are available to be
// read as soon as they are pressed and are not echoed.
func (et *Terminal) CBreakMode() error {
	return termios.Tcsetattr(et.input.Fd(), termios.TCSANOW, &et.cbreakAttr)
}

// Flush discards any pending input.
func (et *Terminal) Flush() error {
	return termios.Tcflush(et.input.Fd(), termios.TCIFLUSH)
}

// Width returns the number of columns in the output terminal. Returns zero if
// the width cannot be determined.
func (et *Terminal) Width() int {
	w, _, err := term.GetSize(int(et.output.Fd()))
	if err != nil {
		return 0
	}
	return w
}
