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

package monitor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jetsetilly/gophercoco/hardware"
	"github.com/jetsetilly/gophercoco/monitor/easyterm"
	"github.com/jetsetilly/gophercoco/monitor/easyterm/ansi"
)

// Sentinel errors returned by Execute().
const (
	UnknownCommand = "monitor: unknown command (%s)"
	CommandError   = "monitor: %s: %v"
)

// Monitor reads and executes commands.
type Monitor struct {
	coco *hardware.CoCo3

	input  *bufio.Reader
	output io.Writer

	// nil if the input is not a terminal
	term *easyterm.Terminal

	quit bool
}

// NewMonitor is the preferred method of initialisation for the Monitor type.
func NewMonitor(coco *hardware.CoCo3, input io.Reader, output io.Writer) *Monitor {
	return &Monitor{
		coco:   coco,
		input:  bufio.NewReader(input),
		output: output,
	}
}

// AttachTerminal should be called if the input of the monitor is a terminal.
func (m *Monitor) AttachTerminal(term *easyterm.Terminal) {
	m.term = term
}

func (m *Monitor) printf(format string, a ...any) {
	fmt.Fprintf(m.output, format, a...)
}

func (m *Monitor) printError(err error) {
	if m.term != nil {
		m.printf("%s* %v%s\n", ansi.Pens["red"], err, ansi.NormalPen)
		return
	}
	m.printf("* %v\n", err)
}

func (m *Monitor) prompt() string {
	r := m.coco.Raster
	return fmt.Sprintf("[%d:%03d:%03d] > ", r.Frame, r.Line, r.Tick)
}

// Run reads and executes commands until the QUIT command or the end of the
// input. Errors from commands are printed and do not stop the monitor.
func (m *Monitor) Run() error {
	if m.term != nil {
		defer m.term.CleanUp()
		if err := m.term.CanonicalMode(); err != nil {
			return err
		}
	}

	for !m.quit {
		m.printf("%s", m.prompt())

		s, err := m.input.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}

		if cmd := strings.TrimSpace(s); cmd != "" {
			if err := m.Execute(cmd); err != nil {
				m.printError(err)
			}
		}

		if errors.Is(err, io.EOF) {
			if !m.quit {
				m.printf("\n")
			}
			return nil
		}
	}

	return nil
}

// Quit returns true if the QUIT command has been executed.
func (m *Monitor) Quit() bool {
	return m.quit
}
