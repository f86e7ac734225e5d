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

package logger

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/jetsetilly/gophercoco/monitor/easyterm/ansi"
)

// Colorizer applies basic coloring rules to logging output. The tag of each
// entry is printed in the dim cyan pen.
type Colorizer struct {
	out io.Writer
}

// NewColorizer returns a Colorizer for the file if the file is a terminal.
// Otherwise the file is returned unchanged.
func NewColorizer(out *os.File) io.Writer {
	if !term.IsTerminal(int(out.Fd())) {
		return out
	}
	return Colorizer{out: out}
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (n int, err error) {
	s := string(p)
	tag, detail, ok := strings.Cut(s, ": ")
	if !ok {
		return c.out.Write(p)
	}

	var b strings.Builder
	b.WriteString(ansi.DimPens["cyan"])
	b.WriteString(tag)
	b.WriteString(ansi.NormalPen)
	b.WriteString(": ")
	b.WriteString(detail)

	_, err = c.out.Write([]byte(b.String()))
	if err != nil {
		return 0, err
	}
	return len(p), nil
}
