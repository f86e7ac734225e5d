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

package modalflag

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// help writes information about the flags and sub-modes available to the
// next Parse().
func (md *Modes) help() {
	if md.Output == nil {
		return
	}

	var b strings.Builder

	var hasFlags bool
	md.flags.VisitAll(func(f *flag.Flag) {
		hasFlags = true

		typ, usage := flag.UnquoteUsage(f)
		b.WriteString("  -")
		b.WriteString(f.Name)
		if typ != "" {
			b.WriteString(" ")
			b.WriteString(typ)
		}
		b.WriteString("\n    ")
		b.WriteString(usage)
		switch f.DefValue {
		case "", "0", "false":
		default:
			fmt.Fprintf(&b, " (default %s)", f.DefValue)
		}
		b.WriteString("\n")
	})

	if !hasFlags && len(md.subModes) == 0 {
		io.WriteString(md.Output, "no help available")
		if md.Path() != "" {
			fmt.Fprintf(md.Output, " for %s mode", md.Path())
		}
		io.WriteString(md.Output, "\n")
		return
	}

	if md.Path() == "" {
		io.WriteString(md.Output, "usage:\n")
	} else {
		fmt.Fprintf(md.Output, "usage for %s mode:\n", md.Path())
	}

	io.WriteString(md.Output, b.String())

	if len(md.subModes) > 0 {
		if hasFlags {
			io.WriteString(md.Output, "\n")
		}
		fmt.Fprintf(md.Output, "  modes: %s (default %s)\n", strings.Join(md.subModes, ", "), md.subModes[0])
	}

	if md.additionalHelp != "" {
		fmt.Fprintf(md.Output, "\n%s\n", md.additionalHelp)
	}
}
