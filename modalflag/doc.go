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

// Package modalflag wraps the flag package from the standard library and adds
// the notion of program modes. Each mode can have its own set of flags.
//
// Arguments are given to NewArgs() and then consumed by successive calls to
// Parse(). Flags and sub-modes for the next Parse() are added between calls:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	verbose := md.AddBool("verbose", false, "print additional log messages")
//	md.AddSubModes("RUN", "MONITOR")
//
//	switch r, err := md.Parse(); r {
//	case modalflag.ParseHelp:
//		return nil
//	case modalflag.ParseError:
//		return err
//	}
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		lines := md.AddInt("lines", 262, "number of scanlines to run")
//		...
//	}
//
// The first sub-mode in the list is the default. It is selected when the
// argument following the flags does not name a mode. Mode names are not case
// sensitive and are always reported in upper case.
//
// Help output is written to the Output field when the -help flag is found.
package modalflag
