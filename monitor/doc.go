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

// Package monitor is an interactive, line based monitor for a CoCo3
// emulation. Commands are read from an io.Reader and results are written to
// an io.Writer. If the input is a terminal then an easyterm.Terminal can be
// attached, which enables the single key TRACE command.
//
// Commands are not case sensitive. Numbers are decimal unless prefixed with
// 0x or $. Type HELP for a list of commands.
package monitor
