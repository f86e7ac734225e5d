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

// Package prefs facilitates the storage of preference values. Values are held
// in typed containers (Bool, Int, String) that can be safely read from any
// goroutine. Functions can be attached that run before and after a value is
// set.
//
// Preferences are grouped into a Disk instance, which associates each value
// with a key and a file on disk. The file is a list of "key :: value" lines.
//
// Values can also be specified on the command line using a prefs string of
// the form "key::value; key::value". The string is pushed onto the command
// line stack with PushCommandLineStack() and the values are consumed as
// preferences are added to a Disk.
package prefs
