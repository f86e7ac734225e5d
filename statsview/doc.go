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

// Package statsview serves runtime statistics of the running emulator over
// HTTP. The server is only compiled in when the statsview build tag is
// present. Without the tag, Available() returns false and Launch() reports
// that the server is missing.
//
// Once launched the statistics are viewable at:
//
//	localhost:12800/debug/statsview
package statsview
