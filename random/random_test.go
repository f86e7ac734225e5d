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

package random_test

import (
	"bytes"
	"testing"

	"github.com/jetsetilly/gophercoco/random"
	"github.com/jetsetilly/gophercoco/test"
)

type clock uint64

func (c clock) Ticks() uint64 {
	return uint64(c)
}

func TestRandom(t *testing.T) {
	a := random.NewRandom(clock(1000))
	b := random.NewRandom(clock(1000))
	a.ZeroSeed = true
	b.ZeroSeed = true

	for i := 1; i < 256; i++ {
		test.ExpectEquality(t, a.Intn(i), b.Intn(i))
	}
}

func TestFill(t *testing.T) {
	a := random.NewRandom(nil)
	b := random.NewRandom(nil)
	a.ZeroSeed = true
	b.ZeroSeed = true

	x := make([]byte, 64)
	y := make([]byte, 64)
	a.Fill(x)
	b.Fill(y)
	test.ExpectSuccess(t, bytes.Equal(x, y))
}
