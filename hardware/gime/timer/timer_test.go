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

package timer_test

import (
	"testing"

	"github.com/jetsetilly/gophercoco/hardware/gime/timer"
	"github.com/jetsetilly/gophercoco/logger"
	"github.com/jetsetilly/gophercoco/test"
)

func run(tmr *timer.Timer, src timer.Source, ticks int) []int {
	var edges []int
	for i := 1; i <= ticks; i++ {
		if tmr.Tick(src) {
			edges = append(edges, i)
		}
	}
	return edges
}

func TestRearm(t *testing.T) {
	for _, bias := range []int{1, 2} {
		var count int
		tmr := timer.NewTimer(logger.Allow, bias, func() { count++ })

		const v = 100
		tmr.Program(v, timer.Fast)

		edges := run(tmr, timer.Fast, v+bias)
		test.ExpectEquality(t, count, 1, bias)
		test.DemandEquality(t, len(edges), 1, bias)
		test.ExpectEquality(t, edges[0], v+bias, bias)

		edges = run(tmr, timer.Fast, v+bias)
		test.ExpectEquality(t, count, 2, bias)
		test.DemandEquality(t, len(edges), 1, bias)
		test.ExpectEquality(t, edges[0], v+bias, bias)
		test.ExpectEquality(t, tmr.Count, uint64(2), bias)

		tmr.Reset()
		test.ExpectEquality(t, tmr.Count, uint64(0), bias)
	}
}

func TestNoDrift(t *testing.T) {
	tmr := timer.NewTimer(logger.Allow, 1, nil)
	tmr.Program(9, timer.Fast)

	edges := run(tmr, timer.Fast, 100)
	test.DemandEquality(t, len(edges), 10)
	for i, e := range edges {
		test.ExpectEquality(t, e, (i+1)*10)
	}
}

func TestStopped(t *testing.T) {
	var count int
	tmr := timer.NewTimer(logger.Allow, 1, func() { count++ })

	tmr.Program(0, timer.Fast)
	test.ExpectFailure(t, tmr.Running)
	run(tmr, timer.Fast, 10000)
	test.ExpectEquality(t, count, 0)

	tmr.Program(5, timer.Fast)
	test.ExpectSuccess(t, tmr.Running)
	tmr.Program(0, timer.Fast)
	run(tmr, timer.Fast, 10000)
	test.ExpectEquality(t, count, 0)
}

func TestSourceSelect(t *testing.T) {
	var count int
	tmr := timer.NewTimer(logger.Allow, 1, func() { count++ })
	tmr.Program(4, timer.HSync)

	run(tmr, timer.Fast, 1000)
	test.ExpectEquality(t, count, 0)

	run(tmr, timer.HSync, 5)
	test.ExpectEquality(t, count, 1)
}

func TestRestartMidCount(t *testing.T) {
	var count int
	tmr := timer.NewTimer(logger.Allow, 1, func() { count++ })
	tmr.Program(10, timer.Fast)

	run(tmr, timer.Fast, 8)
	test.ExpectEquality(t, count, 0)

	// no credit for elapsed ticks
	tmr.Program(10, timer.Fast)
	edges := run(tmr, timer.Fast, 11)
	test.DemandEquality(t, len(edges), 1)
	test.ExpectEquality(t, edges[0], 11)
}

func TestReloadMasked(t *testing.T) {
	tmr := timer.NewTimer(logger.Allow, 2, nil)
	tmr.Program(0xf123, timer.Fast)
	test.ExpectEquality(t, tmr.Reload, uint16(0x123))
	test.ExpectEquality(t, tmr.Remaining, 0x125)
}
