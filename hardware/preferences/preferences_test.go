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

package preferences_test

import (
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gophercoco/hardware/preferences"
	"github.com/jetsetilly/gophercoco/prefs"
	"github.com/jetsetilly/gophercoco/test"
)

func newPrefs(t *testing.T) *preferences.Preferences {
	t.Helper()
	p, err := preferences.NewPreferences(filepath.Join(t.TempDir(), prefs.DefaultPrefsFile))
	test.DemandSuccess(t, err)
	return p
}

func TestDefaults(t *testing.T) {
	p := newPrefs(t)
	l := p.Live()
	test.ExpectEquality(t, l.Revision, preferences.Revision1987)
	test.ExpectEquality(t, l.TimerBias, 1)
	test.ExpectEquality(t, l.RAM, 512*1024)
	test.ExpectEquality(t, l.TicksPerLine, 228)
	test.ExpectEquality(t, l.LinesPerFrame, 262)
	test.ExpectEquality(t, l.VBorder, 225)
	test.ExpectEquality(t, l.HBorder, 160)
	test.ExpectSuccess(t, l.CartAutostart)
}

func TestTimerBias(t *testing.T) {
	p := newPrefs(t)

	test.ExpectSuccess(t, p.Revision.Set(preferences.Revision1986))
	test.ExpectEquality(t, p.Live().TimerBias, 2)

	// explicit bias overrides the revision
	test.ExpectSuccess(t, p.TimerBias.Set(3))
	test.ExpectEquality(t, p.Live().TimerBias, 3)

	test.ExpectFailure(t, p.Revision.Set("1985"))
	test.ExpectEquality(t, p.Live().Revision, preferences.Revision1986)
}

func TestRAMMinimum(t *testing.T) {
	p := newPrefs(t)
	test.ExpectFailure(t, p.RAM.Set(64))
	test.ExpectSuccess(t, p.RAM.Set(128))
	test.ExpectEquality(t, p.Live().RAM, 128*1024)
}

func TestCommandLine(t *testing.T) {
	prefs.PushCommandLineStack("gime.revision::1986; video.vborder::200")
	defer prefs.PopCommandLineStack()

	p := newPrefs(t)
	test.ExpectEquality(t, p.Live().Revision, preferences.Revision1986)
	test.ExpectEquality(t, p.Live().VBorder, 200)
}

func TestSaveLoad(t *testing.T) {
	pth := filepath.Join(t.TempDir(), prefs.DefaultPrefsFile)

	p, err := preferences.NewPreferences(pth)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, p.HBorder.Set(100))
	test.DemandSuccess(t, p.Save())

	q, err := preferences.NewPreferences(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, q.Live().HBorder, 100)
}
