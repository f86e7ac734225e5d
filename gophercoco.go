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

package main

import (
	"bytes"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"golang.org/x/term"

	"github.com/jetsetilly/gophercoco/curated"
	"github.com/jetsetilly/gophercoco/hardware"
	"github.com/jetsetilly/gophercoco/hardware/gime/mmu"
	"github.com/jetsetilly/gophercoco/hardware/instance"
	"github.com/jetsetilly/gophercoco/hardware/memory"
	"github.com/jetsetilly/gophercoco/logger"
	"github.com/jetsetilly/gophercoco/modalflag"
	"github.com/jetsetilly/gophercoco/monitor"
	"github.com/jetsetilly/gophercoco/monitor/easyterm"
	"github.com/jetsetilly/gophercoco/prefs"
	"github.com/jetsetilly/gophercoco/probe"
	"github.com/jetsetilly/gophercoco/scripting"
	"github.com/jetsetilly/gophercoco/statsview"
	"github.com/jetsetilly/gophercoco/version"
)

// the size of each internal ROM region. used to create blank images when no
// ROM file is given
var romSizes = [mmu.Cartridge]int{
	mmu.ExtendedBASIC:      0x2000,
	mmu.ColorBASIC:         0x2000,
	mmu.SuperExtendedBASIC: 0x4000,
}

// flags common to every mode
type common struct {
	rom  *string
	cart *string
}

func main() {
	// ctrl-c ends the program from any mode
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	exitVal := make(chan int)
	go func() {
		exitVal <- launch()
	}()

	select {
	case <-intChan:
		fmt.Println("\r")
		os.Exit(1)
	case v := <-exitVal:
		os.Exit(v)
	}
}

func launch() int {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])

	log := md.AddBool("log", false, "echo log to stdout")
	prefsStack := md.AddString("prefs", "", "preferences for this session (key::value; key::value)")
	stats := md.AddBool("statsview", false, "launch the runtime statistics server")
	ver := md.AddBool("version", false, "print version information and exit")
	c := common{
		rom:  md.AddString("rom", "", "internal ROM files: `ext,color,super`"),
		cart: md.AddString("cart", "", "cartridge ROM file"),
	}
	md.AddSubModes("RUN", "PROBE", "GRAPH", "MONITOR")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		return 10
	}

	if *ver {
		fmt.Println(version.String())
		return 0
	}

	if *log {
		logger.SetEcho(logger.NewColorizer(os.Stdout), false)
	}

	if *stats {
		statsview.Launch(os.Stdout)
	}

	if *prefsStack != "" {
		prefs.PushCommandLineStack(*prefsStack)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, c)
	case "PROBE":
		err = probeMode(md, c)
	case "GRAPH":
		err = graph(md, c)
	case "MONITOR":
		err = monitorMode(md, c)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %v\n", md, err)
		return 20
	}

	return 0
}

// loadROMs reads the comma separated list of internal ROM files. Missing
// files are replaced with blank images.
func loadROMs(list string) (memory.ROMs, error) {
	var roms memory.ROMs

	var files []string
	if list != "" {
		files = strings.Split(list, ",")
	}
	if len(files) > len(romSizes) {
		return roms, curated.Errorf("rom: too many files (%d)", len(files))
	}

	for r := range romSizes {
		if r < len(files) && strings.TrimSpace(files[r]) != "" {
			d, err := os.ReadFile(strings.TrimSpace(files[r]))
			if err != nil {
				return roms, curated.Errorf("rom: %v", err)
			}
			roms[r] = d
			continue
		}
		roms[r] = bytes.Repeat([]byte{0xff}, romSizes[r])
		logger.Logf(logger.Allow, "rom", "using blank image for %s", mmu.Region(r))
	}

	return roms, nil
}

func newMachine(c common) (*hardware.CoCo3, error) {
	roms, err := loadROMs(*c.rom)
	if err != nil {
		return nil, err
	}

	ins, err := instance.NewInstance(nil)
	if err != nil {
		return nil, err
	}

	coco, err := hardware.NewCoCo3(ins, nil, roms)
	if err != nil {
		return nil, err
	}

	if *c.cart != "" {
		d, err := os.ReadFile(*c.cart)
		if err != nil {
			return nil, curated.Errorf("cartridge: %v", err)
		}
		if err := coco.InsertCartridge(*c.cart, d); err != nil {
			return nil, err
		}
	}

	return coco, nil
}

func run(md *modalflag.Modes, c common) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("lua script required for %s mode", md)
	case 1:
		coco, err := newMachine(c)
		if err != nil {
			return err
		}

		scr := scripting.NewScript(coco, os.Stdout)
		defer scr.Close()

		return scr.RunFile(md.GetArg(0))
	}

	return fmt.Errorf("too many arguments for %s mode", md)
}

func probeMode(md *modalflag.Modes, c common) error {
	md.NewMode()

	out := md.AddString("out", "probe.wav", "WAV file to write")
	frames := md.AddInt("frames", 1, "number of frames to run if there is no script")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 1 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	coco, err := newMachine(c)
	if err != nil {
		return err
	}

	prb := probe.NewProbe(coco)

	// the script drives the machine if there is one
	if md.GetArg(0) != "" {
		scr := scripting.NewScript(coco, os.Stdout)
		defer scr.Close()
		if err := scr.RunFile(md.GetArg(0)); err != nil {
			return err
		}
	} else {
		coco.RunLines(*frames * coco.Raster.Geometry().LinesPerFrame)
	}

	prb.Detach()

	return prb.WriteFile(*out)
}

func graph(md *modalflag.Modes, c common) error {
	md.NewMode()

	out := md.AddString("out", "gime.dot", "graphviz file to write")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	coco, err := newMachine(c)
	if err != nil {
		return err
	}

	return monitor.WriteGraph(coco, *out)
}

func monitorMode(md *modalflag.Modes, c common) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	coco, err := newMachine(c)
	if err != nil {
		return err
	}

	mon := monitor.NewMonitor(coco, os.Stdin, os.Stdout)

	if term.IsTerminal(int(os.Stdin.Fd())) {
		et, err := easyterm.NewTerminal(os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
		mon.AttachTerminal(et)
	}

	return mon.Run()
}
