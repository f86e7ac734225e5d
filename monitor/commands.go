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

package monitor

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/bradleyjkemp/memviz"

	"github.com/jetsetilly/gophercoco/curated"
	"github.com/jetsetilly/gophercoco/hardware"
	"github.com/jetsetilly/gophercoco/hardware/cartridge"
	"github.com/jetsetilly/gophercoco/hardware/gime/mmu"
	"github.com/jetsetilly/gophercoco/hardware/govern"
	"github.com/jetsetilly/gophercoco/hardware/memory/memorymap"
	"github.com/jetsetilly/gophercoco/logger"
	"github.com/jetsetilly/gophercoco/monitor/easyterm"
	"github.com/jetsetilly/gophercoco/scripting"
)

type command struct {
	usage string
	help  string
	exec  func(m *Monitor, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"HELP":   {"", "list commands", (*Monitor).help},
		"PEEK":   {"addr [count]", "show memory without side effects", (*Monitor).peek},
		"POKE":   {"addr value...", "change memory without side effects", (*Monitor).poke},
		"READ":   {"addr", "read memory through the bus", (*Monitor).read},
		"WRITE":  {"addr value", "write memory through the bus", (*Monitor).write},
		"STEP":   {"[ticks]", "advance by fast timer ticks", (*Monitor).step},
		"LINES":  {"[count]", "advance by scanlines", (*Monitor).lines},
		"RUN":    {"[frames]", "advance by frames", (*Monitor).run},
		"TRACE":  {"", "advance one scanline per key press (q to stop)", (*Monitor).trace},
		"REGS":   {"", "show the state of the machine", (*Monitor).regs},
		"MAP":    {"", "show the memory windows", (*Monitor).memmap},
		"RESET":  {"", "reset the machine", (*Monitor).reset},
		"CART":   {"insert file | eject | line clear|assert|q", "control the cartridge slot", (*Monitor).cart},
		"SAVE":   {"file", "save the machine state", (*Monitor).save},
		"LOAD":   {"file", "load a machine state", (*Monitor).load},
		"GRAPH":  {"file", "write a graphviz description of the GIME registers", (*Monitor).graph},
		"SCRIPT": {"file", "run a Lua script", (*Monitor).script},
		"LOG":    {"[count]", "show the most recent log entries", (*Monitor).log},
		"QUIT":   {"", "leave the monitor", (*Monitor).exit},
	}
}

// Execute a single command.
func (m *Monitor) Execute(input string) error {
	tokens := strings.Fields(input)
	if len(tokens) == 0 {
		return nil
	}

	name := strings.ToUpper(tokens[0])
	cmd, ok := commands[name]
	if !ok {
		return curated.Errorf(UnknownCommand, tokens[0])
	}

	if err := cmd.exec(m, tokens[1:]); err != nil {
		return curated.Errorf(CommandError, strings.ToLower(name), err)
	}
	return nil
}

// parseNumber accepts decimal, 0x prefixed hex and $ prefixed hex.
func parseNumber(s string, bits int) (uint64, error) {
	if strings.HasPrefix(s, "$") {
		s = "0x" + s[1:]
	}
	v, err := strconv.ParseUint(s, 0, bits)
	if err != nil {
		return 0, fmt.Errorf("invalid number (%s)", s)
	}
	return v, nil
}

func parseAddress(s string) (uint16, error) {
	v, err := parseNumber(s, 16)
	return uint16(v), err
}

func parseData(s string) (uint8, error) {
	v, err := parseNumber(s, 8)
	return uint8(v), err
}

// optCount returns the numeric argument at idx or the default value.
func optCount(args []string, idx int, def int) (int, error) {
	if len(args) <= idx {
		return def, nil
	}
	v, err := parseNumber(args[idx], 32)
	return int(v), err
}

func (m *Monitor) help(_ []string) error {
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, n := range names {
		c := commands[n]
		m.printf("%-6s %-12s %s\n", n, c.usage, c.help)
	}
	return nil
}

func (m *Monitor) peek(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("address required")
	}
	addr, err := parseAddress(args[0])
	if err != nil {
		return err
	}
	count, err := optCount(args, 1, 1)
	if err != nil {
		return err
	}

	perRow := 16
	if m.term != nil && m.term.Width() < 56 {
		perRow = 8
	}

	for i := 0; i < count; i++ {
		if i%perRow == 0 {
			if i > 0 {
				m.printf("\n")
			}
			m.printf("%04x:", addr)
		}
		m.printf(" %02x", m.coco.Mem.Peek(addr))
		addr++
	}
	m.printf("\n")

	return nil
}

func (m *Monitor) poke(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("address and value required")
	}
	addr, err := parseAddress(args[0])
	if err != nil {
		return err
	}

	for _, a := range args[1:] {
		v, err := parseData(a)
		if err != nil {
			return err
		}
		m.coco.Mem.Poke(addr, v)
		addr++
	}
	return nil
}

func (m *Monitor) read(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("address required")
	}
	addr, err := parseAddress(args[0])
	if err != nil {
		return err
	}
	m.printf("%04x: %02x\n", addr, m.coco.Read(addr))
	return nil
}

func (m *Monitor) write(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("address and value required")
	}
	addr, err := parseAddress(args[0])
	if err != nil {
		return err
	}
	v, err := parseData(args[1])
	if err != nil {
		return err
	}
	m.coco.Write(addr, v)
	return nil
}

func (m *Monitor) step(args []string) error {
	n, err := optCount(args, 0, 1)
	if err != nil {
		return err
	}
	m.coco.Run(n)
	return nil
}

func (m *Monitor) lines(args []string) error {
	n, err := optCount(args, 0, 1)
	if err != nil {
		return err
	}
	m.coco.RunLines(n)
	return nil
}

func (m *Monitor) run(args []string) error {
	frames, err := optCount(args, 0, 1)
	if err != nil {
		return err
	}

	remaining := frames * m.coco.Raster.Geometry().LinesPerFrame

	return m.coco.RunFor(func() (govern.State, error) {
		remaining--
		if remaining <= 0 {
			return govern.Ending, nil
		}
		return govern.Running, nil
	})
}

func (m *Monitor) trace(_ []string) error {
	if m.term != nil {
		if err := m.term.CBreakMode(); err != nil {
			return err
		}
		defer func() {
			_ = m.term.Flush()
			_ = m.term.CanonicalMode()
		}()
	}

	for {
		m.printf("%s%s\n", m.prompt(), m.coco.GIME.Interrupts)

		k, err := m.input.ReadByte()
		if err != nil {
			return nil
		}

		switch k {
		case 'q', 'Q', easyterm.KeyEsc, easyterm.KeyInterrupt, easyterm.KeyEOT:
			return nil
		case easyterm.KeyLineFeed, easyterm.KeyCarriageReturn, ' ':
			m.coco.RunLines(1)
		}
	}
}

func (m *Monitor) regs(_ []string) error {
	m.printf("%s\n", m.coco)
	return nil
}

func (m *Monitor) memmap(_ []string) error {
	for w := 0; w < mmu.NumWindows; w++ {
		base := mmu.Base(w)
		m.printf("%d %04x-%04x %s\n", w, base, int(base)+mmu.Size(w)-1, m.coco.Mem.Window(w))
	}
	m.printf("\n%s", memorymap.Summary())
	return nil
}

func (m *Monitor) reset(_ []string) error {
	m.coco.Reset()
	return nil
}

func (m *Monitor) cart(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("action required")
	}

	switch strings.ToUpper(args[0]) {
	case "INSERT":
		if len(args) != 2 {
			return fmt.Errorf("filename required")
		}
		data, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}
		return m.coco.InsertCartridge(args[1], data)
	case "EJECT":
		return m.coco.EjectCartridge()
	case "LINE":
		if len(args) != 2 {
			return fmt.Errorf("line state required")
		}
		switch strings.ToUpper(args[1]) {
		case "CLEAR":
			m.coco.Cart.SetLine(cartridge.Clear)
		case "ASSERT":
			m.coco.Cart.SetLine(cartridge.Assert)
		case "Q":
			m.coco.Cart.SetLine(cartridge.Q)
		default:
			return fmt.Errorf("unknown line state (%s)", args[1])
		}
		return nil
	}

	return fmt.Errorf("unknown action (%s)", args[0])
}

func (m *Monitor) save(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("filename required")
	}
	return os.WriteFile(args[0], m.coco.SaveState(), 0o644)
}

func (m *Monitor) load(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("filename required")
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	return m.coco.LoadState(b)
}

func (m *Monitor) graph(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("filename required")
	}
	return WriteGraph(m.coco, args[0])
}

// WriteGraph writes a graphviz description of the GIME register bank to the
// named file.
func WriteGraph(coco *hardware.CoCo3, filename string) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = err
		}
	}()

	memviz.Map(f, coco.GIME.Bank)
	logger.Logf(coco.Env, "monitor", "register graph written to %s", filename)

	return nil
}

func (m *Monitor) script(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("filename required")
	}
	scr := scripting.NewScript(m.coco, m.output)
	defer scr.Close()
	return scr.RunFile(args[0])
}

func (m *Monitor) log(args []string) error {
	n, err := optCount(args, 0, 10)
	if err != nil {
		return err
	}
	logger.Tail(m.output, n)
	return nil
}

func (m *Monitor) exit(_ []string) error {
	m.quit = true
	return nil
}
