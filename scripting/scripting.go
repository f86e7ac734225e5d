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

package scripting

import (
	"fmt"
	"io"
	"os"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/jetsetilly/gophercoco/curated"
	"github.com/jetsetilly/gophercoco/hardware"
	"github.com/jetsetilly/gophercoco/hardware/cartridge"
	"github.com/jetsetilly/gophercoco/hardware/gime/interrupts"
	"github.com/jetsetilly/gophercoco/logger"
)

// Sentinel error returned when a script fails.
const ScriptError = "script: %v"

// Script is a Lua interpreter bound to an emulation.
type Script struct {
	coco   *hardware.CoCo3
	output io.Writer
	state  *lua.LState
}

// NewScript is the preferred method of initialisation for the Script type.
// Output from print() is written to the output argument.
func NewScript(coco *hardware.CoCo3, output io.Writer) *Script {
	scr := &Script{
		coco:   coco,
		output: output,
		state:  lua.NewState(),
	}

	funcs := map[string]lua.LGFunction{
		"peek":     scr.peek,
		"poke":     scr.poke,
		"read":     scr.read,
		"write":    scr.write,
		"step":     scr.step,
		"lines":    scr.lines,
		"ticks":    scr.ticks,
		"pending":  scr.pending,
		"asserted": scr.asserted,
		"reset":    scr.reset,
		"cart":     scr.cart,
		"save":     scr.save,
		"load":     scr.load,
		"log":      scr.log,
		"print":    scr.print,
	}
	for name, f := range funcs {
		scr.state.SetGlobal(name, scr.state.NewFunction(f))
	}

	return scr
}

// Close the interpreter. The Script cannot be used afterwards.
func (scr *Script) Close() {
	scr.state.Close()
}

// RunString executes the Lua source.
func (scr *Script) RunString(src string) error {
	if err := scr.state.DoString(src); err != nil {
		return curated.Errorf(ScriptError, err)
	}
	return nil
}

// RunFile executes the Lua source in the named file.
func (scr *Script) RunFile(filename string) error {
	if _, err := os.Stat(filename); err != nil {
		return curated.Errorf(ScriptError, err)
	}
	if err := scr.state.DoFile(filename); err != nil {
		return curated.Errorf(ScriptError, err)
	}
	logger.Logf(scr.coco.Env, "script", "finished %s", filename)
	return nil
}

func checkAddress(L *lua.LState, n int) uint16 {
	v := L.CheckInt(n)
	if v < 0 || v > 0xffff {
		L.ArgError(n, fmt.Sprintf("address out of range (%#x)", v))
	}
	return uint16(v)
}

func checkData(L *lua.LState, n int) uint8 {
	v := L.CheckInt(n)
	if v < 0 || v > 0xff {
		L.ArgError(n, fmt.Sprintf("value out of range (%#x)", v))
	}
	return uint8(v)
}

func checkLine(L *lua.LState, n int) interrupts.Line {
	switch strings.ToLower(L.CheckString(n)) {
	case "irq":
		return interrupts.IRQ
	case "firq":
		return interrupts.FIRQ
	}
	L.ArgError(n, "line must be irq or firq")
	return interrupts.IRQ
}

func (scr *Script) peek(L *lua.LState) int {
	L.Push(lua.LNumber(scr.coco.Mem.Peek(checkAddress(L, 1))))
	return 1
}

func (scr *Script) poke(L *lua.LState) int {
	scr.coco.Mem.Poke(checkAddress(L, 1), checkData(L, 2))
	return 0
}

func (scr *Script) read(L *lua.LState) int {
	L.Push(lua.LNumber(scr.coco.Read(checkAddress(L, 1))))
	return 1
}

func (scr *Script) write(L *lua.LState) int {
	scr.coco.Write(checkAddress(L, 1), checkData(L, 2))
	return 0
}

func (scr *Script) step(L *lua.LState) int {
	n := L.OptInt(1, 1)
	if n < 0 {
		L.ArgError(1, "negative step count")
	}
	scr.coco.Run(n)
	return 0
}

func (scr *Script) lines(L *lua.LState) int {
	n := L.OptInt(1, 1)
	if n < 0 {
		L.ArgError(1, "negative line count")
	}
	scr.coco.RunLines(n)
	return 0
}

func (scr *Script) ticks(L *lua.LState) int {
	L.Push(lua.LNumber(scr.coco.Ticks()))
	return 1
}

func (scr *Script) pending(L *lua.LState) int {
	L.Push(lua.LNumber(scr.coco.GIME.Interrupts.PeekPending(checkLine(L, 1))))
	return 1
}

func (scr *Script) asserted(L *lua.LState) int {
	L.Push(lua.LBool(scr.coco.GIME.Interrupts.Asserted(checkLine(L, 1))))
	return 1
}

func (scr *Script) reset(L *lua.LState) int {
	scr.coco.Reset()
	return 0
}

func (scr *Script) cart(L *lua.LState) int {
	switch strings.ToLower(L.CheckString(1)) {
	case "insert":
		filename := L.CheckString(2)
		data, err := os.ReadFile(filename)
		if err != nil {
			L.RaiseError("%v", err)
			return 0
		}
		if err := scr.coco.InsertCartridge(filename, data); err != nil {
			L.RaiseError("%v", err)
		}
	case "eject":
		if err := scr.coco.EjectCartridge(); err != nil {
			L.RaiseError("%v", err)
		}
	case "line":
		switch strings.ToLower(L.CheckString(2)) {
		case "clear":
			scr.coco.Cart.SetLine(cartridge.Clear)
		case "assert":
			scr.coco.Cart.SetLine(cartridge.Assert)
		case "q":
			scr.coco.Cart.SetLine(cartridge.Q)
		default:
			L.ArgError(2, "line must be clear, assert or q")
		}
	default:
		L.ArgError(1, "action must be insert, eject or line")
	}
	return 0
}

func (scr *Script) save(L *lua.LState) int {
	L.Push(lua.LString(scr.coco.SaveState()))
	return 1
}

func (scr *Script) load(L *lua.LState) int {
	if err := scr.coco.LoadState([]byte(L.CheckString(1))); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (scr *Script) log(L *lua.LState) int {
	logger.Log(scr.coco.Env, "script", L.CheckString(1))
	return 0
}

func (scr *Script) print(L *lua.LState) int {
	s := make([]string, L.GetTop())
	for i := range s {
		s[i] = L.Get(i + 1).String()
	}
	io.WriteString(scr.output, strings.Join(s, "\t"))
	io.WriteString(scr.output, "\n")
	return 0
}
