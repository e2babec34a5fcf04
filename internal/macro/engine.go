package macro

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/deckforge/internal/deck"
	"github.com/dshills/deckforge/internal/engine/command"
	"github.com/dshills/deckforge/internal/engine/history"
)

// Engine binds a Lua interpreter to a deck and its command history.
//
// Every mutation a script performs goes through the history manager, so
// macro edits merge and undo exactly like interactive ones.
type Engine struct {
	state   *State
	deck    *deck.Deck
	history *history.Manager
}

// NewEngine creates a macro engine and installs the deck module into a
// fresh sandboxed interpreter.
func NewEngine(d *deck.Deck, h *history.Manager) *Engine {
	e := &Engine{
		state:   NewState(),
		deck:    d,
		history: h,
	}
	e.state.RegisterModule("deck", e.deckModule())
	return e
}

// LoadDir executes every .lua file in dir in lexical order. A missing
// directory is not an error; a script failure aborts the load.
func (e *Engine) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading macro dir %s: %w", dir, err)
	}

	var scripts []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		scripts = append(scripts, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(scripts)

	for _, path := range scripts {
		if err := e.state.DoFile(path); err != nil {
			return fmt.Errorf("loading macro %s: %w", path, err)
		}
	}
	return nil
}

// Run executes a Lua chunk directly.
func (e *Engine) Run(code string) error {
	return e.state.DoString(code)
}

// Call invokes a macro function loaded from a script.
func (e *Engine) Call(fn string, args ...lua.LValue) ([]lua.LValue, error) {
	return e.state.Call(fn, args...)
}

// HasMacro reports whether a macro function with the name is defined.
func (e *Engine) HasMacro(name string) bool {
	return e.state.HasFunction(name)
}

// Close releases the interpreter.
func (e *Engine) Close() error {
	return e.state.Close()
}

// deckModule builds the Lua-facing API. Mutating functions follow the Lua
// convention of returning true on success or false plus a message.
func (e *Engine) deckModule() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"add_card":    e.luaAddCard,
		"remove_card": e.luaRemoveCard,
		"move_card":   e.luaMoveCard,

		"undo": e.luaUndo,
		"redo": e.luaRedo,
		"can_undo": func(L *lua.LState) int {
			L.Push(lua.LBool(e.history.CanUndo()))
			return 1
		},
		"can_redo": func(L *lua.LState) int {
			L.Push(lua.LBool(e.history.CanRedo()))
			return 1
		},
		"undo_description": func(L *lua.LState) int {
			L.Push(lua.LString(e.history.UndoDescription()))
			return 1
		},
		"redo_description": func(L *lua.LState) int {
			L.Push(lua.LString(e.history.RedoDescription()))
			return 1
		},

		"count": func(L *lua.LState) int {
			name := L.CheckString(1)
			zone := L.CheckString(2)
			L.Push(lua.LNumber(e.deck.CountInZone(name, zone)))
			return 1
		},
		"total_count": func(L *lua.LState) int {
			L.Push(lua.LNumber(e.deck.TotalCount()))
			return 1
		},
		"zones": func(L *lua.LState) int {
			tbl := L.NewTable()
			for _, zone := range e.deck.Zones() {
				tbl.Append(lua.LString(zone))
			}
			L.Push(tbl)
			return 1
		},
		"name": func(L *lua.LState) int {
			L.Push(lua.LString(e.deck.Name()))
			return 1
		},
		"set_name": func(L *lua.LState) int {
			e.deck.SetName(L.CheckString(1))
			return 0
		},
	}
}

func (e *Engine) luaAddCard(L *lua.LState) int {
	card, zone, count := checkCardArgs(L)
	return pushResult(L, e.history.Execute(command.NewAddCard(e.deck, card, zone, count)))
}

func (e *Engine) luaRemoveCard(L *lua.LState) int {
	card, zone, count := checkCardArgs(L)
	return pushResult(L, e.history.Execute(command.NewRemoveCard(e.deck, card, zone, count)))
}

func (e *Engine) luaMoveCard(L *lua.LState) int {
	name := L.CheckString(1)
	from := L.CheckString(2)
	to := L.CheckString(3)
	count := L.OptInt(4, 1)
	card := optCardDetails(L, 5, deck.Card{Name: name})
	return pushResult(L, e.history.Execute(command.NewSwapCard(e.deck, card, from, to, count)))
}

func (e *Engine) luaUndo(L *lua.LState) int {
	return pushResult(L, e.history.Undo())
}

func (e *Engine) luaRedo(L *lua.LState) int {
	return pushResult(L, e.history.Redo())
}

// checkCardArgs parses the (name, zone, count?, details?) argument shape
// shared by add_card and remove_card.
func checkCardArgs(L *lua.LState) (deck.Card, string, int) {
	name := L.CheckString(1)
	zone := L.CheckString(2)
	count := L.OptInt(3, 1)
	card := optCardDetails(L, 4, deck.Card{Name: name})
	return card, zone, count
}

// optCardDetails reads an optional printing-details table.
func optCardDetails(L *lua.LState, idx int, card deck.Card) deck.Card {
	if L.GetTop() < idx {
		return card
	}
	tbl, ok := L.Get(idx).(*lua.LTable)
	if !ok {
		return card
	}
	if v := tbl.RawGetString("printing_id"); v != lua.LNil {
		card.PrintingID = v.String()
	}
	if v := tbl.RawGetString("collector_number"); v != lua.LNil {
		card.CollectorNumber = v.String()
	}
	if v := tbl.RawGetString("set_code"); v != lua.LNil {
		card.SetCode = v.String()
	}
	return card
}

// pushResult translates a Go error into Lua's (ok, message) convention.
func pushResult(L *lua.LState, err error) int {
	if err != nil {
		L.Push(lua.LFalse)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}
