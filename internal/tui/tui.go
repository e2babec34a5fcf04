package tui

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/deckforge/internal/deck"
	"github.com/dshills/deckforge/internal/engine/command"
	"github.com/dshills/deckforge/internal/engine/history"
	"github.com/dshills/deckforge/internal/event"
	"github.com/dshills/deckforge/internal/event/events"
	"github.com/dshills/deckforge/internal/event/topic"
)

// zoneOrder fixes pane layout left to right.
var zoneOrder = []string{deck.ZoneMain, deck.ZoneSide, deck.ZoneTokens}

// UI is the terminal front end for a deck and its history.
type UI struct {
	screen  tcell.Screen
	deck    *deck.Deck
	history *history.Manager
	bus     event.Bus

	mu        sync.Mutex
	focus     int            // index into zoneOrder
	selected  map[string]int // per-zone selected row
	statusMsg string         // transient message, cleared on next render
	subs      []event.Subscription
}

// Option configures the UI.
type Option func(*UI)

// WithScreen injects a screen, used by tests to supply a simulation
// screen. When absent the UI allocates a real terminal screen.
func WithScreen(s tcell.Screen) Option {
	return func(u *UI) {
		u.screen = s
	}
}

// WithBus attaches the event bus so the status line can track history
// changes made outside the UI, such as macro edits.
func WithBus(bus event.Bus) Option {
	return func(u *UI) {
		u.bus = bus
	}
}

// NewUI creates the terminal UI.
func NewUI(d *deck.Deck, h *history.Manager, opts ...Option) (*UI, error) {
	u := &UI{
		deck:     d,
		history:  h,
		selected: make(map[string]int),
	}
	for _, opt := range opts {
		opt(u)
	}

	if u.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("creating screen: %w", err)
		}
		u.screen = screen
	}
	return u, nil
}

// Run initializes the screen and processes events until the user quits
// or the context is cancelled.
func (u *UI) Run(ctx context.Context) error {
	if err := u.screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer u.screen.Fini()

	if u.bus != nil {
		// Wake the event loop so the panes and status line refresh after
		// edits made outside the key handler, such as macros.
		refresh := func(context.Context, any) error {
			_ = u.screen.PostEvent(tcell.NewEventInterrupt(nil))
			return nil
		}
		for _, tp := range []topic.Topic{events.TopicHistoryDescriptionsChanged, "deck.**"} {
			sub, err := u.bus.SubscribeFunc(tp, refresh)
			if err != nil {
				return fmt.Errorf("subscribing to %s events: %w", tp, err)
			}
			u.subs = append(u.subs, sub)
		}
		defer func() {
			for _, s := range u.subs {
				_ = u.bus.Unsubscribe(s)
			}
		}()
	}

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = u.screen.PostEvent(tcell.NewEventInterrupt(quitSignal{}))
		case <-stop:
		}
	}()

	u.render()

	for {
		ev := u.screen.PollEvent()
		switch e := ev.(type) {
		case *tcell.EventKey:
			if u.handleKey(e) {
				return ctx.Err()
			}
		case *tcell.EventResize:
			u.screen.Sync()
		case *tcell.EventInterrupt:
			if _, quit := e.Data().(quitSignal); quit {
				return ctx.Err()
			}
		case nil:
			// Screen was finalized out from under us.
			return ctx.Err()
		}
		u.render()
	}
}

// quitSignal marks the interrupt event posted on context cancellation.
type quitSignal struct{}

// handleKey applies a key press. Returns true when the UI should exit.
func (u *UI) handleKey(e *tcell.EventKey) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.statusMsg = ""

	switch e.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyTab:
		u.focus = (u.focus + 1) % len(zoneOrder)
		return false
	case tcell.KeyUp:
		u.moveSelection(-1)
		return false
	case tcell.KeyDown:
		u.moveSelection(1)
		return false
	case tcell.KeyCtrlR:
		u.redo()
		return false
	}

	switch e.Rune() {
	case 'q':
		return true
	case 'u':
		u.undo()
	case 'r':
		u.redo()
	case '+', '=':
		u.adjustSelected(1)
	case '-':
		u.adjustSelected(-1)
	case 'd':
		u.deleteSelected()
	case 'm':
		u.moveSelected()
	}
	return false
}

// focusedEntry returns the selected entry in the focused zone.
func (u *UI) focusedEntry() (deck.Entry, bool) {
	zone := zoneOrder[u.focus]
	entries := u.deck.Entries(zone)
	if len(entries) == 0 {
		return deck.Entry{}, false
	}
	idx := u.selected[zone]
	if idx >= len(entries) {
		idx = len(entries) - 1
		u.selected[zone] = idx
	}
	return entries[idx], true
}

func (u *UI) moveSelection(delta int) {
	zone := zoneOrder[u.focus]
	entries := u.deck.Entries(zone)
	if len(entries) == 0 {
		return
	}
	idx := u.selected[zone] + delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(entries) {
		idx = len(entries) - 1
	}
	u.selected[zone] = idx
}

func (u *UI) undo() {
	if err := u.history.Undo(); err != nil {
		u.statusMsg = err.Error()
	}
}

func (u *UI) redo() {
	if err := u.history.Redo(); err != nil {
		u.statusMsg = err.Error()
	}
}

// adjustSelected adds or removes one copy of the selected card.
func (u *UI) adjustSelected(delta int) {
	entry, ok := u.focusedEntry()
	if !ok {
		return
	}
	zone := zoneOrder[u.focus]

	var cmd command.Command
	if delta > 0 {
		cmd = command.NewAddCard(u.deck, entry.Card, zone, 1)
	} else {
		cmd = command.NewRemoveCard(u.deck, entry.Card, zone, 1)
	}
	if err := u.history.Execute(cmd); err != nil {
		u.statusMsg = err.Error()
	}
}

// deleteSelected removes every copy of the selected card.
func (u *UI) deleteSelected() {
	entry, ok := u.focusedEntry()
	if !ok {
		return
	}
	zone := zoneOrder[u.focus]
	cmd := command.NewRemoveCard(u.deck, entry.Card, zone, entry.Count)
	if err := u.history.Execute(cmd); err != nil {
		u.statusMsg = err.Error()
	}
}

// moveSelected moves one copy of the selected card to the next zone.
func (u *UI) moveSelected() {
	entry, ok := u.focusedEntry()
	if !ok {
		return
	}
	from := zoneOrder[u.focus]
	to := zoneOrder[(u.focus+1)%len(zoneOrder)]
	cmd := command.NewSwapCard(u.deck, entry.Card, from, to, 1)
	if err := u.history.Execute(cmd); err != nil {
		u.statusMsg = err.Error()
	}
}
