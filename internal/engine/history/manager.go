package history

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dshills/deckforge/internal/engine/command"
	"github.com/dshills/deckforge/internal/event"
	"github.com/dshills/deckforge/internal/event/events"
	"github.com/dshills/deckforge/internal/event/topic"
)

// Common errors for history operations.
var (
	ErrNilCommand    = errors.New("command is nil")
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Defaults applied by NewManager.
const (
	DefaultMaxHistorySize = 100
	DefaultCleanupDelay   = 100 * time.Millisecond
)

// eventSource identifies the manager on the bus.
const eventSource = "history"

// Manager owns the undo and redo stacks for one document.
//
// Execute, Undo, and Redo are driven by a single editing goroutine; the
// mutex exists because history trimming runs on a timer goroutine. The lock
// is released while a command executes so slow commands never block
// concurrent state queries.
type Manager struct {
	mu sync.Mutex

	undoStack []command.Command
	redoStack []command.Command

	maxHistorySize int
	merging        bool

	// cleanupPending coalesces trim requests: many executes in a burst
	// arm the timer once.
	cleanupPending bool
	cleanupDelay   time.Duration

	bus event.Bus
}

// Option configures a Manager.
type Option func(*Manager)

// WithBus sets the event bus notifications are published on. Without a bus
// the manager is silent.
func WithBus(b event.Bus) Option {
	return func(m *Manager) {
		m.bus = b
	}
}

// WithMaxHistorySize sets the initial undo stack bound. Zero means
// unlimited.
func WithMaxHistorySize(n int) Option {
	return func(m *Manager) {
		if n >= 0 {
			m.maxHistorySize = n
		}
	}
}

// WithMergingEnabled sets whether rapid same-target commands collapse into
// one history entry.
func WithMergingEnabled(enabled bool) Option {
	return func(m *Manager) {
		m.merging = enabled
	}
}

// WithCleanupDelay sets how long trimming is deferred after the stack grows
// past its bound. Tests shorten it.
func WithCleanupDelay(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.cleanupDelay = d
		}
	}
}

// NewManager creates a history manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		maxHistorySize: DefaultMaxHistorySize,
		merging:        true,
		cleanupDelay:   DefaultCleanupDelay,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Execute runs a command and records it for undo.
//
// Commands that would not modify the document are discarded without
// executing. A failed command is discarded and its error returned; history
// is untouched. On success the redo stack is cleared, the command either
// merges into the top undo entry or is pushed as a new one, and trimming is
// scheduled when the stack has outgrown its bound.
func (m *Manager) Execute(cmd command.Command) error {
	if cmd == nil {
		return ErrNilCommand
	}
	if !cmd.IsModifying() {
		return nil
	}

	if err := cmd.Execute(); err != nil {
		return err
	}

	m.mu.Lock()
	m.redoStack = nil

	merged := false
	if m.merging && len(m.undoStack) > 0 {
		top := m.undoStack[len(m.undoStack)-1]
		if top.CanMergeWith(cmd) {
			merged = top.MergeWith(cmd)
		}
	}
	if !merged {
		m.undoStack = append(m.undoStack, cmd)
	}

	desc := m.undoStack[len(m.undoStack)-1].Description()
	if m.maxHistorySize > 0 && len(m.undoStack) > m.maxHistorySize {
		m.scheduleCleanupLocked()
	}
	m.mu.Unlock()

	publish(m, events.TopicHistoryCommandExecuted, events.HistoryCommandExecuted{
		Description: desc,
		Merged:      merged,
	})
	m.publishState()
	m.publishDescriptions()
	return nil
}

// Undo reverses the most recent command and moves it to the redo stack.
// When the undo itself fails the command stays on the undo stack so the
// user can retry after fixing whatever blocked it.
func (m *Manager) Undo() error {
	m.mu.Lock()
	if len(m.undoStack) == 0 {
		m.mu.Unlock()
		return ErrNothingToUndo
	}
	cmd := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	m.mu.Unlock()

	if err := cmd.Undo(); err != nil {
		m.mu.Lock()
		m.undoStack = append(m.undoStack, cmd)
		m.mu.Unlock()
		return err
	}

	m.mu.Lock()
	m.redoStack = append(m.redoStack, cmd)
	m.mu.Unlock()

	publish(m, events.TopicHistoryCommandUndone, events.HistoryCommandUndone{
		Description: cmd.Description(),
	})
	m.publishState()
	m.publishDescriptions()
	return nil
}

// Redo re-executes the most recently undone command and moves it back to
// the undo stack. A failed redo leaves the command on the redo stack.
func (m *Manager) Redo() error {
	m.mu.Lock()
	if len(m.redoStack) == 0 {
		m.mu.Unlock()
		return ErrNothingToRedo
	}
	cmd := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	m.mu.Unlock()

	if err := cmd.Execute(); err != nil {
		m.mu.Lock()
		m.redoStack = append(m.redoStack, cmd)
		m.mu.Unlock()
		return err
	}

	m.mu.Lock()
	m.undoStack = append(m.undoStack, cmd)
	m.mu.Unlock()

	publish(m, events.TopicHistoryCommandRedone, events.HistoryCommandRedone{
		Description: cmd.Description(),
	})
	m.publishState()
	m.publishDescriptions()
	return nil
}

// CanUndo reports whether an undo is available.
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undoStack) > 0
}

// CanRedo reports whether a redo is available.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redoStack) > 0
}

// UndoCount returns the number of entries on the undo stack.
func (m *Manager) UndoCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undoStack)
}

// RedoCount returns the number of entries on the redo stack.
func (m *Manager) RedoCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redoStack)
}

// UndoDescription labels the next undo action, such as "Undo Add Lightning
// Bolt to main deck". Empty when nothing can be undone.
func (m *Manager) UndoDescription() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.undoStack) == 0 {
		return ""
	}
	return "Undo " + m.undoStack[len(m.undoStack)-1].Description()
}

// RedoDescription labels the next redo action. Empty when nothing can be
// redone.
func (m *Manager) RedoDescription() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.redoStack) == 0 {
		return ""
	}
	return "Redo " + m.redoStack[len(m.redoStack)-1].Description()
}

// Clear discards both stacks. The document itself is untouched.
func (m *Manager) Clear() {
	m.mu.Lock()
	undone := len(m.undoStack)
	redone := len(m.redoStack)
	m.undoStack = nil
	m.redoStack = nil
	m.mu.Unlock()

	publish(m, events.TopicHistoryCleared, events.HistoryCleared{
		Undone: undone,
		Redone: redone,
	})
	m.publishState()
	m.publishDescriptions()
}

// SetMaxHistorySize changes the undo stack bound. Zero (or a negative
// value) means unlimited. An oversized stack is trimmed by the deferred
// cleanup, never inline.
func (m *Manager) SetMaxHistorySize(n int) {
	if n < 0 {
		n = 0
	}

	m.mu.Lock()
	m.maxHistorySize = n
	if n > 0 && len(m.undoStack) > n {
		m.scheduleCleanupLocked()
	}
	m.mu.Unlock()
}

// MaxHistorySize returns the current undo stack bound.
func (m *Manager) MaxHistorySize() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxHistorySize
}

// SetMergingEnabled toggles command merging. Commands already on the stacks
// are unaffected.
func (m *Manager) SetMergingEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.merging = enabled
}

// IsMergingEnabled reports whether command merging is on.
func (m *Manager) IsMergingEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.merging
}

// scheduleCleanupLocked arms the single-shot trim timer unless one is
// already pending. Callers hold m.mu.
func (m *Manager) scheduleCleanupLocked() {
	if m.cleanupPending {
		return
	}
	m.cleanupPending = true
	time.AfterFunc(m.cleanupDelay, m.cleanupHistory)
}

// cleanupHistory trims the undo stack to its bound. It re-checks the bound
// when it fires because the stack or the bound may have changed since the
// timer was armed.
func (m *Manager) cleanupHistory() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cleanupPending = false
	if m.maxHistorySize <= 0 {
		return
	}
	if excess := len(m.undoStack) - m.maxHistorySize; excess > 0 {
		// Oldest entries go first.
		m.undoStack = append([]command.Command(nil), m.undoStack[excess:]...)
	}
}

// publish fans an event out on the bus. Handler failures are the bus's
// concern, not the editing path's.
func publish[T any](m *Manager, tp topic.Topic, payload T) {
	if m.bus == nil {
		return
	}
	_ = m.bus.Publish(context.Background(), event.NewEvent(tp, payload, eventSource))
}

func (m *Manager) publishState() {
	publish(m, events.TopicHistoryStateChanged, events.HistoryStateChanged{
		CanUndo: m.CanUndo(),
		CanRedo: m.CanRedo(),
	})
}

func (m *Manager) publishDescriptions() {
	publish(m, events.TopicHistoryDescriptionsChanged, events.HistoryDescriptionsChanged{
		UndoDescription: m.UndoDescription(),
		RedoDescription: m.RedoDescription(),
	})
}
