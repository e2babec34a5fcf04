package events

import "github.com/dshills/deckforge/internal/event/topic"

// History event topics.
const (
	// TopicHistoryStateChanged is published when undo or redo availability
	// changes.
	TopicHistoryStateChanged topic.Topic = "history.state.changed"

	// TopicHistoryDescriptionsChanged is published when the undo or redo
	// action labels change.
	TopicHistoryDescriptionsChanged topic.Topic = "history.descriptions.changed"

	// TopicHistoryCommandExecuted is published after a command executes
	// successfully.
	TopicHistoryCommandExecuted topic.Topic = "history.command.executed"

	// TopicHistoryCommandUndone is published after a command is undone.
	TopicHistoryCommandUndone topic.Topic = "history.command.undone"

	// TopicHistoryCommandRedone is published after a command is redone.
	TopicHistoryCommandRedone topic.Topic = "history.command.redone"

	// TopicHistoryCleared is published when both history stacks are emptied.
	TopicHistoryCleared topic.Topic = "history.cleared"
)

// HistoryStateChanged is published when undo or redo availability changes.
type HistoryStateChanged struct {
	// CanUndo indicates whether an undo is currently possible.
	CanUndo bool

	// CanRedo indicates whether a redo is currently possible.
	CanRedo bool
}

// HistoryDescriptionsChanged is published when the action labels change.
type HistoryDescriptionsChanged struct {
	// UndoDescription labels the next undo, e.g. "Undo Add Lightning Bolt
	// to main deck". Empty when nothing can be undone.
	UndoDescription string

	// RedoDescription labels the next redo. Empty when nothing can be
	// redone.
	RedoDescription string
}

// HistoryCommandExecuted is published after a command executes successfully.
type HistoryCommandExecuted struct {
	// Description is the executed command's summary.
	Description string

	// Merged indicates the command was absorbed into the previous history
	// entry instead of forming a new one.
	Merged bool
}

// HistoryCommandUndone is published after a command is undone.
type HistoryCommandUndone struct {
	// Description is the undone command's summary.
	Description string
}

// HistoryCommandRedone is published after a command is redone.
type HistoryCommandRedone struct {
	// Description is the redone command's summary.
	Description string
}

// HistoryCleared is published when both history stacks are emptied.
type HistoryCleared struct {
	// Undone is the number of entries discarded from the undo stack.
	Undone int

	// Redone is the number of entries discarded from the redo stack.
	Redone int
}
