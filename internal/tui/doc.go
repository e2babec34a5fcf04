// Package tui renders the deck editor in the terminal.
//
// The screen is split into one pane per zone plus a status line. The
// status line tracks the command history: it always shows what undo and
// redo would do next, updating through the event bus as commands
// execute. All edits made through the UI go through the history
// manager.
package tui
