// Package history provides undo/redo management for deck editing.
//
// The Manager keeps two LIFO stacks of executed commands. Execute pushes
// onto the undo stack and clears the redo stack; Undo moves the top command
// to the redo stack after reversing it; Redo re-executes and moves it back.
// A command whose Undo or re-Execute fails stays on its stack so the
// operation can be retried.
//
// Rapid commands against the same card and zone merge into a single history
// entry, so clicking "+1" four times undoes as one "Add 4x" step. Merging
// can be disabled per manager.
//
// The undo stack is bounded. Trimming never happens inline on the editing
// path: growing past the bound arms a short single-shot timer, bursts of
// edits coalesce into one trim, and the trim re-checks the bound when it
// fires because configuration may have changed in the meantime.
//
// State transitions are announced on the event bus under the "history."
// topic prefix.
package history
