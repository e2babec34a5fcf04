// Package event provides the notification bus for deckforge.
//
// Components publish typed events and subscribe to hierarchical dot-notation
// topics ("history.state.changed", "deck.entry.added"). Patterns may contain
// "*" to match one segment and "**" to match any number, so a status line can
// watch "history.**" while a logger watches everything with "**".
//
// Delivery is synchronous and ordered by subscription priority. Handler
// errors and panics are counted in Stats and never propagate to the
// publisher, so a misbehaving observer cannot break an edit.
package event
