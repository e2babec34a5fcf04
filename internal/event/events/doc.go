// Package events defines strongly-typed event payloads for the deckforge
// event bus.
//
// Each event type has a corresponding topic constant and payload struct,
// grouped by source:
//
//   - History events: command execution, undo/redo availability and labels
//   - Deck events: entry additions, removals, count changes, load/save
//
// Publishers wrap a payload with event.NewEvent and hand it to the bus;
// subscribers match on the topic constants.
package events
