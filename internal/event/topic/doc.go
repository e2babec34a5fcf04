// Package topic provides hierarchical topic types and pattern matching for the event bus.
//
// # Topic Format
//
// Topics use dot-notation to create hierarchical namespaces:
//
//	history.state.changed
//	deck.entry.added
//	deck.saved
//
// # Wildcards
//
// Two wildcard patterns are supported:
//
//   - "*" matches exactly one segment
//   - "**" matches zero or more segments
//
// Examples:
//
//	deck.*                matches deck.saved, deck.loaded (not deck.entry.added)
//	deck.**               matches deck.saved, deck.entry.added, deck.a.b.c
//	*.changed             matches history.changed, deck.changed
//	history.*.changed     matches history.state.changed, history.descriptions.changed
//	**                    matches everything
package topic
