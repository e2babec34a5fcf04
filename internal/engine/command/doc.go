// Package command implements reversible deck-editing commands.
//
// Each command binds a Document, a card, zone parameters, and a copy count at
// construction. Execute applies the change unit by unit, recording exactly
// what happened (which rows were removed outright versus decremented), and
// Undo replays that record in reverse so the deck returns to its prior state
// even when Execute only partially succeeded.
//
// # Lookup policy
//
// Before each unit, RemoveCard and SwapCard re-resolve the target row: the
// exact printing first, then any printing of the same name in the zone. The
// fallback keeps undo working after rows are merged or reordered by count
// changes, at the cost that a different physical printing may be operated on
// when multiple printings of one card share a zone.
//
// # Merging
//
// Two commands of the same kind targeting the same document, card, and
// zone(s) merge into one history entry when created within five seconds of
// each other. Merging sums the counts and concatenates the unit records, so
// a merged command still undoes everything both originals did.
package command
