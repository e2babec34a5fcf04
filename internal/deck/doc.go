// Package deck provides the card document model for the deck editor.
//
// A Deck is a collection of entries partitioned into named zones (main deck,
// sideboard, tokens). Each entry is one row: a card identity, optionally
// pinned to a specific printing, plus a count of copies.
//
// # Handles and re-resolution
//
// Mutations return an EntryID handle for the affected row. Handles are stable
// only for the row's lifetime: decrementing a row to zero removes it, and
// re-adding the same card later produces a new row with a new handle. Code
// that acts on a deck after intervening mutations must re-resolve rows with
// FindEntry by card identity and zone rather than caching handles.
//
// # Lookup fallback
//
// FindEntry treats empty printing metadata as a wildcard. Callers first look
// up the exact printing and then retry with empty metadata, so operations
// still resolve when the exact printing has been merged away or removed.
package deck
