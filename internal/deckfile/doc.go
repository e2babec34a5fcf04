// Package deckfile persists decks as JSON files.
//
// The format is a versioned object with the deck's name, optional comments,
// and a zones map of entry arrays. Only non-empty printing metadata is
// written, so hand-edited files stay small. Saving is atomic: the file is
// written to a temp path and renamed into place.
package deckfile
