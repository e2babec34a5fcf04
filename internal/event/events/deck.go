package events

import "github.com/dshills/deckforge/internal/event/topic"

// Deck event topics.
const (
	// TopicDeckEntryAdded is published when a new row appears in a zone.
	TopicDeckEntryAdded topic.Topic = "deck.entry.added"

	// TopicDeckEntryRemoved is published when a row leaves a zone.
	TopicDeckEntryRemoved topic.Topic = "deck.entry.removed"

	// TopicDeckEntryCountChanged is published when a row's copy count
	// changes.
	TopicDeckEntryCountChanged topic.Topic = "deck.entry.count.changed"

	// TopicDeckLoaded is published when a deck is loaded from disk.
	TopicDeckLoaded topic.Topic = "deck.loaded"

	// TopicDeckSaved is published when a deck is written to disk.
	TopicDeckSaved topic.Topic = "deck.saved"

	// TopicDeckCleared is published when all zones are emptied.
	TopicDeckCleared topic.Topic = "deck.cleared"
)

// DeckEntryAdded is published when a new row appears in a zone.
type DeckEntryAdded struct {
	// CardName is the card the row holds.
	CardName string

	// Zone is the zone the row was added to.
	Zone string

	// Count is the row's copy count.
	Count int
}

// DeckEntryRemoved is published when a row leaves a zone.
type DeckEntryRemoved struct {
	// CardName is the card the row held.
	CardName string

	// Zone is the zone the row was removed from.
	Zone string
}

// DeckEntryCountChanged is published when a row's copy count changes.
type DeckEntryCountChanged struct {
	// CardName is the card the row holds.
	CardName string

	// Zone is the row's zone.
	Zone string

	// OldCount is the copy count before the change.
	OldCount int

	// NewCount is the copy count after the change.
	NewCount int
}

// DeckLoaded is published when a deck is loaded from disk.
type DeckLoaded struct {
	// Path is the file the deck was loaded from.
	Path string

	// Name is the deck's name.
	Name string

	// TotalCount is the total number of copies across all zones.
	TotalCount int
}

// DeckSaved is published when a deck is written to disk.
type DeckSaved struct {
	// Path is the file the deck was written to.
	Path string

	// Name is the deck's name.
	Name string
}

// DeckCleared is published when all zones are emptied.
type DeckCleared struct {
	// Name is the deck's name.
	Name string
}
