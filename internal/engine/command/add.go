package command

import (
	"fmt"

	"github.com/dshills/deckforge/internal/deck"
)

// AddCard adds copies of a card to a zone.
type AddCard struct {
	base
	card  deck.Card
	zone  string
	count int

	// added records the row handle returned for each unit, so undo can
	// take back exactly the copies this command put in.
	added    []deck.EntryID
	executed bool
}

// NewAddCard creates a command that adds count copies of card to zone.
func NewAddCard(doc Document, card deck.Card, zone string, count int) *AddCard {
	return &AddCard{
		base:  newBase(doc),
		card:  card,
		zone:  zone,
		count: count,
	}
}

// Execute adds the copies one at a time, recording each affected row.
func (c *AddCard) Execute() error {
	if !c.IsModifying() {
		return ErrInvalidCommand
	}

	c.added = c.added[:0]
	for i := 0; i < c.count; i++ {
		id, err := c.doc.AddEntry(c.card, c.zone)
		if err != nil {
			if len(c.added) == 0 {
				return fmt.Errorf("add %s to %s: %w", c.card.Name, c.zone, err)
			}
			break
		}
		c.added = append(c.added, id)
	}

	c.executed = true
	return nil
}

// Undo removes the copies Execute added: one decrement per recorded unit,
// dropping the row when it holds the last copy.
func (c *AddCard) Undo() error {
	if !c.executed {
		return ErrNotExecuted
	}

	for i := len(c.added) - 1; i >= 0; i-- {
		id := c.added[i]
		if _, err := c.doc.EntryCount(id); err != nil {
			// Row handle went stale; re-resolve by identity.
			resolved, ok := findWithFallback(c.doc, c.card, c.zone)
			if !ok {
				continue
			}
			id = resolved
		}
		if _, err := removeOneUnit(c.doc, id); err != nil {
			return fmt.Errorf("undo add %s: %w", c.card.Name, err)
		}
	}

	c.added = c.added[:0]
	c.executed = false
	return nil
}

// Description returns a human-readable summary.
func (c *AddCard) Description() string {
	if c.count == 1 {
		return fmt.Sprintf("Add %s to %s", c.card.Name, deck.DisplayName(c.zone))
	}
	return fmt.Sprintf("Add %dx %s to %s", c.count, c.card.Name, deck.DisplayName(c.zone))
}

// Kind returns the stable type tag.
func (c *AddCard) Kind() Kind {
	return KindAddCard
}

// IsModifying reports whether this command would change the deck.
func (c *AddCard) IsModifying() bool {
	return c.count > 0 && c.card.IsValid()
}

// CanMergeWith reports whether other is a recent AddCard for the same card,
// zone, and document.
func (c *AddCard) CanMergeWith(other Command) bool {
	o, ok := other.(*AddCard)
	if !ok {
		return false
	}
	return c.doc == o.doc &&
		c.card.Name == o.card.Name &&
		c.zone == o.zone &&
		withinMergeWindow(c, o)
}

// MergeWith absorbs other's count into this command.
func (c *AddCard) MergeWith(other Command) bool {
	o, ok := other.(*AddCard)
	if !ok || !c.CanMergeWith(other) {
		return false
	}
	c.count += o.count
	c.added = append(c.added, o.added...)
	return true
}
