package command

import (
	"fmt"

	"github.com/dshills/deckforge/internal/deck"
)

// removedUnit records how one copy came off the deck: a full row removal or
// a count decrement. Undo needs the distinction to know whether to re-add a
// row or just increment a count.
type removedUnit struct {
	rowRemoved bool
}

// RemoveCard removes copies of a card from a zone.
//
// Removal is partial-failure tolerant: when fewer copies exist than were
// requested, the command removes what it can, succeeds as long as at least
// one copy came off, and undoes exactly that many.
type RemoveCard struct {
	base
	card  deck.Card
	zone  string
	count int

	removed  []removedUnit
	executed bool
}

// NewRemoveCard creates a command that removes count copies of card from zone.
func NewRemoveCard(doc Document, card deck.Card, zone string, count int) *RemoveCard {
	return &RemoveCard{
		base:  newBase(doc),
		card:  card,
		zone:  zone,
		count: count,
	}
}

// Execute removes up to count copies, re-resolving the row before each unit
// and recording whether the unit removed the row or decremented it. Stops
// early once no matching entry remains.
func (c *RemoveCard) Execute() error {
	if !c.IsModifying() {
		return ErrInvalidCommand
	}

	c.removed = c.removed[:0]
	for i := 0; i < c.count; i++ {
		id, ok := findWithFallback(c.doc, c.card, c.zone)
		if !ok {
			break
		}
		rowRemoved, err := removeOneUnit(c.doc, id)
		if err != nil {
			break
		}
		c.removed = append(c.removed, removedUnit{rowRemoved: rowRemoved})
	}

	if len(c.removed) == 0 {
		return fmt.Errorf("remove %s from %s: %w", c.card.Name, c.zone, ErrNothingRemoved)
	}

	c.executed = true
	return nil
}

// Undo restores the removed copies in reverse order. Reverse order matters:
// later units may have been taken from a row whose existence depended on
// earlier units still being present.
func (c *RemoveCard) Undo() error {
	if !c.executed {
		return ErrNotExecuted
	}

	for i := len(c.removed) - 1; i >= 0; i-- {
		if c.removed[i].rowRemoved {
			if _, err := c.doc.AddEntry(c.card, c.zone); err != nil {
				return fmt.Errorf("undo remove %s: %w", c.card.Name, err)
			}
			continue
		}
		if err := restoreOneUnit(c.doc, c.card, c.zone); err != nil {
			return fmt.Errorf("undo remove %s: %w", c.card.Name, err)
		}
	}

	c.removed = c.removed[:0]
	c.executed = false
	return nil
}

// ActuallyRemoved returns how many copies the last Execute took off.
func (c *RemoveCard) ActuallyRemoved() int {
	return len(c.removed)
}

// Description returns a human-readable summary.
func (c *RemoveCard) Description() string {
	if c.count == 1 {
		return fmt.Sprintf("Remove %s from %s", c.card.Name, deck.DisplayName(c.zone))
	}
	return fmt.Sprintf("Remove %dx %s from %s", c.count, c.card.Name, deck.DisplayName(c.zone))
}

// Kind returns the stable type tag.
func (c *RemoveCard) Kind() Kind {
	return KindRemoveCard
}

// IsModifying reports whether this command would change the deck.
func (c *RemoveCard) IsModifying() bool {
	return c.count > 0 && c.card.IsValid()
}

// CanMergeWith reports whether other is a recent RemoveCard for the same
// card, zone, and document.
func (c *RemoveCard) CanMergeWith(other Command) bool {
	o, ok := other.(*RemoveCard)
	if !ok {
		return false
	}
	return c.doc == o.doc &&
		c.card.Name == o.card.Name &&
		c.zone == o.zone &&
		withinMergeWindow(c, o)
}

// MergeWith absorbs other's count and removal record into this command.
func (c *RemoveCard) MergeWith(other Command) bool {
	o, ok := other.(*RemoveCard)
	if !ok || !c.CanMergeWith(other) {
		return false
	}
	c.count += o.count
	c.removed = append(c.removed, o.removed...)
	return true
}
