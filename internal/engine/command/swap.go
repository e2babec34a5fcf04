package command

import (
	"fmt"

	"github.com/dshills/deckforge/internal/deck"
)

// movedUnit records how one copy left the source zone.
type movedUnit struct {
	sourceRowRemoved bool
}

// SwapCard moves copies of a card from one zone to another.
type SwapCard struct {
	base
	card     deck.Card
	fromZone string
	toZone   string
	count    int

	moved    []movedUnit
	executed bool
}

// NewSwapCard creates a command that moves count copies of card from
// fromZone to toZone.
func NewSwapCard(doc Document, card deck.Card, fromZone, toZone string, count int) *SwapCard {
	return &SwapCard{
		base:     newBase(doc),
		card:     card,
		fromZone: fromZone,
		toZone:   toZone,
		count:    count,
	}
}

// Execute moves up to count copies, one unit at a time: take the copy off
// the source row, then add it to the destination. Stops early once no
// matching source entry remains; succeeds when at least one unit moved.
func (c *SwapCard) Execute() error {
	if c.fromZone == c.toZone {
		return ErrSameZone
	}
	if !c.IsModifying() {
		return ErrInvalidCommand
	}

	c.moved = c.moved[:0]
	for i := 0; i < c.count; i++ {
		id, ok := findWithFallback(c.doc, c.card, c.fromZone)
		if !ok {
			break
		}
		rowRemoved, err := removeOneUnit(c.doc, id)
		if err != nil {
			break
		}
		if _, err := c.doc.AddEntry(c.card, c.toZone); err != nil {
			// Put the unit back so a failed move never leaks a copy.
			_ = restoreOneUnit(c.doc, c.card, c.fromZone)
			break
		}
		c.moved = append(c.moved, movedUnit{sourceRowRemoved: rowRemoved})
	}

	if len(c.moved) == 0 {
		return fmt.Errorf("move %s from %s to %s: %w", c.card.Name, c.fromZone, c.toZone, ErrNothingMoved)
	}

	c.executed = true
	return nil
}

// Undo reverses the move in strict reverse order. For each unit the
// destination copy comes off first, then the source copy is restored;
// doing these two halves out of order would transiently misstate the total
// number of copies in flight.
func (c *SwapCard) Undo() error {
	if !c.executed {
		return ErrNotExecuted
	}

	for i := len(c.moved) - 1; i >= 0; i-- {
		if id, ok := findWithFallback(c.doc, c.card, c.toZone); ok {
			if _, err := removeOneUnit(c.doc, id); err != nil {
				return fmt.Errorf("undo move %s: %w", c.card.Name, err)
			}
		}

		if c.moved[i].sourceRowRemoved {
			if _, err := c.doc.AddEntry(c.card, c.fromZone); err != nil {
				return fmt.Errorf("undo move %s: %w", c.card.Name, err)
			}
			continue
		}
		if err := restoreOneUnit(c.doc, c.card, c.fromZone); err != nil {
			return fmt.Errorf("undo move %s: %w", c.card.Name, err)
		}
	}

	c.moved = c.moved[:0]
	c.executed = false
	return nil
}

// ActuallyMoved returns how many copies the last Execute moved.
func (c *SwapCard) ActuallyMoved() int {
	return len(c.moved)
}

// Description returns a human-readable summary.
func (c *SwapCard) Description() string {
	from := deck.DisplayName(c.fromZone)
	to := deck.DisplayName(c.toZone)
	if c.count == 1 {
		return fmt.Sprintf("Move %s from %s to %s", c.card.Name, from, to)
	}
	return fmt.Sprintf("Move %dx %s from %s to %s", c.count, c.card.Name, from, to)
}

// Kind returns the stable type tag.
func (c *SwapCard) Kind() Kind {
	return KindSwapCard
}

// IsModifying reports whether this command would change the deck.
func (c *SwapCard) IsModifying() bool {
	return c.count > 0 && c.card.IsValid() && c.fromZone != c.toZone
}

// CanMergeWith reports whether other is a recent SwapCard for the same card
// and zone pair on the same document.
func (c *SwapCard) CanMergeWith(other Command) bool {
	o, ok := other.(*SwapCard)
	if !ok {
		return false
	}
	return c.doc == o.doc &&
		c.card.Name == o.card.Name &&
		c.fromZone == o.fromZone &&
		c.toZone == o.toZone &&
		withinMergeWindow(c, o)
}

// MergeWith absorbs other's count and move record into this command.
func (c *SwapCard) MergeWith(other Command) bool {
	o, ok := other.(*SwapCard)
	if !ok || !c.CanMergeWith(other) {
		return false
	}
	c.count += o.count
	c.moved = append(c.moved, o.moved...)
	return true
}
