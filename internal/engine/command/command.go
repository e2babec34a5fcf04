package command

import (
	"errors"
	"time"

	"github.com/dshills/deckforge/internal/deck"
)

// Errors returned by command operations.
var (
	ErrInvalidCommand = errors.New("command parameters are invalid")
	ErrNotExecuted    = errors.New("command has not been executed")
	ErrSameZone       = errors.New("source and destination zones are equal")
	ErrNothingRemoved = errors.New("no matching entries to remove")
	ErrNothingMoved   = errors.New("no matching entries to move")
)

// mergeWindow bounds how far apart two commands' creation times may be for
// them to merge into one history entry. Rapid repeated gestures collapse;
// anything slower stays a separate entry.
const mergeWindow = 5 * time.Second

// Kind is a stable command type tag, independent of the Go type system.
// Used for merge-kind discrimination and diagnostics.
type Kind string

const (
	KindAddCard    Kind = "AddCard"
	KindRemoveCard Kind = "RemoveCard"
	KindSwapCard   Kind = "SwapCard"
)

// Document is the narrow deck mutation contract commands operate through.
// *deck.Deck satisfies it; tests may substitute fakes.
//
// Handles returned by AddEntry are only trusted within the same operation.
// Across operations commands re-resolve rows with FindEntry, because row
// identity is not stable under unrelated mutations.
type Document interface {
	AddEntry(card deck.Card, zone string) (deck.EntryID, error)
	FindEntry(name, zone, printingID, collectorNumber string) (deck.EntryID, bool)
	EntryCount(id deck.EntryID) (int, error)
	SetEntryCount(id deck.EntryID, count int) error
	RemoveEntry(id deck.EntryID) error
}

// Command is a reversible unit of deck work.
//
// Execute applies the command; Undo reverses exactly what Execute did,
// including partial successes. A command records whatever bookkeeping it
// needs for exact reversal during Execute.
type Command interface {
	Execute() error
	Undo() error

	// Description is a human-readable summary built from the command's
	// current parameters. Merging changes it.
	Description() string

	// Kind is the stable type tag.
	Kind() Kind

	// IsModifying reports whether executing the command would change the
	// deck at all. Non-modifying commands are skipped by the manager.
	IsModifying() bool

	// CanMergeWith reports whether other can be absorbed into this command:
	// same kind, same document, same logical subject, and created within
	// the merge window.
	CanMergeWith(other Command) bool

	// MergeWith absorbs other's quantity into this command. Only valid
	// when CanMergeWith returns true; the absorbed command is discarded.
	MergeWith(other Command) bool

	// CreatedAt is the command's immutable creation timestamp.
	CreatedAt() time.Time
}

// base carries the state shared by every command.
type base struct {
	doc       Document
	createdAt time.Time
}

func newBase(doc Document) base {
	return base{doc: doc, createdAt: time.Now()}
}

// CreatedAt returns the command's creation timestamp.
func (b base) CreatedAt() time.Time {
	return b.createdAt
}

// withinMergeWindow reports whether two commands were created close enough
// together to merge.
func withinMergeWindow(a, b Command) bool {
	d := a.CreatedAt().Sub(b.CreatedAt())
	if d < 0 {
		d = -d
	}
	return d < mergeWindow
}

// findWithFallback resolves a card's row in a zone: first the exact printing,
// then any printing of the same name. The fallback deliberately tolerates the
// exact printing having been merged away or removed by earlier mutations; see
// the package documentation for the trade-off.
func findWithFallback(doc Document, card deck.Card, zone string) (deck.EntryID, bool) {
	if id, ok := doc.FindEntry(card.Name, zone, card.PrintingID, card.CollectorNumber); ok {
		return id, true
	}
	return doc.FindEntry(card.Name, zone, "", "")
}

// removeOneUnit takes one copy off a row, removing the row when it holds the
// last copy. Reports whether the row was removed outright.
func removeOneUnit(doc Document, id deck.EntryID) (rowRemoved bool, err error) {
	count, err := doc.EntryCount(id)
	if err != nil {
		return false, err
	}
	if count > 1 {
		return false, doc.SetEntryCount(id, count-1)
	}
	return true, doc.RemoveEntry(id)
}

// restoreOneUnit puts one copy of a card back into a zone. When the row still
// exists its count is incremented; otherwise a fresh row is added.
func restoreOneUnit(doc Document, card deck.Card, zone string) error {
	if id, ok := findWithFallback(doc, card, zone); ok {
		count, err := doc.EntryCount(id)
		if err == nil {
			return doc.SetEntryCount(id, count+1)
		}
	}
	_, err := doc.AddEntry(card, zone)
	return err
}
