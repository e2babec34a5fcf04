package deck

import (
	"errors"
	"sort"
	"sync"
)

// Errors returned by deck operations.
var (
	ErrInvalidCard   = errors.New("invalid card")
	ErrInvalidZone   = errors.New("invalid zone")
	ErrInvalidCount  = errors.New("count must be positive")
	ErrUnknownEntry  = errors.New("unknown entry")
	ErrEntryNotFound = errors.New("entry not found")
)

// EntryID is a stable handle to a deck row. It remains valid until the row is
// removed; a row removed and later re-added receives a new id.
type EntryID int64

// Entry is a read-only snapshot of one deck row.
type Entry struct {
	ID    EntryID
	Card  Card
	Zone  string
	Count int
}

// row is the mutable backing store for an entry.
type row struct {
	id    EntryID
	card  Card
	zone  string
	count int
}

// Deck is a card document partitioned into named zones. Each zone holds rows
// of (card, count). All methods are thread-safe.
//
// Row identity is not structural: rows are merged and removed as counts
// change, so callers that need to re-locate an entry after unrelated
// mutations must re-resolve it with FindEntry rather than caching an EntryID.
type Deck struct {
	mu       sync.RWMutex
	name     string
	comments string
	zones    map[string][]*row
	byID     map[EntryID]*row
	nextID   EntryID
	revision uint64
	observer Observer
}

// Option configures a Deck.
type Option func(*Deck)

// WithName sets the deck's name.
func WithName(name string) Option {
	return func(d *Deck) {
		d.name = name
	}
}

// New creates an empty deck.
func New(opts ...Option) *Deck {
	d := &Deck{
		zones:  make(map[string][]*row),
		byID:   make(map[EntryID]*row),
		nextID: 1,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name returns the deck's name.
func (d *Deck) Name() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.name
}

// SetName sets the deck's name.
func (d *Deck) SetName(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.name = name
	d.revision++
}

// Comments returns the deck's free-form comments.
func (d *Deck) Comments() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.comments
}

// SetComments sets the deck's free-form comments.
func (d *Deck) SetComments(comments string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.comments = comments
	d.revision++
}

// AddEntry adds one copy of card to zone. If a row for the same printing
// already exists in the zone its count is incremented; otherwise a new row
// with count 1 is appended. Returns the handle of the affected row.
func (d *Deck) AddEntry(card Card, zone string) (EntryID, error) {
	if !card.IsValid() {
		return 0, ErrInvalidCard
	}
	if zone == "" {
		return 0, ErrInvalidZone
	}

	d.mu.Lock()
	for _, r := range d.zones[zone] {
		if r.card.SamePrinting(card) {
			r.count++
			d.revision++
			ch := Change{
				Kind:     ChangeCountChanged,
				Entry:    r.snapshot(),
				OldCount: r.count - 1,
				NewCount: r.count,
			}
			d.mu.Unlock()
			d.notify(ch)
			return ch.Entry.ID, nil
		}
	}

	r := &row{
		id:    d.nextID,
		card:  card,
		zone:  zone,
		count: 1,
	}
	d.nextID++
	d.zones[zone] = append(d.zones[zone], r)
	d.byID[r.id] = r
	d.revision++
	ch := Change{Kind: ChangeEntryAdded, Entry: r.snapshot(), NewCount: 1}
	d.mu.Unlock()

	d.notify(ch)
	return ch.Entry.ID, nil
}

// FindEntry locates a row by card name within a zone. A non-empty printingID
// or collectorNumber narrows the match to that exact printing; empty values
// match any printing, which is the fallback path callers use when the exact
// printing is no longer present.
func (d *Deck) FindEntry(name, zone, printingID, collectorNumber string) (EntryID, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, r := range d.zones[zone] {
		if r.card.Name != name {
			continue
		}
		if printingID != "" && r.card.PrintingID != printingID {
			continue
		}
		if collectorNumber != "" && r.card.CollectorNumber != collectorNumber {
			continue
		}
		return r.id, true
	}
	return 0, false
}

// EntryCount returns the copy count of the given row.
func (d *Deck) EntryCount(id EntryID) (int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	r, ok := d.byID[id]
	if !ok {
		return 0, ErrUnknownEntry
	}
	return r.count, nil
}

// SetEntryCount sets the copy count of the given row. The count must be
// positive; use RemoveEntry to drop a row entirely.
func (d *Deck) SetEntryCount(id EntryID, count int) error {
	if count <= 0 {
		return ErrInvalidCount
	}

	d.mu.Lock()
	r, ok := d.byID[id]
	if !ok {
		d.mu.Unlock()
		return ErrUnknownEntry
	}
	old := r.count
	r.count = count
	d.revision++
	ch := Change{
		Kind:     ChangeCountChanged,
		Entry:    r.snapshot(),
		OldCount: old,
		NewCount: count,
	}
	d.mu.Unlock()

	d.notify(ch)
	return nil
}

// RemoveEntry removes a row from its zone. The handle becomes invalid.
func (d *Deck) RemoveEntry(id EntryID) error {
	d.mu.Lock()
	r, ok := d.byID[id]
	if !ok {
		d.mu.Unlock()
		return ErrUnknownEntry
	}
	ch := Change{Kind: ChangeEntryRemoved, Entry: r.snapshot()}

	rows := d.zones[r.zone]
	for i, candidate := range rows {
		if candidate.id == id {
			d.zones[r.zone] = append(rows[:i], rows[i+1:]...)
			break
		}
	}
	if len(d.zones[r.zone]) == 0 {
		delete(d.zones, r.zone)
	}
	delete(d.byID, id)
	d.revision++
	d.mu.Unlock()

	d.notify(ch)
	return nil
}

// Entry returns a snapshot of the given row.
func (d *Deck) Entry(id EntryID) (Entry, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	r, ok := d.byID[id]
	if !ok {
		return Entry{}, false
	}
	return r.snapshot(), true
}

// Entries returns snapshots of all rows in a zone, in insertion order.
func (d *Deck) Entries(zone string) []Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rows := d.zones[zone]
	if len(rows) == 0 {
		return nil
	}
	entries := make([]Entry, len(rows))
	for i, r := range rows {
		entries[i] = r.snapshot()
	}
	return entries
}

// Zones returns the non-empty zone identifiers, well-known zones first.
func (d *Deck) Zones() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var known, extra []string
	for _, z := range zoneOrder {
		if len(d.zones[z]) > 0 {
			known = append(known, z)
		}
	}
	for z, rows := range d.zones {
		if len(rows) == 0 || isKnownZone(z) {
			continue
		}
		extra = append(extra, z)
	}
	sort.Strings(extra)
	return append(known, extra...)
}

// CountInZone returns the total number of copies of a card (across all
// printings) in a zone.
func (d *Deck) CountInZone(name, zone string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	total := 0
	for _, r := range d.zones[zone] {
		if r.card.Name == name {
			total += r.count
		}
	}
	return total
}

// TotalCount returns the total number of copies in the deck.
func (d *Deck) TotalCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	total := 0
	for _, rows := range d.zones {
		for _, r := range rows {
			total += r.count
		}
	}
	return total
}

// Revision returns a counter that changes on every mutation. Useful for
// cheap dirty-checking by UIs.
func (d *Deck) Revision() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.revision
}

// Clear removes all rows and metadata, invalidating every handle.
func (d *Deck) Clear() {
	d.mu.Lock()
	ch := Change{Kind: ChangeCleared, Name: d.name}
	d.zones = make(map[string][]*row)
	d.byID = make(map[EntryID]*row)
	d.name = ""
	d.comments = ""
	d.revision++
	d.mu.Unlock()

	d.notify(ch)
}

func (r *row) snapshot() Entry {
	return Entry{
		ID:    r.id,
		Card:  r.card,
		Zone:  r.zone,
		Count: r.count,
	}
}

func isKnownZone(zone string) bool {
	for _, z := range zoneOrder {
		if z == zone {
			return true
		}
	}
	return false
}
