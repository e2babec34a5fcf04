package deck

// ChangeKind identifies what a Change describes.
type ChangeKind int

const (
	// ChangeEntryAdded reports a new row appearing in a zone.
	ChangeEntryAdded ChangeKind = iota

	// ChangeEntryRemoved reports a row leaving a zone.
	ChangeEntryRemoved

	// ChangeCountChanged reports a row's copy count changing.
	ChangeCountChanged

	// ChangeCleared reports the whole deck being emptied.
	ChangeCleared
)

// Change describes one deck mutation. Entry is a snapshot taken at mutation
// time: after the change for adds and count changes, just before deletion
// for removals. It is the zero Entry for ChangeCleared.
type Change struct {
	Kind  ChangeKind
	Entry Entry

	// OldCount and NewCount are set for ChangeCountChanged.
	OldCount int
	NewCount int

	// Name is the deck's name before a ChangeCleared.
	Name string
}

// Observer receives deck changes. It is called synchronously after the
// mutation's lock is released, so it may read the deck freely.
type Observer func(Change)

// SetObserver installs the change observer. A nil observer disables
// notifications. Only one observer is held; callers that need fan-out
// should bridge changes onto an event bus.
func (d *Deck) SetObserver(fn Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observer = fn
}

func (d *Deck) notify(ch Change) {
	d.mu.RLock()
	obs := d.observer
	d.mu.RUnlock()
	if obs != nil {
		obs(ch)
	}
}
