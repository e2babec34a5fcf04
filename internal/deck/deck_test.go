package deck

import (
	"errors"
	"testing"
)

func testCard(name string) Card {
	return Card{Name: name, PrintingID: "uuid-" + name, CollectorNumber: "1", SetCode: "TST"}
}

func TestAddEntryNewRow(t *testing.T) {
	d := New()

	id, err := d.AddEntry(testCard("Lightning Bolt"), ZoneMain)
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	count, err := d.EntryCount(id)
	if err != nil {
		t.Fatalf("EntryCount failed: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestAddEntryIncrementsExistingRow(t *testing.T) {
	d := New()
	card := testCard("Lightning Bolt")

	id1, _ := d.AddEntry(card, ZoneMain)
	id2, _ := d.AddEntry(card, ZoneMain)

	if id1 != id2 {
		t.Errorf("same printing should share a row: got %d and %d", id1, id2)
	}

	count, _ := d.EntryCount(id1)
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestAddEntrySeparateRowsPerPrinting(t *testing.T) {
	d := New()
	a := Card{Name: "Island", PrintingID: "uuid-a"}
	b := Card{Name: "Island", PrintingID: "uuid-b"}

	id1, _ := d.AddEntry(a, ZoneMain)
	id2, _ := d.AddEntry(b, ZoneMain)

	if id1 == id2 {
		t.Error("different printings should not share a row")
	}
	if len(d.Entries(ZoneMain)) != 2 {
		t.Errorf("entries = %d, want 2", len(d.Entries(ZoneMain)))
	}
}

func TestAddEntryRejectsInvalid(t *testing.T) {
	d := New()

	if _, err := d.AddEntry(Card{}, ZoneMain); !errors.Is(err, ErrInvalidCard) {
		t.Errorf("expected ErrInvalidCard, got %v", err)
	}
	if _, err := d.AddEntry(testCard("X"), ""); !errors.Is(err, ErrInvalidZone) {
		t.Errorf("expected ErrInvalidZone, got %v", err)
	}
}

func TestFindEntryExactAndFallback(t *testing.T) {
	d := New()
	card := testCard("Lightning Bolt")
	id, _ := d.AddEntry(card, ZoneMain)

	// Exact printing match
	got, ok := d.FindEntry(card.Name, ZoneMain, card.PrintingID, card.CollectorNumber)
	if !ok || got != id {
		t.Errorf("exact lookup: got (%d, %v), want (%d, true)", got, ok, id)
	}

	// Wrong printing does not match exactly
	if _, ok := d.FindEntry(card.Name, ZoneMain, "other-uuid", ""); ok {
		t.Error("exact lookup with wrong printing should fail")
	}

	// Fallback with empty printing metadata matches any printing
	got, ok = d.FindEntry(card.Name, ZoneMain, "", "")
	if !ok || got != id {
		t.Errorf("fallback lookup: got (%d, %v), want (%d, true)", got, ok, id)
	}

	// Wrong zone never matches
	if _, ok := d.FindEntry(card.Name, ZoneSide, "", ""); ok {
		t.Error("lookup in wrong zone should fail")
	}
}

func TestSetEntryCount(t *testing.T) {
	d := New()
	id, _ := d.AddEntry(testCard("Forest"), ZoneMain)

	if err := d.SetEntryCount(id, 4); err != nil {
		t.Fatalf("SetEntryCount failed: %v", err)
	}
	count, _ := d.EntryCount(id)
	if count != 4 {
		t.Errorf("count = %d, want 4", count)
	}

	if err := d.SetEntryCount(id, 0); !errors.Is(err, ErrInvalidCount) {
		t.Errorf("expected ErrInvalidCount, got %v", err)
	}
	if err := d.SetEntryCount(999, 1); !errors.Is(err, ErrUnknownEntry) {
		t.Errorf("expected ErrUnknownEntry, got %v", err)
	}
}

func TestRemoveEntry(t *testing.T) {
	d := New()
	id, _ := d.AddEntry(testCard("Forest"), ZoneMain)

	if err := d.RemoveEntry(id); err != nil {
		t.Fatalf("RemoveEntry failed: %v", err)
	}
	if _, err := d.EntryCount(id); !errors.Is(err, ErrUnknownEntry) {
		t.Errorf("expected ErrUnknownEntry after removal, got %v", err)
	}
	if err := d.RemoveEntry(id); !errors.Is(err, ErrUnknownEntry) {
		t.Errorf("double removal should fail, got %v", err)
	}
}

func TestRemovedRowGetsNewHandle(t *testing.T) {
	d := New()
	card := testCard("Forest")

	id1, _ := d.AddEntry(card, ZoneMain)
	d.RemoveEntry(id1)
	id2, _ := d.AddEntry(card, ZoneMain)

	if id1 == id2 {
		t.Error("re-added row should receive a new handle")
	}
}

func TestCountInZone(t *testing.T) {
	d := New()
	a := Card{Name: "Island", PrintingID: "uuid-a"}
	b := Card{Name: "Island", PrintingID: "uuid-b"}

	d.AddEntry(a, ZoneMain)
	d.AddEntry(a, ZoneMain)
	d.AddEntry(b, ZoneMain)
	d.AddEntry(a, ZoneSide)

	if got := d.CountInZone("Island", ZoneMain); got != 3 {
		t.Errorf("main count = %d, want 3", got)
	}
	if got := d.CountInZone("Island", ZoneSide); got != 1 {
		t.Errorf("side count = %d, want 1", got)
	}
	if got := d.TotalCount(); got != 4 {
		t.Errorf("total = %d, want 4", got)
	}
}

func TestZonesOrder(t *testing.T) {
	d := New()
	d.AddEntry(testCard("A"), "wishboard")
	d.AddEntry(testCard("B"), ZoneTokens)
	d.AddEntry(testCard("C"), ZoneMain)

	zones := d.Zones()
	want := []string{ZoneMain, ZoneTokens, "wishboard"}
	if len(zones) != len(want) {
		t.Fatalf("zones = %v, want %v", zones, want)
	}
	for i := range want {
		if zones[i] != want[i] {
			t.Errorf("zones[%d] = %q, want %q", i, zones[i], want[i])
		}
	}
}

func TestZoneRemovedWhenEmpty(t *testing.T) {
	d := New()
	id, _ := d.AddEntry(testCard("A"), ZoneSide)
	d.RemoveEntry(id)

	if len(d.Zones()) != 0 {
		t.Errorf("zones = %v, want none", d.Zones())
	}
}

func TestRevisionAdvances(t *testing.T) {
	d := New()
	before := d.Revision()
	d.AddEntry(testCard("A"), ZoneMain)
	if d.Revision() == before {
		t.Error("revision should change after mutation")
	}
}

func TestClear(t *testing.T) {
	d := New(WithName("Burn"))
	d.AddEntry(testCard("A"), ZoneMain)
	d.Clear()

	if d.TotalCount() != 0 || d.Name() != "" {
		t.Error("clear should drop rows and metadata")
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		zone string
		want string
	}{
		{ZoneMain, "main deck"},
		{ZoneSide, "sideboard"},
		{ZoneTokens, "tokens"},
		{"wishboard", "wishboard"},
	}

	for _, tt := range tests {
		if got := DisplayName(tt.zone); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.zone, got, tt.want)
		}
	}
}

func TestObserverSeesMutations(t *testing.T) {
	d := New(WithName("Burn"))
	var changes []Change
	d.SetObserver(func(ch Change) {
		changes = append(changes, ch)
	})

	id, err := d.AddEntry(testCard("A"), ZoneMain)
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	d.AddEntry(testCard("A"), ZoneMain)
	if err := d.SetEntryCount(id, 4); err != nil {
		t.Fatalf("SetEntryCount failed: %v", err)
	}
	if err := d.RemoveEntry(id); err != nil {
		t.Fatalf("RemoveEntry failed: %v", err)
	}
	d.Clear()

	want := []ChangeKind{
		ChangeEntryAdded,
		ChangeCountChanged,
		ChangeCountChanged,
		ChangeEntryRemoved,
		ChangeCleared,
	}
	if len(changes) != len(want) {
		t.Fatalf("observed %d changes, want %d", len(changes), len(want))
	}
	for i, kind := range want {
		if changes[i].Kind != kind {
			t.Fatalf("change %d kind = %v, want %v", i, changes[i].Kind, kind)
		}
	}

	if changes[0].Entry.Card.Name != "A" || changes[0].NewCount != 1 {
		t.Errorf("added change = %+v", changes[0])
	}
	if changes[1].OldCount != 1 || changes[1].NewCount != 2 {
		t.Errorf("increment change = %+v", changes[1])
	}
	if changes[2].OldCount != 2 || changes[2].NewCount != 4 {
		t.Errorf("set-count change = %+v", changes[2])
	}
	if changes[3].Entry.Zone != ZoneMain || changes[3].Entry.Count != 4 {
		t.Errorf("removed change = %+v", changes[3])
	}
	if changes[4].Name != "Burn" {
		t.Errorf("cleared change = %+v", changes[4])
	}
}

func TestObserverMayReadDeck(t *testing.T) {
	d := New()
	var total int
	d.SetObserver(func(Change) {
		total = d.TotalCount()
	})

	d.AddEntry(testCard("A"), ZoneMain)
	if total != 1 {
		t.Errorf("total read from observer = %d, want 1", total)
	}

	d.SetObserver(nil)
	d.AddEntry(testCard("A"), ZoneMain)
	if total != 1 {
		t.Error("detached observer should not fire")
	}
}
