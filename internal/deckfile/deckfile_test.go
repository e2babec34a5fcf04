package deckfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/dshills/deckforge/internal/deck"
)

func sampleDeck(t *testing.T) *deck.Deck {
	t.Helper()
	d := deck.New(deck.WithName("Burn"))
	d.SetComments("fast red deck")

	bolt := deck.Card{Name: "Lightning Bolt", PrintingID: "uuid-bolt", CollectorNumber: "161", SetCode: "LEA"}
	shock := deck.Card{Name: "Shock", PrintingID: "uuid-shock"}

	id, err := d.AddEntry(bolt, deck.ZoneMain)
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	if err := d.SetEntryCount(id, 4); err != nil {
		t.Fatalf("SetEntryCount failed: %v", err)
	}
	if _, err := d.AddEntry(shock, deck.ZoneMain); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	if _, err := d.AddEntry(bolt, deck.ZoneSide); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	return d
}

func TestEncodeShape(t *testing.T) {
	data, err := Encode(sampleDeck(t))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	root := gjson.ParseBytes(data)
	if got := root.Get("version").Int(); got != 1 {
		t.Errorf("version = %d, want 1", got)
	}
	if got := root.Get("name").String(); got != "Burn" {
		t.Errorf("name = %q, want Burn", got)
	}
	if got := root.Get("zones.main.#").Int(); got != 2 {
		t.Errorf("main entries = %d, want 2", got)
	}
	if got := root.Get("zones.main.0.count").Int(); got != 4 {
		t.Errorf("bolt count = %d, want 4", got)
	}
	// Empty printing metadata is omitted.
	if root.Get("zones.main.1.setCode").Exists() {
		t.Error("empty setCode should be omitted")
	}
}

func TestRoundTrip(t *testing.T) {
	original := sampleDeck(t)
	data, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	loaded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if got := loaded.Name(); got != "Burn" {
		t.Errorf("name = %q, want Burn", got)
	}
	if got := loaded.Comments(); got != "fast red deck" {
		t.Errorf("comments = %q", got)
	}
	if got := loaded.CountInZone("Lightning Bolt", deck.ZoneMain); got != 4 {
		t.Errorf("main bolt count = %d, want 4", got)
	}
	if got := loaded.CountInZone("Shock", deck.ZoneMain); got != 1 {
		t.Errorf("main shock count = %d, want 1", got)
	}
	if got := loaded.CountInZone("Lightning Bolt", deck.ZoneSide); got != 1 {
		t.Errorf("side bolt count = %d, want 1", got)
	}

	// Printing metadata survives the trip.
	id, ok := loaded.FindEntry("Lightning Bolt", deck.ZoneMain, "uuid-bolt", "161")
	if !ok {
		t.Fatal("exact printing lookup failed after load")
	}
	entry, _ := loaded.Entry(id)
	if entry.Card.SetCode != "LEA" {
		t.Errorf("setCode = %q, want LEA", entry.Card.SetCode)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"not json", "not json at all", ErrInvalidFormat},
		{"not an object", `[1,2,3]`, ErrInvalidFormat},
		{"future version", `{"version": 99, "zones": {}}`, ErrUnsupportedVersion},
		{"zone not array", `{"version": 1, "zones": {"main": {"bad": true}}}`, ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.data)); !errors.Is(err, tt.want) {
				t.Errorf("Decode error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodeRejectsNamelessEntry(t *testing.T) {
	data := `{"version": 1, "zones": {"main": [{"count": 2}]}}`
	if _, err := Decode([]byte(data)); err == nil {
		t.Error("expected an error for an entry without a name")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decks", "burn.json")

	if err := Save(sampleDeck(t), path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should not linger after save")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := loaded.TotalCount(); got != 6 {
		t.Errorf("TotalCount = %d, want 6", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
