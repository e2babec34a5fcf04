package deckfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/deckforge/internal/deck"
)

// Errors returned by deck file operations.
var (
	ErrInvalidFormat      = errors.New("deck file format is invalid")
	ErrUnsupportedVersion = errors.New("deck file version is not supported")
)

// formatVersion is written into every saved file. Readers accept only
// versions they know how to interpret.
const formatVersion = 1

// Encode serializes a deck to JSON.
func Encode(d *deck.Deck) ([]byte, error) {
	out := []byte(`{}`)
	var err error

	if out, err = sjson.SetBytes(out, "version", formatVersion); err != nil {
		return nil, fmt.Errorf("encoding deck: %w", err)
	}
	if out, err = sjson.SetBytes(out, "name", d.Name()); err != nil {
		return nil, fmt.Errorf("encoding deck: %w", err)
	}
	if comments := d.Comments(); comments != "" {
		if out, err = sjson.SetBytes(out, "comments", comments); err != nil {
			return nil, fmt.Errorf("encoding deck: %w", err)
		}
	}

	for _, zone := range d.Zones() {
		for i, entry := range d.Entries(zone) {
			base := fmt.Sprintf("zones.%s.%d", zone, i)
			out, err = sjson.SetBytes(out, base+".name", entry.Card.Name)
			if err != nil {
				return nil, fmt.Errorf("encoding deck: %w", err)
			}
			out, _ = sjson.SetBytes(out, base+".count", entry.Count)
			if entry.Card.PrintingID != "" {
				out, _ = sjson.SetBytes(out, base+".printingId", entry.Card.PrintingID)
			}
			if entry.Card.CollectorNumber != "" {
				out, _ = sjson.SetBytes(out, base+".collectorNumber", entry.Card.CollectorNumber)
			}
			if entry.Card.SetCode != "" {
				out, _ = sjson.SetBytes(out, base+".setCode", entry.Card.SetCode)
			}
		}
	}

	return out, nil
}

// Decode parses JSON into a new deck.
func Decode(data []byte) (*deck.Deck, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidFormat
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, ErrInvalidFormat
	}

	if v := root.Get("version"); v.Exists() && v.Int() != formatVersion {
		return nil, fmt.Errorf("version %d: %w", v.Int(), ErrUnsupportedVersion)
	}

	d := deck.New(deck.WithName(root.Get("name").String()))
	if comments := root.Get("comments"); comments.Exists() {
		d.SetComments(comments.String())
	}

	var decodeErr error
	root.Get("zones").ForEach(func(zone, entries gjson.Result) bool {
		if !entries.IsArray() {
			decodeErr = fmt.Errorf("zone %q is not an array: %w", zone.String(), ErrInvalidFormat)
			return false
		}
		entries.ForEach(func(_, entry gjson.Result) bool {
			card := deck.Card{
				Name:            entry.Get("name").String(),
				PrintingID:      entry.Get("printingId").String(),
				CollectorNumber: entry.Get("collectorNumber").String(),
				SetCode:         entry.Get("setCode").String(),
			}
			count := int(entry.Get("count").Int())
			if count < 1 {
				count = 1
			}

			id, err := d.AddEntry(card, zone.String())
			if err != nil {
				decodeErr = fmt.Errorf("zone %q entry %q: %w", zone.String(), card.Name, err)
				return false
			}
			if count > 1 {
				if err := d.SetEntryCount(id, count); err != nil {
					decodeErr = fmt.Errorf("zone %q entry %q: %w", zone.String(), card.Name, err)
					return false
				}
			}
			return true
		})
		return decodeErr == nil
	})
	if decodeErr != nil {
		return nil, decodeErr
	}

	return d, nil
}

// Save writes a deck to path, creating parent directories as needed. The
// file is written atomically via a temp file rename.
func Save(d *deck.Deck, path string) error {
	data, err := Encode(d)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("saving deck to %s: %w", path, err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("saving deck to %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("saving deck to %s: %w", path, err)
	}
	return nil
}

// Load reads a deck from path.
func Load(path string) (*deck.Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading deck from %s: %w", path, err)
	}
	d, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("loading deck from %s: %w", path, err)
	}
	return d, nil
}
