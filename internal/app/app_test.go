package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/deckforge/internal/deck"
	"github.com/dshills/deckforge/internal/deckfile"
	"github.com/dshills/deckforge/internal/engine/command"
	"github.com/dshills/deckforge/internal/event"
	"github.com/dshills/deckforge/internal/event/events"
)

func newApp(t *testing.T, opts Options) *Application {
	t.Helper()
	if opts.ConfigDir == "" {
		opts.ConfigDir = t.TempDir()
	}
	opts.Headless = true
	opts.LogLevel = "error"

	app, err := New(opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return app
}

func writeDeck(t *testing.T, path string) {
	t.Helper()
	d := deck.New(deck.WithName("Burn"))
	bolt := deck.Card{Name: "Lightning Bolt"}
	id, err := d.AddEntry(bolt, deck.ZoneMain)
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	if err := d.SetEntryCount(id, 4); err != nil {
		t.Fatalf("SetEntryCount failed: %v", err)
	}
	if err := deckfile.Save(d, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
}

func TestBootstrapDefaults(t *testing.T) {
	app := newApp(t, Options{})

	if app.EventBus() == nil {
		t.Error("event bus should be initialized")
	}
	if app.Deck() == nil {
		t.Error("deck should be initialized")
	}
	if got := app.History().MaxHistorySize(); got != 100 {
		t.Errorf("history max size = %d, want the configured default 100", got)
	}
	if !app.History().IsMergingEnabled() {
		t.Error("merging should default to enabled")
	}
	if app.Macros() == nil {
		t.Error("macro engine should be enabled by default")
	}
}

func TestConfigOverridesHistory(t *testing.T) {
	dir := t.TempDir()
	settings := `
[history]
maxSize = 10
merging = false

[macros]
enabled = false
`
	if err := os.WriteFile(filepath.Join(dir, "settings.toml"), []byte(settings), 0o644); err != nil {
		t.Fatalf("writing settings: %v", err)
	}

	app := newApp(t, Options{ConfigDir: dir})

	if got := app.History().MaxHistorySize(); got != 10 {
		t.Errorf("history max size = %d, want 10", got)
	}
	if app.History().IsMergingEnabled() {
		t.Error("merging should be disabled")
	}
	if app.Macros() != nil {
		t.Error("macro engine should be disabled")
	}
}

func TestConfigLogLevelApplies(t *testing.T) {
	dir := t.TempDir()
	settings := "[logging]\nlevel = 'debug'\n"
	if err := os.WriteFile(filepath.Join(dir, "settings.toml"), []byte(settings), 0o644); err != nil {
		t.Fatalf("writing settings: %v", err)
	}

	// No LogLevel option set, so the config file decides.
	app, err := New(Options{ConfigDir: dir, Headless: true})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := app.logger.level; got != LogLevelDebug {
		t.Errorf("logger level = %v, want debug", got)
	}

	// An explicit option still wins over the file.
	app, err = New(Options{ConfigDir: dir, Headless: true, LogLevel: "error"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := app.logger.level; got != LogLevelError {
		t.Errorf("logger level = %v, want error", got)
	}
}

func TestStartupDeckLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "burn.json")
	writeDeck(t, path)

	app := newApp(t, Options{DeckPath: path})

	if got := app.Deck().Name(); got != "Burn" {
		t.Errorf("deck name = %q, want Burn", got)
	}
	if got := app.Deck().CountInZone("Lightning Bolt", deck.ZoneMain); got != 4 {
		t.Errorf("count = %d, want 4", got)
	}
}

func TestStartupMissingDeckGetsFreshOne(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.json")

	app := newApp(t, Options{DeckPath: path})

	if got := app.Deck().TotalCount(); got != 0 {
		t.Errorf("fresh deck should be empty, got %d cards", got)
	}
}

func TestStartupCorruptDeckFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	_, err := New(Options{ConfigDir: t.TempDir(), DeckPath: path, Headless: true})
	var initErr *InitError
	if !errors.As(err, &initErr) {
		t.Fatalf("expected InitError, got %v", err)
	}
	if initErr.Component != "deck" {
		t.Errorf("component = %q, want deck", initErr.Component)
	}
}

func TestSaveAndLoadClearHistory(t *testing.T) {
	app := newApp(t, Options{})
	path := filepath.Join(t.TempDir(), "deck.json")

	bolt := deck.Card{Name: "Lightning Bolt"}
	if err := app.History().Execute(command.NewAddCard(app.Deck(), bolt, deck.ZoneMain, 4)); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if err := app.SaveDeck(path); err != nil {
		t.Fatalf("SaveDeck failed: %v", err)
	}

	if err := app.LoadDeck(path); err != nil {
		t.Fatalf("LoadDeck failed: %v", err)
	}
	if got := app.Deck().CountInZone("Lightning Bolt", deck.ZoneMain); got != 4 {
		t.Errorf("count = %d, want 4", got)
	}
	if app.History().CanUndo() {
		t.Error("history should be cleared after load")
	}
}

func TestSaveWithoutPathFails(t *testing.T) {
	app := newApp(t, Options{})

	err := app.SaveDeck("")
	if !errors.Is(err, ErrNoDeck) {
		t.Errorf("expected ErrNoDeck, got %v", err)
	}
}

func TestDeckEventsPublished(t *testing.T) {
	app := newApp(t, Options{})
	path := filepath.Join(t.TempDir(), "deck.json")

	saved := make(chan events.DeckSaved, 1)
	loaded := make(chan events.DeckLoaded, 1)
	if _, err := app.EventBus().Subscribe(events.TopicDeckSaved,
		event.AsHandler(func(_ context.Context, ev event.Event[events.DeckSaved]) error {
			saved <- ev.Payload
			return nil
		})); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	if _, err := app.EventBus().Subscribe(events.TopicDeckLoaded,
		event.AsHandler(func(_ context.Context, ev event.Event[events.DeckLoaded]) error {
			loaded <- ev.Payload
			return nil
		})); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	app.Deck().SetName("Burn")
	if err := app.SaveDeck(path); err != nil {
		t.Fatalf("SaveDeck failed: %v", err)
	}
	select {
	case payload := <-saved:
		if payload.Name != "Burn" || payload.Path != path {
			t.Errorf("saved payload = %+v", payload)
		}
	default:
		t.Fatal("DeckSaved event not published")
	}

	if err := app.LoadDeck(path); err != nil {
		t.Fatalf("LoadDeck failed: %v", err)
	}
	select {
	case payload := <-loaded:
		if payload.Name != "Burn" {
			t.Errorf("loaded payload = %+v", payload)
		}
	default:
		t.Fatal("DeckLoaded event not published")
	}
}

func TestDeckEntryEventsPublished(t *testing.T) {
	app := newApp(t, Options{})

	var topics []string
	if _, err := app.EventBus().SubscribeFunc("deck.**", func(_ context.Context, ev any) error {
		if tp, ok := ev.(event.TopicProvider); ok {
			topics = append(topics, string(tp.EventTopic()))
		}
		return nil
	}); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	bolt := deck.Card{Name: "Lightning Bolt"}
	if err := app.History().Execute(command.NewAddCard(app.Deck(), bolt, deck.ZoneMain, 1)); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if err := app.History().Execute(command.NewRemoveCard(app.Deck(), bolt, deck.ZoneMain, 1)); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	app.Deck().Clear()

	want := []string{"deck.entry.added", "deck.entry.removed", "deck.cleared"}
	if len(topics) != len(want) {
		t.Fatalf("topics = %v, want %v", topics, want)
	}
	for i := range want {
		if topics[i] != want[i] {
			t.Fatalf("topics = %v, want %v", topics, want)
		}
	}
}

func TestRunAndShutdown(t *testing.T) {
	app := newApp(t, Options{})

	done := make(chan error, 1)
	go func() {
		done <- app.Run()
	}()

	deadline := time.Now().Add(2 * time.Second)
	for !app.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if !app.IsRunning() {
		t.Fatal("application never started")
	}

	if err := app.Run(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Run = %v, want ErrAlreadyRunning", err)
	}

	app.Shutdown()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
}

func TestMacroEditsShareHistory(t *testing.T) {
	app := newApp(t, Options{})

	if err := app.Macros().Run(`assert(deck.add_card("Shock", "main", 2))`); err != nil {
		t.Fatalf("macro failed: %v", err)
	}
	if got := app.Deck().CountInZone("Shock", deck.ZoneMain); got != 2 {
		t.Errorf("count = %d, want 2", got)
	}
	if err := app.History().Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if got := app.Deck().TotalCount(); got != 0 {
		t.Errorf("count after undo = %d, want 0", got)
	}
}

func TestMacroDirLoadedAtStartup(t *testing.T) {
	configDir := t.TempDir()
	macroDir := t.TempDir()
	settings := "[macros]\ndir = '" + macroDir + "'\n"
	if err := os.WriteFile(filepath.Join(configDir, "settings.toml"), []byte(settings), 0o644); err != nil {
		t.Fatalf("writing settings: %v", err)
	}
	script := `function playset(name) return deck.add_card(name, "main", 4) end`
	if err := os.WriteFile(filepath.Join(macroDir, "playset.lua"), []byte(script), 0o644); err != nil {
		t.Fatalf("writing macro: %v", err)
	}

	app := newApp(t, Options{ConfigDir: configDir})

	if !app.Macros().HasMacro("playset") {
		t.Error("playset macro should be loaded at startup")
	}
}
