package app

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/deckforge/internal/config"
	"github.com/dshills/deckforge/internal/deck"
	"github.com/dshills/deckforge/internal/deckfile"
	"github.com/dshills/deckforge/internal/engine/history"
	"github.com/dshills/deckforge/internal/event"
	"github.com/dshills/deckforge/internal/event/events"
	"github.com/dshills/deckforge/internal/event/topic"
	"github.com/dshills/deckforge/internal/macro"
	"github.com/dshills/deckforge/internal/tui"
)

// eventSource identifies events published by the application shell.
const eventSource = "app"

// Application wires the deck, its command history, the macro engine,
// and the terminal UI together and manages their lifecycle.
type Application struct {
	mu sync.RWMutex

	// Core infrastructure
	eventBus event.Bus
	config   *config.Config
	logger   *Logger

	// Editor state
	deck     *deck.Deck
	history  *history.Manager
	deckPath string

	// Extensions
	macros *macro.Engine

	// UI
	ui     *tui.UI
	screen tcell.Screen

	// State
	running atomic.Bool
	done    chan struct{}

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigDir overrides the user configuration directory.
	ConfigDir string

	// DeckPath is a deck file to open on startup.
	DeckPath string

	// Debug enables debug logging.
	Debug bool

	// LogLevel sets the logging verbosity. Overrides the config file.
	LogLevel string

	// Headless disables the terminal UI. Used by tests and scripting.
	Headless bool
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts: opts,
		done: make(chan struct{}),
	}
	if err := app.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Event bus - messaging foundation
	app.eventBus = event.NewBus()

	// 2. Config system
	configOpts := []config.Option{}
	if app.opts.ConfigDir != "" {
		configOpts = append(configOpts, config.WithUserConfigDir(app.opts.ConfigDir))
	}
	app.config = config.New(configOpts...)
	configErr := app.config.Load(context.Background())

	// 3. Logger, configured before anything logs
	app.logger = NewLogger(app.loggerConfig())
	if configErr != nil {
		// Defaults still apply; the bad file is worth a warning.
		app.logger.Warn("config load: %v", configErr)
	}

	// 4. Deck
	if app.opts.DeckPath != "" {
		d, err := deckfile.Load(app.opts.DeckPath)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return &InitError{Component: "deck", Err: err}
			}
			// A fresh path gets a fresh deck.
			d = deck.New()
		}
		app.deck = d
		app.deckPath = app.opts.DeckPath
	} else {
		app.deck = deck.New()
	}
	app.observeDeck()

	// 5. Command history
	historyCfg := app.config.History()
	app.history = history.NewManager(
		history.WithBus(app.eventBus),
		history.WithMaxHistorySize(historyCfg.MaxSize),
		history.WithMergingEnabled(historyCfg.Merging),
		history.WithCleanupDelay(historyCfg.CleanupDelay),
	)

	// 6. Macro engine
	macrosCfg := app.config.Macros()
	if macrosCfg.Enabled {
		app.macros = macro.NewEngine(app.deck, app.history)
		if macrosCfg.Dir != "" {
			if err := app.macros.LoadDir(macrosCfg.Dir); err != nil {
				// A broken macro should not block startup.
				app.logger.Warn("macro load: %v", err)
			}
		}
	}

	// 7. Event logging
	app.subscribeLogging()

	return nil
}

// loggerConfig resolves the log level from options and config.
func (app *Application) loggerConfig() LoggerConfig {
	cfg := DefaultLoggerConfig()
	cfg.Level = ParseLogLevel(app.config.Logging().Level)
	if app.opts.LogLevel != "" {
		cfg.Level = ParseLogLevel(app.opts.LogLevel)
	}
	if app.opts.Debug {
		cfg.Level = LogLevelDebug
	}
	return cfg
}

// SetScreen injects a terminal screen. Must be called before Run; tests
// use it to supply a simulation screen.
func (app *Application) SetScreen(s tcell.Screen) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.screen = s
	return nil
}

// Run starts the application and blocks until shutdown.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		<-app.done
		cancel()
	}()

	if app.opts.Headless {
		<-ctx.Done()
		return nil
	}

	uiOpts := []tui.Option{tui.WithBus(app.eventBus)}
	app.mu.Lock()
	if app.screen != nil {
		uiOpts = append(uiOpts, tui.WithScreen(app.screen))
	}
	app.mu.Unlock()

	ui, err := tui.NewUI(app.deck, app.history, uiOpts...)
	if err != nil {
		return &InitError{Component: "ui", Err: err}
	}
	app.ui = ui

	app.logger.Info("starting with deck %q", app.deck.Name())
	if err := ui.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Shutdown initiates graceful shutdown.
func (app *Application) Shutdown() {
	if !app.running.Load() {
		return
	}

	select {
	case <-app.done:
	default:
		close(app.done)
	}

	if app.macros != nil {
		_ = app.macros.Close()
	}
}

// LoadDeck replaces the current deck with one loaded from path. The
// command history is cleared; undo cannot cross a load boundary.
func (app *Application) LoadDeck(path string) error {
	loaded, err := deckfile.Load(path)
	if err != nil {
		return NewOperationError("load", path, err)
	}

	// The UI and macro engine hold the deck pointer, so the contents are
	// copied into the existing instance instead of swapping it out.
	app.deck.Clear()
	app.deck.SetName(loaded.Name())
	app.deck.SetComments(loaded.Comments())
	for _, zone := range loaded.Zones() {
		for _, entry := range loaded.Entries(zone) {
			id, err := app.deck.AddEntry(entry.Card, zone)
			if err != nil {
				return NewOperationError("load", path, err)
			}
			if entry.Count > 1 {
				if err := app.deck.SetEntryCount(id, entry.Count); err != nil {
					return NewOperationError("load", path, err)
				}
			}
		}
	}

	app.mu.Lock()
	app.deckPath = path
	app.mu.Unlock()

	app.history.Clear()

	publish(app, events.TopicDeckLoaded, events.DeckLoaded{
		Path:       path,
		Name:       app.deck.Name(),
		TotalCount: app.deck.TotalCount(),
	})
	return nil
}

// SaveDeck writes the current deck to path. An empty path reuses the
// path the deck was loaded from.
func (app *Application) SaveDeck(path string) error {
	app.mu.Lock()
	if path == "" {
		path = app.deckPath
	}
	app.deckPath = path
	app.mu.Unlock()

	if path == "" {
		return NewOperationError("save", "", ErrNoDeck)
	}
	if err := deckfile.Save(app.deck, path); err != nil {
		return NewOperationError("save", path, err)
	}

	publish(app, events.TopicDeckSaved, events.DeckSaved{
		Path: path,
		Name: app.deck.Name(),
	})
	return nil
}

func publish[T any](app *Application, tp topic.Topic, payload T) {
	_ = app.eventBus.Publish(context.Background(), event.NewEvent(tp, payload, eventSource))
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// EventBus returns the event bus.
func (app *Application) EventBus() event.Bus {
	return app.eventBus
}

// Config returns the configuration system.
func (app *Application) Config() *config.Config {
	return app.config
}

// Deck returns the open deck.
func (app *Application) Deck() *deck.Deck {
	return app.deck
}

// History returns the command history.
func (app *Application) History() *history.Manager {
	return app.history
}

// Macros returns the macro engine (nil when disabled).
func (app *Application) Macros() *macro.Engine {
	return app.macros
}

// Logger returns the application's logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

