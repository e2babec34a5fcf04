package config

import "time"

// Section accessor methods return snapshot structs. Mutating the returned
// struct does not modify the underlying configuration; use Config.Set for
// that.

// HistoryConfig provides type-safe access to undo history settings.
type HistoryConfig struct {
	// MaxSize bounds the undo stack.
	MaxSize int

	// Merging collapses rapid same-target commands into one entry.
	Merging bool

	// CleanupDelay is how long trimming the undo stack is deferred.
	CleanupDelay time.Duration
}

// DeckConfig provides type-safe access to deck settings.
type DeckConfig struct {
	// DefaultZone is where cards land when no zone is given.
	DefaultZone string

	// AutoLoad reopens the last deck file on startup.
	AutoLoad bool
}

// UIConfig provides type-safe access to UI settings.
type UIConfig struct {
	// Theme is the color theme name.
	Theme string

	// ShowStatusBar shows the status bar at the bottom.
	ShowStatusBar bool

	// ConfirmOnQuit asks before quitting with unsaved changes.
	ConfirmOnQuit bool
}

// MacrosConfig provides type-safe access to Lua macro settings.
type MacrosConfig struct {
	// Enabled loads macro scripts at startup.
	Enabled bool

	// Dir is the directory macro scripts are read from. Empty means no
	// scripts are loaded at startup.
	Dir string
}

// LoggingConfig provides type-safe access to logging settings.
type LoggingConfig struct {
	// Level is the minimum level to log ("debug", "info", "warn", "error").
	Level string

	// Format is the log output format ("text").
	Format string
}

// History returns the history settings snapshot.
func (c *Config) History() HistoryConfig {
	section := HistoryConfig{
		MaxSize:      100,
		Merging:      true,
		CleanupDelay: 100 * time.Millisecond,
	}
	if v, err := c.GetInt("history.maxSize"); err == nil {
		section.MaxSize = v
	}
	if v, err := c.GetBool("history.merging"); err == nil {
		section.Merging = v
	}
	if v, err := c.GetInt("history.cleanupDelayMs"); err == nil && v > 0 {
		section.CleanupDelay = time.Duration(v) * time.Millisecond
	}
	return section
}

// Deck returns the deck settings snapshot.
func (c *Config) Deck() DeckConfig {
	section := DeckConfig{
		DefaultZone: "main",
		AutoLoad:    true,
	}
	if v, err := c.GetString("deck.defaultZone"); err == nil {
		section.DefaultZone = v
	}
	if v, err := c.GetBool("deck.autoLoad"); err == nil {
		section.AutoLoad = v
	}
	return section
}

// UI returns the UI settings snapshot.
func (c *Config) UI() UIConfig {
	section := UIConfig{
		Theme:         "dark",
		ShowStatusBar: true,
		ConfirmOnQuit: true,
	}
	if v, err := c.GetString("ui.theme"); err == nil {
		section.Theme = v
	}
	if v, err := c.GetBool("ui.showStatusBar"); err == nil {
		section.ShowStatusBar = v
	}
	if v, err := c.GetBool("ui.confirmOnQuit"); err == nil {
		section.ConfirmOnQuit = v
	}
	return section
}

// Macros returns the macro settings snapshot.
func (c *Config) Macros() MacrosConfig {
	section := MacrosConfig{Enabled: true}
	if v, err := c.GetBool("macros.enabled"); err == nil {
		section.Enabled = v
	}
	if v, err := c.GetString("macros.dir"); err == nil {
		section.Dir = v
	}
	return section
}

// Logging returns the logging settings snapshot.
func (c *Config) Logging() LoggingConfig {
	section := LoggingConfig{Level: "info", Format: "text"}
	if v, err := c.GetString("logging.level"); err == nil {
		section.Level = v
	}
	if v, err := c.GetString("logging.format"); err == nil {
		section.Format = v
	}
	return section
}
