// Package config provides the configuration system for deckforge.
//
// Settings are merged from three layers, lowest priority first:
//
//  1. Built-in defaults
//  2. settings.toml in the user config directory
//  3. DECKFORGE_-prefixed environment variables
//
// Values are addressed by dot-separated paths ("history.maxSize") and read
// through typed getters or the section snapshots in sections.go.
package config
