// Package scriptcfg assembles the runtime configuration handed to the UI:
// flags, script-defined settings and keymap, and the recent-files list.
package scriptcfg

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/leapstack-labs/leapedit/internal/blob"
	"github.com/leapstack-labs/leapedit/internal/config"
	"github.com/leapstack-labs/leapedit/internal/keymap"
	"github.com/leapstack-labs/leapedit/internal/keys"
	"github.com/leapstack-labs/leapedit/internal/persist"
	"github.com/leapstack-labs/leapedit/internal/recent"
	starctx "github.com/leapstack-labs/leapedit/internal/starlark"
	"go.starlark.net/starlark"
)

// KeybindsDirName holds the last keybinds a script produced successfully.
const KeybindsDirName = ".keybinds"

// Source says where the keybinds in a Config came from.
type Source string

// Keybind sources.
const (
	SourceDefaults Source = "defaults"
	SourceScript   Source = "script"
	SourceCache    Source = "cache"
)

// Config is the assembled configuration. It is built once by Load and then
// only the recent-files list changes.
type Config struct {
	flags     config.Flags
	settings  Settings
	keybinds  map[string]keys.Keybind
	keymap    *keymap.Table
	recent    *recent.Registry
	source    Source
	scriptErr error
	logger    *slog.Logger
}

// Load reads persisted state, runs the config script and builds the keymap.
// Script problems are logged and never fail the load; an error means the
// config directory is unusable.
func Load(flags config.Flags, store *blob.Store, logger *slog.Logger) (*Config, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	reg, err := recent.Read(store, logger)
	if err != nil {
		return nil, err
	}

	cache, err := openCache(store, logger)
	if err != nil {
		return nil, err
	}

	c := &Config{
		flags:    flags,
		settings: DefaultSettings(),
		recent:   reg,
		source:   SourceDefaults,
		logger:   logger,
	}

	extra, err := scriptDefaults()
	if err != nil {
		return nil, err
	}

	script := flags.ScriptPath()
	globals, err := starctx.LoadFileWith(script, extra, logger)
	switch {
	case errors.Is(err, starctx.ErrNoScript):
		logger.Debug("no config script, using defaults", "script", script)
	case err != nil:
		logger.Warn("config script failed, using cached keybinds", "script", script, "error", err)
		c.scriptErr = err
		c.keybinds = cache.Load()
		c.source = SourceCache
	default:
		c.keybinds = starctx.Keybinds(globals, logger)
		c.settings = decodeSettings(starctx.Settings(globals, logger), logger)
		c.source = SourceScript
		cache.Save(c.keybinds)
	}

	c.keymap = keymap.New(keymap.Defaults()).Overlay(resolve(c.keybinds, logger))
	return c, nil
}

// scriptDefaults is the frozen defaults module every script run sees.
var scriptDefaults = sync.OnceValues(func() (starlark.StringDict, error) {
	var settings map[string]any
	if err := mapstructure.Decode(DefaultSettings(), &settings); err != nil {
		return nil, fmt.Errorf("encoding default settings: %w", err)
	}

	defaults := keymap.Defaults()
	binds := make(map[string]keys.Keybind, len(defaults))
	for action, b := range defaults {
		binds[action] = b.Keybind()
	}

	m, err := starctx.NewDefaults(settings, binds)
	if err != nil {
		return nil, err
	}
	return starlark.StringDict{starctx.DefaultsModule: m}, nil
})

func openCache(store *blob.Store, logger *slog.Logger) (*persist.Artifact[map[string]keys.Keybind], error) {
	return persist.Open[map[string]keys.Keybind](store, KeybindsDirName, persist.WithLogger[map[string]keys.Keybind](logger))
}

// resolve converts script keybinds to UI bindings. Bindings without a
// trigger key are dropped.
func resolve(raw map[string]keys.Keybind, logger *slog.Logger) map[string]keys.Binding {
	out := make(map[string]keys.Binding, len(raw))
	for action, kb := range raw {
		if kb.Key == "" {
			logger.Warn("ignoring keybind with empty key", "action", action)
			continue
		}
		out[action] = kb.Binding(logger)
	}
	return out
}

// Flags returns the flags the config was loaded with.
func (c *Config) Flags() config.Flags { return c.flags }

// Settings returns the effective editor preferences.
func (c *Config) Settings() Settings { return c.settings }

// Keymap returns the action table.
func (c *Config) Keymap() *keymap.Table { return c.keymap }

// Recent returns the recent-files registry.
func (c *Config) Recent() *recent.Registry { return c.recent }

// Keybinds returns a copy of the keybinds taken from the script or cache.
func (c *Config) Keybinds() map[string]keys.Keybind { return maps.Clone(c.keybinds) }

// Source reports where the keybinds came from.
func (c *Config) Source() Source { return c.source }

// ScriptErr is the script failure that caused a fallback to the cache.
func (c *Config) ScriptErr() error { return c.scriptErr }

// OpenFile records path as the most recently opened file and persists the
// list.
func (c *Config) OpenFile(path string) {
	c.recent.Add(c.flags, path)
	c.recent.Write()
	c.logger.Debug("recorded recent file", "path", path, "count", c.recent.Len())
}
