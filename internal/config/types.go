// Package config holds the immutable runtime flags for leapedit and the
// layered loader that produces them.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/leapstack-labs/leapedit/internal/blob"
)

// Default configuration values.
const (
	DefaultMaxRecents = 10
	DefaultLogLevel   = "info"
	DefaultOutput     = "auto" // TTY=text, non-TTY=json
	DefaultScriptName = "init.star"
)

// Output formats accepted for the output key.
var outputFormats = []string{"auto", "text", "json", "yaml"}

// ErrInvalidFlags is wrapped by every validation failure from New.
var ErrInvalidFlags = errors.New("invalid configuration")

// Values is the raw, mutable form of the configuration as decoded by koanf.
// Zero values mean "use the default".
type Values struct {
	MaxRecents *int   `koanf:"max_recents"`
	ConfigDir  string `koanf:"config_dir"`
	Script     string `koanf:"script"`
	LogLevel   string `koanf:"log_level"`
	Output     string `koanf:"output"`
}

// Flags is the validated, read-only configuration shared by every
// component. It is a value type; copies are independent and there are no
// setters.
type Flags struct {
	maxRecents int
	configDir  string
	scriptPath string
	logLevel   slog.Level
	output     string
	configFile string
}

// New validates v and fills in defaults.
func New(v Values) (Flags, error) {
	f := Flags{
		maxRecents: DefaultMaxRecents,
		configDir:  v.ConfigDir,
		scriptPath: v.Script,
		output:     strings.ToLower(v.Output),
	}

	if v.MaxRecents != nil {
		if *v.MaxRecents < 0 {
			return Flags{}, fmt.Errorf("%w: max_recents must not be negative, got %d", ErrInvalidFlags, *v.MaxRecents)
		}
		f.maxRecents = *v.MaxRecents
	}

	if f.configDir == "" {
		root, err := blob.DefaultRoot()
		if err != nil {
			return Flags{}, fmt.Errorf("%w: %w", ErrInvalidFlags, err)
		}
		f.configDir = root
	}
	f.configDir = filepath.Clean(f.configDir)

	if f.scriptPath == "" {
		f.scriptPath = filepath.Join(f.configDir, DefaultScriptName)
	}

	level := v.LogLevel
	if level == "" {
		level = DefaultLogLevel
	}
	if err := f.logLevel.UnmarshalText([]byte(level)); err != nil {
		return Flags{}, fmt.Errorf("%w: log_level %q", ErrInvalidFlags, level)
	}

	if f.output == "" {
		f.output = DefaultOutput
	}
	if !slices.Contains(outputFormats, f.output) {
		return Flags{}, fmt.Errorf("%w: output must be one of %s, got %q",
			ErrInvalidFlags, strings.Join(outputFormats, "|"), v.Output)
	}

	return f, nil
}

// MaxRecents is the upper bound on the recent-files list.
func (f Flags) MaxRecents() int { return f.maxRecents }

// ConfigDir is the root directory for persisted artifacts and the script.
func (f Flags) ConfigDir() string { return f.configDir }

// ScriptPath is the config script to execute.
func (f Flags) ScriptPath() string { return f.scriptPath }

// LogLevel is the minimum level for the CLI logger.
func (f Flags) LogLevel() slog.Level { return f.logLevel }

// OutputFormat is one of auto, text, json or yaml.
func (f Flags) OutputFormat() string { return f.output }

// ConfigFile is the yaml file that was loaded, or "" if none.
func (f Flags) ConfigFile() string { return f.configFile }

// Map returns the effective settings keyed like the config file.
func (f Flags) Map() map[string]any {
	return map[string]any{
		"max_recents": f.maxRecents,
		"config_dir":  f.configDir,
		"script":      f.scriptPath,
		"log_level":   strings.ToLower(f.logLevel.String()),
		"output":      f.output,
	}
}
