package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/leapstack-labs/leapedit/internal/blob"
	"github.com/spf13/pflag"
)

// Config file names searched for in the config directory.
const (
	ConfigFileName    = "leapedit.yaml"
	ConfigFileNameAlt = "leapedit.yml"
)

// EnvPrefix is the prefix for environment overrides, e.g. LEAPEDIT_MAX_RECENTS.
const EnvPrefix = "LEAPEDIT_"

// flagKeys maps flag names that differ from their config key.
var flagKeys = map[string]string{
	"config": "", // selects the file, not a setting
}

// Load builds Flags from, lowest precedence first: defaults, the yaml config
// file, LEAPEDIT_ environment variables and explicitly set flags.
//
// cfgFile selects the config file; when empty, leapedit.yaml (or .yml) in
// the config directory is used if present.
func Load(cfgFile string, flags *pflag.FlagSet) (Flags, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"max_recents": DefaultMaxRecents,
		"log_level":   DefaultLogLevel,
		"output":      DefaultOutput,
	}, "."), nil); err != nil {
		return Flags{}, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	configFileUsed := findConfigFile(cfgFile, inferConfigDir(flags))
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return Flags{}, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Environment variables
	// Transform: LEAPEDIT_MAX_RECENTS -> max_recents
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return Flags{}, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if mapped, ok := flagKeys[f.Name]; ok {
				if mapped == "" {
					return "", nil
				}
				key = mapped
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return Flags{}, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var v Values
	if err := k.Unmarshal("", &v); err != nil {
		return Flags{}, fmt.Errorf("unable to decode config: %w", err)
	}

	f, err := New(v)
	if err != nil {
		return Flags{}, err
	}
	f.configFile = configFileUsed
	return f, nil
}

// inferConfigDir resolves the config directory before the file is read, so
// the file can be found inside it. Priority: --config-dir, LEAPEDIT_CONFIG_DIR,
// the platform default.
func inferConfigDir(flags *pflag.FlagSet) string {
	if flags != nil && flags.Changed("config-dir") {
		if dir, _ := flags.GetString("config-dir"); dir != "" {
			return dir
		}
	}
	if dir := os.Getenv(EnvPrefix + "CONFIG_DIR"); dir != "" {
		return dir
	}
	dir, err := blob.DefaultRoot()
	if err != nil {
		return ""
	}
	return dir
}

// findConfigFile returns the config file to load.
// Priority: explicit path > leapedit.yaml > leapedit.yml. An explicit path
// is returned even if it does not exist so the read reports it.
func findConfigFile(explicit, dir string) string {
	if explicit != "" {
		return explicit
	}
	if dir == "" {
		return ""
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// DefaultFile returns the path `config init` writes the config file to.
func (f Flags) DefaultFile() string {
	if f.configFile != "" {
		return f.configFile
	}
	return filepath.Join(f.configDir, ConfigFileName)
}
