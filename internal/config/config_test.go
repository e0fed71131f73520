package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestNew(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name       string
		values     Values
		wantMax    int
		wantScript string
		wantLevel  slog.Level
		wantOutput string
		wantErr    bool
	}{
		{
			name:       "defaults",
			values:     Values{ConfigDir: dir},
			wantMax:    DefaultMaxRecents,
			wantScript: filepath.Join(dir, DefaultScriptName),
			wantLevel:  slog.LevelInfo,
			wantOutput: "auto",
		},
		{
			name:       "explicit values",
			values:     Values{MaxRecents: intPtr(3), ConfigDir: dir, Script: "/tmp/x.star", LogLevel: "DEBUG", Output: "JSON"},
			wantMax:    3,
			wantScript: "/tmp/x.star",
			wantLevel:  slog.LevelDebug,
			wantOutput: "json",
		},
		{
			name:       "zero max recents",
			values:     Values{MaxRecents: intPtr(0), ConfigDir: dir},
			wantMax:    0,
			wantScript: filepath.Join(dir, DefaultScriptName),
			wantLevel:  slog.LevelInfo,
			wantOutput: "auto",
		},
		{
			name:    "negative max recents",
			values:  Values{MaxRecents: intPtr(-1), ConfigDir: dir},
			wantErr: true,
		},
		{
			name:    "bad log level",
			values:  Values{ConfigDir: dir, LogLevel: "loud"},
			wantErr: true,
		},
		{
			name:    "bad output",
			values:  Values{ConfigDir: dir, Output: "markdown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.values)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidFlags)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.wantMax, f.MaxRecents())
			assert.Equal(t, dir, f.ConfigDir())
			assert.Equal(t, tt.wantScript, f.ScriptPath())
			assert.Equal(t, tt.wantLevel, f.LogLevel())
			assert.Equal(t, tt.wantOutput, f.OutputFormat())
			assert.Empty(t, f.ConfigFile())
		})
	}
}

func TestFlags_Map(t *testing.T) {
	dir := t.TempDir()
	f, err := New(Values{ConfigDir: dir, LogLevel: "warn"})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"max_recents": DefaultMaxRecents,
		"config_dir":  dir,
		"script":      filepath.Join(dir, DefaultScriptName),
		"log_level":   "warn",
		"output":      "auto",
	}, f.Map())
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.String("config-dir", "", "")
	fs.String("script", "", "")
	fs.Int("max-recents", DefaultMaxRecents, "")
	fs.String("log-level", DefaultLogLevel, "")
	fs.StringP("output", "o", DefaultOutput, "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LEAPEDIT_CONFIG_DIR", dir)

	f, err := Load("", newFlagSet())
	require.NoError(t, err)

	assert.Equal(t, DefaultMaxRecents, f.MaxRecents())
	assert.Equal(t, dir, f.ConfigDir())
	assert.Equal(t, filepath.Join(dir, DefaultScriptName), f.ScriptPath())
	assert.Equal(t, slog.LevelInfo, f.LogLevel())
	assert.Equal(t, "auto", f.OutputFormat())
	assert.Empty(t, f.ConfigFile())
	assert.Equal(t, filepath.Join(dir, ConfigFileName), f.DefaultFile())
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(cfgPath, []byte("max_recents: 4\nlog_level: warn\noutput: yaml\n"), 0o600))

	t.Run("file found in config dir", func(t *testing.T) {
		fs := newFlagSet()
		require.NoError(t, fs.Parse([]string{"--config-dir", dir}))

		f, err := Load("", fs)
		require.NoError(t, err)
		assert.Equal(t, 4, f.MaxRecents())
		assert.Equal(t, slog.LevelWarn, f.LogLevel())
		assert.Equal(t, "yaml", f.OutputFormat())
		assert.Equal(t, cfgPath, f.ConfigFile())
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("LEAPEDIT_MAX_RECENTS", "7")
		fs := newFlagSet()
		require.NoError(t, fs.Parse([]string{"--config-dir", dir}))

		f, err := Load("", fs)
		require.NoError(t, err)
		assert.Equal(t, 7, f.MaxRecents())
		assert.Equal(t, "yaml", f.OutputFormat())
	})

	t.Run("flags override env", func(t *testing.T) {
		t.Setenv("LEAPEDIT_MAX_RECENTS", "7")
		fs := newFlagSet()
		require.NoError(t, fs.Parse([]string{"--config-dir", dir, "--max-recents", "2", "-o", "json"}))

		f, err := Load("", fs)
		require.NoError(t, err)
		assert.Equal(t, 2, f.MaxRecents())
		assert.Equal(t, "json", f.OutputFormat())
		assert.Equal(t, slog.LevelWarn, f.LogLevel())
	})

	t.Run("unchanged flags do not override", func(t *testing.T) {
		fs := newFlagSet()
		require.NoError(t, fs.Parse([]string{"--config-dir", dir}))

		f, err := Load("", fs)
		require.NoError(t, err)
		assert.Equal(t, 4, f.MaxRecents())
	})
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LEAPEDIT_CONFIG_DIR", dir)

	other := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(other, []byte("script: /opt/init.star\n"), 0o600))

	f, err := Load(other, nil)
	require.NoError(t, err)
	assert.Equal(t, "/opt/init.star", f.ScriptPath())
	assert.Equal(t, other, f.ConfigFile())
	assert.Equal(t, other, f.DefaultFile())

	_, err = Load(filepath.Join(dir, "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("LEAPEDIT_CONFIG_DIR", t.TempDir())
	t.Setenv("LEAPEDIT_MAX_RECENTS", "-3")

	_, err := Load("", nil)
	require.ErrorIs(t, err, ErrInvalidFlags)
}
