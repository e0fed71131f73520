package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leapedit/internal/blob"
	"github.com/leapstack-labs/leapedit/internal/cli/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs cmd with args and returns stdout and stderr.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestNewCommands(t *testing.T) {
	tests := []struct {
		cmd         *cobra.Command
		use         string
		subcommands []string
		flags       []string
	}{
		{cmd: NewRecentCommand(), use: "recent", subcommands: []string{"list", "add", "clear"}},
		{cmd: NewKeysCommand(), use: "keys", flags: []string{"watch"}},
		{cmd: NewConfigCommand(), use: "config", subcommands: []string{"show", "path", "init"}},
		{cmd: NewOpenCommand(), use: "open <path>"},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")

			for _, name := range tt.subcommands {
				sub, _, err := tt.cmd.Find([]string{name})
				require.NoError(t, err)
				assert.Equal(t, name, sub.Name())
			}
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

func TestRecentCommand(t *testing.T) {
	testutil.IsolateConfig(t)
	work := t.TempDir()
	a, b := filepath.Join(work, "a.md"), filepath.Join(work, "b.md")

	out, _, err := execute(t, NewRecentCommand(), "add", a, b, a)
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded 3 file(s); 2 in list")
	assert.Contains(t, NewRecentCommand().Long, "makes it the most recent")

	t.Setenv("LEAPEDIT_OUTPUT", "json")
	out, _, err = execute(t, NewRecentCommand(), "list")
	require.NoError(t, err)

	var got RecentOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 10, got.Limit)
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, []RecentFile{{Name: "a.md", Path: a}, {Name: "b.md", Path: b}}, got.Files)

	_, _, err = execute(t, NewRecentCommand(), "clear")
	require.NoError(t, err)

	out, _, err = execute(t, NewRecentCommand(), "list")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 0, got.Count)
	assert.Empty(t, got.Files)
}

func TestRecentListText(t *testing.T) {
	testutil.IsolateConfig(t)
	t.Setenv("LEAPEDIT_OUTPUT", "text")

	out, _, err := execute(t, NewRecentCommand(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Recent files (0 of 10)")
	assert.Contains(t, out, "(none)")
	testutil.AssertNoANSI(t, out)
}

func TestRecentAdd_RespectsLimit(t *testing.T) {
	testutil.IsolateConfig(t)
	t.Setenv("LEAPEDIT_MAX_RECENTS", "2")
	work := t.TempDir()

	out, _, err := execute(t, NewRecentCommand(), "add",
		filepath.Join(work, "1"), filepath.Join(work, "2"), filepath.Join(work, "3"))
	require.NoError(t, err)
	assert.Contains(t, out, "2 in list")
}

func TestOpenCommand(t *testing.T) {
	testutil.IsolateConfig(t)
	target := filepath.Join(t.TempDir(), "notes.txt")

	out, _, err := execute(t, NewOpenCommand(), target)
	require.NoError(t, err)
	assert.Contains(t, out, "Opened notes.txt")

	t.Setenv("LEAPEDIT_OUTPUT", "json")
	out, _, err = execute(t, NewRecentCommand(), "list")
	require.NoError(t, err)

	var got RecentOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Files, 1)
	assert.Equal(t, target, got.Files[0].Path)
}

func TestKeysCommand_Defaults(t *testing.T) {
	testutil.IsolateConfig(t)
	t.Setenv("LEAPEDIT_OUTPUT", "json")

	out, _, err := execute(t, NewKeysCommand())
	require.NoError(t, err)

	var got KeysOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "defaults", got.Source)
	assert.Empty(t, got.ScriptError)
	assert.Len(t, got.Bindings, 9)

	byAction := map[string]KeyBinding{}
	for _, b := range got.Bindings {
		byAction[b.Action] = b
	}
	assert.Equal(t, "ctrl+s", byAction["save"].Binding)
	assert.True(t, byAction["save"].Enabled)
}

func TestKeysCommand_Script(t *testing.T) {
	dir := testutil.IsolateConfig(t)
	t.Setenv("LEAPEDIT_OUTPUT", "json")

	script := `keybinds = {"save": Keybind(Key("s"), [modifiers.Alt])}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "init.star"), []byte(script), 0o600))

	out, _, err := execute(t, NewKeysCommand())
	require.NoError(t, err)

	var got KeysOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "script", got.Source)
	for _, b := range got.Bindings {
		if b.Action == "save" {
			assert.Equal(t, "alt+s", b.Binding)
			assert.Equal(t, []string{"alt+s"}, b.Keys)
		}
	}
}

func TestKeysCommand_ScriptErrorText(t *testing.T) {
	dir := testutil.IsolateConfig(t)
	t.Setenv("LEAPEDIT_OUTPUT", "text")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "init.star"), []byte("keybinds = nope\n"), 0o600))

	out, errOut, err := execute(t, NewKeysCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "Keybindings")
	assert.Contains(t, out, "ctrl+s")
	assert.Contains(t, errOut, "script failed")
	assert.Contains(t, errOut, "undefined: nope")
}

func TestConfigShow(t *testing.T) {
	dir := testutil.IsolateConfig(t)
	t.Setenv("LEAPEDIT_OUTPUT", "json")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "init.star"),
		[]byte(`settings = {"tab_width": 8, "theme": "dark"}`), 0o600))

	out, _, err := execute(t, NewConfigCommand(), "show")
	require.NoError(t, err)

	var got struct {
		Flags    map[string]any `json:"flags"`
		Settings struct {
			TabWidth int    `json:"tab_width"`
			Theme    string `json:"theme"`
		} `json:"settings"`
		Source string `json:"source"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "script", got.Source)
	assert.Equal(t, 8, got.Settings.TabWidth)
	assert.Equal(t, "dark", got.Settings.Theme)
	assert.Equal(t, dir, got.Flags["config_dir"])
	assert.InDelta(t, 10, got.Flags["max_recents"], 0)
}

func TestConfigPath(t *testing.T) {
	dir := testutil.IsolateConfig(t)
	t.Setenv("LEAPEDIT_OUTPUT", "json")

	out, _, err := execute(t, NewConfigCommand(), "path")
	require.NoError(t, err)

	var got PathsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, dir, got.ConfigDir)
	assert.Equal(t, filepath.Join(dir, "leapedit.yaml"), got.ConfigFile)
	assert.Equal(t, filepath.Join(dir, "init.star"), got.Script)
	assert.Equal(t, filepath.Join(dir, ".recents", blob.ArtifactFile), got.Recents)
	assert.Equal(t, filepath.Join(dir, ".keybinds", blob.ArtifactFile), got.Keybinds)
}

func TestConfigInit(t *testing.T) {
	dir := testutil.IsolateConfig(t)
	t.Setenv("LEAPEDIT_OUTPUT", "text")

	out, _, err := execute(t, NewConfigCommand(), "init")
	require.NoError(t, err)
	assert.Contains(t, out, "configuration initialised")
	testutil.AssertNoANSI(t, out)

	for _, p := range []string{
		filepath.Join(dir, "leapedit.yaml"),
		filepath.Join(dir, "init.star"),
		filepath.Join(dir, ".recents", blob.ArtifactFile),
		filepath.Join(dir, ".keybinds", blob.ArtifactFile),
	} {
		assert.FileExists(t, p)
	}

	// The starter script runs cleanly.
	t.Setenv("LEAPEDIT_OUTPUT", "json")
	out, _, err = execute(t, NewKeysCommand())
	require.NoError(t, err)
	var keys KeysOutput
	require.NoError(t, json.Unmarshal([]byte(out), &keys))
	assert.Equal(t, "script", keys.Source)
	assert.Empty(t, keys.ScriptError)
}

func TestConfigInit_KeepsExisting(t *testing.T) {
	dir := testutil.IsolateConfig(t)
	t.Setenv("LEAPEDIT_OUTPUT", "text")
	script := filepath.Join(dir, "init.star")
	require.NoError(t, os.WriteFile(script, []byte("# mine\n"), 0o600))

	out, _, err := execute(t, NewConfigCommand(), "init")
	require.NoError(t, err)
	assert.Contains(t, out, "(exists)")

	content, err := os.ReadFile(script)
	require.NoError(t, err)
	assert.Equal(t, "# mine\n", string(content))

	_, _, err = execute(t, NewConfigCommand(), "init", "--force")
	require.NoError(t, err)
	content, err = os.ReadFile(script)
	require.NoError(t, err)
	assert.Contains(t, string(content), "keybinds = {")
}
