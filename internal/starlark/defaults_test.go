package starlark

import (
	"testing"

	"github.com/leapstack-labs/leapedit/internal/keys"
	"github.com/leapstack-labs/leapedit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"
)

func newTestDefaults(t *testing.T) starlark.StringDict {
	t.Helper()
	m, err := NewDefaults(
		map[string]any{"tab_width": 4, "theme": "default", "font_size": 14.0},
		map[string]keys.Keybind{"save": {Key: "s", Modifiers: []keys.Key{keys.Ctrl}}},
	)
	require.NoError(t, err)
	return starlark.StringDict{DefaultsModule: m}
}

func TestExecWith_Defaults(t *testing.T) {
	src := `
tab = defaults.settings["tab_width"] * 2
theme = defaults.settings["theme"]
save = defaults.keybinds["save"]
alt_save = Keybind(defaults.keybinds["save"].key, [modifiers.Alt])
`
	globals, err := ExecWith("init.star", []byte(src), newTestDefaults(t), testutil.NewTestLogger(t))
	require.NoError(t, err)

	assert.Equal(t, "8", globals["tab"].String())
	assert.Equal(t, `"default"`, globals["theme"].String())

	save, ok := ToKeybind(globals["save"])
	require.True(t, ok)
	assert.Equal(t, keys.Keybind{Key: "s", Modifiers: []keys.Key{keys.Ctrl}}, save)

	altSave, ok := ToKeybind(globals["alt_save"])
	require.True(t, ok)
	assert.Equal(t, "alt+s", altSave.Binding(nil).String())
}

func TestExecWith_DefaultsAreFrozen(t *testing.T) {
	extra := newTestDefaults(t)

	for _, src := range []string{
		`defaults.settings["tab_width"] = 2`,
		`defaults.keybinds.pop("save")`,
	} {
		_, err := ExecWith("init.star", []byte(src), extra, nil)
		require.Error(t, err, src)
		assert.Contains(t, err.Error(), "frozen", src)
	}
}

func TestExec_NoDefaultsWithoutExtra(t *testing.T) {
	_, err := Exec("init.star", []byte(`x = defaults`), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined: defaults")
}

func TestNewDefaults_UnsupportedValue(t *testing.T) {
	_, err := NewDefaults(map[string]any{"bad": struct{}{}}, nil)
	assert.Error(t, err)
}
