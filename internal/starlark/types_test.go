package starlark

import (
	"testing"

	"github.com/leapstack-labs/leapedit/internal/keys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"
)

func TestGoToStarlark(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		wantStr string
		wantErr bool
	}{
		{
			name:    "string",
			input:   "hello",
			wantStr: `"hello"`,
		},
		{
			name:    "int",
			input:   42,
			wantStr: "42",
		},
		{
			name:    "float64",
			input:   3.14,
			wantStr: "3.14",
		},
		{
			name:    "bool true",
			input:   true,
			wantStr: "True",
		},
		{
			name:    "nil",
			input:   nil,
			wantStr: "None",
		},
		{
			name:    "key",
			input:   keys.Ctrl,
			wantStr: `Key("Ctrl")`,
		},
		{
			name:    "keybind",
			input:   keys.Keybind{Key: "s", Modifiers: []keys.Key{keys.Ctrl}},
			wantStr: `Keybind("Ctrl+s")`,
		},
		{
			name:    "string slice",
			input:   []string{"a", "b"},
			wantStr: `["a", "b"]`,
		},
		{
			name:    "any slice",
			input:   []any{"x", 1, true},
			wantStr: `["x", 1, True]`,
		},
		{
			name:    "map",
			input:   map[string]any{"tab_width": 4},
			wantStr: `{"tab_width": 4}`,
		},
		{
			name:    "unsupported",
			input:   struct{}{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GoToStarlark(tt.input)
			if tt.wantErr {
				assert.Error(t, err, "expected error")
				return
			}
			require.NoError(t, err, "unexpected error")
			assert.Equal(t, tt.wantStr, got.String(), "GoToStarlark()")
		})
	}
}

func TestToGo(t *testing.T) {
	dict := starlark.NewDict(1)
	require.NoError(t, dict.SetKey(starlark.String("theme"), starlark.String("dark")))

	tests := []struct {
		name    string
		input   starlark.Value
		want    any
		wantErr bool
	}{
		{name: "string", input: starlark.String("hello"), want: "hello"},
		{name: "int", input: starlark.MakeInt(42), want: int64(42)},
		{name: "float", input: starlark.Float(3.14), want: 3.14},
		{name: "bool", input: starlark.Bool(true), want: true},
		{name: "none", input: starlark.None, want: nil},
		{name: "key", input: NewKeyValue("k"), want: keys.Key("k")},
		{
			name:  "tuple",
			input: starlark.Tuple{starlark.String("a"), starlark.MakeInt(1)},
			want:  []any{"a", int64(1)},
		},
		{name: "dict", input: dict, want: map[string]any{"theme": "dark"}},
		{name: "builtin unsupported", input: Predeclared()["Key"], wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToGo(tt.input)
			if tt.wantErr {
				assert.Error(t, err, "expected error")
				return
			}
			require.NoError(t, err, "unexpected error")
			assert.Equal(t, tt.want, got, "ToGo()")
		})
	}
}

func TestToKeyAndToKeybind(t *testing.T) {
	k, ok := ToKey(starlark.String("x"))
	assert.True(t, ok)
	assert.Equal(t, keys.Key("x"), k)

	k, ok = ToKey(NewKeyValue(keys.Alt))
	assert.True(t, ok)
	assert.Equal(t, keys.Alt, k)

	_, ok = ToKey(starlark.MakeInt(1))
	assert.False(t, ok)

	kb, ok := ToKeybind(NewKeybindValue(keys.Keybind{Key: "s", Modifiers: []keys.Key{keys.Ctrl}}))
	assert.True(t, ok)
	assert.Equal(t, keys.Keybind{Key: "s", Modifiers: []keys.Key{keys.Ctrl}}, kb)

	kb, ok = ToKeybind(starlark.String("q"))
	assert.True(t, ok)
	assert.Equal(t, keys.Keybind{Key: "q"}, kb)

	_, ok = ToKeybind(starlark.None)
	assert.False(t, ok)
}

func TestKeyValue_Hashable(t *testing.T) {
	d := starlark.NewDict(1)
	require.NoError(t, d.SetKey(NewKeyValue("a"), starlark.MakeInt(1)))

	v, found, err := d.Get(NewKeyValue("a"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "1", v.String())
}
