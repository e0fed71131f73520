// Package keys defines the native keybinding records produced from user
// scripts: keys, modifiers, and bindings that the UI layer consumes.
package keys

import (
	"log/slog"
	"slices"
	"strings"
)

// Key is a key identifier exactly as written by the user, e.g. "s" or "Ctrl".
// Two keys are equal iff their strings are equal.
type Key string

// Modifier sentinels. A Key is a modifier only if it equals one of these.
const (
	Super Key = "Super"
	Ctrl  Key = "Ctrl"
	Alt   Key = "Alt"
	Shift Key = "Shift"
)

// Sentinels lists the modifier keys in canonical order.
var Sentinels = []Key{Super, Ctrl, Alt, Shift}

// Modifier is the closed set of modifier keys.
type Modifier int

// Modifier values. ModNone means "not a modifier".
const (
	ModNone Modifier = iota
	ModSuper
	ModCtrl
	ModAlt
	ModShift
)

func (m Modifier) String() string {
	switch m {
	case ModSuper:
		return "super"
	case ModCtrl:
		return "ctrl"
	case ModAlt:
		return "alt"
	case ModShift:
		return "shift"
	default:
		return "none"
	}
}

// Key returns the sentinel key for m, or "" for ModNone.
func (m Modifier) Key() Key {
	switch m {
	case ModSuper:
		return Super
	case ModCtrl:
		return Ctrl
	case ModAlt:
		return Alt
	case ModShift:
		return Shift
	default:
		return ""
	}
}

// NewKey wraps s as a Key.
func NewKey(s string) Key {
	return Key(s)
}

func (k Key) String() string {
	return string(k)
}

// Modifier resolves k against the sentinels. Anything else logs a warning
// and reports ok=false.
func (k Key) Modifier(logger *slog.Logger) (Modifier, bool) {
	switch k {
	case Super:
		return ModSuper, true
	case Ctrl:
		return ModCtrl, true
	case Alt:
		return ModAlt, true
	case Shift:
		return ModShift, true
	}

	if logger != nil {
		logger.Warn(string(k)+" is not a modifier", "key", string(k))
	}
	return ModNone, false
}

// Keybind is a trigger key plus the keys meant as its modifiers. The
// modifier keys are kept as written and only resolved by Binding.
type Keybind struct {
	Key       Key   `cbor:"key"`
	Modifiers []Key `cbor:"modifiers"`
}

// NewKeybind builds a Keybind from a trigger and a heterogeneous list.
// Items that are not a Key or a string are dropped without error.
func NewKeybind(key Key, items []any) Keybind {
	var mods []Key
	for _, item := range items {
		if k, ok := AsKey(item); ok {
			mods = append(mods, k)
		}
	}
	return Keybind{Key: key, Modifiers: mods}
}

// AsKey narrows an untyped value to a Key.
func AsKey(v any) (Key, bool) {
	switch val := v.(type) {
	case Key:
		return val, true
	case string:
		return Key(val), true
	default:
		return "", false
	}
}

// Binding resolves the keybind into its UI form. Modifier keys that are not
// one of the sentinels are logged and left out; duplicates collapse to the
// first occurrence.
func (kb Keybind) Binding(logger *slog.Logger) Binding {
	var mods []Modifier
	for _, k := range kb.Modifiers {
		m, ok := k.Modifier(logger)
		if !ok || slices.Contains(mods, m) {
			continue
		}
		mods = append(mods, m)
	}
	return Binding{Key: kb.Key.Native(), Modifiers: mods}
}

func (kb Keybind) String() string {
	parts := make([]string, 0, len(kb.Modifiers)+1)
	for _, m := range kb.Modifiers {
		parts = append(parts, string(m))
	}
	parts = append(parts, string(kb.Key))
	return strings.Join(parts, "+")
}
