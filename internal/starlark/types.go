// Package starlark runs user config scripts and converts the values they
// produce into native keybinding records.
package starlark

import (
	"fmt"
	"slices"

	"github.com/leapstack-labs/leapedit/internal/keys"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// KeyValue is the Starlark representation of keys.Key.
// Exposed to scripts as the "Key" type.
type KeyValue struct {
	key keys.Key
}

var (
	_ starlark.Value      = KeyValue{}
	_ starlark.Comparable = KeyValue{}
)

// NewKeyValue wraps k for use in Starlark.
func NewKeyValue(k keys.Key) KeyValue {
	return KeyValue{key: k}
}

// Key returns the wrapped key.
func (v KeyValue) Key() keys.Key { return v.key }

func (v KeyValue) String() string        { return fmt.Sprintf("Key(%q)", string(v.key)) }
func (v KeyValue) Type() string          { return "Key" }
func (v KeyValue) Freeze()               {}
func (v KeyValue) Truth() starlark.Bool  { return v.key != "" }
func (v KeyValue) Hash() (uint32, error) { return starlark.String(v.key).Hash() }

// CompareSameType implements equality by key content.
func (v KeyValue) CompareSameType(op syntax.Token, y starlark.Value, _ int) (bool, error) {
	other := y.(KeyValue)
	switch op {
	case syntax.EQL:
		return v.key == other.key, nil
	case syntax.NEQ:
		return v.key != other.key, nil
	default:
		return false, fmt.Errorf("%s %s %s not implemented", v.Type(), op, y.Type())
	}
}

// KeybindValue is the Starlark representation of keys.Keybind.
// Exposed to scripts as the "Keybind" type with attributes key and modifiers.
type KeybindValue struct {
	bind keys.Keybind
}

var (
	_ starlark.Value      = KeybindValue{}
	_ starlark.HasAttrs   = KeybindValue{}
	_ starlark.Comparable = KeybindValue{}
)

// NewKeybindValue wraps kb for use in Starlark.
func NewKeybindValue(kb keys.Keybind) KeybindValue {
	return KeybindValue{bind: kb}
}

// Keybind returns the wrapped keybind.
func (v KeybindValue) Keybind() keys.Keybind { return v.bind }

func (v KeybindValue) String() string       { return fmt.Sprintf("Keybind(%q)", v.bind.String()) }
func (v KeybindValue) Type() string         { return "Keybind" }
func (v KeybindValue) Freeze()              {}
func (v KeybindValue) Truth() starlark.Bool { return starlark.True }

func (v KeybindValue) Hash() (uint32, error) {
	return starlark.String(v.bind.String()).Hash()
}

// Attr returns the key or the modifiers tuple.
func (v KeybindValue) Attr(name string) (starlark.Value, error) {
	switch name {
	case "key":
		return NewKeyValue(v.bind.Key), nil
	case "modifiers":
		mods := make(starlark.Tuple, len(v.bind.Modifiers))
		for i, m := range v.bind.Modifiers {
			mods[i] = NewKeyValue(m)
		}
		return mods, nil
	default:
		return nil, nil
	}
}

// AttrNames lists the attributes available on a Keybind.
func (v KeybindValue) AttrNames() []string {
	return []string{"key", "modifiers"}
}

// CompareSameType implements equality on key and modifier list.
func (v KeybindValue) CompareSameType(op syntax.Token, y starlark.Value, _ int) (bool, error) {
	other := y.(KeybindValue)
	eq := v.bind.Key == other.bind.Key && slices.Equal(v.bind.Modifiers, other.bind.Modifiers)
	switch op {
	case syntax.EQL:
		return eq, nil
	case syntax.NEQ:
		return !eq, nil
	default:
		return false, fmt.Errorf("%s %s %s not implemented", v.Type(), op, y.Type())
	}
}

// ToKey narrows a Starlark value to a key. Strings are accepted as keys.
func ToKey(v starlark.Value) (keys.Key, bool) {
	switch val := v.(type) {
	case KeyValue:
		return val.key, true
	case starlark.String:
		return keys.NewKey(string(val)), true
	default:
		return "", false
	}
}

// ToKeybind narrows a Starlark value to a keybind. A bare Key or string is
// accepted as a binding without modifiers.
func ToKeybind(v starlark.Value) (keys.Keybind, bool) {
	if kb, ok := v.(KeybindValue); ok {
		return kb.bind, true
	}
	if k, ok := ToKey(v); ok {
		return keys.Keybind{Key: k}, true
	}
	return keys.Keybind{}, false
}

// GoToStarlark converts a Go value to a Starlark value.
// Supported types: string, int, int64, float64, bool, keys.Key, keys.Keybind,
// []string, []any, map[string]any
func GoToStarlark(v any) (starlark.Value, error) {
	if v == nil {
		return starlark.None, nil
	}

	switch val := v.(type) {
	case string:
		return starlark.String(val), nil

	case int:
		return starlark.MakeInt(val), nil

	case int64:
		return starlark.MakeInt64(val), nil

	case float64:
		return starlark.Float(val), nil

	case bool:
		return starlark.Bool(val), nil

	case keys.Key:
		return NewKeyValue(val), nil

	case keys.Keybind:
		return NewKeybindValue(val), nil

	case []string:
		list := make([]starlark.Value, len(val))
		for i, s := range val {
			list[i] = starlark.String(s)
		}
		return starlark.NewList(list), nil

	case []any:
		list := make([]starlark.Value, len(val))
		for i, item := range val {
			sv, err := GoToStarlark(item)
			if err != nil {
				return nil, fmt.Errorf("list index %d: %w", i, err)
			}
			list[i] = sv
		}
		return starlark.NewList(list), nil

	case map[string]any:
		dict := starlark.NewDict(len(val))
		for k, v := range val {
			sv, err := GoToStarlark(v)
			if err != nil {
				return nil, fmt.Errorf("dict key %q: %w", k, err)
			}
			if err := dict.SetKey(starlark.String(k), sv); err != nil {
				return nil, fmt.Errorf("dict setkey %q: %w", k, err)
			}
		}
		return dict, nil

	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}

// ToGo converts a Starlark value back to a Go value.
// Returns: string, int64, float64, bool, keys.Key, keys.Keybind, []any,
// map[string]any, or nil
func ToGo(v starlark.Value) (any, error) {
	switch val := v.(type) {
	case starlark.NoneType:
		return nil, nil

	case starlark.String:
		return string(val), nil

	case starlark.Int:
		i64, ok := val.Int64()
		if !ok {
			// Fallback for very large integers - convert to string
			return val.String(), nil
		}
		return i64, nil

	case starlark.Float:
		return float64(val), nil

	case starlark.Bool:
		return bool(val), nil

	case KeyValue:
		return val.key, nil

	case KeybindValue:
		return val.bind, nil

	case *starlark.List:
		result := make([]any, val.Len())
		for i := 0; i < val.Len(); i++ {
			gv, err := ToGo(val.Index(i))
			if err != nil {
				return nil, fmt.Errorf("list index %d: %w", i, err)
			}
			result[i] = gv
		}
		return result, nil

	case *starlark.Dict:
		result := make(map[string]any)
		for _, item := range val.Items() {
			key, ok := item[0].(starlark.String)
			if !ok {
				return nil, fmt.Errorf("dict key must be string, got %s", item[0].Type())
			}
			gv, err := ToGo(item[1])
			if err != nil {
				return nil, fmt.Errorf("dict key %q: %w", key, err)
			}
			result[string(key)] = gv
		}
		return result, nil

	case starlark.Tuple:
		result := make([]any, val.Len())
		for i := 0; i < val.Len(); i++ {
			gv, err := ToGo(val.Index(i))
			if err != nil {
				return nil, fmt.Errorf("tuple index %d: %w", i, err)
			}
			result[i] = gv
		}
		return result, nil

	default:
		return nil, fmt.Errorf("unsupported starlark type: %s", v.Type())
	}
}
