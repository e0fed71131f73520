package starlark

import (
	"fmt"
	"sync"

	"github.com/leapstack-labs/leapedit/internal/keys"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// ModifiersModule is the name of the module holding the modifier sentinels.
const ModifiersModule = "modifiers"

// predeclared is built once per process and frozen, so every script sees
// the same sentinel values.
var predeclared = sync.OnceValue(func() starlark.StringDict {
	globals := starlark.StringDict{
		"Key":           starlark.NewBuiltin("Key", keyBuiltin),
		"Keybind":       starlark.NewBuiltin("Keybind", keybindBuiltin),
		ModifiersModule: modifiersModule(),
	}
	globals.Freeze()
	return globals
})

// Predeclared returns the globals available to every config script:
// Key, Keybind and the modifiers module. The returned dict is shared and
// must not be modified.
func Predeclared() starlark.StringDict {
	return predeclared()
}

// modifiersModule exposes the four sentinel keys as modifiers.Super etc.
func modifiersModule() *starlarkstruct.Module {
	members := make(starlark.StringDict, len(keys.Sentinels))
	for _, k := range keys.Sentinels {
		members[string(k)] = NewKeyValue(k)
	}
	return &starlarkstruct.Module{Name: ModifiersModule, Members: members}
}

// keyBuiltin implements Key(name).
func keyBuiltin(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &name); err != nil {
		return nil, err
	}
	return NewKeyValue(keys.NewKey(name)), nil
}

// keybindBuiltin implements Keybind(key, modifiers=[]).
// The trigger must be a Key or a string. Modifier entries that are not keys
// are dropped; unknown modifier names are reported when the binding is
// resolved, not here.
func keybindBuiltin(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		trigger   starlark.Value
		modifiers starlark.Iterable
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "key", &trigger, "modifiers?", &modifiers); err != nil {
		return nil, err
	}

	key, ok := ToKey(trigger)
	if !ok {
		return nil, fmt.Errorf("%s: key must be Key or string, got %s", b.Name(), trigger.Type())
	}

	var items []any
	if modifiers != nil {
		iter := modifiers.Iterate()
		defer iter.Done()

		var item starlark.Value
		for iter.Next(&item) {
			items = append(items, bridgeItem(item))
		}
	}

	return NewKeybindValue(keys.NewKeybind(key, items)), nil
}

// bridgeItem converts a list element to Go so keys.NewKeybind can decide
// whether it is a key. Values with no Go form are passed through and dropped.
func bridgeItem(v starlark.Value) any {
	if g, err := ToGo(v); err == nil {
		return g
	}
	return v
}
