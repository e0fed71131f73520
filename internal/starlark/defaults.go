package starlark

import (
	"fmt"

	"github.com/leapstack-labs/leapedit/internal/keys"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// DefaultsModule is the name of the module exposing the built-in settings
// and keybinds to scripts.
const DefaultsModule = "defaults"

// NewDefaults builds the frozen defaults module. Scripts read it as
// defaults.settings["tab_width"] or defaults.keybinds["save"].
func NewDefaults(settings map[string]any, keybinds map[string]keys.Keybind) (*starlarkstruct.Module, error) {
	sv, err := GoToStarlark(settings)
	if err != nil {
		return nil, fmt.Errorf("default settings: %w", err)
	}

	binds := make(map[string]any, len(keybinds))
	for action, kb := range keybinds {
		binds[action] = kb
	}
	kv, err := GoToStarlark(binds)
	if err != nil {
		return nil, fmt.Errorf("default keybinds: %w", err)
	}

	m := &starlarkstruct.Module{
		Name: DefaultsModule,
		Members: starlark.StringDict{
			SettingsGlobal: sv,
			KeybindsGlobal: kv,
		},
	}
	m.Freeze()
	return m, nil
}
