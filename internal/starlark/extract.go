package starlark

import (
	"log/slog"

	"github.com/leapstack-labs/leapedit/internal/keys"
	"go.starlark.net/starlark"
)

// Globals read from a config script.
const (
	KeybindsGlobal = "keybinds"
	SettingsGlobal = "settings"
)

// Keybinds extracts the keybinds dict (action -> Keybind) from script
// globals. Entries that do not convert are logged and skipped.
func Keybinds(globals starlark.StringDict, logger *slog.Logger) map[string]keys.Keybind {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	v, ok := globals[KeybindsGlobal]
	if !ok {
		return nil
	}
	dict, ok := v.(*starlark.Dict)
	if !ok {
		logger.Warn("keybinds must be a dict", "type", v.Type())
		return nil
	}

	out := make(map[string]keys.Keybind, dict.Len())
	for _, item := range dict.Items() {
		action, ok := starlark.AsString(item[0])
		if !ok || action == "" {
			logger.Warn("ignoring keybind with non-string action", "action", item[0].String())
			continue
		}
		kb, ok := ToKeybind(item[1])
		if !ok {
			logger.Warn("ignoring keybind that is not a Keybind", "action", action, "type", item[1].Type())
			continue
		}
		out[action] = kb
	}
	return out
}

// Settings extracts the settings dict from script globals as plain Go
// values. A missing or malformed dict yields nil.
func Settings(globals starlark.StringDict, logger *slog.Logger) map[string]any {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	v, ok := globals[SettingsGlobal]
	if !ok {
		return nil
	}
	if _, ok := v.(*starlark.Dict); !ok {
		logger.Warn("settings must be a dict", "type", v.Type())
		return nil
	}

	gv, err := ToGo(v)
	if err != nil {
		logger.Warn("ignoring settings", "error", err)
		return nil
	}
	m, _ := gv.(map[string]any)
	return m
}
