// Package keymap turns resolved keybinds into bubbles key bindings that
// an editor UI can match against bubbletea key messages.
package keymap

import (
	"maps"
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leapstack-labs/leapedit/internal/keys"
)

// Editor actions bound by default.
const (
	ActionOpen     = "open"
	ActionSave     = "save"
	ActionNewTab   = "new_tab"
	ActionCloseTab = "close_tab"
	ActionQuit     = "quit"
	ActionFind     = "find"
	ActionUndo     = "undo"
	ActionRedo     = "redo"
	ActionHome     = "home"
)

var defaultBindings = map[string]string{
	ActionOpen:     "ctrl+o",
	ActionSave:     "ctrl+s",
	ActionNewTab:   "ctrl+t",
	ActionCloseTab: "ctrl+w",
	ActionQuit:     "ctrl+q",
	ActionFind:     "ctrl+f",
	ActionUndo:     "ctrl+z",
	ActionRedo:     "ctrl+y",
	ActionHome:     "home",
}

var descriptions = map[string]string{
	ActionOpen:     "open file",
	ActionSave:     "save",
	ActionNewTab:   "new tab",
	ActionCloseTab: "close tab",
	ActionQuit:     "quit",
	ActionFind:     "find",
	ActionUndo:     "undo",
	ActionRedo:     "redo",
	ActionHome:     "line start",
}

// Defaults returns the built-in bindings. The map is freshly allocated.
func Defaults() map[string]keys.Binding {
	out := make(map[string]keys.Binding, len(defaultBindings))
	for action, s := range defaultBindings {
		b, err := keys.ParseBinding(s)
		if err != nil {
			panic(err) // defaultBindings is static
		}
		out[action] = b
	}
	return out
}

// Description returns the help text for action. Unknown actions describe
// themselves.
func Description(action string) string {
	if d, ok := descriptions[action]; ok {
		return d
	}
	return action
}

// Table maps editor actions to key bindings. A Table is immutable once
// built; Overlay returns a new one.
type Table struct {
	resolved map[string]keys.Binding
	bindings map[string]key.Binding
	actions  []string
}

// New builds a table from resolved bindings.
func New(bindings map[string]keys.Binding) *Table {
	t := &Table{
		resolved: make(map[string]keys.Binding, len(bindings)),
		bindings: make(map[string]key.Binding, len(bindings)),
	}
	for action, b := range bindings {
		t.resolved[action] = b
		t.bindings[action] = newKeyBinding(action, b)
	}
	t.actions = slices.Sorted(maps.Keys(t.bindings))
	return t
}

func newKeyBinding(action string, b keys.Binding) key.Binding {
	return key.NewBinding(
		key.WithKeys(bubbleKeys(b)...),
		key.WithHelp(b.String(), Description(action)),
	)
}

// bubbleKeys lists the strings bubbletea reports for b.
func bubbleKeys(b keys.Binding) []string {
	out := []string{b.String()}

	switch {
	case b.Key.Kind == keys.KindNamed && b.Key.Named == keys.KeySpace:
		out = append(out, replaceKey(b, " "))
	case b.Key.Kind == keys.KindCharacter && b.Has(keys.ModShift):
		// Terminals deliver shift+letter as the upper-case rune.
		r, size := utf8.DecodeRuneInString(b.Key.Char)
		if size == len(b.Key.Char) && unicode.IsLetter(r) {
			shifted := keys.Binding{Key: keys.Character(string(unicode.ToUpper(r)))}
			for _, m := range b.Modifiers {
				if m != keys.ModShift {
					shifted.Modifiers = append(shifted.Modifiers, m)
				}
			}
			out = append(out, shifted.String())
		}
	}
	return out
}

func replaceKey(b keys.Binding, char string) string {
	b.Key = keys.Character(char)
	return b.String()
}

// Lookup returns the key binding for action.
func (t *Table) Lookup(action string) (key.Binding, bool) {
	b, ok := t.bindings[action]
	return b, ok
}

// Binding returns the resolved binding for action.
func (t *Table) Binding(action string) (keys.Binding, bool) {
	b, ok := t.resolved[action]
	return b, ok
}

// Actions returns every bound action in sorted order.
func (t *Table) Actions() []string {
	return slices.Clone(t.actions)
}

// Len returns the number of actions.
func (t *Table) Len() int {
	return len(t.actions)
}

// Match returns the action bound to msg. When several actions share a key
// the first in sorted order wins.
func (t *Table) Match(msg tea.KeyMsg) (string, bool) {
	for _, action := range t.actions {
		if key.Matches(msg, t.bindings[action]) {
			return action, true
		}
	}
	return "", false
}

// Overlay returns a new table with overrides applied on top of t. An
// existing action whose binding collides with an override for a different
// action is disabled so the override wins.
func (t *Table) Overlay(overrides map[string]keys.Binding) *Table {
	merged := maps.Clone(t.resolved)
	if merged == nil {
		merged = make(map[string]keys.Binding, len(overrides))
	}
	maps.Copy(merged, overrides)

	out := New(merged)

	taken := make(map[string]string, len(overrides))
	for action, b := range overrides {
		taken[b.String()] = action
	}
	for _, action := range out.actions {
		if _, overridden := overrides[action]; overridden {
			continue
		}
		if owner, ok := taken[out.resolved[action].String()]; ok && owner != action {
			kb := out.bindings[action]
			kb.SetEnabled(false)
			out.bindings[action] = kb
		}
	}
	return out
}

// ShortHelp implements help.KeyMap.
func (t *Table) ShortHelp() []key.Binding {
	out := make([]key.Binding, 0, len(t.actions))
	for _, action := range t.actions {
		if b := t.bindings[action]; b.Enabled() {
			out = append(out, b)
		}
	}
	return out
}

// FullHelp implements help.KeyMap.
func (t *Table) FullHelp() [][]key.Binding {
	return [][]key.Binding{t.ShortHelp()}
}
