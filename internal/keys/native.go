package keys

import (
	"fmt"
	"slices"
	"strings"
)

// KeyKind distinguishes literal character keys from named keys.
type KeyKind int

// Key kinds.
const (
	KindCharacter KeyKind = iota
	KindNamed
)

// NamedKey identifies a non-character key.
type NamedKey string

// Named keys, spelled the way bubbletea reports them.
const (
	KeyEnter     NamedKey = "enter"
	KeyEscape    NamedKey = "esc"
	KeyTab       NamedKey = "tab"
	KeySpace     NamedKey = "space"
	KeyBackspace NamedKey = "backspace"
	KeyDelete    NamedKey = "delete"
	KeyInsert    NamedKey = "insert"
	KeyUp        NamedKey = "up"
	KeyDown      NamedKey = "down"
	KeyLeft      NamedKey = "left"
	KeyRight     NamedKey = "right"
	KeyHome      NamedKey = "home"
	KeyEnd       NamedKey = "end"
	KeyPageUp    NamedKey = "pgup"
	KeyPageDown  NamedKey = "pgdown"
)

// namedAliases maps lower-cased user spellings to named keys.
var namedAliases = map[string]NamedKey{
	"enter":      KeyEnter,
	"return":     KeyEnter,
	"esc":        KeyEscape,
	"escape":     KeyEscape,
	"tab":        KeyTab,
	"space":      KeySpace,
	"backspace":  KeyBackspace,
	"delete":     KeyDelete,
	"del":        KeyDelete,
	"insert":     KeyInsert,
	"up":         KeyUp,
	"arrowup":    KeyUp,
	"down":       KeyDown,
	"arrowdown":  KeyDown,
	"left":       KeyLeft,
	"arrowleft":  KeyLeft,
	"right":      KeyRight,
	"arrowright": KeyRight,
	"home":       KeyHome,
	"end":        KeyEnd,
	"pageup":     KeyPageUp,
	"pgup":       KeyPageUp,
	"pagedown":   KeyPageDown,
	"pgdown":     KeyPageDown,
}

func init() {
	for i := 1; i <= 12; i++ {
		name := fmt.Sprintf("f%d", i)
		namedAliases[name] = NamedKey(name)
	}
}

// NativeKey is the UI-layer key: either a literal character or a named key.
type NativeKey struct {
	Kind  KeyKind
	Char  string
	Named NamedKey
}

// Character returns a literal character key.
func Character(s string) NativeKey {
	return NativeKey{Kind: KindCharacter, Char: s}
}

// Named returns a named key.
func Named(n NamedKey) NativeKey {
	return NativeKey{Kind: KindNamed, Named: n}
}

// Native converts k to its UI form. Multi-letter names that match a known
// named key (case-insensitive) become named keys; everything else, including
// every single character, is a literal character key.
func (k Key) Native() NativeKey {
	s := string(k)
	if len([]rune(s)) > 1 {
		if n, ok := namedAliases[strings.ToLower(s)]; ok {
			return Named(n)
		}
	}
	return Character(s)
}

func (n NativeKey) String() string {
	if n.Kind == KindNamed {
		return string(n.Named)
	}
	return n.Char
}

// Binding is a resolved shortcut: a native key plus an ordered set of
// modifiers.
type Binding struct {
	Key       NativeKey
	Modifiers []Modifier
}

// Has reports whether m is among the binding's modifiers.
func (b Binding) Has(m Modifier) bool {
	return slices.Contains(b.Modifiers, m)
}

// canonicalOrder is the modifier prefix order used by String. It matches
// how bubbletea renders key messages (alt before ctrl before shift).
var canonicalOrder = []Modifier{ModSuper, ModAlt, ModCtrl, ModShift}

// String renders the binding as "ctrl+shift+s" style text.
func (b Binding) String() string {
	var sb strings.Builder
	for _, m := range canonicalOrder {
		if b.Has(m) {
			sb.WriteString(m.String())
			sb.WriteByte('+')
		}
	}
	sb.WriteString(b.Key.String())
	return sb.String()
}

// Keybind converts b back to the script form, with modifiers spelled as
// the sentinel keys.
func (b Binding) Keybind() Keybind {
	kb := Keybind{Key: Key(b.Key.String())}
	for _, m := range b.Modifiers {
		if k := m.Key(); k != "" {
			kb.Modifiers = append(kb.Modifiers, k)
		}
	}
	return kb
}

// ParseBinding parses the text form produced by Binding.String. Modifier
// prefixes are case-insensitive; the final segment is the key. The plus key
// itself is written as a trailing "++" ("ctrl++") or a lone "+".
func ParseBinding(s string) (Binding, error) {
	if s == "" {
		return Binding{}, fmt.Errorf("empty binding")
	}

	parts := strings.Split(s, "+")
	last, mods := parts[len(parts)-1], parts[:len(parts)-1]
	if last == "" {
		// Only an empty segment before the trailing one spells the plus key.
		if len(mods) == 0 || mods[len(mods)-1] != "" {
			return Binding{}, fmt.Errorf("binding %q: missing key", s)
		}
		last, mods = "+", mods[:len(mods)-1]
	}

	var b Binding
	for _, p := range mods {
		var m Modifier
		switch strings.ToLower(p) {
		case "super", "cmd", "meta":
			m = ModSuper
		case "ctrl", "control":
			m = ModCtrl
		case "alt", "option":
			m = ModAlt
		case "shift":
			m = ModShift
		default:
			return Binding{}, fmt.Errorf("binding %q: unknown modifier %q", s, p)
		}
		if !b.Has(m) {
			b.Modifiers = append(b.Modifiers, m)
		}
	}
	b.Key = Key(last).Native()
	return b, nil
}
