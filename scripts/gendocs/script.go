package main

import (
	"fmt"
	"log"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/leapstack-labs/leapedit/internal/keymap"
	"github.com/leapstack-labs/leapedit/internal/keys"
	"github.com/leapstack-labs/leapedit/internal/scriptcfg"
	starctx "github.com/leapstack-labs/leapedit/internal/starlark"
)

// builtinDocs describes the predeclared script functions.
var builtinDocs = map[string]string{
	"Key":     "`Key(name)` returns a key. Names are case-sensitive; `Key(\"Ctrl\") == modifiers.Ctrl`.",
	"Keybind": "`Keybind(key, modifiers=[])` pairs a key (Key or string) with modifier keys. Entries that are not modifiers are ignored with a warning.",
}

// generateScriptDocs generates the config script API reference.
func generateScriptDocs(outDir string) error {
	log.Printf("Generating script docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Config Script", "The Starlark API available in init.star")
	w.GeneratedMarker()

	w.Header(1, "Config Script")
	w.Paragraph("The config script is Starlark. It may define two globals: " +
		InlineCode(starctx.KeybindsGlobal) + ", a dict from action name to Keybind, and " +
		InlineCode(starctx.SettingsGlobal) + ", a dict of editor settings.")

	w.Header(2, "Builtins")
	globals := starctx.Predeclared()
	var rows [][]string
	for _, name := range slices.Sorted(maps.Keys(globals)) {
		if doc, ok := builtinDocs[name]; ok {
			rows = append(rows, []string{InlineCode(name), doc})
		}
	}
	w.Table([]string{"Name", "Description"}, rows)

	w.Header(2, "Modifiers")
	w.Paragraph("The " + InlineCode(starctx.ModifiersModule) + " module holds the modifier keys:")
	var mods []string
	for _, k := range keys.Sentinels {
		mods = append(mods, InlineCode(starctx.ModifiersModule+"."+string(k)))
	}
	w.BulletList(mods)

	w.Header(2, "Defaults")
	w.Paragraph("The frozen " + InlineCode(starctx.DefaultsModule) + " module holds the built-in values, so a script can derive from them instead of repeating them:")
	w.BulletList([]string{
		InlineCode(starctx.DefaultsModule+"."+starctx.SettingsGlobal) + ": dict of the default settings below",
		InlineCode(starctx.DefaultsModule+"."+starctx.KeybindsGlobal) + ": dict from action to its default Keybind",
	})

	w.Header(2, "Actions")
	w.Paragraph("Built-in actions and their default bindings. A script keybind for a new action name adds it.")
	defaults := keymap.Defaults()
	rows = nil
	for _, action := range slices.Sorted(maps.Keys(defaults)) {
		rows = append(rows, []string{InlineCode(action), InlineCode(defaults[action].String()), keymap.Description(action)})
	}
	w.Table([]string{"Action", "Default", "Description"}, rows)

	w.Header(2, "Settings")
	s := scriptcfg.DefaultSettings()
	w.Table([]string{"Key", "Default"}, [][]string{
		{InlineCode("tab_width"), fmt.Sprintf("%d (%d-%d)", s.TabWidth, scriptcfg.MinTabWidth, scriptcfg.MaxTabWidth)},
		{InlineCode("theme"), InlineCode(s.Theme)},
		{InlineCode("line_numbers"), strconv.FormatBool(s.LineNumbers)},
		{InlineCode("soft_wrap"), strconv.FormatBool(s.SoftWrap)},
		{InlineCode("font_size"), strconv.FormatFloat(s.FontSize, 'g', -1, 64)},
	})

	w.Header(2, "Example")
	w.CodeBlock("python", `keybinds = {
    "save": Keybind(Key("s"), [modifiers.Ctrl]),
    "palette": Keybind("p", [modifiers.Ctrl, modifiers.Shift]),
    "quit": Keybind(defaults.keybinds["quit"].key, [modifiers.Alt]),
}

settings = {"tab_width": defaults.settings["tab_width"] // 2, "theme": "dark"}`)

	filename := filepath.Join(outDir, "script.md")
	if err := os.WriteFile(filename, w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated script.md")
	return nil
}
