package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/leapstack-labs/leapedit/internal/blob"
	"github.com/leapstack-labs/leapedit/internal/config"
	"github.com/leapstack-labs/leapedit/internal/recent"
	"github.com/leapstack-labs/leapedit/internal/scriptcfg"
)

// ConfigField represents a key in leapedit.yaml.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
}

// getConfigSchema returns the config file keys.
// This is based on internal/config/types.go Values.
func getConfigSchema() []ConfigField {
	return []ConfigField{
		{Name: "max_recents", Type: "int", Default: strconv.Itoa(config.DefaultMaxRecents), Description: "Maximum number of recent files to keep"},
		{Name: "config_dir", Type: "string", Default: "platform config dir + `/" + blob.AppDirName + "`", Description: "Directory holding the script and persisted state"},
		{Name: "script", Type: "string", Default: "`<config_dir>/" + config.DefaultScriptName + "`", Description: "Path to the config script"},
		{Name: "log_level", Type: "string", Default: config.DefaultLogLevel, Description: "debug, info, warn or error"},
		{Name: "output", Type: "string", Default: config.DefaultOutput, Description: "auto, text, json or yaml"},
	}
}

// generateConfigDocs generates the configuration reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "leapedit configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("Settings are layered, lowest precedence first: built-in defaults, " +
		InlineCode(config.ConfigFileName) + " in the config directory, " +
		InlineCode(config.EnvPrefix+"*") + " environment variables, command-line flags.")

	w.Header(2, "Config File Keys")
	var rows [][]string
	for _, f := range getConfigSchema() {
		rows = append(rows, []string{InlineCode(f.Name), f.Type, f.Default, f.Description})
	}
	w.Table([]string{"Key", "Type", "Default", "Description"}, rows)

	w.Header(2, "Persisted State")
	w.Paragraph("leapedit stores state next to the config script. Each artifact is a zstd-compressed CBOR file; an unreadable artifact is replaced by its default.")
	w.Table([]string{"Path", "Contents"}, [][]string{
		{InlineCode(filepath.Join(recent.DirName, blob.ArtifactFile)), "Recently opened files, oldest first"},
		{InlineCode(filepath.Join(scriptcfg.KeybindsDirName, blob.ArtifactFile)), "Keybinds from the last successful script run"},
	})

	w.Header(2, "Example")
	w.CodeBlock("yaml", fmt.Sprintf(`max_recents: %d
log_level: %s
output: %s`, config.DefaultMaxRecents, config.DefaultLogLevel, config.DefaultOutput))

	filename := filepath.Join(outDir, "configuration.md")
	if err := os.WriteFile(filename, w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated configuration.md")
	return nil
}
