// Package output renders CLI results as styled text, JSON or YAML.
package output

import "strings"

// OutputMode selects how command results are written.
type OutputMode string

// Output modes.
const (
	ModeAuto OutputMode = "auto" // text on a terminal, JSON otherwise
	ModeText OutputMode = "text"
	ModeJSON OutputMode = "json"
	ModeYAML OutputMode = "yaml"
)

// Modes lists every accepted mode, for flag completion.
var Modes = []string{string(ModeAuto), string(ModeText), string(ModeJSON), string(ModeYAML)}

// Mode parses s. Unknown values fall back to ModeAuto.
func Mode(s string) OutputMode {
	switch m := OutputMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeText, ModeJSON, ModeYAML:
		return m
	default:
		return ModeAuto
	}
}

// Structured reports whether m produces machine-readable output.
func (m OutputMode) Structured() bool {
	return m == ModeJSON || m == ModeYAML
}
