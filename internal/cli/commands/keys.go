package commands

import (
	"context"
	"os"
	"os/signal"

	"github.com/leapstack-labs/leapedit/internal/cli/output"
	"github.com/leapstack-labs/leapedit/internal/keymap"
	"github.com/leapstack-labs/leapedit/internal/scriptcfg"
	"github.com/spf13/cobra"
)

// KeyBinding is one action in keys command output.
type KeyBinding struct {
	Action      string   `json:"action" yaml:"action"`
	Binding     string   `json:"binding" yaml:"binding"`
	Keys        []string `json:"keys" yaml:"keys"`
	Description string   `json:"description" yaml:"description"`
	Enabled     bool     `json:"enabled" yaml:"enabled"`
}

// KeysOutput is the structured form of the keys command.
type KeysOutput struct {
	Script      string       `json:"script" yaml:"script"`
	Source      string       `json:"source" yaml:"source"`
	ScriptError string       `json:"script_error,omitempty" yaml:"script_error,omitempty"`
	Bindings    []KeyBinding `json:"bindings" yaml:"bindings"`
}

// NewKeysCommand creates the keys command.
func NewKeysCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Show the effective keybindings",
		Long: `Run the config script and show the resulting keymap: the built-in
bindings with the script's keybinds applied on top.

If the script fails, the keybinds from its last successful run are used
and the error is reported.`,
		Example: `  # Show bindings
  leapedit keys

  # Re-render whenever init.star is saved
  leapedit keys --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			cfg, err := cmdCtx.LoadConfig()
			if err != nil {
				return err
			}
			if err := renderKeys(cmdCtx.Renderer, cfg); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return watchKeys(ctx, cmdCtx)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload and re-render when the script changes")

	return cmd
}

func watchKeys(ctx context.Context, cmdCtx *CommandContext) error {
	r := cmdCtx.Renderer
	r.Muted("Watching " + cmdCtx.Flags.ScriptPath() + " (Ctrl+C to stop)")

	var renderErr error
	err := scriptcfg.Watch(ctx, cmdCtx.Flags, cmdCtx.Store, cmdCtx.Logger, func(cfg *scriptcfg.Config) {
		r.Println("")
		if err := renderKeys(r, cfg); err != nil && renderErr == nil {
			renderErr = err
		}
	})
	if err != nil {
		return err
	}
	return renderErr
}

func keysOutput(cfg *scriptcfg.Config) KeysOutput {
	out := KeysOutput{
		Script:   cfg.Flags().ScriptPath(),
		Source:   string(cfg.Source()),
		Bindings: []KeyBinding{},
	}
	if err := cfg.ScriptErr(); err != nil {
		out.ScriptError = err.Error()
	}

	table := cfg.Keymap()
	for _, action := range table.Actions() {
		kb, _ := table.Lookup(action)
		b, _ := table.Binding(action)
		out.Bindings = append(out.Bindings, KeyBinding{
			Action:      action,
			Binding:     b.String(),
			Keys:        kb.Keys(),
			Description: keymap.Description(action),
			Enabled:     kb.Enabled(),
		})
	}
	return out
}

func renderKeys(r *output.Renderer, cfg *scriptcfg.Config) error {
	out := keysOutput(cfg)
	if done, err := r.Structured(out); done {
		return err
	}

	styles := r.Styles()
	r.Header(1, "Keybindings")
	r.KeyValue("Script", styles.Path.Render(out.Script))
	r.KeyValue("Source", out.Source)
	if out.ScriptError != "" {
		r.Warning("script failed: " + out.ScriptError)
	}
	r.Println("")

	rows := make([][]string, 0, len(out.Bindings))
	for _, b := range out.Bindings {
		binding := styles.Bold.Render(b.Binding)
		if !b.Enabled {
			binding = styles.Muted.Render(b.Binding + " (shadowed)")
		}
		rows = append(rows, []string{b.Action, binding, b.Description})
	}
	r.Table([]string{"Action", "Binding", "Description"}, rows)
	return nil
}
