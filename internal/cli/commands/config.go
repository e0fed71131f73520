package commands

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/leapstack-labs/leapedit/internal/blob"
	"github.com/leapstack-labs/leapedit/internal/recent"
	"github.com/leapstack-labs/leapedit/internal/scriptcfg"
	"github.com/spf13/cobra"
)

// ConfigOutput is the structured form of `config show`.
type ConfigOutput struct {
	ConfigFile string             `json:"config_file" yaml:"config_file"`
	Flags      map[string]any     `json:"flags" yaml:"flags"`
	Settings   scriptcfg.Settings `json:"settings" yaml:"settings"`
	Source     string             `json:"source" yaml:"source"`
}

// PathsOutput is the structured form of `config path`.
type PathsOutput struct {
	ConfigDir  string `json:"config_dir" yaml:"config_dir"`
	ConfigFile string `json:"config_file" yaml:"config_file"`
	Script     string `json:"script" yaml:"script"`
	Recents    string `json:"recents" yaml:"recents"`
	Keybinds   string `json:"keybinds" yaml:"keybinds"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and initialise configuration",
		Long: `Inspect the effective configuration or create the starter files.

Settings are layered, lowest precedence first: built-in defaults,
leapedit.yaml, LEAPEDIT_* environment variables, command-line flags.`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigPathCommand())
	cmd.AddCommand(newConfigInitCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective flags and editor settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			cfg, err := cmdCtx.LoadConfig()
			if err != nil {
				return err
			}

			out := ConfigOutput{
				ConfigFile: cmdCtx.Flags.ConfigFile(),
				Flags:      cmdCtx.Flags.Map(),
				Settings:   cfg.Settings(),
				Source:     string(cfg.Source()),
			}

			r := cmdCtx.Renderer
			if done, err := r.Structured(out); done {
				return err
			}

			r.Header(1, "Configuration")
			configFile := out.ConfigFile
			if configFile == "" {
				configFile = "(none)"
			}
			r.KeyValue("File", configFile)
			r.KeyValue("Max recents", strconv.Itoa(cmdCtx.Flags.MaxRecents()))
			r.KeyValue("Config dir", cmdCtx.Flags.ConfigDir())
			r.KeyValue("Script", cmdCtx.Flags.ScriptPath())
			r.KeyValue("Log level", cmdCtx.Flags.LogLevel().String())
			r.KeyValue("Output", cmdCtx.Flags.OutputFormat())
			r.Println("")

			s := out.Settings
			r.Header(2, "Editor settings ("+out.Source+")")
			r.KeyValue("Tab width", strconv.Itoa(s.TabWidth))
			r.KeyValue("Theme", s.Theme)
			r.KeyValue("Line numbers", strconv.FormatBool(s.LineNumbers))
			r.KeyValue("Soft wrap", strconv.FormatBool(s.SoftWrap))
			r.KeyValue("Font size", strconv.FormatFloat(s.FontSize, 'g', -1, 64))
			return nil
		},
	}
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show where configuration and state are stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			root := cmdCtx.Flags.ConfigDir()
			out := PathsOutput{
				ConfigDir:  root,
				ConfigFile: cmdCtx.Flags.DefaultFile(),
				Script:     cmdCtx.Flags.ScriptPath(),
				Recents:    filepath.Join(root, recent.DirName, blob.ArtifactFile),
				Keybinds:   filepath.Join(root, scriptcfg.KeybindsDirName, blob.ArtifactFile),
			}

			r := cmdCtx.Renderer
			if done, err := r.Structured(out); done {
				return err
			}

			r.KeyValue("Config dir", out.ConfigDir)
			r.KeyValue("Config file", out.ConfigFile)
			r.KeyValue("Script", out.Script)
			r.KeyValue("Recents", out.Recents)
			r.KeyValue("Keybinds", out.Keybinds)
			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the starter config file, script and state",
		Long: `Create leapedit.yaml and init.star in the config directory and
initialise the persisted state with defaults.

Existing files are kept unless --force is given. Persisted state is never
overwritten.`,
		Example: `  # Initialise the default config directory
  leapedit config init

  # Initialise somewhere else
  leapedit config init --config-dir ./leapedit-config`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			r := cmdCtx.Renderer

			r.Header(2, "Files")
			for _, f := range starterFiles(cmdCtx.Flags.ScriptPath(), cmdCtx.Flags.DefaultFile()) {
				written, err := copyTemplate(f.Name, f.Target, force)
				if err != nil {
					return fmt.Errorf("failed to write %s: %w", f.Target, err)
				}
				r.StatusLine(f.Target, initStatus(written), initDetail(written))
			}

			results, err := scriptcfg.Seed(cmdCtx.Store, cmdCtx.Logger)
			if err != nil {
				return fmt.Errorf("failed to initialise state: %w", err)
			}

			r.Println("")
			r.Header(2, "State")
			for _, res := range results {
				r.StatusLine(res.Path, initStatus(res.Written), initDetail(res.Written))
			}

			r.Println("")
			r.Success("leapedit configuration initialised")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config file and script")

	return cmd
}

func initStatus(written bool) string {
	if written {
		return "success"
	}
	return "skipped"
}

func initDetail(written bool) string {
	if written {
		return ""
	}
	return "(exists)"
}
