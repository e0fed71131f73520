package commands

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leapedit/internal/blob"
	cliconfig "github.com/leapstack-labs/leapedit/internal/cli/config"
	"github.com/leapstack-labs/leapedit/internal/cli/output"
	"github.com/leapstack-labs/leapedit/internal/config"
	"github.com/leapstack-labs/leapedit/internal/scriptcfg"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Flags    config.Flags
	Logger   *slog.Logger
	Store    *blob.Store
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the flags the root
// command loaded. Commands run outside the root (tests) load flags from
// the environment instead.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	flags, ok := cliconfig.GetFlags(cmd.Context())
	if !ok {
		var err error
		flags, err = config.Load("", nil)
		if err != nil {
			return nil, err
		}
	}
	logger := cliconfig.GetLogger(cmd.Context())

	return &CommandContext{
		Flags:    flags,
		Logger:   logger,
		Store:    blob.NewStore(flags.ConfigDir(), logger),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(flags.OutputFormat())),
	}, nil
}

// LoadConfig runs the config script and loads persisted state.
func (c *CommandContext) LoadConfig() (*scriptcfg.Config, error) {
	cfg, err := scriptcfg.Load(c.Flags, c.Store, c.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
