package commands

import (
	"fmt"
	"path/filepath"

	"github.com/leapstack-labs/leapedit/internal/recent"
	"github.com/spf13/cobra"
)

// NewOpenCommand creates the open command.
func NewOpenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "open <path>",
		Short: "Open a file and record it as recent",
		Long: `Load the configuration and record the file as the most recently
opened one, exactly as the editor does when a file is opened.`,
		Example: `  leapedit open ~/notes/todo.md`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			p, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolving %s: %w", args[0], err)
			}

			cfg, err := cmdCtx.LoadConfig()
			if err != nil {
				return err
			}
			cfg.OpenFile(p)

			cmdCtx.Renderer.Success(fmt.Sprintf("Opened %s", recent.DisplayName(p, cmdCtx.Logger)))
			return nil
		},
	}
}
