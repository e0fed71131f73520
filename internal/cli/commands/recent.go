package commands

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/leapstack-labs/leapedit/internal/recent"
	"github.com/spf13/cobra"
)

// RecentFile is one entry in recent command output.
type RecentFile struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// RecentOutput is the structured form of `recent list`.
type RecentOutput struct {
	Limit int          `json:"limit" yaml:"limit"`
	Count int          `json:"count" yaml:"count"`
	Files []RecentFile `json:"files" yaml:"files"`
}

// NewRecentCommand creates the recent command group.
func NewRecentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Manage the recent-files list",
		Long: `Show, extend or clear the list of recently opened files.

The list keeps at most --max-recents entries; adding a file that is already
present makes it the most recent again.`,
	}

	cmd.AddCommand(newRecentListCommand())
	cmd.AddCommand(newRecentAddCommand())
	cmd.AddCommand(newRecentClearCommand())

	return cmd
}

func newRecentListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recent files, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			reg, err := recent.Read(cmdCtx.Store, cmdCtx.Logger)
			if err != nil {
				return err
			}

			out := RecentOutput{
				Limit: cmdCtx.Flags.MaxRecents(),
				Count: reg.Len(),
				Files: []RecentFile{},
			}
			for p := range reg.Newest() {
				out.Files = append(out.Files, RecentFile{Name: recent.DisplayName(p, cmdCtx.Logger), Path: p})
			}

			r := cmdCtx.Renderer
			if done, err := r.Structured(out); done {
				return err
			}

			r.Header(1, fmt.Sprintf("Recent files (%d of %d)", out.Count, out.Limit))
			rows := make([][]string, 0, len(out.Files))
			for i, f := range out.Files {
				rows = append(rows, []string{strconv.Itoa(i + 1), f.Name, r.Styles().Path.Render(f.Path)})
			}
			r.Table([]string{"#", "Name", "Path"}, rows)
			return nil
		},
	}
}

func newRecentAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <path>...",
		Short: "Record files as recently opened",
		Long: `Record one or more files as recently opened, in the order given.
The last path becomes the most recent. Paths are made absolute.`,
		Example: `  leapedit recent add notes.md todo.txt`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			reg, err := recent.Read(cmdCtx.Store, cmdCtx.Logger)
			if err != nil {
				return err
			}

			for _, arg := range args {
				p, err := filepath.Abs(arg)
				if err != nil {
					return fmt.Errorf("resolving %s: %w", arg, err)
				}
				reg.Add(cmdCtx.Flags, p)
			}
			reg.Write()

			cmdCtx.Renderer.Success(fmt.Sprintf("Recorded %d file(s); %d in list", len(args), reg.Len()))
			return nil
		},
	}
}

func newRecentClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget all recent files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			if err := cmdCtx.Store.Remove(recent.DirName); err != nil {
				return err
			}

			cmdCtx.Renderer.Success("Recent files cleared")
			return nil
		},
	}
}
