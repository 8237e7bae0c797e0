package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/csheth/journalscout/internal/journal"
	"github.com/csheth/journalscout/internal/viewer"
)

func addOpen(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "open <id>",
		Short: "Open a downloaded issue in the default PDF viewer.",
		Example: `
journalscout open 1234
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeps()
			if err != nil {
				return err
			}
			viewer.SetOutput(cmd.ErrOrStderr())
			return runOpen(cmd.OutOrStdout(), viewer.Desktop{}, d.cfg.DownloadsDir, args[0])
		},
	}
	topLevel.AddCommand(cmd)
}

func runOpen(out io.Writer, launcher viewer.Launcher, dir, input string) error {
	id, err := journal.NormalizeID(input)
	if err != nil {
		return err
	}
	path := journal.PathFor(dir, id)
	if !journal.Exists(path) {
		color.New(color.FgYellow).Fprintln(out, "File not found.")
		return fmt.Errorf("%w: %s", journal.ErrNotFound, path)
	}
	if err := viewer.OpenFile(launcher, path); err != nil {
		color.New(color.FgRed).Fprintln(out, "No PDF viewer found.")
		return err
	}
	fmt.Fprintln(out, "Opened", path)
	return nil
}

func addRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a downloaded issue.",
		Example: `
journalscout rm 1234
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeps()
			if err != nil {
				return err
			}
			return runRemove(cmd.OutOrStdout(), d.cfg.DownloadsDir, args[0])
		},
	}
	topLevel.AddCommand(cmd)
}

// runRemove deletes the issue; a missing file is not an error.
func runRemove(out io.Writer, dir, input string) error {
	id, err := journal.NormalizeID(input)
	if err != nil {
		return err
	}
	path := journal.PathFor(dir, id)
	if !journal.Exists(path) {
		return nil
	}
	if err := journal.Delete(path); err != nil {
		color.New(color.FgRed).Fprintln(out, "Error deleting file")
		return err
	}
	color.New(color.FgGreen).Fprintln(out, "File deleted")
	return nil
}
