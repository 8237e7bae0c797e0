package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/csheth/journalscout/internal/journal"
)

func addList(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List downloaded issues.",
		Example: `
journalscout ls
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := loadDeps()
			if err != nil {
				return err
			}
			return runList(cmd.OutOrStdout(), d.cfg.DownloadsDir)
		},
	}
	topLevel.AddCommand(cmd)
}

func runList(out io.Writer, dir string) error {
	entries, err := journal.List(dir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No journals downloaded in", dir)
		return nil
	}

	bold := color.New(color.Bold).SprintFunc()
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("ID"), bold("Size"), bold("Pages"), bold("Modified"))
	for _, e := range entries {
		pages := "?"
		if info, err := journal.Inspect(e.Path); err == nil {
			pages = strconv.Itoa(info.Pages)
		}
		tbl.AddRow(e.ID, journal.FormatBytes(e.Size), pages, e.ModTime.Format("2006-01-02 15:04"))
	}
	_, err = fmt.Fprintln(out, tbl)
	return err
}
