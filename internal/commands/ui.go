package commands

import (
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/csheth/journalscout/internal/tui"
	"github.com/csheth/journalscout/internal/viewer"
)

type uiOptions struct {
	NoAltScreen bool
}

func addUIFlags(cmd *cobra.Command, o *uiOptions) {
	cmd.Flags().BoolVar(&o.NoAltScreen, "no-alt-screen", false,
		"Disable the alternate screen buffer.")
}

func addUI(topLevel *cobra.Command) {
	o := &uiOptions{}
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive downloader.",
		Example: `
journalscout ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run()
		},
	}
	addUIFlags(cmd, o)
	topLevel.AddCommand(cmd)
}

func (o *uiOptions) run() error {
	d, err := loadDeps()
	if err != nil {
		return err
	}

	if d.cfg.LogFile != "" {
		f, err := tea.LogToFile(d.cfg.LogFile, "journalscout")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	viewer.SetOutput(io.Discard)
	opts := []tea.ProgramOption{}
	if !o.NoAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			DownloadsDir: d.cfg.DownloadsDir,
			Client:       d.client,
			Prefs:        d.prefs,
			Gate:         d.gate,
			Launcher:     viewer.Desktop{},
		}),
		opts...,
	)
	_, err = program.Run()
	return err
}
