package commands

import (
	"github.com/spf13/cobra"

	"github.com/csheth/journalscout/internal/config"
	"github.com/csheth/journalscout/internal/journal"
	"github.com/csheth/journalscout/internal/permission"
	"github.com/csheth/journalscout/internal/prefs"
)

// New builds the journalscout command tree. Running it without a subcommand
// opens the interactive UI.
func New() *cobra.Command {
	ui := &uiOptions{}
	cmd := &cobra.Command{
		Use:   "journalscout",
		Short: "Download journal issues as PDF by ID.",
		Long: `journalscout downloads a journal issue by its numeric ID, stores it in your
downloads directory as <id>.pdf and lets you open or delete it again.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.run()
		},
	}
	addUIFlags(cmd, ui)

	AddCommands(cmd)
	return cmd
}

// AddCommands registers the subcommands on topLevel.
func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addGet(topLevel)
	addOpen(topLevel)
	addRemove(topLevel)
	addList(topLevel)
	addVersion(topLevel)
}

type deps struct {
	cfg    config.Config
	client *journal.Client
	prefs  *prefs.DiskStore
	gate   *permission.Gate
}

func loadDeps() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	store := prefs.Open(cfg.PrefsDir)
	return &deps{
		cfg:    cfg,
		client: journal.New(journal.Config{BaseURL: cfg.BaseURL, Timeout: cfg.HTTPTimeout}),
		prefs:  store,
		gate:   permission.NewGate(store, cfg.DownloadsDir),
	}, nil
}
