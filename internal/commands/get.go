package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/csheth/journalscout/internal/journal"
	"github.com/csheth/journalscout/internal/permission"
)

var errPermissionDenied = errors.New("permission denied")

type getOptions struct {
	AllowWrite bool
	JSON       bool
}

func addGet(topLevel *cobra.Command) {
	o := &getOptions{}
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Download a journal issue without the interactive UI.",
		Example: `
journalscout get 1234
journalscout get 1234 --allow-write --json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeps()
			if err != nil {
				return err
			}
			return runGet(cmd.Context(), cmd.OutOrStdout(), d.client, d.gate, d.cfg.DownloadsDir, args[0], o)
		},
	}
	cmd.Flags().BoolVarP(&o.AllowWrite, "allow-write", "y", false,
		"Allow saving into the downloads directory and remember the answer.")
	cmd.Flags().BoolVar(&o.JSON, "json", false,
		"Output as JSON.")
	topLevel.AddCommand(cmd)
}

func runGet(ctx context.Context, out io.Writer, client *journal.Client, gate *permission.Gate, dir, id string, o *getOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := journal.NormalizeID(id); err != nil {
		return err
	}
	if !gate.Granted() {
		if !o.AllowWrite {
			color.New(color.FgRed).Fprintln(out, "Permission denied")
			fmt.Fprintln(out, gate.Prompt(), "Re-run with --allow-write.")
			return errPermissionDenied
		}
		if err := gate.Resolve(true); err != nil {
			return err
		}
	}

	result, err := client.Download(ctx, id, dir, nil)
	if err != nil {
		if o.JSON {
			if werr := writeJSON(out, map[string]string{"error": err.Error()}); werr != nil {
				return werr
			}
			return err
		}
		if errors.Is(err, journal.ErrNotFound) {
			color.New(color.FgYellow).Fprintln(out, "File not found.")
		}
		return err
	}

	if o.JSON {
		return writeJSON(out, map[string]interface{}{
			"id":    result.ID,
			"path":  result.Path,
			"size":  result.Size,
			"pages": result.Pages,
		})
	}
	color.New(color.FgGreen).Fprintln(out, "Download complete!")
	fmt.Fprintf(out, "%s (%s", result.Path, journal.FormatBytes(result.Size))
	if result.Pages > 0 {
		fmt.Fprintf(out, ", %d pages", result.Pages)
	}
	fmt.Fprintln(out, ")")
	return nil
}

func writeJSON(out io.Writer, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(b))
	return err
}
