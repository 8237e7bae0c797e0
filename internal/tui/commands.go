package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/journalscout/internal/journal"
	"github.com/csheth/journalscout/internal/viewer"
)

func downloadJournalJob(client *journal.Client, id, dir string, updates chan<- progressUpdate) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		defer close(updates)
		result, err := client.Download(ctx, id, dir, func(written, total int64) {
			select {
			case updates <- progressUpdate{written: written, total: total}:
			default:
			}
		})
		return journalResultMsg{id: id, result: result, err: err}, err
	}
}

func waitForProgress(jobID string, updates <-chan progressUpdate) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return nil
		}
		return downloadProgressMsg{jobID: jobID, update: update, updates: updates}
	}
}

func openFileJob(launcher viewer.Launcher, path string) jobRunner {
	return func(context.Context) (tea.Msg, error) {
		err := viewer.OpenFile(launcher, path)
		return viewResultMsg{path: path, err: err}, err
	}
}

func answerPermissionCmd(code int, granted bool) tea.Cmd {
	return func() tea.Msg {
		return permissionResultMsg{code: code, granted: granted}
	}
}

func clearToastCmd(seq int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return clearToastMsg{seq: seq}
	})
}

func describeResult(result *journal.Result) string {
	if result == nil {
		return ""
	}
	parts := journal.FileName(result.ID)
	if result.Pages > 0 {
		parts = fmt.Sprintf("%s · %d pages", parts, result.Pages)
	}
	return fmt.Sprintf("%s · %s", parts, journal.FormatBytes(result.Size))
}
