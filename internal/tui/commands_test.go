package tui

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/journalscout/internal/journal"
	"github.com/csheth/journalscout/internal/viewer"
)

func TestDownloadJobReportsProgressAndClosesChannel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte(testPDF))
	}))
	t.Cleanup(server.Close)
	client := journal.New(journal.Config{BaseURL: server.URL + "/", HTTPClient: server.Client()})
	dir := t.TempDir()

	updates := make(chan progressUpdate, progressBufferSize)
	msg, err := downloadJournalJob(client, "42", dir, updates)(context.Background())
	if err != nil {
		t.Fatalf("job error: %v", err)
	}
	result, ok := msg.(journalResultMsg)
	if !ok {
		t.Fatalf("unexpected payload %T", msg)
	}
	if result.result == nil || result.result.Path != journal.PathFor(dir, "42") {
		t.Fatalf("unexpected result %#v", result.result)
	}

	var last progressUpdate
	for update := range updates {
		last = update
	}
	if last.written != int64(len(testPDF)) {
		t.Fatalf("final progress %d, want %d", last.written, len(testPDF))
	}
	if msg := waitForProgress("fetch-1", updates)(); msg != nil {
		t.Fatalf("closed channel should yield nil msg, got %T", msg)
	}
}

func TestOpenFileJobWrapsLauncherError(t *testing.T) {
	t.Parallel()

	launcher := viewer.LauncherFunc(func(string) error { return viewer.ErrNoViewer })
	msg, err := openFileJob(launcher, "/tmp/1.pdf")(context.Background())
	if !errors.Is(err, viewer.ErrNoViewer) {
		t.Fatalf("expected ErrNoViewer, got %v", err)
	}
	if res, ok := msg.(viewResultMsg); !ok || res.path != "/tmp/1.pdf" {
		t.Fatalf("unexpected payload %#v", msg)
	}
}

func TestJobBusCancelsSupersededJob(t *testing.T) {
	t.Parallel()

	bus := newJobBus()
	firstID, _ := bus.Start(jobKindFetch, func(ctx context.Context) (tea.Msg, error) {
		return nil, nil
	})
	secondID, _ := bus.Start(jobKindFetch, func(ctx context.Context) (tea.Msg, error) {
		return nil, nil
	})
	if firstID == secondID {
		t.Fatal("job IDs must be unique")
	}
	if id, ok := bus.Running(jobKindFetch); !ok || id != secondID {
		t.Fatalf("running job = %q (%v), want %q", id, ok, secondID)
	}
	bus.Cancel(jobKindFetch)
	if _, ok := bus.Running(jobKindFetch); ok {
		t.Fatal("cancel should clear the running job")
	}
}

func TestDescribeResult(t *testing.T) {
	t.Parallel()

	got := describeResult(&journal.Result{ID: "1234", Size: 2048, Pages: 12})
	if !strings.Contains(got, "1234.pdf") || !strings.Contains(got, "12 pages") || !strings.Contains(got, "2.0 KB") {
		t.Fatalf("unexpected description %q", got)
	}
	if describeResult(nil) != "" {
		t.Fatal("nil result should describe as empty")
	}
}
