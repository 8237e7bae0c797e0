package commands

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/csheth/journalscout/internal/journal"
	"github.com/csheth/journalscout/internal/permission"
	"github.com/csheth/journalscout/internal/prefs"
	"github.com/csheth/journalscout/internal/viewer"
)

func init() {
	color.NoColor = true
}

func newPDFClient(t *testing.T, contentType string) *journal.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write([]byte("%PDF-1.4\n%%EOF\n"))
	}))
	t.Cleanup(server.Close)
	return journal.New(journal.Config{BaseURL: server.URL + "/"})
}

func TestCommandTree(t *testing.T) {
	root := New()
	for _, name := range []string{"ui", "get", "open", "rm", "ls", "version"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("subcommand %q missing: %v", name, err)
		}
	}
	if root.Flags().Lookup("no-alt-screen") == nil {
		t.Fatalf("root command should accept --no-alt-screen")
	}
}

func TestGetWithoutPermissionDoesNotDownload(t *testing.T) {
	dir := t.TempDir()
	gate := permission.NewGate(prefs.Memory{}, dir)
	var out bytes.Buffer

	err := runGet(context.Background(), &out, newPDFClient(t, "application/pdf"), gate, dir, "42", &getOptions{})
	if !errors.Is(err, errPermissionDenied) {
		t.Fatalf("runGet error = %v, want permission denied", err)
	}
	if !strings.Contains(out.String(), "Permission denied") {
		t.Fatalf("output = %q", out.String())
	}
	if journal.Exists(journal.PathFor(dir, "42")) {
		t.Fatalf("file written without permission")
	}
}

func TestGetAllowWriteRemembersGrant(t *testing.T) {
	dir := t.TempDir()
	store := prefs.Memory{}
	gate := permission.NewGate(store, dir)
	var out bytes.Buffer

	if err := runGet(context.Background(), &out, newPDFClient(t, "application/pdf"), gate, dir, " 42 ", &getOptions{AllowWrite: true}); err != nil {
		t.Fatalf("runGet: %v", err)
	}
	if !gate.Granted() {
		t.Fatalf("grant should be remembered")
	}
	if !strings.Contains(out.String(), "Download complete!") {
		t.Fatalf("output = %q", out.String())
	}
	if !journal.Exists(filepath.Join(dir, "42.pdf")) {
		t.Fatalf("42.pdf missing")
	}
}

func TestGetJSONReportsNotFound(t *testing.T) {
	dir := t.TempDir()
	store := prefs.Memory{prefs.StorageWriteKey: true}
	var out bytes.Buffer

	err := runGet(context.Background(), &out, newPDFClient(t, "text/html"), permission.NewGate(store, dir), dir, "42", &getOptions{JSON: true})
	if !errors.Is(err, journal.ErrNotFound) {
		t.Fatalf("runGet error = %v, want not found", err)
	}
	if !strings.Contains(out.String(), `"error"`) {
		t.Fatalf("output = %q", out.String())
	}
}

func TestOpenMissingFile(t *testing.T) {
	var out bytes.Buffer
	called := false
	launcher := viewer.LauncherFunc(func(string) error {
		called = true
		return nil
	})

	err := runOpen(&out, launcher, t.TempDir(), "42")
	if !errors.Is(err, journal.ErrNotFound) {
		t.Fatalf("runOpen error = %v", err)
	}
	if called {
		t.Fatalf("viewer launched for a missing file")
	}
	if !strings.Contains(out.String(), "File not found.") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestOpenWithoutViewer(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "42.pdf"), []byte("%PDF"), 0o644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	launcher := viewer.LauncherFunc(func(string) error { return viewer.ErrNoViewer })

	if err := runOpen(&out, launcher, dir, "42"); !errors.Is(err, viewer.ErrNoViewer) {
		t.Fatalf("runOpen error = %v", err)
	}
	if !strings.Contains(out.String(), "No PDF viewer found.") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "42.pdf")
	if err := os.WriteFile(path, []byte("%PDF"), 0o644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := runRemove(&out, dir, "42"); err != nil {
		t.Fatalf("runRemove: %v", err)
	}
	if journal.Exists(path) {
		t.Fatalf("file still present")
	}
	if !strings.Contains(out.String(), "File deleted") {
		t.Fatalf("output = %q", out.String())
	}

	out.Reset()
	if err := runRemove(&out, dir, "42"); err != nil {
		t.Fatalf("removing a missing file should be a no-op: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("no-op printed %q", out.String())
	}
}

func TestVersionCommand(t *testing.T) {
	root := New()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version", "--short"})
	if err := root.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out.String(), version) {
		t.Fatalf("output = %q, want %q", out.String(), version)
	}
}

func TestListShowsDownloads(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	if err := runList(&out, dir); err != nil {
		t.Fatalf("runList: %v", err)
	}
	if !strings.Contains(out.String(), "No journals downloaded") {
		t.Fatalf("output = %q", out.String())
	}

	if err := os.WriteFile(filepath.Join(dir, "42.pdf"), []byte("not really a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := runList(&out, dir); err != nil {
		t.Fatalf("runList: %v", err)
	}
	for _, want := range []string{"ID", "42", "16 B", "?"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output %q missing %q", out.String(), want)
		}
	}
}
