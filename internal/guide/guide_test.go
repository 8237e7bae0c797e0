package guide

import (
	"strings"
	"testing"
)

func TestBuildMentionsDownloadsDir(t *testing.T) {
	t.Parallel()

	steps := Build("/home/reader/Downloads")
	if len(steps) != 4 {
		t.Fatalf("expected four steps, got %d", len(steps))
	}
	if !strings.Contains(steps[1].Description, "/home/reader/Downloads") {
		t.Fatalf("download step should name the directory: %q", steps[1].Description)
	}
}

func TestBuildFallsBackWithoutDir(t *testing.T) {
	t.Parallel()

	steps := Build("")
	if !strings.Contains(steps[1].Description, "your downloads folder") {
		t.Fatalf("expected fallback wording, got %q", steps[1].Description)
	}
}
