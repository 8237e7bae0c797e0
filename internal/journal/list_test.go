package journal

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestListSkipsPartialAndForeignFiles(t *testing.T) {
	dir := t.TempDir()
	older := time.Now().Add(-time.Hour)
	for name, mod := range map[string]time.Time{
		"7.pdf":      older,
		"42.pdf":     time.Now(),
		"9.pdf.part": time.Now(),
		"notes.txt":  time.Now(),
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("%PDF"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.Chtimes(path, mod, mod); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(entries), entries)
	}
	if entries[0].ID != "42" || entries[1].ID != "7" {
		t.Fatalf("order = %s, %s; want newest first", entries[0].ID, entries[1].ID)
	}
	if entries[0].Size != 4 {
		t.Fatalf("size = %d", entries[0].Size)
	}
}

func TestListMissingDirectory(t *testing.T) {
	entries, err := List(filepath.Join(t.TempDir(), "absent"))
	if err != nil || len(entries) != 0 {
		t.Fatalf("List = %v, %v", entries, err)
	}
}
