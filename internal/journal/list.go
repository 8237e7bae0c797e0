package journal

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Entry is a downloaded issue found in the downloads directory.
type Entry struct {
	ID      string
	Path    string
	Size    int64
	ModTime time.Time
}

// List returns the PDFs stored in dir, newest first. A missing directory
// yields no entries.
func List(dir string) ([]Entry, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var entries []Entry
	for _, item := range items {
		name := item.Name()
		if item.IsDir() || !strings.HasSuffix(name, pdfSuffix) {
			continue
		}
		info, err := item.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			ID:      strings.TrimSuffix(name, pdfSuffix),
			Path:    filepath.Join(dir, name),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].ModTime.Equal(entries[j].ModTime) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].ModTime.After(entries[j].ModTime)
	})
	return entries, nil
}
