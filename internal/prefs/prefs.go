package prefs

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

const (
	// Namespace groups the application's preference keys on disk.
	Namespace = "MyPrefs"

	// ShowPopupKey controls whether the startup instructions are displayed.
	ShowPopupKey = "showPopup"
	// StorageWriteKey remembers the answer to the storage-write request.
	StorageWriteKey = "storageWrite"
)

// Store reads and writes boolean preferences.
type Store interface {
	Bool(key string, def bool) bool
	SetBool(key string, value bool) error
}

// Open returns a diskv backed store rooted at dir/MyPrefs.
func Open(dir string) *DiskStore {
	return &DiskStore{d: diskv.New(diskv.Options{
		BasePath:     filepath.Join(dir, Namespace),
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024,
	})}
}

// DiskStore persists one file per key.
type DiskStore struct {
	d *diskv.Diskv
}

// Bool returns the stored value for key, or def when it is missing or unreadable.
func (s *DiskStore) Bool(key string, def bool) bool {
	if !s.d.Has(key) {
		return def
	}
	raw, err := s.d.Read(key)
	if err != nil {
		return def
	}
	value, err := strconv.ParseBool(strings.TrimSpace(string(raw)))
	if err != nil {
		return def
	}
	return value
}

// SetBool stores value under key.
func (s *DiskStore) SetBool(key string, value bool) error {
	return s.d.Write(key, []byte(strconv.FormatBool(value)))
}

// Memory is an in-process Store, handy for tests and headless runs.
type Memory map[string]bool

// Bool implements Store.
func (m Memory) Bool(key string, def bool) bool {
	if value, ok := m[key]; ok {
		return value
	}
	return def
}

// SetBool implements Store.
func (m Memory) SetBool(key string, value bool) error {
	m[key] = value
	return nil
}
