package permission

import (
	"fmt"
	"log"

	"github.com/csheth/journalscout/internal/prefs"
)

// RequestCode identifies storage-write requests and their results.
const RequestCode = 123

// Gate tracks whether the user allowed writes to the downloads directory.
type Gate struct {
	store prefs.Store
	dir   string
}

// NewGate returns a gate whose answers are remembered in store.
func NewGate(store prefs.Store, dir string) *Gate {
	return &Gate{store: store, dir: dir}
}

// Granted reports whether writing has been allowed before.
func (g *Gate) Granted() bool {
	if g == nil || g.store == nil {
		return false
	}
	return g.store.Bool(prefs.StorageWriteKey, false)
}

// Prompt is the question shown when requesting access.
func (g *Gate) Prompt() string {
	return fmt.Sprintf("Allow journalscout to save files in %s?", g.dir)
}

// Resolve records the user's answer. A denial is not remembered so the next
// download asks again.
func (g *Gate) Resolve(granted bool) error {
	if !granted {
		log.Printf("[permission] write access to %s denied", g.dir)
		return nil
	}
	return g.store.SetBool(prefs.StorageWriteKey, true)
}
