package permission

import (
	"strings"
	"testing"

	"github.com/csheth/journalscout/internal/prefs"
)

func TestGateRemembersGrant(t *testing.T) {
	t.Parallel()

	store := prefs.Memory{}
	gate := NewGate(store, "/tmp/Downloads")
	if gate.Granted() {
		t.Fatal("fresh gate should not be granted")
	}
	if err := gate.Resolve(true); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !NewGate(store, "/tmp/Downloads").Granted() {
		t.Fatal("grant should persist in the store")
	}
}

func TestGateDenialAsksAgain(t *testing.T) {
	t.Parallel()

	gate := NewGate(prefs.Memory{}, "/tmp/Downloads")
	if err := gate.Resolve(false); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if gate.Granted() {
		t.Fatal("denial must not grant access")
	}
	if !strings.Contains(gate.Prompt(), "/tmp/Downloads") {
		t.Fatalf("prompt should name the directory: %q", gate.Prompt())
	}
}

func TestNilGateIsNotGranted(t *testing.T) {
	t.Parallel()

	var gate *Gate
	if gate.Granted() {
		t.Fatal("nil gate must report not granted")
	}
}
