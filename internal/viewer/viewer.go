package viewer

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os/exec"
	"path/filepath"

	"github.com/pkg/browser"
)

// ErrNoViewer means no application is registered to open PDF documents.
var ErrNoViewer = errors.New("no PDF viewer found")

// Launcher hands a content reference to an external application.
type Launcher interface {
	Open(ref string) error
}

// LauncherFunc adapts a function to the Launcher interface.
type LauncherFunc func(ref string) error

// Open implements Launcher.
func (f LauncherFunc) Open(ref string) error { return f(ref) }

// ContentRef returns a file:// reference for path that other applications can open.
func ContentRef(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	ref := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return ref.String(), nil
}

// Desktop opens references with the platform's default handler.
type Desktop struct{}

// SetOutput redirects what the platform opener prints. The setting is
// process-wide and applies to every Desktop launcher.
func SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	browser.Stdout = w
	browser.Stderr = w
}

// Open implements Launcher.
func (Desktop) Open(ref string) error {
	if err := browser.OpenURL(ref); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) || errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %v", ErrNoViewer, err)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%w: %v", ErrNoViewer, err)
		}
		return err
	}
	return nil
}

// OpenFile resolves path to a content reference and launches it.
func OpenFile(launcher Launcher, path string) error {
	ref, err := ContentRef(path)
	if err != nil {
		return err
	}
	return launcher.Open(ref)
}
