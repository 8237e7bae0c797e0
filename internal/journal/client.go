package journal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the journal archive every identifier is resolved against.
	DefaultBaseURL     = "https://ntv.ifmo.ru/file/journal/"
	defaultHTTPTimeout = 90 * time.Second
	pdfContentType     = "application/pdf"
	pdfSuffix          = ".pdf"
	partialSuffix      = ".part"
	chunkSize          = 4096
)

var (
	// ErrEmptyID is returned when no identifier was entered.
	ErrEmptyID = errors.New("journal ID is empty")
	// ErrInvalidID is returned for identifiers that would escape the downloads directory.
	ErrInvalidID = errors.New("journal ID is not a valid file name")
	// ErrNotFound means the server did not answer with a PDF document.
	ErrNotFound = errors.New("file not found")
	// ErrDownloadsDir means the downloads directory could not be created.
	ErrDownloadsDir = errors.New("downloads directory unavailable")
)

// Config describes how to build a journal client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client downloads journal issues from the archive.
type Client struct {
	baseURL string
	http    *http.Client
}

// Result describes a journal issue stored on disk.
type Result struct {
	ID    string
	Path  string
	Size  int64
	Pages int
}

// ProgressFunc receives the number of bytes written so far and the expected
// total (-1 when the server did not announce a length).
type ProgressFunc func(written, total int64)

// New returns a client for the configured archive.
func New(cfg Config) *Client {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultHTTPTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: base, http: client}
}

// URL returns the download location for id. The identifier is appended as-is.
func (c *Client) URL(id string) string {
	return c.baseURL + id + pdfSuffix
}

// NormalizeID trims surrounding whitespace and rejects identifiers that are
// empty or contain path elements.
func NormalizeID(input string) (string, error) {
	id := strings.TrimSpace(input)
	if id == "" {
		return "", ErrEmptyID
	}
	if strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	for _, r := range id {
		if r < 0x20 || r == 0x7f {
			return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
		}
	}
	return id, nil
}

// FileName is the on-disk name of a journal issue.
func FileName(id string) string {
	return id + pdfSuffix
}

// PathFor returns where the issue id lives inside dir.
func PathFor(dir, id string) string {
	return filepath.Join(dir, FileName(id))
}

// Download fetches the issue id and stores it in dir as <id>.pdf, replacing
// any previous copy. A response that is not a successful PDF yields ErrNotFound.
func (c *Client) Download(ctx context.Context, input, dir string, progress ProgressFunc) (*Result, error) {
	id, err := NormalizeID(input)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(id), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isPDFResponse(resp) {
		log.Printf("[journal] %s: status=%s content-type=%q", id, resp.Status, resp.Header.Get("Content-Type"))
		return nil, fmt.Errorf("%w: %s", ErrNotFound, FileName(id))
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownloadsDir, err)
	}

	target := PathFor(dir, id)
	size, err := saveBody(resp, target, progress)
	if err != nil {
		return nil, err
	}

	result := &Result{ID: id, Path: target, Size: size}
	if info, err := Inspect(target); err == nil {
		result.Pages = info.Pages
	} else {
		log.Printf("[journal] %s: page count unavailable: %v", id, err)
	}
	return result, nil
}

func isPDFResponse(resp *http.Response) bool {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false
	}
	contentType := resp.Header.Get("Content-Type")
	return contentType != "" && strings.HasPrefix(contentType, pdfContentType)
}

func saveBody(resp *http.Response, target string, progress ProgressFunc) (int64, error) {
	partialPath := target + partialSuffix
	file, err := os.OpenFile(partialPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, err
	}
	writer := newProgressWriter(file, resp.ContentLength, progress)
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(writer, resp.Body, buf); err != nil {
		file.Close()
		os.Remove(partialPath)
		return 0, err
	}
	if err := file.Close(); err != nil {
		os.Remove(partialPath)
		return 0, err
	}
	if err := os.Rename(partialPath, target); err != nil {
		os.Remove(partialPath)
		return 0, err
	}
	return writer.written, nil
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Delete removes a downloaded issue.
func Delete(path string) error {
	if !Exists(path) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return os.Remove(path)
}
