package journal

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// Info summarizes a PDF on disk.
type Info struct {
	Pages int
}

// Inspect opens the PDF at path and reports its page count.
func Inspect(path string) (info Info, err error) {
	// The parser panics on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			info = Info{}
			err = fmt.Errorf("failed to parse pdf: %v", r)
		}
	}()

	file, reader, err := pdf.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer file.Close()

	return Info{Pages: reader.NumPage()}, nil
}

// FormatBytes converts a byte count into a short human readable string.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
