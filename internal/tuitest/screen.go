package tuitest

import (
	"regexp"
	"strings"
)

var (
	sgrPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)
	csiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)
	oscPattern = regexp.MustCompile(`\x1b\][^\x07\x1b]*(\x07|\x1b\\)`)
)

// plainText strips terminal control sequences and trailing blanks so the
// rendered text can be matched with strings.Contains.
func plainText(raw []byte) string {
	s := strings.ReplaceAll(string(raw), "\r", "")
	s = oscPattern.ReplaceAllString(s, "")
	s = sgrPattern.ReplaceAllString(s, "")
	// Cursor movement separates what was drawn on different lines.
	s = csiPattern.ReplaceAllString(s, "\n")
	s = strings.NewReplacer("\x0f", "", "\x0e", "", "\x00", "").Replace(s)

	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimRight(line, " ")
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
