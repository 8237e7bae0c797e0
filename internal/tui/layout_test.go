package tui

import "testing"

func TestPageLayoutUpdate(t *testing.T) {
	cases := []struct {
		name          string
		width         int
		wrapWidth     int
		inputWidth    int
		progressWidth int
	}{
		{name: "tiny", width: 20, wrapWidth: 40, inputWidth: 30, progressWidth: 40},
		{name: "narrow", width: 80, wrapWidth: 76, inputWidth: 60, progressWidth: 76},
		{name: "wide", width: 200, wrapWidth: 196, inputWidth: 60, progressWidth: 80},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			layout := newPageLayout()
			layout.Update(tc.width)
			if layout.wrapWidth != tc.wrapWidth {
				t.Fatalf("wrap width mismatch: got %d want %d", layout.wrapWidth, tc.wrapWidth)
			}
			if layout.inputWidth != tc.inputWidth {
				t.Fatalf("input width mismatch: got %d want %d", layout.inputWidth, tc.inputWidth)
			}
			if layout.progressWidth != tc.progressWidth {
				t.Fatalf("progress width mismatch: got %d want %d", layout.progressWidth, tc.progressWidth)
			}
		})
	}
}
