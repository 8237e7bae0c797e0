package tui

type pageLayout struct {
	wrapWidth     int
	inputWidth    int
	progressWidth int
}

func newPageLayout() pageLayout {
	return pageLayout{
		wrapWidth:     76,
		inputWidth:    40,
		progressWidth: 40,
	}
}

func (l *pageLayout) Update(width int) {
	inner := width - viewportHorizontalPadding
	if inner < minViewportWidth {
		inner = minViewportWidth
	}
	l.wrapWidth = inner
	l.inputWidth = inner - 10
	if l.inputWidth > 60 {
		l.inputWidth = 60
	}
	l.progressWidth = inner
	if l.progressWidth > 80 {
		l.progressWidth = 80
	}
}
