package tui

import (
	"time"

	"github.com/csheth/journalscout/internal/journal"
)

type stage int

const (
	stageMain stage = iota
	stageDialog
	stagePermission
)

type sessionState int

const (
	stateIdle sessionState = iota
	stateDownloading
	stateDownloaded
	stateFailed
)

type focusTarget int

const (
	focusInput focusTarget = iota
	focusDownload
	focusView
	focusDelete
)

var focusOrder = []focusTarget{focusInput, focusDownload, focusView, focusDelete}

const heroTagline = "Fetch journal issues as PDF."

const (
	minViewportWidth          = 40
	viewportHorizontalPadding = 4
	toastDuration             = 2 * time.Second
	progressBufferSize        = 16
)

const (
	statusEnterID       = "Enter journal ID"
	statusInvalidID     = "Invalid journal ID"
	statusDownloading   = "Downloading…"
	statusComplete      = "Download complete!"
	statusNotFound      = "File not found."
	statusGenericError  = "Error"
	statusDownloadError = "Error downloading file: "
	statusDeleted       = "File deleted"
	statusDeleteError   = "Error deleting file"

	toastPermissionDenied = "Permission denied"
	toastFileNotFound     = "File not found."
	toastNoViewer         = "No PDF viewer found."
)

type permissionResultMsg struct {
	code    int
	granted bool
}

type journalResultMsg struct {
	id     string
	result *journal.Result
	err    error
}

type progressUpdate struct {
	written int64
	total   int64
}

type downloadProgressMsg struct {
	jobID   string
	update  progressUpdate
	updates <-chan progressUpdate
}

type viewResultMsg struct {
	path string
	err  error
}

type clearToastMsg struct {
	seq int
}
