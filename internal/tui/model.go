package tui

import (
	"errors"
	"log"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/journalscout/internal/guide"
	"github.com/csheth/journalscout/internal/journal"
	"github.com/csheth/journalscout/internal/permission"
	"github.com/csheth/journalscout/internal/prefs"
	"github.com/csheth/journalscout/internal/viewer"
)

// Config wires runtime options into the TUI program.
type Config struct {
	DownloadsDir string
	Client       *journal.Client
	Prefs        prefs.Store
	Gate         *permission.Gate
	Launcher     viewer.Launcher
	// Remove deletes a downloaded file. Defaults to journal.Delete.
	Remove func(path string) error
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	if config.Prefs == nil {
		config.Prefs = prefs.Memory{}
	}
	if config.Gate == nil {
		config.Gate = permission.NewGate(config.Prefs, config.DownloadsDir)
	}
	if config.Client == nil {
		config.Client = journal.New(journal.Config{})
	}
	if config.Launcher == nil {
		config.Launcher = viewer.Desktop{}
	}
	if config.Remove == nil {
		config.Remove = journal.Delete
	}

	idInput := textinput.New()
	idInput.Placeholder = "1234"
	idInput.Prompt = "ID › "
	idInput.CharLimit = 64
	idInput.Width = 40
	idInput.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40

	m := &model{
		config:   config,
		stage:    stageMain,
		focus:    focusInput,
		idInput:  idInput,
		spinner:  spin,
		progress: bar,
		layout:   newPageLayout(),
		jobs:     newJobBus(),
		guide:    guide.Build(config.DownloadsDir),
	}
	if config.Prefs.Bool(prefs.ShowPopupKey, true) {
		m.stage = stageDialog
	}
	return m
}

type model struct {
	config Config
	stage  stage
	focus  focusTarget

	idInput  textinput.Model
	spinner  spinner.Model
	progress progress.Model
	layout   pageLayout
	jobs     *jobBus
	guide    []guide.Step

	state          sessionState
	downloadedFile string
	pendingID      string
	activeJob      string
	bytesWritten   int64
	bytesTotal     int64

	dialogChecked bool

	status        string
	statusIsError bool
	infoMessage   string
	toast         string
	toastSeq      int
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.state == stateDownloading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case progress.FrameMsg:
		model, cmd := m.progress.Update(msg)
		if bar, ok := model.(progress.Model); ok {
			m.progress = bar
		}
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.jobs.Cancel(jobKindFetch)
			return m, tea.Quit
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width)
		m.idInput.Width = m.layout.inputWidth
		m.progress.Width = m.layout.progressWidth
		return m, nil
	case jobSignalMsg:
		return m, nil
	case jobResultEnvelope:
		return m, m.handleJobResult(msg)
	case downloadProgressMsg:
		return m, m.handleProgress(msg)
	case permissionResultMsg:
		return m, m.handlePermissionResult(msg)
	case clearToastMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil
	}
	return m, nil
}

func (m *model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.stage {
	case stageDialog:
		return m, m.handleDialogKey(key)
	case stagePermission:
		return m, m.handlePermissionKey(key)
	default:
		return m.handleMainKey(key)
	}
}

func (m *model) handleDialogKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case " ", "space", "x":
		m.dialogChecked = !m.dialogChecked
	case "enter":
		m.confirmDialog()
	case "esc":
		m.stage = stageMain
	}
	return nil
}

// confirmDialog persists the instructions preference and closes the dialog.
func (m *model) confirmDialog() {
	if err := m.config.Prefs.SetBool(prefs.ShowPopupKey, !m.dialogChecked); err != nil {
		log.Printf("[prefs] save %s: %v", prefs.ShowPopupKey, err)
	}
	m.stage = stageMain
}

func (m *model) handlePermissionKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "y", "Y", "enter":
		return answerPermissionCmd(permission.RequestCode, true)
	case "n", "N", "esc":
		return answerPermissionCmd(permission.RequestCode, false)
	}
	return nil
}

func (m *model) handleMainKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.jobs.Cancel(jobKindFetch)
		return m, tea.Quit
	case "tab", "down":
		m.moveFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.moveFocus(-1)
		return m, nil
	case "ctrl+o":
		return m, m.viewFile()
	case "ctrl+x":
		return m, m.deleteFile()
	case "enter":
		return m, m.activate(m.focus)
	}
	if m.focus == focusInput {
		var cmd tea.Cmd
		m.idInput, cmd = m.idInput.Update(key)
		return m, cmd
	}
	switch key.String() {
	case "left", "h":
		m.moveFocus(-1)
	case "right", "l":
		m.moveFocus(1)
	}
	return m, nil
}

func (m *model) activate(target focusTarget) tea.Cmd {
	switch target {
	case focusView:
		return m.viewFile()
	case focusDelete:
		return m.deleteFile()
	default:
		return m.requestDownload()
	}
}

func (m *model) actionsEnabled() bool {
	return m.downloadedFile != ""
}

func (m *model) focusable(target focusTarget) bool {
	switch target {
	case focusView, focusDelete:
		return m.actionsEnabled()
	default:
		return true
	}
}

func (m *model) moveFocus(delta int) {
	idx := 0
	for i, target := range focusOrder {
		if target == m.focus {
			idx = i
			break
		}
	}
	for step := 0; step < len(focusOrder); step++ {
		idx = (idx + delta + len(focusOrder)) % len(focusOrder)
		if m.focusable(focusOrder[idx]) {
			break
		}
	}
	m.setFocus(focusOrder[idx])
}

func (m *model) setFocus(target focusTarget) {
	m.focus = target
	if target == focusInput {
		m.idInput.Focus()
	} else {
		m.idInput.Blur()
	}
}

func (m *model) setStatus(text string, isError bool) {
	m.status = text
	m.statusIsError = isError
}

func (m *model) showToast(text string) tea.Cmd {
	m.toast = text
	m.toastSeq++
	return clearToastCmd(m.toastSeq)
}

// requestDownload validates the entered ID and either starts the fetch or
// asks for write access first.
func (m *model) requestDownload() tea.Cmd {
	id, err := journal.NormalizeID(m.idInput.Value())
	if err != nil {
		if errors.Is(err, journal.ErrEmptyID) {
			m.setStatus(statusEnterID, true)
		} else {
			m.setStatus(statusInvalidID, true)
		}
		return nil
	}
	if !m.config.Gate.Granted() {
		m.pendingID = id
		m.stage = stagePermission
		return nil
	}
	return m.startDownload(id)
}

func (m *model) handlePermissionResult(msg permissionResultMsg) tea.Cmd {
	if msg.code != permission.RequestCode {
		return nil
	}
	m.stage = stageMain
	id := m.pendingID
	m.pendingID = ""
	if !msg.granted {
		if err := m.config.Gate.Resolve(false); err != nil {
			log.Printf("[permission] record denial: %v", err)
		}
		return m.showToast(toastPermissionDenied)
	}
	if err := m.config.Gate.Resolve(true); err != nil {
		log.Printf("[permission] remember grant: %v", err)
	}
	if id == "" {
		return nil
	}
	return m.startDownload(id)
}

func (m *model) startDownload(id string) tea.Cmd {
	updates := make(chan progressUpdate, progressBufferSize)
	jobID, cmd := m.jobs.Start(jobKindFetch, downloadJournalJob(m.config.Client, id, m.config.DownloadsDir, updates))
	m.activeJob = jobID
	m.state = stateDownloading
	m.bytesWritten = 0
	m.bytesTotal = -1
	m.infoMessage = m.config.Client.URL(id)
	m.setStatus(statusDownloading, false)
	return tea.Batch(cmd, waitForProgress(jobID, updates), m.spinner.Tick)
}

func (m *model) handleProgress(msg downloadProgressMsg) tea.Cmd {
	next := waitForProgress(msg.jobID, msg.updates)
	if msg.jobID != m.activeJob {
		return next
	}
	m.bytesWritten = msg.update.written
	m.bytesTotal = msg.update.total
	if m.bytesTotal > 0 {
		return tea.Batch(next, m.progress.SetPercent(float64(m.bytesWritten)/float64(m.bytesTotal)))
	}
	return next
}

func (m *model) handleJobResult(env jobResultEnvelope) tea.Cmd {
	switch payload := env.Payload.(type) {
	case journalResultMsg:
		if env.Snapshot.ID != m.activeJob {
			return nil
		}
		m.activeJob = ""
		return m.finishDownload(payload)
	case viewResultMsg:
		return m.finishView(payload)
	}
	return nil
}

func (m *model) finishDownload(msg journalResultMsg) tea.Cmd {
	if msg.err != nil {
		m.state = stateFailed
		switch {
		case errors.Is(msg.err, journal.ErrNotFound):
			m.setStatus(statusNotFound, true)
		case errors.Is(msg.err, journal.ErrDownloadsDir):
			m.setStatus(statusGenericError, true)
			log.Printf("[download] %s: %v", msg.id, msg.err)
		default:
			m.setStatus(statusDownloadError+msg.err.Error(), true)
			log.Printf("[download] %s: %v", msg.id, msg.err)
		}
		m.infoMessage = ""
		return nil
	}
	m.state = stateDownloaded
	m.downloadedFile = msg.result.Path
	m.setStatus(statusComplete, false)
	m.infoMessage = describeResult(msg.result)
	return m.progress.SetPercent(1)
}

func (m *model) viewFile() tea.Cmd {
	if !journal.Exists(m.downloadedFile) {
		return m.showToast(toastFileNotFound)
	}
	_, cmd := m.jobs.Start(jobKindView, openFileJob(m.config.Launcher, m.downloadedFile))
	return cmd
}

func (m *model) finishView(msg viewResultMsg) tea.Cmd {
	if msg.err == nil {
		m.infoMessage = "Opened " + msg.path
		return nil
	}
	if errors.Is(msg.err, viewer.ErrNoViewer) {
		return m.showToast(toastNoViewer)
	}
	log.Printf("[view] %s: %v", msg.path, msg.err)
	return m.showToast(msg.err.Error())
}

func (m *model) deleteFile() tea.Cmd {
	if !journal.Exists(m.downloadedFile) {
		return nil
	}
	if err := m.config.Remove(m.downloadedFile); err != nil {
		log.Printf("[delete] %s: %v", m.downloadedFile, err)
		m.setStatus(statusDeleteError, true)
		return nil
	}
	m.setStatus(statusDeleted, false)
	m.downloadedFile = ""
	m.infoMessage = ""
	m.state = stateIdle
	if !m.focusable(m.focus) {
		m.setFocus(focusInput)
	}
	return nil
}

