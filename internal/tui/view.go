package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/journalscout/internal/guide"
	"github.com/csheth/journalscout/internal/journal"
)

func (m *model) View() string {
	switch m.stage {
	case stageDialog:
		return joinNonEmpty([]string{m.heroView(), m.dialogView()})
	case stagePermission:
		return joinNonEmpty([]string{m.heroView(), m.permissionView()})
	default:
		return m.viewMain()
	}
}

func (m *model) viewMain() string {
	parts := []string{
		m.heroView(),
		m.formView(),
		m.buttonRow(),
		m.statusView(),
	}
	if m.toast != "" {
		parts = append(parts, toastStyle.Render(m.toast))
	}
	parts = append(parts, m.keyLegendView())
	return joinNonEmpty(parts)
}

func (m *model) heroView() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		heroBoxStyle.Render(heroTitleStyle.Render("JournalScout")),
		taglineStyle.Render(heroTagline),
	)
}

func (m *model) formView() string {
	var b strings.Builder
	b.WriteString(sectionHeaderStyle.Render("Journal ID"))
	b.WriteRune('\n')
	b.WriteString(m.idInput.View())
	if m.config.DownloadsDir != "" {
		b.WriteRune('\n')
		b.WriteString(helperStyle.Render("Saving to " + m.config.DownloadsDir))
	}
	return b.String()
}

func (m *model) buttonRow() string {
	buttons := []struct {
		label   string
		target  focusTarget
		enabled bool
	}{
		{"Download", focusDownload, true},
		{"View", focusView, m.actionsEnabled()},
		{"Delete", focusDelete, m.actionsEnabled()},
	}
	cells := make([]string, 0, len(buttons))
	for _, button := range buttons {
		style := buttonStyle
		switch {
		case !button.enabled:
			style = disabledButtonStyle
		case m.focus == button.target:
			style = activeButtonStyle
		}
		cells = append(cells, style.Render(button.label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m *model) statusView() string {
	var lines []string
	if m.status != "" {
		status := wordwrap.String(m.status, m.layout.wrapWidth)
		if m.state == stateDownloading {
			lines = append(lines, helperStyle.Render(fmt.Sprintf("%s %s", m.spinner.View(), status)))
		} else if m.statusIsError {
			lines = append(lines, errorStyle.Render(status))
		} else {
			lines = append(lines, statusStyle.Render(status))
		}
	}
	if m.state == stateDownloading {
		if m.bytesTotal > 0 {
			lines = append(lines, m.progress.View())
		}
		if m.bytesWritten > 0 {
			lines = append(lines, helperStyle.Render(journal.FormatBytes(m.bytesWritten)+" received"))
		}
	}
	if m.infoMessage != "" {
		lines = append(lines, helperStyle.Render(wordwrap.String(m.infoMessage, m.layout.wrapWidth)))
	}
	return strings.Join(lines, "\n")
}

func (m *model) dialogView() string {
	lines := []string{
		sectionHeaderStyle.Render(guide.Title),
		wordwrap.String(guide.Message, m.layout.wrapWidth-8),
		"",
	}
	for i, step := range m.guide {
		lines = append(lines, keyStyle.Render(fmt.Sprintf("%d. %s", i+1, step.Title)))
		lines = append(lines, helperStyle.Render(wordwrap.String(step.Description, m.layout.wrapWidth-8)))
	}
	box := "[ ]"
	if m.dialogChecked {
		box = "[x]"
	}
	lines = append(lines, "", fmt.Sprintf("%s %s", box, guide.DontShowAgain))
	lines = append(lines, helperStyle.Render("space toggles • enter OK • esc close"))
	return dialogBoxStyle.Render(strings.Join(lines, "\n"))
}

func (m *model) permissionView() string {
	lines := []string{
		sectionHeaderStyle.Render("Storage access"),
		wordwrap.String(m.config.Gate.Prompt(), m.layout.wrapWidth-8),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top,
			activeButtonStyle.Render("y Allow"),
			buttonStyle.Render("n Deny"),
		),
	}
	return dialogBoxStyle.Render(strings.Join(lines, "\n"))
}

type keyHint struct {
	Key         string
	Description string
}

func (m *model) keyLegendView() string {
	hints := []keyHint{
		{"enter", "Download / activate"},
		{"tab", "Next action"},
		{"ctrl+o", "View PDF"},
		{"ctrl+x", "Delete PDF"},
		{"esc", "Quit"},
	}
	cells := make([]string, 0, len(hints))
	for _, hint := range hints {
		key := keyStyle.Render(hint.Key)
		desc := keyDescStyle.Render(" " + hint.Description + "  ")
		cells = append(cells, lipgloss.JoinHorizontal(lipgloss.Top, key, desc))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#a3be8c"))
	toastStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)

	heroAccentColor        = lipgloss.Color("#ff8c00")
	heroEmberColor         = lipgloss.Color("#2b1400")
	heroSecondaryTextColor = lipgloss.Color("#ffb347")

	heroTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(heroAccentColor)
	heroBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(heroAccentColor).Background(heroEmberColor).Padding(0, 2)
	taglineStyle   = lipgloss.NewStyle().Foreground(heroSecondaryTextColor).Italic(true)
	dialogBoxStyle = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#7f5af0")).Padding(1, 2)
	keyStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	keyDescStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))

	buttonStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 2).MarginRight(1)
	activeButtonStyle   = buttonStyle.Copy().BorderForeground(heroAccentColor).Foreground(heroAccentColor).Bold(true)
	disabledButtonStyle = buttonStyle.Copy().Foreground(lipgloss.Color("240")).BorderForeground(lipgloss.Color("236"))
)
