package view

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/ficore/internal/form"
)

type CommonModel struct {
	Width  int
	Height int
}

// BackMsg returns to the home screen without a notice.
type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// DoneMsg returns to the home screen after a successful save.
type DoneMsg struct {
	Notice string
}

func done(notice string) tea.Cmd {
	return func() tea.Msg {
		return DoneMsg{Notice: notice}
	}
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	pageStyle   = lipgloss.NewStyle().Padding(1, 2)
)

// fieldErrorLines renders field errors one per line in field order.
func fieldErrorLines(errs form.FieldErrors, label func(string) string) string {
	fields := errs.Fields()

	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, errorStyle.Render(label(f)+": "+errs[f]))
	}

	return strings.Join(lines, "\n")
}
