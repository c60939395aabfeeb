package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/ficore/internal/i18n"
)

// Action is a home menu entry.
type Action int

const (
	ActionCreateInvoice Action = iota
	ActionEditInvoice
	ActionTransaction
	ActionLanguage
	ActionQuit
)

// SelectMsg is emitted when a home menu entry is chosen.
type SelectMsg struct {
	Action Action
}

type menuItem struct {
	title  string
	desc   string
	action Action
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// HomeModel is the localized landing screen.
type HomeModel struct {
	CommonModel
	catalog i18n.Catalog
	list    list.Model
	notice  string
}

func NewHomeModel(appName, lang string, cat i18n.Catalog) HomeModel {
	languageName := lang
	for _, l := range i18n.Languages {
		if l.Code == lang {
			languageName = l.Name
		}
	}

	items := []list.Item{
		menuItem{cat.T("create_invoice"), cat.T("invoices_desc"), ActionCreateInvoice},
		menuItem{cat.T("edit_invoice"), cat.T("core_invoices"), ActionEditInvoice},
		menuItem{cat.T("track_transaction"), cat.T("transactions_desc"), ActionTransaction},
		menuItem{cat.T("language"), languageName, ActionLanguage},
		menuItem{cat.T("quit"), "", ActionQuit},
	}

	l := list.New(items, list.NewDefaultDelegate(), 60, 20)
	l.Title = fmt.Sprintf("%s · %s", appName, cat.T("welcome"))
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	return HomeModel{catalog: cat, list: l}
}

// SetNotice shows a one-line message above the menu until the next selection.
func (m *HomeModel) SetNotice(notice string) {
	m.notice = notice
}

func (m *HomeModel) SetSize(width, height int) {
	m.Width, m.Height = width, height
	m.list.SetSize(width-4, height-4)
}

func (m HomeModel) Init() tea.Cmd {
	return nil
}

func (m HomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "q":
			return m, tea.Quit
		case "enter":
			item, ok := m.list.SelectedItem().(menuItem)
			if !ok {
				return m, nil
			}

			m.notice = ""
			action := item.action

			return m, func() tea.Msg { return SelectMsg{Action: action} }
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m HomeModel) View() string {
	notice := ""
	if m.notice != "" {
		notice = noticeStyle.Render(m.notice) + "\n\n"
	}

	return pageStyle.Render(notice + m.list.View())
}
