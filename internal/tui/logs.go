package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/devlog/internal/api"
	"github.com/sadopc/devlog/internal/store"
)

type logsMode int

const (
	logsModeList logsMode = iota
	logsModeDetail
	logsModeForm
)

// logsModel routes between the list, a single log's detail and the
// editor — the terminal equivalents of /logs, /logs/:id and
// /logs/new | /logs/:id/edit.
type logsModel struct {
	mode   logsMode
	list   logListModel
	detail logDetailModel
	form   logFormModel
}

func newLogsModel(client *api.Client, localStore *store.Store, pageSize int, autosaveEvery time.Duration) logsModel {
	return logsModel{
		list:   newLogListModel(client, pageSize),
		detail: newLogDetailModel(client),
		form:   newLogFormModel(client, localStore, autosaveEvery),
	}
}

func (m *logsModel) setSize(w, h int) {
	m.list.setSize(w, h)
	m.detail.setSize(w, h)
	m.form.setSize(w, h)
}

func (m *logsModel) refresh() tea.Cmd {
	if m.mode == logsModeList {
		return m.list.refresh()
	}
	return nil
}

// openForm jumps straight to the editor (used by the global ctrl+n).
func (m *logsModel) openForm(id int64) tea.Cmd {
	m.mode = logsModeForm
	return m.form.open(id)
}

// capturesInput reports whether this view wants raw keystrokes (so the
// root model must not treat them as global shortcuts).
func (m logsModel) capturesInput() bool {
	return m.mode == logsModeForm || m.list.filterOpen
}

func (m logsModel) update(msg tea.Msg) (logsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case openLogFormMsg:
		m.mode = logsModeForm
		cmd := m.form.open(msg.id)
		return m, cmd

	case openLogDetailMsg:
		m.mode = logsModeDetail
		cmd := m.detail.open(msg.id)
		return m, cmd

	case formClosedMsg:
		m.mode = logsModeList
		if msg.saved {
			cmd := m.list.refresh()
			return m, cmd
		}
		return m, nil

	case detailClosedMsg:
		m.mode = logsModeList
		cmd := m.list.refresh()
		return m, cmd

	// List-owned data messages.
	case logsPageMsg, logListProjectsMsg, keywordDebounceMsg:
		var cmd tea.Cmd
		m.list, cmd = m.list.update(msg)
		return m, cmd

	// Form-owned data messages.
	case formProjectsMsg, formTagsMsg, formLogMsg, formDraftMsg,
		autosaveTickMsg, draftSavedMsg, logSaveResultMsg:
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd

	case logDetailMsg:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.update(msg)
		return m, cmd

	case logDeleteResultMsg:
		var cmd tea.Cmd
		if m.mode == logsModeDetail {
			m.detail, cmd = m.detail.update(msg)
		} else {
			m.list, cmd = m.list.update(msg)
		}
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.mode {
	case logsModeList:
		m.list, cmd = m.list.update(msg)
	case logsModeDetail:
		m.detail, cmd = m.detail.update(msg)
	case logsModeForm:
		m.form, cmd = m.form.update(msg)
	}
	return m, cmd
}

func (m logsModel) view() string {
	switch m.mode {
	case logsModeDetail:
		return m.detail.view()
	case logsModeForm:
		return m.form.view()
	default:
		return m.list.view()
	}
}
