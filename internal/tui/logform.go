package tui

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/sadopc/devlog/internal/api"
	"github.com/sadopc/devlog/internal/format"
	"github.com/sadopc/devlog/internal/store"
)

// logFormState carries the editable fields. Held by pointer so the huh
// form's value bindings survive model copies.
type logFormState struct {
	projectID    int64
	title        string
	description  string
	logDate      string
	startTime    string
	endTime      string
	achievements string
	challenges   string
	learnings    string
	codeSnippets string
	tagIDs       []int64
	mood         string
	newTags      string
}

func (fs *logFormState) toDraft() store.Draft {
	return store.Draft{
		ProjectID:    fs.projectID,
		Title:        fs.title,
		Description:  fs.description,
		LogDate:      fs.logDate,
		StartTime:    fs.startTime,
		EndTime:      fs.endTime,
		Achievements: fs.achievements,
		Challenges:   fs.challenges,
		Learnings:    fs.learnings,
		CodeSnippets: fs.codeSnippets,
		TechTagIDs:   fs.tagIDs,
		Mood:         fs.mood,
	}
}

func (fs *logFormState) fromDraft(d *store.Draft) {
	fs.projectID = d.ProjectID
	fs.title = d.Title
	fs.description = d.Description
	fs.logDate = d.LogDate
	fs.startTime = d.StartTime
	fs.endTime = d.EndTime
	fs.achievements = d.Achievements
	fs.challenges = d.Challenges
	fs.learnings = d.Learnings
	fs.codeSnippets = d.CodeSnippets
	fs.tagIDs = d.TechTagIDs
	fs.mood = d.Mood
}

func (fs *logFormState) fromLog(l *api.DevLog) {
	fs.projectID = l.ProjectID
	fs.title = l.Title
	fs.description = l.Description
	fs.logDate = format.Date(l.LogDate)
	fs.startTime = format.ClockTime(l.StartTime)
	fs.endTime = format.ClockTime(l.EndTime)
	fs.achievements = l.Achievements
	fs.challenges = l.Challenges
	fs.learnings = l.Learnings
	fs.codeSnippets = l.CodeSnippets
	fs.tagIDs = nil
	for _, t := range l.TechTags {
		fs.tagIDs = append(fs.tagIDs, t.ID)
	}
	fs.mood = string(l.Mood)
}

// validate checks every field and returns all failures at once.
func (fs *logFormState) validate() map[string]string {
	errs := make(map[string]string)
	if fs.projectID == 0 {
		errs["projectId"] = "Select a project."
	}
	if strings.TrimSpace(fs.title) == "" {
		errs["title"] = "Enter a title."
	}
	if fs.logDate == "" {
		errs["logDate"] = "Pick a date."
	}
	if fs.startTime != "" && fs.endTime != "" && fs.endTime <= fs.startTime {
		errs["endTime"] = "End time must be after start time."
	}
	return errs
}

// payload shapes the form state for the wire: times are combined with the
// log date, empty optional fields become JSON null.
func (fs *logFormState) payload() api.LogPayload {
	p := api.LogPayload{
		ProjectID:  fs.projectID,
		Title:      strings.TrimSpace(fs.title),
		LogDate:    fs.logDate + "T00:00:00",
		TechTagIDs: fs.tagIDs,
	}
	if p.TechTagIDs == nil {
		p.TechTagIDs = []int64{}
	}
	p.Description = nullable(fs.description)
	if fs.startTime != "" {
		s := fs.logDate + "T" + fs.startTime + ":00"
		p.StartTime = &s
	}
	if fs.endTime != "" {
		s := fs.logDate + "T" + fs.endTime + ":00"
		p.EndTime = &s
	}
	p.Achievements = nullable(fs.achievements)
	p.Challenges = nullable(fs.challenges)
	p.Learnings = nullable(fs.learnings)
	p.CodeSnippets = nullable(fs.codeSnippets)
	p.Mood = nullable(fs.mood)
	return p
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// tempTagID derives a throwaway negative ID for a locally added tag. The
// tag is never persisted via a create endpoint; the backend is expected
// to ignore or reject unknown IDs.
func tempTagID() int64 {
	return -int64(uuid.New().ID())
}

type logFormModel struct {
	client        *api.Client
	localStore    *store.Store
	autosaveEvery time.Duration
	width         int
	height        int

	editID int64 // 0 = create mode
	fs     *logFormState
	base   logFormState // snapshot for change detection
	form   *huh.Form
	errors map[string]string

	projects []api.Project
	tags     []api.TechTag

	// loads outstanding before the form can be built
	pendingLoads int

	hasChanges  bool
	autosaveGen int
	armed       bool

	saving           bool
	confirmingCancel bool
}

type formProjectsMsg struct{ projects []api.Project }

type formTagsMsg struct{ tags []api.TechTag }

type formLogMsg struct {
	log *api.DevLog
	err error
}

type formDraftMsg struct{ draft *store.Draft }

type autosaveTickMsg struct{ gen int }

type draftSavedMsg struct{ err error }

type logSaveResultMsg struct {
	created bool
	err     error
}

// formClosedMsg returns control to the log list.
type formClosedMsg struct{ saved bool }

func newLogFormModel(client *api.Client, localStore *store.Store, autosaveEvery time.Duration) logFormModel {
	return logFormModel{
		client:        client,
		localStore:    localStore,
		autosaveEvery: autosaveEvery,
	}
}

func (m *logFormModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// open prepares the form for a log (id == 0 means create) and kicks off
// the loads. The form itself is built once everything has arrived.
func (m *logFormModel) open(id int64) tea.Cmd {
	m.editID = id
	m.fs = &logFormState{logDate: time.Now().Format("2006-01-02")}
	m.form = nil
	m.errors = nil
	m.hasChanges = false
	m.armed = false
	m.autosaveGen++
	m.saving = false
	m.confirmingCancel = false

	client := m.client
	cmds := []tea.Cmd{
		func() tea.Msg {
			projects, err := client.ListProjects(context.Background())
			if err != nil {
				return formProjectsMsg{}
			}
			return formProjectsMsg{projects: projects}
		},
		func() tea.Msg {
			tags, err := client.ListTags(context.Background())
			if err != nil {
				return formTagsMsg{}
			}
			return formTagsMsg{tags: tags}
		},
	}
	m.pendingLoads = 3

	if id != 0 {
		cmds = append(cmds, func() tea.Msg {
			log, err := client.GetLog(context.Background(), id)
			return formLogMsg{log: log, err: err}
		})
	} else {
		localStore := m.localStore
		cmds = append(cmds, func() tea.Msg {
			draft, err := localStore.LoadDraft()
			if err != nil {
				return formDraftMsg{}
			}
			return formDraftMsg{draft: draft}
		})
	}
	return tea.Batch(cmds...)
}

func (m logFormModel) update(msg tea.Msg) (logFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case formProjectsMsg:
		m.projects = msg.projects
		return m.loadArrived(nil)

	case formTagsMsg:
		m.tags = msg.tags
		return m.loadArrived(nil)

	case formLogMsg:
		if msg.err != nil {
			return m, tea.Batch(
				func() tea.Msg { return statusMsg{text: "Failed to load log", isError: true} },
				func() tea.Msg { return formClosedMsg{} },
			)
		}
		m.fs.fromLog(msg.log)
		return m.loadArrived(nil)

	case formDraftMsg:
		var notice tea.Cmd
		if msg.draft != nil {
			m.fs.fromDraft(msg.draft)
			notice = func() tea.Msg { return statusMsg{text: "Restored saved draft"} }
		}
		return m.loadArrived(notice)

	case autosaveTickMsg:
		if msg.gen != m.autosaveGen || m.editID != 0 {
			return m, nil // form was closed or reopened since this timer fired
		}
		var save tea.Cmd
		if m.hasChanges {
			d := m.fs.toDraft()
			localStore := m.localStore
			save = func() tea.Msg {
				return draftSavedMsg{err: localStore.SaveDraft(d)}
			}
		}
		return m, tea.Batch(save, m.autosaveTick())

	case draftSavedMsg:
		if msg.err != nil {
			return m, func() tea.Msg {
				return statusMsg{text: "Draft save failed", isError: true}
			}
		}
		return m, nil

	case logSaveResultMsg:
		m.saving = false
		if msg.err != nil {
			verb := "update"
			if msg.created {
				verb = "create"
			}
			return m, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Failed to %s log: %v", verb, msg.err), isError: true}
			}
		}
		m.autosaveGen++ // stop any pending autosave
		var clear tea.Cmd
		if msg.created {
			localStore := m.localStore
			clear = func() tea.Msg {
				localStore.ClearDraft()
				return nil
			}
		}
		text := "Log updated"
		if msg.created {
			text = "Log created"
		}
		return m, tea.Batch(
			clear,
			func() tea.Msg { return statusMsg{text: text} },
			func() tea.Msg { return formClosedMsg{saved: true} },
		)

	case tea.KeyMsg:
		if m.confirmingCancel {
			return m.updateCancelConfirm(msg)
		}
		if msg.String() == "esc" {
			return m.requestCancel()
		}
		if m.form == nil {
			return m, nil
		}
		return m.updateForm(msg)
	}

	if m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

// loadArrived counts down outstanding loads and builds the form when the
// last one lands.
func (m logFormModel) loadArrived(extra tea.Cmd) (logFormModel, tea.Cmd) {
	m.pendingLoads--
	if m.pendingLoads > 0 {
		return m, extra
	}
	m.base = *m.fs
	m.buildForm()
	return m, tea.Batch(extra, m.form.Init())
}

func (m *logFormModel) buildForm() {
	projectOptions := make([]huh.Option[int64], 0, len(m.projects)+1)
	projectOptions = append(projectOptions, huh.NewOption[int64]("(select project)", 0))
	for _, p := range m.projects {
		projectOptions = append(projectOptions, huh.NewOption(p.Name, p.ID))
	}

	tagOptions := make([]huh.Option[int64], 0, len(m.tags))
	for _, t := range m.tags {
		tagOptions = append(tagOptions, huh.NewOption(t.Name, t.ID))
	}

	moodOptions := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, mood := range api.Moods {
		moodOptions = append(moodOptions, huh.NewOption(string(mood), string(mood)))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().Title("Project").Options(projectOptions...).Value(&m.fs.projectID),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(&m.fs.logDate),
			huh.NewInput().Title("Start time (HH:MM)").Value(&m.fs.startTime),
			huh.NewInput().Title("End time (HH:MM)").Value(&m.fs.endTime),
			huh.NewInput().Title("Title").Value(&m.fs.title),
			huh.NewText().Title("Description").Value(&m.fs.description),
		).Title("Basics"),
		huh.NewGroup(
			huh.NewText().Title("Achievements").Value(&m.fs.achievements),
			huh.NewText().Title("Challenges").Value(&m.fs.challenges),
			huh.NewText().Title("Learnings").Value(&m.fs.learnings),
			huh.NewText().Title("Code snippets").Value(&m.fs.codeSnippets),
		).Title("Reflection"),
		huh.NewGroup(
			huh.NewMultiSelect[int64]().Title("Tech tags").Options(tagOptions...).Value(&m.fs.tagIDs),
			huh.NewInput().Title("New tags (comma separated)").Value(&m.fs.newTags),
			huh.NewSelect[string]().Title("Mood").Options(moodOptions...).Value(&m.fs.mood),
		).Title("Tags & Mood"),
	).WithShowHelp(true).WithShowErrors(true)
}

func (m logFormModel) updateForm(msg tea.Msg) (logFormModel, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	var arm tea.Cmd
	if !m.hasChanges && m.changedFromBase() {
		m.hasChanges = true
		if m.editID == 0 && !m.armed {
			m.armed = true
			arm = m.autosaveTick()
		}
	}

	if m.form.State == huh.StateCompleted {
		return m.submit()
	}
	return m, tea.Batch(cmd, arm)
}

func (m logFormModel) changedFromBase() bool {
	a, b := *m.fs, m.base
	if len(a.tagIDs) != len(b.tagIDs) {
		return true
	}
	for i := range a.tagIDs {
		if a.tagIDs[i] != b.tagIDs[i] {
			return true
		}
	}
	// The slices are equal; blank them so the rest of the struct can be
	// compared in one go.
	a.tagIDs, b.tagIDs = nil, nil
	return !reflect.DeepEqual(a, b)
}

func (m *logFormModel) autosaveTick() tea.Cmd {
	gen := m.autosaveGen
	return tea.Tick(m.autosaveEvery, func(time.Time) tea.Msg {
		return autosaveTickMsg{gen: gen}
	})
}

func (m logFormModel) submit() (logFormModel, tea.Cmd) {
	// Fold locally entered tag names into the selection. They carry
	// temporary IDs and are never persisted through a tag endpoint.
	for _, name := range format.ParseTags(m.fs.newTags) {
		tag := api.TechTag{ID: tempTagID(), Name: name, Category: "TOOL", Color: "#8B5CF6"}
		m.tags = append(m.tags, tag)
		m.fs.tagIDs = append(m.fs.tagIDs, tag.ID)
	}
	m.fs.newTags = ""

	m.errors = m.fs.validate()
	if len(m.errors) > 0 {
		// Re-open the form with values intact; no request is issued.
		m.buildForm()
		return m, tea.Batch(
			m.form.Init(),
			func() tea.Msg { return statusMsg{text: "Check the highlighted fields", isError: true} },
		)
	}

	m.saving = true
	payload := m.fs.payload()
	client := m.client
	editID := m.editID
	return m, func() tea.Msg {
		var err error
		if editID == 0 {
			_, err = client.CreateLog(context.Background(), payload)
		} else {
			_, err = client.UpdateLog(context.Background(), editID, payload)
		}
		return logSaveResultMsg{created: editID == 0, err: err}
	}
}

func (m logFormModel) requestCancel() (logFormModel, tea.Cmd) {
	if m.hasChanges {
		m.confirmingCancel = true
		return m, nil
	}
	m.autosaveGen++
	return m, func() tea.Msg { return formClosedMsg{} }
}

func (m logFormModel) updateCancelConfirm(msg tea.KeyMsg) (logFormModel, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.confirmingCancel = false
		m.autosaveGen++
		return m, func() tea.Msg { return formClosedMsg{} }
	case "n", "esc":
		m.confirmingCancel = false
	}
	return m, nil
}

func (m logFormModel) view() string {
	w := m.width - 4

	title := "New Log"
	if m.editID != 0 {
		title = "Edit Log"
	}

	if m.form == nil {
		return panelStyle.Width(w).Render(mutedStyle.Render("Loading..."))
	}

	rows := []string{titleStyle.Render(title)}
	if len(m.errors) > 0 {
		for _, field := range []string{"projectId", "title", "logDate", "endTime"} {
			if msg, ok := m.errors[field]; ok {
				rows = append(rows, fieldErrorStyle.Render("  ✗ "+msg))
			}
		}
	}
	rows = append(rows, "", m.form.View())

	if m.saving {
		rows = append(rows, mutedStyle.Render("Saving..."))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)

	if m.confirmingCancel {
		confirm := lipgloss.JoinVertical(lipgloss.Left,
			warningStyle.Render("Discard unsaved changes?"),
			"",
			mutedStyle.Render("  y: discard  n: keep editing"),
		)
		content = lipgloss.JoinVertical(lipgloss.Left, content, activePanelStyle.Width(w).Render(confirm))
	}

	return panelStyle.Width(w).Render(content)
}
