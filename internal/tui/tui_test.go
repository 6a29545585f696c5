package tui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/devlog/internal/api"
	"github.com/sadopc/devlog/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// newTestClient returns a client pointed nowhere. Tests below never run
// the returned tea.Cmds, so no request is ever issued.
func newTestClient() *api.Client {
	return api.NewClient("http://127.0.0.1:1/api", time.Second, discardLogger())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func makeLogs(n int, startID int64) []api.DevLog {
	logs := make([]api.DevLog, n)
	for i := range logs {
		logs[i] = api.DevLog{
			ID:          startID + int64(i),
			Title:       fmt.Sprintf("log %d", startID+int64(i)),
			ProjectName: "Demo",
			LogDate:     "2025-03-14T00:00:00",
		}
	}
	return logs
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// runCmd executes a command tree and collects every produced message,
// flattening batches.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, runCmd(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

// ============================================================
// Log list: pagination
// ============================================================

func TestLogListFirstPage(t *testing.T) {
	m := newLogListModel(newTestClient(), 10)
	_ = m.refresh()

	m, _ = m.update(logsPageMsg{seq: m.fetchSeq, page: 1, logs: makeLogs(10, 1)})
	if len(m.logs) != 10 {
		t.Fatalf("expected 10 logs, got %d", len(m.logs))
	}
	if !m.hasMore {
		t.Fatal("a full page means more may follow")
	}
	if m.loading {
		t.Fatal("loading should be done")
	}
}

func TestLogListAppendsNextPage(t *testing.T) {
	m := newLogListModel(newTestClient(), 10)
	_ = m.refresh()
	m, _ = m.update(logsPageMsg{seq: m.fetchSeq, page: 1, logs: makeLogs(10, 1)})

	cmd := m.loadMore()
	if cmd == nil {
		t.Fatal("loadMore should issue a fetch")
	}
	if m.page != 2 {
		t.Fatalf("expected page 2, got %d", m.page)
	}

	m, _ = m.update(logsPageMsg{seq: m.fetchSeq, page: 2, logs: makeLogs(4, 11)})
	if len(m.logs) != 14 {
		t.Fatalf("expected 14 logs after append, got %d", len(m.logs))
	}
	if m.logs[0].ID != 1 || m.logs[13].ID != 14 {
		t.Fatal("pages must append in order")
	}
	if m.hasMore {
		t.Fatal("a short page means the end was reached")
	}

	if m.loadMore() != nil {
		t.Fatal("loadMore past the end should be a no-op")
	}
}

func TestLogListLoadMoreWhileLoading(t *testing.T) {
	m := newLogListModel(newTestClient(), 10)
	_ = m.refresh() // fetch in flight

	if m.loadMore() != nil {
		t.Fatal("loadMore during a fetch should be a no-op")
	}
	if m.page != 1 {
		t.Fatalf("page should stay 1, got %d", m.page)
	}
}

func TestLogListDropsStaleResponse(t *testing.T) {
	m := newLogListModel(newTestClient(), 10)
	_ = m.refresh()
	oldSeq := m.fetchSeq
	_ = m.refresh() // filter changed: a newer fetch supersedes the first

	m, _ = m.update(logsPageMsg{seq: oldSeq, page: 1, logs: makeLogs(10, 100)})
	if len(m.logs) != 0 {
		t.Fatal("stale response should be dropped")
	}
	if !m.loading {
		t.Fatal("still waiting for the newer fetch")
	}

	m, _ = m.update(logsPageMsg{seq: m.fetchSeq, page: 1, logs: makeLogs(3, 1)})
	if len(m.logs) != 3 {
		t.Fatalf("fresh response should land, got %d logs", len(m.logs))
	}
}

func TestLogListRefreshResetsPagination(t *testing.T) {
	m := newLogListModel(newTestClient(), 10)
	_ = m.refresh()
	m, _ = m.update(logsPageMsg{seq: m.fetchSeq, page: 1, logs: makeLogs(10, 1)})
	_ = m.loadMore()
	m, _ = m.update(logsPageMsg{seq: m.fetchSeq, page: 2, logs: makeLogs(10, 11)})

	_ = m.refresh()
	if m.page != 1 {
		t.Fatalf("refresh should reset to page 1, got %d", m.page)
	}
	if len(m.logs) != 0 || m.cursor != 0 {
		t.Fatal("refresh should clear the accumulated list")
	}
	if !m.hasMore {
		t.Fatal("refresh should reset hasMore")
	}
}

func TestLogListErrorOnLaterPageKeepsLogs(t *testing.T) {
	m := newLogListModel(newTestClient(), 10)
	_ = m.refresh()
	m, _ = m.update(logsPageMsg{seq: m.fetchSeq, page: 1, logs: makeLogs(10, 1)})
	_ = m.loadMore()

	m, _ = m.update(logsPageMsg{seq: m.fetchSeq, page: 2, err: fmt.Errorf("boom")})
	if len(m.logs) != 10 {
		t.Fatal("a failed later page must not wipe loaded logs")
	}
	if m.loadErr != "" {
		t.Fatal("later-page failure is a toast, not a full-screen error")
	}
	if m.page != 1 {
		t.Fatalf("failed page should roll back for retry, got %d", m.page)
	}
}

// ============================================================
// Log list: keyword debounce
// ============================================================

func TestKeywordDebounceStaleSeq(t *testing.T) {
	m := newLogListModel(newTestClient(), 10)
	m.debounceSeq = 3

	m, cmd := m.update(keywordDebounceMsg{seq: 2})
	if cmd != nil {
		t.Fatal("stale debounce must not trigger a fetch")
	}

	m, cmd = m.update(keywordDebounceMsg{seq: 3})
	if cmd == nil {
		t.Fatal("current debounce should refresh")
	}
	if m.page != 1 {
		t.Fatal("keyword change should restart from page 1")
	}
}

// ============================================================
// Log list: delete
// ============================================================

func TestLogListDeleteRemovesLocally(t *testing.T) {
	m := newLogListModel(newTestClient(), 10)
	_ = m.refresh()
	m, _ = m.update(logsPageMsg{seq: m.fetchSeq, page: 1, logs: makeLogs(5, 1)})

	m, _ = m.update(logDeleteResultMsg{id: 3})
	if len(m.logs) != 4 {
		t.Fatalf("expected 4 logs after delete, got %d", len(m.logs))
	}
	for _, l := range m.logs {
		if l.ID == 3 {
			t.Fatal("deleted log still present")
		}
	}
	// Remaining order untouched, groups rebuilt.
	if m.logs[0].ID != 1 || m.logs[3].ID != 5 {
		t.Fatal("delete must preserve order of the rest")
	}
	total := 0
	for _, g := range m.groups {
		total += len(g.Logs)
	}
	if total != 4 {
		t.Fatalf("groups not rebuilt, contain %d logs", total)
	}
}

func TestLogListDeleteFailureKeepsLog(t *testing.T) {
	m := newLogListModel(newTestClient(), 10)
	_ = m.refresh()
	m, _ = m.update(logsPageMsg{seq: m.fetchSeq, page: 1, logs: makeLogs(5, 1)})

	m, _ = m.update(logDeleteResultMsg{id: 3, err: fmt.Errorf("denied")})
	if len(m.logs) != 5 {
		t.Fatal("failed delete must not remove the log")
	}
}

// ============================================================
// Log form: validation
// ============================================================

func TestLogFormValidateAllAtOnce(t *testing.T) {
	fs := &logFormState{}
	errs := fs.validate()
	for _, field := range []string{"projectId", "title", "logDate"} {
		if errs[field] == "" {
			t.Errorf("missing error for %s", field)
		}
	}
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), errs)
	}
}

func TestLogFormValidateTimeOrder(t *testing.T) {
	fs := &logFormState{
		projectID: 1,
		title:     "t",
		logDate:   "2025-03-14",
		startTime: "10:00",
		endTime:   "09:00",
	}
	errs := fs.validate()
	if errs["endTime"] == "" {
		t.Fatal("end before start should fail")
	}

	fs.endTime = "10:00" // equal is also invalid
	if errs := fs.validate(); errs["endTime"] == "" {
		t.Fatal("equal times should fail")
	}

	fs.endTime = "11:00"
	if errs := fs.validate(); len(errs) != 0 {
		t.Fatalf("valid state should pass, got %v", errs)
	}
}

func TestLogFormValidateTimesOptional(t *testing.T) {
	fs := &logFormState{projectID: 1, title: "t", logDate: "2025-03-14"}
	if errs := fs.validate(); len(errs) != 0 {
		t.Fatalf("times are optional, got %v", errs)
	}

	fs.startTime = "09:00" // start without end is fine
	if errs := fs.validate(); len(errs) != 0 {
		t.Fatalf("lone start time should pass, got %v", errs)
	}
}

// ============================================================
// Log form: payload shaping
// ============================================================

func TestLogFormPayloadShaping(t *testing.T) {
	fs := &logFormState{
		projectID: 2,
		title:     "  padded title  ",
		logDate:   "2025-03-14",
		startTime: "09:00",
		endTime:   "17:30",
		mood:      "GOOD",
		tagIDs:    []int64{1, 2},
	}
	p := fs.payload()

	if p.LogDate != "2025-03-14T00:00:00" {
		t.Fatalf("log date not expanded: %q", p.LogDate)
	}
	if p.StartTime == nil || *p.StartTime != "2025-03-14T09:00:00" {
		t.Fatalf("start time wrong: %v", p.StartTime)
	}
	if p.EndTime == nil || *p.EndTime != "2025-03-14T17:30:00" {
		t.Fatalf("end time wrong: %v", p.EndTime)
	}
	if p.Title != "padded title" {
		t.Fatalf("title not trimmed: %q", p.Title)
	}
	if p.Description != nil {
		t.Fatal("empty description should be nil (JSON null)")
	}
	if p.Mood == nil || *p.Mood != "GOOD" {
		t.Fatal("mood lost")
	}
	if len(p.TechTagIDs) != 2 {
		t.Fatalf("tags lost: %v", p.TechTagIDs)
	}
}

func TestLogFormPayloadEmptyOptionals(t *testing.T) {
	fs := &logFormState{projectID: 1, title: "t", logDate: "2025-03-14"}
	p := fs.payload()

	if p.StartTime != nil || p.EndTime != nil {
		t.Fatal("empty times should be nil")
	}
	if p.Achievements != nil || p.Challenges != nil || p.Learnings != nil || p.CodeSnippets != nil || p.Mood != nil {
		t.Fatal("empty optionals should all be nil")
	}
	if p.TechTagIDs == nil {
		t.Fatal("tag IDs should be [] not null")
	}
}

func TestTempTagIDNegative(t *testing.T) {
	for i := 0; i < 20; i++ {
		if id := tempTagID(); id >= 0 {
			t.Fatalf("temp tag ID must be negative, got %d", id)
		}
	}
}

// ============================================================
// Log form: drafts
// ============================================================

func TestLogFormDraftRoundTrip(t *testing.T) {
	fs := &logFormState{
		projectID: 4,
		title:     "draft title",
		logDate:   "2025-03-14",
		tagIDs:    []int64{7},
		mood:      "GREAT",
	}
	d := fs.toDraft()

	var back logFormState
	back.fromDraft(&d)
	if back.projectID != 4 || back.title != "draft title" || back.mood != "GREAT" {
		t.Fatalf("draft round trip lost fields: %+v", back)
	}
	if len(back.tagIDs) != 1 || back.tagIDs[0] != 7 {
		t.Fatalf("tag IDs lost: %v", back.tagIDs)
	}
}

func TestLogFormAutosaveTickWritesDraft(t *testing.T) {
	st := newTestStore(t)
	// A short interval keeps the rescheduled tick from stalling runCmd.
	m := newLogFormModel(newTestClient(), st, time.Millisecond)
	m.fs = &logFormState{title: "half written", logDate: "2025-03-14", tagIDs: []int64{2}}
	m.autosaveGen = 1
	m.hasChanges = true

	m, cmd := m.update(autosaveTickMsg{gen: 1})
	if cmd == nil {
		t.Fatal("tick with changes should save and reschedule")
	}
	msgs := runCmd(cmd)

	d, err := st.LoadDraft()
	if err != nil {
		t.Fatal(err)
	}
	if d == nil || d.Title != "half written" {
		t.Fatalf("draft not persisted: %+v", d)
	}
	if len(d.TechTagIDs) != 1 || d.TechTagIDs[0] != 2 {
		t.Fatalf("draft tag IDs lost: %v", d.TechTagIDs)
	}

	saved := false
	for _, msg := range msgs {
		if res, ok := msg.(draftSavedMsg); ok {
			saved = true
			if res.err != nil {
				t.Fatalf("save reported error: %v", res.err)
			}
		}
	}
	if !saved {
		t.Fatal("expected a draftSavedMsg from the save command")
	}
}

func TestLogFormCreateSuccessClearsDraft(t *testing.T) {
	st := newTestStore(t)
	if err := st.SaveDraft(store.Draft{Title: "pending"}); err != nil {
		t.Fatal(err)
	}

	m := newLogFormModel(newTestClient(), st, time.Minute)
	m.fs = &logFormState{}

	m, cmd := m.update(logSaveResultMsg{created: true})
	msgs := runCmd(cmd)

	if d, _ := st.LoadDraft(); d != nil {
		t.Fatal("successful create must clear the draft")
	}

	closed := false
	for _, msg := range msgs {
		if c, ok := msg.(formClosedMsg); ok && c.saved {
			closed = true
		}
	}
	if !closed {
		t.Fatal("save should close the form with saved=true")
	}
}

func TestLogFormUpdateSuccessKeepsDraft(t *testing.T) {
	st := newTestStore(t)
	if err := st.SaveDraft(store.Draft{Title: "pending"}); err != nil {
		t.Fatal(err)
	}

	m := newLogFormModel(newTestClient(), st, time.Minute)
	m.fs = &logFormState{}
	m.editID = 7

	_, cmd := m.update(logSaveResultMsg{created: false})
	runCmd(cmd)

	if d, _ := st.LoadDraft(); d == nil {
		t.Fatal("updating an existing log must leave the draft alone")
	}
}

func TestLogFormSaveFailureKeepsDraft(t *testing.T) {
	st := newTestStore(t)
	if err := st.SaveDraft(store.Draft{Title: "pending"}); err != nil {
		t.Fatal(err)
	}

	m := newLogFormModel(newTestClient(), st, time.Minute)
	m.fs = &logFormState{}

	_, cmd := m.update(logSaveResultMsg{created: true, err: fmt.Errorf("boom")})
	runCmd(cmd)

	if d, _ := st.LoadDraft(); d == nil {
		t.Fatal("a failed create must not clear the draft")
	}
}

func TestLogFormAutosaveStaleGeneration(t *testing.T) {
	m := newLogFormModel(newTestClient(), nil, time.Minute)
	m.fs = &logFormState{}
	m.autosaveGen = 2
	m.hasChanges = true

	_, cmd := m.update(autosaveTickMsg{gen: 1})
	if cmd != nil {
		t.Fatal("a timer from a closed form must not save or reschedule")
	}
}

func TestLogFormAutosaveOnlyInCreateMode(t *testing.T) {
	m := newLogFormModel(newTestClient(), nil, time.Minute)
	m.fs = &logFormState{}
	m.editID = 9 // edit mode
	m.autosaveGen = 1
	m.hasChanges = true

	_, cmd := m.update(autosaveTickMsg{gen: 1})
	if cmd != nil {
		t.Fatal("edit mode never autosaves")
	}
}

func TestLogFormChangeDetection(t *testing.T) {
	m := newLogFormModel(newTestClient(), nil, time.Minute)
	m.fs = &logFormState{title: "a", tagIDs: []int64{1}}
	m.base = *m.fs

	if m.changedFromBase() {
		t.Fatal("identical state is not a change")
	}

	m.fs.title = "b"
	if !m.changedFromBase() {
		t.Fatal("title edit should register")
	}

	m.fs.title = "a"
	m.fs.tagIDs = []int64{1, 2}
	if !m.changedFromBase() {
		t.Fatal("tag edit should register")
	}

	m.fs.tagIDs = []int64{1}
	m.fs.mood = "GOOD"
	if !m.changedFromBase() {
		t.Fatal("mood edit should register")
	}

	m.fs.mood = ""
	if m.changedFromBase() {
		t.Fatal("reverting edits should read as unchanged")
	}
}

// ============================================================
// Project form
// ============================================================

func TestProjectFormValidate(t *testing.T) {
	fs := &projectFormState{progress: "50"}
	errs := fs.validate()
	if errs["name"] == "" || errs["startDate"] == "" {
		t.Fatalf("expected name and startDate errors, got %v", errs)
	}

	fs = &projectFormState{name: "P", startDate: "2025-01-01", endDate: "2024-12-31", progress: "150"}
	errs = fs.validate()
	if errs["endDate"] == "" {
		t.Fatal("end before start should fail")
	}
	if errs["progress"] == "" {
		t.Fatal("progress above 100 should fail")
	}

	fs = &projectFormState{name: "P", startDate: "2025-01-01", progress: "75"}
	if errs := fs.validate(); len(errs) != 0 {
		t.Fatalf("valid project should pass, got %v", errs)
	}
}

func TestProjectFormPayloadNulls(t *testing.T) {
	fs := &projectFormState{name: " P ", status: "ACTIVE", startDate: "2025-01-01", progress: "30"}
	p := fs.payload()
	if p.Name != "P" {
		t.Fatalf("name not trimmed: %q", p.Name)
	}
	if p.Description != nil || p.EndDate != nil {
		t.Fatal("empty optionals should be nil")
	}
	if p.Progress != 30 {
		t.Fatalf("progress = %d, want 30", p.Progress)
	}
}

func TestProjectsDeleteRemovesLocally(t *testing.T) {
	p := newProjectsModel(newTestClient())
	p.projects = []api.Project{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}, {ID: 3, Name: "c"}}
	p.cursor = 2

	p, _ = p.update(projectDeletedMsg{id: 2})
	if len(p.projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(p.projects))
	}
	if p.cursor > len(p.projects)-1 {
		t.Fatal("cursor out of range after delete")
	}
}

// ============================================================
// Dashboard
// ============================================================

func TestGoalRate(t *testing.T) {
	d := newDashboardModel(newTestClient())
	if d.goalRate() != 0 {
		t.Fatal("no data means 0%")
	}

	d.weekly = &api.WeeklyStats{DailyCounts: []api.DailyCount{
		{Date: "2025-03-10", Count: 2},
		{Date: "2025-03-11", Count: 0}, // day without logs does not count
		{Date: "2025-03-12", Count: 1},
		{Date: "2025-03-13", Count: 3},
	}}
	if got := d.goalRate(); got != 60 {
		t.Fatalf("3 of 5 weekdays = 60%%, got %d", got)
	}

	// Seven active days overshoots; the cap is applied at render time.
	d.weekly.DailyCounts = make([]api.DailyCount, 7)
	for i := range d.weekly.DailyCounts {
		d.weekly.DailyCounts[i] = api.DailyCount{Count: 1}
	}
	if got := d.goalRate(); got != 140 {
		t.Fatalf("7 of 5 = 140%%, got %d", got)
	}
}

func TestDashboardEmptyWeek(t *testing.T) {
	d := newDashboardModel(newTestClient())
	d.setSize(100, 40)
	d.weekly = &api.WeeklyStats{}

	out := d.view()
	if !strings.Contains(out, "No activity this week") {
		t.Fatal("empty week should render its empty state")
	}
	if !strings.Contains(out, "0h") {
		t.Fatal("zero totals should render as zeros, not errors")
	}
}

func TestDashboardErrorState(t *testing.T) {
	d := newDashboardModel(newTestClient())
	d.setSize(100, 40)
	d, _ = d.update(dashboardDataMsg{err: fmt.Errorf("connection refused")})

	out := d.view()
	if !strings.Contains(out, "Failed to load dashboard") {
		t.Fatal("error state missing")
	}
	if !strings.Contains(out, "connection refused") {
		t.Fatal("error detail missing")
	}
}

// ============================================================
// Toast
// ============================================================

func TestToastGeneration(t *testing.T) {
	var toast toastModel

	cmd := toast.show("saved", false)
	if cmd == nil {
		t.Fatal("show should schedule expiry")
	}
	firstGen := toast.gen

	toast.show("saved again", false)

	// The first toast's timer fires late; it must not clear the newer one.
	toast.expire(toastExpireMsg{gen: firstGen})
	if toast.text == "" {
		t.Fatal("stale expiry cleared a newer toast")
	}

	toast.expire(toastExpireMsg{gen: toast.gen})
	if toast.text != "" {
		t.Fatal("matching expiry should clear the toast")
	}
	if toast.view() != "" {
		t.Fatal("cleared toast should render nothing")
	}
}

// ============================================================
// Search overlay
// ============================================================

func TestSearchDropsStaleResults(t *testing.T) {
	m := newSearchModel(newTestClient())
	m.fetchSeq = 2

	m, _ = m.update(searchResultsMsg{seq: 1, logs: makeLogs(3, 1)})
	if len(m.results) != 0 {
		t.Fatal("stale search results should be dropped")
	}

	m, _ = m.update(searchResultsMsg{seq: 2, logs: makeLogs(3, 1)})
	if len(m.results) != 3 {
		t.Fatal("current results should land")
	}
}

func TestSearchEmptyKeywordDoesNotFetch(t *testing.T) {
	m := newSearchModel(newTestClient())
	m.input.SetValue("   ")
	m.debounceSeq = 1

	m, cmd := m.update(searchDebounceMsg{seq: 1})
	if cmd != nil {
		t.Fatal("blank keyword must not hit the backend")
	}
	if m.searched {
		t.Fatal("blank keyword is not a search")
	}
}

func TestSearchStaleDebounce(t *testing.T) {
	m := newSearchModel(newTestClient())
	m.input.SetValue("api")
	m.debounceSeq = 5

	_, cmd := m.update(searchDebounceMsg{seq: 4})
	if cmd != nil {
		t.Fatal("superseded debounce must not fetch")
	}
}

// ============================================================
// Statistics
// ============================================================

func TestStatisticsDropsStaleData(t *testing.T) {
	s := newStatisticsModel(newTestClient())
	s.fetchSeq = 2

	s, _ = s.update(statsDataMsg{seq: 1, weekly: &api.WeeklyStats{TotalLogs: 99}})
	if s.weekly != nil {
		t.Fatal("stale stats should be dropped")
	}

	s, _ = s.update(statsDataMsg{seq: 2, weekly: &api.WeeklyStats{TotalLogs: 5}})
	if s.weekly == nil || s.weekly.TotalLogs != 5 {
		t.Fatal("current stats should land")
	}
}

// ============================================================
// App
// ============================================================

func newTestApp(t *testing.T) App {
	t.Helper()
	return NewApp(newTestClient(), newTestStore(t), discardLogger(), Options{})
}

func TestNewAppDefaults(t *testing.T) {
	app := newTestApp(t)

	if app.activeView != viewDashboard {
		t.Fatal("default view should be dashboard")
	}
	if app.showHelp || app.searchOpen || app.crashed {
		t.Fatal("overlays should start closed")
	}
	if app.logs.list.pageSize != 10 {
		t.Fatalf("zero page size should default to 10, got %d", app.logs.list.pageSize)
	}
	if app.logs.form.autosaveEvery != 30*time.Second {
		t.Fatalf("zero autosave interval should default to 30s, got %v", app.logs.form.autosaveEvery)
	}
}

func TestAppCapturesInputDefault(t *testing.T) {
	app := newTestApp(t)
	if app.capturesInput() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppLoadingState(t *testing.T) {
	app := newTestApp(t)
	if out := app.View(); out != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", out)
	}
}

func TestAppViewStates(t *testing.T) {
	app := newTestApp(t)
	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app = model.(App)

	views := []viewState{viewDashboard, viewLogs, viewProjects, viewStatistics, viewSettings}
	for _, v := range views {
		app.activeView = v
		if out := app.View(); out == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppHeaderContainsAllTabs(t *testing.T) {
	app := newTestApp(t)
	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app = model.(App)

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppTabSwitching(t *testing.T) {
	app := newTestApp(t)
	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app = model.(App)

	model, cmd := app.Update(keyPress('2'))
	app = model.(App)
	if app.activeView != viewLogs {
		t.Fatal("key 2 should open the logs view")
	}
	if cmd == nil {
		t.Fatal("switching tabs should refresh the target view")
	}
}

func TestAppSearchShortcut(t *testing.T) {
	app := newTestApp(t)
	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app = model.(App)

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyCtrlK})
	app = model.(App)
	if !app.searchOpen {
		t.Fatal("ctrl+k should open the search overlay")
	}

	model, _ = app.Update(searchClosedMsg{})
	app = model.(App)
	if app.searchOpen {
		t.Fatal("close message should dismiss the overlay")
	}
}

func TestAppQuickNewShortcut(t *testing.T) {
	app := newTestApp(t)
	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app = model.(App)

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	app = model.(App)
	if app.activeView != viewLogs {
		t.Fatal("ctrl+n should jump to the logs view")
	}
	if cmd == nil {
		t.Fatal("ctrl+n should start loading the form")
	}
	if app.logs.mode != logsModeForm {
		t.Fatal("ctrl+n should open the editor")
	}
}

func TestAppStatusBecomesToast(t *testing.T) {
	app := newTestApp(t)
	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app = model.(App)

	model, cmd := app.Update(statusMsg{text: "Log created"})
	app = model.(App)
	if cmd == nil {
		t.Fatal("a toast should schedule its own expiry")
	}
	if !strings.Contains(app.renderFooter(), "Log created") {
		t.Fatal("footer should show the toast")
	}
}

func TestAppCrashRecovery(t *testing.T) {
	app := newTestApp(t)
	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app = model.(App)
	app.crashed = true
	app.crashMsg = "index out of range"

	out := app.View()
	if !strings.Contains(out, "Something went wrong") {
		t.Fatal("crash screen missing")
	}
	if !strings.Contains(out, "index out of range") {
		t.Fatal("crash detail missing")
	}

	// r rebuilds the app from scratch.
	model, cmd := app.Update(keyPress('r'))
	fresh, ok := model.(App)
	if !ok {
		t.Fatal("reload should return an App")
	}
	if fresh.crashed {
		t.Fatal("reload should clear the crash state")
	}
	if cmd == nil {
		t.Fatal("reload should re-init")
	}
	if fresh.width != 120 {
		t.Fatal("reload should keep the terminal size")
	}
}

func TestAppViewNames(t *testing.T) {
	if len(viewNames) != 5 {
		t.Fatalf("expected 5 view names, got %d", len(viewNames))
	}
	expected := []string{"Dashboard", "Logs", "Projects", "Statistics", "Settings"}
	for i, name := range expected {
		if viewNames[i] != name {
			t.Fatalf("viewNames[%d] = %q, want %q", i, viewNames[i], name)
		}
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}
