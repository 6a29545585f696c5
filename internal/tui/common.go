package tui

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewLogs
	viewProjects
	viewStatistics
	viewSettings
)

var viewNames = []string{"Dashboard", "Logs", "Projects", "Statistics", "Settings"}

// --- Messages ---

// statusMsg surfaces a transient notification in the footer toast.
type statusMsg struct {
	text    string
	isError bool
}

// toastExpireMsg dismisses the toast, provided its generation still
// matches (a newer toast invalidates pending expiry timers).
type toastExpireMsg struct {
	gen int
}

// openLogFormMsg asks the logs view to open the editor. id == 0 means
// create mode.
type openLogFormMsg struct {
	id int64
}

// openLogDetailMsg asks the logs view to show a single log.
type openLogDetailMsg struct {
	id int64
}

// --- Helpers ---

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
