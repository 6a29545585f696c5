package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const toastDuration = 3 * time.Second

// toastModel is the transient footer notification. Each show bumps the
// generation so a pending expiry timer from an earlier toast cannot
// dismiss a newer one.
type toastModel struct {
	text    string
	isError bool
	gen     int
}

func (t *toastModel) show(text string, isError bool) tea.Cmd {
	t.text = text
	t.isError = isError
	t.gen++
	gen := t.gen
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpireMsg{gen: gen}
	})
}

func (t *toastModel) expire(msg toastExpireMsg) {
	if msg.gen == t.gen {
		t.text = ""
	}
}

func (t toastModel) view() string {
	if t.text == "" {
		return ""
	}
	if t.isError {
		return errorStyle.Render(" ✗ " + t.text)
	}
	return successStyle.Render(" ✓ " + t.text)
}
