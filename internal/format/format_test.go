package format

import (
	"testing"
	"time"

	"github.com/sadopc/devlog/internal/api"
)

func TestDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-03-14T09:30:00", "2025-03-14"},
		{"2025-03-14T09:30:00Z", "2025-03-14"},
		{"2025-03-14", "2025-03-14"},
		{"", "-"},
		{"not a date", "-"},
	}
	for _, tt := range tests {
		got := Date(tt.in)
		if got != tt.want {
			t.Errorf("Date(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClockTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-03-14T09:30:00", "09:30"},
		{"09:30:00", "09:30"},
		{"09:30", "09:30"},
		{"", ""},
	}
	for _, tt := range tests {
		got := ClockTime(tt.in)
		if got != tt.want {
			t.Errorf("ClockTime(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWorkTime(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0h"},
		{-5, "0h"},
		{45, "45m"},
		{60, "1h"},
		{150, "2h 30m"},
	}
	for _, tt := range tests {
		got := WorkTime(tt.minutes)
		if got != tt.want {
			t.Errorf("WorkTime(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestHours(t *testing.T) {
	tests := []struct {
		minutes int
		want    float64
	}{
		{0, 0},
		{60, 1.0},
		{90, 1.5},
		{100, 1.7},
	}
	for _, tt := range tests {
		got := Hours(tt.minutes)
		if got != tt.want {
			t.Errorf("Hours(%d) = %v, want %v", tt.minutes, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(1, 0); got != "0%" {
		t.Errorf("Percent(1, 0) = %q, want 0%%", got)
	}
	if got := Percent(1, 4); got != "25.0%" {
		t.Errorf("Percent(1, 4) = %q, want 25.0%%", got)
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		in   string
		want string
	}{
		{"2025-03-14T11:59:30Z", "just now"},
		{"2025-03-14T11:30:00Z", "30m ago"},
		{"2025-03-14T09:00:00Z", "3h ago"},
		{"2025-03-12T12:00:00Z", "2d ago"},
		{"2025-03-01T12:00:00Z", "2025-03-01"}, // beyond a week: plain date
		{"garbage", "-"},
	}
	for _, tt := range tests {
		got := RelativeTime(tt.in, now)
		if got != tt.want {
			t.Errorf("RelativeTime(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"this is too long", 7, "this is..."},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		got := Truncate(tt.in, tt.maxLen)
		if got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}

func TestParseTags(t *testing.T) {
	got := ParseTags(" go , sqlite,, react ,")
	want := []string{"go", "sqlite", "react"}
	if len(got) != len(want) {
		t.Fatalf("ParseTags returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ParseTags[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got := ParseTags(""); got != nil {
		t.Errorf("ParseTags(\"\") = %v, want nil", got)
	}
}

func TestProjectColor(t *testing.T) {
	// sum("abc") = 97+98+99 = 294, 294 % 8 = 6
	if got := ProjectColor("abc"); got != Palette[6] {
		t.Errorf("ProjectColor(\"abc\") = %q, want %q", got, Palette[6])
	}

	// Same name always maps to the same color.
	if ProjectColor("DevLog") != ProjectColor("DevLog") {
		t.Error("ProjectColor is not stable")
	}

	// Every result must come from the palette.
	for _, name := range []string{"", "x", "My Project", "日本語"} {
		color := ProjectColor(name)
		found := false
		for _, p := range Palette {
			if p == color {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("ProjectColor(%q) = %q not in palette", name, color)
		}
	}
}

func TestGroupByDate(t *testing.T) {
	logs := []api.DevLog{
		{ID: 1, Title: "c", LogDate: "2025-03-14T00:00:00"},
		{ID: 2, Title: "a", LogDate: "2025-03-12T00:00:00"},
		{ID: 3, Title: "b", LogDate: "2025-03-14T00:00:00"},
		{ID: 4, Title: "d", LogDate: "2025-03-13T00:00:00"},
	}

	groups := GroupByDate(logs)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}

	// Newest date first.
	wantDates := []string{"2025-03-14", "2025-03-13", "2025-03-12"}
	for i, want := range wantDates {
		if groups[i].Date != want {
			t.Errorf("groups[%d].Date = %q, want %q", i, groups[i].Date, want)
		}
	}

	// Input order preserved inside a group.
	first := groups[0].Logs
	if len(first) != 2 || first[0].ID != 1 || first[1].ID != 3 {
		t.Fatalf("group order not preserved: %+v", first)
	}
}

func TestGroupByDateEmpty(t *testing.T) {
	if groups := GroupByDate(nil); groups != nil {
		t.Fatalf("expected nil groups, got %v", groups)
	}
}

func TestGroupByDateUnparseable(t *testing.T) {
	logs := []api.DevLog{
		{ID: 1, LogDate: "bogus"},
		{ID: 2, LogDate: ""},
	}
	groups := GroupByDate(logs)
	// Both land in the "-" bucket.
	if len(groups) != 1 || groups[0].Date != "-" || len(groups[0].Logs) != 2 {
		t.Fatalf("unexpected grouping: %+v", groups)
	}
}
