package api

// Mood values accepted by the backend.
type Mood string

const (
	MoodGreat    Mood = "GREAT"
	MoodGood     Mood = "GOOD"
	MoodNeutral  Mood = "NEUTRAL"
	MoodBad      Mood = "BAD"
	MoodTerrible Mood = "TERRIBLE"
)

// Moods in display order.
var Moods = []Mood{MoodGreat, MoodGood, MoodNeutral, MoodBad, MoodTerrible}

// ProjectStatus values accepted by the backend.
type ProjectStatus string

const (
	StatusActive    ProjectStatus = "ACTIVE"
	StatusCompleted ProjectStatus = "COMPLETED"
	StatusOnHold    ProjectStatus = "ON_HOLD"
	StatusArchived  ProjectStatus = "ARCHIVED"
)

var ProjectStatuses = []ProjectStatus{StatusActive, StatusCompleted, StatusOnHold, StatusArchived}

// DevLog is a single work-log entry as returned by the backend.
// Date/time fields are ISO-8601 strings; the client never does arithmetic
// on them beyond parsing for display.
type DevLog struct {
	ID           int64     `json:"id"`
	ProjectID    int64     `json:"projectId"`
	ProjectName  string    `json:"projectName"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	LogDate      string    `json:"logDate"`
	StartTime    string    `json:"startTime,omitempty"`
	EndTime      string    `json:"endTime,omitempty"`
	Achievements string    `json:"achievements,omitempty"`
	Challenges   string    `json:"challenges,omitempty"`
	Learnings    string    `json:"learnings,omitempty"`
	CodeSnippets string    `json:"codeSnippets,omitempty"`
	TechTags     []TechTag `json:"techTags,omitempty"`
	Mood         Mood      `json:"mood,omitempty"`
	WorkMinutes  int       `json:"workMinutes,omitempty"`
	CreatedAt    string    `json:"createdAt,omitempty"`
	UpdatedAt    string    `json:"updatedAt,omitempty"`
}

// LogPayload is the create/update body. Optional text fields are pointers
// so that empty inputs serialize as JSON null rather than "".
type LogPayload struct {
	ProjectID    int64   `json:"projectId"`
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	LogDate      string  `json:"logDate"`
	StartTime    *string `json:"startTime"`
	EndTime      *string `json:"endTime"`
	Achievements *string `json:"achievements"`
	Challenges   *string `json:"challenges"`
	Learnings    *string `json:"learnings"`
	CodeSnippets *string `json:"codeSnippets"`
	TechTagIDs   []int64 `json:"techTagIds"`
	Mood         *string `json:"mood"`
}

type Project struct {
	ID               int64         `json:"id"`
	Name             string        `json:"name"`
	Description      string        `json:"description,omitempty"`
	Status           ProjectStatus `json:"status"`
	StartDate        string        `json:"startDate"`
	EndDate          string        `json:"endDate,omitempty"`
	Progress         int           `json:"progress"`
	TotalLogs        int           `json:"totalLogs,omitempty"`
	TotalWorkMinutes int           `json:"totalWorkMinutes,omitempty"`
}

type ProjectPayload struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	StartDate   string  `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Progress    int     `json:"progress"`
}

type TechTag struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Color    string `json:"color"`
}

// DailyCount is one day's activity inside a stats response.
type DailyCount struct {
	Date        string `json:"date"`
	Count       int    `json:"count"`
	WorkMinutes int    `json:"workMinutes"`
}

type ProjectCount struct {
	ProjectID   int64  `json:"projectId"`
	ProjectName string `json:"projectName"`
	Count       int    `json:"count"`
	WorkMinutes int    `json:"workMinutes"`
}

type WeeklyCount struct {
	WeekNumber  int    `json:"weekNumber"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Count       int    `json:"count"`
	WorkMinutes int    `json:"workMinutes"`
}

// WeeklyStats is the server-computed weekly aggregate. All fields may be
// absent; zero values render as zero, never as an error.
type WeeklyStats struct {
	StartDate        string         `json:"startDate"`
	EndDate          string         `json:"endDate"`
	TotalLogs        int            `json:"totalLogs"`
	TotalWorkMinutes int            `json:"totalWorkMinutes"`
	AvgWorkMinutes   int            `json:"avgWorkMinutes"`
	ActiveProjects   int            `json:"activeProjects"`
	DailyCounts      []DailyCount   `json:"dailyCounts"`
	ProjectCounts    []ProjectCount `json:"projectCounts"`
}

type MonthlyStats struct {
	Year             int            `json:"year"`
	Month            int            `json:"month"`
	TotalLogs        int            `json:"totalLogs"`
	TotalWorkMinutes int            `json:"totalWorkMinutes"`
	AvgWorkMinutes   int            `json:"avgWorkMinutes"`
	ActiveProjects   int            `json:"activeProjects"`
	WorkDays         int            `json:"workDays"`
	DailyCounts      []DailyCount   `json:"dailyCounts"`
	ProjectCounts    []ProjectCount `json:"projectCounts"`
	WeeklyCounts     []WeeklyCount  `json:"weeklyCounts"`
}

type CategoryCount struct {
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	UsageCount int     `json:"usageCount"`
	Percentage float64 `json:"percentage"`
}

type TagUsage struct {
	TagID        int64   `json:"tagId"`
	TagName      string  `json:"tagName"`
	Category     string  `json:"category"`
	Color        string  `json:"color"`
	UsageCount   int     `json:"usageCount"`
	Percentage   float64 `json:"percentage"`
	LastUsedDate string  `json:"lastUsedDate,omitempty"`
	ProjectCount int     `json:"projectCount,omitempty"`
}

type TechStackStats struct {
	TotalTags       int             `json:"totalTags"`
	TotalUsageCount int             `json:"totalUsageCount"`
	CategoryCounts  []CategoryCount `json:"categoryCounts"`
	TagUsages       []TagUsage      `json:"tagUsages"`
	PopularTags     []TagUsage      `json:"popularTags"`
	RecentTags      []TagUsage      `json:"recentTags"`
}

type ProjectStats struct {
	ProjectID        int64        `json:"projectId"`
	ProjectName      string       `json:"projectName"`
	ProjectStatus    string       `json:"projectStatus"`
	ProjectProgress  int          `json:"projectProgress"`
	TotalLogs        int          `json:"totalLogs"`
	TotalWorkMinutes int          `json:"totalWorkMinutes"`
	AvgWorkMinutes   int          `json:"avgWorkMinutes"`
	FirstLogDate     string       `json:"firstLogDate,omitempty"`
	LastLogDate      string       `json:"lastLogDate,omitempty"`
	TechTagCount     int          `json:"techTagCount"`
	DailyCounts      []DailyCount `json:"dailyCounts"`
}
