package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// LogFilter narrows ListLogs. Zero-valued fields are omitted from the
// request entirely, never sent as empty strings.
type LogFilter struct {
	Page      int
	Size      int
	ProjectID int64
	StartDate string
	EndDate   string
	Keyword   string
}

// Values encodes the filter as query parameters.
func (f LogFilter) Values() url.Values {
	v := url.Values{}
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	if f.Size > 0 {
		v.Set("size", strconv.Itoa(f.Size))
	}
	if f.ProjectID > 0 {
		v.Set("projectId", strconv.FormatInt(f.ProjectID, 10))
	}
	if f.StartDate != "" {
		v.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		v.Set("endDate", f.EndDate)
	}
	if f.Keyword != "" {
		v.Set("keyword", f.Keyword)
	}
	return v
}

func (c *Client) ListLogs(ctx context.Context, f LogFilter) ([]DevLog, error) {
	var logs []DevLog
	if err := c.get(ctx, "/logs", f.Values(), &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (c *Client) GetLog(ctx context.Context, id int64) (*DevLog, error) {
	var log DevLog
	if err := c.get(ctx, fmt.Sprintf("/logs/%d", id), nil, &log); err != nil {
		return nil, err
	}
	return &log, nil
}

func (c *Client) CreateLog(ctx context.Context, p LogPayload) (*DevLog, error) {
	var log DevLog
	if err := c.send(ctx, http.MethodPost, "/logs", p, &log); err != nil {
		return nil, err
	}
	return &log, nil
}

func (c *Client) UpdateLog(ctx context.Context, id int64, p LogPayload) (*DevLog, error) {
	var log DevLog
	if err := c.send(ctx, http.MethodPut, fmt.Sprintf("/logs/%d", id), p, &log); err != nil {
		return nil, err
	}
	return &log, nil
}

func (c *Client) DeleteLog(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/logs/%d", id), nil, nil)
}
