package api

import (
	"context"
	"fmt"
	"net/http"
)

func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.get(ctx, "/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) GetProject(ctx context.Context, id int64) (*Project, error) {
	var p Project
	if err := c.get(ctx, fmt.Sprintf("/projects/%d", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreateProject(ctx context.Context, p ProjectPayload) (*Project, error) {
	var created Project
	if err := c.send(ctx, http.MethodPost, "/projects", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateProject(ctx context.Context, id int64, p ProjectPayload) (*Project, error) {
	var updated Project
	if err := c.send(ctx, http.MethodPut, fmt.Sprintf("/projects/%d", id), p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil, nil)
}

func (c *Client) GetProjectStats(ctx context.Context, id int64) (*ProjectStats, error) {
	var stats ProjectStats
	if err := c.get(ctx, fmt.Sprintf("/projects/%d/stats", id), nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
