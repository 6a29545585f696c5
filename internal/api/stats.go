package api

import (
	"context"
	"fmt"
)

func (c *Client) CurrentWeekStats(ctx context.Context) (*WeeklyStats, error) {
	var stats WeeklyStats
	if err := c.get(ctx, "/statistics/weekly/current", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) LastWeekStats(ctx context.Context) (*WeeklyStats, error) {
	var stats WeeklyStats
	if err := c.get(ctx, "/statistics/weekly/last", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) CurrentMonthStats(ctx context.Context) (*MonthlyStats, error) {
	var stats MonthlyStats
	if err := c.get(ctx, "/statistics/monthly/current", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) LastMonthStats(ctx context.Context) (*MonthlyStats, error) {
	var stats MonthlyStats
	if err := c.get(ctx, "/statistics/monthly/last", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) ProjectStatistics(ctx context.Context, projectID int64) (*ProjectStats, error) {
	var stats ProjectStats
	if err := c.get(ctx, fmt.Sprintf("/statistics/project/%d", projectID), nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) TechStack(ctx context.Context) (*TechStackStats, error) {
	var stats TechStackStats
	if err := c.get(ctx, "/statistics/tech-stack", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
