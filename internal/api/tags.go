package api

import (
	"context"
	"net/url"
	"strconv"
)

func (c *Client) ListTags(ctx context.Context) ([]TechTag, error) {
	var tags []TechTag
	if err := c.get(ctx, "/tech-tags", nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (c *Client) ListTagsByCategory(ctx context.Context, category string) ([]TechTag, error) {
	v := url.Values{}
	v.Set("category", category)
	var tags []TechTag
	if err := c.get(ctx, "/tech-tags", v, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (c *Client) PopularTags(ctx context.Context, limit int) ([]TechTag, error) {
	v := url.Values{}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	var tags []TechTag
	if err := c.get(ctx, "/tech-tags/popular", v, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
