package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api", time.Second, nil)
}

func TestLogFilterValuesOmitsZeroFields(t *testing.T) {
	v := LogFilter{Page: 2, Size: 10}.Values()
	assert.Equal(t, "2", v.Get("page"))
	assert.Equal(t, "10", v.Get("size"))
	assert.False(t, v.Has("projectId"))
	assert.False(t, v.Has("startDate"))
	assert.False(t, v.Has("endDate"))
	assert.False(t, v.Has("keyword"))

	v = LogFilter{Page: 1, Size: 10, ProjectID: 7, Keyword: "api"}.Values()
	assert.Equal(t, "7", v.Get("projectId"))
	assert.Equal(t, "api", v.Get("keyword"))
}

func TestListLogsSendsFilterQuery(t *testing.T) {
	var gotQuery map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		assert.Equal(t, "/api/logs", r.URL.Path)
		json.NewEncoder(w).Encode([]DevLog{{ID: 1, Title: "a"}})
	})

	logs, err := client.ListLogs(context.Background(), LogFilter{
		Page: 1, Size: 10, StartDate: "2025-03-01",
	})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, []string{"2025-03-01"}, gotQuery["startDate"])
	_, hasKeyword := gotQuery["keyword"]
	assert.False(t, hasKeyword, "empty keyword must not be sent")
}

func TestErrorDecoding(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"message":"log not found"}`)
	})

	_, err := client.GetLog(context.Background(), 42)
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "log not found", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "404")
}

func TestErrorWithoutBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.ListProjects(context.Background())
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.NotEmpty(t, apiErr.Error())
}

func TestCreateLogSendsNullsForEmptyOptionals(t *testing.T) {
	var body map[string]json.RawMessage
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(DevLog{ID: 9})
	})

	p := LogPayload{
		ProjectID:  1,
		Title:      "wired the codec",
		LogDate:    "2025-03-14T00:00:00",
		TechTagIDs: []int64{},
	}
	log, err := client.CreateLog(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, int64(9), log.ID)

	// Optional fields are present and null, never "".
	for _, field := range []string{"description", "startTime", "endTime", "mood"} {
		raw, ok := body[field]
		require.True(t, ok, "field %s missing", field)
		assert.Equal(t, "null", string(raw), "field %s", field)
	}
	assert.Equal(t, "[]", string(body["techTagIds"]))
}

func TestUpdateLogUsesPut(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/logs/5", r.URL.Path)
		json.NewEncoder(w).Encode(DevLog{ID: 5})
	})

	_, err := client.UpdateLog(context.Background(), 5, LogPayload{ProjectID: 1, Title: "t", LogDate: "2025-03-14T00:00:00"})
	require.NoError(t, err)
}

func TestDeleteLog(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteLog(context.Background(), 12))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/logs/12", gotPath)
}

func TestGetProjectStats(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/projects/3/stats", r.URL.Path)
		json.NewEncoder(w).Encode(ProjectStats{ProjectID: 3, TotalLogs: 8})
	})

	stats, err := client.GetProjectStats(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 8, stats.TotalLogs)
}

func TestProjectStatisticsPath(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/statistics/project/4", r.URL.Path)
		json.NewEncoder(w).Encode(ProjectStats{ProjectID: 4, TotalWorkMinutes: 120})
	})

	stats, err := client.ProjectStatistics(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.ProjectID)
	assert.Equal(t, 120, stats.TotalWorkMinutes)
}

func TestPopularTagsQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tech-tags/popular", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode([]TechTag{{ID: 1, Name: "go"}})
	})

	tags, err := client.PopularTags(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, tags, 1)
}

func TestBaseURLTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/projects", r.URL.Path)
		json.NewEncoder(w).Encode([]Project{})
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL+"/api/", time.Second, nil)
	_, err := client.ListProjects(context.Background())
	require.NoError(t, err)
}

func TestContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.ListLogs(ctx, LogFilter{Page: 1, Size: 10})
	require.Error(t, err)
}
