package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Veraticus/semester-planner/internal/common"
	"github.com/Veraticus/semester-planner/internal/model"
	"github.com/Veraticus/semester-planner/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastRetry = service.RetryOptions{
	MaxAttempts:  3,
	InitialDelay: time.Millisecond,
	MaxDelay:     5 * time.Millisecond,
	Multiplier:   2,
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/courses", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, []map[string]any{
			{"id": "cs111", "code": "CS 111", "title": "Program Design I", "credits": 3, "level": 100, "difficulty": "Easy", "prerequisites": []string{}, "prereqChain": "None"},
			{"code": "CS 141", "title": "Program Design II", "level": 100, "prerequisites": []string{"CS 111"}},
		})
	})
	mux.HandleFunc("/api/majors", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, []model.Major{{ID: 1, Name: "Computer Science", Concentration: "Software Engineering"}})
	})
	mux.HandleFunc("/api/majors/1/requirements", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"major": map[string]any{"id": 1, "name": "Computer Science", "concentration": "Software Engineering"},
			"requiredCourses": []map[string]any{
				{"id": "cs111", "code": "CS 111", "title": "Program Design I", "credits": 3, "level": 100, "requirementType": "Core CS"},
			},
		})
	})
	mux.HandleFunc("/api/majors/9/requirements", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]string{"error": "Major not found"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := NewClient(url+"/api", WithRetry(fastRetry), WithTimeout(2*time.Second))
	require.NoError(t, err)
	return c
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		url     string
	}{
		{name: "valid", url: "http://127.0.0.1:5001/api/"},
		{name: "empty", url: "  ", wantErr: common.ErrMissingConfig},
		{name: "not http", url: "ftp://example.com", wantErr: common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(tt.url)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "http://127.0.0.1:5001/api", c.baseURL)
		})
	}
}

func TestClient_FetchCourses(t *testing.T) {
	srv := newCatalogServer(t)
	c := newTestClient(t, srv.URL)

	courses, err := c.FetchCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)

	assert.Equal(t, "cs111", courses[0].ID)
	assert.Equal(t, model.DifficultyEasy, courses[0].Difficulty)

	// Missing fields are filled from the code and level.
	assert.Equal(t, "cs141", courses[1].ID)
	assert.Equal(t, model.DefaultCredits, courses[1].Credits)
	assert.Equal(t, model.DifficultyEasy, courses[1].Difficulty)
	assert.Equal(t, []string{"CS 111"}, courses[1].Prerequisites)
}

func TestClient_FetchMajorsAndRequirements(t *testing.T) {
	srv := newCatalogServer(t)
	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	majors, err := c.FetchMajors(ctx)
	require.NoError(t, err)
	require.Len(t, majors, 1)
	assert.Equal(t, "Computer Science – Software Engineering", majors[0].DisplayName())

	reqs, err := c.FetchRequirements(ctx, 1)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "CS 111", reqs[0].Code)
	assert.Equal(t, "Core CS", reqs[0].RequirementType)
}

func TestClient_NotFoundIsNotRetried(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		http.Error(w, `{"error":"Major not found"}`, http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL)
	_, err := c.FetchRequirements(context.Background(), 9)

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Contains(t, err.Error(), "Major not found")
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) < 3 {
			http.Error(w, "try again", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"Computer Science","concentration":""}]`))
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL)
	majors, err := c.FetchMajors(context.Background())

	require.NoError(t, err)
	assert.Len(t, majors, 1)
	assert.Equal(t, int32(3), hits.Load())
}

func TestClient_GivesUpAfterMaxAttempts(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL)
	_, err := c.FetchCourses(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMaxRetries)
	assert.True(t, common.IsRetryable(err))
	assert.Equal(t, int32(fastRetry.MaxAttempts), hits.Load())
}

func TestClient_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL)
	_, err := c.FetchCourses(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode")
}

func TestClient_Load(t *testing.T) {
	srv := newCatalogServer(t)
	c := newTestClient(t, srv.URL)

	snap, err := c.Load(context.Background(), 1)
	require.NoError(t, err)

	assert.Len(t, snap.Courses, 2)
	assert.Len(t, snap.Requirements, 1)
	assert.NoError(t, snap.RequirementsErr)
}

func TestClient_LoadKeepsCatalogWhenRequirementsFail(t *testing.T) {
	srv := newCatalogServer(t)
	c := newTestClient(t, srv.URL)

	snap, err := c.Load(context.Background(), 9)
	require.NoError(t, err)

	assert.Len(t, snap.Courses, 2)
	assert.Empty(t, snap.Requirements)
	assert.ErrorIs(t, snap.RequirementsErr, common.ErrNotFound)
}

func TestLoad_CatalogFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL)
	_, err := Load(context.Background(), c, 1)

	assert.ErrorIs(t, err, common.ErrCatalogUnavailable)
}
