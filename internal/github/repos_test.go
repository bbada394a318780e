package github

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/KOFI-GYIMAH/portfolio/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawRepo(id int, name string, updated time.Time) map[string]any {
	return map[string]any{
		"id":               id,
		"name":             name,
		"description":      "repo " + name,
		"language":         "Go",
		"stargazers_count": id,
		"forks_count":      1,
		"html_url":         "https://github.com/octocat/" + name,
		"updated_at":       updated.Format(time.RFC3339),
		"private":          id%2 == 0,
		"fork":             id%3 == 0,
		"owner":            map[string]any{"login": "octocat"},
	}
}

func TestFetchRepositories_FirstVariant(t *testing.T) {
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	client := newTestClient(t, "test-token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat/repos", r.URL.Path)
		assert.Equal(t, "owner", r.URL.Query().Get("type"))
		assert.Equal(t, "updated", r.URL.Query().Get("sort"))
		assert.Equal(t, "10", r.URL.Query().Get("per_page"))
		writeJSON(w, http.StatusOK, []map[string]any{
			rawRepo(1, "newest", base.Add(3*time.Hour)),
			rawRepo(2, "middle", base.Add(2*time.Hour)),
			rawRepo(3, "oldest", base),
		})
	})

	repos, err := client.FetchRepositories(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, repos, 3)

	first := repos[0]
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "newest", first.Name)
	require.NotNil(t, first.Description)
	assert.Equal(t, "repo newest", *first.Description)
	assert.Equal(t, "https://github.com/octocat/newest", first.URL)
	assert.True(t, repos[1].Private)
	assert.True(t, repos[2].Fork)

	for i, repo := range repos {
		assert.Equal(t, "octocat", repo.Owner)
		if i > 0 {
			assert.False(t, repo.UpdatedAt.After(repos[i-1].UpdatedAt), "updatedAt must be non-increasing")
		}
	}
}

func TestFetchRepositories_FallsBackToAuthenticatedUser(t *testing.T) {
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	var paths []string

	client := newTestClient(t, "test-token", func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/users/octocat/repos":
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
		case "/user/repos":
			assert.Equal(t, "owner", r.URL.Query().Get("affiliation"))
			assert.Empty(t, r.URL.Query().Get("type"))
			writeJSON(w, http.StatusOK, []map[string]any{
				rawRepo(1, "older", base),
				rawRepo(2, "newer", base.Add(time.Hour)),
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	repos, err := client.FetchRepositories(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, []string{"/users/octocat/repos", "/user/repos"}, paths)
	require.Len(t, repos, 2)
	assert.Equal(t, "newer", repos[0].Name)
	assert.Equal(t, "older", repos[1].Name)
}

func TestFetchRepositories_AllVariantsFail(t *testing.T) {
	client := newTestClient(t, "test-token", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/user/repos" {
			writeJSON(w, http.StatusForbidden, map[string]string{"message": "Resource not accessible by integration"})
			return
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
	})

	repos, err := client.FetchRepositories(context.Background(), "octocat")
	assert.Nil(t, repos)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
	assert.Equal(t, http.StatusForbidden, errors.StatusOf(err), "last variant's status is forwarded")

	resp := errors.NewHTTPErrorResponse(err)
	assert.Equal(t, "No repositories found", resp.Error)
	assert.Equal(t, "Resource not accessible by integration", resp.Details)
}

func TestFetchRepositories_TimeoutIsGatewayTimeout(t *testing.T) {
	client := newSlowClient(t, nil)

	repos, err := client.FetchRepositories(context.Background(), "octocat")
	assert.Nil(t, repos)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
	assert.Equal(t, http.StatusGatewayTimeout, errors.StatusOf(err))
}

func TestListRepositories_SlowVariantTimesOutIndependently(t *testing.T) {
	client := newSlowClient(t, func(w http.ResponseWriter, r *http.Request) bool {
		if userHandler("octocat")(w, r) {
			return true
		}
		if r.URL.Path == "/user/repos" {
			writeJSON(w, http.StatusOK, []map[string]any{rawRepo(1, "fallback", time.Now())})
			return true
		}
		return false
	})

	repos, err := client.ListRepositories(context.Background())
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, "fallback", repos[0].Name)
}

func TestFetchRepositories_Empty(t *testing.T) {
	client := newTestClient(t, "test-token", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{})
	})

	_, err := client.FetchRepositories(context.Background(), "octocat")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
}

func TestListRepositories_TruncatesForDisplay(t *testing.T) {
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	client := newTestClient(t, "test-token", func(w http.ResponseWriter, r *http.Request) {
		if userHandler("octocat")(w, r) {
			return
		}
		repos := make([]map[string]any, 0, 9)
		for i := 1; i <= 9; i++ {
			repos = append(repos, rawRepo(i, fmt.Sprintf("repo-%d", i), base.Add(-time.Duration(i)*time.Hour)))
		}
		writeJSON(w, http.StatusOK, repos)
	})

	repos, err := client.ListRepositories(context.Background())
	require.NoError(t, err)
	require.Len(t, repos, repoDisplayLimit)
	assert.Equal(t, "repo-1", repos[0].Name)
	assert.Equal(t, "repo-6", repos[5].Name)
}

func TestListRepositories_Idempotent(t *testing.T) {
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	client := newTestClient(t, "test-token", func(w http.ResponseWriter, r *http.Request) {
		if userHandler("octocat")(w, r) {
			return
		}
		writeJSON(w, http.StatusOK, []map[string]any{
			rawRepo(1, "tie-a", base),
			rawRepo(2, "tie-b", base),
			rawRepo(3, "latest", base.Add(time.Minute)),
		})
	})

	first, err := client.ListRepositories(context.Background())
	require.NoError(t, err)
	second, err := client.ListRepositories(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"latest", "tie-a", "tie-b"}, []string{first[0].Name, first[1].Name, first[2].Name})
}

func TestListRepositories_Unconfigured(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected, got %s", r.URL.Path)
	})

	_, err := client.ListRepositories(context.Background())
	assert.True(t, errors.IsKind(err, errors.KindConfig))
}
