package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnector/devconnector/internal/config"
)

func githubHandlerFor(upstream string) *GithubHandler {
	h := NewGithubHandler(config.Config{GithubID: "id", GithubSecret: "secret"})
	h.BaseURL = upstream
	return h
}

func invokeRepos(t *testing.T, h *GithubHandler, username string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("username")
	c.SetParamValues(username)
	require.NoError(t, h.Repos(c))
	return rec
}

func TestGithubRepos_ForwardsUpstreamJSON(t *testing.T) {
	t.Parallel()

	var gotPath, gotQuery, gotUA string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"repo1"}]`))
	}))
	defer upstream.Close()

	rec := invokeRepos(t, githubHandlerFor(upstream.URL), "octocat")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"name":"repo1"}]`, rec.Body.String())
	assert.Equal(t, "/users/octocat/repos", gotPath)
	assert.Contains(t, gotQuery, "per_page=5")
	assert.Contains(t, gotQuery, "client_id=id")
	assert.Equal(t, "devconnector", gotUA)
}

func TestGithubRepos_UpstreamNon200MapsToNotFound(t *testing.T) {
	t.Parallel()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer upstream.Close()

	rec := invokeRepos(t, githubHandlerFor(upstream.URL), "ghost")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "no github profile found")
}

func TestGithubRepos_TransportErrorMapsToUnavailable(t *testing.T) {
	t.Parallel()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // connection refused from here on

	rec := invokeRepos(t, githubHandlerFor(upstream.URL), "anyone")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "github service unavailable")
}
