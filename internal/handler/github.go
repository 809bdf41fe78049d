package handler

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devconnector/devconnector/internal/config"
)

const defaultGithubAPI = "https://api.github.com"

// GithubHandler proxies the public repository listing of a GitHub user.
// BaseURL is overridable for tests; the zero value targets the real API.
type GithubHandler struct {
	Cfg     config.Config
	Client  *http.Client
	BaseURL string
}

func NewGithubHandler(cfg config.Config) *GithubHandler {
	return &GithubHandler{
		Cfg:     cfg,
		Client:  &http.Client{Timeout: 10 * time.Second},
		BaseURL: defaultGithubAPI,
	}
}

// Repos handles GET /api/profile/github/:username, a public route: the five
// most recently created repositories of the given GitHub user. A non-200
// from GitHub maps to 404, a transport failure to 503.
func (h *GithubHandler) Repos(c echo.Context) error {
	username := c.Param("username")

	base := h.BaseURL
	if base == "" {
		base = defaultGithubAPI
	}
	params := url.Values{}
	params.Set("per_page", "5")
	params.Set("sort", "created:asc")
	if h.Cfg.GithubID != "" {
		params.Set("client_id", h.Cfg.GithubID)
		params.Set("client_secret", h.Cfg.GithubSecret)
	}
	reqURL := fmt.Sprintf("%s/users/%s/repos?%s", base, url.PathEscape(username), params.Encode())

	req, err := http.NewRequestWithContext(c.Request().Context(), http.MethodGet, reqURL, nil)
	if err != nil {
		return serverError(c, err)
	}
	req.Header.Set("User-Agent", "devconnector")

	resp, err := h.Client.Do(req)
	if err != nil {
		return message(c, http.StatusServiceUnavailable, "github service unavailable")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return message(c, http.StatusNotFound, "no github profile found")
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return message(c, http.StatusServiceUnavailable, "github service unavailable")
	}
	return c.JSONBlob(http.StatusOK, body)
}
