package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poststats/poststats/internal/db/controller/article"
	"github.com/poststats/poststats/internal/db/models"
	"github.com/poststats/poststats/internal/web/handler/handlertest"
	"github.com/poststats/poststats/internal/web/session"
)

func newService(t *testing.T) *Service {
	t.Helper()

	session.Init(nil)

	db := handlertest.NewDB(t)
	require.NoError(t, article.Save(db, &models.Article{
		Slug:    "hello-world",
		Title:   "Hello world",
		Content: "<p>Hello <strong>brave</strong> new world</p>",
	}))

	return New(handlertest.NewConfig(), db)
}

func fetch(t *testing.T, s *Service, target string) (*http.Response, string) {
	t.Helper()

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func TestService_Routes(t *testing.T) {
	s := newService(t)

	tests := []struct {
		name         string
		target       string
		wantStatus   int
		wantLocation string
		wantBody     []string
	}{
		{name: "root redirects", target: "/", wantStatus: http.StatusFound, wantLocation: "/articles"},
		{
			name:       "article list without stats",
			target:     "/articles",
			wantStatus: http.StatusOK,
			wantBody:   []string{`<a href="/articles/hello-world">Hello world</a>`, "Sign in"},
		},
		{
			name:       "single article with stats block",
			target:     "/articles/hello-world",
			wantStatus: http.StatusOK,
			wantBody: []string{
				"<h3>Post stats</h3> <p>This post has 4 words.<br/>This post will take 0 minute(s) to read.<br/></p>" +
					"<p>Hello <strong>brave</strong> new world</p>",
			},
		},
		{name: "unknown article", target: "/articles/nope", wantStatus: http.StatusNotFound},
		{name: "login page", target: "/login", wantStatus: http.StatusOK, wantBody: []string{`name="password"`}},
		{name: "admin needs login", target: "/admin/settings/post-stats", wantStatus: http.StatusFound, wantLocation: "/login"},
		{name: "checkalive", target: CheckAlivePath, wantStatus: http.StatusOK, wantBody: []string{"OK"}},
		{name: "metrics", target: MetricsPath, wantStatus: http.StatusOK, wantBody: []string{"poststats_settings_saved_total"}},
		{name: "static files", target: "/static/css/main.css", wantStatus: http.StatusOK, wantBody: []string{".breadcrumbs"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := fetch(t, s, tt.target)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantLocation, resp.Header.Get("Location"))

			for _, want := range tt.wantBody {
				assert.Contains(t, body, want)
			}
		})
	}
}

func TestService_SignedInAdmin(t *testing.T) {
	s := newService(t)

	sessionID := handlertest.SignIn(t, s.db, "admin", "admin.settings")

	req := httptest.NewRequest(http.MethodGet, "/admin/settings/post-stats", nil)
	req.Header.Set("Cookie", handlertest.Cookie(sessionID))

	resp, err := s.App.Test(req, -1)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `<option value="beginning" selected>`)
	assert.Contains(t, string(body), `name="poststats_display_word_count" value="1" checked`)
	assert.Contains(t, string(body), "Sign out admin")
	assert.True(t, strings.Count(string(body), `type="checkbox"`) == 3)
}

func TestService_StoredSettingsPage(t *testing.T) {
	s := newService(t)

	sessionID := handlertest.SignIn(t, s.db, "admin", "admin.settings")

	req := httptest.NewRequest(http.MethodGet, "/admin/settings/store?search=nothing-stored", nil)
	req.Header.Set("Cookie", handlertest.Cookie(sessionID))

	resp, err := s.App.Test(req, -1)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "<h1>Stored settings</h1>")
	assert.Contains(t, string(body), "No settings found.")
}

func TestService_CheckAliveDuringShutdown(t *testing.T) {
	s := newService(t)
	require.True(t, s.Alive())

	s.alive.Store(false)

	resp, _ := fetch(t, s, CheckAlivePath)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
