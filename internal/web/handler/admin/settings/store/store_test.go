package store

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/poststats/poststats/internal/auth"
	"github.com/poststats/poststats/internal/db/controller/options"
	"github.com/poststats/poststats/internal/db/controller/setting"
	"github.com/poststats/poststats/internal/web/handler/handlertest"
)

func setup(t *testing.T, permissions ...string) (*fiber.App, *gorm.DB, *handlertest.Views, string) {
	t.Helper()

	db := handlertest.NewDB(t)
	views := &handlertest.Views{}
	app := handlertest.NewApp(views)

	var s Service
	s.Init(app, handlertest.NewConfig(), db, auth.NewService(db))

	cookie := handlertest.Cookie(handlertest.SignIn(t, db, "admin", permissions...))

	return app, db, views, cookie
}

func get(t *testing.T, app *fiber.App, target, cookie string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func TestGet_Access(t *testing.T) {
	app, _, _, cookie := setup(t)

	assert.Equal(t, http.StatusUnauthorized, get(t, app, Path, "").StatusCode)
	assert.Equal(t, http.StatusForbidden, get(t, app, Path, cookie).StatusCode)
}

func TestGet_ListsAndFilters(t *testing.T) {
	app, db, views, cookie := setup(t, auth.PermAdminSettings)

	require.NoError(t, options.Seed(db))
	_, err := setting.Set(db, "site_banner", []byte("Welcome"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		query string
		names []string
	}{
		{
			name:  "type filter",
			query: "?type=" + TypeOther,
			names: []string{"site_banner"},
		},
		{
			name:  "search by value is case insensitive",
			query: "?search=welcome",
			names: []string{"site_banner"},
		},
		{
			name:  "search by name",
			query: "?search=LOCATION",
			names: []string{options.KeyLocation},
		},
		{
			name:  "no match",
			query: "?search=nothing-like-this",
			names: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, app, Path+tt.query, cookie)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			name, _, data := views.Last()
			assert.Equal(t, TemplateName, name)

			d, ok := data["Data"].(Data)
			require.True(t, ok)

			got := make([]string, 0, len(d.Settings))
			for _, e := range d.Settings {
				got = append(got, e.Name)
			}

			assert.Equal(t, tt.names, got)
		})
	}
}

func TestGet_Pagination(t *testing.T) {
	app, db, views, cookie := setup(t, auth.PermAdminSettings)

	require.NoError(t, options.Seed(db))

	resp := get(t, app, Path+"?pageSize=2&page=9", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, _, data := views.Last()
	d, ok := data["Data"].(Data)
	require.True(t, ok)

	assert.Equal(t, len(options.Fields()), d.TotalItems)
	assert.Equal(t, d.TotalPages, d.CurrentPage)
	assert.False(t, d.HasNextPage)
	assert.True(t, d.HasPrevPage)
	assert.NotEmpty(t, d.Settings)

	for _, e := range d.Settings {
		assert.Equal(t, TypePostStats, e.Type)
	}
}

func TestPageSliceBounds(t *testing.T) {
	tests := []struct {
		name                  string
		total, pageSize, page int
		wantStart, wantEnd    int
	}{
		{name: "first page", total: 10, pageSize: 4, page: 1, wantStart: 0, wantEnd: 4},
		{name: "last partial page", total: 10, pageSize: 4, page: 3, wantStart: 8, wantEnd: 10},
		{name: "beyond the end", total: 10, pageSize: 4, page: 5, wantStart: 10, wantEnd: 10},
		{name: "empty", total: 0, pageSize: 4, page: 1, wantStart: 0, wantEnd: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := pageSliceBounds(tt.total, tt.pageSize, tt.page)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestComputeTotalPagesAndAdjust(t *testing.T) {
	pages, page := computeTotalPagesAndAdjust(0, 25, 3)
	assert.Equal(t, 1, pages)
	assert.Equal(t, 1, page)

	pages, page = computeTotalPagesAndAdjust(51, 25, 2)
	assert.Equal(t, 3, pages)
	assert.Equal(t, 2, page)
}
