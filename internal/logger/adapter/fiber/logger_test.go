package fiber_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poststats/poststats/internal/logger"
	adapter "github.com/poststats/poststats/internal/logger/adapter/fiber"
)

type accessLine struct {
	IP     string `json:"IP"`
	Status int    `json:"status"`
	URI    string `json:"URI"`
	Route  string `json:"route"`
	Method string `json:"method"`
	Host   string `json:"host"`
}

func consoleConfig() adapter.Config {
	return adapter.Config{
		Config: logger.Log{
			EnableAccessLogToConsole: true,
			Console:                  logger.Console{Enabled: true},
		},
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		config     adapter.Config
		targetPath string
		want       *accessLine
	}{
		{
			name:       "nothing enabled",
			targetPath: "/articles",
		},
		{
			name:       "article list",
			config:     consoleConfig(),
			targetPath: "/articles",
			want:       &accessLine{Status: 200, URI: "/articles", Route: "/articles", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "article with query",
			config:     consoleConfig(),
			targetPath: "/articles/hello?preview=1",
			want:       &accessLine{Status: 200, URI: "/articles/hello?preview=1", Route: "/articles/:slug", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "double slash is logged unchanged",
			config:     consoleConfig(),
			targetPath: "//articles",
			want:       &accessLine{Status: 404, URI: "//articles", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name: "checkalive suppressed",
			config: adapter.Config{
				Config: logger.Log{
					EnableAccessLogToConsole: true,
					DisableCheckAlive:        true,
					Console:                  logger.Console{Enabled: true},
				},
				CheckAliveURI: "/checkalive",
			},
			targetPath: "/checkalive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := runRequest(t, tt.targetPath, tt.config)

			if tt.want == nil {
				assert.Empty(t, output)
				return
			}

			require.NotEmpty(t, output)

			var got accessLine
			require.NoError(t, json.Unmarshal([]byte(output), &got))

			assert.Equal(t, tt.want.Status, got.Status)
			assert.Equal(t, tt.want.URI, got.URI)
			assert.Equal(t, tt.want.Method, got.Method)
			assert.Equal(t, tt.want.Host, got.Host)
			assert.Equal(t, "0.0.0.0", got.IP)

			if tt.want.Route != "" {
				assert.Equal(t, tt.want.Route, got.Route)
			}
		})
	}
}

func TestNew_AccessFile(t *testing.T) {
	dir := t.TempDir()

	app := newApp(adapter.Config{
		Config: logger.Log{
			File: logger.LogFile{Enabled: true, Path: dir, AccessLog: "access.log"},
		},
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/articles", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get("X-Performance"))

	data, err := os.ReadFile(filepath.Join(dir, "access.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"URI":"/articles"`)
}

func newApp(cfg adapter.Config) *fiber.App {
	app := fiber.New(fiber.Config{CaseSensitive: true, Immutable: true})
	app.Use(adapter.New(cfg))

	ok := func(ctx *fiber.Ctx) error { return ctx.SendString("ok") }
	app.Get("/articles", ok)
	app.Get("/articles/:slug", ok)
	app.Get("/checkalive", ok)

	return app
}

// runRequest performs a request and returns what the middleware wrote to stdout.
func runRequest(t *testing.T, targetPath string, cfg adapter.Config) string {
	t.Helper()

	stdout := os.Stdout

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w

	app := newApp(cfg)

	_, err = app.Test(httptest.NewRequest(fiber.MethodGet, targetPath, nil), 100000)

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	_ = w.Close()
	os.Stdout = stdout

	require.NoError(t, err)

	return <-outC
}
