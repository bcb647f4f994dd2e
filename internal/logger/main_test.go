package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poststats/poststats/internal/logger"
)

func TestInit(t *testing.T) {
	testCases := []struct {
		name             string
		cfg              logger.Log
		shouldHaveOutPut bool
		outPutIsJSON     bool
	}{
		{
			name: "no logger enabled",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "test",
				AppName:     "test",
			},
			shouldHaveOutPut: false,
		},
		{
			name: "console writer enabled",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "test",
				AppName:     "test",
				Console:     logger.Console{Enabled: true, UseConsoleWriter: true},
			},
			shouldHaveOutPut: true,
		},
		{
			name: "console json",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "test",
				AppName:     "test",
				Console:     logger.Console{Enabled: true},
			},
			shouldHaveOutPut: true,
			outPutIsJSON:     true,
		},
		{
			name: "console json trace with caller",
			cfg: logger.Log{
				LogLevel:     "trace",
				ServiceName:  "test",
				AppName:      "test",
				ReportCaller: true,
				Console:      logger.Console{Enabled: true},
			},
			shouldHaveOutPut: true,
			outPutIsJSON:     true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := captureOutput(t, tc.cfg)

			if !tc.shouldHaveOutPut {
				assert.Empty(t, out)
				return
			}

			require.NotEmpty(t, out)

			if !tc.outPutIsJSON {
				return
			}

			for _, line := range strings.Split(out, "\n") {
				if line == "" {
					continue
				}

				var entry struct {
					Level   string `json:"level"`
					App     string `json:"app"`
					Message string `json:"message"`
				}

				require.NoError(t, json.Unmarshal([]byte(line), &entry), "expected json output but got: %s", line)
				assert.Equal(t, "test", entry.App)
			}
		})
	}
}

func TestInit_InvalidConfig(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     logger.Log
		wantErr error
	}{
		{
			name:    "missing service name",
			cfg:     logger.Log{LogLevel: "info", AppName: "test"},
			wantErr: logger.ErrServiceNameIsEmpty,
		},
		{
			name:    "missing app name",
			cfg:     logger.Log{LogLevel: "info", ServiceName: "test"},
			wantErr: logger.ErrAppNameIsEmpty,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, logger.Init(tc.cfg), tc.wantErr)
		})
	}

	require.Error(t, logger.Init(logger.Log{LogLevel: "loud", ServiceName: "test", AppName: "test"}))
}

func TestLevelWriter(t *testing.T) {
	var errBuf, infoBuf, traceBuf, warnBuf bytes.Buffer

	lw := &logger.LevelWriter{
		ErrorWriter: &errBuf,
		InfoWriter:  &infoBuf,
		TraceWriter: &traceBuf,
		WarnWriter:  &warnBuf,
	}

	for level, msg := range map[zerolog.Level]string{
		zerolog.TraceLevel: "t",
		zerolog.DebugLevel: "d",
		zerolog.InfoLevel:  "i",
		zerolog.WarnLevel:  "w",
		zerolog.ErrorLevel: "e",
		zerolog.Disabled:   "x",
	} {
		_, err := lw.WriteLevel(level, []byte(msg))
		require.NoError(t, err)
	}

	assert.Equal(t, "t", traceBuf.String())
	assert.ElementsMatch(t, []byte("di"), infoBuf.Bytes())
	assert.Equal(t, "w", warnBuf.String())
	assert.Equal(t, "e", errBuf.String())
}

func TestInit_FileLogger(t *testing.T) {
	dir := t.TempDir()

	err := logger.Init(logger.Log{
		LogLevel:    "info",
		ServiceName: "test",
		AppName:     "test",
		File: logger.LogFile{
			Enabled:  true,
			Path:     dir,
			ErrorLog: "error.log",
			InfoLog:  "info.log",
			TraceLog: "trace.log",
			WarnLog:  "warn.log",
		},
	})
	require.NoError(t, err)

	log.Info().Msg("written to file")

	data, err := os.ReadFile(dir + "/info.log")
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

// captureOutput initialises the logger with cfg and returns what it wrote to stdout and stderr.
func captureOutput(t *testing.T, cfg logger.Log) string {
	t.Helper()

	stdout := os.Stdout
	stderr := os.Stderr

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w
	os.Stderr = w

	err = logger.Init(cfg)
	require.NoError(t, err)

	log.Info().Msg("this info message should be seen...")
	log.Error().Err(errors.New("a test error")).Msg("this err message should be seen...") //nolint:goerr113

	outC := make(chan string)
	// copy the output in a separate goroutine so printing can't block indefinitely
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	_ = w.Close()
	os.Stdout = stdout
	os.Stderr = stderr

	return <-outC
}
