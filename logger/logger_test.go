package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boomiis-api/config"
)

func TestLevelWriterSplitsByLevel(t *testing.T) {
	var info, errs bytes.Buffer
	lw := &LevelWriter{InfoWriter: &info, ErrorWriter: &errs}

	tests := []struct {
		level   zerolog.Level
		toError bool
	}{
		{zerolog.TraceLevel, false},
		{zerolog.DebugLevel, false},
		{zerolog.InfoLevel, false},
		{zerolog.WarnLevel, true},
		{zerolog.ErrorLevel, true},
		{zerolog.FatalLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			info.Reset()
			errs.Reset()

			_, err := lw.WriteLevel(tt.level, []byte("line"))
			require.NoError(t, err)

			if tt.toError {
				assert.Equal(t, "line", errs.String())
				assert.Empty(t, info.String())
			} else {
				assert.Equal(t, "line", info.String())
				assert.Empty(t, errs.String())
			}
		})
	}

	n, err := lw.WriteLevel(zerolog.Disabled, []byte("line"))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(config.Log{Level: "loud"}, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
}

func TestNewWritesJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer

	l, err := New(config.Log{Level: "info"}, &stdout, &stderr)
	require.NoError(t, err)

	l.Info().Str("test", "yes").Msg("hello")
	l.Error().Msg("boom")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &line))
	assert.Equal(t, "hello", line["message"])
	assert.Equal(t, "yes", line["test"])
	assert.Contains(t, stderr.String(), "boom")
}

func TestNewWritesRollingFiles(t *testing.T) {
	dir := t.TempDir()

	l, err := New(config.Log{Level: "info", FilePath: dir}, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)

	l.Info().Msg("to file")
	assert.FileExists(t, dir+"/"+infoLogFile)
}

func TestGinMiddlewareLogsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var out bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&out)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	t.Cleanup(func() { log.Logger = prev })

	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusTeapot, "pong") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping?x=1", nil))

	require.Equal(t, http.StatusTeapot, w.Code)
	logged := out.String()
	assert.True(t, strings.Contains(logged, `"uri":"/ping?x=1"`), logged)
	assert.Contains(t, logged, `"status":418`)
	assert.Contains(t, logged, `"level":"warn"`)
}
