package main

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelview/config"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(context.Background(), append([]string{"reelview"}, args...))
	return out.String(), err
}

func TestConfigInitRefusesToOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reelview.json")

	out, err := runApp(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, err = runApp(t, "config", "init", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	_, err = runApp(t, "config", "init", "--config", path, "--force")
	require.NoError(t, err)
}

func TestConfigShowRedactsAPIKey(t *testing.T) {
	t.Setenv("REELVIEW_TMDB_API_KEY", "super-secret")
	path := filepath.Join(t.TempDir(), "missing.json")

	out, err := runApp(t, "config", "show", "--config", path)
	require.NoError(t, err)
	assert.NotContains(t, out, "super-secret")
	assert.Contains(t, out, `"apiKey": "********"`)
	assert.Contains(t, out, `"port": 3000`)
}

func TestNewHandlerServesHealthAndAssets(t *testing.T) {
	handler, err := newHandler(config.DefaultSettings())
	require.NoError(t, err)

	for _, target := range []string{"/health", "/static/style.css", "/404"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		want := http.StatusOK
		if target == "/404" {
			want = http.StatusNotFound
		}
		assert.Equal(t, want, rec.Code, target)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/movie/not-a-number", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestNewHandlerLogsEveryRequest(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	settings := config.DefaultSettings()
	settings.CORS.AllowedOrigins = []string{"https://films.example"}
	handler, err := newHandler(settings)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no/such/page", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req := httptest.NewRequest(http.MethodOptions, "/search", nil)
	req.Header.Set("Origin", "https://films.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://films.example", rec.Header().Get("Access-Control-Allow-Origin"))

	assert.Contains(t, buf.String(), "[http] GET /no/such/page status=404")
	assert.Contains(t, buf.String(), "[http] OPTIONS /search status=204")
}
