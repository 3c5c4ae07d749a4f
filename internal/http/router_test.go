package http

import (
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tagebuch/internal/handler"
	"tagebuch/internal/model"
	"tagebuch/internal/service/mock"
)

func newTestRouter(t *testing.T, staticDir string) (*mock.MockEntryService, nethttp.Handler) {
	t.Helper()
	ctrl := gomock.NewController(t)
	entries := mock.NewMockEntryService(ctrl)
	e := NewRouter(
		handler.NewEntryHandler(entries, time.UTC),
		handler.NewEditorHandler(mock.NewMockEditorService(ctrl)),
		handler.NewSettingsHandler(mock.NewMockSettingsService(ctrl), mock.NewMockCorrectionService(ctrl)),
		staticDir,
	)
	return entries, e
}

func writeStatic(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>Tagebuch</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))
	return dir
}

func get(h nethttp.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, target, nil))
	return rec
}

func TestRouter_APIRoutes(t *testing.T) {
	entries, h := newTestRouter(t, "")
	entries.EXPECT().List(gomock.Any()).Return([]model.Entry{}, nil)

	rec := get(h, "/api/entries")
	require.Equal(t, nethttp.StatusOK, rec.Code)
	require.JSONEq(t, `{"entries":[]}`, rec.Body.String())

	rec = get(h, "/api/health")
	require.Equal(t, nethttp.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_StaticFiles(t *testing.T) {
	_, h := newTestRouter(t, writeStatic(t))

	rec := get(h, "/")
	require.Equal(t, nethttp.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Tagebuch")
	require.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))

	rec = get(h, "/app.js")
	require.Equal(t, nethttp.StatusOK, rec.Code)
	require.Equal(t, "console.log(1)", rec.Body.String())

	rec = get(h, "/eintrag/123")
	require.Equal(t, nethttp.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Tagebuch")

	rec = get(h, "/api/unknown")
	require.Equal(t, nethttp.StatusNotFound, rec.Code)
}

func TestRouter_MissingStaticDirServesOnlyAPI(t *testing.T) {
	_, h := newTestRouter(t, filepath.Join(t.TempDir(), "nope"))

	rec := get(h, "/")
	require.Equal(t, nethttp.StatusNotFound, rec.Code)
}

func TestRouter_BodyLimit(t *testing.T) {
	_, h := newTestRouter(t, "")

	body := strings.NewReader(`{"title":"` + strings.Repeat("a", 9<<20) + `"}`)
	req := httptest.NewRequest(nethttp.MethodPost, "/api/entries", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, nethttp.StatusRequestEntityTooLarge, rec.Code)
}
