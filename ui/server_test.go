package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SatelliteDish/Novel/compile"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.novel"), []byte("6 * 7"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.novel"), []byte("1 + @"), 0o644))

	ws := compile.NewWorkspace(dir, 1)
	require.NoError(t, ws.ScanAll(context.Background()))

	s, err := NewServer(ws)
	require.NoError(t, err)
	return s, dir
}

func TestEvalJSON(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest("POST", "/eval", strings.NewReader(`{"source": "2 * 3"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Value struct {
			Kind  string  `json:"kind"`
			Value float64 `json:"value"`
		} `json:"value"`
		Diagnostics []any `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Number", body.Value.Kind)
	assert.Equal(t, 6.0, body.Value.Value)
	assert.Empty(t, body.Diagnostics)
}

func TestEvalJSONWithCharset(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest("POST", "/eval", strings.NewReader(`{"source": "10 / 4"}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Value struct {
			Value float64 `json:"value"`
		} `json:"value"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2.5, body.Value.Value)
}

func TestEvalJSONRejectsGarbage(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest("POST", "/eval", strings.NewReader(`{"source":`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEvalForm(t *testing.T) {
	s, _ := newTestServer(t)

	form := url.Values{"source": {"1 + 2 @"}, "force": {"1"}}
	req := httptest.NewRequest("POST", "/eval", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "value\tNumber(3)")
	assert.Contains(t, body, "playground:1:6: Missing Token")
}

func TestIndexListsWorkspace(t *testing.T) {
	s, dir := newTestServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, filepath.Join(dir, "a.novel"))
	assert.Contains(t, body, "diagnostics)")

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest("GET", "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnit(t *testing.T) {
	s, dir := newTestServer(t)

	req := httptest.NewRequest("GET", "/u"+filepath.Join(dir, "a.novel"), nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind": "Multiplication"`)

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest("GET", "/u/missing.novel", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGrammar(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest("GET", "/grammar", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Expression")
}
