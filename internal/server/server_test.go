package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plycat/internal/config"
	"plycat/pkg/catalog/models"
)

const testSheet = `id,category,description,price_18mm,visible
1,Birch,**Premium** grade <B/BB>,42.50,
2,Oak,Line1` + "\n" + `3,Pine,hidden for now,28.00,false
`

func newTestServer(t *testing.T, adminURL string) *Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(testSheet), 0644))

	cfg := config.Default()
	cfg.Source.Path = path
	cfg.Source.Format = "csv"
	cfg.Admin.ScriptURL = adminURL

	s, err := New(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, s.Refresh(context.Background()))
	return s
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestIndexPage(t *testing.T) {
	s := newTestServer(t, "")
	rec := get(t, s.Routes(), "/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<strong>Premium</strong> grade &lt;B/BB&gt;")
	assert.Contains(t, body, "Birch")
	assert.NotContains(t, body, "hidden for now", "hidden rows must not render")
}

func TestProductsAPI(t *testing.T) {
	s := newTestServer(t, "")

	rec := get(t, s.Routes(), "/api/products")
	require.Equal(t, http.StatusOK, rec.Code)
	var visible []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &visible))
	assert.Len(t, visible, 2)

	rec = get(t, s.Routes(), "/api/products/all")
	var all []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 3)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, "")
	rec := get(t, s.Routes(), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestAdminAppend(t *testing.T) {
	var gotAction string
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p map[string]any
		json.NewDecoder(r.Body).Decode(&p)
		gotAction, _ = p["action"].(string)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer remote.Close()

	s := newTestServer(t, remote.URL)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/api/rows",
		strings.NewReader(`{"id":"4","category":"Poplar"}`))
	s.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "append", gotAction)
}

func TestAdminUpdateAndDelete(t *testing.T) {
	var actions []string
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p map[string]any
		json.NewDecoder(r.Body).Decode(&p)
		action, _ := p["action"].(string)
		actions = append(actions, action)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer remote.Close()

	s := newTestServer(t, remote.URL)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/admin/api/rows/2",
		strings.NewReader(`{"category":"Oak","price_18mm":"64.00"}`))
	s.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/admin/api/rows/3", nil)
	s.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, []string{"update", "delete"}, actions)
}

func TestAdminRemoteFailureSurfaces(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","error":"sheet is locked"}`))
	}))
	defer remote.Close()

	s := newTestServer(t, remote.URL)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/admin/api/rows/1", nil)
	s.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "sheet is locked")
}

func TestAdminBadBody(t *testing.T) {
	s := newTestServer(t, "")
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/api/rows", strings.NewReader("{"))
	s.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshKeepsSnapshotOnFailure(t *testing.T) {
	s := newTestServer(t, "")

	// Break the source file, refresh must fail but keep serving old data.
	fs := s.src.Describe()
	require.NoError(t, os.Remove(fs))
	require.Error(t, s.Refresh(context.Background()))

	cat, _ := s.snapshot()
	assert.Len(t, cat.Table.Records, 3)

	rec := get(t, s.Routes(), "/healthz")
	assert.Contains(t, rec.Body.String(), "last_refresh_error")
}
