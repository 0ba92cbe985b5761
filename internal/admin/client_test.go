package admin

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plycat/internal/config"
	"plycat/pkg/catalog/models"
)

type captured struct {
	header http.Header
	body   map[string]any
}

func captureServer(t *testing.T, status int, reply string) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.header = r.Header.Clone()
		data, _ := io.ReadAll(r.Body)
		got.body = map[string]any{}
		json.Unmarshal(data, &got.body)
		w.WriteHeader(status)
		w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func TestDirectPostCarriesTokenInBody(t *testing.T) {
	srv, got := captureServer(t, http.StatusOK, `{"status":"ok"}`)

	c := NewClient(config.AdminConfig{ScriptURL: srv.URL, Token: "sekrit"}, nil)
	err := c.AppendRow(context.Background(), models.Record{"id": "5", "category": "Birch"})
	require.NoError(t, err)

	assert.Equal(t, "append", got.body["action"])
	assert.Equal(t, "sekrit", got.body["token"])
	assert.Empty(t, got.header.Get("X-Catalog-Token"))
}

func TestProxyPostCarriesTokenInHeader(t *testing.T) {
	srv, got := captureServer(t, http.StatusOK, `{"status":"ok"}`)

	c := NewClient(config.AdminConfig{
		ScriptURL: "https://script.example.com/exec",
		ProxyURL:  srv.URL,
		Token:     "sekrit",
	}, nil)
	err := c.UpdateRow(context.Background(), "5", models.Record{"category": "Oak"})
	require.NoError(t, err)

	assert.Equal(t, "update", got.body["action"])
	assert.Equal(t, "5", got.body["id"])
	assert.Equal(t, "sekrit", got.header.Get("X-Catalog-Token"))
	assert.Nil(t, got.body["token"], "token must not ride in the body through the proxy")
}

func TestDirectPostBypassesProxy(t *testing.T) {
	srv, got := captureServer(t, http.StatusOK, `{"status":"ok"}`)

	c := NewClient(config.AdminConfig{
		ScriptURL:  srv.URL,
		ProxyURL:   "http://127.0.0.1:1", // would fail if used
		DirectPost: true,
		Token:      "sekrit",
	}, nil)
	require.NoError(t, c.DeleteRow(context.Background(), "9"))
	assert.Equal(t, "delete", got.body["action"])
	assert.Equal(t, "sekrit", got.body["token"])
}

func TestRemoteRejection(t *testing.T) {
	srv, _ := captureServer(t, http.StatusOK, `{"status":"error","error":"row not found"}`)

	c := NewClient(config.AdminConfig{ScriptURL: srv.URL}, nil)
	err := c.DeleteRow(context.Background(), "404")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row not found")
}

func TestBadStatus(t *testing.T) {
	srv, _ := captureServer(t, http.StatusForbidden, "nope")

	c := NewClient(config.AdminConfig{ScriptURL: srv.URL}, nil)
	err := c.AppendRow(context.Background(), models.Record{"id": "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestNotConfigured(t *testing.T) {
	c := NewClient(config.AdminConfig{}, nil)
	assert.False(t, c.Configured())
	err := c.AppendRow(context.Background(), models.Record{"id": "1"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
