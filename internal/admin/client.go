// Package admin posts catalog edits back to the remote script endpoint
// behind the published sheet.
package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"plycat/internal/config"
	"plycat/pkg/catalog/models"
)

// ErrNotConfigured indicates no write-back endpoint is configured.
var ErrNotConfigured = errors.New("admin: script endpoint not configured")

// Client writes catalog edits to the remote endpoint. Edits go through the
// proxy when one is configured, unless DirectPost forces the script URL.
type Client struct {
	scriptURL string
	proxyURL  string
	direct    bool
	token     string
	http      *http.Client
	log       *zap.Logger
}

// NewClient creates a Client from the admin configuration.
func NewClient(cfg config.AdminConfig, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		scriptURL: cfg.ScriptURL,
		proxyURL:  cfg.ProxyURL,
		direct:    cfg.DirectPost,
		token:     cfg.Token,
		http:      &http.Client{Timeout: 30 * time.Second},
		log:       log,
	}
}

// Configured reports whether edits can be sent anywhere.
func (c *Client) Configured() bool {
	return c.scriptURL != "" || c.proxyURL != ""
}

// AppendRow adds a new row to the sheet.
func (c *Client) AppendRow(ctx context.Context, row models.Record) error {
	return c.post(ctx, payload{Action: "append", Row: row})
}

// UpdateRow replaces the row whose id column matches id.
func (c *Client) UpdateRow(ctx context.Context, id string, row models.Record) error {
	return c.post(ctx, payload{Action: "update", ID: id, Row: row})
}

// DeleteRow removes the row whose id column matches id.
func (c *Client) DeleteRow(ctx context.Context, id string) error {
	return c.post(ctx, payload{Action: "delete", ID: id})
}

type payload struct {
	Action string        `json:"action"`
	ID     string        `json:"id,omitempty"`
	Row    models.Record `json:"row,omitempty"`
	// Token rides in the body only for direct posts.
	Token string `json:"token,omitempty"`
}

type remoteResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// useProxy decides the endpoint: the proxy when configured, unless the
// direct-post bypass is set.
func (c *Client) useProxy() bool {
	return c.proxyURL != "" && !c.direct
}

func (c *Client) post(ctx context.Context, p payload) error {
	url := c.scriptURL
	if c.useProxy() {
		url = c.proxyURL
	}
	if url == "" {
		return ErrNotConfigured
	}
	if !c.useProxy() {
		p.Token = c.token
	}

	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("admin %s: %w", p.Action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("admin %s: %w", p.Action, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.useProxy() && c.token != "" {
		req.Header.Set("X-Catalog-Token", c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("admin %s: %w", p.Action, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("admin %s: read response: %w", p.Action, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("admin %s: unexpected status %s", p.Action, resp.Status)
	}

	// The script endpoint reports rejections in the body with a 200.
	var rr remoteResponse
	if err := json.Unmarshal(data, &rr); err == nil && rr.Status == "error" {
		if rr.Error == "" {
			rr.Error = "remote endpoint rejected the edit"
		}
		return fmt.Errorf("admin %s: %s", p.Action, rr.Error)
	}

	c.log.Info("catalog edit accepted",
		zap.String("action", p.Action),
		zap.String("id", p.ID),
		zap.Bool("proxied", c.useProxy()))
	return nil
}
