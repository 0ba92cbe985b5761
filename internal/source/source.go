// Package source abstracts where the catalog export comes from: the
// published sheet URL in production, a local file in development.
package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"plycat/internal/config"
	"plycat/internal/fetch"
	"plycat/pkg/catalog"
)

// Source yields raw catalog export data.
type Source interface {
	// Load returns the current export bytes.
	Load(ctx context.Context) ([]byte, error)
	// Format hints the export format; FormatAuto means sniff.
	Format() catalog.Format
	// Describe names the source for logs and errors.
	Describe() string
}

// FromConfig builds a Source from the configuration. A URL takes precedence
// over a local path.
func FromConfig(cfg config.Config, log *zap.Logger) (Source, error) {
	format, err := parseFormat(cfg.Source.Format)
	if err != nil {
		return nil, err
	}

	if cfg.Source.URL != "" {
		timeout, err := cfg.FetchTimeout()
		if err != nil {
			return nil, err
		}
		return &URLSource{
			url:     cfg.Source.URL,
			format:  format,
			fetcher: fetch.New(timeout, log),
		}, nil
	}
	if cfg.Source.Path != "" {
		return &FileSource{path: cfg.Source.Path, format: format, log: log}, nil
	}
	return nil, fmt.Errorf("source: no url or path configured")
}

func parseFormat(s string) (catalog.Format, error) {
	switch s {
	case "", "auto":
		return catalog.FormatAuto, nil
	case "csv":
		return catalog.FormatCSV, nil
	case "xlsx":
		return catalog.FormatXLSX, nil
	}
	return "", fmt.Errorf("source: unknown format %q", s)
}

// URLSource fetches the export from a published sheet URL.
type URLSource struct {
	url     string
	format  catalog.Format
	fetcher *fetch.Fetcher
}

func (s *URLSource) Load(ctx context.Context) ([]byte, error) {
	return s.fetcher.Fetch(ctx, s.url)
}

func (s *URLSource) Format() catalog.Format { return s.format }

func (s *URLSource) Describe() string { return s.url }

// FileSource reads the export from a local file.
type FileSource struct {
	path   string
	format catalog.Format
	log    *zap.Logger
}

// NewFileSource creates a FileSource for path. An auto format falls back to
// the file extension when sniffing is ambiguous.
func NewFileSource(path string, format catalog.Format, log *zap.Logger) *FileSource {
	return &FileSource{path: path, format: format, log: log}
}

func (s *FileSource) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return data, nil
}

func (s *FileSource) Format() catalog.Format {
	if s.format == catalog.FormatAuto {
		if strings.EqualFold(filepath.Ext(s.path), ".xlsx") {
			return catalog.FormatXLSX
		}
	}
	return s.format
}

func (s *FileSource) Describe() string { return s.path }
