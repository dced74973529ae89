package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// ErrInvalidEncoding is returned when the target is not valid UTF-8.
var ErrInvalidEncoding = errors.New("invalid utf-8 content")

// ErrTargetLocked is returned when a locked service is asked to rewrite another file.
var ErrTargetLocked = errors.New("target is locked")

// resolveURL turns a plain relative path into an absolute one; AFS URLs pass through.
func resolveURL(URL string) (string, error) {
	URL = strings.TrimSpace(URL)
	if URL == "" {
		URL = DefaultTarget
	}
	if strings.Contains(URL, "://") {
		return URL, nil
	}
	abs, err := filepath.Abs(URL)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %v: %w", URL, err)
	}
	return abs, nil
}

// load reads the whole target as UTF-8 text. A leading byte order mark and CRLF line endings are kept as is.
func load(ctx context.Context, fs afs.Service, URL string) (string, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return "", fmt.Errorf("failed to read %v: %w", URL, err)
	}
	text, _, err := transform.String(encoding.UTF8Validator, string(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode %v: %w: %v", URL, ErrInvalidEncoding, err)
	}
	return text, nil
}
