// Package fetch retrieves a CASE package from an http(s) URL or a local
// file. This is the conversion core's only external collaborator with a
// fatal failure path; everything downstream degrades gracefully instead.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/vk/casebridge/internal/ctxlog"
)

// requestTimeout bounds a single package download.
const requestTimeout = 60 * time.Second

// userAgent matches what registries expect from browser-adjacent clients;
// some CASE servers reject requests without one.
const userAgent = "Mozilla/5.0"

// Package retrieves the raw bytes of a CASE package. Sources starting with
// http:// or https:// are fetched over the network; anything else is read
// as a local file path.
func Package(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return fromURL(ctx, source)
	}
	return fromFile(ctx, source)
}

func fromURL(ctx context.Context, rawURL string) ([]byte, error) {
	logger := ctxlog.FromContext(ctx)

	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("source must be an http(s) URL or a file path: %q", rawURL)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	logger.Debug("Fetching CASE package.", "url", rawURL)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch CASE package: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status fetching CASE package: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read CASE package body: %w", err)
	}
	logger.Debug("CASE package fetched.", "bytes", len(data))
	return data, nil
}

func fromFile(ctx context.Context, path string) ([]byte, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Reading CASE package from file.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read CASE package file: %w", err)
	}
	return data, nil
}
