// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package distribution

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ARGOeu-Metrics/argo-probe-igtf/src/logger"
)

var (
	// ErrNoSources indicates an empty source list.
	ErrNoSources = errors.New("distribution: no sources configured")

	// ErrAllSourcesFailed indicates that every candidate in the fallback
	// list failed; the individual failures are joined into the error.
	ErrAllSourcesFailed = errors.New("distribution: all sources failed")

	// ErrStaleFile indicates a local copy older than the configured
	// maximum age.
	ErrStaleFile = errors.New("distribution: local file exceeds maximum age")
)

// VersionPlaceholder is substituted with a release version when
// expanding source templates, so the same flag can address both the
// current and the previous release of the distribution.
const VersionPlaceholder = "%v"

// Fetcher retrieves distribution documents from https URLs or local
// files with sequential first-success fallback across a candidate list.
type Fetcher struct {
	client *http.Client
	log    logger.Logger
}

// NewFetcher creates a Fetcher. All network requests are bound to the
// caller's context; log receives one line per failed candidate.
func NewFetcher(log logger.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{},
		log:    log,
	}
}

// SplitSources splits a comma-separated candidate list, dropping empty
// entries.
func SplitSources(sources string) []string {
	var out []string
	for _, s := range strings.Split(sources, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ExpandSources substitutes the version placeholder in a source
// template. Templates without a placeholder are returned unchanged.
func ExpandSources(template, version string) string {
	return strings.ReplaceAll(template, VersionPlaceholder, version)
}

// Fetch tries each candidate in sources in order and returns the first
// successfully retrieved document. Local files are rejected when maxAge
// is positive and the file is older; maxAge never applies to URLs,
// whose freshness is the remote repository's problem.
func (f *Fetcher) Fetch(ctx context.Context, sources string, maxAge time.Duration) ([]byte, error) {
	candidates := SplitSources(sources)
	if len(candidates) == 0 {
		return nil, ErrNoSources
	}

	var failures []error
	for _, src := range candidates {
		data, err := f.fetchOne(ctx, src, maxAge)
		if err == nil {
			f.log.Printf("fetched %s (%d bytes)", src, len(data))
			return data, nil
		}
		f.log.Printf("source %s failed: %v", src, err)
		failures = append(failures, fmt.Errorf("%s: %w", src, err))

		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("%w: %w", ErrAllSourcesFailed, errors.Join(failures...))
}

func (f *Fetcher) fetchOne(ctx context.Context, src string, maxAge time.Duration) ([]byte, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return f.fetchURL(ctx, src)
	}
	return fetchFile(src, maxAge)
}

func (f *Fetcher) fetchURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("unexpected status %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return io.ReadAll(resp.Body)
}

func fetchFile(path string, maxAge time.Duration) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if maxAge > 0 {
		if age := time.Since(info.ModTime()); age > maxAge {
			return nil, fmt.Errorf("%w: %s is %s old (limit %s)", ErrStaleFile, path, age.Round(time.Minute), maxAge)
		}
	}
	return os.ReadFile(path)
}
