package ics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	applog "github.com/tempo-sh/tempo/internal/log"
)

const fetchTimeout = 15 * time.Second

// maxPayloadBytes caps a single feed body. Calendar exports are small;
// anything bigger is a misconfigured URL.
const maxPayloadBytes = 10 << 20

// Fetcher downloads feed payloads with conditional requests so unchanged
// feeds cost one cheap 304 round trip.
type Fetcher struct {
	client *http.Client

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	etag         string
	lastModified string
	body         []byte
}

// NewFetcher creates a fetcher with a bounded request timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: fetchTimeout},
		cache:  make(map[string]cacheEntry),
	}
}

// Fetch retrieves one feed URL. On a 304 the previously fetched body is
// returned, so callers always see the full current payload.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) ([]byte, error) {
	if feedURL == "" {
		return nil, errors.New("feed URL is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building feed request: %w", err)
	}

	f.mu.Lock()
	cached, hasCache := f.cache[feedURL]
	f.mu.Unlock()
	if hasCache {
		if cached.etag != "" {
			req.Header.Set("If-None-Match", cached.etag)
		}
		if cached.lastModified != "" {
			req.Header.Set("If-Modified-Since", cached.lastModified)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified && hasCache {
		applog.Debug("feed unchanged", "url", RedactURL(feedURL))
		return cached.body, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching feed: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("reading feed body: %w", err)
	}

	f.mu.Lock()
	f.cache[feedURL] = cacheEntry{
		etag:         resp.Header.Get("ETag"),
		lastModified: resp.Header.Get("Last-Modified"),
		body:         body,
	}
	f.mu.Unlock()

	applog.Info("feed fetched", "url", RedactURL(feedURL), "bytes", len(body))
	return body, nil
}

// RedactURL strips query and userinfo before a URL reaches the log; feed
// URLs routinely embed access tokens.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<unparseable url>"
	}
	u.RawQuery = ""
	u.User = nil
	return u.String()
}
