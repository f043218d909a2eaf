package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// RobotsCache keeps per-host robots.txt content for the lifetime of the
// run. Any failure to fetch or parse defaults to allowed, matching the
// run's permissive bias.
type RobotsCache struct {
	cache map[string]*robotsEntry
	ttl   time.Duration
	mu    sync.RWMutex
}

type robotsEntry struct {
	content   string
	expiresAt time.Time
}

func NewRobotsCache(ttl time.Duration) *RobotsCache {
	return &RobotsCache{
		cache: make(map[string]*robotsEntry),
		ttl:   ttl,
	}
}

func (rc *RobotsCache) IsAllowed(ctx context.Context, host, urlStr string, client *http.Client) (bool, error) {
	rc.mu.RLock()
	cached, exists := rc.cache[host]
	rc.mu.RUnlock()

	if exists && time.Now().Before(cached.expiresAt) {
		return !isDisallowedByRobots(cached.content, urlStr), nil
	}

	robotsURL := fmt.Sprintf("https://%s/robots.txt", host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return true, nil
	}

	resp, err := client.Do(req)
	if err != nil {
		// Network error: assume allowed
		return true, nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// No robots.txt: assume allowed
		return true, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return true, nil
	}

	content := string(body)

	rc.mu.Lock()
	rc.cache[host] = &robotsEntry{
		content:   content,
		expiresAt: time.Now().Add(rc.ttl),
	}
	rc.mu.Unlock()

	return !isDisallowedByRobots(content, urlStr), nil
}

// isDisallowedByRobots applies the Disallow prefix rules of the
// wildcard user-agent group. Agent-specific groups are ignored; the
// two target hosts publish only wildcard rules.
func isDisallowedByRobots(robotsContent, urlStr string) bool {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	target := parsed.Path
	if target == "" {
		target = "/"
	}

	applies := false
	for _, line := range strings.Split(robotsContent, "\n") {
		if i := strings.Index(line, "#"); i > -1 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "user-agent":
			applies = value == "*"
		case "disallow":
			if applies && value != "" && strings.HasPrefix(target, value) {
				return true
			}
		}
	}

	return false
}
