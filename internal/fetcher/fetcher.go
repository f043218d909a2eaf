package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"frontpages-collector/internal/config"
	"frontpages-collector/internal/observability"
)

// Fetcher downloads resolved image URLs into the run's output
// directory. One attempt per URL; a failed download is final for the
// run.
type Fetcher struct {
	client      *http.Client
	cfg         *config.Config
	logger      *observability.Logger
	robotsCache *RobotsCache
	rateLimiter *RateLimiter
	outputDir   string
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._\p{L}-]`)

func NewFetcher(cfg *config.Config, logger *observability.Logger, outputDir string) *Fetcher {
	client := &http.Client{
		Timeout: cfg.GetDownloadTimeout(),
		Transport: &http.Transport{
			MaxIdleConns:        cfg.HTTP.MaxIdleConnections,
			MaxIdleConnsPerHost: cfg.HTTP.MaxIdleConnectionsPerHost,
			IdleConnTimeout:     cfg.GetIdleConnectionTimeout(),
		},
	}

	return &Fetcher{
		client:      client,
		cfg:         cfg,
		logger:      logger,
		robotsCache: NewRobotsCache(cfg.GetRobotsCacheTTL()),
		rateLimiter: NewRateLimiter(cfg.GetMinDelay()),
		outputDir:   outputDir,
	}
}

// Download retrieves the URL and writes the body under the sanitized
// filename in the output directory, returning the written path.
func (f *Fetcher) Download(ctx context.Context, urlStr, filename string) (string, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	allowed, err := f.robotsCache.IsAllowed(ctx, parsedURL.Host, urlStr, f.client)
	if err != nil {
		return "", fmt.Errorf("robots.txt check failed: %w", err)
	}
	if !allowed {
		return "", fmt.Errorf("URL disallowed by robots.txt: %s", urlStr)
	}

	if err := f.rateLimiter.Wait(ctx, parsedURL.Host); err != nil {
		return "", fmt.Errorf("rate limit error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.cfg.HTTP.UserAgent)
	req.Header.Set("Accept", "image/jpeg,image/*;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			f.logger.Warn("Failed to close response body", "error", err.Error())
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d for %s", resp.StatusCode, urlStr)
	}

	name := SanitizeFilename(filename)
	if name == "" {
		return "", fmt.Errorf("filename %q sanitized to nothing", filename)
	}
	dst := filepath.Join(f.outputDir, name)

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dst, err)
	}

	written, err := io.Copy(out, resp.Body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("failed to write %s: %w", dst, err)
	}

	f.logger.Info("Saved image", "file", name, "bytes", written)
	return dst, nil
}

// SanitizeFilename keeps letters, digits, hyphen, underscore and period
// so the result is safe on every filesystem the tool runs on.
func SanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(strings.TrimSpace(name), "")
}
