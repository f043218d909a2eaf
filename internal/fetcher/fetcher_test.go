package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"frontpages-collector/internal/config"
	"frontpages-collector/internal/observability"
)

func testConfig() *config.Config {
	return &config.Config{
		HTTP: config.HttpConfig{
			UserAgent:         "frontpages-collector-test",
			DownloadTimeoutMS: 5000,
		},
		RateLimit:           config.RateLimitConfig{MinDelayMS: 0},
		RobotsCacheTTLHours: 1,
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`ta nea/"fp".jpg`, "taneafp.jpg"},
		{"καθημερινη_fp.jpg", "καθημερινη_fp.jpg"},
		{"a b\\c:d.jpg", "abcd.jpg"},
		{"plain-name_1.jpg", "plain-name_1.jpg"},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.input); got != tt.expected {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestDownload(t *testing.T) {
	payload := []byte("jpeg-bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	dir := t.TempDir()
	f := NewFetcher(testConfig(), observability.NewLogger("", "error"), dir)

	path, err := f.Download(context.Background(), server.URL+"/img/paper.jpg", `paper "fp".jpg`)
	if err != nil {
		t.Fatalf("Download error: %v", err)
	}
	if filepath.Base(path) != "paperfp.jpg" {
		t.Errorf("Download path = %q, want sanitized filename", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Reading downloaded file: %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("Downloaded content = %q, want %q", data, payload)
	}
}

func TestDownloadNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	dir := t.TempDir()
	f := NewFetcher(testConfig(), observability.NewLogger("", "error"), dir)

	if _, err := f.Download(context.Background(), server.URL+"/missing.jpg", "missing.jpg"); err == nil {
		t.Errorf("Download should fail on 404")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("No file should be written on failure, found %d", len(entries))
	}
}

func TestIsDisallowedByRobots(t *testing.T) {
	robots := `
# front matter
User-agent: *
Disallow: /private
Disallow: /tmp/

User-agent: somebot
Disallow: /
`

	tests := []struct {
		url      string
		expected bool
	}{
		{"https://example.com/private/page.jpg", true},
		{"https://example.com/tmp/x", true},
		{"https://example.com/public/page.jpg", false},
		{"https://example.com/", false},
	}

	for _, tt := range tests {
		if got := isDisallowedByRobots(robots, tt.url); got != tt.expected {
			t.Errorf("isDisallowedByRobots(%q) = %v, want %v", tt.url, got, tt.expected)
		}
	}
}

func TestRateLimiterDelaysSameHost(t *testing.T) {
	rl := NewRateLimiter(50 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := rl.Wait(ctx, "example.com"); err != nil {
			t.Fatalf("Wait error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 100*time.Millisecond {
		t.Errorf("3 requests finished in %v, want >= 100ms of spacing", elapsed)
	}
}
