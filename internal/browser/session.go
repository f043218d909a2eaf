package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"frontpages-collector/internal/config"
	"frontpages-collector/internal/observability"
)

// Session is the single headless-browser page reused across all targets
// and both site adapters. It implements scraper.PageSession.
type Session struct {
	browser *rod.Browser
	page    *rod.Page
	launch  *launcher.Launcher

	pageTimeout     time.Duration
	waitLoadTimeout time.Duration
	logger          *observability.Logger
}

// NewSession launches a headless browser. The configured chrome path is
// tried first, then a system-installed browser, and as a last resort
// rod downloads a managed chromium.
func NewSession(cfg *config.Config, logger *observability.Logger) (*Session, error) {
	l := launcher.New().Headless(true)

	if cfg.Rod.ChromePath != "" {
		l = l.Bin(cfg.Rod.ChromePath)
	} else if bin, ok := launcher.LookPath(); ok {
		l = l.Bin(bin)
	} else {
		logger.Warn("No system browser found, using managed chromium")
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &Session{
		browser:         b,
		page:            page,
		launch:          l,
		pageTimeout:     cfg.GetRodPageTimeout(),
		waitLoadTimeout: cfg.GetRodWaitLoadTimeout(),
		logger:          logger,
	}, nil
}

// Navigate loads the URL on the shared page and returns the rendered
// HTML once the load event fired.
func (s *Session) Navigate(ctx context.Context, url string) (string, error) {
	page := s.page.Context(ctx).Timeout(s.pageTimeout)

	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := page.Timeout(s.waitLoadTimeout).WaitLoad(); err != nil {
		return "", fmt.Errorf("wait load %s: %w", url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("read html %s: %w", url, err)
	}
	return html, nil
}

// HTML re-reads the rendered HTML of the current page.
func (s *Session) HTML(ctx context.Context) (string, error) {
	html, err := s.page.Context(ctx).Timeout(s.pageTimeout).HTML()
	if err != nil {
		return "", fmt.Errorf("read html: %w", err)
	}
	return html, nil
}

// DismissOverlays is the hook for cookie banners and popups. Neither
// site currently shows one that blocks the DOM, so there is nothing to
// close; the hook stays so a banner selector is a one-line change.
func (s *Session) DismissOverlays(ctx context.Context) error {
	return nil
}

func (s *Session) Close() {
	if err := s.browser.Close(); err != nil {
		s.logger.Warn("Failed to close browser", "error", err.Error())
	}
	s.launch.Cleanup()
}
