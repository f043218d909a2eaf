package scraper

import (
	"context"
	"net/url"
	"strings"
)

// PageSession is the single long-lived rendering session threaded
// through every adapter call. Navigate loads the URL and returns the
// rendered HTML of the page.
type PageSession interface {
	Navigate(ctx context.Context, url string) (string, error)
	// HTML re-reads the rendered HTML of the current page, for use
	// after DismissOverlays may have mutated the DOM.
	HTML(ctx context.Context) (string, error)
	// DismissOverlays closes cookie banners or popups on the current
	// page. Implementations may treat it as a no-op.
	DismissOverlays(ctx context.Context) error
}

// Downloader persists a resolved image URL under the run directory and
// returns the written path.
type Downloader interface {
	Download(ctx context.Context, url, filename string) (string, error)
}

// SiteAdapter searches one aggregator site for a newspaper's current
// front page. An empty path with a nil error means the site has no
// acceptable entry for the target; errors are absorbed by the caller
// and treated the same way.
type SiteAdapter interface {
	Tag() string
	Search(ctx context.Context, target string) (string, error)
}

// Listing is one entry discovered on a site index page. It lives only
// for the duration of a single Search call.
type Listing struct {
	Label    string
	DateRaw  string
	ImageRef string
	LinkRef  string
}

func resolveURL(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	r, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", err
	}
	return b.ResolveReference(r).String(), nil
}
