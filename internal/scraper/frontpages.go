package scraper

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"frontpages-collector/internal/normalize"
	"frontpages-collector/internal/observability"
)

const (
	frontpagesTag = "fp"

	// The index serves a predictable high-res variant next to every
	// 300px preview.
	lowResSuffix  = "300.jpg"
	highResSuffix = "I.jpg"
)

// FrontpagesAdapter searches the frontpages.gr index. The high-res
// image is derived from the preview path by suffix substitution, no
// detail page involved.
type FrontpagesAdapter struct {
	indexURL string
	session  PageSession
	dl       Downloader
	dates    *DateChecker
	logger   *observability.Logger
}

func NewFrontpagesAdapter(indexURL string, session PageSession, dl Downloader, dates *DateChecker, logger *observability.Logger) *FrontpagesAdapter {
	return &FrontpagesAdapter{
		indexURL: indexURL,
		session:  session,
		dl:       dl,
		dates:    dates,
		logger:   logger,
	}
}

func (a *FrontpagesAdapter) Tag() string {
	return frontpagesTag
}

func (a *FrontpagesAdapter) Search(ctx context.Context, target string) (string, error) {
	html, err := a.session.Navigate(ctx, a.indexURL)
	if err != nil {
		return "", fmt.Errorf("frontpages index: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("frontpages index parse: %w", err)
	}

	listing, found := a.findListing(doc, target)
	if !found {
		return "", nil
	}
	a.logger.Debug("Index entry matched on frontpages",
		"label", listing.Label,
		"date_text", listing.DateRaw,
	)

	if !a.dates.IsToday(listing.DateRaw) {
		a.logger.Info("Stale front page on frontpages, skipping site",
			"target", target,
			"date_text", listing.DateRaw,
		)
		return "", nil
	}

	if !strings.HasSuffix(listing.ImageRef, lowResSuffix) {
		a.logger.Warn("Unexpected preview path on frontpages, cannot resolve high-res",
			"target", target,
			"src", listing.ImageRef,
		)
		return "", nil
	}

	resolved, err := resolveURL(a.indexURL, strings.TrimSuffix(listing.ImageRef, lowResSuffix)+highResSuffix)
	if err != nil {
		return "", fmt.Errorf("frontpages image url: %w", err)
	}

	return a.dl.Download(ctx, resolved, fmt.Sprintf("%s_%s.jpg", target, frontpagesTag))
}

// findListing returns the first index entry whose label normalizes
// equal to the target.
func (a *FrontpagesAdapter) findListing(doc *goquery.Document, target string) (Listing, bool) {
	var listing Listing
	found := false

	doc.Find(".thumber").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		nameEl := sel.Find(".paperName a").First()
		if nameEl.Length() == 0 {
			return true
		}
		if normalize.Text(nameEl.Text()) != target {
			return true
		}

		listing.Label = strings.TrimSpace(nameEl.Text())
		listing.DateRaw = strings.TrimSpace(sel.Find(".paperdate").First().Text())
		listing.ImageRef, _ = sel.Find("img").First().Attr("src")
		listing.ImageRef = strings.TrimSpace(listing.ImageRef)
		found = true
		return false
	})

	return listing, found
}
