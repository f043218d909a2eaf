package scraper

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"frontpages-collector/internal/normalize"
	"frontpages-collector/internal/observability"
)

const zouglaTag = "zg"

var zouglaDateRe = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)

// Tokens that mark a thumbnail or otherwise reduced variant of a
// front-page image on zougla detail pages.
var lowResMarkers = []string{"300", "thumb", "small"}

// ZouglaAdapter searches the zougla.gr newspapers index. Resolving the
// high-res image takes a hop to the paper's detail page.
type ZouglaAdapter struct {
	indexURL string
	session  PageSession
	dl       Downloader
	dates    *DateChecker
	logger   *observability.Logger
}

func NewZouglaAdapter(indexURL string, session PageSession, dl Downloader, dates *DateChecker, logger *observability.Logger) *ZouglaAdapter {
	return &ZouglaAdapter{
		indexURL: indexURL,
		session:  session,
		dl:       dl,
		dates:    dates,
		logger:   logger,
	}
}

func (a *ZouglaAdapter) Tag() string {
	return zouglaTag
}

func (a *ZouglaAdapter) Search(ctx context.Context, target string) (string, error) {
	if _, err := a.session.Navigate(ctx, a.indexURL); err != nil {
		return "", fmt.Errorf("zougla index: %w", err)
	}
	if err := a.session.DismissOverlays(ctx); err != nil {
		a.logger.Warn("Overlay dismissal failed, reading DOM anyway", "error", err.Error())
	}

	// Re-read after the dismissal hook so a closed banner is gone
	// from the DOM being parsed.
	html, err := a.session.HTML(ctx)
	if err != nil {
		return "", fmt.Errorf("zougla index: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("zougla index parse: %w", err)
	}

	listing, found := a.findListing(doc, target)
	if !found {
		return "", nil
	}
	a.logger.Debug("Index entry matched on zougla",
		"label", listing.Label,
		"date_text", listing.DateRaw,
	)

	if !a.dates.IsToday(listing.DateRaw) {
		a.logger.Info("Stale front page on zougla, skipping site",
			"target", target,
			"date_text", listing.DateRaw,
		)
		return "", nil
	}

	if listing.LinkRef == "" {
		return "", nil
	}

	detailURL, err := resolveURL(a.indexURL, listing.LinkRef)
	if err != nil {
		return "", fmt.Errorf("zougla detail url: %w", err)
	}

	detailHTML, err := a.session.Navigate(ctx, detailURL)
	if err != nil {
		return "", fmt.Errorf("zougla detail page: %w", err)
	}
	detailDoc, err := goquery.NewDocumentFromReader(strings.NewReader(detailHTML))
	if err != nil {
		return "", fmt.Errorf("zougla detail parse: %w", err)
	}

	src := a.resolveHighRes(detailDoc, target)
	if src == "" {
		a.logger.Warn("No high-res image on zougla detail page", "target", target)
		return "", nil
	}

	resolved, err := resolveURL(detailURL, src)
	if err != nil {
		return "", fmt.Errorf("zougla image url: %w", err)
	}

	return a.dl.Download(ctx, resolved, fmt.Sprintf("%s_%s.jpg", target, zouglaTag))
}

func (a *ZouglaAdapter) findListing(doc *goquery.Document, target string) (Listing, bool) {
	var listing Listing
	found := false

	doc.Find(".newspaper-block").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		info := sel.Find(".newspaper-info")
		strongEl := info.Find("strong").First()
		if strongEl.Length() == 0 {
			return true
		}
		if normalize.Text(strongEl.Text()) != target {
			return true
		}

		listing.Label = strings.TrimSpace(strongEl.Text())
		listing.DateRaw = zouglaDateRe.FindString(info.Text())
		listing.LinkRef, _ = sel.Find(".front-img a").First().Attr("href")
		listing.LinkRef = strings.TrimSpace(listing.LinkRef)
		found = true
		return false
	})

	return listing, found
}

// resolveHighRes tries the designated cover container first, then scans
// every image on the detail page for one whose filename base normalizes
// equal to the target and that carries no low-res marker. The scan is a
// heuristic: a filename that happens to normalize to the paper's name
// wins even if unrelated.
func (a *ZouglaAdapter) resolveHighRes(doc *goquery.Document, target string) string {
	if src, ok := doc.Find(".newspaper-cover img").First().Attr("src"); ok && strings.TrimSpace(src) != "" {
		return strings.TrimSpace(src)
	}

	var fallback string
	doc.Find("img").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src, ok := sel.Attr("src")
		src = strings.TrimSpace(src)
		if !ok || src == "" {
			return true
		}
		if normalize.Text(imageBaseName(src)) != target {
			return true
		}
		for _, marker := range lowResMarkers {
			if strings.Contains(src, marker) {
				return true
			}
		}
		fallback = src
		return false
	})
	return fallback
}

// imageBaseName strips directories, query string and extension from an
// image reference.
func imageBaseName(src string) string {
	base := path.Base(src)
	if i := strings.Index(base, "?"); i > -1 {
		base = base[:i]
	}
	if i := strings.LastIndex(base, "."); i > -1 {
		base = base[:i]
	}
	return base
}
