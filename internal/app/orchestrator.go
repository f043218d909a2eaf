package app

import (
	"context"
	"time"

	"frontpages-collector/internal/checksum"
	"frontpages-collector/internal/normalize"
	"frontpages-collector/internal/observability"
	"frontpages-collector/internal/scraper"
	"frontpages-collector/internal/storage"
)

// Orchestrator walks the target list in order and tries the site
// adapters in their configured order for each target, first acceptance
// wins. All per-target failures are absorbed here; only the caller's
// input handling can end the run early.
type Orchestrator struct {
	logger    *observability.Logger
	adapters  []scraper.SiteAdapter
	repo      storage.Repository // optional, may be nil
	checksums *checksum.Generator
}

func NewOrchestrator(logger *observability.Logger, adapters []scraper.SiteAdapter, repo storage.Repository) *Orchestrator {
	return &Orchestrator{
		logger:    logger,
		adapters:  adapters,
		repo:      repo,
		checksums: checksum.NewGenerator(),
	}
}

type RunStats struct {
	Targets    int
	Downloaded int
	Skipped    int
}

// Run returns the accumulated image paths in processing order, plus
// run counters. The context is only checked between targets: a
// shutdown lets the current target finish.
func (o *Orchestrator) Run(ctx context.Context, names []string) (*RunStats, []string) {
	stats := &RunStats{Targets: len(names)}
	var images []string

	for _, name := range names {
		select {
		case <-ctx.Done():
			o.logger.Warn("Run cancelled",
				"processed", stats.Downloaded+stats.Skipped,
				"targets", stats.Targets,
			)
			return stats, images
		default:
		}

		target := normalize.Text(name)
		if target == "" {
			o.logger.Warn("Name normalized to nothing, skipping", "name", name)
			stats.Skipped++
			continue
		}

		o.logger.Info("Processing target", "name", name)

		var saved, siteTag string
		for _, adapter := range o.adapters {
			path, err := adapter.Search(ctx, target)
			if err != nil {
				o.logger.Warn("Site search failed",
					"site", adapter.Tag(),
					"name", name,
					"error", err.Error(),
				)
				continue
			}
			if path != "" {
				saved = path
				siteTag = adapter.Tag()
				break
			}
		}

		if saved == "" {
			o.logger.Info("Not found on any site", "name", name)
			stats.Skipped++
			continue
		}

		stats.Downloaded++
		images = append(images, saved)
		o.record(ctx, name, siteTag, saved)
	}

	o.logger.Info("Run completed",
		"targets", stats.Targets,
		"downloaded", stats.Downloaded,
		"skipped", stats.Skipped,
	)
	return stats, images
}

// record logs the download checksum and, when a repository is
// configured, persists the run entry. Failures here never affect the
// run.
func (o *Orchestrator) record(ctx context.Context, name, siteTag, path string) {
	sum, err := o.checksums.SumFile(path)
	if err != nil {
		o.logger.Warn("Checksum failed", "file", path, "error", err.Error())
	} else {
		o.logger.Debug("Downloaded image checksum", "file", path, "sha256", sum)
	}

	if o.repo == nil {
		return
	}

	now := time.Now()
	page := &storage.FrontPage{
		RunDate:   time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Newspaper: name,
		SiteTag:   siteTag,
		FilePath:  path,
		CheckSum:  sum,
	}
	if _, _, err := o.repo.UpsertFrontPage(ctx, page); err != nil {
		o.logger.Warn("Failed to record download", "name", name, "error", err.Error())
	}
}
