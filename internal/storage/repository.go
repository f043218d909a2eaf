package storage

import (
	"context"
	"time"
)

// FrontPage is one accepted download, recorded per run day.
type FrontPage struct {
	RunDate   time.Time
	Newspaper string
	SiteTag   string
	FilePath  string
	CheckSum  string
}

// Repository persists run history. The collector works fine without
// one; recording is best-effort.
type Repository interface {
	// UpsertFrontPage saves or refreshes a download record, returns
	// (isNew, isUpdated, error).
	UpsertFrontPage(ctx context.Context, page *FrontPage) (isNew bool, isUpdated bool, err error)

	// CountForDate returns how many front pages were recorded for a
	// run day.
	CountForDate(ctx context.Context, date time.Time) (int, error)

	Close() error
}
