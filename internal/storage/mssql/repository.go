package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/microsoft/go-mssqldb"

	"frontpages-collector/internal/observability"
	"frontpages-collector/internal/storage"
)

type Repository struct {
	db             *sql.DB
	commandTimeout time.Duration
	logger         *observability.Logger
}

func NewRepository(dsn string, commandTimeoutMS int, logger *observability.Logger) (*Repository, error) {
	db, err := sql.Open("sqlserver", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{
		db:             db,
		commandTimeout: time.Duration(commandTimeoutMS) * time.Millisecond,
		logger:         logger,
	}, nil
}

// UpsertFrontPage saves or refreshes a download record, keyed on the
// run day and the newspaper name.
func (r *Repository) UpsertFrontPage(ctx context.Context, page *storage.FrontPage) (isNew bool, isUpdated bool, err error) {
	ctx, cancel := context.WithTimeout(ctx, r.commandTimeout)
	defer cancel()

	query := `
		MERGE INTO TblFrontPages AS target
		USING (SELECT @RunDate AS RunDate, @Newspaper AS Newspaper) AS source
		ON target.[RunDate] = source.RunDate AND target.[Newspaper] = source.Newspaper
		WHEN MATCHED THEN
			UPDATE SET
				[SiteTag] = @SiteTag,
				[FilePath] = @FilePath,
				[CheckSum] = @CheckSum
		WHEN NOT MATCHED THEN
			INSERT ([RunDate], [Newspaper], [SiteTag], [FilePath], [CheckSum])
			VALUES (@RunDate, @Newspaper, @SiteTag, @FilePath, @CheckSum);
	`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return false, false, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			r.logger.Error("Failed to close statement", "error", err.Error())
		}
	}()

	result, err := stmt.ExecContext(ctx,
		sql.Named("RunDate", page.RunDate),
		sql.Named("Newspaper", page.Newspaper),
		sql.Named("SiteTag", page.SiteTag),
		sql.Named("FilePath", page.FilePath),
		sql.Named("CheckSum", page.CheckSum),
	)
	if err != nil {
		return false, false, fmt.Errorf("failed to execute upsert: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected > 0 {
		isNew = true
	} else {
		isUpdated = true
	}

	return isNew, isUpdated, nil
}

// CountForDate returns how many front pages were recorded for a run
// day.
func (r *Repository) CountForDate(ctx context.Context, date time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.commandTimeout)
	defer cancel()

	query := `SELECT COUNT(*) FROM TblFrontPages WHERE RunDate = @RunDate`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			r.logger.Error("Failed to close statement", "error", err.Error())
		}
	}()

	var count int
	err = stmt.QueryRowContext(ctx, sql.Named("RunDate", date)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to query database: %w", err)
	}

	return count, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
