package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"frontpages-collector/internal/app"
	"frontpages-collector/internal/assembler"
	"frontpages-collector/internal/browser"
	"frontpages-collector/internal/config"
	"frontpages-collector/internal/fetcher"
	"frontpages-collector/internal/observability"
	"frontpages-collector/internal/scraper"
	"frontpages-collector/internal/storage"
	"frontpages-collector/internal/storage/mssql"
	"frontpages-collector/internal/targets"
)

func main() {
	configPath := "configs/config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := observability.NewLogger(cfg.Observability.LogPath, cfg.Observability.LogLevel)

	// Everything past config loading exits cleanly: partial failures
	// are reported in the log, not in the exit code.
	reader := targets.NewReader(cfg.Targets.NameColumn, cfg.Targets.MaxNameLen, logger)
	names, err := reader.Read(cfg.Targets.CSVPath)
	if err != nil {
		logger.Error("Failed to read target list", "path", cfg.Targets.CSVPath, "error", err.Error())
		return
	}
	if len(names) == 0 {
		logger.Error("Target list is empty", "path", cfg.Targets.CSVPath)
		return
	}
	logger.Info("Loaded targets", "count", len(names), "file", cfg.Targets.CSVPath)

	runDate := time.Now().Format("2006-01-02")
	outputDir := filepath.Join(cfg.Output.RootDir, runDate)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		logger.Error("Failed to create output directory", "dir", outputDir, "error", err.Error())
		return
	}

	session, err := browser.NewSession(cfg, logger)
	if err != nil {
		logger.Error("Failed to start browser session", "error", err.Error())
		return
	}
	defer session.Close()

	f := fetcher.NewFetcher(cfg, logger, outputDir)
	dates := scraper.NewDateChecker(logger)
	adapters := []scraper.SiteAdapter{
		scraper.NewFrontpagesAdapter(cfg.Sites.FrontpagesURL, session, f, dates, logger),
		scraper.NewZouglaAdapter(cfg.Sites.ZouglaURL, session, f, dates, logger),
	}

	var repo storage.Repository
	if cfg.Storage.Driver != "" {
		r, err := mssql.NewRepository(cfg.Storage.DSN, cfg.Storage.CommandTimeoutMS, logger)
		if err != nil {
			logger.Warn("Run history storage unavailable, continuing without it", "error", err.Error())
		} else {
			repo = r
			defer func() {
				if err := r.Close(); err != nil {
					logger.Warn("Failed to close storage", "error", err.Error())
				}
			}()
		}
	}

	ctx, cancel := app.GracefulShutdown(logger)
	defer cancel()

	orch := app.NewOrchestrator(logger, adapters, repo)
	_, images := orch.Run(ctx, names)

	if repo != nil {
		now := time.Now()
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if count, err := repo.CountForDate(ctx, day); err == nil {
			logger.Info("Front pages recorded for today", "count", count)
		}
	}

	asm := assembler.NewAssembler(logger)
	pdfPath := filepath.Join(outputDir, "Papers_"+runDate+".pdf")
	if _, err := asm.Assemble(images, pdfPath); err != nil {
		logger.Error("Document assembly failed", "error", err.Error())
	}
}
