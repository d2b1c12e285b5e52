package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log-analyzer/src/analysis"
	"log-analyzer/src/config"
	"log-analyzer/src/helpers"
	"log-analyzer/src/interfaces"
	"log-analyzer/src/logger"
	"log-analyzer/src/models"
	"log-analyzer/src/report"
	"log-analyzer/src/server"
	"log-analyzer/src/source"
	"log-analyzer/src/storage"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "./config/default.yaml", "path to config file")
	flag.Parse()

	// Load config from YAML file
	config, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewFileLogger(config.LogLevel, config.Name, config.LogFile)
	errHandler := helpers.NewErrorHandler(appLogger)

	// 2. Setup Storage
	var db interfaces.IDatabase

	switch config.Storage.DBType {
	case "postgres":
		db, err = storage.NewPostgresDB(config.MConfig, appLogger)
	default:
		// Default to SQLite
		db, err = storage.NewSQLiteDB(config.MConfig, appLogger)
	}

	if err != nil {
		appLogger.Critical("Failed to init db: %v", err)
	}
	if err := db.Initialize(); err != nil {
		appLogger.Critical("Failed to migrate db: %v", err)
	}
	defer db.Close()

	// 3. Setup Components
	renderer := report.NewRenderer(config.MConfig, appLogger)
	analyzer := analysis.NewAnalyzer(config.MConfig, appLogger)
	var srv interfaces.IDataExchanger = server.NewAPIServer(config.MConfig, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 4. Run the analysis pass
	latest, err := runAnalysis(ctx, config, appLogger, errHandler, analyzer, renderer, db)
	if err != nil {
		// Quality-gate and parameter failures abort without a report
		appLogger.Critical("Analysis failed: %v", err)
	}

	// 5. Seed server state: freshly computed report, or the last stored
	// summary when this run was skipped
	if latest != nil {
		srv.UpdateLatestReport(latest)
	} else if summary, err := db.LatestRunSummary(); err == nil && summary != nil {
		srv.UpdateLatestReport(&models.MLatestReport{
			Type:      "INITIAL",
			LogDate:   summary.LogDate,
			Rows:      []models.MReportRow{},
			Summary:   *summary,
			Timestamp: time.Now().Unix(),
		})
	}

	// 6. Start Server
	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Error("Server failed: %v", err)
		}
	}()

	if latest != nil {
		srv.Broadcast(latest)
	}

	// 7. Wait for shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down...")
	cancel()
}

// -----------------------------------------------------------------------------

// runAnalysis locates the newest access log, streams it through the
// aggregation pipeline and emits the report. Returns nil without error
// when there is nothing to do (no log file, or the report already
// exists and rewrite is off).
func runAnalysis(
	ctx context.Context,
	cfg *config.Config,
	appLogger *logger.Logger,
	errHandler *helpers.ErrorHandler,
	analyzer *analysis.Analyzer,
	renderer *report.Renderer,
	db interfaces.IDatabase,
) (*models.MLatestReport, error) {

	appLogger.Info("Looking for latest log file in %s", cfg.Source.LogDir)
	logFile, err := source.FindLatestLogFile(cfg.Source.LogDir, appLogger)
	if err != nil {
		return nil, err
	}
	if logFile == nil {
		appLogger.Info("No log file found, nothing to analyze")
		return nil, nil
	}
	appLogger.Info("Latest log file: %s", logFile.Path)

	reportPath := renderer.ReportPath(logFile.Date)
	if !cfg.Report.Rewrite && renderer.Exists(reportPath) {
		appLogger.Info("Report %s already exists, skipping", reportPath)
		return nil, nil
	}

	// Stream the file through the pipeline
	appLogger.Info("Start calculating")
	started := time.Now()

	src := source.NewLogFileSource(*logFile, appLogger)
	agg, err := analyzer.Run(ctx, src)
	if err != nil {
		return nil, err
	}

	rows, err := analyzer.BuildReport(agg)
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(started).Seconds()
	appLogger.Info("%d rows calculated from %d lines (%d failed) in %.2fs",
		len(rows), agg.TotalCount(), agg.FailedCount(), elapsed)

	logDate := logFile.Date.Format(report.LogDateFormat)
	summary := models.MRunSummary{
		LogDate:        logDate,
		TotalLines:     agg.TotalCount(),
		ParsedLines:    agg.TotalCount() - agg.FailedCount(),
		FailedLines:    agg.FailedCount(),
		UniqueURLs:     agg.URLCount(),
		TotalTime:      agg.TotalTime(),
		RowsReported:   len(rows),
		ElapsedSeconds: elapsed,
		CreatedAt:      time.Now().UTC(),
	}

	// Render the static report
	if err := renderer.Render(reportPath, rows); err != nil {
		return nil, err
	}

	// Persist run history; storage trouble should not lose the report
	if _, err := errHandler.ExecuteWithRetry("database save report rows", func() (interface{}, error) {
		return nil, db.SaveReportRows(logDate, rows)
	}, 3); err != nil {
		appLogger.Error("Report rows not persisted: %v", err)
	}
	if _, err := errHandler.ExecuteWithRetry("database save run summary", func() (interface{}, error) {
		return nil, db.SaveRunSummary(summary)
	}, 3); err != nil {
		appLogger.Error("Run summary not persisted: %v", err)
	}

	if err := db.CleanupOldData(); err != nil {
		appLogger.Error("Cleanup failed: %v", err)
	}

	return &models.MLatestReport{
		Type:      "UPDATE",
		LogDate:   logDate,
		Rows:      rows,
		Summary:   summary,
		Timestamp: time.Now().Unix(),
	}, nil
}
