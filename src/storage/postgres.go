package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"log-analyzer/src/logger"
	"log-analyzer/src/models"
	"log-analyzer/src/report"

	_ "github.com/lib/pq"
)

// -----------------------------------------------------------------------------

type PostgresDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Schema string
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPostgresDB(cfg *models.MConfig, log *logger.Logger) (*PostgresDB, error) {
	// Schema named after the executable keeps multiple deployments apart
	// in a shared database.
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable name: %w", err)
	}
	name := filepath.Base(exe)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	return &PostgresDB{
		Config: cfg,
		Schema: name,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Initialize() error {
	dsn := d.Config.Storage.DBConnectionString
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	if _, err := d.DB.Exec(fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS "%s"`, d.Schema)); err != nil {
		return fmt.Errorf("failed to create schema %s: %w", d.Schema, err)
	}

	if err := d.createTables(); err != nil {
		return err
	}

	d.Logger.Info("PostgresDB initialized successfully (Schema: %s)", d.Schema)
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) createTables() error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS "%s"."report_rows" (
			log_date TEXT,
			url TEXT,
			count INTEGER,
			count_perc DOUBLE PRECISION,
			time_sum DOUBLE PRECISION,
			time_perc DOUBLE PRECISION,
			time_avg DOUBLE PRECISION,
			time_max DOUBLE PRECISION,
			time_med DOUBLE PRECISION,
			PRIMARY KEY (log_date, url)
		);
	`, d.Schema)
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create report_rows: %w", err)
	}

	query = fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS "%s"."run_summaries" (
			log_date TEXT PRIMARY KEY,
			total_lines BIGINT,
			parsed_lines BIGINT,
			failed_lines BIGINT,
			unique_urls BIGINT,
			total_time DOUBLE PRECISION,
			rows_reported BIGINT,
			elapsed_seconds DOUBLE PRECISION,
			created_at TIMESTAMPTZ DEFAULT NOW()
		);
	`, d.Schema)
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create run_summaries: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) SaveReportRows(logDate string, rows []models.MReportRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`DELETE FROM "%s"."report_rows" WHERE log_date = $1`, d.Schema)
	if _, err := tx.Exec(query, logDate); err != nil {
		return err
	}

	stmt, err := tx.Prepare(fmt.Sprintf(`
		INSERT INTO "%s"."report_rows" (log_date, url, count, count_perc, time_sum, time_perc, time_avg, time_max, time_med)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, d.Schema))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		_, err := stmt.Exec(logDate, r.URL, r.Count, r.CountPerc, r.TimeSum, r.TimePerc, r.TimeAvg, r.TimeMax, r.TimeMed)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) SaveRunSummary(summary models.MRunSummary) error {
	query := fmt.Sprintf(`
		INSERT INTO "%s"."run_summaries" (log_date, total_lines, parsed_lines, failed_lines, unique_urls, total_time, rows_reported, elapsed_seconds, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (log_date) DO UPDATE SET
			total_lines = excluded.total_lines,
			parsed_lines = excluded.parsed_lines,
			failed_lines = excluded.failed_lines,
			unique_urls = excluded.unique_urls,
			total_time = excluded.total_time,
			rows_reported = excluded.rows_reported,
			elapsed_seconds = excluded.elapsed_seconds,
			created_at = excluded.created_at
	`, d.Schema)
	_, err := d.DB.Exec(query,
		summary.LogDate, summary.TotalLines, summary.ParsedLines, summary.FailedLines,
		summary.UniqueURLs, summary.TotalTime, summary.RowsReported, summary.ElapsedSeconds,
		time.Now().UTC())
	return err
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) LatestRunSummary() (*models.MRunSummary, error) {
	query := fmt.Sprintf(`
		SELECT log_date, total_lines, parsed_lines, failed_lines, unique_urls, total_time, rows_reported, elapsed_seconds, created_at
		FROM "%s"."run_summaries"
		ORDER BY log_date DESC
		LIMIT 1
	`, d.Schema)
	row := d.DB.QueryRow(query)

	var s models.MRunSummary
	err := row.Scan(&s.LogDate, &s.TotalLines, &s.ParsedLines, &s.FailedLines,
		&s.UniqueURLs, &s.TotalTime, &s.RowsReported, &s.ElapsedSeconds, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) CleanupOldData() error {
	retentionDays := d.Config.Storage.RetentionDays
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays).Format(report.LogDateFormat)

	query := fmt.Sprintf(`DELETE FROM "%s"."report_rows" WHERE log_date < $1`, d.Schema)
	if _, err := d.DB.Exec(query, cutoff); err != nil {
		d.Logger.Error("Cleanup report_rows error: %v", err)
	}

	query = fmt.Sprintf(`DELETE FROM "%s"."run_summaries" WHERE log_date < $1`, d.Schema)
	if _, err := d.DB.Exec(query, cutoff); err != nil {
		d.Logger.Error("Cleanup run_summaries error: %v", err)
	}

	d.Logger.Info("Cleanup completed")
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
