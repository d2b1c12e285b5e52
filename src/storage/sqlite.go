package storage

import (
	"database/sql"
	"fmt"
	"time"

	"log-analyzer/src/logger"
	"log-analyzer/src/models"
	"log-analyzer/src/report"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

type SQLiteDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewSQLiteDB(cfg *models.MConfig, log *logger.Logger) (*SQLiteDB, error) {
	return &SQLiteDB{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) Initialize() error {
	dsn := d.Config.Storage.DBPath

	// Open DB
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) createTables() error {
	// Report history persists across runs, so tables are created, never
	// dropped. SQLite types: INTEGER for int64, REAL for float64.
	query := `
		CREATE TABLE IF NOT EXISTS report_rows (
			log_date TEXT,
			url TEXT,
			count INTEGER,
			count_perc REAL,
			time_sum REAL,
			time_perc REAL,
			time_avg REAL,
			time_max REAL,
			time_med REAL,
			PRIMARY KEY (log_date, url)
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create report_rows: %w", err)
	}

	query = `
		CREATE TABLE IF NOT EXISTS run_summaries (
			log_date TEXT PRIMARY KEY,
			total_lines INTEGER,
			parsed_lines INTEGER,
			failed_lines INTEGER,
			unique_urls INTEGER,
			total_time REAL,
			rows_reported INTEGER,
			elapsed_seconds REAL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create run_summaries: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) SaveReportRows(logDate string, rows []models.MReportRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Re-running a date replaces its rows
	if _, err := tx.Exec("DELETE FROM report_rows WHERE log_date = ?", logDate); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO report_rows (log_date, url, count, count_perc, time_sum, time_perc, time_avg, time_max, time_med)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
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

func (d *SQLiteDB) SaveRunSummary(summary models.MRunSummary) error {
	query := `
		INSERT INTO run_summaries (log_date, total_lines, parsed_lines, failed_lines, unique_urls, total_time, rows_reported, elapsed_seconds, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (log_date) DO UPDATE SET
			total_lines = excluded.total_lines,
			parsed_lines = excluded.parsed_lines,
			failed_lines = excluded.failed_lines,
			unique_urls = excluded.unique_urls,
			total_time = excluded.total_time,
			rows_reported = excluded.rows_reported,
			elapsed_seconds = excluded.elapsed_seconds,
			created_at = excluded.created_at
	`
	_, err := d.DB.Exec(query,
		summary.LogDate, summary.TotalLines, summary.ParsedLines, summary.FailedLines,
		summary.UniqueURLs, summary.TotalTime, summary.RowsReported, summary.ElapsedSeconds,
		time.Now().UTC())
	return err
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) LatestRunSummary() (*models.MRunSummary, error) {
	row := d.DB.QueryRow(`
		SELECT log_date, total_lines, parsed_lines, failed_lines, unique_urls, total_time, rows_reported, elapsed_seconds, created_at
		FROM run_summaries
		ORDER BY log_date DESC
		LIMIT 1
	`)

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

func (d *SQLiteDB) CleanupOldData() error {
	retentionDays := d.Config.Storage.RetentionDays
	// log_date is YYYY.MM.DD, lexicographic order matches date order
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays).Format(report.LogDateFormat)

	d.Logger.Debug("Cleaning up runs older than %d days (log_date < %s)...", retentionDays, cutoff)

	if _, err := d.DB.Exec("DELETE FROM report_rows WHERE log_date < ?", cutoff); err != nil {
		d.Logger.Error("Cleanup report_rows error: %v", err)
	}
	if _, err := d.DB.Exec("DELETE FROM run_summaries WHERE log_date < ?", cutoff); err != nil {
		d.Logger.Error("Cleanup run_summaries error: %v", err)
	}

	d.Logger.Info("Cleanup completed")
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
