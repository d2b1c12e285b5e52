package source

import (
	"os"
	"path/filepath"
	"regexp"
	"time"

	"log-analyzer/src/logger"
	"log-analyzer/src/models"
)

// -----------------------------------------------------------------------------
// Log File Discovery
// -----------------------------------------------------------------------------

// Access-log naming convention: nginx-access-ui.log-YYYYMMDD, optionally
// gzip-compressed.
var logFileNameRegexp = regexp.MustCompile(`^nginx-access-ui\.log-(\d{8})(\.gz)?$`)

const logFileDateFormat = "20060102"

// -----------------------------------------------------------------------------

// FindLatestLogFile scans dir for access-log files matching the naming
// convention and returns the one with the greatest date encoded in its
// name. Returns nil when no candidate exists. Files whose date part
// does not parse are skipped, not fatal.
func FindLatestLogFile(dir string, log *logger.Logger) (*models.MLogFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var latest *models.MLogFile

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		matches := logFileNameRegexp.FindStringSubmatch(entry.Name())
		if matches == nil {
			continue
		}

		date, err := time.Parse(logFileDateFormat, matches[1])
		if err != nil {
			log.Warning("Cannot parse date %q from logfile %s, skipping", matches[1], entry.Name())
			continue
		}

		if latest == nil || date.After(latest.Date) {
			latest = &models.MLogFile{
				Path: filepath.Join(dir, entry.Name()),
				Date: date,
				Ext:  matches[2],
			}
		}
	}

	return latest, nil
}
