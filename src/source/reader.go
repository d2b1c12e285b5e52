package source

import (
	"bufio"
	"compress/gzip"
	"context"
	"io"
	"os"

	"log-analyzer/src/logger"
	"log-analyzer/src/models"
)

// -----------------------------------------------------------------------------
// Log File Source
// -----------------------------------------------------------------------------

// LogFileSource streams lines from one discovered access-log file,
// transparently decompressing .gz files. Single-pass: a second Stream
// call reopens the file from the start, consumers should not rely on
// that.
type LogFileSource struct {
	File   models.MLogFile
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewLogFileSource(file models.MLogFile, log *logger.Logger) *LogFileSource {
	return &LogFileSource{File: file, Logger: log}
}

// -----------------------------------------------------------------------------

// Stream yields lines to fn until the file is exhausted, fn returns
// false, or ctx is cancelled. A truncated final line still reaches fn;
// whether it parses is the consumer's concern.
func (s *LogFileSource) Stream(ctx context.Context, fn func(line string) bool) error {
	f, err := os.Open(s.File.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	var reader io.Reader = f
	if s.File.Ext == ".gz" {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return err
		}
		defer gz.Close()
		reader = gz
	}

	scanner := bufio.NewScanner(reader)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !fn(scanner.Text()) {
			s.Logger.Debug("Stream stopped early by consumer")
			return nil
		}
	}

	return scanner.Err()
}
