package helpers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"log-analyzer/src/logger"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type LogAnalyzerError struct {
	Message string
	Cause   error
}

func (e *LogAnalyzerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *LogAnalyzerError) Unwrap() error {
	return e.Cause
}

// Distinct error types for taxonomy checks by callers
type ConfigurationError struct{ LogAnalyzerError }
type DataQualityError struct{ LogAnalyzerError }
type SourceError struct{ LogAnalyzerError }
type DatabaseError struct{ LogAnalyzerError }
type ReportError struct{ LogAnalyzerError }

// -----------------------------------------------------------------------------

// NewConfigurationError wraps a parameter validation failure.
func NewConfigurationError(format string, args ...interface{}) error {
	return &ConfigurationError{LogAnalyzerError{Message: fmt.Sprintf(format, args...)}}
}

// NewDataQualityError marks a run whose input was empty or too noisy to
// report on. Fatal for the run: no report is produced.
func NewDataQualityError(format string, args ...interface{}) error {
	return &DataQualityError{LogAnalyzerError{Message: fmt.Sprintf(format, args...)}}
}

// -----------------------------------------------------------------------------

// IsDataQuality reports whether err is a quality-gate failure.
func IsDataQuality(err error) bool {
	var qe *DataQualityError
	return errors.As(err, &qe)
}

// IsConfiguration reports whether err is a parameter validation failure.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// -----------------------------------------------------------------------------
// Retry Logic
// -----------------------------------------------------------------------------

// RetryWithBackoff attempts to execute the operation up to maxRetries times with exponential backoff.
func RetryWithBackoff(operation string, maxRetries int, baseDelay time.Duration, fn func() (interface{}, error)) (interface{}, error) {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		res, err := fn()
		if err == nil {
			return res, nil
		}

		lastErr = err
		if attempt == maxRetries-1 {
			break
		}

		delay := baseDelay * (1 << attempt)
		fmt.Printf("Warning: Attempt %d/%d failed for %s: %v. Retrying in %v\n", attempt+1, maxRetries, operation, err, delay)
		time.Sleep(delay)
	}

	return nil, lastErr
}

// -----------------------------------------------------------------------------
// Error Handler
// -----------------------------------------------------------------------------

type ErrorHandler struct {
	Logger     *logger.Logger
	ErrorCount int
}

func NewErrorHandler(log *logger.Logger) *ErrorHandler {
	return &ErrorHandler{
		Logger:     log.WithName("ErrorHandler"),
		ErrorCount: 0,
	}
}

// -----------------------------------------------------------------------------

func (e *ErrorHandler) ResetErrorCount() {
	e.ErrorCount = 0
}

// -----------------------------------------------------------------------------

// ExecuteWithRetry executes a function, retries on failure, and categorizes errors.
func (e *ErrorHandler) ExecuteWithRetry(operation string, fn func() (interface{}, error), maxRetries int) (interface{}, error) {
	for attempt := 0; attempt < maxRetries; attempt++ {
		res, err := fn()
		if err == nil {
			if e.ErrorCount > 0 {
				e.ErrorCount--
			}
			return res, nil
		}

		if attempt == maxRetries-1 {
			e.ErrorCount++
			e.Logger.Error("%s failed (attempt %d/%d): %v", operation, attempt+1, maxRetries, err)

			lowerOp := strings.ToLower(operation)
			if strings.Contains(lowerOp, "database") || strings.Contains(lowerOp, "save") {
				return nil, &DatabaseError{LogAnalyzerError{Message: fmt.Sprintf("%s failed", operation), Cause: err}}
			} else if strings.Contains(lowerOp, "read") || strings.Contains(lowerOp, "source") {
				return nil, &SourceError{LogAnalyzerError{Message: fmt.Sprintf("%s failed", operation), Cause: err}}
			}
			return nil, &LogAnalyzerError{Message: fmt.Sprintf("%s failed", operation), Cause: err}
		}

		e.Logger.Warning("%s failed (attempt %d/%d): %v", operation, attempt+1, maxRetries, err)
		delay := time.Duration(1<<attempt) * time.Second
		time.Sleep(delay)
	}

	return nil, &LogAnalyzerError{Message: fmt.Sprintf("%s failed after %d attempts", operation, maxRetries)}
}

// -----------------------------------------------------------------------------

func (e *ErrorHandler) Handle(err error, context string) {
	if err != nil {
		e.Logger.Error("Error in %s: %v", context, err)
	}
}
