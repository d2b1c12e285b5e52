package parser

import (
	"strconv"
	"strings"

	"log-analyzer/src/logger"
	"log-analyzer/src/models"
)

// -----------------------------------------------------------------------------
// Parse Outcome
// -----------------------------------------------------------------------------

// Outcome is the tagged per-line result: either a parsed request record
// or a failure marker. Per-line failures are counted, never fatal.
type Outcome struct {
	Record models.MRequestRecord
	Failed bool
}

// Success wraps a parsed record.
func Success(url string, responseTime float64) Outcome {
	return Outcome{Record: models.MRequestRecord{URL: url, ResponseTime: responseTime}}
}

// Failure marks an unparsable line.
func Failure() Outcome {
	return Outcome{Failed: true}
}

// -----------------------------------------------------------------------------
// Line Parser
// -----------------------------------------------------------------------------

// LineParser extracts the URL and request duration from one line of the
// nginx "ui" access-log format:
//
//	remote_addr remote_user http_x_real_ip [time_local] "request" status
//	body_bytes_sent "referer" "user_agent" "forwarded_for" "request_id"
//	"rb_user" request_time
//
// Only two pieces are used: the URL inside the quoted
// "METHOD URL PROTOCOL" request field, and the trailing request_time.
// The request field is located by its quotes rather than by field index,
// so timestamp layouts with or without an embedded space both parse.
type LineParser struct {
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewLineParser(log *logger.Logger) *LineParser {
	return &LineParser{Logger: log}
}

// -----------------------------------------------------------------------------

// ParseLine parses one raw line. Best effort: any structural mismatch
// yields a failure outcome, never an error or panic.
func (p *LineParser) ParseLine(line string) Outcome {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Failure()
	}

	// Locate the first quoted segment, the HTTP request field.
	start := strings.IndexByte(trimmed, '"')
	if start < 0 {
		return p.reject(trimmed, "no request field")
	}
	offset := strings.IndexByte(trimmed[start+1:], '"')
	if offset < 0 {
		return p.reject(trimmed, "unterminated request field")
	}
	request := trimmed[start+1 : start+1+offset]

	// A well-formed request is exactly METHOD URL PROTOCOL. The "-"
	// placeholder and truncated requests fail this shape check.
	reqFields := strings.Fields(request)
	if len(reqFields) != 3 {
		return p.reject(trimmed, "malformed request field")
	}
	url := reqFields[1]
	if url == "-" {
		return p.reject(trimmed, "no url")
	}

	// The duration is the final whitespace-separated field. When it is
	// missing the last field ends with a quote and fails to parse.
	closingQuote := start + 1 + offset
	lastSpace := strings.LastIndexAny(trimmed, " \t")
	if lastSpace <= closingQuote {
		return p.reject(trimmed, "no duration field")
	}
	duration, err := strconv.ParseFloat(trimmed[lastSpace+1:], 64)
	if err != nil || duration < 0 {
		return p.reject(trimmed, "bad duration")
	}

	return Success(url, duration)
}

// -----------------------------------------------------------------------------

func (p *LineParser) reject(line, reason string) Outcome {
	if p.Logger != nil {
		p.Logger.Debug("Rejected line (%s): %q", reason, line)
	}
	return Failure()
}
