package models

import "time"

// MLogFile describes a discovered access-log file candidate.
type MLogFile struct {
	Path string
	Date time.Time
	Ext  string // ".gz" or "" for plain text
}
