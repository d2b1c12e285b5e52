package interfaces

import "context"

// -----------------------------------------------------------------------------
// ILogSource interface for streaming raw access-log lines.
// -----------------------------------------------------------------------------

// ILogSource yields log lines lazily: finite, single-pass, not
// restartable. The full file is never materialized.
type ILogSource interface {

	// Stream calls fn for each line in order until the source is
	// exhausted, fn returns false, or ctx is cancelled. Decompression of
	// .gz sources happens here, not in the consumer.
	Stream(ctx context.Context, fn func(line string) bool) error
}
