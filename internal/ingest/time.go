package ingest

import (
	"fmt"
	"strings"
	"time"
)

// The platform writes microsecond timestamps in its API exports and a
// space-separated form in some older dumps. Unset timestamps come through
// as an all-zero sentinel rather than an empty cell.
const (
	timestampLayout         = "2006-01-02T15:04:05.000000"
	timestampFallbackLayout = "2006-01-02 15:04:05"
	nullTimestamp           = "0000-00-00 00:00:00"
)

func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == nullTimestamp {
		return time.Time{}, fmt.Errorf("empty or null timestamp")
	}
	if ts, err := time.Parse(timestampLayout, raw); err == nil {
		return ts, nil
	}
	ts, err := time.Parse(timestampFallbackLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable timestamp %q: %w", raw, err)
	}
	return ts, nil
}
