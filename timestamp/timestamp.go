// Package timestamp parses the dump's header line ("Updated: YYYY-MM-DD
// HH:MM:SS ±ZZZZ", spec.md §4.2/§6) into a timezone-normalized naive UTC
// time.Time.
//
// Grounded on original_source/zicsv/src/reader.rs's parse_update_datetime:
// find the first ':', trim the remainder, parse with chrono's
// "%Y-%m-%d %H:%M:%S %z" layout, then convert to naive UTC via
// DateTime::naive_utc (drop the zone after normalizing).
package timestamp

import (
	"fmt"
	"strings"
	"time"
)

// layout is Go's reference-time spelling of chrono's "%Y-%m-%d %H:%M:%S %z".
const layout = "2006-01-02 15:04:05 -0700"

// Parse parses line as "Updated: <date> <time> <±HHMM>" and returns the
// timestamp normalized to UTC with the zone offset dropped ("naive UTC"),
// per spec.md §3/§4.2. Missing colon, malformed fields, or an unparseable
// datetime each return an error; callers (record.Reader) wrap this with a
// "Line 1" context per spec.md §4.2/§7.
func Parse(line string) (time.Time, error) {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return time.Time{}, fmt.Errorf("no %q (should be in format \"Updated: $DATE_TIME\"): %q", ":", line)
	}

	rest := strings.TrimSpace(line[idx+1:])

	parsed, err := time.Parse(layout, rest)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date and time %q (%q): %w", line, rest, err)
	}

	return parsed.UTC(), nil
}
