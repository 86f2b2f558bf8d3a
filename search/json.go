package search

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/zicsv-go/zicsv/record"
)

// naiveTimestampLayout renders a time.Time with no zone suffix, matching
// spec.md §6's "ISO-8601 naive UTC" for into-json's updated field (the
// value is already UTC by construction; the wire form omits "Z"/offset).
const naiveTimestampLayout = "2006-01-02T15:04:05"

// dumpList is the into-json wire shape of spec.md §6.
type dumpList struct {
	Updated string          `json:"updated"`
	Records []record.Record `json:"records"`
}

// WriteDumpJSON renders updated and records as the into-json list shape
// (spec.md §6) to w, pretty-printed unless disablePretty is set.
func WriteDumpJSON(w io.Writer, updated time.Time, records []record.Record, disablePretty bool) error {
	list := dumpList{
		Updated: updated.Format(naiveTimestampLayout),
		Records: records,
	}

	return writeJSON(w, list, disablePretty)
}

// WriteSearchJSON renders results as the search JSON output shape of
// spec.md §6 to w, pretty-printed unless disablePretty is set.
func WriteSearchJSON(w io.Writer, results []QueryResult, disablePretty bool) error {
	return writeJSON(w, results, disablePretty)
}

func writeJSON(w io.Writer, v any, disablePretty bool) error {
	enc := json.NewEncoder(w)
	if !disablePretty {
		enc.SetIndent("", "  ")
	}

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	return nil
}
