package sqlite

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
)

// timeLayout is the layout of every stored timestamp.
const timeLayout = time.RFC3339

// parseTime parses a stored timestamp, naming column on failure.
func parseTime(column, value string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad %s %q: %w", column, value, err)
	}
	return t, nil
}

// limitClause returns the LIMIT/OFFSET suffix for a listing query and its
// arguments. Zero values mean no limit and no offset.
func limitClause(limit, offset int) (string, []any) {
	switch {
	case limit > 0 && offset > 0:
		return " LIMIT ? OFFSET ?", []any{limit, offset}
	case limit > 0:
		return " LIMIT ?", []any{limit}
	case offset > 0:
		// OFFSET is only valid after LIMIT.
		return " LIMIT -1 OFFSET ?", []any{offset}
	}
	return "", nil
}

// hashContent fingerprints a page body for change detection.
func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// now returns the current time at the stored precision.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
