package models

import (
	"strconv"
	"strings"
	"time"
)

// Record is one row of a spreadsheet-backed dataset, keyed by header cell.
// Sheets carry no fixed schema: headers vary by capitalization and synonym,
// so lookups go through ResolveColumn with a per-dataset alias table.
type Record map[string]string

// Column alias tables, canonical name first. Resolution is case-insensitive
// and treats spaces and underscores as equivalent, so "Item Name" and
// "item_name" resolve to the same column.
var (
	ItemNameColumns = []string{"item_name", "name", "item", "product"}
	QuantityColumns = []string{"quantity", "qty", "stock", "count"}
	UnitColumns     = []string{"unit", "units"}
	DateColumns     = []string{"date", "day"}
	PresentColumns  = []string{"present", "present_count"}
	AbsentColumns   = []string{"absent", "absent_count"}
	TotalColumns    = []string{"total", "total_count"}
	RatingColumns   = []string{"rating", "score", "stars"}
	MealTypeColumns = []string{"meal_type", "meal", "type"}
	CommentColumns  = []string{"comments", "comment", "remarks"}
)

func normalizeHeader(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	return strings.ReplaceAll(s, " ", "_")
}

// ResolveColumn returns the actual header used by the dataset for the first
// alias that matches, scanning aliases in order. The empty string means no
// recognizable column exists.
func ResolveColumn(records []Record, aliases []string) (string, bool) {
	for _, rec := range records {
		for _, alias := range aliases {
			for key := range rec {
				if normalizeHeader(key) == alias {
					return key, true
				}
			}
		}
		// Headers are uniform across rows, one row is enough.
		break
	}
	return "", false
}

// Float coerces a cell to a number. Unparseable or missing cells report
// ok=false; callers decide between dropping the row and treating it as zero.
func (r Record) Float(column string) (float64, bool) {
	raw, present := r[column]
	if !present {
		return 0, false
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	time.RFC3339,
}

// Date coerces a cell to a calendar date, trying the layouts sheets commonly
// produce. ok=false for missing or unparseable cells.
func (r Record) Date(column string) (time.Time, bool) {
	raw, present := r[column]
	if !present {
		return time.Time{}, false
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Clone returns a shallow copy so callers can strip helper fields without
// mutating the fetched row.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
