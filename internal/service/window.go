package service

import (
	"sort"

	"messbot/internal/models"
)

// sortByDateDesc orders records newest-first by the parsed date column,
// keeping rows whose date fails to parse at the end. ok=false means not a
// single date parsed; callers then fall back to positional slicing of the
// rows in arrival order, which may or may not be chronological.
func sortByDateDesc(records []models.Record, dateCol string) ([]models.Record, bool) {
	type dated struct {
		rec   models.Record
		ord   int
		valid bool
		when  int64
	}

	rows := make([]dated, len(records))
	anyParsed := false
	for i, rec := range records {
		d := dated{rec: rec, ord: i}
		if t, ok := rec.Date(dateCol); ok {
			d.valid = true
			d.when = t.Unix()
			anyParsed = true
		}
		rows[i] = d
	}

	if !anyParsed {
		return records, false
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].valid != rows[j].valid {
			return rows[i].valid
		}
		return rows[i].when > rows[j].when
	})

	out := make([]models.Record, len(rows))
	for i, d := range rows {
		out[i] = d.rec
	}
	return out, true
}

func head(records []models.Record, n int) []models.Record {
	if n >= len(records) {
		return records
	}
	return records[:n]
}

func tail(records []models.Record, n int) []models.Record {
	if n >= len(records) {
		return records
	}
	return records[len(records)-n:]
}
