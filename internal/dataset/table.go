// Package dataset loads the AQI spreadsheet into a typed in-memory table and
// filters it by station, date range and AQI range.
package dataset

import (
	"time"
)

// Required column names.
const (
	ColumnStationID = "StationId"
	ColumnDate      = "Date"
	ColumnAQI       = "AQI"
)

// Row is one dataset record. Date and AQI are typed copies of their cells;
// HasDate/HasAQI are false when the cell was empty or unparsable, and such
// rows never match a date or AQI range. Values holds every cell for display,
// aligned with Table.Columns.
type Row struct {
	StationID string
	Date      time.Time
	HasDate   bool
	AQI       float64
	HasAQI    bool
	Values    []string
}

// Table is a read-only view of the dataset.
type Table struct {
	Columns []string
	Rows    []Row
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Head returns up to n leading rows.
func (t *Table) Head(n int) []Row {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return t.Rows[:n]
}

// StationIDs returns distinct station ids in first-seen order.
func (t *Table) StationIDs() []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, r := range t.Rows {
		if _, ok := seen[r.StationID]; ok {
			continue
		}
		seen[r.StationID] = struct{}{}
		ids = append(ids, r.StationID)
	}
	return ids
}
