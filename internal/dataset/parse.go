package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/aqidash/internal/common"
	"github.com/xuri/excelize/v2"
)

// Serial day numbers outside this window (1950-01-01 to 2099-12-31) are
// not treated as dates, so bare years and yyyymmdd integers are rejected.
const (
	minDateSerial = 18264
	maxDateSerial = 73050
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/06",
	"1/2/06 15:04",
	"01-02-06",
	"2006/01/02",
}

// parseRecords turns a header line plus records into a Table.
func parseRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrMissingColumn, ColumnStationID)
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	idx := make(map[string]int, 3)
	for _, name := range []string{ColumnStationID, ColumnDate, ColumnAQI} {
		i := indexOf(header, name)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", common.ErrMissingColumn, name)
		}
		idx[name] = i
	}

	t := &Table{Columns: header, Rows: make([]Row, 0, len(records)-1)}
	for _, rec := range records[1:] {
		if blank(rec) {
			continue
		}

		values := make([]string, len(header))
		copy(values, rec)

		r := Row{StationID: strings.TrimSpace(values[idx[ColumnStationID]])}
		r.Date, r.HasDate = parseDate(values[idx[ColumnDate]])
		r.AQI, r.HasAQI = parseAQI(values[idx[ColumnAQI]])
		if r.HasDate {
			values[idx[ColumnDate]] = formatDate(r.Date)
		}
		r.Values = values

		t.Rows = append(t.Rows, r)
	}

	return t, nil
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return wallClock(d), true
		}
	}

	// spreadsheet serial day number
	if v, err := strconv.ParseFloat(s, 64); err == nil && v >= minDateSerial && v < maxDateSerial+1 {
		d, err := excelize.ExcelDateToTime(v, false)
		if err != nil {
			return time.Time{}, false
		}
		return wallClock(d), true
	}

	return time.Time{}, false
}

// wallClock keeps the date and time as written in the source, dropping the offset.
func wallClock(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), d.Hour(), d.Minute(), d.Second(), 0, time.UTC)
}

func parseAQI(s string) (float64, bool) {
	v, ok := parseNumber(s)
	return v, ok
}

func formatDate(d time.Time) string {
	if d.Hour() == 0 && d.Minute() == 0 && d.Second() == 0 {
		return d.Format(DateLayout)
	}
	return d.Format("2006-01-02 15:04:05")
}

// FormatAQI renders an AQI bound without a trailing ".0".
func FormatAQI(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func indexOf(items []string, s string) int {
	for i, item := range items {
		if item == s {
			return i
		}
	}
	return -1
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
