package dataset

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/aqidash/internal/common"
	"github.com/dmitrijs2005/aqidash/internal/timex"
)

// DateLayout is the wire format of date filter values.
const DateLayout = "2006-01-02"

// Criteria narrows a Table. Bounds are inclusive on both ends; dates are
// compared by calendar day.
type Criteria struct {
	AllStations bool
	Stations    []string
	Start       time.Time
	End         time.Time
	MinAQI      float64
	MaxAQI      float64
}

// Bounds are the observed extremes of a table, used as filter defaults.
// MinAQI is floored and MaxAQI ceiled so the defaults never cut off a row.
type Bounds struct {
	MinDate  time.Time
	MaxDate  time.Time
	HasDates bool
	MinAQI   float64
	MaxAQI   float64
	HasAQI   bool
}

// ComputeBounds scans t for date and AQI extremes.
func ComputeBounds(t *Table) Bounds {
	var b Bounds
	for _, r := range t.Rows {
		if r.HasDate {
			d := timex.StartOfDay(r.Date)
			if !b.HasDates || d.Before(b.MinDate) {
				b.MinDate = d
			}
			if !b.HasDates || d.After(b.MaxDate) {
				b.MaxDate = d
			}
			b.HasDates = true
		}
		if r.HasAQI {
			if !b.HasAQI || r.AQI < b.MinAQI {
				b.MinAQI = r.AQI
			}
			if !b.HasAQI || r.AQI > b.MaxAQI {
				b.MaxAQI = r.AQI
			}
			b.HasAQI = true
		}
	}
	b.MinAQI = math.Floor(b.MinAQI)
	b.MaxAQI = math.Ceil(b.MaxAQI)
	return b
}

// DefaultCriteria selects everything within b.
func DefaultCriteria(b Bounds) Criteria {
	return Criteria{
		AllStations: true,
		Start:       b.MinDate,
		End:         b.MaxDate,
		MinAQI:      b.MinAQI,
		MaxAQI:      b.MaxAQI,
	}
}

// ParseCriteria reads filter values from a query string:
//
//	station  repeated; "Selectall" disables station filtering
//	start    YYYY-MM-DD
//	end      YYYY-MM-DD
//	min_aqi  number
//	max_aqi  number
//	filter   present when the filter form was submitted
//
// Missing or malformed values fall back to b. With no station values the
// result is "all stations" unless the form was submitted, in which case the
// empty selection stands and nothing matches.
func ParseCriteria(values url.Values, b Bounds) Criteria {
	c := DefaultCriteria(b)

	stations := values["station"]
	switch {
	case len(stations) == 0:
		c.AllStations = values.Get("filter") == ""
	default:
		c.AllStations = false
		for _, s := range stations {
			if s == common.SelectAllStations {
				c.AllStations = true
				c.Stations = nil
				break
			}
			c.Stations = append(c.Stations, s)
		}
	}

	if d, ok := parseDay(values.Get("start")); ok {
		c.Start = d
	}
	if d, ok := parseDay(values.Get("end")); ok {
		c.End = d
	}
	if v, ok := parseNumber(values.Get("min_aqi")); ok {
		c.MinAQI = v
	}
	if v, ok := parseNumber(values.Get("max_aqi")); ok {
		c.MaxAQI = v
	}

	return c
}

// Query encodes c back into query values understood by ParseCriteria.
func (c Criteria) Query() url.Values {
	v := url.Values{}
	v.Set("filter", "1")
	if c.AllStations {
		v.Add("station", common.SelectAllStations)
	} else {
		for _, s := range c.Stations {
			v.Add("station", s)
		}
	}
	v.Set("start", c.Start.Format(DateLayout))
	v.Set("end", c.End.Format(DateLayout))
	v.Set("min_aqi", strconv.FormatFloat(c.MinAQI, 'f', -1, 64))
	v.Set("max_aqi", strconv.FormatFloat(c.MaxAQI, 'f', -1, 64))
	return v
}

// Selected reports whether station is part of the selection.
func (c Criteria) Selected(station string) bool {
	if c.AllStations {
		return station == common.SelectAllStations
	}
	for _, s := range c.Stations {
		if s == station {
			return true
		}
	}
	return false
}

// Filter returns the rows of t matching every predicate of c, in source order.
// The result shares Columns with t. An empty result is not an error.
func Filter(t *Table, c Criteria) *Table {
	var stations map[string]struct{}
	if !c.AllStations {
		stations = make(map[string]struct{}, len(c.Stations))
		for _, s := range c.Stations {
			stations[s] = struct{}{}
		}
	}

	start := timex.StartOfDay(c.Start)
	end := timex.StartOfDay(c.End)

	out := &Table{Columns: t.Columns, Rows: make([]Row, 0, len(t.Rows))}
	for _, r := range t.Rows {
		if stations != nil {
			if _, ok := stations[r.StationID]; !ok {
				continue
			}
		}
		if !r.HasDate {
			continue
		}
		d := timex.StartOfDay(r.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		if !r.HasAQI || r.AQI < c.MinAQI || r.AQI > c.MaxAQI {
			continue
		}
		out.Rows = append(out.Rows, r)
	}
	return out
}

func parseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
