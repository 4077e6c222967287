// Package timerange resolves the dashboard's named time windows and custom
// calendar ranges into the date pair the stats queries are keyed by.
package timerange

import (
	"fmt"
	"time"
)

// Window is a named relative period selectable in the dashboard.
// The set is closed; new tags are added here and nowhere else.
type Window string

const (
	Window1D  Window = "1d"
	Window7D  Window = "7d"
	Window30D Window = "30d"
	Window90D Window = "90d"
)

// DefaultWindow is applied when a stats request carries neither an explicit
// date pair nor a window tag.
const DefaultWindow = Window7D

type windowDef struct {
	label string
	days  int
}

var windows = map[Window]windowDef{
	Window1D:  {label: "последние сутки", days: 1},
	Window7D:  {label: "последние 7 дней", days: 7},
	Window30D: {label: "последние 30 дней", days: 30},
	Window90D: {label: "последние 90 дней", days: 90},
}

// ParseWindow validates an untrusted window tag at the HTTP boundary.
// Inside the service a Window is always one of the declared constants.
func ParseWindow(s string) (Window, error) {
	w := Window(s)
	if _, ok := windows[w]; !ok {
		return "", fmt.Errorf("unknown time window %q", s)
	}
	return w, nil
}

// Days returns the day count of the window, at least 1 for every declared tag.
func (w Window) Days() int { return windows[w].days }

// Label returns the human-readable name of the window.
func (w Window) Label() string { return windows[w].label }

// DateRange is a pair of calendar dates. A range is either complete (both
// endpoints set) or empty; a half-populated range is a transient editing
// state and never serializes to an API range.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Complete reports whether both endpoints are set.
func (r DateRange) Complete() bool { return !r.From.IsZero() && !r.To.IsZero() }

// Empty reports whether neither endpoint is set.
func (r DateRange) Empty() bool { return r.From.IsZero() && r.To.IsZero() }

// Resolve picks the effective range for a query. A complete custom range
// always wins over the window; otherwise the range ends at now and starts
// window days earlier. AddDate performs calendar-day arithmetic, so the
// result stays correct across DST transitions. Deterministic in
// (window, custom, now), which keeps downstream cache keys stable.
func Resolve(w Window, custom DateRange, now time.Time) DateRange {
	if custom.Complete() {
		return custom
	}
	return DateRange{From: now.AddDate(0, 0, -w.Days()), To: now}
}

// APIRange is the wire form of a range, dates formatted as YYYY-MM-DD with
// a fixed locale-independent calendar.
type APIRange struct {
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`
}

const apiDateLayout = "2006-01-02"

// API serializes the range for the stats endpoints. The boolean is false
// while the range is incomplete, i.e. not yet resolvable. Time-of-day is
// discarded: two ranges differing only in clock time serialize identically.
func (r DateRange) API() (APIRange, bool) {
	if !r.Complete() {
		return APIRange{}, false
	}
	return APIRange{
		DateFrom: r.From.Format(apiDateLayout),
		DateTo:   r.To.Format(apiDateLayout),
	}, true
}

// ParseAPIDate parses a wire date back into a UTC calendar day.
func ParseAPIDate(s string) (time.Time, error) {
	t, err := time.Parse(apiDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}
