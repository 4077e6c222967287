package timerange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseWindow(t *testing.T) {
	for _, tag := range []string{"1d", "7d", "30d", "90d"} {
		w, err := ParseWindow(tag)
		require.NoError(t, err)
		assert.Equal(t, tag, string(w))
		assert.GreaterOrEqual(t, w.Days(), 1)
		assert.NotEmpty(t, w.Label())
	}

	for _, tag := range []string{"", "2w", "7", "7D", "365d"} {
		_, err := ParseWindow(tag)
		assert.Error(t, err, "tag %q", tag)
	}
}

func TestResolveFromWindow(t *testing.T) {
	now := date(2024, time.June, 15)

	tests := []struct {
		window Window
		from   time.Time
	}{
		{Window1D, date(2024, time.June, 14)},
		{Window7D, date(2024, time.June, 8)},
		{Window30D, date(2024, time.May, 16)},
		{Window90D, date(2024, time.March, 17)},
	}

	for _, tt := range tests {
		t.Run(string(tt.window), func(t *testing.T) {
			got := Resolve(tt.window, DateRange{}, now)
			assert.Equal(t, tt.from, got.From)
			assert.Equal(t, now, got.To)
			assert.False(t, got.From.After(got.To))
		})
	}
}

func TestResolveCustomWins(t *testing.T) {
	now := date(2024, time.June, 15)
	custom := DateRange{From: date(2024, time.January, 1), To: date(2024, time.February, 1)}

	for w := range windows {
		got := Resolve(w, custom, now)
		assert.Equal(t, custom, got, "window %s must not override a complete custom range", w)
	}
}

func TestResolveIgnoresHalfPopulatedCustom(t *testing.T) {
	// A half-populated pair never reaches Resolve through the HTTP layer,
	// but Resolve itself treats it as "no custom range".
	now := date(2024, time.June, 15)
	got := Resolve(Window7D, DateRange{From: date(2024, time.January, 1)}, now)
	assert.Equal(t, now, got.To)
	assert.Equal(t, date(2024, time.June, 8), got.From)
}

func TestResolveCalendarDaySubtraction(t *testing.T) {
	// Across a DST transition the window is still measured in calendar
	// days, not 24h multiples.
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)
	now := time.Date(2024, time.March, 31, 12, 0, 0, 0, loc)

	got := Resolve(Window7D, DateRange{}, now)
	assert.Equal(t, 24, got.From.Day())
	assert.Equal(t, time.March, got.From.Month())
	assert.Equal(t, 12, got.From.Hour())
}

func TestAPIIncompleteRange(t *testing.T) {
	cases := []DateRange{
		{},
		{From: date(2024, time.June, 1)},
		{To: date(2024, time.June, 1)},
	}
	for _, r := range cases {
		_, ok := r.API()
		assert.False(t, ok)
	}
}

func TestAPIDiscardsTimeOfDay(t *testing.T) {
	morning := DateRange{
		From: time.Date(2024, time.June, 8, 9, 30, 0, 0, time.UTC),
		To:   time.Date(2024, time.June, 15, 8, 15, 0, 0, time.UTC),
	}
	midnight := DateRange{
		From: date(2024, time.June, 8),
		To:   date(2024, time.June, 15),
	}

	a, ok := morning.API()
	require.True(t, ok)
	b, ok := midnight.API()
	require.True(t, ok)
	assert.Equal(t, b, a)
}

func TestAPIRoundTripStable(t *testing.T) {
	// Formatting, parsing back and re-formatting yields the same string
	// for any plausible calendar date.
	for year := 2000; year <= 2100; year += 7 {
		r := DateRange{From: date(year, time.February, 29).AddDate(0, 0, -1), To: date(year, time.December, 31)}
		first, ok := r.API()
		require.True(t, ok)

		from, err := ParseAPIDate(first.DateFrom)
		require.NoError(t, err)
		to, err := ParseAPIDate(first.DateTo)
		require.NoError(t, err)

		second, ok := DateRange{From: from, To: to}.API()
		require.True(t, ok)
		assert.Equal(t, first, second)
	}
}

func TestSevenDayWindowSerialized(t *testing.T) {
	now := date(2024, time.June, 15)
	api, ok := Resolve(Window7D, DateRange{}, now).API()
	require.True(t, ok)
	assert.Equal(t, APIRange{DateFrom: "2024-06-08", DateTo: "2024-06-15"}, api)
}

func TestParseAPIDateRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "15-06-2024", "2024/06/15", "yesterday"} {
		_, err := ParseAPIDate(s)
		assert.Error(t, err, "input %q", s)
	}
}
