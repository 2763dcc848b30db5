package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekCount(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{name: "contract example", start: date(2024, 1, 1), end: date(2024, 3, 25), want: 13},
		{name: "same day", start: date(2024, 1, 1), end: date(2024, 1, 1), want: 1},
		{name: "one day", start: date(2024, 1, 1), end: date(2024, 1, 2), want: 2},
		{name: "exactly one week", start: date(2024, 1, 1), end: date(2024, 1, 8), want: 2},
		{name: "six days", start: date(2024, 1, 1), end: date(2024, 1, 7), want: 2},
		{name: "end before start clamps", start: date(2024, 3, 1), end: date(2024, 1, 1), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekCount(tt.start, tt.end))
		})
	}
}

func TestBuildWeeks_ContractExample(t *testing.T) {
	weeks := BuildWeeks(date(2024, 1, 1), date(2024, 3, 25))
	require.Len(t, weeks, 13)

	assert.Equal(t, 1, weeks[0].Index)
	assert.Equal(t, "W1", weeks[0].Label)
	assert.Equal(t, date(2024, 1, 1), weeks[0].Start)
	assert.Equal(t, date(2024, 3, 25), weeks[12].Start)
	assert.True(t, weeks[12].Contains(date(2024, 3, 25)))
}

func TestBuildWeeks_CoversRangeWithoutGaps(t *testing.T) {
	ranges := [][2]time.Time{
		{date(2024, 1, 1), date(2024, 3, 25)},
		{date(2024, 2, 14), date(2024, 2, 29)},
		{date(2023, 12, 20), date(2025, 1, 3)},
		{date(2024, 5, 5), date(2024, 5, 5)},
	}

	for _, r := range ranges {
		start, end := r[0], r[1]
		weeks := BuildWeeks(start, end)
		require.NotEmpty(t, weeks)

		for i, w := range weeks {
			assert.Equal(t, i+1, w.Index)
			assert.Equal(t, start.AddDate(0, 0, 7*i), w.Start, "week %d start", w.Index)
			if i > 0 {
				// next bucket starts the day after the previous one ends
				assert.Equal(t, weeks[i-1].End().AddDate(0, 0, 1), w.Start)
			}
		}
		assert.True(t, weeks[len(weeks)-1].End().After(end) || weeks[len(weeks)-1].Contains(end),
			"range %s..%s: end not covered", start.Format("2006-01-02"), end.Format("2006-01-02"))

		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			assert.NotZero(t, WeekOf(weeks, d), "day %s not covered", d.Format("2006-01-02"))
		}
	}
}

func TestBuildWeeks_EndBeforeStart(t *testing.T) {
	weeks := BuildWeeks(date(2024, 3, 1), date(2024, 1, 1))
	require.Len(t, weeks, 1)
	assert.Equal(t, date(2024, 3, 1), weeks[0].Start)
}

func TestBuildWeeks_TruncatesTimeOfDay(t *testing.T) {
	weeks := BuildWeeks(time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC), date(2024, 1, 10))
	require.Len(t, weeks, 3)
	assert.Equal(t, date(2024, 1, 8), weeks[1].Start)
}

func TestWeekOf(t *testing.T) {
	weeks := BuildWeeks(date(2024, 1, 1), date(2024, 3, 25))
	assert.Equal(t, 1, WeekOf(weeks, date(2024, 1, 7)))
	assert.Equal(t, 2, WeekOf(weeks, date(2024, 1, 8)))
	assert.Equal(t, 0, WeekOf(weeks, date(2023, 12, 31)))
	assert.Equal(t, 0, WeekOf(weeks, date(2024, 4, 1)))
}

func TestGroupByMonth(t *testing.T) {
	weeks := BuildWeeks(date(2024, 1, 1), date(2024, 3, 25))
	groups := GroupByMonth(weeks)
	require.Len(t, groups, 3)

	assert.Equal(t, MonthGroup{Label: "Jan 2024", Month: time.January, Year: 2024, FirstWeek: 1, Span: 5}, groups[0])
	assert.Equal(t, MonthGroup{Label: "Feb 2024", Month: time.February, Year: 2024, FirstWeek: 6, Span: 4}, groups[1])
	assert.Equal(t, MonthGroup{Label: "Mar 2024", Month: time.March, Year: 2024, FirstWeek: 10, Span: 4}, groups[2])

	total := 0
	for _, g := range groups {
		total += g.Span
	}
	assert.Equal(t, len(weeks), total)
}

func TestGroupByMonth_YearBoundary(t *testing.T) {
	groups := GroupByMonth(BuildWeeks(date(2023, 12, 25), date(2024, 1, 8)))
	require.Len(t, groups, 2)
	assert.Equal(t, "Dec 2023", groups[0].Label)
	assert.Equal(t, "Jan 2024", groups[1].Label)
	assert.Equal(t, 2, groups[1].FirstWeek)
}

func TestGroupByMonth_Empty(t *testing.T) {
	assert.Empty(t, GroupByMonth(nil))
}
