// childcare-crm/internal/handlers/stats_handler_test.go
package handlers

import (
	"testing"
	"time"

	"childcare-crm/models"

	"github.com/stretchr/testify/require"
)

func TestBuildStatsSeriesCountsByInterval(t *testing.T) {
	days := []models.CalendarDay{
		{Date: date(2025, time.March, 3), IsWeekday: true},
		{Date: date(2025, time.March, 4), IsWeekday: true},
	}
	children := []models.Child{
		testChild(1, uintPtr(10), date(2025, time.January, 6), nil),
		testChild(2, uintPtr(10), date(2025, time.March, 4), nil),
		testChild(3, uintPtr(20), date(2025, time.January, 6), timePtr(date(2025, time.March, 3))),
	}

	rows := buildStatsSeries(days, children, nil, 30)
	require.Len(t, rows, 2)

	require.Equal(t, "2025-03-03", rows[0].Date)
	require.Equal(t, 2, rows[0].TotalEnrolled) // child 2 not started, child 3 ends today
	require.Equal(t, 30, rows[0].TotalCapacity)

	require.Equal(t, "2025-03-04", rows[1].Date)
	require.Equal(t, 2, rows[1].TotalEnrolled) // child 2 starts, child 3 ended
}

func TestBuildStatsSeriesClassroomFilter(t *testing.T) {
	days := []models.CalendarDay{{Date: date(2025, time.March, 3), IsWeekday: true}}
	children := []models.Child{
		testChild(1, uintPtr(10), date(2025, time.January, 6), nil),
		testChild(2, uintPtr(20), date(2025, time.January, 6), nil),
		testChild(3, nil, date(2025, time.January, 6), nil),
	}

	rows := buildStatsSeries(days, children, uintPtr(10), 12)
	require.Len(t, rows, 1)
	require.Equal(t, 1, rows[0].TotalEnrolled)
	require.Equal(t, 12, rows[0].TotalCapacity)
}

func TestBuildStatsSeriesIncludesClosedDays(t *testing.T) {
	// Closed days stay in the series with their flags; the dashboard plots
	// them greyed out rather than skipping them.
	days := []models.CalendarDay{
		{Date: date(2025, time.September, 1), IsWeekday: true, IsStatHoliday: true},
		{Date: date(2025, time.September, 6), IsWeekday: false},
	}
	children := []models.Child{
		testChild(1, uintPtr(10), date(2025, time.January, 6), nil),
	}

	rows := buildStatsSeries(days, children, nil, 10)
	require.Len(t, rows, 2)
	require.True(t, rows[0].IsStatHoliday)
	require.False(t, rows[1].IsWeekday)
	require.Equal(t, 1, rows[0].TotalEnrolled)
	require.Equal(t, 1, rows[1].TotalEnrolled)
}
