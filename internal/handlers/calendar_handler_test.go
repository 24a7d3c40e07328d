// childcare-crm/internal/handlers/calendar_handler_test.go
package handlers

import (
	"testing"
	"time"

	"childcare-crm/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestEasterSunday(t *testing.T) {
	cases := map[int]time.Time{
		2024: date(2024, time.March, 31),
		2025: date(2025, time.April, 20),
		2026: date(2026, time.April, 5),
		2038: date(2038, time.April, 25), // latest possible Easter
	}
	for year, want := range cases {
		require.Equal(t, want, easterSunday(year), "year %d", year)
	}
}

func TestGoodFriday(t *testing.T) {
	require.Equal(t, date(2025, time.April, 18), goodFriday(2025))
	require.Equal(t, date(2024, time.March, 29), goodFriday(2024))
}

func TestFamilyDay(t *testing.T) {
	// Third Monday of February.
	require.Equal(t, date(2025, time.February, 17), familyDay(2025))
	require.Equal(t, date(2026, time.February, 16), familyDay(2026))
}

func TestVictoriaDay(t *testing.T) {
	// Last Monday on or before May 25.
	require.Equal(t, date(2025, time.May, 19), victoriaDay(2025))
	require.Equal(t, date(2026, time.May, 25), victoriaDay(2026)) // May 25 itself is a Monday
}

func TestLabourDay(t *testing.T) {
	require.Equal(t, date(2025, time.September, 1), labourDay(2025))
	require.Equal(t, date(2024, time.September, 2), labourDay(2024))
}

func TestThanksgivingDay(t *testing.T) {
	// Second Monday of October.
	require.Equal(t, date(2025, time.October, 13), thanksgivingDay(2025))
	require.Equal(t, date(2024, time.October, 14), thanksgivingDay(2024))
}

func TestSubstitutionDate(t *testing.T) {
	// Canada Day 2023 fell on a Saturday and was observed on Monday July 3.
	require.Equal(t, date(2023, time.July, 3), substitutionDate(date(2023, time.July, 1)))
	// New Year's Day 2023 fell on a Sunday, observed Monday January 2.
	require.Equal(t, date(2023, time.January, 2), substitutionDate(date(2023, time.January, 1)))
	// Weekday holidays are observed on the day itself.
	require.Equal(t, date(2025, time.July, 1), substitutionDate(date(2025, time.July, 1)))
}

func TestStatHolidaysCivicAndLabourShareDate(t *testing.T) {
	// Both entries resolve to the first Monday of September; Labour Day comes
	// later in the list and wins the calendar row.
	holidays := statHolidays(2025)

	var civic, labour *statHoliday
	for i := range holidays {
		switch holidays[i].Name {
		case "Civic Holiday":
			civic = &holidays[i]
		case "Labour Day":
			labour = &holidays[i]
		}
	}
	require.NotNil(t, civic)
	require.NotNil(t, labour)
	require.Equal(t, civic.Date, labour.Date)
}

func TestStatHolidaysCount(t *testing.T) {
	require.Len(t, statHolidays(2025), 10)
}

// expectCalendarYear2025 queues the exact statement sequence one generator
// run for 2025 issues: the 365 base rows in four conflict-ignoring batches
// inside one transaction, then ten holiday upserts keyed on the unique date
// column. 2025 has no weekend statutory holidays, so no substitution rows.
func expectCalendarYear2025(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	for i := 0; i < 4; i++ {
		mock.ExpectQuery(`INSERT INTO "calendar_days" .* ON CONFLICT \("date"\) DO NOTHING`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
	}
	mock.ExpectCommit()

	for i := 0; i < 10; i++ {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "calendar_days" .* ON CONFLICT \("date"\) DO UPDATE`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(i + 1))
		mock.ExpectCommit()
	}
}

func TestGenerateCalendarYearIdempotent(t *testing.T) {
	mock := setupMockDB(t)

	// A second run issues exactly the same conflict-keyed upserts as the
	// first: no plain inserts, so rerunning a year never duplicates rows.
	expectCalendarYear2025(mock)
	expectCalendarYear2025(mock)

	require.NoError(t, GenerateCalendarYear(config.DB, 2025))
	require.NoError(t, GenerateCalendarYear(config.DB, 2025))

	require.NoError(t, mock.ExpectationsWereMet())
}
