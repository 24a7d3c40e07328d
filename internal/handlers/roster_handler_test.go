// childcare-crm/internal/handlers/roster_handler_test.go
package handlers

import (
	"testing"
	"time"

	"childcare-crm/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func uintPtr(v uint) *uint { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func testChild(id uint, classroomID *uint, start time.Time, end *time.Time) models.Child {
	return models.Child{
		Model:               gorm.Model{ID: id},
		ClassroomID:         classroomID,
		FirstName:           "Child",
		LastName:            "Test",
		DateOfBirth:         date(2022, time.March, 15),
		EnrollmentStartDate: start,
		EnrollmentEndDate:   end,
	}
}

func TestAgeInMonths(t *testing.T) {
	birth := date(2023, time.May, 10)

	require.Equal(t, 0, ageInMonths(birth, date(2023, time.May, 31)))
	require.Equal(t, 12, ageInMonths(birth, date(2024, time.May, 1)))
	require.Equal(t, 18, ageInMonths(birth, date(2024, time.November, 9)))
}

func TestAgeInMonthsIgnoresDayOfMonth(t *testing.T) {
	// A child born on the last day of January counts as one month old on
	// February 1st. Month arithmetic only, on purpose.
	birth := date(2020, time.January, 31)
	require.Equal(t, 1, ageInMonths(birth, date(2020, time.February, 1)))
}

func TestIntervalCovers(t *testing.T) {
	start := date(2025, time.January, 6)
	end := date(2025, time.June, 30)

	require.True(t, intervalCovers(start, &end, start), "start day is inclusive")
	require.True(t, intervalCovers(start, &end, end), "end day is inclusive")
	require.True(t, intervalCovers(start, &end, date(2025, time.March, 3)))
	require.False(t, intervalCovers(start, &end, date(2025, time.January, 5)))
	require.False(t, intervalCovers(start, &end, date(2025, time.July, 1)))

	require.True(t, intervalCovers(start, nil, date(2030, time.January, 1)), "nil end is open-ended")
}

func TestResolveRosterStaticAssignment(t *testing.T) {
	day := date(2025, time.March, 3)
	children := []models.Child{
		testChild(1, uintPtr(10), date(2025, time.January, 6), nil),
		testChild(2, uintPtr(10), date(2025, time.April, 1), nil),                                  // not started yet
		testChild(3, uintPtr(10), date(2024, time.September, 2), timePtr(date(2025, time.February, 28))), // ended
		testChild(4, uintPtr(20), date(2025, time.January, 6), nil),                                // other classroom
		testChild(5, nil, date(2025, time.January, 6), nil),                                        // unassigned
	}

	roster := resolveRoster(children, nil, 10, day)

	require.Len(t, roster, 1)
	require.Equal(t, uint(1), roster[0].ID)
}

func TestResolveRosterTransitionIn(t *testing.T) {
	day := date(2025, time.March, 3)
	children := []models.Child{
		testChild(1, uintPtr(10), date(2025, time.January, 6), nil),
	}
	transitions := []models.Transition{
		{Model: gorm.Model{ID: 1}, ChildID: 1, NextClassroomID: 20, TransitionDate: date(2025, time.March, 1), Status: models.TransitionScheduled},
	}

	// On the transition date and after, the child belongs to the destination
	// and no longer counts in the origin.
	require.Empty(t, resolveRoster(children, transitions, 10, day))

	dest := resolveRoster(children, transitions, 20, day)
	require.Len(t, dest, 1)
	require.Equal(t, uint(1), dest[0].ID)
}

func TestResolveRosterBeforeTransitionDate(t *testing.T) {
	day := date(2025, time.February, 14)
	children := []models.Child{
		testChild(1, uintPtr(10), date(2025, time.January, 6), nil),
	}
	transitions := []models.Transition{
		{Model: gorm.Model{ID: 1}, ChildID: 1, NextClassroomID: 20, TransitionDate: date(2025, time.March, 1), Status: models.TransitionScheduled},
	}

	origin := resolveRoster(children, transitions, 10, day)
	require.Len(t, origin, 1)
	require.Empty(t, resolveRoster(children, transitions, 20, day))
}

func TestResolveRosterIgnoresCancelledTransitions(t *testing.T) {
	day := date(2025, time.March, 3)
	children := []models.Child{
		testChild(1, uintPtr(10), date(2025, time.January, 6), nil),
	}
	transitions := []models.Transition{
		{Model: gorm.Model{ID: 1}, ChildID: 1, NextClassroomID: 20, TransitionDate: date(2025, time.March, 1), Status: models.TransitionCancelled},
	}

	origin := resolveRoster(children, transitions, 10, day)
	require.Len(t, origin, 1)
	require.Empty(t, resolveRoster(children, transitions, 20, day))
}

func TestResolveRosterTransitionIntoOwnClassroom(t *testing.T) {
	// A transition whose destination equals the static classroom must not
	// remove the child from it.
	day := date(2025, time.March, 3)
	children := []models.Child{
		testChild(1, uintPtr(10), date(2025, time.January, 6), nil),
	}
	transitions := []models.Transition{
		{Model: gorm.Model{ID: 1}, ChildID: 1, NextClassroomID: 10, TransitionDate: date(2025, time.March, 1), Status: models.TransitionCompleted},
	}

	roster := resolveRoster(children, transitions, 10, day)
	require.Len(t, roster, 1)
}

func TestResolveRosterEndedEnrollmentNotTransitionedIn(t *testing.T) {
	// A child whose enrollment ended before the date does not appear in the
	// destination even with a matching transition.
	day := date(2025, time.June, 2)
	children := []models.Child{
		testChild(1, uintPtr(10), date(2025, time.January, 6), timePtr(date(2025, time.April, 30))),
	}
	transitions := []models.Transition{
		{Model: gorm.Model{ID: 1}, ChildID: 1, NextClassroomID: 20, TransitionDate: date(2025, time.March, 1), Status: models.TransitionCompleted},
	}

	require.Empty(t, resolveRoster(children, transitions, 20, day))
}

func TestResolveRosterChildListedOnce(t *testing.T) {
	// Static assignment plus a transition back into the same room must not
	// duplicate the child.
	day := date(2025, time.May, 5)
	children := []models.Child{
		testChild(1, uintPtr(10), date(2025, time.January, 6), nil),
	}
	transitions := []models.Transition{
		{Model: gorm.Model{ID: 1}, ChildID: 1, NextClassroomID: 20, TransitionDate: date(2025, time.February, 3), Status: models.TransitionCompleted},
		{Model: gorm.Model{ID: 2}, ChildID: 1, NextClassroomID: 10, TransitionDate: date(2025, time.April, 7), Status: models.TransitionCompleted},
	}

	roster := resolveRoster(children, transitions, 10, day)
	require.Len(t, roster, 1)
}

func TestResolveRosterSortedByName(t *testing.T) {
	day := date(2025, time.March, 3)
	start := date(2025, time.January, 6)

	mk := func(id uint, first, last string) models.Child {
		ch := testChild(id, uintPtr(10), start, nil)
		ch.FirstName = first
		ch.LastName = last
		return ch
	}
	children := []models.Child{
		mk(1, "Zoe", "Martin"),
		mk(2, "Amir", "Khan"),
		mk(3, "Ben", "Khan"),
	}

	roster := resolveRoster(children, nil, 10, day)
	require.Len(t, roster, 3)
	require.Equal(t, []uint{2, 3, 1}, []uint{roster[0].ID, roster[1].ID, roster[2].ID})
}
