// childcare-crm/internal/handlers/roster_handler.go
package handlers

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"childcare-crm/config"
	"childcare-crm/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RosterChild is one row of a resolved classroom roster.
type RosterChild struct {
	ID          uint   `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
	AgeInMonths int    `json:"ageInMonths"`
}

// ClassroomOccupancy is one row of the centre-wide enrollment report.
type ClassroomOccupancy struct {
	ClassroomID   uint   `json:"classroomId"`
	ClassroomName string `json:"classroomName"`
	ProgramType   string `json:"programType"`
	EnrolledCount int    `json:"enrolledCount"`
	MaxCapacity   int    `json:"maxCapacity"`
}

// ageInMonths computes the age in whole months at the given date as a pure
// (year, month) delta. The day of month is deliberately ignored, so a child
// born on the last day of a month "ages" on the 1st of the next one. This
// mirrors how transition ages have always been reported; do not "fix" it.
func ageInMonths(birth, at time.Time) int {
	return (at.Year()-birth.Year())*12 + int(at.Month()) - int(birth.Month())
}

// intervalCovers reports whether the inclusive enrollment interval
// [start, end] covers date. A nil end means the enrollment is open-ended.
func intervalCovers(start time.Time, end *time.Time, date time.Time) bool {
	if start.After(date) {
		return false
	}
	return end == nil || !end.Before(date)
}

// resolveRoster computes which children count as present in the classroom on
// the given date:
//
//	A: children statically assigned to the classroom whose enrollment
//	   interval covers the date,
//	B: children transitioned INTO the classroom on or before the date
//	   (skipping those whose enrollment already ended),
//	C: children statically assigned here but transitioned OUT to a different
//	   classroom on or before the date.
//
// The roster is (A ∪ B) − C, each child at most once. Cancelled transitions
// are ignored throughout.
func resolveRoster(children []models.Child, transitions []models.Transition, classroomID uint, date time.Time) []models.Child {
	byID := make(map[uint]*models.Child, len(children))
	for i := range children {
		byID[children[i].ID] = &children[i]
	}

	included := make(map[uint]bool)
	for i := range children {
		ch := &children[i]
		if ch.ClassroomID != nil && *ch.ClassroomID == classroomID &&
			intervalCovers(ch.EnrollmentStartDate, ch.EnrollmentEndDate, date) {
			included[ch.ID] = true
		}
	}

	for _, t := range transitions {
		if t.Status == models.TransitionCancelled || t.TransitionDate.After(date) {
			continue
		}
		if t.NextClassroomID != classroomID {
			continue
		}
		ch, ok := byID[t.ChildID]
		if !ok {
			continue
		}
		if ch.EnrollmentEndDate != nil && ch.EnrollmentEndDate.Before(date) {
			continue
		}
		included[ch.ID] = true
	}

	for _, t := range transitions {
		if t.Status == models.TransitionCancelled || t.TransitionDate.After(date) {
			continue
		}
		if t.NextClassroomID == classroomID {
			continue
		}
		if ch, ok := byID[t.ChildID]; ok && ch.ClassroomID != nil && *ch.ClassroomID == classroomID {
			delete(included, ch.ID)
		}
	}

	roster := make([]models.Child, 0, len(included))
	for id := range included {
		roster = append(roster, *byID[id])
	}
	sort.Slice(roster, func(i, j int) bool {
		if roster[i].LastName != roster[j].LastName {
			return roster[i].LastName < roster[j].LastName
		}
		if roster[i].FirstName != roster[j].FirstName {
			return roster[i].FirstName < roster[j].FirstName
		}
		return roster[i].ID < roster[j].ID
	})
	return roster
}

// checkOpenDay looks up the calendar day and rejects dates on which the
// centre is not open. Returns the HTTP status and message to send on
// failure.
func checkOpenDay(db *gorm.DB, date time.Time) (int, error) {
	var day models.CalendarDay
	if err := db.Where("date = ?", date).First(&day).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return http.StatusNotFound, errors.New("no calendar entry for " + fmtDate(date))
		}
		return http.StatusInternalServerError, err
	}
	if !day.IsWeekday || day.IsStatHoliday {
		return http.StatusBadRequest, errors.New("attendance is not defined for closed days (" + fmtDate(date) + ")")
	}
	return http.StatusOK, nil
}

// loadRosterRecords fetches every child plus all non-cancelled transitions
// effective on or before the date. Roster resolution happens in memory; at
// centre scale the full child list is small.
func loadRosterRecords(db *gorm.DB, date time.Time) ([]models.Child, []models.Transition, error) {
	var children []models.Child
	if err := db.Find(&children).Error; err != nil {
		return nil, nil, err
	}
	var transitions []models.Transition
	if err := db.Where("transition_date <= ? AND status <> ?", date, models.TransitionCancelled).
		Find(&transitions).Error; err != nil {
		return nil, nil, err
	}
	return children, transitions, nil
}

// GetClassroomRosterHandler resolves which children are present in a
// classroom on a given open day.
func GetClassroomRosterHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query parameter: date"})
		return
	}
	date, err := parseDate(dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var classroom models.Classroom
	if err := config.DB.First(&classroom, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Classroom not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch classroom: " + err.Error()})
		return
	}

	if status, err := checkOpenDay(config.DB, date); err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	children, transitions, err := loadRosterRecords(config.DB, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load enrollment records: " + err.Error()})
		return
	}

	roster := resolveRoster(children, transitions, classroom.ID, date)
	data := make([]RosterChild, 0, len(roster))
	for _, ch := range roster {
		data = append(data, RosterChild{
			ID:          ch.ID,
			FirstName:   ch.FirstName,
			LastName:    ch.LastName,
			DateOfBirth: fmtDate(ch.DateOfBirth),
			AgeInMonths: ageInMonths(ch.DateOfBirth, date),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"classroomId":   classroom.ID,
		"classroomName": classroom.ClassroomName,
		"date":          fmtDate(date),
		"children":      data,
	})
}

// GetEnrollmentReportHandler applies the roster logic to every classroom for
// one date and aggregates centre-wide totals: every child active on the date
// (regardless of classroom) against the sum of all classroom capacities.
func GetEnrollmentReportHandler(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query parameter: date"})
		return
	}
	date, err := parseDate(dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if status, err := checkOpenDay(config.DB, date); err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	var classrooms []models.Classroom
	if err := config.DB.Order("classroom_name").Find(&classrooms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch classrooms"})
		return
	}

	children, transitions, err := loadRosterRecords(config.DB, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load enrollment records: " + err.Error()})
		return
	}

	rows := make([]ClassroomOccupancy, 0, len(classrooms))
	totalCapacity := 0
	for _, room := range classrooms {
		roster := resolveRoster(children, transitions, room.ID, date)
		rows = append(rows, ClassroomOccupancy{
			ClassroomID:   room.ID,
			ClassroomName: room.ClassroomName,
			ProgramType:   room.ProgramType,
			EnrolledCount: len(roster),
			MaxCapacity:   room.MaxCapacity,
		})
		totalCapacity += room.MaxCapacity
	}

	totalEnrolled := 0
	for _, ch := range children {
		if intervalCovers(ch.EnrollmentStartDate, ch.EnrollmentEndDate, date) {
			totalEnrolled++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"date":          fmtDate(date),
		"classrooms":    rows,
		"totalEnrolled": totalEnrolled,
		"totalCapacity": totalCapacity,
	})
}
