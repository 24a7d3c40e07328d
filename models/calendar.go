// childcare-crm/models/calendar.go

package models

import (
	"time"

	"gorm.io/gorm"
)

// CalendarDay is one row per calendar date, generated for a whole year at a
// time by the calendar populator. StatSubstitutionDate is set on a holiday
// row when the holiday falls on a weekend and the following business day is
// observed instead.
type CalendarDay struct {
	gorm.Model
	Date                 time.Time  `json:"date" gorm:"uniqueIndex;not null"`
	IsWeekday            bool       `json:"isWeekday"`
	IsStatHoliday        bool       `json:"isStatHoliday"`
	IsClosed             bool       `json:"isClosed"`
	HolidayName          string     `json:"holidayName"`
	StatSubstitutionDate *time.Time `json:"statSubstitutionDate"`
}
