// childcare-crm/internal/handlers/calendar_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"childcare-crm/config"
	"childcare-crm/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CalendarDayResponse is the API shape of one calendar day.
type CalendarDayResponse struct {
	ID                   uint    `json:"id"`
	Date                 string  `json:"date"`
	IsWeekday            bool    `json:"isWeekday"`
	IsStatHoliday        bool    `json:"isStatHoliday"`
	IsClosed             bool    `json:"isClosed"`
	HolidayName          string  `json:"holidayName"`
	StatSubstitutionDate *string `json:"statSubstitutionDate"`
}

func calendarDayToResponse(d *models.CalendarDay) CalendarDayResponse {
	return CalendarDayResponse{
		ID:                   d.ID,
		Date:                 fmtDate(d.Date),
		IsWeekday:            d.IsWeekday,
		IsStatHoliday:        d.IsStatHoliday,
		IsClosed:             d.IsClosed,
		HolidayName:          d.HolidayName,
		StatSubstitutionDate: fmtDatePtr(d.StatSubstitutionDate),
	}
}

// --- Holiday date rules ---

// nextMondayOnOrAfter returns t itself when t is a Monday, otherwise the
// following Monday.
func nextMondayOnOrAfter(t time.Time) time.Time {
	offset := (int(time.Monday) - int(t.Weekday()) + 7) % 7
	return t.AddDate(0, 0, offset)
}

// lastMondayOnOrBefore returns t itself when t is a Monday, otherwise the
// preceding Monday.
func lastMondayOnOrBefore(t time.Time) time.Time {
	offset := (int(t.Weekday()) - int(time.Monday) + 7) % 7
	return t.AddDate(0, 0, -offset)
}

// easterSunday computes Easter Sunday for a year using the anonymous
// Gregorian Computus.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func goodFriday(year int) time.Time {
	return easterSunday(year).AddDate(0, 0, -2)
}

func familyDay(year int) time.Time {
	feb1 := time.Date(year, time.February, 1, 0, 0, 0, 0, time.UTC)
	return nextMondayOnOrAfter(feb1).AddDate(0, 0, 14)
}

func victoriaDay(year int) time.Time {
	may25 := time.Date(year, time.May, 25, 0, 0, 0, 0, time.UTC)
	return lastMondayOnOrBefore(may25)
}

func labourDay(year int) time.Time {
	sep1 := time.Date(year, time.September, 1, 0, 0, 0, 0, time.UTC)
	return nextMondayOnOrAfter(sep1)
}

func thanksgivingDay(year int) time.Time {
	oct1 := time.Date(year, time.October, 1, 0, 0, 0, 0, time.UTC)
	return nextMondayOnOrAfter(oct1).AddDate(0, 0, 7)
}

type statHoliday struct {
	Name string
	Date time.Time
}

// statHolidays lists the centre's statutory closures for a year, in
// application order. Civic Holiday has always been configured with the
// Labour Day rule here, so both resolve to the first Monday of September and
// the later entry wins the calendar row.
func statHolidays(year int) []statHoliday {
	return []statHoliday{
		{"New Year's Day", time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"Family Day", familyDay(year)},
		{"Good Friday", goodFriday(year)},
		{"Victoria Day", victoriaDay(year)},
		{"Canada Day", time.Date(year, time.July, 1, 0, 0, 0, 0, time.UTC)},
		{"Civic Holiday", labourDay(year)},
		{"Labour Day", labourDay(year)},
		{"Thanksgiving Day", thanksgivingDay(year)},
		{"Christmas Day", time.Date(year, time.December, 25, 0, 0, 0, 0, time.UTC)},
		{"Boxing Day", time.Date(year, time.December, 26, 0, 0, 0, 0, time.UTC)},
	}
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}

// substitutionDate returns the observed business day for a holiday falling
// on a weekend: Saturday moves to Monday, Sunday to Monday.
func substitutionDate(holiday time.Time) time.Time {
	switch holiday.Weekday() {
	case time.Saturday:
		return holiday.AddDate(0, 0, 2)
	case time.Sunday:
		return holiday.AddDate(0, 0, 1)
	}
	return holiday
}

// GenerateCalendarYear populates the calendar for a whole year: one row per
// day with weekday/closed flags, then a second pass that applies statutory
// holidays and their weekend substitutions. Re-running for the same year
// updates rows in place (unique date key) instead of duplicating them.
func GenerateCalendarYear(db *gorm.DB, year int) error {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	days := make([]models.CalendarDay, 0, 366)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		weekday := !isWeekend(d)
		days = append(days, models.CalendarDay{
			Date:      d,
			IsWeekday: weekday,
			IsClosed:  !weekday,
		})
	}
	// Base rows never overwrite holiday flags applied earlier.
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoNothing: true,
	}).CreateInBatches(days, 100).Error; err != nil {
		return err
	}

	upsertHoliday := func(day models.CalendarDay) error {
		return db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"is_stat_holiday", "is_closed", "holiday_name", "stat_substitution_date",
			}),
		}).Create(&day).Error
	}

	for _, holiday := range statHolidays(year) {
		weekend := isWeekend(holiday.Date)

		row := models.CalendarDay{
			Date:          holiday.Date,
			IsWeekday:     !weekend,
			IsStatHoliday: true,
			IsClosed:      true,
			HolidayName:   holiday.Name,
		}
		if weekend {
			sub := substitutionDate(holiday.Date)
			row.StatSubstitutionDate = &sub
		}
		if err := upsertHoliday(row); err != nil {
			return err
		}

		if weekend {
			sub := substitutionDate(holiday.Date)
			subRow := models.CalendarDay{
				Date:          sub,
				IsWeekday:     !isWeekend(sub),
				IsStatHoliday: true,
				IsClosed:      true,
				HolidayName:   holiday.Name + " (observed)",
			}
			if err := upsertHoliday(subRow); err != nil {
				return err
			}
		}
	}

	return nil
}

// ListCalendarDaysHandler returns calendar rows, optionally limited to a
// date range, in ascending date order.
func ListCalendarDaysHandler(c *gin.Context) {
	query := config.DB.Model(&models.CalendarDay{})

	if startStr := c.Query("start"); startStr != "" {
		start, err := parseDate(startStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		query = query.Where("date >= ?", start)
	}
	if endStr := c.Query("end"); endStr != "" {
		end, err := parseDate(endStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		query = query.Where("date <= ?", end)
	}
	if c.Query("closed") == "false" {
		query = query.Where("is_closed = ?", false)
	}

	var days []models.CalendarDay
	if err := query.Order("date").Find(&days).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch calendar days"})
		return
	}

	data := make([]CalendarDayResponse, 0, len(days))
	for i := range days {
		data = append(data, calendarDayToResponse(&days[i]))
	}

	c.JSON(http.StatusOK, gin.H{"data": data})
}

// GenerateCalendarHandler runs the year generator on demand.
func GenerateCalendarHandler(c *gin.Context) {
	var body struct {
		Year int `json:"year" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if body.Year < 2000 || body.Year > 2100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Year %d is out of range", body.Year)})
		return
	}

	if err := GenerateCalendarYear(config.DB, body.Year); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate calendar: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Calendar for %d generated successfully", body.Year)})
}
