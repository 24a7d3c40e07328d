// childcare-crm/internal/handlers/stats_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"childcare-crm/config"
	"childcare-crm/models"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// StatsRow is one calendar day of the enrollment time series.
type StatsRow struct {
	Date          string `json:"date"`
	TotalCapacity int    `json:"totalCapacity"`
	TotalEnrolled int    `json:"totalEnrolled"`
	IsWeekday     bool   `json:"isWeekday"`
	IsStatHoliday bool   `json:"isStatHoliday"`
}

const statsCacheTTL = 5 * time.Minute

// buildStatsSeries walks every calendar day in the given (already date-
// ordered) set and counts enrolled children by the static interval-overlap
// rule. Unlike the per-day roster endpoint this aggregate deliberately
// ignores transitions and includes closed days; existing consumers of the
// stats feed depend on both behaviours.
func buildStatsSeries(days []models.CalendarDay, children []models.Child, classroomID *uint, totalCapacity int) []StatsRow {
	rows := make([]StatsRow, 0, len(days))
	for _, day := range days {
		enrolled := 0
		for _, ch := range children {
			if classroomID != nil && (ch.ClassroomID == nil || *ch.ClassroomID != *classroomID) {
				continue
			}
			if intervalCovers(ch.EnrollmentStartDate, ch.EnrollmentEndDate, day.Date) {
				enrolled++
			}
		}
		rows = append(rows, StatsRow{
			Date:          fmtDate(day.Date),
			TotalCapacity: totalCapacity,
			TotalEnrolled: enrolled,
			IsWeekday:     day.IsWeekday,
			IsStatHoliday: day.IsStatHoliday,
		})
	}
	return rows
}

// loadStatsSeries resolves the optional classroom filter and assembles the
// full series from the database.
func loadStatsSeries(c *gin.Context) ([]StatsRow, int, error) {
	var classroomID *uint
	totalCapacity := 0

	if classroomIDStr := c.Query("classroom_id"); classroomIDStr != "" {
		id, err := strconv.ParseUint(classroomIDStr, 10, 64)
		if err != nil {
			return nil, http.StatusBadRequest, fmt.Errorf("invalid classroom_id %q", classroomIDStr)
		}
		var classroom models.Classroom
		if err := config.DB.First(&classroom, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, http.StatusNotFound, errors.New("classroom not found")
			}
			return nil, http.StatusInternalServerError, err
		}
		uid := uint(id)
		classroomID = &uid
		totalCapacity = classroom.MaxCapacity
	} else {
		var capacities []int
		if err := config.DB.Model(&models.Classroom{}).Pluck("max_capacity", &capacities).Error; err != nil {
			return nil, http.StatusInternalServerError, err
		}
		for _, capValue := range capacities {
			totalCapacity += capValue
		}
	}

	var days []models.CalendarDay
	if err := config.DB.Order("date").Find(&days).Error; err != nil {
		return nil, http.StatusInternalServerError, err
	}

	var children []models.Child
	if err := config.DB.Find(&children).Error; err != nil {
		return nil, http.StatusInternalServerError, err
	}

	return buildStatsSeries(days, children, classroomID, totalCapacity), http.StatusOK, nil
}

func statsCacheKey(c *gin.Context) string {
	if classroomID := c.Query("classroom_id"); classroomID != "" {
		return "attendance:stats:classroom:" + classroomID
	}
	return "attendance:stats:all"
}

// GetAttendanceStatsHandler returns the enrollment time series, one row per
// calendar day in ascending date order. Responses are cached in Redis for a
// few minutes when caching is enabled.
func GetAttendanceStatsHandler(c *gin.Context) {
	cacheKey := statsCacheKey(c)
	if config.RDB != nil {
		cached, err := config.RDB.Get(config.Ctx, cacheKey).Result()
		if err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
			return
		}
		if err != redis.Nil {
			slog.Error("Redis GET failed for attendance stats", "error", err, "key", cacheKey)
		}
	}

	rows, status, err := loadStatsSeries(c)
	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	body := gin.H{"data": rows}
	if config.RDB != nil {
		if payload, err := json.Marshal(body); err == nil {
			if err := config.RDB.Set(config.Ctx, cacheKey, payload, statsCacheTTL).Err(); err != nil {
				slog.Error("Failed to cache attendance stats", "error", err, "key", cacheKey)
			}
		}
	}

	c.JSON(http.StatusOK, body)
}

// ExportAttendanceStatsHandler streams the same series as an xlsx workbook.
func ExportAttendanceStatsHandler(c *gin.Context) {
	rows, status, err := loadStatsSeries(c)
	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	f := excelize.NewFile()
	sheetName := "Enrollment"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Date", "Total Capacity", "Total Enrolled", "Weekday", "Stat Holiday"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, row := range rows {
		rowNum := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowNum), row.Date)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowNum), row.TotalCapacity)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowNum), row.TotalEnrolled)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", rowNum), row.IsWeekday)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", rowNum), row.IsStatHoliday)
	}

	fileName := fmt.Sprintf("enrollment_stats_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		slog.Error("Failed to write stats export", "error", err)
	}
}
