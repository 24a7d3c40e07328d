// childcare-crm/internal/handlers/attendance_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"childcare-crm/config"
	"childcare-crm/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AttendanceInput binds create/update payloads for a manual attendance
// snapshot.
type AttendanceInput struct {
	ClassroomID      uint   `json:"classroomId" binding:"required"`
	Date             string `json:"date" binding:"required"`
	MaxCapacity      int    `json:"maxCapacity"`
	EnrolledChildren int    `json:"enrolledChildren"`
	Notes            string `json:"notes"`
}

// AttendanceResponse is the API shape of an attendance record.
type AttendanceResponse struct {
	ID               uint   `json:"id"`
	ClassroomID      uint   `json:"classroomId"`
	Date             string `json:"date"`
	MaxCapacity      int    `json:"maxCapacity"`
	EnrolledChildren int    `json:"enrolledChildren"`
	Notes            string `json:"notes"`
}

func attendanceToResponse(a *models.Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:               a.ID,
		ClassroomID:      a.ClassroomID,
		Date:             fmtDate(a.Date),
		MaxCapacity:      a.MaxCapacity,
		EnrolledChildren: a.EnrolledChildren,
		Notes:            a.Notes,
	}
}

func (in *AttendanceInput) apply(db *gorm.DB, a *models.Attendance) (int, error) {
	date, err := parseDate(in.Date)
	if err != nil {
		return http.StatusBadRequest, err
	}

	var classroom models.Classroom
	if err := db.First(&classroom, in.ClassroomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return http.StatusNotFound, errors.New("classroom not found")
		}
		return http.StatusInternalServerError, err
	}

	a.ClassroomID = in.ClassroomID
	a.Date = date
	a.MaxCapacity = in.MaxCapacity
	a.EnrolledChildren = in.EnrolledChildren
	a.Notes = in.Notes
	return http.StatusOK, nil
}

func ListAttendanceHandler(c *gin.Context) {
	var records []models.Attendance
	var totalRows int64

	baseQuery := config.DB.Model(&models.Attendance{})

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		baseQuery = baseQuery.Where("LOWER(notes) LIKE ?", pattern)
	}

	if classroomIDStr := c.Query("classroom_id"); classroomIDStr != "" {
		if classroomID, err := strconv.Atoi(classroomIDStr); err == nil {
			baseQuery = baseQuery.Where("classroom_id = ?", classroomID)
		}
	}

	if err := baseQuery.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count attendance records"})
		return
	}

	if err := baseQuery.Scopes(Paginate(c)).Order("date DESC").Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attendance records"})
		return
	}

	data := make([]AttendanceResponse, 0, len(records))
	for i := range records {
		data = append(data, attendanceToResponse(&records[i]))
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, data, totalRows))
}

func GetAttendanceHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var record models.Attendance
	if err := config.DB.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Attendance record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attendance record: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, attendanceToResponse(&record))
}

func CreateAttendanceHandler(c *gin.Context) {
	var in AttendanceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	var record models.Attendance
	if status, err := in.apply(config.DB, &record); err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Create(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create attendance record: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, attendanceToResponse(&record))
}

func UpdateAttendanceHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var record models.Attendance
	if err := config.DB.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Attendance record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attendance record: " + err.Error()})
		return
	}

	var in AttendanceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if status, err := in.apply(config.DB, &record); err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Save(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update attendance record: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, attendanceToResponse(&record))
}

func DeleteAttendanceHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := config.DB.Delete(&models.Attendance{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete attendance record"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Attendance record not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Attendance record deleted successfully"})
}
