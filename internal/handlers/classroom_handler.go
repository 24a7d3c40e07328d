// childcare-crm/internal/handlers/classroom_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"childcare-crm/config"
	"childcare-crm/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ClassroomInput binds create/update payloads for a classroom, including its
// alternative program capacities. The alternative list fully replaces the
// stored one on update.
type ClassroomInput struct {
	ClassroomName         string `json:"classroomName" binding:"required"`
	ProgramType           string `json:"programType" binding:"required"`
	MaxCapacity           int    `json:"maxCapacity" binding:"required,min=1"`
	Notes                 string `json:"notes"`
	AlternativeCapacities []struct {
		ProgramType string `json:"programType" binding:"required"`
		MaxCapacity int    `json:"maxCapacity" binding:"required,min=1"`
	} `json:"alternativeCapacities"`
}

// AlternativeCapacityResponse mirrors one alternative capacity row.
type AlternativeCapacityResponse struct {
	ID          uint   `json:"id"`
	ProgramType string `json:"programType"`
	MaxCapacity int    `json:"maxCapacity"`
}

// ClassroomResponse is the API shape of a classroom record.
type ClassroomResponse struct {
	ID                    uint                          `json:"id"`
	ClassroomName         string                        `json:"classroomName"`
	ProgramType           string                        `json:"programType"`
	MaxCapacity           int                           `json:"maxCapacity"`
	Notes                 string                        `json:"notes"`
	AlternativeCapacities []AlternativeCapacityResponse `json:"alternativeCapacities"`
}

func classroomToResponse(room *models.Classroom) ClassroomResponse {
	alts := make([]AlternativeCapacityResponse, 0, len(room.AlternativeCapacities))
	for _, alt := range room.AlternativeCapacities {
		alts = append(alts, AlternativeCapacityResponse{
			ID:          alt.ID,
			ProgramType: alt.ProgramType,
			MaxCapacity: alt.MaxCapacity,
		})
	}
	return ClassroomResponse{
		ID:                    room.ID,
		ClassroomName:         room.ClassroomName,
		ProgramType:           room.ProgramType,
		MaxCapacity:           room.MaxCapacity,
		Notes:                 room.Notes,
		AlternativeCapacities: alts,
	}
}

func validProgramType(p string) bool {
	switch p {
	case models.ProgramInfant, models.ProgramToddler, models.ProgramPreschool:
		return true
	}
	return false
}

func ListClassroomsHandler(c *gin.Context) {
	var classrooms []models.Classroom
	var totalRows int64

	baseQuery := config.DB.Model(&models.Classroom{})

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		baseQuery = baseQuery.Where("LOWER(classroom_name) LIKE ?", pattern)
	}

	if err := baseQuery.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count classrooms"})
		return
	}

	if err := baseQuery.Scopes(Paginate(c)).
		Preload("AlternativeCapacities").
		Order("classroom_name").
		Find(&classrooms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch classrooms"})
		return
	}

	data := make([]ClassroomResponse, 0, len(classrooms))
	for i := range classrooms {
		data = append(data, classroomToResponse(&classrooms[i]))
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, data, totalRows))
}

func GetClassroomHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var classroom models.Classroom
	if err := config.DB.Preload("AlternativeCapacities").First(&classroom, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Classroom not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch classroom: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, classroomToResponse(&classroom))
}

func CreateClassroomHandler(c *gin.Context) {
	var in ClassroomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if !validProgramType(in.ProgramType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid program type: " + in.ProgramType})
		return
	}

	classroom := models.Classroom{
		ClassroomName: in.ClassroomName,
		ProgramType:   in.ProgramType,
		MaxCapacity:   in.MaxCapacity,
		Notes:         in.Notes,
	}
	for _, alt := range in.AlternativeCapacities {
		if !validProgramType(alt.ProgramType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid program type: " + alt.ProgramType})
			return
		}
		classroom.AlternativeCapacities = append(classroom.AlternativeCapacities, models.AlternativeCapacity{
			ProgramType: alt.ProgramType,
			MaxCapacity: alt.MaxCapacity,
		})
	}

	if err := config.DB.Create(&classroom).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create classroom: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, classroomToResponse(&classroom))
}

func UpdateClassroomHandler(c *gin.Context) {
	id, err := idParam(c)
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

	var in ClassroomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if !validProgramType(in.ProgramType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid program type: " + in.ProgramType})
		return
	}
	for _, alt := range in.AlternativeCapacities {
		if !validProgramType(alt.ProgramType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid program type: " + alt.ProgramType})
			return
		}
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		classroom.ClassroomName = in.ClassroomName
		classroom.ProgramType = in.ProgramType
		classroom.MaxCapacity = in.MaxCapacity
		classroom.Notes = in.Notes
		if err := tx.Save(&classroom).Error; err != nil {
			return err
		}

		// Replace the alternative capacity set wholesale.
		if err := tx.Where("classroom_id = ?", classroom.ID).
			Delete(&models.AlternativeCapacity{}).Error; err != nil {
			return err
		}
		for _, alt := range in.AlternativeCapacities {
			record := models.AlternativeCapacity{
				ClassroomID: classroom.ID,
				ProgramType: alt.ProgramType,
				MaxCapacity: alt.MaxCapacity,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update classroom: " + err.Error()})
		return
	}

	if err := config.DB.Preload("AlternativeCapacities").First(&classroom, classroom.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload classroom"})
		return
	}

	c.JSON(http.StatusOK, classroomToResponse(&classroom))
}

func DeleteClassroomHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := config.DB.Delete(&models.Classroom{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete classroom"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Classroom not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Classroom deleted successfully"})
}
