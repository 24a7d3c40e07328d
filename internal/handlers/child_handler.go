// childcare-crm/internal/handlers/child_handler.go
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

// ChildInput binds create/update payloads for a child. Dates travel as
// YYYY-MM-DD strings.
type ChildInput struct {
	FamilyID            uint    `json:"familyId" binding:"required"`
	ClassroomID         *uint   `json:"classroomId"`
	FirstName           string  `json:"firstName" binding:"required"`
	LastName            string  `json:"lastName" binding:"required"`
	DateOfBirth         string  `json:"dateOfBirth" binding:"required"`
	AllergyInfo         string  `json:"allergyInfo"`
	EmergencyContact    string  `json:"emergencyContact"`
	EnrollmentStartDate string  `json:"enrollmentStartDate" binding:"required"`
	EnrollmentEndDate   *string `json:"enrollmentEndDate"`
	Notes               string  `json:"notes"`
}

// ChildResponse is the API shape of a child record.
type ChildResponse struct {
	ID                  uint    `json:"id"`
	FamilyID            uint    `json:"familyId"`
	ClassroomID         *uint   `json:"classroomId"`
	FirstName           string  `json:"firstName"`
	LastName            string  `json:"lastName"`
	DateOfBirth         string  `json:"dateOfBirth"`
	AllergyInfo         string  `json:"allergyInfo"`
	EmergencyContact    string  `json:"emergencyContact"`
	EnrollmentStartDate string  `json:"enrollmentStartDate"`
	EnrollmentEndDate   *string `json:"enrollmentEndDate"`
	Notes               string  `json:"notes"`
}

func childToResponse(ch *models.Child) ChildResponse {
	return ChildResponse{
		ID:                  ch.ID,
		FamilyID:            ch.FamilyID,
		ClassroomID:         ch.ClassroomID,
		FirstName:           ch.FirstName,
		LastName:            ch.LastName,
		DateOfBirth:         fmtDate(ch.DateOfBirth),
		AllergyInfo:         ch.AllergyInfo,
		EmergencyContact:    ch.EmergencyContact,
		EnrollmentStartDate: fmtDate(ch.EnrollmentStartDate),
		EnrollmentEndDate:   fmtDatePtr(ch.EnrollmentEndDate),
		Notes:               ch.Notes,
	}
}

// apply validates the input and copies it onto the model. The enrollment
// interval is inclusive on both ends; start must not come after end.
func (in *ChildInput) apply(db *gorm.DB, ch *models.Child) (int, error) {
	dob, err := parseDate(in.DateOfBirth)
	if err != nil {
		return http.StatusBadRequest, err
	}
	start, err := parseDate(in.EnrollmentStartDate)
	if err != nil {
		return http.StatusBadRequest, err
	}
	end, err := parseDatePtr(in.EnrollmentEndDate)
	if err != nil {
		return http.StatusBadRequest, err
	}
	if end != nil && start.After(*end) {
		return http.StatusBadRequest, errors.New("enrollment start date must not be after end date")
	}

	var family models.Family
	if err := db.First(&family, in.FamilyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return http.StatusNotFound, errors.New("family not found")
		}
		return http.StatusInternalServerError, err
	}

	if in.ClassroomID != nil {
		var classroom models.Classroom
		if err := db.First(&classroom, *in.ClassroomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return http.StatusNotFound, errors.New("classroom not found")
			}
			return http.StatusInternalServerError, err
		}
	}

	ch.FamilyID = in.FamilyID
	ch.ClassroomID = in.ClassroomID
	ch.FirstName = in.FirstName
	ch.LastName = in.LastName
	ch.DateOfBirth = dob
	ch.AllergyInfo = in.AllergyInfo
	ch.EmergencyContact = in.EmergencyContact
	ch.EnrollmentStartDate = start
	ch.EnrollmentEndDate = end
	ch.Notes = in.Notes
	return http.StatusOK, nil
}

func ListChildrenHandler(c *gin.Context) {
	var children []models.Child
	var totalRows int64

	baseQuery := config.DB.Model(&models.Child{})

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		baseQuery = baseQuery.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(allergy_info) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	if classroomIDStr := c.Query("classroom_id"); classroomIDStr != "" {
		if classroomID, err := strconv.Atoi(classroomIDStr); err == nil {
			baseQuery = baseQuery.Where("classroom_id = ?", classroomID)
		}
	}

	if familyIDStr := c.Query("family_id"); familyIDStr != "" {
		if familyID, err := strconv.Atoi(familyIDStr); err == nil {
			baseQuery = baseQuery.Where("family_id = ?", familyID)
		}
	}

	if err := baseQuery.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count children"})
		return
	}

	if err := baseQuery.Scopes(Paginate(c)).Order("last_name, first_name").Find(&children).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch children"})
		return
	}

	data := make([]ChildResponse, 0, len(children))
	for i := range children {
		data = append(data, childToResponse(&children[i]))
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, data, totalRows))
}

func GetChildHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var child models.Child
	if err := config.DB.First(&child, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Child not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch child: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, childToResponse(&child))
}

func CreateChildHandler(c *gin.Context) {
	var in ChildInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	var child models.Child
	if status, err := in.apply(config.DB, &child); err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Create(&child).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create child: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, childToResponse(&child))
}

func UpdateChildHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var child models.Child
	if err := config.DB.First(&child, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Child not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch child: " + err.Error()})
		return
	}

	var in ChildInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if status, err := in.apply(config.DB, &child); err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Save(&child).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update child: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, childToResponse(&child))
}

func DeleteChildHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := config.DB.Delete(&models.Child{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete child"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Child not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Child deleted successfully"})
}
