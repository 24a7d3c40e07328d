// childcare-crm/internal/handlers/family_handler.go
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

// FamilyInput binds create/update payloads for a family.
type FamilyInput struct {
	Parent1Name       string `json:"parent1Name" binding:"required"`
	Parent1Phone      string `json:"parent1Phone"`
	Parent1Email      string `json:"parent1Email"`
	Parent2Name       string `json:"parent2Name"`
	Parent2Phone      string `json:"parent2Phone"`
	Parent2Email      string `json:"parent2Email"`
	Address           string `json:"address"`
	PaymentPreference string `json:"paymentPreference"`
	Notes             string `json:"notes"`
}

// FamilyResponse is the API shape of a family record.
type FamilyResponse struct {
	ID                uint   `json:"id"`
	Parent1Name       string `json:"parent1Name"`
	Parent1Phone      string `json:"parent1Phone"`
	Parent1Email      string `json:"parent1Email"`
	Parent2Name       string `json:"parent2Name"`
	Parent2Phone      string `json:"parent2Phone"`
	Parent2Email      string `json:"parent2Email"`
	Address           string `json:"address"`
	PaymentPreference string `json:"paymentPreference"`
	Notes             string `json:"notes"`
}

func familyToResponse(f *models.Family) FamilyResponse {
	return FamilyResponse{
		ID:                f.ID,
		Parent1Name:       f.Parent1Name,
		Parent1Phone:      f.Parent1Phone,
		Parent1Email:      f.Parent1Email,
		Parent2Name:       f.Parent2Name,
		Parent2Phone:      f.Parent2Phone,
		Parent2Email:      f.Parent2Email,
		Address:           f.Address,
		PaymentPreference: f.PaymentPreference,
		Notes:             f.Notes,
	}
}

func (in *FamilyInput) apply(f *models.Family) error {
	if in.PaymentPreference != "" && !models.ValidPaymentMethod(in.PaymentPreference) {
		return errors.New("invalid payment preference: " + in.PaymentPreference)
	}
	f.Parent1Name = in.Parent1Name
	f.Parent1Phone = in.Parent1Phone
	f.Parent1Email = in.Parent1Email
	f.Parent2Name = in.Parent2Name
	f.Parent2Phone = in.Parent2Phone
	f.Parent2Email = in.Parent2Email
	f.Address = in.Address
	f.PaymentPreference = in.PaymentPreference
	f.Notes = in.Notes
	return nil
}

func ListFamiliesHandler(c *gin.Context) {
	var families []models.Family
	var totalRows int64

	baseQuery := config.DB.Model(&models.Family{})

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		baseQuery = baseQuery.Where(
			"LOWER(parent_1_name) LIKE ? OR LOWER(parent_1_email) LIKE ? OR LOWER(parent_2_name) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	if err := baseQuery.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count families"})
		return
	}

	if err := baseQuery.Scopes(Paginate(c)).Order("parent_1_name").Find(&families).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch families"})
		return
	}

	data := make([]FamilyResponse, 0, len(families))
	for i := range families {
		data = append(data, familyToResponse(&families[i]))
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, data, totalRows))
}

func GetFamilyHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var family models.Family
	if err := config.DB.First(&family, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Family not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch family: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, familyToResponse(&family))
}

func CreateFamilyHandler(c *gin.Context) {
	var in FamilyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	var family models.Family
	if err := in.apply(&family); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Create(&family).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create family: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, familyToResponse(&family))
}

func UpdateFamilyHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var family models.Family
	if err := config.DB.First(&family, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Family not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch family: " + err.Error()})
		return
	}

	var in FamilyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := in.apply(&family); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Save(&family).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update family: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, familyToResponse(&family))
}

func DeleteFamilyHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := config.DB.Delete(&models.Family{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete family"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Family not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Family deleted successfully"})
}
