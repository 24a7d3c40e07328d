// childcare-crm/internal/handlers/deposit_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"childcare-crm/config"
	"childcare-crm/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DepositInput binds create/update payloads for a deposit.
type DepositInput struct {
	FamilyID     uint    `json:"familyId" binding:"required"`
	ChildID      *uint   `json:"childId"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	DateReceived string  `json:"dateReceived" binding:"required"`
	Returned     bool    `json:"returned"`
	DateReturned *string `json:"dateReturned"`
	Notes        string  `json:"notes"`
}

// DepositResponse is the API shape of a deposit record.
type DepositResponse struct {
	ID           uint    `json:"id"`
	FamilyID     uint    `json:"familyId"`
	ChildID      *uint   `json:"childId"`
	Amount       float64 `json:"amount"`
	DateReceived string  `json:"dateReceived"`
	Returned     bool    `json:"returned"`
	DateReturned *string `json:"dateReturned"`
	Notes        string  `json:"notes"`
}

func depositToResponse(d *models.Deposit) DepositResponse {
	return DepositResponse{
		ID:           d.ID,
		FamilyID:     d.FamilyID,
		ChildID:      d.ChildID,
		Amount:       d.Amount,
		DateReceived: fmtDate(d.DateReceived),
		Returned:     d.Returned,
		DateReturned: fmtDatePtr(d.DateReturned),
		Notes:        d.Notes,
	}
}

func (in *DepositInput) apply(db *gorm.DB, d *models.Deposit) (int, error) {
	received, err := parseDate(in.DateReceived)
	if err != nil {
		return http.StatusBadRequest, err
	}
	returned, err := parseDatePtr(in.DateReturned)
	if err != nil {
		return http.StatusBadRequest, err
	}
	if in.Returned && returned == nil {
		return http.StatusBadRequest, errors.New("dateReturned is required when returned is true")
	}

	var family models.Family
	if err := db.First(&family, in.FamilyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return http.StatusNotFound, errors.New("family not found")
		}
		return http.StatusInternalServerError, err
	}
	if in.ChildID != nil {
		var child models.Child
		if err := db.First(&child, *in.ChildID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return http.StatusNotFound, errors.New("child not found")
			}
			return http.StatusInternalServerError, err
		}
	}

	d.FamilyID = in.FamilyID
	d.ChildID = in.ChildID
	d.Amount = in.Amount
	d.DateReceived = received
	d.Returned = in.Returned
	d.DateReturned = returned
	d.Notes = in.Notes
	return http.StatusOK, nil
}

func ListDepositsHandler(c *gin.Context) {
	var deposits []models.Deposit
	var totalRows int64

	baseQuery := config.DB.Model(&models.Deposit{})

	if familyIDStr := c.Query("family_id"); familyIDStr != "" {
		if familyID, err := strconv.Atoi(familyIDStr); err == nil {
			baseQuery = baseQuery.Where("family_id = ?", familyID)
		}
	}
	if c.Query("outstanding") == "true" {
		baseQuery = baseQuery.Where("returned = ?", false)
	}

	if err := baseQuery.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count deposits"})
		return
	}

	if err := baseQuery.Scopes(Paginate(c)).Order("date_received DESC").Find(&deposits).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch deposits"})
		return
	}

	data := make([]DepositResponse, 0, len(deposits))
	for i := range deposits {
		data = append(data, depositToResponse(&deposits[i]))
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, data, totalRows))
}

func GetDepositHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var deposit models.Deposit
	if err := config.DB.First(&deposit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Deposit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch deposit: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, depositToResponse(&deposit))
}

func CreateDepositHandler(c *gin.Context) {
	var in DepositInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	var deposit models.Deposit
	if status, err := in.apply(config.DB, &deposit); err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Create(&deposit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create deposit: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, depositToResponse(&deposit))
}

func UpdateDepositHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var deposit models.Deposit
	if err := config.DB.First(&deposit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Deposit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch deposit: " + err.Error()})
		return
	}

	var in DepositInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if status, err := in.apply(config.DB, &deposit); err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Save(&deposit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update deposit: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, depositToResponse(&deposit))
}

func DeleteDepositHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := config.DB.Delete(&models.Deposit{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete deposit"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deposit not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deposit deleted successfully"})
}
