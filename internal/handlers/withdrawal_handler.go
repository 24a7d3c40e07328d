// childcare-crm/internal/handlers/withdrawal_handler.go
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

// WithdrawalInput binds create/update payloads for a withdrawal.
type WithdrawalInput struct {
	ChildID        uint   `json:"childId" binding:"required"`
	WithdrawalDate string `json:"withdrawalDate" binding:"required"`
	Reason         string `json:"reason"`
	Notes          string `json:"notes"`
}

// WithdrawalResponse is the API shape of a withdrawal record.
type WithdrawalResponse struct {
	ID             uint   `json:"id"`
	ChildID        uint   `json:"childId"`
	WithdrawalDate string `json:"withdrawalDate"`
	Reason         string `json:"reason"`
	Notes          string `json:"notes"`
}

func withdrawalToResponse(w *models.Withdrawal) WithdrawalResponse {
	return WithdrawalResponse{
		ID:             w.ID,
		ChildID:        w.ChildID,
		WithdrawalDate: fmtDate(w.WithdrawalDate),
		Reason:         w.Reason,
		Notes:          w.Notes,
	}
}

func ListWithdrawalsHandler(c *gin.Context) {
	var withdrawals []models.Withdrawal
	var totalRows int64

	baseQuery := config.DB.Model(&models.Withdrawal{})

	if childIDStr := c.Query("child_id"); childIDStr != "" {
		if childID, err := strconv.Atoi(childIDStr); err == nil {
			baseQuery = baseQuery.Where("child_id = ?", childID)
		}
	}

	if err := baseQuery.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count withdrawals"})
		return
	}

	if err := baseQuery.Scopes(Paginate(c)).Order("withdrawal_date DESC").Find(&withdrawals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch withdrawals"})
		return
	}

	data := make([]WithdrawalResponse, 0, len(withdrawals))
	for i := range withdrawals {
		data = append(data, withdrawalToResponse(&withdrawals[i]))
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, data, totalRows))
}

func GetWithdrawalHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var withdrawal models.Withdrawal
	if err := config.DB.First(&withdrawal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Withdrawal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch withdrawal: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, withdrawalToResponse(&withdrawal))
}

// CreateWithdrawalHandler records a withdrawal and, in the same transaction,
// sets the child's enrollment end date to the withdrawal date. A child can
// have at most one withdrawal.
func CreateWithdrawalHandler(c *gin.Context) {
	var in WithdrawalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	date, err := parseDate(in.WithdrawalDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var child models.Child
	if err := config.DB.First(&child, in.ChildID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Child not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch child: " + err.Error()})
		return
	}

	var existing models.Withdrawal
	err = config.DB.Where("child_id = ?", in.ChildID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A withdrawal already exists for this child"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing withdrawal: " + err.Error()})
		return
	}

	withdrawal := models.Withdrawal{
		ChildID:        in.ChildID,
		WithdrawalDate: date,
		Reason:         in.Reason,
		Notes:          in.Notes,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&withdrawal).Error; err != nil {
			return err
		}
		return tx.Model(&models.Child{}).
			Where("id = ?", in.ChildID).
			Update("enrollment_end_date", date).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create withdrawal: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, withdrawalToResponse(&withdrawal))
}

// UpdateWithdrawalHandler changes the withdrawal date (and metadata) and
// keeps the child's enrollment end date in sync. The child reference itself
// is immutable.
func UpdateWithdrawalHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var withdrawal models.Withdrawal
	if err := config.DB.First(&withdrawal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Withdrawal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch withdrawal: " + err.Error()})
		return
	}

	var in WithdrawalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if in.ChildID != withdrawal.ChildID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The child of a withdrawal cannot be changed"})
		return
	}
	date, err := parseDate(in.WithdrawalDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	withdrawal.WithdrawalDate = date
	withdrawal.Reason = in.Reason
	withdrawal.Notes = in.Notes

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&withdrawal).Error; err != nil {
			return err
		}
		return tx.Model(&models.Child{}).
			Where("id = ?", withdrawal.ChildID).
			Update("enrollment_end_date", date).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update withdrawal: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, withdrawalToResponse(&withdrawal))
}

// DeleteWithdrawalHandler removes a withdrawal and reopens the child's
// enrollment by clearing the end date.
func DeleteWithdrawalHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var withdrawal models.Withdrawal
	if err := config.DB.First(&withdrawal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Withdrawal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch withdrawal: " + err.Error()})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&withdrawal).Error; err != nil {
			return err
		}
		return tx.Model(&models.Child{}).
			Where("id = ?", withdrawal.ChildID).
			Update("enrollment_end_date", nil).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete withdrawal: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Withdrawal deleted successfully"})
}
