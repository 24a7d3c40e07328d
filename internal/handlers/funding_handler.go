// childcare-crm/internal/handlers/funding_handler.go
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

// FundingInput binds create/update payloads for a government funding record.
type FundingInput struct {
	FundingSource   string  `json:"fundingSource" binding:"required"`
	Stream          string  `json:"stream"`
	AmountReceived  float64 `json:"amountReceived" binding:"required,gt=0"`
	DateReceived    string  `json:"dateReceived" binding:"required"`
	RemainingAmount float64 `json:"remainingAmount"`
	Notes           string  `json:"notes"`
}

// FundingResponse is the API shape of a government funding record.
type FundingResponse struct {
	ID              uint    `json:"id"`
	FundingSource   string  `json:"fundingSource"`
	Stream          string  `json:"stream"`
	AmountReceived  float64 `json:"amountReceived"`
	DateReceived    string  `json:"dateReceived"`
	RemainingAmount float64 `json:"remainingAmount"`
	Notes           string  `json:"notes"`
}

func fundingToResponse(f *models.GovernmentFunding) FundingResponse {
	return FundingResponse{
		ID:              f.ID,
		FundingSource:   f.FundingSource,
		Stream:          f.Stream,
		AmountReceived:  f.AmountReceived,
		DateReceived:    fmtDate(f.DateReceived),
		RemainingAmount: f.RemainingAmount,
		Notes:           f.Notes,
	}
}

func (in *FundingInput) apply(f *models.GovernmentFunding) (int, error) {
	received, err := parseDate(in.DateReceived)
	if err != nil {
		return http.StatusBadRequest, err
	}
	if in.RemainingAmount < 0 || in.RemainingAmount > in.AmountReceived {
		return http.StatusBadRequest, errors.New("remainingAmount must be between 0 and amountReceived")
	}

	f.FundingSource = in.FundingSource
	f.Stream = in.Stream
	f.AmountReceived = in.AmountReceived
	f.DateReceived = received
	f.RemainingAmount = in.RemainingAmount
	f.Notes = in.Notes
	return http.StatusOK, nil
}

func ListFundingHandler(c *gin.Context) {
	var records []models.GovernmentFunding
	var totalRows int64

	baseQuery := config.DB.Model(&models.GovernmentFunding{})

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		baseQuery = baseQuery.Where(
			"LOWER(funding_source) LIKE ? OR LOWER(stream) LIKE ? OR LOWER(notes) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	if err := baseQuery.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count funding records"})
		return
	}

	if err := baseQuery.Scopes(Paginate(c)).Order("date_received DESC").Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch funding records"})
		return
	}

	data := make([]FundingResponse, 0, len(records))
	for i := range records {
		data = append(data, fundingToResponse(&records[i]))
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, data, totalRows))
}

func GetFundingHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var record models.GovernmentFunding
	if err := config.DB.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Funding record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch funding record: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, fundingToResponse(&record))
}

func CreateFundingHandler(c *gin.Context) {
	var in FundingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	var record models.GovernmentFunding
	if status, err := in.apply(&record); err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Create(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create funding record: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, fundingToResponse(&record))
}

func UpdateFundingHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var record models.GovernmentFunding
	if err := config.DB.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Funding record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch funding record: " + err.Error()})
		return
	}

	var in FundingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if status, err := in.apply(&record); err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Save(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update funding record: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, fundingToResponse(&record))
}

func DeleteFundingHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := config.DB.Delete(&models.GovernmentFunding{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete funding record"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Funding record not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Funding record deleted successfully"})
}
