// childcare-crm/internal/handlers/subsidy_rate_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"childcare-crm/config"
	"childcare-crm/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SubsidyRateInput binds create/update payloads for a subsidy rate. When
// dailyGovernmentRate is omitted it is derived as tuition minus parent cap.
type SubsidyRateInput struct {
	ProgramType         string   `json:"programType" binding:"required"`
	DailyTuitionRate    float64  `json:"dailyTuitionRate" binding:"required,gt=0"`
	DailyParentRate     float64  `json:"dailyParentRate" binding:"required,gt=0"`
	DailyGovernmentRate *float64 `json:"dailyGovernmentRate"`
}

// SubsidyRateResponse is the API shape of a subsidy rate record.
type SubsidyRateResponse struct {
	ID                  uint    `json:"id"`
	ProgramType         string  `json:"programType"`
	DailyTuitionRate    float64 `json:"dailyTuitionRate"`
	DailyParentRate     float64 `json:"dailyParentRate"`
	DailyGovernmentRate float64 `json:"dailyGovernmentRate"`
}

func subsidyRateToResponse(r *models.SubsidyRate) SubsidyRateResponse {
	return SubsidyRateResponse{
		ID:                  r.ID,
		ProgramType:         r.ProgramType,
		DailyTuitionRate:    r.DailyTuitionRate,
		DailyParentRate:     r.DailyParentRate,
		DailyGovernmentRate: r.DailyGovernmentRate,
	}
}

// DeriveGovernmentRate computes the government-covered daily portion as
// tuition minus the parent cap, in decimal arithmetic so that rates like
// 110.19 - 22 come out as exactly 88.19.
func DeriveGovernmentRate(dailyTuitionRate, dailyParentRate float64) float64 {
	rate := decimal.NewFromFloat(dailyTuitionRate).Sub(decimal.NewFromFloat(dailyParentRate))
	return rate.InexactFloat64()
}

func (in *SubsidyRateInput) apply(r *models.SubsidyRate) (int, error) {
	if !validProgramType(in.ProgramType) {
		return http.StatusBadRequest, errors.New("invalid program type: " + in.ProgramType)
	}
	if in.DailyParentRate > in.DailyTuitionRate {
		return http.StatusBadRequest, errors.New("dailyParentRate must not exceed dailyTuitionRate")
	}

	r.ProgramType = in.ProgramType
	r.DailyTuitionRate = in.DailyTuitionRate
	r.DailyParentRate = in.DailyParentRate
	if in.DailyGovernmentRate != nil {
		r.DailyGovernmentRate = *in.DailyGovernmentRate
	} else {
		r.DailyGovernmentRate = DeriveGovernmentRate(in.DailyTuitionRate, in.DailyParentRate)
	}
	return http.StatusOK, nil
}

func ListSubsidyRatesHandler(c *gin.Context) {
	var rates []models.SubsidyRate
	if err := config.DB.Order("program_type").Find(&rates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subsidy rates"})
		return
	}

	data := make([]SubsidyRateResponse, 0, len(rates))
	for i := range rates {
		data = append(data, subsidyRateToResponse(&rates[i]))
	}

	c.JSON(http.StatusOK, gin.H{"data": data})
}

func GetSubsidyRateHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var rate models.SubsidyRate
	if err := config.DB.First(&rate, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subsidy rate not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subsidy rate: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, subsidyRateToResponse(&rate))
}

func CreateSubsidyRateHandler(c *gin.Context) {
	var in SubsidyRateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	var rate models.SubsidyRate
	if status, err := in.apply(&rate); err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Create(&rate).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			c.JSON(http.StatusConflict, gin.H{"error": "A subsidy rate for this program type already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subsidy rate: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, subsidyRateToResponse(&rate))
}

func UpdateSubsidyRateHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var rate models.SubsidyRate
	if err := config.DB.First(&rate, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subsidy rate not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subsidy rate: " + err.Error()})
		return
	}

	var in SubsidyRateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if status, err := in.apply(&rate); err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Save(&rate).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subsidy rate: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, subsidyRateToResponse(&rate))
}

func DeleteSubsidyRateHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := config.DB.Delete(&models.SubsidyRate{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete subsidy rate"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subsidy rate not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subsidy rate deleted successfully"})
}
