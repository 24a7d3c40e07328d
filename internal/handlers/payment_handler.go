// childcare-crm/internal/handlers/payment_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"childcare-crm/config"
	"childcare-crm/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentInput binds create/update payloads for a payment.
type PaymentInput struct {
	FamilyID    uint    `json:"familyId" binding:"required"`
	ChildID     *uint   `json:"childId"`
	PaymentDate string  `json:"paymentDate" binding:"required"`
	AmountPaid  float64 `json:"amountPaid" binding:"required,gt=0"`
	Method      string  `json:"method" binding:"required"`
	Notes       string  `json:"notes"`
}

// PaymentResponse is the API shape of a payment record.
type PaymentResponse struct {
	ID            uint    `json:"id"`
	FamilyID      uint    `json:"familyId"`
	ChildID       *uint   `json:"childId"`
	PaymentDate   string  `json:"paymentDate"`
	AmountPaid    float64 `json:"amountPaid"`
	Method        string  `json:"method"`
	ReceiptNumber string  `json:"receiptNumber"`
	Notes         string  `json:"notes"`
}

func paymentToResponse(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		FamilyID:      p.FamilyID,
		ChildID:       p.ChildID,
		PaymentDate:   fmtDate(p.PaymentDate),
		AmountPaid:    p.AmountPaid,
		Method:        p.Method,
		ReceiptNumber: p.ReceiptNumber,
		Notes:         p.Notes,
	}
}

func (in *PaymentInput) apply(db *gorm.DB, p *models.Payment) (int, error) {
	date, err := parseDate(in.PaymentDate)
	if err != nil {
		return http.StatusBadRequest, err
	}
	if !models.ValidPaymentMethod(in.Method) {
		return http.StatusBadRequest, errors.New("invalid payment method: " + in.Method)
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

	p.FamilyID = in.FamilyID
	p.ChildID = in.ChildID
	p.PaymentDate = date
	p.AmountPaid = in.AmountPaid
	p.Method = in.Method
	p.Notes = in.Notes
	return http.StatusOK, nil
}

func ListPaymentsHandler(c *gin.Context) {
	var payments []models.Payment
	var totalRows int64

	baseQuery := config.DB.Model(&models.Payment{})

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		baseQuery = baseQuery.Where(
			"LOWER(method) LIKE ? OR LOWER(notes) LIKE ? OR LOWER(receipt_number) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	if familyIDStr := c.Query("family_id"); familyIDStr != "" {
		if familyID, err := strconv.Atoi(familyIDStr); err == nil {
			baseQuery = baseQuery.Where("family_id = ?", familyID)
		}
	}

	if err := baseQuery.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count payments"})
		return
	}

	if err := baseQuery.Scopes(Paginate(c)).Order("payment_date DESC").Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	data := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		data = append(data, paymentToResponse(&payments[i]))
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, data, totalRows))
}

func GetPaymentHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var payment models.Payment
	if err := config.DB.First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, paymentToResponse(&payment))
}

func CreatePaymentHandler(c *gin.Context) {
	var in PaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	var payment models.Payment
	if status, err := in.apply(config.DB, &payment); err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	payment.ReceiptNumber = uuid.NewString()

	if err := config.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, paymentToResponse(&payment))
}

func UpdatePaymentHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var payment models.Payment
	if err := config.DB.First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment: " + err.Error()})
		return
	}

	var in PaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if status, err := in.apply(config.DB, &payment); err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Save(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, paymentToResponse(&payment))
}

func DeletePaymentHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := config.DB.Delete(&models.Payment{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete payment"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted successfully"})
}
