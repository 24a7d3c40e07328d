// childcare-crm/internal/handlers/invoice_handler.go
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

// InvoiceInput binds create/update payloads for an invoice. PaymentStatus is
// never accepted from the client; it is derived from the amounts.
type InvoiceInput struct {
	FamilyID      uint     `json:"familyId" binding:"required"`
	ChildID       *uint    `json:"childId"`
	DateIssued    string   `json:"dateIssued" binding:"required"`
	DueDate       string   `json:"dueDate" binding:"required"`
	DueAmount     float64  `json:"dueAmount" binding:"required,gt=0"`
	SubsidyAmount *float64 `json:"subsidyAmount"`
	PaidAmount    float64  `json:"paidAmount"`
	Notes         string   `json:"notes"`
}

// InvoiceResponse is the API shape of an invoice record.
type InvoiceResponse struct {
	ID            uint     `json:"id"`
	FamilyID      uint     `json:"familyId"`
	ChildID       *uint    `json:"childId"`
	DateIssued    string   `json:"dateIssued"`
	DueDate       string   `json:"dueDate"`
	DueAmount     float64  `json:"dueAmount"`
	SubsidyAmount *float64 `json:"subsidyAmount"`
	PaidAmount    float64  `json:"paidAmount"`
	PaymentStatus string   `json:"paymentStatus"`
	Notes         string   `json:"notes"`
}

func invoiceToResponse(inv *models.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            inv.ID,
		FamilyID:      inv.FamilyID,
		ChildID:       inv.ChildID,
		DateIssued:    fmtDate(inv.DateIssued),
		DueDate:       fmtDate(inv.DueDate),
		DueAmount:     inv.DueAmount,
		SubsidyAmount: inv.SubsidyAmount,
		PaidAmount:    inv.PaidAmount,
		PaymentStatus: inv.PaymentStatus,
		Notes:         inv.Notes,
	}
}

// invoiceStatus derives the payment status from the paid vs due amounts.
func invoiceStatus(paid, due float64) string {
	switch {
	case paid <= 0:
		return models.InvoiceUnpaid
	case paid < due:
		return models.InvoicePartiallyPaid
	default:
		return models.InvoicePaid
	}
}

func (in *InvoiceInput) apply(db *gorm.DB, inv *models.Invoice) (int, error) {
	issued, err := parseDate(in.DateIssued)
	if err != nil {
		return http.StatusBadRequest, err
	}
	due, err := parseDate(in.DueDate)
	if err != nil {
		return http.StatusBadRequest, err
	}
	if in.PaidAmount < 0 {
		return http.StatusBadRequest, errors.New("paidAmount must not be negative")
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

	inv.FamilyID = in.FamilyID
	inv.ChildID = in.ChildID
	inv.DateIssued = issued
	inv.DueDate = due
	inv.DueAmount = in.DueAmount
	inv.SubsidyAmount = in.SubsidyAmount
	inv.PaidAmount = in.PaidAmount
	inv.PaymentStatus = invoiceStatus(in.PaidAmount, in.DueAmount)
	inv.Notes = in.Notes
	return http.StatusOK, nil
}

func ListInvoicesHandler(c *gin.Context) {
	var invoices []models.Invoice
	var totalRows int64

	baseQuery := config.DB.Model(&models.Invoice{})

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		baseQuery = baseQuery.Where("LOWER(notes) LIKE ? OR LOWER(payment_status) LIKE ?", pattern, pattern)
	}

	if status := c.Query("status"); status != "" {
		baseQuery = baseQuery.Where("payment_status = ?", status)
	}
	if familyIDStr := c.Query("family_id"); familyIDStr != "" {
		if familyID, err := strconv.Atoi(familyIDStr); err == nil {
			baseQuery = baseQuery.Where("family_id = ?", familyID)
		}
	}

	if err := baseQuery.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count invoices"})
		return
	}

	if err := baseQuery.Scopes(Paginate(c)).Order("date_issued DESC").Find(&invoices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoices"})
		return
	}

	data := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		data = append(data, invoiceToResponse(&invoices[i]))
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, data, totalRows))
}

func GetInvoiceHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var invoice models.Invoice
	if err := config.DB.First(&invoice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoice: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, invoiceToResponse(&invoice))
}

func CreateInvoiceHandler(c *gin.Context) {
	var in InvoiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	var invoice models.Invoice
	if status, err := in.apply(config.DB, &invoice); err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Create(&invoice).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invoice: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, invoiceToResponse(&invoice))
}

func UpdateInvoiceHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var invoice models.Invoice
	if err := config.DB.First(&invoice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoice: " + err.Error()})
		return
	}

	var in InvoiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if status, err := in.apply(config.DB, &invoice); err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Save(&invoice).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update invoice: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, invoiceToResponse(&invoice))
}

func DeleteInvoiceHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := config.DB.Delete(&models.Invoice{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete invoice"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted successfully"})
}
