// childcare-crm/models/payment.go

package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment is money received from a family, optionally attributed to one
// child. ReceiptNumber is generated server-side on create.
type Payment struct {
	gorm.Model
	FamilyID      uint      `json:"familyId" gorm:"not null;index"`
	ChildID       *uint     `json:"childId" gorm:"index"`
	PaymentDate   time.Time `json:"paymentDate" gorm:"not null"`
	AmountPaid    float64   `json:"amountPaid" gorm:"not null;default:0"`
	Method        string    `json:"method" gorm:"size:20"`
	ReceiptNumber string    `json:"receiptNumber" gorm:"size:36;uniqueIndex"`
	Notes         string    `json:"notes"`

	Family *Family `gorm:"foreignKey:FamilyID" json:"family,omitempty"`
	Child  *Child  `gorm:"foreignKey:ChildID" json:"child,omitempty"`
}
