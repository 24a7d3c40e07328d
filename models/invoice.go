// childcare-crm/models/invoice.go

package models

import (
	"time"

	"gorm.io/gorm"
)

// Invoice payment statuses. Derived from PaidAmount vs DueAmount on every
// write.
const (
	InvoicePaid          = "Paid"
	InvoiceUnpaid        = "Unpaid"
	InvoicePartiallyPaid = "Partially Paid"
)

// Invoice bills a family for a period, optionally for one child.
// SubsidyAmount is the government-covered portion, nil when no subsidy
// applies.
type Invoice struct {
	gorm.Model
	FamilyID      uint       `json:"familyId" gorm:"not null;index"`
	ChildID       *uint      `json:"childId" gorm:"index"`
	DateIssued    time.Time  `json:"dateIssued" gorm:"not null"`
	DueDate       time.Time  `json:"dueDate" gorm:"not null"`
	DueAmount     float64    `json:"dueAmount" gorm:"not null"`
	SubsidyAmount *float64   `json:"subsidyAmount"`
	PaidAmount    float64    `json:"paidAmount" gorm:"not null;default:0"`
	PaymentStatus string     `json:"paymentStatus" gorm:"size:20;default:Unpaid"`
	Notes         string     `json:"notes"`

	Family *Family `gorm:"foreignKey:FamilyID" json:"family,omitempty"`
	Child  *Child  `gorm:"foreignKey:ChildID" json:"child,omitempty"`
}
