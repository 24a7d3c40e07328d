// childcare-crm/models/withdrawal.go

package models

import (
	"time"

	"gorm.io/gorm"
)

// Withdrawal records a child leaving the centre. At most one per child.
// Creating or updating one sets the child's enrollment end date to
// WithdrawalDate; deleting it clears the end date back to open-ended.
type Withdrawal struct {
	gorm.Model
	ChildID        uint      `json:"childId" gorm:"not null;uniqueIndex"`
	WithdrawalDate time.Time `json:"withdrawalDate" gorm:"not null"`
	Reason         string    `json:"reason"`
	Notes          string    `json:"notes"`

	Child *Child `gorm:"foreignKey:ChildID" json:"child,omitempty"`
}
