// childcare-crm/models/deposit.go

package models

import (
	"time"

	"gorm.io/gorm"
)

// Deposit is a refundable amount held against a family, returned when the
// child leaves the centre.
type Deposit struct {
	gorm.Model
	FamilyID     uint       `json:"familyId" gorm:"not null;index"`
	ChildID      *uint      `json:"childId" gorm:"index"`
	Amount       float64    `json:"amount" gorm:"not null"`
	DateReceived time.Time  `json:"dateReceived" gorm:"not null"`
	Returned     bool       `json:"returned"`
	DateReturned *time.Time `json:"dateReturned"`
	Notes        string     `json:"notes"`

	Family *Family `gorm:"foreignKey:FamilyID" json:"family,omitempty"`
	Child  *Child  `gorm:"foreignKey:ChildID" json:"child,omitempty"`
}
