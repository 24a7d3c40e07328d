// childcare-crm/models/funding.go

package models

import (
	"time"

	"gorm.io/gorm"
)

// GovernmentFunding tracks a grant received from a funding body and how much
// of it remains unallocated.
type GovernmentFunding struct {
	gorm.Model
	FundingSource   string    `json:"fundingSource" gorm:"not null"`
	Stream          string    `json:"stream"`
	AmountReceived  float64   `json:"amountReceived" gorm:"not null"`
	DateReceived    time.Time `json:"dateReceived" gorm:"not null"`
	RemainingAmount float64   `json:"remainingAmount" gorm:"default:0"`
	Notes           string    `json:"notes"`
}
