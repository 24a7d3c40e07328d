// childcare-crm/models/subsidy_rate.go

package models

import "gorm.io/gorm"

// SubsidyRate is the per-program daily tuition split between the parent-paid
// portion and the government (CWELCC) subsidy. DailyGovernmentRate is
// derived: tuition minus parent cap, recomputed on every write unless the
// caller supplies it explicitly.
type SubsidyRate struct {
	gorm.Model
	ProgramType         string  `json:"programType" gorm:"size:20;uniqueIndex;not null"`
	DailyTuitionRate    float64 `json:"dailyTuitionRate" gorm:"not null"`
	DailyParentRate     float64 `json:"dailyParentRate" gorm:"not null"`
	DailyGovernmentRate float64 `json:"dailyGovernmentRate"`
}
