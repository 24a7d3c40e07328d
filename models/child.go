// childcare-crm/models/child.go

package models

import (
	"time"

	"gorm.io/gorm"
)

// Child represents an enrolled (or formerly enrolled) child.
// EnrollmentStartDate/EnrollmentEndDate form the inclusive enrollment
// interval; a nil end date means the enrollment is open-ended.
type Child struct {
	gorm.Model
	FamilyID            uint       `json:"familyId" gorm:"not null;index"`
	ClassroomID         *uint      `json:"classroomId" gorm:"index"`
	FirstName           string     `json:"firstName" gorm:"not null"`
	LastName            string     `json:"lastName" gorm:"not null"`
	DateOfBirth         time.Time  `json:"dateOfBirth" gorm:"not null"`
	AllergyInfo         string     `json:"allergyInfo"`
	EmergencyContact    string     `json:"emergencyContact"`
	EnrollmentStartDate time.Time  `json:"enrollmentStartDate" gorm:"not null"`
	EnrollmentEndDate   *time.Time `json:"enrollmentEndDate"`
	Notes               string     `json:"notes"`

	Family    *Family    `gorm:"foreignKey:FamilyID" json:"family,omitempty"`
	Classroom *Classroom `gorm:"foreignKey:ClassroomID" json:"classroom,omitempty"`
}
