// childcare-crm/models/classroom.go

package models

import "gorm.io/gorm"

// Program types offered by the centre.
const (
	ProgramInfant    = "Infant"
	ProgramToddler   = "Toddler"
	ProgramPreschool = "Preschool"
)

// Classroom is a physical room with a licensed capacity for its primary
// program type.
type Classroom struct {
	gorm.Model
	ClassroomName string `json:"classroomName" gorm:"not null"`
	ProgramType   string `json:"programType" gorm:"size:20"`
	MaxCapacity   int    `json:"maxCapacity" gorm:"not null"`
	Notes         string `json:"notes"`

	AlternativeCapacities []AlternativeCapacity `gorm:"foreignKey:ClassroomID" json:"alternativeCapacities,omitempty"`
}

// AlternativeCapacity records the licensed capacity of a classroom when it
// is operated under a different program type than its primary one.
type AlternativeCapacity struct {
	gorm.Model
	ClassroomID uint   `json:"classroomId" gorm:"not null;index"`
	ProgramType string `json:"programType" gorm:"size:20;not null"`
	MaxCapacity int    `json:"maxCapacity" gorm:"not null"`
}
