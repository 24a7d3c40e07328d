// childcare-crm/models/attendance.go

package models

import (
	"time"

	"gorm.io/gorm"
)

// Attendance is a manually recorded daily snapshot for a classroom. The
// computed roster endpoints do not read these rows; they exist for staff
// record keeping.
type Attendance struct {
	gorm.Model
	ClassroomID      uint      `json:"classroomId" gorm:"not null;index"`
	Date             time.Time `json:"date" gorm:"not null"`
	MaxCapacity      int       `json:"maxCapacity"`
	EnrolledChildren int       `json:"enrolledChildren"`
	Notes            string    `json:"notes"`

	Classroom *Classroom `gorm:"foreignKey:ClassroomID" json:"classroom,omitempty"`
}
