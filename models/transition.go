// childcare-crm/models/transition.go

package models

import (
	"time"

	"gorm.io/gorm"
)

// Transition statuses.
const (
	TransitionScheduled = "Scheduled"
	TransitionCompleted = "Completed"
	TransitionCancelled = "Cancelled"
)

// Transition is a scheduled or completed move of a child from their current
// classroom into NextClassroom, effective on TransitionDate. A child can
// have several transitions over time; the destination of the latest
// non-cancelled transition dated on or before a given day wins over the
// child's static classroom assignment.
type Transition struct {
	gorm.Model
	ChildID         uint      `json:"childId" gorm:"not null;index"`
	NextClassroomID uint      `json:"nextClassroomId" gorm:"not null;index"`
	TransitionDate  time.Time `json:"transitionDate" gorm:"not null"`
	Status          string    `json:"status" gorm:"size:20;default:Scheduled"`
	Notes           string    `json:"notes"`

	Child         *Child     `gorm:"foreignKey:ChildID" json:"child,omitempty"`
	NextClassroom *Classroom `gorm:"foreignKey:NextClassroomID" json:"nextClassroom,omitempty"`
}
