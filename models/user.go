// childcare-crm/models/user.go

package models

import "gorm.io/gorm"

// User is a staff account. Passwords are stored as bcrypt hashes.
type User struct {
	gorm.Model
	Login        string `json:"login" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	FullName     string `json:"fullName"`
}
