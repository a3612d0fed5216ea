package models

import "time"

// Operator account for the back office.
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Email     string `gorm:"not null;uniqueIndex" json:"email"`
	Password  string `gorm:"not null" json:"-"` // bcrypt hash
	Name      string `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
