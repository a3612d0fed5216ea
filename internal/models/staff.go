package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Waiter struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StaffCode string    `gorm:"uniqueIndex" json:"staff_code"`
	DNI       string    `gorm:"not null;uniqueIndex" json:"dni"`
	FirstName string    `gorm:"not null" json:"first_name"`
	LastName  string    `gorm:"not null" json:"last_name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Inactive  bool      `gorm:"not null;default:false;index" json:"inactive"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate derives the staff code from the waiter's initials and the last
// four DNI digits when none was supplied.
func (w *Waiter) BeforeCreate(tx *gorm.DB) error {
	if w.StaffCode != "" || w.FirstName == "" || w.LastName == "" || w.DNI == "" {
		return nil
	}
	first := strings.ToUpper(w.FirstName[:1])
	last := strings.ToUpper(w.LastName[:1])
	digits := w.DNI
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	w.StaffCode = first + last + digits
	return nil
}

type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"index" json:"first_name"`
	LastName  string    `gorm:"index" json:"last_name"`
	DNI       string    `gorm:"index" json:"dni"`
	Phone     string    `json:"phone"`
	Inactive  bool      `gorm:"not null;default:false;index" json:"inactive"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
