package models

import "time"

// Dining-room layout entities.

type Sector struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	Number    string    `json:"number"`
	Inactive  bool      `gorm:"not null;default:false;index" json:"inactive"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Table struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Number    string    `gorm:"index" json:"number"`
	Type      string    `json:"type"`
	Capacity  int       `gorm:"not null" json:"capacity"`
	SectorID  uint      `gorm:"not null;index" json:"sector_id"`
	Sector    *Sector   `gorm:"foreignKey:SectorID" json:"sector,omitempty"`
	Inactive  bool      `gorm:"not null;default:false;index" json:"inactive"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Catalog entities.

type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	Type      string    `gorm:"index" json:"type"` // plato, bebida, postre...
	UnitPrice float64   `gorm:"not null" json:"unit_price"`
	Inactive  bool      `gorm:"not null;default:false;index" json:"inactive"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MenuCard is a named carte grouping offered to guests.
type MenuCard struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	Inactive  bool      `gorm:"not null;default:false;index" json:"inactive"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
