package models

import "time"

type Reservation struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	Date      time.Time        `gorm:"not null;index" json:"date"`
	Time      string           `gorm:"not null;index" json:"time"` // HH:MM
	PartySize int              `gorm:"not null" json:"party_size"`
	TableID   uint             `gorm:"not null;index" json:"table_id"`
	ClientID  uint             `gorm:"not null;index" json:"client_id"`
	Inactive  bool             `gorm:"not null;default:false;index" json:"inactive"`
	Menu      *ReservationMenu `gorm:"foreignKey:ReservationID" json:"menu,omitempty"`
	CreatedAt time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ReservationMenu is the optional prix-fixe component agreed at booking time.
// Deposit is operator-entered; the 30% suggestion for parties of six or more
// is advisory only and never enforced here.
type ReservationMenu struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	ReservationID uint       `gorm:"not null;index" json:"reservation_id"`
	Deposit       float64    `json:"deposit"`
	Lines         []MenuLine `gorm:"foreignKey:ReservationMenuID" json:"lines"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type MenuLine struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	ReservationMenuID uint    `gorm:"not null;index" json:"reservation_menu_id"`
	ProductID         uint    `gorm:"not null;index" json:"product_id"`
	Quantity          int     `gorm:"not null" json:"quantity"`
	UnitPrice         float64 `gorm:"not null" json:"unit_price"` // snapshot, not re-fetched
}
