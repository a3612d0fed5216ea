package models

import "time"

// Order is a comanda: the table's running product list taken by a waiter,
// optionally seeded from a reservation's menu.
type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	TableID       uint        `gorm:"not null;index" json:"table_id"`
	WaiterID      uint        `gorm:"not null;index" json:"waiter_id"`
	ReservationID *uint       `gorm:"index" json:"reservation_id,omitempty"`
	Date          time.Time   `gorm:"not null;index" json:"date"`
	Inactive      bool        `gorm:"not null;default:false;index" json:"inactive"`
	Lines         []OrderLine `gorm:"foreignKey:OrderID" json:"lines"`
	CreatedAt     time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type OrderLine struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"not null;index" json:"order_id"`
	ProductID uint    `gorm:"not null;index" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	UnitPrice float64 `gorm:"not null" json:"unit_price"`
}
