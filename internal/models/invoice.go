package models

import "time"

// Invoice states. Pending is the only state that admits a transition; paid,
// cancelled and voided are terminal.
const (
	InvoicePending   = "pending"
	InvoicePaid      = "paid"
	InvoiceCancelled = "cancelled"
	InvoiceVoided    = "voided"
)

// Accepted payment methods.
const (
	PayTransfer = "transfer"
	PayDebit    = "debit"
	PayCredit   = "credit"
	PayCash     = "cash"
)

var PaymentMethods = []string{PayTransfer, PayDebit, PayCredit, PayCash}

type Invoice struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	OrderID       uint          `gorm:"not null;index" json:"order_id"`
	IssuedAt      time.Time     `gorm:"not null;index" json:"issued_at"`
	Total         float64       `gorm:"not null" json:"total"`
	PaymentMethod string        `gorm:"not null" json:"payment_method"`
	Status        string        `gorm:"not null;default:'pending';index" json:"status"`
	Lines         []InvoiceLine `gorm:"foreignKey:InvoiceID" json:"lines"`
	CreatedAt     time.Time     `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// InvoiceLine snapshots an order line at invoicing time; later catalog or
// order edits do not touch it.
type InvoiceLine struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	InvoiceID uint    `gorm:"not null;index" json:"invoice_id"`
	ProductID uint    `gorm:"not null;index" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	UnitPrice float64 `gorm:"not null" json:"unit_price"`
	Subtotal  float64 `gorm:"not null" json:"subtotal"`
}
