package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Bikutah/ingenieria-3-grupo-2/internal/models"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderEmpty        = errors.New("order has no billable lines")
	ErrOrderInactive     = errors.New("order is inactive")
	ErrInvoiceNotFound   = errors.New("invoice not found")
	ErrInvoiceNotPending = errors.New("invoice is not pending")
)

// InvoiceService derives invoices from orders and owns the lifecycle state
// machine: pending may move to paid, cancelled or voided; all three are
// terminal.
type InvoiceService struct {
	DB *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService { return &InvoiceService{DB: db} }

// CreateFromOrder snapshots the order's billable lines into a pending
// invoice. The invoice total is the deposit-adjusted remaining balance: the
// amount the operator actually has left to collect once the reservation's
// deposit (if any) is subtracted.
func (s *InvoiceService) CreateFromOrder(orderID uint, method string) (*models.Invoice, error) {
	var order models.Order
	if err := s.DB.Preload("Lines").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("load order: %w", err)
	}
	if order.Inactive {
		return nil, ErrOrderInactive
	}

	lines := SerializableLines(FromOrderLines(order.Lines))
	if len(lines) == 0 {
		return nil, ErrOrderEmpty
	}

	deposit, err := s.depositFor(&order)
	if err != nil {
		return nil, err
	}
	_, remaining := ComputeTotals(lines, deposit)

	inv := models.Invoice{
		OrderID:       order.ID,
		IssuedAt:      time.Now().UTC(),
		Total:         remaining,
		PaymentMethod: method,
		Status:        models.InvoicePending,
	}
	for _, l := range lines {
		inv.Lines = append(inv.Lines, models.InvoiceLine{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  float64(l.Quantity) * l.UnitPrice,
		})
	}
	if err := s.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&inv).Error
	}); err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return &inv, nil
}

func (s *InvoiceService) depositFor(order *models.Order) (float64, error) {
	if order.ReservationID == nil {
		return 0, nil
	}
	var res models.Reservation
	err := s.DB.Preload("Menu").First(&res, *order.ReservationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load reservation: %w", err)
	}
	if res.Menu == nil {
		return 0, nil
	}
	return res.Menu.Deposit, nil
}

// Pay moves a pending invoice to paid.
func (s *InvoiceService) Pay(id uint) (*models.Invoice, error) {
	return s.transition(id, models.InvoicePaid)
}

// Cancel moves a pending invoice to cancelled.
func (s *InvoiceService) Cancel(id uint) (*models.Invoice, error) {
	return s.transition(id, models.InvoiceCancelled)
}

// Void moves a pending invoice to voided.
func (s *InvoiceService) Void(id uint) (*models.Invoice, error) {
	return s.transition(id, models.InvoiceVoided)
}

func (s *InvoiceService) transition(id uint, target string) (*models.Invoice, error) {
	var inv models.Invoice
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Lines").First(&inv, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvoiceNotFound
			}
			return fmt.Errorf("load invoice: %w", err)
		}
		if inv.Status != models.InvoicePending {
			return ErrInvoiceNotPending
		}
		inv.Status = target
		return tx.Model(&models.Invoice{}).Where("id = ?", inv.ID).Update("status", target).Error
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
