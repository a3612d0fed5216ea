package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Bikutah/ingenieria-3-grupo-2/internal/models"
	"github.com/Bikutah/ingenieria-3-grupo-2/internal/validation"
)

var ErrReservationNotFound = errors.New("reservation not found")

// OrderService validates comanda drafts and derives their monetary figures.
type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService { return &OrderService{DB: db} }

// Validate checks the draft's references and lines. Field violations are
// operator-recoverable; the error reports storage failures only.
func (s *OrderService) Validate(order *models.Order) (validation.Violations, error) {
	v := validation.Violations{}
	validation.PositiveID("table_id", order.TableID, v)
	validation.PositiveID("waiter_id", order.WaiterID, v)
	if order.Date.IsZero() {
		v["date"] = "required"
	}
	if len(order.Lines) == 0 {
		v["lines"] = "required"
	}
	for i, l := range order.Lines {
		field := fmt.Sprintf("lines[%d]", i)
		if l.ProductID == 0 {
			v[field+".product_id"] = "required"
		}
		if l.Quantity <= 0 {
			v[field+".quantity"] = "must_be_positive"
		}
		if l.UnitPrice <= 0 {
			v[field+".unit_price"] = "must_be_positive"
		}
	}
	if !v.Empty() {
		return v, nil
	}

	if err := s.checkActive(&models.Table{}, order.TableID, "table_id", v); err != nil {
		return nil, err
	}
	if err := s.checkActive(&models.Waiter{}, order.WaiterID, "waiter_id", v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *OrderService) checkActive(model any, id uint, field string, v validation.Violations) error {
	err := s.DB.First(model, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		v[field] = "not_found"
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", field, err)
	}
	switch m := model.(type) {
	case *models.Table:
		if m.Inactive {
			v[field] = "inactive"
		}
	case *models.Waiter:
		if m.Inactive {
			v[field] = "inactive"
		}
	}
	return nil
}

// ApplyReservation links the draft to a reservation: the reservation's date
// and table overwrite the draft's, matching what booking promised. The
// reservation must exist and be active. Menu lines are NOT merged here — the
// caller submits the already-composed line list, so re-selecting the same
// reservation can never double-count (replace-not-add).
func (s *OrderService) ApplyReservation(order *models.Order) (validation.Violations, error) {
	v := validation.Violations{}
	if order.ReservationID == nil {
		return v, nil
	}
	var res models.Reservation
	err := s.DB.Preload("Menu.Lines").First(&res, *order.ReservationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		v["reservation_id"] = "not_found"
		return v, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load reservation: %w", err)
	}
	if res.Inactive {
		v["reservation_id"] = "inactive"
		return v, nil
	}
	order.Date = res.Date
	order.TableID = res.TableID
	return v, nil
}

// Totals computes the order's total and the balance remaining after the
// linked reservation's deposit (zero when there is no reservation or menu).
func (s *OrderService) Totals(order *models.Order) (total, remaining float64, err error) {
	deposit := 0.0
	if order.ReservationID != nil {
		var res models.Reservation
		err := s.DB.Preload("Menu").First(&res, *order.ReservationID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, fmt.Errorf("load reservation: %w", err)
		}
		if err == nil && res.Menu != nil {
			deposit = res.Menu.Deposit
		}
	}
	total, remaining = ComputeTotals(FromOrderLines(order.Lines), deposit)
	return total, remaining, nil
}
