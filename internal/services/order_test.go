package services

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Bikutah/ingenieria-3-grupo-2/internal/models"
)

func seedWaiter(t *testing.T, db *gorm.DB, inactive bool) models.Waiter {
	t.Helper()
	w := models.Waiter{FirstName: "Ana", LastName: "Gomez", DNI: "30123456", Inactive: inactive}
	if err := db.Create(&w).Error; err != nil {
		t.Fatalf("seed waiter: %v", err)
	}
	return w
}

func TestOrderValidateOK(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)
	table := seedTable(t, db, 4, false)
	waiter := seedWaiter(t, db, false)

	order := models.Order{
		TableID:  table.ID,
		WaiterID: waiter.ID,
		Date:     time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Lines:    []models.OrderLine{{ProductID: 1, Quantity: 2, UnitPrice: 500}},
	}
	v, err := svc.Validate(&order)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !v.Empty() {
		t.Fatalf("unexpected violations: %v", v)
	}
}

func TestOrderValidateRejectsBadLines(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)
	table := seedTable(t, db, 4, false)
	waiter := seedWaiter(t, db, false)

	order := models.Order{
		TableID:  table.ID,
		WaiterID: waiter.ID,
		Date:     time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Lines:    []models.OrderLine{{ProductID: 1, Quantity: 0, UnitPrice: 500}},
	}
	v, err := svc.Validate(&order)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if v["lines[0].quantity"] != "must_be_positive" {
		t.Fatalf("expected quantity violation, got %v", v)
	}

	order.Lines = nil
	v, err = svc.Validate(&order)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if v["lines"] != "required" {
		t.Fatalf("expected lines violation, got %v", v)
	}
}

func TestOrderValidateInactiveReferences(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)
	table := seedTable(t, db, 4, true)
	waiter := seedWaiter(t, db, true)

	order := models.Order{
		TableID:  table.ID,
		WaiterID: waiter.ID,
		Date:     time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Lines:    []models.OrderLine{{ProductID: 1, Quantity: 1, UnitPrice: 100}},
	}
	v, err := svc.Validate(&order)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if v["table_id"] != "inactive" || v["waiter_id"] != "inactive" {
		t.Fatalf("expected inactive violations, got %v", v)
	}
}

func TestApplyReservationOverwritesDateAndTable(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)
	res := seedReservationWithMenu(t, db, 0)

	order := models.Order{
		TableID:       99,
		WaiterID:      1,
		ReservationID: &res.ID,
		Date:          time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Lines:         []models.OrderLine{{ProductID: 1, Quantity: 1, UnitPrice: 100}},
	}
	v, err := svc.ApplyReservation(&order)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !v.Empty() {
		t.Fatalf("unexpected violations: %v", v)
	}
	if order.TableID != res.TableID {
		t.Fatalf("table not overwritten: %d", order.TableID)
	}
	if !order.Date.Equal(res.Date) {
		t.Fatalf("date not overwritten: %v", order.Date)
	}
}

func TestApplyReservationRejectsInactive(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)
	res := seedReservationWithMenu(t, db, 0)
	if err := db.Model(&models.Reservation{}).Where("id = ?", res.ID).Update("inactive", true).Error; err != nil {
		t.Fatalf("update: %v", err)
	}

	order := models.Order{ReservationID: &res.ID}
	v, err := svc.ApplyReservation(&order)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if v["reservation_id"] != "inactive" {
		t.Fatalf("expected inactive violation, got %v", v)
	}
}

// A reservation without a menu contributes nothing: lines stay as submitted
// and the deposit is zero.
func TestTotalsReservationWithoutMenu(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)

	res := models.Reservation{
		Date: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), Time: "20:00",
		PartySize: 2, TableID: 1, ClientID: 1,
	}
	if err := db.Create(&res).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	order := seedOrder(t, db, &res.ID, models.OrderLine{ProductID: 1, Quantity: 2, UnitPrice: 500})

	total, remaining, err := svc.Totals(&order)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if total != 1000 || remaining != 1000 {
		t.Fatalf("expected 1000/1000 got %v/%v", total, remaining)
	}
}

func TestTotalsWithDeposit(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)
	res := seedReservationWithMenu(t, db, 1500)
	order := seedOrder(t, db, &res.ID,
		models.OrderLine{ProductID: 1, Quantity: 2, UnitPrice: 500},
		models.OrderLine{ProductID: 2, Quantity: 6, UnitPrice: 300},
	)

	total, remaining, err := svc.Totals(&order)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if total != 2800 || remaining != 1300 {
		t.Fatalf("expected 2800/1300 got %v/%v", total, remaining)
	}
}
