package services

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Bikutah/ingenieria-3-grupo-2/internal/models"
)

func seedTable(t *testing.T, db *gorm.DB, capacity int, inactive bool) models.Table {
	t.Helper()
	table := models.Table{Number: "12", Type: "interior", Capacity: capacity, SectorID: 1, Inactive: inactive}
	if err := db.Create(&table).Error; err != nil {
		t.Fatalf("seed table: %v", err)
	}
	return table
}

func futureDate() time.Time {
	d := time.Now().UTC().AddDate(0, 0, 7)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func TestReservationValidateOK(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewReservationService(db)
	table := seedTable(t, db, 6, false)

	v, err := svc.Validate(&models.Reservation{
		Date: futureDate(), Time: "21:00", PartySize: 4, TableID: table.ID, ClientID: 1,
	}, 0)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !v.Empty() {
		t.Fatalf("unexpected violations: %v", v)
	}
}

func TestReservationValidateFieldRules(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewReservationService(db)
	table := seedTable(t, db, 6, false)

	cases := []struct {
		name  string
		res   models.Reservation
		field string
	}{
		{"party size zero", models.Reservation{Date: futureDate(), Time: "21:00", PartySize: 0, TableID: table.ID, ClientID: 1}, "party_size"},
		{"party size over max", models.Reservation{Date: futureDate(), Time: "21:00", PartySize: 11, TableID: table.ID, ClientID: 1}, "party_size"},
		{"over table capacity", models.Reservation{Date: futureDate(), Time: "21:00", PartySize: 8, TableID: table.ID, ClientID: 1}, "party_size"},
		{"past date", models.Reservation{Date: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), Time: "21:00", PartySize: 2, TableID: table.ID, ClientID: 1}, "date"},
		{"bad time", models.Reservation{Date: futureDate(), Time: "25:99", PartySize: 2, TableID: table.ID, ClientID: 1}, "time"},
		{"missing client", models.Reservation{Date: futureDate(), Time: "21:00", PartySize: 2, TableID: table.ID}, "client_id"},
		{"unknown table", models.Reservation{Date: futureDate(), Time: "21:00", PartySize: 2, TableID: 999, ClientID: 1}, "table_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := svc.Validate(&tc.res, 0)
			if err != nil {
				t.Fatalf("validate: %v", err)
			}
			if _, ok := v[tc.field]; !ok {
				t.Fatalf("expected violation on %s, got %v", tc.field, v)
			}
		})
	}
}

func TestReservationOverlapWindow(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewReservationService(db)
	table := seedTable(t, db, 6, false)
	date := futureDate()

	existing := models.Reservation{Date: date, Time: "21:00", PartySize: 2, TableID: table.ID, ClientID: 1}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	// 90 minutes away: conflict
	v, err := svc.Validate(&models.Reservation{Date: date, Time: "22:30", PartySize: 2, TableID: table.ID, ClientID: 2}, 0)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if v["table_id"] != "not_available" {
		t.Fatalf("expected not_available, got %v", v)
	}

	// exactly 120 minutes away: free
	v, err = svc.Validate(&models.Reservation{Date: date, Time: "23:00", PartySize: 2, TableID: table.ID, ClientID: 2}, 0)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !v.Empty() {
		t.Fatalf("unexpected violations: %v", v)
	}

	// cancelled reservations do not block the slot
	if err := db.Model(&models.Reservation{}).Where("id = ?", existing.ID).Update("inactive", true).Error; err != nil {
		t.Fatalf("update: %v", err)
	}
	v, err = svc.Validate(&models.Reservation{Date: date, Time: "21:30", PartySize: 2, TableID: table.ID, ClientID: 2}, 0)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !v.Empty() {
		t.Fatalf("unexpected violations: %v", v)
	}
}

func TestReservationUpdateExcludesItself(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewReservationService(db)
	table := seedTable(t, db, 6, false)
	date := futureDate()

	existing := models.Reservation{Date: date, Time: "21:00", PartySize: 2, TableID: table.ID, ClientID: 1}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	// shifting its own time by 30 minutes must not collide with itself
	updated := existing
	updated.Time = "21:30"
	v, err := svc.Validate(&updated, existing.ID)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !v.Empty() {
		t.Fatalf("unexpected violations: %v", v)
	}
}
