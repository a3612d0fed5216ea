package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Bikutah/ingenieria-3-grupo-2/internal/models"
	"github.com/Bikutah/ingenieria-3-grupo-2/internal/validation"
)

// Tables overlap when two active reservations for the same table and date
// are closer than this.
const overlapWindowMinutes = 120

const maxPartySize = 10

// ReservationService validates bookings against the dining-room state.
type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService { return &ReservationService{DB: db} }

// Validate checks a reservation draft. excludeID skips the reservation
// itself when revalidating an update. It returns field violations for
// operator-recoverable problems; the error is reserved for storage failures.
func (s *ReservationService) Validate(res *models.Reservation, excludeID uint) (validation.Violations, error) {
	v := validation.Violations{}
	validation.PositiveInt("party_size", res.PartySize, v)
	validation.RangeInt("party_size", res.PartySize, 1, maxPartySize, v)
	validation.PositiveID("table_id", res.TableID, v)
	validation.PositiveID("client_id", res.ClientID, v)
	if _, ok := validation.TimeOfDay("time", res.Time, v); !ok {
		return v, nil
	}
	if res.Date.Before(today()) {
		v["date"] = "cannot_be_in_the_past"
	}
	if !v.Empty() {
		return v, nil
	}

	var table models.Table
	if err := s.DB.First(&table, res.TableID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			v["table_id"] = "not_found"
			return v, nil
		}
		return nil, fmt.Errorf("load table: %w", err)
	}
	if table.Inactive {
		v["table_id"] = "inactive"
	}
	if table.Capacity < res.PartySize {
		v["party_size"] = "exceeds_table_capacity"
	}
	if !v.Empty() {
		return v, nil
	}

	ok, err := s.tableAvailable(res.TableID, res.Date, res.Time, excludeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		v["table_id"] = "not_available"
	}
	return v, nil
}

// tableAvailable reports whether no other active reservation holds the table
// on the same date within the overlap window.
func (s *ReservationService) tableAvailable(tableID uint, date time.Time, at string, excludeID uint) (bool, error) {
	var existing []models.Reservation
	q := s.DB.Where("table_id = ? AND date = ? AND inactive = ?", tableID, date, false)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Find(&existing).Error; err != nil {
		return false, fmt.Errorf("load reservations: %w", err)
	}
	want := minutesOfDay(at)
	for _, r := range existing {
		diff := want - minutesOfDay(r.Time)
		if diff < 0 {
			diff = -diff
		}
		if diff < overlapWindowMinutes {
			return false, nil
		}
	}
	return true, nil
}

func minutesOfDay(hhmm string) int {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
