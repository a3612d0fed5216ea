package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"github.com/Bikutah/ingenieria-3-grupo-2/internal/httpx"
	"github.com/Bikutah/ingenieria-3-grupo-2/internal/listing"
	"github.com/Bikutah/ingenieria-3-grupo-2/internal/models"
	"github.com/Bikutah/ingenieria-3-grupo-2/internal/services"
	"github.com/Bikutah/ingenieria-3-grupo-2/internal/validation"
)

// ReservationHandler serves /reservations. A reservation optionally carries a
// prix-fixe menu with a deposit; updates replace the menu wholesale.
type ReservationHandler struct {
	DB  *gorm.DB
	Svc *services.ReservationService
}

func NewReservationHandler(db *gorm.DB) *ReservationHandler {
	return &ReservationHandler{DB: db, Svc: services.NewReservationService(db)}
}

var reservationListing = listing.Options{
	Filterable:   []string{"id", "date", "time", "party_size", "table_id", "client_id", "inactive"},
	DefaultOrder: "date desc, time desc",
	Preloads:     []string{"Menu.Lines"},
}

type menuLineInput struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type menuInput struct {
	Deposit float64         `json:"deposit"`
	Lines   []menuLineInput `json:"lines"`
}

type reservationInput struct {
	Date      string     `json:"date"` // YYYY-MM-DD
	Time      string     `json:"time"` // HH:MM
	PartySize int        `json:"party_size"`
	TableID   uint       `json:"table_id"`
	ClientID  uint       `json:"client_id"`
	Menu      *menuInput `json:"menu"`
}

func (in *reservationInput) toModel(v validation.Violations) *models.Reservation {
	res := &models.Reservation{
		Time:      in.Time,
		PartySize: in.PartySize,
		TableID:   in.TableID,
		ClientID:  in.ClientID,
	}
	validation.Required("date", in.Date, v)
	if in.Date != "" {
		if d, ok := validation.Date("date", in.Date, v); ok {
			res.Date = d
		}
	}
	if in.Menu != nil {
		validation.NonNegativeFloat("menu.deposit", in.Menu.Deposit, v)
		menu := &models.ReservationMenu{Deposit: in.Menu.Deposit}
		for i, l := range in.Menu.Lines {
			field := fmt.Sprintf("menu.lines[%d]", i)
			validation.PositiveID(field+".product_id", l.ProductID, v)
			validation.PositiveInt(field+".quantity", l.Quantity, v)
			validation.PositiveFloat(field+".unit_price", l.UnitPrice, v)
			menu.Lines = append(menu.Lines, models.MenuLine{
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				UnitPrice: l.UnitPrice,
			})
		}
		res.Menu = menu
	}
	return res
}

func (h *ReservationHandler) Register(mux *http.ServeMux, wrap func(http.HandlerFunc) http.Handler) {
	mux.Handle("GET /reservations", wrap(h.List))
	mux.Handle("POST /reservations", wrap(h.Create))
	mux.Handle("GET /reservations/{id}", wrap(h.Get))
	mux.Handle("PUT /reservations/{id}", wrap(h.Update))
	mux.Handle("DELETE /reservations/{id}", wrap(h.Delete))
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := listing.List[models.Reservation](h.DB, r.URL.Query(), reservationListing)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, page)
}

func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var res models.Reservation
	if err := h.DB.Preload("Menu.Lines").First(&res, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "load_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in reservationInput
	if err := httpx.Decode(r, &in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	res := in.toModel(v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	v, err := h.Svc.Validate(res, 0)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "validation_error", nil)
		return
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if err := h.DB.Create(res).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, res)
}

// Update revalidates the whole booking (excluding itself from the overlap
// check) and replaces the menu with whatever the body carries, dropped menu
// included.
func (h *ReservationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var existing models.Reservation
	if err := h.DB.Preload("Menu.Lines").First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "load_failed", nil)
		return
	}
	var in reservationInput
	if err := httpx.Decode(r, &in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	res := in.toModel(v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	res.ID = id
	res.Inactive = existing.Inactive
	v, err := h.Svc.Validate(res, id)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "validation_error", nil)
		return
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if existing.Menu != nil {
			if err := tx.Where("reservation_menu_id = ?", existing.Menu.ID).Delete(&models.MenuLine{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.ReservationMenu{}, existing.Menu.ID).Error; err != nil {
				return err
			}
		}
		updates := map[string]any{
			"date":       res.Date,
			"time":       res.Time,
			"party_size": res.PartySize,
			"table_id":   res.TableID,
			"client_id":  res.ClientID,
		}
		if err := tx.Model(&models.Reservation{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		if res.Menu != nil {
			res.Menu.ReservationID = id
			return tx.Create(res.Menu).Error
		}
		return nil
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

func (h *ReservationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	res := h.DB.Model(&models.Reservation{}).Where("id = ?", id).Update("inactive", true)
	if res.Error != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "delete_failed", nil)
		return
	}
	if res.RowsAffected == 0 {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"id": id, "inactive": true})
}
