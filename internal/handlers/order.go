package handlers

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/Bikutah/ingenieria-3-grupo-2/internal/httpx"
	"github.com/Bikutah/ingenieria-3-grupo-2/internal/listing"
	"github.com/Bikutah/ingenieria-3-grupo-2/internal/models"
	"github.com/Bikutah/ingenieria-3-grupo-2/internal/services"
	"github.com/Bikutah/ingenieria-3-grupo-2/internal/validation"
)

// OrderHandler serves /orders. The client submits the fully composed line
// list (reservation menu already folded in), so updates replace lines rather
// than merge them.
type OrderHandler struct {
	DB  *gorm.DB
	Svc *services.OrderService
}

func NewOrderHandler(db *gorm.DB) *OrderHandler {
	return &OrderHandler{DB: db, Svc: services.NewOrderService(db)}
}

var orderListing = listing.Options{
	Filterable:   []string{"id", "table_id", "waiter_id", "reservation_id", "date", "inactive"},
	DefaultOrder: "id desc",
	Preloads:     []string{"Lines"},
}

type orderLineInput struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type orderInput struct {
	TableID       uint             `json:"table_id"`
	WaiterID      uint             `json:"waiter_id"`
	ReservationID *uint            `json:"reservation_id"`
	Date          string           `json:"date"` // YYYY-MM-DD
	Lines         []orderLineInput `json:"lines"`
}

// orderResponse decorates the stored order with its derived figures.
type orderResponse struct {
	models.Order
	Total     float64 `json:"total"`
	Remaining float64 `json:"remaining"`
}

func (in *orderInput) toModel(v validation.Violations) *models.Order {
	o := &models.Order{
		TableID:       in.TableID,
		WaiterID:      in.WaiterID,
		ReservationID: in.ReservationID,
	}
	validation.Required("date", in.Date, v)
	if in.Date != "" {
		if d, ok := validation.Date("date", in.Date, v); ok {
			o.Date = d
		}
	}
	for _, l := range in.Lines {
		o.Lines = append(o.Lines, models.OrderLine{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	return o
}

func (h *OrderHandler) Register(mux *http.ServeMux, wrap func(http.HandlerFunc) http.Handler) {
	mux.Handle("GET /orders", wrap(h.List))
	mux.Handle("POST /orders", wrap(h.Create))
	mux.Handle("GET /orders/{id}", wrap(h.Get))
	mux.Handle("PUT /orders/{id}", wrap(h.Update))
	mux.Handle("DELETE /orders/{id}", wrap(h.Delete))
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := listing.List[models.Order](h.DB, r.URL.Query(), orderListing)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, page)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var o models.Order
	if err := h.DB.Preload("Lines").First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "load_failed", nil)
		return
	}
	h.respond(w, http.StatusOK, &o)
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in orderInput
	if err := httpx.Decode(r, &in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	o := in.toModel(v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if !h.validate(w, o) {
		return
	}
	if err := h.DB.Create(o).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "create_failed", nil)
		return
	}
	h.respond(w, http.StatusCreated, o)
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var existing models.Order
	if err := h.DB.Preload("Lines").First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "load_failed", nil)
		return
	}
	var in orderInput
	if err := httpx.Decode(r, &in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	o := in.toModel(v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	o.ID = id
	o.Inactive = existing.Inactive
	if !h.validate(w, o) {
		return
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderLine{}).Error; err != nil {
			return err
		}
		updates := map[string]any{
			"table_id":       o.TableID,
			"waiter_id":      o.WaiterID,
			"reservation_id": o.ReservationID,
			"date":           o.Date,
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		for i := range o.Lines {
			o.Lines[i].ID = 0
			o.Lines[i].OrderID = id
		}
		return tx.Create(&o.Lines).Error
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}
	h.respond(w, http.StatusOK, o)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	res := h.DB.Model(&models.Order{}).Where("id = ?", id).Update("inactive", true)
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

// validate runs the reservation link and the draft checks, writing the error
// response itself. Returns false when the request is already answered.
func (h *OrderHandler) validate(w http.ResponseWriter, o *models.Order) bool {
	v, err := h.Svc.ApplyReservation(o)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "validation_error", nil)
		return false
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return false
	}
	v, err = h.Svc.Validate(o)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "validation_error", nil)
		return false
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return false
	}
	return true
}

func (h *OrderHandler) respond(w http.ResponseWriter, status int, o *models.Order) {
	total, remaining, err := h.Svc.Totals(o)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "totals_failed", nil)
		return
	}
	httpx.JSON(w, status, orderResponse{Order: *o, Total: total, Remaining: remaining})
}
