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

// InvoiceHandler serves /invoices. Invoices are derived from orders, never
// edited; the only mutations are the pending-state transitions.
type InvoiceHandler struct {
	DB  *gorm.DB
	Svc *services.InvoiceService
}

func NewInvoiceHandler(db *gorm.DB) *InvoiceHandler {
	return &InvoiceHandler{DB: db, Svc: services.NewInvoiceService(db)}
}

var invoiceListing = listing.Options{
	Filterable:   []string{"id", "order_id", "status", "payment_method", "total", "issued_at"},
	DefaultOrder: "issued_at desc",
	Preloads:     []string{"Lines"},
}

type invoiceInput struct {
	OrderID       uint   `json:"order_id"`
	PaymentMethod string `json:"payment_method"`
}

func (h *InvoiceHandler) Register(mux *http.ServeMux, wrap func(http.HandlerFunc) http.Handler) {
	mux.Handle("GET /invoices", wrap(h.List))
	mux.Handle("POST /invoices", wrap(h.Create))
	mux.Handle("GET /invoices/{id}", wrap(h.Get))
	mux.Handle("POST /invoices/{id}/pay", wrap(h.Pay))
	mux.Handle("POST /invoices/{id}/cancel", wrap(h.Cancel))
	mux.Handle("POST /invoices/{id}/void", wrap(h.Void))
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := listing.List[models.Invoice](h.DB, r.URL.Query(), invoiceListing)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, page)
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var inv models.Invoice
	if err := h.DB.Preload("Lines").First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "load_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in invoiceInput
	if err := httpx.Decode(r, &in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.PositiveID("order_id", in.OrderID, v)
	validation.Required("payment_method", in.PaymentMethod, v)
	if in.PaymentMethod != "" {
		validation.OneOf("payment_method", in.PaymentMethod, models.PaymentMethods, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	inv, err := h.Svc.CreateFromOrder(in.OrderID, in.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			httpx.JSONError(w, http.StatusNotFound, "order_not_found", nil)
		case errors.Is(err, services.ErrOrderEmpty):
			httpx.JSONError(w, http.StatusBadRequest, "order_empty", nil)
		case errors.Is(err, services.ErrOrderInactive):
			httpx.JSONError(w, http.StatusConflict, "order_inactive", nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "invoice_create_failed", nil)
		}
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}

func (h *InvoiceHandler) Pay(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Svc.Pay)
}

func (h *InvoiceHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Svc.Cancel)
}

func (h *InvoiceHandler) Void(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Svc.Void)
}

func (h *InvoiceHandler) transition(w http.ResponseWriter, r *http.Request, fn func(uint) (*models.Invoice, error)) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	inv, err := fn(id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvoiceNotFound):
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		case errors.Is(err, services.ErrInvoiceNotPending):
			httpx.JSONError(w, http.StatusConflict, "invoice_not_pending", nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "transition_failed", nil)
		}
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}
