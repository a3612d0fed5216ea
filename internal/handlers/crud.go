// Package handlers exposes the back-office JSON API. Plain catalog entities
// share the generic Resource handler; reservations, orders and invoices carry
// enough business rules to warrant dedicated handlers.
package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/Bikutah/ingenieria-3-grupo-2/internal/httpx"
	"github.com/Bikutah/ingenieria-3-grupo-2/internal/listing"
	"github.com/Bikutah/ingenieria-3-grupo-2/internal/validation"
)

// pathID parses the {id} path segment.
func pathID(r *http.Request) (uint, bool) {
	n, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// setEntityID reaches the conventional ID field. Every model in this app
// carries `ID uint`.
func setEntityID(item any, id uint) {
	reflect.ValueOf(item).Elem().FieldByName("ID").SetUint(uint64(id))
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(strings.ToLower(err.Error()), "unique") ||
		strings.Contains(strings.ToLower(err.Error()), "duplicate")
}

// Resource is the generic CRUD handler for entities whose rules fit a single
// validation pass: list with the shared query convention, get, create, full
// update, and soft delete via the inactive flag.
type Resource[T any] struct {
	DB      *gorm.DB
	Listing listing.Options
	// Validate inspects the decoded entity; non-empty violations produce a
	// 400. Nil means no validation beyond JSON decoding.
	Validate func(*T) validation.Violations
}

// Register wires the five routes under base ("/sectors" etc.). wrap applies
// the route middleware, typically session auth.
func (h *Resource[T]) Register(mux *http.ServeMux, base string, wrap func(http.HandlerFunc) http.Handler) {
	mux.Handle("GET "+base, wrap(h.List))
	mux.Handle("POST "+base, wrap(h.Create))
	mux.Handle("GET "+base+"/{id}", wrap(h.Get))
	mux.Handle("PUT "+base+"/{id}", wrap(h.Update))
	mux.Handle("DELETE "+base+"/{id}", wrap(h.Delete))
}

func (h *Resource[T]) List(w http.ResponseWriter, r *http.Request) {
	page, err := listing.List[T](h.DB, r.URL.Query(), h.Listing)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, page)
}

func (h *Resource[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	item, err := h.load(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "load_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *Resource[T]) Create(w http.ResponseWriter, r *http.Request) {
	var item T
	if err := httpx.Decode(r, &item); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	setEntityID(&item, 0)
	if h.Validate != nil {
		if v := h.Validate(&item); !v.Empty() {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
	}
	if err := h.DB.Create(&item).Error; err != nil {
		if isDuplicate(err) {
			httpx.JSONError(w, http.StatusConflict, "already_exists", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

// Update decodes over the stored record, so absent fields keep their current
// values and the body can never reassign the id.
func (h *Resource[T]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var item T
	if err := h.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "load_failed", nil)
		return
	}
	if err := httpx.Decode(r, &item); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	setEntityID(&item, id)
	if h.Validate != nil {
		if v := h.Validate(&item); !v.Empty() {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
	}
	if err := h.DB.Save(&item).Error; err != nil {
		if isDuplicate(err) {
			httpx.JSONError(w, http.StatusConflict, "already_exists", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

// Delete flips the inactive flag. Rows are never removed; history referenced
// by orders and invoices must stay resolvable.
func (h *Resource[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	res := h.DB.Model(new(T)).Where("id = ?", id).Update("inactive", true)
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

func (h *Resource[T]) load(id uint) (*T, error) {
	q := h.DB
	for _, p := range h.Listing.Preloads {
		q = q.Preload(p)
	}
	var item T
	if err := q.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}
