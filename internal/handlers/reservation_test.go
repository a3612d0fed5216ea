package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Bikutah/ingenieria-3-grupo-2/internal/models"
)

func TestReservationCreateWithMenu(t *testing.T) {
	conn := setupHandlerDB(t)
	_, table, _, client := seedDiningRoom(t, conn)
	milanesa := seedProduct(t, conn, "Milanesa", 500)
	h := NewReservationHandler(conn)

	body := fmt.Sprintf(`{
		"date": %q, "time": "21:00", "party_size": 4,
		"table_id": %d, "client_id": %d,
		"menu": {"deposit": 1500, "lines": [{"product_id": %d, "quantity": 2, "unit_price": 500}]}
	}`, futureDateString(7), table.ID, client.ID, milanesa.ID)
	w := httptest.NewRecorder()
	h.Create(w, jsonRequest(http.MethodPost, "/reservations", body))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created models.Reservation
	decodeBody(t, w, &created)
	if created.ID == 0 || created.Menu == nil {
		t.Fatalf("unexpected reservation: %+v", created)
	}
	if created.Menu.Deposit != 1500 || len(created.Menu.Lines) != 1 {
		t.Fatalf("unexpected menu: %+v", created.Menu)
	}

	// menu rows persisted
	var stored models.Reservation
	if err := conn.Preload("Menu.Lines").First(&stored, created.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Menu == nil || stored.Menu.Lines[0].ProductID != milanesa.ID {
		t.Fatalf("menu not persisted: %+v", stored.Menu)
	}
}

func TestReservationCreateRejectsOverlap(t *testing.T) {
	conn := setupHandlerDB(t)
	_, table, _, client := seedDiningRoom(t, conn)
	h := NewReservationHandler(conn)
	date := futureDateString(3)

	body := fmt.Sprintf(`{"date": %q, "time": "21:00", "party_size": 2, "table_id": %d, "client_id": %d}`,
		date, table.ID, client.ID)
	w := httptest.NewRecorder()
	h.Create(w, jsonRequest(http.MethodPost, "/reservations", body))
	if w.Code != http.StatusCreated {
		t.Fatalf("first booking: expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	// 90 minutes later on the same table is inside the window
	body = fmt.Sprintf(`{"date": %q, "time": "22:30", "party_size": 2, "table_id": %d, "client_id": %d}`,
		date, table.ID, client.ID)
	w = httptest.NewRecorder()
	h.Create(w, jsonRequest(http.MethodPost, "/reservations", body))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Details map[string]string `json:"details"`
	}
	decodeBody(t, w, &resp)
	if resp.Details["table_id"] != "not_available" {
		t.Fatalf("unexpected violations: %v", resp.Details)
	}
}

func TestReservationCreateValidation(t *testing.T) {
	conn := setupHandlerDB(t)
	_, table, _, client := seedDiningRoom(t, conn)
	h := NewReservationHandler(conn)

	// party above the cap and a past date
	body := fmt.Sprintf(`{"date": "2020-01-01", "time": "21:00", "party_size": 11, "table_id": %d, "client_id": %d}`,
		table.ID, client.ID)
	w := httptest.NewRecorder()
	h.Create(w, jsonRequest(http.MethodPost, "/reservations", body))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Details map[string]string `json:"details"`
	}
	decodeBody(t, w, &resp)
	if resp.Details["party_size"] != "out_of_range" {
		t.Fatalf("unexpected violations: %v", resp.Details)
	}
	if resp.Details["date"] != "cannot_be_in_the_past" {
		t.Fatalf("unexpected violations: %v", resp.Details)
	}
}

func TestReservationUpdateReplacesMenu(t *testing.T) {
	conn := setupHandlerDB(t)
	_, table, _, client := seedDiningRoom(t, conn)
	milanesa := seedProduct(t, conn, "Milanesa", 500)
	flan := seedProduct(t, conn, "Flan", 300)
	h := NewReservationHandler(conn)

	body := fmt.Sprintf(`{
		"date": %q, "time": "21:00", "party_size": 4,
		"table_id": %d, "client_id": %d,
		"menu": {"deposit": 1000, "lines": [{"product_id": %d, "quantity": 2, "unit_price": 500}]}
	}`, futureDateString(7), table.ID, client.ID, milanesa.ID)
	w := httptest.NewRecorder()
	h.Create(w, jsonRequest(http.MethodPost, "/reservations", body))
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d body=%s", w.Code, w.Body.String())
	}
	var created models.Reservation
	decodeBody(t, w, &created)

	// same booking, new menu
	body = fmt.Sprintf(`{
		"date": %q, "time": "21:00", "party_size": 4,
		"table_id": %d, "client_id": %d,
		"menu": {"deposit": 600, "lines": [{"product_id": %d, "quantity": 3, "unit_price": 300}]}
	}`, futureDateString(7), table.ID, client.ID, flan.ID)
	req := jsonRequest(http.MethodPut, fmt.Sprintf("/reservations/%d", created.ID), body)
	req.SetPathValue("id", fmt.Sprint(created.ID))
	w = httptest.NewRecorder()
	h.Update(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var stored models.Reservation
	if err := conn.Preload("Menu.Lines").First(&stored, created.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Menu == nil || stored.Menu.Deposit != 600 {
		t.Fatalf("menu not replaced: %+v", stored.Menu)
	}
	if len(stored.Menu.Lines) != 1 || stored.Menu.Lines[0].ProductID != flan.ID {
		t.Fatalf("old lines survived: %+v", stored.Menu.Lines)
	}
	var lineCount int64
	conn.Model(&models.MenuLine{}).Count(&lineCount)
	if lineCount != 1 {
		t.Fatalf("stale menu lines left behind: %d", lineCount)
	}
}

func TestReservationUpdateExcludesSelfFromOverlap(t *testing.T) {
	conn := setupHandlerDB(t)
	_, table, _, client := seedDiningRoom(t, conn)
	h := NewReservationHandler(conn)
	date := futureDateString(5)

	body := fmt.Sprintf(`{"date": %q, "time": "20:00", "party_size": 2, "table_id": %d, "client_id": %d}`,
		date, table.ID, client.ID)
	w := httptest.NewRecorder()
	h.Create(w, jsonRequest(http.MethodPost, "/reservations", body))
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d", w.Code)
	}
	var created models.Reservation
	decodeBody(t, w, &created)

	// nudging its own time must not collide with itself
	body = fmt.Sprintf(`{"date": %q, "time": "20:30", "party_size": 2, "table_id": %d, "client_id": %d}`,
		date, table.ID, client.ID)
	req := jsonRequest(http.MethodPut, fmt.Sprintf("/reservations/%d", created.ID), body)
	req.SetPathValue("id", fmt.Sprint(created.ID))
	w = httptest.NewRecorder()
	h.Update(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
}
