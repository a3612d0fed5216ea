package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Bikutah/ingenieria-3-grupo-2/internal/db"
	"github.com/Bikutah/ingenieria-3-grupo-2/internal/models"
)

func setupHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	for _, m := range db.AllModels() {
		if err := conn.AutoMigrate(m); err != nil {
			t.Fatalf("migrate %T: %v", m, err)
		}
	}
	return conn
}

func seedDiningRoom(t *testing.T, conn *gorm.DB) (models.Sector, models.Table, models.Waiter, models.Client) {
	t.Helper()
	sector := models.Sector{Name: "Terraza", Number: "1"}
	if err := conn.Create(&sector).Error; err != nil {
		t.Fatalf("sector: %v", err)
	}
	table := models.Table{Number: "12", Type: "interior", Capacity: 6, SectorID: sector.ID}
	if err := conn.Create(&table).Error; err != nil {
		t.Fatalf("table: %v", err)
	}
	waiter := models.Waiter{DNI: "30123456", FirstName: "Juan", LastName: "Perez"}
	if err := conn.Create(&waiter).Error; err != nil {
		t.Fatalf("waiter: %v", err)
	}
	client := models.Client{FirstName: "Ana", LastName: "Gomez", DNI: "28999888"}
	if err := conn.Create(&client).Error; err != nil {
		t.Fatalf("client: %v", err)
	}
	return sector, table, waiter, client
}

func seedProduct(t *testing.T, conn *gorm.DB, name string, price float64) models.Product {
	t.Helper()
	p := models.Product{Name: name, Type: "plato", UnitPrice: price}
	if err := conn.Create(&p).Error; err != nil {
		t.Fatalf("product: %v", err)
	}
	return p
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response: %v body=%s", err, w.Body.String())
	}
}

func futureDateString(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return d
}
