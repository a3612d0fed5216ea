package handlers

import (
	"net/http"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/Bikutah/ingenieria-3-grupo-2/internal/httpx"
	"github.com/Bikutah/ingenieria-3-grupo-2/internal/models"
)

// ReportsHandler answers the dashboard queries. Date bucketing happens in Go
// so the same queries run on postgres and on the sqlite test database.
type ReportsHandler struct {
	DB *gorm.DB
}

func NewReportsHandler(db *gorm.DB) *ReportsHandler { return &ReportsHandler{DB: db} }

func (h *ReportsHandler) Register(mux *http.ServeMux, wrap func(http.HandlerFunc) http.Handler) {
	mux.Handle("GET /reports/monthly-earnings", wrap(h.MonthlyEarnings))
	mux.Handle("GET /reports/top-products", wrap(h.TopProducts))
	mux.Handle("GET /reports/busy-weekdays", wrap(h.BusyWeekdays))
}

type monthTotal struct {
	Month int     `json:"month"`
	Total float64 `json:"total"`
}

// MonthlyEarnings sums paid invoices per month of the requested year
// (current year by default).
func (h *ReportsHandler) MonthlyEarnings(w http.ResponseWriter, r *http.Request) {
	year := time.Now().UTC().Year()
	if v := r.URL.Query().Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 2000 || n > 2200 {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_year", nil)
			return
		}
		year = n
	}
	from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	var rows []models.Invoice
	err := h.DB.Select("issued_at", "total").
		Where("status = ? AND issued_at >= ? AND issued_at < ?", models.InvoicePaid, from, to).
		Find(&rows).Error
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "report_failed", nil)
		return
	}

	months := make([]monthTotal, 12)
	for i := range months {
		months[i].Month = i + 1
	}
	for _, inv := range rows {
		months[inv.IssuedAt.UTC().Month()-1].Total += inv.Total
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"year": year, "months": months})
}

type productCount struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
}

// TopProducts ranks products by quantity across paid invoices.
func (h *ReportsHandler) TopProducts(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_limit", nil)
			return
		}
		limit = n
	}
	var rows []productCount
	err := h.DB.Model(&models.InvoiceLine{}).
		Select("invoice_lines.product_id, products.name, SUM(invoice_lines.quantity) AS quantity").
		Joins("JOIN invoices ON invoices.id = invoice_lines.invoice_id AND invoices.status = ?", models.InvoicePaid).
		Joins("JOIN products ON products.id = invoice_lines.product_id").
		Group("invoice_lines.product_id, products.name").
		Order("quantity DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "report_failed", nil)
		return
	}
	if rows == nil {
		rows = []productCount{}
	}
	httpx.JSON(w, http.StatusOK, rows)
}

type weekdayCount struct {
	Weekday string `json:"weekday"`
	Orders  int    `json:"orders"`
}

// BusyWeekdays counts active orders per day of week.
func (h *ReportsHandler) BusyWeekdays(w http.ResponseWriter, r *http.Request) {
	var rows []models.Order
	err := h.DB.Select("date").Where("inactive = ?", false).Find(&rows).Error
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "report_failed", nil)
		return
	}
	counts := [7]int{}
	for _, o := range rows {
		counts[int(o.Date.UTC().Weekday())]++
	}
	out := make([]weekdayCount, 7)
	for i := 0; i < 7; i++ {
		out[i] = weekdayCount{Weekday: time.Weekday(i).String(), Orders: counts[i]}
	}
	httpx.JSON(w, http.StatusOK, out)
}
