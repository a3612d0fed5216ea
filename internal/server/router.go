// Package server assembles the HTTP surface: routes, session gating and the
// request middleware chain.
package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Bikutah/ingenieria-3-grupo-2/internal/auth"
	"github.com/Bikutah/ingenieria-3-grupo-2/internal/handlers"
	"github.com/Bikutah/ingenieria-3-grupo-2/internal/httpx"

	"gorm.io/gorm"
)

// New constructs the root http.Handler with all routes and middlewares
// applied.
func New(db *gorm.DB, log zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Every entity route sits behind the session gate.
	protect := func(h http.HandlerFunc) http.Handler {
		return auth.Middleware(auth.RequireAuth(h))
	}

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	handlers.NewAuthHandler(db).Register(mux, protect)

	handlers.NewSectorHandler(db).Register(mux, "/sectors", protect)
	handlers.NewTableHandler(db).Register(mux, "/tables", protect)
	handlers.NewWaiterHandler(db).Register(mux, "/waiters", protect)
	handlers.NewClientHandler(db).Register(mux, "/clients", protect)
	handlers.NewProductHandler(db).Register(mux, "/products", protect)
	handlers.NewMenuCardHandler(db).Register(mux, "/menu-cards", protect)

	handlers.NewReservationHandler(db).Register(mux, protect)
	handlers.NewOrderHandler(db).Register(mux, protect)
	handlers.NewInvoiceHandler(db).Register(mux, protect)
	handlers.NewReportsHandler(db).Register(mux, protect)

	return withRequestID(withLogging(log, withRecover(log, mux)))
}

// statusRecorder captures the response code for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}

func withLogging(log zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		log.Info().
			Str("request_id", rec.Header().Get("X-Request-Id")).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func withRecover(log zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("handler panic")
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
