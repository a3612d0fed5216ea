package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSessionRoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	CreateSession(w, 42)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	uid, ok := ParseSession(req)
	if !ok || uid != 42 {
		t.Fatalf("expected uid 42, got %d ok=%v", uid, ok)
	}
}

func TestParseSessionRejectsTamperedCookie(t *testing.T) {
	w := httptest.NewRecorder()
	CreateSession(w, 42)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := w.Result().Cookies()[0]
	c.Value = "43." + c.Value[len("42."):] // swap the uid, keep the signature
	req.AddCookie(c)

	if _, ok := ParseSession(req); ok {
		t.Fatal("tampered cookie accepted")
	}
}

func TestRequireAuth(t *testing.T) {
	handler := Middleware(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	// no session
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/waiters", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}

	// valid session
	cw := httptest.NewRecorder()
	CreateSession(cw, 7)
	req := httptest.NewRequest(http.MethodGet, "/waiters", nil)
	for _, c := range cw.Result().Cookies() {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", w.Code)
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "s3cret") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("wrong password accepted")
	}
}
