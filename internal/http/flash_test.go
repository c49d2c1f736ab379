package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFlashRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	setFlash(rec, "Cobrança registrada.")

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == flashCookie {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("setFlash did not set a cookie")
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()

	if got := popFlash(rec, req); got != "Cobrança registrada." {
		t.Errorf("popFlash = %q, want the accented message back", got)
	}

	// popFlash clears the cookie.
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == flashCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("popFlash did not clear the cookie")
	}
}

func TestPopFlashWithoutCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	if got := popFlash(rec, req); got != "" {
		t.Errorf("popFlash with no cookie = %q, want empty", got)
	}
}
