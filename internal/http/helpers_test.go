package http

import (
	"net/http/httptest"
	"testing"
	"time"

	"comissoes/internal/core"
)

func TestParsePeriod(t *testing.T) {
	now := time.Now()
	current := core.Period{Year: now.Year(), Month: int(now.Month())}

	tests := []struct {
		name string
		url  string
		want core.Period
	}{
		{"both params", "/geral?mes=3&ano=2024", core.Period{Year: 2024, Month: 3}},
		{"no params", "/geral", current},
		{"only month", "/geral?mes=3", current},
		{"only year", "/geral?ano=2024", current},
		{"month out of range", "/geral?mes=13&ano=2024", current},
		{"non-numeric month", "/geral?mes=março&ano=2024", current},
		{"zero year", "/geral?mes=3&ano=0", current},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			if got := parsePeriod(r); got != tt.want {
				t.Errorf("parsePeriod(%s) = %+v, want %+v", tt.url, got, tt.want)
			}
		})
	}
}

func TestParseDateField(t *testing.T) {
	got := parseDateField("2024-03-15")
	if got != core.NewDate(2024, 3, 15) {
		t.Errorf("parseDateField = %v, want 2024-03-15", got)
	}

	today := core.Today()
	for _, bad := range []string{"", "15/03/2024", "not-a-date"} {
		if got := parseDateField(bad); got != today {
			t.Errorf("parseDateField(%q) = %v, want today", bad, got)
		}
	}
}

func TestRemoteIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	if got := remoteIP(r); got != "10.0.0.1" {
		t.Errorf("remoteIP = %q, want 10.0.0.1", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := remoteIP(r); got != "203.0.113.9" {
		t.Errorf("remoteIP with X-Forwarded-For = %q, want 203.0.113.9", got)
	}
}
