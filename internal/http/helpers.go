package http

import (
	"crypto/rand"
	"encoding/hex"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"comissoes/internal/core"
	applog "comissoes/internal/log"
)

const dateField = "2006-01-02"

func remoteIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func generateRequestID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 16)
	}
	return hex.EncodeToString(b)
}

// parsePeriod reads the mes/ano query params. Both must be present and
// numeric; anything less falls back to the current month.
func parsePeriod(r *http.Request) core.Period {
	now := time.Now()
	period := core.Period{Year: now.Year(), Month: int(now.Month())}

	mes := r.URL.Query().Get("mes")
	ano := r.URL.Query().Get("ano")
	if mes == "" || ano == "" {
		return period
	}
	month, err := strconv.Atoi(mes)
	if err != nil || month < 1 || month > 12 {
		return period
	}
	year, err := strconv.Atoi(ano)
	if err != nil || year < 1 {
		return period
	}
	return core.Period{Year: year, Month: month}
}

// parseDateField parses an ISO form date, falling back to today so a
// blank or mangled picker value never blocks the save.
func parseDateField(value string) core.Date {
	t, err := time.Parse(dateField, strings.TrimSpace(value))
	if err != nil {
		return core.Today()
	}
	return core.Date{Time: t}
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		applog.FromContext(r.Context()).Error("Failed to render template", "template", name, "error", err)
	}
}
