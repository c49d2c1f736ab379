// Package http serves the commission tracker web UI: credential flows,
// per-category record screens, the monthly report and the admin user
// listing.
package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"comissoes/internal/amqp"
	"comissoes/internal/auth"
	"comissoes/internal/core"
	applog "comissoes/internal/log"
	appweb "comissoes/web"
)

// RecordStore is the owner-scoped persistence surface the handlers
// need. *storage.Store satisfies it.
type RecordStore interface {
	CreateSale(ctx context.Context, s *core.Sale) error
	GetSale(ctx context.Context, id int64) (*core.Sale, error)
	ListSalesByOwner(ctx context.Context, ownerID int64) ([]core.Sale, error)
	UpdateSale(ctx context.Context, s *core.Sale) error
	DeleteSale(ctx context.Context, id int64) error

	CreateCollection(ctx context.Context, c *core.Collection) error
	GetCollection(ctx context.Context, id int64) (*core.Collection, error)
	ListCollectionsByOwner(ctx context.Context, ownerID int64) ([]core.Collection, error)
	UpdateCollection(ctx context.Context, c *core.Collection) error
	DeleteCollection(ctx context.Context, id int64) error

	CreateConsultation(ctx context.Context, c *core.Consultation) error
	GetConsultation(ctx context.Context, id int64) (*core.Consultation, error)
	ListConsultationsByOwner(ctx context.Context, ownerID int64) ([]core.Consultation, error)
	UpdateConsultation(ctx context.Context, c *core.Consultation) error
	DeleteConsultation(ctx context.Context, id int64) error

	CreateProcedure(ctx context.Context, p *core.Procedure) error
	GetProcedure(ctx context.Context, id int64) (*core.Procedure, error)
	ListProceduresByOwner(ctx context.Context, ownerID int64) ([]core.Procedure, error)
	UpdateProcedure(ctx context.Context, p *core.Procedure) error
	DeleteProcedure(ctx context.Context, id int64) error

	ListUsers(ctx context.Context) ([]core.User, error)
}

type Server struct {
	http.Server
	templates *template.Template

	store     RecordStore
	accounts  *auth.Service
	sessions  *auth.SessionManager
	events    *amqp.Client // nil when no broker is configured
	adminName string

	credLimiter *ipLimiter
}

// NewServer wires routes, templates and middleware into a
// ready-to-run http.Server.
func NewServer(addr string, store RecordStore, accounts *auth.Service, sessions *auth.SessionManager, events *amqp.Client, adminName string) (*Server, error) {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:     store,
		accounts:  accounts,
		sessions:  sessions,
		events:    events,
		adminName: strings.ToLower(strings.TrimSpace(adminName)),
		// Credential endpoints allow short bursts, then one attempt
		// every two seconds per client IP.
		credLimiter: newIPLimiter(rate.Every(2*time.Second), 5),
	}

	funcs := template.FuncMap{
		"dateBR":  func(d core.Date) string { return d.Format("02/01/2006") },
		"dateISO": func(d core.Date) string { return d.Format("2006-01-02") },
	}
	t, err := template.New("").Funcs(funcs).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	s.templates = t

	// Static assets from the embedded FS
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	// Credential flows
	mux.HandleFunc("/login", s.withRequest(s.handleLogin))
	mux.HandleFunc("/register", s.withRequest(s.handleRegister))
	mux.HandleFunc("/recover_password", s.withRequest(s.handleRecoverPassword))
	mux.HandleFunc("/logout", s.withRequest(s.requireUser(s.handleLogout)))

	// Application
	mux.HandleFunc("/", s.withRequest(s.requireUser(s.handleHome)))
	mux.HandleFunc("/geral", s.withRequest(s.requireUser(s.handleReport)))

	mux.HandleFunc("/vendas", s.withRequest(s.requireUser(s.handleSales)))
	mux.HandleFunc("/vendas/edit/{id}", s.withRequest(s.requireUser(s.handleSaleEdit)))
	mux.HandleFunc("/vendas/delete/{id}", s.withRequest(s.requireUser(s.handleSaleDelete)))

	mux.HandleFunc("/cobrancas", s.withRequest(s.requireUser(s.handleCollections)))
	mux.HandleFunc("/cobrancas/edit/{id}", s.withRequest(s.requireUser(s.handleCollectionEdit)))
	mux.HandleFunc("/cobrancas/delete/{id}", s.withRequest(s.requireUser(s.handleCollectionDelete)))

	mux.HandleFunc("/consultas", s.withRequest(s.requireUser(s.handleConsultations)))
	mux.HandleFunc("/consultas/edit/{id}", s.withRequest(s.requireUser(s.handleConsultationEdit)))
	mux.HandleFunc("/consultas/delete/{id}", s.withRequest(s.requireUser(s.handleConsultationDelete)))

	mux.HandleFunc("/procedimentos", s.withRequest(s.requireUser(s.handleProcedures)))
	mux.HandleFunc("/procedimentos/edit/{id}", s.withRequest(s.requireUser(s.handleProcedureEdit)))
	mux.HandleFunc("/procedimentos/delete/{id}", s.withRequest(s.requireUser(s.handleProcedureDelete)))

	mux.HandleFunc("/admin/users", s.withRequest(s.requireUser(s.handleAdminUsers)))

	return s, nil
}

// withRequest adds security headers, a request id and request logging.
func (s *Server) withRequest(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := remoteIP(r)
		requestID := generateRequestID()

		logger := applog.WithComponent("http").With("request_id", requestID)
		ctx := applog.IntoContext(r.Context(), logger)
		r = r.WithContext(ctx)

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		logger.Info("Request completed",
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

// Shutdown stops accepting connections and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.Server.Shutdown(ctx)
}

// responseWriter captures the status code for the request log.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// ipLimiter keeps a token bucket per client IP for the credential
// endpoints.
type ipLimiter struct {
	mu      sync.Mutex
	clients map[string]*rate.Limiter
	rate    rate.Limit
	burst   int
}

func newIPLimiter(r rate.Limit, burst int) *ipLimiter {
	return &ipLimiter{
		clients: make(map[string]*rate.Limiter),
		rate:    r,
		burst:   burst,
	}
}

func (l *ipLimiter) allow(clientIP string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.clients[clientIP]
	if !ok {
		limiter = rate.NewLimiter(l.rate, l.burst)
		l.clients[clientIP] = limiter
	}
	return limiter.Allow()
}
