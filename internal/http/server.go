package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"tobuy/internal/middleware/ratelimit"
	"tobuy/internal/middleware/security"
	"tobuy/internal/middleware/trace"
	"tobuy/internal/services"
)

type Server struct {
	http.Server
	ledger       *services.LedgerService
	rateLimiter  *ratelimit.Limiter
	shutdownOnce sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(addr string, ledger *services.LedgerService) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		ledger:      ledger,
		rateLimiter: ratelimit.NewLimiter(ratelimit.DefaultConfig()),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /items", s.handleListItems)
	mux.HandleFunc("POST /items", s.handleCreateItem)
	mux.HandleFunc("PUT /items/{id}", s.handleEditItem)
	mux.HandleFunc("POST /items/{id}/toggle", s.handleToggleItem)
	mux.HandleFunc("DELETE /items/{id}", s.handleDeleteItem)

	mux.HandleFunc("GET /categories", s.handleListCategories)
	mux.HandleFunc("POST /categories", s.handleCreateCategory)

	mux.HandleFunc("GET /summary", s.handleSummary)
	mux.HandleFunc("GET /breakdown", s.handleBreakdown)
	mux.HandleFunc("GET /widget-preview", s.handleWidgetPreview)

	mux.HandleFunc("GET /settings", s.handleGetSettings)
	mux.HandleFunc("PUT /settings", s.handleUpdateSettings)
	mux.HandleFunc("GET /currencies", s.handleListCurrencies)
	mux.HandleFunc("GET /theme", s.handleTheme)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware(extractClientIP)
	limited := s.rateLimiter.Middleware(extractClientIP)

	s.Handler = headers.Middleware(tracer.Middleware(limited(mux)))
	return s
}

// Shutdown stops the limiter's cleanup goroutine before draining the
// HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// extractClientIP resolves the caller's IP, preferring proxy headers.
func extractClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
