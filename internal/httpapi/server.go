// Package httpapi exposes the ledger as a JSON API. Identity arrives as
// an X-User-ID header set by the fronting proxy after authentication;
// the server itself never verifies credentials.
package httpapi

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"uangku/internal/cache"
	"uangku/internal/ledger"
	"uangku/internal/log"
	"uangku/internal/metrics"
)

const userIDHeader = "X-User-ID"

type Server struct {
	http.Server
	svc         *ledger.Service
	logger      *log.Logger
	rateLimiter *rateLimiter

	// statementCache holds computed statements keyed by user and month.
	// Mutations invalidate the writer's entries.
	statementCache *cache.LRU[ledger.Statement]

	shutdownOnce sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(addr string, svc *ledger.Service, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server:         http.Server{Addr: addr, Handler: mux},
		svc:            svc,
		logger:         logger.WithComponent("httpapi"),
		rateLimiter:    newRateLimiter(),
		statementCache: cache.New[ledger.Statement](200, 5*time.Minute),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)
	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("GET /api/accounts", s.wrap(s.handleListAccounts))
	mux.HandleFunc("POST /api/accounts", s.wrap(s.handleCreateAccount))
	mux.HandleFunc("PUT /api/accounts/{id}", s.wrap(s.handleUpdateAccount))
	mux.HandleFunc("DELETE /api/accounts/{id}", s.wrap(s.handleDeleteAccount))

	mux.HandleFunc("GET /api/transactions", s.wrap(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.wrap(s.handleCreateTransaction))
	mux.HandleFunc("PUT /api/transactions/{id}", s.wrap(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.wrap(s.handleDeleteTransaction))

	mux.HandleFunc("GET /api/transfers", s.wrap(s.handleListTransfers))
	mux.HandleFunc("POST /api/transfers", s.wrap(s.handleCreateTransfer))
	mux.HandleFunc("DELETE /api/transfers/{id}", s.wrap(s.handleDeleteTransfer))

	mux.HandleFunc("GET /api/statement", s.wrap(s.handleStatement))
	mux.HandleFunc("GET /api/activity", s.wrap(s.handleActivity))
	mux.HandleFunc("GET /api/export/statement", s.wrap(s.handleExportStatement))
	mux.HandleFunc("GET /api/export/all", s.wrap(s.handleExportAll))

	return s
}

// wrap applies the shared middleware: security headers, rate limiting on
// writes, request ID logging, user resolution, and request metrics.
func (s *Server) wrap(next func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := extractClientIP(r)
		requestID := generateRequestID()
		reqLog := s.logger.With("request_id", requestID)
		ctx := log.IntoContext(r.Context(), reqLog)
		r = r.WithContext(ctx)

		reqLog.InfoContext(ctx, "Request started",
			"method", r.Method, "url", r.URL.Path, "client_ip", clientIP)

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'none'")

		if isMutation(r.Method) && !s.rateLimiter.allow(clientIP) {
			reqLog.WarnContext(ctx, "Rate limit exceeded",
				"client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		userID := r.Header.Get(userIDHeader)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, fmt.Errorf("missing %s header", userIDHeader))
			return
		}

		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next(rw, r, userID)

		route := r.Pattern
		if route == "" {
			route = r.URL.Path
		}
		duration := time.Since(start)
		metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rw.status)).Inc()
		metrics.HTTPDuration.WithLabelValues(r.Method, route).Observe(duration.Seconds())

		reqLog.InfoContext(ctx, "Request completed",
			"method", r.Method, "url", r.URL.Path, "status", rw.status,
			"duration_ms", duration.Milliseconds(), "client_ip", clientIP)
	}
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// invalidateStatements drops the user's cached statements after a write.
// Keys carry the month, so purging by prefix would need a scan; dropping
// a bounded set of recent months keeps it O(1).
func (s *Server) invalidateStatements(userID string, months ...string) {
	for _, m := range months {
		if m != "" {
			s.statementCache.Delete(statementKey(userID, m))
		}
	}
}

func statementKey(userID, month string) string {
	return userID + "/" + month
}

// statusWriter captures the status code for logging and metrics.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "req_" + strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	return "req_" + hex.EncodeToString(b)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// Shutdown stops the rate limiter janitor before draining connections.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}
