// Package http provides the shared HTTP plumbing of the API server: health
// checks, Prometheus metrics, request logging, panic recovery and per-client
// rate limiting. Route handlers live in subpackages.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"catalog-selection/internal/handler/http/respond"
)

// Status is the outcome of one check and of the report as a whole.
// Ordered so that the worst check decides the report.
type Status int

const (
	StatusHealthy Status = iota
	StatusDegraded
	StatusUnhealthy
)

func (s Status) String() string {
	switch s {
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "healthy"
	}
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// poolSaturation is the in-use share of the pool above which the database
// check reports degraded.
const poolSaturation = 0.8

// HealthReport is the body of GET /health.
type HealthReport struct {
	Status    Status           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Checks    map[string]Check `json:"checks"`
	Version   string           `json:"version"`
}

// Check is one entry of HealthReport.Checks.
type Check struct {
	Status  Status         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// BreakerState is implemented by the circuit breakers in resilience/circuitbreaker.
type BreakerState interface {
	State() gobreaker.State
}

// HealthHandler reports the selection store backend and the circuit breakers
// in front of the catalog and the database.
//
// An open breaker only degrades the report: catalog failures show as empty
// pages and the selection keeps working in memory. 503 is reserved for an
// unreachable database.
type HealthHandler struct {
	// DB is nil when the selection is stored in files.
	DB       *sql.DB
	Breakers map[string]BreakerState
	// SelectedCount, when set, is reported under the "selection" check.
	SelectedCount func() int
	Version       string
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	report := HealthReport{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    make(map[string]Check, len(h.Breakers)+2),
		Version:   h.Version,
	}
	add := func(name string, c Check) {
		report.Checks[name] = c
		report.Status = max(report.Status, c.Status)
	}

	if h.DB != nil {
		add("database", databaseCheck(ctx, h.DB))
	}
	for name, b := range h.Breakers {
		add("circuit_breaker_"+name, breakerCheck(b))
	}
	if h.SelectedCount != nil {
		add("selection", Check{Details: map[string]any{"selected_count": h.SelectedCount()}})
	}

	code := http.StatusOK
	if report.Status == StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, report)
}

// databaseCheck pings the pool and grades it by how many connections are busy.
func databaseCheck(ctx context.Context, db *sql.DB) Check {
	if err := db.PingContext(ctx); err != nil {
		return Check{Status: StatusUnhealthy, Message: err.Error()}
	}

	stats := db.Stats()
	c := Check{Details: map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}}
	if stats.MaxOpenConnections <= 0 {
		c.Status = StatusDegraded
		c.Message = "connection pool is unbounded"
		return c
	}

	used := float64(stats.InUse) / float64(stats.MaxOpenConnections)
	c.Details["utilization_percent"] = used * 100
	if used >= poolSaturation {
		c.Status = StatusDegraded
		c.Message = fmt.Sprintf("%d of %d connections in use", stats.InUse, stats.MaxOpenConnections)
	}
	return c
}

func breakerCheck(b BreakerState) Check {
	state := b.State()
	c := Check{Details: map[string]any{"state": state.String()}}
	if state == gobreaker.StateOpen {
		c.Status = StatusDegraded
		c.Message = "circuit breaker open"
	}
	return c
}

// ReadyHandler answers GET /ready. Without a database it is ready as
// soon as it serves.
type ReadyHandler struct {
	DB *sql.DB
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.DB.PingContext(ctx); err != nil {
			http.Error(w, "database not ready: "+err.Error(), http.StatusServiceUnavailable)
			return
		}
	}
	writePlain(w, "ready")
}

// LiveHandler answers GET /live.
type LiveHandler struct{}

func (LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	writePlain(w, "alive")
}

func writePlain(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		slog.Warn("health: write failed", slog.String("body", body), slog.Any("error", err))
	}
}
