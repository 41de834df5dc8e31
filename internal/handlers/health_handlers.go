package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/waellejmi/pos-app/internal/caching"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// HealthHandlers handles health check endpoints
type HealthHandlers struct {
	db    *pgxpool.Pool
	cache caching.CacheService
}

func NewHealthHandlers(db *pgxpool.Pool, cache caching.CacheService) *HealthHandlers {
	return &HealthHandlers{db: db, cache: cache}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Version   string            `json:"version"`
}

// HealthCheck handles GET /health
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
		Version:   "1.0.0",
	}

	if err := h.db.Ping(ctx); err != nil {
		health.Services["database"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["database"] = "healthy"
	}

	if err := h.cache.SetString(ctx, "health:ping", "ok", time.Minute); err != nil {
		health.Services["redis"] = "unhealthy"
		health.Status = "degraded"
	} else if val, err := h.cache.GetString(ctx, "health:ping"); err != nil || val != "ok" {
		health.Services["redis"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["redis"] = "healthy"
	}

	status := http.StatusOK
	if health.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, health)
}

// ReadyCheck handles GET /health/ready. Ready means the database answers;
// redis and object storage degrade gracefully.
func (h *HealthHandlers) ReadyCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
