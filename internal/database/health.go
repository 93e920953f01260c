package database

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthUnhealthy HealthStatus = "unhealthy"
)

type HealthReport struct {
	Status     HealthStatus          `json:"status"`
	CheckedAt  time.Time             `json:"checked_at"`
	Components map[string]CheckEntry `json:"components"`
}

type CheckEntry struct {
	Status     HealthStatus   `json:"status"`
	Message    string         `json:"message,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	CheckedAt  time.Time      `json:"checked_at"`
	DurationMs int64          `json:"duration_ms"`
}

// HealthChecker pings the store and reports its pool statistics.
type HealthChecker struct {
	db      *gorm.DB
	timeout time.Duration
	now     func() time.Time
}

func NewHealthChecker(db *gorm.DB, timeout time.Duration) *HealthChecker {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HealthChecker{db: db, timeout: timeout, now: time.Now}
}

func (h *HealthChecker) Check(ctx context.Context) HealthReport {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := h.now()
	entry := CheckEntry{Status: HealthHealthy}

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	entry.CheckedAt = h.now()
	entry.DurationMs = entry.CheckedAt.Sub(start).Milliseconds()

	if err != nil {
		entry.Status = HealthUnhealthy
		entry.Message = err.Error()
	} else {
		stats := sqlDB.Stats()
		entry.Details = map[string]any{
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
			"idle":             stats.Idle,
		}
	}

	return HealthReport{
		Status:     entry.Status,
		CheckedAt:  h.now(),
		Components: map[string]CheckEntry{h.db.Dialector.Name(): entry},
	}
}

func (r HealthReport) Healthy() bool {
	return r.Status == HealthHealthy
}
