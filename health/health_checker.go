// Package health derives the service health from the store, the webhook
// circuit breaker and the local report cache.
package health

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/giygas/medreview-api/interfaces"
)

const pingTimeout = 2 * time.Second

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	store     interfaces.ReportStore
	cache     interfaces.ReportCache
	generator interfaces.ReportGenerator
	startTime time.Time
}

func NewHealthChecker(store interfaces.ReportStore, cache interfaces.ReportCache, generator interfaces.ReportGenerator) interfaces.HealthChecker {
	return &HealthCheckerImpl{
		store:     store,
		cache:     cache,
		generator: generator,
		startTime: time.Now(),
	}
}

// HealthCheck is healthy when the store answers and the breaker is closed,
// degraded when one of them is down, and unhealthy when both are: reports
// can then neither be generated nor read back.
func (h *HealthCheckerImpl) HealthCheck(ctx context.Context) (status string, data map[string]any, httpStatus int) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	storeErr := h.store.Ping(pingCtx)
	storeOK := storeErr == nil
	breaker := h.generator.State()
	webhookOK := breaker != "open"

	switch {
	case !storeOK && !webhookOK:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	case !storeOK || !webhookOK:
		status = "degraded"
		httpStatus = http.StatusOK
	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	data = map[string]any{
		"store_reachable": storeOK,
		"webhook_breaker": breaker,
		"cache_entries":   h.cache.Len(),
		"uptime_hours":    math.Round(time.Since(h.startTime).Hours()*10) / 10,
	}

	if storeOK {
		if n, err := h.store.Count(pingCtx); err == nil {
			data["stored_reports"] = n
		}
	} else {
		data["store_error"] = storeErr.Error()
	}

	if last := h.cache.LastStored(); !last.IsZero() {
		data["last_report"] = last.Format(time.RFC3339)
		data["last_report_age_hours"] = math.Round(time.Since(last).Hours()*10) / 10
	}

	return status, data, httpStatus
}
