package services

import (
	"fmt"
	"log"

	"github.com/anuragch/folio/internal/config"
	"github.com/anuragch/folio/internal/utils"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Mirror       string            `json:"mirror"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck reports on the local store and, when configured, the mirror.
// A down mirror degrades the report but does not make the service unhealthy:
// reads and writes still work against the local store.
func HealthCheck(cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Local store connection error: %v", err)
		log.Printf("Health check failed - local store connection: %v", err)
	} else {
		if err := sqlDB.Ping(); err != nil {
			result.Status = "unhealthy"
			result.Database = "unreachable"
			result.Details["database_ping_error"] = err.Error()
			result.ErrorMessage = fmt.Sprintf("Local store ping failed: %v", err)
			log.Printf("Health check failed - local store ping: %v", err)
		} else {
			result.Database = "ok"
			result.Details["database_type"] = cfg.DBType
			result.Details["database_name"] = cfg.DBDatabase
		}
	}

	if !cfg.MirrorConfigured() {
		result.Mirror = "unconfigured"
	} else if err := utils.PingMirror(cfg.MirrorURL); err != nil {
		// degraded, not unhealthy
		result.Mirror = "unreachable"
		result.Details["mirror_error"] = err.Error()
		log.Printf("Health check - mirror ping failed (non-fatal): %v", err)
	} else {
		result.Mirror = "ok"
	}

	return result
}
