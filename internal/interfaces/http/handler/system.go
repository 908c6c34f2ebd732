package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/motoworld/storefront/internal/infrastructure/persistence"
	"github.com/motoworld/storefront/internal/interfaces/http/dto"
)

// SystemHandler handles health and readiness probes
type SystemHandler struct {
	BaseHandler
	db      *persistence.Database
	appName string
	version string
	started time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database, appName, version string) *SystemHandler {
	return &SystemHandler{
		db:      db,
		appName: appName,
		version: version,
		started: time.Now(),
	}
}

// Health reports liveness. It never touches dependencies so a database
// outage does not get the process restarted.
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{
		"status":  "ok",
		"app":     h.appName,
		"version": h.version,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	})
}

// Ready reports readiness, checking the database connection
func (h *SystemHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable,
			dto.NewErrorResponse("NOT_READY", "Database is unavailable"))
		return
	}
	h.Success(c, gin.H{"status": "ready"})
}
