package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/capstone/internal/app/models/dto"
	"github.com/yigit/capstone/internal/pkg/logger"
)

// Pinger is satisfied by *pgxpool.Pool
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController serves liveness and readiness checks
type HealthController struct {
	db Pinger
}

// NewHealthController creates a new HealthController
func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db}
}

// Ping answers liveness probes
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string "pong"
// @Router /ping [get]
func (c *HealthController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
}

// Health reports whether the database is reachable
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /api/health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := c.db.Ping(pingCtx); err != nil {
		logger.Warn().Err(err).Msg("Health check: database unreachable")
		ctx.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "degraded", Database: "down"})
		return
	}
	ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Database: "up"})
}
