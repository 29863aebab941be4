package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/scrape-mcp/config"
	"github.com/use-agent/scrape-mcp/models"
)

// Health returns a handler for GET /healthz.
func Health(cfg config.ServerConfig, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{
			Status:    "healthy",
			Uptime:    time.Since(startTime).Round(time.Second).String(),
			Version:   cfg.Version,
			Transport: cfg.Transport,
		})
	}
}
