package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/scrape-mcp/api/handler"
	"github.com/use-agent/scrape-mcp/api/middleware"
	"github.com/use-agent/scrape-mcp/config"
)

// NewRouter creates a configured Gin engine serving the MCP endpoint.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	MCP:     RateLimit
//
// Health endpoint is intentionally outside the rate limit so monitoring
// probes always work. Background work started for the router stops when
// ctx is done.
func NewRouter(ctx context.Context, cfg *config.Config, mcpHandler http.Handler, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	r.GET("/healthz", handler.Health(cfg.Server, startTime))

	// Streamable HTTP uses POST for messages, GET for the event stream and
	// DELETE to end a session.
	limited := r.Group("")
	limited.Use(middleware.RateLimit(ctx, cfg.RateLimit))
	mcp := gin.WrapH(mcpHandler)
	limited.POST(cfg.Server.Path, mcp)
	limited.GET(cfg.Server.Path, mcp)
	limited.DELETE(cfg.Server.Path, mcp)

	return r
}
