package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/panny-app/panny-backend/internal/chat"
	"github.com/panny-app/panny-backend/internal/config"
	"github.com/panny-app/panny-backend/internal/store"
)

// detailStoreUnavailable is the fixed body used by endpoints that need the
// store when no handle was configured.
const detailStoreUnavailable = "Database not available"

// Handler bundles the dependencies the HTTP handlers run on. Store may be
// nil when no database is configured; each endpoint degrades on its own
// terms instead of the process refusing to start.
type Handler struct {
	Store   store.Store
	Cfg     config.Config
	Log     *zap.Logger
	ChatSvc *chat.Service
}

func NewHandler(st store.Store, cfg config.Config, log *zap.Logger) *Handler {
	return &Handler{
		Store:   st,
		Cfg:     cfg,
		Log:     log,
		ChatSvc: chat.NewService(st),
	}
}

// detail renders the error body shape used across the API.
func detail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"detail": msg})
}

// limitQuery parses the limit query parameter, falling back to def for
// missing, malformed, or non-positive values.
func limitQuery(c *gin.Context, def int) int {
	v := c.Query("limit")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
