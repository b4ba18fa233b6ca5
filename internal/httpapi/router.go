package httpapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/panny-app/panny-backend/internal/config"
	"github.com/panny-app/panny-backend/internal/httpapi/handlers"
	"github.com/panny-app/panny-backend/internal/httpapi/middleware"
	"github.com/panny-app/panny-backend/internal/store"
)

// NewRouter wires the middleware chain and route table. st may be nil when
// the database is not configured; handlers degrade per endpoint.
func NewRouter(st store.Store, cfg config.Config, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recovery(log))
	r.Use(cors.Default())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": "method not allowed"})
	})

	h := handlers.NewHandler(st, cfg, log)

	r.GET("/", h.Root)
	r.GET("/test", h.TestStore)
	r.GET("/schema", h.Schema)

	api := r.Group("/api")
	api.GET("/hello", h.Hello)
	api.GET("/conversations", h.ListConversations)
	api.GET("/conversations/:id/messages", h.ListMessages)
	api.POST("/chat", h.Chat)

	return r
}
