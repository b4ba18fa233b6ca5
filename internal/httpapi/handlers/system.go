package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/panny-app/panny-backend/internal/models"
)

// Root greets at the service root.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello from Panny Backend!"})
}

// Hello greets under the api prefix.
func (h *Handler) Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello from the backend API!"})
}

// TestStore is the operator-facing diagnostic. It always answers 200 and
// reports store reachability plus which database env vars are set.
func (h *Handler) TestStore(c *gin.Context) {
	resp := gin.H{
		"backend":           "✅ Running",
		"database":          "❌ Not Available",
		"database_url":      nil,
		"database_name":     nil,
		"connection_status": "Not Connected",
		"collections":       []string{},
	}

	if h.Store != nil {
		resp["database"] = "✅ Available"
		resp["connection_status"] = "Connected"
		names, err := h.Store.CollectionNames(c.Request.Context())
		if err != nil {
			resp["database"] = "⚠️  Connected but Error: " + truncate(err.Error(), 50)
		} else {
			if len(names) > 10 {
				names = names[:10]
			}
			resp["collections"] = names
			resp["database"] = "✅ Connected & Working"
		}
	}

	resp["database_url"] = envFlag(h.Cfg.DatabaseURL != "")
	resp["database_name"] = envFlag(h.Cfg.DatabaseName != "")

	c.JSON(http.StatusOK, resp)
}

// Schema lists the field names of the stored record shapes so clients can
// see what the store keeps per document.
func (h *Handler) Schema(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"schemas": []gin.H{
			{"name": models.Conversation{}.Collection(), "fields": models.FieldNames(models.Conversation{})},
			{"name": models.Message{}.Collection(), "fields": models.FieldNames(models.Message{})},
		},
	})
}

func envFlag(set bool) string {
	if set {
		return "✅ Set"
	}
	return "❌ Not Set"
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
