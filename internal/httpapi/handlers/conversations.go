package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/panny-app/panny-backend/internal/models"
	"github.com/panny-app/panny-backend/internal/store"
)

const (
	defaultConversationLimit = 20
	defaultMessageLimit      = 100
)

// ListConversations returns recent conversations, newest activity first.
// Without a store it degrades to an empty list rather than an error.
func (h *Handler) ListConversations(c *gin.Context) {
	limit := limitQuery(c, defaultConversationLimit)

	out := make([]models.ConversationOut, 0)
	if h.Store == nil {
		c.JSON(http.StatusOK, out)
		return
	}

	docs, err := h.Store.FindConversations(c.Request.Context(), limit)
	if err != nil {
		h.Log.Error("failed to list conversations", zap.Error(err))
		detail(c, http.StatusInternalServerError, "failed to list conversations")
		return
	}
	for _, doc := range docs {
		out = append(out, models.ConversationOutFromDoc(store.Serialize(doc)))
	}
	c.JSON(http.StatusOK, out)
}

// ListMessages returns one conversation's messages, oldest first. An
// unknown conversation id yields an empty list, not a 404.
func (h *Handler) ListMessages(c *gin.Context) {
	if h.Store == nil {
		detail(c, http.StatusInternalServerError, detailStoreUnavailable)
		return
	}

	conversationID := c.Param("id")
	limit := limitQuery(c, defaultMessageLimit)

	docs, err := h.Store.FindMessages(c.Request.Context(), conversationID, limit)
	if err != nil {
		h.Log.Error("failed to list messages",
			zap.Error(err),
			zap.String("conversation_id", conversationID))
		detail(c, http.StatusInternalServerError, "failed to list messages")
		return
	}
	out := make([]models.MessageOut, 0, len(docs))
	for _, doc := range docs {
		out = append(out, models.MessageOutFromDoc(store.Serialize(doc)))
	}
	c.JSON(http.StatusOK, out)
}
