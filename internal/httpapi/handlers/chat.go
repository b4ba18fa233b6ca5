package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/panny-app/panny-backend/internal/models"
)

type chatRequest struct {
	ConversationID string `json:"conversation_id"`
	// Message is a pointer so an explicitly empty message is accepted
	// while a missing field is rejected.
	Message *string `json:"message"`
}

type chatResponse struct {
	ConversationID string               `json:"conversation_id"`
	Reply          string               `json:"reply"`
	Messages       []models.ChatMessage `json:"messages"`
}

// Chat runs one chat turn: persist the user message, generate the scripted
// reply, persist that too, and return the recent history.
func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == nil {
		detail(c, http.StatusBadRequest, "message is required")
		return
	}
	if h.Store == nil {
		detail(c, http.StatusInternalServerError, detailStoreUnavailable)
		return
	}

	res, err := h.ChatSvc.Turn(c.Request.Context(), req.ConversationID, *req.Message)
	if err != nil {
		h.Log.Error("chat turn failed",
			zap.Error(err),
			zap.String("conversation_id", req.ConversationID))
		detail(c, http.StatusInternalServerError, "failed to process chat message")
		return
	}

	c.JSON(http.StatusOK, chatResponse{
		ConversationID: res.ConversationID,
		Reply:          res.Reply,
		Messages:       res.Messages,
	})
}
