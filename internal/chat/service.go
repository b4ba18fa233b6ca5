package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/panny-app/panny-backend/internal/models"
	"github.com/panny-app/panny-backend/internal/store"
)

// historyLimit caps the message read-back attached to each chat turn.
const historyLimit = 50

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// TurnResult is what a completed chat turn hands back to the transport.
type TurnResult struct {
	ConversationID string
	Reply          string
	Messages       []models.ChatMessage
}

// Turn runs one chat exchange. The writes are not transactional: a failure
// midway leaves the earlier writes in place, so an orphaned user message
// can survive a failed turn.
func (s *Service) Turn(ctx context.Context, conversationID, message string) (*TurnResult, error) {
	now := time.Now().UTC()

	// 1) ensure the conversation exists: create on empty id, touch otherwise
	if conversationID == "" {
		id, err := s.store.CreateConversation(ctx, now)
		if err != nil {
			return nil, fmt.Errorf("create conversation: %w", err)
		}
		conversationID = id
	} else if err := s.store.TouchConversation(ctx, conversationID, now); err != nil {
		return nil, fmt.Errorf("touch conversation: %w", err)
	}

	// 2) store user message
	userMsg := &models.Message{
		ConversationID: conversationID,
		Role:           models.RoleUser,
		Content:        message,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.InsertMessage(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("insert user message: %w", err)
	}

	// 3) generate the scripted reply
	reply := GenerateReply(message)

	// 4) store assistant message
	replyAt := time.Now().UTC()
	assistantMsg := &models.Message{
		ConversationID: conversationID,
		Role:           models.RoleAssistant,
		Content:        reply,
		CreatedAt:      replyAt,
		UpdatedAt:      replyAt,
	}
	if err := s.store.InsertMessage(ctx, assistantMsg); err != nil {
		return nil, fmt.Errorf("insert assistant message: %w", err)
	}
	if err := s.store.TouchConversation(ctx, conversationID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("touch conversation: %w", err)
	}

	// 5) read back recent history, oldest first
	docs, err := s.store.FindMessages(ctx, conversationID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("read back messages: %w", err)
	}
	messages := make([]models.ChatMessage, 0, len(docs))
	for _, doc := range docs {
		messages = append(messages, models.ChatMessageFromDoc(store.Serialize(doc)))
	}

	return &TurnResult{
		ConversationID: conversationID,
		Reply:          reply,
		Messages:       messages,
	}, nil
}
