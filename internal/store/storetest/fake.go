// Package storetest provides an in-memory Store double for service and
// handler tests.
package storetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/panny-app/panny-backend/internal/models"
)

// Fake is an in-memory document store. Read methods return raw documents
// shaped the way the Mongo driver decodes them (primitive.ObjectID ids,
// primitive.DateTime timestamps, null optionals) so callers run the same
// serialization path as production code.
type Fake struct {
	mu            sync.Mutex
	conversations []*models.Conversation
	messages      []*models.Message
	insertCalls   int

	// Error hooks. A set error fails the matching operation. When
	// InsertMessageErrOn is non-zero, InsertMessageErr only fires on that
	// call (1-based); otherwise it fires on every call.
	CreateConversationErr error
	TouchConversationErr  error
	InsertMessageErr      error
	InsertMessageErrOn    int
	FindConversationsErr  error
	FindMessagesErr       error
	CollectionNamesErr    error
}

func New() *Fake { return &Fake{} }

func (f *Fake) CreateConversation(ctx context.Context, at time.Time) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateConversationErr != nil {
		return "", f.CreateConversationErr
	}
	conv := &models.Conversation{ID: primitive.NewObjectID(), CreatedAt: at, UpdatedAt: at}
	f.conversations = append(f.conversations, conv)
	return conv.ID.Hex(), nil
}

func (f *Fake) TouchConversation(ctx context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.TouchConversationErr != nil {
		return f.TouchConversationErr
	}
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return err
	}
	// Unknown ids are a no-op, matching an update that matches nothing.
	for _, c := range f.conversations {
		if c.ID.Hex() == id {
			c.UpdatedAt = at
		}
	}
	return nil
}

func (f *Fake) InsertMessage(ctx context.Context, msg *models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertCalls++
	if f.InsertMessageErr != nil && (f.InsertMessageErrOn == 0 || f.InsertMessageErrOn == f.insertCalls) {
		return f.InsertMessageErr
	}
	stored := *msg
	stored.ID = primitive.NewObjectID()
	f.messages = append(f.messages, &stored)
	return nil
}

func (f *Fake) FindConversations(ctx context.Context, limit int) ([]bson.M, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FindConversationsErr != nil {
		return nil, f.FindConversationsErr
	}
	sorted := make([]*models.Conversation, len(f.conversations))
	copy(sorted, f.conversations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	docs := make([]bson.M, 0, len(sorted))
	for _, c := range sorted {
		docs = append(docs, conversationDoc(c))
	}
	return docs, nil
}

func (f *Fake) FindMessages(ctx context.Context, conversationID string, limit int) ([]bson.M, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FindMessagesErr != nil {
		return nil, f.FindMessagesErr
	}
	matched := make([]*models.Message, 0)
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			matched = append(matched, m)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	docs := make([]bson.M, 0, len(matched))
	for _, m := range matched {
		docs = append(docs, messageDoc(m))
	}
	return docs, nil
}

func (f *Fake) CollectionNames(ctx context.Context) ([]string, error) {
	if f.CollectionNamesErr != nil {
		return nil, f.CollectionNamesErr
	}
	return []string{models.Conversation{}.Collection(), models.Message{}.Collection()}, nil
}

func (f *Fake) Name() string { return "panny_test" }

// SeedConversation inserts a conversation with the given timestamps,
// bypassing the Store interface. Returns the hex id.
func (f *Fake) SeedConversation(createdAt, updatedAt time.Time) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	conv := &models.Conversation{ID: primitive.NewObjectID(), CreatedAt: createdAt, UpdatedAt: updatedAt}
	f.conversations = append(f.conversations, conv)
	return conv.ID.Hex()
}

// Conversations returns copies of the stored conversation records.
func (f *Fake) Conversations() []models.Conversation {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Conversation, 0, len(f.conversations))
	for _, c := range f.conversations {
		out = append(out, *c)
	}
	return out
}

// Messages returns copies of the stored message records in insertion order.
func (f *Fake) Messages() []models.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Message, 0, len(f.messages))
	for _, m := range f.messages {
		out = append(out, *m)
	}
	return out
}

func conversationDoc(c *models.Conversation) bson.M {
	return bson.M{
		"_id":        c.ID,
		"title":      strOrNil(c.Title),
		"user_id":    strOrNil(c.UserID),
		"created_at": primitive.NewDateTimeFromTime(c.CreatedAt),
		"updated_at": primitive.NewDateTimeFromTime(c.UpdatedAt),
	}
}

func messageDoc(m *models.Message) bson.M {
	return bson.M{
		"_id":             m.ID,
		"conversation_id": m.ConversationID,
		"role":            m.Role,
		"content":         m.Content,
		"created_at":      primitive.NewDateTimeFromTime(m.CreatedAt),
		"updated_at":      primitive.NewDateTimeFromTime(m.UpdatedAt),
	}
}

func strOrNil(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
