// Package store is the document-store access layer. Handlers and the chat
// service talk to the Store interface; the Mongo type is the production
// implementation.
package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/panny-app/panny-backend/internal/models"
)

// Store is the persistence contract the HTTP layer runs on. Read methods
// return raw documents so callers can push them through Serialize, the
// same way every stored record leaves the API.
type Store interface {
	// CreateConversation inserts a conversation with null title and user
	// id and both timestamps set to at. Returns the new id in string form.
	CreateConversation(ctx context.Context, at time.Time) (string, error)

	// TouchConversation sets updated_at on the conversation. A well formed
	// id that matches no record is a silent no-op; a malformed id is an
	// error.
	TouchConversation(ctx context.Context, id string, at time.Time) error

	// InsertMessage appends a message document.
	InsertMessage(ctx context.Context, msg *models.Message) error

	// FindConversations returns up to limit conversation documents, newest
	// updated_at first.
	FindConversations(ctx context.Context, limit int) ([]bson.M, error)

	// FindMessages returns up to limit message documents belonging to one
	// conversation, oldest created_at first.
	FindMessages(ctx context.Context, conversationID string, limit int) ([]bson.M, error)

	// CollectionNames lists the collections present in the database.
	CollectionNames(ctx context.Context) ([]string, error)

	// Name reports the database name.
	Name() string
}
