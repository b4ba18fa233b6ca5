package models

import (
	"reflect"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Conversation is a stored chat thread. Title and UserID are reserved for
// later use and stay null for now.
type Conversation struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     *string            `bson:"title"`
	UserID    *string            `bson:"user_id"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (Conversation) Collection() string { return "conversation" }

// Message is a single utterance inside a conversation. ConversationID
// holds the parent id in string form.
type Message struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	ConversationID string             `bson:"conversation_id"`
	Role           string             `bson:"role"`
	Content        string             `bson:"content"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func (Message) Collection() string { return "message" }

// ConversationOut is the transport shape of a conversation record.
type ConversationOut struct {
	ID        string  `json:"id"`
	Title     *string `json:"title"`
	UserID    *string `json:"user_id"`
	CreatedAt *string `json:"created_at"`
	UpdatedAt *string `json:"updated_at"`
}

// MessageOut is the transport shape of a stored message record.
type MessageOut struct {
	ID             string  `json:"id"`
	ConversationID string  `json:"conversation_id"`
	Role           string  `json:"role"`
	Content        string  `json:"content"`
	CreatedAt      *string `json:"created_at"`
}

// ChatMessage is the trimmed message shape embedded in chat responses.
type ChatMessage struct {
	ConversationID string  `json:"conversation_id"`
	Role           string  `json:"role"`
	Content        string  `json:"content"`
	CreatedAt      *string `json:"created_at"`
}

// ConversationOutFromDoc builds a ConversationOut from a serialized
// document. Missing or oddly typed fields degrade to zero values rather
// than failing.
func ConversationOutFromDoc(doc bson.M) ConversationOut {
	return ConversationOut{
		ID:        docString(doc, "id"),
		Title:     docStringPtr(doc, "title"),
		UserID:    docStringPtr(doc, "user_id"),
		CreatedAt: docStringPtr(doc, "created_at"),
		UpdatedAt: docStringPtr(doc, "updated_at"),
	}
}

// MessageOutFromDoc builds a MessageOut from a serialized document.
func MessageOutFromDoc(doc bson.M) MessageOut {
	return MessageOut{
		ID:             docString(doc, "id"),
		ConversationID: docString(doc, "conversation_id"),
		Role:           docString(doc, "role"),
		Content:        docString(doc, "content"),
		CreatedAt:      docStringPtr(doc, "created_at"),
	}
}

// ChatMessageFromDoc builds a ChatMessage from a serialized document.
func ChatMessageFromDoc(doc bson.M) ChatMessage {
	return ChatMessage{
		ConversationID: docString(doc, "conversation_id"),
		Role:           docString(doc, "role"),
		Content:        docString(doc, "content"),
		CreatedAt:      docStringPtr(doc, "created_at"),
	}
}

// FieldNames lists the bson field names declared on a record type,
// excluding the store-assigned identifier.
func FieldNames(v any) []string {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	fields := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("bson"), ",")
		if name == "" || name == "-" || name == "_id" {
			continue
		}
		fields = append(fields, name)
	}
	return fields
}

func docString(doc bson.M, key string) string {
	s, _ := doc[key].(string)
	return s
}

func docStringPtr(doc bson.M, key string) *string {
	if s, ok := doc[key].(string); ok {
		return &s
	}
	return nil
}
