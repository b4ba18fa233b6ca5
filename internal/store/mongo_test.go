package store

import (
	"context"
	"os"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/panny-app/panny-backend/internal/models"
)

// openTestStore connects to the server named by DATABASE_TEST_URL with a
// throwaway database and registers cleanup that drops it. The test is
// skipped when the variable is unset.
func openTestStore(t *testing.T) *Mongo {
	t.Helper()
	uri := os.Getenv("DATABASE_TEST_URL")
	if uri == "" {
		t.Skip("DATABASE_TEST_URL not set")
	}
	name := "panny_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	m, err := Connect(ctx, uri, name)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := m.db.Drop(ctx); err != nil {
			t.Errorf("drop test database: %v", err)
		}
		_ = m.Close(ctx)
	})
	return m
}

func TestMongoConversationRoundTrip(t *testing.T) {
	m := openTestStore(t)
	ctx := context.Background()
	at := time.Date(2025, 8, 17, 10, 0, 0, 0, time.UTC)

	id, err := m.CreateConversation(ctx, at)
	if err != nil {
		t.Fatalf("create conversation: %v", err)
	}

	docs, err := m.FindConversations(ctx, 20)
	if err != nil {
		t.Fatalf("find conversations: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(docs))
	}

	out := Serialize(docs[0])
	if out["id"] != id {
		t.Fatalf("id = %v, want %v", out["id"], id)
	}
	if out["title"] != nil || out["user_id"] != nil {
		t.Fatalf("title/user_id should be null: %v", docs[0])
	}
	created, ok := out["created_at"].(string)
	if !ok {
		t.Fatalf("created_at should serialize to string, got %T", out["created_at"])
	}
	if _, err := time.Parse(time.RFC3339Nano, created); err != nil {
		t.Fatalf("created_at %q not ISO 8601: %v", created, err)
	}
}

func TestMongoTouchConversation(t *testing.T) {
	m := openTestStore(t)
	ctx := context.Background()
	at := time.Date(2025, 8, 17, 10, 0, 0, 0, time.UTC)

	id, err := m.CreateConversation(ctx, at)
	if err != nil {
		t.Fatalf("create conversation: %v", err)
	}
	if err := m.TouchConversation(ctx, id, at.Add(time.Hour)); err != nil {
		t.Fatalf("touch: %v", err)
	}

	docs, err := m.FindConversations(ctx, 1)
	if err != nil {
		t.Fatalf("find conversations: %v", err)
	}
	updated := docs[0]["updated_at"].(primitive.DateTime).Time().UTC()
	if !updated.Equal(at.Add(time.Hour)) {
		t.Fatalf("updated_at = %v, want %v", updated, at.Add(time.Hour))
	}

	// A valid id that matches nothing must not error.
	if err := m.TouchConversation(ctx, primitive.NewObjectID().Hex(), at); err != nil {
		t.Fatalf("touch of unknown id: %v", err)
	}
	// A malformed id must.
	if err := m.TouchConversation(ctx, "not-an-id", at); err == nil {
		t.Fatal("expected error for malformed id")
	}
}

func TestMongoFindConversationsOrderAndLimit(t *testing.T) {
	m := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 8, 17, 10, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := m.CreateConversation(ctx, base.Add(time.Duration(i)*time.Minute))
		if err != nil {
			t.Fatalf("create conversation %d: %v", i, err)
		}
		ids = append(ids, id)
	}

	docs, err := m.FindConversations(ctx, 2)
	if err != nil {
		t.Fatalf("find conversations: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(docs))
	}
	if got := Serialize(docs[0])["id"]; got != ids[2] {
		t.Fatalf("newest first: got %v, want %v", got, ids[2])
	}
	if got := Serialize(docs[1])["id"]; got != ids[1] {
		t.Fatalf("second newest: got %v, want %v", got, ids[1])
	}
}

func TestMongoMessagesFilterAndOrder(t *testing.T) {
	m := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 8, 17, 10, 0, 0, 0, time.UTC)

	mine, err := m.CreateConversation(ctx, base)
	if err != nil {
		t.Fatalf("create conversation: %v", err)
	}
	other, err := m.CreateConversation(ctx, base)
	if err != nil {
		t.Fatalf("create conversation: %v", err)
	}

	insert := func(convID, role, content string, at time.Time) {
		t.Helper()
		msg := &models.Message{
			ConversationID: convID,
			Role:           role,
			Content:        content,
			CreatedAt:      at,
			UpdatedAt:      at,
		}
		if err := m.InsertMessage(ctx, msg); err != nil {
			t.Fatalf("insert message: %v", err)
		}
	}
	insert(mine, models.RoleAssistant, "second", base.Add(time.Second))
	insert(mine, models.RoleUser, "first", base)
	insert(other, models.RoleUser, "elsewhere", base)

	docs, err := m.FindMessages(ctx, mine, 100)
	if err != nil {
		t.Fatalf("find messages: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(docs))
	}
	if got := docs[0]["content"]; got != "first" {
		t.Fatalf("oldest first: got %v", got)
	}
	if got := docs[1]["content"]; got != "second" {
		t.Fatalf("newest last: got %v", got)
	}

	limited, err := m.FindMessages(ctx, mine, 1)
	if err != nil {
		t.Fatalf("find messages: %v", err)
	}
	if len(limited) != 1 || limited[0]["content"] != "first" {
		t.Fatalf("limit should keep the oldest: %v", limited)
	}
}

func TestMongoCollectionNames(t *testing.T) {
	m := openTestStore(t)
	ctx := context.Background()

	if _, err := m.CreateConversation(ctx, time.Now().UTC()); err != nil {
		t.Fatalf("create conversation: %v", err)
	}
	msg := &models.Message{ConversationID: "x", Role: models.RoleUser, Content: "hi",
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC()}
	if err := m.InsertMessage(ctx, msg); err != nil {
		t.Fatalf("insert message: %v", err)
	}

	names, err := m.CollectionNames(ctx)
	if err != nil {
		t.Fatalf("collection names: %v", err)
	}
	if !slices.Contains(names, "conversation") || !slices.Contains(names, "message") {
		t.Fatalf("collections = %v", names)
	}
}
