package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/panny-app/panny-backend/internal/models"
)

const defaultDatabaseName = "panny"

// Mongo is the production Store backed by a MongoDB database.
type Mongo struct {
	client        *mongo.Client
	db            *mongo.Database
	conversations *mongo.Collection
	messages      *mongo.Collection
}

// Connect builds a Mongo store for the given connection string. The
// driver connects lazily, so an unreachable server surfaces on first use
// rather than here. An empty name falls back to the default database.
func Connect(ctx context.Context, uri, name string) (*Mongo, error) {
	if name == "" {
		name = defaultDatabaseName
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	db := client.Database(name)
	return &Mongo{
		client:        client,
		db:            db,
		conversations: db.Collection(models.Conversation{}.Collection()),
		messages:      db.Collection(models.Message{}.Collection()),
	}, nil
}

// Close releases the underlying client. Call once on shutdown.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Name reports the database name.
func (m *Mongo) Name() string { return m.db.Name() }

func (m *Mongo) CreateConversation(ctx context.Context, at time.Time) (string, error) {
	conv := &models.Conversation{CreatedAt: at, UpdatedAt: at}
	res, err := m.conversations.InsertOne(ctx, conv)
	if err != nil {
		return "", err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprint(res.InsertedID), nil
}

func (m *Mongo) TouchConversation(ctx context.Context, id string, at time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("conversation id %q: %w", id, err)
	}
	_, err = m.conversations.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"updated_at": at}},
	)
	return err
}

func (m *Mongo) InsertMessage(ctx context.Context, msg *models.Message) error {
	_, err := m.messages.InsertOne(ctx, msg)
	return err
}

func (m *Mongo) FindConversations(ctx context.Context, limit int) ([]bson.M, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := m.conversations.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	return drain(ctx, cur)
}

func (m *Mongo) FindMessages(ctx context.Context, conversationID string, limit int) ([]bson.M, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(int64(limit))
	cur, err := m.messages.Find(ctx, bson.M{"conversation_id": conversationID}, opts)
	if err != nil {
		return nil, err
	}
	return drain(ctx, cur)
}

func (m *Mongo) CollectionNames(ctx context.Context) ([]string, error) {
	return m.db.ListCollectionNames(ctx, bson.M{})
}

func drain(ctx context.Context, cur *mongo.Cursor) ([]bson.M, error) {
	docs := make([]bson.M, 0)
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
