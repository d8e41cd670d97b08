package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const documentsCollection = "documents"

// Internal document fields used for addressing; stripped before a
// document is handed back to callers.
const (
	idField        = "_id"
	namespaceField = "namespace"
)

// Connect establishes a connection to MongoDB and verifies it with a
// ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, nil
}

var _ Store = (*MongoStore)(nil)

// MongoStore implements Store on a single MongoDB collection. The full
// key path is the document _id; the namespace is denormalized into its
// own field so ListAll is a plain equality query.
type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(client *mongo.Client, database string) *MongoStore {
	return &MongoStore{
		collection: client.Database(database).Collection(documentsCollection),
	}
}

func (s *MongoStore) Get(ctx context.Context, key string) (bson.M, error) {
	var doc bson.M
	err := s.collection.FindOne(ctx, bson.M{idField: key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", key, err)
	}
	stripMeta(doc)
	return doc, nil
}

// Set creates or overwrites the document at key.
func (s *MongoStore) Set(ctx context.Context, key string, doc bson.M) error {
	stored := bson.M{
		idField:        key,
		namespaceField: namespaceOf(key),
	}
	for k, v := range doc {
		stored[k] = v
	}

	_, err := s.collection.ReplaceOne(ctx, bson.M{idField: key}, stored,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to set document %s: %w", key, err)
	}
	return nil
}

// Delete removes the document at key. Deleting an absent document is not
// an error.
func (s *MongoStore) Delete(ctx context.Context, key string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{idField: key})
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", key, err)
	}
	return nil
}

// ListAll fetches the entire namespace in one snapshot. No pagination:
// cost is proportional to the collection size, matching the pull
// contract.
func (s *MongoStore) ListAll(ctx context.Context, namespace string) ([]bson.M, error) {
	cursor, err := s.collection.Find(ctx, bson.M{namespaceField: namespace})
	if err != nil {
		return nil, fmt.Errorf("failed to list namespace %s: %w", namespace, err)
	}

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode namespace %s: %w", namespace, err)
	}
	for _, doc := range docs {
		stripMeta(doc)
	}
	return docs, nil
}

func namespaceOf(key string) string {
	if i := strings.LastIndex(key, "/"); i >= 0 {
		return key[:i]
	}
	return ""
}

func stripMeta(doc bson.M) {
	delete(doc, idField)
	delete(doc, namespaceField)
}
