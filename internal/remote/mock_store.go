package remote

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

var _ Store = (*MockStore)(nil)

// MockStore is a testify mock of Store shared by tests of the packages
// that consume the remote store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, key string) (bson.M, error) {
	args := m.Called(ctx, key)
	doc, _ := args.Get(0).(bson.M)
	return doc, args.Error(1)
}

func (m *MockStore) Set(ctx context.Context, key string, doc bson.M) error {
	args := m.Called(ctx, key, doc)
	return args.Error(0)
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStore) ListAll(ctx context.Context, namespace string) ([]bson.M, error) {
	args := m.Called(ctx, namespace)
	docs, _ := args.Get(0).([]bson.M)
	return docs, args.Error(1)
}
