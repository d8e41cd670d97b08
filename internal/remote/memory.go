package remote

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore is an in-memory Store used by tests and by local-only runs
// without a remote endpoint configured.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string]bson.M
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]bson.M)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (bson.M, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[key]
	if !ok {
		return nil, nil
	}
	return cloneDoc(doc), nil
}

func (s *MemoryStore) Set(_ context.Context, key string, doc bson.M) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key] = cloneDoc(doc)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, key)
	return nil
}

func (s *MemoryStore) ListAll(_ context.Context, namespace string) ([]bson.M, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var docs []bson.M
	for key, doc := range s.docs {
		if namespaceOf(key) == namespace {
			docs = append(docs, cloneDoc(doc))
		}
	}
	return docs, nil
}

// Len reports the number of stored documents across all namespaces.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

func cloneDoc(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
