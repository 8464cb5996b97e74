// Package memstore keeps documents in process memory. It backs the handler
// tests and local runs with STORAGE_DRIVER=memory.
package memstore

import (
	"context"
	"sync"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/documents/domain"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/storage"
)

type Store struct {
	mu          sync.RWMutex
	collections map[string][]domain.Document
	pingErr     error
}

func New() *Store {
	return &Store{collections: make(map[string][]domain.Document)}
}

// FailPing makes Ping return err until called again with nil.
func (s *Store) FailPing(err error) {
	s.mu.Lock()
	s.pingErr = err
	s.mu.Unlock()
}

func (s *Store) Insert(_ context.Context, collection string, doc domain.Document) (domain.InsertResult, error) {
	stored := copyDocument(doc)
	id := storage.NewID()
	stored[domain.FieldID] = id

	s.mu.Lock()
	s.collections[collection] = append(s.collections[collection], stored)
	s.mu.Unlock()

	return domain.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (s *Store) ListAll(_ context.Context, collection, sortKey string, dir domain.SortDirection) ([]domain.Document, error) {
	s.mu.RLock()
	docs := make([]domain.Document, 0, len(s.collections[collection]))
	for _, d := range s.collections[collection] {
		docs = append(docs, copyDocument(d))
	}
	s.mu.RUnlock()

	storage.SortDocuments(docs, sortKey, dir)
	return docs, nil
}

func (s *Store) FindByID(_ context.Context, collection, id string) (domain.Document, error) {
	oid, err := storage.ParseID(id)
	if err != nil {
		return nil, err
	}
	id = oid.Hex()

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.collections[collection] {
		if d.ID() == id {
			return copyDocument(d), nil
		}
	}
	return nil, nil
}

func (s *Store) DeleteByID(_ context.Context, collection, id string) (domain.DeleteResult, error) {
	oid, err := storage.ParseID(id)
	if err != nil {
		return domain.DeleteResult{}, err
	}
	id = oid.Hex()

	s.mu.Lock()
	defer s.mu.Unlock()
	docs := s.collections[collection]
	for i, d := range docs {
		if d.ID() == id {
			s.collections[collection] = append(docs[:i:i], docs[i+1:]...)
			return domain.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return domain.DeleteResult{Acknowledged: true, DeletedCount: 0}, nil
}

func (s *Store) Ping(context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pingErr
}

func (s *Store) Close(context.Context) error { return nil }

// copyDocument is shallow; nested values are never mutated after insert.
func copyDocument(d domain.Document) domain.Document {
	out := make(domain.Document, len(d)+1)
	for k, v := range d {
		out[k] = v
	}
	return out
}
