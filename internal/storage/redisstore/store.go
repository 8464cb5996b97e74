package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/documents/domain"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/storage"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "portfolio:" // portfolio:{collection}:doc:{id} and portfolio:{collection}:ids

// Store keeps each document as a JSON string and each collection's ids in a
// list in insertion order. Sorting happens in process.
type Store struct {
	client *redis.Client
}

func New(client *redis.Client) *Store {
	return &Store{client: client}
}

// Open builds a client; the connection is established lazily.
func Open(addr, password string, db int) *Store {
	return New(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}))
}

func (s *Store) docKey(collection, id string) string {
	return keyPrefix + collection + ":doc:" + id
}

func (s *Store) idsKey(collection string) string {
	return keyPrefix + collection + ":ids"
}

func (s *Store) Insert(ctx context.Context, collection string, doc domain.Document) (domain.InsertResult, error) {
	id := storage.NewID()

	stored := make(domain.Document, len(doc)+1)
	for k, v := range doc {
		stored[k] = v
	}
	stored[domain.FieldID] = id

	data, err := json.Marshal(stored)
	if err != nil {
		return domain.InsertResult{}, fmt.Errorf("%w: marshal document: %w", domain.ErrStorageWrite, err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.docKey(collection, id), data, 0)
	pipe.RPush(ctx, s.idsKey(collection), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return domain.InsertResult{}, classify("insert", err, domain.ErrStorageWrite)
	}

	return domain.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (s *Store) ListAll(ctx context.Context, collection, sortKey string, dir domain.SortDirection) ([]domain.Document, error) {
	ids, err := s.client.LRange(ctx, s.idsKey(collection), 0, -1).Result()
	if err != nil {
		return nil, classify("list ids", err, nil)
	}
	if len(ids) == 0 {
		return []domain.Document{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.docKey(collection, id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, classify("list documents", err, nil)
	}

	out := make([]domain.Document, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// id listed but document already deleted
			continue
		}
		doc, err := decode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}

	storage.SortDocuments(out, sortKey, dir)
	return out, nil
}

func (s *Store) FindByID(ctx context.Context, collection, id string) (domain.Document, error) {
	oid, err := storage.ParseID(id)
	if err != nil {
		return nil, err
	}
	id = oid.Hex()

	raw, err := s.client.Get(ctx, s.docKey(collection, id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, classify("get", err, nil)
	}
	return decode(raw)
}

func (s *Store) DeleteByID(ctx context.Context, collection, id string) (domain.DeleteResult, error) {
	oid, err := storage.ParseID(id)
	if err != nil {
		return domain.DeleteResult{}, err
	}
	id = oid.Hex()

	pipe := s.client.TxPipeline()
	del := pipe.Del(ctx, s.docKey(collection, id))
	pipe.LRem(ctx, s.idsKey(collection), 0, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return domain.DeleteResult{}, classify("delete", err, domain.ErrStorageWrite)
	}

	return domain.DeleteResult{Acknowledged: true, DeletedCount: del.Val()}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: redis ping: %w", domain.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *Store) Close(context.Context) error {
	return s.client.Close()
}

func decode(raw string) (domain.Document, error) {
	var doc domain.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return doc, nil
}

func classify(op string, err error, writeErr error) error {
	var netErr net.Error
	if errors.Is(err, redis.ErrClosed) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: redis %s: %w", domain.ErrStorageUnavailable, op, err)
	}

	var replyErr redis.Error
	if writeErr != nil && errors.As(err, &replyErr) {
		return fmt.Errorf("%w: redis %s: %w", writeErr, op, err)
	}
	return fmt.Errorf("redis %s: %w", op, err)
}
