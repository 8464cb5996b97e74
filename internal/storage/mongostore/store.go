package mongostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/documents/domain"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store keeps each collection in a MongoDB collection of the same name.
type Store struct {
	db *mongo.Database
}

// Connect builds a client pinned to Stable API v1. It does not wait for the
// deployment; call Ping to verify reachability.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	return New(client.Database(dbName)), nil
}

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) Insert(ctx context.Context, collection string, doc domain.Document) (domain.InsertResult, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, bson.M(doc))
	if err != nil {
		return domain.InsertResult{}, classify("insert", err, domain.ErrStorageWrite)
	}

	id := ""
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		id = oid.Hex()
	}
	return domain.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (s *Store) ListAll(ctx context.Context, collection, sortKey string, dir domain.SortDirection) ([]domain.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: sortKey, Value: int(dir)}})

	cur, err := s.db.Collection(collection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, classify("find", err, nil)
	}

	var raw []bson.M
	if err := cur.All(ctx, &raw); err != nil {
		return nil, classify("find", err, nil)
	}

	out := make([]domain.Document, 0, len(raw))
	for _, m := range raw {
		out = append(out, toDocument(m))
	}
	return out, nil
}

func (s *Store) FindByID(ctx context.Context, collection, id string) (domain.Document, error) {
	oid, err := storage.ParseID(id)
	if err != nil {
		return nil, err
	}

	var m bson.M
	err = s.db.Collection(collection).FindOne(ctx, bson.M{domain.FieldID: oid}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("find one", err, nil)
	}
	return toDocument(m), nil
}

func (s *Store) DeleteByID(ctx context.Context, collection, id string) (domain.DeleteResult, error) {
	oid, err := storage.ParseID(id)
	if err != nil {
		return domain.DeleteResult{}, err
	}

	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{domain.FieldID: oid})
	if err != nil {
		return domain.DeleteResult{}, classify("delete", err, domain.ErrStorageWrite)
	}
	return domain.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// Ping runs {ping: 1} against the admin database.
func (s *Store) Ping(ctx context.Context) error {
	err := s.db.Client().Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
	if err != nil {
		return fmt.Errorf("%w: mongo ping: %w", domain.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

// classify maps driver errors onto the domain sentinels. Write exceptions map
// to writeErr when one is given.
func classify(op string, err error, writeErr error) error {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%w: mongo %s: %w", domain.ErrStorageUnavailable, op, err)
	}

	var we mongo.WriteException
	if writeErr != nil && errors.As(err, &we) {
		return fmt.Errorf("%w: mongo %s: %w", writeErr, op, err)
	}
	return fmt.Errorf("mongo %s: %w", op, err)
}

func toDocument(m bson.M) domain.Document {
	out := make(domain.Document, len(m))
	for k, v := range m {
		out[k] = normalize(v)
	}
	return out
}

// normalize turns driver types into values that encode as plain JSON.
func normalize(v any) any {
	switch t := v.(type) {
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return domain.FormatTimestamp(t.Time())
	case primitive.M:
		return map[string]any(toDocument(t))
	case primitive.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = normalize(e.Value)
		}
		return out
	case primitive.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	default:
		return v
	}
}
