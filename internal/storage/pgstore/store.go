package pgstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/documents/domain"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/storage"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
)

// Store keeps each collection in its own table of JSONB documents. seq
// records insertion order and breaks sort ties. Tables are created on first
// use of a collection.
type Store struct {
	db    *sql.DB
	ready sync.Map // collection -> struct{}
	mu    sync.Mutex
}

// Open connects through the pgx database/sql driver. sql.Open does not dial,
// so an unreachable server surfaces on Ping or first use.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return New(db), nil
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func table(collection string) string {
	return pq.QuoteIdentifier(collection)
}

// Migrate creates the collection tables if they do not exist.
func (s *Store) Migrate(ctx context.Context, collections ...string) error {
	for _, c := range collections {
		if err := s.ensure(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) ensure(ctx context.Context, collection string) error {
	if _, ok := s.ready.Load(collection); ok {
		return nil
	}

	// concurrent CREATE TABLE IF NOT EXISTS can still collide in pg_type
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ready.Load(collection); ok {
		return nil
	}

	q := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id   TEXT PRIMARY KEY,
			seq  BIGSERIAL,
			body JSONB NOT NULL
		)`, table(collection))
	if _, err := s.db.ExecContext(ctx, q); err != nil {
		return classify("migrate "+collection, err, nil)
	}

	s.ready.Store(collection, struct{}{})
	return nil
}

func (s *Store) Insert(ctx context.Context, collection string, doc domain.Document) (domain.InsertResult, error) {
	if err := s.ensure(ctx, collection); err != nil {
		return domain.InsertResult{}, err
	}

	id := storage.NewID()

	stored := make(domain.Document, len(doc)+1)
	for k, v := range doc {
		stored[k] = v
	}
	stored[domain.FieldID] = id

	body, err := json.Marshal(stored)
	if err != nil {
		return domain.InsertResult{}, fmt.Errorf("%w: marshal document: %w", domain.ErrStorageWrite, err)
	}

	q := fmt.Sprintf(`INSERT INTO %s (id, body) VALUES ($1, $2)`, table(collection))
	if _, err := s.db.ExecContext(ctx, q, id, body); err != nil {
		return domain.InsertResult{}, classify("insert", err, domain.ErrStorageWrite)
	}

	return domain.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (s *Store) ListAll(ctx context.Context, collection, sortKey string, dir domain.SortDirection) ([]domain.Document, error) {
	if err := s.ensure(ctx, collection); err != nil {
		return nil, err
	}

	order := "ASC NULLS FIRST"
	if dir == domain.Descending {
		order = "DESC NULLS LAST"
	}

	q := fmt.Sprintf(`SELECT body FROM %s ORDER BY body -> $1 %s, seq ASC`, table(collection), order)
	rows, err := s.db.QueryContext(ctx, q, sortKey)
	if err != nil {
		return nil, classify("list", err, nil)
	}
	defer rows.Close()

	out := make([]domain.Document, 0, 16)
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		doc, err := decode(body)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list", err, nil)
	}
	return out, nil
}

func (s *Store) FindByID(ctx context.Context, collection, id string) (domain.Document, error) {
	oid, err := storage.ParseID(id)
	if err != nil {
		return nil, err
	}
	id = oid.Hex()
	if err := s.ensure(ctx, collection); err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`SELECT body FROM %s WHERE id = $1`, table(collection))
	var body []byte
	err = s.db.QueryRowContext(ctx, q, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("find", err, nil)
	}
	return decode(body)
}

func (s *Store) DeleteByID(ctx context.Context, collection, id string) (domain.DeleteResult, error) {
	oid, err := storage.ParseID(id)
	if err != nil {
		return domain.DeleteResult{}, err
	}
	id = oid.Hex()
	if err := s.ensure(ctx, collection); err != nil {
		return domain.DeleteResult{}, err
	}

	q := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table(collection))
	res, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.DeleteResult{}, classify("delete", err, domain.ErrStorageWrite)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return domain.DeleteResult{}, fmt.Errorf("rows affected: %w", err)
	}
	return domain.DeleteResult{Acknowledged: true, DeletedCount: n}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: postgres ping: %w", domain.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *Store) Close(context.Context) error {
	return s.db.Close()
}

func decode(body []byte) (domain.Document, error) {
	var doc domain.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return doc, nil
}

func classify(op string, err error, writeErr error) error {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: postgres %s: %w", domain.ErrStorageUnavailable, op, err)
	}

	var pgErr *pgconn.PgError
	if writeErr != nil && errors.As(err, &pgErr) {
		return fmt.Errorf("%w: postgres %s: %s (%s): %w", writeErr, op, pgErr.Message, pgErr.Code, err)
	}
	return fmt.Errorf("postgres %s: %w", op, err)
}
