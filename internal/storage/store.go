package storage

import (
	"context"
	"fmt"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/documents/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the process-wide document store. Implementations must be safe for
// concurrent use; one handle is shared by every request.
type Store interface {
	// Insert assigns a new identifier to doc, persists it and acknowledges.
	Insert(ctx context.Context, collection string, doc domain.Document) (domain.InsertResult, error)
	// ListAll returns every document of the collection ordered by sortKey.
	ListAll(ctx context.Context, collection, sortKey string, dir domain.SortDirection) ([]domain.Document, error)
	// FindByID returns nil, nil when no document matches.
	FindByID(ctx context.Context, collection, id string) (domain.Document, error)
	// DeleteByID reports DeletedCount 0 when no document matches.
	DeleteByID(ctx context.Context, collection, id string) (domain.DeleteResult, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// NewID returns a fresh identifier in the ObjectID hex form every backend uses.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// ParseID validates a client-supplied identifier.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q: %v", domain.ErrInvalidIdentifier, id, err)
	}
	return oid, nil
}
