package blacklist

import (
	"context"

	"github.com/google/uuid"

	"swiftscreen/internal/domain"
)

// Store persists blacklist records.
//
// Error contract: FindByID and FindByINN return sentinel.ErrNotFound
// (optionally wrapped) when the record does not exist; infrastructure
// failures are returned wrapped with context.
type Store interface {
	Create(ctx context.Context, rec *domain.BlacklistRecord) error
	Update(ctx context.Context, rec *domain.BlacklistRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.BlacklistRecord, error)
	FindByINN(ctx context.Context, inn string) (*domain.BlacklistRecord, error)
	List(ctx context.Context) ([]*domain.BlacklistRecord, error)
}
