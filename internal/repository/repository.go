package repository

import (
	"Cruder/internal/crud"
	"context"
	"time"
)

type GenericRepository[T any, K comparable] interface {
	crud.Repository[T, K]
	// Purge hard-deletes soft-deleted rows deleted before the given time.
	Purge(ctx context.Context, before time.Time) (int64, error)
}
