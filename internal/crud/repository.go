package crud

import "context"

// Repository is the store a CRUD handler forwards to. Absence is reported
// with a nil value or false, never with an error; errors mean the store
// itself failed.
type Repository[T any, K comparable] interface {
	ReadAll(ctx context.Context) ([]T, error)
	Read(ctx context.Context, key K) (*T, error)
	Create(ctx context.Context, value *T) (*T, error)
	Update(ctx context.Context, key K, value *T) (bool, error)
	Delete(ctx context.Context, key K) (bool, error)
}
