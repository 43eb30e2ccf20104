package repository

import (
	"Cruder/internal/crud"
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedGeneratedKey = errors.New("key type cannot be generated")
	ErrKeysExhausted           = errors.New("no generated keys left")
)

// MemoryRepository keeps values in a map, in insertion order. Generated keys
// come from a sequence starting at 1, or from uuid.New for uuid keys.
type MemoryRepository[T any, K comparable] struct {
	mutex  sync.RWMutex
	key    *crud.KeyInfo[T, K]
	values map[K]T
	order  []K
	seq    int64
}

func NewMemoryRepository[T any, K comparable]() (*MemoryRepository[T, K], error) {
	key, err := crud.ResolveKey[T, K]()
	if err != nil {
		return nil, err
	}
	return &MemoryRepository[T, K]{
		key:    key,
		values: make(map[K]T),
	}, nil
}

func (r *MemoryRepository[T, K]) ReadAll(_ context.Context) ([]T, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	entities := make([]T, 0, len(r.order))
	for _, k := range r.order {
		entities = append(entities, r.values[k])
	}
	return entities, nil
}

func (r *MemoryRepository[T, K]) Read(_ context.Context, key K) (*T, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	entity, ok := r.values[key]
	if !ok {
		return nil, nil
	}
	return &entity, nil
}

// Create stores a copy of entity. With a caller supplied key, a zero or
// already used key is rejected.
func (r *MemoryRepository[T, K]) Create(_ context.Context, entity *T) (*T, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	stored := *entity
	if r.key.Generated() {
		k, err := r.nextKey()
		if err != nil {
			return nil, err
		}
		r.key.Set(&stored, k)
	}
	k := r.key.Get(&stored)
	if r.key.IsZero(k) {
		return nil, nil
	}
	if _, exists := r.values[k]; exists {
		return nil, nil
	}
	r.values[k] = stored
	r.order = append(r.order, k)

	created := stored
	return &created, nil
}

func (r *MemoryRepository[T, K]) Update(_ context.Context, key K, entity *T) (bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, exists := r.values[key]; !exists {
		return false, nil
	}
	stored := *entity
	r.key.Set(&stored, key)
	r.values[key] = stored
	return true, nil
}

func (r *MemoryRepository[T, K]) Delete(_ context.Context, key K) (bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, exists := r.values[key]; !exists {
		return false, nil
	}
	delete(r.values, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (r *MemoryRepository[T, K]) nextKey() (K, error) {
	var key K
	if id, ok := any(&key).(*uuid.UUID); ok {
		*id = uuid.New()
		return key, nil
	}

	next := r.seq + 1
	v := reflect.ValueOf(&key).Elem()
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.OverflowInt(next) {
			return key, fmt.Errorf("%w: %s", ErrKeysExhausted, v.Type())
		}
		v.SetInt(next)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v.OverflowUint(uint64(next)) {
			return key, fmt.Errorf("%w: %s", ErrKeysExhausted, v.Type())
		}
		v.SetUint(uint64(next))
	case reflect.String:
		v.SetString(strconv.FormatInt(next, 10))
	default:
		return key, fmt.Errorf("%w: %s", ErrUnsupportedGeneratedKey, v.Type())
	}
	r.seq = next
	return key, nil
}
