package repository

import (
	"Cruder/internal/crud"
	"context"
	"errors"
	"reflect"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var deletedAtType = reflect.TypeOf(gorm.DeletedAt{})

type GenericRepositoryImpl[T any, K comparable] struct {
	db  *gorm.DB
	key *crud.KeyInfo[T, K]
	// columns Update never overwrites
	readonly []string
	// empty when the model is not soft-deletable
	deletedAt string
}

func NewGenericRepository[T any, K comparable](db *gorm.DB) (GenericRepository[T, K], error) {
	key, err := crud.ResolveKey[T, K]()
	if err != nil {
		return nil, err
	}
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(new(T)); err != nil {
		return nil, err
	}

	readonly := []string{key.Column()}
	deletedAt := ""
	for _, field := range stmt.Schema.Fields {
		if field.DBName == "" {
			continue
		}
		switch {
		case field.FieldType == deletedAtType:
			// only Delete and Purge move a row in or out of the trash
			readonly = append(readonly, field.DBName)
			deletedAt = field.DBName
		case field.AutoCreateTime > 0:
			readonly = append(readonly, field.DBName)
		}
	}

	return &GenericRepositoryImpl[T, K]{
		db:        db,
		key:       key,
		readonly:  readonly,
		deletedAt: deletedAt,
	}, nil
}

func (r *GenericRepositoryImpl[T, K]) byKey(key K) clause.Expression {
	return clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: r.key.Column()}, Value: key}
}

func (r *GenericRepositoryImpl[T, K]) ReadAll(ctx context.Context) ([]T, error) {
	var entities []T
	err := r.db.WithContext(ctx).Find(&entities).Error
	return entities, err
}

func (r *GenericRepositoryImpl[T, K]) Read(ctx context.Context, key K) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).Where(r.byKey(key)).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (r *GenericRepositoryImpl[T, K]) Create(ctx context.Context, entity *T) (*T, error) {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *GenericRepositoryImpl[T, K]) Update(ctx context.Context, key K, entity *T) (bool, error) {
	updated := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current T
		if err := tx.Where(r.byKey(key)).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		r.key.Set(entity, key)
		result := tx.Model(entity).Where(r.byKey(key)).Select("*").Omit(r.readonly...).Updates(entity)
		if result.Error != nil {
			return result.Error
		}
		updated = true
		return nil
	})
	return updated, err
}

func (r *GenericRepositoryImpl[T, K]) Delete(ctx context.Context, key K) (bool, error) {
	result := r.db.WithContext(ctx).Where(r.byKey(key)).Delete(new(T))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *GenericRepositoryImpl[T, K]) Purge(ctx context.Context, before time.Time) (int64, error) {
	if r.deletedAt == "" {
		return 0, nil
	}
	column := clause.Column{Table: clause.CurrentTable, Name: r.deletedAt}
	result := r.db.WithContext(ctx).Unscoped().
		Where(clause.Lt{Column: column, Value: before}).
		Delete(new(T))
	return result.RowsAffected, result.Error
}
