package crud

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"gorm.io/gorm/schema"
	"gorm.io/gorm/utils"
)

// KeySpec names a model's primary key field and whether the store
// generates it on insert.
type KeySpec struct {
	Field     string
	Generated bool
}

// KeyDeclarer lets a model declare its primary key explicitly instead of
// relying on the gorm primaryKey tag.
type KeyDeclarer interface {
	PrimaryKey() KeySpec
}

// KeyInfo is the resolved primary key of T. It is immutable once built.
type KeyInfo[T any, K comparable] struct {
	model     string
	field     *schema.Field
	generated bool
}

// ResolveKey locates the primary key of T and checks that its declared type
// is K.
func ResolveKey[T any, K comparable]() (*KeyInfo[T, K], error) {
	model := new(T)
	s, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoPrimaryKey, err)
	}

	field, generated, err := lookupKey(model, s)
	if err != nil {
		return nil, err
	}

	keyType := reflect.TypeOf((*K)(nil)).Elem()
	if field.FieldType != keyType {
		return nil, fmt.Errorf("%w: %s.%s is %s, not %s", ErrKeyTypeMismatch, s.Name, field.Name, field.FieldType, keyType)
	}

	return &KeyInfo[T, K]{
		model:     s.Name,
		field:     field,
		generated: generated,
	}, nil
}

func lookupKey(model any, s *schema.Schema) (*schema.Field, bool, error) {
	if declarer, ok := model.(KeyDeclarer); ok {
		decl := declarer.PrimaryKey()
		field := s.LookUpField(decl.Field)
		if field == nil {
			return nil, false, fmt.Errorf("%w: %s declares unknown field %q", ErrNoPrimaryKey, s.Name, decl.Field)
		}
		return field, decl.Generated, nil
	}

	var marked []*schema.Field
	for _, field := range s.Fields {
		if utils.CheckTruth(field.TagSettings["PRIMARYKEY"], field.TagSettings["PRIMARY_KEY"]) {
			marked = append(marked, field)
		}
	}
	switch len(marked) {
	case 0:
		return nil, false, fmt.Errorf("%w: %s has no field tagged primaryKey", ErrNoPrimaryKey, s.Name)
	case 1:
		return marked[0], marked[0].AutoIncrement, nil
	default:
		return nil, false, fmt.Errorf("%w: %s has %d fields tagged primaryKey", ErrMultiplePrimaryKeys, s.Name, len(marked))
	}
}

// Model is the Go name of T.
func (k *KeyInfo[T, K]) Model() string {
	return k.model
}

// Name is the Go name of the key field.
func (k *KeyInfo[T, K]) Name() string {
	return k.field.Name
}

// Column is the database column of the key field.
func (k *KeyInfo[T, K]) Column() string {
	return k.field.DBName
}

func (k *KeyInfo[T, K]) Generated() bool {
	return k.generated
}

func (k *KeyInfo[T, K]) Type() reflect.Type {
	return k.field.FieldType
}

func (k *KeyInfo[T, K]) Get(value *T) K {
	return k.field.ReflectValueOf(context.Background(), reflect.ValueOf(value)).Interface().(K)
}

func (k *KeyInfo[T, K]) Set(value *T, key K) {
	k.field.ReflectValueOf(context.Background(), reflect.ValueOf(value)).Set(reflect.ValueOf(key))
}

// Clear resets the key of value to its zero value.
func (k *KeyInfo[T, K]) Clear(value *T) {
	var zero K
	k.Set(value, zero)
}

func (k *KeyInfo[T, K]) IsZero(key K) bool {
	var zero K
	return key == zero
}

func (k *KeyInfo[T, K]) Parse(raw string) (K, error) {
	return ParseKey[K](raw)
}
