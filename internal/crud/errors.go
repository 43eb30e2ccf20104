package crud

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrNoPrimaryKey        = errors.New("no primary key")
	ErrMultiplePrimaryKeys = errors.New("multiple primary keys")
	ErrKeyTypeMismatch     = errors.New("primary key type mismatch")
	ErrInvalidKey          = errors.New("invalid key")
)

// KeyError is returned when a raw route key cannot be converted to the
// primary key's type.
type KeyError struct {
	Raw  string
	Type reflect.Type
	Err  error
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("invalid key %q for type %s: %v", e.Raw, e.Type, e.Err)
}

func (e *KeyError) Unwrap() []error {
	return []error{ErrInvalidKey, e.Err}
}
