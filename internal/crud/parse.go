package crud

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
)

// ParseKey converts a route parameter into a key of type K. Keys whose
// pointer implements encoding.TextUnmarshaler (uuid.UUID for instance) parse
// themselves; everything else is handled by kind.
func ParseKey[K comparable](raw string) (K, error) {
	var key K
	if u, ok := any(&key).(encoding.TextUnmarshaler); ok {
		if err := u.UnmarshalText([]byte(raw)); err != nil {
			var zero K
			return zero, newKeyError[K](raw, err)
		}
		return key, nil
	}

	v := reflect.ValueOf(&key).Elem()
	switch v.Kind() {
	case reflect.String:
		v.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, v.Type().Bits())
		if err != nil {
			return key, newKeyError[K](raw, err)
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, v.Type().Bits())
		if err != nil {
			return key, newKeyError[K](raw, err)
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, v.Type().Bits())
		if err != nil {
			return key, newKeyError[K](raw, err)
		}
		v.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return key, newKeyError[K](raw, err)
		}
		v.SetBool(b)
	default:
		return key, newKeyError[K](raw, fmt.Errorf("unsupported key kind %s", v.Kind()))
	}
	return key, nil
}

func newKeyError[K comparable](raw string, err error) *KeyError {
	return &KeyError{
		Raw:  raw,
		Type: reflect.TypeOf((*K)(nil)).Elem(),
		Err:  err,
	}
}
