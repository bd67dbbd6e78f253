package model

import (
	"bytes"
	"encoding/json"
)

// Optional holds a value that may be absent, explicitly null, or present.
//
// The zero value is absent. JSON decoding only calls UnmarshalJSON when the
// key exists in the payload, so a field that was never sent stays absent,
// while `null` flips it to the null state.
type Optional[T any] struct {
	value   T
	present bool
	null    bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// Null returns an Optional that was explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{null: true}
}

// Get returns the value and whether one is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// OrElse returns the value if present, fallback otherwise.
func (o Optional[T]) OrElse(fallback T) T {
	if o.present {
		return o.value
	}
	return fallback
}

func (o Optional[T]) IsPresent() bool { return o.present }
func (o Optional[T]) IsNull() bool    { return o.null }
func (o Optional[T]) IsAbsent() bool  { return !o.present && !o.null }

// IsZero lets encoding/json's omitzero option skip absent fields.
func (o Optional[T]) IsZero() bool {
	return o.IsAbsent()
}

// Bind returns the value to pass as a SQL parameter: the value itself when
// present, nil (SQL NULL) otherwise. Statements pair it with COALESCE so
// that NULL means "keep what is stored".
func (o Optional[T]) Bind() any {
	if !o.present {
		return nil
	}
	return o.value
}

// Map returns a new Optional with f applied to the value, keeping absent and
// null as they are.
func Map[T, U any](o Optional[T], f func(T) U) Optional[U] {
	switch {
	case o.present:
		return Some(f(o.value))
	case o.null:
		return Null[U]()
	default:
		return Optional[U]{}
	}
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.present {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Null[T]()
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
