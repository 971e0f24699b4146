// Package optional distinguishes an absent JSON field from an explicit null.
package optional

import "encoding/json"

// Optional holds a JSON field that may be absent, null or set.
type Optional[T any] struct {
	Value T
	// Set is true when the field was present in the document, including null.
	Set  bool
	Null bool
}

// Of returns a set Optional holding v.
func Of[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// UnmarshalJSON is only called for present fields.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}

	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}

	return json.Marshal(o.Value)
}

// Ptr returns nil unless the field holds a value.
func (o Optional[T]) Ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value

	return &v
}
