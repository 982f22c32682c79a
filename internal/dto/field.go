// Package dto defines data transfer objects (request parameters and response structs).
package dto

import "github.com/bytedance/sonic"

// Field is an optional request field that distinguishes "absent" from
// "present but null". UnmarshalJSON only runs for keys present in the
// payload, so Present is false for omitted fields.
type Field[T any] struct {
	Present bool
	Valid   bool
	Value   T
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Present = true
	if string(data) == "null" {
		f.Valid = false
		var zero T
		f.Value = zero
		return nil
	}
	if err := sonic.Unmarshal(data, &f.Value); err != nil {
		return err
	}
	f.Valid = true
	return nil
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Present || !f.Valid {
		return []byte("null"), nil
	}
	return sonic.Marshal(f.Value)
}

// Get returns the value and whether it was explicitly provided.
func (f Field[T]) Get() (T, bool) {
	return f.Value, f.Present && f.Valid
}
