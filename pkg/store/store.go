package store

import (
	"context"
	"encoding/json"
	"errors"
)

// Store is a generic keyed store without expiry.
type Store[V any] interface {
	// Get returns ErrNotFound when the key does not exist.
	Get(ctx context.Context, key string) (V, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value V) error

	// Add stores value only when key is absent and reports whether it did.
	Add(ctx context.Context, key string, value V) (bool, error)

	Delete(ctx context.Context, key string) error

	// Close releases resources owned by the store.
	Close() error
}

// Marshaler serializes values for backends that store bytes.
type Marshaler[V any] interface {
	Marshal(v V) ([]byte, error)
	Unmarshal(data []byte) (V, error)
}

type jsonMarshaler[V any] struct{}

func (jsonMarshaler[V]) Marshal(v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func (jsonMarshaler[V]) Unmarshal(data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrUnmarshal, err)
	}
	return v, nil
}

// Seed adds every value whose key is absent. Existing values are kept.
func Seed[V any](ctx context.Context, s Store[V], values map[string]V) error {
	for key, v := range values {
		if _, err := s.Add(ctx, key, v); err != nil {
			return err
		}
	}
	return nil
}
