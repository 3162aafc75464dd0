// internal/infrastructure/localstore/store.go
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Store keys used by the client core. Values are JSON-serialized.
const (
	KeyCartItems      = "cart:items"
	KeyOrderOverrides = "order:status:overrides"
	KeyLanguage       = "pref:language"
	KeyCategories     = "catalog:categories"
	KeyUserProfile    = "profile:user"
	KeyAuthToken      = "auth:token"
	KeyAdminPIN       = "auth:admin_pin"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("localstore: key not found")

// Store is the persisted, process-wide string-keyed store backing
// cart items, order-status overrides, language preference and caches.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// GetJSON reads a key and unmarshals its value into dest.
func GetJSON(ctx context.Context, s Store, key string, dest interface{}) error {
	value, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(value), dest); err != nil {
		return fmt.Errorf("failed to decode value for %q: %w", key, err)
	}
	return nil
}

// SetJSON marshals value and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for %q: %w", key, err)
	}
	return s.Set(ctx, key, string(data))
}
