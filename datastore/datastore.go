/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"
)

// KeyValueStore is a durable slot store: one opaque value per key.
type KeyValueStore interface {
	// Load returns the value stored under key. found is false when the key has never
	// been saved or was removed.
	Load(ctx context.Context, key string) (data []byte, found bool, err error)

	// Save replaces the value stored under key.
	Save(ctx context.Context, key string, data []byte) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}
