/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bookshelf

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/bookshelf/datastore"
	"github.com/suparena/bookshelf/storagemodels"
)

// Registry hands out at most one open Collection per storage key of a backend,
// so the id counter of a key is never initialized twice in one process.
type Registry struct {
	mu          sync.Mutex
	kv          datastore.KeyValueStore
	opts        []storagemodels.CollectionOption
	collections map[string]*Collection
}

// NewRegistry creates a Registry over kv. opts apply to every collection it opens.
func NewRegistry(kv datastore.KeyValueStore, opts ...storagemodels.CollectionOption) *Registry {
	return &Registry{
		kv:          kv,
		opts:        opts,
		collections: make(map[string]*Collection),
	}
}

// Collection returns the open collection for key, loading it on first use.
// opts are applied after the registry-wide options and only matter on that first call.
func (r *Registry) Collection(ctx context.Context, key string, opts ...storagemodels.CollectionOption) (*Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, exists := r.collections[key]; exists {
		return c, nil
	}

	all := make([]storagemodels.CollectionOption, 0, len(r.opts)+len(opts))
	all = append(all, r.opts...)
	all = append(all, opts...)

	c, err := OpenCollection(ctx, r.kv, key, all...)
	if err != nil {
		return nil, err
	}
	r.collections[key] = c
	return c, nil
}

// Close forgets the collection for key. Handles obtained before Close stop
// working and fail with ErrClosed; the next Collection call reloads the key
// from the backend.
func (r *Registry) Close(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, exists := r.collections[key]
	if !exists {
		return fmt.Errorf("collection with key %q not open", key)
	}
	delete(r.collections, key)
	c.close()
	return nil
}

// Keys returns the keys of all open collections, sorted.
func (r *Registry) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(r.collections))
	for k := range r.collections {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
