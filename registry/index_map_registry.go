/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"sync"
)

// Key attributes every index map must define.
const (
	PartitionKey = "PK"
	SortKey      = "SK"
)

var (
	indexMapRegistry = make(map[reflect.Type]map[string]string)
	mu               sync.RWMutex
)

// RegisterIndexMap associates a Go type T with a DynamoDB index map (PK, SK, ...).
// Templates may reference fields of T with {Field} macros. Registering a type
// again replaces its map.
func RegisterIndexMap[T any](idxMap map[string]string) error {
	for _, k := range []string{PartitionKey, SortKey} {
		if idxMap[k] == "" {
			return fmt.Errorf("index map registry: %s template is required", k)
		}
	}

	t := reflect.TypeOf((*T)(nil)).Elem()
	cp := make(map[string]string, len(idxMap))
	for k, v := range idxMap {
		cp[k] = v
	}

	mu.Lock()
	defer mu.Unlock()
	indexMapRegistry[t] = cp
	return nil
}

// MustRegisterIndexMap is like RegisterIndexMap but panics on error. Meant for init().
func MustRegisterIndexMap[T any](idxMap map[string]string) {
	if err := RegisterIndexMap[T](idxMap); err != nil {
		panic(err)
	}
}

// GetIndexMap retrieves a copy of the index map for type T, if any.
func GetIndexMap[T any]() (map[string]string, bool) {
	t := reflect.TypeOf((*T)(nil)).Elem()

	mu.RLock()
	defer mu.RUnlock()
	m, ok := indexMapRegistry[t]
	if !ok {
		return nil, false
	}
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp, true
}
