/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of datastore.KeyValueStore for testing
package mock

import (
	"context"
	"sync"
)

// DataStore is a mock implementation of datastore.KeyValueStore for testing
type DataStore struct {
	mu          sync.RWMutex
	data        map[string][]byte
	loadError   error
	saveError   error
	removeError error
	saves       int
	removes     int
}

// New creates a new mock DataStore
func New() *DataStore {
	return &DataStore{
		data: make(map[string][]byte),
	}
}

// WithLoadError makes Load operations return an error
func (m *DataStore) WithLoadError(err error) *DataStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadError = err
	return m
}

// WithSaveError makes Save operations return an error
func (m *DataStore) WithSaveError(err error) *DataStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
	return m
}

// WithRemoveError makes Remove operations return an error
func (m *DataStore) WithRemoveError(err error) *DataStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeError = err
	return m
}

// Load returns a copy of the value stored under key
func (m *DataStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.loadError != nil {
		return nil, false, m.loadError
	}

	data, exists := m.data[key]
	if !exists {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

// Save stores a copy of data under key
func (m *DataStore) Save(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveError != nil {
		return m.saveError
	}

	m.data[key] = append([]byte(nil), data...)
	m.saves++
	return nil
}

// Remove deletes key
func (m *DataStore) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.removeError != nil {
		return m.removeError
	}

	delete(m.data, key)
	m.removes++
	return nil
}

// Helper methods for testing

// Set directly stores raw data under key (for seeding tests)
func (m *DataStore) Set(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
}

// Get returns the raw data stored under key (for testing)
func (m *DataStore) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.data[key]
	return append([]byte(nil), data...), ok
}

// Keys returns the number of stored keys
func (m *DataStore) Keys() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Saves returns how many successful Save calls were made
func (m *DataStore) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

// Removes returns how many successful Remove calls were made
func (m *DataStore) Removes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.removes
}

// Clear removes all data and injected errors
func (m *DataStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string][]byte)
	m.loadError = nil
	m.saveError = nil
	m.removeError = nil
}
