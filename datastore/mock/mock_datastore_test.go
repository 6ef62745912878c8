/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/suparena/bookshelf/datastore"
	"github.com/suparena/bookshelf/datastore/mock"
)

var _ datastore.KeyValueStore = (*mock.DataStore)(nil)

func TestMockDataStore(t *testing.T) {
	ctx := context.Background()

	t.Run("BasicOperations", func(t *testing.T) {
		store := mock.New()

		if _, found, err := store.Load(ctx, "books"); err != nil || found {
			t.Fatalf("Expected empty slot, got found=%v err=%v", found, err)
		}

		if err := store.Save(ctx, "books", []byte(`[]`)); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		data, found, err := store.Load(ctx, "books")
		if err != nil || !found || string(data) != "[]" {
			t.Fatalf("Load mismatch: %q found=%v err=%v", data, found, err)
		}

		if err := store.Remove(ctx, "books"); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		if _, found, _ := store.Load(ctx, "books"); found {
			t.Fatal("Expected slot to be gone after Remove")
		}

		if err := store.Remove(ctx, "books"); err != nil {
			t.Fatalf("Removing an absent key should succeed, got %v", err)
		}
	})

	t.Run("ReturnedBytesAreCopies", func(t *testing.T) {
		store := mock.New()
		in := []byte(`[1]`)
		_ = store.Save(ctx, "k", in)
		in[1] = '9'

		data, _, _ := store.Load(ctx, "k")
		if string(data) != "[1]" {
			t.Fatalf("Save must copy its input, got %q", data)
		}
		data[1] = '7'
		again, _, _ := store.Load(ctx, "k")
		if string(again) != "[1]" {
			t.Fatalf("Load must return a copy, got %q", again)
		}
	})

	t.Run("ErrorSimulation", func(t *testing.T) {
		store := mock.New()
		boom := errors.New("disk full")

		store.WithSaveError(boom)
		if err := store.Save(ctx, "k", nil); err != boom {
			t.Fatalf("Expected save error, got: %v", err)
		}

		store.WithLoadError(boom)
		if _, _, err := store.Load(ctx, "k"); err != boom {
			t.Fatalf("Expected load error, got: %v", err)
		}

		store.WithRemoveError(boom)
		if err := store.Remove(ctx, "k"); err != boom {
			t.Fatalf("Expected remove error, got: %v", err)
		}

		store.Clear()
		if err := store.Save(ctx, "k", nil); err != nil {
			t.Fatalf("Clear should reset injected errors, got %v", err)
		}
	})

	t.Run("Counters", func(t *testing.T) {
		store := mock.New()
		_ = store.Save(ctx, "a", []byte("1"))
		_ = store.Save(ctx, "b", []byte("2"))
		_ = store.Remove(ctx, "a")

		if store.Saves() != 2 || store.Removes() != 1 || store.Keys() != 1 {
			t.Fatalf("Unexpected counters saves=%d removes=%d keys=%d", store.Saves(), store.Removes(), store.Keys())
		}
	})
}
