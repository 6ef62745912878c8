//go:build integration
// +build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bookshelf_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/suparena/bookshelf"
	"github.com/suparena/bookshelf/datastore"
	"github.com/suparena/bookshelf/datastore/ddb"
	"github.com/suparena/bookshelf/datastore/file"
	"github.com/suparena/bookshelf/datastore/mongodb"
	"github.com/suparena/bookshelf/errors"
	"github.com/suparena/bookshelf/storagemodels"
)

func backends(t *testing.T) map[string]datastore.KeyValueStore {
	t.Helper()
	_ = godotenv.Load()
	ctx := context.Background()

	out := map[string]datastore.KeyValueStore{}

	fs, err := file.New(t.TempDir())
	if err != nil {
		t.Fatalf("file.New failed: %v", err)
	}
	out["file"] = fs

	if table := os.Getenv("AWS_DDB_TABLE"); table != "" {
		store, err := ddb.NewDynamodbDataStore(ctx, ddb.ClientConfig{
			AccessKey: os.Getenv("AWS_ACCESS_KEY"),
			SecretKey: os.Getenv("AWS_SECRET_KEY"),
			Region:    os.Getenv("AWS_REGION"),
			Endpoint:  os.Getenv("AWS_DDB_ENDPOINT"),
		}, table)
		if err != nil {
			t.Fatalf("Failed to create DynamoDB datastore: %v", err)
		}
		out["dynamodb"] = store
	}

	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		store, err := mongodb.New(ctx, uri, "bookshelf_test", "")
		if err != nil {
			t.Fatalf("Failed to create MongoDB datastore: %v", err)
		}
		t.Cleanup(func() { _ = store.Close(context.Background()) })
		out["mongodb"] = store
	}
	return out
}

func TestIntegrationCollectionLifecycle(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			key := fmt.Sprintf("it_books_%d", time.Now().UnixNano())
			defer kv.Remove(ctx, key)

			reg := bookshelf.NewRegistry(kv)
			books, err := reg.Collection(ctx, key)
			if err != nil {
				t.Fatalf("Collection failed: %v", err)
			}

			a, err := books.Create(ctx, storagemodels.Fields{"title": "A", "stock_current": 2})
			if err != nil {
				t.Fatalf("Create A failed: %v", err)
			}
			b, err := books.Create(ctx, storagemodels.Fields{"title": "B"})
			if err != nil {
				t.Fatalf("Create B failed: %v", err)
			}
			if b.ID != a.ID+1 {
				t.Errorf("Expected consecutive ids, got %d and %d", a.ID, b.ID)
			}

			if _, err := books.Update(ctx, a.ID, storagemodels.Fields{"stock_current": 5}); err != nil {
				t.Fatalf("Update failed: %v", err)
			}
			if _, err := books.Delete(ctx, 999); !errors.IsNotFound(err) {
				t.Errorf("Expected NotFound, got %v", err)
			}

			// A fresh registry reads back what the first one wrote.
			if err := reg.Close(key); err != nil {
				t.Fatalf("Close failed: %v", err)
			}
			reloaded, err := bookshelf.NewRegistry(kv).Collection(ctx, key)
			if err != nil {
				t.Fatalf("Reload failed: %v", err)
			}
			list, err := reloaded.List(ctx, "")
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(list) != 2 || list[0].ID != b.ID || list[1].ID != a.ID {
				t.Fatalf("Unexpected order after reload: %+v", list)
			}
			if v := list[1].Fields["stock_current"]; v != float64(5) {
				t.Errorf("Expected stock_current 5 after reload, got %v", v)
			}

			c, err := reloaded.Create(ctx, storagemodels.Fields{"title": "C"})
			if err != nil {
				t.Fatalf("Create C failed: %v", err)
			}
			if c.ID != b.ID+1 {
				t.Errorf("Expected id %d after reload, got %d", b.ID+1, c.ID)
			}

			if err := reloaded.Clear(ctx); err != nil {
				t.Fatalf("Clear failed: %v", err)
			}
			if _, found, err := kv.Load(ctx, key); err != nil || found {
				t.Errorf("Expected slot removed, found=%v err=%v", found, err)
			}
		})
	}
}
