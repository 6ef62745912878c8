/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"testing"

	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/bookshelf/datastore"
)

var _ datastore.KeyValueStore = (*DynamodbDataStore)(nil)

// fakeAPI keeps items in memory keyed by PK|SK.
type fakeAPI struct {
	items      map[string]map[string]types.AttributeValue
	lastPut    *sdk.PutItemInput
	lastDelete *sdk.DeleteItemInput
	putErr     error
	deleteErr  error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{items: make(map[string]map[string]types.AttributeValue)}
}

func itemKey(key map[string]types.AttributeValue) string {
	pk := key["PK"].(*types.AttributeValueMemberS).Value
	sk := key["SK"].(*types.AttributeValueMemberS).Value
	return pk + "|" + sk
}

func (f *fakeAPI) GetItem(ctx context.Context, in *sdk.GetItemInput, _ ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	return &sdk.GetItemOutput{Item: f.items[itemKey(in.Key)]}, nil
}

func (f *fakeAPI) PutItem(ctx context.Context, in *sdk.PutItemInput, _ ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.lastPut = in
	f.items[itemKey(in.Item)] = in.Item
	return &sdk.PutItemOutput{}, nil
}

func (f *fakeAPI) DeleteItem(ctx context.Context, in *sdk.DeleteItemInput, _ ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	f.lastDelete = in
	delete(f.items, itemKey(in.Key))
	return &sdk.DeleteItemOutput{}, nil
}

func TestDynamodbDataStore(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	store := NewWithClient(api, "bookshelf-test")

	if _, found, err := store.Load(ctx, "books"); err != nil || found {
		t.Fatalf("Expected absent slot, got found=%v err=%v", found, err)
	}

	payload := []byte(`[{"id":1,"title":"Bumi Manusia"}]`)
	if err := store.Save(ctx, "books", payload); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	put := api.lastPut
	if *put.TableName != "bookshelf-test" {
		t.Errorf("Unexpected table %q", *put.TableName)
	}
	if pk := put.Item["PK"].(*types.AttributeValueMemberS).Value; pk != "SLOT#books" {
		t.Errorf("Expected PK SLOT#books, got %q", pk)
	}
	if sk := put.Item["SK"].(*types.AttributeValueMemberS).Value; sk != "SLOT#books" {
		t.Errorf("Expected SK SLOT#books, got %q", sk)
	}
	if et := put.Item["EntityType"].(*types.AttributeValueMemberS).Value; et != SlotEntityType {
		t.Errorf("Expected EntityType %q, got %q", SlotEntityType, et)
	}

	data, found, err := store.Load(ctx, "books")
	if err != nil || !found || string(data) != string(payload) {
		t.Fatalf("Load mismatch: %q found=%v err=%v", data, found, err)
	}

	// A second key must not collide with the first.
	if err := store.Save(ctx, "book_requirements", []byte(`[]`)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if len(api.items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(api.items))
	}

	if err := store.Remove(ctx, "books"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, found, _ := store.Load(ctx, "books"); found {
		t.Fatal("Expected slot to be gone")
	}
}

func TestDynamodbDataStoreErrors(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.putErr = errors.New("throughput exceeded")
	store := NewWithClient(api, "bookshelf-test")

	if err := store.Save(ctx, "books", nil); !errors.Is(err, api.putErr) {
		t.Fatalf("Expected wrapped put error, got %v", err)
	}
	if err := store.Save(ctx, "", nil); err == nil {
		t.Fatal("Expected error for empty key")
	}
	if _, _, err := store.Load(ctx, ""); err == nil {
		t.Fatal("Expected error for empty key")
	}
}

func TestDynamodbDataStoreRemove(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	store := NewWithClient(api, "bookshelf-test")

	if err := store.Remove(ctx, "never_saved"); err != nil {
		t.Fatalf("Removing an absent slot must succeed, got %v", err)
	}
	if api.lastDelete.ConditionExpression != nil {
		t.Errorf("Remove must be unconditional, got %q", *api.lastDelete.ConditionExpression)
	}

	api.deleteErr = errors.New("table not found")
	if err := store.Remove(ctx, "books"); !errors.Is(err, api.deleteErr) {
		t.Fatalf("Expected wrapped delete error, got %v", err)
	}
	if err := store.Remove(ctx, ""); err == nil {
		t.Fatal("Expected error for empty key")
	}
}

func TestExpandMacros(t *testing.T) {
	idx := map[string]string{"PK": "SLOT#{Key}", "SK": "STATIC", "GSI1PK": "{Missing}"}
	expanded, err := expandMacros(idx, slotItem{Key: "books"})
	if err != nil {
		t.Fatalf("expandMacros failed: %v", err)
	}
	if expanded["PK"] != "SLOT#books" || expanded["SK"] != "STATIC" || expanded["GSI1PK"] != "" {
		t.Errorf("Unexpected expansion %v", expanded)
	}

	if got := expandStringKey(idx, "a$1")["PK"]; got != "SLOT#a$1" {
		t.Errorf("expandStringKey must insert the key literally, got %q", got)
	}

	if _, err := buildKeyFromExpanded(map[string]string{"PK": "x"}); err == nil {
		t.Error("Expected error for missing SK")
	}
}
