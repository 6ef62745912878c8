/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import "testing"

type shelfItem struct {
	Shelf string
}

type unregisteredItem struct{}

func TestIndexMapRegistry(t *testing.T) {
	idx := map[string]string{"PK": "SHELF#{Shelf}", "SK": "SHELF#{Shelf}"}
	if err := RegisterIndexMap[shelfItem](idx); err != nil {
		t.Fatalf("RegisterIndexMap failed: %v", err)
	}

	// Later changes to the caller's map must not leak into the registry.
	idx["PK"] = "mutated"

	got, ok := GetIndexMap[shelfItem]()
	if !ok {
		t.Fatal("Expected index map to be registered")
	}
	if got["PK"] != "SHELF#{Shelf}" {
		t.Errorf("Registry shares the caller's map: PK=%q", got["PK"])
	}

	got["SK"] = "mutated"
	again, _ := GetIndexMap[shelfItem]()
	if again["SK"] != "SHELF#{Shelf}" {
		t.Errorf("GetIndexMap must return a copy: SK=%q", again["SK"])
	}

	if _, ok := GetIndexMap[unregisteredItem](); ok {
		t.Error("Expected no index map for unregistered type")
	}
}

func TestRegisterIndexMapRequiresKeys(t *testing.T) {
	tests := []struct {
		name string
		idx  map[string]string
	}{
		{"missing PK", map[string]string{"SK": "X"}},
		{"missing SK", map[string]string{"PK": "X"}},
		{"empty", map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := RegisterIndexMap[unregisteredItem](tt.idx); err == nil {
				t.Fatal("Expected error")
			}
		})
	}

	defer func() {
		if recover() == nil {
			t.Error("MustRegisterIndexMap should panic on an invalid map")
		}
	}()
	MustRegisterIndexMap[unregisteredItem](nil)
}
