/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bookshelf

import (
	"slices"
	"testing"
	"time"

	"github.com/suparena/bookshelf/storagemodels"
)

func TestCompareValues(t *testing.T) {
	early := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)

	tests := []struct {
		name string
		a    any
		aok  bool
		b    any
		bok  bool
		want int
	}{
		{"numbers", float64(2), true, float64(10), true, -1},
		{"int64 vs float", int64(3), true, float64(3), true, 0},
		{"strings", "b", true, "a", true, 1},
		{"times", early, true, late, true, -1},
		{"bools", false, true, true, true, -1},
		{"absent first", nil, false, float64(0), true, -1},
		{"absent equal", nil, false, nil, false, 0},
		{"null before bool", nil, true, false, true, -1},
		{"number before string", float64(100), true, "1", true, -1},
		{"maps equal", map[string]any{"a": 1}, true, map[string]any{"b": 2}, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compareValues(tt.a, tt.aok, tt.b, tt.bok); got != tt.want {
				t.Errorf("compareValues = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompareRecordsMissingValues(t *testing.T) {
	records := []storagemodels.Record{
		{ID: 1, Fields: storagemodels.Fields{"stock_current": float64(5)}},
		{ID: 2, Fields: storagemodels.Fields{}},
		{ID: 3, Fields: storagemodels.Fields{"stock_current": float64(0)}},
		{ID: 4, Fields: storagemodels.Fields{}},
	}

	ids := func(rs []storagemodels.Record) []int64 {
		out := make([]int64, len(rs))
		for i, r := range rs {
			out[i] = r.ID
		}
		return out
	}

	asc := slices.Clone(records)
	slices.SortFunc(asc, compareRecords(storagemodels.SortKey{Field: "stock_current"}))
	if got, want := ids(asc), []int64{2, 4, 3, 1}; !slices.Equal(got, want) {
		t.Errorf("ascending = %v, want %v", got, want)
	}

	desc := slices.Clone(records)
	slices.SortFunc(desc, compareRecords(storagemodels.SortKey{Field: "stock_current", Descending: true}))
	if got, want := ids(desc), []int64{1, 3, 4, 2}; !slices.Equal(got, want) {
		t.Errorf("descending = %v, want %v", got, want)
	}
}
