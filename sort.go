/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bookshelf

import (
	"cmp"
	"strings"
	"time"

	"github.com/suparena/bookshelf/storagemodels"
)

// Value kinds in ascending order. Absent fields come first.
const (
	kindAbsent = iota
	kindNull
	kindBool
	kindNumber
	kindString
	kindTime
	kindOther
)

func kindOf(v any, ok bool) int {
	if !ok {
		return kindAbsent
	}
	switch v.(type) {
	case nil:
		return kindNull
	case bool:
		return kindBool
	case float64, float32, int, int64, int32:
		return kindNumber
	case string:
		return kindString
	case time.Time:
		return kindTime
	default:
		return kindOther
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	}
	return 0
}

// compareValues orders two field values. Values of different kinds order by kind;
// maps and slices compare equal to each other.
func compareValues(a any, aok bool, b any, bok bool) int {
	ka, kb := kindOf(a, aok), kindOf(b, bok)
	if ka != kb {
		return cmp.Compare(ka, kb)
	}

	switch ka {
	case kindBool:
		ab, bb := a.(bool), b.(bool)
		switch {
		case ab == bb:
			return 0
		case !ab:
			return -1
		default:
			return 1
		}
	case kindNumber:
		return cmp.Compare(toFloat(a), toFloat(b))
	case kindString:
		return strings.Compare(a.(string), b.(string))
	case kindTime:
		return a.(time.Time).Compare(b.(time.Time))
	}
	return 0
}

// compareRecords orders records by key.Field, breaking ties by id, with the
// whole order reversed for descending keys.
func compareRecords(key storagemodels.SortKey) func(a, b storagemodels.Record) int {
	return func(a, b storagemodels.Record) int {
		av, aok := a.Value(key.Field)
		bv, bok := b.Value(key.Field)

		c := compareValues(av, aok, bv, bok)
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		if key.Descending {
			return -c
		}
		return c
	}
}
