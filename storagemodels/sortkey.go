/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"strings"

	"github.com/suparena/bookshelf/errors"
)

// SortKey names the field a listing is ordered by.
type SortKey struct {
	Field      string
	Descending bool
}

// ParseSortKey parses "field" (ascending) or "-field" (descending).
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey{Field: s}
	if strings.HasPrefix(s, "-") {
		key.Field = s[1:]
		key.Descending = true
	}
	if key.Field == "" {
		return SortKey{}, errors.NewValidationError("sort", "empty field name")
	}
	return key, nil
}

func (k SortKey) String() string {
	if k.Descending {
		return "-" + k.Field
	}
	return k.Field
}
