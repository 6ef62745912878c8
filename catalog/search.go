/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package catalog

import (
	"strings"
)

// BookFilter narrows a book list. Zero-valued fields match everything.
type BookFilter struct {
	// Query matches title, author, ISBN or location, ignoring case.
	Query  string
	Genre  Category
	Status ReadingStatus
	// Stock keeps books at the given level. StockLow also keeps books that
	// are out of stock, the way the restock view lists them.
	Stock  StockLevel
}

// Match reports whether b passes every criterion of f.
func (f BookFilter) Match(b Book) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		hit := false
		for _, s := range []string{b.Title, b.Author, b.ISBN, b.Location} {
			if strings.Contains(strings.ToLower(s), q) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	if f.Genre != "" && b.Genre != f.Genre {
		return false
	}
	if f.Status != "" && b.Status != f.Status {
		return false
	}

	switch f.Stock {
	case StockLow:
		return b.IsLowStock()
	case StockOut:
		return b.StockCurrent <= 0
	case StockAvailable:
		return !b.IsLowStock()
	}
	return true
}

// FilterBooks returns the books that match f, keeping their order.
func FilterBooks(books []Book, f BookFilter) []Book {
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if f.Match(b) {
			out = append(out, b)
		}
	}
	return out
}
