/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package catalog

import (
	"cmp"
	"context"
	"slices"
)

const (
	topCategories = 5
	recentBooks   = 5
	lowStockBooks = 5
)

// CategoryStock is the number of copies held in one category.
type CategoryStock struct {
	Category Category `json:"category"`
	Stock    int      `json:"stock"`
}

// Stats is the dashboard summary of the library.
type Stats struct {
	TotalBooks          int             `json:"total_books"`
	TotalStock          int             `json:"total_stock"`
	LowStock            int             `json:"low_stock"`
	OutOfStock          int             `json:"out_of_stock"`
	TotalValue          float64         `json:"total_value"`
	PendingRequirements int             `json:"pending_requirements"`
	TopCategories       []CategoryStock `json:"top_categories"`
	RecentBooks         []Book          `json:"recent_books"`
	LowStockBooks       []Book          `json:"low_stock_books"`
}

// ComputeStats summarizes books and requirements. books is expected newest
// first, as ListBooks returns it by default.
func ComputeStats(books []Book, requirements []Requirement) Stats {
	s := Stats{
		TotalBooks:    len(books),
		TopCategories: []CategoryStock{},
		RecentBooks:   []Book{},
		LowStockBooks: []Book{},
	}

	byCategory := map[Category]int{}
	for _, b := range books {
		s.TotalStock += b.StockCurrent
		if b.IsLowStock() {
			s.LowStock++
			if len(s.LowStockBooks) < lowStockBooks {
				s.LowStockBooks = append(s.LowStockBooks, b)
			}
		}
		if b.StockCurrent <= 0 {
			s.OutOfStock++
		}
		s.TotalValue += b.StockValue()

		c := b.Category
		if c == "" {
			c = CategoryOther
		}
		byCategory[c] += b.StockCurrent
	}

	for _, r := range requirements {
		if r.Status == RequirementPending {
			s.PendingRequirements++
		}
	}

	for c, n := range byCategory {
		s.TopCategories = append(s.TopCategories, CategoryStock{Category: c, Stock: n})
	}
	slices.SortFunc(s.TopCategories, func(a, b CategoryStock) int {
		if n := cmp.Compare(b.Stock, a.Stock); n != 0 {
			return n
		}
		return cmp.Compare(a.Category, b.Category)
	})
	if len(s.TopCategories) > topCategories {
		s.TopCategories = s.TopCategories[:topCategories]
	}

	s.RecentBooks = append(s.RecentBooks, books[:min(recentBooks, len(books))]...)
	return s
}

// Stats loads both collections and summarizes them.
func (l *Library) Stats(ctx context.Context) (Stats, error) {
	books, err := l.ListBooks(ctx, "-created_date")
	if err != nil {
		return Stats{}, err
	}
	requirements, err := l.ListRequirements(ctx, "")
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(books, requirements), nil
}
