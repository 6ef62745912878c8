/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package catalog

import (
	"context"
	"fmt"

	"github.com/suparena/bookshelf/errors"
	"github.com/suparena/bookshelf/storagemodels"
	"go.uber.org/zap"
)

// StockLevel summarizes how many copies of a book are on hand.
type StockLevel string

const (
	StockAvailable StockLevel = "available"
	StockLow       StockLevel = "low"
	StockOut       StockLevel = "out"
)

// Valid reports whether s is a known stock level.
func (s StockLevel) Valid() bool {
	switch s {
	case StockAvailable, StockLow, StockOut:
		return true
	}
	return false
}

// Minimum is the restock threshold of b. An unset minimum counts as 1.
func (b Book) Minimum() int {
	if b.StockMinimum <= 0 {
		return 1
	}
	return b.StockMinimum
}

// IsLowStock reports whether b is at or below its restock threshold. Books
// with no copies left are low as well.
func (b Book) IsLowStock() bool {
	return b.StockCurrent <= b.Minimum()
}

// StockLevel classifies b: out with no copies, low at or below the minimum,
// available otherwise.
func (b Book) StockLevel() StockLevel {
	switch {
	case b.StockCurrent <= 0:
		return StockOut
	case b.IsLowStock():
		return StockLow
	default:
		return StockAvailable
	}
}

// StockValue is the price of every copy on hand.
func (b Book) StockValue() float64 {
	return b.Price * float64(b.StockCurrent)
}

// AdjustmentKind selects how Quantity is applied to the current stock.
type AdjustmentKind string

const (
	AdjustAdd      AdjustmentKind = "add"
	AdjustSubtract AdjustmentKind = "subtract"
	AdjustSet      AdjustmentKind = "set"
)

// Adjustment is one stock movement.
type Adjustment struct {
	Kind     AdjustmentKind
	Quantity int
	Reason   string
}

// Apply returns the stock after applying a to current. Subtracting never
// goes below zero.
func (a Adjustment) Apply(current int) (int, error) {
	if a.Quantity < 0 {
		return 0, errors.NewValidationError("quantity", "must not be negative")
	}
	switch a.Kind {
	case AdjustAdd:
		return current + a.Quantity, nil
	case AdjustSubtract:
		return max(0, current-a.Quantity), nil
	case AdjustSet:
		return a.Quantity, nil
	}
	return 0, errors.NewValidationError("kind", fmt.Sprintf("unknown adjustment %q", a.Kind))
}

// AdjustStock applies adj to the stock of book id and stores the result.
func (l *Library) AdjustStock(ctx context.Context, id int64, adj Adjustment) (Book, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok, err := l.GetBook(ctx, id)
	if err != nil {
		return Book{}, err
	}
	if !ok {
		return Book{}, errors.NewNotFoundError("Book", id)
	}

	next, err := adj.Apply(b.StockCurrent)
	if err != nil {
		return Book{}, err
	}

	updated, err := l.updateBook(ctx, id, storagemodels.Fields{"stock_current": next})
	if err != nil {
		return Book{}, err
	}

	l.logger.Info("stock adjusted",
		zap.Int64("id", id),
		zap.String("kind", string(adj.Kind)),
		zap.Int("quantity", adj.Quantity),
		zap.Int("from", b.StockCurrent),
		zap.Int("to", next),
		zap.String("reason", adj.Reason),
	)
	return updated, nil
}
