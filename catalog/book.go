/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package catalog

import (
	"fmt"
	"strings"

	"github.com/go-openapi/strfmt"
	"github.com/suparena/bookshelf/errors"
	"github.com/suparena/bookshelf/storagemodels"
)

// BooksKey is the storage key of the book collection.
const BooksKey = "books"

// Book is the typed view of a record in the book collection.
type Book struct {
	ID           int64           `json:"id,omitempty"`
	Title        string          `json:"title"`
	Author       string          `json:"author,omitempty"`
	ISBN         string          `json:"isbn,omitempty"`
	Publisher    string          `json:"publisher,omitempty"`
	Category     Category        `json:"category,omitempty"`
	Genre        Category        `json:"genre,omitempty"`
	Status       ReadingStatus   `json:"status,omitempty"`
	Condition    Condition       `json:"condition,omitempty"`
	Year         int             `json:"year,omitempty"`
	Pages        int             `json:"pages,omitempty"`
	Price        float64         `json:"price,omitempty"`
	StockCurrent int             `json:"stock_current"`
	StockMinimum int             `json:"stock_minimum"`
	Location     string          `json:"location,omitempty"`
	CoverURL     string          `json:"cover_url,omitempty"`
	Description  string          `json:"description,omitempty"`
	Rating       int             `json:"rating,omitempty"`
	CreatedDate  strfmt.DateTime `json:"created_date,omitempty"`
	UpdatedDate  strfmt.DateTime `json:"updated_date,omitempty"`
}

// BookFromRecord converts a stored record into a Book.
func BookFromRecord(rec storagemodels.Record) (Book, error) {
	var b Book
	if err := decodeRecord(rec, &b); err != nil {
		return Book{}, err
	}
	return b, nil
}

// Fields returns the domain fields of b, ready to be stored.
func (b Book) Fields() (storagemodels.Fields, error) {
	return encodeFields(b)
}

// withDefaults fills the values a new book starts with.
func (b Book) withDefaults() Book {
	if b.Category == "" {
		b.Category = CategoryFiction
	}
	if b.Condition == "" {
		b.Condition = ConditionNew
	}
	if b.Status == "" {
		b.Status = StatusUnread
	}
	if b.StockMinimum == 0 {
		b.StockMinimum = 1
	}
	return b
}

// Validate checks b the way the book forms do.
func (b Book) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return errors.NewValidationError("title", "is required")
	}
	if b.ISBN != "" && !strfmt.Default.Validates("isbn", b.ISBN) {
		return errors.NewValidationError("isbn", fmt.Sprintf("%q is not a valid ISBN", b.ISBN))
	}
	if b.Category != "" && !b.Category.Valid() {
		return errors.NewValidationError("category", fmt.Sprintf("unknown category %q", b.Category))
	}
	if b.Genre != "" && !b.Genre.Valid() {
		return errors.NewValidationError("genre", fmt.Sprintf("unknown genre %q", b.Genre))
	}
	if b.Status != "" && !b.Status.Valid() {
		return errors.NewValidationError("status", fmt.Sprintf("unknown status %q", b.Status))
	}
	if b.Condition != "" && !b.Condition.Valid() {
		return errors.NewValidationError("condition", fmt.Sprintf("unknown condition %q", b.Condition))
	}

	for _, n := range []struct {
		field string
		value float64
	}{
		{"year", float64(b.Year)},
		{"pages", float64(b.Pages)},
		{"price", b.Price},
		{"stock_current", float64(b.StockCurrent)},
		{"stock_minimum", float64(b.StockMinimum)},
	} {
		if n.value < 0 {
			return errors.NewValidationError(n.field, "must not be negative")
		}
	}

	if b.Rating < 0 || b.Rating > 5 {
		return errors.NewValidationError("rating", "must be between 0 and 5")
	}
	if b.CoverURL != "" && !strfmt.Default.Validates("uri", b.CoverURL) {
		return errors.NewValidationError("cover_url", fmt.Sprintf("%q is not a valid URL", b.CoverURL))
	}
	return nil
}
