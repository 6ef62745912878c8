/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/suparena/bookshelf"
	"github.com/suparena/bookshelf/errors"
	"github.com/suparena/bookshelf/storagemodels"
	"go.uber.org/zap"
)

// Library is the book and requirement catalog. It validates domain fields
// before they reach the underlying collections, which store them as-is.
type Library struct {
	mu           sync.Mutex
	books        *bookshelf.Collection
	requirements *bookshelf.Collection
	logger       *zap.Logger
}

// Open obtains the book and requirement collections from reg.
func Open(ctx context.Context, reg *bookshelf.Registry, logger *zap.Logger) (*Library, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	books, err := reg.Collection(ctx, BooksKey, storagemodels.WithRecordType("Book"))
	if err != nil {
		return nil, fmt.Errorf("failed to open books: %w", err)
	}
	requirements, err := reg.Collection(ctx, RequirementsKey, storagemodels.WithRecordType("BookRequirement"))
	if err != nil {
		return nil, fmt.Errorf("failed to open requirements: %w", err)
	}

	l := &Library{
		books:        books,
		requirements: requirements,
		logger:       logger,
	}
	for _, c := range []*bookshelf.Collection{books, requirements} {
		l.logger.Info("collection ready", zap.String("key", c.Key()), zap.Int("records", c.Len()))
	}
	return l, nil
}

// AddBook validates b, applies the defaults of a new book and stores it.
func (l *Library) AddBook(ctx context.Context, b Book) (Book, error) {
	b = b.withDefaults()
	if err := b.Validate(); err != nil {
		return Book{}, err
	}
	fields, err := b.Fields()
	if err != nil {
		return Book{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rec, err := l.books.Create(ctx, fields)
	if err != nil {
		return Book{}, err
	}
	l.logger.Info("book added", zap.Int64("id", rec.ID), zap.String("title", b.Title))
	return BookFromRecord(rec)
}

// GetBook returns the book with the given id. The boolean is false when no such
// book exists.
func (l *Library) GetBook(ctx context.Context, id int64) (Book, bool, error) {
	rec, ok := l.books.Get(ctx, id)
	if !ok {
		return Book{}, false, nil
	}
	b, err := BookFromRecord(rec)
	if err != nil {
		return Book{}, false, err
	}
	return b, true, nil
}

// ListBooks returns every book ordered by sortKey ("" means newest first).
func (l *Library) ListBooks(ctx context.Context, sortKey string) ([]Book, error) {
	recs, err := l.books.List(ctx, sortKey)
	if err != nil {
		return nil, err
	}
	books := make([]Book, 0, len(recs))
	for _, rec := range recs {
		b, err := BookFromRecord(rec)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, nil
}

// UpdateBook merges partial into the book with the given id. The merged book
// must still be valid.
func (l *Library) UpdateBook(ctx context.Context, id int64, partial storagemodels.Fields) (Book, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.updateBook(ctx, id, partial)
}

func (l *Library) updateBook(ctx context.Context, id int64, partial storagemodels.Fields) (Book, error) {
	merged, err := mergePreview(ctx, l.books, "Book", id, partial)
	if err != nil {
		return Book{}, err
	}
	b, err := BookFromRecord(merged)
	if err != nil {
		return Book{}, errors.NewValidationError("fields", err.Error())
	}
	if err := b.Validate(); err != nil {
		return Book{}, err
	}

	rec, err := l.books.Update(ctx, id, partial)
	if err != nil {
		return Book{}, err
	}
	return BookFromRecord(rec)
}

// DeleteBook removes the book with the given id and returns it.
func (l *Library) DeleteBook(ctx context.Context, id int64) (Book, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, err := l.books.Delete(ctx, id)
	if err != nil {
		return Book{}, err
	}
	l.logger.Info("book deleted", zap.Int64("id", id))
	return BookFromRecord(rec)
}

// ClearBooks removes every book.
func (l *Library) ClearBooks(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.books.Clear(ctx)
}

// AddRequirement validates r, applies the defaults of a new requirement and
// stores it.
func (l *Library) AddRequirement(ctx context.Context, r Requirement) (Requirement, error) {
	r = r.withDefaults()
	if err := r.Validate(); err != nil {
		return Requirement{}, err
	}
	fields, err := r.Fields()
	if err != nil {
		return Requirement{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rec, err := l.requirements.Create(ctx, fields)
	if err != nil {
		return Requirement{}, err
	}
	l.logger.Info("requirement added", zap.Int64("id", rec.ID), zap.String("title", r.Title))
	return RequirementFromRecord(rec)
}

// GetRequirement returns the requirement with the given id.
func (l *Library) GetRequirement(ctx context.Context, id int64) (Requirement, bool, error) {
	rec, ok := l.requirements.Get(ctx, id)
	if !ok {
		return Requirement{}, false, nil
	}
	r, err := RequirementFromRecord(rec)
	if err != nil {
		return Requirement{}, false, err
	}
	return r, true, nil
}

// ListRequirements returns every requirement ordered by sortKey.
func (l *Library) ListRequirements(ctx context.Context, sortKey string) ([]Requirement, error) {
	recs, err := l.requirements.List(ctx, sortKey)
	if err != nil {
		return nil, err
	}
	out := make([]Requirement, 0, len(recs))
	for _, rec := range recs {
		r, err := RequirementFromRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// UpdateRequirement merges partial into the requirement with the given id.
func (l *Library) UpdateRequirement(ctx context.Context, id int64, partial storagemodels.Fields) (Requirement, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	merged, err := mergePreview(ctx, l.requirements, "BookRequirement", id, partial)
	if err != nil {
		return Requirement{}, err
	}
	r, err := RequirementFromRecord(merged)
	if err != nil {
		return Requirement{}, errors.NewValidationError("fields", err.Error())
	}
	if err := r.Validate(); err != nil {
		return Requirement{}, err
	}

	rec, err := l.requirements.Update(ctx, id, partial)
	if err != nil {
		return Requirement{}, err
	}
	return RequirementFromRecord(rec)
}

// DeleteRequirement removes the requirement with the given id and returns it.
func (l *Library) DeleteRequirement(ctx context.Context, id int64) (Requirement, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, err := l.requirements.Delete(ctx, id)
	if err != nil {
		return Requirement{}, err
	}
	l.logger.Info("requirement deleted", zap.Int64("id", id))
	return RequirementFromRecord(rec)
}

// ClearRequirements removes every requirement.
func (l *Library) ClearRequirements(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.requirements.Clear(ctx)
}

// mergePreview returns the record id would become if partial were applied,
// without touching the collection.
func mergePreview(ctx context.Context, c *bookshelf.Collection, recordType string, id int64, partial storagemodels.Fields) (storagemodels.Record, error) {
	rec, ok := c.Get(ctx, id)
	if !ok {
		return storagemodels.Record{}, errors.NewNotFoundError(recordType, id)
	}
	norm, err := storagemodels.NormalizeFields(partial)
	if err != nil {
		return storagemodels.Record{}, err
	}
	if rec.Fields == nil {
		rec.Fields = storagemodels.Fields{}
	}
	for k, v := range norm {
		rec.Fields[k] = v
	}
	return rec, nil
}
