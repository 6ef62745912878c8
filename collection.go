/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bookshelf

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/suparena/bookshelf/datastore"
	"github.com/suparena/bookshelf/errors"
	"github.com/suparena/bookshelf/storagemodels"
	"go.uber.org/zap"
)

// Collection owns one homogeneous record collection and mirrors it, whole, to a
// single key of a KeyValueStore after every mutation.
type Collection struct {
	mu      sync.Mutex
	kv      datastore.KeyValueStore
	key     string
	opts    storagemodels.CollectionOptions
	logger  *zap.Logger
	records []storagemodels.Record
	nextID  int64
	closed  bool
}

// OpenCollection loads the collection stored under key. An absent key yields an
// empty collection. Persisted data that does not decode into records with unique
// positive ids fails with a CorruptStateError.
//
// Open a given key once per process; Registry does that bookkeeping.
func OpenCollection(ctx context.Context, kv datastore.KeyValueStore, key string, opts ...storagemodels.CollectionOption) (*Collection, error) {
	if key == "" {
		return nil, errors.NewValidationError("key", "storage key is required")
	}

	options := storagemodels.DefaultCollectionOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.RecordType == "" {
		options.RecordType = key
	}
	if _, err := storagemodels.ParseSortKey(options.DefaultSort); err != nil {
		return nil, err
	}

	c := &Collection{
		kv:     kv,
		key:    key,
		opts:   options,
		logger: options.Logger.With(zap.String("collection", key)),
	}
	if err := c.load(ctx); err != nil {
		return nil, err
	}

	c.logger.Info("collection loaded",
		zap.Int("records", len(c.records)),
		zap.Int64("next_id", c.nextID),
	)
	return c, nil
}

func (c *Collection) load(ctx context.Context) error {
	data, found, err := c.kv.Load(ctx, c.key)
	if err != nil {
		return fmt.Errorf("failed to load collection %q: %w", c.key, err)
	}

	var records []storagemodels.Record
	if found {
		if err := json.Unmarshal(data, &records); err != nil {
			return errors.NewCorruptStateError(c.key, "decode collection", err)
		}
	}

	var maxID int64
	seen := make(map[int64]struct{}, len(records))
	for _, r := range records {
		if r.ID <= 0 {
			return errors.NewCorruptStateError(c.key, fmt.Sprintf("invalid id %d", r.ID), nil)
		}
		if _, dup := seen[r.ID]; dup {
			return errors.NewCorruptStateError(c.key, fmt.Sprintf("duplicate id %d", r.ID), nil)
		}
		if time.Time(r.UpdatedDate).Before(time.Time(r.CreatedDate)) {
			return errors.NewCorruptStateError(c.key, fmt.Sprintf("record %d updated before it was created", r.ID), nil)
		}
		seen[r.ID] = struct{}{}
		maxID = max(maxID, r.ID)
	}

	if records == nil {
		records = []storagemodels.Record{}
	}
	c.records = records
	c.nextID = maxID + 1
	return nil
}

// Key returns the storage key the collection persists to.
func (c *Collection) Key() string {
	return c.key
}

// Len returns the number of records.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

func (c *Collection) now() strfmt.DateTime {
	return strfmt.DateTime(c.opts.Clock().UTC().Truncate(time.Millisecond))
}

// persist writes records to the backend. Callers commit them in memory only
// after it succeeds.
func (c *Collection) persist(ctx context.Context, records []storagemodels.Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode collection %q: %w", c.key, err)
	}
	if err := c.kv.Save(ctx, c.key, data); err != nil {
		c.logger.Error("persist failed", zap.Error(err))
		return fmt.Errorf("failed to persist collection %q: %w", c.key, err)
	}
	return nil
}

// close detaches c from its key. Every later operation on c fails with
// ErrClosed, so a reopened collection is the only writer of the key.
func (c *Collection) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *Collection) errClosed() error {
	return fmt.Errorf("collection %q: %w", c.key, errors.ErrClosed)
}

func (c *Collection) indexOf(id int64) int {
	return slices.IndexFunc(c.records, func(r storagemodels.Record) bool { return r.ID == id })
}

// Create stores a new record built from fields and returns it. The record gets
// the next id and both dates set to now.
func (c *Collection) Create(ctx context.Context, fields storagemodels.Fields) (storagemodels.Record, error) {
	normalized, err := storagemodels.NormalizeFields(fields)
	if err != nil {
		return storagemodels.Record{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return storagemodels.Record{}, c.errClosed()
	}

	now := c.now()
	rec := storagemodels.Record{
		ID:          c.nextID,
		CreatedDate: now,
		UpdatedDate: now,
		Fields:      normalized,
	}

	next := append(slices.Clip(c.records), rec)
	if err := c.persist(ctx, next); err != nil {
		return storagemodels.Record{}, err
	}
	c.records = next
	c.nextID++

	c.logger.Debug("record created", zap.Int64("id", rec.ID))
	return rec.Clone(), nil
}

// List returns a snapshot of every record ordered by sortKey. A leading "-"
// sorts descending; an empty key uses the collection default (-created_date
// unless configured otherwise). Records with equal values are ordered by id in
// the same direction.
func (c *Collection) List(ctx context.Context, sortKey string) ([]storagemodels.Record, error) {
	if sortKey == "" {
		sortKey = c.opts.DefaultSort
	}
	key, err := storagemodels.ParseSortKey(sortKey)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, c.errClosed()
	}
	out := make([]storagemodels.Record, len(c.records))
	for i, r := range c.records {
		out[i] = r.Clone()
	}
	c.mu.Unlock()

	slices.SortFunc(out, compareRecords(key))
	return out, nil
}

// Get returns a copy of the record with id. ok is false when there is none
// or the collection has been closed.
func (c *Collection) Get(ctx context.Context, id int64) (storagemodels.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return storagemodels.Record{}, false
	}
	i := c.indexOf(id)
	if i < 0 {
		return storagemodels.Record{}, false
	}
	return c.records[i].Clone(), true
}

// Update merges partial over the fields of record id: keys in partial replace
// existing ones, the rest are kept. The id and created date never change.
// It fails with a NotFoundError when there is no such record.
func (c *Collection) Update(ctx context.Context, id int64, partial storagemodels.Fields) (storagemodels.Record, error) {
	normalized, err := storagemodels.NormalizeFields(partial)
	if err != nil {
		return storagemodels.Record{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return storagemodels.Record{}, c.errClosed()
	}
	i := c.indexOf(id)
	if i < 0 {
		return storagemodels.Record{}, errors.NewNotFoundError(c.opts.RecordType, id)
	}

	old := c.records[i]
	merged := old.Fields.Clone()
	for k, v := range normalized {
		merged[k] = v
	}

	updated := c.now()
	if time.Time(updated).Before(time.Time(old.CreatedDate)) {
		updated = old.CreatedDate
	}
	rec := storagemodels.Record{
		ID:          old.ID,
		CreatedDate: old.CreatedDate,
		UpdatedDate: updated,
		Fields:      merged,
	}

	next := slices.Clone(c.records)
	next[i] = rec
	if err := c.persist(ctx, next); err != nil {
		return storagemodels.Record{}, err
	}
	c.records = next

	c.logger.Debug("record updated", zap.Int64("id", id), zap.Int("fields", len(normalized)))
	return rec.Clone(), nil
}

// Delete removes record id and returns it. It fails with a NotFoundError when
// there is no such record.
func (c *Collection) Delete(ctx context.Context, id int64) (storagemodels.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return storagemodels.Record{}, c.errClosed()
	}
	i := c.indexOf(id)
	if i < 0 {
		return storagemodels.Record{}, errors.NewNotFoundError(c.opts.RecordType, id)
	}

	removed := c.records[i]
	next := slices.Delete(slices.Clone(c.records), i, i+1)
	if err := c.persist(ctx, next); err != nil {
		return storagemodels.Record{}, err
	}
	c.records = next

	c.logger.Debug("record deleted", zap.Int64("id", id))
	return removed.Clone(), nil
}

// Clear drops every record and removes the persisted key. Ids handed out
// before Clear are not reused by this collection. A later reload starts
// again from 1 since nothing remains to derive the counter from.
func (c *Collection) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return c.errClosed()
	}
	if err := c.kv.Remove(ctx, c.key); err != nil {
		return fmt.Errorf("failed to clear collection %q: %w", c.key, err)
	}
	dropped := len(c.records)
	c.records = []storagemodels.Record{}

	c.logger.Info("collection cleared", zap.Int("dropped", dropped))
	return nil
}
