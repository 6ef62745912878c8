/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"time"

	"go.uber.org/zap"
)

// DefaultSortKey orders records newest first.
const DefaultSortKey = "-created_date"

// CollectionOptions configures a collection
type CollectionOptions struct {
	Logger      *zap.Logger      // Operation logging (default: no-op)
	Clock       func() time.Time // Source of created/updated timestamps (default: time.Now)
	DefaultSort string           // Sort key used when List gets an empty one (default: -created_date)
	RecordType  string           // Name used in NotFound errors (default: the storage key)
}

// CollectionOption is a functional option for configuring a collection
type CollectionOption func(*CollectionOptions)

// DefaultCollectionOptions returns default collection options
func DefaultCollectionOptions() CollectionOptions {
	return CollectionOptions{
		Logger:      zap.NewNop(),
		Clock:       time.Now,
		DefaultSort: DefaultSortKey,
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) CollectionOption {
	return func(opts *CollectionOptions) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}

// WithClock sets the timestamp source
func WithClock(clock func() time.Time) CollectionOption {
	return func(opts *CollectionOptions) {
		if clock != nil {
			opts.Clock = clock
		}
	}
}

// WithDefaultSort sets the sort key used by List when none is given
func WithDefaultSort(key string) CollectionOption {
	return func(opts *CollectionOptions) {
		opts.DefaultSort = key
	}
}

// WithRecordType sets the record type name reported in NotFound errors
func WithRecordType(name string) CollectionOption {
	return func(opts *CollectionOptions) {
		opts.RecordType = name
	}
}
