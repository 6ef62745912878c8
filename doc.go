/*
Package bookshelf provides write-through record collections for a personal
library: books, their stock levels and acquisition requirements.

A Collection holds one homogeneous set of records in memory and mirrors the
whole set to a single key of a datastore.KeyValueStore after every successful
mutation. Records carry a store-managed envelope (id, created_date,
updated_date) around an opaque field map.

Key Features:
  - Monotonic integer ids, not reused by an open collection after Delete or Clear
  - Sorted snapshots with "field" / "-field" sort keys
  - Shallow-merge updates that keep id and created_date
  - Pluggable backends: files, DynamoDB, MongoDB, in-memory mock
  - Semantic errors (see package errors)

Basic Usage:

	kv, _ := file.New("./data")
	reg := bookshelf.NewRegistry(kv, storagemodels.WithLogger(logger))

	books, _ := reg.Collection(ctx, "books")
	rec, _ := books.Create(ctx, storagemodels.Fields{"title": "Bumi Manusia"})
	newest, _ := books.List(ctx, "-created_date")

Collections are safe for concurrent use within a process. Separate processes
sharing a key overwrite each other's snapshots; the last write wins.
*/
package bookshelf
