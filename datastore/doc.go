/*
Package datastore defines the durable key-value layer that bookshelf collections
persist to.

A collection owns exactly one key (for example "books") and writes its whole
record array to it after every mutation:

	type KeyValueStore interface {
	    Load(ctx context.Context, key string) ([]byte, bool, error)
	    Save(ctx context.Context, key string, data []byte) error
	    Remove(ctx context.Context, key string) error
	}

Implementations:
  - file: one JSON file per key in a directory
  - ddb: DynamoDB single-table design, one item per key
  - mongodb: one MongoDB document per key
  - mock: in-memory implementation with error injection for testing

Writers replace the full value, so two processes sharing a key overwrite each
other: the last Save wins.
*/
package datastore
