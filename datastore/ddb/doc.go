/*
Package ddb provides a DynamoDB implementation of datastore.KeyValueStore.

Every key becomes one item in a single table. The item key is derived from the
registered index map, so slot items can live next to other item types:

	PK = "SLOT#{Key}"   // e.g. "SLOT#books"
	SK = "SLOT#{Key}"

The value is stored as a binary Payload attribute together with an EntityType
("Slot") and an UpdatedAt timestamp. Reads are strongly consistent.

DynamoDB limits items to 400 KB, which bounds the size of a single collection
stored through this backend.

Usage:

	store, err := ddb.NewDynamodbDataStore(ctx, ddb.ClientConfig{
	    Region:   "ap-southeast-1",
	    Endpoint: "http://localhost:8000", // optional, DynamoDB Local
	}, "bookshelf")
*/
package ddb
