/*
Package storagemodels defines the data structures shared by bookshelf collections
and their callers.

Record:
The persisted envelope around a domain payload:

	type Record struct {
	    ID          int64           // assigned by the collection, never reused
	    CreatedDate strfmt.DateTime // set once
	    UpdatedDate strfmt.DateTime // refreshed on every update
	    Fields      Fields          // opaque domain payload
	}

On disk a record is a single flat JSON object:

	{"id": 3, "title": "Laskar Pelangi", "stock_current": 2,
	 "created_date": "2025-03-01T09:12:44.120Z", "updated_date": "2025-03-02T10:00:00.000Z"}

SortKey:
A field name with an optional leading "-" for descending order:

	key, _ := ParseSortKey("-created_date")

CollectionOptions:
Configuration for a collection:

	opts := []CollectionOption{
	    WithLogger(logger),
	    WithClock(clock),
	    WithDefaultSort("title"),
	}
*/
package storagemodels
