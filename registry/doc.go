/*
Package registry associates Go types with their DynamoDB key layout.

Index maps describe how an item's key attributes are derived from its fields,
which lets several item types share a single table:

	registry.MustRegisterIndexMap[slotItem](map[string]string{
	    "PK": "SLOT#{Key}",
	    "SK": "SLOT#{Key}",
	})

The registry is safe for concurrent use and is normally populated from init().
*/
package registry
