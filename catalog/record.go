/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/suparena/bookshelf/storagemodels"
)

// decodeRecord fills v from the flat JSON form of rec.
func decodeRecord(rec storagemodels.Record, v any) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("record %d does not match %T: %w", rec.ID, v, err)
	}
	return nil
}

// encodeFields turns v into record fields. Envelope names are dropped.
func encodeFields(v any) (storagemodels.Fields, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var f storagemodels.Fields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return storagemodels.NormalizeFields(f)
}
