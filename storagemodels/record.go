/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/suparena/bookshelf/errors"
)

// Envelope field names. They are owned by the collection and never stored in Fields.
const (
	FieldID          = "id"
	FieldCreatedDate = "created_date"
	FieldUpdatedDate = "updated_date"
)

// Fields is the opaque domain payload of a record.
type Fields map[string]any

// Record is one persisted entity: the store-managed envelope plus its domain fields.
type Record struct {
	// ID is assigned by the collection and never changes.
	ID int64
	// CreatedDate is set once, when the record is created.
	CreatedDate strfmt.DateTime
	// UpdatedDate is refreshed on every update.
	UpdatedDate strfmt.DateTime
	// Fields holds the domain payload, normalized to the JSON data model.
	Fields Fields
}

// IsReserved reports whether name is an envelope field.
func IsReserved(name string) bool {
	switch name {
	case FieldID, FieldCreatedDate, FieldUpdatedDate:
		return true
	}
	return false
}

// Value returns the value of the named field, envelope fields included.
// Dates are returned as time.Time and the id as int64.
func (r Record) Value(name string) (any, bool) {
	switch name {
	case FieldID:
		return r.ID, true
	case FieldCreatedDate:
		return time.Time(r.CreatedDate), true
	case FieldUpdatedDate:
		return time.Time(r.UpdatedDate), true
	}
	v, ok := r.Fields[name]
	return v, ok
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	r.Fields = r.Fields.Clone()
	return r
}

// Clone returns a deep copy of the fields.
func (f Fields) Clone() Fields {
	if f == nil {
		return Fields{}
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(tv))
		for k, e := range tv {
			m[k] = cloneValue(e)
		}
		return m
	case []any:
		s := make([]any, len(tv))
		for i, e := range tv {
			s[i] = cloneValue(e)
		}
		return s
	default:
		return v
	}
}

// NormalizeFields converts f into the JSON data model (string, float64, bool, nil,
// []any, map[string]any) and drops envelope names, so the result equals what a
// reload from persisted state would decode.
func NormalizeFields(f Fields) (Fields, error) {
	if len(f) == 0 {
		return Fields{}, nil
	}
	data, err := json.Marshal(f)
	if err != nil {
		return nil, errors.NewValidationError("fields", fmt.Sprintf("not representable as JSON: %v", err))
	}
	var out Fields
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.NewValidationError("fields", fmt.Sprintf("not representable as JSON: %v", err))
	}
	for name := range out {
		if IsReserved(name) {
			delete(out, name)
		}
	}
	return out, nil
}

// MarshalJSON writes the record as one flat object: envelope fields next to the domain fields.
func (r Record) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(r.Fields)+3)
	for k, v := range r.Fields {
		if IsReserved(k) {
			continue
		}
		flat[k] = v
	}
	flat[FieldID] = r.ID
	flat[FieldCreatedDate] = r.CreatedDate
	flat[FieldUpdatedDate] = r.UpdatedDate
	return json.Marshal(flat)
}

// UnmarshalJSON reads the flat object written by MarshalJSON. The id and both
// dates are required.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out Record
	idRaw, ok := raw[FieldID]
	if !ok {
		return fmt.Errorf("record is missing %q", FieldID)
	}
	if err := json.Unmarshal(idRaw, &out.ID); err != nil {
		return fmt.Errorf("record %q: %w", FieldID, err)
	}

	for name, dst := range map[string]*strfmt.DateTime{
		FieldCreatedDate: &out.CreatedDate,
		FieldUpdatedDate: &out.UpdatedDate,
	} {
		v, ok := raw[name]
		if !ok {
			return fmt.Errorf("record %d is missing %q", out.ID, name)
		}
		if err := dst.UnmarshalJSON(v); err != nil {
			return fmt.Errorf("record %d %q: %w", out.ID, name, err)
		}
	}

	out.Fields = make(Fields, len(raw))
	for name, v := range raw {
		if IsReserved(name) {
			continue
		}
		var value any
		if err := json.Unmarshal(v, &value); err != nil {
			return fmt.Errorf("record %d field %q: %w", out.ID, name, err)
		}
		out.Fields[name] = value
	}

	*r = out
	return nil
}
