/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package catalog

import (
	"fmt"
	"strings"

	"github.com/go-openapi/strfmt"
	"github.com/suparena/bookshelf/errors"
	"github.com/suparena/bookshelf/storagemodels"
)

// RequirementsKey is the storage key of the requirement collection.
const RequirementsKey = "book_requirements"

// Requirement is a book the library wants to acquire.
type Requirement struct {
	ID             int64             `json:"id,omitempty"`
	Title          string            `json:"title"`
	Author         string            `json:"author,omitempty"`
	ISBN           string            `json:"isbn,omitempty"`
	Category       Category          `json:"category,omitempty"`
	QuantityNeeded int               `json:"quantity_needed"`
	Priority       Priority          `json:"priority,omitempty"`
	EstimatedPrice float64           `json:"estimated_price,omitempty"`
	Reason         string            `json:"reason,omitempty"`
	TargetDate     string            `json:"target_date,omitempty"` // YYYY-MM-DD
	Status         RequirementStatus `json:"status,omitempty"`
	Notes          string            `json:"notes,omitempty"`
	CreatedDate    strfmt.DateTime   `json:"created_date,omitempty"`
	UpdatedDate    strfmt.DateTime   `json:"updated_date,omitempty"`
}

// RequirementFromRecord converts a stored record into a Requirement.
func RequirementFromRecord(rec storagemodels.Record) (Requirement, error) {
	var r Requirement
	if err := decodeRecord(rec, &r); err != nil {
		return Requirement{}, err
	}
	return r, nil
}

// Fields returns the domain fields of r, ready to be stored.
func (r Requirement) Fields() (storagemodels.Fields, error) {
	return encodeFields(r)
}

func (r Requirement) withDefaults() Requirement {
	if r.Category == "" {
		r.Category = CategoryFiction
	}
	if r.QuantityNeeded == 0 {
		r.QuantityNeeded = 1
	}
	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
	if r.Status == "" {
		r.Status = RequirementPending
	}
	return r
}

// Validate checks r the way the requirement form does.
func (r Requirement) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.NewValidationError("title", "is required")
	}
	if r.ISBN != "" && !strfmt.Default.Validates("isbn", r.ISBN) {
		return errors.NewValidationError("isbn", fmt.Sprintf("%q is not a valid ISBN", r.ISBN))
	}
	if r.Category != "" && !r.Category.Valid() {
		return errors.NewValidationError("category", fmt.Sprintf("unknown category %q", r.Category))
	}
	if r.QuantityNeeded < 1 {
		return errors.NewValidationError("quantity_needed", "must be at least 1")
	}
	if r.Priority != "" && !r.Priority.Valid() {
		return errors.NewValidationError("priority", fmt.Sprintf("unknown priority %q", r.Priority))
	}
	if r.EstimatedPrice < 0 {
		return errors.NewValidationError("estimated_price", "must not be negative")
	}
	if r.TargetDate != "" && !strfmt.Default.Validates("date", r.TargetDate) {
		return errors.NewValidationError("target_date", fmt.Sprintf("%q is not a YYYY-MM-DD date", r.TargetDate))
	}
	if r.Status != "" && !r.Status.Valid() {
		return errors.NewValidationError("status", fmt.Sprintf("unknown status %q", r.Status))
	}
	return nil
}
