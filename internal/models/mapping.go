package models

import "time"

// TermMapping links a user-facing term to a database table (and
// optionally a column). One term may map to several tables; confidence
// and usage count let callers pick the strongest mapping.
type TermMapping struct {
	Term       string         `json:"term"`
	Table      string         `json:"db_table"`
	Column     string         `json:"db_field,omitempty"`
	Confidence float64        `json:"confidence"`
	Context    map[string]any `json:"context,omitempty"`
	UsageCount int            `json:"usage_count"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// CreateMappingRequest is the payload for storing a term mapping.
type CreateMappingRequest struct {
	Term       string         `json:"term"`
	Table      string         `json:"db_table"`
	Column     string         `json:"db_field,omitempty"`
	Confidence float64        `json:"confidence,omitempty"`
	Context    map[string]any `json:"context,omitempty"`
}

// Validate checks CreateMappingRequest fields and applies the default
// confidence for learned mappings.
func (r *CreateMappingRequest) Validate() error {
	if r.Term == "" {
		return ErrMissingTerm
	}

	if len(r.Term) > 255 {
		return ErrFieldTooLong("term", 255)
	}

	if r.Table == "" {
		return ErrMissingTable
	}

	if len(r.Table) > 255 {
		return ErrFieldTooLong("db_table", 255)
	}

	if len(r.Column) > 255 {
		return ErrFieldTooLong("db_field", 255)
	}

	if r.Confidence <= 0 {
		r.Confidence = 0.9
	}

	if r.Confidence > 1 {
		r.Confidence = 1
	}

	return nil
}
