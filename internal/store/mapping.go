package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/schemascout/schemascout/internal/models"
)

const mappingColumns = `term, db_table, db_field, confidence, context, usage_count, created_at, updated_at`

// MappingStore persists learned term-to-table mappings. A term may map
// to several tables; repeated learning of an existing mapping refreshes
// its confidence and bumps the usage count.
type MappingStore struct {
	Base
}

// NewMappingStore creates a MappingStore.
func NewMappingStore(base Base) *MappingStore {
	return &MappingStore{Base: base}
}

// Upsert stores one term mapping, updating confidence and usage count
// when the (term, table, column) triple already exists.
func (s *MappingStore) Upsert(ctx context.Context, req models.CreateMappingRequest) (*models.TermMapping, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx, `
		INSERT INTO scout_term_mappings (term, db_table, db_field, confidence, context)
		VALUES (lower(trim($1)), $2, $3, $4, COALESCE($5, '{}'::jsonb))
		ON CONFLICT (term, db_table, db_field) DO UPDATE SET
			confidence  = EXCLUDED.confidence,
			context     = EXCLUDED.context,
			usage_count = scout_term_mappings.usage_count + 1,
			updated_at  = now()
		RETURNING `+mappingColumns,
		req.Term, req.Table, req.Column, req.Confidence, req.Context)

	m, err := scanMapping(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("upserting term mapping: %w", err)
	}

	s.Log.WithFields(logrus.Fields{
		"term":       m.Term,
		"table":      m.Table,
		"confidence": m.Confidence,
	}).Debug("term mapping stored")

	return m, nil
}

// GetByTerm returns all mappings for a term, strongest first, and bumps
// each mapping's usage count.
func (s *MappingStore) GetByTerm(ctx context.Context, term string) ([]models.TermMapping, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, `
		UPDATE scout_term_mappings
		SET usage_count = usage_count + 1
		WHERE term = lower(trim($1))
		RETURNING `+mappingColumns, term)
	if err != nil {
		return nil, fmt.Errorf("fetching term mappings: %w", err)
	}
	defer rows.Close()

	var mappings []models.TermMapping

	for rows.Next() {
		m, err := scanMapping(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning term mapping: %w", err)
		}

		mappings = append(mappings, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating term mappings: %w", err)
	}

	// RETURNING order is unspecified; rank strongest first here.
	sort.SliceStable(mappings, func(i, j int) bool {
		return mappings[i].Confidence > mappings[j].Confidence
	})

	return mappings, nil
}

// List returns all stored mappings ordered by term then confidence.
func (s *MappingStore) List(ctx context.Context, limit, offset int) ([]models.TermMapping, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	if offset < 0 {
		offset = 0
	}

	rows, err := s.Pool.Query(ctx, `
		SELECT `+mappingColumns+`
		FROM scout_term_mappings
		ORDER BY term, confidence DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing term mappings: %w", err)
	}
	defer rows.Close()

	mappings := make([]models.TermMapping, 0, limit)

	for rows.Next() {
		m, err := scanMapping(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning term mapping: %w", err)
		}

		mappings = append(mappings, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating term mappings: %w", err)
	}

	return mappings, nil
}

// Delete removes all mappings for a term and reports how many went away.
func (s *MappingStore) Delete(ctx context.Context, term string) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := s.Pool.Exec(ctx, `DELETE FROM scout_term_mappings WHERE term = lower(trim($1))`, term)
	if err != nil {
		return 0, fmt.Errorf("deleting term mappings: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

// scanMapping reads one mapping row via the given scan function.
func scanMapping(scan func(...any) error) (*models.TermMapping, error) {
	var m models.TermMapping

	if err := scan(
		&m.Term, &m.Table, &m.Column, &m.Confidence,
		&m.Context, &m.UsageCount, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &m, nil
}
