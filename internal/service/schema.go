package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/schemascout/schemascout/internal/models"
)

// SchemaCatalog is the catalog interface SchemaService depends on.
// It is implemented by catalog.PG.
type SchemaCatalog interface {
	ListTables(ctx context.Context) ([]string, error)
	TableSchema(ctx context.Context, table string) (*models.TableSchema, error)
	EstimateRowCount(ctx context.Context, table string) (int64, error)
	SampleData(ctx context.Context, table string, limit int) ([]map[string]any, error)
}

// TableList is the response shape for the table listing endpoint.
type TableList struct {
	TotalTables int              `json:"total_tables"`
	Tables      []string         `json:"tables"`
	RowCounts   map[string]int64 `json:"row_counts,omitempty"`
}

// TableDetail is a table schema with optional sample rows.
type TableDetail struct {
	models.TableSchema
	SampleData []map[string]any `json:"sample_data,omitempty"`
}

// SchemaService exposes catalog reads to the API layer.
type SchemaService struct {
	catalog SchemaCatalog
	log     *logrus.Logger
}

// NewSchemaService creates a SchemaService.
func NewSchemaService(catalog SchemaCatalog, log *logrus.Logger) *SchemaService {
	return &SchemaService{catalog: catalog, log: log}
}

// Tables lists all tables, optionally with row-count estimates.
// A failed estimate for one table degrades to zero, never an error.
func (s *SchemaService) Tables(ctx context.Context, includeRowCounts bool) (*TableList, error) {
	tables, err := s.catalog.ListTables(ctx)
	if err != nil {
		return nil, err
	}

	out := &TableList{TotalTables: len(tables), Tables: tables}

	if includeRowCounts {
		out.RowCounts = make(map[string]int64, len(tables))

		for _, t := range tables {
			n, err := s.catalog.EstimateRowCount(ctx, t)
			if err != nil {
				s.log.WithError(err).WithField("table", t).Warn("estimating row count")
			}

			out.RowCounts[t] = n
		}
	}

	s.log.WithField("tables", len(tables)).Debug("schema.tables")

	return out, nil
}

// TableDetail returns the full schema of one table, optionally with
// sample rows.
func (s *SchemaService) TableDetail(ctx context.Context, table string, sampleRows int) (*TableDetail, error) {
	schema, err := s.catalog.TableSchema(ctx, table)
	if err != nil {
		return nil, err
	}

	detail := &TableDetail{TableSchema: *schema}

	if sampleRows > 0 {
		sample, err := s.catalog.SampleData(ctx, table, sampleRows)
		if err != nil {
			// Sample data is a convenience; schema info still stands.
			s.log.WithError(err).WithField("table", table).Warn("fetching sample data")
		} else {
			detail.SampleData = sample
		}
	}

	return detail, nil
}
