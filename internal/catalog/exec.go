package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// execQueryTimeout bounds ad-hoc query execution separately from
// introspection; user-shaped queries can be slower.
const execQueryTimeout = 60 * time.Second

// aggregateMarkers are the substrings that suppress the automatic LIMIT:
// aggregate queries already return few rows.
var aggregateMarkers = []string{"COUNT(", "SUM(", "AVG(", "MAX(", "MIN("}

// SampleData returns up to limit rows from a table as generic maps.
func (p *PG) SampleData(ctx context.Context, table string, limit int) ([]map[string]any, error) {
	if limit <= 0 {
		limit = 5
	}

	ident := pgx.Identifier{p.schema, table}.Sanitize()

	return p.ExecuteSelect(ctx, fmt.Sprintf("SELECT * FROM %s", ident), limit)
}

// ExecuteSelect runs a SELECT against the target database and returns
// rows as column-name maps. A LIMIT is appended unless the query
// already has one or aggregates.
func (p *PG) ExecuteSelect(ctx context.Context, query string, limit int) ([]map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, execQueryTimeout)
	defer cancel()

	query = applyLimit(query, limit)

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	out := make([]map[string]any, 0, 16)

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("reading row values: %w", err)
		}

		row := make(map[string]any, len(fields))
		for i, f := range fields {
			row[f.Name] = normalizeValue(values[i])
		}

		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating query rows: %w", err)
	}

	p.log.WithField("rows", len(out)).Debug("query executed")

	return out, nil
}

// applyLimit appends a LIMIT clause when the query has neither an
// explicit limit nor an aggregate function.
func applyLimit(query string, limit int) string {
	if limit <= 0 {
		limit = 100
	}

	upper := strings.ToUpper(query)

	if strings.Contains(upper, "LIMIT") {
		return query
	}

	for _, marker := range aggregateMarkers {
		if strings.Contains(upper, marker) {
			return query
		}
	}

	return fmt.Sprintf("%s LIMIT %d", strings.TrimRight(strings.TrimSpace(query), ";"), limit)
}

// normalizeValue converts driver-specific values into JSON-friendly ones.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case time.Time:
		return val.Format(time.RFC3339)
	case []byte:
		return string(val)
	default:
		return v
	}
}
