// Package catalog implements schema introspection against PostgreSQL.
//
// It is the single consumer-facing accessor for everything the graph
// builder and the schema endpoints need: table names, columns, keys,
// and best-effort row-count estimates.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/schemascout/schemascout/internal/dbpool"
	"github.com/schemascout/schemascout/internal/models"
)

const defaultQueryTimeout = 30 * time.Second

// PG introspects one schema of a PostgreSQL database.
type PG struct {
	pool   *dbpool.Pool
	schema string
	log    *logrus.Logger
}

// NewPG creates a catalog accessor for the given schema ("public" if empty).
func NewPG(pool *dbpool.Pool, schema string, log *logrus.Logger) *PG {
	if schema == "" {
		schema = "public"
	}

	return &PG{pool: pool, schema: schema, log: log}
}

// withTimeout creates a context with the default query timeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultQueryTimeout)
}

// ListTables returns all base table names in the schema, ordered by name.
func (p *PG) ListTables(ctx context.Context) ([]string, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := p.pool.Query(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1
		  AND table_type = 'BASE TABLE'
		ORDER BY table_name`, p.schema)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var tables []string

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning table name: %w", err)
		}

		tables = append(tables, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tables: %w", err)
	}

	return tables, nil
}

// TableSchema returns columns, primary key, and foreign keys for one table.
func (p *PG) TableSchema(ctx context.Context, table string) (*models.TableSchema, error) {
	columns, err := p.columns(ctx, table)
	if err != nil {
		return nil, err
	}

	pk, err := p.primaryKey(ctx, table)
	if err != nil {
		return nil, err
	}

	fks, err := p.ForeignKeys(ctx, table)
	if err != nil {
		return nil, err
	}

	return &models.TableSchema{
		TableName:   table,
		Columns:     columns,
		PrimaryKey:  pk,
		ForeignKeys: fks,
	}, nil
}

func (p *PG) columns(ctx context.Context, table string) ([]models.Column, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := p.pool.Query(ctx, `
		SELECT column_name, data_type, is_nullable, COALESCE(column_default, '')
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position`, p.schema, table)
	if err != nil {
		return nil, fmt.Errorf("listing columns of %s: %w", table, err)
	}
	defer rows.Close()

	var columns []models.Column

	for rows.Next() {
		var (
			col      models.Column
			nullable string
		)

		if err := rows.Scan(&col.Name, &col.DataType, &nullable, &col.Default); err != nil {
			return nil, fmt.Errorf("scanning column: %w", err)
		}

		col.Nullable = nullable == "YES"
		columns = append(columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating columns: %w", err)
	}

	return columns, nil
}

func (p *PG) primaryKey(ctx context.Context, table string) ([]string, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := p.pool.Query(ctx, `
		SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		WHERE tc.constraint_type = 'PRIMARY KEY'
			AND tc.table_schema = $1
			AND tc.table_name = $2
		ORDER BY kcu.ordinal_position`, p.schema, table)
	if err != nil {
		return nil, fmt.Errorf("listing primary key of %s: %w", table, err)
	}
	defer rows.Close()

	var pk []string

	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return nil, fmt.Errorf("scanning primary key column: %w", err)
		}

		pk = append(pk, col)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating primary key: %w", err)
	}

	return pk, nil
}

// ForeignKeys returns the declared FK constraints of one table, with
// multi-column constraints grouped by constraint name.
func (p *PG) ForeignKeys(ctx context.Context, table string) ([]models.ForeignKey, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := p.pool.Query(ctx, `
		SELECT tc.constraint_name, kcu.column_name, ccu.table_name, ccu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		JOIN information_schema.constraint_column_usage ccu
			ON tc.constraint_name = ccu.constraint_name
			AND tc.table_schema = ccu.table_schema
		WHERE tc.constraint_type = 'FOREIGN KEY'
			AND tc.table_schema = $1
			AND tc.table_name = $2
		ORDER BY tc.constraint_name, kcu.ordinal_position`, p.schema, table)
	if err != nil {
		return nil, fmt.Errorf("listing foreign keys of %s: %w", table, err)
	}
	defer rows.Close()

	var (
		fks     []models.ForeignKey
		current *models.ForeignKey
	)

	for rows.Next() {
		var name, constrained, referredTable, referred string
		if err := rows.Scan(&name, &constrained, &referredTable, &referred); err != nil {
			return nil, fmt.Errorf("scanning foreign key: %w", err)
		}

		if current == nil || current.ConstraintName != name {
			fks = append(fks, models.ForeignKey{ConstraintName: name, ReferredTable: referredTable})
			current = &fks[len(fks)-1]
		}

		current.ConstrainedColumns = append(current.ConstrainedColumns, constrained)
		current.ReferredColumns = append(current.ReferredColumns, referred)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating foreign keys: %w", err)
	}

	return fks, nil
}

// EstimateRowCount returns the planner's row estimate from pg_class.
// Best-effort: any failure (or a never-analyzed table) degrades to 0.
func (p *PG) EstimateRowCount(ctx context.Context, table string) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var estimate int64

	err := p.pool.QueryRow(ctx, `
		SELECT COALESCE(c.reltuples, 0)::bigint
		FROM pg_class c
		JOIN pg_namespace n ON n.oid = c.relnamespace
		WHERE n.nspname = $1 AND c.relname = $2`, p.schema, table).Scan(&estimate)
	if err != nil {
		return 0, fmt.Errorf("estimating rows of %s: %w", table, err)
	}

	if estimate < 0 {
		// reltuples is -1 for tables that were never analyzed.
		estimate = 0
	}

	return estimate, nil
}
