// Package graph models the target database schema as a directed
// multigraph of table relationships and answers bounded traversal
// queries over it.
//
// The graph is built once from the schema catalog, held immutably in a
// versioned snapshot, and read without locking afterwards. Rebuild
// swaps in a fresh snapshot; in-flight readers keep the one they
// started with.
package graph

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/schemascout/schemascout/internal/metrics"
	"github.com/schemascout/schemascout/internal/models"
)

// Catalog is the schema-introspection interface the builder consumes.
// It is implemented by the catalog package against PostgreSQL.
type Catalog interface {
	ListTables(ctx context.Context) ([]string, error)
	TableSchema(ctx context.Context, table string) (*models.TableSchema, error)
	ForeignKeys(ctx context.Context, table string) ([]models.ForeignKey, error)
	EstimateRowCount(ctx context.Context, table string) (int64, error)
}

// Options tunes graph construction.
type Options struct {
	// DiscoverImplicit enables column-name-similarity edge guessing.
	// Inferred edges carry confidence 0.7 and never outrank declared FKs.
	DiscoverImplicit bool

	// RowCountWorkers bounds concurrent row-count estimation during
	// build. Zero means 4.
	RowCountWorkers int
}

// snapshot is one immutable build of the schema graph.
type snapshot struct {
	forward       map[string][]models.Neighbor // table -> outgoing edges (FK direction)
	reverse       map[string][]models.Neighbor // table -> incoming edges, mirrored
	tables        map[string]models.TableInfo
	relationships []models.Relationship // forward edges only, discovery order
	version       int
}

// Graph owns the schema snapshot and its build lifecycle. All read
// methods are safe for concurrent use.
type Graph struct {
	catalog Catalog
	log     *logrus.Logger
	opts    Options

	mu      sync.RWMutex
	snap    *snapshot
	version int
}

// New creates an unbuilt Graph over the given catalog.
func New(catalog Catalog, log *logrus.Logger, opts Options) *Graph {
	return &Graph{catalog: catalog, log: log, opts: opts}
}

// Build constructs the graph from the catalog. Idempotent: a second
// call on a built graph is a no-op.
func (g *Graph) Build(ctx context.Context) error {
	g.mu.RLock()
	built := g.snap != nil
	g.mu.RUnlock()

	if built {
		g.log.Info("schema graph already built")

		return nil
	}

	return g.Rebuild(ctx)
}

// Rebuild always constructs a fresh snapshot and swaps it in, bumping
// the version. Schema changes are not auto-detected; callers decide
// when to rebuild.
func (g *Graph) Rebuild(ctx context.Context) error {
	start := time.Now()

	snap, err := g.build(ctx)
	if err != nil {
		return err
	}

	g.mu.Lock()
	g.version++
	snap.version = g.version
	g.snap = snap
	g.mu.Unlock()

	metrics.GraphBuildDuration.Observe(time.Since(start).Seconds())
	metrics.GraphBuildsTotal.Inc()
	metrics.GraphTables.Set(float64(len(snap.tables)))
	metrics.GraphRelationships.Set(float64(len(snap.relationships)))

	g.log.WithFields(logrus.Fields{
		"tables":        len(snap.tables),
		"relationships": len(snap.relationships),
		"version":       snap.version,
		"duration":      time.Since(start).String(),
	}).Info("schema graph built")

	return nil
}

// build assembles a snapshot without touching g's published state.
func (g *Graph) build(ctx context.Context) (*snapshot, error) {
	tables, err := g.catalog.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}

	snap := &snapshot{
		forward: make(map[string][]models.Neighbor),
		reverse: make(map[string][]models.Neighbor),
		tables:  make(map[string]models.TableInfo, len(tables)),
	}

	rowCounts := g.prefetchRowCounts(ctx, tables)
	schemas := make(map[string]*models.TableSchema, len(tables))

	for _, table := range tables {
		info := models.TableInfo{Name: table, RowCount: rowCounts[table]}

		schema, err := g.catalog.TableSchema(ctx, table)
		if err != nil {
			// One broken table must not sink the whole build.
			g.log.WithError(err).WithField("table", table).Error("fetching table schema")
		} else {
			schemas[table] = schema
			info.ColumnCount = len(schema.Columns)
			info.HasPrimaryKey = len(schema.PrimaryKey) > 0
			info.ForeignKeyCount = len(schema.ForeignKeys)
		}

		snap.tables[table] = info
	}

	for _, table := range tables {
		if err := g.discoverForeignKeys(ctx, snap, table); err != nil {
			g.log.WithError(err).WithField("table", table).Error("discovering relationships")
		}
	}

	if g.opts.DiscoverImplicit {
		g.discoverImplicit(snap, tables, schemas)
	}

	return snap, nil
}

// prefetchRowCounts estimates row counts for all tables with bounded
// concurrency. Estimates are best-effort: a failed estimate degrades to
// zero rather than failing the build.
func (g *Graph) prefetchRowCounts(ctx context.Context, tables []string) map[string]int64 {
	workers := g.opts.RowCountWorkers
	if workers <= 0 {
		workers = 4
	}

	counts := make([]int64, len(tables))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i, table := range tables {
		eg.Go(func() error {
			n, err := g.catalog.EstimateRowCount(egCtx, table)
			if err != nil {
				g.log.WithError(err).WithField("table", table).Warn("estimating row count")

				return nil
			}

			counts[i] = n

			return nil
		})
	}

	eg.Wait() //nolint:errcheck // workers never return errors.

	out := make(map[string]int64, len(tables))
	for i, table := range tables {
		out[table] = counts[i]
	}

	return out
}

// discoverForeignKeys adds the declared FK edges of one table: a
// forward many-to-one edge plus its one-to-many mirror in the reverse
// adjacency. Only forward edges enter the flat relationships list.
func (g *Graph) discoverForeignKeys(ctx context.Context, snap *snapshot, table string) error {
	fks, err := g.catalog.ForeignKeys(ctx, table)
	if err != nil {
		return fmt.Errorf("fetching foreign keys: %w", err)
	}

	for _, fk := range fks {
		if fk.ReferredTable == "" || len(fk.ConstrainedColumns) == 0 || len(fk.ReferredColumns) == 0 {
			// Malformed catalog row; skip rather than abort.
			g.log.WithFields(logrus.Fields{
				"table":      table,
				"constraint": fk.ConstraintName,
			}).Debug("skipping foreign key with missing columns")

			continue
		}

		rel := models.Relationship{
			Kind:        models.KindForeignKey,
			FromTable:   table,
			FromColumn:  fk.ConstrainedColumns[0],
			ToTable:     fk.ReferredTable,
			ToColumn:    fk.ReferredColumns[0],
			Cardinality: models.ManyToOne,
			Confidence:  1.0,
		}

		snap.forward[table] = append(snap.forward[table], models.Neighbor{
			Table:        fk.ReferredTable,
			Relationship: rel,
		})
		snap.reverse[fk.ReferredTable] = append(snap.reverse[fk.ReferredTable], models.Neighbor{
			Table:        table,
			Relationship: rel.Reversed(),
		})
		snap.relationships = append(snap.relationships, rel)

		g.log.WithFields(logrus.Fields{
			"from": table,
			"to":   fk.ReferredTable,
		}).Debug("relationship discovered")
	}

	return nil
}

// snapshot returns the current snapshot, or nil before the first build.
func (g *Graph) snapshot() *snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.snap
}

// Ready reports whether the graph has been built.
func (g *Graph) Ready() bool {
	return g.snapshot() != nil
}

// Version returns the snapshot version, zero before the first build.
func (g *Graph) Version() int {
	snap := g.snapshot()
	if snap == nil {
		return 0
	}

	return snap.version
}
