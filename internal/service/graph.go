// Package service provides business logic between API handlers and the
// graph, catalog, and store layers.
package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/schemascout/schemascout/internal/models"
)

// Explorer is the graph interface GraphService depends on. It is
// implemented by graph.Graph.
type Explorer interface {
	KHopNeighbors(start string, k int, bidirectional bool, fanout int) (map[int][]models.Neighbor, error)
	PathBetween(a, b string, maxDepth int) ([]models.Relationship, error)
	Explore(start, query string, k, maxTables int) (*models.ExploreResult, error)
	TableInfo(table string) (models.TableInfo, error)
	ConnectedTables(table string) ([]string, error)
	Relationships() ([]models.Relationship, error)
	RelationshipsAmong(tables []string, includeInferred bool) ([]models.Relationship, error)
	Stats() models.GraphStats
	Rebuild(ctx context.Context) error
	Ready() bool
}

// GraphService wraps the schema graph with context-aware logging.
type GraphService struct {
	graph Explorer
	log   *logrus.Logger
}

// NewGraphService creates a GraphService.
func NewGraphService(graph Explorer, log *logrus.Logger) *GraphService {
	return &GraphService{graph: graph, log: log}
}

// KHopNeighbors returns the K-hop neighborhood of a table.
func (s *GraphService) KHopNeighbors(start string, k int, bidirectional bool, fanout int) (map[int][]models.Neighbor, error) {
	s.log.WithFields(logrus.Fields{
		"start":         start,
		"k":             k,
		"bidirectional": bidirectional,
		"fanout":        fanout,
	}).Debug("graph.k_hop")

	return s.graph.KHopNeighbors(start, k, bidirectional, fanout)
}

// PathBetween finds the shortest relationship chain between two tables.
func (s *GraphService) PathBetween(a, b string, maxDepth int) ([]models.Relationship, error) {
	s.log.WithFields(logrus.Fields{
		"from":      a,
		"to":        b,
		"max_depth": maxDepth,
	}).Debug("graph.path")

	return s.graph.PathBetween(a, b, maxDepth)
}

// Explore ranks the K-hop neighborhood of a table against a free-text query.
func (s *GraphService) Explore(start, query string, k, maxTables int) (*models.ExploreResult, error) {
	s.log.WithFields(logrus.Fields{
		"start":      start,
		"k":          k,
		"max_tables": maxTables,
	}).Debug("graph.explore")

	return s.graph.Explore(start, query, k, maxTables)
}

// TableInfo returns graph metadata for one table.
func (s *GraphService) TableInfo(table string) (models.TableInfo, error) {
	return s.graph.TableInfo(table)
}

// ConnectedTables returns the tables directly connected to the given one.
func (s *GraphService) ConnectedTables(table string) ([]string, error) {
	return s.graph.ConnectedTables(table)
}

// Relationships returns every discovered edge, forward direction only.
func (s *GraphService) Relationships() ([]models.Relationship, error) {
	return s.graph.Relationships()
}

// RelationshipsAmong returns the edges connecting tables in the given set.
func (s *GraphService) RelationshipsAmong(tables []string, includeInferred bool) ([]models.Relationship, error) {
	s.log.WithFields(logrus.Fields{
		"tables":           len(tables),
		"include_inferred": includeInferred,
	}).Debug("graph.relationships_among")

	return s.graph.RelationshipsAmong(tables, includeInferred)
}

// Stats summarizes the current graph snapshot.
func (s *GraphService) Stats() models.GraphStats {
	return s.graph.Stats()
}

// Rebuild constructs a fresh graph snapshot from the catalog.
func (s *GraphService) Rebuild(ctx context.Context) error {
	s.log.Info("graph.rebuild requested")

	return s.graph.Rebuild(ctx)
}

// Ready reports whether the graph has been built.
func (s *GraphService) Ready() bool {
	return s.graph.Ready()
}
