package graph

import (
	"sort"

	"github.com/schemascout/schemascout/internal/models"
)

// TableInfo returns the metadata recorded for one table.
func (g *Graph) TableInfo(table string) (models.TableInfo, error) {
	snap := g.snapshot()
	if snap == nil {
		return models.TableInfo{}, models.ErrGraphNotReady
	}

	info, ok := snap.tables[table]
	if !ok {
		return models.TableInfo{}, models.ErrTableNotFound
	}

	return info, nil
}

// ConnectedTables returns every table directly connected to the given
// one, in either direction, deduplicated and sorted by name.
func (g *Graph) ConnectedTables(table string) ([]string, error) {
	snap := g.snapshot()
	if snap == nil {
		return nil, models.ErrGraphNotReady
	}

	if _, ok := snap.tables[table]; !ok {
		return nil, models.ErrTableNotFound
	}

	return snap.connected(table), nil
}

// connected computes the dedup union of forward and reverse neighbors.
func (s *snapshot) connected(table string) []string {
	seen := make(map[string]bool)

	for _, n := range s.forward[table] {
		seen[n.Table] = true
	}

	for _, n := range s.reverse[table] {
		seen[n.Table] = true
	}

	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}

	sort.Strings(out)

	return out
}

// Relationships returns all discovered edges. Each declared FK appears
// exactly once, in its forward (many-to-one) direction.
func (g *Graph) Relationships() ([]models.Relationship, error) {
	snap := g.snapshot()
	if snap == nil {
		return nil, models.ErrGraphNotReady
	}

	out := make([]models.Relationship, len(snap.relationships))
	copy(out, snap.relationships)

	return out, nil
}

// RelationshipsAmong filters the discovered edges to those whose both
// endpoints are in the given table set. Inferred edges are included
// only when includeInferred is set.
func (g *Graph) RelationshipsAmong(tables []string, includeInferred bool) ([]models.Relationship, error) {
	snap := g.snapshot()
	if snap == nil {
		return nil, models.ErrGraphNotReady
	}

	want := make(map[string]bool, len(tables))
	for _, t := range tables {
		want[t] = true
	}

	out := make([]models.Relationship, 0, 8)

	for _, rel := range snap.relationships {
		if !want[rel.FromTable] || !want[rel.ToTable] {
			continue
		}

		if rel.Kind == models.KindInferred && !includeInferred {
			continue
		}

		out = append(out, rel)
	}

	return out, nil
}

// Stats summarizes the graph. Safe to call before the first build; the
// Initialized flag distinguishes an unbuilt graph from an empty schema.
func (g *Graph) Stats() models.GraphStats {
	snap := g.snapshot()
	if snap == nil {
		return models.GraphStats{}
	}

	stats := models.GraphStats{
		TablesCount:        len(snap.tables),
		RelationshipsCount: len(snap.relationships),
		Initialized:        true,
		Version:            snap.version,
	}

	if len(snap.tables) > 0 {
		stats.AvgConnections = float64(len(snap.relationships)) / float64(len(snap.tables))
	}

	degrees := make([]models.TableDegree, 0, len(snap.tables))
	for t := range snap.tables {
		degrees = append(degrees, models.TableDegree{Table: t, Connections: len(snap.connected(t))})
	}

	sort.Slice(degrees, func(i, j int) bool {
		if degrees[i].Connections != degrees[j].Connections {
			return degrees[i].Connections > degrees[j].Connections
		}

		return degrees[i].Table < degrees[j].Table
	})

	if len(degrees) > 5 {
		degrees = degrees[:5]
	}

	stats.MostConnected = degrees

	return stats
}
