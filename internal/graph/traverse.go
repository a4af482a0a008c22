package graph

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/schemascout/schemascout/internal/metrics"
	"github.com/schemascout/schemascout/internal/models"
)

// Traversal defaults and caps.
const (
	DefaultK             = 2
	DefaultFanout        = 10
	maxK                 = 5
	DefaultPathDepth     = 3
	maxPathDepth         = 10
	defaultQueueCapacity = 64
)

// bfsEntry is one queued node during K-hop BFS.
type bfsEntry struct {
	table string
	level int
}

// KHopNeighbors returns the tables reachable from start within k hops,
// bucketed by hop distance, each paired with the edge that first
// discovered it. Forward edges are always followed; reverse edges only
// when bidirectional is set.
//
// A table is recorded when first discovered and never revisited, even
// through a different relationship or direction. When a node's combined
// candidate count exceeds fanout, the candidates are reordered by
// estimated row count (largest first, stable) and only the top fanout
// survive. Discovery order within a level is FIFO except where the cap
// reordered a parent's expansion.
func (g *Graph) KHopNeighbors(start string, k int, bidirectional bool, fanout int) (map[int][]models.Neighbor, error) {
	snap := g.snapshot()
	if snap == nil {
		g.log.Warn("k-hop traversal before graph build")

		return nil, models.ErrGraphNotReady
	}

	if _, ok := snap.tables[start]; !ok {
		g.log.WithField("table", start).Warn("k-hop start table not found")

		return nil, models.ErrTableNotFound
	}

	if k <= 0 {
		k = DefaultK
	}

	if k > maxK {
		k = maxK
	}

	if fanout <= 0 {
		fanout = DefaultFanout
	}

	visited := map[string]bool{start: true}
	queue := make([]bfsEntry, 0, defaultQueueCapacity)
	queue = append(queue, bfsEntry{table: start, level: 0})
	levels := make(map[int][]models.Neighbor)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.level >= k {
			continue
		}

		candidates := snap.neighbors(cur.table, bidirectional)

		if len(candidates) > fanout {
			// Favor larger tables when a node is excessively connected.
			candidates = append([]models.Neighbor(nil), candidates...)
			sort.SliceStable(candidates, func(i, j int) bool {
				return snap.tables[candidates[i].Table].RowCount > snap.tables[candidates[j].Table].RowCount
			})
			candidates = candidates[:fanout]
		}

		for _, cand := range candidates {
			if visited[cand.Table] {
				continue
			}

			visited[cand.Table] = true
			levels[cur.level+1] = append(levels[cur.level+1], cand)
			queue = append(queue, bfsEntry{table: cand.Table, level: cur.level + 1})
		}
	}

	metrics.GraphTraversals.Inc()

	total := 0
	for _, ns := range levels {
		total += len(ns)
	}

	g.log.WithFields(logrus.Fields{
		"start":     start,
		"k":         k,
		"levels":    len(levels),
		"neighbors": total,
	}).Debug("k-hop traversal complete")

	return levels, nil
}

// neighbors collects a node's direct candidates: forward edges, plus
// reverse edges when bidirectional.
func (s *snapshot) neighbors(table string, bidirectional bool) []models.Neighbor {
	fwd := s.forward[table]
	if !bidirectional {
		return fwd
	}

	rev := s.reverse[table]
	if len(rev) == 0 {
		return fwd
	}

	out := make([]models.Neighbor, 0, len(fwd)+len(rev))
	out = append(out, fwd...)
	out = append(out, rev...)

	return out
}
