package graph

import (
	"github.com/sirupsen/logrus"

	"github.com/schemascout/schemascout/internal/models"
)

// pathEntry is one queued node during shortest-path BFS, carrying the
// edge chain that reached it.
type pathEntry struct {
	table string
	path  []models.Relationship
}

// PathBetween finds the shortest relationship chain from a to b,
// expanding both edge directions. The result is minimal in hop count
// (BFS guarantee); edges appear in traversal order with the
// cardinality of the direction actually taken. Returns ErrNoPath when
// the tables are disconnected within maxDepth hops.
func (g *Graph) PathBetween(a, b string, maxDepth int) ([]models.Relationship, error) {
	snap := g.snapshot()
	if snap == nil {
		return nil, models.ErrGraphNotReady
	}

	if _, ok := snap.tables[a]; !ok {
		return nil, models.ErrTableNotFound
	}

	if _, ok := snap.tables[b]; !ok {
		return nil, models.ErrTableNotFound
	}

	if maxDepth <= 0 {
		maxDepth = DefaultPathDepth
	}

	if maxDepth > maxPathDepth {
		maxDepth = maxPathDepth
	}

	if a == b {
		return []models.Relationship{}, nil
	}

	visited := map[string]bool{a: true}
	queue := []pathEntry{{table: a}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if len(cur.path) >= maxDepth {
			continue
		}

		for _, n := range snap.neighbors(cur.table, true) {
			if visited[n.Table] {
				continue
			}

			visited[n.Table] = true

			next := make([]models.Relationship, len(cur.path), len(cur.path)+1)
			copy(next, cur.path)
			next = append(next, n.Relationship)

			if n.Table == b {
				return next, nil
			}

			queue = append(queue, pathEntry{table: n.Table, path: next})
		}
	}

	g.log.WithFields(logrus.Fields{"from": a, "to": b, "max_depth": maxDepth}).Debug("no path found")

	return nil, models.ErrNoPath
}
