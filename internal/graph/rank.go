package graph

import (
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/schemascout/schemascout/internal/metrics"
	"github.com/schemascout/schemascout/internal/models"
)

// Relevance scoring weights. These are tuning parameters, not physical
// constants, but the combination rule (additive, substring-based,
// depth-penalized) is load-bearing for ranking compatibility.
const (
	scoreTokenInTable = 50 // query token is a substring of the table name
	scoreTableInToken = 30 // table name is a substring of the token
	scoreLevelPenalty = 10 // subtracted per hop
	scoreManyToOne    = 15 // child-to-parent edges join more directly
	scoreConfidence   = 10 // multiplied by edge confidence
	minTokenLength    = 4  // shorter tokens are noise words
)

// Explore runs a bidirectional K-hop traversal from start and ranks
// every discovered table against the free-text query, returning the
// top maxTables plus the raw per-level breakdown.
func (g *Graph) Explore(start, query string, k, maxTables int) (*models.ExploreResult, error) {
	if k <= 0 {
		k = DefaultK
	}

	if maxTables <= 0 {
		maxTables = 5
	}

	levels, err := g.KHopNeighbors(start, k, true, DefaultFanout)
	if err != nil {
		return nil, err
	}

	// Flatten in ascending level order so ties rank nearer tables first.
	levelKeys := make([]int, 0, len(levels))
	for level := range levels {
		levelKeys = append(levelKeys, level)
	}
	sort.Ints(levelKeys)

	ranked := make([]models.RankedTable, 0, 16)
	tokens := queryTokens(query)

	for _, level := range levelKeys {
		for _, n := range levels[level] {
			ranked = append(ranked, models.RankedTable{
				Table:        n.Table,
				Level:        level,
				Relationship: n.Relationship,
				Score:        scoreNeighbor(n, level, tokens),
			})
		}
	}

	total := len(ranked)

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	if len(ranked) > maxTables {
		ranked = ranked[:maxTables]
	}

	metrics.GraphExplorations.Inc()

	g.log.WithFields(logrus.Fields{
		"start":    start,
		"k":        k,
		"found":    total,
		"returned": len(ranked),
	}).Debug("neighborhood explored")

	return &models.ExploreResult{
		StartTable: start,
		K:          k,
		TotalFound: total,
		Returned:   len(ranked),
		Neighbors:  ranked,
		ByLevel:    levels,
	}, nil
}

// queryTokens splits the query on whitespace, lowercases, and drops
// tokens too short to be meaningful.
func queryTokens(query string) []string {
	fields := strings.Fields(strings.ToLower(query))

	tokens := fields[:0]
	for _, f := range fields {
		if len(f) >= minTokenLength {
			tokens = append(tokens, f)
		}
	}

	return tokens
}

// scoreNeighbor computes the additive relevance score for one
// discovered table. Per token only the stronger substring match fires.
func scoreNeighbor(n models.Neighbor, level int, tokens []string) float64 {
	name := strings.ToLower(n.Table)
	score := 0.0

	for _, tok := range tokens {
		switch {
		case strings.Contains(name, tok):
			score += scoreTokenInTable
		case strings.Contains(tok, name):
			score += scoreTableInToken
		}
	}

	score -= float64(level * scoreLevelPenalty)

	if n.Relationship.Cardinality == models.ManyToOne {
		score += scoreManyToOne
	}

	score += n.Relationship.Confidence * scoreConfidence

	return score
}
