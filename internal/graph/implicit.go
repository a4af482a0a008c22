package graph

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/schemascout/schemascout/internal/models"
)

// Implicit-relationship discovery parameters. Name-similarity edges are
// guesses; they carry reduced confidence so ranking never weighs them
// like declared constraints.
const (
	implicitThreshold  = 0.8
	implicitConfidence = 0.7
)

// discoverImplicit scans table pairs for columns with near-identical
// names and adds inferred edges for pairs not already linked by a
// declared FK. Runs only when Options.DiscoverImplicit is set.
func (g *Graph) discoverImplicit(snap *snapshot, tables []string, schemas map[string]*models.TableSchema) {
	linked := make(map[[2]string]bool, len(snap.relationships))
	for _, rel := range snap.relationships {
		linked[[2]string{rel.FromTable, rel.ToTable}] = true
		linked[[2]string{rel.ToTable, rel.FromTable}] = true
	}

	found := 0

	for i, left := range tables {
		leftSchema := schemas[left]
		if leftSchema == nil {
			continue
		}

		for _, right := range tables[i+1:] {
			rightSchema := schemas[right]
			if rightSchema == nil || linked[[2]string{left, right}] {
				continue
			}

			lcol, rcol, ok := bestColumnMatch(leftSchema.Columns, rightSchema.Columns)
			if !ok {
				continue
			}

			rel := models.Relationship{
				Kind:       models.KindInferred,
				FromTable:  left,
				FromColumn: lcol,
				ToTable:    right,
				ToColumn:   rcol,
				Confidence: implicitConfidence,
			}

			snap.forward[left] = append(snap.forward[left], models.Neighbor{Table: right, Relationship: rel})
			snap.reverse[right] = append(snap.reverse[right], models.Neighbor{Table: left, Relationship: rel})
			snap.relationships = append(snap.relationships, rel)
			linked[[2]string{left, right}] = true
			found++
		}
	}

	if found > 0 {
		g.log.WithFields(logrus.Fields{"inferred": found}).Info("implicit relationships discovered")
	}
}

// bestColumnMatch returns the first column pair whose name similarity
// clears the threshold.
func bestColumnMatch(left, right []models.Column) (string, string, bool) {
	for _, lc := range left {
		for _, rc := range right {
			if columnNameSimilarity(lc.Name, rc.Name) >= implicitThreshold {
				return lc.Name, rc.Name, true
			}
		}
	}

	return "", "", false
}

// columnNameSimilarity scores two column names: exact match 1.0, one
// containing the other 0.8, otherwise 0.
func columnNameSimilarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	switch {
	case a == b:
		return 1.0
	case strings.Contains(a, b) || strings.Contains(b, a):
		return 0.8
	default:
		return 0
	}
}
