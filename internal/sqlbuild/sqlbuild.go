// Package sqlbuild assembles SELECT statements from structured
// fragments. It is a string-concatenation helper, not a query planner:
// fragments are passed through as-is and the database does the
// validating.
package sqlbuild

import (
	"fmt"
	"strings"

	"github.com/schemascout/schemascout/internal/models"
)

// Select assembles a SELECT statement from a validated QueryRequest.
// The first table is the FROM table; joins may be given either as full
// "JOIN x ON cond" clauses or as "x ON cond" shorthand.
func Select(req *models.QueryRequest) string {
	var parts []string

	if len(req.Aggregations) > 0 {
		parts = append(parts, "SELECT "+strings.Join(req.Aggregations, ", "))
	} else {
		parts = append(parts, "SELECT *")
	}

	parts = append(parts, "FROM "+req.Tables[0])

	for _, join := range req.Joins {
		parts = append(parts, joinClause(join))
	}

	if len(req.Filters) > 0 {
		conds := make([]string, len(req.Filters))
		for i, f := range req.Filters {
			conds[i] = "(" + f + ")"
		}

		parts = append(parts, "WHERE "+strings.Join(conds, " AND "))
	}

	if len(req.GroupBy) > 0 {
		parts = append(parts, "GROUP BY "+strings.Join(req.GroupBy, ", "))
	}

	if req.OrderBy != "" {
		parts = append(parts, "ORDER BY "+req.OrderBy)
	}

	parts = append(parts, fmt.Sprintf("LIMIT %d", req.Limit))

	return strings.Join(parts, "\n")
}

// joinClause normalizes one join fragment into a full JOIN clause.
func joinClause(join string) string {
	join = strings.TrimSpace(join)
	upper := strings.ToUpper(join)

	switch {
	case strings.HasPrefix(upper, "JOIN"),
		strings.HasPrefix(upper, "INNER JOIN"),
		strings.HasPrefix(upper, "LEFT JOIN"),
		strings.HasPrefix(upper, "RIGHT JOIN"):
		return join
	case strings.Contains(upper, " ON "):
		return "JOIN " + join
	default:
		return join
	}
}
