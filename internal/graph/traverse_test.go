package graph_test

import (
	"errors"
	"testing"

	"github.com/schemascout/schemascout/internal/graph"
	"github.com/schemascout/schemascout/internal/models"
)

func levelTables(ns []models.Neighbor) map[string]bool {
	out := make(map[string]bool, len(ns))
	for _, n := range ns {
		out[n.Table] = true
	}

	return out
}

func TestKHop_ForwardOnly(t *testing.T) {
	t.Parallel()

	g := builtGraph(t, shopCatalog(), graph.Options{})

	levels, err := g.KHopNeighbors("order_items", 1, false, 10)
	if err != nil {
		t.Fatalf("KHopNeighbors: %v", err)
	}

	got := levelTables(levels[1])
	if len(got) != 2 || !got["orders"] || !got["products"] {
		t.Errorf("expected level 1 = {orders, products}, got %v", got)
	}
}

func TestKHop_Bidirectional(t *testing.T) {
	t.Parallel()

	g := builtGraph(t, shopCatalog(), graph.Options{})

	levels, err := g.KHopNeighbors("orders", 1, true, 10)
	if err != nil {
		t.Fatalf("KHopNeighbors: %v", err)
	}

	got := levelTables(levels[1])
	want := []string{"users", "order_items", "payments"}
	if len(got) != len(want) {
		t.Fatalf("expected %d neighbors, got %v", len(want), got)
	}
	for _, table := range want {
		if !got[table] {
			t.Errorf("expected %s at level 1, got %v", table, got)
		}
	}
}

func TestKHop_ReverseEdgeCardinality(t *testing.T) {
	t.Parallel()

	g := builtGraph(t, shopCatalog(), graph.Options{})

	levels, err := g.KHopNeighbors("users", 1, true, 10)
	if err != nil {
		t.Fatalf("KHopNeighbors: %v", err)
	}

	if len(levels[1]) != 1 || levels[1][0].Table != "orders" {
		t.Fatalf("expected level 1 = [orders], got %v", levels[1])
	}

	rel := levels[1][0].Relationship
	if rel.Cardinality != models.OneToMany {
		t.Errorf("reverse edge should be one_to_many, got %s", rel.Cardinality)
	}
	// Mirror edges keep the declared FK endpoints, only the cardinality flips.
	if rel.FromTable != "orders" || rel.ToTable != "users" {
		t.Errorf("unexpected mirror edge endpoints: %s -> %s", rel.FromTable, rel.ToTable)
	}
}

func TestKHop_DepthBounded(t *testing.T) {
	t.Parallel()

	g := builtGraph(t, shopCatalog(), graph.Options{})

	levels, err := g.KHopNeighbors("users", 1, true, 10)
	if err != nil {
		t.Fatalf("KHopNeighbors: %v", err)
	}

	if len(levels[2]) != 0 {
		t.Errorf("k=1 must not produce level 2, got %v", levels[2])
	}
}

func TestKHop_NoRevisit(t *testing.T) {
	t.Parallel()

	g := builtGraph(t, shopCatalog(), graph.Options{})

	levels, err := g.KHopNeighbors("users", 3, true, 10)
	if err != nil {
		t.Fatalf("KHopNeighbors: %v", err)
	}

	seen := map[string]bool{"users": true}
	for level := 1; level <= 3; level++ {
		for _, n := range levels[level] {
			if seen[n.Table] {
				t.Errorf("table %s discovered twice (level %d)", n.Table, level)
			}

			seen[n.Table] = true
		}
	}
}

func TestKHop_ReachesWholeSchema(t *testing.T) {
	t.Parallel()

	g := builtGraph(t, shopCatalog(), graph.Options{})

	levels, err := g.KHopNeighbors("users", 5, true, 10)
	if err != nil {
		t.Fatalf("KHopNeighbors: %v", err)
	}

	total := 0
	for _, ns := range levels {
		total += len(ns)
	}

	// Everything except the start table is reachable.
	if total != 5 {
		t.Errorf("expected 5 reachable tables, got %d", total)
	}
}

func TestKHop_FanoutCapKeepsLargestTables(t *testing.T) {
	t.Parallel()

	cat := &fakeCatalog{
		tables: []string{"hub", "small", "medium", "large"},
		fks: map[string][]models.ForeignKey{
			"hub": {
				fk("small_id", "small", "id"),
				fk("medium_id", "medium", "id"),
				fk("large_id", "large", "id"),
			},
		},
		rowCounts: map[string]int64{"small": 10, "medium": 500, "large": 9000},
	}

	g := builtGraph(t, cat, graph.Options{})

	levels, err := g.KHopNeighbors("hub", 1, false, 2)
	if err != nil {
		t.Fatalf("KHopNeighbors: %v", err)
	}

	got := levelTables(levels[1])
	if len(got) != 2 || !got["large"] || !got["medium"] {
		t.Errorf("fanout cap should keep the two largest tables, got %v", got)
	}
}

func TestKHop_UnknownTable(t *testing.T) {
	t.Parallel()

	g := builtGraph(t, shopCatalog(), graph.Options{})

	if _, err := g.KHopNeighbors("no_such_table", 2, true, 10); !errors.Is(err, models.ErrTableNotFound) {
		t.Errorf("expected ErrTableNotFound, got %v", err)
	}
}

func TestKHop_DefaultsApplied(t *testing.T) {
	t.Parallel()

	g := builtGraph(t, shopCatalog(), graph.Options{})

	// k=0 falls back to the default of 2.
	levels, err := g.KHopNeighbors("users", 0, true, 0)
	if err != nil {
		t.Fatalf("KHopNeighbors: %v", err)
	}

	if len(levels[1]) == 0 || len(levels[2]) == 0 {
		t.Errorf("expected two populated levels with default k, got %v", levels)
	}
	if len(levels[3]) != 0 {
		t.Errorf("default k must stop at level 2, got level 3 = %v", levels[3])
	}
}
