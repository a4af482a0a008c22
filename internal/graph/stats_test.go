package graph_test

import (
	"errors"
	"testing"

	"github.com/schemascout/schemascout/internal/graph"
	"github.com/schemascout/schemascout/internal/models"
)

func TestStats_Counts(t *testing.T) {
	t.Parallel()

	g := builtGraph(t, shopCatalog(), graph.Options{})

	stats := g.Stats()

	if stats.TablesCount != 6 {
		t.Errorf("expected 6 tables, got %d", stats.TablesCount)
	}
	if stats.RelationshipsCount != 5 {
		t.Errorf("expected 5 relationships, got %d", stats.RelationshipsCount)
	}
	if !stats.Initialized {
		t.Error("expected initialized flag")
	}
	if stats.Version != 1 {
		t.Errorf("expected version 1, got %d", stats.Version)
	}

	want := 5.0 / 6.0
	if stats.AvgConnections != want {
		t.Errorf("expected avg connections %v, got %v", want, stats.AvgConnections)
	}
}

func TestStats_MostConnected(t *testing.T) {
	t.Parallel()

	g := builtGraph(t, shopCatalog(), graph.Options{})

	stats := g.Stats()

	if len(stats.MostConnected) != 5 {
		t.Fatalf("expected top-5 list, got %d entries", len(stats.MostConnected))
	}

	// orders touches users, order_items, and payments.
	top := stats.MostConnected[0]
	if top.Table != "orders" || top.Connections != 3 {
		t.Errorf("expected orders with 3 connections on top, got %s with %d", top.Table, top.Connections)
	}

	for i := 1; i < len(stats.MostConnected); i++ {
		if stats.MostConnected[i].Connections > stats.MostConnected[i-1].Connections {
			t.Errorf("most-connected list not sorted at %d", i)
		}
	}
}

func TestStats_Unbuilt(t *testing.T) {
	t.Parallel()

	g := graph.New(shopCatalog(), testLogger(), graph.Options{})

	stats := g.Stats()

	if stats.Initialized {
		t.Error("unbuilt graph must not report initialized")
	}
	if stats.TablesCount != 0 || stats.RelationshipsCount != 0 {
		t.Errorf("unbuilt graph must report zero counts, got %+v", stats)
	}
}

func TestConnectedTables_SortedAndDeduplicated(t *testing.T) {
	t.Parallel()

	g := builtGraph(t, shopCatalog(), graph.Options{})

	tables, err := g.ConnectedTables("orders")
	if err != nil {
		t.Fatalf("ConnectedTables: %v", err)
	}

	want := []string{"order_items", "payments", "users"}
	if len(tables) != len(want) {
		t.Fatalf("expected %v, got %v", want, tables)
	}
	for i := range want {
		if tables[i] != want[i] {
			t.Errorf("expected %v, got %v", want, tables)

			break
		}
	}
}

func TestConnectedTables_Unknown(t *testing.T) {
	t.Parallel()

	g := builtGraph(t, shopCatalog(), graph.Options{})

	if _, err := g.ConnectedTables("no_such_table"); !errors.Is(err, models.ErrTableNotFound) {
		t.Errorf("expected ErrTableNotFound, got %v", err)
	}
}

func TestRelationshipsAmong_FiltersToSubset(t *testing.T) {
	t.Parallel()

	g := builtGraph(t, shopCatalog(), graph.Options{})

	rels, err := g.RelationshipsAmong([]string{"orders", "users", "payments"}, false)
	if err != nil {
		t.Fatalf("RelationshipsAmong: %v", err)
	}

	if len(rels) != 2 {
		t.Fatalf("expected 2 relationships in subset, got %d", len(rels))
	}

	for _, rel := range rels {
		if rel.ToTable == "order_items" || rel.FromTable == "order_items" {
			t.Errorf("relationship outside subset leaked: %+v", rel)
		}
	}
}

func TestRelationshipsAmong_InferredOptIn(t *testing.T) {
	t.Parallel()

	g := builtGraph(t, implicitCatalog(), graph.Options{DiscoverImplicit: true})

	without, err := g.RelationshipsAmong([]string{"invoices", "shipments"}, false)
	if err != nil {
		t.Fatalf("RelationshipsAmong: %v", err)
	}
	if len(without) != 0 {
		t.Errorf("inferred edges must be excluded by default, got %d", len(without))
	}

	with, err := g.RelationshipsAmong([]string{"invoices", "shipments"}, true)
	if err != nil {
		t.Fatalf("RelationshipsAmong: %v", err)
	}
	if len(with) != 1 {
		t.Errorf("expected 1 inferred edge with opt-in, got %d", len(with))
	}
}
