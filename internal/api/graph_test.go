package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/schemascout/schemascout/internal/api"
	"github.com/schemascout/schemascout/internal/models"
)

func TestGraphNeighbors_OK(t *testing.T) {
	t.Parallel()

	graph := &mockGraph{
		kHopFn: func(start string, k int, _ bool, _ int) (map[int][]models.Neighbor, error) {
			if start != "orders" || k != 2 {
				t.Errorf("unexpected args: start=%s k=%d", start, k)
			}

			return map[int][]models.Neighbor{
				1: {{Table: "users", Relationship: models.Relationship{FromTable: "orders", ToTable: "users"}}},
			}, nil
		},
	}

	r := gin.New()
	h := api.NewGraphHandler(graph, testLogger())
	r.GET("/graph/neighbors/:table", h.Neighbors)

	w := doRequest(r, http.MethodGet, "/graph/neighbors/orders", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if body["total_found"] != float64(1) {
		t.Errorf("expected total_found 1, got %v", body["total_found"])
	}
}

func TestGraphNeighbors_NotReady(t *testing.T) {
	t.Parallel()

	graph := &mockGraph{
		kHopFn: func(string, int, bool, int) (map[int][]models.Neighbor, error) {
			return nil, models.ErrGraphNotReady
		},
	}

	r := gin.New()
	h := api.NewGraphHandler(graph, testLogger())
	r.GET("/graph/neighbors/:table", h.Neighbors)

	w := doRequest(r, http.MethodGet, "/graph/neighbors/orders", "")

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGraphNeighbors_UnknownTable(t *testing.T) {
	t.Parallel()

	graph := &mockGraph{
		kHopFn: func(string, int, bool, int) (map[int][]models.Neighbor, error) {
			return nil, models.ErrTableNotFound
		},
	}

	r := gin.New()
	h := api.NewGraphHandler(graph, testLogger())
	r.GET("/graph/neighbors/:table", h.Neighbors)

	w := doRequest(r, http.MethodGet, "/graph/neighbors/ghost", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGraphNeighbors_KTooLarge(t *testing.T) {
	t.Parallel()

	r := gin.New()
	h := api.NewGraphHandler(&mockGraph{}, testLogger())
	r.GET("/graph/neighbors/:table", h.Neighbors)

	w := doRequest(r, http.MethodGet, "/graph/neighbors/orders?k=6", "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGraphPath_OK(t *testing.T) {
	t.Parallel()

	graph := &mockGraph{
		pathFn: func(a, b string, maxDepth int) ([]models.Relationship, error) {
			if a != "users" || b != "payments" || maxDepth != 3 {
				t.Errorf("unexpected args: %s %s %d", a, b, maxDepth)
			}

			return []models.Relationship{
				{FromTable: "orders", ToTable: "users", Cardinality: models.OneToMany},
				{FromTable: "payments", ToTable: "orders", Cardinality: models.OneToMany},
			}, nil
		},
	}

	r := gin.New()
	h := api.NewGraphHandler(graph, testLogger())
	r.GET("/graph/path/:from/:to", h.Path)

	w := doRequest(r, http.MethodGet, "/graph/path/users/payments", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if body["length"] != float64(2) {
		t.Errorf("expected length 2, got %v", body["length"])
	}
}

func TestGraphPath_NoPath(t *testing.T) {
	t.Parallel()

	graph := &mockGraph{
		pathFn: func(string, string, int) ([]models.Relationship, error) {
			return nil, models.ErrNoPath
		},
	}

	r := gin.New()
	h := api.NewGraphHandler(graph, testLogger())
	r.GET("/graph/path/:from/:to", h.Path)

	w := doRequest(r, http.MethodGet, "/graph/path/users/audit_log", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGraphRelationshipsAmong_Valid(t *testing.T) {
	t.Parallel()

	graph := &mockGraph{
		relsAmongFn: func(tables []string, includeInferred bool) ([]models.Relationship, error) {
			if len(tables) != 2 || !includeInferred {
				t.Errorf("unexpected args: %v %v", tables, includeInferred)
			}

			return []models.Relationship{{FromTable: "orders", ToTable: "users"}}, nil
		},
	}

	r := gin.New()
	h := api.NewGraphHandler(graph, testLogger())
	r.POST("/graph/relationships/among", h.RelationshipsAmong)

	w := doRequest(r, http.MethodPost, "/graph/relationships/among",
		`{"tables":["orders","users"],"include_inferred":true}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGraphRelationshipsAmong_EmptyTables(t *testing.T) {
	t.Parallel()

	r := gin.New()
	h := api.NewGraphHandler(&mockGraph{}, testLogger())
	r.POST("/graph/relationships/among", h.RelationshipsAmong)

	w := doRequest(r, http.MethodPost, "/graph/relationships/among", `{"tables":[]}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGraphRebuild_OK(t *testing.T) {
	t.Parallel()

	graph := &mockGraph{
		rebuildFn: func(context.Context) error { return nil },
		statsFn: func() models.GraphStats {
			return models.GraphStats{TablesCount: 6, RelationshipsCount: 5, Initialized: true, Version: 2}
		},
	}

	r := gin.New()
	h := api.NewGraphHandler(graph, testLogger())
	r.POST("/graph/rebuild", h.Rebuild)

	w := doRequest(r, http.MethodPost, "/graph/rebuild", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if body["version"] != float64(2) {
		t.Errorf("expected version 2, got %v", body["version"])
	}
}
