package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/schemascout/schemascout/internal/api"
	"github.com/schemascout/schemascout/internal/models"
)

func TestLiveness_ReturnsOK(t *testing.T) {
	t.Parallel()

	graph := &mockGraph{
		ready: true,
		statsFn: func() models.GraphStats {
			return models.GraphStats{Initialized: true, Version: 1}
		},
	}

	h := api.NewHealthHandler(nil, graph, testLogger(), "test-v1")

	r := gin.New()
	r.GET("/health", h.Liveness)

	w := doRequest(r, http.MethodGet, "/health", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %v", body["status"])
	}
	if body["version"] != "test-v1" {
		t.Errorf("expected version 'test-v1', got %v", body["version"])
	}
	if body["graph"] != "ready" {
		t.Errorf("expected graph 'ready', got %v", body["graph"])
	}
	if body["database"] != "not_configured" {
		t.Errorf("expected database 'not_configured' without a pool, got %v", body["database"])
	}
}

func TestLiveness_GraphNotBuilt(t *testing.T) {
	t.Parallel()

	h := api.NewHealthHandler(nil, &mockGraph{}, testLogger(), "test-v1")

	r := gin.New()
	r.GET("/health", h.Liveness)

	w := doRequest(r, http.MethodGet, "/health", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if body["graph"] != "not_built" {
		t.Errorf("expected graph 'not_built', got %v", body["graph"])
	}
}
