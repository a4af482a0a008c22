package models_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/schemascout/schemascout/internal/models"
)

func TestQueryRequestValidate_Defaults(t *testing.T) {
	t.Parallel()

	req := models.QueryRequest{Tables: []string{"users"}}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if req.Limit != 100 {
		t.Errorf("expected default limit 100, got %d", req.Limit)
	}
}

func TestQueryRequestValidate_CapsLimit(t *testing.T) {
	t.Parallel()

	req := models.QueryRequest{Tables: []string{"users"}, Limit: 99999}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if req.Limit != 1000 {
		t.Errorf("expected limit capped at 1000, got %d", req.Limit)
	}
}

func TestQueryRequestValidate_NoTables(t *testing.T) {
	t.Parallel()

	req := models.QueryRequest{}
	if err := req.Validate(); !errors.Is(err, models.ErrMissingTables) {
		t.Errorf("expected ErrMissingTables, got %v", err)
	}
}

func TestQueryRequestValidate_TooManyTables(t *testing.T) {
	t.Parallel()

	req := models.QueryRequest{Tables: make([]string, 11)}
	for i := range req.Tables {
		req.Tables[i] = "t"
	}

	if err := req.Validate(); err == nil {
		t.Error("expected error for more than 10 tables")
	}
}

func TestExploreRequestValidate_Defaults(t *testing.T) {
	t.Parallel()

	req := models.ExploreRequest{StartTable: "users"}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if req.K != 2 {
		t.Errorf("expected default k 2, got %d", req.K)
	}
	if req.MaxTables != 5 {
		t.Errorf("expected default max_tables 5, got %d", req.MaxTables)
	}
}

func TestExploreRequestValidate_CapsK(t *testing.T) {
	t.Parallel()

	req := models.ExploreRequest{StartTable: "users", K: 99}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if req.K != 5 {
		t.Errorf("expected k capped at 5, got %d", req.K)
	}
}

func TestExploreRequestValidate_MissingStart(t *testing.T) {
	t.Parallel()

	req := models.ExploreRequest{Query: "revenue"}
	if err := req.Validate(); !errors.Is(err, models.ErrMissingStartTable) {
		t.Errorf("expected ErrMissingStartTable, got %v", err)
	}
}

func TestCreateMappingRequestValidate(t *testing.T) {
	t.Parallel()

	req := models.CreateMappingRequest{Term: "customers", Table: "users"}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if req.Confidence != 0.9 {
		t.Errorf("expected default confidence 0.9, got %v", req.Confidence)
	}

	req = models.CreateMappingRequest{Term: "customers", Table: "users", Confidence: 7}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if req.Confidence != 1 {
		t.Errorf("expected confidence clamped to 1, got %v", req.Confidence)
	}

	req = models.CreateMappingRequest{Table: "users"}
	if err := req.Validate(); !errors.Is(err, models.ErrMissingTerm) {
		t.Errorf("expected ErrMissingTerm, got %v", err)
	}

	req = models.CreateMappingRequest{Term: strings.Repeat("x", 256), Table: "users"}
	if err := req.Validate(); err == nil {
		t.Error("expected error for oversized term")
	}
}
