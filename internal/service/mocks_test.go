package service_test

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/schemascout/schemascout/internal/models"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)

	return l
}

// mockCatalog implements service.SchemaCatalog for testing.
type mockCatalog struct {
	listFn   func(ctx context.Context) ([]string, error)
	schemaFn func(ctx context.Context, table string) (*models.TableSchema, error)
	countFn  func(ctx context.Context, table string) (int64, error)
	sampleFn func(ctx context.Context, table string, limit int) ([]map[string]any, error)
}

func (m *mockCatalog) ListTables(ctx context.Context) ([]string, error) {
	return m.listFn(ctx)
}

func (m *mockCatalog) TableSchema(ctx context.Context, table string) (*models.TableSchema, error) {
	return m.schemaFn(ctx, table)
}

func (m *mockCatalog) EstimateRowCount(ctx context.Context, table string) (int64, error) {
	return m.countFn(ctx, table)
}

func (m *mockCatalog) SampleData(ctx context.Context, table string, limit int) ([]map[string]any, error) {
	return m.sampleFn(ctx, table, limit)
}

// mockExecutor implements service.Executor for testing.
type mockExecutor struct {
	executeFn func(ctx context.Context, query string, limit int) ([]map[string]any, error)
}

func (m *mockExecutor) ExecuteSelect(ctx context.Context, query string, limit int) ([]map[string]any, error) {
	return m.executeFn(ctx, query, limit)
}
