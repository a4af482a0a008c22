package api_test

import (
	"context"

	"github.com/schemascout/schemascout/internal/models"
	"github.com/schemascout/schemascout/internal/service"
)

// mockGraph implements api.GraphExplorer for testing.
type mockGraph struct {
	kHopFn      func(start string, k int, bidirectional bool, fanout int) (map[int][]models.Neighbor, error)
	pathFn      func(a, b string, maxDepth int) ([]models.Relationship, error)
	exploreFn   func(start, query string, k, maxTables int) (*models.ExploreResult, error)
	tableInfoFn func(table string) (models.TableInfo, error)
	connectedFn func(table string) ([]string, error)
	relsFn      func() ([]models.Relationship, error)
	relsAmongFn func(tables []string, includeInferred bool) ([]models.Relationship, error)
	statsFn     func() models.GraphStats
	rebuildFn   func(ctx context.Context) error
	ready       bool
}

func (m *mockGraph) KHopNeighbors(start string, k int, bidirectional bool, fanout int) (map[int][]models.Neighbor, error) {
	return m.kHopFn(start, k, bidirectional, fanout)
}

func (m *mockGraph) PathBetween(a, b string, maxDepth int) ([]models.Relationship, error) {
	return m.pathFn(a, b, maxDepth)
}

func (m *mockGraph) Explore(start, query string, k, maxTables int) (*models.ExploreResult, error) {
	return m.exploreFn(start, query, k, maxTables)
}

func (m *mockGraph) TableInfo(table string) (models.TableInfo, error) {
	return m.tableInfoFn(table)
}

func (m *mockGraph) ConnectedTables(table string) ([]string, error) {
	return m.connectedFn(table)
}

func (m *mockGraph) Relationships() ([]models.Relationship, error) {
	return m.relsFn()
}

func (m *mockGraph) RelationshipsAmong(tables []string, includeInferred bool) ([]models.Relationship, error) {
	return m.relsAmongFn(tables, includeInferred)
}

func (m *mockGraph) Stats() models.GraphStats {
	if m.statsFn != nil {
		return m.statsFn()
	}

	return models.GraphStats{}
}

func (m *mockGraph) Rebuild(ctx context.Context) error {
	return m.rebuildFn(ctx)
}

func (m *mockGraph) Ready() bool {
	return m.ready
}

// mockSchema implements api.SchemaProvider for testing.
type mockSchema struct {
	tablesFn func(ctx context.Context, includeRowCounts bool) (*service.TableList, error)
	detailFn func(ctx context.Context, table string, sampleRows int) (*service.TableDetail, error)
}

func (m *mockSchema) Tables(ctx context.Context, includeRowCounts bool) (*service.TableList, error) {
	return m.tablesFn(ctx, includeRowCounts)
}

func (m *mockSchema) TableDetail(ctx context.Context, table string, sampleRows int) (*service.TableDetail, error) {
	return m.detailFn(ctx, table, sampleRows)
}

// mockQueries implements api.QueryRunner for testing.
type mockQueries struct {
	executeFn func(ctx context.Context, req *models.QueryRequest) (*models.QueryResult, error)
}

func (m *mockQueries) BuildAndExecute(ctx context.Context, req *models.QueryRequest) (*models.QueryResult, error) {
	return m.executeFn(ctx, req)
}

// mockMappings implements api.MappingManager for testing.
type mockMappings struct {
	learnFn  func(ctx context.Context, req models.CreateMappingRequest) (*models.TermMapping, error)
	lookupFn func(ctx context.Context, term string) ([]models.TermMapping, error)
	listFn   func(ctx context.Context, limit, offset int) ([]models.TermMapping, error)
	forgetFn func(ctx context.Context, term string) (int, error)
}

func (m *mockMappings) Learn(ctx context.Context, req models.CreateMappingRequest) (*models.TermMapping, error) {
	return m.learnFn(ctx, req)
}

func (m *mockMappings) Lookup(ctx context.Context, term string) ([]models.TermMapping, error) {
	return m.lookupFn(ctx, term)
}

func (m *mockMappings) List(ctx context.Context, limit, offset int) ([]models.TermMapping, error) {
	return m.listFn(ctx, limit, offset)
}

func (m *mockMappings) Forget(ctx context.Context, term string) (int, error) {
	return m.forgetFn(ctx, term)
}
