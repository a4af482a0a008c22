package api

import (
	"context"

	"github.com/schemascout/schemascout/internal/models"
	"github.com/schemascout/schemascout/internal/service"
)

// GraphExplorer defines graph operations used by GraphHandler and
// ExploreHandler. It is implemented by service.GraphService.
type GraphExplorer interface {
	KHopNeighbors(start string, k int, bidirectional bool, fanout int) (map[int][]models.Neighbor, error)
	PathBetween(a, b string, maxDepth int) ([]models.Relationship, error)
	Explore(start, query string, k, maxTables int) (*models.ExploreResult, error)
	TableInfo(table string) (models.TableInfo, error)
	ConnectedTables(table string) ([]string, error)
	Relationships() ([]models.Relationship, error)
	RelationshipsAmong(tables []string, includeInferred bool) ([]models.Relationship, error)
	Stats() models.GraphStats
	Rebuild(ctx context.Context) error
	Ready() bool
}

// SchemaProvider defines catalog read operations used by SchemaHandler.
// It is implemented by service.SchemaService.
type SchemaProvider interface {
	Tables(ctx context.Context, includeRowCounts bool) (*service.TableList, error)
	TableDetail(ctx context.Context, table string, sampleRows int) (*service.TableDetail, error)
}

// QueryRunner defines query execution used by QueryHandler.
// It is implemented by service.QueryService.
type QueryRunner interface {
	BuildAndExecute(ctx context.Context, req *models.QueryRequest) (*models.QueryResult, error)
}

// MappingManager defines term-mapping operations used by MappingHandler.
// It is implemented by service.MappingService.
type MappingManager interface {
	Learn(ctx context.Context, req models.CreateMappingRequest) (*models.TermMapping, error)
	Lookup(ctx context.Context, term string) ([]models.TermMapping, error)
	List(ctx context.Context, limit, offset int) ([]models.TermMapping, error)
	Forget(ctx context.Context, term string) (int, error)
}
