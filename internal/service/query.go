package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/schemascout/schemascout/internal/metrics"
	"github.com/schemascout/schemascout/internal/models"
	"github.com/schemascout/schemascout/internal/sqlbuild"
)

// Executor runs assembled SELECTs against the target database.
// It is implemented by catalog.PG.
type Executor interface {
	ExecuteSelect(ctx context.Context, query string, limit int) ([]map[string]any, error)
}

// QueryService assembles and executes structured SELECT requests.
type QueryService struct {
	exec Executor
	log  *logrus.Logger
}

// NewQueryService creates a QueryService.
func NewQueryService(exec Executor, log *logrus.Logger) *QueryService {
	return &QueryService{exec: exec, log: log}
}

// BuildAndExecute assembles a SELECT from the request fragments and
// runs it. The request must already be validated.
func (s *QueryService) BuildAndExecute(ctx context.Context, req *models.QueryRequest) (*models.QueryResult, error) {
	query := sqlbuild.Select(req)

	s.log.WithFields(logrus.Fields{
		"tables": req.Tables,
		"limit":  req.Limit,
	}).Debug("query.execute")

	rows, err := s.exec.ExecuteSelect(ctx, query, req.Limit)
	if err != nil {
		metrics.QueriesExecuted.WithLabelValues("error").Inc()

		return nil, err
	}

	metrics.QueriesExecuted.WithLabelValues("ok").Inc()

	return &models.QueryResult{
		Query:    query,
		Rows:     rows,
		RowCount: len(rows),
		Tables:   req.Tables,
	}, nil
}
