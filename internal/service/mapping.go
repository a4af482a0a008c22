package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/schemascout/schemascout/internal/models"
)

// MappingRepository is the persistence interface MappingService depends
// on. It is implemented by store.MappingStore.
type MappingRepository interface {
	Upsert(ctx context.Context, req models.CreateMappingRequest) (*models.TermMapping, error)
	GetByTerm(ctx context.Context, term string) ([]models.TermMapping, error)
	List(ctx context.Context, limit, offset int) ([]models.TermMapping, error)
	Delete(ctx context.Context, term string) (int, error)
}

// MappingService wraps the term-mapping store with logging.
type MappingService struct {
	repo MappingRepository
	log  *logrus.Logger
}

// NewMappingService creates a MappingService.
func NewMappingService(repo MappingRepository, log *logrus.Logger) *MappingService {
	return &MappingService{repo: repo, log: log}
}

// Learn stores or refreshes one term mapping.
func (s *MappingService) Learn(ctx context.Context, req models.CreateMappingRequest) (*models.TermMapping, error) {
	s.log.WithFields(logrus.Fields{
		"term":  req.Term,
		"table": req.Table,
	}).Debug("mapping.learn")

	return s.repo.Upsert(ctx, req)
}

// Lookup returns the mappings for one term, strongest first.
func (s *MappingService) Lookup(ctx context.Context, term string) ([]models.TermMapping, error) {
	return s.repo.GetByTerm(ctx, term)
}

// List returns stored mappings with pagination.
func (s *MappingService) List(ctx context.Context, limit, offset int) ([]models.TermMapping, error) {
	return s.repo.List(ctx, limit, offset)
}

// Forget removes all mappings for a term.
func (s *MappingService) Forget(ctx context.Context, term string) (int, error) {
	s.log.WithField("term", term).Debug("mapping.forget")

	return s.repo.Delete(ctx, term)
}
