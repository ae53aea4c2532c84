package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"studentsites/internal/domain"
	"studentsites/internal/infrastructure/cache"
	"studentsites/internal/metrics"
)

type QueryService struct {
	repo   OrderRepository
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

func NewQueryService(repo OrderRepository, c cache.Cache, ttl time.Duration, logger *zap.Logger) *QueryService {
	return &QueryService{
		repo:   repo,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

// ListAll returns every order newest first, narrowed by criteria.
func (s *QueryService) ListAll(ctx context.Context, criteria domain.FilterCriteria) ([]domain.Order, error) {
	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	domain.SortOrdersByDateDesc(orders)
	if criteria.IsZero() {
		return orders, nil
	}
	return domain.FilterOrders(orders, criteria), nil
}

// ListPublicProjects returns the Accepted and Completed orders without any
// contact details, newest first.
func (s *QueryService) ListPublicProjects(ctx context.Context) ([]domain.ProjectSummary, error) {
	var cached []domain.ProjectSummary
	hit, err := cache.GetJSON(ctx, s.cache, ProjectsCacheKey, &cached)
	if err != nil {
		s.logger.Warn("project board cache read failed", zap.Error(err))
	}
	metrics.RecordCacheLookup(ProjectsCacheKey, hit)
	if hit {
		return cached, nil
	}

	orders, err := s.repo.FindByStatuses(ctx, domain.PublicStatuses)
	if err != nil {
		return nil, err
	}
	domain.SortOrdersByDateDesc(orders)

	projects := make([]domain.ProjectSummary, 0, len(orders))
	for _, o := range orders {
		if o.Status.IsPublic() {
			projects = append(projects, o.Summary())
		}
	}

	if err := cache.SetJSON(ctx, s.cache, ProjectsCacheKey, projects, s.ttl); err != nil {
		s.logger.Warn("project board cache write failed", zap.Error(err))
	}

	return projects, nil
}
