package service

import (
	"context"

	"studentsites/internal/domain"
)

//go:generate mockgen -source ports.go -destination mock_ports.go -package service

// OrderRepository persists orders. Implementations assign the id on Create,
// return NotFoundError for unknown ids and ConflictError when an expected
// version no longer matches.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	FindByStatuses(ctx context.Context, statuses []domain.Status) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status, expectedVersion *int64) (*domain.Order, error)
}
