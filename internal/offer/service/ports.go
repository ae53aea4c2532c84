package service

import (
	"context"

	"studentsites/internal/domain"
)

//go:generate mockgen -source ports.go -destination mock_ports.go -package service

// OfferRepository persists offers. FindActive lists in creation order, oldest
// first, which is the order "first matching offer" is decided in.
type OfferRepository interface {
	Create(ctx context.Context, offer *domain.Offer) error
	FindAll(ctx context.Context) ([]domain.Offer, error)
	FindActive(ctx context.Context) ([]domain.Offer, error)
	SetActive(ctx context.Context, id string, active bool) (*domain.Offer, error)
	Delete(ctx context.Context, id string) error
}
