package adminclient

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"studentsites/internal/domain"
	"studentsites/internal/dto"
	apperrors "studentsites/internal/errors"
)

type OrdersAPI interface {
	ListOrders(ctx context.Context, filter dto.OrderFilterQuery) ([]dto.OrderResponse, error)
	UpdateOrderStatus(ctx context.Context, id, status string, expectedVersion *int64) (*dto.OrderResponse, error)
}

// Board is the admin dashboard's local copy of every order. Status changes
// are shown immediately and rolled back if the server refuses them.
type Board struct {
	api OrdersAPI

	mu     sync.Mutex
	orders []domain.Order
	filter domain.FilterCriteria
}

func NewBoard(api OrdersAPI) *Board {
	return &Board{api: api}
}

// Refresh replaces the local copy with the server's full listing.
func (b *Board) Refresh(ctx context.Context) error {
	resp, err := b.api.ListOrders(ctx, dto.OrderFilterQuery{})
	if err != nil {
		return fmt.Errorf("loading orders: %w", err)
	}

	orders := make([]domain.Order, len(resp))
	for i, o := range resp {
		orders[i] = o.ToDomain()
	}

	b.mu.Lock()
	b.orders = orders
	b.mu.Unlock()
	return nil
}

func (b *Board) SetFilter(criteria domain.FilterCriteria) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filter = criteria
}

func (b *Board) Orders() []domain.Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.orders)
}

func (b *Board) Visible() []domain.Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	return domain.FilterOrders(b.orders, b.filter)
}

func (b *Board) Find(id string) (domain.Order, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.indexOf(id)
	if i < 0 {
		return domain.Order{}, false
	}
	return b.orders[i], true
}

// SetStatus shows status locally, then asks the server to persist it. On
// failure the previous status is restored, unless something else has changed
// the order in the meantime, and the server's error is returned.
func (b *Board) SetStatus(ctx context.Context, id string, status domain.Status, expectedVersion *int64) (domain.Order, error) {
	b.mu.Lock()
	i := b.indexOf(id)
	if i < 0 {
		b.mu.Unlock()
		return domain.Order{}, apperrors.NewNotFoundError("Order not found.")
	}
	previous := b.orders[i].Status
	b.orders[i].Status = status
	b.mu.Unlock()

	resp, err := b.api.UpdateOrderStatus(ctx, id, string(status), expectedVersion)

	b.mu.Lock()
	defer b.mu.Unlock()

	i = b.indexOf(id)
	if err != nil {
		if i >= 0 && b.orders[i].Status == status {
			b.orders[i].Status = previous
		}
		return domain.Order{}, fmt.Errorf("updating order %s to %s: %w", id, status, err)
	}

	updated := resp.ToDomain()
	if i >= 0 {
		b.orders[i] = updated
	}
	return updated, nil
}

func (b *Board) indexOf(id string) int {
	return slices.IndexFunc(b.orders, func(o domain.Order) bool { return o.ID == id })
}
