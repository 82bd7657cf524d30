package repositories

import (
	"fmt"
	"sync"

	"veloshop/internal/models"
)

// MemoryOrderRepository is an in-memory implementation of
// OrderRepository backed by a slice, preserving shipment order.
type MemoryOrderRepository struct {
	orders []*models.Order
	mu     sync.RWMutex
}

// NewMemoryOrderRepository creates an empty in-memory order archive.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{}
}

// GetAll returns deep copies of all archived orders in shipment order.
func (r *MemoryOrderRepository) GetAll() ([]*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o.Clone())
	}
	return out, nil
}

// GetByID returns a deep copy of one archived order.
func (r *MemoryOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.ID == id {
			return o.Clone(), nil
		}
	}
	return nil, fmt.Errorf("%w: order %s", models.ErrNotFound, id)
}

// Append archives an order.
func (r *MemoryOrderRepository) Append(order *models.Order) error {
	if order == nil {
		return fmt.Errorf("%w: order must not be nil", models.ErrInvalidArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders = append(r.orders, order)
	return nil
}

// ReplaceAll swaps the entire archive for the given orders.
func (r *MemoryOrderRepository) ReplaceAll(orders []*models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders = make([]*models.Order, 0, len(orders))
	for _, o := range orders {
		r.orders = append(r.orders, o.Clone())
	}
	return nil
}
