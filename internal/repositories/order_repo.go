package repositories

import (
	"veloshop/internal/models"
)

// OrderRepository defines the interface for the archive of shipped
// orders. The archive is append-only and keeps shipment order so the
// persisted file lists orders chronologically.
type OrderRepository interface {
	// GetAll returns all archived orders in shipment order.
	GetAll() ([]*models.Order, error)
	// GetByID returns one archived order, or ErrNotFound.
	GetByID(id string) (*models.Order, error)
	// Append archives an order. The caller passes an already-cloned
	// copy; the repository stores it as-is.
	Append(order *models.Order) error
	// ReplaceAll swaps the entire archive for the given orders.
	ReplaceAll(orders []*models.Order) error
}
