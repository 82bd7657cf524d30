package repositories

import (
	"veloshop/internal/models"
)

// InventoryRepository defines the interface for the bike inventory
// store. Implementations keep records in insertion order so a saved
// file lists bikes in the order they were added.
type InventoryRepository interface {
	// List returns all records in insertion order.
	List() ([]models.InventoryRecord, error)
	// GetByModel returns the record for a model, or ErrNotFound.
	GetByModel(model string) (*models.InventoryRecord, error)
	// Add stores an independent copy of the bike with the given initial
	// quantity. Fails with ErrDuplicateModel if the model is already
	// stocked and ErrInvalidQuantity if quantity is negative.
	Add(bike *models.Bike, quantity int) error
	// UpdateBike replaces the stored bike for its model in place.
	UpdateBike(bike *models.Bike) error
	// Remove deletes the record for a model, or ErrNotFound.
	Remove(model string) error
	// IncreaseStock adds quantity (>0) to a model's stock.
	IncreaseStock(model string, quantity int) error
	// DecreaseStock subtracts quantity (>0) from a model's stock,
	// failing with ErrInsufficientStock rather than going negative.
	DecreaseStock(model string, quantity int) error
	// ReplaceAll swaps the entire inventory for the given records.
	ReplaceAll(records []models.InventoryRecord) error
}
