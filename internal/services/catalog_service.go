package services

import (
	"fmt"

	"veloshop/internal/models"
	"veloshop/internal/repositories"
)

// BikeField names an editable bike attribute for CatalogService.Edit.
type BikeField string

const (
	FieldFrameSize BikeField = "frame_size"
	FieldWheelSize BikeField = "wheel_size"
	FieldGearCount BikeField = "gear_count"
	FieldPrice     BikeField = "price"
)

// CatalogService handles business logic for the bike catalog and its
// stock levels.
type CatalogService struct {
	inventory repositories.InventoryRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(inventory repositories.InventoryRepository) *CatalogService {
	return &CatalogService{inventory: inventory}
}

// List returns the full inventory in insertion order.
func (s *CatalogService) List() ([]models.InventoryRecord, error) {
	return s.inventory.List()
}

// FindByModel returns the record for one model.
func (s *CatalogService) FindByModel(model string) (*models.InventoryRecord, error) {
	return s.inventory.GetByModel(model)
}

// Add stores a new bike with its initial stock. The repository keeps
// its own copy, so the caller's instance stays independent.
func (s *CatalogService) Add(bike *models.Bike, quantity int) error {
	if bike == nil {
		return fmt.Errorf("%w: bike must not be nil", models.ErrInvalidArgument)
	}
	return s.inventory.Add(bike, quantity)
}

// Restock increases a model's stock by a positive quantity.
func (s *CatalogService) Restock(model string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: restock quantity must be positive", models.ErrInvalidQuantity)
	}
	return s.inventory.IncreaseStock(model, quantity)
}

// Remove deletes a model and its stock from the catalog.
func (s *CatalogService) Remove(model string) error {
	return s.inventory.Remove(model)
}

// Edit mutates one attribute of a stored bike in place, applying the
// same validation as construction. Numeric fields take the value as a
// float; gear count is truncated to an integer.
func (s *CatalogService) Edit(model string, field BikeField, value float64) error {
	rec, err := s.inventory.GetByModel(model)
	if err != nil {
		return err
	}
	bike := rec.Bike
	switch field {
	case FieldFrameSize:
		err = bike.SetFrameSize(value)
	case FieldWheelSize:
		err = bike.SetWheelSize(value)
	case FieldGearCount:
		err = bike.SetGearCount(int(value))
	case FieldPrice:
		err = bike.SetPrice(value)
	default:
		return fmt.Errorf("%w: unknown field %q", models.ErrInvalidArgument, field)
	}
	if err != nil {
		return err
	}
	return s.inventory.UpdateBike(&bike)
}
