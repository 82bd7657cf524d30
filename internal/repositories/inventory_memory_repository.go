package repositories

import (
	"fmt"
	"sync"

	"veloshop/internal/models"
)

// MemoryInventoryRepository is an in-memory implementation of
// InventoryRepository. Records live in a slice so insertion order is
// preserved, with a model index for lookups.
type MemoryInventoryRepository struct {
	records []models.InventoryRecord
	index   map[string]int
	mu      sync.RWMutex
}

// NewMemoryInventoryRepository creates an empty in-memory inventory.
func NewMemoryInventoryRepository() *MemoryInventoryRepository {
	return &MemoryInventoryRepository{
		index: make(map[string]int),
	}
}

// List returns a copy of all records in insertion order.
func (r *MemoryInventoryRepository) List() ([]models.InventoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.InventoryRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

// GetByModel returns a copy of the record for the given model.
func (r *MemoryInventoryRepository) GetByModel(model string) (*models.InventoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[model]
	if !ok {
		return nil, fmt.Errorf("%w: bike model %s", models.ErrNotFound, model)
	}
	rec := r.records[i]
	return &rec, nil
}

// Add stores an independent copy of the bike with the given quantity.
func (r *MemoryInventoryRepository) Add(bike *models.Bike, quantity int) error {
	if bike == nil {
		return fmt.Errorf("%w: bike must not be nil", models.ErrInvalidArgument)
	}
	if quantity < 0 {
		return fmt.Errorf("%w: initial stock must not be negative", models.ErrInvalidQuantity)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[bike.Model]; ok {
		return fmt.Errorf("%w: %s", models.ErrDuplicateModel, bike.Model)
	}
	r.index[bike.Model] = len(r.records)
	r.records = append(r.records, models.InventoryRecord{Bike: *bike.Clone(), Quantity: quantity})
	return nil
}

// UpdateBike replaces the stored bike for its model.
func (r *MemoryInventoryRepository) UpdateBike(bike *models.Bike) error {
	if bike == nil {
		return fmt.Errorf("%w: bike must not be nil", models.ErrInvalidArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[bike.Model]
	if !ok {
		return fmt.Errorf("%w: bike model %s", models.ErrNotFound, bike.Model)
	}
	r.records[i].Bike = *bike.Clone()
	return nil
}

// Remove deletes the record for the given model.
func (r *MemoryInventoryRepository) Remove(model string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[model]
	if !ok {
		return fmt.Errorf("%w: bike model %s", models.ErrNotFound, model)
	}
	r.records = append(r.records[:i], r.records[i+1:]...)
	delete(r.index, model)
	for j := i; j < len(r.records); j++ {
		r.index[r.records[j].Bike.Model] = j
	}
	return nil
}

// IncreaseStock adds quantity to a model's stock.
func (r *MemoryInventoryRepository) IncreaseStock(model string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", models.ErrInvalidQuantity)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[model]
	if !ok {
		return fmt.Errorf("%w: bike model %s", models.ErrNotFound, model)
	}
	r.records[i].Quantity += quantity
	return nil
}

// DecreaseStock subtracts quantity from a model's stock. Stock never
// goes negative; a shortfall fails with ErrInsufficientStock and leaves
// the record untouched.
func (r *MemoryInventoryRepository) DecreaseStock(model string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", models.ErrInvalidQuantity)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[model]
	if !ok {
		return fmt.Errorf("%w: bike model %s", models.ErrNotFound, model)
	}
	if r.records[i].Quantity < quantity {
		return fmt.Errorf("%w: %s has %d in stock, requested %d",
			models.ErrInsufficientStock, model, r.records[i].Quantity, quantity)
	}
	r.records[i].Quantity -= quantity
	return nil
}

// ReplaceAll swaps the entire inventory for the given records.
func (r *MemoryInventoryRepository) ReplaceAll(records []models.InventoryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = make([]models.InventoryRecord, len(records))
	copy(r.records, records)
	r.index = make(map[string]int, len(records))
	for i, rec := range r.records {
		r.index[rec.Bike.Model] = i
	}
	return nil
}
