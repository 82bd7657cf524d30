package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"veloshop/internal/models"
)

// inventoryRow is the database shape of an inventory record. The bike
// variant is flattened into nullable columns, one row per model.
type inventoryRow struct {
	gorm.Model
	BikeModel       string  `gorm:"uniqueIndex;type:varchar(100)"`
	BikeType        int     // 0 mountain, 1 road
	FrameSize       float64 //
	WheelSize       float64 //
	GearCount       int     //
	Price           float64 //
	SuspensionModel string  `gorm:"type:varchar(100)"`
	Suspension      int     //
	Aerodynamics    int     //
	Quantity        int     //
}

func (inventoryRow) TableName() string { return "inventory_records" }

func rowFromRecord(rec *models.InventoryRecord) inventoryRow {
	return inventoryRow{
		BikeModel:       rec.Bike.Model,
		BikeType:        int(rec.Bike.Type),
		FrameSize:       rec.Bike.FrameSize,
		WheelSize:       rec.Bike.WheelSize,
		GearCount:       rec.Bike.GearCount,
		Price:           rec.Bike.Price,
		SuspensionModel: rec.Bike.SuspensionModel,
		Suspension:      int(rec.Bike.Suspension),
		Aerodynamics:    int(rec.Bike.Aerodynamics),
		Quantity:        rec.Quantity,
	}
}

func (row *inventoryRow) toRecord() models.InventoryRecord {
	return models.InventoryRecord{
		Bike: models.Bike{
			Model:           row.BikeModel,
			FrameSize:       row.FrameSize,
			WheelSize:       row.WheelSize,
			GearCount:       row.GearCount,
			Price:           row.Price,
			Type:            models.BikeType(row.BikeType),
			SuspensionModel: row.SuspensionModel,
			Suspension:      models.SuspensionType(row.Suspension),
			Aerodynamics:    models.AerodynamicsLevel(row.Aerodynamics),
		},
		Quantity: row.Quantity,
	}
}

// GORMInventoryRepository is a GORM implementation of
// InventoryRepository, usable with SQLite or Postgres.
type GORMInventoryRepository struct {
	db *gorm.DB
}

// NewGORMInventoryRepository creates a new GORM-backed inventory store.
func NewGORMInventoryRepository(db *gorm.DB) *GORMInventoryRepository {
	return &GORMInventoryRepository{db: db}
}

// Migrate creates the inventory table.
func (r *GORMInventoryRepository) Migrate() error {
	return r.db.AutoMigrate(&inventoryRow{})
}

// List returns all records ordered by insertion.
func (r *GORMInventoryRepository) List() ([]models.InventoryRecord, error) {
	var rows []inventoryRow
	if err := r.db.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	records := make([]models.InventoryRecord, 0, len(rows))
	for i := range rows {
		records = append(records, rows[i].toRecord())
	}
	return records, nil
}

// GetByModel returns the record for a model.
func (r *GORMInventoryRepository) GetByModel(model string) (*models.InventoryRecord, error) {
	var row inventoryRow
	if err := r.db.First(&row, "bike_model = ?", model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bike model %s", models.ErrNotFound, model)
		}
		return nil, fmt.Errorf("failed to get bike %s: %w", model, err)
	}
	rec := row.toRecord()
	return &rec, nil
}

// Add inserts a new record, rejecting duplicate models.
func (r *GORMInventoryRepository) Add(bike *models.Bike, quantity int) error {
	if bike == nil {
		return fmt.Errorf("%w: bike must not be nil", models.ErrInvalidArgument)
	}
	if quantity < 0 {
		return fmt.Errorf("%w: initial stock must not be negative", models.ErrInvalidQuantity)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&inventoryRow{}).Where("bike_model = ?", bike.Model).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check bike %s: %w", bike.Model, err)
		}
		if count > 0 {
			return fmt.Errorf("%w: %s", models.ErrDuplicateModel, bike.Model)
		}
		row := rowFromRecord(&models.InventoryRecord{Bike: *bike, Quantity: quantity})
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to add bike %s: %w", bike.Model, err)
		}
		return nil
	})
}

// UpdateBike replaces the stored bike attributes for its model.
func (r *GORMInventoryRepository) UpdateBike(bike *models.Bike) error {
	if bike == nil {
		return fmt.Errorf("%w: bike must not be nil", models.ErrInvalidArgument)
	}
	res := r.db.Model(&inventoryRow{}).Where("bike_model = ?", bike.Model).Updates(map[string]interface{}{
		"bike_type":        int(bike.Type),
		"frame_size":       bike.FrameSize,
		"wheel_size":       bike.WheelSize,
		"gear_count":       bike.GearCount,
		"price":            bike.Price,
		"suspension_model": bike.SuspensionModel,
		"suspension":       int(bike.Suspension),
		"aerodynamics":     int(bike.Aerodynamics),
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update bike %s: %w", bike.Model, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: bike model %s", models.ErrNotFound, bike.Model)
	}
	return nil
}

// Remove deletes the record for the given model.
func (r *GORMInventoryRepository) Remove(model string) error {
	res := r.db.Unscoped().Delete(&inventoryRow{}, "bike_model = ?", model)
	if res.Error != nil {
		return fmt.Errorf("failed to remove bike %s: %w", model, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: bike model %s", models.ErrNotFound, model)
	}
	return nil
}

// IncreaseStock adds quantity to a model's stock.
func (r *GORMInventoryRepository) IncreaseStock(model string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", models.ErrInvalidQuantity)
	}
	res := r.db.Model(&inventoryRow{}).Where("bike_model = ?", model).
		Update("quantity", gorm.Expr("quantity + ?", quantity))
	if res.Error != nil {
		return fmt.Errorf("failed to restock bike %s: %w", model, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: bike model %s", models.ErrNotFound, model)
	}
	return nil
}

// DecreaseStock subtracts quantity from a model's stock. The update is
// guarded so the quantity column can never go negative.
func (r *GORMInventoryRepository) DecreaseStock(model string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", models.ErrInvalidQuantity)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		var row inventoryRow
		if err := tx.First(&row, "bike_model = ?", model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: bike model %s", models.ErrNotFound, model)
			}
			return fmt.Errorf("failed to get bike %s: %w", model, err)
		}
		res := tx.Model(&inventoryRow{}).
			Where("bike_model = ? AND quantity >= ?", model, quantity).
			Update("quantity", gorm.Expr("quantity - ?", quantity))
		if res.Error != nil {
			return fmt.Errorf("failed to decrease stock for %s: %w", model, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: %s has %d in stock, requested %d",
				models.ErrInsufficientStock, model, row.Quantity, quantity)
		}
		return nil
	})
}

// ReplaceAll swaps the entire inventory for the given records.
func (r *GORMInventoryRepository) ReplaceAll(records []models.InventoryRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("1 = 1").Delete(&inventoryRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear inventory: %w", err)
		}
		for i := range records {
			row := rowFromRecord(&records[i])
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to store bike %s: %w", records[i].Bike.Model, err)
			}
		}
		return nil
	})
}
