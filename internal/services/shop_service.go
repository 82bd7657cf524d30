package services

import (
	"fmt"
	"log"

	"veloshop/internal/codec"
	"veloshop/internal/models"
	"veloshop/internal/repositories"
)

// ShopService orchestrates wholesale persistence of the shop state:
// inventory, statistics and order history, saved and restored through
// the flat-file codec.
type ShopService struct {
	inventory repositories.InventoryRepository
	orders    repositories.OrderRepository
	stats     *models.Statistics
}

// NewShopService creates a new ShopService sharing the same stats
// instance as the settlement engine.
func NewShopService(inventory repositories.InventoryRepository, orders repositories.OrderRepository, stats *models.Statistics) *ShopService {
	return &ShopService{
		inventory: inventory,
		orders:    orders,
		stats:     stats,
	}
}

// Snapshot assembles the current shop state.
func (s *ShopService) Snapshot() (*models.ShopSnapshot, error) {
	inventory, err := s.inventory.List()
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot inventory: %w", err)
	}
	orders, err := s.orders.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot orders: %w", err)
	}
	return &models.ShopSnapshot{
		Inventory: inventory,
		Stats:     *s.stats,
		Orders:    orders,
	}, nil
}

// SaveAll writes the whole shop state to the given file.
func (s *ShopService) SaveAll(path string) error {
	snap, err := s.Snapshot()
	if err != nil {
		return err
	}
	return codec.Save(path, snap)
}

// LoadAll restores the whole shop state from the given file. The file
// is parsed completely before anything is replaced, so a malformed or
// unreadable file leaves the in-memory state untouched.
func (s *ShopService) LoadAll(path string) error {
	snap, err := codec.Load(path)
	if err != nil {
		return err
	}
	if err := s.inventory.ReplaceAll(snap.Inventory); err != nil {
		return fmt.Errorf("failed to restore inventory: %w", err)
	}
	if err := s.orders.ReplaceAll(snap.Orders); err != nil {
		return fmt.Errorf("failed to restore orders: %w", err)
	}
	*s.stats = snap.Stats
	return nil
}

// SeedDemoInventory populates an empty catalog with a few bikes so a
// fresh instance has something to sell.
func (s *ShopService) SeedDemoInventory() {
	records, err := s.inventory.List()
	if err != nil || len(records) > 0 {
		return
	}

	type seed struct {
		bike *models.Bike
		qty  int
	}
	trail, _ := models.NewMountainBike("Trail-X", 18, 27.5, 21, 1200, "RockShox", models.SuspensionHardtail)
	ridge, _ := models.NewMountainBike("RidgeRunner", 20, 29, 24, 1850, "Fox-34", models.SuspensionFull)
	sprint, _ := models.NewRoadBike("Sprint-S1", 21, 28, 22, 2400, models.AeroSemi)

	for _, sd := range []seed{{trail, 5}, {ridge, 3}, {sprint, 4}} {
		if err := s.inventory.Add(sd.bike, sd.qty); err != nil {
			log.Printf("Error seeding bike %s: %v", sd.bike.Model, err)
			continue
		}
		log.Printf("Seeded bike: %s (qty %d)", sd.bike.Model, sd.qty)
	}
}
