package services_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"veloshop/internal/models"
	"veloshop/internal/repositories"
	"veloshop/internal/services"
)

type shopFixture struct {
	inventory *repositories.MemoryInventoryRepository
	orders    *repositories.MemoryOrderRepository
	stats     *models.Statistics
	shop      *services.ShopService
	engine    *services.OrderService
}

func newShopFixture(t *testing.T) *shopFixture {
	t.Helper()
	f := &shopFixture{
		inventory: repositories.NewMemoryInventoryRepository(),
		orders:    repositories.NewMemoryOrderRepository(),
		stats:     &models.Statistics{},
	}
	f.shop = services.NewShopService(f.inventory, f.orders, f.stats)
	f.engine = services.NewOrderService(f.inventory, f.orders, f.stats, nil)
	return f
}

func (f *shopFixture) populate(t *testing.T) {
	t.Helper()
	trail, err := models.NewMountainBike("Trail-X", 18, 27.5, 21, 1200, "RockShox", models.SuspensionHardtail)
	assert.NoError(t, err)
	sprint, err := models.NewRoadBike("Sprint-S1", 21, 28, 22, 2400, models.AeroFull)
	assert.NoError(t, err)
	assert.NoError(t, f.inventory.Add(trail, 5))
	assert.NoError(t, f.inventory.Add(sprint, 4))

	order, err := f.engine.BuildOrder("Harmin", models.OrderTypeProgressiveDiscount, 0, []services.OrderLine{
		{Model: "Trail-X", Quantity: 2},
		{Model: "Sprint-S1", Quantity: 1},
	})
	assert.NoError(t, err)
	_, err = f.engine.Ship(order)
	assert.NoError(t, err)
}

func TestShopService_SaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")

	src := newShopFixture(t)
	src.populate(t)
	assert.NoError(t, src.shop.SaveAll(path))

	dst := newShopFixture(t)
	assert.NoError(t, dst.shop.LoadAll(path))

	srcInv, _ := src.inventory.List()
	dstInv, _ := dst.inventory.List()
	assert.Equal(t, srcInv, dstInv)
	assert.Equal(t, *src.stats, *dst.stats)

	srcOrders, _ := src.orders.GetAll()
	dstOrders, _ := dst.orders.GetAll()
	assert.Len(t, dstOrders, len(srcOrders))
	for i := range srcOrders {
		assert.Equal(t, srcOrders[i].Type, dstOrders[i].Type)
		assert.Equal(t, srcOrders[i].Customer, dstOrders[i].Customer)
		assert.Equal(t, srcOrders[i].Discount, dstOrders[i].Discount)
		assert.Equal(t, srcOrders[i].Items, dstOrders[i].Items)
	}
}

func TestShopService_LoadAll_MalformedLeavesStateUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	assert.NoError(t, os.WriteFile(path, []byte("1\n0 Trail-X 18"), 0o644))

	f := newShopFixture(t)
	f.populate(t)
	invBefore, _ := f.inventory.List()
	ordersBefore, _ := f.orders.GetAll()
	statsBefore := *f.stats

	err := f.shop.LoadAll(path)
	assert.ErrorIs(t, err, models.ErrParse)

	invAfter, _ := f.inventory.List()
	ordersAfter, _ := f.orders.GetAll()
	assert.Equal(t, invBefore, invAfter)
	assert.Equal(t, ordersBefore, ordersAfter)
	assert.Equal(t, statsBefore, *f.stats)
}

func TestShopService_LoadAll_MissingFile(t *testing.T) {
	f := newShopFixture(t)
	f.populate(t)
	invBefore, _ := f.inventory.List()

	err := f.shop.LoadAll(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)

	invAfter, _ := f.inventory.List()
	assert.Equal(t, invBefore, invAfter)
}

func TestShopService_SeedDemoInventory(t *testing.T) {
	f := newShopFixture(t)
	f.shop.SeedDemoInventory()

	records, err := f.inventory.List()
	assert.NoError(t, err)
	assert.NotEmpty(t, records)

	// Seeding is a no-op on a non-empty catalog.
	count := len(records)
	f.shop.SeedDemoInventory()
	records, _ = f.inventory.List()
	assert.Len(t, records, count)
}
