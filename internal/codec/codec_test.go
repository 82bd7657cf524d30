package codec_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"veloshop/internal/codec"
	"veloshop/internal/models"
)

func testSnapshot(t *testing.T) *models.ShopSnapshot {
	t.Helper()

	trail, err := models.NewMountainBike("Trail-X", 18, 27.5, 21, 1200, "RockShox", models.SuspensionHardtail)
	assert.NoError(t, err)
	sprint, err := models.NewRoadBike("Sprint-S1", 21.5, 28, 22, 3456.75, models.AeroStandard)
	assert.NoError(t, err)

	item1, err := models.NewOrderItem(trail, 2)
	assert.NoError(t, err)
	item2, err := models.NewOrderItem(sprint, 1)
	assert.NoError(t, err)

	standard, err := models.NewStandardOrder("Ivan", []models.OrderItem{item1})
	assert.NoError(t, err)
	fixed, err := models.NewFixedDiscountOrder("Harmin", []models.OrderItem{item1, item2}, 75)
	assert.NoError(t, err)
	progressive, err := models.NewProgressiveDiscountOrder("Olena", []models.OrderItem{item2})
	assert.NoError(t, err)

	return &models.ShopSnapshot{
		Inventory: []models.InventoryRecord{
			{Bike: *trail, Quantity: 5},
			{Bike: *sprint, Quantity: 0},
		},
		Stats:  models.Statistics{TotalRevenue: 5856.75, TotalUnitsSold: 3},
		Orders: []*models.Order{standard, fixed, progressive},
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	snap := testSnapshot(t)

	assert.NoError(t, codec.Save(path, snap))

	loaded, err := codec.Load(path)
	assert.NoError(t, err)
	assert.Equal(t, snap.Inventory, loaded.Inventory)
	assert.Equal(t, snap.Stats, loaded.Stats)
	assert.Len(t, loaded.Orders, len(snap.Orders))
	for i, want := range snap.Orders {
		got := loaded.Orders[i]
		assert.Equal(t, want.Type, got.Type)
		assert.Equal(t, want.Customer, got.Customer)
		assert.Equal(t, want.Discount, got.Discount)
		assert.Equal(t, want.Items, got.Items)
		assert.InDelta(t, want.TotalPrice(), got.TotalPrice(), 1e-9)
	}
}

func TestSaveLoad_EmptyShop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	assert.NoError(t, codec.Save(path, &models.ShopSnapshot{}))

	loaded, err := codec.Load(path)
	assert.NoError(t, err)
	assert.Empty(t, loaded.Inventory)
	assert.Empty(t, loaded.Orders)
	assert.Equal(t, models.Statistics{}, loaded.Stats)
}

func TestSave_OverwritesPreviousFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")

	assert.NoError(t, codec.Save(path, testSnapshot(t)))
	// The second save must truncate, not append to, the first one.
	assert.NoError(t, codec.Save(path, &models.ShopSnapshot{}))

	loaded, err := codec.Load(path)
	assert.NoError(t, err)
	assert.Empty(t, loaded.Inventory)
}

func TestSave_UnwritableTarget(t *testing.T) {
	err := codec.Save(filepath.Join(t.TempDir(), "missing", "data.txt"), testSnapshot(t))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := codec.Load(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrParse)
}

func TestLoad_Malformed(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"empty file", ""},
		{"garbage count", "banana"},
		{"negative inventory count", "-2"},
		{"truncated bike", "1\n0 Trail-X 18 27.5"},
		{"unknown bike type", "1\n9 Trail-X 18 27.5 21 1200 RockShox 0 5"},
		{"negative stock", "1\n0 Trail-X 18 27.5 21 1200 RockShox 0 -5"},
		{"invalid bike field", "1\n0 Trail-X 18 27.5 21 -1200 RockShox 0 5"},
		{"missing statistics", "0"},
		{"missing orders section", "0\n100.5\n2\n"},
		{"unknown order type", "0\n0\n0\n1\n7 Harmin 0"},
		{"missing fixed discount", "0\n0\n0\n1\n1 Harmin 0"},
		{"out-of-range discount", "0\n0\n0\n1\n1 Harmin 0 150"},
		{"truncated order items", "0\n0\n0\n1\n0 Harmin 2 0 Trail-X 18 27.5 21 1200 RockShox 0 1"},
	}
	dir := t.TempDir()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tc.name, " ", "_"))
			assert.NoError(t, os.WriteFile(path, []byte(tc.data), 0o644))
			_, err := codec.Load(path)
			assert.ErrorIs(t, err, models.ErrParse)
		})
	}
}

func TestRead_ValidStream(t *testing.T) {
	data := "1\n0 Trail-X 18 27.5 21 1200 RockShox 0 5\n2400\n2\n1\n1 Harmin 1 0 Trail-X 18 27.5 21 1200 RockShox 0 2 10\n"
	snap, err := codec.Read(strings.NewReader(data))
	assert.NoError(t, err)

	assert.Len(t, snap.Inventory, 1)
	assert.Equal(t, "Trail-X", snap.Inventory[0].Bike.Model)
	assert.Equal(t, 5, snap.Inventory[0].Quantity)
	assert.Equal(t, models.Statistics{TotalRevenue: 2400, TotalUnitsSold: 2}, snap.Stats)

	assert.Len(t, snap.Orders, 1)
	order := snap.Orders[0]
	assert.Equal(t, models.OrderTypeFixedDiscount, order.Type)
	assert.Equal(t, "Harmin", order.Customer)
	assert.Equal(t, 10.0, order.Discount)
	assert.Equal(t, 2, order.TotalUnits())
	assert.InDelta(t, 2160, order.TotalPrice(), 1e-9)
}
