package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"veloshop/internal/models"
)

// linesTotaling builds a single order line whose total is exactly sum.
func linesTotaling(t *testing.T, sum float64) []models.OrderItem {
	t.Helper()
	bike, err := models.NewMountainBike("Trail-X", 18, 27.5, 21, sum, "RockShox", models.SuspensionHardtail)
	assert.NoError(t, err)
	item, err := models.NewOrderItem(bike, 1)
	assert.NoError(t, err)
	return []models.OrderItem{item}
}

func TestStandardTotal(t *testing.T) {
	assert.Equal(t, 0.0, models.StandardTotal(nil))
	assert.InDelta(t, 5000, models.StandardTotal(linesTotaling(t, 5000)), 1e-9)
}

func TestFixedDiscountTotal_Endpoints(t *testing.T) {
	lines := linesTotaling(t, 5000)

	assert.InDelta(t, models.StandardTotal(lines), models.FixedDiscountTotal(lines, 0), 1e-9)
	assert.InDelta(t, 0, models.FixedDiscountTotal(lines, 100), 1e-9)
	assert.InDelta(t, 4500, models.FixedDiscountTotal(lines, 10), 1e-9)
}

func TestProgressiveDiscountTotal_Brackets(t *testing.T) {
	// Brackets are evaluated once on the pre-discount sum: no discount
	// at exactly 3000, 10% just above, 20% just above 7000.
	cases := []struct {
		sum  float64
		want float64
	}{
		{1000, 1000},
		{3000, 3000},
		{3000.01, 3000.01 * 0.9},
		{7000, 7000 * 0.9},
		{7000.01, 7000.01 * 0.8},
		{8000, 6400},
	}
	for _, tc := range cases {
		got := models.ProgressiveDiscountTotal(linesTotaling(t, tc.sum))
		assert.InDelta(t, tc.want, got, 1e-9, "sum %g", tc.sum)
	}
}
