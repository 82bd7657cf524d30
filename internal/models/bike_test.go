package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"veloshop/internal/models"
)

func TestNewMountainBike(t *testing.T) {
	bike, err := models.NewMountainBike("Trail-X", 18, 27.5, 21, 1200, "RockShox", models.SuspensionHardtail)
	assert.NoError(t, err)
	assert.Equal(t, "Trail-X", bike.Model)
	assert.Equal(t, models.BikeTypeMountain, bike.Type)
	assert.Equal(t, 27.5, bike.WheelSize)
	assert.Equal(t, "RockShox", bike.SuspensionModel)
}

func TestNewMountainBike_Invalid(t *testing.T) {
	cases := []struct {
		name string
		fn   func() (*models.Bike, error)
	}{
		{"empty model", func() (*models.Bike, error) {
			return models.NewMountainBike("", 18, 27.5, 21, 1200, "RockShox", models.SuspensionHardtail)
		}},
		{"whitespace in model", func() (*models.Bike, error) {
			return models.NewMountainBike("Trail X", 18, 27.5, 21, 1200, "RockShox", models.SuspensionHardtail)
		}},
		{"negative frame size", func() (*models.Bike, error) {
			return models.NewMountainBike("Trail-X", -1, 27.5, 21, 1200, "RockShox", models.SuspensionHardtail)
		}},
		{"zero wheel size", func() (*models.Bike, error) {
			return models.NewMountainBike("Trail-X", 18, 0, 21, 1200, "RockShox", models.SuspensionHardtail)
		}},
		{"zero gear count", func() (*models.Bike, error) {
			return models.NewMountainBike("Trail-X", 18, 27.5, 0, 1200, "RockShox", models.SuspensionHardtail)
		}},
		{"negative price", func() (*models.Bike, error) {
			return models.NewMountainBike("Trail-X", 18, 27.5, 21, -0.5, "RockShox", models.SuspensionHardtail)
		}},
		{"empty suspension model", func() (*models.Bike, error) {
			return models.NewMountainBike("Trail-X", 18, 27.5, 21, 1200, "", models.SuspensionHardtail)
		}},
		{"unknown suspension type", func() (*models.Bike, error) {
			return models.NewMountainBike("Trail-X", 18, 27.5, 21, 1200, "RockShox", models.SuspensionType(7))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bike, err := tc.fn()
			assert.ErrorIs(t, err, models.ErrInvalidArgument)
			assert.Nil(t, bike)
		})
	}
}

func TestNewRoadBike(t *testing.T) {
	bike, err := models.NewRoadBike("Sprint-S1", 21, 28, 22, 2400, models.AeroSemi)
	assert.NoError(t, err)
	assert.Equal(t, models.BikeTypeRoad, bike.Type)
	assert.Equal(t, models.AeroSemi, bike.Aerodynamics)

	// Aerodynamics must stay within 1..3
	_, err = models.NewRoadBike("Sprint-S1", 21, 28, 22, 2400, models.AerodynamicsLevel(0))
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
	_, err = models.NewRoadBike("Sprint-S1", 21, 28, 22, 2400, models.AerodynamicsLevel(4))
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestBikeSetters(t *testing.T) {
	bike, err := models.NewRoadBike("Sprint-S1", 21, 28, 22, 2400, models.AeroStandard)
	assert.NoError(t, err)

	assert.NoError(t, bike.SetFrameSize(22))
	assert.NoError(t, bike.SetWheelSize(29))
	assert.NoError(t, bike.SetGearCount(24))
	assert.NoError(t, bike.SetPrice(2600))
	assert.Equal(t, 22.0, bike.FrameSize)
	assert.Equal(t, 2600.0, bike.Price)

	assert.ErrorIs(t, bike.SetFrameSize(0), models.ErrInvalidArgument)
	assert.ErrorIs(t, bike.SetWheelSize(-1), models.ErrInvalidArgument)
	assert.ErrorIs(t, bike.SetGearCount(0), models.ErrInvalidArgument)
	assert.ErrorIs(t, bike.SetPrice(0), models.ErrInvalidArgument)
	// failed setters leave the value unchanged
	assert.Equal(t, 2600.0, bike.Price)
}

func TestBikeClone(t *testing.T) {
	bike, err := models.NewMountainBike("Trail-X", 18, 27.5, 21, 1200, "RockShox", models.SuspensionFull)
	assert.NoError(t, err)

	clone := bike.Clone()
	assert.Equal(t, *bike, *clone)

	assert.NoError(t, bike.SetPrice(1500))
	assert.Equal(t, 1200.0, clone.Price, "clone must be independent of the source")
}
