package models

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// BikeType discriminates the bike variants. The numeric values are part
// of the persisted file format and must not be reordered.
type BikeType int

const (
	BikeTypeMountain BikeType = 0
	BikeTypeRoad     BikeType = 1
)

// SuspensionType describes the suspension of a mountain bike.
type SuspensionType int

const (
	SuspensionHardtail SuspensionType = 0 // front suspension only
	SuspensionFull     SuspensionType = 1 // front and rear suspension
)

// AerodynamicsLevel rates a road bike frame from 1 (standard) to 3
// (full aero).
type AerodynamicsLevel int

const (
	AeroStandard AerodynamicsLevel = 1
	AeroSemi     AerodynamicsLevel = 2
	AeroFull     AerodynamicsLevel = 3
)

// Bike is a catalog product. It is a closed tagged union: Type selects
// the variant, and only that variant's extra fields are meaningful
// (SuspensionModel/Suspension for mountain, Aerodynamics for road).
type Bike struct {
	Model           string            `json:"model" validate:"required"`
	FrameSize       float64           `json:"frame_size" validate:"gt=0"`
	WheelSize       float64           `json:"wheel_size" validate:"gt=0"`
	GearCount       int               `json:"gear_count" validate:"gt=0"`
	Price           float64           `json:"price" validate:"gt=0"`
	Type            BikeType          `json:"type"`
	SuspensionModel string            `json:"suspension_model,omitempty"`
	Suspension      SuspensionType    `json:"suspension,omitempty"`
	Aerodynamics    AerodynamicsLevel `json:"aerodynamics,omitempty"`
}

var validate = validator.New()

// The persisted file format is whitespace-tokenized, so names that
// embed whitespace cannot round-trip and are rejected up front.
func validToken(s string) bool {
	return s != "" && !strings.ContainsAny(s, " \t\r\n")
}

func (b *Bike) validateCommon() error {
	if !validToken(b.Model) {
		return fmt.Errorf("%w: model must be a non-empty name without whitespace", ErrInvalidArgument)
	}
	if err := validate.Struct(b); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return nil
}

// NewMountainBike builds a mountain bike, validating every field.
func NewMountainBike(model string, frameSize, wheelSize float64, gearCount int, price float64, suspensionModel string, suspension SuspensionType) (*Bike, error) {
	b := &Bike{
		Model:           model,
		FrameSize:       frameSize,
		WheelSize:       wheelSize,
		GearCount:       gearCount,
		Price:           price,
		Type:            BikeTypeMountain,
		SuspensionModel: suspensionModel,
		Suspension:      suspension,
	}
	if err := b.validateCommon(); err != nil {
		return nil, err
	}
	if !validToken(suspensionModel) {
		return nil, fmt.Errorf("%w: suspension model must be a non-empty name without whitespace", ErrInvalidArgument)
	}
	if suspension != SuspensionHardtail && suspension != SuspensionFull {
		return nil, fmt.Errorf("%w: unknown suspension type %d", ErrInvalidArgument, suspension)
	}
	return b, nil
}

// NewRoadBike builds a road bike, validating every field.
func NewRoadBike(model string, frameSize, wheelSize float64, gearCount int, price float64, aerodynamics AerodynamicsLevel) (*Bike, error) {
	b := &Bike{
		Model:        model,
		FrameSize:    frameSize,
		WheelSize:    wheelSize,
		GearCount:    gearCount,
		Price:        price,
		Type:         BikeTypeRoad,
		Aerodynamics: aerodynamics,
	}
	if err := b.validateCommon(); err != nil {
		return nil, err
	}
	if aerodynamics < AeroStandard || aerodynamics > AeroFull {
		return nil, fmt.Errorf("%w: aerodynamics level must be between %d and %d", ErrInvalidArgument, AeroStandard, AeroFull)
	}
	return b, nil
}

// SetFrameSize updates the frame size, rejecting non-positive values.
func (b *Bike) SetFrameSize(frameSize float64) error {
	if frameSize <= 0 {
		return fmt.Errorf("%w: frame size must be positive", ErrInvalidArgument)
	}
	b.FrameSize = frameSize
	return nil
}

// SetWheelSize updates the wheel size, rejecting non-positive values.
func (b *Bike) SetWheelSize(wheelSize float64) error {
	if wheelSize <= 0 {
		return fmt.Errorf("%w: wheel size must be positive", ErrInvalidArgument)
	}
	b.WheelSize = wheelSize
	return nil
}

// SetGearCount updates the gear count, rejecting non-positive values.
func (b *Bike) SetGearCount(gearCount int) error {
	if gearCount <= 0 {
		return fmt.Errorf("%w: gear count must be positive", ErrInvalidArgument)
	}
	b.GearCount = gearCount
	return nil
}

// SetPrice updates the price, rejecting non-positive values.
func (b *Bike) SetPrice(price float64) error {
	if price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrInvalidArgument)
	}
	b.Price = price
	return nil
}

// Clone returns an independent copy of the bike. Callers that archive
// or store a bike must clone it so later edits to the source do not
// leak through.
func (b *Bike) Clone() *Bike {
	c := *b
	return &c
}

// DisplayInfo renders a human-readable one-line description.
func (b *Bike) DisplayInfo() string {
	switch b.Type {
	case BikeTypeMountain:
		susp := "Hardtail"
		if b.Suspension == SuspensionFull {
			susp = "Full"
		}
		return fmt.Sprintf("Mountain Bike: %s, Frame: %g\", Wheels: %g\", Gears: %d, Suspension: %s (%s), Price: $%g",
			b.Model, b.FrameSize, b.WheelSize, b.GearCount, b.SuspensionModel, susp, b.Price)
	default:
		return fmt.Sprintf("Road Bike: %s, Frame: %g\", Wheels: %g\", Gears: %d, Aerodynamics: %d/3, Price: $%g",
			b.Model, b.FrameSize, b.WheelSize, b.GearCount, b.Aerodynamics, b.Price)
	}
}

// InventoryRecord pairs a bike with its on-hand quantity. Records are
// owned by the inventory store; quantity never drops below zero.
type InventoryRecord struct {
	Bike     Bike `json:"bike"`
	Quantity int  `json:"quantity"`
}
