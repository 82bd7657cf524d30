package handlers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"veloshop/internal/models"
	"veloshop/internal/services"
)

// CatalogHandler handles HTTP requests for the bike catalog.
type CatalogHandler struct {
	service *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	bikes := router.Group("/bikes")
	bikes.Get("/", h.HandleListBikes)
	bikes.Get("/:model", h.HandleGetBike)
	bikes.Post("/", h.HandleAddBike)
	bikes.Post("/:model/restock", h.HandleRestockBike)
	bikes.Patch("/:model", h.HandleEditBike)
	bikes.Delete("/:model", h.HandleRemoveBike)
}

// HandleListBikes returns the full inventory.
func (h *CatalogHandler) HandleListBikes(c *fiber.Ctx) error {
	records, err := h.service.List()
	if err != nil {
		log.Printf("Error listing inventory: %v", err)
		return errorResponse(c, "Could not list inventory", err)
	}
	return c.JSON(records)
}

// HandleGetBike returns one inventory record by model.
func (h *CatalogHandler) HandleGetBike(c *fiber.Ctx) error {
	model := c.Params("model")
	rec, err := h.service.FindByModel(model)
	if err != nil {
		return errorResponse(c, fmt.Sprintf("Could not find bike %s", model), err)
	}
	return c.JSON(rec)
}

// AddBikeRequest is the request body for adding a bike to the catalog.
type AddBikeRequest struct {
	Type            models.BikeType          `json:"type"`
	Model           string                   `json:"model"`
	FrameSize       float64                  `json:"frame_size"`
	WheelSize       float64                  `json:"wheel_size"`
	GearCount       int                      `json:"gear_count"`
	Price           float64                  `json:"price"`
	SuspensionModel string                   `json:"suspension_model,omitempty"`
	Suspension      models.SuspensionType    `json:"suspension,omitempty"`
	Aerodynamics    models.AerodynamicsLevel `json:"aerodynamics,omitempty"`
	Quantity        *int                     `json:"quantity,omitempty"` // defaults to 1
}

// HandleAddBike adds a new bike with its initial stock.
func (h *CatalogHandler) HandleAddBike(c *fiber.Ctx) error {
	var req AddBikeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	var bike *models.Bike
	var err error
	switch req.Type {
	case models.BikeTypeMountain:
		bike, err = models.NewMountainBike(req.Model, req.FrameSize, req.WheelSize, req.GearCount, req.Price, req.SuspensionModel, req.Suspension)
	case models.BikeTypeRoad:
		bike, err = models.NewRoadBike(req.Model, req.FrameSize, req.WheelSize, req.GearCount, req.Price, req.Aerodynamics)
	default:
		err = fmt.Errorf("%w: unknown bike type %d", models.ErrInvalidArgument, req.Type)
	}
	if err != nil {
		return errorResponse(c, "Invalid bike", err)
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if err := h.service.Add(bike, quantity); err != nil {
		log.Printf("Error adding bike %s: %v", req.Model, err)
		return errorResponse(c, "Could not add bike", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("Bike %s added successfully", bike.Model),
	})
}

// RestockRequest is the request body for restocking a model.
type RestockRequest struct {
	Quantity int `json:"quantity"`
}

// HandleRestockBike increases a model's stock.
func (h *CatalogHandler) HandleRestockBike(c *fiber.Ctx) error {
	model := c.Params("model")
	var req RestockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.service.Restock(model, req.Quantity); err != nil {
		return errorResponse(c, fmt.Sprintf("Could not restock bike %s", model), err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Bike %s restocked successfully", model),
	})
}

// EditBikeRequest is the request body for editing one bike attribute.
type EditBikeRequest struct {
	Field services.BikeField `json:"field"`
	Value float64            `json:"value"`
}

// HandleEditBike mutates one attribute of a stored bike.
func (h *CatalogHandler) HandleEditBike(c *fiber.Ctx) error {
	model := c.Params("model")
	var req EditBikeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.service.Edit(model, req.Field, req.Value); err != nil {
		return errorResponse(c, fmt.Sprintf("Could not edit bike %s", model), err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Bike %s updated successfully", model),
	})
}

// HandleRemoveBike deletes a model from the catalog.
func (h *CatalogHandler) HandleRemoveBike(c *fiber.Ctx) error {
	model := c.Params("model")
	if err := h.service.Remove(model); err != nil {
		return errorResponse(c, fmt.Sprintf("Could not remove bike %s", model), err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Bike %s removed successfully", model),
	})
}
