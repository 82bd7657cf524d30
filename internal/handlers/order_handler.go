package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"veloshop/internal/models"
	"veloshop/internal/services"
)

// OrderHandler handles HTTP requests for building and shipping orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orders := router.Group("/orders")
	orders.Get("/", h.HandleGetOrders)
	orders.Get("/:id", h.HandleGetOrderByID)
	orders.Post("/", h.HandleShipOrder)
}

// HandleGetOrders returns the archived order history.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		log.Printf("Error getting orders: %v", err)
		return errorResponse(c, "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID returns a single archived order.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	id := c.Params("id")
	order, err := h.service.GetOrderByID(id)
	if err != nil {
		return errorResponse(c, "Could not retrieve order", err)
	}
	return c.JSON(order)
}

// ShipOrderRequest is the request body for building and shipping an
// order in one settlement.
type ShipOrderRequest struct {
	Customer string               `json:"customer"`
	Type     models.OrderType     `json:"type"`
	Discount float64              `json:"discount,omitempty"`
	Items    []services.OrderLine `json:"items"`
}

// HandleShipOrder builds an order from catalog lookups and settles it
// against inventory. A rejected order leaves the shop unchanged.
func (h *OrderHandler) HandleShipOrder(c *fiber.Ctx) error {
	var req ShipOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if req.Customer == "" || len(req.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Customer and at least one item are required for an order.",
		})
	}

	order, err := h.service.BuildOrder(req.Customer, req.Type, req.Discount, req.Items)
	if err != nil {
		return errorResponse(c, "Could not build order", err)
	}

	shipped, err := h.service.Ship(order)
	if err != nil {
		log.Printf("Error shipping order for %s: %v", req.Customer, err)
		return errorResponse(c, "Could not ship order", err)
	}
	return c.Status(fiber.StatusCreated).JSON(shipped)
}
