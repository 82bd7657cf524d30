package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"veloshop/internal/services"
)

// ShopHandler handles shop-wide statistics and persistence requests.
type ShopHandler struct {
	shopService  *services.ShopService
	orderService *services.OrderService
	dataFile     string
}

// NewShopHandler creates a new ShopHandler. dataFile is the default
// target for save/load when a request does not name one.
func NewShopHandler(shopService *services.ShopService, orderService *services.OrderService, dataFile string) *ShopHandler {
	return &ShopHandler{
		shopService:  shopService,
		orderService: orderService,
		dataFile:     dataFile,
	}
}

// RegisterRoutes registers the shop routes with the Fiber app.
func (h *ShopHandler) RegisterRoutes(router fiber.Router) {
	shop := router.Group("/shop")
	shop.Get("/stats", h.HandleGetStats)
	shop.Post("/save", h.HandleSave)
	shop.Post("/load", h.HandleLoad)
}

// HandleGetStats returns the cumulative sales counters.
func (h *ShopHandler) HandleGetStats(c *fiber.Ctx) error {
	return c.JSON(h.orderService.Statistics())
}

// PersistRequest optionally overrides the configured data file.
type PersistRequest struct {
	File string `json:"file,omitempty"`
}

func (h *ShopHandler) targetFile(c *fiber.Ctx) string {
	var req PersistRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err == nil && req.File != "" {
			return req.File
		}
	}
	return h.dataFile
}

// HandleSave writes the whole shop state to the data file.
func (h *ShopHandler) HandleSave(c *fiber.Ctx) error {
	file := h.targetFile(c)
	if err := h.shopService.SaveAll(file); err != nil {
		log.Printf("Error saving shop data to %s: %v", file, err)
		return errorResponse(c, "Could not save shop data", err)
	}
	return c.JSON(fiber.Map{
		"message": "Shop data saved successfully",
		"file":    file,
	})
}

// HandleLoad restores the whole shop state from the data file. A
// malformed file leaves the current state untouched.
func (h *ShopHandler) HandleLoad(c *fiber.Ctx) error {
	file := h.targetFile(c)
	if err := h.shopService.LoadAll(file); err != nil {
		log.Printf("Error loading shop data from %s: %v", file, err)
		return errorResponse(c, "Could not load shop data", err)
	}
	return c.JSON(fiber.Map{
		"message": "Shop data loaded successfully",
		"file":    file,
	})
}
