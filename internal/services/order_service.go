package services

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"veloshop/internal/models"
	"veloshop/internal/repositories"
	"veloshop/pkg/rabbitmq"
)

// OrderLine is a requested (model, quantity) pair used to build an
// order from catalog lookups.
type OrderLine struct {
	Model    string `json:"model"`
	Quantity int    `json:"quantity"`
}

// OrderService is the settlement engine: the only path by which an
// order affects inventory and the shop-wide statistics.
type OrderService struct {
	inventory repositories.InventoryRepository
	orders    repositories.OrderRepository
	stats     *models.Statistics
	mqClient  *rabbitmq.Client

	// ship is check-then-mutate; the lock keeps the non-negative stock
	// invariant if callers overlap.
	shipMu sync.Mutex
}

// NewOrderService creates a new OrderService. mqClient may be nil, in
// which case shipment events are skipped.
func NewOrderService(inventory repositories.InventoryRepository, orders repositories.OrderRepository, stats *models.Statistics, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		inventory: inventory,
		orders:    orders,
		stats:     stats,
		mqClient:  mqClient,
	}
}

// BuildOrder constructs an in-memory order from catalog lookups. Each
// line snapshots the bike and freezes its price; the order does not
// affect inventory until shipped.
func (s *OrderService) BuildOrder(customer string, orderType models.OrderType, discount float64, lines []OrderLine) (*models.Order, error) {
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		rec, err := s.inventory.GetByModel(line.Model)
		if err != nil {
			return nil, err
		}
		item, err := models.NewOrderItem(&rec.Bike, line.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	switch orderType {
	case models.OrderTypeStandard:
		return models.NewStandardOrder(customer, items)
	case models.OrderTypeFixedDiscount:
		return models.NewFixedDiscountOrder(customer, items, discount)
	case models.OrderTypeProgressiveDiscount:
		return models.NewProgressiveDiscountOrder(customer, items)
	default:
		return nil, fmt.Errorf("%w: unknown order type %d", models.ErrInvalidArgument, orderType)
	}
}

// CheckAvailability verifies that every line of the order can be
// fulfilled from current stock. Read-only.
func (s *OrderService) CheckAvailability(order *models.Order) error {
	if order == nil {
		return fmt.Errorf("%w: order must not be nil", models.ErrInvalidArgument)
	}
	for i := range order.Items {
		item := &order.Items[i]
		rec, err := s.inventory.GetByModel(item.Bike.Model)
		if err != nil {
			return fmt.Errorf("%w: %s is not in inventory", models.ErrInsufficientStock, item.Bike.Model)
		}
		if rec.Quantity < item.Quantity {
			return fmt.Errorf("%w: %s has %d in stock, requested %d",
				models.ErrInsufficientStock, item.Bike.Model, rec.Quantity, item.Quantity)
		}
	}
	return nil
}

// Ship settles an order: it re-checks availability, decrements stock,
// archives an independent copy and updates the statistics, all or
// nothing. A rejected order leaves inventory and statistics untouched.
func (s *OrderService) Ship(order *models.Order) (*models.Order, error) {
	s.shipMu.Lock()
	defer s.shipMu.Unlock()

	if err := s.CheckAvailability(order); err != nil {
		return nil, err
	}

	for i := range order.Items {
		item := &order.Items[i]
		if err := s.inventory.DecreaseStock(item.Bike.Model, item.Quantity); err != nil {
			// Availability was just verified, so this is unexpected.
			// Undo the decrements already applied to keep ship
			// all-or-nothing.
			for j := 0; j < i; j++ {
				undo := &order.Items[j]
				if undoErr := s.inventory.IncreaseStock(undo.Bike.Model, undo.Quantity); undoErr != nil {
					log.Printf("Failed to restore stock for %s after aborted shipment: %v", undo.Bike.Model, undoErr)
				}
			}
			return nil, err
		}
	}

	archived := order.Clone()
	archived.ID = uuid.New().String()
	archived.CreatedAt = time.Now()
	if err := s.orders.Append(archived); err != nil {
		return nil, fmt.Errorf("failed to archive order: %w", err)
	}

	s.stats.TotalUnitsSold += archived.TotalUnits()
	s.stats.TotalRevenue += archived.TotalPrice()

	s.publishShipped(archived)
	return archived.Clone(), nil
}

// publishShipped announces a settled order. Failures are logged and
// never affect the settlement.
func (s *OrderService) publishShipped(order *models.Order) {
	if s.mqClient == nil {
		return
	}
	event := map[string]interface{}{
		"event":    "order.shipped",
		"order_id": order.ID,
		"customer": order.Customer,
		"units":    order.TotalUnits(),
		"total":    order.TotalPrice(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal shipment event for order %s: %v", order.ID, err)
		return
	}
	if err := s.mqClient.Publish(rabbitmq.ShipmentQueue, body); err != nil {
		log.Printf("Warning: failed to publish shipment event for order %s: %v", order.ID, err)
		return
	}
	log.Printf("Published shipment event for order %s", order.ID)
}

// GetAllOrders returns the archived order history in shipment order.
func (s *OrderService) GetAllOrders() ([]*models.Order, error) {
	return s.orders.GetAll()
}

// GetOrderByID returns a single archived order.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orders.GetByID(id)
}

// Statistics returns a copy of the cumulative sales counters.
func (s *OrderService) Statistics() models.Statistics {
	return *s.stats
}
