package models

import (
	"fmt"
	"strings"
	"time"
)

// OrderType discriminates the pricing variants. The numeric values are
// part of the persisted file format and must not be reordered.
type OrderType int

const (
	OrderTypeStandard            OrderType = 0
	OrderTypeFixedDiscount       OrderType = 1
	OrderTypeProgressiveDiscount OrderType = 2
)

// OrderItem is one line of an order. The bike is an independent
// snapshot of the catalog product and LineTotal is frozen at the price
// the product had when the line was built; later catalog edits do not
// reprice the line.
type OrderItem struct {
	Bike      Bike    `json:"bike"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

// NewOrderItem snapshots the given bike into an order line.
func NewOrderItem(bike *Bike, quantity int) (OrderItem, error) {
	if bike == nil {
		return OrderItem{}, fmt.Errorf("%w: bike must not be nil", ErrInvalidArgument)
	}
	if quantity <= 0 {
		return OrderItem{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidArgument)
	}
	return OrderItem{
		Bike:      *bike.Clone(),
		Quantity:  quantity,
		LineTotal: bike.Price * float64(quantity),
	}, nil
}

// Order aggregates line items with a pricing variant. An order built by
// a caller does not affect inventory until the settlement engine ships
// it; shipping archives a deep, independent copy.
type Order struct {
	ID        string      `json:"id,omitempty"`
	Customer  string      `json:"customer"`
	Type      OrderType   `json:"type"`
	Items     []OrderItem `json:"items"`
	Discount  float64     `json:"discount,omitempty"` // percent, fixed-discount orders only
	CreatedAt time.Time   `json:"created_at,omitempty"`
}

func newOrder(customer string, items []OrderItem, orderType OrderType) (*Order, error) {
	if !validToken(customer) {
		return nil, fmt.Errorf("%w: customer must be a non-empty name without whitespace", ErrInvalidArgument)
	}
	o := &Order{
		Customer: customer,
		Type:     orderType,
		Items:    make([]OrderItem, len(items)),
	}
	copy(o.Items, items)
	return o, nil
}

// NewStandardOrder builds an undiscounted order.
func NewStandardOrder(customer string, items []OrderItem) (*Order, error) {
	return newOrder(customer, items, OrderTypeStandard)
}

// NewFixedDiscountOrder builds an order discounted by a fixed
// percentage in [0,100].
func NewFixedDiscountOrder(customer string, items []OrderItem, discount float64) (*Order, error) {
	if discount < 0 || discount > 100 {
		return nil, fmt.Errorf("%w: discount %g is out of range 0-100", ErrInvalidArgument, discount)
	}
	o, err := newOrder(customer, items, OrderTypeFixedDiscount)
	if err != nil {
		return nil, err
	}
	o.Discount = discount
	return o, nil
}

// NewProgressiveDiscountOrder builds an order with the bracket-based
// discount of ProgressiveDiscountTotal.
func NewProgressiveDiscountOrder(customer string, items []OrderItem) (*Order, error) {
	return newOrder(customer, items, OrderTypeProgressiveDiscount)
}

// AddItem appends a new line whose total is frozen from the bike's
// current price.
func (o *Order) AddItem(bike *Bike, quantity int) error {
	item, err := NewOrderItem(bike, quantity)
	if err != nil {
		return err
	}
	o.Items = append(o.Items, item)
	return nil
}

// TotalPrice dispatches to the pricing variant of this order. The
// result is clamped at zero.
func (o *Order) TotalPrice() float64 {
	var total float64
	switch o.Type {
	case OrderTypeFixedDiscount:
		total = FixedDiscountTotal(o.Items, o.Discount)
	case OrderTypeProgressiveDiscount:
		total = ProgressiveDiscountTotal(o.Items)
	default:
		total = StandardTotal(o.Items)
	}
	if total < 0 {
		return 0
	}
	return total
}

// TotalUnits sums the line quantities.
func (o *Order) TotalUnits() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// DisplayInfo renders a human-readable multi-line summary of the order.
func (o *Order) DisplayInfo() string {
	var sb strings.Builder
	label := "Standard"
	switch o.Type {
	case OrderTypeFixedDiscount:
		label = fmt.Sprintf("Fixed Discount (%g%%)", o.Discount)
	case OrderTypeProgressiveDiscount:
		label = "Progressive Discount"
	}
	fmt.Fprintf(&sb, "Order for %s (%s):\n", o.Customer, label)
	for i := range o.Items {
		item := &o.Items[i]
		fmt.Fprintf(&sb, "  %dx %s ($%g each)\n", item.Quantity, item.Bike.Model, item.Bike.Price)
	}
	fmt.Fprintf(&sb, "  Total: $%g", o.TotalPrice())
	return sb.String()
}

// Clone returns a deep, independent copy suitable for archiving.
func (o *Order) Clone() *Order {
	c := *o
	c.Items = make([]OrderItem, len(o.Items))
	copy(c.Items, o.Items)
	return &c
}
