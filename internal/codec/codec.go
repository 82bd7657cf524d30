// Package codec serializes the shop state to and from the flat text
// format shared with the legacy system: whitespace-separated tokens,
// sections in the order inventory, statistics, orders. Counts precede
// each variable-length section.
package codec

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"veloshop/internal/models"
)

// floats are written with the shortest representation that parses back
// exactly, so round trips are lossless.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func writeBike(w io.Writer, b *models.Bike) error {
	_, err := fmt.Fprintf(w, "%d %s %s %s %d %s",
		b.Type, b.Model, formatFloat(b.FrameSize), formatFloat(b.WheelSize), b.GearCount, formatFloat(b.Price))
	if err != nil {
		return err
	}
	switch b.Type {
	case models.BikeTypeMountain:
		_, err = fmt.Fprintf(w, " %s %d", b.SuspensionModel, b.Suspension)
	case models.BikeTypeRoad:
		_, err = fmt.Fprintf(w, " %d", b.Aerodynamics)
	}
	return err
}

func writeOrder(w io.Writer, o *models.Order) error {
	if _, err := fmt.Fprintf(w, "%d %s %d ", o.Type, o.Customer, len(o.Items)); err != nil {
		return err
	}
	for i := range o.Items {
		if err := writeBike(w, &o.Items[i].Bike); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, " %d ", o.Items[i].Quantity); err != nil {
			return err
		}
	}
	if o.Type == models.OrderTypeFixedDiscount {
		if _, err := fmt.Fprintf(w, "%s ", formatFloat(o.Discount)); err != nil {
			return err
		}
	}
	return nil
}

// SaveInventory writes the inventory section, truncating the file.
func SaveInventory(path string, records []models.InventoryRecord) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s for writing: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%d\n", len(records))
	for i := range records {
		if err := writeBike(w, &records[i].Bike); err != nil {
			return fmt.Errorf("failed to write inventory: %w", err)
		}
		fmt.Fprintf(w, " %d ", records[i].Quantity)
	}
	fmt.Fprintln(w)
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write inventory: %w", err)
	}
	return nil
}

// SaveStatistics appends the statistics section.
func SaveStatistics(path string, stats models.Statistics) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s for writing: %w", path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s\n%d\n", formatFloat(stats.TotalRevenue), stats.TotalUnitsSold); err != nil {
		return fmt.Errorf("failed to write statistics: %w", err)
	}
	return nil
}

// SaveOrders appends the order history section.
func SaveOrders(path string, orders []*models.Order) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s for writing: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%d\n", len(orders))
	for _, o := range orders {
		if err := writeOrder(w, o); err != nil {
			return fmt.Errorf("failed to write orders: %w", err)
		}
	}
	fmt.Fprintln(w)
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write orders: %w", err)
	}
	return nil
}

// Save writes the whole snapshot with the legacy three-part sequence:
// the inventory section overwrites the file, the statistics and order
// sections append to it.
func Save(path string, snap *models.ShopSnapshot) error {
	if err := SaveInventory(path, snap.Inventory); err != nil {
		return err
	}
	if err := SaveStatistics(path, snap.Stats); err != nil {
		return err
	}
	return SaveOrders(path, snap.Orders)
}

// tokenReader yields whitespace-separated tokens. Running out of input
// mid-structure is a parse error, not a clean EOF.
type tokenReader struct {
	scanner *bufio.Scanner
}

func newTokenReader(r io.Reader) *tokenReader {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	return &tokenReader{scanner: s}
}

func (t *tokenReader) next() (string, error) {
	if !t.scanner.Scan() {
		if err := t.scanner.Err(); err != nil {
			return "", fmt.Errorf("%w: %v", models.ErrParse, err)
		}
		return "", fmt.Errorf("%w: unexpected end of file", models.ErrParse)
	}
	return t.scanner.Text(), nil
}

func (t *tokenReader) readInt(what string) (int, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", models.ErrParse, what, tok)
	}
	return n, nil
}

func (t *tokenReader) readFloat(what string) (float64, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", models.ErrParse, what, tok)
	}
	return f, nil
}

func (t *tokenReader) readBike() (*models.Bike, error) {
	typeCode, err := t.readInt("bike type")
	if err != nil {
		return nil, err
	}
	model, err := t.next()
	if err != nil {
		return nil, err
	}
	frameSize, err := t.readFloat("frame size")
	if err != nil {
		return nil, err
	}
	wheelSize, err := t.readFloat("wheel size")
	if err != nil {
		return nil, err
	}
	gearCount, err := t.readInt("gear count")
	if err != nil {
		return nil, err
	}
	price, err := t.readFloat("price")
	if err != nil {
		return nil, err
	}

	var bike *models.Bike
	switch models.BikeType(typeCode) {
	case models.BikeTypeMountain:
		suspensionModel, err := t.next()
		if err != nil {
			return nil, err
		}
		suspCode, err := t.readInt("suspension type")
		if err != nil {
			return nil, err
		}
		bike, err = models.NewMountainBike(model, frameSize, wheelSize, gearCount, price,
			suspensionModel, models.SuspensionType(suspCode))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid bike record: %v", models.ErrParse, err)
		}
	case models.BikeTypeRoad:
		aeroCode, err := t.readInt("aerodynamics level")
		if err != nil {
			return nil, err
		}
		bike, err = models.NewRoadBike(model, frameSize, wheelSize, gearCount, price,
			models.AerodynamicsLevel(aeroCode))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid bike record: %v", models.ErrParse, err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown bike type code %d", models.ErrParse, typeCode)
	}
	return bike, nil
}

func (t *tokenReader) readOrder() (*models.Order, error) {
	typeCode, err := t.readInt("order type")
	if err != nil {
		return nil, err
	}
	customer, err := t.next()
	if err != nil {
		return nil, err
	}
	itemCount, err := t.readInt("order item count")
	if err != nil {
		return nil, err
	}
	if itemCount < 0 {
		return nil, fmt.Errorf("%w: negative order item count %d", models.ErrParse, itemCount)
	}

	items := make([]models.OrderItem, 0, itemCount)
	for i := 0; i < itemCount; i++ {
		bike, err := t.readBike()
		if err != nil {
			return nil, err
		}
		quantity, err := t.readInt("line quantity")
		if err != nil {
			return nil, err
		}
		item, err := models.NewOrderItem(bike, quantity)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid order line: %v", models.ErrParse, err)
		}
		items = append(items, item)
	}

	var order *models.Order
	switch models.OrderType(typeCode) {
	case models.OrderTypeStandard:
		order, err = models.NewStandardOrder(customer, items)
	case models.OrderTypeFixedDiscount:
		var discount float64
		discount, err = t.readFloat("discount percent")
		if err != nil {
			return nil, err
		}
		order, err = models.NewFixedDiscountOrder(customer, items, discount)
	case models.OrderTypeProgressiveDiscount:
		order, err = models.NewProgressiveDiscountOrder(customer, items)
	default:
		return nil, fmt.Errorf("%w: unknown order type code %d", models.ErrParse, typeCode)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: invalid order record: %v", models.ErrParse, err)
	}
	return order, nil
}

// Load reads a snapshot from the given file. On any parse failure the
// returned snapshot is nil, so callers can keep their current state.
func Load(path string) (*models.ShopSnapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s for reading: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a snapshot from an arbitrary token stream.
func Read(r io.Reader) (*models.ShopSnapshot, error) {
	t := newTokenReader(r)
	snap := &models.ShopSnapshot{}

	invCount, err := t.readInt("inventory count")
	if err != nil {
		return nil, err
	}
	if invCount < 0 {
		return nil, fmt.Errorf("%w: negative inventory count %d", models.ErrParse, invCount)
	}
	snap.Inventory = make([]models.InventoryRecord, 0, invCount)
	for i := 0; i < invCount; i++ {
		bike, err := t.readBike()
		if err != nil {
			return nil, err
		}
		quantity, err := t.readInt("stock quantity")
		if err != nil {
			return nil, err
		}
		if quantity < 0 {
			return nil, fmt.Errorf("%w: negative stock quantity for %s", models.ErrParse, bike.Model)
		}
		snap.Inventory = append(snap.Inventory, models.InventoryRecord{Bike: *bike, Quantity: quantity})
	}

	if snap.Stats.TotalRevenue, err = t.readFloat("total revenue"); err != nil {
		return nil, err
	}
	if snap.Stats.TotalUnitsSold, err = t.readInt("total units sold"); err != nil {
		return nil, err
	}

	orderCount, err := t.readInt("order count")
	if err != nil {
		return nil, err
	}
	if orderCount < 0 {
		return nil, fmt.Errorf("%w: negative order count %d", models.ErrParse, orderCount)
	}
	snap.Orders = make([]*models.Order, 0, orderCount)
	for i := 0; i < orderCount; i++ {
		order, err := t.readOrder()
		if err != nil {
			return nil, err
		}
		snap.Orders = append(snap.Orders, order)
	}

	return snap, nil
}
