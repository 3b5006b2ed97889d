// Package order coordinates order lines with product stock. It is the
// sole writer of order-line records and the only caller that moves
// product stock on behalf of orders: adding to a line reserves stock,
// removing or reducing a line releases it. Stock is never created or
// destroyed by an order operation, only moved between available and
// reserved.
package order

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/roach88/wman/internal/model"
	"github.com/roach88/wman/internal/store"
)

// Engine manages the order-line lifecycle against an explicit store
// handle.
type Engine struct {
	store *store.Store
}

// New creates an Engine bound to the given store.
func New(s *store.Store) *Engine {
	return &Engine{store: s}
}

// Create opens a new order for the named customer. Fails with NotFound
// when no such customer exists. A zero date defaults to today.
func (e *Engine) Create(ctx context.Context, customerName string, date time.Time) (model.Order, error) {
	if date.IsZero() {
		date = time.Now()
	}

	var created model.Order
	err := e.store.ReadWrite(ctx, func(q *store.Queries) error {
		customer, err := q.GetCustomerByName(ctx, customerName)
		if err != nil {
			return err
		}
		created, err = q.CreateOrder(ctx, customer.ID, date)
		return err
	})
	if err != nil {
		return model.Order{}, err
	}
	return created, nil
}

// AddProduct creates a first-time line on the order, reserving count
// units from the product's stock. Fails with InsufficientStock when the
// product has fewer than count units available, and with DuplicateLine
// when the order already holds a line for the product; neither failure
// leaves a partial change behind.
func (e *Engine) AddProduct(ctx context.Context, orderID int64, code string, count int) error {
	if count <= 0 {
		return model.NewInvalidAmount("line count must be positive")
	}
	return e.store.ReadWrite(ctx, func(q *store.Queries) error {
		if _, err := q.GetOrder(ctx, orderID); err != nil {
			return err
		}
		if err := q.ReduceProductCount(ctx, code, count); err != nil {
			return err
		}
		return q.InsertOrderLine(ctx, orderID, code, count)
	})
}

// RemoveProduct deletes the order's line for the product and returns
// its entire reserved count to stock. Fails with NotFound when no such
// line exists; a missing line is never a silent no-op.
func (e *Engine) RemoveProduct(ctx context.Context, orderID int64, code string) error {
	return e.store.ReadWrite(ctx, func(q *store.Queries) error {
		line, err := q.GetOrderLine(ctx, orderID, code)
		if err != nil {
			return err
		}
		if err := q.DeleteOrderLine(ctx, orderID, code); err != nil {
			return err
		}
		return q.AddProductCount(ctx, code, line.Count)
	})
}

// AddCount grows an existing line by delta, reserving delta more units
// from the product's stock. Fails with NotFound when no line exists and
// with InsufficientStock when stock cannot cover delta.
func (e *Engine) AddCount(ctx context.Context, orderID int64, code string, delta int) error {
	if delta <= 0 {
		return model.NewInvalidAmount("line count must be positive")
	}
	return e.store.ReadWrite(ctx, func(q *store.Queries) error {
		line, err := q.GetOrderLine(ctx, orderID, code)
		if err != nil {
			return err
		}
		if err := q.ReduceProductCount(ctx, code, delta); err != nil {
			return err
		}
		return q.UpdateOrderLineCount(ctx, orderID, code, line.Count+delta)
	})
}

// ReduceCount shrinks an existing line by delta, returning delta units
// to the product's stock. Fails with InvalidAmount when delta exceeds
// the line's count. A line reduced to exactly zero is deleted.
func (e *Engine) ReduceCount(ctx context.Context, orderID int64, code string, delta int) error {
	if delta <= 0 {
		return model.NewInvalidAmount("line count must be positive")
	}
	return e.store.ReadWrite(ctx, func(q *store.Queries) error {
		line, err := q.GetOrderLine(ctx, orderID, code)
		if err != nil {
			return err
		}
		if delta > line.Count {
			return model.NewInvalidAmount("the order does not hold this amount of the product")
		}
		if delta == line.Count {
			if err := q.DeleteOrderLine(ctx, orderID, code); err != nil {
				return err
			}
		} else {
			if err := q.UpdateOrderLineCount(ctx, orderID, code, line.Count-delta); err != nil {
				return err
			}
		}
		return q.AddProductCount(ctx, code, delta)
	})
}

// Get fetches one order by id.
func (e *Engine) Get(ctx context.Context, orderID int64) (model.Order, error) {
	return e.store.Queries().GetOrder(ctx, orderID)
}

// GetOrderLines returns the order's lines: product code and reserved
// count per line.
func (e *Engine) GetOrderLines(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	q := e.store.Queries()
	if _, err := q.GetOrder(ctx, orderID); err != nil {
		return nil, err
	}
	return q.SelectOrderLines(ctx, orderID)
}

// GetOrderProductDetails returns the order's lines joined with current
// product attributes.
func (e *Engine) GetOrderProductDetails(ctx context.Context, orderID int64) ([]model.OrderLineDetail, error) {
	q := e.store.Queries()
	if _, err := q.GetOrder(ctx, orderID); err != nil {
		return nil, err
	}
	return q.SelectOrderLineDetails(ctx, orderID)
}

// GetOrderTotalCount sums the order's line counts.
func (e *Engine) GetOrderTotalCount(ctx context.Context, orderID int64) (int, error) {
	details, err := e.GetOrderProductDetails(ctx, orderID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, d := range details {
		total += d.Count
	}
	return total, nil
}

// GetOrderTotalPrice sums line count times the current product price
// over the order's lines. Prices are not snapshotted at order time:
// totals drift when a product is repriced later.
func (e *Engine) GetOrderTotalPrice(ctx context.Context, orderID int64) (int64, error) {
	details, err := e.GetOrderProductDetails(ctx, orderID)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, d := range details {
		total += int64(d.Count) * d.Price
	}
	return total, nil
}

// GetFiltered lists orders matching the filter, one summary row per
// order with computed totals.
func (e *Engine) GetFiltered(ctx context.Context, f model.OrderFilter) ([]model.OrderSummary, error) {
	return e.store.Queries().SelectOrderSummaries(ctx, f)
}

// ParseID converts a CLI order-id argument.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("order id must be an integer, got %q", raw)
	}
	return id, nil
}
