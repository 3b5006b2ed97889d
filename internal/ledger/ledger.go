// Package ledger owns the product stock invariants: stock is added and
// reduced only through here (for non-order adjustments such as
// restocking), and a product's count can never go negative.
package ledger

import (
	"context"

	"github.com/roach88/wman/internal/model"
	"github.com/roach88/wman/internal/store"
)

// Ledger manages product records and their on-hand stock against an
// explicit store handle.
type Ledger struct {
	store *store.Store
}

// New creates a Ledger bound to the given store.
func New(s *store.Store) *Ledger {
	return &Ledger{store: s}
}

// Add creates a product from the input's descriptive fields. The new
// product always starts with zero stock: any count in the input is
// ignored, stock enters only through AddCount.
func (l *Ledger) Add(ctx context.Context, in model.ProductInput) error {
	return l.store.Queries().CreateProduct(ctx, in)
}

// AddCount increases a product's stock by amount. Amounts must be
// positive: a negative add would sidestep the stock guard on the
// reduction path.
func (l *Ledger) AddCount(ctx context.Context, code string, amount int) error {
	if amount <= 0 {
		return model.NewInvalidAmount("stock amount must be positive")
	}
	return l.store.Queries().AddProductCount(ctx, code, amount)
}

// ReduceCount decreases a product's stock by amount. Fails with
// InsufficientStock when amount exceeds the available count; the failed
// call leaves the count untouched.
func (l *Ledger) ReduceCount(ctx context.Context, code string, amount int) error {
	if amount <= 0 {
		return model.NewInvalidAmount("stock amount must be positive")
	}
	return l.store.Queries().ReduceProductCount(ctx, code, amount)
}

// Remove deletes a product record. Fails with ProductInUse while order
// lines still reference the product.
func (l *Ledger) Remove(ctx context.Context, code string) error {
	return l.store.Queries().DeleteProduct(ctx, code)
}

// Update applies the supplied (non-nil) descriptive fields to an
// existing product. Stock is never mutated through update.
func (l *Ledger) Update(ctx context.Context, in model.ProductInput) error {
	return l.store.Queries().UpdateProduct(ctx, in)
}

// Get fetches one product by code.
func (l *Ledger) Get(ctx context.Context, code string) (model.ProductInfo, error) {
	return l.store.Queries().GetProduct(ctx, code)
}

// GetMany fetches products for each code, in the given order. Any
// missing code fails the whole lookup with NotFound.
func (l *Ledger) GetMany(ctx context.Context, codes []string) ([]model.ProductInfo, error) {
	products := make([]model.ProductInfo, 0, len(codes))
	for _, code := range codes {
		p, err := l.store.Queries().GetProduct(ctx, code)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// GetFiltered lists products matching the filter in store iteration
// order. Absent filter fields impose no constraint.
func (l *Ledger) GetFiltered(ctx context.Context, f model.ProductFilter) ([]model.ProductInfo, error) {
	return l.store.Queries().SelectProducts(ctx, f)
}
