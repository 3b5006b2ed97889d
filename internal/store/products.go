package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/wman/internal/model"
)

// CreateProduct inserts a new product record. The stored count is always
// zero regardless of any count in the input; stock arrives only through
// AddProductCount.
func (q *Queries) CreateProduct(ctx context.Context, in model.ProductInput) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO products (code, description, brand, price, count_in_carton, count)
		VALUES (?, ?, ?, ?, ?, 0)
	`,
		in.Code,
		derefString(in.Description),
		derefString(in.Brand),
		derefInt64(in.Price),
		derefInt(in.CountInCarton),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.NewDuplicateKey("product", in.Code)
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetProduct fetches a product by code.
func (q *Queries) GetProduct(ctx context.Context, code string) (model.ProductInfo, error) {
	var p model.ProductInfo
	err := q.db.QueryRowContext(ctx, `
		SELECT code, description, brand, price, count_in_carton, count
		FROM products
		WHERE code = ?
	`, code).Scan(&p.Code, &p.Description, &p.Brand, &p.Price, &p.CountInCarton, &p.Count)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ProductInfo{}, model.NewNotFound("product", code)
	}
	if err != nil {
		return model.ProductInfo{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// UpdateProduct applies the non-nil fields of in to the product with
// in.Code. The stock count is never mutated through update; neither is
// the code itself.
func (q *Queries) UpdateProduct(ctx context.Context, in model.ProductInput) error {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)
	if in.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *in.Description)
	}
	if in.Brand != nil {
		sets = append(sets, "brand = ?")
		args = append(args, *in.Brand)
	}
	if in.Price != nil {
		sets = append(sets, "price = ?")
		args = append(args, *in.Price)
	}
	if in.CountInCarton != nil {
		sets = append(sets, "count_in_carton = ?")
		args = append(args, *in.CountInCarton)
	}

	if len(sets) == 0 {
		// Nothing to change; still report a missing product.
		_, err := q.GetProduct(ctx, in.Code)
		return err
	}

	args = append(args, in.Code)
	res, err := q.db.ExecContext(ctx,
		"UPDATE products SET "+strings.Join(sets, ", ")+" WHERE code = ?", args...)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if n == 0 {
		return model.NewNotFound("product", in.Code)
	}
	return nil
}

// DeleteProduct removes a product record. Fails with ProductInUse when
// order lines still reference the product (deleting it would orphan
// reserved stock).
func (q *Queries) DeleteProduct(ctx context.Context, code string) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM products WHERE code = ?", code)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.NewProductInUse(code)
		}
		return fmt.Errorf("delete product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if n == 0 {
		return model.NewNotFound("product", code)
	}
	return nil
}

// AddProductCount atomically increases a product's stock by amount.
// Amount validation (positivity) is the ledger's concern; the store only
// guarantees the row exists and the mutation is a single statement.
func (q *Queries) AddProductCount(ctx context.Context, code string, amount int) error {
	res, err := q.db.ExecContext(ctx,
		"UPDATE products SET count = count + ? WHERE code = ?", amount, code)
	if err != nil {
		return fmt.Errorf("add product count: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("add product count: %w", err)
	}
	if n == 0 {
		return model.NewNotFound("product", code)
	}
	return nil
}

// ReduceProductCount atomically decreases a product's stock by amount.
// The decrement is guarded in the statement itself (count >= amount), so
// the non-negative invariant holds without a separate read: a failed
// guard is then classified as NotFound or InsufficientStock.
func (q *Queries) ReduceProductCount(ctx context.Context, code string, amount int) error {
	res, err := q.db.ExecContext(ctx,
		"UPDATE products SET count = count - ? WHERE code = ? AND count >= ?",
		amount, code, amount)
	if err != nil {
		return fmt.Errorf("reduce product count: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reduce product count: %w", err)
	}
	if n == 1 {
		return nil
	}

	p, err := q.GetProduct(ctx, code)
	if err != nil {
		return err
	}
	return model.NewInsufficientStock(code, amount, p.Count)
}

// SelectProducts lists products matching the filter, preserving
// insertion order. Nil filter fields impose no constraint.
func (q *Queries) SelectProducts(ctx context.Context, f model.ProductFilter) ([]model.ProductInfo, error) {
	query := `
		SELECT code, description, brand, price, count_in_carton, count
		FROM products
	`
	var conds []string
	var args []any
	if f.MinPrice != nil {
		conds = append(conds, "price >= ?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		conds = append(conds, "price <= ?")
		args = append(args, *f.MaxPrice)
	}
	if f.Brand != nil {
		conds = append(conds, "brand = ?")
		args = append(args, *f.Brand)
	}
	if f.MinCount != nil {
		conds = append(conds, "count >= ?")
		args = append(args, *f.MinCount)
	}
	if f.MaxCount != nil {
		conds = append(conds, "count <= ?")
		args = append(args, *f.MaxCount)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY rowid"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	var products []model.ProductInfo
	for rows.Next() {
		var p model.ProductInfo
		if err := rows.Scan(&p.Code, &p.Description, &p.Brand, &p.Price, &p.CountInCarton, &p.Count); err != nil {
			return nil, fmt.Errorf("select products: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	return products, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

func derefInt64(n *int64) int64 {
	if n == nil {
		return 0
	}
	return *n
}
