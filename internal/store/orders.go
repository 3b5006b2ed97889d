package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/roach88/wman/internal/model"
)

// CreateOrder inserts an order for an existing customer and returns the
// record with its generated id.
func (q *Queries) CreateOrder(ctx context.Context, customerID int64, date time.Time) (model.Order, error) {
	res, err := q.db.ExecContext(ctx,
		"INSERT INTO orders (customer_id, date) VALUES (?, ?)",
		customerID, date.Format(model.DateLayout))
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.Order{}, model.NewNotFound("customer", strconv.FormatInt(customerID, 10))
		}
		return model.Order{}, fmt.Errorf("create order: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Order{}, fmt.Errorf("create order: %w", err)
	}
	return model.Order{ID: id, CustomerID: customerID, Date: date}, nil
}

// GetOrder fetches an order by id.
func (q *Queries) GetOrder(ctx context.Context, orderID int64) (model.Order, error) {
	var (
		o       model.Order
		rawDate string
	)
	err := q.db.QueryRowContext(ctx,
		"SELECT id, customer_id, date FROM orders WHERE id = ?", orderID).
		Scan(&o.ID, &o.CustomerID, &rawDate)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Order{}, model.NewNotFound("order", strconv.FormatInt(orderID, 10))
	}
	if err != nil {
		return model.Order{}, fmt.Errorf("get order: %w", err)
	}
	o.Date, err = time.Parse(model.DateLayout, rawDate)
	if err != nil {
		return model.Order{}, fmt.Errorf("get order: parse date %q: %w", rawDate, err)
	}
	return o, nil
}

// InsertOrderLine creates a first-time line for (orderID, code).
// Fails with DuplicateLine when the pair already has a line; growing an
// existing line is UpdateOrderLineCount's job.
func (q *Queries) InsertOrderLine(ctx context.Context, orderID int64, code string, count int) error {
	_, err := q.db.ExecContext(ctx,
		"INSERT INTO order_lines (order_id, product_code, count) VALUES (?, ?, ?)",
		orderID, code, count)
	if err != nil {
		if isUniqueViolation(err) {
			return model.NewDuplicateLine(orderID, code)
		}
		return fmt.Errorf("insert order line: %w", err)
	}
	return nil
}

// GetOrderLine fetches the line for (orderID, code).
func (q *Queries) GetOrderLine(ctx context.Context, orderID int64, code string) (model.OrderLine, error) {
	var line model.OrderLine
	err := q.db.QueryRowContext(ctx, `
		SELECT order_id, product_code, count
		FROM order_lines
		WHERE order_id = ? AND product_code = ?
	`, orderID, code).Scan(&line.OrderID, &line.ProductCode, &line.Count)
	if errors.Is(err, sql.ErrNoRows) {
		return model.OrderLine{}, model.NewNotFound("order line", lineKey(orderID, code))
	}
	if err != nil {
		return model.OrderLine{}, fmt.Errorf("get order line: %w", err)
	}
	return line, nil
}

// UpdateOrderLineCount sets the reserved count of an existing line.
func (q *Queries) UpdateOrderLineCount(ctx context.Context, orderID int64, code string, count int) error {
	res, err := q.db.ExecContext(ctx,
		"UPDATE order_lines SET count = ? WHERE order_id = ? AND product_code = ?",
		count, orderID, code)
	if err != nil {
		return fmt.Errorf("update order line: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order line: %w", err)
	}
	if n == 0 {
		return model.NewNotFound("order line", lineKey(orderID, code))
	}
	return nil
}

// DeleteOrderLine removes the line for (orderID, code).
func (q *Queries) DeleteOrderLine(ctx context.Context, orderID int64, code string) error {
	res, err := q.db.ExecContext(ctx,
		"DELETE FROM order_lines WHERE order_id = ? AND product_code = ?", orderID, code)
	if err != nil {
		return fmt.Errorf("delete order line: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete order line: %w", err)
	}
	if n == 0 {
		return model.NewNotFound("order line", lineKey(orderID, code))
	}
	return nil
}

// SelectOrderLines lists an order's lines in insertion order.
func (q *Queries) SelectOrderLines(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT order_id, product_code, count
		FROM order_lines
		WHERE order_id = ?
		ORDER BY rowid
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("select order lines: %w", err)
	}
	defer rows.Close()

	var lines []model.OrderLine
	for rows.Next() {
		var line model.OrderLine
		if err := rows.Scan(&line.OrderID, &line.ProductCode, &line.Count); err != nil {
			return nil, fmt.Errorf("select order lines: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select order lines: %w", err)
	}
	return lines, nil
}

// SelectOrderLineDetails joins an order's lines with the current product
// attributes. Count is the line's reserved quantity; price is the
// product's price at query time.
func (q *Queries) SelectOrderLineDetails(ctx context.Context, orderID int64) ([]model.OrderLineDetail, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT p.code, p.description, p.brand, p.count_in_carton, p.price, ol.count
		FROM order_lines ol
		JOIN products p ON p.code = ol.product_code
		WHERE ol.order_id = ?
		ORDER BY ol.rowid
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("select order line details: %w", err)
	}
	defer rows.Close()

	var details []model.OrderLineDetail
	for rows.Next() {
		var d model.OrderLineDetail
		if err := rows.Scan(&d.Code, &d.Description, &d.Brand, &d.CountInCarton, &d.Price, &d.Count); err != nil {
			return nil, fmt.Errorf("select order line details: %w", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select order line details: %w", err)
	}
	return details, nil
}

// SelectOrderSummaries lists orders matching the filter, one row per
// order with totals computed from the lines and current product prices.
// Price bounds apply to the computed total; date bounds are inclusive.
func (q *Queries) SelectOrderSummaries(ctx context.Context, f model.OrderFilter) ([]model.OrderSummary, error) {
	query := `
		SELECT o.id, o.date, c.name,
		       COALESCE(SUM(ol.count), 0) AS total_count,
		       COALESCE(SUM(ol.count * p.price), 0) AS total_price
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		LEFT JOIN order_lines ol ON ol.order_id = o.id
		LEFT JOIN products p ON p.code = ol.product_code
	`
	var conds []string
	var args []any
	if f.Customer != nil {
		conds = append(conds, "c.name = ?")
		args = append(args, *f.Customer)
	}
	if f.StartDate != nil {
		conds = append(conds, "o.date >= ?")
		args = append(args, f.StartDate.Format(model.DateLayout))
	}
	if f.EndDate != nil {
		conds = append(conds, "o.date <= ?")
		args = append(args, f.EndDate.Format(model.DateLayout))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " GROUP BY o.id, o.date, c.name"

	var having []string
	if f.MinPrice != nil {
		having = append(having, "total_price >= ?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		having = append(having, "total_price <= ?")
		args = append(args, *f.MaxPrice)
	}
	if len(having) > 0 {
		query += " HAVING " + strings.Join(having, " AND ")
	}
	query += " ORDER BY o.id"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select order summaries: %w", err)
	}
	defer rows.Close()

	var summaries []model.OrderSummary
	for rows.Next() {
		var (
			s       model.OrderSummary
			rawDate string
		)
		if err := rows.Scan(&s.ID, &rawDate, &s.CustomerName, &s.TotalCount, &s.TotalPrice); err != nil {
			return nil, fmt.Errorf("select order summaries: %w", err)
		}
		s.Date, err = time.Parse(model.DateLayout, rawDate)
		if err != nil {
			return nil, fmt.Errorf("select order summaries: parse date %q: %w", rawDate, err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select order summaries: %w", err)
	}
	return summaries, nil
}

func lineKey(orderID int64, code string) string {
	return fmt.Sprintf("%d/%s", orderID, code)
}
