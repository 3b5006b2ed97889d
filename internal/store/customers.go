package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/wman/internal/model"
)

// CreateCustomer inserts a customer and returns the record with its
// generated id. Names are unique.
func (q *Queries) CreateCustomer(ctx context.Context, name string) (model.Customer, error) {
	res, err := q.db.ExecContext(ctx, "INSERT INTO customers (name) VALUES (?)", name)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Customer{}, model.NewDuplicateName(name)
		}
		return model.Customer{}, fmt.Errorf("create customer: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Customer{}, fmt.Errorf("create customer: %w", err)
	}
	return model.Customer{ID: id, Name: name}, nil
}

// GetCustomerByName fetches a customer by exact name.
func (q *Queries) GetCustomerByName(ctx context.Context, name string) (model.Customer, error) {
	var c model.Customer
	err := q.db.QueryRowContext(ctx,
		"SELECT id, name FROM customers WHERE name = ?", name).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Customer{}, model.NewNotFound("customer", name)
	}
	if err != nil {
		return model.Customer{}, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// SelectCustomers lists customers in insertion order. The filter is
// accepted but not applied yet; every customer is returned.
func (q *Queries) SelectCustomers(ctx context.Context, _ model.CustomerFilter) ([]model.Customer, error) {
	rows, err := q.db.QueryContext(ctx, "SELECT id, name FROM customers ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("select customers: %w", err)
	}
	defer rows.Close()

	var customers []model.Customer
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("select customers: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select customers: %w", err)
	}
	return customers, nil
}
