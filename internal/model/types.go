package model

import "time"

// ProductInfo is a full product record as stored.
type ProductInfo struct {
	// Code uniquely identifies the product. Immutable after creation.
	Code string `json:"code"`

	// Description is the human-readable product description.
	Description string `json:"description,omitempty"`

	// Brand is the product's brand name.
	Brand string `json:"brand,omitempty"`

	// Price is the unit price in the configured currency's minor-free
	// integer form (rials).
	Price int64 `json:"price"`

	// CountInCarton is how many units ship per carton. Informational.
	CountInCarton int `json:"count_in_carton"`

	// Count is the on-hand stock. Never negative.
	Count int `json:"count"`
}

// ProductInput carries the fields of a product operation. Nil pointers
// mean the field was not supplied (unmapped batch column, omitted flag).
type ProductInput struct {
	Code          string
	Description   *string
	Brand         *string
	Price         *int64
	CountInCarton *int
	Count         *int
}

// ProductFilter narrows a product listing. Nil fields impose no
// constraint; present fields combine with AND.
type ProductFilter struct {
	MinPrice *int64
	MaxPrice *int64
	Brand    *string
	MinCount *int
	MaxCount *int
}

// Customer is a customer record.
type Customer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CustomerFilter is accepted by customer listing. No filter is applied
// yet; the type exists so the listing surface matches the other queries.
type CustomerFilter struct {
	Name *string
}

// Order is an order record. Lines are stored separately.
type Order struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customer_id"`
	Date       time.Time `json:"date"`
}

// OrderLine reserves Count units of a product for an order.
// Composite-keyed by (OrderID, ProductCode): at most one line per
// product per order.
type OrderLine struct {
	OrderID     int64  `json:"order_id"`
	ProductCode string `json:"product_code"`
	Count       int    `json:"count"`
}

// OrderLineDetail joins a line with the current product attributes.
// Count is the line's reserved quantity, not the product's stock.
type OrderLineDetail struct {
	Code          string `json:"code"`
	Description   string `json:"description,omitempty"`
	Brand         string `json:"brand,omitempty"`
	CountInCarton int    `json:"count_in_carton"`
	Price         int64  `json:"price"`
	Count         int    `json:"count"`
}

// OrderSummary is one row of an order listing. Totals are computed at
// query time from the order's lines and current product prices.
type OrderSummary struct {
	ID           int64     `json:"id"`
	TotalCount   int       `json:"total_count"`
	TotalPrice   int64     `json:"total_price"`
	CustomerName string    `json:"customer_name"`
	Date         time.Time `json:"date"`
}

// OrderFilter narrows an order listing. Price bounds compare against the
// computed order total, not a stored field. Date bounds are inclusive.
type OrderFilter struct {
	Customer  *string
	MinPrice  *int64
	MaxPrice  *int64
	StartDate *time.Time
	EndDate   *time.Time
}

// DateLayout is the canonical order-date format in the store and on the
// CLI.
const DateLayout = "2006-01-02"
