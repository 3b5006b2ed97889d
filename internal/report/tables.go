package report

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/roach88/wman/internal/model"
)

// Renderer writes text tables with a configured display currency.
type Renderer struct {
	Currency string
}

// NewRenderer creates a Renderer for the given currency code. An empty
// code falls back to DefaultCurrency.
func NewRenderer(currency string) *Renderer {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Renderer{Currency: currency}
}

func (r *Renderer) money(amount int64) string {
	return FormatCurrency(r.Currency, amount)
}

func newTable(w io.Writer, title string) *tabwriter.Writer {
	fmt.Fprintln(w, title)
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// Products writes the product listing: one row per product with
// descriptive fields and the unit price.
func (r *Renderer) Products(w io.Writer, products []model.ProductInfo) error {
	tw := newTable(w, "Products")
	fmt.Fprintln(tw, "Code\tDescription\tBrand\tCIC\tPrice")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			p.Code, p.Description, p.Brand, p.CountInCarton, r.money(p.Price))
	}
	return tw.Flush()
}

// Availability writes the stock listing: the product rows plus a
// per-product stock valuation and a closing totals row.
func (r *Renderer) Availability(w io.Writer, products []model.ProductInfo) error {
	tw := newTable(w, "Availability")
	fmt.Fprintln(tw, "Code\tDescription\tBrand\tCIC\tPrice\tTotal Price\tCount")

	totalCount := 0
	var totalPrice int64
	for _, p := range products {
		value := p.Price * int64(p.Count)
		totalCount += p.Count
		totalPrice += value
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%d\n",
			p.Code, p.Description, p.Brand, p.CountInCarton,
			r.money(p.Price), r.money(value), p.Count)
	}
	fmt.Fprintf(tw, "Total\t\t\t\t\t%s\t%d\n", r.money(totalPrice), totalCount)
	return tw.Flush()
}

// Customers writes the customer listing.
func (r *Renderer) Customers(w io.Writer, customers []model.Customer) error {
	tw := newTable(w, "Customers")
	fmt.Fprintln(tw, "ID\tName")
	for _, c := range customers {
		fmt.Fprintf(tw, "%d\t%s\n", c.ID, c.Name)
	}
	return tw.Flush()
}

// Orders writes order summaries: one row per order with computed
// totals.
func (r *Renderer) Orders(w io.Writer, orders []model.OrderSummary) error {
	tw := newTable(w, "Orders")
	fmt.Fprintln(tw, "ID\tCustomer\tDate\tTotal Count\tTotal Price")
	for _, o := range orders {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			strconv.FormatInt(o.ID, 10), o.CustomerName,
			o.Date.Format(model.DateLayout), o.TotalCount, r.money(o.TotalPrice))
	}
	return tw.Flush()
}

// OrderDetails writes one order's lines joined with current product
// attributes, including the per-line valuation.
func (r *Renderer) OrderDetails(w io.Writer, details []model.OrderLineDetail) error {
	tw := newTable(w, "Order")
	fmt.Fprintln(tw, "Code\tDescription\tBrand\tCIC\tPrice\tTotal Price\tCount")
	for _, d := range details {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%d\n",
			d.Code, d.Description, d.Brand, d.CountInCarton,
			r.money(d.Price), r.money(d.Price*int64(d.Count)), d.Count)
	}
	return tw.Flush()
}
