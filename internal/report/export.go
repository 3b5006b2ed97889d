package report

import (
	"github.com/roach88/wman/internal/model"
	"github.com/roach88/wman/internal/sheet"
)

// SaveProducts writes the product listing as a pricelist workbook.
func (r *Renderer) SaveProducts(path string, products []model.ProductInfo) error {
	data := make([][]any, 0, len(products))
	for _, p := range products {
		data = append(data, []any{p.Code, p.Description, p.Brand, p.CountInCarton, p.Price})
	}

	w := sheet.NewWriter()
	w.AddData(data)
	w.AddHeaders([]string{"Code", "Description", "Brand", "CIC", "Price"})
	w.AddRowIndexColumn()
	w.MakeTable("Pricelist")
	w.SetColumnCurrencyFormat(6)
	return w.Save(path)
}

// SaveAvailability writes the stock listing with per-product valuation.
func (r *Renderer) SaveAvailability(path string, products []model.ProductInfo) error {
	data := make([][]any, 0, len(products))
	for _, p := range products {
		data = append(data, []any{
			p.Code, p.Description, p.Brand, p.CountInCarton,
			p.Price, p.Price * int64(p.Count), p.Count,
		})
	}

	w := sheet.NewWriter()
	w.AddData(data)
	w.AddHeaders([]string{"Code", "Description", "Brand", "CIC", "Price", "Total Price", "Count"})
	w.AddRowIndexColumn()
	w.MakeTable("Availability")
	w.SetColumnCurrencyFormat(6)
	w.SetColumnCurrencyFormat(7)
	return w.Save(path)
}

// SaveOrderDetails writes one order's lines with current product
// attributes and per-line valuation.
func (r *Renderer) SaveOrderDetails(path string, details []model.OrderLineDetail) error {
	data := make([][]any, 0, len(details))
	for _, d := range details {
		data = append(data, []any{
			d.Code, d.Description, d.Brand, d.CountInCarton,
			d.Price, d.Price * int64(d.Count), d.Count,
		})
	}

	w := sheet.NewWriter()
	w.AddData(data)
	w.AddHeaders([]string{"Code", "Description", "Brand", "CIC", "Price", "Total Price", "Count"})
	w.AddRowIndexColumn()
	w.MakeTable("Order")
	w.SetColumnCurrencyFormat(6)
	w.SetColumnCurrencyFormat(7)
	return w.Save(path)
}
