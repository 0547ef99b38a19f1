// Package report renders the inventory as an xlsx workbook.
package report

import (
	"fmt"
	"io"
	"time"

	"go-inventory-tracker/internal/model"
	"go-inventory-tracker/internal/stats"

	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary      = "Summary"
	SheetProducts     = "Products"
	SheetTransactions = "Transactions"

	timeLayout = "2006-01-02 15:04:05"
)

var (
	productHeader     = []interface{}{"ID", "Brand", "Barcode", "Description", "Category", "Stocks", "Status", "Archived", "Created At", "Updated At"}
	transactionHeader = []interface{}{"Date", "Action", "Quantity", "Brand", "Barcode", "Category", "Product ID", "Created By"}
)

// Inventory is the data one export covers
type Inventory struct {
	Products     []model.Product
	Transactions []model.TransactionView
	Dashboard    stats.Dashboard
	Location     *time.Location
}

// Write renders inv as a workbook into w
func Write(w io.Writer, inv Inventory) error {
	f, err := Build(inv)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func Build(inv Inventory) (*excelize.File, error) {
	if inv.Location == nil {
		inv.Location = time.UTC
	}
	f := excelize.NewFile()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("header style: %w", err)
	}

	b := &builder{f: f, header: header, loc: inv.Location}
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, err
	}
	for _, step := range []func(Inventory) error{b.summary, b.products, b.transactions} {
		if err := step(inv); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

type builder struct {
	f      *excelize.File
	header int
	loc    *time.Location
}

func (b *builder) row(sheet string, n int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	return b.f.SetSheetRow(sheet, cell, &values)
}

func (b *builder) headerRow(sheet string, values []interface{}) error {
	if err := b.row(sheet, 1, values); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(values), 1)
	if err != nil {
		return err
	}
	if err := b.f.SetCellStyle(sheet, "A1", last, b.header); err != nil {
		return err
	}
	return b.f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func (b *builder) summary(inv Inventory) error {
	d := inv.Dashboard
	status := d.StockStatus
	rows := [][]interface{}{
		{"Generated At", d.GeneratedAt.In(b.loc).Format(timeLayout)},
		{"Total Products", d.TotalProducts},
		{"Total Stock", d.TotalStock},
		{"Total Transactions", d.TotalTransactions},
		{},
		{"Status", "Count", "Percentage"},
		{"In Stock", status.InStock, status.InStockPercentage},
		{"Low Stock", status.LowStock, status.LowStockPercentage},
		{"Out of Stock", status.OutOfStock, status.OutOfStockPercentage},
		{},
		{"Category", "Count", "Percentage"},
	}
	for _, c := range d.Categories {
		rows = append(rows, []interface{}{c.Category, c.Count, c.Percentage})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Top Stock Out", "Barcode", "Total"})
	for _, top := range d.TopStockOut {
		rows = append(rows, []interface{}{top.Brand, top.Barcode, top.Total})
	}

	if err := b.row(SheetSummary, 1, []interface{}{"Inventory Report"}); err != nil {
		return err
	}
	if err := b.f.SetCellStyle(SheetSummary, "A1", "A1", b.header); err != nil {
		return err
	}
	for i, r := range rows {
		if err := b.row(SheetSummary, i+2, r); err != nil {
			return err
		}
	}
	return b.f.SetColWidth(SheetSummary, "A", "A", 24)
}

func (b *builder) products(inv Inventory) error {
	if _, err := b.f.NewSheet(SheetProducts); err != nil {
		return err
	}
	if err := b.headerRow(SheetProducts, productHeader); err != nil {
		return err
	}
	for i := range inv.Products {
		p := &inv.Products[i]
		values := []interface{}{
			p.ID.String(), p.Brand, p.Barcode, p.Description, p.Category, p.Stocks,
			statusLabel(p), p.IsDeleted,
			p.CreatedAt.In(b.loc).Format(timeLayout), p.UpdatedAt.In(b.loc).Format(timeLayout),
		}
		if err := b.row(SheetProducts, i+2, values); err != nil {
			return err
		}
	}
	return b.f.SetColWidth(SheetProducts, "A", "A", 38)
}

func (b *builder) transactions(inv Inventory) error {
	if _, err := b.f.NewSheet(SheetTransactions); err != nil {
		return err
	}
	if err := b.headerRow(SheetTransactions, transactionHeader); err != nil {
		return err
	}
	for i := range inv.Transactions {
		tx := &inv.Transactions[i]
		var barcode interface{} = tx.Product.Barcode
		if !tx.Product.Resolved {
			barcode = model.NotAvailable
		}
		values := []interface{}{
			tx.CreatedAt.In(b.loc).Format(timeLayout), string(tx.Action), tx.Quantity,
			tx.Product.Brand, barcode, tx.Product.Category, tx.ProductID.String(), tx.CreatedBy,
		}
		if err := b.row(SheetTransactions, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func statusLabel(p *model.Product) string {
	if p.IsDeleted {
		return "Archived"
	}
	switch p.State() {
	case model.StateOutOfStock:
		return "Out of Stock"
	case model.StateLowStock:
		return "Low Stock"
	default:
		return "In Stock"
	}
}
