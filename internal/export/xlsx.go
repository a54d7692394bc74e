// Package export renders staff spreadsheets.
package export

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/yoockh/bookwise/internal/models"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	maxColWidth = 50
)

type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// Workbook renders a single-sheet xlsx file with a header row and columns
// sized to their longest cell, capped at 50.
func Workbook(s Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", s.Name); err != nil {
		return nil, err
	}

	widths := make([]int, len(s.Headers))
	put := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if n := utf8.RuneCountInString(fmt.Sprint(v)); col < len(widths) && n > widths[col] {
			widths[col] = n
		}
		return f.SetCellValue(s.Name, cell, v)
	}

	for i, h := range s.Headers {
		if err := put(i, 1, h); err != nil {
			return nil, err
		}
	}
	for r, row := range s.Rows {
		for i, v := range row {
			if err := put(i, r+2, v); err != nil {
				return nil, err
			}
		}
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(s.Name, col, col, float64(min(w+2, maxColWidth))); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename is the attachment name for a workbook, ex: orders_20261019_091500.xlsx.
func Filename(prefix string, now time.Time) string {
	return prefix + "_" + now.Format("20060102_150405") + ".xlsx"
}

var orderHeaders = []string{
	"Order ID", "Customer ID", "Customer Name", "Book Title", "Author", "Genre",
	"Quantity", "Unit Price", "Total Amount", "Payment Method", "Delivery Option",
	"Delivery Address", "Order Status", "Order Date", "Special Requests", "Room ID",
}

func OrderSheet(orders []models.Order) Sheet {
	rows := make([][]any, 0, len(orders))
	for _, o := range orders {
		qty, total := 0, 0.0
		if o.Quantity != nil {
			qty = *o.Quantity
		}
		if o.TotalAmount != nil {
			total = *o.TotalAmount
		}
		date := "N/A"
		if !o.OrderDate.IsZero() {
			date = o.OrderDate.UTC().Format(time.RFC3339)
		}
		special := o.SpecialRequests
		if special == "" {
			special = "None"
		}
		status := string(o.OrderStatus)
		if status == "" {
			status = string(models.OrderPending)
		}

		rows = append(rows, []any{
			na(o.OrderID), na(o.CustomerID), na(o.CustomerName), na(o.BookTitle),
			na(o.Author), na(o.Genre), qty, o.UnitPrice, total, na(o.PaymentMethod),
			na(string(o.DeliveryOption)), na(o.DeliveryAddress), status, date,
			special, na(o.RoomID),
		})
	}
	return Sheet{Name: "Orders", Headers: orderHeaders, Rows: rows}
}

var adminHeaders = []string{
	"Employee ID", "Name", "Email", "Department", "Status", "Created Date", "Last Login",
}

func AdminSheet(admins []models.Admin) Sheet {
	rows := make([][]any, 0, len(admins))
	for _, a := range admins {
		last := "Never"
		if a.LastLogin != nil {
			last = a.LastLogin.UTC().Format(time.RFC3339)
		}
		created := "N/A"
		if !a.CreatedAt.IsZero() {
			created = a.CreatedAt.UTC().Format(time.RFC3339)
		}
		rows = append(rows, []any{
			na(a.Employee()), a.Name, a.Email, na(a.Department), string(a.Status), created, last,
		})
	}
	return Sheet{Name: "Admin Accounts", Headers: adminHeaders, Rows: rows}
}

func na(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
