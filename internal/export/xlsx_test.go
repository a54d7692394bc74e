package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yoockh/bookwise/internal/models"
)

func openSheet(t *testing.T, b []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestOrderWorkbook(t *testing.T) {
	q, total := 2, 31.98
	orders := []models.Order{{
		RoomID:         "room-1",
		OrderID:        "ORD-20261019-ABCDEF12",
		CustomerID:     "9876543210",
		BookTitle:      "The Midnight Library",
		Quantity:       &q,
		UnitPrice:      15.99,
		TotalAmount:    &total,
		DeliveryOption: models.DeliveryStorePickup,
		OrderStatus:    models.OrderConfirmed,
		OrderDate:      time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
	}}

	b, err := Workbook(OrderSheet(orders))
	require.NoError(t, err)

	f := openSheet(t, b)
	rows, err := f.GetRows("Orders")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, orderHeaders, rows[0])
	assert.Equal(t, "ORD-20261019-ABCDEF12", rows[1][0])
	assert.Equal(t, "N/A", rows[1][2])
	assert.Equal(t, "2", rows[1][6])
	assert.Equal(t, "store_pickup", rows[1][10])
	assert.Equal(t, "None", rows[1][14])
	assert.Equal(t, "room-1", rows[1][15])
}

func TestColumnWidthCapped(t *testing.T) {
	s := Sheet{
		Name:    "Orders",
		Headers: []string{"Short", "Long"},
		Rows:    [][]any{{"abc", strings.Repeat("x", 200)}},
	}
	b, err := Workbook(s)
	require.NoError(t, err)

	f := openSheet(t, b)
	w, err := f.GetColWidth("Orders", "A")
	require.NoError(t, err)
	assert.InDelta(t, 7, w, 0.01)

	w, err = f.GetColWidth("Orders", "B")
	require.NoError(t, err)
	assert.InDelta(t, 50, w, 0.01)
}

func TestAdminSheet(t *testing.T) {
	emp := "EMP20261019ABC123"
	s := AdminSheet([]models.Admin{
		{Name: "Ana", Email: "ana@bookwise.test", EmployeeID: &emp, Status: models.AdminActive},
		{Name: "Ben", Email: "ben@bookwise.test", Status: models.AdminPendingVerification},
	})

	require.Len(t, s.Rows, 2)
	assert.Equal(t, "Admin Accounts", s.Name)
	assert.Equal(t, []any{"EMP20261019ABC123", "Ana", "ana@bookwise.test", "N/A", "active", "N/A", "Never"}, s.Rows[0])
	assert.Equal(t, "N/A", s.Rows[1][0])
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 15, 0, 0, time.UTC)
	assert.Equal(t, "orders_20261019_091500.xlsx", Filename("orders", now))
}
