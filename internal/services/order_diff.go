package services

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/yoockh/bookwise/internal/models"
)

// changedFields lists the order fields whose value differs between prev and
// next, by their JSON name. A nil prev compares against an empty order.
func changedFields(prev *models.Order, next models.Order) []string {
	var p models.Order
	if prev != nil {
		p = *prev
	}

	var out []string
	add := func(name string, differs bool) {
		if differs {
			out = append(out, name)
		}
	}

	add("order_id", p.OrderID != next.OrderID)
	add("customer_id", p.CustomerID != next.CustomerID)
	add("customer_name", p.CustomerName != next.CustomerName)
	add("book_title", p.BookTitle != next.BookTitle)
	add("author", p.Author != next.Author)
	add("genre", p.Genre != next.Genre)
	add("quantity", !sameInt(p.Quantity, next.Quantity))
	add("unit_price", p.UnitPrice != next.UnitPrice)
	add("total_amount", !sameFloat(p.TotalAmount, next.TotalAmount))
	add("payment_method", p.PaymentMethod != next.PaymentMethod)
	add("delivery_option", p.DeliveryOption != next.DeliveryOption)
	add("delivery_address", p.DeliveryAddress != next.DeliveryAddress)
	add("special_requests", p.SpecialRequests != next.SpecialRequests)
	add("order_status", p.OrderStatus != next.OrderStatus)
	return out
}

func sameInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func snapshot(o models.Order) datatypes.JSON {
	b, err := json.Marshal(o)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(b)
}
