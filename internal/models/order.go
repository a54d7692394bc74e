package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
)

type DeliveryOption string

const (
	DeliveryStorePickup DeliveryOption = "store_pickup"
	DeliveryHome        DeliveryOption = "home_delivery"
	DeliveryExpress     DeliveryOption = "express_delivery"
)

// Order is the structured record derived from a room's transcript.
// Empty strings and nil pointers mean "not yet known".
type Order struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	RoomID string             `bson:"room_id" json:"room_id,omitempty"`

	OrderID      string `bson:"order_id,omitempty" json:"order_id,omitempty"`
	CustomerID   string `bson:"customer_id,omitempty" json:"customer_id,omitempty"` // contact number
	CustomerName string `bson:"customer_name,omitempty" json:"customer_name,omitempty"`

	BookTitle string `bson:"book_title,omitempty" json:"book_title,omitempty"`
	Author    string `bson:"author,omitempty" json:"author,omitempty"`
	Genre     string `bson:"genre,omitempty" json:"genre,omitempty"`

	Quantity    *int     `bson:"quantity,omitempty" json:"quantity,omitempty"`
	UnitPrice   float64  `bson:"unit_price" json:"unit_price"`
	TotalAmount *float64 `bson:"total_amount,omitempty" json:"total_amount,omitempty"`

	PaymentMethod   string         `bson:"payment_method,omitempty" json:"payment_method,omitempty"`
	DeliveryOption  DeliveryOption `bson:"delivery_option" json:"delivery_option"`
	DeliveryAddress string         `bson:"delivery_address,omitempty" json:"delivery_address,omitempty"`
	SpecialRequests string         `bson:"special_requests,omitempty" json:"special_requests,omitempty"`

	OrderStatus OrderStatus `bson:"order_status" json:"order_status"`
	OrderDate   time.Time   `bson:"order_date" json:"order_date"`
	UpdatedAt   time.Time   `bson:"updated_at" json:"updated_at"`
}
