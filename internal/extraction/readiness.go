package extraction

import (
	"github.com/yoockh/bookwise/internal/models"
)

type State string

const (
	StateCollecting State = "collecting"
	StateReady      State = "ready"
	StateConfirmed  State = "confirmed"
)

// RequiredFields are the six fields the assistant must collect before it may
// confirm a sale, in the order it asks for them.
var RequiredFields = []Field{
	FieldCustomerName,
	FieldCustomerID,
	FieldBookTitle,
	FieldQuantity,
	FieldPaymentMethod,
	FieldDeliveryOption,
}

var prompts = map[Field]string{
	FieldCustomerName:   "May I have your full name, please?",
	FieldCustomerID:     "Could you share your customer ID or contact number?",
	FieldBookTitle:      "Which book would you like to order?",
	FieldQuantity:       "Could you please specify how many copies you'd like to purchase?",
	FieldPaymentMethod:  "Could you confirm your preferred payment method, online or cash on delivery?",
	FieldDeliveryOption: "Would you like to pick the book up at the store, or should we deliver it? If delivery, what is the address?",
}

type Readiness struct {
	State   State   `json:"state"`
	Missing []Field `json:"missing,omitempty"`
}

// Evaluate places an order in the collecting -> ready -> confirmed progression.
// Delivery counts as known for pickup and express, and for home delivery once
// an address is on record, since home delivery is also the default.
func Evaluate(o models.Order) Readiness {
	if o.OrderStatus == models.OrderConfirmed {
		return Readiness{State: StateConfirmed}
	}

	var missing []Field
	for _, f := range RequiredFields {
		if !present(o, f) {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return Readiness{State: StateCollecting, Missing: missing}
	}
	return Readiness{State: StateReady}
}

// Prompts are the clarification questions for the missing fields.
func (r Readiness) Prompts() []string {
	out := make([]string, 0, len(r.Missing))
	for _, f := range r.Missing {
		out = append(out, Prompt(f))
	}
	return out
}

func Prompt(f Field) string {
	if p, ok := prompts[f]; ok {
		return p
	}
	return "Could you tell me your " + string(f) + "?"
}

// Notifiable is the gate for alerting staff about an order.
func Notifiable(o models.Order) bool {
	return o.OrderID != "" && o.CustomerID != "" && o.BookTitle != ""
}

func present(o models.Order, f Field) bool {
	switch f {
	case FieldCustomerName:
		return o.CustomerName != ""
	case FieldCustomerID:
		return o.CustomerID != ""
	case FieldBookTitle:
		return o.BookTitle != ""
	case FieldQuantity:
		return o.Quantity != nil
	case FieldPaymentMethod:
		return o.PaymentMethod != ""
	case FieldDeliveryOption:
		switch o.DeliveryOption {
		case models.DeliveryStorePickup, models.DeliveryExpress:
			return true
		case models.DeliveryHome:
			return o.DeliveryAddress != ""
		}
		return false
	default:
		return false
	}
}
