package extraction

import (
	"github.com/yoockh/bookwise/internal/models"
)

// Extractor derives an order record from a transcript. It holds no state
// between calls and is safe for concurrent use.
type Extractor struct {
	cfg Config
}

func New(cfg Config) *Extractor {
	return &Extractor{cfg: cfg.withDefaults()}
}

func (e *Extractor) Config() Config { return e.cfg }

// Extract never fails: fields that no rule recovers stay unknown.
func (e *Extractor) Extract(utts []models.Utterance) models.Order {
	order, _ := e.Explain(utts)
	return order
}

// Explain is Extract plus the winning candidate of every recovered field.
func (e *Extractor) Explain(utts []models.Utterance) (models.Order, []Candidate) {
	text := Segment(utts).Full

	var cands []Candidate
	match := func(ch Chain) (string, bool) {
		c, ok := ch.First(text)
		if !ok {
			return "", false
		}
		cands = append(cands, c)
		return c.Raw, true
	}

	now := e.cfg.Now().UTC()
	order := models.Order{
		UnitPrice:      e.cfg.UnitPrice,
		DeliveryOption: e.cfg.DefaultDelivery,
		OrderStatus:    models.OrderPending,
		OrderDate:      now,
		UpdatedAt:      now,
	}

	if raw, ok := match(nameChain); ok {
		order.CustomerName = CleanText(raw)
	}
	if raw, ok := match(contactChain); ok {
		order.CustomerID, _ = NormalizeContactID(raw)
	}
	if raw, ok := match(titleChain); ok {
		order.BookTitle = CleanText(raw)
	}
	if raw, ok := match(authorChain); ok {
		order.Author = CleanText(raw)
	}
	if raw, ok := match(genreChain); ok {
		order.Genre = NormalizeGenre(raw)
	}
	if raw, ok := match(quantityChain); ok {
		if q, ok := ParseQuantity(raw); ok {
			order.Quantity = &q
		}
	}
	if raw, ok := match(paymentChain); ok {
		order.PaymentMethod = NormalizePayment(raw)
	}

	if c, ok := deliveryChain.First(text); ok {
		cands = append(cands, c)
		order.DeliveryOption = models.DeliveryOption(c.Rule)
	}
	if order.DeliveryOption == models.DeliveryHome {
		if raw, ok := match(addressChain); ok {
			order.DeliveryAddress = CleanText(raw)
		}
	}

	if raw, ok := match(specialChain); ok {
		order.SpecialRequests = CleanText(raw)
	}

	order.TotalAmount = Total(order.Quantity, order.UnitPrice)

	if order.BookTitle != "" && order.CustomerID != "" {
		order.OrderID = e.cfg.NewOrderID(now)
	}
	return order, cands
}
