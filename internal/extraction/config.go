package extraction

import (
	"time"

	"github.com/yoockh/bookwise/internal/models"
	"github.com/yoockh/bookwise/internal/utils"
)

// DefaultUnitPrice is the catalog price applied when the conversation names none.
const DefaultUnitPrice = 15.99

// Config carries the pricing and defaulting policy of an Extractor.
type Config struct {
	UnitPrice       float64
	DefaultDelivery models.DeliveryOption

	// Now and NewOrderID are the only sources of non-determinism in a run.
	Now        func() time.Time
	NewOrderID func(now time.Time) string
}

func DefaultConfig() Config {
	return Config{
		UnitPrice:       DefaultUnitPrice,
		DefaultDelivery: models.DeliveryHome,
		Now:             time.Now,
		NewOrderID:      utils.NewOrderID,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.UnitPrice <= 0 {
		c.UnitPrice = d.UnitPrice
	}
	if c.DefaultDelivery == "" {
		c.DefaultDelivery = d.DefaultDelivery
	}
	if c.Now == nil {
		c.Now = d.Now
	}
	if c.NewOrderID == nil {
		c.NewOrderID = d.NewOrderID
	}
	return c
}
