package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type OrderEventKind string

const (
	OrderEventExtracted OrderEventKind = "extracted"
	OrderEventSubmitted OrderEventKind = "submitted"
)

// OrderEvent is one row of the append-only order history.
type OrderEvent struct {
	ID      string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	RoomID  string         `gorm:"column:room_id;type:text;index" json:"room_id"`
	OrderID string         `gorm:"column:order_id;type:text;index" json:"order_id,omitempty"`
	Kind    OrderEventKind `gorm:"column:kind;type:text" json:"kind"`
	Status  OrderStatus    `gorm:"column:status;type:text" json:"status"`

	ChangedFields pq.StringArray `gorm:"column:changed_fields;type:text[]" json:"changed_fields"`
	Snapshot      datatypes.JSON `gorm:"column:snapshot;type:jsonb" json:"snapshot"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;index" json:"created_at"`
}

func (OrderEvent) TableName() string { return "order_events" }
