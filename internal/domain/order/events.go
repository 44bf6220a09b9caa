package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// AggregateTypeOrder is the aggregate type recorded on order events
const AggregateTypeOrder = "Order"

// EventTypeOrderImported is raised after an imported order is committed
const EventTypeOrderImported = "OrderImported"

// OrderImportedEvent carries a summary of an imported order
type OrderImportedEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID       `json:"order_id"`
	Number        string          `json:"number"`
	State         string          `json:"state"`
	LineItemCount int             `json:"line_item_count"`
	ShipmentCount int             `json:"shipment_count"`
	Total         decimal.Decimal `json:"total"`
	Completed     bool            `json:"completed"`
}

// NewOrderImportedEvent creates an OrderImportedEvent
func NewOrderImportedEvent(o *Order) *OrderImportedEvent {
	return &OrderImportedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderImported, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		Number:          o.Number,
		State:           o.State.String(),
		LineItemCount:   len(o.LineItems),
		ShipmentCount:   len(o.Shipments),
		Total:           o.Total,
		Completed:       o.IsCompleted(),
	}
}

// EventType returns the event type name
func (e *OrderImportedEvent) EventType() string {
	return EventTypeOrderImported
}
