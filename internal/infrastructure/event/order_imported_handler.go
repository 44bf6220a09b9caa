package event

import (
	"context"
	"fmt"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderImportedLogger writes an audit line for every imported order
type OrderImportedLogger struct {
	logger *zap.Logger
}

// NewOrderImportedLogger creates the audit handler
func NewOrderImportedLogger(logger *zap.Logger) *OrderImportedLogger {
	return &OrderImportedLogger{logger: logger.Named("audit")}
}

func (h *OrderImportedLogger) EventTypes() []string {
	return []string{order.EventTypeOrderImported}
}

func (h *OrderImportedLogger) Handle(_ context.Context, event shared.DomainEvent) error {
	imported, ok := event.(*order.OrderImportedEvent)
	if !ok {
		return fmt.Errorf("unexpected event %T for %s", event, order.EventTypeOrderImported)
	}
	h.logger.Info("Order imported",
		zap.String("event_id", imported.EventID().String()),
		zap.String("order_id", imported.OrderID.String()),
		zap.String("number", imported.Number),
		zap.String("state", imported.State),
		zap.Int("line_items", imported.LineItemCount),
		zap.Int("shipments", imported.ShipmentCount),
		zap.String("total", imported.Total.String()),
		zap.Bool("completed", imported.Completed),
		zap.Time("occurred_at", imported.OccurredAt()))
	return nil
}

var _ shared.EventHandler = (*OrderImportedLogger)(nil)
