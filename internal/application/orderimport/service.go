package orderimport

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Service builds complete orders from import payloads.
// Everything from order creation to the final reload runs in one transaction.
// Scopes that cannot roll back get the partially built order deleted instead.
type Service struct {
	scope            TransactionScope
	orders           order.OrderRepository
	normalizer       *AddressNormalizer
	validate         *validator.Validate
	payloadValidator *PayloadValidator
	channel          string
	logger           *zap.Logger
	eventPublisher   shared.EventPublisher
	archive          ImportArchive
	importMetrics    *telemetry.ImportMetrics
}

// NewService creates an import Service. orders must not be bound to the
// import transaction; it serves reads and, for scopes that cannot roll back,
// the delete of a failed order.
func NewService(
	scope TransactionScope,
	orders order.OrderRepository,
	normalizer *AddressNormalizer,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		scope:      scope,
		orders:     orders,
		normalizer: normalizer,
		validate:   NewValidator(),
		channel:    order.DefaultChannel,
		logger:     logger,
	}
}

// SetChannel sets the channel recorded on imported orders
func (s *Service) SetChannel(channel string) {
	if channel != "" {
		s.channel = channel
	}
}

// SetPayloadValidator enables schema validation of raw documents in ImportJSON
func (s *Service) SetPayloadValidator(v *PayloadValidator) {
	s.payloadValidator = v
}

// SetEventPublisher sets the publisher for OrderImported events
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetArchive sets where raw payloads of committed imports are kept
func (s *Service) SetArchive(archive ImportArchive) {
	s.archive = archive
}

// SetImportMetrics sets the import metrics collector
func (s *Service) SetImportMetrics(m *telemetry.ImportMetrics) {
	s.importMetrics = m
}

// ImportJSON validates and decodes a raw document, imports it and archives
// the document once the order is committed
func (s *Service) ImportJSON(ctx context.Context, caller Caller, raw []byte) (*order.Order, error) {
	if s.payloadValidator != nil {
		if err := s.payloadValidator.Validate(raw); err != nil {
			s.recordFailure(ctx, err, 0)
			return nil, err
		}
	}

	payload, err := ParsePayload(raw)
	if err != nil {
		verr := validationFailed("decode payload: %w", err)
		s.recordFailure(ctx, verr, 0)
		return nil, verr
	}

	o, err := s.Import(ctx, caller, payload)
	if err != nil {
		return nil, err
	}

	if s.archive != nil {
		if err := s.archive.Store(ctx, o.ID, raw); err != nil {
			s.logger.Warn("Failed to archive import payload",
				zap.String("order_id", o.ID.String()),
				zap.Error(err))
		}
	}
	return o, nil
}

// Import builds an order from payload and returns it reloaded with all
// associations. Either the whole order is persisted or nothing is.
func (s *Service) Import(ctx context.Context, caller Caller, payload *Payload) (*order.Order, error) {
	if payload == nil {
		payload = &Payload{}
	}
	start := time.Now()
	ctx, span := telemetry.StartServiceSpan(ctx, "order_import", "import",
		telemetry.AttrAdmin.Bool(caller.IsAdmin()),
		telemetry.AttrLineItems.Int(len(payload.LineItems)),
	)
	defer span.End()

	s.logger.Info("Importing order",
		zap.String("user_id", caller.UserID.String()),
		zap.Bool("admin", caller.IsAdmin()),
		zap.Int("line_items", len(payload.LineItems)),
		zap.Int("shipments", len(payload.Shipments)),
		zap.Int("payments", len(payload.Payments)))

	shipAddress, err := s.normalizer.Normalize(ctx, payload.ShipAddress)
	if err != nil {
		return nil, s.fail(ctx, span, err, uuid.Nil, start)
	}
	billAddress, err := s.normalizer.Normalize(ctx, payload.BillAddress)
	if err != nil {
		return nil, s.fail(ctx, span, err, uuid.Nil, start)
	}

	var (
		orderID  uuid.UUID
		imported *order.Order
		events   []shared.DomainEvent
	)
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		orders := repos.OrderRepo()

		o := order.NewOrder(s.channel)
		if err := orders.Create(ctx, o); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		orderID = o.ID

		variants := NewVariantResolver(repos.VariantRepo())
		var shipCountryID *uuid.UUID
		if shipAddress != nil {
			shipCountryID = shipAddress.CountryID
		}
		steps := []struct {
			name string
			run  func(context.Context) error
		}{
			{"shipments", func(ctx context.Context) error {
				return NewShipmentImporter(variants, repos.ShippingMethodRepo(), orders).Import(ctx, o, payload.Shipments)
			}},
			{"line_items", func(ctx context.Context) error {
				return NewLineItemImporter(variants, orders).Import(ctx, o, payload.LineItems)
			}},
			{"taxes", func(ctx context.Context) error {
				_, err := NewTaxCalculator(repos.TaxRateRepo(), orders).Apply(ctx, o, shipCountryID)
				return err
			}},
			{"adjustments", func(ctx context.Context) error {
				return NewAdjustmentImporter(orders).Import(ctx, o, payload.Adjustments)
			}},
			{"payments", func(ctx context.Context) error {
				return NewPaymentImporter(repos.PaymentMethodRepo(), orders).Import(ctx, o, payload.Payments)
			}},
		}
		for _, step := range steps {
			if err := runStep(ctx, step.name, step.run); err != nil {
				return err
			}
		}

		if payload.CompletedAt != nil {
			if err := o.Complete(*payload.CompletedAt); err != nil {
				return newError(KindValidationFailed, nil, err)
			}
		}

		if payload.Import {
			if _, err := orders.DeleteTaxAdjustments(ctx, o.ID); err != nil {
				return fmt.Errorf("delete automatic taxes: %w", err)
			}
			o.RemoveTaxAdjustments()
		}

		o.ShipAddress = shipAddress.ToAddress()
		o.BillAddress = billAddress.ToAddress()
		if err := SchemaFor(caller, s.validate).Apply(o, payload.Attributes); err != nil {
			return err
		}
		o.RecalculateTotals()
		if err := o.Validate(); err != nil {
			return newError(KindValidationFailed, nil, err)
		}
		if err := orders.Save(ctx, o); err != nil {
			return fmt.Errorf("save order: %w", err)
		}

		o.MarkImported()
		events = o.GetDomainEvents()
		o.ClearDomainEvents()

		reloaded, err := orders.FindByID(ctx, o.ID)
		if err != nil {
			return fmt.Errorf("reload order: %w", err)
		}
		imported = reloaded
		return nil
	})
	if err != nil {
		if s.scope.RollsBack() {
			orderID = uuid.Nil
		}
		return nil, s.fail(ctx, span, err, orderID, start)
	}

	if s.eventPublisher != nil && len(events) > 0 {
		if err := s.eventPublisher.Publish(ctx, events...); err != nil {
			s.logger.Warn("Failed to publish order imported event",
				zap.String("order_id", imported.ID.String()),
				zap.Error(err))
		}
	}

	if s.importMetrics != nil {
		s.importMetrics.RecordSuccess(ctx, imported.Channel, len(imported.LineItems), time.Since(start))
	}
	span.SetAttributes(
		telemetry.AttrOrderID.String(imported.ID.String()),
		telemetry.AttrOrderNumber.String(imported.Number),
		telemetry.AttrChannel.String(imported.Channel))
	telemetry.Finish(span, nil)

	s.logger.Info("Order imported",
		zap.String("order_id", imported.ID.String()),
		zap.String("number", imported.Number),
		zap.String("state", imported.State.String()),
		zap.String("total", imported.Total.String()))
	return imported, nil
}

// GetOrder loads an order with all associations
func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return s.orders.FindByID(ctx, id)
}

// fail deletes orderID when set and returns err unchanged
func (s *Service) fail(ctx context.Context, span trace.Span, err error, orderID uuid.UUID, start time.Time) error {
	if orderID != uuid.Nil {
		if derr := s.orders.Delete(ctx, orderID); derr != nil {
			s.logger.Error("Failed to delete partially imported order",
				zap.String("order_id", orderID.String()),
				zap.Error(derr))
		}
	}

	kind, _ := KindOf(err)
	span.SetAttributes(telemetry.AttrErrorKind.String(string(kind)))
	telemetry.Finish(span, err)
	s.recordFailure(ctx, err, time.Since(start))

	s.logger.Warn("Order import failed",
		zap.String("error_kind", string(kind)),
		zap.String("trace_id", telemetry.TraceID(ctx)),
		zap.Error(err))
	return err
}

// runStep runs one import step in a child span
func runStep(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := telemetry.StartSpan(ctx, "order_import."+name)
	defer span.End()
	err := fn(ctx)
	telemetry.Finish(span, err)
	return err
}

func (s *Service) recordFailure(ctx context.Context, err error, elapsed time.Duration) {
	if s.importMetrics == nil {
		return
	}
	kind, _ := KindOf(err)
	s.importMetrics.RecordFailure(ctx, string(kind), elapsed)
}
