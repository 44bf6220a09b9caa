package orderimport

import (
	"context"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
)

// TransactionScope runs the persisting steps of an import atomically.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
	// RollsBack reports whether a failed Execute leaves no rows behind
	RollsBack() bool
}

// TransactionalRepositories exposes the repositories an import writes through.
// All of them share the same underlying transaction.
type TransactionalRepositories interface {
	OrderRepo() order.OrderRepository
	VariantRepo() catalog.VariantRepository
	ShippingMethodRepo() order.ShippingMethodRepository
	PaymentMethodRepo() order.PaymentMethodRepository
	TaxRateRepo() order.TaxRateRepository
}

// NoOpTransactionScope hands out the given repositories without a transaction.
// Used in unit tests where the repositories are mocks.
type NoOpTransactionScope struct {
	orderRepo          order.OrderRepository
	variantRepo        catalog.VariantRepository
	shippingMethodRepo order.ShippingMethodRepository
	paymentMethodRepo  order.PaymentMethodRepository
	taxRateRepo        order.TaxRateRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	orderRepo order.OrderRepository,
	variantRepo catalog.VariantRepository,
	shippingMethodRepo order.ShippingMethodRepository,
	paymentMethodRepo order.PaymentMethodRepository,
	taxRateRepo order.TaxRateRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:          orderRepo,
		variantRepo:        variantRepo,
		shippingMethodRepo: shippingMethodRepo,
		paymentMethodRepo:  paymentMethodRepo,
		taxRateRepo:        taxRateRepo,
	}
}

// Execute runs fn directly.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// RollsBack is false: writes made before a failure stay in place.
func (s *NoOpTransactionScope) RollsBack() bool {
	return false
}

func (s *NoOpTransactionScope) OrderRepo() order.OrderRepository {
	return s.orderRepo
}

func (s *NoOpTransactionScope) VariantRepo() catalog.VariantRepository {
	return s.variantRepo
}

func (s *NoOpTransactionScope) ShippingMethodRepo() order.ShippingMethodRepository {
	return s.shippingMethodRepo
}

func (s *NoOpTransactionScope) PaymentMethodRepo() order.PaymentMethodRepository {
	return s.paymentMethodRepo
}

func (s *NoOpTransactionScope) TaxRateRepo() order.TaxRateRepository {
	return s.taxRateRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
