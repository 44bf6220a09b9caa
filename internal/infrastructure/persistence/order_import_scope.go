package persistence

import (
	"context"

	"github.com/storefront/backend/internal/application/orderimport"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"gorm.io/gorm"
)

// GormTransactionScope runs an order import inside one GORM transaction.
// Every repository handed to the callback shares that transaction.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos orderimport.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// RollsBack is true: a failed transaction is never committed.
func (s *GormTransactionScope) RollsBack() bool {
	return true
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) OrderRepo() order.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormTransactionalRepositories) VariantRepo() catalog.VariantRepository {
	return NewGormVariantRepository(r.tx)
}

func (r *gormTransactionalRepositories) ShippingMethodRepo() order.ShippingMethodRepository {
	return NewGormShippingMethodRepository(r.tx)
}

func (r *gormTransactionalRepositories) PaymentMethodRepo() order.PaymentMethodRepository {
	return NewGormPaymentMethodRepository(r.tx)
}

func (r *gormTransactionalRepositories) TaxRateRepo() order.TaxRateRepository {
	return NewGormTaxRateRepository(r.tx)
}

var _ orderimport.TransactionScope = (*GormTransactionScope)(nil)
var _ orderimport.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
