package orderimport

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/geo"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockCountryRepository is a mock implementation of geo.CountryRepository
type MockCountryRepository struct {
	mock.Mock
}

func (m *MockCountryRepository) FindOne(ctx context.Context, criteria geo.CountryCriteria) (*geo.Country, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geo.Country), args.Error(1)
}

func (m *MockCountryRepository) Save(ctx context.Context, country *geo.Country) error {
	args := m.Called(ctx, country)
	return args.Error(0)
}

// MockStateRepository is a mock implementation of geo.StateRepository
type MockStateRepository struct {
	mock.Mock
}

func (m *MockStateRepository) FindOne(ctx context.Context, criteria geo.StateCriteria) (*geo.State, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geo.State), args.Error(1)
}

func (m *MockStateRepository) Save(ctx context.Context, state *geo.State) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

// MockVariantRepository is a mock implementation of catalog.VariantRepository
type MockVariantRepository struct {
	mock.Mock
}

func (m *MockVariantRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Variant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Variant), args.Error(1)
}

func (m *MockVariantRepository) FindActiveBySKU(ctx context.Context, sku string) (*catalog.Variant, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Variant), args.Error(1)
}

func (m *MockVariantRepository) Save(ctx context.Context, variant *catalog.Variant) error {
	args := m.Called(ctx, variant)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of order.OrderRepository.
// FindByID may be given a func(uuid.UUID) *order.Order to build its result.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	switch v := args.Get(0).(type) {
	case nil:
		return nil, args.Error(1)
	case func(uuid.UUID) *order.Order:
		return v(id), args.Error(1)
	default:
		return v.(*order.Order), args.Error(1)
	}
}

func (m *MockOrderRepository) SaveLineItem(ctx context.Context, item *order.LineItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveShipment(ctx context.Context, shipment *order.Shipment) error {
	args := m.Called(ctx, shipment)
	return args.Error(0)
}

func (m *MockOrderRepository) SavePayment(ctx context.Context, payment *order.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveAdjustment(ctx context.Context, adjustment *order.Adjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

func (m *MockOrderRepository) DeleteTaxAdjustments(ctx context.Context, orderID uuid.UUID) (int64, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(int64), args.Error(1)
}

// MockShippingMethodRepository is a mock implementation of order.ShippingMethodRepository
type MockShippingMethodRepository struct {
	mock.Mock
}

func (m *MockShippingMethodRepository) FindByName(ctx context.Context, name string) (*order.ShippingMethod, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.ShippingMethod), args.Error(1)
}

func (m *MockShippingMethodRepository) Save(ctx context.Context, method *order.ShippingMethod) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

// MockPaymentMethodRepository is a mock implementation of order.PaymentMethodRepository
type MockPaymentMethodRepository struct {
	mock.Mock
}

func (m *MockPaymentMethodRepository) FindByName(ctx context.Context, name string) (*order.PaymentMethod, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) Save(ctx context.Context, method *order.PaymentMethod) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

// MockTaxRateRepository is a mock implementation of order.TaxRateRepository
type MockTaxRateRepository struct {
	mock.Mock
}

func (m *MockTaxRateRepository) FindAll(ctx context.Context) ([]order.TaxRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.TaxRate), args.Error(1)
}

func (m *MockTaxRateRepository) Save(ctx context.Context, rate *order.TaxRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// MockReferenceCache is a mock implementation of ReferenceCache
type MockReferenceCache struct {
	mock.Mock
}

func (m *MockReferenceCache) GetID(ctx context.Context, key string) (uuid.UUID, bool, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(uuid.UUID), args.Bool(1), args.Error(2)
}

func (m *MockReferenceCache) SetID(ctx context.Context, key string, id uuid.UUID) error {
	args := m.Called(ctx, key, id)
	return args.Error(0)
}

// MockImportArchive is a mock implementation of ImportArchive
type MockImportArchive struct {
	mock.Mock
}

func (m *MockImportArchive) Store(ctx context.Context, orderID uuid.UUID, raw []byte) error {
	args := m.Called(ctx, orderID, raw)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// importMocks bundles every repository a service test needs
type importMocks struct {
	countries *MockCountryRepository
	states    *MockStateRepository
	variants  *MockVariantRepository
	orders    *MockOrderRepository
	shipping  *MockShippingMethodRepository
	payments  *MockPaymentMethodRepository
	taxRates  *MockTaxRateRepository
}

func newImportMocks() *importMocks {
	return &importMocks{
		countries: new(MockCountryRepository),
		states:    new(MockStateRepository),
		variants:  new(MockVariantRepository),
		orders:    new(MockOrderRepository),
		shipping:  new(MockShippingMethodRepository),
		payments:  new(MockPaymentMethodRepository),
		taxRates:  new(MockTaxRateRepository),
	}
}

func (m *importMocks) scope() *NoOpTransactionScope {
	return NewNoOpTransactionScope(m.orders, m.variants, m.shipping, m.payments, m.taxRates)
}

func (m *importMocks) assertExpectations(t mock.TestingT) {
	m.countries.AssertExpectations(t)
	m.states.AssertExpectations(t)
	m.variants.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.shipping.AssertExpectations(t)
	m.payments.AssertExpectations(t)
	m.taxRates.AssertExpectations(t)
}
