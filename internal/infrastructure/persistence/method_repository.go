package persistence

import (
	"context"
	"errors"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormShippingMethodRepository implements order.ShippingMethodRepository using GORM
type GormShippingMethodRepository struct {
	db *gorm.DB
}

// NewGormShippingMethodRepository creates a new GormShippingMethodRepository
func NewGormShippingMethodRepository(db *gorm.DB) *GormShippingMethodRepository {
	return &GormShippingMethodRepository{db: db}
}

// FindByName finds a shipping method by its exact name
func (r *GormShippingMethodRepository) FindByName(ctx context.Context, name string) (*order.ShippingMethod, error) {
	var model models.ShippingMethodModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormShippingMethodRepository) Save(ctx context.Context, method *order.ShippingMethod) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(models.ShippingMethodModelFromDomain(method)).Error
}

// GormPaymentMethodRepository implements order.PaymentMethodRepository using GORM
type GormPaymentMethodRepository struct {
	db *gorm.DB
}

// NewGormPaymentMethodRepository creates a new GormPaymentMethodRepository
func NewGormPaymentMethodRepository(db *gorm.DB) *GormPaymentMethodRepository {
	return &GormPaymentMethodRepository{db: db}
}

// FindByName finds a payment method by its exact name
func (r *GormPaymentMethodRepository) FindByName(ctx context.Context, name string) (*order.PaymentMethod, error) {
	var model models.PaymentMethodModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormPaymentMethodRepository) Save(ctx context.Context, method *order.PaymentMethod) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(models.PaymentMethodModelFromDomain(method)).Error
}

// GormTaxRateRepository implements order.TaxRateRepository using GORM
type GormTaxRateRepository struct {
	db *gorm.DB
}

// NewGormTaxRateRepository creates a new GormTaxRateRepository
func NewGormTaxRateRepository(db *gorm.DB) *GormTaxRateRepository {
	return &GormTaxRateRepository{db: db}
}

// FindAll returns every tax rate ordered by name
func (r *GormTaxRateRepository) FindAll(ctx context.Context) ([]order.TaxRate, error) {
	var rows []models.TaxRateModel
	if err := r.db.WithContext(ctx).Order("name, id").Find(&rows).Error; err != nil {
		return nil, err
	}
	rates := make([]order.TaxRate, len(rows))
	for i := range rows {
		rates[i] = *rows[i].ToDomain()
	}
	return rates, nil
}

func (r *GormTaxRateRepository) Save(ctx context.Context, rate *order.TaxRate) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(models.TaxRateModelFromDomain(rate)).Error
}

var _ order.ShippingMethodRepository = (*GormShippingMethodRepository)(nil)
var _ order.PaymentMethodRepository = (*GormPaymentMethodRepository)(nil)
var _ order.TaxRateRepository = (*GormTaxRateRepository)(nil)
