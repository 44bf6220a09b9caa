package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var upsertByID = clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}

// GormOrderRepository implements order.OrderRepository using GORM.
// The header and each child table are written separately.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create inserts the order header
func (r *GormOrderRepository) Create(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(models.OrderModelFromDomain(o)).Error
}

// Save updates the order header, addresses and totals
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(models.OrderModelFromDomain(o)).Error
}

// Delete removes the order and all of its child rows
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		children := []any{
			&models.InventoryUnitModel{},
			&models.AdjustmentModel{},
			&models.PaymentModel{},
			&models.ShipmentModel{},
			&models.LineItemModel{},
		}
		for _, child := range children {
			if err := tx.Where("order_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).Delete(&models.OrderModel{}).Error
	})
}

func byCreation(db *gorm.DB) *gorm.DB {
	return db.Order("created_at, id")
}

// FindByID loads the order with line items, shipments and their units,
// payments and adjustments
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("LineItems", byCreation).
		Preload("Shipments", byCreation).
		Preload("Shipments.InventoryUnits", byCreation).
		Preload("Payments", byCreation).
		Preload("Adjustments", byCreation).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SaveLineItem inserts the line item or updates its quantity and price
func (r *GormOrderRepository) SaveLineItem(ctx context.Context, item *order.LineItem) error {
	return r.db.WithContext(ctx).
		Clauses(upsertByID).
		Create(models.LineItemModelFromDomain(item)).Error
}

// SaveShipment writes the shipment row, its inventory units and its cost adjustment
func (r *GormOrderRepository) SaveShipment(ctx context.Context, s *order.Shipment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(upsertByID).Create(models.ShipmentModelFromDomain(s)).Error; err != nil {
			return err
		}
		if len(s.InventoryUnits) > 0 {
			units := make([]*models.InventoryUnitModel, len(s.InventoryUnits))
			for i := range s.InventoryUnits {
				units[i] = models.InventoryUnitModelFromDomain(&s.InventoryUnits[i])
			}
			if err := tx.Clauses(upsertByID).Create(&units).Error; err != nil {
				return err
			}
		}
		if s.CostAdjustment != nil {
			return tx.Clauses(upsertByID).Create(models.AdjustmentModelFromDomain(s.CostAdjustment)).Error
		}
		return nil
	})
}

func (r *GormOrderRepository) SavePayment(ctx context.Context, p *order.Payment) error {
	return r.db.WithContext(ctx).
		Clauses(upsertByID).
		Create(models.PaymentModelFromDomain(p)).Error
}

func (r *GormOrderRepository) SaveAdjustment(ctx context.Context, a *order.Adjustment) error {
	return r.db.WithContext(ctx).
		Clauses(upsertByID).
		Create(models.AdjustmentModelFromDomain(a)).Error
}

// DeleteTaxAdjustments removes the tax adjustments of the order
func (r *GormOrderRepository) DeleteTaxAdjustments(ctx context.Context, orderID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("order_id = ? AND source = ?", orderID, string(order.SourceTax)).
		Delete(&models.AdjustmentModel{})
	return result.RowsAffected, result.Error
}

var _ order.OrderRepository = (*GormOrderRepository)(nil)
