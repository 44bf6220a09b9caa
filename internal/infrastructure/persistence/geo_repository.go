package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/storefront/backend/internal/domain/geo"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCountryRepository implements geo.CountryRepository using GORM
type GormCountryRepository struct {
	db *gorm.DB
}

// NewGormCountryRepository creates a new GormCountryRepository
func NewGormCountryRepository(db *gorm.DB) *GormCountryRepository {
	return &GormCountryRepository{db: db}
}

// FindOne returns the first country whose criteria column equals the value exactly
func (r *GormCountryRepository) FindOne(ctx context.Context, criteria geo.CountryCriteria) (*geo.Country, error) {
	if !criteria.Field.IsValid() {
		return nil, fmt.Errorf("unsupported country field %q", criteria.Field)
	}
	var model models.CountryModel
	if err := r.db.WithContext(ctx).
		Where(string(criteria.Field)+" = ?", criteria.Value).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a country
func (r *GormCountryRepository) Save(ctx context.Context, country *geo.Country) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(models.CountryModelFromDomain(country)).Error
}

// GormStateRepository implements geo.StateRepository using GORM
type GormStateRepository struct {
	db *gorm.DB
}

// NewGormStateRepository creates a new GormStateRepository
func NewGormStateRepository(db *gorm.DB) *GormStateRepository {
	return &GormStateRepository{db: db}
}

// FindOne returns the first state of the country whose criteria column equals the value
func (r *GormStateRepository) FindOne(ctx context.Context, criteria geo.StateCriteria) (*geo.State, error) {
	if !criteria.Field.IsValid() {
		return nil, fmt.Errorf("unsupported state field %q", criteria.Field)
	}
	var model models.StateModel
	if err := r.db.WithContext(ctx).
		Where("country_id = ?", criteria.CountryID).
		Where(string(criteria.Field)+" = ?", criteria.Value).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a state
func (r *GormStateRepository) Save(ctx context.Context, state *geo.State) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(models.StateModelFromDomain(state)).Error
}

var _ geo.CountryRepository = (*GormCountryRepository)(nil)
var _ geo.StateRepository = (*GormStateRepository)(nil)
