package models

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/geo"
)

// CountryModel is the persistence model for countries
type CountryModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	Name           string    `gorm:"type:varchar(100);not null;index"`
	ISOName        string    `gorm:"column:iso_name;type:varchar(100);not null"`
	ISO            string    `gorm:"column:iso;type:varchar(2);not null;uniqueIndex"`
	ISO3           string    `gorm:"column:iso3;type:varchar(3);not null;uniqueIndex"`
	NumCode        int       `gorm:"column:numcode"`
	StatesRequired bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (CountryModel) TableName() string {
	return "countries"
}

// ToDomain converts the persistence model to a domain Country
func (m *CountryModel) ToDomain() *geo.Country {
	return &geo.Country{
		ID:             m.ID,
		Name:           m.Name,
		ISOName:        m.ISOName,
		ISO:            m.ISO,
		ISO3:           m.ISO3,
		NumCode:        m.NumCode,
		StatesRequired: m.StatesRequired,
	}
}

// CountryModelFromDomain creates a persistence model from a domain Country
func CountryModelFromDomain(c *geo.Country) *CountryModel {
	return &CountryModel{
		ID:             c.ID,
		Name:           c.Name,
		ISOName:        c.ISOName,
		ISO:            c.ISO,
		ISO3:           c.ISO3,
		NumCode:        c.NumCode,
		StatesRequired: c.StatesRequired,
	}
}

// StateModel is the persistence model for states and provinces
type StateModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CountryID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Abbr      string    `gorm:"type:varchar(10);not null"`
}

// TableName returns the table name for GORM
func (StateModel) TableName() string {
	return "states"
}

// ToDomain converts the persistence model to a domain State
func (m *StateModel) ToDomain() *geo.State {
	return &geo.State{
		ID:        m.ID,
		CountryID: m.CountryID,
		Name:      m.Name,
		Abbr:      m.Abbr,
	}
}

// StateModelFromDomain creates a persistence model from a domain State
func StateModelFromDomain(s *geo.State) *StateModel {
	return &StateModel{
		ID:        s.ID,
		CountryID: s.CountryID,
		Name:      s.Name,
		Abbr:      s.Abbr,
	}
}
