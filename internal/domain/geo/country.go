package geo

import (
	"strings"

	"github.com/google/uuid"
)

// Country is reference data identified by name or one of its ISO codes
type Country struct {
	ID             uuid.UUID
	Name           string
	ISOName        string // upper-case English short name, e.g. "UNITED STATES"
	ISO            string // ISO 3166-1 alpha-2
	ISO3           string // ISO 3166-1 alpha-3
	NumCode        int
	StatesRequired bool
}

// State is a first-level subdivision of a Country
type State struct {
	ID        uuid.UUID
	CountryID uuid.UUID
	Name      string
	Abbr      string
}

// CountryField names a column a country can be looked up by
type CountryField string

const (
	CountryFieldName    CountryField = "name"
	CountryFieldISOName CountryField = "iso_name"
	CountryFieldISO     CountryField = "iso"
	CountryFieldISO3    CountryField = "iso3"
)

// IsValid checks if the field is a known lookup column
func (f CountryField) IsValid() bool {
	switch f {
	case CountryFieldName, CountryFieldISOName, CountryFieldISO, CountryFieldISO3:
		return true
	}
	return false
}

// StateField names a column a state can be looked up by
type StateField string

const (
	StateFieldName StateField = "name"
	StateFieldAbbr StateField = "abbr"
)

// IsValid checks if the field is a known lookup column
func (f StateField) IsValid() bool {
	return f == StateFieldName || f == StateFieldAbbr
}

// CountryCriteria is an exact-match lookup on a single country column
type CountryCriteria struct {
	Field CountryField
	Value string
}

func (c CountryCriteria) String() string {
	return string(c.Field) + "=" + c.Value
}

// StateCriteria is an exact-match lookup on a single state column within a country
type StateCriteria struct {
	CountryID uuid.UUID
	Field     StateField
	Value     string
}

func (c StateCriteria) String() string {
	var b strings.Builder
	b.WriteString("country_id=")
	b.WriteString(c.CountryID.String())
	b.WriteString(" ")
	b.WriteString(string(c.Field))
	b.WriteString("=")
	b.WriteString(c.Value)
	return b.String()
}
