package orderimport

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/geo"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// ErrNoLookupField is returned when a descriptor carries none of the lookup keys
var ErrNoLookupField = errors.New("descriptor has no lookup field")

type countryField struct {
	field     geo.CountryField
	transform func(string) string
}

type stateField struct {
	field     geo.StateField
	transform func(string) string
}

// Descriptor keys are tried in this order and only the first present one is used.
var (
	countryFields = []countryField{
		{field: geo.CountryFieldName, transform: normalizeName},
		{field: geo.CountryFieldISOName, transform: normalizeCode},
		{field: geo.CountryFieldISO, transform: normalizeCode},
		{field: geo.CountryFieldISO3, transform: normalizeCode},
	}
	stateFields = []stateField{
		{field: geo.StateFieldName, transform: normalizeName},
		{field: geo.StateFieldAbbr, transform: normalizeCode},
	}
)

func normalizeName(s string) string {
	return norm.NFC.String(s)
}

func normalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// StateResolution is the outcome of a state lookup: either a state id or,
// when no state record matches, a free-text name
type StateResolution struct {
	StateID   *uuid.UUID
	StateName string
}

// ReferenceLookup resolves country and state descriptors to ids
type ReferenceLookup struct {
	countries geo.CountryRepository
	states    geo.StateRepository
	cache     ReferenceCache
	logger    *zap.Logger
}

// ReferenceLookupOption configures a ReferenceLookup
type ReferenceLookupOption func(*ReferenceLookup)

// WithReferenceCache caches resolved country ids
func WithReferenceCache(cache ReferenceCache) ReferenceLookupOption {
	return func(l *ReferenceLookup) {
		l.cache = cache
	}
}

// WithLookupLogger sets the logger used for cache failures
func WithLookupLogger(logger *zap.Logger) ReferenceLookupOption {
	return func(l *ReferenceLookup) {
		l.logger = logger
	}
}

// NewReferenceLookup creates a ReferenceLookup
func NewReferenceLookup(countries geo.CountryRepository, states geo.StateRepository, opts ...ReferenceLookupOption) *ReferenceLookup {
	l := &ReferenceLookup{
		countries: countries,
		states:    states,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CountryCriteria builds the search for a country descriptor from the first present field
func CountryCriteria(desc Descriptor) (geo.CountryCriteria, bool) {
	for _, f := range countryFields {
		if v, ok := desc.Present(string(f.field)); ok {
			return geo.CountryCriteria{Field: f.field, Value: f.transform(v)}, true
		}
	}
	return geo.CountryCriteria{}, false
}

// ResolveCountry returns the id of the country matching the descriptor.
// A miss is a ReferenceNotFound error.
func (l *ReferenceLookup) ResolveCountry(ctx context.Context, desc Descriptor) (uuid.UUID, error) {
	criteria, ok := CountryCriteria(desc)
	if !ok {
		return uuid.Nil, notFound(KindReferenceNotFound, "country", ErrNoLookupField)
	}

	key := countryCacheKey(criteria)
	if l.cache != nil {
		id, hit, err := l.cache.GetID(ctx, key)
		if err != nil {
			l.logger.Warn("reference cache read failed", zap.String("key", key), zap.Error(err))
		} else if hit {
			return id, nil
		}
	}

	country, err := l.countries.FindOne(ctx, criteria)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return uuid.Nil, notFound(KindReferenceNotFound, criteria.String(), err)
		}
		return uuid.Nil, fmt.Errorf("find country [%s]: %w", criteria, err)
	}

	if l.cache != nil {
		if err := l.cache.SetID(ctx, key, country.ID); err != nil {
			l.logger.Warn("reference cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return country.ID, nil
}

// ResolveState looks the descriptor up within the country. A miss is not an
// error: the supplied name, or the upper-cased abbr, comes back as StateName.
// A descriptor without lookup fields resolves to nothing.
func (l *ReferenceLookup) ResolveState(ctx context.Context, countryID uuid.UUID, desc Descriptor) (StateResolution, error) {
	for _, f := range stateFields {
		raw, ok := desc.Present(string(f.field))
		if !ok {
			continue
		}
		criteria := geo.StateCriteria{CountryID: countryID, Field: f.field, Value: f.transform(raw)}
		fallback := raw
		if f.field == geo.StateFieldAbbr {
			fallback = criteria.Value
		}
		if countryID == uuid.Nil {
			return StateResolution{StateName: fallback}, nil
		}

		state, err := l.states.FindOne(ctx, criteria)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return StateResolution{StateName: fallback}, nil
			}
			return StateResolution{}, fmt.Errorf("find state [%s]: %w", criteria, err)
		}
		id := state.ID
		return StateResolution{StateID: &id}, nil
	}
	return StateResolution{}, nil
}

func countryCacheKey(c geo.CountryCriteria) string {
	return "geo:country:" + string(c.Field) + ":" + c.Value
}
