package geo

import (
	"context"
)

// CountryRepository looks up countries. FindOne returns shared.ErrNotFound when nothing matches.
type CountryRepository interface {
	FindOne(ctx context.Context, criteria CountryCriteria) (*Country, error)
	Save(ctx context.Context, country *Country) error
}

// StateRepository looks up states. FindOne returns shared.ErrNotFound when nothing matches.
type StateRepository interface {
	FindOne(ctx context.Context, criteria StateCriteria) (*State, error)
	Save(ctx context.Context, state *State) error
}
