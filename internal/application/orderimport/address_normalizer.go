package orderimport

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// AddressNormalizer replaces country and state descriptors in an address
// payload with resolved ids
type AddressNormalizer struct {
	lookup *ReferenceLookup
}

// NewAddressNormalizer creates an AddressNormalizer
func NewAddressNormalizer(lookup *ReferenceLookup) *AddressNormalizer {
	return &AddressNormalizer{lookup: lookup}
}

// Normalize returns a normalized copy of addr; addr itself is left untouched.
// A nil address normalizes to nil.
func (n *AddressNormalizer) Normalize(ctx context.Context, addr *AddressPayload) (*AddressPayload, error) {
	if addr == nil {
		return nil, nil
	}
	out := addr.Clone()

	if out.CountryID == nil && len(out.Country) > 0 {
		id, err := n.lookup.ResolveCountry(ctx, out.Country)
		if err != nil {
			return nil, &Error{
				Kind:     KindAddressResolutionFailed,
				Criteria: "country " + describe(out.Country),
				Err:      err,
			}
		}
		out.CountryID = &id
		out.Country = nil
	}

	if out.StateID == nil && len(out.State) > 0 {
		countryID := uuid.Nil
		if out.CountryID != nil {
			countryID = *out.CountryID
		}
		res, err := n.lookup.ResolveState(ctx, countryID, out.State)
		if err != nil {
			return nil, &Error{
				Kind:     KindAddressResolutionFailed,
				Criteria: "state " + describe(out.State),
				Err:      err,
			}
		}
		out.State = nil
		if res.StateID != nil {
			out.StateID = res.StateID
		} else if res.StateName != "" {
			out.StateName = res.StateName
		}
	}

	return out, nil
}

// describe renders a descriptor as sorted key=value pairs
func describe(d Descriptor) string {
	parts := make([]string, 0, len(d))
	for _, k := range sortedKeys(d) {
		parts = append(parts, k+"="+d[k])
	}
	return "{" + strings.Join(parts, " ") + "}"
}
