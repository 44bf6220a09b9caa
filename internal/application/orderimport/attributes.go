package orderimport

import (
	"bytes"
	"encoding/json"
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/storefront/backend/internal/domain/order"
)

// restrictedAttributes are the order fields any caller may set
type restrictedAttributes struct {
	Email               *string `json:"email" validate:"omitempty,email,max=255"`
	SpecialInstructions *string `json:"special_instructions" validate:"omitempty,max=1000"`
	Currency            *string `json:"currency" validate:"omitempty,len=3,uppercase"`
}

// adminAttributes are the full attribute set, available to admin callers only
type adminAttributes struct {
	restrictedAttributes
	Channel *string `json:"channel" validate:"omitempty,min=1,max=50"`
	State   *string `json:"state" validate:"omitempty,oneof=cart address delivery payment confirm complete canceled returned"`
	Number  *string `json:"number" validate:"omitempty,min=1,max=32"`
}

func (a *restrictedAttributes) apply(o *order.Order) {
	if a.Email != nil {
		o.Email = *a.Email
	}
	if a.SpecialInstructions != nil {
		o.SpecialInstructions = *a.SpecialInstructions
	}
	if a.Currency != nil {
		o.Currency = *a.Currency
	}
}

func (a *adminAttributes) apply(o *order.Order) {
	a.restrictedAttributes.apply(o)
	if a.Channel != nil {
		o.Channel = *a.Channel
	}
	if a.State != nil {
		o.State = order.State(*a.State)
	}
	if a.Number != nil {
		o.Number = *a.Number
	}
}

var (
	restrictedAttributeKeys = jsonKeys(reflect.TypeOf(restrictedAttributes{}))
	adminAttributeKeys      = jsonKeys(reflect.TypeOf(adminAttributes{}))
)

// AttributeSchema assigns top-level payload attributes to an order
type AttributeSchema struct {
	admin    bool
	validate *validator.Validate
}

// SchemaFor selects the restricted or full schema for the caller
func SchemaFor(caller Caller, validate *validator.Validate) *AttributeSchema {
	return &AttributeSchema{admin: caller.IsAdmin(), validate: validate}
}

// Keys returns the attribute names the schema accepts
func (s *AttributeSchema) Keys() []string {
	if s.admin {
		return slices.Clone(adminAttributeKeys)
	}
	return slices.Clone(restrictedAttributeKeys)
}

// Apply decodes, validates and assigns attrs. Unknown keys and keys outside
// the caller's schema fail with ValidationFailed; nothing is assigned then.
func (s *AttributeSchema) Apply(o *order.Order, attrs map[string]json.RawMessage) error {
	if len(attrs) == 0 {
		return nil
	}

	allowed := s.Keys()
	for _, key := range sortedKeys(attrs) {
		if slices.Contains(allowed, key) {
			continue
		}
		if slices.Contains(adminAttributeKeys, key) {
			return &Error{Kind: KindValidationFailed, Criteria: key, Err: ErrAttributeForbidden}
		}
		return &Error{Kind: KindValidationFailed, Criteria: key, Err: ErrUnknownAttribute}
	}

	raw, err := json.Marshal(attrs)
	if err != nil {
		return newError(KindValidationFailed, nil, err)
	}

	if s.admin {
		var full adminAttributes
		if err := s.decode(raw, &full); err != nil {
			return err
		}
		full.apply(o)
		return nil
	}

	var restricted restrictedAttributes
	if err := s.decode(raw, &restricted); err != nil {
		return err
	}
	restricted.apply(o)
	return nil
}

func (s *AttributeSchema) decode(raw []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return newError(KindValidationFailed, nil, err)
	}
	if err := s.validate.Struct(dst); err != nil {
		return newError(KindValidationFailed, nil, err)
	}
	return nil
}

// NewValidator returns a validator that reports JSON field names
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func jsonKeys(t reflect.Type) []string {
	var keys []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous {
			keys = append(keys, jsonKeys(f.Type)...)
			continue
		}
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name != "" && name != "-" {
			keys = append(keys, name)
		}
	}
	return keys
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
