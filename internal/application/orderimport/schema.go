package orderimport

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/order_import.schema.json
var payloadSchemaJSON []byte

const payloadSchemaURL = "https://storefront.schemas.local/order-import.schema.json"

// PayloadValidator checks the structural shape of a raw import document
type PayloadValidator struct {
	schema *jsonschema.Schema
}

// NewPayloadValidator compiles the embedded import payload schema
func NewPayloadValidator() (*PayloadValidator, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	c.AssertFormat = true
	if err := c.AddResource(payloadSchemaURL, bytes.NewReader(payloadSchemaJSON)); err != nil {
		return nil, fmt.Errorf("order import schema load failed: %w", err)
	}
	compiled, err := c.Compile(payloadSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("order import schema compile failed: %w", err)
	}
	return &PayloadValidator{schema: compiled}, nil
}

// MustPayloadValidator is NewPayloadValidator for wiring code; the schema is embedded
// so a failure is a build defect
func MustPayloadValidator() *PayloadValidator {
	v, err := NewPayloadValidator()
	if err != nil {
		panic(err)
	}
	return v
}

// Validate returns a ValidationFailed error when raw is not a well-formed import document
func (v *PayloadValidator) Validate(raw []byte) error {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return validationFailed("malformed payload: %w", err)
	}
	if err := v.schema.Validate(doc); err != nil {
		return &Error{Kind: KindValidationFailed, Criteria: "schema", Err: err}
	}
	return nil
}
