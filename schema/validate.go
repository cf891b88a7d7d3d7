// Copyright (c) 2025 Foodpoint Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package schema

import (
	"bytes"
	"encoding/json"

	jsv "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/swaggest/jsonschema-go"
)

// Validators for every document type the API accepts.
var (
	Users       = NewValidator[User]()
	Collections = NewValidator[Collection]()
	Categories  = NewValidator[Category]()
	Ethnicities = NewValidator[Ethnicity]()
	Recipes     = NewValidator[Recipe]()
)

// Validator decodes raw JSON into T after validating it against
// the JSON schema reflected from T.
type Validator[T any] struct {
	schema   *jsonschema.Schema
	compiled *jsv.Schema
}

// NewValidator initializes a [Validator] for T. It panics if the
// reflected schema fails to compile, which can only happen due to
// a programming error in the document type definition.
func NewValidator[T any]() *Validator[T] {
	var t T
	s := reflectSchema(t)

	b, err := json.Marshal(s)
	if err != nil {
		panic(err)
	}

	compiler := jsv.NewCompiler()
	err = compiler.AddResource("schema.json", bytes.NewReader(b))
	if err != nil {
		panic(err)
	}

	return &Validator[T]{
		schema:   s,
		compiled: compiler.MustCompile("schema.json"),
	}
}

// Schema returns the JSON schema for T.
func (v *Validator[T]) Schema() *jsonschema.Schema {
	return v.schema
}

// Decode validates raw JSON against the schema for T and unmarshals
// it into T. Malformed JSON and documents which fail validation both
// return an error.
func (v *Validator[T]) Decode(b []byte) (T, error) {
	var t T

	var raw any
	err := json.Unmarshal(b, &raw)
	if err != nil {
		return t, err
	}

	err = v.compiled.Validate(raw)
	if err != nil {
		return t, err
	}

	err = json.Unmarshal(b, &t)
	if err != nil {
		return t, err
	}
	return t, nil
}
