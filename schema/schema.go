// Copyright (c) 2025 Foodpoint Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package schema defines the request body documents accepted by the API
// along with their JSON schemas. The same schema backs three surfaces:
// request validation, the schema property of Mason controls and the
// OpenAPI definition.
package schema

import (
	"github.com/swaggest/jsonschema-go"
)

// User is the document accepted when creating or editing a user.
type User struct {
	Name     string `json:"name" required:"true" description:"Name of the user"`
	UserName string `json:"userName" required:"true" description:"Unique user name used in resource urls"`
}

// Collection is the document accepted when creating or editing a
// recipe collection.
type Collection struct {
	Name        string  `json:"name" required:"true" description:"Name of the collection"`
	Description *string `json:"description,omitempty" description:"Description of the collection"`
}

// Category is the document accepted when creating or editing a category.
type Category struct {
	Name        string  `json:"name" required:"true" description:"Name of the category"`
	Description *string `json:"description,omitempty" description:"Description of the category"`
}

// Ethnicity is the document accepted when creating or editing an ethnicity.
type Ethnicity struct {
	Name        string  `json:"name" required:"true" description:"Name of the ethnicity"`
	Description *string `json:"description,omitempty" description:"Description of the ethnicity"`
}

// Recipe is the document accepted when creating or editing a recipe.
// Category and ethnicity are referenced by name.
type Recipe struct {
	Title       string   `json:"title" required:"true" description:"Title of the recipe"`
	Description string   `json:"description" required:"true" description:"Description of the recipe"`
	Ingredients string   `json:"ingredients" required:"true" description:"Ingredients of the recipe"`
	Rating      *float64 `json:"rating,omitempty" description:"Rating of the recipe"`
	Ethnicity   string   `json:"ethnicity" required:"true" description:"Name of an existing ethnicity"`
	Category    string   `json:"category" required:"true" description:"Name of an existing category"`
}

func reflectSchema(v any) *jsonschema.Schema {
	var reflector jsonschema.Reflector

	s, err := reflector.Reflect(v, jsonschema.InlineRefs)
	if err != nil {
		panic(err)
	}
	return &s
}
