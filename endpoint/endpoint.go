// Copyright (c) 2025 Foodpoint Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package endpoint implements the HTTP operations of the Foodpoint API.
//
// Every resource is served as a Mason document under /api/ with
// trailing slash routes. Hypermedia controls use the "fpoint" curie
// prefix which resolves against the link relations url.
package endpoint

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/foodpoint/foodpoint/rest"
	"github.com/foodpoint/foodpoint/store"
)

// Namespace is the curie prefix used by all Foodpoint controls.
const Namespace = "fpoint"

// LinkRelationsURL is where the fpoint curie prefix resolves to.
const LinkRelationsURL = "/foodpoint/link-relations/"

// Profile urls attached to resource representations.
const (
	ErrorProfile      = rest.ErrorProfile
	UserProfile       = "/profiles/user/"
	CollectionProfile = "/profiles/collection/"
	RecipeProfile     = "/profiles/recipe/"
	CategoryProfile   = "/profiles/category/"
	EthnicityProfile  = "/profiles/ethnicity/"
)

// Options holds behaviour toggles shared by the edit endpoints.
type Options struct {
	clearOmitted bool
	redirectBase string
}

// Option configures endpoint behaviour.
type Option func(*Options)

// ClearOmittedFields makes PUT treat omitted optional fields as
// clearing the stored value instead of leaving it unchanged.
func ClearOmittedFields() Option {
	return func(o *Options) {
		o.clearOmitted = true
	}
}

// RedirectTo makes the link relation and profile endpoints redirect
// to the given documentation site instead of serving a document.
func RedirectTo(base string) Option {
	return func(o *Options) {
		o.redirectBase = base
	}
}

func buildOptions(opts []Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func usersHref() string {
	return "/api/users/"
}

func userHref(userName string) string {
	return usersHref() + url.PathEscape(userName) + "/"
}

func collectionsHref(userName string) string {
	return userHref(userName) + "collections/"
}

func collectionHref(userName, name string) string {
	return collectionsHref(userName) + url.PathEscape(name) + "/"
}

func recipeHref(userName, collection string, recipeID int64) string {
	return collectionHref(userName, collection) + strconv.FormatInt(recipeID, 10) + "/"
}

func categoriesHref() string {
	return "/api/categories/"
}

func categoryHref(name string) string {
	return categoriesHref() + url.PathEscape(name) + "/"
}

func ethnicitiesHref() string {
	return "/api/ethnicities/"
}

func ethnicityHref(name string) string {
	return ethnicitiesHref() + url.PathEscape(name) + "/"
}

func findUser(ctx context.Context, s UserStore, userName string) (store.User, error) {
	u, err := s.FindUser(ctx, userName)
	if errors.Is(err, store.ErrNotFound) {
		return store.User{}, rest.NotFoundError{Title: "User not found"}
	}
	return u, err
}

func findCollection(ctx context.Context, s CollectionStore, userID int64, name string) (store.Collection, error) {
	c, err := s.FindCollection(ctx, userID, name)
	if errors.Is(err, store.ErrNotFound) {
		return store.Collection{}, rest.NotFoundError{Title: "Collection not found"}
	}
	return c, err
}

func findRecipe(ctx context.Context, s RecipeStore, collectionID int64, rawID string) (store.Recipe, error) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return store.Recipe{}, rest.NotFoundError{Title: "Recipe not found"}
	}

	r, err := s.FindRecipe(ctx, collectionID, id)
	if errors.Is(err, store.ErrNotFound) {
		return store.Recipe{}, rest.NotFoundError{Title: "Recipe not found"}
	}
	return r, err
}

func notFoundCategory(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return rest.NotFoundError{Title: "Category not found"}
	}
	return err
}

func notFoundEthnicity(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return rest.NotFoundError{Title: "Ethnicity not found"}
	}
	return err
}

func mapUnique(err error, detail string) error {
	var uve store.UniqueViolationError
	if errors.As(err, &uve) {
		return rest.AlreadyExistsError{Detail: detail}
	}
	return err
}

func describe(kind, name string) string {
	return fmt.Sprintf("%s with name %s already exists.", kind, name)
}

// stringOr resolves an optional request field against the value a PUT
// should fall back to when the field is omitted.
func stringOr(p *string, fallback string) string {
	if p != nil {
		return *p
	}
	return fallback
}
