// Copyright (c) 2025 Foodpoint Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package endpoint

import (
	"context"

	"github.com/foodpoint/foodpoint/store"
)

// UserStore provides persistence for user accounts.
type UserStore interface {
	ListUsers(ctx context.Context) ([]store.User, error)
	FindUser(ctx context.Context, userName string) (store.User, error)
	CreateUser(ctx context.Context, u store.User) (store.User, error)
	UpdateUser(ctx context.Context, id int64, u store.User) error
	DeleteUser(ctx context.Context, id int64) error
}

// CollectionStore provides persistence for per user recipe collections.
type CollectionStore interface {
	ListCollections(ctx context.Context, userID int64) ([]store.Collection, error)
	FindCollection(ctx context.Context, userID int64, name string) (store.Collection, error)
	CreateCollection(ctx context.Context, c store.Collection) (store.Collection, error)
	UpdateCollection(ctx context.Context, id int64, c store.Collection) error
	DeleteCollection(ctx context.Context, id int64) error
}

// RecipeStore provides persistence for recipes and their collection
// memberships.
type RecipeStore interface {
	ListRecipes(ctx context.Context, collectionID int64) ([]store.Recipe, error)
	FindRecipe(ctx context.Context, collectionID, recipeID int64) (store.Recipe, error)
	CreateRecipe(ctx context.Context, collectionID int64, r store.Recipe) (store.Recipe, error)
	UpdateRecipe(ctx context.Context, id int64, r store.Recipe) error
	DeleteRecipe(ctx context.Context, id int64) error
}

// CategoryStore provides persistence for recipe categories.
type CategoryStore interface {
	ListCategories(ctx context.Context) ([]store.Category, error)
	FindCategory(ctx context.Context, name string) (store.Category, error)
	CreateCategory(ctx context.Context, c store.Category) (store.Category, error)
	UpdateCategory(ctx context.Context, id int64, c store.Category) error
}

// EthnicityStore provides persistence for recipe ethnicities.
type EthnicityStore interface {
	ListEthnicities(ctx context.Context) ([]store.Ethnicity, error)
	FindEthnicity(ctx context.Context, name string) (store.Ethnicity, error)
	CreateEthnicity(ctx context.Context, e store.Ethnicity) (store.Ethnicity, error)
	UpdateEthnicity(ctx context.Context, id int64, e store.Ethnicity) error
}
