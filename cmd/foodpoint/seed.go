// Copyright (c) 2025 Foodpoint Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"
	"errors"

	"github.com/foodpoint/foodpoint/app"
	"github.com/foodpoint/foodpoint/store"
)

// seed loads a small sample data set. It is safe to run repeatedly,
// records that already exist are left untouched.
func seed(ctx context.Context, s app.Store) error {
	dessert, err := ensureCategory(ctx, s, "Dessert", "Sweet dishes served after the main course.")
	if err != nil {
		return err
	}
	mainCourse, err := ensureCategory(ctx, s, "Main course", "The primary dish of a meal.")
	if err != nil {
		return err
	}

	finnish, err := ensureEthnicity(ctx, s, "Finnish", "Traditional Finnish cuisine.")
	if err != nil {
		return err
	}
	_, err = ensureEthnicity(ctx, s, "Italian", "Traditional Italian cuisine.")
	if err != nil {
		return err
	}

	user, err := ensureUser(ctx, s, "John Doe", "johnd")
	if err != nil {
		return err
	}

	favourites, err := ensureCollection(ctx, s, user, "Favourites", "Recipes worth making again.")
	if err != nil {
		return err
	}

	existing, err := s.ListRecipes(ctx, favourites.ID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	rating := 4.5
	recipes := []store.Recipe{
		{
			Title:       "Korvapuusti",
			Description: "Cinnamon rolls with cardamom.",
			Ingredients: "flour, butter, sugar, cinnamon, cardamom",
			Rating:      &rating,
			CategoryID:  dessert.ID,
			EthnicityID: finnish.ID,
		},
		{
			Title:       "Lohikeitto",
			Description: "Creamy salmon soup.",
			Ingredients: "salmon, potato, leek, cream, dill",
			CategoryID:  mainCourse.ID,
			EthnicityID: finnish.ID,
		},
	}
	for _, r := range recipes {
		_, err = s.CreateRecipe(ctx, favourites.ID, r)
		if err != nil {
			return err
		}
	}
	return nil
}

func ensureCategory(ctx context.Context, s app.Store, name, description string) (store.Category, error) {
	c, err := s.FindCategory(ctx, name)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return store.Category{}, err
	}
	return s.CreateCategory(ctx, store.Category{
		Name:        name,
		Description: description,
	})
}

func ensureEthnicity(ctx context.Context, s app.Store, name, description string) (store.Ethnicity, error) {
	e, err := s.FindEthnicity(ctx, name)
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return store.Ethnicity{}, err
	}
	return s.CreateEthnicity(ctx, store.Ethnicity{
		Name:        name,
		Description: description,
	})
}

func ensureUser(ctx context.Context, s app.Store, name, userName string) (store.User, error) {
	u, err := s.FindUser(ctx, userName)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return store.User{}, err
	}
	return s.CreateUser(ctx, store.User{
		Name:     name,
		UserName: userName,
	})
}

func ensureCollection(ctx context.Context, s app.Store, u store.User, name, description string) (store.Collection, error) {
	c, err := s.FindCollection(ctx, u.ID, name)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return store.Collection{}, err
	}
	return s.CreateCollection(ctx, store.Collection{
		Name:        name,
		Description: description,
		UserID:      u.ID,
	})
}
