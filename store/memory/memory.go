// Copyright (c) 2025 Foodpoint Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package memory implements an in-memory storage driver. It enforces
// the same uniqueness and cascade rules as the postgres driver and
// backs local development and endpoint tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/foodpoint/foodpoint/store"
)

// Store is an in-memory [store] driver. The zero value is not usable,
// use [New].
type Store struct {
	mu sync.Mutex

	nextID int64

	users       map[int64]store.User
	collections map[int64]store.Collection
	recipes     map[int64]store.Recipe
	categories  map[int64]store.Category
	ethnicities map[int64]store.Ethnicity

	// members maps collection id to the set of recipe ids in it.
	members map[int64]map[int64]struct{}
}

// New initializes an empty [Store].
func New() *Store {
	return &Store{
		users:       make(map[int64]store.User),
		collections: make(map[int64]store.Collection),
		recipes:     make(map[int64]store.Recipe),
		categories:  make(map[int64]store.Category),
		ethnicities: make(map[int64]store.Ethnicity),
		members:     make(map[int64]map[int64]struct{}),
	}
}

func (s *Store) nextSerial() int64 {
	s.nextID++
	return s.nextID
}

// Ping implements the same readiness surface as the postgres driver.
func (s *Store) Ping(ctx context.Context) error {
	return nil
}

// ListUsers returns all users ordered by id.
func (s *Store) ListUsers(ctx context.Context) ([]store.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	us := make([]store.User, 0, len(s.users))
	for _, u := range s.users {
		us = append(us, u)
	}
	sort.Slice(us, func(i, j int) bool {
		return us[i].ID < us[j].ID
	})
	return us, nil
}

// FindUser returns the user with the given user name.
func (s *Store) FindUser(ctx context.Context, userName string) (store.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.UserName == userName {
			return u, nil
		}
	}
	return store.User{}, fmt.Errorf("%w: user %q", store.ErrNotFound, userName)
}

// CreateUser inserts a new user.
func (s *Store) CreateUser(ctx context.Context, u store.User) (store.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.UserName == u.UserName {
			return store.User{}, store.UniqueViolationError{Constraint: "users_user_name_key"}
		}
	}

	u.ID = s.nextSerial()
	s.users[u.ID] = u
	return u, nil
}

// UpdateUser replaces the name and user name of an existing user.
func (s *Store) UpdateUser(ctx context.Context, id int64, u store.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[id]
	if !ok {
		return fmt.Errorf("%w: user id %d", store.ErrNotFound, id)
	}

	for _, other := range s.users {
		if other.ID != id && other.UserName == u.UserName {
			return store.UniqueViolationError{Constraint: "users_user_name_key"}
		}
	}

	existing.Name = u.Name
	existing.UserName = u.UserName
	s.users[id] = existing
	return nil
}

// DeleteUser removes a user along with their collections. Recipes in
// those collections are kept.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.users[id]
	if !ok {
		return fmt.Errorf("%w: user id %d", store.ErrNotFound, id)
	}

	delete(s.users, id)
	for cid, c := range s.collections {
		if c.UserID != id {
			continue
		}
		delete(s.collections, cid)
		delete(s.members, cid)
	}
	return nil
}

// ListCollections returns all collections owned by a user, ordered by id.
func (s *Store) ListCollections(ctx context.Context, userID int64) ([]store.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cs := make([]store.Collection, 0)
	for _, c := range s.collections {
		if c.UserID == userID {
			cs = append(cs, c)
		}
	}
	sort.Slice(cs, func(i, j int) bool {
		return cs[i].ID < cs[j].ID
	})
	return cs, nil
}

// FindCollection returns the collection with the given name owned by a user.
func (s *Store) FindCollection(ctx context.Context, userID int64, name string) (store.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.collections {
		if c.UserID == userID && c.Name == name {
			return c, nil
		}
	}
	return store.Collection{}, fmt.Errorf("%w: collection %q", store.ErrNotFound, name)
}

// CreateCollection inserts a new collection. Collection names are
// unique per owner.
func (s *Store) CreateCollection(ctx context.Context, c store.Collection) (store.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.collections {
		if existing.UserID == c.UserID && existing.Name == c.Name {
			return store.Collection{}, store.UniqueViolationError{Constraint: "collections_user_id_name_key"}
		}
	}

	c.ID = s.nextSerial()
	s.collections[c.ID] = c
	s.members[c.ID] = make(map[int64]struct{})
	return c, nil
}

// UpdateCollection replaces the name and description of an existing collection.
func (s *Store) UpdateCollection(ctx context.Context, id int64, c store.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.collections[id]
	if !ok {
		return fmt.Errorf("%w: collection id %d", store.ErrNotFound, id)
	}

	for _, other := range s.collections {
		if other.ID != id && other.UserID == existing.UserID && other.Name == c.Name {
			return store.UniqueViolationError{Constraint: "collections_user_id_name_key"}
		}
	}

	existing.Name = c.Name
	existing.Description = c.Description
	s.collections[id] = existing
	return nil
}

// DeleteCollection removes a collection. Recipes in it are kept.
func (s *Store) DeleteCollection(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.collections[id]
	if !ok {
		return fmt.Errorf("%w: collection id %d", store.ErrNotFound, id)
	}

	delete(s.collections, id)
	delete(s.members, id)
	return nil
}

// ListRecipes returns all recipes in a collection, ordered by id.
func (s *Store) ListRecipes(ctx context.Context, collectionID int64) ([]store.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs := make([]store.Recipe, 0, len(s.members[collectionID]))
	for rid := range s.members[collectionID] {
		rs = append(rs, s.withRefNames(s.recipes[rid]))
	}
	sort.Slice(rs, func(i, j int) bool {
		return rs[i].ID < rs[j].ID
	})
	return rs, nil
}

// FindRecipe returns a recipe by id, but only if it belongs to the
// given collection.
func (s *Store) FindRecipe(ctx context.Context, collectionID, recipeID int64) (store.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.members[collectionID][recipeID]
	if !ok {
		return store.Recipe{}, fmt.Errorf("%w: recipe id %d", store.ErrNotFound, recipeID)
	}
	return s.withRefNames(s.recipes[recipeID]), nil
}

// CreateRecipe inserts a new recipe and adds it to the given collection.
func (s *Store) CreateRecipe(ctx context.Context, collectionID int64, r store.Recipe) (store.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.collections[collectionID]
	if !ok {
		return store.Recipe{}, fmt.Errorf("%w: collection id %d", store.ErrNotFound, collectionID)
	}

	r.ID = s.nextSerial()
	s.recipes[r.ID] = r
	s.members[collectionID][r.ID] = struct{}{}
	return s.withRefNames(r), nil
}

// UpdateRecipe replaces the contents of an existing recipe.
func (s *Store) UpdateRecipe(ctx context.Context, id int64, r store.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.recipes[id]
	if !ok {
		return fmt.Errorf("%w: recipe id %d", store.ErrNotFound, id)
	}

	existing.Title = r.Title
	existing.Description = r.Description
	existing.Ingredients = r.Ingredients
	existing.Rating = r.Rating
	existing.CategoryID = r.CategoryID
	existing.EthnicityID = r.EthnicityID
	s.recipes[id] = existing
	return nil
}

// DeleteRecipe removes a recipe from every collection and deletes it.
func (s *Store) DeleteRecipe(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.recipes[id]
	if !ok {
		return fmt.Errorf("%w: recipe id %d", store.ErrNotFound, id)
	}

	delete(s.recipes, id)
	for _, rs := range s.members {
		delete(rs, id)
	}
	return nil
}

// ListCategories returns all categories ordered by id.
func (s *Store) ListCategories(ctx context.Context) ([]store.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cs := make([]store.Category, 0, len(s.categories))
	for _, c := range s.categories {
		cs = append(cs, c)
	}
	sort.Slice(cs, func(i, j int) bool {
		return cs[i].ID < cs[j].ID
	})
	return cs, nil
}

// FindCategory returns the category with the given name.
func (s *Store) FindCategory(ctx context.Context, name string) (store.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return store.Category{}, fmt.Errorf("%w: category %q", store.ErrNotFound, name)
}

// CreateCategory inserts a new category.
func (s *Store) CreateCategory(ctx context.Context, c store.Category) (store.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.categories {
		if existing.Name == c.Name {
			return store.Category{}, store.UniqueViolationError{Constraint: "categories_name_key"}
		}
	}

	c.ID = s.nextSerial()
	s.categories[c.ID] = c
	return c, nil
}

// UpdateCategory replaces the name and description of an existing category.
func (s *Store) UpdateCategory(ctx context.Context, id int64, c store.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.categories[id]
	if !ok {
		return fmt.Errorf("%w: category id %d", store.ErrNotFound, id)
	}

	for _, other := range s.categories {
		if other.ID != id && other.Name == c.Name {
			return store.UniqueViolationError{Constraint: "categories_name_key"}
		}
	}

	existing.Name = c.Name
	existing.Description = c.Description
	s.categories[id] = existing
	return nil
}

// ListEthnicities returns all ethnicities ordered by id.
func (s *Store) ListEthnicities(ctx context.Context) ([]store.Ethnicity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	es := make([]store.Ethnicity, 0, len(s.ethnicities))
	for _, e := range s.ethnicities {
		es = append(es, e)
	}
	sort.Slice(es, func(i, j int) bool {
		return es[i].ID < es[j].ID
	})
	return es, nil
}

// FindEthnicity returns the ethnicity with the given name.
func (s *Store) FindEthnicity(ctx context.Context, name string) (store.Ethnicity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.ethnicities {
		if e.Name == name {
			return e, nil
		}
	}
	return store.Ethnicity{}, fmt.Errorf("%w: ethnicity %q", store.ErrNotFound, name)
}

// CreateEthnicity inserts a new ethnicity.
func (s *Store) CreateEthnicity(ctx context.Context, e store.Ethnicity) (store.Ethnicity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.ethnicities {
		if existing.Name == e.Name {
			return store.Ethnicity{}, store.UniqueViolationError{Constraint: "ethnicities_name_key"}
		}
	}

	e.ID = s.nextSerial()
	s.ethnicities[e.ID] = e
	return e, nil
}

// UpdateEthnicity replaces the name and description of an existing ethnicity.
func (s *Store) UpdateEthnicity(ctx context.Context, id int64, e store.Ethnicity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.ethnicities[id]
	if !ok {
		return fmt.Errorf("%w: ethnicity id %d", store.ErrNotFound, id)
	}

	for _, other := range s.ethnicities {
		if other.ID != id && other.Name == e.Name {
			return store.UniqueViolationError{Constraint: "ethnicities_name_key"}
		}
	}

	existing.Name = e.Name
	existing.Description = e.Description
	s.ethnicities[id] = existing
	return nil
}

func (s *Store) withRefNames(r store.Recipe) store.Recipe {
	r.Category = s.categories[r.CategoryID].Name
	r.Ethnicity = s.ethnicities[r.EthnicityID].Name
	return r
}
