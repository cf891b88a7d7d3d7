// Copyright (c) 2025 Foodpoint Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package postgres implements the storage driver backed by PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/foodpoint/foodpoint/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

// Store is a [store] driver backed by a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect opens a connection pool against the given connection url
// and verifies connectivity.
func Connect(ctx context.Context, url string) (*Store, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, err
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate creates the database schema. It is safe to run repeatedly.
func (s *Store) Migrate(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	user_name TEXT NOT NULL,
	CONSTRAINT users_user_name_key UNIQUE (user_name)
);

CREATE TABLE IF NOT EXISTS collections (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	user_id BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	CONSTRAINT collections_user_id_name_key UNIQUE (user_id, name)
);

CREATE TABLE IF NOT EXISTS categories (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	CONSTRAINT categories_name_key UNIQUE (name)
);

CREATE TABLE IF NOT EXISTS ethnicities (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	CONSTRAINT ethnicities_name_key UNIQUE (name)
);

CREATE TABLE IF NOT EXISTS recipes (
	id BIGSERIAL PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	ingredients TEXT NOT NULL,
	rating DOUBLE PRECISION,
	category_id BIGINT NOT NULL REFERENCES categories (id),
	ethnicity_id BIGINT NOT NULL REFERENCES ethnicities (id)
);

CREATE TABLE IF NOT EXISTS recipe_collections (
	collection_id BIGINT NOT NULL REFERENCES collections (id) ON DELETE CASCADE,
	recipe_id BIGINT NOT NULL REFERENCES recipes (id) ON DELETE CASCADE,
	PRIMARY KEY (collection_id, recipe_id)
);`

	_, err := s.pool.Exec(ctx, ddl)
	return err
}

func mapErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return store.UniqueViolationError{Constraint: pgErr.ConstraintName}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}
	return err
}

// ListUsers returns all users ordered by id.
func (s *Store) ListUsers(ctx context.Context) ([]store.User, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, user_name FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var us []store.User
	for rows.Next() {
		var u store.User
		err = rows.Scan(&u.ID, &u.Name, &u.UserName)
		if err != nil {
			return nil, err
		}
		us = append(us, u)
	}
	return us, rows.Err()
}

// FindUser returns the user with the given user name.
func (s *Store) FindUser(ctx context.Context, userName string) (store.User, error) {
	var u store.User
	err := s.pool.QueryRow(
		ctx,
		`SELECT id, name, user_name FROM users WHERE user_name = $1`,
		userName,
	).Scan(&u.ID, &u.Name, &u.UserName)
	if err != nil {
		return store.User{}, mapErr(err)
	}
	return u, nil
}

// CreateUser inserts a new user.
func (s *Store) CreateUser(ctx context.Context, u store.User) (store.User, error) {
	err := s.pool.QueryRow(
		ctx,
		`INSERT INTO users (name, user_name) VALUES ($1, $2) RETURNING id`,
		u.Name, u.UserName,
	).Scan(&u.ID)
	if err != nil {
		return store.User{}, mapErr(err)
	}
	return u, nil
}

// UpdateUser replaces the name and user name of an existing user.
func (s *Store) UpdateUser(ctx context.Context, id int64, u store.User) error {
	tag, err := s.pool.Exec(
		ctx,
		`UPDATE users SET name = $1, user_name = $2 WHERE id = $3`,
		u.Name, u.UserName, id,
	)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user id %d", store.ErrNotFound, id)
	}
	return nil
}

// DeleteUser removes a user. Their collections are removed by cascade,
// recipes in those collections are kept.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user id %d", store.ErrNotFound, id)
	}
	return nil
}

// ListCollections returns all collections owned by a user, ordered by id.
func (s *Store) ListCollections(ctx context.Context, userID int64) ([]store.Collection, error) {
	rows, err := s.pool.Query(
		ctx,
		`SELECT id, name, description, user_id FROM collections WHERE user_id = $1 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cs := make([]store.Collection, 0)
	for rows.Next() {
		var c store.Collection
		err = rows.Scan(&c.ID, &c.Name, &c.Description, &c.UserID)
		if err != nil {
			return nil, err
		}
		cs = append(cs, c)
	}
	return cs, rows.Err()
}

// FindCollection returns the collection with the given name owned by a user.
func (s *Store) FindCollection(ctx context.Context, userID int64, name string) (store.Collection, error) {
	var c store.Collection
	err := s.pool.QueryRow(
		ctx,
		`SELECT id, name, description, user_id FROM collections WHERE user_id = $1 AND name = $2`,
		userID, name,
	).Scan(&c.ID, &c.Name, &c.Description, &c.UserID)
	if err != nil {
		return store.Collection{}, mapErr(err)
	}
	return c, nil
}

// CreateCollection inserts a new collection.
func (s *Store) CreateCollection(ctx context.Context, c store.Collection) (store.Collection, error) {
	err := s.pool.QueryRow(
		ctx,
		`INSERT INTO collections (name, description, user_id) VALUES ($1, $2, $3) RETURNING id`,
		c.Name, c.Description, c.UserID,
	).Scan(&c.ID)
	if err != nil {
		return store.Collection{}, mapErr(err)
	}
	return c, nil
}

// UpdateCollection replaces the name and description of an existing collection.
func (s *Store) UpdateCollection(ctx context.Context, id int64, c store.Collection) error {
	tag, err := s.pool.Exec(
		ctx,
		`UPDATE collections SET name = $1, description = $2 WHERE id = $3`,
		c.Name, c.Description, id,
	)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: collection id %d", store.ErrNotFound, id)
	}
	return nil
}

// DeleteCollection removes a collection. Recipes in it are kept.
func (s *Store) DeleteCollection(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM collections WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: collection id %d", store.ErrNotFound, id)
	}
	return nil
}

const recipeColumns = `
	r.id, r.title, r.description, r.ingredients, r.rating,
	r.category_id, r.ethnicity_id, c.name, e.name`

const recipeJoins = `
	FROM recipes r
	JOIN recipe_collections rc ON rc.recipe_id = r.id
	JOIN categories c ON c.id = r.category_id
	JOIN ethnicities e ON e.id = r.ethnicity_id`

// ListRecipes returns all recipes in a collection, ordered by id.
func (s *Store) ListRecipes(ctx context.Context, collectionID int64) ([]store.Recipe, error) {
	rows, err := s.pool.Query(
		ctx,
		`SELECT`+recipeColumns+recipeJoins+` WHERE rc.collection_id = $1 ORDER BY r.id`,
		collectionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rs := make([]store.Recipe, 0)
	for rows.Next() {
		var r store.Recipe
		err = rows.Scan(
			&r.ID, &r.Title, &r.Description, &r.Ingredients, &r.Rating,
			&r.CategoryID, &r.EthnicityID, &r.Category, &r.Ethnicity,
		)
		if err != nil {
			return nil, err
		}
		rs = append(rs, r)
	}
	return rs, rows.Err()
}

// FindRecipe returns a recipe by id, but only if it belongs to the
// given collection.
func (s *Store) FindRecipe(ctx context.Context, collectionID, recipeID int64) (store.Recipe, error) {
	var r store.Recipe
	err := s.pool.QueryRow(
		ctx,
		`SELECT`+recipeColumns+recipeJoins+` WHERE rc.collection_id = $1 AND r.id = $2`,
		collectionID, recipeID,
	).Scan(
		&r.ID, &r.Title, &r.Description, &r.Ingredients, &r.Rating,
		&r.CategoryID, &r.EthnicityID, &r.Category, &r.Ethnicity,
	)
	if err != nil {
		return store.Recipe{}, mapErr(err)
	}
	return r, nil
}

// CreateRecipe inserts a new recipe and adds it to the given collection
// within a single transaction.
func (s *Store) CreateRecipe(ctx context.Context, collectionID int64, r store.Recipe) (store.Recipe, error) {
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(
			ctx,
			`INSERT INTO recipes (title, description, ingredients, rating, category_id, ethnicity_id)
			 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			r.Title, r.Description, r.Ingredients, r.Rating, r.CategoryID, r.EthnicityID,
		).Scan(&r.ID)
		if err != nil {
			return err
		}

		_, err = tx.Exec(
			ctx,
			`INSERT INTO recipe_collections (collection_id, recipe_id) VALUES ($1, $2)`,
			collectionID, r.ID,
		)
		return err
	})
	if err != nil {
		return store.Recipe{}, mapErr(err)
	}
	return s.FindRecipe(ctx, collectionID, r.ID)
}

// UpdateRecipe replaces the contents of an existing recipe.
func (s *Store) UpdateRecipe(ctx context.Context, id int64, r store.Recipe) error {
	tag, err := s.pool.Exec(
		ctx,
		`UPDATE recipes
		 SET title = $1, description = $2, ingredients = $3, rating = $4, category_id = $5, ethnicity_id = $6
		 WHERE id = $7`,
		r.Title, r.Description, r.Ingredients, r.Rating, r.CategoryID, r.EthnicityID, id,
	)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: recipe id %d", store.ErrNotFound, id)
	}
	return nil
}

// DeleteRecipe removes a recipe. Membership rows are removed by cascade.
func (s *Store) DeleteRecipe(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: recipe id %d", store.ErrNotFound, id)
	}
	return nil
}

// ListCategories returns all categories ordered by id.
func (s *Store) ListCategories(ctx context.Context) ([]store.Category, error) {
	return s.listNamed(ctx, "categories")
}

// FindCategory returns the category with the given name.
func (s *Store) FindCategory(ctx context.Context, name string) (store.Category, error) {
	var c store.Category
	err := s.pool.QueryRow(
		ctx,
		`SELECT id, name, description FROM categories WHERE name = $1`,
		name,
	).Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		return store.Category{}, mapErr(err)
	}
	return c, nil
}

// CreateCategory inserts a new category.
func (s *Store) CreateCategory(ctx context.Context, c store.Category) (store.Category, error) {
	err := s.pool.QueryRow(
		ctx,
		`INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING id`,
		c.Name, c.Description,
	).Scan(&c.ID)
	if err != nil {
		return store.Category{}, mapErr(err)
	}
	return c, nil
}

// UpdateCategory replaces the name and description of an existing category.
func (s *Store) UpdateCategory(ctx context.Context, id int64, c store.Category) error {
	return s.updateNamed(ctx, "categories", id, c.Name, c.Description)
}

// ListEthnicities returns all ethnicities ordered by id.
func (s *Store) ListEthnicities(ctx context.Context) ([]store.Ethnicity, error) {
	cs, err := s.listNamed(ctx, "ethnicities")
	if err != nil {
		return nil, err
	}

	es := make([]store.Ethnicity, len(cs))
	for i, c := range cs {
		es[i] = store.Ethnicity(c)
	}
	return es, nil
}

// FindEthnicity returns the ethnicity with the given name.
func (s *Store) FindEthnicity(ctx context.Context, name string) (store.Ethnicity, error) {
	var e store.Ethnicity
	err := s.pool.QueryRow(
		ctx,
		`SELECT id, name, description FROM ethnicities WHERE name = $1`,
		name,
	).Scan(&e.ID, &e.Name, &e.Description)
	if err != nil {
		return store.Ethnicity{}, mapErr(err)
	}
	return e, nil
}

// CreateEthnicity inserts a new ethnicity.
func (s *Store) CreateEthnicity(ctx context.Context, e store.Ethnicity) (store.Ethnicity, error) {
	err := s.pool.QueryRow(
		ctx,
		`INSERT INTO ethnicities (name, description) VALUES ($1, $2) RETURNING id`,
		e.Name, e.Description,
	).Scan(&e.ID)
	if err != nil {
		return store.Ethnicity{}, mapErr(err)
	}
	return e, nil
}

// UpdateEthnicity replaces the name and description of an existing ethnicity.
func (s *Store) UpdateEthnicity(ctx context.Context, id int64, e store.Ethnicity) error {
	return s.updateNamed(ctx, "ethnicities", id, e.Name, e.Description)
}

func (s *Store) listNamed(ctx context.Context, table string) ([]store.Category, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, description FROM `+table+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cs []store.Category
	for rows.Next() {
		var c store.Category
		err = rows.Scan(&c.ID, &c.Name, &c.Description)
		if err != nil {
			return nil, err
		}
		cs = append(cs, c)
	}
	return cs, rows.Err()
}

func (s *Store) updateNamed(ctx context.Context, table string, id int64, name, description string) error {
	tag, err := s.pool.Exec(
		ctx,
		`UPDATE `+table+` SET name = $1, description = $2 WHERE id = $3`,
		name, description, id,
	)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s id %d", store.ErrNotFound, table, id)
	}
	return nil
}
