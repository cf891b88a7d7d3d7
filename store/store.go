// Copyright (c) 2025 Foodpoint Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package store defines the records persisted by the service along
// with the error contract every storage driver implements.
package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a record does not exist. Drivers wrap
// it so callers can match with [errors.Is].
var ErrNotFound = errors.New("store: not found")

// UniqueViolationError is returned when an insert or update would
// break a uniqueness constraint.
type UniqueViolationError struct {
	// Constraint names the violated constraint, e.g. "users_user_name_key".
	Constraint string
}

func (e UniqueViolationError) Error() string {
	return fmt.Sprintf("store: unique constraint violated: %s", e.Constraint)
}

// User is a registered user of the service.
type User struct {
	ID       int64
	Name     string
	UserName string
}

// Collection is a named group of recipes owned by a single user.
// Names are unique per owner, not globally.
type Collection struct {
	ID          int64
	Name        string
	Description string
	UserID      int64
}

// Category classifies recipes by type of dish.
type Category struct {
	ID          int64
	Name        string
	Description string
}

// Ethnicity classifies recipes by cuisine.
type Ethnicity struct {
	ID          int64
	Name        string
	Description string
}

// Recipe is a single recipe. Category and Ethnicity carry the names
// of the referenced records when the recipe is read back.
type Recipe struct {
	ID          int64
	Title       string
	Description string
	Ingredients string
	Rating      *float64
	CategoryID  int64
	EthnicityID int64
	Category    string
	Ethnicity   string
}
