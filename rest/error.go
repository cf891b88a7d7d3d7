// Copyright (c) 2025 Foodpoint Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"fmt"
)

// NotFoundError represents a 404 Not Found error. Title names the
// kind of resource which could not be found, e.g. "User not found",
// and becomes the "@message" of the rendered error document.
type NotFoundError struct {
	Title string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Title)
}

// AlreadyExistsError represents a 409 Conflict error. It is returned
// when a mutation would break a uniqueness rule or references a
// conflicting record.
type AlreadyExistsError struct {
	Detail string
}

func (e AlreadyExistsError) Error() string {
	return fmt.Sprintf("already exists: %s", e.Detail)
}

// ConflictError represents a 409 Conflict error with a custom title.
// Use it for conflicts which are not uniqueness violations, e.g. a
// request body referencing a record that does not exist.
type ConflictError struct {
	Title  string
	Detail string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s: %s", e.Title, e.Detail)
}

// InvalidDocumentError represents a 400 Bad Request error. It wraps
// the underlying cause, typically a JSON schema validation error or
// a JSON syntax error.
type InvalidDocumentError struct {
	Cause error
}

func (e InvalidDocumentError) Error() string {
	return fmt.Sprintf("invalid json document: %v", e.Cause)
}

// Unwrap returns the underlying cause of the invalid document.
// This allows errors.Is and errors.As to work with the wrapped error.
func (e InvalidDocumentError) Unwrap() error {
	return e.Cause
}

// UnsupportedMediaTypeError represents a 415 Unsupported Media Type
// error. It is returned when a request body is missing or is not JSON.
type UnsupportedMediaTypeError struct {
	Detail string
}

func (e UnsupportedMediaTypeError) Error() string {
	return fmt.Sprintf("unsupported media type: %s", e.Detail)
}
