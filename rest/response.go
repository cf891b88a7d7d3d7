// Copyright (c) 2025 Foodpoint Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"context"
	"net/http"
)

// Created is a [Response] for successful resource creation. It writes
// a 201 with the new resource's url in the Location header and no body.
type Created struct {
	Location string
}

// WriteResponse implements the [Response] interface.
func (c Created) WriteResponse(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Location", c.Location)
	w.WriteHeader(http.StatusCreated)
	return nil
}

// NoContent is a [Response] for successful edits and deletes. It
// writes a 204 with no body.
type NoContent struct{}

// WriteResponse implements the [Response] interface.
func (NoContent) WriteResponse(ctx context.Context, w http.ResponseWriter) error {
	w.WriteHeader(http.StatusNoContent)
	return nil
}
