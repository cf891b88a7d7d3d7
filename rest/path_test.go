// Copyright (c) 2025 Foodpoint Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPath_String(t *testing.T) {
	t.Run("will join segments", func(t *testing.T) {
		t.Run("if only static segments are given", func(t *testing.T) {
			p := BasePath("/api").Segment("users")
			require.Equal(t, "/api/users", p.String())
		})
	})

	t.Run("will format parameters", func(t *testing.T) {
		t.Run("if params are mixed with segments", func(t *testing.T) {
			p := BasePath("/api").Segment("users").Param("user").Segment("collections")
			require.Equal(t, "/api/users/{user}/collections", p.String())
		})
	})

	t.Run("will keep a trailing slash", func(t *testing.T) {
		t.Run("if the path ends with Slash", func(t *testing.T) {
			p := BasePath("/api").Segment("users").Param("user").Slash()
			require.Equal(t, "/api/users/{user}/", p.String())
		})
	})
}
