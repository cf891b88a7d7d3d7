// Copyright (c) 2025 Foodpoint Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodpoint/foodpoint/mason"
)

func TestInit(t *testing.T) {
	t.Run("will serve the api entry point with the memory driver", func(t *testing.T) {
		var cfg Config
		cfg.OpenApi.Title = "Foodpoint"
		cfg.OpenApi.Version = "test"

		api, err := Init(context.Background(), cfg)
		require.NoError(t, err)

		srv := httptest.NewServer(api)
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/api/")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, mason.MediaType, resp.Header.Get("Content-Type"))
	})

	t.Run("will report readiness from the store", func(t *testing.T) {
		var cfg Config

		api, err := Init(context.Background(), cfg)
		require.NoError(t, err)

		srv := httptest.NewServer(api)
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/health/readiness")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("if the storage driver is unknown", func(t *testing.T) {
		var cfg Config
		cfg.Storage.Driver = "cassandra"

		_, err := Init(context.Background(), cfg)

		var uerr UnknownStorageDriverError
		require.ErrorAs(t, err, &uerr)
		assert.Equal(t, "cassandra", uerr.Driver)
	})
}
