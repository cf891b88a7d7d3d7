// Copyright (c) 2025 Foodpoint Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package endpoint_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodpoint/foodpoint/endpoint"
	"github.com/foodpoint/foodpoint/rest"
)

func TestLinkRelations(t *testing.T) {
	t.Run("will serve the relation catalog", func(t *testing.T) {
		api := rest.NewApi("Foodpoint", "test", endpoint.LinkRelations())
		srv := httptest.NewServer(api)
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/foodpoint/link-relations/")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var relations map[string]string
		err = json.NewDecoder(resp.Body).Decode(&relations)
		require.NoError(t, err)
		assert.Contains(t, relations, "add-user")
		assert.Contains(t, relations, "collections-by")
	})

	t.Run("will redirect to hosted documentation when configured", func(t *testing.T) {
		api := rest.NewApi("Foodpoint", "test", endpoint.LinkRelations(
			endpoint.RedirectTo("https://docs.example.com"),
		))
		srv := httptest.NewServer(api)
		defer srv.Close()

		client := &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
		resp, err := client.Get(srv.URL + "/foodpoint/link-relations/")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "https://docs.example.com/foodpoint/link-relations/", resp.Header.Get("Location"))
	})
}

func TestProfiles(t *testing.T) {
	t.Run("will serve a known profile", func(t *testing.T) {
		api := rest.NewApi("Foodpoint", "test", endpoint.Profiles())
		srv := httptest.NewServer(api)
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/profiles/user/")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var profile map[string]string
		err = json.NewDecoder(resp.Body).Decode(&profile)
		require.NoError(t, err)
		assert.Equal(t, "user", profile["profile"])
		assert.NotEmpty(t, profile["description"])
	})

	t.Run("if the profile is unknown", func(t *testing.T) {
		api := rest.NewApi("Foodpoint", "test", endpoint.Profiles())
		srv := httptest.NewServer(api)
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/profiles/unknown/")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		doc := decodeError(t, resp)
		assert.Equal(t, "Not found", doc.Error.Message)
		assert.Equal(t, "/profiles/unknown/", doc.ResourceURL)
	})
}
