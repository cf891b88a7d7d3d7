// Copyright (c) 2025 Foodpoint Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package endpoint_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodpoint/foodpoint/endpoint"
	"github.com/foodpoint/foodpoint/mason"
	"github.com/foodpoint/foodpoint/rest"
	"github.com/foodpoint/foodpoint/store"
	"github.com/foodpoint/foodpoint/store/memory"
)

type control struct {
	Href     string          `json:"href"`
	Title    string          `json:"title"`
	Method   string          `json:"method"`
	Encoding string          `json:"encoding"`
	Schema   json.RawMessage `json:"schema"`
}

type document struct {
	Name        string             `json:"name"`
	UserName    string             `json:"userName"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Ingredients string             `json:"ingredients"`
	Rating      *float64           `json:"rating"`
	Category    string             `json:"category"`
	Ethnicity   string             `json:"ethnicity"`
	Items       []document         `json:"items"`
	Controls    map[string]control `json:"@controls"`
}

type errorDoc struct {
	ResourceURL string `json:"resource_url"`
	Error       struct {
		Message  string   `json:"@message"`
		Messages []string `json:"@messages"`
	} `json:"@error"`
}

func newTestServer(t *testing.T, s *memory.Store, opts ...endpoint.Option) *httptest.Server {
	t.Helper()

	api := rest.NewApi(
		"Foodpoint", "test",
		endpoint.EntryPoint(),
		endpoint.ListUsers(s),
		endpoint.AddUser(s),
		endpoint.GetUser(s),
		endpoint.UpdateUser(s),
		endpoint.DeleteUser(s),
		endpoint.ListCollections(s, s),
		endpoint.AddCollection(s, s),
		endpoint.GetCollection(s, s, s),
		endpoint.AddRecipe(s, s, s, s, s),
		endpoint.UpdateCollection(s, s, opts...),
		endpoint.DeleteCollection(s, s),
		endpoint.GetRecipe(s, s, s),
		endpoint.UpdateRecipe(s, s, s, s, s, opts...),
		endpoint.DeleteRecipe(s, s, s),
		endpoint.ListCategories(s),
		endpoint.AddCategory(s),
		endpoint.GetCategory(s),
		endpoint.UpdateCategory(s, opts...),
		endpoint.ListEthnicities(s),
		endpoint.AddEthnicity(s),
		endpoint.GetEthnicity(s),
		endpoint.UpdateEthnicity(s, opts...),
		endpoint.LinkRelations(),
		endpoint.Profiles(),
	)

	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return srv
}

func seedRefs(t *testing.T, s *memory.Store) {
	t.Helper()

	_, err := s.CreateCategory(context.Background(), store.Category{
		Name:        "Dessert",
		Description: "Sweet things",
	})
	require.NoError(t, err)

	_, err = s.CreateEthnicity(context.Background(), store.Ethnicity{
		Name:        "Finnish",
		Description: "Finnish cuisine",
	})
	require.NoError(t, err)
}

func do(t *testing.T, method, url, contentType, body string) *http.Response {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeDocument(t *testing.T, resp *http.Response) document {
	t.Helper()
	defer resp.Body.Close()

	require.Equal(t, mason.MediaType, resp.Header.Get("Content-Type"))

	var doc document
	err := json.NewDecoder(resp.Body).Decode(&doc)
	require.NoError(t, err)
	return doc
}

func decodeError(t *testing.T, resp *http.Response) errorDoc {
	t.Helper()
	defer resp.Body.Close()

	require.Equal(t, mason.MediaType, resp.Header.Get("Content-Type"))

	var doc errorDoc
	err := json.NewDecoder(resp.Body).Decode(&doc)
	require.NoError(t, err)
	return doc
}

func TestEntryPoint(t *testing.T) {
	t.Run("will advertise the top level collections", func(t *testing.T) {
		srv := newTestServer(t, memory.New())

		resp := do(t, http.MethodGet, srv.URL+"/api/", "", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		doc := decodeDocument(t, resp)
		assert.Equal(t, "/api/users/", doc.Controls["fpoint:all-users"].Href)
		assert.Equal(t, "/api/categories/", doc.Controls["fpoint:all-categories"].Href)
		assert.Equal(t, "/api/ethnicities/", doc.Controls["fpoint:all-ethnicities"].Href)
	})
}

func TestUsers(t *testing.T) {
	t.Run("will create a user and navigate to it", func(t *testing.T) {
		srv := newTestServer(t, memory.New())

		resp := do(t, http.MethodPost, srv.URL+"/api/users/", "application/json", `{"name": "John Doe", "userName": "johnd"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		require.Equal(t, "/api/users/johnd/", resp.Header.Get("Location"))

		resp = do(t, http.MethodGet, srv.URL+resp.Header.Get("Location"), "", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		doc := decodeDocument(t, resp)
		assert.Equal(t, "John Doe", doc.Name)
		assert.Equal(t, "johnd", doc.UserName)
		assert.Equal(t, "/api/users/johnd/", doc.Controls["self"].Href)
		assert.Equal(t, "/api/users/johnd/collections/", doc.Controls["fpoint:collections-by"].Href)
		assert.Equal(t, http.MethodPut, doc.Controls["edit"].Method)
		assert.NotEmpty(t, doc.Controls["edit"].Schema)
		assert.Equal(t, http.MethodDelete, doc.Controls["fpoint:delete"].Method)
	})

	t.Run("will list created users with an add control", func(t *testing.T) {
		srv := newTestServer(t, memory.New())

		resp := do(t, http.MethodPost, srv.URL+"/api/users/", "application/json", `{"name": "John Doe", "userName": "johnd"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()

		resp = do(t, http.MethodGet, srv.URL+"/api/users/", "", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		doc := decodeDocument(t, resp)
		require.Len(t, doc.Items, 1)
		assert.Equal(t, "johnd", doc.Items[0].UserName)
		assert.Equal(t, "/api/users/johnd/", doc.Items[0].Controls["self"].Href)

		add := doc.Controls["fpoint:add-user"]
		assert.Equal(t, http.MethodPost, add.Method)
		assert.Equal(t, "json", add.Encoding)
		assert.NotEmpty(t, add.Schema)
	})

	t.Run("if the same userName is registered twice", func(t *testing.T) {
		srv := newTestServer(t, memory.New())

		resp := do(t, http.MethodPost, srv.URL+"/api/users/", "application/json", `{"name": "John Doe", "userName": "johnd"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()

		resp = do(t, http.MethodPost, srv.URL+"/api/users/", "application/json", `{"name": "Jane Doe", "userName": "johnd"}`)
		require.Equal(t, http.StatusConflict, resp.StatusCode)

		doc := decodeError(t, resp)
		assert.Equal(t, "Already exists", doc.Error.Message)
		require.Len(t, doc.Error.Messages, 1)
		assert.Contains(t, doc.Error.Messages[0], "johnd")
	})

	t.Run("if the request body is not json", func(t *testing.T) {
		srv := newTestServer(t, memory.New())

		resp := do(t, http.MethodPost, srv.URL+"/api/users/", "text/plain", "hello")
		require.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)

		doc := decodeError(t, resp)
		assert.Equal(t, "Unsupported media type", doc.Error.Message)
	})

	t.Run("if a required field is missing", func(t *testing.T) {
		srv := newTestServer(t, memory.New())

		resp := do(t, http.MethodPost, srv.URL+"/api/users/", "application/json", `{"name": "John Doe"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		doc := decodeError(t, resp)
		assert.Equal(t, "Invalid JSON document", doc.Error.Message)
		require.NotEmpty(t, doc.Error.Messages)
	})

	t.Run("will rename a user", func(t *testing.T) {
		srv := newTestServer(t, memory.New())

		resp := do(t, http.MethodPost, srv.URL+"/api/users/", "application/json", `{"name": "John Doe", "userName": "johnd"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()

		resp = do(t, http.MethodPut, srv.URL+"/api/users/johnd/", "application/json", `{"name": "John Doe", "userName": "johnny"}`)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		resp.Body.Close()

		resp = do(t, http.MethodGet, srv.URL+"/api/users/johnd/", "", "")
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		doc := decodeError(t, resp)
		assert.Equal(t, "User not found", doc.Error.Message)
		assert.Equal(t, "/api/users/johnd/", doc.ResourceURL)

		resp = do(t, http.MethodGet, srv.URL+"/api/users/johnny/", "", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("will delete a user", func(t *testing.T) {
		srv := newTestServer(t, memory.New())

		resp := do(t, http.MethodPost, srv.URL+"/api/users/", "application/json", `{"name": "John Doe", "userName": "johnd"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()

		resp = do(t, http.MethodDelete, srv.URL+"/api/users/johnd/", "", "")
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		resp.Body.Close()

		resp = do(t, http.MethodDelete, srv.URL+"/api/users/johnd/", "", "")
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestCollections(t *testing.T) {
	createUser := func(t *testing.T, srv *httptest.Server) {
		t.Helper()

		resp := do(t, http.MethodPost, srv.URL+"/api/users/", "application/json", `{"name": "John Doe", "userName": "johnd"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	t.Run("will create a collection for a user", func(t *testing.T) {
		srv := newTestServer(t, memory.New())
		createUser(t, srv)

		resp := do(t, http.MethodPost, srv.URL+"/api/users/johnd/collections/", "application/json", `{"name": "Favourites", "description": "Weekend baking"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		require.Equal(t, "/api/users/johnd/collections/Favourites/", resp.Header.Get("Location"))
		resp.Body.Close()

		resp = do(t, http.MethodGet, srv.URL+"/api/users/johnd/collections/", "", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		doc := decodeDocument(t, resp)
		require.Len(t, doc.Items, 1)
		assert.Equal(t, "Favourites", doc.Items[0].Name)
		assert.Equal(t, "Weekend baking", doc.Items[0].Description)
		assert.Equal(t, http.MethodPost, doc.Controls["fpoint:add-collection"].Method)
	})

	t.Run("if the owner does not exist", func(t *testing.T) {
		srv := newTestServer(t, memory.New())

		resp := do(t, http.MethodPost, srv.URL+"/api/users/ghost/collections/", "application/json", `{"name": "Favourites"}`)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		doc := decodeError(t, resp)
		assert.Equal(t, "User not found", doc.Error.Message)
	})

	t.Run("if the user already has a collection by that name", func(t *testing.T) {
		srv := newTestServer(t, memory.New())
		createUser(t, srv)

		resp := do(t, http.MethodPost, srv.URL+"/api/users/johnd/collections/", "application/json", `{"name": "Favourites"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()

		resp = do(t, http.MethodPost, srv.URL+"/api/users/johnd/collections/", "application/json", `{"name": "Favourites"}`)
		require.Equal(t, http.StatusConflict, resp.StatusCode)

		doc := decodeError(t, resp)
		assert.Equal(t, "Already exists", doc.Error.Message)
	})

	t.Run("will leave the description unchanged when omitted from a PUT", func(t *testing.T) {
		srv := newTestServer(t, memory.New())
		createUser(t, srv)

		resp := do(t, http.MethodPost, srv.URL+"/api/users/johnd/collections/", "application/json", `{"name": "Favourites", "description": "Weekend baking"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()

		resp = do(t, http.MethodPut, srv.URL+"/api/users/johnd/collections/Favourites/", "application/json", `{"name": "Favourites"}`)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		resp.Body.Close()

		resp = do(t, http.MethodGet, srv.URL+"/api/users/johnd/collections/Favourites/", "", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		doc := decodeDocument(t, resp)
		assert.Equal(t, "Weekend baking", doc.Description)
	})

	t.Run("will delete a collection", func(t *testing.T) {
		srv := newTestServer(t, memory.New())
		createUser(t, srv)

		resp := do(t, http.MethodPost, srv.URL+"/api/users/johnd/collections/", "application/json", `{"name": "Favourites"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()

		resp = do(t, http.MethodDelete, srv.URL+"/api/users/johnd/collections/Favourites/", "", "")
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		resp.Body.Close()

		resp = do(t, http.MethodGet, srv.URL+"/api/users/johnd/collections/Favourites/", "", "")
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		doc := decodeError(t, resp)
		assert.Equal(t, "Collection not found", doc.Error.Message)
	})
}

func TestRecipes(t *testing.T) {
	setup := func(t *testing.T, s *memory.Store, srv *httptest.Server) {
		t.Helper()
		seedRefs(t, s)

		resp := do(t, http.MethodPost, srv.URL+"/api/users/", "application/json", `{"name": "John Doe", "userName": "johnd"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()

		resp = do(t, http.MethodPost, srv.URL+"/api/users/johnd/collections/", "application/json", `{"name": "Favourites"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	recipeBody := `{"title": "Korvapuusti", "description": "Cinnamon rolls", "ingredients": "flour, butter, cinnamon", "rating": 4.5, "ethnicity": "Finnish", "category": "Dessert"}`

	t.Run("will add a recipe to a collection", func(t *testing.T) {
		s := memory.New()
		srv := newTestServer(t, s)
		setup(t, s, srv)

		resp := do(t, http.MethodPost, srv.URL+"/api/users/johnd/collections/Favourites/", "application/json", recipeBody)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		location := resp.Header.Get("Location")
		require.True(t, strings.HasPrefix(location, "/api/users/johnd/collections/Favourites/"))
		require.True(t, strings.HasSuffix(location, "/"))
		resp.Body.Close()

		resp = do(t, http.MethodGet, srv.URL+location, "", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		doc := decodeDocument(t, resp)
		assert.Equal(t, "Korvapuusti", doc.Title)
		assert.Equal(t, "Dessert", doc.Category)
		assert.Equal(t, "Finnish", doc.Ethnicity)
		require.NotNil(t, doc.Rating)
		assert.Equal(t, 4.5, *doc.Rating)
		assert.Equal(t, "/api/users/johnd/collections/Favourites/", doc.Controls["collection"].Href)
		assert.Equal(t, "/api/categories/Dessert/", doc.Controls["fpoint:category"].Href)
		assert.Equal(t, "/api/ethnicities/Finnish/", doc.Controls["fpoint:ethnicity"].Href)
	})

	t.Run("if the category does not exist", func(t *testing.T) {
		s := memory.New()
		srv := newTestServer(t, s)
		setup(t, s, srv)

		body := strings.ReplaceAll(recipeBody, "Dessert", "Starter")
		resp := do(t, http.MethodPost, srv.URL+"/api/users/johnd/collections/Favourites/", "application/json", body)
		require.Equal(t, http.StatusConflict, resp.StatusCode)

		doc := decodeError(t, resp)
		assert.Equal(t, "Category does not exist", doc.Error.Message)
		require.Len(t, doc.Error.Messages, 1)
		assert.Contains(t, doc.Error.Messages[0], "Starter")
	})

	t.Run("if the ethnicity does not exist", func(t *testing.T) {
		s := memory.New()
		srv := newTestServer(t, s)
		setup(t, s, srv)

		body := strings.ReplaceAll(recipeBody, "Finnish", "Martian")
		resp := do(t, http.MethodPost, srv.URL+"/api/users/johnd/collections/Favourites/", "application/json", body)
		require.Equal(t, http.StatusConflict, resp.StatusCode)

		doc := decodeError(t, resp)
		assert.Equal(t, "Ethnicity does not exist", doc.Error.Message)
	})

	t.Run("will keep the rating when omitted from a PUT", func(t *testing.T) {
		s := memory.New()
		srv := newTestServer(t, s)
		setup(t, s, srv)

		resp := do(t, http.MethodPost, srv.URL+"/api/users/johnd/collections/Favourites/", "application/json", recipeBody)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		location := resp.Header.Get("Location")
		resp.Body.Close()

		put := `{"title": "Korvapuusti", "description": "Better rolls", "ingredients": "flour, butter, cinnamon, cardamom", "ethnicity": "Finnish", "category": "Dessert"}`
		resp = do(t, http.MethodPut, srv.URL+location, "application/json", put)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		resp.Body.Close()

		resp = do(t, http.MethodGet, srv.URL+location, "", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		doc := decodeDocument(t, resp)
		assert.Equal(t, "Better rolls", doc.Description)
		require.NotNil(t, doc.Rating)
		assert.Equal(t, 4.5, *doc.Rating)
	})

	t.Run("will clear the rating when configured to", func(t *testing.T) {
		s := memory.New()
		srv := newTestServer(t, s, endpoint.ClearOmittedFields())
		setup(t, s, srv)

		resp := do(t, http.MethodPost, srv.URL+"/api/users/johnd/collections/Favourites/", "application/json", recipeBody)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		location := resp.Header.Get("Location")
		resp.Body.Close()

		put := `{"title": "Korvapuusti", "description": "Cinnamon rolls", "ingredients": "flour, butter, cinnamon", "ethnicity": "Finnish", "category": "Dessert"}`
		resp = do(t, http.MethodPut, srv.URL+location, "application/json", put)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		resp.Body.Close()

		resp = do(t, http.MethodGet, srv.URL+location, "", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		doc := decodeDocument(t, resp)
		assert.Nil(t, doc.Rating)
	})

	t.Run("if the recipe id is not numeric", func(t *testing.T) {
		s := memory.New()
		srv := newTestServer(t, s)
		setup(t, s, srv)

		resp := do(t, http.MethodGet, srv.URL+"/api/users/johnd/collections/Favourites/abc/", "", "")
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		doc := decodeError(t, resp)
		assert.Equal(t, "Recipe not found", doc.Error.Message)
	})

	t.Run("will delete a recipe", func(t *testing.T) {
		s := memory.New()
		srv := newTestServer(t, s)
		setup(t, s, srv)

		resp := do(t, http.MethodPost, srv.URL+"/api/users/johnd/collections/Favourites/", "application/json", recipeBody)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		location := resp.Header.Get("Location")
		resp.Body.Close()

		resp = do(t, http.MethodDelete, srv.URL+location, "", "")
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		resp.Body.Close()

		resp = do(t, http.MethodGet, srv.URL+location, "", "")
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestCategories(t *testing.T) {
	t.Run("will list seeded categories", func(t *testing.T) {
		s := memory.New()
		seedRefs(t, s)
		srv := newTestServer(t, s)

		resp := do(t, http.MethodGet, srv.URL+"/api/categories/", "", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		doc := decodeDocument(t, resp)
		require.Len(t, doc.Items, 1)
		assert.Equal(t, "Dessert", doc.Items[0].Name)
		assert.Equal(t, http.MethodPost, doc.Controls["fpoint:add-category"].Method)
		assert.Equal(t, "/api/users/", doc.Controls["fpoint:all-users"].Href)
	})

	t.Run("if a duplicate category is added", func(t *testing.T) {
		s := memory.New()
		seedRefs(t, s)
		srv := newTestServer(t, s)

		resp := do(t, http.MethodPost, srv.URL+"/api/categories/", "application/json", `{"name": "Dessert"}`)
		require.Equal(t, http.StatusConflict, resp.StatusCode)

		doc := decodeError(t, resp)
		assert.Equal(t, "Already exists", doc.Error.Message)
		require.Len(t, doc.Error.Messages, 1)
		assert.Equal(t, "Category with name Dessert already exists.", doc.Error.Messages[0])
	})

	t.Run("will edit a category", func(t *testing.T) {
		s := memory.New()
		seedRefs(t, s)
		srv := newTestServer(t, s)

		resp := do(t, http.MethodPut, srv.URL+"/api/categories/Dessert/", "application/json", `{"name": "Desserts", "description": "Sweet things"}`)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		resp.Body.Close()

		resp = do(t, http.MethodGet, srv.URL+"/api/categories/Desserts/", "", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		doc := decodeDocument(t, resp)
		assert.Equal(t, "Desserts", doc.Name)
		assert.Equal(t, "/api/categories/Desserts/", doc.Controls["self"].Href)
	})

	t.Run("if the category does not exist", func(t *testing.T) {
		srv := newTestServer(t, memory.New())

		resp := do(t, http.MethodGet, srv.URL+"/api/categories/Starter/", "", "")
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		doc := decodeError(t, resp)
		assert.Equal(t, "Category not found", doc.Error.Message)
	})
}

func TestEthnicities(t *testing.T) {
	t.Run("will round trip an ethnicity", func(t *testing.T) {
		srv := newTestServer(t, memory.New())

		resp := do(t, http.MethodPost, srv.URL+"/api/ethnicities/", "application/json", `{"name": "Finnish", "description": "Finnish cuisine"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		require.Equal(t, "/api/ethnicities/Finnish/", resp.Header.Get("Location"))
		resp.Body.Close()

		resp = do(t, http.MethodGet, srv.URL+"/api/ethnicities/Finnish/", "", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		doc := decodeDocument(t, resp)
		assert.Equal(t, "Finnish", doc.Name)
		assert.Equal(t, "Finnish cuisine", doc.Description)
		assert.Equal(t, http.MethodPut, doc.Controls["edit"].Method)
	})

	t.Run("if the ethnicity does not exist", func(t *testing.T) {
		srv := newTestServer(t, memory.New())

		resp := do(t, http.MethodGet, srv.URL+"/api/ethnicities/Martian/", "", "")
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		doc := decodeError(t, resp)
		assert.Equal(t, "Ethnicity not found", doc.Error.Message)
	})
}
