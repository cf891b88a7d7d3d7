// Copyright (c) 2025 Foodpoint Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/foodpoint/foodpoint/mason"

	"github.com/stretchr/testify/require"
)

type errorDoc struct {
	ResourceURL string `json:"resource_url"`
	Err         struct {
		Message  string   `json:"@message"`
		Messages []string `json:"@messages"`
	} `json:"@error"`
	Controls map[string]struct {
		Href string `json:"href"`
	} `json:"@controls"`
}

func serveOne(method string, path Path, h Handler) *httptest.Server {
	api := NewApi("Test", "v0.0.0", Handle(method, path, h))
	return httptest.NewServer(api)
}

func TestHandle(t *testing.T) {
	t.Run("will pass path parameters", func(t *testing.T) {
		t.Run("if the path declares them", func(t *testing.T) {
			h := HandlerFunc(func(ctx context.Context, req *Request) (Response, error) {
				return mason.New(mason.F("user", req.PathValue("user"))), nil
			})

			srv := serveOne(http.MethodGet, BasePath("/api").Segment("users").Param("user").Slash(), h)
			defer srv.Close()

			resp, err := http.Get(fmt.Sprintf("%s/api/users/bob/", srv.URL))
			require.Nil(t, err)
			defer resp.Body.Close()

			var doc struct {
				User string `json:"user"`
			}
			require.Nil(t, json.NewDecoder(resp.Body).Decode(&doc))
			require.Equal(t, "bob", doc.User)
		})
	})

	t.Run("will return 415", func(t *testing.T) {
		readBody := HandlerFunc(func(ctx context.Context, req *Request) (Response, error) {
			_, err := req.JSON()
			if err != nil {
				return nil, err
			}
			return NoContent{}, nil
		})

		t.Run("if the content type is not json", func(t *testing.T) {
			srv := serveOne(http.MethodPost, BasePath("/api").Segment("users").Slash(), readBody)
			defer srv.Close()

			resp, err := http.Post(
				fmt.Sprintf("%s/api/users/", srv.URL),
				"text/plain",
				strings.NewReader("hello"),
			)
			require.Nil(t, err)
			defer resp.Body.Close()

			require.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)

			var doc errorDoc
			require.Nil(t, json.NewDecoder(resp.Body).Decode(&doc))
			require.Equal(t, "Unsupported media type", doc.Err.Message)
			require.Equal(t, []string{"Request content type must be JSON"}, doc.Err.Messages)
		})

		t.Run("if the body is empty", func(t *testing.T) {
			srv := serveOne(http.MethodPost, BasePath("/api").Segment("users").Slash(), readBody)
			defer srv.Close()

			resp, err := http.Post(
				fmt.Sprintf("%s/api/users/", srv.URL),
				"application/json",
				strings.NewReader(""),
			)
			require.Nil(t, err)
			require.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
		})
	})

	t.Run("will map handler errors to statuses", func(t *testing.T) {
		cases := []struct {
			name   string
			err    error
			status int
			title  string
		}{
			{
				name:   "if a not found error is returned",
				err:    NotFoundError{Title: "User not found"},
				status: http.StatusNotFound,
				title:  "User not found",
			},
			{
				name:   "if an already exists error is returned",
				err:    AlreadyExistsError{Detail: "User with userName 'bob' already exists."},
				status: http.StatusConflict,
				title:  "Already exists",
			},
			{
				name:   "if a conflict error is returned",
				err:    ConflictError{Title: "Category does not exist", Detail: "no category named Breakfast"},
				status: http.StatusConflict,
				title:  "Category does not exist",
			},
			{
				name:   "if an invalid document error is returned",
				err:    InvalidDocumentError{Cause: errors.New("missing required property")},
				status: http.StatusBadRequest,
				title:  "Invalid JSON document",
			},
			{
				name:   "if an unknown error is returned",
				err:    errors.New("database exploded"),
				status: http.StatusInternalServerError,
				title:  "Internal server error",
			},
		}

		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				h := HandlerFunc(func(ctx context.Context, req *Request) (Response, error) {
					return nil, c.err
				})

				srv := serveOne(http.MethodGet, BasePath("/api").Segment("users").Slash(), h)
				defer srv.Close()

				resp, err := http.Get(fmt.Sprintf("%s/api/users/", srv.URL))
				require.Nil(t, err)
				defer resp.Body.Close()

				require.Equal(t, c.status, resp.StatusCode)
				require.Equal(t, mason.MediaType, resp.Header.Get("Content-Type"))

				var doc errorDoc
				require.Nil(t, json.NewDecoder(resp.Body).Decode(&doc))
				require.Equal(t, c.title, doc.Err.Message)
				require.Equal(t, "/api/users/", doc.ResourceURL)
				require.Equal(t, ErrorProfile, doc.Controls["profile"].Href)
			})
		}
	})

	t.Run("will not leak internal error messages", func(t *testing.T) {
		t.Run("if an unknown error is returned", func(t *testing.T) {
			h := HandlerFunc(func(ctx context.Context, req *Request) (Response, error) {
				return nil, errors.New("password for db is hunter2")
			})

			srv := serveOne(http.MethodGet, BasePath("/api").Segment("users").Slash(), h)
			defer srv.Close()

			resp, err := http.Get(fmt.Sprintf("%s/api/users/", srv.URL))
			require.Nil(t, err)
			defer resp.Body.Close()

			var doc errorDoc
			require.Nil(t, json.NewDecoder(resp.Body).Decode(&doc))
			require.Empty(t, doc.Err.Messages)
		})
	})

	t.Run("will recover from panics", func(t *testing.T) {
		t.Run("if the handler panics", func(t *testing.T) {
			h := HandlerFunc(func(ctx context.Context, req *Request) (Response, error) {
				panic("boom")
			})

			srv := serveOne(http.MethodGet, BasePath("/api").Segment("users").Slash(), h)
			defer srv.Close()

			resp, err := http.Get(fmt.Sprintf("%s/api/users/", srv.URL))
			require.Nil(t, err)
			require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		})
	})

	t.Run("will write creation responses", func(t *testing.T) {
		t.Run("if the handler returns Created", func(t *testing.T) {
			h := HandlerFunc(func(ctx context.Context, req *Request) (Response, error) {
				return Created{Location: "/api/users/bob/"}, nil
			})

			srv := serveOne(http.MethodPost, BasePath("/api").Segment("users").Slash(), h)
			defer srv.Close()

			resp, err := http.Post(
				fmt.Sprintf("%s/api/users/", srv.URL),
				"application/json",
				strings.NewReader(`{"name": "Bob", "userName": "bob"}`),
			)
			require.Nil(t, err)

			require.Equal(t, http.StatusCreated, resp.StatusCode)
			require.Equal(t, "/api/users/bob/", resp.Header.Get("Location"))
		})
	})
}
