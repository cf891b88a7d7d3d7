// Copyright (c) 2025 Foodpoint Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package endpoint

import (
	"context"
	"fmt"
	"net/http"

	"github.com/foodpoint/foodpoint/mason"
	"github.com/foodpoint/foodpoint/rest"
	"github.com/foodpoint/foodpoint/schema"
	"github.com/foodpoint/foodpoint/store"
)

// ListUsers creates the GET /api/users/ endpoint.
func ListUsers(s UserStore) rest.ApiOption {
	h := &listUsersHandler{store: s}
	return rest.Handle(
		http.MethodGet,
		rest.BasePath("/api").Segment("users").Slash(),
		h,
		rest.ReturnsMason(http.StatusOK),
	)
}

type listUsersHandler struct {
	store UserStore
}

func (h *listUsersHandler) Handle(ctx context.Context, req *rest.Request) (rest.Response, error) {
	users, err := h.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*mason.Document, 0, len(users))
	for _, u := range users {
		item := mason.New(
			mason.F("name", u.Name),
			mason.F("userName", u.UserName),
		)
		item.AddControl("self", userHref(u.UserName))
		item.AddControl("profile", UserProfile)
		items = append(items, item)
	}

	doc := mason.New(mason.F("items", items))
	doc.AddNamespace(Namespace, LinkRelationsURL)
	doc.AddControl("self", usersHref())
	doc.AddControl("fpoint:add-user", usersHref(),
		mason.Title("Add a new user"),
		mason.Method(http.MethodPost),
		mason.Encoding("json"),
		mason.Schema(schema.Users.Schema()),
	)
	doc.AddControl("fpoint:all-categories", categoriesHref(), mason.Title("All categories"))
	doc.AddControl("fpoint:all-ethnicities", ethnicitiesHref(), mason.Title("All ethnicities"))
	return doc, nil
}

// AddUser creates the POST /api/users/ endpoint.
func AddUser(s UserStore) rest.ApiOption {
	h := &addUserHandler{store: s}
	return rest.Handle(
		http.MethodPost,
		rest.BasePath("/api").Segment("users").Slash(),
		h,
		rest.RequestSchema(schema.Users.Schema()),
		rest.Returns(http.StatusCreated),
	)
}

type addUserHandler struct {
	store UserStore
}

func (h *addUserHandler) Handle(ctx context.Context, req *rest.Request) (rest.Response, error) {
	body, err := req.JSON()
	if err != nil {
		return nil, err
	}

	u, err := schema.Users.Decode(body)
	if err != nil {
		return nil, rest.InvalidDocumentError{Cause: err}
	}

	created, err := h.store.CreateUser(ctx, store.User{
		Name:     u.Name,
		UserName: u.UserName,
	})
	if err != nil {
		return nil, mapUnique(err, fmt.Sprintf("User with userName %s already exists.", u.UserName))
	}
	return rest.Created{Location: userHref(created.UserName)}, nil
}

// GetUser creates the GET /api/users/{user}/ endpoint.
func GetUser(s UserStore) rest.ApiOption {
	h := &getUserHandler{store: s}
	return rest.Handle(
		http.MethodGet,
		rest.BasePath("/api").Segment("users").Param("user").Slash(),
		h,
		rest.ReturnsMason(http.StatusOK),
	)
}

type getUserHandler struct {
	store UserStore
}

func (h *getUserHandler) Handle(ctx context.Context, req *rest.Request) (rest.Response, error) {
	u, err := findUser(ctx, h.store, req.PathValue("user"))
	if err != nil {
		return nil, err
	}

	doc := mason.New(
		mason.F("name", u.Name),
		mason.F("userName", u.UserName),
	)
	doc.AddNamespace(Namespace, LinkRelationsURL)
	doc.AddControl("self", userHref(u.UserName))
	doc.AddControl("profile", UserProfile)
	doc.AddControl("fpoint:all-users", usersHref(), mason.Title("All users"))
	doc.AddControl("fpoint:collections-by", collectionsHref(u.UserName), mason.Title("Collections by this user"))
	doc.AddControl("edit", userHref(u.UserName),
		mason.Title("Edit this user's information"),
		mason.Method(http.MethodPut),
		mason.Encoding("json"),
		mason.Schema(schema.Users.Schema()),
	)
	doc.AddControl("fpoint:delete", userHref(u.UserName),
		mason.Title("Delete this user"),
		mason.Method(http.MethodDelete),
	)
	return doc, nil
}

// UpdateUser creates the PUT /api/users/{user}/ endpoint.
func UpdateUser(s UserStore) rest.ApiOption {
	h := &updateUserHandler{store: s}
	return rest.Handle(
		http.MethodPut,
		rest.BasePath("/api").Segment("users").Param("user").Slash(),
		h,
		rest.RequestSchema(schema.Users.Schema()),
		rest.Returns(http.StatusNoContent),
	)
}

type updateUserHandler struct {
	store UserStore
}

func (h *updateUserHandler) Handle(ctx context.Context, req *rest.Request) (rest.Response, error) {
	target, err := findUser(ctx, h.store, req.PathValue("user"))
	if err != nil {
		return nil, err
	}

	body, err := req.JSON()
	if err != nil {
		return nil, err
	}

	u, err := schema.Users.Decode(body)
	if err != nil {
		return nil, rest.InvalidDocumentError{Cause: err}
	}

	err = h.store.UpdateUser(ctx, target.ID, store.User{
		Name:     u.Name,
		UserName: u.UserName,
	})
	if err != nil {
		return nil, mapUnique(err, fmt.Sprintf("User with userName %s already exists.", u.UserName))
	}
	return rest.NoContent{}, nil
}

// DeleteUser creates the DELETE /api/users/{user}/ endpoint. Deleting
// a user removes their collections but leaves recipes in place.
func DeleteUser(s UserStore) rest.ApiOption {
	h := &deleteUserHandler{store: s}
	return rest.Handle(
		http.MethodDelete,
		rest.BasePath("/api").Segment("users").Param("user").Slash(),
		h,
		rest.Returns(http.StatusNoContent),
	)
}

type deleteUserHandler struct {
	store UserStore
}

func (h *deleteUserHandler) Handle(ctx context.Context, req *rest.Request) (rest.Response, error) {
	u, err := findUser(ctx, h.store, req.PathValue("user"))
	if err != nil {
		return nil, err
	}

	err = h.store.DeleteUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return rest.NoContent{}, nil
}
