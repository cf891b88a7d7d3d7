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

func collectionsPath() rest.Path {
	return rest.BasePath("/api").
		Segment("users").
		Param("user").
		Segment("collections").
		Slash()
}

func collectionPath() rest.Path {
	return rest.BasePath("/api").
		Segment("users").
		Param("user").
		Segment("collections").
		Param("collection").
		Slash()
}

// ListCollections creates the GET /api/users/{user}/collections/ endpoint.
func ListCollections(users UserStore, collections CollectionStore) rest.ApiOption {
	h := &listCollectionsHandler{
		users:       users,
		collections: collections,
	}
	return rest.Handle(
		http.MethodGet,
		collectionsPath(),
		h,
		rest.ReturnsMason(http.StatusOK),
	)
}

type listCollectionsHandler struct {
	users       UserStore
	collections CollectionStore
}

func (h *listCollectionsHandler) Handle(ctx context.Context, req *rest.Request) (rest.Response, error) {
	u, err := findUser(ctx, h.users, req.PathValue("user"))
	if err != nil {
		return nil, err
	}

	cs, err := h.collections.ListCollections(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	items := make([]*mason.Document, 0, len(cs))
	for _, c := range cs {
		item := mason.New(
			mason.F("name", c.Name),
			mason.F("description", c.Description),
		)
		item.AddControl("self", collectionHref(u.UserName, c.Name))
		item.AddControl("profile", CollectionProfile)
		items = append(items, item)
	}

	doc := mason.New(mason.F("items", items))
	doc.AddNamespace(Namespace, LinkRelationsURL)
	doc.AddControl("self", collectionsHref(u.UserName))
	doc.AddControl("fpoint:add-collection", collectionsHref(u.UserName),
		mason.Title("Add new collection for user"),
		mason.Method(http.MethodPost),
		mason.Encoding("json"),
		mason.Schema(schema.Collections.Schema()),
	)
	return doc, nil
}

// AddCollection creates the POST /api/users/{user}/collections/ endpoint.
func AddCollection(users UserStore, collections CollectionStore) rest.ApiOption {
	h := &addCollectionHandler{
		users:       users,
		collections: collections,
	}
	return rest.Handle(
		http.MethodPost,
		collectionsPath(),
		h,
		rest.RequestSchema(schema.Collections.Schema()),
		rest.Returns(http.StatusCreated),
	)
}

type addCollectionHandler struct {
	users       UserStore
	collections CollectionStore
}

func (h *addCollectionHandler) Handle(ctx context.Context, req *rest.Request) (rest.Response, error) {
	u, err := findUser(ctx, h.users, req.PathValue("user"))
	if err != nil {
		return nil, err
	}

	body, err := req.JSON()
	if err != nil {
		return nil, err
	}

	c, err := schema.Collections.Decode(body)
	if err != nil {
		return nil, rest.InvalidDocumentError{Cause: err}
	}

	created, err := h.collections.CreateCollection(ctx, store.Collection{
		Name:        c.Name,
		Description: stringOr(c.Description, ""),
		UserID:      u.ID,
	})
	if err != nil {
		return nil, mapUnique(err, fmt.Sprintf("Collection against user %s already exists.", u.UserName))
	}
	return rest.Created{Location: collectionHref(u.UserName, created.Name)}, nil
}

// GetCollection creates the GET /api/users/{user}/collections/{collection}/
// endpoint. The document lists the recipes belonging to the collection.
func GetCollection(users UserStore, collections CollectionStore, recipes RecipeStore) rest.ApiOption {
	h := &getCollectionHandler{
		users:       users,
		collections: collections,
		recipes:     recipes,
	}
	return rest.Handle(
		http.MethodGet,
		collectionPath(),
		h,
		rest.ReturnsMason(http.StatusOK),
	)
}

type getCollectionHandler struct {
	users       UserStore
	collections CollectionStore
	recipes     RecipeStore
}

func (h *getCollectionHandler) Handle(ctx context.Context, req *rest.Request) (rest.Response, error) {
	u, err := findUser(ctx, h.users, req.PathValue("user"))
	if err != nil {
		return nil, err
	}

	c, err := findCollection(ctx, h.collections, u.ID, req.PathValue("collection"))
	if err != nil {
		return nil, err
	}

	rs, err := h.recipes.ListRecipes(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	items := make([]*mason.Document, 0, len(rs))
	for _, r := range rs {
		item := mason.New(
			mason.F("title", r.Title),
			mason.F("description", r.Description),
		)
		item.AddControl("self", recipeHref(u.UserName, c.Name, r.ID))
		item.AddControl("profile", RecipeProfile)
		items = append(items, item)
	}

	doc := mason.New(
		mason.F("name", c.Name),
		mason.F("description", c.Description),
		mason.F("items", items),
	)
	doc.AddNamespace(Namespace, LinkRelationsURL)
	doc.AddControl("self", collectionHref(u.UserName, c.Name))
	doc.AddControl("profile", CollectionProfile)
	doc.AddControl("fpoint:collections-by", collectionsHref(u.UserName), mason.Title("Collections by this user"))
	doc.AddControl("fpoint:add-recipe", collectionHref(u.UserName, c.Name),
		mason.Title("Add new recipe to collection of user"),
		mason.Method(http.MethodPost),
		mason.Encoding("json"),
		mason.Schema(schema.Recipes.Schema()),
	)
	doc.AddControl("edit", collectionHref(u.UserName, c.Name),
		mason.Title("Edit this collection information"),
		mason.Method(http.MethodPut),
		mason.Encoding("json"),
		mason.Schema(schema.Collections.Schema()),
	)
	doc.AddControl("fpoint:delete", collectionHref(u.UserName, c.Name),
		mason.Title("Delete this collection"),
		mason.Method(http.MethodDelete),
	)
	return doc, nil
}

// UpdateCollection creates the PUT /api/users/{user}/collections/{collection}/
// endpoint.
func UpdateCollection(users UserStore, collections CollectionStore, opts ...Option) rest.ApiOption {
	h := &updateCollectionHandler{
		users:       users,
		collections: collections,
		opts:        buildOptions(opts),
	}
	return rest.Handle(
		http.MethodPut,
		collectionPath(),
		h,
		rest.RequestSchema(schema.Collections.Schema()),
		rest.Returns(http.StatusNoContent),
	)
}

type updateCollectionHandler struct {
	users       UserStore
	collections CollectionStore
	opts        *Options
}

func (h *updateCollectionHandler) Handle(ctx context.Context, req *rest.Request) (rest.Response, error) {
	u, err := findUser(ctx, h.users, req.PathValue("user"))
	if err != nil {
		return nil, err
	}

	target, err := findCollection(ctx, h.collections, u.ID, req.PathValue("collection"))
	if err != nil {
		return nil, err
	}

	body, err := req.JSON()
	if err != nil {
		return nil, err
	}

	c, err := schema.Collections.Decode(body)
	if err != nil {
		return nil, rest.InvalidDocumentError{Cause: err}
	}

	description := target.Description
	if h.opts.clearOmitted {
		description = ""
	}

	err = h.collections.UpdateCollection(ctx, target.ID, store.Collection{
		Name:        c.Name,
		Description: stringOr(c.Description, description),
		UserID:      u.ID,
	})
	if err != nil {
		return nil, mapUnique(err, fmt.Sprintf("Collection with name %s already exists for this user.", c.Name))
	}
	return rest.NoContent{}, nil
}

// DeleteCollection creates the DELETE /api/users/{user}/collections/{collection}/
// endpoint. Recipes survive the deletion of a collection holding them.
func DeleteCollection(users UserStore, collections CollectionStore) rest.ApiOption {
	h := &deleteCollectionHandler{
		users:       users,
		collections: collections,
	}
	return rest.Handle(
		http.MethodDelete,
		collectionPath(),
		h,
		rest.Returns(http.StatusNoContent),
	)
}

type deleteCollectionHandler struct {
	users       UserStore
	collections CollectionStore
}

func (h *deleteCollectionHandler) Handle(ctx context.Context, req *rest.Request) (rest.Response, error) {
	u, err := findUser(ctx, h.users, req.PathValue("user"))
	if err != nil {
		return nil, err
	}

	c, err := findCollection(ctx, h.collections, u.ID, req.PathValue("collection"))
	if err != nil {
		return nil, err
	}

	err = h.collections.DeleteCollection(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return rest.NoContent{}, nil
}
