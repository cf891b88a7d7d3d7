// Copyright (c) 2025 Foodpoint Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package endpoint

import (
	"context"
	"net/http"

	"github.com/foodpoint/foodpoint/mason"
	"github.com/foodpoint/foodpoint/rest"
	"github.com/foodpoint/foodpoint/schema"
	"github.com/foodpoint/foodpoint/store"
)

func categoryPath() rest.Path {
	return rest.BasePath("/api").Segment("categories").Param("category").Slash()
}

// ListCategories creates the GET /api/categories/ endpoint.
func ListCategories(s CategoryStore) rest.ApiOption {
	h := &listCategoriesHandler{store: s}
	return rest.Handle(
		http.MethodGet,
		rest.BasePath("/api").Segment("categories").Slash(),
		h,
		rest.ReturnsMason(http.StatusOK),
	)
}

type listCategoriesHandler struct {
	store CategoryStore
}

func (h *listCategoriesHandler) Handle(ctx context.Context, req *rest.Request) (rest.Response, error) {
	cs, err := h.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*mason.Document, 0, len(cs))
	for _, c := range cs {
		item := mason.New(
			mason.F("name", c.Name),
			mason.F("description", c.Description),
		)
		item.AddControl("self", categoryHref(c.Name))
		item.AddControl("profile", CategoryProfile)
		items = append(items, item)
	}

	doc := mason.New(mason.F("items", items))
	doc.AddNamespace(Namespace, LinkRelationsURL)
	doc.AddControl("self", categoriesHref())
	doc.AddControl("fpoint:add-category", categoriesHref(),
		mason.Title("Add a new Category"),
		mason.Method(http.MethodPost),
		mason.Encoding("json"),
		mason.Schema(schema.Categories.Schema()),
	)
	doc.AddControl("fpoint:all-users", usersHref(), mason.Title("All users"))
	return doc, nil
}

// AddCategory creates the POST /api/categories/ endpoint.
func AddCategory(s CategoryStore) rest.ApiOption {
	h := &addCategoryHandler{store: s}
	return rest.Handle(
		http.MethodPost,
		rest.BasePath("/api").Segment("categories").Slash(),
		h,
		rest.RequestSchema(schema.Categories.Schema()),
		rest.Returns(http.StatusCreated),
	)
}

type addCategoryHandler struct {
	store CategoryStore
}

func (h *addCategoryHandler) Handle(ctx context.Context, req *rest.Request) (rest.Response, error) {
	body, err := req.JSON()
	if err != nil {
		return nil, err
	}

	c, err := schema.Categories.Decode(body)
	if err != nil {
		return nil, rest.InvalidDocumentError{Cause: err}
	}

	created, err := h.store.CreateCategory(ctx, store.Category{
		Name:        c.Name,
		Description: stringOr(c.Description, ""),
	})
	if err != nil {
		return nil, mapUnique(err, describe("Category", c.Name))
	}
	return rest.Created{Location: categoryHref(created.Name)}, nil
}

// GetCategory creates the GET /api/categories/{category}/ endpoint.
func GetCategory(s CategoryStore) rest.ApiOption {
	h := &getCategoryHandler{store: s}
	return rest.Handle(
		http.MethodGet,
		categoryPath(),
		h,
		rest.ReturnsMason(http.StatusOK),
	)
}

type getCategoryHandler struct {
	store CategoryStore
}

func (h *getCategoryHandler) Handle(ctx context.Context, req *rest.Request) (rest.Response, error) {
	c, err := h.store.FindCategory(ctx, req.PathValue("category"))
	if err != nil {
		return nil, notFoundCategory(err)
	}

	doc := mason.New(
		mason.F("name", c.Name),
		mason.F("description", c.Description),
	)
	doc.AddNamespace(Namespace, LinkRelationsURL)
	doc.AddControl("self", categoryHref(c.Name))
	doc.AddControl("profile", CategoryProfile)
	doc.AddControl("fpoint:all-categories", categoriesHref(), mason.Title("All categories"))
	doc.AddControl("edit", categoryHref(c.Name),
		mason.Title("Edit this category's information"),
		mason.Method(http.MethodPut),
		mason.Encoding("json"),
		mason.Schema(schema.Categories.Schema()),
	)
	return doc, nil
}

// UpdateCategory creates the PUT /api/categories/{category}/ endpoint.
// Categories cannot be deleted since recipes always reference one.
func UpdateCategory(s CategoryStore, opts ...Option) rest.ApiOption {
	h := &updateCategoryHandler{
		store: s,
		opts:  buildOptions(opts),
	}
	return rest.Handle(
		http.MethodPut,
		categoryPath(),
		h,
		rest.RequestSchema(schema.Categories.Schema()),
		rest.Returns(http.StatusNoContent),
	)
}

type updateCategoryHandler struct {
	store CategoryStore
	opts  *Options
}

func (h *updateCategoryHandler) Handle(ctx context.Context, req *rest.Request) (rest.Response, error) {
	target, err := h.store.FindCategory(ctx, req.PathValue("category"))
	if err != nil {
		return nil, notFoundCategory(err)
	}

	body, err := req.JSON()
	if err != nil {
		return nil, err
	}

	c, err := schema.Categories.Decode(body)
	if err != nil {
		return nil, rest.InvalidDocumentError{Cause: err}
	}

	description := target.Description
	if h.opts.clearOmitted {
		description = ""
	}

	err = h.store.UpdateCategory(ctx, target.ID, store.Category{
		Name:        c.Name,
		Description: stringOr(c.Description, description),
	})
	if err != nil {
		return nil, mapUnique(err, describe("Category", c.Name))
	}
	return rest.NoContent{}, nil
}
