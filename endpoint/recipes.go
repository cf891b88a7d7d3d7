// Copyright (c) 2025 Foodpoint Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package endpoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sourcegraph/conc/pool"

	"github.com/foodpoint/foodpoint/mason"
	"github.com/foodpoint/foodpoint/rest"
	"github.com/foodpoint/foodpoint/schema"
	"github.com/foodpoint/foodpoint/store"
)

func recipePath() rest.Path {
	return rest.BasePath("/api").
		Segment("users").
		Param("user").
		Segment("collections").
		Param("collection").
		Param("recipe").
		Slash()
}

// AddRecipe creates the POST /api/users/{user}/collections/{collection}/
// endpoint. The recipe body names its category and ethnicity, both of
// which must already exist.
func AddRecipe(users UserStore, collections CollectionStore, recipes RecipeStore, categories CategoryStore, ethnicities EthnicityStore) rest.ApiOption {
	h := &addRecipeHandler{
		users:       users,
		collections: collections,
		recipes:     recipes,
		categories:  categories,
		ethnicities: ethnicities,
	}
	return rest.Handle(
		http.MethodPost,
		collectionPath(),
		h,
		rest.RequestSchema(schema.Recipes.Schema()),
		rest.Returns(http.StatusCreated),
	)
}

type addRecipeHandler struct {
	users       UserStore
	collections CollectionStore
	recipes     RecipeStore
	categories  CategoryStore
	ethnicities EthnicityStore
}

func (h *addRecipeHandler) Handle(ctx context.Context, req *rest.Request) (rest.Response, error) {
	u, err := findUser(ctx, h.users, req.PathValue("user"))
	if err != nil {
		return nil, err
	}

	c, err := findCollection(ctx, h.collections, u.ID, req.PathValue("collection"))
	if err != nil {
		return nil, err
	}

	body, err := req.JSON()
	if err != nil {
		return nil, err
	}

	r, err := schema.Recipes.Decode(body)
	if err != nil {
		return nil, rest.InvalidDocumentError{Cause: err}
	}

	cat, eth, err := resolveRefs(ctx, h.categories, h.ethnicities, r.Category, r.Ethnicity)
	if err != nil {
		return nil, err
	}

	created, err := h.recipes.CreateRecipe(ctx, c.ID, store.Recipe{
		Title:       r.Title,
		Description: r.Description,
		Ingredients: r.Ingredients,
		Rating:      r.Rating,
		CategoryID:  cat.ID,
		EthnicityID: eth.ID,
	})
	if err != nil {
		return nil, err
	}
	return rest.Created{Location: recipeHref(u.UserName, c.Name, created.ID)}, nil
}

// resolveRefs looks up the named category and ethnicity concurrently.
// A missing reference is a conflict with the request body, reported
// category first.
func resolveRefs(ctx context.Context, categories CategoryStore, ethnicities EthnicityStore, category, ethnicity string) (store.Category, store.Ethnicity, error) {
	var (
		cat    store.Category
		eth    store.Ethnicity
		catErr error
		ethErr error
	)

	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		cat, catErr = categories.FindCategory(ctx, category)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		eth, ethErr = ethnicities.FindEthnicity(ctx, ethnicity)
		return nil
	})
	_ = p.Wait()

	if catErr != nil {
		if errors.Is(catErr, store.ErrNotFound) {
			catErr = rest.ConflictError{
				Title:  "Category does not exist",
				Detail: fmt.Sprintf("No category with name %s exists.", category),
			}
		}
		return store.Category{}, store.Ethnicity{}, catErr
	}
	if ethErr != nil {
		if errors.Is(ethErr, store.ErrNotFound) {
			ethErr = rest.ConflictError{
				Title:  "Ethnicity does not exist",
				Detail: fmt.Sprintf("No ethnicity with name %s exists.", ethnicity),
			}
		}
		return store.Category{}, store.Ethnicity{}, ethErr
	}
	return cat, eth, nil
}

// GetRecipe creates the GET /api/users/{user}/collections/{collection}/{recipe}/
// endpoint.
func GetRecipe(users UserStore, collections CollectionStore, recipes RecipeStore) rest.ApiOption {
	h := &getRecipeHandler{
		users:       users,
		collections: collections,
		recipes:     recipes,
	}
	return rest.Handle(
		http.MethodGet,
		recipePath(),
		h,
		rest.ReturnsMason(http.StatusOK),
	)
}

type getRecipeHandler struct {
	users       UserStore
	collections CollectionStore
	recipes     RecipeStore
}

func (h *getRecipeHandler) Handle(ctx context.Context, req *rest.Request) (rest.Response, error) {
	u, err := findUser(ctx, h.users, req.PathValue("user"))
	if err != nil {
		return nil, err
	}

	c, err := findCollection(ctx, h.collections, u.ID, req.PathValue("collection"))
	if err != nil {
		return nil, err
	}

	r, err := findRecipe(ctx, h.recipes, c.ID, req.PathValue("recipe"))
	if err != nil {
		return nil, err
	}

	doc := mason.New(
		mason.F("title", r.Title),
		mason.F("description", r.Description),
		mason.F("ingredients", r.Ingredients),
	)
	if r.Rating != nil {
		doc.Set("rating", *r.Rating)
	}
	doc.Set("ethnicity", r.Ethnicity)
	doc.Set("category", r.Category)

	doc.AddNamespace(Namespace, LinkRelationsURL)
	doc.AddControl("self", recipeHref(u.UserName, c.Name, r.ID))
	doc.AddControl("profile", RecipeProfile)
	doc.AddControl("collection", collectionHref(u.UserName, c.Name))
	doc.AddControl("fpoint:category", categoryHref(r.Category), mason.Title("Category of this recipe"))
	doc.AddControl("fpoint:ethnicity", ethnicityHref(r.Ethnicity), mason.Title("Ethnicity of this recipe"))
	doc.AddControl("edit", recipeHref(u.UserName, c.Name, r.ID),
		mason.Title("Edit this recipe information"),
		mason.Method(http.MethodPut),
		mason.Encoding("json"),
		mason.Schema(schema.Recipes.Schema()),
	)
	doc.AddControl("fpoint:delete", recipeHref(u.UserName, c.Name, r.ID),
		mason.Title("Delete this recipe"),
		mason.Method(http.MethodDelete),
	)
	return doc, nil
}

// UpdateRecipe creates the PUT /api/users/{user}/collections/{collection}/{recipe}/
// endpoint.
func UpdateRecipe(users UserStore, collections CollectionStore, recipes RecipeStore, categories CategoryStore, ethnicities EthnicityStore, opts ...Option) rest.ApiOption {
	h := &updateRecipeHandler{
		users:       users,
		collections: collections,
		recipes:     recipes,
		categories:  categories,
		ethnicities: ethnicities,
		opts:        buildOptions(opts),
	}
	return rest.Handle(
		http.MethodPut,
		recipePath(),
		h,
		rest.RequestSchema(schema.Recipes.Schema()),
		rest.Returns(http.StatusNoContent),
	)
}

type updateRecipeHandler struct {
	users       UserStore
	collections CollectionStore
	recipes     RecipeStore
	categories  CategoryStore
	ethnicities EthnicityStore
	opts        *Options
}

func (h *updateRecipeHandler) Handle(ctx context.Context, req *rest.Request) (rest.Response, error) {
	u, err := findUser(ctx, h.users, req.PathValue("user"))
	if err != nil {
		return nil, err
	}

	c, err := findCollection(ctx, h.collections, u.ID, req.PathValue("collection"))
	if err != nil {
		return nil, err
	}

	target, err := findRecipe(ctx, h.recipes, c.ID, req.PathValue("recipe"))
	if err != nil {
		return nil, err
	}

	body, err := req.JSON()
	if err != nil {
		return nil, err
	}

	r, err := schema.Recipes.Decode(body)
	if err != nil {
		return nil, rest.InvalidDocumentError{Cause: err}
	}

	cat, eth, err := resolveRefs(ctx, h.categories, h.ethnicities, r.Category, r.Ethnicity)
	if err != nil {
		return nil, err
	}

	rating := target.Rating
	if h.opts.clearOmitted {
		rating = nil
	}
	if r.Rating != nil {
		rating = r.Rating
	}

	err = h.recipes.UpdateRecipe(ctx, target.ID, store.Recipe{
		Title:       r.Title,
		Description: r.Description,
		Ingredients: r.Ingredients,
		Rating:      rating,
		CategoryID:  cat.ID,
		EthnicityID: eth.ID,
	})
	if err != nil {
		return nil, err
	}
	return rest.NoContent{}, nil
}

// DeleteRecipe creates the DELETE /api/users/{user}/collections/{collection}/{recipe}/
// endpoint. The recipe is removed entirely, not just from this collection.
func DeleteRecipe(users UserStore, collections CollectionStore, recipes RecipeStore) rest.ApiOption {
	h := &deleteRecipeHandler{
		users:       users,
		collections: collections,
		recipes:     recipes,
	}
	return rest.Handle(
		http.MethodDelete,
		recipePath(),
		h,
		rest.Returns(http.StatusNoContent),
	)
}

type deleteRecipeHandler struct {
	users       UserStore
	collections CollectionStore
	recipes     RecipeStore
}

func (h *deleteRecipeHandler) Handle(ctx context.Context, req *rest.Request) (rest.Response, error) {
	u, err := findUser(ctx, h.users, req.PathValue("user"))
	if err != nil {
		return nil, err
	}

	c, err := findCollection(ctx, h.collections, u.ID, req.PathValue("collection"))
	if err != nil {
		return nil, err
	}

	r, err := findRecipe(ctx, h.recipes, c.ID, req.PathValue("recipe"))
	if err != nil {
		return nil, err
	}

	err = h.recipes.DeleteRecipe(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	return rest.NoContent{}, nil
}
