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

func ethnicityPath() rest.Path {
	return rest.BasePath("/api").Segment("ethnicities").Param("ethnicity").Slash()
}

// ListEthnicities creates the GET /api/ethnicities/ endpoint.
func ListEthnicities(s EthnicityStore) rest.ApiOption {
	h := &listEthnicitiesHandler{store: s}
	return rest.Handle(
		http.MethodGet,
		rest.BasePath("/api").Segment("ethnicities").Slash(),
		h,
		rest.ReturnsMason(http.StatusOK),
	)
}

type listEthnicitiesHandler struct {
	store EthnicityStore
}

func (h *listEthnicitiesHandler) Handle(ctx context.Context, req *rest.Request) (rest.Response, error) {
	es, err := h.store.ListEthnicities(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*mason.Document, 0, len(es))
	for _, e := range es {
		item := mason.New(
			mason.F("name", e.Name),
			mason.F("description", e.Description),
		)
		item.AddControl("self", ethnicityHref(e.Name))
		item.AddControl("profile", EthnicityProfile)
		items = append(items, item)
	}

	doc := mason.New(mason.F("items", items))
	doc.AddNamespace(Namespace, LinkRelationsURL)
	doc.AddControl("self", ethnicitiesHref())
	doc.AddControl("fpoint:add-ethnicity", ethnicitiesHref(),
		mason.Title("Add a new Ethnicity"),
		mason.Method(http.MethodPost),
		mason.Encoding("json"),
		mason.Schema(schema.Ethnicities.Schema()),
	)
	doc.AddControl("fpoint:all-users", usersHref(), mason.Title("All users"))
	return doc, nil
}

// AddEthnicity creates the POST /api/ethnicities/ endpoint.
func AddEthnicity(s EthnicityStore) rest.ApiOption {
	h := &addEthnicityHandler{store: s}
	return rest.Handle(
		http.MethodPost,
		rest.BasePath("/api").Segment("ethnicities").Slash(),
		h,
		rest.RequestSchema(schema.Ethnicities.Schema()),
		rest.Returns(http.StatusCreated),
	)
}

type addEthnicityHandler struct {
	store EthnicityStore
}

func (h *addEthnicityHandler) Handle(ctx context.Context, req *rest.Request) (rest.Response, error) {
	body, err := req.JSON()
	if err != nil {
		return nil, err
	}

	e, err := schema.Ethnicities.Decode(body)
	if err != nil {
		return nil, rest.InvalidDocumentError{Cause: err}
	}

	created, err := h.store.CreateEthnicity(ctx, store.Ethnicity{
		Name:        e.Name,
		Description: stringOr(e.Description, ""),
	})
	if err != nil {
		return nil, mapUnique(err, describe("Ethnicity", e.Name))
	}
	return rest.Created{Location: ethnicityHref(created.Name)}, nil
}

// GetEthnicity creates the GET /api/ethnicities/{ethnicity}/ endpoint.
func GetEthnicity(s EthnicityStore) rest.ApiOption {
	h := &getEthnicityHandler{store: s}
	return rest.Handle(
		http.MethodGet,
		ethnicityPath(),
		h,
		rest.ReturnsMason(http.StatusOK),
	)
}

type getEthnicityHandler struct {
	store EthnicityStore
}

func (h *getEthnicityHandler) Handle(ctx context.Context, req *rest.Request) (rest.Response, error) {
	e, err := h.store.FindEthnicity(ctx, req.PathValue("ethnicity"))
	if err != nil {
		return nil, notFoundEthnicity(err)
	}

	doc := mason.New(
		mason.F("name", e.Name),
		mason.F("description", e.Description),
	)
	doc.AddNamespace(Namespace, LinkRelationsURL)
	doc.AddControl("self", ethnicityHref(e.Name))
	doc.AddControl("profile", EthnicityProfile)
	doc.AddControl("fpoint:all-ethnicities", ethnicitiesHref(), mason.Title("All ethnicities"))
	doc.AddControl("edit", ethnicityHref(e.Name),
		mason.Title("Edit this ethnicity's information"),
		mason.Method(http.MethodPut),
		mason.Encoding("json"),
		mason.Schema(schema.Ethnicities.Schema()),
	)
	return doc, nil
}

// UpdateEthnicity creates the PUT /api/ethnicities/{ethnicity}/ endpoint.
// Like categories, ethnicities cannot be deleted.
func UpdateEthnicity(s EthnicityStore, opts ...Option) rest.ApiOption {
	h := &updateEthnicityHandler{
		store: s,
		opts:  buildOptions(opts),
	}
	return rest.Handle(
		http.MethodPut,
		ethnicityPath(),
		h,
		rest.RequestSchema(schema.Ethnicities.Schema()),
		rest.Returns(http.StatusNoContent),
	)
}

type updateEthnicityHandler struct {
	store EthnicityStore
	opts  *Options
}

func (h *updateEthnicityHandler) Handle(ctx context.Context, req *rest.Request) (rest.Response, error) {
	target, err := h.store.FindEthnicity(ctx, req.PathValue("ethnicity"))
	if err != nil {
		return nil, notFoundEthnicity(err)
	}

	body, err := req.JSON()
	if err != nil {
		return nil, err
	}

	e, err := schema.Ethnicities.Decode(body)
	if err != nil {
		return nil, rest.InvalidDocumentError{Cause: err}
	}

	description := target.Description
	if h.opts.clearOmitted {
		description = ""
	}

	err = h.store.UpdateEthnicity(ctx, target.ID, store.Ethnicity{
		Name:        e.Name,
		Description: stringOr(e.Description, description),
	})
	if err != nil {
		return nil, mapUnique(err, describe("Ethnicity", e.Name))
	}
	return rest.NoContent{}, nil
}
