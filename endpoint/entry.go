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
)

// EntryPoint creates the GET /api/ endpoint. The returned document
// carries no state of its own, only the controls clients need to
// start navigating the API.
func EntryPoint() rest.ApiOption {
	return rest.Handle(
		http.MethodGet,
		rest.BasePath("/api").Slash(),
		rest.HandlerFunc(entryPoint),
		rest.ReturnsMason(http.StatusOK),
	)
}

func entryPoint(ctx context.Context, req *rest.Request) (rest.Response, error) {
	doc := mason.New()
	doc.AddNamespace(Namespace, LinkRelationsURL)
	doc.AddControl("self", "/api/")
	doc.AddControl("fpoint:all-users", usersHref(), mason.Title("All users"))
	doc.AddControl("fpoint:all-categories", categoriesHref(), mason.Title("All categories"))
	doc.AddControl("fpoint:all-ethnicities", ethnicitiesHref(), mason.Title("All ethnicities"))
	return doc, nil
}
