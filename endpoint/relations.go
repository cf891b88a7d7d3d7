// Copyright (c) 2025 Foodpoint Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package endpoint

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/foodpoint/foodpoint/mason"
	"github.com/foodpoint/foodpoint/rest"
)

var linkRelations = map[string]string{
	"add-user":        "Create a new user account.",
	"add-collection":  "Create a new collection for a user.",
	"add-recipe":      "Add a new recipe to a collection.",
	"add-category":    "Create a new recipe category.",
	"add-ethnicity":   "Create a new recipe ethnicity.",
	"all-users":       "List all registered users.",
	"all-categories":  "List all recipe categories.",
	"all-ethnicities": "List all recipe ethnicities.",
	"collections-by":  "List the collections owned by a user.",
	"category":        "The category a recipe belongs to.",
	"ethnicity":       "The ethnicity a recipe belongs to.",
	"delete":          "Delete the resource the control is attached to.",
}

var profiles = map[string]string{
	"user":       "A registered user account.",
	"collection": "A named set of recipes owned by a user.",
	"recipe":     "A single recipe with its category and ethnicity.",
	"category":   "A recipe category.",
	"ethnicity":  "A recipe ethnicity.",
	"error":      "An error response document.",
}

// LinkRelations creates the GET /foodpoint/link-relations/ endpoint
// the fpoint curie prefix resolves to. With [RedirectTo] it forwards
// to the hosted documentation instead of serving a document inline.
func LinkRelations(opts ...Option) rest.ApiOption {
	o := buildOptions(opts)
	return rest.Route(http.MethodGet, LinkRelationsURL, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if o.redirectBase != "" {
			http.Redirect(w, r, o.redirectBase+r.URL.Path, http.StatusFound)
			return
		}
		writeJSON(w, linkRelations)
	}))
}

// Profiles creates the GET /profiles/{profile}/ endpoint serving the
// resource profiles referenced by representation controls.
func Profiles(opts ...Option) rest.ApiOption {
	o := buildOptions(opts)
	return rest.Route(http.MethodGet, "/profiles/{profile}/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if o.redirectBase != "" {
			http.Redirect(w, r, o.redirectBase+r.URL.Path, http.StatusFound)
			return
		}

		name := chi.URLParam(r, "profile")
		desc, ok := profiles[name]
		if !ok {
			doc := mason.Error(r.URL.Path, "Not found")
			doc.AddControl("profile", ErrorProfile)
			_ = doc.WriteStatus(r.Context(), w, http.StatusNotFound)
			return
		}
		writeJSON(w, map[string]string{
			"profile":     name,
			"description": desc,
		})
	}))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
