// Copyright (c) 2025 Foodpoint Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/foodpoint/foodpoint"
	"github.com/foodpoint/foodpoint/health"
	"github.com/foodpoint/foodpoint/mason"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorProfile is the href error documents link to as their
// "profile" control.
const ErrorProfile = "/profiles/error/"

// ApiOptions holds configuration values used when constructing an [Api].
// This struct is passed to [ApiOption] implementations to configure the
// API's router and OpenAPI definition.
type ApiOptions struct {
	mux *chi.Mux
	def *openapi3.Spec

	readiness http.Handler
	liveness  http.Handler
}

// ApiOption is an interface for configuring an [Api].
// Implementations can modify the API's router or OpenAPI definition.
type ApiOption interface {
	ApplyApiOption(*ApiOptions)
}

type apiOptionFunc func(*ApiOptions)

func (f apiOptionFunc) ApplyApiOption(ao *ApiOptions) {
	f(ao)
}

// Readiness overrides the readiness probe endpoint at GET /health/readiness.
// The default probe always reports ready.
func Readiness(h http.Handler) ApiOption {
	return apiOptionFunc(func(ao *ApiOptions) {
		ao.readiness = h
	})
}

// Liveness overrides the liveness probe endpoint at GET /health/liveness.
// The default probe always reports alive.
func Liveness(h http.Handler) ApiOption {
	return apiOptionFunc(func(ao *ApiOptions) {
		ao.liveness = h
	})
}

// HealthHandler exposes a [health.Monitor] as a probe handler meant
// to be used with [Readiness] or [Liveness].
func HealthHandler(m health.Monitor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		healthy, err := m.Healthy(r.Context())
		if err != nil || !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}

// NotFound configures a custom handler for requests that don't match
// any registered route.
func NotFound(h http.Handler) ApiOption {
	return apiOptionFunc(func(ao *ApiOptions) {
		ao.mux.NotFound(h.ServeHTTP)
	})
}

// MethodNotAllowed configures a custom handler for requests to valid
// routes with unsupported HTTP methods.
func MethodNotAllowed(h http.Handler) ApiOption {
	return apiOptionFunc(func(ao *ApiOptions) {
		ao.mux.MethodNotAllowed(h.ServeHTTP)
	})
}

// Route registers a plain [http.Handler] route without adding it to
// the OpenAPI definition. Static documents like profiles and link
// relations are served this way.
func Route(method, pattern string, h http.Handler) ApiOption {
	return apiOptionFunc(func(ao *ApiOptions) {
		ao.mux.Method(method, pattern, h)
	})
}

// Api is an [http.Handler] serving a Mason hypermedia API.
//
// Every Api automatically provides:
//   - OpenAPI 3.0 definition at GET /openapi.json
//   - Liveness probe at GET /health/liveness
//   - Readiness probe at GET /health/readiness
//   - Mason error documents for unknown routes and methods
//   - Request id propagation via the X-Request-Id header
type Api struct {
	router *chi.Mux
}

// NewApi creates a new [Api] with the specified title and version.
//
// The title and version are included in the OpenAPI definition served
// at /openapi.json. Operations and further configuration are added via
// [ApiOption] parameters.
func NewApi(title, version string, opts ...ApiOption) *Api {
	log := foodpoint.Logger("rest")

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ao := &ApiOptions{
		mux: chi.NewMux(),
		def: &openapi3.Spec{
			Openapi: "3.0",
			Info: openapi3.Info{
				Title:   title,
				Version: version,
			},
		},
		readiness: ok,
		liveness:  ok,
	}

	ao.mux.Use(requestID)
	ao.mux.NotFound(notFoundHandler)
	ao.mux.MethodNotAllowed(methodNotAllowedHandler)

	for _, opt := range opts {
		opt.ApplyApiOption(ao)
	}

	ao.mux.Method(http.MethodGet, "/health/readiness", ao.readiness)
	ao.mux.Method(http.MethodGet, "/health/liveness", ao.liveness)

	ao.mux.Get("/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		enc := json.NewEncoder(w)
		err := enc.Encode(ao.def)
		if err == nil {
			return
		}
		log.ErrorContext(
			r.Context(),
			"failed to encode openapi schema to json",
			slog.Any("error", err),
		)
	})

	return &Api{
		router: ao.mux,
	}
}

// ServeHTTP implements the [http.Handler] interface.
func (api *Api) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	api.router.ServeHTTP(w, req)
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	eh := NewMasonErrorHandler(foodpoint.LogHandler("rest"), ErrorProfile)
	ctx := withResourceURL(r.Context(), r.URL.Path)
	eh.OnError(ctx, w, NotFoundError{})
}

func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	doc := mason.Error(r.URL.Path, "Method not allowed")
	doc.AddControl("profile", ErrorProfile)

	err := doc.WriteStatus(r.Context(), w, http.StatusMethodNotAllowed)
	if err != nil {
		foodpoint.Logger("rest").ErrorContext(
			r.Context(),
			"failed to write error response",
			slog.Any("error", err),
		)
	}
}
