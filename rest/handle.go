// Copyright (c) 2025 Foodpoint Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"context"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/foodpoint/foodpoint"
	"github.com/foodpoint/foodpoint/mason"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/jsonschema-go"
	"github.com/swaggest/openapi-go/openapi3"
	"github.com/z5labs/sdk-go/try"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Request wraps [http.Request] with helpers for reading path
// parameters and JSON bodies.
type Request struct {
	r *http.Request
}

// PathValue returns the value of a path parameter declared with
// [Path.Param].
func (req *Request) PathValue(name string) string {
	return chi.URLParam(req.r, name)
}

// URL returns the request path.
func (req *Request) URL() string {
	return req.r.URL.Path
}

// JSON returns the raw request body. It returns an
// [UnsupportedMediaTypeError] when the request carries no body or
// its content type is not JSON.
func (req *Request) JSON() ([]byte, error) {
	mt, _, err := mime.ParseMediaType(req.r.Header.Get("Content-Type"))
	if err != nil || mt != "application/json" {
		return nil, UnsupportedMediaTypeError{Detail: "Request content type must be JSON"}
	}

	b, err := io.ReadAll(req.r.Body)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, UnsupportedMediaTypeError{Detail: "Request content type must be JSON"}
	}
	return b, nil
}

// Response is implemented by any type which knows how to marshal
// itself into a HTTP response. [mason.Document], [Created] and
// [NoContent] cover every response the API returns.
type Response interface {
	WriteResponse(context.Context, http.ResponseWriter) error
}

// Handler implements the core logic of a single operation.
type Handler interface {
	Handle(context.Context, *Request) (Response, error)
}

// HandlerFunc is an adapter to allow the use of ordinary functions
// as [Handler]s.
type HandlerFunc func(context.Context, *Request) (Response, error)

// Handle implements the [Handler] interface.
func (f HandlerFunc) Handle(ctx context.Context, req *Request) (Response, error) {
	return f(ctx, req)
}

// OperationOptions holds configuration for an HTTP operation
// registered with [Handle], covering error handling and the OpenAPI
// definition of the operation.
type OperationOptions struct {
	errHandler ErrorHandler
	reqSchema  *jsonschema.Schema
	responses  map[string]openapi3.ResponseOrRef
}

// OperationOption configures an operation created by [Handle].
type OperationOption func(*OperationOptions)

// OnError configures a custom [ErrorHandler] for an operation.
// Operations default to a [MasonErrorHandler].
func OnError(eh ErrorHandler) OperationOption {
	return func(oo *OperationOptions) {
		oo.errHandler = eh
	}
}

// RequestSchema documents the JSON schema of the operation's request
// body in the OpenAPI definition.
func RequestSchema(s *jsonschema.Schema) OperationOption {
	return func(oo *OperationOptions) {
		oo.reqSchema = s
	}
}

// Returns documents a bodiless response status in the OpenAPI
// definition.
func Returns(status int) OperationOption {
	return func(oo *OperationOptions) {
		oo.responses[strconv.Itoa(status)] = openapi3.ResponseOrRef{
			Response: &openapi3.Response{
				Description: http.StatusText(status),
			},
		}
	}
}

// ReturnsMason documents a Mason document response in the OpenAPI
// definition.
func ReturnsMason(status int) OperationOption {
	return func(oo *OperationOptions) {
		oo.responses[strconv.Itoa(status)] = openapi3.ResponseOrRef{
			Response: &openapi3.Response{
				Description: http.StatusText(status),
				Content: map[string]openapi3.MediaType{
					mason.MediaType: {},
				},
			},
		}
	}
}

type operationHandler struct {
	tracer     trace.Tracer
	errHandler ErrorHandler
	inner      Handler
}

// Handle registers an HTTP operation with an [Api].
//
// It creates an [ApiOption] that configures both the HTTP routing and
// the OpenAPI definition for the operation.
func Handle(method string, path Path, h Handler, opts ...OperationOption) ApiOption {
	return apiOptionFunc(func(ao *ApiOptions) {
		oo := &OperationOptions{
			errHandler: NewMasonErrorHandler(foodpoint.LogHandler("rest"), ErrorProfile),
			responses:  make(map[string]openapi3.ResponseOrRef),
		}
		for _, opt := range opts {
			opt(oo)
		}

		var op openapi3.Operation
		for _, el := range path {
			p, ok := el.(pathParam)
			if !ok {
				continue
			}

			required := true
			op.Parameters = append(op.Parameters, openapi3.ParameterOrRef{
				Parameter: &openapi3.Parameter{
					Name:     string(p),
					In:       openapi3.ParameterInPath,
					Required: &required,
				},
			})
		}
		if oo.reqSchema != nil {
			var schemaOrRef openapi3.SchemaOrRef
			schemaOrRef.FromJSONSchema(oo.reqSchema.ToSchemaOrBool())

			required := true
			op.RequestBody = &openapi3.RequestBodyOrRef{
				RequestBody: &openapi3.RequestBody{
					Required: &required,
					Content: map[string]openapi3.MediaType{
						"application/json": {
							Schema: &schemaOrRef,
						},
					},
				},
			}
		}
		op.Responses = openapi3.Responses{
			MapOfResponseOrRefValues: oo.responses,
		}

		endpoint := path.String()

		err := ao.def.AddOperation(method, endpoint, op)
		if err != nil {
			panic(err)
		}

		ao.mux.Method(method, endpoint, otelhttp.WithRouteTag(endpoint, &operationHandler{
			tracer:     otel.Tracer("rest"),
			errHandler: oo.errHandler,
			inner:      h,
		}))
	})
}

// ServeHTTP implements [http.Handler] for operation handlers. It
// delegates to the inner handler and renders any returned error via
// the configured error handler. All operations are traced.
func (o *operationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	spanCtx, span := o.tracer.Start(r.Context(), "operationHandler.ServeHTTP")
	defer span.End()

	ctx := withResourceURL(spanCtx, r.URL.Path)

	var err error
	defer func() {
		if err == nil {
			return
		}

		o.errHandler.OnError(ctx, w, err)
	}()
	defer try.Recover(&err)

	var resp Response
	resp, err = o.inner.Handle(ctx, &Request{r: r.WithContext(ctx)})
	if err != nil {
		return
	}

	werr := resp.WriteResponse(ctx, w)
	if werr != nil {
		span.RecordError(werr)
	}
}

type resourceURLKey struct{}

func withResourceURL(ctx context.Context, url string) context.Context {
	return context.WithValue(ctx, resourceURLKey{}, url)
}

// ResourceURL returns the path of the resource the current request
// addressed. Error documents echo it back as "resource_url".
func ResourceURL(ctx context.Context) string {
	url, _ := ctx.Value(resourceURLKey{}).(string)
	return url
}
