package http

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
)

//go:embed openapi.yaml
var rawSpec []byte

// GetSwagger parses and validates the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI spec: %w", err)
	}
	return doc, nil
}

// requestValidator rejects requests that do not match the OpenAPI document.
// Paths the document does not describe (e.g. /metrics) pass through untouched.
func requestValidator(doc *openapi3.T) (func(http.Handler) http.Handler, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build OpenAPI router: %w", err)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, pathParams, err := router.FindRoute(r)
			if err != nil {
				if !errors.Is(err, routers.ErrPathNotFound) && !errors.Is(err, routers.ErrMethodNotAllowed) {
					loggerFrom(r.Context()).Warn("OpenAPI route lookup failed", "err", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: pathParams,
				Route:      route,
				Options: &openapi3filter.Options{
					AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
				},
			}
			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				loggerFrom(r.Context()).Warn("request rejected by OpenAPI validation", "err", err)
				writeError(w, r, http.StatusBadRequest, "invalid_request", requestErrorMessage(err))
				return
			}
			next.ServeHTTP(w, r)
		})
	}, nil
}

func requestErrorMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.RequestBody != nil {
			return "Invalid request body: " + firstLine(reqErr.Err)
		}
		if reqErr.Parameter != nil {
			return fmt.Sprintf("Invalid parameter %q: %s", reqErr.Parameter.Name, firstLine(reqErr.Err))
		}
	}
	return "Invalid request: " + firstLine(err)
}

func firstLine(err error) string {
	if err == nil {
		return "malformed"
	}
	msg, _, _ := strings.Cut(err.Error(), "\n")
	return msg
}
