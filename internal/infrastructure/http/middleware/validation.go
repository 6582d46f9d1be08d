package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	nethttpmiddleware "github.com/oapi-codegen/nethttp-middleware"

	"github.com/rezkam/calendar/internal/infrastructure/http/response"
)

// ValidationConfig holds configuration for the OpenAPI validation middleware.
type ValidationConfig struct {
	// MultiError collects every violation instead of stopping at the first.
	MultiError bool
}

// NewValidator validates requests against the OpenAPI document and answers
// violations with 400 VALIDATION_ERROR. The router is expected under /api.
func NewValidator(spec *openapi3.T, config ValidationConfig) func(http.Handler) http.Handler {
	spec.Servers = openapi3.Servers{{URL: "/api"}}

	opts := &nethttpmiddleware.Options{
		Options: openapi3filter.Options{
			MultiError:         config.MultiError,
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
		ErrorHandlerWithOpts:  validationErrorHandler,
		SilenceServersWarning: true,
	}

	return nethttpmiddleware.OapiRequestValidatorWithOptions(spec, opts)
}

func validationErrorHandler(ctx context.Context, err error, w http.ResponseWriter, r *http.Request, opts nethttpmiddleware.ErrorHandlerOpts) {
	details := parseValidationError(err)

	slog.WarnContext(ctx, "request validation failed",
		"path", r.URL.Path,
		"method", r.Method,
		"invalid_field_count", len(details),
		"error", err.Error())

	status := opts.StatusCode
	if status == 0 {
		status = http.StatusBadRequest
	}

	response.JSON(w, status, response.ErrorResponse{
		Error: response.ErrorDetail{
			Code:    response.CodeValidationError,
			Message: "validation failed",
			Details: details,
		},
	})
}

// parseValidationError pulls the first field name and issue out of a kin-openapi error string:
//
//	request body has an error: doesn't match schema: Error at "/title": minimum string length is 1
//	parameter "scope" in query has an error: value is not one of the allowed values
func parseValidationError(err error) []response.ErrorField {
	if err == nil {
		return []response.ErrorField{}
	}
	msg := err.Error()

	if field, rest, ok := quotedAfter(msg, `Error at "/`); ok {
		issue := "validation failed"
		if _, after, found := strings.Cut(rest, ":"); found && strings.TrimSpace(after) != "" {
			issue = strings.TrimSpace(after)
		}
		return []response.ErrorField{{Field: strings.ReplaceAll(field, "/", "."), Issue: issue}}
	}

	if field, rest, ok := quotedAfter(msg, `parameter "`); ok {
		issue := "invalid parameter"
		if _, after, found := strings.Cut(rest, "has an error:"); found {
			issue = strings.TrimSpace(after)
		}
		return []response.ErrorField{{Field: field, Issue: issue}}
	}

	if strings.Contains(msg, "request body") {
		issue := "invalid request body"
		switch {
		case strings.Contains(msg, "doesn't match"):
			issue = "request body doesn't match schema"
		case strings.Contains(msg, "required"):
			issue = "required field missing"
		}
		return []response.ErrorField{{Field: "body", Issue: issue}}
	}

	return []response.ErrorField{}
}

// quotedAfter returns the text between marker and the next double quote, and the remainder after that quote.
func quotedAfter(msg, marker string) (string, string, bool) {
	_, after, found := strings.Cut(msg, marker)
	if !found {
		return "", "", false
	}
	field, rest, found := strings.Cut(after, `"`)
	if !found {
		return "", "", false
	}
	return field, rest, true
}
