package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/pkg/errors"

	"github.com/NYTimes/ajson/routes"
)

// NotFoundFault is forwarded to the ErrorResponder when no route matches a
// request's path and method.
type NotFoundFault struct {
	Method string
	Path   string
}

func (f *NotFoundFault) Error() string {
	return fmt.Sprintf("no route for %s %s", f.Method, f.Path)
}

// StatusCode is to implement httptransport.StatusCoder
func (f *NotFoundFault) StatusCode() int {
	return http.StatusNotFound
}

// UnhandledFault is forwarded to the ErrorResponder when a request panics
// outside of an endpoint.
type UnhandledFault struct {
	Value interface{}
}

func (f *UnhandledFault) Error() string {
	return fmt.Sprintf("unhandled fault: %v", f.Value)
}

// StatusCode is to implement httptransport.StatusCoder
func (f *UnhandledFault) StatusCode() int {
	return http.StatusInternalServerError
}

// FaultDetail is the error body written in development.
type FaultDetail struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// ErrorResponder is the only writer of fault responses. It is used as the
// go-kit ServerErrorEncoder of every endpoint and by the App for unmatched
// routes and recovered panics.
type ErrorResponder struct {
	development bool
}

// NewErrorResponder returns an ErrorResponder. In development the fault
// message and status are written in the body. Otherwise the body is `{}`,
// or empty for a 404.
func NewErrorResponder(development bool) *ErrorResponder {
	return &ErrorResponder{development: development}
}

// Encode is an httptransport.ErrorEncoder.
func (e *ErrorResponder) Encode(ctx context.Context, err error, w http.ResponseWriter) {
	code := StatusCode(err)

	entry := logWithContext(ctx).WithField("status", code)
	if code >= http.StatusInternalServerError {
		entry.Error("request failed: ", err)
	} else {
		entry.Warn("request failed: ", err)
	}

	// outside of development a 404 has no body, like a lookup with no match
	if !e.development && code == http.StatusNotFound {
		w.WriteHeader(code)
		return
	}

	var body interface{} = struct{}{}
	if e.development {
		body = FaultDetail{Message: err.Error(), Status: code}
	}

	w.Header().Set("Content-Type", routes.JSONContentType)
	w.WriteHeader(code)
	if werr := json.NewEncoder(w).Encode(body); werr != nil {
		entry.Warn("unable to write error response: ", werr)
	}
}

// StatusCode returns the status declared through httptransport.StatusCoder by
// err or by anything it wraps. Anything else is a 500.
func StatusCode(err error) int {
	var sc httptransport.StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}
