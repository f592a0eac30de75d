package routes

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// ErrMissingConfiguration is forwarded when a route is asked to serve
// without the configuration it depends on.
var ErrMissingConfiguration = errors.New("missing configuration")

// BadRequestFault is returned when a request body cannot be parsed.
type BadRequestFault struct {
	Err error
}

func (f *BadRequestFault) Error() string {
	return "malformed request body: " + f.Err.Error()
}

// StatusCode is to implement httptransport.StatusCoder
func (f *BadRequestFault) StatusCode() int {
	return http.StatusBadRequest
}

// Cause returns the parse error.
func (f *BadRequestFault) Cause() error {
	return f.Err
}

// PanicFault wraps a panic value that is not an error.
type PanicFault struct {
	Value interface{}
}

func (f *PanicFault) Error() string {
	return fmt.Sprintf("panic: %v", f.Value)
}
