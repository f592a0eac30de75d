package routes

import (
	"context"

	"github.com/go-kit/kit/endpoint"
)

// Recover is an endpoint.Middleware that turns a panic in the wrapped
// endpoint into an error. A panic value that is already an error is
// returned unchanged, so it reaches the error encoder as it was raised.
func Recover(next endpoint.Endpoint) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		defer func() {
			if x := recover(); x != nil {
				response = nil
				if e, ok := x.(error); ok {
					err = e
					return
				}
				err = &PanicFault{Value: x}
			}
		}()
		return next(ctx, request)
	}
}
