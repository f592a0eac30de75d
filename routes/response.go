package routes

import (
	"context"
	"encoding/json"
	"net/http"

	httptransport "github.com/go-kit/kit/transport/http"
)

// JSONContentType is set on every response carrying a body.
const JSONContentType = "application/json; charset=utf-8"

// NewJSONStatusResponse allows endpoints to respond with a specific HTTP status
// code and a JSON serialized body. A nil body is written as an empty response.
func NewJSONStatusResponse(res interface{}, code int) *JSONStatusResponse {
	return &JSONStatusResponse{res: res, code: code}
}

// JSONStatusResponse implements httptransport.StatusCoder so endpoints can
// respond with a non-200 status code.
type JSONStatusResponse struct {
	code int
	res  interface{}
}

// StatusCode is to implement httptransport.StatusCoder
func (c *JSONStatusResponse) StatusCode() int {
	return c.code
}

// MarshalJSON is to implement json.Marshaler
func (c *JSONStatusResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.res)
}

// Body returns the value that will be serialized.
func (c *JSONStatusResponse) Body() interface{} {
	return c.res
}

// EncodeResponse is an httptransport.EncodeResponseFunc that writes the
// response as JSON. If the response implements StatusCoder, the provided
// StatusCode will be used instead of 200. A *JSONStatusResponse without a
// body is answered with headers only.
func EncodeResponse(_ context.Context, w http.ResponseWriter, response interface{}) error {
	code := http.StatusOK
	if sc, ok := response.(httptransport.StatusCoder); ok {
		code = sc.StatusCode()
	}
	if jr, ok := response.(*JSONStatusResponse); ok && jr.res == nil {
		w.WriteHeader(code)
		return nil
	}

	w.Header().Set("Content-Type", JSONContentType)
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(response)
}
