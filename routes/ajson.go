package routes

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-kit/kit/endpoint"
	"github.com/pkg/errors"

	"github.com/NYTimes/ajson/ajson"
	"github.com/NYTimes/ajson/service"
)

// SetAJSONRoutes registers the ajson data routes into the given table:
//
//	GET  /        fetch the record matching the "key1" query parameter
//	POST /        create a record from the JSON body
//	GET  /sample  a record shaped from a fixed document
func SetAJSONRoutes(t RouteTable, svc Service) RouteTable {
	t.add(http.MethodGet, "/", HTTPEndpoint{
		Endpoint: Recover(fetchEndpoint(svc)),
		Decoder:  decodeFetchRequest,
	})
	t.add(http.MethodPost, "/", HTTPEndpoint{
		Endpoint: Recover(createEndpoint(svc)),
		Decoder:  decodeCreateRequest,
	})
	t.add(http.MethodGet, "/sample", HTTPEndpoint{
		Endpoint: Recover(sampleEndpoint(svc)),
		Decoder:  BasicDecoder,
	})
	return t
}

// decodeFetchRequest yields nil when key1 is absent, a string when it is
// given once and a []string when it is repeated.
func decodeFetchRequest(_ context.Context, r *http.Request) (interface{}, error) {
	vals := r.URL.Query()[ajson.Key1Field]
	switch len(vals) {
	case 0:
		return nil, nil
	case 1:
		return vals[0], nil
	default:
		return vals, nil
	}
}

// decodeCreateRequest yields the decoded JSON body. A body that is empty or
// not sent as JSON is nil. The body must hold exactly one JSON value.
func decodeCreateRequest(_ context.Context, r *http.Request) (interface{}, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()
	if !isJSON(r.Header.Get("Content-Type")) {
		return nil, nil
	}

	dec := json.NewDecoder(r.Body)
	var candidate interface{}
	err := dec.Decode(&candidate)
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, &BadRequestFault{Err: err}
	}
	if err = dec.Decode(&struct{}{}); err != io.EOF {
		return nil, &BadRequestFault{Err: errors.New("unexpected data after JSON value")}
	}
	return candidate, nil
}

// isJSON reports whether the content type is application/json or a
// +json structured syntax type.
func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

func fetchEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		return respond(svc.Fetch(ctx, req), http.StatusOK)
	}
}

func createEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		return respond(svc.Create(ctx, req), http.StatusCreated)
	}
}

func sampleEndpoint(svc Service) endpoint.Endpoint {
	return func(context.Context, interface{}) (interface{}, error) {
		return NewJSONStatusResponse(svc.Sample(), http.StatusOK), nil
	}
}

// respond maps a service outcome onto a response or a forwarded fault.
func respond(out service.Outcome, code int) (interface{}, error) {
	switch out.Kind {
	case service.Success:
		return NewJSONStatusResponse(out.Record, code), nil
	case service.NotFound:
		return NewJSONStatusResponse(nil, http.StatusNotFound), nil
	case service.Invalid, service.PersistenceFailure:
		if out.Err != nil {
			return nil, out.Err
		}
	}
	return nil, errors.Errorf("unexpected %s outcome", out.Kind)
}
