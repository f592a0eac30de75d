// Package routes holds the route setup functions of the ajson app. Each
// setup function registers go-kit endpoints into a RouteTable that the
// server mounts under a path prefix.
package routes

import (
	"context"
	"net/http"
	"sort"

	"github.com/go-kit/kit/endpoint"
	httptransport "github.com/go-kit/kit/transport/http"

	"github.com/NYTimes/ajson/ajson"
	"github.com/NYTimes/ajson/service"
)

// HTTPEndpoint encapsulates everything required to build
// an endpoint hosted on the ajson server.
//
// A nil Decoder passes the *http.Request through to the endpoint and a nil
// Encoder defaults to EncodeResponse.
type HTTPEndpoint struct {
	Endpoint endpoint.Endpoint
	Decoder  httptransport.DecodeRequestFunc
	Encoder  httptransport.EncodeResponseFunc
	Options  []httptransport.ServerOption
}

// RouteTable maps a path, relative to the router's prefix, and an HTTP
// method to an HTTPEndpoint. For example:
//
//	routes.RouteTable{
//	    "/": {
//	        "GET":  {Endpoint: fetch, Decoder: decodeFetchRequest},
//	        "POST": {Endpoint: create, Decoder: decodeCreateRequest},
//	    },
//	}
type RouteTable map[string]map[string]HTTPEndpoint

// Methods returns the sorted set of HTTP methods the table serves.
func (t RouteTable) Methods() []string {
	seen := map[string]bool{}
	var methods []string
	for _, eps := range t {
		for m := range eps {
			if !seen[m] {
				seen[m] = true
				methods = append(methods, m)
			}
		}
	}
	sort.Strings(methods)
	return methods
}

func (t RouteTable) add(method, path string, ep HTTPEndpoint) {
	if t[path] == nil {
		t[path] = map[string]HTTPEndpoint{}
	}
	t[path][method] = ep
}

// Service is the business logic the ajson routes call into.
// *service.AJSONService implements it.
type Service interface {
	Fetch(ctx context.Context, key interface{}) service.Outcome
	Create(ctx context.Context, candidate interface{}) service.Outcome
	Sample() ajson.Record
}

var _ Service = &service.AJSONService{}

// BasicDecoder passes the *http.Request in as the endpoint request.
func BasicDecoder(_ context.Context, r *http.Request) (interface{}, error) {
	return r, nil
}
