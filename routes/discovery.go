package routes

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"

	"github.com/NYTimes/ajson/config"
)

// DiscoveryResponse tells clients where the ajson data route lives.
type DiscoveryResponse struct {
	JSONRoute string `json:"jsonRoute"`
}

// SetDiscoveryClientRoutes registers GET / into the given table. It answers
// with the ajson data route prefix taken from env.
func SetDiscoveryClientRoutes(t RouteTable, env *config.Environment) RouteTable {
	t.add(http.MethodGet, "/", HTTPEndpoint{
		Endpoint: Recover(discoveryEndpoint(env)),
		Decoder:  BasicDecoder,
	})
	return t
}

func discoveryEndpoint(env *config.Environment) endpoint.Endpoint {
	return func(context.Context, interface{}) (interface{}, error) {
		if env == nil || env.AJSONRoute == "" {
			return nil, ErrMissingConfiguration
		}
		return NewJSONStatusResponse(DiscoveryResponse{JSONRoute: env.AJSONRoute}, http.StatusOK), nil
	}
}
