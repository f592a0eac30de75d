/*
Package server hosts the ajson routes over HTTP.

An App mounts each routes.RouteTable under the path prefix configured in
config.Environment and sends every fault to a single ErrorResponder:

	env := config.LoadEnvironmentFromEnv()
	app := server.New(server.LoadConfigFromEnv(), env, service.New(st))
	if err := server.Run(app); err != nil {
	    server.Log.Fatal(err)
	}

Each endpoint is served through go-kit's http transport with the
ErrorResponder as its ServerErrorEncoder. Requests that match no route, and
panics that escape an endpoint, go to the same responder. Outside of the
"development" environment fault details are never written to the client.

Alongside the routes the App serves a health check, prometheus metrics for
every route and, if enabled, the pprof handlers. Responses are gzipped for
clients that accept it and an Apache style access log can be written through
logrotate.
*/
package server
