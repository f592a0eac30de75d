package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Router is an interface to wrap different router types to be embedded within
// the ajson App.
type Router interface {
	Handle(method string, path string, handler http.Handler)
	HandleFunc(method string, path string, handlerFunc func(http.ResponseWriter, *http.Request))
	ServeHTTP(w http.ResponseWriter, r *http.Request)
	SetNotFoundHandler(handler http.Handler)
}

// NewRouter will return the router specified by the given type.
// If no type is supplied, the server will default to using Gorilla mux.
func NewRouter(routerType string) Router {
	switch routerType {
	case "stdlib":
		return &StdlibRouter{
			mux:      http.NewServeMux(),
			methods:  map[string]map[string]http.Handler{},
			notFound: http.NotFoundHandler(),
		}
	default:
		return &GorillaRouter{mux.NewRouter()}
	}
}

// GorillaRouter is a Router implementation for the Gorilla web toolkit's `mux.Router`.
type GorillaRouter struct {
	mux *mux.Router
}

// Handle will call the Gorilla web toolkit's Handle().Method() methods.
func (g *GorillaRouter) Handle(method, path string, h http.Handler) {
	g.mux.Handle(path, h).Methods(method)
}

// HandleFunc will call the Gorilla web toolkit's HandleFunc().Method() methods.
func (g *GorillaRouter) HandleFunc(method, path string, h func(http.ResponseWriter, *http.Request)) {
	g.Handle(method, path, http.HandlerFunc(h))
}

// SetNotFoundHandler will set the Gorilla mux.Router.NotFoundHandler. A request
// for a known path with an unregistered method is sent to the same handler.
func (g *GorillaRouter) SetNotFoundHandler(h http.Handler) {
	g.mux.NotFoundHandler = h
	g.mux.MethodNotAllowedHandler = h
}

// ServeHTTP will call Gorilla mux.Router.ServerHTTP directly.
func (g *GorillaRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.mux.ServeHTTP(w, r)
}

// StdlibRouter is a Router implementation for the Stdlib's `http.ServeMux`.
// Paths only match exactly: a request under a registered path, or with an
// unregistered method, goes to the not found handler.
type StdlibRouter struct {
	mux      *http.ServeMux
	methods  map[string]map[string]http.Handler
	notFound http.Handler
}

// Handle will register the path with the ServeMux the first time it is seen
// and dispatch on the incoming HTTP method.
func (s *StdlibRouter) Handle(method, path string, h http.Handler) {
	if _, ok := s.methods[path]; !ok {
		s.methods[path] = map[string]http.Handler{}
		byMethod := s.methods[path]
		s.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			if mh, ok := byMethod[r.Method]; ok {
				mh.ServeHTTP(w, r)
				return
			}
			s.notFound.ServeHTTP(w, r)
		})
	}
	s.methods[path][method] = h
}

// HandleFunc will call Handle with the given func.
func (s *StdlibRouter) HandleFunc(method, path string, h func(http.ResponseWriter, *http.Request)) {
	s.Handle(method, path, http.HandlerFunc(h))
}

// SetNotFoundHandler will set the handler for unmatched requests.
func (s *StdlibRouter) SetNotFoundHandler(h http.Handler) {
	s.notFound = h
}

// ServeHTTP will call Stdlib's ServeMux.ServerHTTP for exact path matches.
func (s *StdlibRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, pattern := s.mux.Handler(r); pattern != r.URL.Path {
		s.notFound.ServeHTTP(w, r)
		return
	}
	s.mux.ServeHTTP(w, r)
}
