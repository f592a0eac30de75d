package server

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gorilla/handlers"

	"github.com/NYTimes/ajson/routes"
)

// CORSPolicy admits cross-origin requests from origins ending in
// OriginSuffix. An empty suffix admits every origin.
type CORSPolicy struct {
	OriginSuffix string
	// Methods are the methods a preflight request may ask for.
	Methods []string
}

// NewCORSPolicy allows the methods served by the given route tables,
// plus OPTIONS for preflight requests.
func NewCORSPolicy(originSuffix string, tables ...routes.RouteTable) *CORSPolicy {
	seen := map[string]bool{http.MethodOptions: true}
	for _, t := range tables {
		for _, m := range t.Methods() {
			seen[m] = true
		}
	}
	methods := make([]string, 0, len(seen))
	for m := range seen {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return &CORSPolicy{OriginSuffix: originSuffix, Methods: methods}
}

func (p *CORSPolicy) allows(origin string) bool {
	return strings.HasSuffix(origin, p.OriginSuffix)
}

// Handler echoes admitted origins back with credentials allowed. Preflight
// requests from admitted origins are answered with a 204, or a 405 when they
// ask for a method outside Methods.
func (p *CORSPolicy) Handler(next http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOriginValidator(p.allows),
		handlers.AllowedMethods(p.Methods),
		handlers.AllowedHeaders([]string{"Content-Type", "X-Requested-By"}),
		handlers.AllowCredentials(),
		handlers.OptionStatusCode(http.StatusNoContent),
	)(next)
}

var noCacheHeaders = map[string]string{
	"Cache-Control": "no-cache, no-store, must-revalidate",
	"Pragma":        "no-cache",
	"Expires":       "0",
}

// NoCacheHandler marks every response of next as uncacheable.
func NoCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for k, v := range noCacheHeaders {
			h.Set(k, v)
		}
		next.ServeHTTP(w, r)
	})
}
