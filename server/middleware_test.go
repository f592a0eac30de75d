package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/NYTimes/ajson/routes"
)

func TestNewCORSPolicy(t *testing.T) {
	table := routes.RouteTable{
		"/":       {http.MethodGet: {}, http.MethodPost: {}},
		"/sample": {http.MethodGet: {}},
	}

	got := NewCORSPolicy("nytimes.com", table, routes.RouteTable{"/": {http.MethodGet: {}}})

	want := []string{http.MethodGet, http.MethodOptions, http.MethodPost}
	if diff := cmp.Diff(want, got.Methods); diff != "" {
		t.Errorf("unexpected methods (-want +got):\n%s", diff)
	}
}

func TestCORSPolicyHandler(t *testing.T) {
	tests := []struct {
		name               string
		givenOrigin        string
		givenSuffix        string
		givenMethod        string
		givenRequestMethod string

		wantOrigin  string
		wantCreds   string
		wantHeaders string
		wantCode    int
		wantNext    bool
	}{
		{
			"no origin",
			"", "", http.MethodGet, "",

			"", "", "", http.StatusOK, true,
		},
		{
			"any origin",
			"app.example.org", "", http.MethodGet, "",

			"app.example.org", "true", "", http.StatusOK, true,
		},
		{
			"foreign origin",
			"app.example.org", "nytimes.com", http.MethodGet, "",

			"", "", "", http.StatusOK, true,
		},
		{
			"preflight",
			"www.nytimes.com", "nytimes.com", http.MethodOptions, http.MethodPost,

			"www.nytimes.com", "true", "Content-Type", http.StatusNoContent, false,
		},
		{
			"preflight for an unserved method",
			"www.nytimes.com", "nytimes.com", http.MethodOptions, http.MethodPut,

			"", "", "", http.StatusMethodNotAllowed, false,
		},
		{
			"options without preflight",
			"www.nytimes.com", "nytimes.com", http.MethodOptions, "",

			"", "", "", http.StatusBadRequest, false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := &CORSPolicy{
				OriginSuffix: test.givenSuffix,
				Methods:      []string{http.MethodGet, http.MethodOptions, http.MethodPost},
			}
			r := httptest.NewRequest(test.givenMethod, "/", nil)
			if test.givenOrigin != "" {
				r.Header.Set("Origin", test.givenOrigin)
			}
			if test.givenRequestMethod != "" {
				r.Header.Set("Access-Control-Request-Method", test.givenRequestMethod)
				r.Header.Set("Access-Control-Request-Headers", "content-type")
			}
			w := httptest.NewRecorder()

			var called bool
			p.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})).ServeHTTP(w, r)

			if called != test.wantNext {
				t.Errorf("expected next handler called to be %t, got %t", test.wantNext, called)
			}
			if w.Code != test.wantCode {
				t.Errorf("expected status code %d, got %d", test.wantCode, w.Code)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != test.wantOrigin {
				t.Errorf("expected CORS origin header %q, got %q", test.wantOrigin, got)
			}
			if got := w.Header().Get("Access-Control-Allow-Credentials"); got != test.wantCreds {
				t.Errorf("expected CORS creds header %q, got %q", test.wantCreds, got)
			}
			if got := w.Header().Get("Access-Control-Allow-Headers"); got != test.wantHeaders {
				t.Errorf("expected CORS headers header %q, got %q", test.wantHeaders, got)
			}
		})
	}
}

func TestNoCacheHandler(t *testing.T) {
	w := httptest.NewRecorder()
	NoCacheHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	for header, want := range map[string]string{
		"Cache-Control": "no-cache, no-store, must-revalidate",
		"Pragma":        "no-cache",
		"Expires":       "0",
	} {
		if got := w.Header().Get(header); got != want {
			t.Errorf("expected %s header %q, got %q", header, want, got)
		}
	}
}

func TestAppCORS(t *testing.T) {
	app, _ := newTestApp(t, "production")
	suffix := "nytimes.com"
	app.cfg.CORSOriginSuffix = &suffix

	preflight := func(method string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodOptions, "/api/json/", nil)
		r.Header.Set("Origin", "www.nytimes.com")
		r.Header.Set("Access-Control-Request-Method", method)
		w := httptest.NewRecorder()
		app.ServeHTTP(w, r)
		return w
	}

	w := preflight(http.MethodPost)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected status code 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "www.nytimes.com" {
		t.Errorf("expected CORS origin header \"www.nytimes.com\", got %q", got)
	}

	// no mounted route serves DELETE
	if w = preflight(http.MethodDelete); w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status code 405 for an unserved method, got %d", w.Code)
	}

	r := httptest.NewRequest(http.MethodGet, "/discovery/client", nil)
	w = httptest.NewRecorder()
	app.ServeHTTP(w, r)
	if got := w.Header().Get("Cache-Control"); got != "no-cache, no-store, must-revalidate" {
		t.Errorf("expected route responses to disable caching, got Cache-Control %q", got)
	}
}
