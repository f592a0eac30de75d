package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRouters(t *testing.T) {
	tests := []struct {
		routerType string
		method     string
		target     string

		wantCode int
		wantBody string
	}{
		{"gorilla", http.MethodGet, "/svc/v1/1", http.StatusOK, "get"},
		{"gorilla", http.MethodPost, "/svc/v1/1", http.StatusOK, "post"},
		{"gorilla", http.MethodPut, "/svc/v1/1", http.StatusTeapot, "missing"},
		{"gorilla", http.MethodGet, "/svc/v1/1/more", http.StatusTeapot, "missing"},
		{"stdlib", http.MethodGet, "/svc/v1/1", http.StatusOK, "get"},
		{"stdlib", http.MethodPost, "/svc/v1/1", http.StatusOK, "post"},
		{"stdlib", http.MethodPut, "/svc/v1/1", http.StatusTeapot, "missing"},
		{"stdlib", http.MethodGet, "/svc/v1/", http.StatusOK, "subtree"},
		{"stdlib", http.MethodGet, "/svc/v1/2", http.StatusTeapot, "missing"},
		{"stdlib", http.MethodGet, "/nothing", http.StatusTeapot, "missing"},
	}

	for _, test := range tests {
		mx := NewRouter(test.routerType)
		mx.HandleFunc(http.MethodGet, "/svc/v1/1", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "get")
		})
		mx.HandleFunc(http.MethodPost, "/svc/v1/1", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "post")
		})
		mx.HandleFunc(http.MethodGet, "/svc/v1/", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "subtree")
		})
		mx.SetNotFoundHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
			io.WriteString(w, "missing")
		}))

		w := httptest.NewRecorder()
		r := httptest.NewRequest(test.method, test.target, nil)
		mx.ServeHTTP(w, r)

		if w.Code != test.wantCode {
			t.Errorf("%s %s %s expected response code %d, got %d",
				test.routerType, test.method, test.target, test.wantCode, w.Code)
		}
		if got := w.Body.String(); got != test.wantBody {
			t.Errorf("%s %s %s expected response body %q, got %q",
				test.routerType, test.method, test.target, test.wantBody, got)
		}
	}
}

func TestNewRouterDefault(t *testing.T) {
	if _, ok := NewRouter("").(*GorillaRouter); !ok {
		t.Error("expected the default router to be a *GorillaRouter")
	}
	if _, ok := NewRouter("stdlib").(*StdlibRouter); !ok {
		t.Error("expected a *StdlibRouter for 'stdlib'")
	}
}
