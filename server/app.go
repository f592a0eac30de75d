package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"

	"github.com/NYTimes/gziphandler"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/nu7hatch/gouuid"
	"github.com/pkg/errors"

	"github.com/NYTimes/ajson/config"
	"github.com/NYTimes/ajson/routes"
)

// Version is meant to be set with the current package version at build time.
var Version string

// Name is used for status and logging.
var Name = "ajson-server"

const notFoundMetric = "__404__"

// App composes the discovery and ajson routes behind one router and one
// ErrorResponder.
type App struct {
	name string
	cfg  *Config
	env  config.Environment
	svc  routes.Service

	once    sync.Once
	handler http.Handler

	responder *ErrorResponder
	metrics   *Metrics

	svr  *http.Server
	addr net.Addr
	// exit chan for graceful shutdown
	exit     chan chan error
	stopOnce sync.Once
	stopErr  error
}

// New returns an App serving svc. A nil cfg uses the environment defaults.
func New(cfg *Config, env config.Environment, svc routes.Service) *App {
	if cfg == nil {
		cfg = LoadConfigFromEnv()
	}
	// generate a unique ID for the server
	id, _ := uuid.NewV4()
	name := Name + "-" + Version
	if id != nil {
		name += "-" + id.String()
	}
	return &App{
		name:      name,
		cfg:       cfg,
		env:       env,
		svc:       svc,
		responder: NewErrorResponder(env.Development()),
		exit:      make(chan chan error),
	}
}

// Name returns the unique name of this App instance.
func (a *App) Name() string {
	return a.name
}

// Handler composes the App on its first call. Every call returns the same
// http.Handler.
func (a *App) Handler() http.Handler {
	a.once.Do(func() {
		a.handler = a.compose()
	})
	return a.handler
}

// ServeHTTP is to implement http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.Handler().ServeHTTP(w, r)
}

func (a *App) compose() http.Handler {
	a.metrics = NewMetrics(a.cfg.MetricsNamespace)
	mx := NewRouter(a.cfg.RouterType)

	opts := []httptransport.ServerOption{
		httptransport.ServerBefore(httptransport.PopulateRequestContext),
		httptransport.ServerErrorEncoder(a.responder.Encode),
	}

	discovery := routes.SetDiscoveryClientRoutes(routes.RouteTable{}, &a.env)
	data := routes.SetAJSONRoutes(routes.RouteTable{}, a.svc)
	a.mount(mx, a.env.DiscoveryClientRoute, discovery, opts)
	a.mount(mx, a.env.AJSONRoute, data, opts)

	mx.Handle(http.MethodGet, a.cfg.HealthCheckPath,
		httptransport.NewServer(okEndpoint, routes.BasicDecoder, httptransport.EncodeJSONResponse, opts...))
	mx.Handle(http.MethodGet, a.cfg.MetricsPath, a.metrics.Handler())
	registerPprof(a.cfg, mx)

	mx.SetNotFoundHandler(a.metrics.Instrument(notFoundMetric, http.HandlerFunc(a.notFound)))

	var h http.Handler = mx
	if a.cfg.CORSOriginSuffix != nil {
		h = NewCORSPolicy(*a.cfg.CORSOriginSuffix, discovery, data).Handler(h)
	}
	return gziphandler.GzipHandler(a.safelyExecuteRequest(h))
}

// mount registers every endpoint of the table under prefix. The "/" path is
// served both at the bare prefix and with a trailing slash.
func (a *App) mount(mx Router, prefix string, table routes.RouteTable, opts []httptransport.ServerOption) {
	prefix = strings.TrimRight(prefix, "/")
	for path, epMethods := range table {
		for method, ep := range epMethods {
			// just pass the http.Request in if no decoder provided
			if ep.Decoder == nil {
				ep.Decoder = routes.BasicDecoder
			}
			if ep.Encoder == nil {
				ep.Encoder = routes.EncodeResponse
			}
			h := a.metrics.Instrument(prefix+path, NoCacheHandler(
				httptransport.NewServer(ep.Endpoint, ep.Decoder, ep.Encoder,
					append(opts, ep.Options...)...)))

			if path == "/" && prefix != "" {
				mx.Handle(method, prefix, h)
			}
			mx.Handle(method, prefix+path, h)
		}
	}
}

func (a *App) notFound(w http.ResponseWriter, r *http.Request) {
	ctx := httptransport.PopulateRequestContext(r.Context(), r)
	a.responder.Encode(ctx, &NotFoundFault{Method: r.Method, Path: r.URL.Path}, w)
}

// safelyExecuteRequest will prevent a panic in a request from bringing the server down.
func (a *App) safelyExecuteRequest(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if x := recover(); x != nil {
				// log the panic for all the details later
				LogWithFields(r).Errorf("recovered from a panic\n%v: %v", x, string(debug.Stack()))

				ctx := httptransport.PopulateRequestContext(r.Context(), r)
				a.responder.Encode(ctx, &UnhandledFault{Value: x}, w)
			}
		}()
		h.ServeHTTP(w, r)
	})
}

func okEndpoint(context.Context, interface{}) (interface{}, error) {
	return "OK", nil
}

func registerPprof(cfg *Config, mx Router) {
	if !cfg.EnablePProf {
		return
	}
	mx.HandleFunc(http.MethodGet, "/debug/pprof/", pprof.Index)
	mx.HandleFunc(http.MethodGet, "/debug/pprof/cmdline", pprof.Cmdline)
	mx.HandleFunc(http.MethodGet, "/debug/pprof/profile", pprof.Profile)
	mx.HandleFunc(http.MethodGet, "/debug/pprof/symbol", pprof.Symbol)
	mx.HandleFunc(http.MethodGet, "/debug/pprof/trace", pprof.Trace)
	// Manually add support for paths linked to by index page at /debug/pprof/
	mx.Handle(http.MethodGet, "/debug/pprof/goroutine", pprof.Handler("goroutine"))
	mx.Handle(http.MethodGet, "/debug/pprof/heap", pprof.Handler("heap"))
	mx.Handle(http.MethodGet, "/debug/pprof/threadcreate", pprof.Handler("threadcreate"))
	mx.Handle(http.MethodGet, "/debug/pprof/block", pprof.Handler("block"))
}

// Start binds the listener at the configured address and serves the App in
// the background. If they are configured, this will start TLS and access
// logging.
func (a *App) Start() error {
	handler, err := NewAccessLogMiddleware(a.cfg.HTTPAccessLog, a.Handler())
	if err != nil {
		return errors.Wrap(err, "unable to create http access log")
	}

	a.svr = &http.Server{
		Handler:        handler,
		MaxHeaderBytes: a.cfg.MaxHeaderBytes,
		ReadTimeout:    a.cfg.ReadTimeout,
		WriteTimeout:   a.cfg.WriteTimeout,
		IdleTimeout:    a.cfg.IdleTimeout,
	}

	l, err := net.Listen("tcp", fmt.Sprintf("%s:%d", a.cfg.HTTPAddr, a.env.Port))
	if err != nil {
		return errors.Wrap(err, "failed to listen to HTTP port")
	}

	// add TLS if in the configs
	if a.cfg.TLSCertFile != nil && a.cfg.TLSKeyFile != nil {
		cert, err := tls.LoadX509KeyPair(*a.cfg.TLSCertFile, *a.cfg.TLSKeyFile)
		if err != nil {
			l.Close()
			return errors.Wrap(err, "unable to load TLS key pair")
		}
		a.svr.TLSConfig = &tls.Config{
			Certificates: []tls.Certificate{cert},
			NextProtos:   []string{"http/1.1"},
		}
		l = tls.NewListener(l, a.svr.TLSConfig)
	}
	a.addr = l.Addr()

	go func() {
		err := a.svr.Serve(l)
		if err != nil && err != http.ErrServerClosed {
			Log.Error("HTTP server error - initiating shutting down: ", err)
			a.Stop()
		}
	}()
	Log.Infof("%s listening on %s", a.name, l.Addr().String())

	go func() {
		exit := <-a.exit

		// stop the listener with timeout
		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		exit <- a.svr.Shutdown(ctx)
	}()

	return nil
}

// Addr returns the address the App is listening on, or nil before Start.
func (a *App) Addr() net.Addr {
	return a.addr
}

// Stop initiates the shutdown process and returns when
// the server completes. Later calls return the first call's result.
func (a *App) Stop() error {
	if a.svr == nil {
		return nil
	}
	a.stopOnce.Do(func() {
		ch := make(chan error)
		a.exit <- ch
		a.stopErr = <-ch
	})
	return a.stopErr
}

// Run will start the App and set it up to Stop()
// on a kill signal.
func Run(a *App) error {
	Log.Infof("Starting new %s server", a.name)
	if err := a.Start(); err != nil {
		return err
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
	Log.Infof("Received signal %s", <-ch)

	Log.Infof("Stopping %s server", a.name)
	return a.Stop()
}
