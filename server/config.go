package server

import (
	"flag"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/NYTimes/logrotate"
	"github.com/gorilla/handlers"

	"github.com/NYTimes/ajson/config"
)

// Config holds info required to configure an ajson server.App.
type Config struct {
	// HealthCheckPath is where the health check is registered.
	// If empty, this will default to '/healthz'.
	HealthCheckPath string `envconfig:"HEALTH_CHECK_PATH" default:"/healthz"`

	// RouterType is used by the server to init the proper Router implementation.
	// The current available types are 'gorilla' to use the Gorilla tool kit mux and
	// 'stdlib' to use the http package's ServeMux.
	// If empty, this will default to 'gorilla'.
	RouterType string `envconfig:"ROUTER_TYPE"`

	// MaxHeaderBytes can be used to override the default of 1<<20.
	MaxHeaderBytes int `envconfig:"MAX_HEADER_BYTES" default:"1048576"`
	// ReadTimeout can be used to override the default http server timeout of 10s.
	// The string should be formatted like a time.Duration string.
	ReadTimeout time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	// WriteTimeout can be used to override the default http server timeout of 10s.
	// The string should be formatted like a time.Duration string.
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"10s"`
	// IdleTimeout can be used to override the default http server timeout of 120s.
	// The string should be formatted like a time.Duration string.
	IdleTimeout time.Duration `envconfig:"IDLE_TIMEOUT" default:"120s"`
	// ShutdownTimeout can be used to override the default http server shutdown
	// timeout of 30s.
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`

	// HTTPAccessLog is the location of the http access log. If it is empty,
	// no access logging will be done. "stdout" logs to standard out.
	HTTPAccessLog *string `envconfig:"HTTP_ACCESS_LOG"`

	// HTTPAddr is the address the server implementation will bind to.
	// The default is "" (bind to all interfaces). The port comes from
	// config.Environment.
	HTTPAddr string `envconfig:"HTTP_ADDR"`

	// Log is the path to the application log.
	Log string `envconfig:"APP_LOG"`
	// LogLevel will override the default log level of 'info'.
	LogLevel string `envconfig:"APP_LOG_LEVEL"`
	// LogJSONFormat will override the default JSON formatting logic on the server.
	// By default the server will log in a JSON format only if the Log field
	// is defined.
	// If this field is set and true, the logrus JSONFormatter will be used.
	LogJSONFormat *bool `envconfig:"APP_LOG_JSON_FMT"`

	// TLSCertFile is an optional string for enabling TLS.
	TLSCertFile *string `envconfig:"TLS_CERT"`
	// TLSKeyFile is an optional string for enabling TLS.
	TLSKeyFile *string `envconfig:"TLS_KEY"`

	// CORSOriginSuffix enables CORS headers for requests whose Origin ends
	// with the given suffix. An empty suffix allows any Origin. CORS is off
	// when unset.
	CORSOriginSuffix *string `envconfig:"CORS_ORIGIN_SUFFIX"`

	// Enable pprof Profiling. Off by default.
	EnablePProf bool `envconfig:"ENABLE_PPROF"`

	// MetricsNamespace is used by prometheus.
	MetricsNamespace string `envconfig:"METRICS_NAMESPACE" default:"ajson"`
	// MetricsPath is where the prometheus endpoint will be registered.
	MetricsPath string `envconfig:"METRICS_PATH" default:"/metrics"`
}

// LoadConfigFromEnv will load a Config from environment variables,
// applying the defaults for anything unset.
func LoadConfigFromEnv() *Config {
	var cfg Config
	config.LoadEnvConfig(&cfg)
	return &cfg
}

// NewAccessLogMiddleware will wrap a logrotate-aware Apache-style access log handler
// around the given http.Handler if an access log location is provided by the config,
// or optionally send access logs to stdout.
func NewAccessLogMiddleware(logLocation *string, handler http.Handler) (http.Handler, error) {
	if logLocation == nil || *logLocation == "" {
		return handler, nil
	}
	var lw io.Writer
	var err error
	switch *logLocation {
	case "stdout":
		lw = os.Stdout
	default:
		lw, err = logrotate.NewFile(*logLocation)
		if err != nil {
			return nil, err
		}
	}
	return handlers.CombinedLoggingHandler(lw, handler), nil
}

// SetConfigOverrides will check the CLI flags for any values
// and override the values in the given config if they are set.
// It parses the command line, so it must be called once, after every
// other flag has been declared. The '-config' flag value is stored
// in configLocation.
func SetConfigOverrides(c *Config, configLocation *string) {
	// HTTPAccessLogCLI is a pointer to the value of the '-http-access-log' command line flag. It is meant to
	// declare an access log location for HTTP services.
	HTTPAccessLogCLI := flag.String("http-access-log", "", "HTTP access log location")

	config.SetFlagOverrides(&c.Log, configLocation)

	if *HTTPAccessLogCLI != "" {
		c.HTTPAccessLog = HTTPAccessLogCLI
	}
}
