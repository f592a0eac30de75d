package server

import (
	"context"
	"net/http"
	"os"

	"github.com/NYTimes/logrotate"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/sirupsen/logrus"
)

// Log is the global logger for the server. It will take care of logrotate
// and it can accept 'fields' to include with each log line: see LogWithFields(r).
var Log = logrus.New()

// ConfigureLogging points Log at the configured destination. When a log file
// is given, it is opened through logrotate and lines are written as JSON.
func ConfigureLogging(cfg *Config) error {
	if cfg.Log != "" {
		lf, err := logrotate.NewFile(cfg.Log)
		if err != nil {
			return err
		}
		Log.Out = lf
		// json output when writing to file
		Log.Formatter = &logrus.JSONFormatter{}
	} else {
		Log.Out = os.Stderr
		Log.Formatter = &logrus.TextFormatter{}
	}
	if cfg.LogJSONFormat != nil && *cfg.LogJSONFormat {
		Log.Formatter = &logrus.JSONFormatter{}
	}
	SetLogLevel(cfg)
	return nil
}

// SetLogLevel will set the appropriate logrus log level
// given the server config.
func SetLogLevel(cfg *Config) {
	switch cfg.LogLevel {
	case "debug":
		Log.SetLevel(logrus.DebugLevel)
	case "warn":
		Log.SetLevel(logrus.WarnLevel)
	case "error":
		Log.SetLevel(logrus.ErrorLevel)
	case "fatal":
		Log.SetLevel(logrus.FatalLevel)
	default:
		Log.SetLevel(logrus.InfoLevel)
	}
}

// LogWithFields will feed any request context into a logrus Entry.
func LogWithFields(r *http.Request) *logrus.Entry {
	return Log.WithFields(ContextFields(r))
}

// ContextFields will take a request and convert it to logrus Fields.
func ContextFields(r *http.Request) map[string]interface{} {
	return map[string]interface{}{
		"method":   r.Method,
		"path":     r.URL.Path,
		"rawquery": r.URL.RawQuery,
	}
}

// logWithContext builds a logrus Entry out of the request values go-kit's
// PopulateRequestContext put into ctx.
func logWithContext(ctx context.Context) *logrus.Entry {
	fields := logrus.Fields{}
	if v, ok := ctx.Value(httptransport.ContextKeyRequestMethod).(string); ok {
		fields["method"] = v
	}
	if v, ok := ctx.Value(httptransport.ContextKeyRequestPath).(string); ok {
		fields["path"] = v
	}
	if v, ok := ctx.Value(httptransport.ContextKeyRequestRemoteAddr).(string); ok {
		fields["remoteaddr"] = v
	}
	return Log.WithFields(fields)
}
